//go:build integration
// +build integration

package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/igegov/cv-portfolio/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("Skipping integration test: TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := Connect(ctx, dbURL)
	if err != nil {
		t.Skipf("Skipping integration test: failed to connect to DB: %v", err)
	}
	require.NoError(t, db.EnsureSchema(ctx))
	return db
}

func TestSnapshots_Integration(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	cv := &types.CVData{Hero: types.Hero{Name: "Snapshot " + uuid.NewString()}}
	id, err := db.SaveSnapshot(ctx, cv, 7)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	latest, err := db.LatestSnapshot(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, id, latest.ID)
	assert.Equal(t, 7, latest.Revision)

	loaded, revision, err := db.LatestContent(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, 7, revision)
	assert.Equal(t, cv.Hero.Name, loaded.Hero.Name)
}

func TestExports_Integration(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	valid, err := db.RecordExport(ctx, ExportInput{
		Source: SourceCLI,
		Valid:  true,
		Resume: map[string]any{"basics": map[string]any{"name": "n"}},
	})
	require.NoError(t, err)
	assert.False(t, valid.CreatedAt.IsZero())

	invalid, err := db.RecordExport(ctx, ExportInput{
		Source: SourceHTTP,
		Valid:  false,
		Errors: []string{"/basics name is required"},
		Resume: map[string]any{"basics": map[string]any{}},
	})
	require.NoError(t, err)

	got, err := db.GetExport(ctx, invalid.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.Valid)
	assert.Equal(t, []string{"/basics name is required"}, got.Errors)
	assert.Nil(t, got.SnapshotID)

	got, err = db.GetExport(ctx, valid.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Errors)
	assert.JSONEq(t, `{"basics":{"name":"n"}}`, string(got.Resume))

	list, err := db.ListExports(ctx, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, invalid.ID, list[0].ID)

	missing, err := db.GetExport(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}
