package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/igegov/cv-portfolio/internal/types"
	"github.com/jackc/pgx/v5"
)

// SaveSnapshot stores a content revision and returns its ID
func (db *DB) SaveSnapshot(ctx context.Context, cv *types.CVData, revision int) (uuid.UUID, error) {
	content, err := json.Marshal(cv)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal content: %w", err)
	}

	id := uuid.New()
	_, err = db.pool.Exec(ctx,
		`INSERT INTO content_snapshots (id, revision, content) VALUES ($1, $2, $3)`,
		id, revision, content,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save snapshot: %w", err)
	}
	return id, nil
}

// LatestSnapshot returns the most recent snapshot, or nil if none exist
func (db *DB) LatestSnapshot(ctx context.Context) (*Snapshot, error) {
	var s Snapshot
	err := db.pool.QueryRow(ctx,
		`SELECT id, revision, content, created_at
		 FROM content_snapshots
		 ORDER BY created_at DESC
		 LIMIT 1`,
	).Scan(&s.ID, &s.Revision, &s.Content, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest snapshot: %w", err)
	}
	return &s, nil
}

// LatestContent decodes the most recent snapshot into CVData, or returns nil if none exist
func (db *DB) LatestContent(ctx context.Context) (*types.CVData, int, error) {
	s, err := db.LatestSnapshot(ctx)
	if err != nil || s == nil {
		return nil, 0, err
	}

	var cv types.CVData
	if err := json.Unmarshal(s.Content, &cv); err != nil {
		return nil, 0, fmt.Errorf("failed to unmarshal snapshot %s: %w", s.ID, err)
	}
	return &cv, s.Revision, nil
}
