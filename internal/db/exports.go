package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// RecordExport stores an export and returns it with its generated ID and timestamp
func (db *DB) RecordExport(ctx context.Context, in ExportInput) (*Export, error) {
	resume, err := json.Marshal(in.Resume)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resume: %w", err)
	}

	errs := in.Errors
	if errs == nil {
		errs = []string{}
	}
	errsJSON, err := json.Marshal(errs)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal validation errors: %w", err)
	}

	export := &Export{
		ID:         uuid.New(),
		SnapshotID: in.SnapshotID,
		Source:     in.Source,
		Valid:      in.Valid,
		Errors:     in.Errors,
		Resume:     resume,
	}

	err = db.pool.QueryRow(ctx,
		`INSERT INTO resume_exports (id, snapshot_id, source, valid, errors, resume)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at`,
		export.ID, export.SnapshotID, export.Source, export.Valid, errsJSON, resume,
	).Scan(&export.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to record export: %w", err)
	}
	return export, nil
}

// GetExport retrieves an export by ID, or nil if it does not exist
func (db *DB) GetExport(ctx context.Context, id uuid.UUID) (*Export, error) {
	var (
		e        Export
		errsJSON []byte
	)
	err := db.pool.QueryRow(ctx,
		`SELECT id, snapshot_id, source, valid, errors, resume, created_at
		 FROM resume_exports WHERE id = $1`,
		id,
	).Scan(&e.ID, &e.SnapshotID, &e.Source, &e.Valid, &errsJSON, &e.Resume, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get export %s: %w", id, err)
	}

	if len(errsJSON) > 0 {
		if err := json.Unmarshal(errsJSON, &e.Errors); err != nil {
			return nil, fmt.Errorf("failed to unmarshal export errors: %w", err)
		}
	}
	if len(e.Errors) == 0 {
		e.Errors = nil
	}
	return &e, nil
}

// ListExports returns the newest exports first
func (db *DB) ListExports(ctx context.Context, limit int) ([]ExportSummary, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, source, valid, created_at
		 FROM resume_exports
		 ORDER BY created_at DESC
		 LIMIT $1`,
		clampLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list exports: %w", err)
	}
	defer rows.Close()

	var exports []ExportSummary
	for rows.Next() {
		var e ExportSummary
		if err := rows.Scan(&e.ID, &e.Source, &e.Valid, &e.CreatedAt); err != nil {
			return nil, err
		}
		exports = append(exports, e)
	}
	return exports, rows.Err()
}
