package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Export sources
const (
	SourceHTTP = "http"
	SourceCLI  = "cli"
)

// DefaultListLimit caps ListExports when no limit is given
const DefaultListLimit = 50

// MaxListLimit is the largest page ListExports returns
const MaxListLimit = 500

// Snapshot is a stored revision of the site content
type Snapshot struct {
	ID        uuid.UUID       `json:"id"`
	Revision  int             `json:"revision"`
	Content   json.RawMessage `json:"content"`
	CreatedAt time.Time       `json:"created_at"`
}

// Export is a stored JSON Resume export with its validation outcome
type Export struct {
	ID         uuid.UUID       `json:"id"`
	SnapshotID *uuid.UUID      `json:"snapshot_id,omitempty"`
	Source     string          `json:"source"`
	Valid      bool            `json:"valid"`
	Errors     []string        `json:"errors,omitempty"`
	Resume     json.RawMessage `json:"resume"`
	CreatedAt  time.Time       `json:"created_at"`
}

// ExportSummary is an Export without the document body, for listings
type ExportSummary struct {
	ID        uuid.UUID `json:"id"`
	Source    string    `json:"source"`
	Valid     bool      `json:"valid"`
	CreatedAt time.Time `json:"created_at"`
}

// ExportInput holds the fields needed to record an export
type ExportInput struct {
	SnapshotID *uuid.UUID
	Source     string
	Valid      bool
	Errors     []string
	Resume     any
}

// clampLimit normalizes a requested page size
func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	default:
		return limit
	}
}
