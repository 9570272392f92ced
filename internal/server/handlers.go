package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/igegov/cv-portfolio/internal/content"
	"github.com/igegov/cv-portfolio/internal/db"
	"github.com/igegov/cv-portfolio/internal/jsonresume"
	"github.com/igegov/cv-portfolio/internal/schemas"
	"github.com/igegov/cv-portfolio/internal/types"
	"go.uber.org/zap"
)

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	_, revision, _ := s.store.Snapshot()
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"revision": revision,
		"editing":  s.jwtService != nil,
		"history":  s.exports != nil,
	})
}

// handleGetCV returns the current site content
func (s *Server) handleGetCV(w http.ResponseWriter, _ *http.Request) {
	cv, revision, updatedAt := s.store.Snapshot()
	w.Header().Set("X-Content-Revision", strconv.Itoa(revision))
	w.Header().Set("Last-Modified", updatedAt.Format(http.TimeFormat))
	s.jsonResponse(w, http.StatusOK, cv)
}

// handlePutCV replaces the site content. The body must satisfy the content schema.
func (s *Server) handlePutCV(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.errorResponse(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}

	cv, err := content.Parse(body, content.FormatJSON)
	if err != nil {
		s.errorFrom(w, err)
		return
	}

	revision, err := s.store.Replace(cv)
	if err != nil {
		s.errorFrom(w, err)
		return
	}
	s.logger.Info("content replaced", zap.Int("revision", revision))

	resp := map[string]any{"revision": revision}
	if id, ok := s.persistSnapshot(r.Context(), cv, revision); ok {
		resp["snapshot_id"] = id
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// persistSnapshot stores cv when history is enabled. Failures are logged; the
// in-memory content stays authoritative.
func (s *Server) persistSnapshot(ctx context.Context, cv *types.CVData, revision int) (uuid.UUID, bool) {
	if s.exports == nil {
		return uuid.Nil, false
	}
	id, err := s.exports.SaveSnapshot(ctx, cv, revision)
	if err != nil {
		s.logger.Error("failed to save content snapshot", zap.Int("revision", revision), zap.Error(err))
		return uuid.Nil, false
	}

	s.snapMu.Lock()
	if revision >= s.snapRev {
		s.snapRev, s.snapshot = revision, id
	}
	s.snapMu.Unlock()
	return id, true
}

// snapshotFor returns the stored snapshot ID of revision, if any.
func (s *Server) snapshotFor(revision int) *uuid.UUID {
	s.snapMu.Lock()
	defer s.snapMu.Unlock()
	if s.snapRev != revision || s.snapshot == uuid.Nil {
		return nil
	}
	id := s.snapshot
	return &id
}

// handleResumeJSON maps the current content and returns it as a downloadable JSON Resume.
// A document that fails the schema is reported with 422 and never served.
func (s *Server) handleResumeJSON(w http.ResponseWriter, r *http.Request) {
	cv, revision, _ := s.store.Snapshot()
	doc := jsonresume.Map(cv)
	result := schemas.ValidateResume(doc)

	if id, ok := s.recordExport(r.Context(), revision, doc, result); ok {
		w.Header().Set("X-Export-ID", id.String())
	}

	if !result.OK {
		s.jsonResponse(w, http.StatusUnprocessableEntity, map[string][]string{"errors": result.Errors})
		return
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		s.errorFrom(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="resume.json"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(append(data, '\n')); err != nil {
		s.logger.Warn("failed to write resume", zap.Error(err))
	}
}

func (s *Server) recordExport(ctx context.Context, revision int, doc *types.JSONResume, result schemas.Result) (uuid.UUID, bool) {
	if s.exports == nil {
		return uuid.Nil, false
	}
	export, err := s.exports.RecordExport(ctx, db.ExportInput{
		SnapshotID: s.snapshotFor(revision),
		Source:     db.SourceHTTP,
		Valid:      result.OK,
		Errors:     result.Errors,
		Resume:     doc,
	})
	if err != nil {
		s.logger.Error("failed to record export", zap.Error(err))
		return uuid.Nil, false
	}
	return export.ID, true
}

// handleValidateResume validates a posted JSON Resume document
func (s *Server) handleValidateResume(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.errorResponse(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}
	s.jsonResponse(w, http.StatusOK, schemas.ValidateResumeJSON(body))
}

// handleListExports lists recent exports, newest first
func (s *Server) handleListExports(w http.ResponseWriter, r *http.Request) {
	if s.exports == nil {
		s.errorFrom(w, &ErrNotFound{Resource: "export history"})
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.errorFrom(w, &ErrValidation{Field: "limit", Message: "must be a non-negative integer"})
			return
		}
		limit = n
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	exports, err := s.exports.ListExports(ctx, limit)
	if err != nil {
		s.errorFrom(w, err)
		return
	}
	if exports == nil {
		exports = []db.ExportSummary{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"exports": exports})
}

// handleGetExport returns one stored export including its document
func (s *Server) handleGetExport(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("id")
	if s.exports == nil {
		s.errorFrom(w, &ErrNotFound{Resource: "export", ID: raw})
		return
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		s.errorFrom(w, &ErrValidation{Field: "id", Message: "must be a UUID"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	export, err := s.exports.GetExport(ctx, id)
	switch {
	case err != nil && errors.Is(err, context.DeadlineExceeded):
		s.errorResponse(w, http.StatusGatewayTimeout, "export lookup timed out")
	case err != nil:
		s.errorFrom(w, err)
	case export == nil:
		s.errorFrom(w, &ErrNotFound{Resource: "export", ID: id.String()})
	default:
		s.jsonResponse(w, http.StatusOK, export)
	}
}
