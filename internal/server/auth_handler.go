package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/igegov/cv-portfolio/internal/types"
	"go.uber.org/zap"
)

// handleLogin exchanges the editor password for a session token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if s.jwtService == nil {
		s.errorFrom(w, &ErrEditingDisabled{})
		return
	}

	var req types.LoginRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorFrom(w, validationError(err))
		return
	}

	if !s.editor.VerifyPassword(req.Password) {
		s.logger.Warn("editor login failed", zap.String("client", clientID(r)))
		s.errorFrom(w, &ErrInvalidCredentials{})
		return
	}

	token, expiresAt, err := s.jwtService.GenerateToken(EditorSubject)
	if err != nil {
		s.errorFrom(w, err)
		return
	}

	s.logger.Info("editor logged in", zap.String("client", clientID(r)))
	s.jsonResponse(w, http.StatusOK, types.LoginResponse{Token: token, ExpiresAt: expiresAt})
}

// validationError converts the first validator failure into an ErrValidation.
func validationError(err error) *ErrValidation {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		ve := verrs[0]
		return &ErrValidation{Field: ve.Field(), Message: fmt.Sprintf("failed on %q", ve.Tag())}
	}
	return &ErrValidation{Field: "body", Message: "invalid request"}
}
