package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/igegov/cv-portfolio/internal/content"
)

// ErrInvalidCredentials indicates a wrong editor password
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid password"
}

// ErrEditingDisabled indicates the server runs without editor credentials
type ErrEditingDisabled struct{}

func (e *ErrEditingDisabled) Error() string {
	return "editing is disabled on this server"
}

// ErrNotFound indicates a missing resource
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		contentValidation *content.ValidationError
		contentLoad       *content.LoadError
	)

	switch err.(type) {
	case *ErrInvalidCredentials:
		return http.StatusUnauthorized
	case *ErrEditingDisabled:
		return http.StatusForbidden
	case *ErrNotFound:
		return http.StatusNotFound
	case *ErrValidation:
		return http.StatusBadRequest
	}

	switch {
	case errors.As(err, &contentValidation):
		return http.StatusUnprocessableEntity
	case errors.As(err, &contentLoad):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
