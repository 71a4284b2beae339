package handler

import (
	"errors"
	"net/http"

	"github.com/99minutos/admin-console/internal/core/domain"
	"github.com/99minutos/admin-console/internal/core/validation"
)

// ErrorStatus maps a service error to an HTTP status and a message fit to
// show an operator. ok is false for errors with no known mapping.
func ErrorStatus(err error) (status int, msg string, ok bool) {
	var verr *validation.Error
	var rejected *domain.RejectedError
	var updErr *domain.UpdateError
	var apiErr *domain.APIError

	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity, "validation failed", true
	case errors.Is(err, domain.ErrNoTargetSelected):
		return http.StatusNotFound, "user not found", true
	case errors.Is(err, domain.ErrSubmissionInFlight):
		return http.StatusConflict, "a submission for this email is already in progress", true
	case errors.As(err, &rejected) && errors.Is(err, domain.ErrLoginRejected):
		return http.StatusUnauthorized, rejected.Message, true
	case errors.As(err, &rejected):
		return http.StatusBadRequest, rejected.Message, true
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusUnauthorized, "not signed in", true
	case errors.As(err, &updErr):
		return http.StatusBadGateway, updErr.Message, true
	case errors.As(err, &apiErr):
		if apiErr.Message != "" {
			return http.StatusBadGateway, apiErr.Message, true
		}
		return http.StatusBadGateway, "remote service error", true
	case errors.Is(err, domain.ErrTransport):
		return http.StatusBadGateway, "remote service unavailable", true
	}
	return http.StatusInternalServerError, "internal server error", false
}

// FieldErrors returns the per-field messages of a validation failure.
func FieldErrors(err error) map[string]string {
	var verr *validation.Error
	if errors.As(err, &verr) {
		return verr.Messages()
	}
	return nil
}
