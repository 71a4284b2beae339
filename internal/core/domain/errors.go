package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation           = errors.New("validation failed")
	ErrNoTargetSelected     = errors.New("no user selected for update")
	ErrTransport            = errors.New("remote api unreachable")
	ErrLoginRejected        = errors.New("login rejected")
	ErrRegistrationRejected = errors.New("registration rejected")
	ErrSubmissionInFlight   = errors.New("submission already in progress")
	ErrSessionNotFound      = errors.New("session not found")
	ErrUpdateFailed         = errors.New("failed to update user")
)

// APIError is a non-success answer from the remote service.
// Payload holds the raw response body when the service sent one.
type APIError struct {
	StatusCode int
	Message    string
	Payload    []byte
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("remote api: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("remote api: status %d", e.StatusCode)
}

// RejectedError is a well-formed answer in which the remote service declined
// the request (login with success=false, registration with status!=200).
type RejectedError struct {
	Kind    error
	Message string
}

func (e *RejectedError) Error() string { return e.Message }

func (e *RejectedError) Unwrap() error { return e.Kind }

// UpdateError is returned by the store when the remote update fails.
// Message is the server's message when it sent one; Payload is the raw body.
type UpdateError struct {
	Message string
	Payload []byte
	Cause   error
}

func (e *UpdateError) Error() string { return e.Message }

func (e *UpdateError) Unwrap() []error { return []error{ErrUpdateFailed, e.Cause} }
