package handler

import (
	"github.com/99minutos/admin-console/internal/core/validation"
)

// echoValidator lets Echo call c.Validate(req) with the shared rule set, so
// handlers and services reject input with the same messages.
type echoValidator struct {
	v *validation.Validator
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator(v *validation.Validator) *echoValidator {
	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	return ev.v.Validate(i)
}
