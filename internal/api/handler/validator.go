package handler

import (
	"github.com/projectdesk/pm-api/internal/core/domain"
)

// echoValidator lets Echo call c.Validate(req) with the shared domain
// validator, so request violations use the same VALIDATION_ERROR shape as the
// services.
type echoValidator struct{}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	return &echoValidator{}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	return domain.ValidateStruct(i)
}
