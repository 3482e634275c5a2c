package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/projectdesk/pm-api/internal/core/domain"
)

// Response is the success envelope returned by every endpoint.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// ErrorResponse is the error envelope rendered by the central error handler.
type ErrorResponse struct {
	Success bool                    `json:"success"`
	Message string                  `json:"message"`
	Code    string                  `json:"code"`
	Errors  []domain.FieldViolation `json:"errors,omitempty"`
}

func respond(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, Response{Success: true, Message: message, Data: data})
}
