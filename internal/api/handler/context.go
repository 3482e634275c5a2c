package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Context keys set by middleware.Auth.
const (
	CtxEmail = "email"
	CtxRole  = "role"
)

// ctxClaims extracts the auth claims injected by the Auth middleware. An empty
// email means the middleware did not run and the request is rejected.
func ctxClaims(c echo.Context) (email, role string, err error) {
	email, _ = c.Get(CtxEmail).(string)
	role, _ = c.Get(CtxRole).(string)
	if email == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return email, role, nil
}

// ownerOr returns v, or the authenticated user's email when v is empty.
func ownerOr(c echo.Context, v string) string {
	if v != "" {
		return v
	}
	email, _, err := ctxClaims(c)
	if err != nil {
		return ""
	}
	return email
}

func bindError() error {
	return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
}
