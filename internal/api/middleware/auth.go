package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/projectdesk/pm-api/internal/api/handler"
	"github.com/projectdesk/pm-api/internal/core/domain"
)

// BlockedChecker reports whether the account behind a token has been blocked.
// ports.UserService satisfies it.
type BlockedChecker interface {
	IsUserBlocked(ctx context.Context, email string) (*domain.UserView, error)
}

// Auth validates the JWT, rejects blocked accounts and injects the email and
// role claims into the context.
func Auth(jwtSecret string, users BlockedChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				return []byte(jwtSecret), nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			email, _ := claims["email"].(string)
			if email == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			if users != nil {
				blocked, err := users.IsUserBlocked(c.Request().Context(), email)
				if err != nil {
					return err
				}
				if blocked != nil {
					return domain.ErrUserBlocked
				}
			}

			c.Set(handler.CtxEmail, email)
			c.Set(handler.CtxRole, claims["role"])

			return next(c)
		}
	}
}
