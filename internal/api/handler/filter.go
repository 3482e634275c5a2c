package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/projectdesk/pm-api/internal/core/domain"
)

// queryFilter turns the query string into an equality filter. Only the first
// value of a repeated parameter is used.
func queryFilter(c echo.Context) domain.Filter {
	params := c.QueryParams()
	f := make(domain.Filter, len(params))
	for k, vs := range params {
		if len(vs) > 0 {
			f[k] = vs[0]
		}
	}
	return f
}
