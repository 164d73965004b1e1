package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/template-finder/internal/transport"
)

// CORS sets the allowed origin on every response. OPTIONS requests also get
// the allowed methods and headers; the route handler writes the status.
func CORS(policy transport.Policy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			policy.SetCORS(c.Response().Header(), c.Request().Method == http.MethodOptions)
			return next(c)
		}
	}
}
