package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/octobees/template-finder/internal/transport"
)

// RequestID tags the request with a normalised id, echoes it back in the
// response header and makes it available to handlers through both the echo
// context and the request context.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			rid := transport.RequestID(req.Header.Get(transport.HeaderRequestID))

			c.Set(ContextKeyRequestID, rid)
			c.SetRequest(req.WithContext(transport.WithRequestID(req.Context(), rid)))
			c.Response().Header().Set(transport.HeaderRequestID, rid)

			return next(c)
		}
	}
}

// RequestIDFromContext extracts the request identifier if available.
func RequestIDFromContext(c echo.Context) string {
	if val, ok := c.Get(ContextKeyRequestID).(string); ok {
		return val
	}
	return transport.RequestIDFrom(c.Request().Context())
}
