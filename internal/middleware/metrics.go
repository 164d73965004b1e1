package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/octobees/template-finder/internal/metrics"
)

// Metrics counts served requests by route and status.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			metrics.HTTPRequests.WithLabelValues("echo", c.Request().Method, route, strconv.Itoa(c.Response().Status)).Inc()
			return err
		}
	}
}
