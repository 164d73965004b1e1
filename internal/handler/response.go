package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/octobees/template-finder/internal/dto"
)

// Success sends a successful payload as-is.
func Success(c echo.Context, status int, data any) error {
	if status == 0 {
		status = http.StatusOK
	}
	return c.JSON(status, data)
}

// Error sends the {"error": message} envelope.
func Error(c echo.Context, status int, message string) error {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return c.JSON(status, dto.ErrorResponse{Error: message})
}

// ErrorHandler keeps the error envelope for errors raised by echo itself,
// such as unknown routes, unsupported methods and recovered panics.
func ErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := http.StatusText(status)

		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			switch m := he.Message.(type) {
			case string:
				message = m
			case error:
				message = m.Error()
			case nil:
				message = http.StatusText(status)
			default:
				message = fmt.Sprint(m)
			}
		}

		if status >= http.StatusInternalServerError {
			logger.Error("request failed",
				zap.Error(err),
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
			)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = Error(c, status, message)
	}
}
