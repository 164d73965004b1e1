package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/octobees/template-finder/internal/transport"
)

// TemplatesHandler exposes the template search endpoint.
type TemplatesHandler struct {
	service transport.Searcher
	policy  transport.Policy
	logger  *zap.Logger
}

// NewTemplatesHandler wires the handler.
func NewTemplatesHandler(svc transport.Searcher, policy transport.Policy, logger *zap.Logger) *TemplatesHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TemplatesHandler{service: svc, policy: policy, logger: logger}
}

// Search validates the company profile and returns suggested templates.
func (h *TemplatesHandler) Search(c echo.Context) error {
	body, err := transport.ReadBody(c.Request().Body)
	if err != nil {
		return Error(c, h.policy.StatusFor(err), err.Error())
	}

	result, err := h.service.SearchBody(c.Request().Context(), body)
	if err != nil {
		status := h.policy.StatusFor(err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("template search failed",
				zap.Error(err),
				zap.String("request_id", transport.RequestIDFrom(c.Request().Context())),
			)
		}
		return Error(c, status, transport.ErrorMessage(err))
	}

	return Success(c, http.StatusOK, result)
}

// Preflight answers CORS pre-flight requests with 200 and no body. Headers are set by the CORS middleware.
func (h *TemplatesHandler) Preflight(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}
