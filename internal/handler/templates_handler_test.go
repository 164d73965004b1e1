package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/octobees/template-finder/internal/dto"
	"github.com/octobees/template-finder/internal/service"
	"github.com/octobees/template-finder/internal/transport"
)

type searcherStub struct {
	result dto.SearchResult
	err    error
	body   []byte
}

func (s *searcherStub) SearchBody(ctx context.Context, body []byte) (dto.SearchResult, error) {
	s.body = body
	return s.result, s.err
}

func newSearchContext(body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, transport.SearchTemplatesPath, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestTemplatesHandler_Search(t *testing.T) {
	svc := service.NewTemplateService(service.NewStaticCatalog())
	handler := NewTemplatesHandler(svc, transport.NewPolicy(nil), nil)
	c, rec := newSearchContext(`{"name":"Acme","industry":"bakery","target_audience":"local families"}`)

	if err := handler.Search(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var payload dto.SearchResult
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(payload.Templates) != 3 {
		t.Fatalf("expected 3 templates, got %d", len(payload.Templates))
	}
	if payload.Templates[0].Description != "Perfect for bakery companies targeting local families" {
		t.Fatalf("unexpected description: %q", payload.Templates[0].Description)
	}
}

func TestTemplatesHandler_InvalidInput(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		policy     transport.Policy
		wantStatus int
	}{
		{name: "missing industry", body: `{"name":"Acme"}`, policy: transport.NewPolicy(nil), wantStatus: http.StatusBadRequest},
		{name: "not json", body: `not json`, policy: transport.NewPolicy(nil), wantStatus: http.StatusBadRequest},
		{name: "empty body", body: ``, policy: transport.NewPolicy(nil), wantStatus: http.StatusBadRequest},
		{name: "legacy status", body: `{"industry":"bakery"}`, policy: transport.Policy{InputErrorStatus: http.StatusInternalServerError}, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewTemplatesHandler(service.NewTemplateService(service.NewStaticCatalog()), tt.policy, nil)
			c, rec := newSearchContext(tt.body)

			if err := handler.Search(c); err != nil {
				t.Fatalf("expected handler to write response, got %v", err)
			}
			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}

			var payload dto.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if payload.Error == "" {
				t.Fatalf("expected error message in response")
			}
		})
	}
}

func TestTemplatesHandler_ServiceError(t *testing.T) {
	stub := &searcherStub{err: errors.New("fallback provider: catalog unavailable")}
	handler := NewTemplatesHandler(stub, transport.NewPolicy(nil), nil)
	c, rec := newSearchContext(`{"name":"Acme","industry":"bakery"}`)

	if err := handler.Search(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if string(stub.body) != `{"name":"Acme","industry":"bakery"}` {
		t.Fatalf("expected raw body to reach the service, got %q", stub.body)
	}
	if !strings.Contains(rec.Body.String(), "catalog unavailable") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestTemplatesHandler_Preflight(t *testing.T) {
	handler := NewTemplatesHandler(&searcherStub{}, transport.NewPolicy(nil), nil)
	e := echo.New()
	req := httptest.NewRequest(http.MethodOptions, transport.SearchTemplatesPath, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Preflight(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", rec.Body.String())
	}
}

func TestHealth(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	if err := Health(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Fatalf("unexpected response: %d %s", rec.Code, rec.Body.String())
	}
}
