package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/octobees/template-finder/internal/config"
	"github.com/octobees/template-finder/internal/dto"
	"github.com/octobees/template-finder/internal/service"
	"github.com/octobees/template-finder/internal/transport"
)

func testConfig(transportName, provider string) *config.Config {
	return &config.Config{
		Transport: transportName,
		Provider:  provider,
		OpenAI:    config.OpenAIConfig{Model: "gpt-4o", SearchContextSize: "medium"},
		CORS:      config.CORSConfig{AllowOrigin: "*", AllowMethods: "POST, OPTIONS", AllowHeaders: "Content-Type"},
	}
}

func TestBuildProvider(t *testing.T) {
	info := dto.CompanyInfo{Name: "Acme", Industry: "bakery"}

	static := buildProvider(testConfig(config.TransportEcho, config.ProviderStatic), zap.NewNop())
	_, ok := static.(*service.StaticCatalog)
	assert.True(t, ok, "static provider should be the catalog")

	ai := buildProvider(testConfig(config.TransportEcho, config.ProviderAI), zap.NewNop())
	_, ok = ai.(*service.FallbackProvider)
	require.True(t, ok, "ai provider should be guarded by the fallback")

	got, err := ai.Suggest(context.Background(), info)
	require.NoError(t, err)
	assert.Equal(t, service.SourceCatalog, got.Source)
	assert.Equal(t, service.ReasonMissingCredential, got.FallbackReason)
}

func TestNewHTTPHandler_AllTransports(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for _, name := range []string{config.TransportEcho, config.TransportChi, config.TransportGin} {
		t.Run(name, func(t *testing.T) {
			cfg := testConfig(name, config.ProviderStatic)
			svc := service.NewTemplateService(buildProvider(cfg, zap.NewNop()))
			h := newHTTPHandler(cfg, svc, zap.NewNop())

			req := httptest.NewRequest(http.MethodPost, transport.SearchTemplatesPath, strings.NewReader(`{"name":"Acme","industry":"bakery"}`))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), `"templates"`)
			assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

			req = httptest.NewRequest(http.MethodOptions, transport.SearchTemplatesPath, nil)
			rec = httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))

			req = httptest.NewRequest(http.MethodPost, transport.SearchTemplatesPath, strings.NewReader(`{"industry":"bakery"}`))
			rec = httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}
