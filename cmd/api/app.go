package main

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/octobees/template-finder/internal/config"
	"github.com/octobees/template-finder/internal/openai"
	"github.com/octobees/template-finder/internal/router"
	"github.com/octobees/template-finder/internal/service"
	"github.com/octobees/template-finder/internal/transport"
	chitransport "github.com/octobees/template-finder/internal/transport/chi"
	gintransport "github.com/octobees/template-finder/internal/transport/gin"
)

const userAgent = "template-finder/1.0"

// buildProvider selects the template strategy. The AI strategy always falls
// back to the static catalog.
func buildProvider(cfg *config.Config, logger *zap.Logger) service.Provider {
	catalog := service.NewStaticCatalog()
	if !cfg.AIEnabled() {
		return catalog
	}

	if cfg.OpenAI.APIKey == "" {
		logger.Warn("OPENAI_API_KEY is not set, every search will be served from the static catalog")
	}
	client := openai.NewClient(cfg.OpenAI.APIKey,
		openai.WithBaseURL(cfg.OpenAI.BaseURL),
		openai.WithUserAgent(userAgent),
	)
	return service.NewFallbackProvider(service.NewAISearch(client, cfg.OpenAI), catalog, logger)
}

func newHTTPHandler(cfg *config.Config, svc transport.Searcher, logger *zap.Logger) http.Handler {
	policy := transport.NewPolicy(cfg)
	switch cfg.Transport {
	case config.TransportChi:
		return chitransport.NewRouter(svc, chitransport.Options{Policy: policy, Logger: logger, MetricsEnabled: cfg.MetricsEnabled})
	case config.TransportGin:
		return gintransport.NewEngine(svc, gintransport.Options{Policy: policy, Logger: logger, MetricsEnabled: cfg.MetricsEnabled})
	default:
		return router.NewEcho(cfg, svc, logger)
	}
}
