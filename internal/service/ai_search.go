package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/octobees/template-finder/internal/config"
	"github.com/octobees/template-finder/internal/dto"
	"github.com/octobees/template-finder/internal/openai"
)

const (
	tracerName         = "github.com/octobees/template-finder/internal/service"
	aiTemplateBlurb    = "AI-recommended template for your business"
	defaultSearchModel = "gpt-4o"
	defaultContextSize = "medium"
)

var (
	// ErrMissingCredential signals that the AI provider has no API key configured.
	ErrMissingCredential = errors.New("openai api key not configured")
	// ErrNoTemplates signals a successful provider call that cited no templates.
	ErrNoTemplates = errors.New("no templates found in AI response")
)

var aiTemplateFeatures = []string{"Modern Design", "Mobile Responsive", "Easy Customization"}

// AISearch asks a web-search capable model for real template URLs.
type AISearch struct {
	client      openai.ResponseCreator
	apiKey      string
	model       string
	contextSize string
	tracer      trace.Tracer
}

// AISearchOption customises an AISearch.
type AISearchOption func(*AISearch)

// WithTracerProvider overrides the global tracer provider.
func WithTracerProvider(tp trace.TracerProvider) AISearchOption {
	return func(s *AISearch) {
		if tp != nil {
			s.tracer = tp.Tracer(tracerName)
		}
	}
}

// NewAISearch wires the AI provider strategy.
func NewAISearch(client openai.ResponseCreator, cfg config.OpenAIConfig, opts ...AISearchOption) *AISearch {
	s := &AISearch{
		client:      client,
		apiKey:      strings.TrimSpace(cfg.APIKey),
		model:       cfg.Model,
		contextSize: cfg.SearchContextSize,
		tracer:      otel.Tracer(tracerName),
	}
	if s.model == "" {
		s.model = defaultSearchModel
	}
	if s.contextSize == "" {
		s.contextSize = defaultContextSize
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Suggest implements Provider. Any failure is returned to the caller unchanged.
func (s *AISearch) Suggest(ctx context.Context, info dto.CompanyInfo) (Suggestion, error) {
	ctx, span := s.tracer.Start(ctx, "templates.ai_search", trace.WithAttributes(
		attribute.String("company.industry", info.Industry),
		attribute.String("openai.model", s.model),
	))
	defer span.End()

	templates, err := s.search(ctx, info)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Suggestion{}, err
	}

	span.SetAttributes(attribute.Int("templates.count", len(templates)))
	return Suggestion{Templates: templates, Source: SourceAISearch}, nil
}

func (s *AISearch) search(ctx context.Context, info dto.CompanyInfo) ([]dto.Template, error) {
	if s.apiKey == "" {
		return nil, ErrMissingCredential
	}
	if s.client == nil {
		return nil, errors.New("openai client not configured")
	}

	resp, err := s.client.CreateResponse(ctx, openai.ResponseRequest{
		Model: s.model,
		Tools: []openai.Tool{{Type: openai.ToolWebSearchPreview, SearchContextSize: s.contextSize}},
		Input: BuildSearchPrompt(info),
	})
	if err != nil {
		return nil, fmt.Errorf("create response: %w", err)
	}

	citations, err := ExtractCitations(resp)
	if err != nil {
		return nil, err
	}

	templates := make([]dto.Template, 0, len(citations))
	for _, c := range citations {
		templates = append(templates, dto.Template{
			Name:        c.Title,
			Description: aiTemplateBlurb,
			URL:         c.URL,
			Features:    append([]string(nil), aiTemplateFeatures...),
		})
	}
	if len(templates) == 0 {
		return nil, ErrNoTemplates
	}
	return templates, nil
}

// Source reports where AISearch suggestions come from.
func (s *AISearch) Source() Source { return SourceAISearch }

var _ Provider = (*AISearch)(nil)
