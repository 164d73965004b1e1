package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/octobees/template-finder/internal/dto"
	"github.com/octobees/template-finder/internal/entity"
	"github.com/octobees/template-finder/internal/metrics"
)

// Source identifies the strategy that produced a suggestion.
type Source string

const (
	SourceCatalog  Source = "catalog"
	SourceAISearch Source = "ai_search"
)

// Suggestion is the output of a template provider.
type Suggestion struct {
	Templates      []dto.Template
	Source         Source
	FallbackReason string
}

// Provider produces template suggestions for a company.
type Provider interface {
	Suggest(ctx context.Context, info dto.CompanyInfo) (Suggestion, error)
}

// SearchRecorder persists answered template searches.
type SearchRecorder interface {
	Record(ctx context.Context, search *entity.TemplateSearch) error
}

// TemplateService answers template searches for every transport.
type TemplateService struct {
	provider Provider
	recorder SearchRecorder
	logger   *zap.Logger
	now      func() time.Time
}

// TemplateServiceOption customises a TemplateService.
type TemplateServiceOption func(*TemplateService)

// WithSearchRecorder enables search history.
func WithSearchRecorder(r SearchRecorder) TemplateServiceOption {
	return func(s *TemplateService) { s.recorder = r }
}

// WithLogger sets the service logger.
func WithLogger(l *zap.Logger) TemplateServiceOption {
	return func(s *TemplateService) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewTemplateService creates a service backed by the given provider.
func NewTemplateService(provider Provider, opts ...TemplateServiceOption) *TemplateService {
	s := &TemplateService{
		provider: provider,
		logger:   zap.NewNop(),
		now:      time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// SearchBody validates a raw request body and searches templates for it.
func (s *TemplateService) SearchBody(ctx context.Context, body []byte) (dto.SearchResult, error) {
	info, err := DecodeCompanyInfo(body)
	if err != nil {
		return dto.SearchResult{}, err
	}
	return s.Search(ctx, info)
}

// Search returns template suggestions for a validated company profile.
func (s *TemplateService) Search(ctx context.Context, info dto.CompanyInfo) (dto.SearchResult, error) {
	suggestion, err := s.provider.Suggest(ctx, info)
	if err != nil {
		return dto.SearchResult{}, err
	}

	templates := suggestion.Templates
	if templates == nil {
		templates = []dto.Template{}
	}
	metrics.TemplateSuggestions.WithLabelValues(string(suggestion.Source)).Inc()
	s.record(ctx, info, suggestion, len(templates))

	return dto.SearchResult{Templates: templates}, nil
}

func (s *TemplateService) record(ctx context.Context, info dto.CompanyInfo, suggestion Suggestion, count int) {
	if s.recorder == nil {
		return
	}

	entry := &entity.TemplateSearch{
		ID:            uuid.New(),
		CompanyName:   info.Name,
		Industry:      info.Industry,
		Source:        string(suggestion.Source),
		TemplateCount: count,
		CreatedAt:     s.now().UTC(),
	}
	if suggestion.FallbackReason != "" {
		reason := suggestion.FallbackReason
		entry.FallbackReason = &reason
	}

	if err := s.recorder.Record(ctx, entry); err != nil {
		s.logger.Warn("failed to record template search", zap.Error(err), zap.String("search_id", entry.ID.String()))
	}
}
