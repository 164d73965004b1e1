package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/octobees/template-finder/internal/dto"
	"github.com/octobees/template-finder/internal/metrics"
	"github.com/octobees/template-finder/internal/openai"
)

// Reasons reported when the primary provider is replaced by the fallback.
const (
	ReasonMissingCredential = "missing_credential"
	ReasonProviderError     = "provider_error"
	ReasonMalformedResponse = "malformed_response"
	ReasonEmptyResult       = "empty_result"
	ReasonPanic             = "panic"
)

type panicError struct {
	value any
}

func (e *panicError) Error() string {
	return fmt.Sprintf("provider panicked: %v", e.value)
}

// FallbackProvider tries the primary provider and serves the fallback on any failure.
type FallbackProvider struct {
	primary  Provider
	fallback Provider
	label    string
	logger   *zap.Logger
}

// sourced is implemented by providers that always answer from one source.
type sourced interface {
	Source() Source
}

const unknownProvider = "unknown"

func providerLabel(p Provider) string {
	if s, ok := p.(sourced); ok {
		return string(s.Source())
	}
	return unknownProvider
}

// NewFallbackProvider wires the decision between two strategies.
func NewFallbackProvider(primary, fallback Provider, logger *zap.Logger) *FallbackProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FallbackProvider{primary: primary, fallback: fallback, label: providerLabel(primary), logger: logger}
}

// Suggest implements Provider. Errors from the primary never reach the caller.
func (p *FallbackProvider) Suggest(ctx context.Context, info dto.CompanyInfo) (Suggestion, error) {
	start := time.Now()
	suggestion, err := p.attempt(ctx, info)
	metrics.ProviderDuration.WithLabelValues(p.label).Observe(time.Since(start).Seconds())
	if err == nil {
		return suggestion, nil
	}

	reason := FallbackReason(err)
	metrics.ProviderFallbacks.WithLabelValues(reason).Inc()
	fields := []zap.Field{
		zap.String("reason", reason),
		zap.Error(err),
		zap.String("industry", info.Industry),
	}
	if reason == ReasonMissingCredential {
		p.logger.Warn("ai template search is not configured, serving static catalog", fields...)
	} else {
		p.logger.Error("ai template search failed, serving static catalog", fields...)
	}

	out, fbErr := p.fallback.Suggest(ctx, info)
	if fbErr != nil {
		return Suggestion{}, fmt.Errorf("fallback provider: %w", fbErr)
	}
	out.FallbackReason = reason
	return out, nil
}

// attempt converts every fault of the primary, panics included, into an error value.
func (p *FallbackProvider) attempt(ctx context.Context, info dto.CompanyInfo) (s Suggestion, err error) {
	defer func() {
		if r := recover(); r != nil {
			s, err = Suggestion{}, &panicError{value: r}
		}
	}()

	if p.primary == nil {
		return Suggestion{}, errors.New("primary provider not configured")
	}
	s, err = p.primary.Suggest(ctx, info)
	if err == nil && len(s.Templates) == 0 {
		err = ErrNoTemplates
	}
	return s, err
}

// FallbackReason classifies a primary provider failure.
func FallbackReason(err error) string {
	var pe *panicError
	switch {
	case errors.Is(err, ErrMissingCredential), errors.Is(err, openai.ErrMissingAPIKey):
		return ReasonMissingCredential
	case errors.Is(err, ErrMalformedResponse):
		return ReasonMalformedResponse
	case errors.Is(err, ErrNoTemplates):
		return ReasonEmptyResult
	case errors.As(err, &pe):
		return ReasonPanic
	default:
		return ReasonProviderError
	}
}

var _ Provider = (*FallbackProvider)(nil)
