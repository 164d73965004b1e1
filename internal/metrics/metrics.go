package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TemplateSuggestions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "template_suggestions_total",
			Help: "Total number of template suggestion responses by source",
		},
		[]string{"source"},
	)

	ProviderFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "template_provider_fallbacks_total",
			Help: "Total number of AI search failures absorbed by the static catalog",
		},
		[]string{"reason"},
	)

	ProviderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "template_provider_duration_seconds",
			Help:    "Duration of template provider calls in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"provider"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests served",
		},
		[]string{"transport", "method", "route", "status"},
	)
)
