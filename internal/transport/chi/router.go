// Package chitransport serves the template search API on a chi router.
package chitransport

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/octobees/template-finder/internal/dto"
	"github.com/octobees/template-finder/internal/metrics"
	"github.com/octobees/template-finder/internal/transport"
)

// Options configures the chi router.
type Options struct {
	Policy         transport.Policy
	Logger         *zap.Logger
	MetricsEnabled bool
}

// NewRouter mounts the search endpoint and its supporting routes.
func NewRouter(svc transport.Searcher, opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &handler{service: svc, policy: opts.Policy, logger: logger}

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(requestLogger(logger))
	router.Use(chimw.Recoverer)
	router.Use(cors(opts.Policy))

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
	})

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if opts.MetricsEnabled {
		router.Handle("/metrics", promhttp.Handler())
	}

	router.Post(transport.SearchTemplatesPath, h.search)
	router.Options(transport.SearchTemplatesPath, h.preflight)

	return router
}

type handler struct {
	service transport.Searcher
	policy  transport.Policy
	logger  *zap.Logger
}

func (h *handler) search(w http.ResponseWriter, r *http.Request) {
	body, err := transport.ReadBody(r.Body)
	if err != nil {
		writeError(w, h.policy.StatusFor(err), err.Error())
		return
	}

	result, err := h.service.SearchBody(r.Context(), body)
	if err != nil {
		status := h.policy.StatusFor(err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("template search failed", zap.Error(err), zap.String("request_id", chimw.GetReqID(r.Context())))
		}
		writeError(w, status, transport.ErrorMessage(err))
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *handler) preflight(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// cors writes the CORS headers before routing so error responses carry them too.
func cors(policy transport.Policy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			policy.SetCORS(w.Header(), r.Method == http.MethodOptions)
			next.ServeHTTP(w, r)
		})
	}
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			metrics.HTTPRequests.WithLabelValues("chi", r.Method, route, strconv.Itoa(status)).Inc()

			logger.Info("http request",
				zap.String("request_id", chimw.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", status),
				zap.Duration("latency", time.Since(start)),
			)
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, dto.ErrorResponse{Error: message})
}
