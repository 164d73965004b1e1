// Package gintransport serves the template search API on a gin engine.
package gintransport

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/octobees/template-finder/internal/dto"
	"github.com/octobees/template-finder/internal/metrics"
	"github.com/octobees/template-finder/internal/transport"
)

const ginKeyRequestID = "request_id"

// Options configures the gin engine.
type Options struct {
	Policy         transport.Policy
	Logger         *zap.Logger
	MetricsEnabled bool
}

// NewEngine mounts the search endpoint and its supporting routes.
func NewEngine(svc transport.Searcher, opts Options) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &handler{service: svc, policy: opts.Policy, logger: logger}

	engine := gin.New()
	engine.HandleMethodNotAllowed = true
	engine.Use(requestID(), requestLogger(logger), gin.Recovery())
	engine.Use(secure.New(secure.Config{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))
	engine.Use(cors(opts.Policy))

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: http.StatusText(http.StatusNotFound)})
	})
	engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, dto.ErrorResponse{Error: http.StatusText(http.StatusMethodNotAllowed)})
	})

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if opts.MetricsEnabled {
		engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	engine.POST(transport.SearchTemplatesPath, h.search)
	engine.OPTIONS(transport.SearchTemplatesPath, h.preflight)

	return engine
}

type handler struct {
	service transport.Searcher
	policy  transport.Policy
	logger  *zap.Logger
}

func (h *handler) search(c *gin.Context) {
	body, err := transport.ReadBody(c.Request.Body)
	if err != nil {
		c.JSON(h.policy.StatusFor(err), dto.ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.service.SearchBody(c.Request.Context(), body)
	if err != nil {
		status := h.policy.StatusFor(err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("template search failed", zap.Error(err), zap.String("request_id", c.GetString(ginKeyRequestID)))
		}
		c.JSON(status, dto.ErrorResponse{Error: transport.ErrorMessage(err)})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *handler) preflight(c *gin.Context) {
	c.Status(http.StatusOK)
}

func cors(policy transport.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		policy.SetCORS(c.Writer.Header(), c.Request.Method == http.MethodOptions)
		c.Next()
	}
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := transport.RequestID(c.GetHeader(transport.HeaderRequestID))
		c.Set(ginKeyRequestID, rid)
		c.Request = c.Request.WithContext(transport.WithRequestID(c.Request.Context(), rid))
		c.Header(transport.HeaderRequestID, rid)
		c.Next()
	}
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		metrics.HTTPRequests.WithLabelValues("gin", c.Request.Method, route, strconv.Itoa(status)).Inc()

		logger.Info("http request",
			zap.String("request_id", c.GetString(ginKeyRequestID)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
