// Package transport holds the HTTP behaviour shared by every router adapter.
package transport

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/octobees/template-finder/internal/config"
	"github.com/octobees/template-finder/internal/dto"
	"github.com/octobees/template-finder/internal/service"
)

// SearchTemplatesPath is the only public endpoint of the service.
const SearchTemplatesPath = "/api/search-templates"

// MaxBodyBytes caps the size of a search request body.
const MaxBodyBytes = 1 << 20

// Searcher answers raw search request bodies.
type Searcher interface {
	SearchBody(ctx context.Context, body []byte) (dto.SearchResult, error)
}

// Policy describes CORS headers and error status mapping.
type Policy struct {
	AllowOrigin      string
	AllowMethods     string
	AllowHeaders     string
	InputErrorStatus int
}

// NewPolicy derives the policy from configuration.
func NewPolicy(cfg *config.Config) Policy {
	p := Policy{
		AllowOrigin:      "*",
		AllowMethods:     "POST, OPTIONS",
		AllowHeaders:     "Content-Type",
		InputErrorStatus: http.StatusBadRequest,
	}
	if cfg == nil {
		return p
	}
	if cfg.CORS.AllowOrigin != "" {
		p.AllowOrigin = cfg.CORS.AllowOrigin
	}
	if cfg.CORS.AllowMethods != "" {
		p.AllowMethods = cfg.CORS.AllowMethods
	}
	if cfg.CORS.AllowHeaders != "" {
		p.AllowHeaders = cfg.CORS.AllowHeaders
	}
	if cfg.LegacyErrorStatus {
		p.InputErrorStatus = http.StatusInternalServerError
	}
	return p
}

// StatusFor maps a search error to an HTTP status.
func (p Policy) StatusFor(err error) int {
	if errors.Is(err, service.ErrInvalidInput) {
		if p.InputErrorStatus == 0 {
			return http.StatusBadRequest
		}
		return p.InputErrorStatus
	}
	return http.StatusInternalServerError
}

// SetCORS writes the CORS headers. Pre-flight responses also advertise methods and headers.
func (p Policy) SetCORS(h http.Header, preflight bool) {
	origin := p.AllowOrigin
	if origin == "" {
		origin = "*"
	}
	h.Set("Access-Control-Allow-Origin", origin)
	if preflight {
		h.Set("Access-Control-Allow-Methods", p.AllowMethods)
		h.Set("Access-Control-Allow-Headers", p.AllowHeaders)
	}
}

// ErrorMessage returns the message placed in the error envelope.
func ErrorMessage(err error) string {
	if err == nil {
		return http.StatusText(http.StatusInternalServerError)
	}
	return err.Error()
}

// ReadBody reads at most MaxBodyBytes from r.
func ReadBody(r io.Reader) ([]byte, error) {
	if r == nil {
		return nil, nil
	}
	body, err := io.ReadAll(io.LimitReader(r, MaxBodyBytes+1))
	if err != nil {
		return nil, &service.InputError{Msg: "could not read request body"}
	}
	if len(body) > MaxBodyBytes {
		return nil, &service.InputError{Msg: "request body too large"}
	}
	return body, nil
}
