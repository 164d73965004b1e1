package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	defaultUA      = "template-finder/1.0"
	// mirrors the request timeout of the official SDKs
	defaultTimeout = 10 * time.Minute
	maxErrorBody   = 1 << 20
)

var (
	// ErrMissingAPIKey is returned before any network call when no key is configured.
	ErrMissingAPIKey = errors.New("openai: API key is empty")
	// ErrUnauthorized indicates a 401 response.
	ErrUnauthorized = errors.New("openai: unauthorized (check API key)")
)

// APIError models an error payload returned by the API.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code"`
}

func (e *APIError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Message != "" {
		return fmt.Sprintf("openai api error: %s (status=%d)", e.Message, e.Status)
	}
	return fmt.Sprintf("openai api error (status=%d)", e.Status)
}

// ResponseCreator is implemented by clients able to create model responses.
type ResponseCreator interface {
	CreateResponse(ctx context.Context, req ResponseRequest) (*Response, error)
}

// Client is a minimal HTTP client for the OpenAI Responses API.
type Client struct {
	apiKey  string
	baseURL string
	ua      string
	http    *http.Client
}

// Option configures the Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u = strings.TrimSpace(u); u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.ua = ua }
}

// NewClient constructs a Client with sane defaults.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: DefaultBaseURL,
		ua:      defaultUA,
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// CreateResponse calls POST /responses once; there is no retry.
func (c *Client) CreateResponse(ctx context.Context, req ResponseRequest) (*Response, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/responses", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create openai request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("User-Agent", c.ua)

	res, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("openai request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, decodeAPIError(res)
	}

	var out Response
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("could not decode openai response: %w", err)
	}
	return &out, nil
}

func decodeAPIError(res *http.Response) error {
	if res.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}

	b, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
	var payload struct {
		Error *APIError `json:"error"`
	}
	if err := json.Unmarshal(b, &payload); err == nil && payload.Error != nil {
		payload.Error.Status = res.StatusCode
		return payload.Error
	}
	return &APIError{Status: res.StatusCode, Message: strings.TrimSpace(string(b))}
}

var _ ResponseCreator = (*Client)(nil)
