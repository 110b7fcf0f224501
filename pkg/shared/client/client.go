package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Envelope is the response wrapper used by every super-admin endpoint.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Code    string          `json:"code,omitempty"`
	Data    json.RawMessage `json:"data"`
}

// TokenSource provides the bearer token attached to outbound requests. An
// empty token means the request is sent unauthenticated.
type TokenSource interface {
	Token() (string, error)
}

// StaticToken is a TokenSource for a fixed token, mainly used in tests.
type StaticToken string

func (s StaticToken) Token() (string, error) { return string(s), nil }

// Client issues authenticated JSON requests against the super-admin API and
// normalizes the success/error envelope. Transport failures and server
// failures come back as distinct error types; the caller treats both as a
// failed operation but only the latter carries a server message.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     zerolog.Logger
	limiter    *RateLimiter
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithRateLimit throttles outbound requests to limit per window, shared
// across all endpoints.
func WithRateLimit(limit int, window time.Duration) Option {
	return func(c *Client) { c.limiter = NewRateLimiter(limit, window) }
}

func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		tokens: tokens,
		logger: log.Logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Request performs one API call and returns the decoded envelope. It fails
// with an APIError when the server answered with a non-2xx status or
// success=false, and with a wrapped transport error otherwise.
func (c *Client) Request(ctx context.Context, method, path string, body any) (*Envelope, error) {
	if c.limiter != nil && !c.limiter.Allow("api") {
		return nil, fmt.Errorf("client rate limit exceeded for %s %s", method, path)
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	token, err := c.tokens.Token()
	if err != nil {
		return nil, fmt.Errorf("loading auth token: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Str("request_id", requestID).
		Msg("Calling super-admin API")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).
			Str("path", path).
			Str("request_id", requestID).
			Msg("Super-admin API transport failure")
		return nil, fmt.Errorf("calling super-admin API: %w", err)
	}
	defer resp.Body.Close()

	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, &APIError{StatusCode: resp.StatusCode}
		}
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 || !env.Success {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Code:       env.Code,
			Message:    env.Message,
		}
	}

	return &env, nil
}

// Get calls the endpoint and decodes the envelope data into out when out is
// non-nil.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	env, err := c.Request(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return decodeData(env, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	env, err := c.Request(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	return decodeData(env, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	env, err := c.Request(ctx, http.MethodPut, path, body)
	if err != nil {
		return err
	}
	return decodeData(env, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	_, err := c.Request(ctx, http.MethodDelete, path, nil)
	return err
}

func decodeData(env *Envelope, out any) error {
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decoding response data: %w", err)
	}
	return nil
}
