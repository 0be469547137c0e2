package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"toolrent-console/internal/logger"
	"toolrent-console/internal/metrics"
)

const serviceName = "toolrent-api"

// DefaultErrorMessage is used when a failed response carries no message
const DefaultErrorMessage = "request failed"

var (
	ErrTransport         = errors.New("remote service unreachable")
	ErrMalformedResponse = errors.New("remote service returned a malformed response")
)

// Envelope is the response shape shared by every endpoint
type Envelope[T any] struct {
	Success bool     `json:"success"`
	Data    T        `json:"data"`
	Message string   `json:"message,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// Ack is the envelope of calls whose data the console does not use
type Ack = Envelope[jsonRaw]

type jsonRaw = json.RawMessage

// APIError is an application-level failure reported by the remote service,
// either through a non-2xx status or a success:false envelope.
type APIError struct {
	StatusCode int
	Message    string
	Errors     []string
}

func (e *APIError) Error() string {
	return e.Message
}

func newAPIError(status int, message string, errs []string) *APIError {
	if message == "" {
		message = DefaultErrorMessage
	}
	return &APIError{StatusCode: status, Message: message, Errors: errs}
}

// Unwrap turns a call result into its data, treating success:false as an error
func Unwrap[T any](env *Envelope[T], err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	if !env.Success {
		return zero, newAPIError(http.StatusOK, env.Message, env.Errors)
	}
	return env.Data, nil
}

// TokenSource supplies the credential attached to each request
type TokenSource interface {
	Token() string
}

type anonymous struct{}

func (anonymous) Token() string { return "" }

// Client talks to the remote rental service. It has no retries and no
// timeout of its own; callers bound calls with their context.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a client for baseURL, e.g. "http://localhost:3001/api". A nil
// tokens makes every call anonymous.
func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	if tokens == nil {
		tokens = anonymous{}
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		tokens:     tokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// endpoint is one remote operation. route is the path template used for
// logging and metrics; path is the concrete path.
type endpoint struct {
	method string
	route  string
	path   string
	query  url.Values
	body   any
}

func call[T any](ctx context.Context, c *Client, ep endpoint) (*Envelope[T], error) {
	operation := ep.method + " " + ep.route
	requestID := uuid.NewString()
	logger.ExternalServiceCall(serviceName, operation, "request_id", requestID)

	start := time.Now()
	env, status, err := doCall[T](ctx, c, ep, requestID)

	outcome := "ok"
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
		outcome = "app_error"
	case errors.Is(err, ErrTransport):
		outcome = "transport_error"
	case errors.Is(err, ErrMalformedResponse):
		outcome = "malformed"
	case err == nil && !env.Success:
		outcome = "app_error"
	}
	metrics.ObserveAPICall(ep.method, ep.route, outcome, start)
	logger.ExternalServiceResult(serviceName, operation, err, "request_id", requestID, "status", status)

	return env, err
}

func doCall[T any](ctx context.Context, c *Client, ep endpoint, requestID string) (*Envelope[T], int, error) {
	target := c.baseURL + ep.path
	if len(ep.query) > 0 {
		target += "?" + ep.query.Encode()
	}

	var body io.Reader
	if ep.body != nil {
		payload, err := json.Marshal(ep.body)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, ep.method, target, body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	var env Envelope[T]
	if err := json.Unmarshal(raw, &env); err != nil {
		if !ok {
			// Error pages are often not JSON; the status still tells the caller it failed.
			return nil, resp.StatusCode, newAPIError(resp.StatusCode, "", nil)
		}
		return nil, resp.StatusCode, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if !ok {
		return nil, resp.StatusCode, newAPIError(resp.StatusCode, env.Message, env.Errors)
	}
	return &env, resp.StatusCode, nil
}

// MessageOf returns the text to show a user for err
func MessageOf(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

func get[T any](ctx context.Context, c *Client, route, path string, query url.Values) (*Envelope[T], error) {
	return call[T](ctx, c, endpoint{method: http.MethodGet, route: route, path: path, query: query})
}

func send[T any](ctx context.Context, c *Client, method, route, path string, body any) (*Envelope[T], error) {
	return call[T](ctx, c, endpoint{method: method, route: route, path: path, body: body})
}

func idPath(format string, ids ...string) string {
	escaped := make([]any, len(ids))
	for i, id := range ids {
		escaped[i] = url.PathEscape(id)
	}
	return fmt.Sprintf(format, escaped...)
}
