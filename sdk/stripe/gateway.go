package stripe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the live API endpoint.
	DefaultBaseURL = "https://api.stripe.com/v1"
	// DefaultTimeout bounds a single call, including reading the response.
	DefaultTimeout = 60 * time.Second
	// DefaultUserAgent identifies this client to the API.
	DefaultUserAgent = "stripegate go v1"
	// USDCurrency is the default currency.
	USDCurrency = "usd"

	// Maximum response body read from the API (8MB)
	maxResponseSize = 8 << 20

	contentTypeForm = "application/x-www-form-urlencoded"
	contentTypeJSON = "application/json"
)

// Doer sends an HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Caller performs one call for a routable request and decodes the success
// body into out. *Gateway is the production implementation.
type Caller interface {
	Do(ctx context.Context, method string, req Routable, out any) error
}

// Credentials are sent as HTTP Basic auth on every request.
type Credentials struct {
	Username string
	Password string
}

// Gateway is safe for concurrent use; it is never mutated after New.
type Gateway struct {
	baseURL        string
	publishableKey string
	currency       string
	userAgent      string
	timeout        time.Duration
	credentials    Credentials
	encoding       Encoding
	client         Doer
	logger         *slog.Logger
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithBaseURL points the gateway at another endpoint, e.g. a local fake.
func WithBaseURL(u string) Option {
	return func(g *Gateway) {
		g.baseURL = strings.TrimSuffix(u, "/")
	}
}

// WithHTTPClient replaces the transport.
func WithHTTPClient(c Doer) Option {
	return func(g *Gateway) {
		g.client = c
	}
}

// WithTimeout sets the per-call deadline.
func WithTimeout(d time.Duration) Option {
	return func(g *Gateway) {
		g.timeout = d
	}
}

// WithCurrency sets the default currency reported by Currency.
func WithCurrency(currency string) Option {
	return func(g *Gateway) {
		g.currency = currency
	}
}

// WithPublishableKey records the publishable key. Server calls never use it.
func WithPublishableKey(key string) Option {
	return func(g *Gateway) {
		g.publishableKey = key
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(g *Gateway) {
		g.userAgent = ua
	}
}

// WithCredentials overrides the Basic auth pair derived from the API key.
func WithCredentials(c Credentials) Option {
	return func(g *Gateway) {
		g.credentials = c
	}
}

// WithEncoding sets the serialization configuration used for every call.
func WithEncoding(e Encoding) Option {
	return func(g *Gateway) {
		g.encoding = e
	}
}

// WithLogger sets the logger. Calls are logged at debug level, API errors at warn.
func WithLogger(l *slog.Logger) Option {
	return func(g *Gateway) {
		if l != nil {
			g.logger = l
		}
	}
}

// New creates a Gateway authenticating with the secret apiKey.
func New(apiKey string, opts ...Option) *Gateway {
	g := &Gateway{
		baseURL:     DefaultBaseURL,
		currency:    USDCurrency,
		userAgent:   DefaultUserAgent,
		timeout:     DefaultTimeout,
		credentials: Credentials{Username: apiKey},
		encoding:    DefaultEncoding(),
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.client == nil {
		g.client = &http.Client{}
	}
	return g
}

// BaseURL returns the endpoint requests are sent to.
func (g *Gateway) BaseURL() string { return g.baseURL }

// Currency returns the default currency.
func (g *Gateway) Currency() string { return g.currency }

// PublishableKey returns the publishable key, if one was configured.
func (g *Gateway) PublishableKey() string { return g.publishableKey }

// Timeout returns the per-call deadline.
func (g *Gateway) Timeout() time.Duration { return g.timeout }

// Do performs exactly one HTTP call for req using method.
//
// The success body is decoded into out (which may be nil). A 4xx response
// yields *Error, any other non-2xx response *StatusError. Errors from the
// transport are returned as they are.
func (g *Gateway) Do(ctx context.Context, method string, req Routable, out any) error {
	path, err := resolvePath(req.Route().Path, req)
	if err != nil {
		return err
	}
	encoded, err := g.encoding.Encode(req)
	if err != nil {
		return err
	}

	target := g.baseURL + path
	var body io.Reader
	if sendsBody(method) {
		body = strings.NewReader(encoded)
	} else if encoded != "" {
		target += "?" + encoded
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Accept", contentTypeJSON)
	httpReq.Header.Set("User-Agent", g.userAgent)
	if body != nil {
		httpReq.Header.Set("Content-Type", contentTypeForm)
	}
	// Credentials go out with the first request rather than after a 401 challenge.
	httpReq.SetBasicAuth(g.credentials.Username, g.credentials.Password)

	start := time.Now()
	resp, err := g.client.Do(httpReq)
	if err != nil {
		g.logger.Debug("stripe request failed",
			"method", method,
			"path", path,
			"duration", time.Since(start),
			"error", err,
		)
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return err
	}

	g.logger.Debug("stripe request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	err = decodeResponse(resp.StatusCode, data, out)
	var apiErr *Error
	if errors.As(err, &apiErr) {
		g.logger.Warn("stripe api error",
			"method", method,
			"path", path,
			"status", apiErr.HTTPStatusCode,
			"type", apiErr.Type,
			"code", apiErr.Code,
			"param", apiErr.Param,
		)
	}
	return err
}

func decodeResponse(status int, data []byte, out any) error {
	switch {
	case status >= 200 && status < 300:
		if out == nil || len(bytes.TrimSpace(data)) == 0 {
			return nil
		}
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil

	case status >= 400 && status < 500:
		var envelope errorEnvelope
		if err := json.Unmarshal(data, &envelope); err != nil {
			return fmt.Errorf("decode error response (status %d): %w", status, err)
		}
		apiErr := envelope.Error
		if apiErr == nil {
			apiErr = &Error{Message: http.StatusText(status)}
		}
		apiErr.HTTPStatusCode = status
		return apiErr

	default:
		return &StatusError{StatusCode: status, Body: data}
	}
}

// Send performs req with the method its Route declares.
func Send[T any](ctx context.Context, c Caller, req Request[T]) (*T, error) {
	return SendMethod(ctx, c, req, req.Route().Method)
}

// SendMethod performs req with an explicit method, overriding its Route.
// POST and PUT carry a form body; other methods encode into the query string.
func SendMethod[T any](ctx context.Context, c Caller, req Request[T], method string) (*T, error) {
	out := new(T)
	if err := c.Do(ctx, method, req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get performs req as a GET.
func Get[T any](ctx context.Context, c Caller, req Request[T]) (*T, error) {
	return SendMethod(ctx, c, req, http.MethodGet)
}

// Post performs req as a POST with a form body.
func Post[T any](ctx context.Context, c Caller, req Request[T]) (*T, error) {
	return SendMethod(ctx, c, req, http.MethodPost)
}

// Put performs req as a PUT with a form body.
func Put[T any](ctx context.Context, c Caller, req Request[T]) (*T, error) {
	return SendMethod(ctx, c, req, http.MethodPut)
}

// Delete performs req as a DELETE.
func Delete[T any](ctx context.Context, c Caller, req Request[T]) (*T, error) {
	return SendMethod(ctx, c, req, http.MethodDelete)
}
