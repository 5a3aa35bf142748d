// Package backend implements the typed REST client for the marketplace
// backend. It is the single place where requests are built: bearer-token
// injection and the global 401 handling are installed once, at construction,
// on the underlying resty client.
package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/fixer-market/fixer-web/internal/core/domain"
	"github.com/fixer-market/fixer-web/internal/metrics"
)

type tokenKey struct{}

// WithToken returns a context carrying the caller's bearer token. The session
// middleware attaches it once per request; every outgoing backend call made
// under that context is authenticated automatically.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext retrieves the bearer token, or "" when anonymous.
func TokenFromContext(ctx context.Context) string {
	if tok, ok := ctx.Value(tokenKey{}).(string); ok {
		return tok
	}
	return ""
}

// Options configures the backend client.
type Options struct {
	// BaseURL is the backend origin, e.g. http://localhost:9090.
	BaseURL string
	// Timeout bounds every request. Defaults to 30s.
	Timeout time.Duration
}

// Client is the typed HTTP client for the /api surface. All resource APIs
// (auth, publications, cart, messages, recommendations) hang off it.
type Client struct {
	r   *resty.Client
	log zerolog.Logger
}

// New builds the client and installs the two process-wide interceptors:
// a request hook that attaches the stored bearer token, and a response hook
// that converts HTTP 401 into domain.ErrUnauthorized so the web layer can
// clear the session and redirect to login.
func New(opts Options, log zerolog.Logger) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	r := resty.New().
		SetBaseURL(strings.TrimRight(opts.BaseURL, "/")).
		SetTimeout(opts.Timeout).
		SetHeader("Accept", "application/json")

	r.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if tok := TokenFromContext(req.Context()); tok != "" {
			req.SetAuthToken(tok)
		}
		return nil
	})

	r.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		metrics.BackendRequestDuration.WithLabelValues(resp.Request.Method).Observe(resp.Time().Seconds())
		if resp.StatusCode() == http.StatusUnauthorized {
			return domain.ErrUnauthorized
		}
		return nil
	})

	return &Client{r: r, log: log}
}

// check converts a resty outcome into the domain error taxonomy:
// transport failure, timeout, 401, or a structured HTTP error whose body
// message is surfaced verbatim.
func (c *Client) check(resp *resty.Response, err error) error {
	method := "unknown"
	if resp != nil && resp.Request != nil {
		method = resp.Request.Method
	}

	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnauthorized):
			metrics.BackendRequestsTotal.WithLabelValues(method, "unauthorized").Inc()
			return domain.ErrUnauthorized
		case isTimeout(err):
			metrics.BackendRequestsTotal.WithLabelValues(method, "timeout").Inc()
			return domain.ErrBackendTimeout
		default:
			metrics.BackendRequestsTotal.WithLabelValues(method, "unreachable").Inc()
			c.log.Warn().Err(err).Str("method", method).Msg("backend unreachable")
			return fmt.Errorf("%w: %v", domain.ErrBackendUnreachable, err)
		}
	}

	if resp.IsError() {
		metrics.BackendRequestsTotal.WithLabelValues(method, "error").Inc()
		return &domain.APIError{Status: resp.StatusCode(), Message: errorMessage(resp.Body())}
	}

	metrics.BackendRequestsTotal.WithLabelValues(method, "ok").Inc()
	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// errorMessage extracts the backend's error text: a structured body's
// "message" or "error" field when present, else the raw body.
func errorMessage(body []byte) string {
	var structured struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &structured); err == nil {
		if structured.Message != "" {
			return structured.Message
		}
		if structured.Error != "" {
			return structured.Error
		}
	}

	// Plain-string bodies are also used by the backend for some errors.
	var plain string
	if err := json.Unmarshal(body, &plain); err == nil && plain != "" {
		return plain
	}
	return strings.TrimSpace(string(body))
}
