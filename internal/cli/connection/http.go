// Package connection sends HashREST requests for hashrest-cli.
package connection

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/yndnr/hashrest-go/internal/cli/config"
	"github.com/yndnr/hashrest-go/internal/core/domain"
	"github.com/yndnr/hashrest-go/internal/infra/buildinfo"
	"github.com/yndnr/hashrest-go/internal/telemetry/logger"
)

// RequestIDHeader carries a per-request ULID.
const RequestIDHeader = "X-Request-ID"

// DefaultMaxBodySize caps how much of a response body is kept.
const DefaultMaxBodySize = 1 << 20

// HTTPClient sends HashREST requests to one server.
type HTTPClient struct {
	baseURL   string
	header    string
	userAgent string
	client    *http.Client
	maxBody   int64
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithHeader sets the name of the proof-of-work header.
func WithHeader(name string) Option {
	return func(c *HTTPClient) {
		if name != "" {
			c.header = name
		}
	}
}

// WithTimeout sets the per-request timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		c.client.Timeout = d
	}
}

// WithTLSConfig sets the TLS configuration for https servers. A nil cfg
// keeps the default transport.
func WithTLSConfig(cfg *tls.Config) Option {
	return func(c *HTTPClient) {
		if cfg == nil {
			return
		}
		tr := http.DefaultTransport.(*http.Transport).Clone()
		tr.TLSClientConfig = cfg
		c.client.Transport = tr
	}
}

// WithMaxBodySize sets how many bytes of a response body are kept.
func WithMaxBodySize(n int64) Option {
	return func(c *HTTPClient) {
		if n > 0 {
			c.maxBody = n
		}
	}
}

// NewHTTPClient creates a client for server. A missing scheme defaults to http.
func NewHTTPClient(server string, opts ...Option) (*HTTPClient, error) {
	baseURL, err := config.NormalizeServer(server)
	if err != nil {
		return nil, domain.ErrInvalidConfig.WithDetails(err.Error()).WithCause(err)
	}

	c := &HTTPClient{
		baseURL:   baseURL,
		header:    config.DefaultHeader,
		userAgent: buildinfo.UserAgent(),
		client:    &http.Client{Timeout: config.DefaultTimeout},
		maxBody:   DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized server URL.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// Header returns the proof-of-work header name.
func (c *HTTPClient) Header() string {
	return c.header
}

// Target returns the absolute URL a token for ep must be bound to.
func (c *HTTPClient) Target(ep domain.Endpoint) (string, error) {
	return ep.URL(c.baseURL)
}

// Response is the outcome of a HashREST call.
type Response struct {
	URL        string        `json:"url" yaml:"url"`
	Method     string        `json:"method" yaml:"method"`
	Status     int           `json:"status" yaml:"status"`
	StatusText string        `json:"status_text" yaml:"status_text"`
	Body       string        `json:"body" yaml:"body"`
	RequestID  string        `json:"request_id" yaml:"request_id"`
	Elapsed    time.Duration `json:"elapsed" yaml:"elapsed"`
}

// OK reports whether the server accepted the request (2xx).
func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// Err returns ErrRejected for a non-2xx response, nil otherwise.
func (r *Response) Err() error {
	if r.OK() {
		return nil
	}
	return domain.ErrRejected.WithDetails(fmt.Sprintf("%s %s: %d %s", r.Method, r.URL, r.Status, r.Body))
}

// CallOption customizes a single call.
type CallOption func(*callOptions)

type callOptions struct {
	body        []byte
	contentType string
}

// WithBody sends data as the request body.
func WithBody(data []byte, contentType string) CallOption {
	return func(o *callOptions) {
		o.body = data
		o.contentType = contentType
	}
}

// Call sends ep's request carrying token in the proof-of-work header.
// Non-2xx responses are returned without error; see Response.Err.
//
// The X-Request-ID header carries the request ID stored in ctx by
// logger.WithRequestID, or a fresh ULID. Diagnostics go to logger.L(ctx).
func (c *HTTPClient) Call(ctx context.Context, ep domain.Endpoint, token string, opts ...CallOption) (*Response, error) {
	var co callOptions
	for _, opt := range opts {
		opt(&co)
	}

	target, err := c.Target(ep)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if co.body != nil {
		body = bytes.NewReader(co.body)
	}

	req, err := http.NewRequestWithContext(ctx, ep.Method, target, body)
	if err != nil {
		return nil, domain.ErrTransport.WithDetails("create request").WithCause(err)
	}

	requestID := logger.RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = NewRequestID()
		ctx = logger.WithRequestID(ctx, requestID)
	}
	req.Header.Set(c.header, token)
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("User-Agent", c.userAgent)
	if co.contentType != "" {
		req.Header.Set("Content-Type", co.contentType)
	}

	log := logger.L(ctx).With("method", ep.Method, "url", logger.RedactURL(target))
	log.Debug("sending request", "token", logger.RedactURL(token))

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		log.Warn("request failed", "error", err)
		return nil, domain.ErrTransport.WithDetails(fmt.Sprintf("%s %s", ep.Method, logger.RedactURL(target))).WithCause(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody))
	if err != nil {
		return nil, domain.ErrTransport.WithDetails("read response").WithCause(err)
	}

	out := &Response{
		URL:        target,
		Method:     ep.Method,
		Status:     resp.StatusCode,
		StatusText: http.StatusText(resp.StatusCode),
		Body:       string(data),
		RequestID:  requestID,
		Elapsed:    time.Since(start),
	}
	log.Debug("response received", "status", out.Status, "elapsed", out.Elapsed)
	return out, nil
}

// NewRequestID returns a new ULID request ID.
func NewRequestID() string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}
