// Package transport is the HTTP gateway to the remote data-management
// service. It builds organization-scoped resource URLs, applies
// authentication, and turns non-success responses into *errors.APIError.
// It performs no retries; callers decide what a failure means.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agentstation/goseed/pkg/constants"
	"github.com/agentstation/goseed/pkg/errors"
	"github.com/agentstation/goseed/pkg/logging"
	"github.com/agentstation/goseed/pkg/resources"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
var DefaultHTTPTimeout = constants.DefaultHTTPTimeout

// Client provides HTTP access to the service's resource endpoints.
type Client struct {
	http      *http.Client
	auth      Authenticator
	baseURL   *url.URL
	userAgent string
	logger    *zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// New creates a transport client for the service at baseURL.
func New(baseURL string, auth Authenticator, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errors.NewValidationError("base_url", baseURL, "must be an absolute http(s) URL")
	}
	if auth == nil {
		auth = &NoAuth{}
	}
	c := &Client{
		http:      &http.Client{Timeout: DefaultHTTPTimeout},
		auth:      auth,
		baseURL:   u,
		userAgent: constants.UserAgent,
		logger:    logging.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// List enumerates a resource collection and decodes the response into out.
func (c *Client) List(ctx context.Context, kind resources.Kind, orgID int, query url.Values, out any) error {
	var body any
	if kind.ListMethod == http.MethodPost {
		body = resources.ProfileFilter{}
	}
	return c.do(ctx, kind.ListMethod, c.resourceURL(kind, orgID, 0, kind.ListSuffix, query), body, out)
}

// Create posts payload to a resource collection and decodes the created record into out.
func (c *Client) Create(ctx context.Context, kind resources.Kind, orgID int, payload, out any) error {
	return c.do(ctx, http.MethodPost, c.resourceURL(kind, orgID, 0, "", nil), payload, out)
}

// Update replaces the record id with payload and decodes the result into out.
func (c *Client) Update(ctx context.Context, kind resources.Kind, orgID int, id int, payload, out any) error {
	return c.do(ctx, http.MethodPut, c.resourceURL(kind, orgID, id, "", nil), payload, out)
}

// Delete removes the record id.
func (c *Client) Delete(ctx context.Context, kind resources.Kind, orgID int, id int) error {
	return c.do(ctx, http.MethodDelete, c.resourceURL(kind, orgID, id, "", nil), nil, nil)
}

// do performs one request and decodes a success response into out when out is non-nil.
func (c *Client) do(ctx context.Context, method string, u *url.URL, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return errors.WrapParse("json", "request body", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return errors.WrapResource("create", "request", method+" "+u.Path, err)
	}
	if err := c.auth.Apply(req); err != nil {
		return err
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return errors.WrapResource("send", "request", method+" "+u.Path, ctx.Err())
		}
		return &errors.APIError{
			Service:  constants.ServiceName,
			Endpoint: method + " " + u.Path,
			Message:  "request failed",
			Err:      err,
		}
	}

	logging.FromContextOr(ctx, c.logger).Debug().
		Str("method", method).
		Str("path", u.Path).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("Service request")

	return DecodeResponse(resp, method+" "+u.Path, out)
}
