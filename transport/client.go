// Package transport executes single JSON request/response exchanges against a base
// URL and classifies every failure into the codegen error taxonomy.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	codegen "github.com/haowjy/meridian-codegen"
)

// Config describes the endpoint a Client talks to.
type Config struct {
	// BaseURL is prefixed to every endpoint suffix.
	BaseURL string

	// Headers are sent on every call, after Content-Type and before per-call headers.
	Headers map[string]string

	// Timeout bounds each call; zero means only the caller's context applies.
	Timeout time.Duration

	// Catalog supplies failure messages; zero fields use codegen.DefaultCatalog.
	Catalog codegen.Catalog
}

// Client executes requests. It is safe for concurrent use.
type Client struct {
	baseURL    string
	headers    http.Header
	timeout    time.Duration
	catalog    codegen.Catalog
	httpClient *http.Client
	logger     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger used for per-exchange debug lines.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a Client. Config maps are copied.
func New(cfg Config, opts ...Option) *Client {
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	for k, v := range cfg.Headers {
		headers.Set(k, v)
	}

	c := &Client{
		baseURL:    cfg.BaseURL,
		headers:    headers,
		timeout:    cfg.Timeout,
		catalog:    cfg.Catalog.WithDefaults(),
		httpClient: &http.Client{},
		logger:     log.Logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Catalog returns the messages the client reports failures with.
func (c *Client) Catalog() codegen.Catalog {
	return c.catalog
}

// CallOption adjusts a single call.
type CallOption func(*callConfig)

type callConfig struct {
	headers http.Header
}

// WithHeader sets one per-call header, overriding defaults with the same name
// in any letter case.
func WithHeader(key, value string) CallOption {
	return func(cc *callConfig) {
		cc.headers.Set(key, value)
	}
}

// WithHeaders sets several per-call headers.
func WithHeaders(headers map[string]string) CallOption {
	return func(cc *callConfig) {
		for k, v := range headers {
			cc.headers.Set(k, v)
		}
	}
}

// Get decodes the response of GET baseURL+endpoint into out.
func (c *Client) Get(ctx context.Context, endpoint string, out any, opts ...CallOption) error {
	return c.Do(ctx, http.MethodGet, endpoint, nil, out, opts...)
}

// Post sends body as JSON and decodes the response into out.
func (c *Client) Post(ctx context.Context, endpoint string, body, out any, opts ...CallOption) error {
	return c.Do(ctx, http.MethodPost, endpoint, body, out, opts...)
}

// Put sends body as JSON and decodes the response into out.
func (c *Client) Put(ctx context.Context, endpoint string, body, out any, opts ...CallOption) error {
	return c.Do(ctx, http.MethodPut, endpoint, body, out, opts...)
}

// Delete decodes the response of DELETE baseURL+endpoint into out.
func (c *Client) Delete(ctx context.Context, endpoint string, out any, opts ...CallOption) error {
	return c.Do(ctx, http.MethodDelete, endpoint, nil, out, opts...)
}

// Do performs one exchange. A nil body sends no payload; a nil out skips decoding.
//
// On success out holds the decoded value. Otherwise the error is one of
// *codegen.NetworkError, *codegen.HTTPError, *codegen.ParseError or
// *codegen.CanceledError, and its Error() is the catalog message.
func (c *Client) Do(ctx context.Context, method, endpoint string, body, out any, opts ...CallOption) error {
	url := c.baseURL + endpoint

	cc := callConfig{headers: c.headers.Clone()}
	for _, opt := range opts {
		opt(&cc)
	}

	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			// Unserializable bodies are a caller bug, not a transport fault.
			return &codegen.ValidationError{Field: "body", Value: fmt.Sprintf("%T", body), Reason: err.Error(), Err: codegen.ErrInvalidRequest}
		}
		payload = bytes.NewReader(data)
	}

	callCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(callCtx, method, url, payload)
	if err != nil {
		return &codegen.NetworkError{URL: url, Message: c.catalog.Network, Err: err}
	}
	req.Header = cc.headers

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug().Str("method", method).Str("url", url).Err(err).Dur("elapsed", time.Since(start)).Msg("request failed")
		return c.transportError(ctx, url, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.transportError(ctx, url, err)
	}

	c.logger.Debug().
		Str("method", method).
		Str("url", url).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("request complete")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.httpError(resp.StatusCode, raw)
	}

	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		if resp.StatusCode == http.StatusNoContent {
			return nil
		}
		return &codegen.ParseError{StatusCode: resp.StatusCode, Message: c.catalog.Parse, Err: io.ErrUnexpectedEOF}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &codegen.ParseError{StatusCode: resp.StatusCode, Message: c.catalog.Parse, Err: err}
	}
	return nil
}

// transportError classifies a failure that produced no response.
// Caller cancellation is reported as such; our own timeout counts as a network failure.
func (c *Client) transportError(ctx context.Context, url string, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return &codegen.CanceledError{Message: c.catalog.Canceled, Err: ctx.Err()}
	}
	return &codegen.NetworkError{
		URL:     url,
		Timeout: errors.Is(err, context.DeadlineExceeded) || isTimeout(err),
		Message: c.catalog.Network,
		Err:     err,
	}
}

// httpError builds the error for a non-2xx answer. The body's own message wins;
// otherwise the status is classified.
func (c *Client) httpError(status int, raw []byte) error {
	message := codegen.ErrorBodyMessage(raw)
	if message == "" {
		message = c.catalog.Classify(status)
	}
	return &codegen.HTTPError{StatusCode: status, Message: message, Body: raw}
}

func isTimeout(err error) bool {
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}
