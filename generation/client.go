// Package generation is the entry point callers use to turn a UI description into
// component source. It picks the demo synthesizer or a real provider, shapes the
// request and collapses every send failure into *codegen.GenerationError.
package generation

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	codegen "github.com/haowjy/meridian-codegen"
	"github.com/haowjy/meridian-codegen/prompt"
	"github.com/haowjy/meridian-codegen/providers/anthropic"
	"github.com/haowjy/meridian-codegen/providers/demo"
	"github.com/haowjy/meridian-codegen/transport"
)

// Client generates component source. It is safe for concurrent use; its
// configuration never changes after New.
type Client struct {
	cfg      codegen.ClientConfig
	provider codegen.Provider
	demo     *demo.Provider
	catalog  codegen.Catalog
	models   *codegen.ModelRegistry
	rules    *codegen.ValidationEngine
	logger   zerolog.Logger

	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the client's logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithProvider injects the sender used outside demo mode.
func WithProvider(p codegen.Provider) Option {
	return func(c *Client) {
		c.provider = p
	}
}

// WithDemoProvider replaces the demo synthesizer, typically to give it a fake clock.
func WithDemoProvider(p *demo.Provider) Option {
	return func(c *Client) {
		c.demo = p
	}
}

// WithHTTPClient sets the http.Client the built-in senders use.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithCatalog replaces the user-facing failure messages.
func WithCatalog(catalog codegen.Catalog) Option {
	return func(c *Client) {
		c.catalog = catalog.WithDefaults()
	}
}

// WithModelRegistry replaces the model catalog used for limits and cost estimates.
func WithModelRegistry(r *codegen.ModelRegistry) Option {
	return func(c *Client) {
		if r != nil {
			c.models = r
		}
	}
}

// New validates cfg and builds a client. Outside demo mode an API key is required.
func New(cfg codegen.ClientConfig, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		cfg:     cfg.Clone(),
		catalog: codegen.DefaultCatalog(),
		models:  codegen.GetModelRegistry(),
		logger:  log.Logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.models == codegen.GetModelRegistry() {
		c.rules = codegen.GetValidationEngine()
	} else {
		c.rules = codegen.NewValidationEngine(c.models)
	}

	if c.demo == nil {
		c.demo = demo.NewProvider(
			demo.WithModel(c.cfg.Model),
			demo.WithCatalog(c.catalog),
			demo.WithLogger(c.logger),
		)
	}

	if !c.cfg.DemoMode && c.provider == nil {
		provider, err := c.buildProvider()
		if err != nil {
			return nil, err
		}
		c.provider = provider
	}

	return c, nil
}

func (c *Client) buildProvider() (codegen.Provider, error) {
	switch c.cfg.Backend {
	case codegen.BackendSDK:
		return anthropic.NewSDKProvider(c.cfg.APIKey, c.cfg.BaseURL,
			anthropic.WithSDKHTTPClient(c.httpClient),
			anthropic.WithSDKTimeout(c.cfg.Timeout),
			anthropic.WithSDKCatalog(c.catalog),
		)
	default:
		t := transport.New(transport.Config{
			BaseURL: c.cfg.BaseURL,
			Headers: c.cfg.Headers,
			Timeout: c.cfg.Timeout,
			Catalog: c.catalog,
		}, transport.WithHTTPClient(c.httpClient), transport.WithLogger(c.logger))
		return anthropic.NewProvider(t, c.cfg.APIKey)
	}
}

// DemoMode reports whether the client synthesizes responses offline.
func (c *Client) DemoMode() bool {
	return c.cfg.DemoMode
}

// Generate turns a description into component source.
//
// Invalid options are returned as *codegen.ValidationError. Any failure while
// producing the response is a *codegen.GenerationError whose cause is logged and
// reachable with errors.As.
func (c *Client) Generate(ctx context.Context, description, kind string, opts codegen.GenerationOptions) (*codegen.ResponseEnvelope, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	logger := c.requestLogger()

	if c.cfg.DemoMode {
		resp, err := c.demo.Synthesize(ctx, description, kind, opts)
		if err != nil {
			return nil, c.fail(logger, err)
		}
		c.logResult(logger, codegen.ProviderDemo, resp)
		return resp, nil
	}

	env := prompt.Envelope(c.cfg.Model, prompt.Build(description, kind, opts))
	logger.Debug().
		Str("kind", kind).
		Str("ui_library", string(opts.Library())).
		Int("prompt_len", len(env.Messages[0].Content)).
		Msg("sending generation request")

	return c.send(ctx, logger, env)
}

// Send delivers a caller-built envelope. Envelopes that are malformed or exceed the
// model's known output limit are rejected before any network traffic.
// Those rejections are returned as-is (*codegen.ValidationError), not collapsed
// into *codegen.GenerationError; provider failures are collapsed as in Generate.
func (c *Client) Send(ctx context.Context, env *codegen.RequestEnvelope) (*codegen.ResponseEnvelope, error) {
	if err := env.Validate(); err != nil {
		return nil, err
	}
	if err := c.models.CheckMaxTokens(codegen.ProviderAnthropic, env.Model, env.MaxTokens); err != nil {
		return nil, err
	}
	return c.send(ctx, c.requestLogger(), env)
}

func (c *Client) send(ctx context.Context, logger zerolog.Logger, env *codegen.RequestEnvelope) (*codegen.ResponseEnvelope, error) {
	var provider codegen.Provider = c.provider
	if c.cfg.DemoMode {
		provider = c.demo
	}

	for _, w := range c.rules.Validate(codegen.ProviderAnthropic, env) {
		event := logger.Warn()
		if w.Severity == codegen.SeverityInfo {
			event = logger.Debug()
		}
		event.
			Str("code", string(w.Code)).
			Str("severity", string(w.Severity)).
			Interface("value", w.Value).
			Msg(w.Message)
	}

	resp, err := provider.Send(ctx, env)
	if err != nil {
		return nil, c.fail(logger, err)
	}
	c.logResult(logger, provider.Name(), resp)
	return resp, nil
}

func (c *Client) fail(logger zerolog.Logger, cause error) error {
	info := codegen.Info(cause)
	logger.Error().
		Err(cause).
		Str("code", info.Code).
		Interface("details", info.Details).
		Msg("generation failed")
	return &codegen.GenerationError{Message: c.catalog.Generation, Err: cause}
}

func (c *Client) logResult(logger zerolog.Logger, provider codegen.ProviderID, resp *codegen.ResponseEnvelope) {
	logger.Debug().
		Str("provider", provider.String()).
		Str("response_id", resp.ID).
		Int("input_tokens", resp.Usage.InputTokens).
		Int("output_tokens", resp.Usage.OutputTokens).
		Float64("cost_usd", c.models.EstimateCost(codegen.ProviderAnthropic, resp.Model, resp.Usage)).
		Msg("generation complete")
}

func (c *Client) requestLogger() zerolog.Logger {
	return c.logger.With().Str("request_id", uuid.NewString()).Logger()
}
