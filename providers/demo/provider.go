// Package demo is an offline stand-in for the generation provider.
// It fabricates structurally valid responses without network access or API keys.
package demo

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	loremgen "github.com/bozaro/golorem"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	codegen "github.com/haowjy/meridian-codegen"
)

// DefaultDelay is the simulated provider latency.
const DefaultDelay = 1500 * time.Millisecond

// Synthetic usage counters reported on every demo response.
const (
	DemoInputTokens  = 200
	DemoOutputTokens = 800
)

// Provider fabricates generation responses locally.
type Provider struct {
	clock   Clock
	delay   time.Duration
	model   string
	catalog codegen.Catalog
	logger  zerolog.Logger

	// placeholder copy is opt-in; the generator is shared across calls
	lorem   *loremgen.Lorem
	loremMu sync.Mutex
}

// Option configures a Provider.
type Option func(*Provider)

// WithClock replaces the wall clock, typically with a fake in tests.
func WithClock(clock Clock) Option {
	return func(p *Provider) {
		if clock != nil {
			p.clock = clock
		}
	}
}

// WithDelay changes the simulated latency.
func WithDelay(d time.Duration) Option {
	return func(p *Provider) {
		p.delay = d
	}
}

// WithModel sets the model id echoed in responses.
func WithModel(model string) Option {
	return func(p *Provider) {
		if model != "" {
			p.model = model
		}
	}
}

// WithCatalog sets the messages used for cancellation errors.
func WithCatalog(catalog codegen.Catalog) Option {
	return func(p *Provider) {
		p.catalog = catalog.WithDefaults()
	}
}

// WithLogger sets the provider's logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Provider) {
		p.logger = logger
	}
}

// WithPlaceholderCopy adds a lorem ipsum caption to each component.
// Output is no longer deterministic when enabled.
func WithPlaceholderCopy() Option {
	return func(p *Provider) {
		p.lorem = loremgen.New()
	}
}

// NewProvider creates a new demo provider.
func NewProvider(opts ...Option) *Provider {
	p := &Provider{
		clock:   SystemClock{},
		delay:   DefaultDelay,
		model:   codegen.DefaultModel,
		catalog: codegen.DefaultCatalog(),
		logger:  log.Logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the provider identifier.
func (p *Provider) Name() codegen.ProviderID {
	return codegen.ProviderDemo
}

// Synthesize waits for the simulated latency, then returns a component derived from
// the description. Canceling ctx during the wait returns *codegen.CanceledError.
func (p *Provider) Synthesize(ctx context.Context, description, kind string, opts codegen.GenerationOptions) (*codegen.ResponseEnvelope, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}

	name := ComponentName(description)
	source := RenderComponent(name, description, kind, p.caption())

	p.logger.Debug().
		Str("component", name).
		Str("kind", kind).
		Str("ui_library", string(opts.Library())).
		Msg("demo component synthesized")

	return p.envelope(source), nil
}

// Send answers a raw request envelope. The last user message is treated as the
// description and the kind is "component".
func (p *Provider) Send(ctx context.Context, req *codegen.RequestEnvelope) (*codegen.ResponseEnvelope, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	description, _ := req.LastUserMessage()
	resp, err := p.Synthesize(ctx, firstLine(description), "component", codegen.GenerationOptions{})
	if err != nil {
		return nil, err
	}
	resp.Model = req.Model
	return resp, nil
}

func (p *Provider) wait(ctx context.Context) error {
	if p.delay <= 0 {
		return nil
	}
	select {
	case <-p.clock.After(p.delay):
		return nil
	case <-ctx.Done():
		return &codegen.CanceledError{Message: p.catalog.Canceled, Err: ctx.Err()}
	}
}

func (p *Provider) caption() string {
	if p.lorem == nil {
		return ""
	}
	p.loremMu.Lock()
	defer p.loremMu.Unlock()
	return p.lorem.Sentence(8, 16)
}

func (p *Provider) envelope(source string) *codegen.ResponseEnvelope {
	return &codegen.ResponseEnvelope{
		ID:   fmt.Sprintf("msg_demo_%d", p.clock.Now().UnixMilli()),
		Type: "message",
		Role: codegen.RoleAssistant,
		Content: []codegen.ContentBlock{
			{Type: codegen.BlockTypeText, Text: source},
		},
		Model:        p.model,
		StopReason:   "end_turn",
		StopSequence: nil,
		Usage: codegen.Usage{
			InputTokens:  DemoInputTokens,
			OutputTokens: DemoOutputTokens,
		},
	}
}

// firstLine keeps raw prompts from turning into enormous component titles.
func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
