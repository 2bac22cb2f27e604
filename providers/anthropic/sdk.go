package anthropic

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	codegen "github.com/haowjy/meridian-codegen"
)

// messagesPath is the suffix the SDK appends to its base URL.
const messagesPath = "v1/messages"

// SDKProvider implements codegen.Provider with the official Anthropic Go SDK.
// Failures are mapped onto the same error taxonomy as the transport-based Provider.
type SDKProvider struct {
	client  *anthropic.Client
	baseURL string
	timeout time.Duration
	catalog codegen.Catalog
}

// SDKOption configures an SDKProvider.
type SDKOption func(*sdkConfig)

type sdkConfig struct {
	httpClient *http.Client
	timeout    time.Duration
	catalog    codegen.Catalog
}

// WithSDKHTTPClient replaces the http.Client the SDK sends with.
func WithSDKHTTPClient(hc *http.Client) SDKOption {
	return func(c *sdkConfig) {
		c.httpClient = hc
	}
}

// WithSDKTimeout bounds each call.
func WithSDKTimeout(d time.Duration) SDKOption {
	return func(c *sdkConfig) {
		c.timeout = d
	}
}

// WithSDKCatalog sets the failure messages.
func WithSDKCatalog(catalog codegen.Catalog) SDKOption {
	return func(c *sdkConfig) {
		c.catalog = catalog
	}
}

// NewSDKProvider creates an SDK-backed provider. baseURL may be the full Messages
// endpoint (as used by the transport client) or the API root; empty uses the SDK default.
func NewSDKProvider(apiKey, baseURL string, opts ...SDKOption) (*SDKProvider, error) {
	if apiKey == "" {
		return nil, codegen.ErrInvalidAPIKey
	}

	var cfg sdkConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	root := sdkBaseURL(baseURL)
	clientOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		// retries would hide the status the caller is meant to see
		option.WithMaxRetries(0),
	}
	if root != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(root))
	}
	if cfg.httpClient != nil {
		clientOpts = append(clientOpts, option.WithHTTPClient(cfg.httpClient))
	}

	client := anthropic.NewClient(clientOpts...)

	return &SDKProvider{
		client:  &client,
		baseURL: root,
		timeout: cfg.timeout,
		catalog: cfg.catalog.WithDefaults(),
	}, nil
}

// Name returns the provider identifier.
func (p *SDKProvider) Name() codegen.ProviderID {
	return codegen.ProviderAnthropic
}

// Send converts the envelope to SDK params, calls the Messages API and converts back.
func (p *SDKProvider) Send(ctx context.Context, req *codegen.RequestEnvelope) (*codegen.ResponseEnvelope, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	callCtx := ctx
	if p.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	message, err := p.client.Messages.New(callCtx, buildMessageParams(req))
	if err != nil {
		return nil, p.mapError(ctx, err)
	}

	resp := convertFromMessage(message)
	if err := resp.Validate(); err != nil {
		return nil, &codegen.ParseError{StatusCode: http.StatusOK, Message: p.catalog.Parse, Err: err}
	}
	return resp, nil
}

// buildMessageParams constructs SDK parameters from an envelope.
func buildMessageParams(req *codegen.RequestEnvelope) anthropic.MessageNewParams {
	messages := make([]anthropic.MessageParam, 0, len(req.Messages))
	for _, msg := range req.Messages {
		block := anthropic.NewTextBlock(msg.Content)
		if msg.Role == codegen.RoleAssistant {
			messages = append(messages, anthropic.NewAssistantMessage(block))
		} else {
			messages = append(messages, anthropic.NewUserMessage(block))
		}
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(req.Model),
		Messages:  messages,
		MaxTokens: int64(req.MaxTokens),
	}

	if req.Temperature != nil {
		params.Temperature = anthropic.Float(*req.Temperature)
	}

	if req.System != "" {
		params.System = []anthropic.TextBlockParam{
			{
				Type: "text",
				Text: req.System,
			},
		}
	}

	return params
}

// convertFromMessage converts an SDK message to the wire envelope.
func convertFromMessage(msg *anthropic.Message) *codegen.ResponseEnvelope {
	content := make([]codegen.ContentBlock, 0, len(msg.Content))
	for _, block := range msg.Content {
		// only text blocks carry generated source
		if block.Type != codegen.BlockTypeText {
			continue
		}
		content = append(content, codegen.ContentBlock{Type: block.Type, Text: block.Text})
	}

	var stopSequence *string
	if msg.StopSequence != "" {
		seq := msg.StopSequence
		stopSequence = &seq
	}

	return &codegen.ResponseEnvelope{
		ID:           msg.ID,
		Type:         string(msg.Type),
		Role:         string(msg.Role),
		Content:      content,
		Model:        string(msg.Model),
		StopReason:   string(msg.StopReason),
		StopSequence: stopSequence,
		Usage: codegen.Usage{
			InputTokens:  int(msg.Usage.InputTokens),
			OutputTokens: int(msg.Usage.OutputTokens),
		},
	}
}

// mapError translates SDK failures into the codegen taxonomy. As with the
// transport client, an API error's own message wins over the catalog.
func (p *SDKProvider) mapError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return &codegen.CanceledError{Message: p.catalog.Canceled, Err: ctx.Err()}
	}

	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		raw := []byte(apiErr.RawJSON())
		message := codegen.ErrorBodyMessage(raw)
		if message == "" {
			message = p.catalog.Classify(apiErr.StatusCode)
		}
		return &codegen.HTTPError{
			StatusCode: apiErr.StatusCode,
			Message:    message,
			Body:       raw,
		}
	}

	return &codegen.NetworkError{
		URL:     p.baseURL + messagesPath,
		Timeout: errors.Is(err, context.DeadlineExceeded),
		Message: p.catalog.Network,
		Err:     err,
	}
}

// sdkBaseURL trims the Messages path so the SDK can append it again.
func sdkBaseURL(baseURL string) string {
	if baseURL == "" {
		return ""
	}
	root := strings.TrimSuffix(strings.TrimSuffix(baseURL, "/"), messagesPath)
	if !strings.HasSuffix(root, "/") {
		root += "/"
	}
	return root
}
