// Package anthropic sends request envelopes to Anthropic's Messages API, either through
// the package's own transport client or through the official Go SDK.
package anthropic

import (
	"context"

	codegen "github.com/haowjy/meridian-codegen"
	"github.com/haowjy/meridian-codegen/transport"
)

// Header names required by the Messages API.
const (
	HeaderAPIKey  = "x-api-key"
	HeaderVersion = "anthropic-version"
)

// Provider implements codegen.Provider on top of a transport.Client whose base URL
// is the full Messages endpoint.
type Provider struct {
	client *transport.Client
	apiKey string
}

// NewProvider creates a new Anthropic provider with the given transport and API key.
func NewProvider(client *transport.Client, apiKey string) (*Provider, error) {
	if apiKey == "" {
		return nil, codegen.ErrInvalidAPIKey
	}
	if client == nil {
		return nil, &codegen.ValidationError{Field: "client", Reason: "transport client is required", Err: codegen.ErrInvalidRequest}
	}

	return &Provider{
		client: client,
		apiKey: apiKey,
	}, nil
}

// Name returns the provider identifier.
func (p *Provider) Name() codegen.ProviderID {
	return codegen.ProviderAnthropic
}

// Send posts the envelope and decodes the reply. Transport failures pass through
// unchanged; a reply without a text block is a *codegen.ParseError.
func (p *Provider) Send(ctx context.Context, req *codegen.RequestEnvelope) (*codegen.ResponseEnvelope, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var resp codegen.ResponseEnvelope
	err := p.client.Post(ctx, "", req, &resp,
		transport.WithHeader(HeaderAPIKey, p.apiKey),
		transport.WithHeader(HeaderVersion, codegen.AnthropicVersion),
	)
	if err != nil {
		return nil, err
	}

	if err := resp.Validate(); err != nil {
		return nil, &codegen.ParseError{StatusCode: 200, Message: p.client.Catalog().Parse, Err: err}
	}
	return &resp, nil
}
