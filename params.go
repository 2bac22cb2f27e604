package codegen

import (
	"encoding/json"
	"fmt"
	"time"
)

// UILibrary selects the component library the generated code targets.
type UILibrary string

// Supported component libraries
const (
	UILibraryMUI    UILibrary = "mui"
	UILibraryAntd   UILibrary = "antd"
	UILibraryChakra UILibrary = "chakra"
)

// IsValid returns true for the libraries the prompt builder knows about.
func (l UILibrary) IsValid() bool {
	switch l {
	case UILibraryMUI, UILibraryAntd, UILibraryChakra:
		return true
	default:
		return false
	}
}

// GenerationOptions tunes what the prompt asks for.
// All fields are optional; nil/empty fields take the documented defaults.
type GenerationOptions struct {
	// IncludeStyles adds styling instructions (default true)
	IncludeStyles *bool `json:"include_styles,omitempty" yaml:"include_styles,omitempty"`

	// IncludeInteractions adds state and event-handling instructions (default true)
	IncludeInteractions *bool `json:"include_interactions,omitempty" yaml:"include_interactions,omitempty"`

	// UILibrary selects component-library guidance (default mui)
	UILibrary UILibrary `json:"ui_library,omitempty" yaml:"ui_library,omitempty"`
}

// StylesEnabled returns include_styles with its default.
func (o GenerationOptions) StylesEnabled() bool {
	if o.IncludeStyles != nil {
		return *o.IncludeStyles
	}
	return true
}

// InteractionsEnabled returns include_interactions with its default.
func (o GenerationOptions) InteractionsEnabled() bool {
	if o.IncludeInteractions != nil {
		return *o.IncludeInteractions
	}
	return true
}

// Library returns ui_library with its default.
func (o GenerationOptions) Library() UILibrary {
	if o.UILibrary == "" {
		return UILibraryMUI
	}
	return o.UILibrary
}

// Validate rejects libraries the prompt builder cannot describe.
func (o GenerationOptions) Validate() error {
	if !o.Library().IsValid() {
		return &ValidationError{
			Field:  "ui_library",
			Value:  o.UILibrary,
			Reason: "must be 'mui', 'antd', or 'chakra'",
			Err:    ErrInvalidRequest,
		}
	}
	return nil
}

// GetGenerationOptions unmarshals a loosely-typed map (e.g. decoded UI state) into options.
func GetGenerationOptions(options map[string]interface{}) (GenerationOptions, error) {
	if options == nil {
		return GenerationOptions{}, nil
	}

	jsonBytes, err := json.Marshal(options)
	if err != nil {
		return GenerationOptions{}, fmt.Errorf("failed to marshal options: %w", err)
	}

	var opts GenerationOptions
	if err := json.Unmarshal(jsonBytes, &opts); err != nil {
		return GenerationOptions{}, fmt.Errorf("failed to unmarshal options: %w", err)
	}

	return opts, nil
}

// Bool returns a pointer to b, for optional option fields.
func Bool(b bool) *bool {
	return &b
}

// Float returns a pointer to f, for optional envelope fields.
func Float(f float64) *float64 {
	return &f
}

// Backend selects how real-mode requests reach the provider.
type Backend string

const (
	// BackendHTTP sends envelopes through the package's own transport client.
	BackendHTTP Backend = "http"

	// BackendSDK sends envelopes through the official Anthropic Go SDK.
	BackendSDK Backend = "sdk"
)

// Defaults for the generation provider.
const (
	DefaultBaseURL     = "https://api.anthropic.com/v1/messages"
	DefaultModel       = "claude-3-5-sonnet-20241022"
	DefaultMaxTokens   = 4000
	DefaultTemperature = 0.3
	AnthropicVersion   = "2023-06-01"
)

// ClientConfig is everything a generation client needs at construction time.
// The client copies it; changing mode or key means building a new client.
type ClientConfig struct {
	BaseURL  string            `yaml:"base_url"`
	Headers  map[string]string `yaml:"headers"`
	APIKey   string            `yaml:"api_key"`
	DemoMode bool              `yaml:"demo_mode"`

	// Timeout bounds each provider call; zero means no bound.
	Timeout time.Duration `yaml:"timeout"`

	// Backend defaults to BackendHTTP.
	Backend Backend `yaml:"backend"`

	// Model defaults to DefaultModel.
	Model string `yaml:"model"`
}

// Validate checks the configuration. Demo mode needs no API key.
func (c ClientConfig) Validate() error {
	if !c.DemoMode && c.APIKey == "" {
		return &ValidationError{Field: "api_key", Value: "", Reason: "API key is required outside demo mode", Err: ErrInvalidAPIKey}
	}
	switch c.Backend {
	case "", BackendHTTP, BackendSDK:
	default:
		return &ValidationError{Field: "backend", Value: c.Backend, Reason: "must be 'http' or 'sdk'", Err: ErrInvalidRequest}
	}
	if c.Timeout < 0 {
		return &ValidationError{Field: "timeout", Value: c.Timeout, Reason: "must not be negative", Err: ErrInvalidRequest}
	}
	return nil
}

// Clone returns a copy that shares no maps with c.
func (c ClientConfig) Clone() ClientConfig {
	out := c
	if c.Headers != nil {
		out.Headers = make(map[string]string, len(c.Headers))
		for k, v := range c.Headers {
			out.Headers[k] = v
		}
	}
	if out.BaseURL == "" {
		out.BaseURL = DefaultBaseURL
	}
	if out.Backend == "" {
		out.Backend = BackendHTTP
	}
	if out.Model == "" {
		out.Model = DefaultModel
	}
	return out
}
