package codegen

import "fmt"

// Message roles accepted by the Messages API.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// RequestEnvelope is the body POSTed to the generation provider.
type RequestEnvelope struct {
	// Model is the model identifier (e.g., "claude-3-5-sonnet-20241022")
	Model string `json:"model"`

	// MaxTokens caps the generated output. Must be positive.
	MaxTokens int `json:"max_tokens"`

	// Messages is the ordered conversation. Must be non-empty.
	Messages []Message `json:"messages"`

	// Temperature controls randomness (0.0-1.0). Nil leaves the provider default.
	Temperature *float64 `json:"temperature,omitempty"`

	// System is the persona/instruction prompt.
	System string `json:"system,omitempty"`
}

// Message represents a single message in the request.
type Message struct {
	// Role is either "user" or "assistant"
	Role string `json:"role"`

	// Content is the plain-text message body
	Content string `json:"content"`
}

// Validate checks the envelope invariants before it is sent.
func (r *RequestEnvelope) Validate() error {
	if r == nil {
		return &ValidationError{Field: "request", Value: nil, Reason: "request is nil", Err: ErrInvalidRequest}
	}
	if r.Model == "" {
		return &ValidationError{Field: "model", Value: r.Model, Reason: "model is required", Err: ErrInvalidRequest}
	}
	if r.MaxTokens < 1 {
		return &ValidationError{Field: "max_tokens", Value: r.MaxTokens, Reason: "must be positive", Err: ErrInvalidRequest}
	}
	if len(r.Messages) == 0 {
		return &ValidationError{Field: "messages", Value: 0, Reason: "at least one message is required", Err: ErrInvalidRequest}
	}
	for i, msg := range r.Messages {
		if msg.Role != RoleUser && msg.Role != RoleAssistant {
			return &ValidationError{
				Field:  fmt.Sprintf("messages[%d].role", i),
				Value:  msg.Role,
				Reason: "role must be 'user' or 'assistant'",
				Err:    ErrInvalidRequest,
			}
		}
	}
	if r.Temperature != nil && (*r.Temperature < 0.0 || *r.Temperature > 1.0) {
		return &ValidationError{Field: "temperature", Value: *r.Temperature, Reason: "must be between 0.0 and 1.0", Err: ErrInvalidRequest}
	}
	return nil
}

// LastUserMessage returns the content of the most recent user message.
func (r *RequestEnvelope) LastUserMessage() (string, bool) {
	for i := len(r.Messages) - 1; i >= 0; i-- {
		if r.Messages[i].Role == RoleUser {
			return r.Messages[i].Content, true
		}
	}
	return "", false
}
