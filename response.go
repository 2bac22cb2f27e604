package codegen

// Content block type constants
const (
	BlockTypeText = "text"
)

// ResponseEnvelope is the provider's reply to a RequestEnvelope.
// Demo responses share this exact shape; only their provenance differs.
type ResponseEnvelope struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Role string `json:"role"`

	// Content holds the returned blocks; the generated source lives in the first text block.
	Content []ContentBlock `json:"content"`

	// Model is the model that was used (may differ from request if aliased)
	Model string `json:"model"`

	// StopReason indicates why generation stopped (e.g., "end_turn", "max_tokens")
	StopReason string `json:"stop_reason"`

	// StopSequence is always null for this client (no custom stop sequences are sent)
	StopSequence *string `json:"stop_sequence"`

	Usage Usage `json:"usage"`
}

// ContentBlock is a single typed block of response content.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Usage reports token counters for one exchange.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// Text returns the text of the first text block.
func (r *ResponseEnvelope) Text() (string, bool) {
	if r == nil {
		return "", false
	}
	for _, block := range r.Content {
		if block.Type == BlockTypeText {
			return block.Text, true
		}
	}
	return "", false
}

// Validate checks that the envelope carries generated text.
func (r *ResponseEnvelope) Validate() error {
	if _, ok := r.Text(); !ok {
		return &ValidationError{Field: "content", Value: nil, Reason: "response has no text block", Err: ErrInvalidResponse}
	}
	return nil
}
