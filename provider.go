package codegen

import (
	"context"
)

// Provider sends a request envelope to a text-generation backend.
// This abstraction lets the generation client swap the raw HTTP sender, the SDK
// sender and the offline demo synthesizer without changing callers.
//
// Types used by this interface:
//   - RequestEnvelope, Message: defined in request.go
//   - ResponseEnvelope: defined in response.go
type Provider interface {
	// Send performs one request/response exchange (blocking).
	// Failures are returned as the typed errors in errors.go.
	Send(ctx context.Context, req *RequestEnvelope) (*ResponseEnvelope, error)

	// Name returns the provider name (e.g., "anthropic", "demo")
	Name() ProviderID
}
