package codegen

// ProviderID represents a unique provider identifier.
// Using a typed constant prevents typos and provides compile-time safety.
type ProviderID string

// Known provider identifiers
const (
	// ProviderAnthropic is Anthropic's Messages API
	ProviderAnthropic ProviderID = "anthropic"

	// ProviderDemo is the offline demo synthesizer
	ProviderDemo ProviderID = "demo"
)

// String returns the string representation of the provider ID
func (p ProviderID) String() string {
	return string(p)
}

// IsValid returns true if the provider ID is a known provider
func (p ProviderID) IsValid() bool {
	switch p {
	case ProviderAnthropic, ProviderDemo:
		return true
	default:
		return false
	}
}
