package codegen

// Severity indicates how serious a validation warning is
type Severity string

const (
	SeverityInfo    Severity = "info"    // Informational (might be expected)
	SeverityWarning Severity = "warning" // Potentially problematic
	SeverityError   Severity = "error"   // Likely to cause API failure
)

// WarningCode is a machine-readable identifier for validation warnings
type WarningCode string

const (
	// Model warnings
	WarningCodeModelUnknown WarningCode = "MODEL_UNKNOWN"

	// Output warnings
	WarningCodeMaxTokensAboveLimit WarningCode = "MAX_TOKENS_ABOVE_LIMIT"
	WarningCodeMaxTokensLow        WarningCode = "MAX_TOKENS_LOW"

	// Parameter warnings
	WarningCodeTemperatureHigh WarningCode = "TEMPERATURE_HIGH"

	// Prompt warnings
	WarningCodeSystemPromptMissing WarningCode = "SYSTEM_PROMPT_MISSING"
	WarningCodeLastMessageNotUser  WarningCode = "LAST_MESSAGE_NOT_USER"
)

// ValidationWarning is a potential problem with an envelope that does not stop it
// from being sent.
type ValidationWarning struct {
	Code     WarningCode // Machine-readable code
	Category string      // "model", "output", "parameter", "prompt"
	Field    string      // Field that might cause issues
	Value    any         // The potentially problematic value
	Message  string      // Human-readable warning
	Severity Severity    // How serious this warning is
}

// ValidationRule interface allows adding custom validation logic
type ValidationRule interface {
	// Name returns a human-readable name for this rule
	Name() string

	// Check inspects an envelope and returns warnings
	Check(provider ProviderID, req *RequestEnvelope) []ValidationWarning
}
