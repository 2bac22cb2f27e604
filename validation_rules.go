package codegen

import (
	"fmt"
)

// Thresholds used by the built-in rules.
const (
	// MinComfortableMaxTokens is roughly the smallest budget that fits a full component.
	MinComfortableMaxTokens = 1024

	// MaxCodeTemperature is the highest temperature that still gives stable code output.
	MaxCodeTemperature = 0.5
)

// ModelValidationRule checks model-related warnings
type ModelValidationRule struct {
	registry *ModelRegistry
}

func (r *ModelValidationRule) Name() string {
	return "Model Validation"
}

func (r *ModelValidationRule) Check(provider ProviderID, req *RequestEnvelope) []ValidationWarning {
	var warnings []ValidationWarning

	// the catalog may simply be older than the model
	if _, err := r.registry.Model(provider, req.Model); err != nil {
		warnings = append(warnings, ValidationWarning{
			Code:     WarningCodeModelUnknown,
			Category: "model",
			Field:    "model",
			Value:    req.Model,
			Message:  fmt.Sprintf("Model %s not found in %s model catalog (catalog may be outdated)", req.Model, provider),
			Severity: SeverityWarning,
		})
	}

	return warnings
}

// OutputValidationRule checks max_tokens against the model's output limit
type OutputValidationRule struct {
	registry *ModelRegistry
}

func (r *OutputValidationRule) Name() string {
	return "Output Validation"
}

func (r *OutputValidationRule) Check(provider ProviderID, req *RequestEnvelope) []ValidationWarning {
	var warnings []ValidationWarning

	if limit, err := r.registry.Model(provider, req.Model); err == nil &&
		limit.MaxOutputTokens > 0 && req.MaxTokens > limit.MaxOutputTokens {
		warnings = append(warnings, ValidationWarning{
			Code:     WarningCodeMaxTokensAboveLimit,
			Category: "output",
			Field:    "max_tokens",
			Value:    req.MaxTokens,
			Message:  fmt.Sprintf("max_tokens %d exceeds %s output limit of %d", req.MaxTokens, req.Model, limit.MaxOutputTokens),
			Severity: SeverityError,
		})
	}

	if req.MaxTokens > 0 && req.MaxTokens < MinComfortableMaxTokens {
		warnings = append(warnings, ValidationWarning{
			Code:     WarningCodeMaxTokensLow,
			Category: "output",
			Field:    "max_tokens",
			Value:    req.MaxTokens,
			Message:  fmt.Sprintf("max_tokens %d may truncate generated components", req.MaxTokens),
			Severity: SeverityInfo,
		})
	}

	return warnings
}

// ParameterValidationRule checks sampling parameters
type ParameterValidationRule struct{}

func (r *ParameterValidationRule) Name() string {
	return "Parameter Validation"
}

func (r *ParameterValidationRule) Check(provider ProviderID, req *RequestEnvelope) []ValidationWarning {
	var warnings []ValidationWarning

	if req.Temperature != nil && *req.Temperature > MaxCodeTemperature {
		warnings = append(warnings, ValidationWarning{
			Code:     WarningCodeTemperatureHigh,
			Category: "parameter",
			Field:    "temperature",
			Value:    *req.Temperature,
			Message:  fmt.Sprintf("Temperature %.2f is above %.2f; generated code may vary between calls", *req.Temperature, MaxCodeTemperature),
			Severity: SeverityInfo,
		})
	}

	return warnings
}

// PromptValidationRule checks the conversation shape
type PromptValidationRule struct{}

func (r *PromptValidationRule) Name() string {
	return "Prompt Validation"
}

func (r *PromptValidationRule) Check(provider ProviderID, req *RequestEnvelope) []ValidationWarning {
	var warnings []ValidationWarning

	if req.System == "" {
		warnings = append(warnings, ValidationWarning{
			Code:     WarningCodeSystemPromptMissing,
			Category: "prompt",
			Field:    "system",
			Message:  "No system prompt; output may include prose around the code",
			Severity: SeverityInfo,
		})
	}

	if n := len(req.Messages); n > 0 && req.Messages[n-1].Role != RoleUser {
		warnings = append(warnings, ValidationWarning{
			Code:     WarningCodeLastMessageNotUser,
			Category: "prompt",
			Field:    "messages",
			Value:    req.Messages[n-1].Role,
			Message:  "Last message is not from the user; the model will continue it instead of answering",
			Severity: SeverityWarning,
		})
	}

	return warnings
}
