package codegen

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

//go:embed config/capabilities/anthropic.yaml
var anthropicModelsYAML []byte

// The model catalog is informational: it bounds max_tokens for models it knows
// and prices usage for logs. Unknown models pass through; the provider API is the
// source of truth.

// ProviderModels is the catalog file for one provider.
type ProviderModels struct {
	Version     string                `yaml:"version"`      // Semantic version (e.g., "1.0.0")
	LastUpdated string                `yaml:"last_updated"` // ISO 8601 date (e.g., "2025-01-15")
	Provider    string                `yaml:"provider"`
	Models      map[string]ModelLimit `yaml:"models"`
}

// ModelLimit describes one model.
type ModelLimit struct {
	ContextWindow   int         `yaml:"context_window"`
	MaxOutputTokens int         `yaml:"max_output_tokens"`
	Pricing         PricingInfo `yaml:"pricing"`
}

// PricingInfo contains model pricing in USD per million tokens.
type PricingInfo struct {
	InputPer1M  float64 `yaml:"input_per_1m"`
	OutputPer1M float64 `yaml:"output_per_1m"`
}

// ModelRegistry holds provider model catalogs.
type ModelRegistry struct {
	providers map[string]*ProviderModels
	mu        sync.RWMutex
}

var (
	globalModels     *ModelRegistry
	globalModelsOnce sync.Once
)

// GetModelRegistry returns the process-wide registry, loaded from the embedded catalog.
func GetModelRegistry() *ModelRegistry {
	globalModelsOnce.Do(func() {
		globalModels = NewModelRegistry()
		if err := globalModels.Load(anthropicModelsYAML); err != nil {
			// Don't panic - an empty catalog only disables the max_tokens check
			log.Warn().Err(err).Msg("failed to load embedded model catalog")
		}
	})
	return globalModels
}

// NewModelRegistry returns an empty registry, for tests and custom catalogs.
func NewModelRegistry() *ModelRegistry {
	return &ModelRegistry{providers: make(map[string]*ProviderModels)}
}

// Load parses a YAML catalog and registers it under its provider name.
func (r *ModelRegistry) Load(data []byte) error {
	var models ProviderModels
	if err := yaml.Unmarshal(data, &models); err != nil {
		return fmt.Errorf("failed to unmarshal model catalog: %w", err)
	}
	if models.Provider == "" {
		return fmt.Errorf("model catalog has no provider name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[models.Provider] = &models

	return nil
}

// LoadFile reads a YAML catalog from disk, overriding the embedded one for its provider.
func (r *ModelRegistry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read model catalog: %w", err)
	}
	return r.Load(data)
}

// Model returns the catalog entry for a model.
func (r *ModelRegistry) Model(provider ProviderID, model string) (*ModelLimit, error) {
	if !provider.IsValid() {
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	models, ok := r.providers[provider.String()]
	if !ok {
		return nil, fmt.Errorf("no model catalog for provider: %s", provider)
	}
	limit, ok := models.Models[model]
	if !ok {
		return nil, fmt.Errorf("model %s not found for provider %s", model, provider)
	}
	return &limit, nil
}

// CheckMaxTokens rejects a max_tokens above a known model's output limit.
func (r *ModelRegistry) CheckMaxTokens(provider ProviderID, model string, maxTokens int) error {
	limit, err := r.Model(provider, model)
	if err != nil {
		return nil
	}
	if limit.MaxOutputTokens > 0 && maxTokens > limit.MaxOutputTokens {
		return &ValidationError{
			Field:  "max_tokens",
			Value:  maxTokens,
			Reason: fmt.Sprintf("exceeds %s output limit of %d", model, limit.MaxOutputTokens),
			Err:    ErrInvalidRequest,
		}
	}
	return nil
}

// EstimateCost prices usage in USD. Unknown models cost zero.
func (r *ModelRegistry) EstimateCost(provider ProviderID, model string, usage Usage) float64 {
	limit, err := r.Model(provider, model)
	if err != nil {
		return 0
	}
	return float64(usage.InputTokens)/1e6*limit.Pricing.InputPer1M +
		float64(usage.OutputTokens)/1e6*limit.Pricing.OutputPer1M
}
