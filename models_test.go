package codegen

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestModelRegistry_EmbeddedCatalog(t *testing.T) {
	registry := GetModelRegistry()

	limit, err := registry.Model(ProviderAnthropic, DefaultModel)
	if err != nil {
		t.Fatalf("default model missing from embedded catalog: %v", err)
	}
	if limit.MaxOutputTokens < DefaultMaxTokens {
		t.Errorf("default max_tokens %d exceeds catalog limit %d", DefaultMaxTokens, limit.MaxOutputTokens)
	}
}

func TestModelRegistry_CheckMaxTokens(t *testing.T) {
	registry := NewModelRegistry()
	err := registry.Load([]byte(`
provider: anthropic
models:
  claude-test:
    max_output_tokens: 100
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	tests := []struct {
		name      string
		provider  ProviderID
		model     string
		maxTokens int
		wantErr   bool
	}{
		{"within limit", ProviderAnthropic, "claude-test", 100, false},
		{"over limit", ProviderAnthropic, "claude-test", 101, true},
		{"unknown model passes", ProviderAnthropic, "claude-future", 1 << 20, false},
		{"unknown provider passes", ProviderDemo, "claude-test", 1 << 20, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := registry.CheckMaxTokens(tt.provider, tt.model, tt.maxTokens)
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckMaxTokens() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !IsInvalidRequest(err) {
				t.Error("limit error should be an invalid request")
			}
		})
	}
}

func TestModelRegistry_UnknownProvider(t *testing.T) {
	registry := NewModelRegistry()
	if err := registry.Load([]byte("provider: openai\nmodels:\n  gpt-test:\n    max_output_tokens: 10\n")); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if _, err := registry.Model(ProviderID("openai"), "gpt-test"); err == nil {
		t.Error("expected error for a provider outside the known set")
	}
	if err := registry.CheckMaxTokens(ProviderID("openai"), "gpt-test", 1000); err != nil {
		t.Errorf("unknown provider should pass the limit check, got %v", err)
	}

	tests := []struct {
		provider ProviderID
		valid    bool
	}{
		{ProviderAnthropic, true},
		{ProviderDemo, true},
		{"openai", false},
		{"", false},
		{"Anthropic", false},
	}
	for _, tt := range tests {
		if got := tt.provider.IsValid(); got != tt.valid {
			t.Errorf("ProviderID(%q).IsValid() = %v, want %v", tt.provider, got, tt.valid)
		}
	}
}

func TestModelRegistry_EstimateCost(t *testing.T) {
	registry := NewModelRegistry()
	if err := registry.Load([]byte(`
provider: anthropic
models:
  claude-test:
    pricing:
      input_per_1m: 3.0
      output_per_1m: 15.0
`)); err != nil {
		t.Fatalf("Load: %v", err)
	}

	cost := registry.EstimateCost(ProviderAnthropic, "claude-test", Usage{InputTokens: 1_000_000, OutputTokens: 100_000})
	if math.Abs(cost-4.5) > 1e-9 {
		t.Errorf("EstimateCost = %f, want 4.5", cost)
	}
	if got := registry.EstimateCost(ProviderAnthropic, "nope", Usage{InputTokens: 10}); got != 0 {
		t.Errorf("unknown model cost = %f, want 0", got)
	}
}

func TestModelRegistry_LoadErrors(t *testing.T) {
	registry := NewModelRegistry()
	if err := registry.Load([]byte("models: [")); err == nil {
		t.Error("expected YAML error")
	}
	if err := registry.Load([]byte("models: {}")); err == nil {
		t.Error("expected missing provider error")
	}
	if err := registry.LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected missing file error")
	}
}

func TestModelRegistry_LoadFileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models.yaml")
	if err := os.WriteFile(path, []byte("provider: anthropic\nmodels:\n  only-model:\n    max_output_tokens: 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	registry := NewModelRegistry()
	if err := registry.LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if _, err := registry.Model(ProviderAnthropic, "only-model"); err != nil {
		t.Errorf("model from file missing: %v", err)
	}
}
