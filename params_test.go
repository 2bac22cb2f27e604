package codegen

import (
	"errors"
	"testing"
	"time"
)

func TestGenerationOptions_Defaults(t *testing.T) {
	var opts GenerationOptions

	if !opts.StylesEnabled() {
		t.Error("include_styles should default to true")
	}
	if !opts.InteractionsEnabled() {
		t.Error("include_interactions should default to true")
	}
	if opts.Library() != UILibraryMUI {
		t.Errorf("ui_library should default to mui, got %q", opts.Library())
	}
}

func TestGenerationOptions_Explicit(t *testing.T) {
	opts := GenerationOptions{
		IncludeStyles:       boolPtr(false),
		IncludeInteractions: boolPtr(false),
		UILibrary:           UILibraryChakra,
	}

	if opts.StylesEnabled() {
		t.Error("include_styles=false ignored")
	}
	if opts.InteractionsEnabled() {
		t.Error("include_interactions=false ignored")
	}
	if opts.Library() != UILibraryChakra {
		t.Errorf("Library() = %q, want chakra", opts.Library())
	}
}

func TestGenerationOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		library UILibrary
		wantErr bool
	}{
		{"empty uses default", "", false},
		{"mui", UILibraryMUI, false},
		{"antd", UILibraryAntd, false},
		{"chakra", UILibraryChakra, false},
		{"bootstrap is invalid", "bootstrap", true},
		{"case sensitive", "MUI", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := GenerationOptions{UILibrary: tt.library}.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !IsInvalidRequest(err) {
				t.Error("validation error should be classified as invalid request")
			}
		})
	}
}

func TestGetGenerationOptions(t *testing.T) {
	opts, err := GetGenerationOptions(map[string]interface{}{
		"include_styles": false,
		"ui_library":     "antd",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.StylesEnabled() {
		t.Error("include_styles should be false")
	}
	if !opts.InteractionsEnabled() {
		t.Error("missing include_interactions should keep default")
	}
	if opts.Library() != UILibraryAntd {
		t.Errorf("Library() = %q", opts.Library())
	}

	empty, err := GetGenerationOptions(nil)
	if err != nil || empty.Library() != UILibraryMUI {
		t.Errorf("nil map should give defaults, got %+v, %v", empty, err)
	}
}

func TestClientConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ClientConfig
		wantErr error
	}{
		{"demo needs no key", ClientConfig{DemoMode: true}, nil},
		{"real mode with key", ClientConfig{APIKey: "sk-test"}, nil},
		{"real mode without key", ClientConfig{}, ErrInvalidAPIKey},
		{"sdk backend", ClientConfig{APIKey: "k", Backend: BackendSDK}, nil},
		{"unknown backend", ClientConfig{APIKey: "k", Backend: "grpc"}, ErrInvalidRequest},
		{"negative timeout", ClientConfig{APIKey: "k", Timeout: -time.Second}, ErrInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestClientConfig_Clone(t *testing.T) {
	orig := ClientConfig{Headers: map[string]string{"X-A": "1"}}
	clone := orig.Clone()

	clone.Headers["X-A"] = "2"
	if orig.Headers["X-A"] != "1" {
		t.Error("Clone shares the headers map")
	}
	if clone.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q, want default", clone.BaseURL)
	}
	if clone.Model != DefaultModel {
		t.Errorf("Model = %q, want default", clone.Model)
	}
	if clone.Backend != BackendHTTP {
		t.Errorf("Backend = %q, want http", clone.Backend)
	}
}
