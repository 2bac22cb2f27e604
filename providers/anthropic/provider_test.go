package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	codegen "github.com/haowjy/meridian-codegen"
	"github.com/haowjy/meridian-codegen/transport"
)

const messageJSON = `{
  "id": "msg_01",
  "type": "message",
  "role": "assistant",
  "content": [{"type": "text", "text": "export default Foo;"}],
  "model": "claude-3-5-sonnet-20241022",
  "stop_reason": "end_turn",
  "stop_sequence": null,
  "usage": {"input_tokens": 12, "output_tokens": 34}
}`

func testEnvelope() *codegen.RequestEnvelope {
	return &codegen.RequestEnvelope{
		Model:       codegen.DefaultModel,
		MaxTokens:   codegen.DefaultMaxTokens,
		Temperature: codegen.Float(codegen.DefaultTemperature),
		System:      "system prompt",
		Messages: []codegen.Message{
			{Role: codegen.RoleUser, Content: "build a login form"},
		},
	}
}

func newTestProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := transport.New(transport.Config{BaseURL: server.URL}, transport.WithLogger(zerolog.Nop()))
	provider, err := NewProvider(client, "sk-test")
	if err != nil {
		t.Fatalf("NewProvider failed: %v", err)
	}
	return provider
}

func TestNewProvider_RequiresAPIKey(t *testing.T) {
	client := transport.New(transport.Config{})
	_, err := NewProvider(client, "")
	if !errors.Is(err, codegen.ErrInvalidAPIKey) {
		t.Errorf("expected ErrInvalidAPIKey, got %v", err)
	}

	_, err = NewProvider(nil, "sk-test")
	if !codegen.IsInvalidRequest(err) {
		t.Errorf("expected invalid request for nil client, got %v", err)
	}
}

func TestProvider_Name(t *testing.T) {
	provider, _ := NewProvider(transport.New(transport.Config{}), "sk-test")
	if provider.Name() != codegen.ProviderAnthropic {
		t.Errorf("expected provider name 'anthropic', got '%s'", provider.Name())
	}
}

func TestProvider_Send_Success(t *testing.T) {
	var got map[string]any

	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(HeaderAPIKey) != "sk-test" {
			t.Errorf("missing api key header")
		}
		if r.Header.Get(HeaderVersion) != codegen.AnthropicVersion {
			t.Errorf("anthropic-version = %q", r.Header.Get(HeaderVersion))
		}
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &got)
		_, _ = w.Write([]byte(messageJSON))
	})

	resp, err := provider.Send(context.Background(), testEnvelope())
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	if text, _ := resp.Text(); text != "export default Foo;" {
		t.Errorf("text = %q", text)
	}
	if resp.Usage.InputTokens != 12 || resp.Usage.OutputTokens != 34 {
		t.Errorf("usage = %+v", resp.Usage)
	}

	if got["model"] != codegen.DefaultModel {
		t.Errorf("model = %v", got["model"])
	}
	if got["max_tokens"] != float64(4000) {
		t.Errorf("max_tokens = %v", got["max_tokens"])
	}
	if got["temperature"] != 0.3 {
		t.Errorf("temperature = %v", got["temperature"])
	}
	if got["system"] != "system prompt" {
		t.Errorf("system = %v", got["system"])
	}
	messages, _ := got["messages"].([]any)
	if len(messages) != 1 {
		t.Fatalf("messages = %v", got["messages"])
	}
}

func TestProvider_Send_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		check   func(error) bool
		message string
	}{
		{"unauthorized", http.StatusUnauthorized, `{}`, codegen.IsAuthError, "인증이 필요합니다."},
		{"api error body", http.StatusBadRequest, `{"type":"error","error":{"type":"invalid_request_error","message":"max_tokens too large"}}`,
			func(err error) bool { return errors.Is(err, codegen.ErrHTTP) }, "max_tokens too large"},
		{"server error", http.StatusInternalServerError, ``, codegen.IsRetryable, "서버 오류가 발생했습니다."},
		{"no text block", http.StatusOK, `{"id":"msg_2","type":"message","content":[]}`,
			func(err error) bool { return errors.Is(err, codegen.ErrParse) }, "응답을 해석할 수 없습니다."},
		{"not json", http.StatusOK, `<html>`,
			func(err error) bool { return errors.Is(err, codegen.ErrParse) }, "응답을 해석할 수 없습니다."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := provider.Send(context.Background(), testEnvelope())
			if err == nil {
				t.Fatal("expected error")
			}
			if !tt.check(err) {
				t.Errorf("unexpected error kind: %T %v", err, err)
			}
			if err.Error() != tt.message {
				t.Errorf("message = %q, want %q", err.Error(), tt.message)
			}
		})
	}
}

func TestProvider_Send_InvalidEnvelope(t *testing.T) {
	called := false
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := provider.Send(context.Background(), &codegen.RequestEnvelope{Model: "m"})
	if !codegen.IsInvalidRequest(err) {
		t.Errorf("expected invalid request, got %v", err)
	}
	if called {
		t.Error("invalid envelope should not reach the network")
	}
}
