package codegen

import (
	"strconv"
	"testing"
)

func TestCatalog_Classify(t *testing.T) {
	tests := []struct {
		status   int
		expected string
	}{
		{401, "인증이 필요합니다."},
		{403, "접근 권한이 없습니다."},
		{404, "요청한 리소스를 찾을 수 없습니다."},
		{500, "서버 오류가 발생했습니다."},
		{418, "네트워크 오류가 발생했습니다."},
		{502, "네트워크 오류가 발생했습니다."},
		{429, "네트워크 오류가 발생했습니다."},
		{400, "네트워크 오류가 발생했습니다."},
	}

	catalog := DefaultCatalog()
	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.status), func(t *testing.T) {
			if got := catalog.Classify(tt.status); got != tt.expected {
				t.Errorf("Classify(%d) = %q, want %q", tt.status, got, tt.expected)
			}
		})
	}
}

func TestCatalog_ZeroValueUsesDefaults(t *testing.T) {
	var catalog Catalog
	if got := catalog.Classify(401); got != DefaultCatalog().Unauthorized {
		t.Errorf("zero catalog Classify(401) = %q", got)
	}

	partial := Catalog{NotFound: "missing"}
	if got := partial.Classify(404); got != "missing" {
		t.Errorf("custom field ignored: %q", got)
	}
	if got := partial.Classify(500); got != DefaultCatalog().ServerError {
		t.Errorf("empty field should fall back, got %q", got)
	}
}

func TestEnglishCatalog_IsComplete(t *testing.T) {
	c := EnglishCatalog()
	if c.WithDefaults() != c {
		t.Error("EnglishCatalog should not need defaults filled in")
	}
	if got := c.Classify(401); got != "Authentication is required." {
		t.Errorf("Classify(401) = %q", got)
	}
}

func TestErrorBodyMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"top-level message", `{"message":"bad prompt"}`, "bad prompt"},
		{"anthropic error object", `{"type":"error","error":{"type":"overloaded_error","message":"Overloaded"}}`, "Overloaded"},
		{"top-level wins", `{"message":"outer","error":{"message":"inner"}}`, "outer"},
		{"error without message", `{"type":"error"}`, ""},
		{"not json", `<html>502</html>`, ""},
		{"empty", ``, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorBodyMessage([]byte(tt.body)); got != tt.want {
				t.Errorf("ErrorBodyMessage(%s) = %q, want %q", tt.body, got, tt.want)
			}
		})
	}
}
