package codegen

import (
	"encoding/json"
	"net/http"
)

// Catalog holds the human-readable messages shown for each failure class.
// Pass one to the transport or generation client; zero fields fall back to DefaultCatalog.
type Catalog struct {
	Unauthorized string `yaml:"unauthorized"` // 401
	Forbidden    string `yaml:"forbidden"`    // 403
	NotFound     string `yaml:"not_found"`    // 404
	ServerError  string `yaml:"server_error"` // 500
	Network      string `yaml:"network"`      // any other status, or no response
	Parse        string `yaml:"parse"`
	Canceled     string `yaml:"canceled"`
	Generation   string `yaml:"generation"`
}

// DefaultCatalog returns the Korean messages the product ships with.
func DefaultCatalog() Catalog {
	return Catalog{
		Unauthorized: "인증이 필요합니다.",
		Forbidden:    "접근 권한이 없습니다.",
		NotFound:     "요청한 리소스를 찾을 수 없습니다.",
		ServerError:  "서버 오류가 발생했습니다.",
		Network:      "네트워크 오류가 발생했습니다.",
		Parse:        "응답을 해석할 수 없습니다.",
		Canceled:     "요청이 취소되었습니다.",
		Generation:   "코드 생성에 실패했습니다.",
	}
}

// EnglishCatalog returns locale-neutral English equivalents.
func EnglishCatalog() Catalog {
	return Catalog{
		Unauthorized: "Authentication is required.",
		Forbidden:    "You do not have permission to access this resource.",
		NotFound:     "The requested resource was not found.",
		ServerError:  "A server error occurred.",
		Network:      "A network error occurred.",
		Parse:        "The response could not be parsed.",
		Canceled:     "The request was canceled.",
		Generation:   "Code generation failed.",
	}
}

// WithDefaults fills empty fields from DefaultCatalog.
func (c Catalog) WithDefaults() Catalog {
	d := DefaultCatalog()
	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	fill(&c.Unauthorized, d.Unauthorized)
	fill(&c.Forbidden, d.Forbidden)
	fill(&c.NotFound, d.NotFound)
	fill(&c.ServerError, d.ServerError)
	fill(&c.Network, d.Network)
	fill(&c.Parse, d.Parse)
	fill(&c.Canceled, d.Canceled)
	fill(&c.Generation, d.Generation)
	return c
}

// Classify maps a non-2xx status to its catalog message.
// Only 401, 403, 404 and 500 have dedicated messages; everything else is a generic
// communication failure.
func (c Catalog) Classify(status int) string {
	c = c.WithDefaults()
	switch status {
	case http.StatusUnauthorized:
		return c.Unauthorized
	case http.StatusForbidden:
		return c.Forbidden
	case http.StatusNotFound:
		return c.NotFound
	case http.StatusInternalServerError:
		return c.ServerError
	default:
		return c.Network
	}
}

// ErrorBodyMessage extracts `message` or Anthropic's `error.message` from an error
// body. It returns "" when the body is not JSON or carries neither.
func ErrorBodyMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   *struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	if body.Error != nil {
		return body.Error.Message
	}
	return ""
}
