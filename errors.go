package codegen

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes.
// These can be checked with errors.Is().
var (
	// ErrNetwork indicates no response was obtained (DNS, connection refused, timeout).
	ErrNetwork = errors.New("codegen: network error")

	// ErrHTTP indicates the provider answered with a non-2xx status.
	ErrHTTP = errors.New("codegen: http error")

	// ErrParse indicates a response body was not valid structured data.
	ErrParse = errors.New("codegen: parse error")

	// ErrCanceled indicates the caller canceled the call before it completed.
	ErrCanceled = errors.New("codegen: canceled")

	// ErrGenerationFailed is the single failure case the generation client surfaces.
	ErrGenerationFailed = errors.New("codegen: generation failed")

	// ErrInvalidRequest indicates the request parameters are invalid.
	ErrInvalidRequest = errors.New("codegen: invalid request")

	// ErrInvalidResponse indicates a response that decoded but lacks generated text.
	ErrInvalidResponse = errors.New("codegen: invalid response")

	// ErrInvalidAPIKey indicates the API key is missing in non-demo mode.
	ErrInvalidAPIKey = errors.New("codegen: invalid API key")
)

// Error codes reported in ErrorInfo.Code.
const (
	CodeNetwork          = "NETWORK_ERROR"
	CodeHTTP             = "HTTP_ERROR"
	CodeParse            = "PARSE_ERROR"
	CodeCanceled         = "CANCELED"
	CodeGenerationFailed = "GENERATION_FAILED"
	CodeInvalidRequest   = "INVALID_REQUEST"
)

// ErrorInfo is the presentation-ready description of a failure.
type ErrorInfo struct {
	Message string         `json:"message"`
	Code    string         `json:"code,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// InfoError is implemented by every error type in this package.
type InfoError interface {
	error
	Info() ErrorInfo
}

// Info describes err for display. Errors outside the taxonomy keep their own text.
func Info(err error) ErrorInfo {
	if err == nil {
		return ErrorInfo{}
	}
	var infoErr InfoError
	if errors.As(err, &infoErr) {
		return infoErr.Info()
	}
	return ErrorInfo{Message: err.Error()}
}

// NetworkError means no response was obtained at all.
type NetworkError struct {
	URL     string // Target URL
	Timeout bool   // True when the bounded wait elapsed
	Message string // Catalog message shown to users
	Err     error  // Underlying transport error
}

func (e *NetworkError) Error() string { return e.Message }

func (e *NetworkError) Unwrap() []error { return []error{ErrNetwork, e.Err} }

func (e *NetworkError) Info() ErrorInfo {
	details := map[string]any{"url": e.URL, "timeout": e.Timeout}
	if e.Err != nil {
		details["cause"] = e.Err.Error()
	}
	return ErrorInfo{Message: e.Message, Code: CodeNetwork, Details: details}
}

// HTTPError is a non-2xx answer from the provider.
type HTTPError struct {
	StatusCode int    // HTTP status code
	Message    string // Message from the error body, or the classified catalog message
	Body       []byte // Raw error body (may be empty)
}

func (e *HTTPError) Error() string { return e.Message }

func (e *HTTPError) Unwrap() error { return ErrHTTP }

func (e *HTTPError) Info() ErrorInfo {
	return ErrorInfo{Message: e.Message, Code: CodeHTTP, Details: map[string]any{"status": e.StatusCode}}
}

// ParseError is a response body that could not be decoded.
type ParseError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *ParseError) Error() string { return e.Message }

func (e *ParseError) Unwrap() []error { return []error{ErrParse, e.Err} }

func (e *ParseError) Info() ErrorInfo {
	details := map[string]any{"status": e.StatusCode}
	if e.Err != nil {
		details["cause"] = e.Err.Error()
	}
	return ErrorInfo{Message: e.Message, Code: CodeParse, Details: details}
}

// CanceledError reports that the caller's context ended the call.
type CanceledError struct {
	Message string
	Err     error // context.Canceled, usually
}

func (e *CanceledError) Error() string { return e.Message }

func (e *CanceledError) Unwrap() []error { return []error{ErrCanceled, e.Err} }

func (e *CanceledError) Info() ErrorInfo {
	return ErrorInfo{Message: e.Message, Code: CodeCanceled}
}

// GenerationError collapses every failure of a generation call into one case.
// The cause stays reachable through errors.As for callers that want it.
type GenerationError struct {
	Message string
	Err     error
}

func (e *GenerationError) Error() string { return e.Message }

func (e *GenerationError) Unwrap() []error { return []error{ErrGenerationFailed, e.Err} }

func (e *GenerationError) Info() ErrorInfo {
	info := ErrorInfo{Message: e.Message, Code: CodeGenerationFailed}
	if e.Err != nil {
		info.Details = map[string]any{"cause": e.Err.Error()}
	}
	return info
}

// ValidationError represents an error in request parameter validation.
type ValidationError struct {
	Field  string // The parameter field that failed validation
	Value  any    // The invalid value
	Reason string // Human-readable explanation
	Err    error  // Wrapped error (usually ErrInvalidRequest)
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("validation failed for '%s' (value: %v): %s (%v)", e.Field, e.Value, e.Reason, e.Err)
	}
	return fmt.Sprintf("validation failed for '%s' (value: %v): %s", e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func (e *ValidationError) Info() ErrorInfo {
	return ErrorInfo{
		Message: e.Error(),
		Code:    CodeInvalidRequest,
		Details: map[string]any{"field": e.Field, "reason": e.Reason},
	}
}

// IsRetryable checks if an error is potentially retryable.
// Network failures and 5xx/429 answers are; the client itself never retries.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == 429 || httpErr.StatusCode >= 500
	}

	return errors.Is(err, ErrNetwork)
}

// IsInvalidRequest checks if an error indicates invalid request parameters.
// These errors are not retryable and require request changes.
func IsInvalidRequest(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrInvalidRequest) || errors.Is(err, ErrInvalidAPIKey) {
		return true
	}

	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsAuthError checks if an error is related to authentication.
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrInvalidAPIKey) {
		return true
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		// HTTP 401/403 indicate auth issues
		return httpErr.StatusCode == 401 || httpErr.StatusCode == 403
	}

	return false
}

// IsCanceled reports whether the call was ended by the caller's context.
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}
