package failure

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies where an error came from.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindService
	KindAuth
)

// String returns the metric label of the kind.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindService:
		return "service"
	case KindAuth:
		return "auth"
	default:
		return "unknown"
	}
}

// Stable titles that carry meaning for the accumulation policy.
const (
	TitleAuth             = "auth"
	TitleSchemaValidation = "Schema validation error"
	TitleUnknown          = "unknown"

	// titleLegacyJWT is what older API versions and builds used for TitleAuth.
	titleLegacyJWT = "jwt"

	authDescription    = "Wrong Password or Email."
	unknownDescription = "Unknown error"
)

// ErrorInfo is the normalized shape of a failed effect.
type ErrorInfo struct {
	Code        int    `json:"code"`
	Message     string `json:"message"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"`
	Kind        Kind   `json:"-"`
}

// Error implements error.
func (e *ErrorInfo) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Description)
	}
	return e.Message
}

// IsAuth reports whether the error invalidates the session.
func (e *ErrorInfo) IsAuth() bool {
	return e != nil && e.Code == http.StatusUnauthorized
}

// Validation builds a field-scoped validation error. The field identifier is
// the title the error is displayed and later cleared under.
func Validation(field, description string) *ErrorInfo {
	return &ErrorInfo{
		Code:        http.StatusUnprocessableEntity,
		Message:     field,
		Description: description,
		Kind:        KindValidation,
	}
}

// Service builds a remote error from an API response.
func Service(code int, message, description, typ string) *ErrorInfo {
	kind := KindService
	if code == http.StatusUnauthorized {
		kind = KindAuth
	}
	if message == "" {
		message = http.StatusText(code)
	}
	if message == "" {
		message = TitleUnknown
	}
	return &ErrorInfo{
		Code:        code,
		Message:     message,
		Description: description,
		Type:        typ,
		Kind:        kind,
	}
}

// Unknown wraps an error that never reached the API (transport, decoding, panics).
func Unknown(err error) *ErrorInfo {
	desc := unknownDescription
	if err != nil {
		desc = err.Error()
	}
	return &ErrorInfo{Message: TitleUnknown, Description: desc, Kind: KindUnknown}
}

// From normalizes any error into an ErrorInfo. Wrapped ErrorInfo values are
// preserved; everything else becomes Unknown. A nil error yields nil.
func From(err error) *ErrorInfo {
	if err == nil {
		return nil
	}
	var info *ErrorInfo
	if errors.As(err, &info) {
		return info
	}
	return Unknown(err)
}
