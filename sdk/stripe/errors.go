package stripe

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrMissingPathParam is returned before any network call when a route
	// placeholder has no value.
	ErrMissingPathParam = errors.New("stripe: missing path parameter")

	// ErrUnsupportedField is returned when a request field cannot be form encoded.
	ErrUnsupportedField = errors.New("stripe: unsupported field")
)

// ErrorType is the category reported in the API's error body.
type ErrorType string

const (
	ErrorTypeAPI            ErrorType = "api_error"
	ErrorTypeAuthentication ErrorType = "authentication_error"
	ErrorTypeCard           ErrorType = "card_error"
	ErrorTypeInvalidRequest ErrorType = "invalid_request_error"
	ErrorTypeRateLimit      ErrorType = "rate_limit_error"
)

// ErrorCode is the machine readable reason of a card or request error.
type ErrorCode string

const (
	ErrorCodeCardDeclined       ErrorCode = "card_declined"
	ErrorCodeExpiredCard        ErrorCode = "expired_card"
	ErrorCodeIncorrectCVC       ErrorCode = "incorrect_cvc"
	ErrorCodeIncorrectNumber    ErrorCode = "incorrect_number"
	ErrorCodeIncorrectZip       ErrorCode = "incorrect_zip"
	ErrorCodeInvalidCVC         ErrorCode = "invalid_cvc"
	ErrorCodeInvalidExpiryMonth ErrorCode = "invalid_expiry_month"
	ErrorCodeInvalidExpiryYear  ErrorCode = "invalid_expiry_year"
	ErrorCodeInvalidNumber      ErrorCode = "invalid_number"
	ErrorCodeMissing            ErrorCode = "missing"
	ErrorCodeProcessingError    ErrorCode = "processing_error"
	ErrorCodeRateLimit          ErrorCode = "rate_limit"
	ErrorCodeResourceMissing    ErrorCode = "resource_missing"
)

// Error is a 4xx response from the API.
type Error struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Code    ErrorCode `json:"code,omitempty"`
	Param   string    `json:"param,omitempty"`

	// HTTPStatusCode is the status of the response the error was read from.
	HTTPStatusCode int `json:"-"`
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("stripe %s (status %d): %s", e.Type, e.HTTPStatusCode, e.Message)
	if e.Code != "" {
		msg += fmt.Sprintf(" [code=%s]", e.Code)
	}
	if e.Param != "" {
		msg += fmt.Sprintf(" [param=%s]", e.Param)
	}
	return msg
}

type errorEnvelope struct {
	Error *Error `json:"error"`
}

// StatusError is a non-2xx, non-4xx response. No structured error body is
// assumed; Body holds whatever the server sent.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("stripe: unexpected status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// AsError returns the *Error in err's chain, or nil.
func AsError(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}

// IsCardError reports whether err is a card_error, such as a declined card.
func IsCardError(err error) bool {
	apiErr := AsError(err)
	return apiErr != nil && apiErr.Type == ErrorTypeCard
}

// IsInvalidRequest reports whether err is an invalid_request_error.
func IsInvalidRequest(err error) bool {
	apiErr := AsError(err)
	return apiErr != nil && apiErr.Type == ErrorTypeInvalidRequest
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	apiErr := AsError(err)
	return apiErr != nil && apiErr.HTTPStatusCode == http.StatusNotFound
}

// CodeOf returns the error code carried by err, or "".
func CodeOf(err error) ErrorCode {
	if apiErr := AsError(err); apiErr != nil {
		return apiErr.Code
	}
	return ""
}
