// Package domainerrors defines the typed errors the gateway's domain layers
// return. Handlers translate these codes into HTTP responses at the boundary;
// everything below the boundary deals only in codes, never in status codes.
package domainerrors

import "errors"

// Code classifies a domain failure.
type Code string

const (
	// CodeValidation marks a request that failed input validation.
	CodeValidation Code = "VALIDATION"
	// CodeUnauthorized marks a missing, malformed, or expired credential.
	CodeUnauthorized Code = "UNAUTHORIZED"
	// CodeInvalidStep marks a user outside the onboarding step this flow
	// requires.
	CodeInvalidStep Code = "INVALID_STEP"
	// CodeSuitabilityRequired marks a user with no suitability profile.
	CodeSuitabilityRequired Code = "SUITABILITY_REQUIRED"
	// CodeDeviceNotSupplied marks a request missing the device header.
	CodeDeviceNotSupplied Code = "DEVICE_NOT_SUPPLIED"
	// CodeDeviceRequestFailed marks a failed device info lookup.
	CodeDeviceRequestFailed Code = "DEVICE_REQUEST_FAILED"
	// CodeInternal marks any other failure. It is also the default
	// classification for errors that carry no code.
	CodeInternal Code = "INTERNAL"
)

// GatewayError is a classified domain error. The message is operator-facing;
// user-facing text is chosen by the handler from the code alone.
type GatewayError struct {
	Code    Code
	Message string
	cause   error
}

func (e *GatewayError) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *GatewayError) Unwrap() error {
	return e.cause
}

// New returns a GatewayError with the given code and message.
func New(code Code, message string) *GatewayError {
	return &GatewayError{Code: code, Message: message}
}

// Wrap classifies an underlying error under the given code.
func Wrap(code Code, message string, cause error) *GatewayError {
	return &GatewayError{Code: code, Message: message, cause: cause}
}

// HasCode reports whether err carries the given code anywhere in its chain.
func HasCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// CodeOf extracts the code from err, walking the wrap chain. Errors without a
// GatewayError in the chain classify as CodeInternal.
func CodeOf(err error) Code {
	var gerr *GatewayError
	if errors.As(err, &gerr) {
		return gerr.Code
	}
	return CodeInternal
}
