// Package domain defines the core domain models for HashREST.
package domain

import "fmt"

// DomainError represents a domain error with a structured error code.
// Codes have the form HR-<AREA>-<NNNN>.
type DomainError struct {
	Code    string // Error code (e.g., "HR-POW-4000")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is matches another DomainError by code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	c := *e
	c.Details = details
	return &c
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	c := *e
	c.Cause = cause
	return &c
}

// Proof-of-work errors (POW).
var (
	// ErrInvalidDifficulty indicates a difficulty outside [0, 64].
	ErrInvalidDifficulty = NewDomainError("HR-POW-4000", "invalid difficulty")

	// ErrInvalidTarget indicates a target identifier that cannot be encoded.
	ErrInvalidTarget = NewDomainError("HR-POW-4001", "invalid target")

	// ErrMalformedToken indicates text that does not parse as a token.
	ErrMalformedToken = NewDomainError("HR-POW-4002", "malformed token")

	// ErrSearchCanceled indicates the search was stopped before a match.
	ErrSearchCanceled = NewDomainError("HR-POW-4990", "search canceled")
)

// Endpoint errors (ENDP).
var (
	// ErrEndpointNotFound indicates an endpoint name missing from the catalog.
	ErrEndpointNotFound = NewDomainError("HR-ENDP-4040", "endpoint not found")

	// ErrEndpointInvalid indicates an endpoint definition failed validation.
	ErrEndpointInvalid = NewDomainError("HR-ENDP-4000", "invalid endpoint")
)

// Transport errors (HTTP).
var (
	// ErrTransport indicates the request could not be sent or read.
	ErrTransport = NewDomainError("HR-HTTP-5020", "transport failure")

	// ErrRejected indicates the server answered with a non-2xx status.
	ErrRejected = NewDomainError("HR-HTTP-4000", "request rejected")
)

// Configuration errors (CONF).
var (
	// ErrInvalidConfig indicates configuration validation failed.
	ErrInvalidConfig = NewDomainError("HR-CONF-4000", "invalid configuration")
)
