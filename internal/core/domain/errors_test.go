// Package domain defines the core domain models for HashREST.
package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestDomainError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *DomainError
		expected string
	}{
		{
			name:     "error without details",
			err:      NewDomainError("HR-TEST-1000", "test message"),
			expected: "[HR-TEST-1000] test message",
		},
		{
			name:     "error with details",
			err:      NewDomainError("HR-TEST-1001", "test message").WithDetails("extra info"),
			expected: "[HR-TEST-1001] test message: extra info",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDomainError_Is(t *testing.T) {
	err1 := NewDomainError("HR-TEST-1000", "message 1")
	err2 := NewDomainError("HR-TEST-1000", "message 2")
	err3 := NewDomainError("HR-TEST-1001", "message 1")

	if !errors.Is(err1, err2) {
		t.Error("errors.Is should return true for same error code")
	}
	if errors.Is(err1, err3) {
		t.Error("errors.Is should return false for different error code")
	}
	if errors.Is(err1, fmt.Errorf("some error")) {
		t.Error("errors.Is should return false for non-DomainError")
	}
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("underlying cause")
	err := ErrTransport.WithCause(cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}
	if !errors.Is(err, ErrTransport) {
		t.Error("errors.Is should match the sentinel by code")
	}
	if ErrTransport.Cause != nil {
		t.Error("WithCause must not modify the sentinel")
	}
}

func TestDomainError_WrappedByFmt(t *testing.T) {
	err := fmt.Errorf("call greet: %w", ErrRejected.WithDetails("status 400"))

	var de *DomainError
	if !errors.As(err, &de) {
		t.Fatal("errors.As should see through fmt wrapping")
	}
	if de.Code != "HR-HTTP-4000" || de.Details != "status 400" {
		t.Errorf("DomainError = %+v", de)
	}
	if !errors.Is(err, ErrRejected) || errors.Is(err, ErrInvalidDifficulty) {
		t.Error("errors.Is should match by code only")
	}
}

func TestErrorCodes_Unique(t *testing.T) {
	all := []*DomainError{
		ErrInvalidDifficulty, ErrInvalidTarget, ErrMalformedToken, ErrSearchCanceled,
		ErrEndpointNotFound, ErrEndpointInvalid, ErrTransport, ErrRejected, ErrInvalidConfig,
	}

	seen := make(map[string]bool)
	for _, e := range all {
		if seen[e.Code] {
			t.Errorf("duplicate error code %s", e.Code)
		}
		seen[e.Code] = true
	}
}
