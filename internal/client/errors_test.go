package client

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

// mockNetError implements net.Error for testing
type mockNetError struct {
	temporary bool
	timeout   bool
	msg       string
}

func (e *mockNetError) Error() string   { return e.msg }
func (e *mockNetError) Timeout() bool   { return e.timeout }
func (e *mockNetError) Temporary() bool { return e.temporary }

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorCategory
	}{
		// Context errors (most reliable)
		{
			name:     "context deadline exceeded",
			err:      context.DeadlineExceeded,
			expected: ErrorCategoryTimeout,
		},
		{
			name:     "context canceled",
			err:      context.Canceled,
			expected: ErrorCategoryNetwork,
		},

		// Network errors
		{
			name:     "network timeout",
			err:      &mockNetError{timeout: true, msg: "i/o timeout"},
			expected: ErrorCategoryTimeout,
		},
		{
			name:     "network temporary error",
			err:      &mockNetError{temporary: true, msg: "connection reset"},
			expected: ErrorCategoryNetwork,
		},

		// Gateway status patterns
		{
			name:     "unauthorized",
			err:      errors.New("HTTP 401 - unauthorized"),
			expected: ErrorCategoryAuth,
		},
		{
			name:     "forbidden",
			err:      errors.New("HTTP 403 - forbidden"),
			expected: ErrorCategoryPermission,
		},
		{
			name:     "trust not found",
			err:      errors.New("HTTP 404 - relying-party trust does not exist"),
			expected: ErrorCategoryNotFound,
		},
		{
			name:     "trust already exists",
			err:      errors.New("HTTP 409 - a trust with this name already exists"),
			expected: ErrorCategoryConflict,
		},
		{
			name:     "validation failure",
			err:      errors.New("HTTP 400 - bad request: ssl_port out of range"),
			expected: ErrorCategoryValidation,
		},
		{
			name:     "service unavailable",
			err:      errors.New("HTTP 503 - service unavailable"),
			expected: ErrorCategoryServer,
		},
		{
			name:     "connection refused",
			err:      errors.New("dial tcp 10.0.0.5:8443: connection refused"),
			expected: ErrorCategoryNetwork,
		},
		{
			name:     "wrapped not found",
			err:      fmt.Errorf("failed to get farm: %w", errors.New("HTTP 404 - not found")),
			expected: ErrorCategoryNotFound,
		},
		{
			name:     "unknown",
			err:      errors.New("something odd happened"),
			expected: ErrorCategoryUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyError(tt.err); got != tt.expected {
				t.Errorf("classifyError() = %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestErrorPredicates(t *testing.T) {
	notFound := errors.New("HTTP 404 - not found")
	conflict := errors.New("HTTP 409 - already exists")
	unavailable := errors.New("HTTP 503 - service unavailable")

	if !IsNotFoundError(notFound) || IsNotFoundError(conflict) || IsNotFoundError(nil) {
		t.Error("IsNotFoundError misclassified")
	}
	if !IsConflictError(conflict) || IsConflictError(notFound) || IsConflictError(nil) {
		t.Error("IsConflictError misclassified")
	}
	// A definitive not-found must never look like an availability failure;
	// compliance checks depend on the distinction.
	if !IsUnavailableError(unavailable) || IsUnavailableError(notFound) {
		t.Error("IsUnavailableError misclassified")
	}
}

func TestMapErrorNil(t *testing.T) {
	d := MapError(nil, "read farm")
	if d.Summary() != "" || d.Detail() != "" {
		t.Errorf("MapError(nil) = %q/%q, want empty diagnostic", d.Summary(), d.Detail())
	}
}

func TestMapErrorCategories(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		summary string
	}{
		{"auth", errors.New("HTTP 401 - unauthorized"), "Authentication Failed - read farm"},
		{"not found", errors.New("HTTP 404 - not found"), "Resource Not Found - read farm"},
		{"conflict", errors.New("HTTP 409 - already exists"), "Resource Conflict - read farm"},
		{"server", errors.New("HTTP 500 - internal error"), "Admin Gateway Error - read farm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := MapError(tt.err, "read farm")
			if d.Summary() != tt.summary {
				t.Errorf("MapError() summary = %q, want %q", d.Summary(), tt.summary)
			}
		})
	}
}
