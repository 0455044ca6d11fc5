// Package client provides AD FS admin gateway API wrappers
package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/hashicorp/terraform-plugin-framework/diag"
)

// ErrorCategory represents the classification of an error
type ErrorCategory int

const (
	ErrorCategoryAuth ErrorCategory = iota
	ErrorCategoryPermission
	ErrorCategoryNotFound
	ErrorCategoryConflict
	ErrorCategoryValidation
	ErrorCategoryNetwork
	ErrorCategoryTimeout
	ErrorCategoryServer
	ErrorCategoryUnknown
)

// String returns a string representation of the error category
func (ec ErrorCategory) String() string {
	switch ec {
	case ErrorCategoryAuth:
		return "authentication"
	case ErrorCategoryPermission:
		return "permission"
	case ErrorCategoryNotFound:
		return "not_found"
	case ErrorCategoryConflict:
		return "conflict"
	case ErrorCategoryValidation:
		return "validation"
	case ErrorCategoryNetwork:
		return "network"
	case ErrorCategoryTimeout:
		return "timeout"
	case ErrorCategoryServer:
		return "server"
	default:
		return "unknown"
	}
}

// classifyError determines the error category using multiple detection
// strategies. The admin gateway reports failures as HTTP status text, so
// classification combines standard Go error types with message patterns.
func classifyError(err error) ErrorCategory {
	if err == nil {
		return ErrorCategoryUnknown
	}

	errorMsg := strings.ToLower(err.Error())

	// 1. Standard Go error types (most reliable)

	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorCategoryTimeout
	}
	if errors.Is(err, context.Canceled) {
		return ErrorCategoryNetwork
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return ErrorCategoryTimeout
		}
		return ErrorCategoryNetwork
	}

	// 2. Pattern matching, ordered by specificity

	if strings.Contains(errorMsg, "authentication failed") ||
		strings.Contains(errorMsg, "invalid credentials") ||
		strings.Contains(errorMsg, "unauthorized") ||
		strings.Contains(errorMsg, "401") {
		return ErrorCategoryAuth
	}

	if strings.Contains(errorMsg, "insufficient permissions") ||
		strings.Contains(errorMsg, "forbidden") ||
		strings.Contains(errorMsg, "403") ||
		strings.Contains(errorMsg, "permission denied") ||
		strings.Contains(errorMsg, "not authorized") {
		return ErrorCategoryPermission
	}

	if strings.Contains(errorMsg, "not found") ||
		strings.Contains(errorMsg, "404") ||
		strings.Contains(errorMsg, "does not exist") ||
		strings.Contains(errorMsg, "no such") {
		return ErrorCategoryNotFound
	}

	if strings.Contains(errorMsg, "already exists") ||
		strings.Contains(errorMsg, "duplicate") ||
		strings.Contains(errorMsg, "409") ||
		strings.Contains(errorMsg, "conflict") {
		return ErrorCategoryConflict
	}

	if strings.Contains(errorMsg, "validation") ||
		strings.Contains(errorMsg, "invalid") ||
		strings.Contains(errorMsg, "400") ||
		strings.Contains(errorMsg, "422") ||
		strings.Contains(errorMsg, "bad request") ||
		strings.Contains(errorMsg, "malformed") {
		return ErrorCategoryValidation
	}

	if strings.Contains(errorMsg, "server error") ||
		strings.Contains(errorMsg, "service unavailable") ||
		strings.Contains(errorMsg, "internal error") ||
		strings.Contains(errorMsg, "500") ||
		strings.Contains(errorMsg, "502") ||
		strings.Contains(errorMsg, "503") ||
		strings.Contains(errorMsg, "504") {
		return ErrorCategoryServer
	}

	if strings.Contains(errorMsg, "connection refused") ||
		strings.Contains(errorMsg, "timeout") ||
		strings.Contains(errorMsg, "timed out") ||
		strings.Contains(errorMsg, "network") ||
		strings.Contains(errorMsg, "dial") ||
		strings.Contains(errorMsg, "no such host") ||
		strings.Contains(errorMsg, "connection reset") {
		return ErrorCategoryNetwork
	}

	return ErrorCategoryUnknown
}

// IsNotFoundError returns true if the error represents a definitive
// "resource does not exist" response. Lookups treat this as existence
// false, never as a failure.
func IsNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	return classifyError(err) == ErrorCategoryNotFound
}

// IsConflictError returns true if the error represents a create against an
// already-present resource or an update whose key no longer matches.
func IsConflictError(err error) bool {
	if err == nil {
		return false
	}
	return classifyError(err) == ErrorCategoryConflict
}

// IsUnavailableError returns true when the gateway could not be reached or
// answered with an unexpected failure. Compliance checks surface this to
// the caller rather than reporting non-compliance.
func IsUnavailableError(err error) bool {
	switch classifyError(err) {
	case ErrorCategoryNetwork, ErrorCategoryTimeout, ErrorCategoryServer:
		return true
	default:
		return false
	}
}

// MapError converts admin gateway errors to Terraform diagnostics with
// actionable guidance. Returns an empty diagnostic if err is nil (caller
// should check before appending).
func MapError(err error, operation string) diag.Diagnostic {
	if err == nil {
		return diag.NewErrorDiagnostic("", "")
	}

	errorMsg := err.Error()

	switch classifyError(err) {
	case ErrorCategoryAuth:
		return diag.NewErrorDiagnostic(
			fmt.Sprintf("Authentication Failed - %s", operation),
			fmt.Sprintf("The admin gateway rejected the supplied credentials.\n\n"+
				"Error: %s\n\n"+
				"Recommended actions:\n"+
				"1. Verify username and password in the provider configuration\n"+
				"2. Confirm the account holds AD FS administration rights on the farm", errorMsg),
		)

	case ErrorCategoryPermission:
		return diag.NewErrorDiagnostic(
			fmt.Sprintf("Insufficient Permissions - %s", operation),
			fmt.Sprintf("The configured account lacks the rights for this operation.\n\n"+
				"Error: %s\n\n"+
				"Recommended action:\n"+
				"Grant the account AD FS administration rights on the target farm", errorMsg),
		)

	case ErrorCategoryNotFound:
		return diag.NewErrorDiagnostic(
			fmt.Sprintf("Resource Not Found - %s", operation),
			fmt.Sprintf("The requested resource was not found on the farm.\n\n"+
				"Error: %s\n\n"+
				"This may occur if:\n"+
				"- The resource was removed outside Terraform\n"+
				"- The identifier is incorrect\n\n"+
				"Run 'terraform refresh' to sync state", errorMsg),
		)

	case ErrorCategoryConflict:
		return diag.NewErrorDiagnostic(
			fmt.Sprintf("Resource Conflict - %s", operation),
			fmt.Sprintf("A resource with this identifier already exists on the farm.\n\n"+
				"Error: %s\n\n"+
				"Use 'terraform import' to manage the existing resource", errorMsg),
		)

	case ErrorCategoryValidation:
		return diag.NewErrorDiagnostic(
			fmt.Sprintf("Validation Failed - %s", operation),
			fmt.Sprintf("The admin gateway rejected the request.\n\n"+
				"Error: %s\n\n"+
				"Check configuration values against the farm's requirements", errorMsg),
		)

	case ErrorCategoryNetwork:
		return diag.NewErrorDiagnostic(
			fmt.Sprintf("Network Error - %s", operation),
			fmt.Sprintf("Unable to connect to the admin gateway.\n\n"+
				"Error: %s\n\n"+
				"Recommended actions:\n"+
				"1. Check network connectivity to the primary farm node\n"+
				"2. Verify server_url is correct\n"+
				"3. Check firewall rules", errorMsg),
		)

	case ErrorCategoryTimeout:
		return diag.NewErrorDiagnostic(
			fmt.Sprintf("Request Timeout - %s", operation),
			fmt.Sprintf("The request to the admin gateway exceeded the timeout limit.\n\n"+
				"Error: %s\n\n"+
				"Recommended actions:\n"+
				"1. Check latency to the primary farm node\n"+
				"2. Increase request_timeout_seconds in the provider configuration", errorMsg),
		)

	case ErrorCategoryServer:
		return diag.NewErrorDiagnostic(
			fmt.Sprintf("Admin Gateway Error - %s", operation),
			fmt.Sprintf("The admin gateway encountered an internal error.\n\n"+
				"Error: %s\n\n"+
				"This is typically transient. Check the AD FS admin event log on the "+
				"primary node if the problem persists.", errorMsg),
		)

	default:
		return diag.NewErrorDiagnostic(
			fmt.Sprintf("Admin Gateway Error - %s", operation),
			fmt.Sprintf("An error occurred communicating with the admin gateway.\n\n"+
				"Error: %s\n\n"+
				"If this error persists, please report it with the full message above.", errorMsg),
		)
	}
}
