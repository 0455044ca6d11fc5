package validators

import (
	"context"
	"fmt"
	"regexp"

	"github.com/hashicorp/terraform-plugin-framework/schema/validator"
)

// thumbprintValidator validates that a string is a SHA-1 certificate
// thumbprint (40 hex digits)
type thumbprintValidator struct {
	// allowEmpty accepts "" as an explicit "clear this reference" value
	allowEmpty bool
}

// Thumbprint pattern: 40 hex digits, no separators (case-insensitive)
var thumbprintPattern = regexp.MustCompile(`^[0-9a-fA-F]{40}$`)

// Description returns a plain text description of the validator's behavior
func (v thumbprintValidator) Description(ctx context.Context) string {
	if v.allowEmpty {
		return "Value must be a 40-digit hexadecimal certificate thumbprint, or empty to clear the reference"
	}
	return "Value must be a 40-digit hexadecimal certificate thumbprint"
}

// MarkdownDescription returns a markdown formatted description of the validator's behavior
func (v thumbprintValidator) MarkdownDescription(ctx context.Context) string {
	return v.Description(ctx)
}

// ValidateString validates the thumbprint format
func (v thumbprintValidator) ValidateString(ctx context.Context, req validator.StringRequest, resp *validator.StringResponse) {
	// Skip validation if value is unknown or null (during plan phase)
	if req.ConfigValue.IsUnknown() || req.ConfigValue.IsNull() {
		return
	}

	value := req.ConfigValue.ValueString()

	if value == "" && v.allowEmpty {
		return
	}

	if !thumbprintPattern.MatchString(value) {
		resp.Diagnostics.AddAttributeError(
			req.Path,
			"Invalid Certificate Thumbprint",
			fmt.Sprintf("Value %q is not a valid certificate thumbprint. Expected 40 hexadecimal "+
				"digits without separators (e.g., 'a909502dd82ae41433e6f83886b00d4277a32a7b').", value),
		)
	}
}

// Thumbprint returns a validator that ensures the string is a SHA-1
// certificate thumbprint
func Thumbprint() validator.String {
	return thumbprintValidator{}
}

// ThumbprintOrEmpty returns a thumbprint validator that also accepts the
// empty string, used where "" means "clear the certificate reference"
func ThumbprintOrEmpty() validator.String {
	return thumbprintValidator{allowEmpty: true}
}
