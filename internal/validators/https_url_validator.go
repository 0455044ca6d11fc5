package validators

import (
	"context"
	"fmt"
	"net/url"

	"github.com/hashicorp/terraform-plugin-framework/schema/validator"
)

// httpsURLValidator validates that a string is an absolute https:// URL
type httpsURLValidator struct{}

// Description returns a plain text description of the validator's behavior
func (v httpsURLValidator) Description(ctx context.Context) string {
	return "Value must be an absolute https:// URL"
}

// MarkdownDescription returns a markdown formatted description of the validator's behavior
func (v httpsURLValidator) MarkdownDescription(ctx context.Context) string {
	return v.Description(ctx)
}

// ValidateString validates the URL format
func (v httpsURLValidator) ValidateString(ctx context.Context, req validator.StringRequest, resp *validator.StringResponse) {
	// Skip validation if value is unknown or null (during plan phase)
	if req.ConfigValue.IsUnknown() || req.ConfigValue.IsNull() {
		return
	}

	value := req.ConfigValue.ValueString()

	parsed, err := url.Parse(value)
	if err != nil || parsed.Scheme != "https" || parsed.Host == "" {
		resp.Diagnostics.AddAttributeError(
			req.Path,
			"Invalid Endpoint URL",
			fmt.Sprintf("Value %q is not an absolute https:// URL "+
				"(e.g., 'https://app.example.com/saml/acs').", value),
		)
	}
}

// HTTPSURL returns a validator that ensures the string is an absolute
// https:// URL
func HTTPSURL() validator.String {
	return httpsURLValidator{}
}
