package validators

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/terraform-plugin-framework/schema/validator"
	"golang.org/x/exp/slices"

	"github.com/secinfra/terraform-provider-adfs/internal/models"
)

// endpointProtocolValidator validates SAML endpoint protocol kinds
type endpointProtocolValidator struct{}

// Description returns a plain text description of the validator's behavior
func (v endpointProtocolValidator) Description(ctx context.Context) string {
	return fmt.Sprintf("Value must be one of: %s", strings.Join(models.SamlEndpointProtocols, ", "))
}

// MarkdownDescription returns a markdown formatted description of the validator's behavior
func (v endpointProtocolValidator) MarkdownDescription(ctx context.Context) string {
	return v.Description(ctx)
}

// ValidateString validates the protocol value
func (v endpointProtocolValidator) ValidateString(ctx context.Context, req validator.StringRequest, resp *validator.StringResponse) {
	// Skip validation if value is unknown or null (during plan phase)
	if req.ConfigValue.IsUnknown() || req.ConfigValue.IsNull() {
		return
	}

	value := req.ConfigValue.ValueString()

	if !slices.Contains(models.SamlEndpointProtocols, value) {
		resp.Diagnostics.AddAttributeError(
			req.Path,
			"Invalid Endpoint Protocol",
			fmt.Sprintf("Value %q is not a supported SAML endpoint protocol. Must be one of: %s.",
				value, strings.Join(models.SamlEndpointProtocols, ", ")),
		)
	}
}

// EndpointProtocol returns a validator that ensures the string is a
// supported SAML endpoint protocol kind
func EndpointProtocol() validator.String {
	return endpointProtocolValidator{}
}

// endpointBindingValidator validates SAML endpoint bindings
type endpointBindingValidator struct{}

// Description returns a plain text description of the validator's behavior
func (v endpointBindingValidator) Description(ctx context.Context) string {
	return fmt.Sprintf("Value must be one of: %s", strings.Join(models.SamlEndpointBindings, ", "))
}

// MarkdownDescription returns a markdown formatted description of the validator's behavior
func (v endpointBindingValidator) MarkdownDescription(ctx context.Context) string {
	return v.Description(ctx)
}

// ValidateString validates the binding value
func (v endpointBindingValidator) ValidateString(ctx context.Context, req validator.StringRequest, resp *validator.StringResponse) {
	// Skip validation if value is unknown or null (during plan phase)
	if req.ConfigValue.IsUnknown() || req.ConfigValue.IsNull() {
		return
	}

	value := req.ConfigValue.ValueString()

	if !slices.Contains(models.SamlEndpointBindings, value) {
		resp.Diagnostics.AddAttributeError(
			req.Path,
			"Invalid Endpoint Binding",
			fmt.Sprintf("Value %q is not a supported SAML binding. Must be one of: %s.",
				value, strings.Join(models.SamlEndpointBindings, ", ")),
		)
	}
}

// EndpointBinding returns a validator that ensures the string is a
// supported SAML endpoint binding
func EndpointBinding() validator.String {
	return endpointBindingValidator{}
}
