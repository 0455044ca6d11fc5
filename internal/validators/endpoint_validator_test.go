package validators

import (
	"context"
	"testing"

	"github.com/hashicorp/terraform-plugin-framework/path"
	"github.com/hashicorp/terraform-plugin-framework/schema/validator"
	"github.com/hashicorp/terraform-plugin-framework/types"
)

func TestEndpointProtocolValidator(t *testing.T) {
	tests := []struct {
		name      string
		value     types.String
		expectErr bool
	}{
		{
			name:      "assertion consumer",
			value:     types.StringValue("SAMLAssertionConsumer"),
			expectErr: false,
		},
		{
			name:      "single sign on",
			value:     types.StringValue("SAMLSingleSignOn"),
			expectErr: false,
		},
		{
			name:      "logout",
			value:     types.StringValue("SAMLLogout"),
			expectErr: false,
		},
		{
			name:      "artifact resolution",
			value:     types.StringValue("SAMLArtifactResolution"),
			expectErr: false,
		},
		{
			name:      "wrong case",
			value:     types.StringValue("samlassertionconsumer"),
			expectErr: true,
		},
		{
			name:      "unknown protocol",
			value:     types.StringValue("WSFederation"),
			expectErr: true,
		},
		{
			name:      "empty string",
			value:     types.StringValue(""),
			expectErr: true,
		},
		{
			name:      "null value (allowed)",
			value:     types.StringNull(),
			expectErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := EndpointProtocol()
			req := validator.StringRequest{
				Path:        path.Root("protocol"),
				ConfigValue: tt.value,
			}
			resp := &validator.StringResponse{}

			v.ValidateString(context.Background(), req, resp)

			hasError := resp.Diagnostics.HasError()
			if hasError != tt.expectErr {
				t.Errorf("EndpointProtocol() hasError = %v, expectErr %v", hasError, tt.expectErr)
			}
		})
	}
}

func TestEndpointBindingValidator(t *testing.T) {
	tests := []struct {
		name      string
		value     types.String
		expectErr bool
	}{
		{"post", types.StringValue("POST"), false},
		{"redirect", types.StringValue("Redirect"), false},
		{"artifact", types.StringValue("Artifact"), false},
		{"wrong case", types.StringValue("post"), true},
		{"unknown binding", types.StringValue("SOAP"), true},
		{"null value (allowed)", types.StringNull(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := EndpointBinding()
			req := validator.StringRequest{
				Path:        path.Root("binding"),
				ConfigValue: tt.value,
			}
			resp := &validator.StringResponse{}

			v.ValidateString(context.Background(), req, resp)

			hasError := resp.Diagnostics.HasError()
			if hasError != tt.expectErr {
				t.Errorf("EndpointBinding() hasError = %v, expectErr %v", hasError, tt.expectErr)
			}
		})
	}
}
