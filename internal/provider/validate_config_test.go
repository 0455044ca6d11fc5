package provider

import (
	"context"
	"testing"

	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/hashicorp/terraform-plugin-framework/resource"
	"github.com/hashicorp/terraform-plugin-framework/tfsdk"
	"github.com/hashicorp/terraform-plugin-go/tftypes"
)

// validateConfig runs a resource's ValidateConfig against a raw config
// built from the resource's own schema, with every attribute null except
// the ones supplied.
func validateConfig(t *testing.T, r resource.ResourceWithValidateConfig, attrs map[string]tftypes.Value) diag.Diagnostics {
	t.Helper()

	ctx := context.Background()
	schemaResp := &resource.SchemaResponse{}
	r.Schema(ctx, resource.SchemaRequest{}, schemaResp)
	if schemaResp.Diagnostics.HasError() {
		t.Fatalf("Schema() diagnostics: %v", schemaResp.Diagnostics)
	}

	objType, ok := schemaResp.Schema.Type().TerraformType(ctx).(tftypes.Object)
	if !ok {
		t.Fatalf("schema type is not an object")
	}

	values := map[string]tftypes.Value{}
	for name, attrType := range objType.AttributeTypes {
		values[name] = tftypes.NewValue(attrType, nil)
	}
	for name, value := range attrs {
		if _, known := values[name]; !known {
			t.Fatalf("attribute %q not in schema", name)
		}
		values[name] = value
	}

	req := resource.ValidateConfigRequest{
		Config: tfsdk.Config{
			Schema: schemaResp.Schema,
			Raw:    tftypes.NewValue(objType, values),
		},
	}
	resp := &resource.ValidateConfigResponse{}
	r.ValidateConfig(ctx, req, resp)
	return resp.Diagnostics
}

// credentialValue builds a raw username/password nested attribute value
func credentialValue(username, password string) tftypes.Value {
	credType := tftypes.Object{AttributeTypes: map[string]tftypes.Type{
		"username": tftypes.String,
		"password": tftypes.String,
	}}
	return tftypes.NewValue(credType, map[string]tftypes.Value{
		"username": tftypes.NewValue(tftypes.String, username),
		"password": tftypes.NewValue(tftypes.String, password),
	})
}

func stringValue(s string) tftypes.Value {
	return tftypes.NewValue(tftypes.String, s)
}

func adminConfigurationValue(overlay map[string]string) tftypes.Value {
	mapType := tftypes.Map{ElementType: tftypes.String}
	values := map[string]tftypes.Value{}
	for k, v := range overlay {
		values[k] = tftypes.NewValue(tftypes.String, v)
	}
	return tftypes.NewValue(mapType, values)
}

func hasErrorSummary(diags diag.Diagnostics, summary string) bool {
	for _, d := range diags.Errors() {
		if d.Summary() == summary {
			return true
		}
	}
	return false
}

func TestFarmValidateConfig(t *testing.T) {
	const thumbprint = "a909502dd82ae41433e6f83886b00d4277a32a7b"
	const gmsa = "EXAMPLE\\adfsgmsa$"

	tests := []struct {
		name        string
		attrs       map[string]tftypes.Value
		wantSummary string
	}{
		{
			name: "valid thumbprint and gmsa",
			attrs: map[string]tftypes.Value{
				"service_name":                     stringValue("fs.example.com"),
				"certificate_thumbprint":           stringValue(thumbprint),
				"group_service_account_identifier": stringValue(gmsa),
			},
		},
		{
			name: "valid subject and service account",
			attrs: map[string]tftypes.Value{
				"service_name":               stringValue("fs.example.com"),
				"certificate_subject":        stringValue("CN=fs.example.com"),
				"service_account_credential": credentialValue("EXAMPLE\\svc-adfs", "Password123!"),
			},
		},
		{
			name: "both certificate references",
			attrs: map[string]tftypes.Value{
				"service_name":                     stringValue("fs.example.com"),
				"certificate_thumbprint":           stringValue(thumbprint),
				"certificate_subject":              stringValue("CN=fs.example.com"),
				"group_service_account_identifier": stringValue(gmsa),
			},
			wantSummary: "Conflicting Certificate Reference",
		},
		{
			name: "no certificate reference",
			attrs: map[string]tftypes.Value{
				"service_name":                     stringValue("fs.example.com"),
				"group_service_account_identifier": stringValue(gmsa),
			},
			wantSummary: "Missing Certificate Reference",
		},
		{
			name: "both service identities",
			attrs: map[string]tftypes.Value{
				"service_name":                     stringValue("fs.example.com"),
				"certificate_thumbprint":           stringValue(thumbprint),
				"service_account_credential":       credentialValue("EXAMPLE\\svc-adfs", "Password123!"),
				"group_service_account_identifier": stringValue(gmsa),
			},
			wantSummary: "Conflicting Service Identity",
		},
		{
			name: "no service identity",
			attrs: map[string]tftypes.Value{
				"service_name":           stringValue("fs.example.com"),
				"certificate_thumbprint": stringValue(thumbprint),
			},
			wantSummary: "Missing Service Identity",
		},
		{
			name: "unknown admin configuration key",
			attrs: map[string]tftypes.Value{
				"service_name":                     stringValue("fs.example.com"),
				"certificate_thumbprint":           stringValue(thumbprint),
				"group_service_account_identifier": stringValue(gmsa),
				"admin_configuration": adminConfigurationValue(map[string]string{
					"dkm_containr_dn": "CN=Typo",
				}),
			},
			wantSummary: "Invalid Admin Configuration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := validateConfig(t, &farmResource{}, tt.attrs)

			if tt.wantSummary == "" {
				if diags.HasError() {
					t.Errorf("unexpected diagnostics: %v", diags)
				}
				return
			}
			if !hasErrorSummary(diags, tt.wantSummary) {
				t.Errorf("diagnostics %v missing error %q", diags, tt.wantSummary)
			}
		})
	}
}

func TestFarmNodeValidateConfig(t *testing.T) {
	const thumbprint = "a909502dd82ae41433e6f83886b00d4277a32a7b"
	const gmsa = "EXAMPLE\\adfsgmsa$"

	tests := []struct {
		name        string
		attrs       map[string]tftypes.Value
		wantSummary string
	}{
		{
			name: "valid join",
			attrs: map[string]tftypes.Value{
				"server_name":                      stringValue("adfs02.corp.example.com"),
				"primary_server":                   stringValue("adfs01.corp.example.com"),
				"certificate_thumbprint":           stringValue(thumbprint),
				"group_service_account_identifier": stringValue(gmsa),
			},
		},
		{
			name: "both certificate references",
			attrs: map[string]tftypes.Value{
				"server_name":                      stringValue("adfs02.corp.example.com"),
				"primary_server":                   stringValue("adfs01.corp.example.com"),
				"certificate_thumbprint":           stringValue(thumbprint),
				"certificate_subject":              stringValue("CN=fs.example.com"),
				"group_service_account_identifier": stringValue(gmsa),
			},
			wantSummary: "Conflicting Certificate Reference",
		},
		{
			name: "no certificate reference",
			attrs: map[string]tftypes.Value{
				"server_name":                      stringValue("adfs02.corp.example.com"),
				"primary_server":                   stringValue("adfs01.corp.example.com"),
				"group_service_account_identifier": stringValue(gmsa),
			},
			wantSummary: "Missing Certificate Reference",
		},
		{
			name: "both service identities",
			attrs: map[string]tftypes.Value{
				"server_name":                      stringValue("adfs02.corp.example.com"),
				"primary_server":                   stringValue("adfs01.corp.example.com"),
				"certificate_thumbprint":           stringValue(thumbprint),
				"service_account_credential":       credentialValue("EXAMPLE\\svc-adfs", "Password123!"),
				"group_service_account_identifier": stringValue(gmsa),
			},
			wantSummary: "Conflicting Service Identity",
		},
		{
			name: "no service identity",
			attrs: map[string]tftypes.Value{
				"server_name":            stringValue("adfs02.corp.example.com"),
				"primary_server":         stringValue("adfs01.corp.example.com"),
				"certificate_thumbprint": stringValue(thumbprint),
			},
			wantSummary: "Missing Service Identity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := validateConfig(t, &farmNodeResource{}, tt.attrs)

			if tt.wantSummary == "" {
				if diags.HasError() {
					t.Errorf("unexpected diagnostics: %v", diags)
				}
				return
			}
			if !hasErrorSummary(diags, tt.wantSummary) {
				t.Errorf("diagnostics %v missing error %q", diags, tt.wantSummary)
			}
		})
	}
}
