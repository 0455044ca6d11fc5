// Package provider implements the adfs_certificate data source
package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/terraform-plugin-framework/datasource"
	"github.com/hashicorp/terraform-plugin-framework/datasource/schema"
	"github.com/hashicorp/terraform-plugin-framework/schema/validator"
	"github.com/hashicorp/terraform-plugin-framework/types"
	"github.com/hashicorp/terraform-plugin-log/tflog"

	"github.com/secinfra/terraform-provider-adfs/internal/certstore"
	"github.com/secinfra/terraform-provider-adfs/internal/client"
	"github.com/secinfra/terraform-provider-adfs/internal/models"
	"github.com/secinfra/terraform-provider-adfs/internal/validators"
)

// Ensure provider defined types fully satisfy framework interfaces
var (
	_ datasource.DataSource              = &certificateDataSource{}
	_ datasource.DataSourceWithConfigure = &certificateDataSource{}
)

// NewCertificateDataSource is a helper function to simplify the provider implementation
func NewCertificateDataSource() datasource.DataSource {
	return &certificateDataSource{}
}

// certificateDataSource is the data source implementation
type certificateDataSource struct {
	providerData *ProviderData
}

// Metadata returns the data source type name
func (d *certificateDataSource) Metadata(ctx context.Context, req datasource.MetadataRequest, resp *datasource.MetadataResponse) {
	resp.TypeName = req.ProviderTypeName + "_certificate"
}

// Schema defines the schema for the data source
func (d *certificateDataSource) Schema(ctx context.Context, req datasource.SchemaRequest, resp *datasource.SchemaResponse) {
	resp.Schema = schema.Schema{
		Description: "Selects a certificate from the primary node's machine store. All " +
			"populated criteria must match; among the matches, the certificate with the " +
			"longest remaining validity is selected. Expired certificates are skipped " +
			"unless allow_expired is set. Resolving to no certificate is an error.",

		Attributes: map[string]schema.Attribute{
			"store": schema.StringAttribute{
				Description: "Machine store to search. Defaults to \"My\".",
				Optional:    true,
			},
			"thumbprint": schema.StringAttribute{
				Description: "Exact thumbprint to match, case-insensitive",
				Optional:    true,
				Validators: []validator.String{
					validators.Thumbprint(),
				},
			},
			"friendly_name": schema.StringAttribute{
				Description: "Exact friendly name to match",
				Optional:    true,
			},
			"subject": schema.StringAttribute{
				Description: "Exact subject to match",
				Optional:    true,
			},
			"issuer": schema.StringAttribute{
				Description: "Exact issuer to match",
				Optional:    true,
			},
			"dns_names": schema.ListAttribute{
				Description: "DNS names the certificate must cover (subset match)",
				Optional:    true,
				ElementType: types.StringType,
			},
			"key_usages": schema.ListAttribute{
				Description: "Key usages the certificate must carry (subset match)",
				Optional:    true,
				ElementType: types.StringType,
			},
			"enhanced_key_usages": schema.ListAttribute{
				Description: "Enhanced key usages the certificate must carry (subset match)",
				Optional:    true,
				ElementType: types.StringType,
			},
			"allow_expired": schema.BoolAttribute{
				Description: "Consider certificates outside their validity window",
				Optional:    true,
			},

			"id": schema.StringAttribute{
				Description: "Thumbprint of the selected certificate",
				Computed:    true,
			},
			"resolved_thumbprint": schema.StringAttribute{
				Description: "Thumbprint of the selected certificate",
				Computed:    true,
			},
			"resolved_subject": schema.StringAttribute{
				Description: "Subject of the selected certificate",
				Computed:    true,
			},
			"not_before": schema.StringAttribute{
				Description: "Start of the selected certificate's validity window (RFC 3339)",
				Computed:    true,
			},
			"not_after": schema.StringAttribute{
				Description: "End of the selected certificate's validity window (RFC 3339)",
				Computed:    true,
			},
		},
	}
}

// Configure adds the provider configured client to the data source
func (d *certificateDataSource) Configure(ctx context.Context, req datasource.ConfigureRequest, resp *datasource.ConfigureResponse) {
	// Prevent panic if the provider has not been configured
	if req.ProviderData == nil {
		return
	}

	providerData, ok := req.ProviderData.(*ProviderData)
	if !ok {
		resp.Diagnostics.AddError(
			"Unexpected Data Source Configure Type",
			fmt.Sprintf("Expected *ProviderData, got: %T. Please report this issue to the provider developers.", req.ProviderData),
		)
		return
	}

	d.providerData = providerData
}

// Read selects the certificate matching the configured criteria
func (d *certificateDataSource) Read(ctx context.Context, req datasource.ReadRequest, resp *datasource.ReadResponse) {
	var config models.CertificateDataSourceModel
	resp.Diagnostics.Append(req.Config.Get(ctx, &config)...)
	if resp.Diagnostics.HasError() {
		return
	}

	dnsNames, diags := stringSliceOrNil(ctx, config.DNSNames)
	resp.Diagnostics.Append(diags...)
	keyUsages, diags := stringSliceOrNil(ctx, config.KeyUsages)
	resp.Diagnostics.Append(diags...)
	enhancedKeyUsages, diags := stringSliceOrNil(ctx, config.EnhancedKeyUsages)
	resp.Diagnostics.Append(diags...)
	if resp.Diagnostics.HasError() {
		return
	}

	criteria := certstore.Criteria{
		Thumbprint:        config.Thumbprint.ValueString(),
		FriendlyName:      config.FriendlyName.ValueString(),
		Subject:           config.Subject.ValueString(),
		Issuer:            config.Issuer.ValueString(),
		DNSNames:          dnsNames,
		KeyUsages:         keyUsages,
		EnhancedKeyUsages: enhancedKeyUsages,
		AllowExpired:      config.AllowExpired.ValueBool(),
	}

	tflog.Debug(ctx, "Selecting certificate", map[string]interface{}{
		"criteria": criteria.String(),
	})

	inventory, err := d.providerData.Certificates.ListCertificates(ctx, config.Store.ValueString())
	if err != nil {
		tflog.Error(ctx, "Failed to list certificates", map[string]interface{}{
			"error": err.Error(),
		})
		resp.Diagnostics.Append(client.MapError(err, "list certificates"))
		return
	}

	cert, err := certstore.ResolveOne(inventory, criteria)
	if err != nil {
		resp.Diagnostics.AddError(
			"No Matching Certificate",
			fmt.Sprintf("%s. Check the criteria against the certificates installed on the "+
				"primary farm node, or set allow_expired if an expired match is acceptable.", err),
		)
		return
	}

	config.ID = types.StringValue(cert.Thumbprint)
	config.ResolvedThumbprint = types.StringValue(cert.Thumbprint)
	config.ResolvedSubject = types.StringValue(cert.Subject)
	config.NotBefore = types.StringValue(cert.NotBefore.Format(time.RFC3339))
	config.NotAfter = types.StringValue(cert.NotAfter.Format(time.RFC3339))

	tflog.Debug(ctx, "Selected certificate", map[string]interface{}{
		"thumbprint": cert.Thumbprint,
	})

	resp.Diagnostics.Append(resp.State.Set(ctx, &config)...)
}
