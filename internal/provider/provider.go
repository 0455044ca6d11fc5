// Package provider implements the AD FS Terraform provider
package provider

import (
	"context"
	"os"
	"time"

	"github.com/hashicorp/terraform-plugin-framework/datasource"
	"github.com/hashicorp/terraform-plugin-framework/provider"
	"github.com/hashicorp/terraform-plugin-framework/provider/schema"
	"github.com/hashicorp/terraform-plugin-framework/resource"
	"github.com/hashicorp/terraform-plugin-framework/types"
	"github.com/hashicorp/terraform-plugin-log/tflog"

	"github.com/secinfra/terraform-provider-adfs/internal/client"
)

// Ensure the implementation satisfies the expected interfaces
var _ provider.Provider = &ADFSProvider{}

// ADFSProvider defines the provider implementation
type ADFSProvider struct {
	// version is set to the provider version on release
	version string
}

// ADFSProviderModel maps provider schema data to a Go type
type ADFSProviderModel struct {
	ServerURL             types.String `tfsdk:"server_url"`
	Username              types.String `tfsdk:"username"`
	Password              types.String `tfsdk:"password"`
	InsecureSkipVerify    types.Bool   `tfsdk:"insecure_skip_verify"`
	RequestTimeoutSeconds types.Int64  `tfsdk:"request_timeout_seconds"`
}

// ProviderData carries the configured admin gateway clients shared by all
// resources and data sources.
type ProviderData struct {
	Farm               *client.FarmClient
	Nodes              *client.NodeClient
	Trusts             *client.TrustClient
	Policy             *client.PolicyClient
	DeviceRegistration *client.DeviceRegistrationClient
	Certificates       *client.CertificatesClient
}

// New is a helper function to simplify provider server and testing implementation
func New(version string) func() provider.Provider {
	return func() provider.Provider {
		return &ADFSProvider{
			version: version,
		}
	}
}

// Metadata returns the provider type name
func (p *ADFSProvider) Metadata(ctx context.Context, req provider.MetadataRequest, resp *provider.MetadataResponse) {
	resp.TypeName = "adfs"
	resp.Version = p.version
}

// Schema defines the provider-level schema for configuration data
func (p *ADFSProvider) Schema(ctx context.Context, req provider.SchemaRequest, resp *provider.SchemaResponse) {
	resp.Schema = schema.Schema{
		Description: "Terraform provider for declarative management of an AD FS federation " +
			"service farm through its admin gateway.",
		Attributes: map[string]schema.Attribute{
			"server_url": schema.StringAttribute{
				Description: "Admin gateway base URL on the primary farm node " +
					"(e.g., https://sts.corp.example.com:8443). " +
					"Can also be set with the ADFS_SERVER_URL environment variable.",
				Optional: true,
			},
			"username": schema.StringAttribute{
				Description: "Farm administrator account, DOMAIN\\user or UPN format. " +
					"Can also be set with the ADFS_USERNAME environment variable.",
				Optional: true,
			},
			"password": schema.StringAttribute{
				Description: "Farm administrator password. " +
					"Can also be set with the ADFS_PASSWORD environment variable.",
				Optional:  true,
				Sensitive: true,
			},
			"insecure_skip_verify": schema.BoolAttribute{
				Description: "Skip TLS certificate verification when talking to the admin gateway. " +
					"Only intended for lab farms with self-signed certificates.",
				Optional: true,
			},
			"request_timeout_seconds": schema.Int64Attribute{
				Description: "Timeout in seconds for each admin gateway request. Defaults to 30.",
				Optional:    true,
			},
		},
	}
}

// Configure authenticates against the admin gateway and prepares the
// shared clients for data sources and resources
func (p *ADFSProvider) Configure(ctx context.Context, req provider.ConfigureRequest, resp *provider.ConfigureResponse) {
	var config ADFSProviderModel
	resp.Diagnostics.Append(req.Config.Get(ctx, &config)...)
	if resp.Diagnostics.HasError() {
		return
	}

	// Configuration values take precedence over environment variables
	serverURL := os.Getenv("ADFS_SERVER_URL")
	username := os.Getenv("ADFS_USERNAME")
	password := os.Getenv("ADFS_PASSWORD")

	if !config.ServerURL.IsNull() {
		serverURL = config.ServerURL.ValueString()
	}
	if !config.Username.IsNull() {
		username = config.Username.ValueString()
	}
	if !config.Password.IsNull() {
		password = config.Password.ValueString()
	}

	if serverURL == "" {
		resp.Diagnostics.AddError(
			"Missing Admin Gateway URL",
			"The provider requires server_url or the ADFS_SERVER_URL environment variable. "+
				"Point it at the admin gateway on the primary farm node.",
		)
	}
	if username == "" {
		resp.Diagnostics.AddError(
			"Missing Username",
			"The provider requires username or the ADFS_USERNAME environment variable.",
		)
	}
	if password == "" {
		resp.Diagnostics.AddError(
			"Missing Password",
			"The provider requires password or the ADFS_PASSWORD environment variable.",
		)
	}
	if resp.Diagnostics.HasError() {
		return
	}

	timeout := 30 * time.Second
	if !config.RequestTimeoutSeconds.IsNull() {
		timeout = time.Duration(config.RequestTimeoutSeconds.ValueInt64()) * time.Second
	}

	tflog.Info(ctx, "Configuring AD FS provider", map[string]interface{}{
		"server_url": serverURL,
	})

	restClient, err := client.Authenticate(ctx, &client.AuthConfig{
		ServerURL:          serverURL,
		Username:           username,
		Password:           password,
		Timeout:            timeout,
		InsecureSkipVerify: config.InsecureSkipVerify.ValueBool(),
	})
	if err != nil {
		resp.Diagnostics.Append(client.MapError(err, "configure provider"))
		return
	}

	providerData := &ProviderData{
		Farm:               client.NewFarmClient(restClient),
		Nodes:              client.NewNodeClient(restClient),
		Trusts:             client.NewTrustClient(restClient),
		Policy:             client.NewPolicyClient(restClient),
		DeviceRegistration: client.NewDeviceRegistrationClient(restClient),
		Certificates:       client.NewCertificatesClient(restClient),
	}

	resp.ResourceData = providerData
	resp.DataSourceData = providerData

	tflog.Info(ctx, "Configured AD FS provider")
}

// Resources defines the resources implemented in the provider
func (p *ADFSProvider) Resources(ctx context.Context) []func() resource.Resource {
	return []func() resource.Resource{
		NewFarmResource,
		NewFarmNodeResource,
		NewRelyingPartyTrustResource,
		NewSamlEndpointResource,
		NewGlobalAuthenticationPolicyResource,
		NewDeviceRegistrationResource,
	}
}

// DataSources defines the data sources implemented in the provider
func (p *ADFSProvider) DataSources(ctx context.Context) []func() datasource.DataSource {
	return []func() datasource.DataSource{
		NewCertificateDataSource,
	}
}
