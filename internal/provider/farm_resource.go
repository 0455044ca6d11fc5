// Package provider implements the adfs_farm resource
package provider

import (
	"context"
	"fmt"

	"github.com/hashicorp/terraform-plugin-framework-validators/int64validator"
	"github.com/hashicorp/terraform-plugin-framework-validators/stringvalidator"
	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/hashicorp/terraform-plugin-framework/path"
	"github.com/hashicorp/terraform-plugin-framework/resource"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema/planmodifier"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema/stringplanmodifier"
	"github.com/hashicorp/terraform-plugin-framework/schema/validator"
	"github.com/hashicorp/terraform-plugin-framework/types"
	"github.com/hashicorp/terraform-plugin-log/tflog"

	"github.com/secinfra/terraform-provider-adfs/internal/client"
	"github.com/secinfra/terraform-provider-adfs/internal/models"
	"github.com/secinfra/terraform-provider-adfs/internal/reconcile"
	"github.com/secinfra/terraform-provider-adfs/internal/validators"
)

// Ensure provider defined types fully satisfy framework interfaces
var (
	_ resource.Resource                   = &farmResource{}
	_ resource.ResourceWithConfigure      = &farmResource{}
	_ resource.ResourceWithImportState    = &farmResource{}
	_ resource.ResourceWithValidateConfig = &farmResource{}
)

// NewFarmResource is a helper function to simplify the provider implementation
func NewFarmResource() resource.Resource {
	return &farmResource{}
}

// farmResource is the resource implementation
type farmResource struct {
	providerData *ProviderData
}

// farmDescriptor declares the comparable fields of the farm kind.
// Credentials are write-only join parameters and never compared.
func farmDescriptor() *reconcile.Descriptor[models.FarmAPI] {
	return &reconcile.Descriptor[models.FarmAPI]{
		Kind: "farm",
		Fields: []reconcile.Field[models.FarmAPI]{
			reconcile.StringField("display_name", func(f models.FarmAPI) *string { return f.DisplayName }),
			reconcile.StringField("certificate_thumbprint", func(f models.FarmAPI) *string { return f.CertificateThumbprint }),
			reconcile.Int64Field("ssl_port", func(f models.FarmAPI) *int64 { return f.SSLPort }),
			reconcile.StringField("group_service_account_identifier", func(f models.FarmAPI) *string { return f.GroupServiceAccount }),
			reconcile.MapField("admin_configuration", func(f models.FarmAPI) map[string]string { return f.AdminConfiguration }),
		},
	}
}

func (r *farmResource) engine() *reconcile.Engine[string, models.FarmAPI] {
	return reconcile.NewEngine(farmDescriptor(), r.providerData.Farm)
}

// Metadata returns the resource type name
func (r *farmResource) Metadata(ctx context.Context, req resource.MetadataRequest, resp *resource.MetadataResponse) {
	resp.TypeName = req.ProviderTypeName + "_farm"
}

// Schema defines the schema for the resource
func (r *farmResource) Schema(ctx context.Context, req resource.SchemaRequest, resp *resource.SchemaResponse) {
	resp.Schema = schema.Schema{
		Description: "Manages the AD FS federation service farm. Creating this resource installs " +
			"the federation service on the primary node; destroying it uninstalls the service. " +
			"Exactly one of certificate_thumbprint or certificate_subject selects the service " +
			"certificate, and exactly one of service_account_credential or " +
			"group_service_account_identifier selects the service identity.",

		Attributes: map[string]schema.Attribute{
			"id": schema.StringAttribute{
				Description: "Resource identifier, equal to the federation service name",
				Computed:    true,
				PlanModifiers: []planmodifier.String{
					stringplanmodifier.UseStateForUnknown(),
				},
			},
			"service_name": schema.StringAttribute{
				Description: "Federation service name (e.g., sts.corp.example.com). Immutable once " +
					"the farm is installed.",
				Required: true,
				Validators: []validator.String{
					stringvalidator.LengthAtLeast(1),
				},
				PlanModifiers: []planmodifier.String{
					stringplanmodifier.RequiresReplace(),
				},
			},
			"display_name": schema.StringAttribute{
				Description: "Federation service display name shown on sign-in pages",
				Optional:    true,
			},
			"certificate_thumbprint": schema.StringAttribute{
				Description: "Thumbprint of the service communication certificate in the machine " +
					"store. Mutually exclusive with certificate_subject.",
				Optional: true,
				Validators: []validator.String{
					validators.Thumbprint(),
				},
			},
			"certificate_subject": schema.StringAttribute{
				Description: "Subject of the service communication certificate. The certificate " +
					"with the longest remaining validity among those matching is selected. " +
					"Mutually exclusive with certificate_thumbprint.",
				Optional: true,
				Validators: []validator.String{
					stringvalidator.LengthAtLeast(1),
				},
			},
			"ssl_port": schema.Int64Attribute{
				Description: "TLS port of the federation service. Defaults to the gateway's " +
					"standard port when unset.",
				Optional: true,
				Validators: []validator.Int64{
					int64validator.Between(1, 65535),
				},
			},
			"install_credential": schema.SingleNestedAttribute{
				Description: "Local administrator credential used only during installation. " +
					"Write-only; never returned by the admin gateway.",
				Optional: true,
				Attributes: map[string]schema.Attribute{
					"username": schema.StringAttribute{
						Description: "Account username (DOMAIN\\user or UPN)",
						Required:    true,
					},
					"password": schema.StringAttribute{
						Description: "Account password",
						Required:    true,
						Sensitive:   true,
					},
				},
			},
			"service_account_credential": schema.SingleNestedAttribute{
				Description: "Standard service account running the federation service. " +
					"Mutually exclusive with group_service_account_identifier.",
				Optional: true,
				Attributes: map[string]schema.Attribute{
					"username": schema.StringAttribute{
						Description: "Account username (DOMAIN\\user or UPN)",
						Required:    true,
					},
					"password": schema.StringAttribute{
						Description: "Account password",
						Required:    true,
						Sensitive:   true,
					},
				},
			},
			"group_service_account_identifier": schema.StringAttribute{
				Description: "Group managed service account (gMSA) identifier, e.g. CORP\\adfsgmsa$. " +
					"Mutually exclusive with service_account_credential.",
				Optional: true,
				Validators: []validator.String{
					stringvalidator.LengthAtLeast(1),
				},
			},
			"admin_configuration": schema.MapAttribute{
				Description: "Structured admin-configuration overlay. Supported keys: " +
					"dkm_container_dn, database_connection_string, farm_behavior_level, " +
					"audit_level. Unknown keys are rejected before any gateway call.",
				Optional:    true,
				ElementType: types.StringType,
			},
			"resolved_certificate_thumbprint": schema.StringAttribute{
				Description: "Thumbprint of the certificate actually in use, resolved from " +
					"certificate_thumbprint or certificate_subject",
				Computed: true,
			},
		},
	}
}

// Configure adds the provider configured client to the resource
func (r *farmResource) Configure(ctx context.Context, req resource.ConfigureRequest, resp *resource.ConfigureResponse) {
	// Prevent panic if the provider has not been configured
	if req.ProviderData == nil {
		return
	}

	providerData, ok := req.ProviderData.(*ProviderData)
	if !ok {
		resp.Diagnostics.AddError(
			"Unexpected Resource Configure Type",
			fmt.Sprintf("Expected *ProviderData, got: %T. Please report this issue to the provider developers.", req.ProviderData),
		)
		return
	}

	r.providerData = providerData
}

// ValidateConfig performs cross-field validation for the farm resource.
// All configuration errors surface here, before any gateway call.
func (r *farmResource) ValidateConfig(ctx context.Context, req resource.ValidateConfigRequest, resp *resource.ValidateConfigResponse) {
	var config models.FarmModel
	resp.Diagnostics.Append(req.Config.Get(ctx, &config)...)
	if resp.Diagnostics.HasError() {
		return
	}

	// Exactly one certificate reference
	hasThumbprint := !config.CertificateThumbprint.IsNull() && !config.CertificateThumbprint.IsUnknown()
	hasSubject := !config.CertificateSubject.IsNull() && !config.CertificateSubject.IsUnknown()
	if hasThumbprint && hasSubject {
		resp.Diagnostics.AddAttributeError(
			path.Root("certificate_subject"),
			"Conflicting Certificate Reference",
			"certificate_thumbprint and certificate_subject cannot both be set. "+
				"Choose one way to reference the service certificate.",
		)
	}
	if !hasThumbprint && !hasSubject &&
		!config.CertificateThumbprint.IsUnknown() && !config.CertificateSubject.IsUnknown() {
		resp.Diagnostics.AddAttributeError(
			path.Root("certificate_thumbprint"),
			"Missing Certificate Reference",
			"One of certificate_thumbprint or certificate_subject is required.",
		)
	}

	// Exactly one service identity
	hasServiceAccount := config.ServiceAccountCredential != nil
	hasGMSA := !config.GroupServiceAccountIdentifier.IsNull() && !config.GroupServiceAccountIdentifier.IsUnknown()
	if hasServiceAccount && hasGMSA {
		resp.Diagnostics.AddAttributeError(
			path.Root("group_service_account_identifier"),
			"Conflicting Service Identity",
			"service_account_credential and group_service_account_identifier cannot both be set.",
		)
	}
	if !hasServiceAccount && !hasGMSA && !config.GroupServiceAccountIdentifier.IsUnknown() {
		resp.Diagnostics.AddAttributeError(
			path.Root("service_account_credential"),
			"Missing Service Identity",
			"One of service_account_credential or group_service_account_identifier is required.",
		)
	}

	// Statically validate the admin-configuration overlay
	if !config.AdminConfiguration.IsNull() && !config.AdminConfiguration.IsUnknown() {
		overlay, diags := stringMapOrNil(ctx, config.AdminConfiguration)
		resp.Diagnostics.Append(diags...)
		if resp.Diagnostics.HasError() {
			return
		}
		if _, err := client.DecodeAdminConfiguration(overlay); err != nil {
			resp.Diagnostics.AddAttributeError(
				path.Root("admin_configuration"),
				"Invalid Admin Configuration",
				err.Error(),
			)
		}
	}
}

// desiredFarm builds the gateway model from the plan, resolving the
// certificate reference to a thumbprint.
func (r *farmResource) desiredFarm(ctx context.Context, plan *models.FarmModel) (models.FarmAPI, diag.Diagnostics) {
	var diags diag.Diagnostics

	overlay, mapDiags := stringMapOrNil(ctx, plan.AdminConfiguration)
	diags.Append(mapDiags...)
	if diags.HasError() {
		return models.FarmAPI{}, diags
	}

	thumbprint, err := resolveServiceCertificate(ctx, r.providerData.Certificates,
		plan.CertificateThumbprint.ValueString(), plan.CertificateSubject.ValueString())
	if err != nil {
		diags.Append(client.MapError(err, "resolve service certificate"))
		return models.FarmAPI{}, diags
	}

	desired := models.FarmAPI{
		ServiceName:           plan.ServiceName.ValueString(),
		DisplayName:           stringOrNil(plan.DisplayName),
		CertificateThumbprint: models.StringPtr(thumbprint),
		SSLPort:               int64OrNil(plan.SSLPort),
		GroupServiceAccount:   stringOrNil(plan.GroupServiceAccountIdentifier),
		AdminConfiguration:    overlay,
	}
	if plan.ServiceAccountCredential != nil {
		desired.ServiceAccount = &models.CredentialAPI{
			Username: plan.ServiceAccountCredential.Username.ValueString(),
			Password: models.StringPtr(plan.ServiceAccountCredential.Password.ValueString()),
		}
	}
	if plan.InstallCredential != nil {
		desired.InstallCredential = &models.CredentialAPI{
			Username: plan.InstallCredential.Username.ValueString(),
			Password: models.StringPtr(plan.InstallCredential.Password.ValueString()),
		}
	}
	return desired, diags
}

// Create installs the federation service and sets the initial Terraform state
func (r *farmResource) Create(ctx context.Context, req resource.CreateRequest, resp *resource.CreateResponse) {
	if r.providerData == nil {
		resp.Diagnostics.AddError(
			"Unconfigured API Client",
			"Expected configured ProviderData. Please report this issue to the provider developers.",
		)
		return
	}

	var plan models.FarmModel
	resp.Diagnostics.Append(req.Plan.Get(ctx, &plan)...)
	if resp.Diagnostics.HasError() {
		return
	}

	tflog.Info(ctx, "Installing federation farm", map[string]interface{}{
		"service_name": plan.ServiceName.ValueString(),
	})

	desired, diags := r.desiredFarm(ctx, &plan)
	resp.Diagnostics.Append(diags...)
	if resp.Diagnostics.HasError() {
		return
	}

	action, err := r.engine().Set(ctx, desired.ServiceName, desired, reconcile.EnsurePresent)
	if err != nil {
		tflog.Error(ctx, "Failed to install farm", map[string]interface{}{
			"error": err.Error(),
		})
		resp.Diagnostics.Append(client.MapError(err, "install farm"))
		return
	}

	plan.ID = plan.ServiceName
	plan.ResolvedThumbprint = types.StringValue(*desired.CertificateThumbprint)

	tflog.Info(ctx, "Installed federation farm", map[string]interface{}{
		"service_name": plan.ServiceName.ValueString(),
		"action":       string(action),
	})

	resp.Diagnostics.Append(resp.State.Set(ctx, &plan)...)
}

// Read refreshes the Terraform state with the latest data
func (r *farmResource) Read(ctx context.Context, req resource.ReadRequest, resp *resource.ReadResponse) {
	if r.providerData == nil {
		resp.Diagnostics.AddError(
			"Unconfigured API Client",
			"Expected configured ProviderData. Please report this issue to the provider developers.",
		)
		return
	}

	var state models.FarmModel
	resp.Diagnostics.Append(req.State.Get(ctx, &state)...)
	if resp.Diagnostics.HasError() {
		return
	}

	serviceName := state.ServiceName.ValueString()
	tflog.Debug(ctx, "Reading farm", map[string]interface{}{
		"service_name": serviceName,
	})

	current, err := r.engine().Get(ctx, serviceName)
	if err != nil {
		tflog.Error(ctx, "Failed to read farm", map[string]interface{}{
			"error": err.Error(),
		})
		resp.Diagnostics.Append(client.MapError(err, "read farm"))
		return
	}
	if !current.Exists {
		tflog.Warn(ctx, "Farm not found, removing from state", map[string]interface{}{
			"service_name": serviceName,
		})
		resp.State.RemoveResource(ctx)
		return
	}

	// Refresh managed fields only; fields that are null in state are
	// unmanaged and stay out of drift detection.
	if !state.DisplayName.IsNull() {
		state.DisplayName = stringFromPtr(current.Current.DisplayName)
	}
	if !state.SSLPort.IsNull() {
		state.SSLPort = int64FromPtr(current.Current.SSLPort)
	}
	if !state.GroupServiceAccountIdentifier.IsNull() {
		state.GroupServiceAccountIdentifier = stringFromPtr(current.Current.GroupServiceAccount)
	}
	if current.Current.CertificateThumbprint != nil {
		state.ResolvedThumbprint = types.StringValue(*current.Current.CertificateThumbprint)
		if !state.CertificateThumbprint.IsNull() {
			state.CertificateThumbprint = types.StringValue(*current.Current.CertificateThumbprint)
		}
	}

	state.ID = state.ServiceName

	resp.Diagnostics.Append(resp.State.Set(ctx, &state)...)
}

// Update converges the farm toward the planned state
func (r *farmResource) Update(ctx context.Context, req resource.UpdateRequest, resp *resource.UpdateResponse) {
	if r.providerData == nil {
		resp.Diagnostics.AddError(
			"Unconfigured API Client",
			"Expected configured ProviderData. Please report this issue to the provider developers.",
		)
		return
	}

	var plan models.FarmModel
	resp.Diagnostics.Append(req.Plan.Get(ctx, &plan)...)
	if resp.Diagnostics.HasError() {
		return
	}

	tflog.Info(ctx, "Updating farm", map[string]interface{}{
		"service_name": plan.ServiceName.ValueString(),
	})

	desired, diags := r.desiredFarm(ctx, &plan)
	resp.Diagnostics.Append(diags...)
	if resp.Diagnostics.HasError() {
		return
	}

	action, err := r.engine().Set(ctx, desired.ServiceName, desired, reconcile.EnsurePresent)
	if err != nil {
		tflog.Error(ctx, "Failed to update farm", map[string]interface{}{
			"error": err.Error(),
		})
		resp.Diagnostics.Append(client.MapError(err, "update farm"))
		return
	}

	plan.ID = plan.ServiceName
	plan.ResolvedThumbprint = types.StringValue(*desired.CertificateThumbprint)

	tflog.Info(ctx, "Updated farm", map[string]interface{}{
		"service_name": plan.ServiceName.ValueString(),
		"action":       string(action),
	})

	resp.Diagnostics.Append(resp.State.Set(ctx, &plan)...)
}

// Delete uninstalls the federation service
func (r *farmResource) Delete(ctx context.Context, req resource.DeleteRequest, resp *resource.DeleteResponse) {
	if r.providerData == nil {
		resp.Diagnostics.AddError(
			"Unconfigured API Client",
			"Expected configured ProviderData. Please report this issue to the provider developers.",
		)
		return
	}

	var state models.FarmModel
	resp.Diagnostics.Append(req.State.Get(ctx, &state)...)
	if resp.Diagnostics.HasError() {
		return
	}

	serviceName := state.ServiceName.ValueString()
	tflog.Info(ctx, "Uninstalling farm", map[string]interface{}{
		"service_name": serviceName,
	})

	if _, err := r.engine().Set(ctx, serviceName, models.FarmAPI{ServiceName: serviceName}, reconcile.EnsureAbsent); err != nil {
		tflog.Error(ctx, "Failed to uninstall farm", map[string]interface{}{
			"error": err.Error(),
		})
		resp.Diagnostics.Append(client.MapError(err, "uninstall farm"))
		return
	}

	tflog.Info(ctx, "Uninstalled farm", map[string]interface{}{
		"service_name": serviceName,
	})
}

// ImportState imports an existing farm into Terraform state by service name
func (r *farmResource) ImportState(ctx context.Context, req resource.ImportStateRequest, resp *resource.ImportStateResponse) {
	resp.Diagnostics.Append(resp.State.SetAttribute(ctx, path.Root("service_name"), req.ID)...)
	resp.Diagnostics.Append(resp.State.SetAttribute(ctx, path.Root("id"), req.ID)...)

	tflog.Info(ctx, "Imported farm", map[string]interface{}{
		"service_name": req.ID,
	})
}
