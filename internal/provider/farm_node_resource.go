// Package provider implements the adfs_farm_node resource
package provider

import (
	"context"
	"fmt"

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
	_ resource.Resource                   = &farmNodeResource{}
	_ resource.ResourceWithConfigure      = &farmNodeResource{}
	_ resource.ResourceWithImportState    = &farmNodeResource{}
	_ resource.ResourceWithValidateConfig = &farmNodeResource{}
)

// NewFarmNodeResource is a helper function to simplify the provider implementation
func NewFarmNodeResource() resource.Resource {
	return &farmNodeResource{}
}

// farmNodeResource is the resource implementation
type farmNodeResource struct {
	providerData *ProviderData
}

// farmNodeDescriptor declares the comparable fields of the farm node kind.
// The join credential is write-only and never compared.
func farmNodeDescriptor() *reconcile.Descriptor[models.FarmNodeAPI] {
	return &reconcile.Descriptor[models.FarmNodeAPI]{
		Kind: "farm_node",
		Fields: []reconcile.Field[models.FarmNodeAPI]{
			reconcile.StringField("primary_server", func(n models.FarmNodeAPI) *string { return n.PrimaryServer }),
			reconcile.StringField("certificate_thumbprint", func(n models.FarmNodeAPI) *string { return n.CertificateThumbprint }),
			reconcile.StringField("group_service_account_identifier", func(n models.FarmNodeAPI) *string { return n.GroupServiceAccount }),
		},
	}
}

func (r *farmNodeResource) engine() *reconcile.Engine[string, models.FarmNodeAPI] {
	return reconcile.NewEngine(farmNodeDescriptor(), r.providerData.Nodes)
}

// Metadata returns the resource type name
func (r *farmNodeResource) Metadata(ctx context.Context, req resource.MetadataRequest, resp *resource.MetadataResponse) {
	resp.TypeName = req.ProviderTypeName + "_farm_node"
}

// Schema defines the schema for the resource
func (r *farmNodeResource) Schema(ctx context.Context, req resource.SchemaRequest, resp *resource.SchemaResponse) {
	resp.Schema = schema.Schema{
		Description: "Joins a secondary server to the federation farm. Creating this resource " +
			"joins the node; destroying it removes the node from the farm.",

		Attributes: map[string]schema.Attribute{
			"id": schema.StringAttribute{
				Description: "Resource identifier, equal to the node's server name",
				Computed:    true,
				PlanModifiers: []planmodifier.String{
					stringplanmodifier.UseStateForUnknown(),
				},
			},
			"server_name": schema.StringAttribute{
				Description: "Name of the server joining the farm. Immutable once joined.",
				Required:    true,
				Validators: []validator.String{
					stringvalidator.LengthAtLeast(1),
				},
				PlanModifiers: []planmodifier.String{
					stringplanmodifier.RequiresReplace(),
				},
			},
			"primary_server": schema.StringAttribute{
				Description: "Name of the primary farm node to join against",
				Required:    true,
				Validators: []validator.String{
					stringvalidator.LengthAtLeast(1),
				},
			},
			"certificate_thumbprint": schema.StringAttribute{
				Description: "Thumbprint of the service communication certificate on the joining " +
					"node. Mutually exclusive with certificate_subject.",
				Optional: true,
				Validators: []validator.String{
					validators.Thumbprint(),
				},
			},
			"certificate_subject": schema.StringAttribute{
				Description: "Subject of the service communication certificate on the joining node. " +
					"Mutually exclusive with certificate_thumbprint.",
				Optional: true,
				Validators: []validator.String{
					stringvalidator.LengthAtLeast(1),
				},
			},
			"service_account_credential": schema.SingleNestedAttribute{
				Description: "Standard service account, matching the farm's service identity. " +
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
				Description: "Group managed service account (gMSA) identifier. " +
					"Mutually exclusive with service_account_credential.",
				Optional: true,
				Validators: []validator.String{
					stringvalidator.LengthAtLeast(1),
				},
			},
			"resolved_certificate_thumbprint": schema.StringAttribute{
				Description: "Thumbprint of the certificate actually in use on the node",
				Computed:    true,
			},
		},
	}
}

// Configure adds the provider configured client to the resource
func (r *farmNodeResource) Configure(ctx context.Context, req resource.ConfigureRequest, resp *resource.ConfigureResponse) {
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

// ValidateConfig performs cross-field validation for the farm node resource
func (r *farmNodeResource) ValidateConfig(ctx context.Context, req resource.ValidateConfigRequest, resp *resource.ValidateConfigResponse) {
	var config models.FarmNodeModel
	resp.Diagnostics.Append(req.Config.Get(ctx, &config)...)
	if resp.Diagnostics.HasError() {
		return
	}

	hasThumbprint := !config.CertificateThumbprint.IsNull() && !config.CertificateThumbprint.IsUnknown()
	hasSubject := !config.CertificateSubject.IsNull() && !config.CertificateSubject.IsUnknown()
	if hasThumbprint && hasSubject {
		resp.Diagnostics.AddAttributeError(
			path.Root("certificate_subject"),
			"Conflicting Certificate Reference",
			"certificate_thumbprint and certificate_subject cannot both be set.",
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
}

// desiredNode builds the gateway model from the plan, resolving the
// certificate reference to a thumbprint.
func (r *farmNodeResource) desiredNode(ctx context.Context, plan *models.FarmNodeModel) (models.FarmNodeAPI, diag.Diagnostics) {
	var diags diag.Diagnostics

	thumbprint, err := resolveServiceCertificate(ctx, r.providerData.Certificates,
		plan.CertificateThumbprint.ValueString(), plan.CertificateSubject.ValueString())
	if err != nil {
		diags.Append(client.MapError(err, "resolve service certificate"))
		return models.FarmNodeAPI{}, diags
	}

	desired := models.FarmNodeAPI{
		ServerName:            plan.ServerName.ValueString(),
		PrimaryServer:         stringOrNil(plan.PrimaryServer),
		CertificateThumbprint: models.StringPtr(thumbprint),
		GroupServiceAccount:   stringOrNil(plan.GroupServiceAccountIdentifier),
	}
	if plan.ServiceAccountCredential != nil {
		desired.ServiceAccount = &models.CredentialAPI{
			Username: plan.ServiceAccountCredential.Username.ValueString(),
			Password: models.StringPtr(plan.ServiceAccountCredential.Password.ValueString()),
		}
	}
	return desired, diags
}

// Create joins the node to the farm and sets the initial Terraform state
func (r *farmNodeResource) Create(ctx context.Context, req resource.CreateRequest, resp *resource.CreateResponse) {
	if r.providerData == nil {
		resp.Diagnostics.AddError(
			"Unconfigured API Client",
			"Expected configured ProviderData. Please report this issue to the provider developers.",
		)
		return
	}

	var plan models.FarmNodeModel
	resp.Diagnostics.Append(req.Plan.Get(ctx, &plan)...)
	if resp.Diagnostics.HasError() {
		return
	}

	tflog.Info(ctx, "Joining farm node", map[string]interface{}{
		"server_name": plan.ServerName.ValueString(),
	})

	desired, diags := r.desiredNode(ctx, &plan)
	resp.Diagnostics.Append(diags...)
	if resp.Diagnostics.HasError() {
		return
	}

	action, err := r.engine().Set(ctx, desired.ServerName, desired, reconcile.EnsurePresent)
	if err != nil {
		tflog.Error(ctx, "Failed to join farm node", map[string]interface{}{
			"error": err.Error(),
		})
		resp.Diagnostics.Append(client.MapError(err, "join farm node"))
		return
	}

	plan.ID = plan.ServerName
	plan.ResolvedThumbprint = types.StringValue(*desired.CertificateThumbprint)

	tflog.Info(ctx, "Joined farm node", map[string]interface{}{
		"server_name": plan.ServerName.ValueString(),
		"action":      string(action),
	})

	resp.Diagnostics.Append(resp.State.Set(ctx, &plan)...)
}

// Read refreshes the Terraform state with the latest data
func (r *farmNodeResource) Read(ctx context.Context, req resource.ReadRequest, resp *resource.ReadResponse) {
	if r.providerData == nil {
		resp.Diagnostics.AddError(
			"Unconfigured API Client",
			"Expected configured ProviderData. Please report this issue to the provider developers.",
		)
		return
	}

	var state models.FarmNodeModel
	resp.Diagnostics.Append(req.State.Get(ctx, &state)...)
	if resp.Diagnostics.HasError() {
		return
	}

	serverName := state.ServerName.ValueString()
	tflog.Debug(ctx, "Reading farm node", map[string]interface{}{
		"server_name": serverName,
	})

	current, err := r.engine().Get(ctx, serverName)
	if err != nil {
		tflog.Error(ctx, "Failed to read farm node", map[string]interface{}{
			"error": err.Error(),
		})
		resp.Diagnostics.Append(client.MapError(err, "read farm node"))
		return
	}
	if !current.Exists {
		tflog.Warn(ctx, "Farm node not found, removing from state", map[string]interface{}{
			"server_name": serverName,
		})
		resp.State.RemoveResource(ctx)
		return
	}

	if !state.PrimaryServer.IsNull() {
		state.PrimaryServer = stringFromPtr(current.Current.PrimaryServer)
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

	state.ID = state.ServerName

	resp.Diagnostics.Append(resp.State.Set(ctx, &state)...)
}

// Update re-converges the node's join parameters
func (r *farmNodeResource) Update(ctx context.Context, req resource.UpdateRequest, resp *resource.UpdateResponse) {
	if r.providerData == nil {
		resp.Diagnostics.AddError(
			"Unconfigured API Client",
			"Expected configured ProviderData. Please report this issue to the provider developers.",
		)
		return
	}

	var plan models.FarmNodeModel
	resp.Diagnostics.Append(req.Plan.Get(ctx, &plan)...)
	if resp.Diagnostics.HasError() {
		return
	}

	tflog.Info(ctx, "Updating farm node", map[string]interface{}{
		"server_name": plan.ServerName.ValueString(),
	})

	desired, diags := r.desiredNode(ctx, &plan)
	resp.Diagnostics.Append(diags...)
	if resp.Diagnostics.HasError() {
		return
	}

	action, err := r.engine().Set(ctx, desired.ServerName, desired, reconcile.EnsurePresent)
	if err != nil {
		tflog.Error(ctx, "Failed to update farm node", map[string]interface{}{
			"error": err.Error(),
		})
		resp.Diagnostics.Append(client.MapError(err, "update farm node"))
		return
	}

	plan.ID = plan.ServerName
	plan.ResolvedThumbprint = types.StringValue(*desired.CertificateThumbprint)

	tflog.Info(ctx, "Updated farm node", map[string]interface{}{
		"server_name": plan.ServerName.ValueString(),
		"action":      string(action),
	})

	resp.Diagnostics.Append(resp.State.Set(ctx, &plan)...)
}

// Delete removes the node from the farm
func (r *farmNodeResource) Delete(ctx context.Context, req resource.DeleteRequest, resp *resource.DeleteResponse) {
	if r.providerData == nil {
		resp.Diagnostics.AddError(
			"Unconfigured API Client",
			"Expected configured ProviderData. Please report this issue to the provider developers.",
		)
		return
	}

	var state models.FarmNodeModel
	resp.Diagnostics.Append(req.State.Get(ctx, &state)...)
	if resp.Diagnostics.HasError() {
		return
	}

	serverName := state.ServerName.ValueString()
	tflog.Info(ctx, "Removing farm node", map[string]interface{}{
		"server_name": serverName,
	})

	if _, err := r.engine().Set(ctx, serverName, models.FarmNodeAPI{ServerName: serverName}, reconcile.EnsureAbsent); err != nil {
		tflog.Error(ctx, "Failed to remove farm node", map[string]interface{}{
			"error": err.Error(),
		})
		resp.Diagnostics.Append(client.MapError(err, "remove farm node"))
		return
	}

	tflog.Info(ctx, "Removed farm node", map[string]interface{}{
		"server_name": serverName,
	})
}

// ImportState imports an existing farm node into Terraform state by server name
func (r *farmNodeResource) ImportState(ctx context.Context, req resource.ImportStateRequest, resp *resource.ImportStateResponse) {
	resp.Diagnostics.Append(resp.State.SetAttribute(ctx, path.Root("server_name"), req.ID)...)
	resp.Diagnostics.Append(resp.State.SetAttribute(ctx, path.Root("id"), req.ID)...)

	tflog.Info(ctx, "Imported farm node", map[string]interface{}{
		"server_name": req.ID,
	})
}
