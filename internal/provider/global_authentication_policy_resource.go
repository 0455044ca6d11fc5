// Package provider implements the adfs_global_authentication_policy resource
package provider

import (
	"context"
	"fmt"

	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/hashicorp/terraform-plugin-framework/path"
	"github.com/hashicorp/terraform-plugin-framework/resource"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema/planmodifier"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema/stringplanmodifier"
	"github.com/hashicorp/terraform-plugin-framework/types"
	"github.com/hashicorp/terraform-plugin-log/tflog"

	"github.com/secinfra/terraform-provider-adfs/internal/client"
	"github.com/secinfra/terraform-provider-adfs/internal/models"
	adfstypes "github.com/secinfra/terraform-provider-adfs/internal/provider/types"
	"github.com/secinfra/terraform-provider-adfs/internal/reconcile"
)

// globalPolicyID is the fixed identifier of the farm's single policy.
const globalPolicyID = "global"

// Ensure provider defined types fully satisfy framework interfaces
var (
	_ resource.Resource                = &globalAuthenticationPolicyResource{}
	_ resource.ResourceWithConfigure   = &globalAuthenticationPolicyResource{}
	_ resource.ResourceWithImportState = &globalAuthenticationPolicyResource{}
)

// NewGlobalAuthenticationPolicyResource is a helper function to simplify the provider implementation
func NewGlobalAuthenticationPolicyResource() resource.Resource {
	return &globalAuthenticationPolicyResource{}
}

// globalAuthenticationPolicyResource is the resource implementation
type globalAuthenticationPolicyResource struct {
	providerData *ProviderData
}

// globalAuthenticationPolicyDescriptor declares the comparable fields of
// the farm-wide policy. Provider lists carry set semantics.
func globalAuthenticationPolicyDescriptor() *reconcile.Descriptor[models.GlobalAuthenticationPolicyAPI] {
	return &reconcile.Descriptor[models.GlobalAuthenticationPolicyAPI]{
		Kind: "global_authentication_policy",
		Fields: []reconcile.Field[models.GlobalAuthenticationPolicyAPI]{
			reconcile.SetField("primary_intranet_authentication_providers",
				func(p models.GlobalAuthenticationPolicyAPI) []string { return p.PrimaryIntranetAuthenticationProviders }),
			reconcile.SetField("primary_extranet_authentication_providers",
				func(p models.GlobalAuthenticationPolicyAPI) []string { return p.PrimaryExtranetAuthenticationProviders }),
			reconcile.SetField("additional_authentication_providers",
				func(p models.GlobalAuthenticationPolicyAPI) []string { return p.AdditionalAuthenticationProviders }),
			reconcile.BoolField("device_authentication_enabled",
				func(p models.GlobalAuthenticationPolicyAPI) *bool { return p.DeviceAuthenticationEnabled }),
			reconcile.BoolField("windows_integrated_fallback_enabled",
				func(p models.GlobalAuthenticationPolicyAPI) *bool { return p.WindowsIntegratedFallbackEnabled }),
		},
	}
}

func (r *globalAuthenticationPolicyResource) engine() *reconcile.Engine[client.SingletonKey, models.GlobalAuthenticationPolicyAPI] {
	return reconcile.NewEngine(globalAuthenticationPolicyDescriptor(), r.providerData.Policy)
}

// Metadata returns the resource type name
func (r *globalAuthenticationPolicyResource) Metadata(ctx context.Context, req resource.MetadataRequest, resp *resource.MetadataResponse) {
	resp.TypeName = req.ProviderTypeName + "_global_authentication_policy"
}

// Schema defines the schema for the resource
func (r *globalAuthenticationPolicyResource) Schema(ctx context.Context, req resource.SchemaRequest, resp *resource.SchemaResponse) {
	resp.Schema = schema.Schema{
		Description: "Manages the farm-wide authentication policy. The farm carries exactly one " +
			"policy; this resource adopts it rather than creating it, and destroying the " +
			"resource only stops managing the policy. Provider lists compare as sets.",

		Attributes: map[string]schema.Attribute{
			"id": schema.StringAttribute{
				Description: "Resource identifier, always \"global\"",
				Computed:    true,
				PlanModifiers: []planmodifier.String{
					stringplanmodifier.UseStateForUnknown(),
				},
			},
			"primary_intranet_authentication_providers": schema.ListAttribute{
				Description: "Primary authentication providers for intranet access. Compared as a set.",
				Optional:    true,
				CustomType:  adfstypes.NewStringSetType(),
				ElementType: types.StringType,
			},
			"primary_extranet_authentication_providers": schema.ListAttribute{
				Description: "Primary authentication providers for extranet access. Compared as a set.",
				Optional:    true,
				CustomType:  adfstypes.NewStringSetType(),
				ElementType: types.StringType,
			},
			"additional_authentication_providers": schema.ListAttribute{
				Description: "Additional (MFA) authentication providers. Compared as a set.",
				Optional:    true,
				CustomType:  adfstypes.NewStringSetType(),
				ElementType: types.StringType,
			},
			"device_authentication_enabled": schema.BoolAttribute{
				Description: "Whether device authentication is enabled",
				Optional:    true,
			},
			"windows_integrated_fallback_enabled": schema.BoolAttribute{
				Description: "Whether forms fallback for Windows integrated authentication is enabled",
				Optional:    true,
			},
		},
	}
}

// Configure adds the provider configured client to the resource
func (r *globalAuthenticationPolicyResource) Configure(ctx context.Context, req resource.ConfigureRequest, resp *resource.ConfigureResponse) {
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

// desiredPolicy builds the gateway model from the plan
func desiredPolicy(ctx context.Context, plan *models.GlobalAuthenticationPolicyModel) (models.GlobalAuthenticationPolicyAPI, diag.Diagnostics) {
	var diags diag.Diagnostics

	intranet, d := stringSetOrNil(ctx, plan.PrimaryIntranetAuthenticationProviders)
	diags.Append(d...)
	extranet, d := stringSetOrNil(ctx, plan.PrimaryExtranetAuthenticationProviders)
	diags.Append(d...)
	additional, d := stringSetOrNil(ctx, plan.AdditionalAuthenticationProviders)
	diags.Append(d...)
	if diags.HasError() {
		return models.GlobalAuthenticationPolicyAPI{}, diags
	}

	return models.GlobalAuthenticationPolicyAPI{
		PrimaryIntranetAuthenticationProviders: intranet,
		PrimaryExtranetAuthenticationProviders: extranet,
		AdditionalAuthenticationProviders:      additional,
		DeviceAuthenticationEnabled:            boolOrNil(plan.DeviceAuthenticationEnabled),
		WindowsIntegratedFallbackEnabled:       boolOrNil(plan.WindowsIntegratedFallbackEnabled),
	}, diags
}

// converge applies the planned policy settings; Create and Update are the
// same operation on the singleton.
func (r *globalAuthenticationPolicyResource) converge(ctx context.Context, plan *models.GlobalAuthenticationPolicyModel, diags *diag.Diagnostics) {
	desired, d := desiredPolicy(ctx, plan)
	diags.Append(d...)
	if diags.HasError() {
		return
	}

	action, err := r.engine().Set(ctx, client.SingletonKey{}, desired, reconcile.EnsurePresent)
	if err != nil {
		tflog.Error(ctx, "Failed to converge global authentication policy", map[string]interface{}{
			"error": err.Error(),
		})
		diags.Append(client.MapError(err, "converge global authentication policy"))
		return
	}

	plan.ID = types.StringValue(globalPolicyID)

	tflog.Info(ctx, "Converged global authentication policy", map[string]interface{}{
		"action": string(action),
	})
}

// Create adopts the farm's policy and converges it toward the plan
func (r *globalAuthenticationPolicyResource) Create(ctx context.Context, req resource.CreateRequest, resp *resource.CreateResponse) {
	if r.providerData == nil {
		resp.Diagnostics.AddError(
			"Unconfigured API Client",
			"Expected configured ProviderData. Please report this issue to the provider developers.",
		)
		return
	}

	var plan models.GlobalAuthenticationPolicyModel
	resp.Diagnostics.Append(req.Plan.Get(ctx, &plan)...)
	if resp.Diagnostics.HasError() {
		return
	}

	tflog.Info(ctx, "Adopting global authentication policy")

	r.converge(ctx, &plan, &resp.Diagnostics)
	if resp.Diagnostics.HasError() {
		return
	}

	resp.Diagnostics.Append(resp.State.Set(ctx, &plan)...)
}

// Read refreshes the Terraform state with the latest data
func (r *globalAuthenticationPolicyResource) Read(ctx context.Context, req resource.ReadRequest, resp *resource.ReadResponse) {
	if r.providerData == nil {
		resp.Diagnostics.AddError(
			"Unconfigured API Client",
			"Expected configured ProviderData. Please report this issue to the provider developers.",
		)
		return
	}

	var state models.GlobalAuthenticationPolicyModel
	resp.Diagnostics.Append(req.State.Get(ctx, &state)...)
	if resp.Diagnostics.HasError() {
		return
	}

	tflog.Debug(ctx, "Reading global authentication policy")

	current, err := r.engine().Get(ctx, client.SingletonKey{})
	if err != nil {
		tflog.Error(ctx, "Failed to read global authentication policy", map[string]interface{}{
			"error": err.Error(),
		})
		resp.Diagnostics.Append(client.MapError(err, "read global authentication policy"))
		return
	}

	actual := current.Current
	if !state.PrimaryIntranetAuthenticationProviders.IsNull() {
		value, d := stringSetFromSlice(ctx, actual.PrimaryIntranetAuthenticationProviders)
		resp.Diagnostics.Append(d...)
		state.PrimaryIntranetAuthenticationProviders = value
	}
	if !state.PrimaryExtranetAuthenticationProviders.IsNull() {
		value, d := stringSetFromSlice(ctx, actual.PrimaryExtranetAuthenticationProviders)
		resp.Diagnostics.Append(d...)
		state.PrimaryExtranetAuthenticationProviders = value
	}
	if !state.AdditionalAuthenticationProviders.IsNull() {
		value, d := stringSetFromSlice(ctx, actual.AdditionalAuthenticationProviders)
		resp.Diagnostics.Append(d...)
		state.AdditionalAuthenticationProviders = value
	}
	if !state.DeviceAuthenticationEnabled.IsNull() {
		state.DeviceAuthenticationEnabled = boolFromPtr(actual.DeviceAuthenticationEnabled)
	}
	if !state.WindowsIntegratedFallbackEnabled.IsNull() {
		state.WindowsIntegratedFallbackEnabled = boolFromPtr(actual.WindowsIntegratedFallbackEnabled)
	}

	state.ID = types.StringValue(globalPolicyID)

	resp.Diagnostics.Append(resp.State.Set(ctx, &state)...)
}

// Update converges the policy toward the planned state
func (r *globalAuthenticationPolicyResource) Update(ctx context.Context, req resource.UpdateRequest, resp *resource.UpdateResponse) {
	if r.providerData == nil {
		resp.Diagnostics.AddError(
			"Unconfigured API Client",
			"Expected configured ProviderData. Please report this issue to the provider developers.",
		)
		return
	}

	var plan models.GlobalAuthenticationPolicyModel
	resp.Diagnostics.Append(req.Plan.Get(ctx, &plan)...)
	if resp.Diagnostics.HasError() {
		return
	}

	tflog.Info(ctx, "Updating global authentication policy")

	r.converge(ctx, &plan, &resp.Diagnostics)
	if resp.Diagnostics.HasError() {
		return
	}

	resp.Diagnostics.Append(resp.State.Set(ctx, &plan)...)
}

// Delete stops managing the policy. The farm always carries a global
// policy, so nothing is removed on the gateway side.
func (r *globalAuthenticationPolicyResource) Delete(ctx context.Context, req resource.DeleteRequest, resp *resource.DeleteResponse) {
	resp.Diagnostics.AddWarning(
		"Global Authentication Policy Not Removed",
		"The farm's authentication policy cannot be deleted; it was removed from Terraform "+
			"state only and keeps its last applied settings.",
	)

	tflog.Info(ctx, "Stopped managing global authentication policy")
}

// ImportState adopts the farm's policy into Terraform state
func (r *globalAuthenticationPolicyResource) ImportState(ctx context.Context, req resource.ImportStateRequest, resp *resource.ImportStateResponse) {
	if req.ID != globalPolicyID {
		resp.Diagnostics.AddError(
			"Invalid Import ID",
			fmt.Sprintf("The global authentication policy is imported with the fixed ID %q, got %q.", globalPolicyID, req.ID),
		)
		return
	}

	resp.Diagnostics.Append(resp.State.SetAttribute(ctx, path.Root("id"), globalPolicyID)...)

	tflog.Info(ctx, "Imported global authentication policy")
}
