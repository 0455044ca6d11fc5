// Package provider implements the adfs_saml_endpoint resource
package provider

import (
	"context"
	"fmt"
	"strconv"

	"github.com/hashicorp/terraform-plugin-framework-validators/int64validator"
	"github.com/hashicorp/terraform-plugin-framework-validators/stringvalidator"
	"github.com/hashicorp/terraform-plugin-framework/path"
	"github.com/hashicorp/terraform-plugin-framework/resource"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema/int64planmodifier"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema/planmodifier"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema/stringplanmodifier"
	"github.com/hashicorp/terraform-plugin-framework/schema/validator"
	"github.com/hashicorp/terraform-plugin-framework/types"
	"github.com/hashicorp/terraform-plugin-log/tflog"

	"github.com/secinfra/terraform-provider-adfs/internal/client"
	"github.com/secinfra/terraform-provider-adfs/internal/models"
	"github.com/secinfra/terraform-provider-adfs/internal/provider/helpers"
	"github.com/secinfra/terraform-provider-adfs/internal/reconcile"
	"github.com/secinfra/terraform-provider-adfs/internal/validators"
)

// Ensure provider defined types fully satisfy framework interfaces
var (
	_ resource.Resource                = &samlEndpointResource{}
	_ resource.ResourceWithConfigure   = &samlEndpointResource{}
	_ resource.ResourceWithImportState = &samlEndpointResource{}
)

// NewSamlEndpointResource is a helper function to simplify the provider implementation
func NewSamlEndpointResource() resource.Resource {
	return &samlEndpointResource{}
}

// samlEndpointResource is the resource implementation
type samlEndpointResource struct {
	providerData *ProviderData
}

// samlEndpointDescriptor declares the comparable fields of one endpoint.
// The (protocol, index) pair is the key and never compared.
func samlEndpointDescriptor() *reconcile.Descriptor[models.SamlEndpointAPI] {
	return &reconcile.Descriptor[models.SamlEndpointAPI]{
		Kind: "saml_endpoint",
		Fields: []reconcile.Field[models.SamlEndpointAPI]{
			reconcile.StringField("binding", func(e models.SamlEndpointAPI) *string { return e.Binding }),
			reconcile.StringField("location", func(e models.SamlEndpointAPI) *string { return e.Location }),
			reconcile.BoolField("is_default", func(e models.SamlEndpointAPI) *bool { return e.IsDefault }),
		},
	}
}

// engine builds an engine scoped to the endpoint's parent trust. Each
// mutation the adapter performs is a whole-collection rewrite that
// preserves unrelated members; the engine's compliance short-circuit
// keeps redundant rewrites off the wire.
func (r *samlEndpointResource) engine(trustName string) *reconcile.Engine[client.EndpointKey, models.SamlEndpointAPI] {
	adapter := client.NewEndpointClient(r.providerData.Trusts, trustName)
	return reconcile.NewEngine(samlEndpointDescriptor(), adapter)
}

// Metadata returns the resource type name
func (r *samlEndpointResource) Metadata(ctx context.Context, req resource.MetadataRequest, resp *resource.MetadataResponse) {
	resp.TypeName = req.ProviderTypeName + "_saml_endpoint"
}

// Schema defines the schema for the resource
func (r *samlEndpointResource) Schema(ctx context.Context, req resource.SchemaRequest, resp *resource.SchemaResponse) {
	resp.Schema = schema.Schema{
		Description: "Manages one SAML endpoint inside a relying-party trust's endpoint " +
			"collection. The endpoint is keyed by (protocol, index) within the trust; " +
			"converging it rewrites the whole collection while preserving every unrelated " +
			"member exactly.",

		Attributes: map[string]schema.Attribute{
			"id": schema.StringAttribute{
				Description: "Composite identifier in the form trust:protocol:index",
				Computed:    true,
				PlanModifiers: []planmodifier.String{
					stringplanmodifier.UseStateForUnknown(),
				},
			},
			"relying_party_trust": schema.StringAttribute{
				Description: "Name of the parent relying-party trust",
				Required:    true,
				Validators: []validator.String{
					stringvalidator.LengthAtLeast(1),
				},
				PlanModifiers: []planmodifier.String{
					stringplanmodifier.RequiresReplace(),
				},
			},
			"protocol": schema.StringAttribute{
				Description: "Endpoint protocol kind. Part of the endpoint key.",
				Required:    true,
				Validators: []validator.String{
					validators.EndpointProtocol(),
				},
				PlanModifiers: []planmodifier.String{
					stringplanmodifier.RequiresReplace(),
				},
			},
			"index": schema.Int64Attribute{
				Description: "Endpoint index within the protocol. Part of the endpoint key.",
				Required:    true,
				Validators: []validator.Int64{
					int64validator.AtLeast(0),
				},
				PlanModifiers: []planmodifier.Int64{
					int64planmodifier.RequiresReplace(),
				},
			},
			"binding": schema.StringAttribute{
				Description: "SAML binding of the endpoint",
				Optional:    true,
				Validators: []validator.String{
					validators.EndpointBinding(),
				},
			},
			"location": schema.StringAttribute{
				Description: "Endpoint URL at the relying party",
				Optional:    true,
				Validators: []validator.String{
					validators.HTTPSURL(),
				},
			},
			"is_default": schema.BoolAttribute{
				Description: "Whether this endpoint is the default for its protocol",
				Optional:    true,
			},
		},
	}
}

// Configure adds the provider configured client to the resource
func (r *samlEndpointResource) Configure(ctx context.Context, req resource.ConfigureRequest, resp *resource.ConfigureResponse) {
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

// desiredEndpoint builds the gateway model from the plan
func desiredEndpoint(plan *models.SamlEndpointModel) models.SamlEndpointAPI {
	return models.SamlEndpointAPI{
		Protocol:  plan.Protocol.ValueString(),
		Index:     plan.Index.ValueInt64(),
		Binding:   stringOrNil(plan.Binding),
		Location:  stringOrNil(plan.Location),
		IsDefault: boolOrNil(plan.IsDefault),
	}
}

func endpointID(plan *models.SamlEndpointModel) types.String {
	return types.StringValue(helpers.BuildCompositeID(
		plan.RelyingPartyTrust.ValueString(),
		plan.Protocol.ValueString(),
		strconv.FormatInt(plan.Index.ValueInt64(), 10),
	))
}

// Create adds the endpoint to the parent trust's collection
func (r *samlEndpointResource) Create(ctx context.Context, req resource.CreateRequest, resp *resource.CreateResponse) {
	if r.providerData == nil {
		resp.Diagnostics.AddError(
			"Unconfigured API Client",
			"Expected configured ProviderData. Please report this issue to the provider developers.",
		)
		return
	}

	var plan models.SamlEndpointModel
	resp.Diagnostics.Append(req.Plan.Get(ctx, &plan)...)
	if resp.Diagnostics.HasError() {
		return
	}

	trustName := plan.RelyingPartyTrust.ValueString()
	desired := desiredEndpoint(&plan)
	key := client.EndpointKey{Protocol: desired.Protocol, Index: desired.Index}

	tflog.Info(ctx, "Creating SAML endpoint", map[string]interface{}{
		"relying_party_trust": trustName,
		"protocol":            desired.Protocol,
		"index":               desired.Index,
	})

	action, err := r.engine(trustName).Set(ctx, key, desired, reconcile.EnsurePresent)
	if err != nil {
		tflog.Error(ctx, "Failed to create SAML endpoint", map[string]interface{}{
			"error": err.Error(),
		})
		resp.Diagnostics.Append(client.MapError(err, "create SAML endpoint"))
		return
	}

	plan.ID = endpointID(&plan)

	tflog.Info(ctx, "Created SAML endpoint", map[string]interface{}{
		"id":     plan.ID.ValueString(),
		"action": string(action),
	})

	resp.Diagnostics.Append(resp.State.Set(ctx, &plan)...)
}

// Read refreshes the Terraform state with the latest data
func (r *samlEndpointResource) Read(ctx context.Context, req resource.ReadRequest, resp *resource.ReadResponse) {
	if r.providerData == nil {
		resp.Diagnostics.AddError(
			"Unconfigured API Client",
			"Expected configured ProviderData. Please report this issue to the provider developers.",
		)
		return
	}

	var state models.SamlEndpointModel
	resp.Diagnostics.Append(req.State.Get(ctx, &state)...)
	if resp.Diagnostics.HasError() {
		return
	}

	trustName := state.RelyingPartyTrust.ValueString()
	key := client.EndpointKey{Protocol: state.Protocol.ValueString(), Index: state.Index.ValueInt64()}

	tflog.Debug(ctx, "Reading SAML endpoint", map[string]interface{}{
		"relying_party_trust": trustName,
		"protocol":            key.Protocol,
		"index":               key.Index,
	})

	current, err := r.engine(trustName).Get(ctx, key)
	if err != nil {
		tflog.Error(ctx, "Failed to read SAML endpoint", map[string]interface{}{
			"error": err.Error(),
		})
		resp.Diagnostics.Append(client.MapError(err, "read SAML endpoint"))
		return
	}
	if !current.Exists {
		tflog.Warn(ctx, "SAML endpoint not found, removing from state", map[string]interface{}{
			"relying_party_trust": trustName,
			"protocol":            key.Protocol,
			"index":               key.Index,
		})
		resp.State.RemoveResource(ctx)
		return
	}

	if !state.Binding.IsNull() {
		state.Binding = stringFromPtr(current.Current.Binding)
	}
	if !state.Location.IsNull() {
		state.Location = stringFromPtr(current.Current.Location)
	}
	if !state.IsDefault.IsNull() {
		state.IsDefault = boolFromPtr(current.Current.IsDefault)
	}

	state.ID = endpointID(&state)

	resp.Diagnostics.Append(resp.State.Set(ctx, &state)...)
}

// Update replaces the endpoint within the collection
func (r *samlEndpointResource) Update(ctx context.Context, req resource.UpdateRequest, resp *resource.UpdateResponse) {
	if r.providerData == nil {
		resp.Diagnostics.AddError(
			"Unconfigured API Client",
			"Expected configured ProviderData. Please report this issue to the provider developers.",
		)
		return
	}

	var plan models.SamlEndpointModel
	resp.Diagnostics.Append(req.Plan.Get(ctx, &plan)...)
	if resp.Diagnostics.HasError() {
		return
	}

	trustName := plan.RelyingPartyTrust.ValueString()
	desired := desiredEndpoint(&plan)
	key := client.EndpointKey{Protocol: desired.Protocol, Index: desired.Index}

	tflog.Info(ctx, "Updating SAML endpoint", map[string]interface{}{
		"relying_party_trust": trustName,
		"protocol":            key.Protocol,
		"index":               key.Index,
	})

	action, err := r.engine(trustName).Set(ctx, key, desired, reconcile.EnsurePresent)
	if err != nil {
		tflog.Error(ctx, "Failed to update SAML endpoint", map[string]interface{}{
			"error": err.Error(),
		})
		resp.Diagnostics.Append(client.MapError(err, "update SAML endpoint"))
		return
	}

	plan.ID = endpointID(&plan)

	tflog.Info(ctx, "Updated SAML endpoint", map[string]interface{}{
		"id":     plan.ID.ValueString(),
		"action": string(action),
	})

	resp.Diagnostics.Append(resp.State.Set(ctx, &plan)...)
}

// Delete removes the endpoint from the collection
func (r *samlEndpointResource) Delete(ctx context.Context, req resource.DeleteRequest, resp *resource.DeleteResponse) {
	if r.providerData == nil {
		resp.Diagnostics.AddError(
			"Unconfigured API Client",
			"Expected configured ProviderData. Please report this issue to the provider developers.",
		)
		return
	}

	var state models.SamlEndpointModel
	resp.Diagnostics.Append(req.State.Get(ctx, &state)...)
	if resp.Diagnostics.HasError() {
		return
	}

	trustName := state.RelyingPartyTrust.ValueString()
	key := client.EndpointKey{Protocol: state.Protocol.ValueString(), Index: state.Index.ValueInt64()}

	tflog.Info(ctx, "Deleting SAML endpoint", map[string]interface{}{
		"relying_party_trust": trustName,
		"protocol":            key.Protocol,
		"index":               key.Index,
	})

	desired := models.SamlEndpointAPI{Protocol: key.Protocol, Index: key.Index}
	if _, err := r.engine(trustName).Set(ctx, key, desired, reconcile.EnsureAbsent); err != nil {
		tflog.Error(ctx, "Failed to delete SAML endpoint", map[string]interface{}{
			"error": err.Error(),
		})
		resp.Diagnostics.Append(client.MapError(err, "delete SAML endpoint"))
		return
	}

	tflog.Info(ctx, "Deleted SAML endpoint", map[string]interface{}{
		"relying_party_trust": trustName,
		"protocol":            key.Protocol,
		"index":               key.Index,
	})
}

// ImportState imports an endpoint by its trust:protocol:index composite ID
func (r *samlEndpointResource) ImportState(ctx context.Context, req resource.ImportStateRequest, resp *resource.ImportStateResponse) {
	trustName, protocol, index, err := helpers.ParseSamlEndpointID(req.ID)
	if err != nil {
		resp.Diagnostics.AddError(
			"Invalid Import ID",
			fmt.Sprintf("Expected trust:protocol:index (e.g., app-trust:SAMLAssertionConsumer:0): %s", err),
		)
		return
	}

	resp.Diagnostics.Append(resp.State.SetAttribute(ctx, path.Root("relying_party_trust"), trustName)...)
	resp.Diagnostics.Append(resp.State.SetAttribute(ctx, path.Root("protocol"), protocol)...)
	resp.Diagnostics.Append(resp.State.SetAttribute(ctx, path.Root("index"), index)...)
	resp.Diagnostics.Append(resp.State.SetAttribute(ctx, path.Root("id"), req.ID)...)

	tflog.Info(ctx, "Imported SAML endpoint", map[string]interface{}{
		"id": req.ID,
	})
}
