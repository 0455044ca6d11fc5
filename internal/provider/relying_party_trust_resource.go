// Package provider implements the adfs_relying_party_trust resource
package provider

import (
	"context"
	"fmt"

	"github.com/hashicorp/terraform-plugin-framework-validators/listvalidator"
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
	adfstypes "github.com/secinfra/terraform-provider-adfs/internal/provider/types"
	"github.com/secinfra/terraform-provider-adfs/internal/reconcile"
	"github.com/secinfra/terraform-provider-adfs/internal/validators"
)

// Ensure provider defined types fully satisfy framework interfaces
var (
	_ resource.Resource                = &relyingPartyTrustResource{}
	_ resource.ResourceWithConfigure   = &relyingPartyTrustResource{}
	_ resource.ResourceWithImportState = &relyingPartyTrustResource{}
)

// NewRelyingPartyTrustResource is a helper function to simplify the provider implementation
func NewRelyingPartyTrustResource() resource.Resource {
	return &relyingPartyTrustResource{}
}

// relyingPartyTrustResource is the resource implementation
type relyingPartyTrustResource struct {
	providerData *ProviderData
}

// relyingPartyTrustDescriptor declares the comparable fields of the trust
// kind. List fields carry set semantics; the encryption certificate is an
// optional reference where "" means "must be absent".
func relyingPartyTrustDescriptor() *reconcile.Descriptor[models.RelyingPartyTrustAPI] {
	return &reconcile.Descriptor[models.RelyingPartyTrustAPI]{
		Kind: "relying_party_trust",
		Fields: []reconcile.Field[models.RelyingPartyTrustAPI]{
			reconcile.BoolField("enabled", func(t models.RelyingPartyTrustAPI) *bool { return t.Enabled }),
			reconcile.SetField("identifiers", func(t models.RelyingPartyTrustAPI) []string { return t.Identifiers }),
			reconcile.SetField("claims_provider_names", func(t models.RelyingPartyTrustAPI) []string { return t.ClaimsProviderNames }),
			reconcile.StringField("issuance_transform_rules", func(t models.RelyingPartyTrustAPI) *string { return t.TransformRules }),
			reconcile.StringField("issuance_authorization_rules", func(t models.RelyingPartyTrustAPI) *string { return t.AuthorizationRules }),
			reconcile.StringField("protocol_profile", func(t models.RelyingPartyTrustAPI) *string { return t.ProtocolProfile }),
			reconcile.BoolField("monitoring_enabled", func(t models.RelyingPartyTrustAPI) *bool { return t.MonitoringEnabled }),
			reconcile.StringField("metadata_url", func(t models.RelyingPartyTrustAPI) *string { return t.MetadataURL }),
			reconcile.StringField("notes", func(t models.RelyingPartyTrustAPI) *string { return t.Notes }),
			reconcile.StringField("access_control_policy_name", func(t models.RelyingPartyTrustAPI) *string { return t.AccessControlPolicyName }),
			reconcile.OptionalRefField("encryption_certificate_thumbprint", func(t models.RelyingPartyTrustAPI) *string { return t.EncryptionCertificate }),
			reconcile.SetField("signing_certificate_thumbprints", func(t models.RelyingPartyTrustAPI) []string { return t.SigningCertificateThumbprints }),
			reconcile.BoolField("encrypt_claims", func(t models.RelyingPartyTrustAPI) *bool { return t.EncryptClaims }),
			reconcile.BoolField("signed_saml_requests_required", func(t models.RelyingPartyTrustAPI) *bool { return t.SignedSamlRequestsRequired }),
			reconcile.BoolField("encrypted_name_id_required", func(t models.RelyingPartyTrustAPI) *bool { return t.EncryptedNameIDRequired }),
		},
	}
}

func (r *relyingPartyTrustResource) engine() *reconcile.Engine[string, models.RelyingPartyTrustAPI] {
	return reconcile.NewEngine(relyingPartyTrustDescriptor(), r.providerData.Trusts)
}

// Metadata returns the resource type name
func (r *relyingPartyTrustResource) Metadata(ctx context.Context, req resource.MetadataRequest, resp *resource.MetadataResponse) {
	resp.TypeName = req.ProviderTypeName + "_relying_party_trust"
}

// Schema defines the schema for the resource
func (r *relyingPartyTrustResource) Schema(ctx context.Context, req resource.SchemaRequest, resp *resource.SchemaResponse) {
	resp.Schema = schema.Schema{
		Description: "Manages a relying-party trust on the federation farm. Attributes left " +
			"unset are unmanaged: the provider neither compares nor converges them. List " +
			"attributes compare as sets, so the order the gateway returns members in never " +
			"shows as drift.",

		Attributes: map[string]schema.Attribute{
			"id": schema.StringAttribute{
				Description: "Resource identifier, equal to the trust name",
				Computed:    true,
				PlanModifiers: []planmodifier.String{
					stringplanmodifier.UseStateForUnknown(),
				},
			},
			"name": schema.StringAttribute{
				Description: "Trust name, unique across the farm. Immutable once created.",
				Required:    true,
				Validators: []validator.String{
					stringvalidator.LengthAtLeast(1),
				},
				PlanModifiers: []planmodifier.String{
					stringplanmodifier.RequiresReplace(),
				},
			},
			"enabled": schema.BoolAttribute{
				Description: "Whether the trust is enabled",
				Optional:    true,
			},
			"identifiers": schema.ListAttribute{
				Description: "Relying-party identifiers (entity IDs). Compared as a set.",
				Required:    true,
				CustomType:  adfstypes.NewStringSetType(),
				ElementType: types.StringType,
				Validators: []validator.List{
					listvalidator.SizeAtLeast(1),
				},
			},
			"claims_provider_names": schema.ListAttribute{
				Description: "Claims providers allowed for this trust. Compared as a set.",
				Optional:    true,
				CustomType:  adfstypes.NewStringSetType(),
				ElementType: types.StringType,
			},
			"issuance_transform_rules": schema.StringAttribute{
				Description: "Claim issuance transform rule set, in claims rule language",
				Optional:    true,
			},
			"issuance_authorization_rules": schema.StringAttribute{
				Description: "Issuance authorization rule set, in claims rule language",
				Optional:    true,
			},
			"protocol_profile": schema.StringAttribute{
				Description: "Protocol profile of the trust (e.g., SAML, WsFederation, WsFed-SAML)",
				Optional:    true,
			},
			"monitoring_enabled": schema.BoolAttribute{
				Description: "Whether federation metadata monitoring is enabled",
				Optional:    true,
			},
			"metadata_url": schema.StringAttribute{
				Description: "Federation metadata URL of the relying party",
				Optional:    true,
				Validators: []validator.String{
					validators.HTTPSURL(),
				},
			},
			"notes": schema.StringAttribute{
				Description: "Free-form operator notes on the trust",
				Optional:    true,
			},
			"access_control_policy_name": schema.StringAttribute{
				Description: "Name of the access control policy assigned to the trust",
				Optional:    true,
			},
			"encryption_certificate_thumbprint": schema.StringAttribute{
				Description: "Thumbprint of the claims encryption certificate. Unset means " +
					"unmanaged; an empty string requires the trust to carry no encryption " +
					"certificate.",
				Optional: true,
				Validators: []validator.String{
					validators.ThumbprintOrEmpty(),
				},
			},
			"signing_certificate_thumbprints": schema.ListAttribute{
				Description: "Thumbprints of the request signing certificates. Compared as a set.",
				Optional:    true,
				CustomType:  adfstypes.NewStringSetType(),
				ElementType: types.StringType,
				Validators: []validator.List{
					listvalidator.ValueStringsAre(validators.Thumbprint()),
				},
			},
			"encrypt_claims": schema.BoolAttribute{
				Description: "Whether issued claims are encrypted",
				Optional:    true,
			},
			"signed_saml_requests_required": schema.BoolAttribute{
				Description: "Whether SAML requests must be signed",
				Optional:    true,
			},
			"encrypted_name_id_required": schema.BoolAttribute{
				Description: "Whether the NameID must be encrypted",
				Optional:    true,
			},
		},
	}
}

// Configure adds the provider configured client to the resource
func (r *relyingPartyTrustResource) Configure(ctx context.Context, req resource.ConfigureRequest, resp *resource.ConfigureResponse) {
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

// desiredTrust builds the gateway model from the plan
func desiredTrust(ctx context.Context, plan *models.RelyingPartyTrustModel) (models.RelyingPartyTrustAPI, diag.Diagnostics) {
	var diags diag.Diagnostics

	identifiers, d := stringSetOrNil(ctx, plan.Identifiers)
	diags.Append(d...)
	claimsProviders, d := stringSetOrNil(ctx, plan.ClaimsProviderNames)
	diags.Append(d...)
	signingThumbprints, d := stringSetOrNil(ctx, plan.SigningCertificateThumbprints)
	diags.Append(d...)
	if diags.HasError() {
		return models.RelyingPartyTrustAPI{}, diags
	}

	return models.RelyingPartyTrustAPI{
		Name:                          plan.Name.ValueString(),
		Enabled:                       boolOrNil(plan.Enabled),
		Identifiers:                   identifiers,
		ClaimsProviderNames:           claimsProviders,
		TransformRules:                stringOrNil(plan.TransformRules),
		AuthorizationRules:            stringOrNil(plan.AuthorizationRules),
		ProtocolProfile:               stringOrNil(plan.ProtocolProfile),
		MonitoringEnabled:             boolOrNil(plan.MonitoringEnabled),
		MetadataURL:                   stringOrNil(plan.MetadataURL),
		Notes:                         stringOrNil(plan.Notes),
		AccessControlPolicyName:       stringOrNil(plan.AccessControlPolicyName),
		EncryptionCertificate:         stringOrNil(plan.EncryptionCertificate),
		SigningCertificateThumbprints: signingThumbprints,
		EncryptClaims:                 boolOrNil(plan.EncryptClaims),
		SignedSamlRequestsRequired:    boolOrNil(plan.SignedSamlRequestsRequired),
		EncryptedNameIDRequired:       boolOrNil(plan.EncryptedNameIDRequired),
	}, diags
}

// Create registers the trust and sets the initial Terraform state
func (r *relyingPartyTrustResource) Create(ctx context.Context, req resource.CreateRequest, resp *resource.CreateResponse) {
	if r.providerData == nil {
		resp.Diagnostics.AddError(
			"Unconfigured API Client",
			"Expected configured ProviderData. Please report this issue to the provider developers.",
		)
		return
	}

	var plan models.RelyingPartyTrustModel
	resp.Diagnostics.Append(req.Plan.Get(ctx, &plan)...)
	if resp.Diagnostics.HasError() {
		return
	}

	tflog.Info(ctx, "Creating relying-party trust", map[string]interface{}{
		"name": plan.Name.ValueString(),
	})

	desired, diags := desiredTrust(ctx, &plan)
	resp.Diagnostics.Append(diags...)
	if resp.Diagnostics.HasError() {
		return
	}

	action, err := r.engine().Set(ctx, desired.Name, desired, reconcile.EnsurePresent)
	if err != nil {
		tflog.Error(ctx, "Failed to create relying-party trust", map[string]interface{}{
			"error": err.Error(),
		})
		resp.Diagnostics.Append(client.MapError(err, "create relying-party trust"))
		return
	}

	plan.ID = plan.Name

	tflog.Info(ctx, "Created relying-party trust", map[string]interface{}{
		"name":   plan.Name.ValueString(),
		"action": string(action),
	})

	resp.Diagnostics.Append(resp.State.Set(ctx, &plan)...)
}

// Read refreshes the Terraform state with the latest data
func (r *relyingPartyTrustResource) Read(ctx context.Context, req resource.ReadRequest, resp *resource.ReadResponse) {
	if r.providerData == nil {
		resp.Diagnostics.AddError(
			"Unconfigured API Client",
			"Expected configured ProviderData. Please report this issue to the provider developers.",
		)
		return
	}

	var state models.RelyingPartyTrustModel
	resp.Diagnostics.Append(req.State.Get(ctx, &state)...)
	if resp.Diagnostics.HasError() {
		return
	}

	name := state.Name.ValueString()
	tflog.Debug(ctx, "Reading relying-party trust", map[string]interface{}{
		"name": name,
	})

	current, err := r.engine().Get(ctx, name)
	if err != nil {
		tflog.Error(ctx, "Failed to read relying-party trust", map[string]interface{}{
			"error": err.Error(),
		})
		resp.Diagnostics.Append(client.MapError(err, "read relying-party trust"))
		return
	}
	if !current.Exists {
		tflog.Warn(ctx, "Relying-party trust not found, removing from state", map[string]interface{}{
			"name": name,
		})
		resp.State.RemoveResource(ctx)
		return
	}

	// Refresh managed fields only; fields that are null in state are
	// unmanaged and stay out of drift detection.
	actual := current.Current
	if !state.Enabled.IsNull() {
		state.Enabled = boolFromPtr(actual.Enabled)
	}
	if !state.Identifiers.IsNull() {
		value, d := stringSetFromSlice(ctx, actual.Identifiers)
		resp.Diagnostics.Append(d...)
		state.Identifiers = value
	}
	if !state.ClaimsProviderNames.IsNull() {
		value, d := stringSetFromSlice(ctx, actual.ClaimsProviderNames)
		resp.Diagnostics.Append(d...)
		state.ClaimsProviderNames = value
	}
	if !state.TransformRules.IsNull() {
		state.TransformRules = stringFromPtr(actual.TransformRules)
	}
	if !state.AuthorizationRules.IsNull() {
		state.AuthorizationRules = stringFromPtr(actual.AuthorizationRules)
	}
	if !state.ProtocolProfile.IsNull() {
		state.ProtocolProfile = stringFromPtr(actual.ProtocolProfile)
	}
	if !state.MonitoringEnabled.IsNull() {
		state.MonitoringEnabled = boolFromPtr(actual.MonitoringEnabled)
	}
	if !state.MetadataURL.IsNull() {
		state.MetadataURL = stringFromPtr(actual.MetadataURL)
	}
	if !state.Notes.IsNull() {
		state.Notes = stringFromPtr(actual.Notes)
	}
	if !state.AccessControlPolicyName.IsNull() {
		state.AccessControlPolicyName = stringFromPtr(actual.AccessControlPolicyName)
	}
	if !state.EncryptionCertificate.IsNull() {
		// "" in state means "explicitly cleared"; a gateway nil maps back
		// to "" so the cleared opinion round-trips.
		if actual.EncryptionCertificate == nil {
			state.EncryptionCertificate = types.StringValue("")
		} else {
			state.EncryptionCertificate = types.StringValue(*actual.EncryptionCertificate)
		}
	}
	if !state.SigningCertificateThumbprints.IsNull() {
		value, d := stringSetFromSlice(ctx, actual.SigningCertificateThumbprints)
		resp.Diagnostics.Append(d...)
		state.SigningCertificateThumbprints = value
	}
	if !state.EncryptClaims.IsNull() {
		state.EncryptClaims = boolFromPtr(actual.EncryptClaims)
	}
	if !state.SignedSamlRequestsRequired.IsNull() {
		state.SignedSamlRequestsRequired = boolFromPtr(actual.SignedSamlRequestsRequired)
	}
	if !state.EncryptedNameIDRequired.IsNull() {
		state.EncryptedNameIDRequired = boolFromPtr(actual.EncryptedNameIDRequired)
	}

	state.ID = state.Name

	resp.Diagnostics.Append(resp.State.Set(ctx, &state)...)
}

// Update converges the trust toward the planned state
func (r *relyingPartyTrustResource) Update(ctx context.Context, req resource.UpdateRequest, resp *resource.UpdateResponse) {
	if r.providerData == nil {
		resp.Diagnostics.AddError(
			"Unconfigured API Client",
			"Expected configured ProviderData. Please report this issue to the provider developers.",
		)
		return
	}

	var plan models.RelyingPartyTrustModel
	resp.Diagnostics.Append(req.Plan.Get(ctx, &plan)...)
	if resp.Diagnostics.HasError() {
		return
	}

	tflog.Info(ctx, "Updating relying-party trust", map[string]interface{}{
		"name": plan.Name.ValueString(),
	})

	desired, diags := desiredTrust(ctx, &plan)
	resp.Diagnostics.Append(diags...)
	if resp.Diagnostics.HasError() {
		return
	}

	action, err := r.engine().Set(ctx, desired.Name, desired, reconcile.EnsurePresent)
	if err != nil {
		tflog.Error(ctx, "Failed to update relying-party trust", map[string]interface{}{
			"error": err.Error(),
		})
		resp.Diagnostics.Append(client.MapError(err, "update relying-party trust"))
		return
	}

	plan.ID = plan.Name

	tflog.Info(ctx, "Updated relying-party trust", map[string]interface{}{
		"name":   plan.Name.ValueString(),
		"action": string(action),
	})

	resp.Diagnostics.Append(resp.State.Set(ctx, &plan)...)
}

// Delete removes the trust from the farm
func (r *relyingPartyTrustResource) Delete(ctx context.Context, req resource.DeleteRequest, resp *resource.DeleteResponse) {
	if r.providerData == nil {
		resp.Diagnostics.AddError(
			"Unconfigured API Client",
			"Expected configured ProviderData. Please report this issue to the provider developers.",
		)
		return
	}

	var state models.RelyingPartyTrustModel
	resp.Diagnostics.Append(req.State.Get(ctx, &state)...)
	if resp.Diagnostics.HasError() {
		return
	}

	name := state.Name.ValueString()
	tflog.Info(ctx, "Deleting relying-party trust", map[string]interface{}{
		"name": name,
	})

	if _, err := r.engine().Set(ctx, name, models.RelyingPartyTrustAPI{Name: name}, reconcile.EnsureAbsent); err != nil {
		tflog.Error(ctx, "Failed to delete relying-party trust", map[string]interface{}{
			"error": err.Error(),
		})
		resp.Diagnostics.Append(client.MapError(err, "delete relying-party trust"))
		return
	}

	tflog.Info(ctx, "Deleted relying-party trust", map[string]interface{}{
		"name": name,
	})
}

// ImportState imports an existing trust into Terraform state by name
func (r *relyingPartyTrustResource) ImportState(ctx context.Context, req resource.ImportStateRequest, resp *resource.ImportStateResponse) {
	resp.Diagnostics.Append(resp.State.SetAttribute(ctx, path.Root("name"), req.ID)...)
	resp.Diagnostics.Append(resp.State.SetAttribute(ctx, path.Root("id"), req.ID)...)

	tflog.Info(ctx, "Imported relying-party trust", map[string]interface{}{
		"name": req.ID,
	})
}
