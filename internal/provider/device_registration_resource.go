// Package provider implements the adfs_device_registration resource
package provider

import (
	"context"
	"fmt"

	"github.com/hashicorp/terraform-plugin-framework-validators/int64validator"
	"github.com/hashicorp/terraform-plugin-framework/path"
	"github.com/hashicorp/terraform-plugin-framework/resource"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema/booldefault"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema/planmodifier"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema/stringplanmodifier"
	"github.com/hashicorp/terraform-plugin-framework/schema/validator"
	"github.com/hashicorp/terraform-plugin-framework/types"
	"github.com/hashicorp/terraform-plugin-log/tflog"

	"github.com/secinfra/terraform-provider-adfs/internal/client"
	"github.com/secinfra/terraform-provider-adfs/internal/models"
	"github.com/secinfra/terraform-provider-adfs/internal/reconcile"
)

// deviceRegistrationID is the fixed identifier of the domain's single
// device registration state.
const deviceRegistrationID = "device-registration"

// Ensure provider defined types fully satisfy framework interfaces
var (
	_ resource.Resource                = &deviceRegistrationResource{}
	_ resource.ResourceWithConfigure   = &deviceRegistrationResource{}
	_ resource.ResourceWithImportState = &deviceRegistrationResource{}
)

// NewDeviceRegistrationResource is a helper function to simplify the provider implementation
func NewDeviceRegistrationResource() resource.Resource {
	return &deviceRegistrationResource{}
}

// deviceRegistrationResource is the resource implementation
type deviceRegistrationResource struct {
	providerData *ProviderData
}

// deviceRegistrationDescriptor declares the comparable fields of the
// device registration state. The enabled toggle maps onto existence:
// "absent" means disabled.
func deviceRegistrationDescriptor() *reconcile.Descriptor[models.DeviceRegistrationAPI] {
	return &reconcile.Descriptor[models.DeviceRegistrationAPI]{
		Kind: "device_registration",
		Fields: []reconcile.Field[models.DeviceRegistrationAPI]{
			reconcile.StringField("service_account", func(d models.DeviceRegistrationAPI) *string { return d.ServiceAccount }),
			reconcile.Int64Field("device_quota", func(d models.DeviceRegistrationAPI) *int64 { return d.DeviceQuota }),
			reconcile.Int64Field("maximum_inactivity_period_days", func(d models.DeviceRegistrationAPI) *int64 { return d.MaximumInactivityPeriodDays }),
		},
	}
}

func (r *deviceRegistrationResource) engine() *reconcile.Engine[client.SingletonKey, models.DeviceRegistrationAPI] {
	return reconcile.NewEngine(deviceRegistrationDescriptor(), r.providerData.DeviceRegistration)
}

// Metadata returns the resource type name
func (r *deviceRegistrationResource) Metadata(ctx context.Context, req resource.MetadataRequest, resp *resource.MetadataResponse) {
	resp.TypeName = req.ProviderTypeName + "_device_registration"
}

// Schema defines the schema for the resource
func (r *deviceRegistrationResource) Schema(ctx context.Context, req resource.SchemaRequest, resp *resource.SchemaResponse) {
	resp.Schema = schema.Schema{
		Description: "Manages device registration for the domain. The domain has one device " +
			"registration state; setting enabled to false, or destroying the resource, " +
			"disables registration.",

		Attributes: map[string]schema.Attribute{
			"id": schema.StringAttribute{
				Description: "Resource identifier, always \"device-registration\"",
				Computed:    true,
				PlanModifiers: []planmodifier.String{
					stringplanmodifier.UseStateForUnknown(),
				},
			},
			"enabled": schema.BoolAttribute{
				Description: "Whether device registration is enabled. Defaults to true.",
				Optional:    true,
				Computed:    true,
				Default:     booldefault.StaticBool(true),
			},
			"service_account": schema.StringAttribute{
				Description: "Service account used by the device registration service",
				Optional:    true,
			},
			"device_quota": schema.Int64Attribute{
				Description: "Maximum number of devices a user may register",
				Optional:    true,
				Validators: []validator.Int64{
					int64validator.AtLeast(1),
				},
			},
			"maximum_inactivity_period_days": schema.Int64Attribute{
				Description: "Days of inactivity before a registered device is considered stale",
				Optional:    true,
				Validators: []validator.Int64{
					int64validator.AtLeast(1),
				},
			},
		},
	}
}

// Configure adds the provider configured client to the resource
func (r *deviceRegistrationResource) Configure(ctx context.Context, req resource.ConfigureRequest, resp *resource.ConfigureResponse) {
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

// desiredRegistration builds the gateway model from the plan
func desiredRegistration(plan *models.DeviceRegistrationModel) models.DeviceRegistrationAPI {
	return models.DeviceRegistrationAPI{
		Enabled:                     boolOrNil(plan.Enabled),
		ServiceAccount:              stringOrNil(plan.ServiceAccount),
		DeviceQuota:                 int64OrNil(plan.DeviceQuota),
		MaximumInactivityPeriodDays: int64OrNil(plan.MaximumInactivityPeriodDays),
	}
}

// ensureFor maps the enabled toggle onto existence semantics
func ensureFor(plan *models.DeviceRegistrationModel) reconcile.Ensure {
	if plan.Enabled.ValueBool() {
		return reconcile.EnsurePresent
	}
	return reconcile.EnsureAbsent
}

// converge drives the registration state toward the plan; Create and
// Update are the same operation on the singleton.
func (r *deviceRegistrationResource) converge(ctx context.Context, plan *models.DeviceRegistrationModel) (reconcile.Action, error) {
	return r.engine().Set(ctx, client.SingletonKey{}, desiredRegistration(plan), ensureFor(plan))
}

// Create applies the desired registration state
func (r *deviceRegistrationResource) Create(ctx context.Context, req resource.CreateRequest, resp *resource.CreateResponse) {
	if r.providerData == nil {
		resp.Diagnostics.AddError(
			"Unconfigured API Client",
			"Expected configured ProviderData. Please report this issue to the provider developers.",
		)
		return
	}

	var plan models.DeviceRegistrationModel
	resp.Diagnostics.Append(req.Plan.Get(ctx, &plan)...)
	if resp.Diagnostics.HasError() {
		return
	}

	tflog.Info(ctx, "Configuring device registration", map[string]interface{}{
		"enabled": plan.Enabled.ValueBool(),
	})

	action, err := r.converge(ctx, &plan)
	if err != nil {
		tflog.Error(ctx, "Failed to configure device registration", map[string]interface{}{
			"error": err.Error(),
		})
		resp.Diagnostics.Append(client.MapError(err, "configure device registration"))
		return
	}

	plan.ID = types.StringValue(deviceRegistrationID)

	tflog.Info(ctx, "Configured device registration", map[string]interface{}{
		"action": string(action),
	})

	resp.Diagnostics.Append(resp.State.Set(ctx, &plan)...)
}

// Read refreshes the Terraform state with the latest data
func (r *deviceRegistrationResource) Read(ctx context.Context, req resource.ReadRequest, resp *resource.ReadResponse) {
	if r.providerData == nil {
		resp.Diagnostics.AddError(
			"Unconfigured API Client",
			"Expected configured ProviderData. Please report this issue to the provider developers.",
		)
		return
	}

	var state models.DeviceRegistrationModel
	resp.Diagnostics.Append(req.State.Get(ctx, &state)...)
	if resp.Diagnostics.HasError() {
		return
	}

	tflog.Debug(ctx, "Reading device registration")

	current, err := r.engine().Get(ctx, client.SingletonKey{})
	if err != nil {
		tflog.Error(ctx, "Failed to read device registration", map[string]interface{}{
			"error": err.Error(),
		})
		resp.Diagnostics.Append(client.MapError(err, "read device registration"))
		return
	}

	// The singleton always exists conceptually; "not found" means the
	// toggle is off. Keep the resource and surface the drift.
	state.Enabled = types.BoolValue(current.Exists)
	if current.Exists {
		actual := current.Current
		if !state.ServiceAccount.IsNull() {
			state.ServiceAccount = stringFromPtr(actual.ServiceAccount)
		}
		if !state.DeviceQuota.IsNull() {
			state.DeviceQuota = int64FromPtr(actual.DeviceQuota)
		}
		if !state.MaximumInactivityPeriodDays.IsNull() {
			state.MaximumInactivityPeriodDays = int64FromPtr(actual.MaximumInactivityPeriodDays)
		}
	}

	state.ID = types.StringValue(deviceRegistrationID)

	resp.Diagnostics.Append(resp.State.Set(ctx, &state)...)
}

// Update converges the registration state toward the plan
func (r *deviceRegistrationResource) Update(ctx context.Context, req resource.UpdateRequest, resp *resource.UpdateResponse) {
	if r.providerData == nil {
		resp.Diagnostics.AddError(
			"Unconfigured API Client",
			"Expected configured ProviderData. Please report this issue to the provider developers.",
		)
		return
	}

	var plan models.DeviceRegistrationModel
	resp.Diagnostics.Append(req.Plan.Get(ctx, &plan)...)
	if resp.Diagnostics.HasError() {
		return
	}

	tflog.Info(ctx, "Updating device registration", map[string]interface{}{
		"enabled": plan.Enabled.ValueBool(),
	})

	action, err := r.converge(ctx, &plan)
	if err != nil {
		tflog.Error(ctx, "Failed to update device registration", map[string]interface{}{
			"error": err.Error(),
		})
		resp.Diagnostics.Append(client.MapError(err, "update device registration"))
		return
	}

	plan.ID = types.StringValue(deviceRegistrationID)

	tflog.Info(ctx, "Updated device registration", map[string]interface{}{
		"action": string(action),
	})

	resp.Diagnostics.Append(resp.State.Set(ctx, &plan)...)
}

// Delete disables device registration for the domain
func (r *deviceRegistrationResource) Delete(ctx context.Context, req resource.DeleteRequest, resp *resource.DeleteResponse) {
	if r.providerData == nil {
		resp.Diagnostics.AddError(
			"Unconfigured API Client",
			"Expected configured ProviderData. Please report this issue to the provider developers.",
		)
		return
	}

	tflog.Info(ctx, "Disabling device registration")

	if _, err := r.engine().Set(ctx, client.SingletonKey{}, models.DeviceRegistrationAPI{}, reconcile.EnsureAbsent); err != nil {
		tflog.Error(ctx, "Failed to disable device registration", map[string]interface{}{
			"error": err.Error(),
		})
		resp.Diagnostics.Append(client.MapError(err, "disable device registration"))
		return
	}

	tflog.Info(ctx, "Disabled device registration")
}

// ImportState adopts the domain's registration state into Terraform state
func (r *deviceRegistrationResource) ImportState(ctx context.Context, req resource.ImportStateRequest, resp *resource.ImportStateResponse) {
	if req.ID != deviceRegistrationID {
		resp.Diagnostics.AddError(
			"Invalid Import ID",
			fmt.Sprintf("Device registration is imported with the fixed ID %q, got %q.", deviceRegistrationID, req.ID),
		)
		return
	}

	resp.Diagnostics.Append(resp.State.SetAttribute(ctx, path.Root("id"), deviceRegistrationID)...)

	tflog.Info(ctx, "Imported device registration")
}
