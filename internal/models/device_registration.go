package models

import "github.com/hashicorp/terraform-plugin-framework/types"

// DeviceRegistrationModel represents the adfs_device_registration
// resource in Terraform. There is one registration state per domain;
// "absent" means device registration is disabled.
type DeviceRegistrationModel struct {
	Enabled                     types.Bool   `tfsdk:"enabled"`
	ServiceAccount              types.String `tfsdk:"service_account"`
	DeviceQuota                 types.Int64  `tfsdk:"device_quota"`
	MaximumInactivityPeriodDays types.Int64  `tfsdk:"maximum_inactivity_period_days"`

	// Computed attributes
	ID types.String `tfsdk:"id"`
}

// DeviceRegistrationAPI represents the domain's device registration state
// for admin gateway operations.
type DeviceRegistrationAPI struct {
	Enabled                     *bool   `json:"enabled,omitempty"`
	ServiceAccount              *string `json:"service_account,omitempty"`
	DeviceQuota                 *int64  `json:"device_quota,omitempty"`
	MaximumInactivityPeriodDays *int64  `json:"maximum_inactivity_period_days,omitempty"`
}
