package models

import (
	"github.com/hashicorp/terraform-plugin-framework/types"

	adfstypes "github.com/secinfra/terraform-provider-adfs/internal/provider/types"
)

// GlobalAuthenticationPolicyModel represents the
// adfs_global_authentication_policy resource in Terraform. The farm has
// exactly one policy, so the resource carries no caller-supplied key.
// Provider lists use the StringSet custom type so gateway reordering
// never shows as drift.
type GlobalAuthenticationPolicyModel struct {
	PrimaryIntranetAuthenticationProviders adfstypes.StringSetValue `tfsdk:"primary_intranet_authentication_providers"`
	PrimaryExtranetAuthenticationProviders adfstypes.StringSetValue `tfsdk:"primary_extranet_authentication_providers"`
	AdditionalAuthenticationProviders      adfstypes.StringSetValue `tfsdk:"additional_authentication_providers"`
	DeviceAuthenticationEnabled            types.Bool               `tfsdk:"device_authentication_enabled"`
	WindowsIntegratedFallbackEnabled       types.Bool               `tfsdk:"windows_integrated_fallback_enabled"`

	// Computed attributes
	ID types.String `tfsdk:"id"`
}

// GlobalAuthenticationPolicyAPI represents the farm-wide authentication
// policy for admin gateway operations. Provider lists carry set
// semantics.
type GlobalAuthenticationPolicyAPI struct {
	PrimaryIntranetAuthenticationProviders []string `json:"primary_intranet_authentication_providers,omitempty"`
	PrimaryExtranetAuthenticationProviders []string `json:"primary_extranet_authentication_providers,omitempty"`
	AdditionalAuthenticationProviders      []string `json:"additional_authentication_providers,omitempty"`
	DeviceAuthenticationEnabled            *bool    `json:"device_authentication_enabled,omitempty"`
	WindowsIntegratedFallbackEnabled       *bool    `json:"windows_integrated_fallback_enabled,omitempty"`
}
