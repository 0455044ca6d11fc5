package models

import "github.com/hashicorp/terraform-plugin-framework/types"

// FarmModel represents the adfs_farm resource in Terraform.
// The farm is keyed by its federation service name; exactly one of
// service_account_credential or group_service_account_identifier selects
// how the federation service runs.
type FarmModel struct {
	// Key attribute
	ServiceName types.String `tfsdk:"service_name"`

	// Desired configuration
	DisplayName                   types.String `tfsdk:"display_name"`
	CertificateThumbprint         types.String `tfsdk:"certificate_thumbprint"`
	CertificateSubject            types.String `tfsdk:"certificate_subject"`
	SSLPort                       types.Int64  `tfsdk:"ssl_port"`
	InstallCredential             *Credential  `tfsdk:"install_credential"`
	ServiceAccountCredential      *Credential  `tfsdk:"service_account_credential"`
	GroupServiceAccountIdentifier types.String `tfsdk:"group_service_account_identifier"`

	// Structured admin-configuration overlay; validated before any
	// gateway call, never parsed from free-form text.
	AdminConfiguration types.Map `tfsdk:"admin_configuration"`

	// Computed attributes
	ID                 types.String `tfsdk:"id"`
	ResolvedThumbprint types.String `tfsdk:"resolved_certificate_thumbprint"`
}

// Credential is a nested username/password block.
type Credential struct {
	Username types.String `tfsdk:"username"`
	Password types.String `tfsdk:"password"` // Sensitive
}

// FarmAPI represents the federation farm for admin gateway operations.
// One struct serves Create, Update and Read; pointers distinguish "not
// managed" from "set to the zero value".
type FarmAPI struct {
	// Key field (immutable once the farm exists)
	ServiceName string `json:"service_name"`

	// Managed fields
	DisplayName           *string `json:"display_name,omitempty"`
	CertificateThumbprint *string `json:"certificate_thumbprint,omitempty"`
	SSLPort               *int64  `json:"ssl_port,omitempty"`

	// Exactly one of the two is supplied at install time.
	ServiceAccount      *CredentialAPI `json:"service_account,omitempty"`
	GroupServiceAccount *string        `json:"group_service_account,omitempty"`

	// Install-only credential; write-only, never returned by the gateway.
	InstallCredential *CredentialAPI `json:"install_credential,omitempty"`

	// Admin-configuration overlay as structured key/value data. nil means
	// the overlay is unmanaged and excluded from comparison.
	AdminConfiguration map[string]string `json:"admin_configuration,omitempty"`
}

// CredentialAPI is a username/password pair on the wire. The password is
// write-only.
type CredentialAPI struct {
	Username string  `json:"username"`
	Password *string `json:"password,omitempty"`
}

// AdminConfiguration is the statically validated form of the farm's
// admin-configuration overlay. Unknown keys are rejected at the boundary.
type AdminConfiguration struct {
	DKMContainerDN           string `mapstructure:"dkm_container_dn"`
	DatabaseConnectionString string `mapstructure:"database_connection_string"`
	FarmBehaviorLevel        int64  `mapstructure:"farm_behavior_level"`
	AuditLevel               string `mapstructure:"audit_level"`
}
