package models

import (
	"github.com/hashicorp/terraform-plugin-framework/types"

	adfstypes "github.com/secinfra/terraform-provider-adfs/internal/provider/types"
)

// RelyingPartyTrustModel represents the adfs_relying_party_trust resource
// in Terraform. The trust is keyed globally by name. List attributes use
// the StringSet custom type so gateway reordering never shows as drift.
type RelyingPartyTrustModel struct {
	// Key attribute
	Name types.String `tfsdk:"name"`

	// Managed attributes
	Enabled                 types.Bool               `tfsdk:"enabled"`
	Identifiers             adfstypes.StringSetValue `tfsdk:"identifiers"`
	ClaimsProviderNames     adfstypes.StringSetValue `tfsdk:"claims_provider_names"`
	TransformRules          types.String             `tfsdk:"issuance_transform_rules"`
	AuthorizationRules      types.String             `tfsdk:"issuance_authorization_rules"`
	ProtocolProfile         types.String             `tfsdk:"protocol_profile"`
	MonitoringEnabled       types.Bool               `tfsdk:"monitoring_enabled"`
	MetadataURL             types.String             `tfsdk:"metadata_url"`
	Notes                   types.String             `tfsdk:"notes"`
	AccessControlPolicyName types.String             `tfsdk:"access_control_policy_name"`

	// Optional reference: null = unmanaged, "" = explicitly cleared.
	EncryptionCertificate types.String `tfsdk:"encryption_certificate_thumbprint"`

	SigningCertificateThumbprints adfstypes.StringSetValue `tfsdk:"signing_certificate_thumbprints"`

	// Security flags
	EncryptClaims              types.Bool `tfsdk:"encrypt_claims"`
	SignedSamlRequestsRequired types.Bool `tfsdk:"signed_saml_requests_required"`
	EncryptedNameIDRequired    types.Bool `tfsdk:"encrypted_name_id_required"`

	// Computed attributes
	ID types.String `tfsdk:"id"`
}

// RelyingPartyTrustAPI represents a relying-party trust for admin gateway
// operations. List fields carry set semantics: element order is never
// meaningful.
type RelyingPartyTrustAPI struct {
	// Key field
	Name string `json:"name"`

	// Managed fields
	Enabled                 *bool    `json:"enabled,omitempty"`
	Identifiers             []string `json:"identifiers,omitempty"`
	ClaimsProviderNames     []string `json:"claims_provider_names,omitempty"`
	TransformRules          *string  `json:"issuance_transform_rules,omitempty"`
	AuthorizationRules      *string  `json:"issuance_authorization_rules,omitempty"`
	ProtocolProfile         *string  `json:"protocol_profile,omitempty"`
	MonitoringEnabled       *bool    `json:"monitoring_enabled,omitempty"`
	MetadataURL             *string  `json:"metadata_url,omitempty"`
	Notes                   *string  `json:"notes,omitempty"`
	AccessControlPolicyName *string  `json:"access_control_policy_name,omitempty"`

	// Optional reference: nil = unmanaged, empty = explicitly cleared.
	EncryptionCertificate *string `json:"encryption_certificate,omitempty"`

	SigningCertificateThumbprints []string `json:"signing_certificate_thumbprints,omitempty"`

	// Security flags
	EncryptClaims              *bool `json:"encrypt_claims,omitempty"`
	SignedSamlRequestsRequired *bool `json:"signed_saml_requests_required,omitempty"`
	EncryptedNameIDRequired    *bool `json:"encrypted_name_id_required,omitempty"`
}
