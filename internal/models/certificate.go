package models

import "github.com/hashicorp/terraform-plugin-framework/types"

// CertificateDataSourceModel represents the adfs_certificate data source
// in Terraform. Criteria attributes are ANDed; the data source resolves
// to the matching certificate with the longest remaining validity.
type CertificateDataSourceModel struct {
	// Selection criteria (each optional)
	Store             types.String `tfsdk:"store"`
	Thumbprint        types.String `tfsdk:"thumbprint"`
	FriendlyName      types.String `tfsdk:"friendly_name"`
	Subject           types.String `tfsdk:"subject"`
	Issuer            types.String `tfsdk:"issuer"`
	DNSNames          types.List   `tfsdk:"dns_names"`
	KeyUsages         types.List   `tfsdk:"key_usages"`
	EnhancedKeyUsages types.List   `tfsdk:"enhanced_key_usages"`
	AllowExpired      types.Bool   `tfsdk:"allow_expired"`

	// Computed attributes describing the selected certificate
	ID                 types.String `tfsdk:"id"`
	ResolvedThumbprint types.String `tfsdk:"resolved_thumbprint"`
	ResolvedSubject    types.String `tfsdk:"resolved_subject"`
	NotBefore          types.String `tfsdk:"not_before"`
	NotAfter           types.String `tfsdk:"not_after"`
}
