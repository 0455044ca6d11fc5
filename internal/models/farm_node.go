package models

import "github.com/hashicorp/terraform-plugin-framework/types"

// FarmNodeModel represents the adfs_farm_node resource in Terraform.
// A node joins the farm identified by primary_server and is keyed by its
// own server name.
type FarmNodeModel struct {
	// Key attribute
	ServerName types.String `tfsdk:"server_name"`

	// Join parameters
	PrimaryServer                 types.String `tfsdk:"primary_server"`
	ServiceAccountCredential      *Credential  `tfsdk:"service_account_credential"`
	GroupServiceAccountIdentifier types.String `tfsdk:"group_service_account_identifier"`
	CertificateThumbprint         types.String `tfsdk:"certificate_thumbprint"`
	CertificateSubject            types.String `tfsdk:"certificate_subject"`

	// Computed attributes
	ID                 types.String `tfsdk:"id"`
	ResolvedThumbprint types.String `tfsdk:"resolved_certificate_thumbprint"`
}

// FarmNodeAPI represents a farm node for admin gateway operations.
type FarmNodeAPI struct {
	// Key field
	ServerName string `json:"server_name"`

	// Managed fields
	PrimaryServer         *string `json:"primary_server,omitempty"`
	CertificateThumbprint *string `json:"certificate_thumbprint,omitempty"`

	// Exactly one of the two is supplied at join time; write-only.
	ServiceAccount      *CredentialAPI `json:"service_account,omitempty"`
	GroupServiceAccount *string        `json:"group_service_account,omitempty"`
}
