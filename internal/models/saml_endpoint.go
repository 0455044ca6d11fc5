package models

import "github.com/hashicorp/terraform-plugin-framework/types"

// Endpoint protocol kinds accepted by the admin gateway.
var SamlEndpointProtocols = []string{
	"SAMLAssertionConsumer",
	"SAMLSingleSignOn",
	"SAMLLogout",
	"SAMLArtifactResolution",
}

// Endpoint bindings accepted by the admin gateway.
var SamlEndpointBindings = []string{"POST", "Redirect", "Artifact"}

// SamlEndpointModel represents the adfs_saml_endpoint resource in
// Terraform. An endpoint lives inside a parent relying-party trust's
// collection and is keyed by (protocol, index) within that collection.
type SamlEndpointModel struct {
	// Parent and key attributes
	RelyingPartyTrust types.String `tfsdk:"relying_party_trust"`
	Protocol          types.String `tfsdk:"protocol"`
	Index             types.Int64  `tfsdk:"index"`

	// Managed attributes
	Binding   types.String `tfsdk:"binding"`
	Location  types.String `tfsdk:"location"`
	IsDefault types.Bool   `tfsdk:"is_default"`

	// Computed attributes
	ID types.String `tfsdk:"id"`
}

// SamlEndpointAPI represents one member of a trust's endpoint collection.
// The gateway exposes the collection as a whole; converging one member is
// a full-collection rewrite that preserves every unrelated member.
type SamlEndpointAPI struct {
	// Key fields, unique together within the parent collection
	Protocol string `json:"protocol"`
	Index    int64  `json:"index"`

	// Managed fields
	Binding   *string `json:"binding,omitempty"`
	Location  *string `json:"location,omitempty"`
	IsDefault *bool   `json:"is_default,omitempty"`
}

// SameKey reports whether two endpoints share the (protocol, index) key.
func (e SamlEndpointAPI) SameKey(other SamlEndpointAPI) bool {
	return e.Protocol == other.Protocol && e.Index == other.Index
}
