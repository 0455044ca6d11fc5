// Package provider implements acceptance tests for the global authentication policy resource
package provider

import (
	"testing"

	"github.com/hashicorp/terraform-plugin-testing/helper/resource"
)

// TestAccGlobalAuthenticationPolicy_basic tests convergence of the
// farm-wide policy singleton. Destroy only removes the resource from
// state; the policy itself is left as configured.
func TestAccGlobalAuthenticationPolicy_basic(t *testing.T) {
	resource.Test(t, resource.TestCase{
		PreCheck:                 func() { testAccPreCheck(t) },
		ProtoV6ProviderFactories: testAccProtoV6ProviderFactories,
		Steps: []resource.TestStep{
			// Create and Read testing
			{
				Config: testAccGlobalAuthenticationPolicyConfig_basic,
				Check: resource.ComposeAggregateTestCheckFunc(
					resource.TestCheckResourceAttr("adfs_global_authentication_policy.test", "id", "global"),
					resource.TestCheckResourceAttr("adfs_global_authentication_policy.test", "primary_intranet_authentication_providers.#", "1"),
					resource.TestCheckResourceAttr("adfs_global_authentication_policy.test", "device_authentication_enabled", "false"),
				),
			},
			// Add an extranet provider and enable device authentication
			{
				Config: testAccGlobalAuthenticationPolicyConfig_extended,
				Check: resource.ComposeAggregateTestCheckFunc(
					resource.TestCheckResourceAttr("adfs_global_authentication_policy.test", "primary_extranet_authentication_providers.#", "2"),
					resource.TestCheckResourceAttr("adfs_global_authentication_policy.test", "device_authentication_enabled", "true"),
				),
			},
			// ImportState testing with the fixed singleton ID
			{
				ResourceName:      "adfs_global_authentication_policy.test",
				ImportState:       true,
				ImportStateId:     "global",
				ImportStateVerify: false,
			},
		},
	})
}

// ============================================================================
// Test Configurations
// ============================================================================

const testAccGlobalAuthenticationPolicyConfig_basic = `
resource "adfs_global_authentication_policy" "test" {
  primary_intranet_authentication_providers = ["WindowsAuthentication"]

  device_authentication_enabled = false
}
`

const testAccGlobalAuthenticationPolicyConfig_extended = `
resource "adfs_global_authentication_policy" "test" {
  primary_intranet_authentication_providers = ["WindowsAuthentication"]
  primary_extranet_authentication_providers = [
    "FormsAuthentication",
    "CertificateAuthentication",
  ]

  device_authentication_enabled = true
}
`
