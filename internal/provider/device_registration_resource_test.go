// Package provider implements acceptance tests for the device registration resource
package provider

import (
	"testing"

	"github.com/hashicorp/terraform-plugin-testing/helper/resource"
)

// TestAccDeviceRegistration_toggle tests enabling and disabling device
// registration for the domain
func TestAccDeviceRegistration_toggle(t *testing.T) {
	resource.Test(t, resource.TestCase{
		PreCheck:                 func() { testAccPreCheck(t) },
		ProtoV6ProviderFactories: testAccProtoV6ProviderFactories,
		Steps: []resource.TestStep{
			// Step 1: Enable with a device quota
			{
				Config: testAccDeviceRegistrationConfig_enabled,
				Check: resource.ComposeAggregateTestCheckFunc(
					resource.TestCheckResourceAttr("adfs_device_registration.test", "id", "device-registration"),
					resource.TestCheckResourceAttr("adfs_device_registration.test", "enabled", "true"),
					resource.TestCheckResourceAttr("adfs_device_registration.test", "device_quota", "20"),
				),
			},
			// Step 2: Disable without destroying the resource
			{
				Config: testAccDeviceRegistrationConfig_disabled,
				Check: resource.ComposeAggregateTestCheckFunc(
					resource.TestCheckResourceAttr("adfs_device_registration.test", "enabled", "false"),
				),
			},
			// ImportState testing with the fixed singleton ID
			{
				ResourceName:      "adfs_device_registration.test",
				ImportState:       true,
				ImportStateId:     "device-registration",
				ImportStateVerify: false,
			},
		},
	})
}

// ============================================================================
// Test Configurations
// ============================================================================

const testAccDeviceRegistrationConfig_enabled = `
resource "adfs_device_registration" "test" {
  enabled      = true
  device_quota = 20
}
`

const testAccDeviceRegistrationConfig_disabled = `
resource "adfs_device_registration" "test" {
  enabled = false
}
`
