// Package provider implements acceptance tests for the relying party trust resource
package provider

import (
	"testing"

	"github.com/hashicorp/terraform-plugin-testing/helper/resource"
)

// TestAccRelyingPartyTrust_basic tests basic CRUD lifecycle for a relying party trust
func TestAccRelyingPartyTrust_basic(t *testing.T) {
	resource.Test(t, resource.TestCase{
		PreCheck:                 func() { testAccPreCheck(t) },
		ProtoV6ProviderFactories: testAccProtoV6ProviderFactories,
		Steps: []resource.TestStep{
			// Create and Read testing
			{
				Config: testAccRelyingPartyTrustConfig_basic,
				Check: resource.ComposeAggregateTestCheckFunc(
					resource.TestCheckResourceAttr("adfs_relying_party_trust.test", "name", "acc-test-app"),
					resource.TestCheckResourceAttr("adfs_relying_party_trust.test", "enabled", "true"),
					resource.TestCheckResourceAttr("adfs_relying_party_trust.test", "identifiers.#", "1"),
					resource.TestCheckResourceAttr("adfs_relying_party_trust.test", "identifiers.0", "https://acc-test-app.example.com/"),
					resource.TestCheckResourceAttrSet("adfs_relying_party_trust.test", "id"),
				),
			},
			// ImportState testing. Import populates only the trust name;
			// unmanaged attributes stay null on refresh.
			{
				ResourceName:      "adfs_relying_party_trust.test",
				ImportState:       true,
				ImportStateId:     "acc-test-app",
				ImportStateVerify: false,
			},
		},
	})
}

// TestAccRelyingPartyTrust_update tests in-place convergence of managed fields
func TestAccRelyingPartyTrust_update(t *testing.T) {
	resource.Test(t, resource.TestCase{
		PreCheck:                 func() { testAccPreCheck(t) },
		ProtoV6ProviderFactories: testAccProtoV6ProviderFactories,
		Steps: []resource.TestStep{
			// Step 1: Create with two identifiers and monitoring off
			{
				Config: testAccRelyingPartyTrustConfig_updateBefore,
				Check: resource.ComposeAggregateTestCheckFunc(
					resource.TestCheckResourceAttr("adfs_relying_party_trust.update_test", "name", "acc-update-app"),
					resource.TestCheckResourceAttr("adfs_relying_party_trust.update_test", "identifiers.#", "2"),
					resource.TestCheckResourceAttr("adfs_relying_party_trust.update_test", "monitoring_enabled", "false"),
				),
			},
			// Step 2: Drop an identifier and enable monitoring
			{
				Config: testAccRelyingPartyTrustConfig_updateAfter,
				Check: resource.ComposeAggregateTestCheckFunc(
					resource.TestCheckResourceAttr("adfs_relying_party_trust.update_test", "name", "acc-update-app"),
					resource.TestCheckResourceAttr("adfs_relying_party_trust.update_test", "identifiers.#", "1"),
					resource.TestCheckResourceAttr("adfs_relying_party_trust.update_test", "monitoring_enabled", "true"),
				),
			},
		},
	})
}

// TestAccRelyingPartyTrust_clearEncryptionCertificate tests that an empty
// thumbprint clears the encryption certificate reference
func TestAccRelyingPartyTrust_clearEncryptionCertificate(t *testing.T) {
	resource.Test(t, resource.TestCase{
		PreCheck:                 func() { testAccPreCheck(t) },
		ProtoV6ProviderFactories: testAccProtoV6ProviderFactories,
		Steps: []resource.TestStep{
			// Step 1: Create with an encryption certificate assigned
			{
				Config: testAccRelyingPartyTrustConfig_encryptionCertSet,
				Check: resource.ComposeAggregateTestCheckFunc(
					resource.TestCheckResourceAttr("adfs_relying_party_trust.enc_test", "encryption_certificate_thumbprint", "a909502dd82ae41433e6f83886b00d4277a32a7b"),
				),
			},
			// Step 2: Clear the reference with an empty thumbprint
			{
				Config: testAccRelyingPartyTrustConfig_encryptionCertCleared,
				Check: resource.ComposeAggregateTestCheckFunc(
					resource.TestCheckResourceAttr("adfs_relying_party_trust.enc_test", "encryption_certificate_thumbprint", ""),
				),
			},
		},
	})
}

// ============================================================================
// Test Configurations
// ============================================================================

const testAccRelyingPartyTrustConfig_basic = `
resource "adfs_relying_party_trust" "test" {
  name        = "acc-test-app"
  enabled     = true
  identifiers = ["https://acc-test-app.example.com/"]

  notes = "Acceptance test trust"
}
`

const testAccRelyingPartyTrustConfig_updateBefore = `
resource "adfs_relying_party_trust" "update_test" {
  name = "acc-update-app"
  identifiers = [
    "https://acc-update-app.example.com/",
    "urn:acc-update-app",
  ]
  monitoring_enabled = false
}
`

const testAccRelyingPartyTrustConfig_updateAfter = `
resource "adfs_relying_party_trust" "update_test" {
  name = "acc-update-app"
  identifiers = [
    "https://acc-update-app.example.com/",
  ]
  monitoring_enabled = true
  metadata_url       = "https://acc-update-app.example.com/federationmetadata.xml"
}
`

const testAccRelyingPartyTrustConfig_encryptionCertSet = `
resource "adfs_relying_party_trust" "enc_test" {
  name        = "acc-enc-app"
  identifiers = ["https://acc-enc-app.example.com/"]

  encryption_certificate_thumbprint = "a909502dd82ae41433e6f83886b00d4277a32a7b"
}
`

const testAccRelyingPartyTrustConfig_encryptionCertCleared = `
resource "adfs_relying_party_trust" "enc_test" {
  name        = "acc-enc-app"
  identifiers = ["https://acc-enc-app.example.com/"]

  encryption_certificate_thumbprint = ""
}
`
