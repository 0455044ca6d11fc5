// Package provider implements acceptance tests for the certificate data source
package provider

import (
	"testing"

	"github.com/hashicorp/terraform-plugin-testing/helper/resource"
)

// TestAccCertificateDataSource_bySubject selects the service certificate
// installed on the primary node by subject
func TestAccCertificateDataSource_bySubject(t *testing.T) {
	resource.Test(t, resource.TestCase{
		PreCheck:                 func() { testAccPreCheck(t) },
		ProtoV6ProviderFactories: testAccProtoV6ProviderFactories,
		Steps: []resource.TestStep{
			{
				Config: testAccCertificateDataSourceConfig_bySubject,
				Check: resource.ComposeAggregateTestCheckFunc(
					resource.TestCheckResourceAttr("data.adfs_certificate.test", "resolved_subject", "CN=fs.example.com"),
					resource.TestCheckResourceAttrSet("data.adfs_certificate.test", "resolved_thumbprint"),
					resource.TestCheckResourceAttrSet("data.adfs_certificate.test", "not_after"),
				),
			},
		},
	})
}

// TestAccCertificateDataSource_dnsNames selects by DNS name coverage
func TestAccCertificateDataSource_dnsNames(t *testing.T) {
	resource.Test(t, resource.TestCase{
		PreCheck:                 func() { testAccPreCheck(t) },
		ProtoV6ProviderFactories: testAccProtoV6ProviderFactories,
		Steps: []resource.TestStep{
			{
				Config: testAccCertificateDataSourceConfig_dnsNames,
				Check: resource.ComposeAggregateTestCheckFunc(
					resource.TestCheckResourceAttrSet("data.adfs_certificate.by_dns", "resolved_thumbprint"),
				),
			},
		},
	})
}

// ============================================================================
// Test Configurations
// ============================================================================

const testAccCertificateDataSourceConfig_bySubject = `
data "adfs_certificate" "test" {
  subject = "CN=fs.example.com"
}
`

const testAccCertificateDataSourceConfig_dnsNames = `
data "adfs_certificate" "by_dns" {
  dns_names = ["fs.example.com"]
}
`
