// Package provider implements the AD FS Terraform provider
package provider

// TestEnvVars documents the environment variables required for acceptance tests
// These variables must be set when running acceptance tests (TF_ACC=1)
const (
	// TF_ACC must be set to "1" to enable acceptance tests
	EnvTFAcc = "TF_ACC"

	// ADFS_SERVER_URL is the base URL of the admin gateway on the primary node
	// Example: https://fs.example.com:8443
	EnvServerURL = "ADFS_SERVER_URL"

	// ADFS_USERNAME is the admin gateway account name
	EnvUsername = "ADFS_USERNAME"

	// ADFS_PASSWORD is the admin gateway account password
	EnvPassword = "ADFS_PASSWORD"
)

// TestAccPreCheckVars lists the required environment variables for acceptance tests
var TestAccPreCheckVars = []string{
	EnvServerURL,
	EnvUsername,
	EnvPassword,
}
