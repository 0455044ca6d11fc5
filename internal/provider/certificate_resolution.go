package provider

import (
	"context"

	"github.com/secinfra/terraform-provider-adfs/internal/certstore"
	"github.com/secinfra/terraform-provider-adfs/internal/client"
)

// resolveServiceCertificate resolves the farm or node service certificate
// reference to a concrete thumbprint. A thumbprint reference is verified
// against the store; a subject reference selects the matching certificate
// with the longest remaining validity. Exactly one of the two is set,
// enforced by ValidateConfig.
func resolveServiceCertificate(ctx context.Context, certificates *client.CertificatesClient, thumbprint, subject string) (string, error) {
	inventory, err := certificates.ListCertificates(ctx, client.DefaultCertificateStore)
	if err != nil {
		return "", err
	}

	criteria := certstore.Criteria{
		Thumbprint: thumbprint,
		Subject:    subject,
	}
	cert, err := certstore.ResolveOne(inventory, criteria)
	if err != nil {
		return "", err
	}
	return cert.Thumbprint, nil
}
