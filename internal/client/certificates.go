// Package client provides AD FS admin gateway API wrappers
package client

import (
	"context"
	"fmt"
	"net/url"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/secinfra/terraform-provider-adfs/internal/certstore"
)

// DefaultCertificateStore is the machine store consulted when callers do
// not name one.
const DefaultCertificateStore = "My"

// CertificatesClient wraps RestClient for machine certificate store
// queries. The gateway returns inventory entries as loosely typed JSON
// objects; entries are decoded into certstore.Certificate values with
// mapstructure so that unexpected shapes fail loudly instead of being
// silently zeroed.
type CertificatesClient struct {
	RestClient *RestClient
}

// NewCertificatesClient creates a new certificates client using the
// generic RestClient
func NewCertificatesClient(restClient *RestClient) *CertificatesClient {
	return &CertificatesClient{RestClient: restClient}
}

// ListCertificates retrieves the inventory of the named machine store
func (c *CertificatesClient) ListCertificates(ctx context.Context, store string) ([]certstore.Certificate, error) {
	if store == "" {
		store = DefaultCertificateStore
	}

	var raw []map[string]interface{}
	path := fmt.Sprintf("/api/v1/certificates?store=%s", url.QueryEscape(store))
	if err := c.RestClient.DoRequest(ctx, "GET", path, nil, &raw); err != nil {
		return nil, fmt.Errorf("failed to list certificates in store %q: %w", store, err)
	}

	inventory := make([]certstore.Certificate, 0, len(raw))
	for _, entry := range raw {
		cert, err := decodeCertificate(entry)
		if err != nil {
			return nil, fmt.Errorf("malformed certificate entry in store %q: %w", store, err)
		}
		inventory = append(inventory, cert)
	}
	return inventory, nil
}

// ResolveCertificate retrieves a single certificate by thumbprint. A
// missing thumbprint is a not-found error, not an empty result.
func (c *CertificatesClient) ResolveCertificate(ctx context.Context, thumbprint string) (certstore.Certificate, error) {
	var raw map[string]interface{}
	path := fmt.Sprintf("/api/v1/certificates/%s", url.PathEscape(thumbprint))
	if err := c.RestClient.DoRequest(ctx, "GET", path, nil, &raw); err != nil {
		return certstore.Certificate{}, fmt.Errorf("failed to resolve certificate %s: %w", thumbprint, err)
	}

	cert, err := decodeCertificate(raw)
	if err != nil {
		return certstore.Certificate{}, fmt.Errorf("malformed certificate %s: %w", thumbprint, err)
	}
	return cert, nil
}

// decodeCertificate maps one loosely typed inventory entry onto the
// certstore descriptor, converting RFC 3339 strings into time values.
func decodeCertificate(entry map[string]interface{}) (certstore.Certificate, error) {
	var cert certstore.Certificate

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     &cert,
		DecodeHook: stringToTimeHook,
	})
	if err != nil {
		return certstore.Certificate{}, fmt.Errorf("failed to build certificate decoder: %w", err)
	}

	if err := decoder.Decode(entry); err != nil {
		return certstore.Certificate{}, err
	}
	if cert.Thumbprint == "" {
		return certstore.Certificate{}, fmt.Errorf("entry is missing a thumbprint")
	}
	return cert, nil
}

// stringToTimeHook parses RFC 3339 strings into time.Time during decode.
func stringToTimeHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf(time.Time{}) {
		return data, nil
	}
	return time.Parse(time.RFC3339, data.(string))
}
