// Package client provides AD FS admin gateway API wrappers
package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/secinfra/terraform-provider-adfs/internal/models"
)

// TrustClient wraps RestClient for relying-party trust operations
type TrustClient struct {
	RestClient *RestClient
}

// NewTrustClient creates a new trust client using the generic RestClient
func NewTrustClient(restClient *RestClient) *TrustClient {
	return &TrustClient{RestClient: restClient}
}

// GetCurrent retrieves a relying-party trust by name
func (c *TrustClient) GetCurrent(ctx context.Context, name string) (models.RelyingPartyTrustAPI, bool, error) {
	var response models.RelyingPartyTrustAPI
	path := fmt.Sprintf("/api/v1/trusts/%s", url.PathEscape(name))
	err := c.RestClient.DoRequest(ctx, "GET", path, nil, &response)
	if err != nil {
		if IsNotFoundError(err) {
			return models.RelyingPartyTrustAPI{}, false, nil
		}
		return models.RelyingPartyTrustAPI{}, false, fmt.Errorf("failed to get relying-party trust: %w", err)
	}
	return response, true, nil
}

// Create registers a new relying-party trust
func (c *TrustClient) Create(ctx context.Context, desired models.RelyingPartyTrustAPI) error {
	err := c.RestClient.DoRequest(ctx, "POST", "/api/v1/trusts", desired, nil)
	if err != nil {
		return fmt.Errorf("failed to create relying-party trust: %w", err)
	}
	return nil
}

// Update applies desired trust properties in place
func (c *TrustClient) Update(ctx context.Context, name string, desired models.RelyingPartyTrustAPI) error {
	path := fmt.Sprintf("/api/v1/trusts/%s", url.PathEscape(name))
	err := c.RestClient.DoRequest(ctx, "PUT", path, desired, nil)
	if err != nil {
		return fmt.Errorf("failed to update relying-party trust: %w", err)
	}
	return nil
}

// Delete removes a relying-party trust
func (c *TrustClient) Delete(ctx context.Context, name string) error {
	path := fmt.Sprintf("/api/v1/trusts/%s", url.PathEscape(name))
	err := c.RestClient.DoRequest(ctx, "DELETE", path, nil, nil)
	if err != nil {
		return fmt.Errorf("failed to delete relying-party trust: %w", err)
	}
	return nil
}

// GetEndpoints retrieves a trust's full SAML endpoint collection
func (c *TrustClient) GetEndpoints(ctx context.Context, trustName string) ([]models.SamlEndpointAPI, error) {
	var response []models.SamlEndpointAPI
	path := fmt.Sprintf("/api/v1/trusts/%s/endpoints", url.PathEscape(trustName))
	err := c.RestClient.DoRequest(ctx, "GET", path, nil, &response)
	if err != nil {
		return nil, fmt.Errorf("failed to get SAML endpoints: %w", err)
	}
	return response, nil
}

// SetEndpoints replaces a trust's full SAML endpoint collection
func (c *TrustClient) SetEndpoints(ctx context.Context, trustName string, endpoints []models.SamlEndpointAPI) error {
	path := fmt.Sprintf("/api/v1/trusts/%s/endpoints", url.PathEscape(trustName))
	err := c.RestClient.DoRequest(ctx, "PUT", path, endpoints, nil)
	if err != nil {
		return fmt.Errorf("failed to set SAML endpoints: %w", err)
	}
	return nil
}
