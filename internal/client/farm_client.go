// Package client provides AD FS admin gateway API wrappers
package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mitchellh/mapstructure"

	"github.com/secinfra/terraform-provider-adfs/internal/models"
)

// FarmClient wraps RestClient for federation farm and farm node
// operations. Thin wrapper that delegates to the generic RestClient.
type FarmClient struct {
	RestClient *RestClient
}

// NewFarmClient creates a new farm client using the generic RestClient
func NewFarmClient(restClient *RestClient) *FarmClient {
	return &FarmClient{RestClient: restClient}
}

// GetCurrent retrieves the farm's current state. A farm that has not been
// installed yet reports found=false; that is not an error.
func (c *FarmClient) GetCurrent(ctx context.Context, serviceName string) (models.FarmAPI, bool, error) {
	var response models.FarmAPI
	path := fmt.Sprintf("/api/v1/farm/%s", url.PathEscape(serviceName))
	err := c.RestClient.DoRequest(ctx, "GET", path, nil, &response)
	if err != nil {
		if IsNotFoundError(err) {
			return models.FarmAPI{}, false, nil
		}
		return models.FarmAPI{}, false, fmt.Errorf("failed to get farm: %w", err)
	}
	return response, true, nil
}

// Create installs the federation service with the full desired field set
func (c *FarmClient) Create(ctx context.Context, desired models.FarmAPI) error {
	err := c.RestClient.DoRequest(ctx, "POST", "/api/v1/farm", desired, nil)
	if err != nil {
		return fmt.Errorf("failed to install farm: %w", err)
	}
	return nil
}

// Update applies desired farm properties in place
func (c *FarmClient) Update(ctx context.Context, serviceName string, desired models.FarmAPI) error {
	path := fmt.Sprintf("/api/v1/farm/%s", url.PathEscape(serviceName))
	err := c.RestClient.DoRequest(ctx, "PUT", path, desired, nil)
	if err != nil {
		return fmt.Errorf("failed to update farm: %w", err)
	}
	return nil
}

// Delete uninstalls the federation service
func (c *FarmClient) Delete(ctx context.Context, serviceName string) error {
	path := fmt.Sprintf("/api/v1/farm/%s", url.PathEscape(serviceName))
	err := c.RestClient.DoRequest(ctx, "DELETE", path, nil, nil)
	if err != nil {
		return fmt.Errorf("failed to uninstall farm: %w", err)
	}
	return nil
}

// DecodeAdminConfiguration validates the admin-configuration overlay
// against the statically known key set and returns the typed form.
// Unknown keys and untypeable values are configuration errors, raised
// before any gateway call.
func DecodeAdminConfiguration(overlay map[string]string) (models.AdminConfiguration, error) {
	var config models.AdminConfiguration

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &config,
		ErrorUnused:      true,
		WeaklyTypedInput: true, // numeric values arrive as strings
	})
	if err != nil {
		return models.AdminConfiguration{}, fmt.Errorf("failed to build admin configuration decoder: %w", err)
	}

	if err := decoder.Decode(overlay); err != nil {
		return models.AdminConfiguration{}, fmt.Errorf("invalid admin configuration: %w", err)
	}
	return config, nil
}
