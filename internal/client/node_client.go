// Package client provides AD FS admin gateway API wrappers
package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/secinfra/terraform-provider-adfs/internal/models"
)

// NodeClient wraps RestClient for farm node join/leave operations
type NodeClient struct {
	RestClient *RestClient
}

// NewNodeClient creates a new node client using the generic RestClient
func NewNodeClient(restClient *RestClient) *NodeClient {
	return &NodeClient{RestClient: restClient}
}

// GetCurrent retrieves a farm node by server name
func (c *NodeClient) GetCurrent(ctx context.Context, serverName string) (models.FarmNodeAPI, bool, error) {
	var response models.FarmNodeAPI
	path := fmt.Sprintf("/api/v1/farm/nodes/%s", url.PathEscape(serverName))
	err := c.RestClient.DoRequest(ctx, "GET", path, nil, &response)
	if err != nil {
		if IsNotFoundError(err) {
			return models.FarmNodeAPI{}, false, nil
		}
		return models.FarmNodeAPI{}, false, fmt.Errorf("failed to get farm node: %w", err)
	}
	return response, true, nil
}

// Create joins a node to the farm
func (c *NodeClient) Create(ctx context.Context, desired models.FarmNodeAPI) error {
	err := c.RestClient.DoRequest(ctx, "POST", "/api/v1/farm/nodes", desired, nil)
	if err != nil {
		return fmt.Errorf("failed to join farm node: %w", err)
	}
	return nil
}

// Update re-applies join parameters to an existing node
func (c *NodeClient) Update(ctx context.Context, serverName string, desired models.FarmNodeAPI) error {
	path := fmt.Sprintf("/api/v1/farm/nodes/%s", url.PathEscape(serverName))
	err := c.RestClient.DoRequest(ctx, "PUT", path, desired, nil)
	if err != nil {
		return fmt.Errorf("failed to update farm node: %w", err)
	}
	return nil
}

// Delete removes a node from the farm
func (c *NodeClient) Delete(ctx context.Context, serverName string) error {
	path := fmt.Sprintf("/api/v1/farm/nodes/%s", url.PathEscape(serverName))
	err := c.RestClient.DoRequest(ctx, "DELETE", path, nil, nil)
	if err != nil {
		return fmt.Errorf("failed to remove farm node: %w", err)
	}
	return nil
}
