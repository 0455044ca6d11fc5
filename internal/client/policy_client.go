// Package client provides AD FS admin gateway API wrappers
package client

import (
	"context"
	"fmt"

	"github.com/secinfra/terraform-provider-adfs/internal/models"
)

// SingletonKey keys the farm-wide singleton resources (global
// authentication policy, device registration). There is exactly one
// instance per farm, so the key carries no data.
type SingletonKey struct{}

// PolicyClient wraps RestClient for the global authentication policy.
// The policy always exists on an installed farm; Create aliases Update
// and Delete is not supported by the gateway.
type PolicyClient struct {
	RestClient *RestClient
}

// NewPolicyClient creates a new policy client using the generic RestClient
func NewPolicyClient(restClient *RestClient) *PolicyClient {
	return &PolicyClient{RestClient: restClient}
}

// GetCurrent retrieves the farm-wide authentication policy
func (c *PolicyClient) GetCurrent(ctx context.Context, _ SingletonKey) (models.GlobalAuthenticationPolicyAPI, bool, error) {
	var response models.GlobalAuthenticationPolicyAPI
	err := c.RestClient.DoRequest(ctx, "GET", "/api/v1/authentication-policy/global", nil, &response)
	if err != nil {
		return models.GlobalAuthenticationPolicyAPI{}, false, fmt.Errorf("failed to get global authentication policy: %w", err)
	}
	return response, true, nil
}

// Create applies the desired policy; the singleton always exists, so this
// aliases Update
func (c *PolicyClient) Create(ctx context.Context, desired models.GlobalAuthenticationPolicyAPI) error {
	return c.Update(ctx, SingletonKey{}, desired)
}

// Update applies desired policy settings
func (c *PolicyClient) Update(ctx context.Context, _ SingletonKey, desired models.GlobalAuthenticationPolicyAPI) error {
	err := c.RestClient.DoRequest(ctx, "PUT", "/api/v1/authentication-policy/global", desired, nil)
	if err != nil {
		return fmt.Errorf("failed to update global authentication policy: %w", err)
	}
	return nil
}

// Delete is not supported: a farm always carries a global policy
func (c *PolicyClient) Delete(ctx context.Context, _ SingletonKey) error {
	return fmt.Errorf("the global authentication policy cannot be deleted")
}

// DeviceRegistrationClient wraps RestClient for the domain's device
// registration state. Absence means "disabled", so Delete disables.
type DeviceRegistrationClient struct {
	RestClient *RestClient
}

// NewDeviceRegistrationClient creates a new device registration client
// using the generic RestClient
func NewDeviceRegistrationClient(restClient *RestClient) *DeviceRegistrationClient {
	return &DeviceRegistrationClient{RestClient: restClient}
}

// GetCurrent retrieves the device registration state. A disabled state
// reports found=false so that ensure semantics map onto the toggle.
func (c *DeviceRegistrationClient) GetCurrent(ctx context.Context, _ SingletonKey) (models.DeviceRegistrationAPI, bool, error) {
	var response models.DeviceRegistrationAPI
	err := c.RestClient.DoRequest(ctx, "GET", "/api/v1/device-registration", nil, &response)
	if err != nil {
		if IsNotFoundError(err) {
			return models.DeviceRegistrationAPI{}, false, nil
		}
		return models.DeviceRegistrationAPI{}, false, fmt.Errorf("failed to get device registration: %w", err)
	}
	if response.Enabled == nil || !*response.Enabled {
		return models.DeviceRegistrationAPI{}, false, nil
	}
	return response, true, nil
}

// Create enables device registration with the desired settings
func (c *DeviceRegistrationClient) Create(ctx context.Context, desired models.DeviceRegistrationAPI) error {
	desired.Enabled = models.BoolPtr(true)
	err := c.RestClient.DoRequest(ctx, "PUT", "/api/v1/device-registration", desired, nil)
	if err != nil {
		return fmt.Errorf("failed to enable device registration: %w", err)
	}
	return nil
}

// Update applies desired device registration settings
func (c *DeviceRegistrationClient) Update(ctx context.Context, _ SingletonKey, desired models.DeviceRegistrationAPI) error {
	return c.Create(ctx, desired)
}

// Delete disables device registration for the domain
func (c *DeviceRegistrationClient) Delete(ctx context.Context, _ SingletonKey) error {
	disabled := models.DeviceRegistrationAPI{Enabled: models.BoolPtr(false)}
	err := c.RestClient.DoRequest(ctx, "PUT", "/api/v1/device-registration", disabled, nil)
	if err != nil {
		return fmt.Errorf("failed to disable device registration: %w", err)
	}
	return nil
}
