// Package client provides AD FS admin gateway API wrappers
package client

import (
	"context"
	"fmt"

	"github.com/secinfra/terraform-provider-adfs/internal/models"
)

// EndpointKey identifies one SAML endpoint within a trust's collection.
// The (protocol, index) pair is unique within the collection.
type EndpointKey struct {
	Protocol string
	Index    int64
}

// EndpointClient converges single SAML endpoints against a trust whose
// gateway surface only exposes the endpoint collection as a whole. Every
// mutation is a full-collection rewrite that preserves unrelated members
// exactly; the reconciliation engine short-circuits redundant rewrites.
type EndpointClient struct {
	Trusts    *TrustClient
	TrustName string
}

// NewEndpointClient creates an endpoint client scoped to one trust
func NewEndpointClient(trusts *TrustClient, trustName string) *EndpointClient {
	return &EndpointClient{Trusts: trusts, TrustName: trustName}
}

// GetCurrent retrieves the endpoint matching key from the trust's
// collection
func (c *EndpointClient) GetCurrent(ctx context.Context, key EndpointKey) (models.SamlEndpointAPI, bool, error) {
	endpoints, err := c.Trusts.GetEndpoints(ctx, c.TrustName)
	if err != nil {
		if IsNotFoundError(err) {
			// The parent trust itself is gone; so is the endpoint.
			return models.SamlEndpointAPI{}, false, nil
		}
		return models.SamlEndpointAPI{}, false, err
	}
	for _, ep := range endpoints {
		if ep.Protocol == key.Protocol && ep.Index == key.Index {
			return ep, true, nil
		}
	}
	return models.SamlEndpointAPI{}, false, nil
}

// Create adds the desired endpoint to the collection
func (c *EndpointClient) Create(ctx context.Context, desired models.SamlEndpointAPI) error {
	return c.rewrite(ctx, desired)
}

// Update replaces the collection member matching the desired endpoint's key
func (c *EndpointClient) Update(ctx context.Context, key EndpointKey, desired models.SamlEndpointAPI) error {
	if key.Protocol != desired.Protocol || key.Index != desired.Index {
		return fmt.Errorf("conflict: endpoint key (%s, %d) does not match desired member (%s, %d)",
			key.Protocol, key.Index, desired.Protocol, desired.Index)
	}
	return c.rewrite(ctx, desired)
}

// Delete removes the endpoint matching key from the collection
func (c *EndpointClient) Delete(ctx context.Context, key EndpointKey) error {
	endpoints, err := c.Trusts.GetEndpoints(ctx, c.TrustName)
	if err != nil {
		return err
	}
	return c.Trusts.SetEndpoints(ctx, c.TrustName, RemoveByKey(endpoints, key))
}

func (c *EndpointClient) rewrite(ctx context.Context, desired models.SamlEndpointAPI) error {
	endpoints, err := c.Trusts.GetEndpoints(ctx, c.TrustName)
	if err != nil {
		return err
	}
	return c.Trusts.SetEndpoints(ctx, c.TrustName, ReplaceByKey(endpoints, desired))
}

// ReplaceByKey returns the collection with the member matching desired's
// (protocol, index) key replaced by desired, appending it when no member
// matches. All other members are carried over unchanged, in order.
func ReplaceByKey(collection []models.SamlEndpointAPI, desired models.SamlEndpointAPI) []models.SamlEndpointAPI {
	result := make([]models.SamlEndpointAPI, 0, len(collection)+1)
	replaced := false
	for _, ep := range collection {
		if ep.SameKey(desired) {
			result = append(result, desired)
			replaced = true
			continue
		}
		result = append(result, ep)
	}
	if !replaced {
		result = append(result, desired)
	}
	return result
}

// RemoveByKey returns the collection without the member matching key,
// carrying all other members over unchanged, in order.
func RemoveByKey(collection []models.SamlEndpointAPI, key EndpointKey) []models.SamlEndpointAPI {
	result := make([]models.SamlEndpointAPI, 0, len(collection))
	for _, ep := range collection {
		if ep.Protocol == key.Protocol && ep.Index == key.Index {
			continue
		}
		result = append(result, ep)
	}
	return result
}
