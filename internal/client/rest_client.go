// Package client provides AD FS admin gateway API wrappers
package client

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/terraform-plugin-log/tflog"
)

// RestClient provides a generic HTTP client for admin gateway operations
// with bearer-token authentication, retry logic, and error mapping.
type RestClient struct {
	HTTPClient  *http.Client
	BaseURL     string
	AccessToken string

	// Retry overrides the default retry policy when non-nil.
	Retry *RetryConfig
}

// RestClientOptions configure transport behavior of the REST client.
type RestClientOptions struct {
	// Timeout bounds each HTTP round-trip. Zero means 30 seconds.
	Timeout time.Duration
	// InsecureSkipVerify disables TLS certificate verification. Intended
	// for lab farms with self-signed gateway certificates only.
	InsecureSkipVerify bool
}

// NewRestClient creates a new generic REST client with a bearer access token
func NewRestClient(baseURL, accessToken string, opts RestClientOptions) (*RestClient, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("baseURL is required")
	}
	if accessToken == "" {
		return nil, fmt.Errorf("access token is required")
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	httpClient := &http.Client{Timeout: timeout}
	if opts.InsecureSkipVerify {
		httpClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	return &RestClient{
		HTTPClient:  httpClient,
		BaseURL:     strings.TrimSuffix(baseURL, "/"),
		AccessToken: accessToken,
	}, nil
}

// DoRequest performs a generic HTTP request with retry logic and error handling
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//   - method: HTTP method (POST, GET, PUT, DELETE)
//   - path: API path (e.g., "/api/v1/farm", "/api/v1/trusts/{name}")
//   - requestBody: Request body to be marshaled to JSON (nil for GET/DELETE)
//   - responseData: Pointer to struct for unmarshaling response JSON (nil if no response expected)
//
// Returns:
//   - error: HTTP error, JSON parsing error, or nil on success
func (c *RestClient) DoRequest(
	ctx context.Context,
	method string,
	path string,
	requestBody interface{},
	responseData interface{},
) error {
	url := fmt.Sprintf("%s%s", c.BaseURL, path)

	// Transient failures are retried here, at the adapter boundary; the
	// reconciliation engine above never retries.
	return RetryWithBackoff(ctx, c.Retry, func() error {
		var bodyReader io.Reader
		if requestBody != nil {
			bodyBytes, err := json.Marshal(requestBody)
			if err != nil {
				return fmt.Errorf("failed to marshal request body: %w", err)
			}
			bodyReader = bytes.NewReader(bodyBytes)

			// Log request (sanitized - no sensitive data)
			tflog.Debug(ctx, "REST API request", map[string]interface{}{
				"method": method,
				"path":   path,
			})
		}

		req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
		if err != nil {
			return fmt.Errorf("failed to create HTTP request: %w", err)
		}

		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.AccessToken))
		if requestBody != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			return fmt.Errorf("HTTP request failed: %w", err)
		}
		defer resp.Body.Close()

		respBodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response body: %w", err)
		}

		// Non-2xx statuses become errors carrying the status code so the
		// classifier in errors.go can categorize them.
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return fmt.Errorf("HTTP %d - %s", resp.StatusCode, string(respBodyBytes))
		}

		tflog.Debug(ctx, "REST API response", map[string]interface{}{
			"status_code": resp.StatusCode,
			"method":      method,
			"path":        path,
		})

		if responseData != nil && len(respBodyBytes) > 0 {
			if err := json.Unmarshal(respBodyBytes, responseData); err != nil {
				return fmt.Errorf("failed to unmarshal response: %w", err)
			}
		}

		return nil
	})
}
