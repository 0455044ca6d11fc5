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
)

// AuthConfig holds credentials for the admin gateway token exchange.
type AuthConfig struct {
	ServerURL          string // Admin gateway base URL, e.g. "https://sts.contoso.com:8443"
	Username           string // Farm administrator account (DOMAIN\user or UPN)
	Password           string // Account password; never logged
	Timeout            time.Duration
	InsecureSkipVerify bool
}

// tokenRequest is the credential exchange payload.
type tokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// tokenResponse carries the short-lived bearer token issued by the gateway.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Authenticate exchanges farm administrator credentials for a bearer token
// and returns a ready-to-use REST client. The token is not refreshed;
// Terraform operations are short-lived relative to the token lifetime.
func Authenticate(ctx context.Context, config *AuthConfig) (*RestClient, error) {
	if config == nil {
		return nil, fmt.Errorf("auth config cannot be nil")
	}
	if config.ServerURL == "" {
		return nil, fmt.Errorf("server_url is required")
	}
	if config.Username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if config.Password == "" {
		return nil, fmt.Errorf("password is required")
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	httpClient := &http.Client{Timeout: timeout}
	if config.InsecureSkipVerify {
		httpClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	body, err := json.Marshal(tokenRequest{
		Username: config.Username,
		Password: config.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal token request: %w", err)
	}

	url := strings.TrimSuffix(config.ServerURL, "/") + "/api/v1/auth/token"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token exchange failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("authentication failed: HTTP %d - %s", resp.StatusCode, string(respBody))
	}

	var token tokenResponse
	if err := json.Unmarshal(respBody, &token); err != nil {
		return nil, fmt.Errorf("failed to unmarshal token response: %w", err)
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("authentication failed: gateway returned an empty token")
	}

	return NewRestClient(config.ServerURL, token.AccessToken, RestClientOptions{
		Timeout:            timeout,
		InsecureSkipVerify: config.InsecureSkipVerify,
	})
}
