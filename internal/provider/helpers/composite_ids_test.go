package helpers

import (
	"strings"
	"testing"
)

// TestBuildCompositeID tests the BuildCompositeID function with various inputs
func TestBuildCompositeID(t *testing.T) {
	tests := []struct {
		name     string
		parts    []string
		expected string
	}{
		{
			name:     "Three parts - trust, protocol, index",
			parts:    []string{"app-trust", "SAMLAssertionConsumer", "0"},
			expected: "app-trust:SAMLAssertionConsumer:0",
		},
		{
			name:     "Single part",
			parts:    []string{"sts.corp.example.com"},
			expected: "sts.corp.example.com",
		},
		{
			name:     "Parts with special characters",
			parts:    []string{"app_trust-prod", "SAMLLogout", "2"},
			expected: "app_trust-prod:SAMLLogout:2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := BuildCompositeID(tt.parts...)
			if result != tt.expected {
				t.Errorf("BuildCompositeID(%v) = %q, want %q", tt.parts, result, tt.expected)
			}
		})
	}
}

// TestParseCompositeID tests the ParseCompositeID function with valid and invalid inputs
func TestParseCompositeID(t *testing.T) {
	tests := []struct {
		name          string
		id            string
		expectedParts int
		wantParts     []string
		wantErr       bool
		errContains   string
	}{
		{
			name:          "Valid 3-part ID",
			id:            "app-trust:SAMLAssertionConsumer:0",
			expectedParts: 3,
			wantParts:     []string{"app-trust", "SAMLAssertionConsumer", "0"},
			wantErr:       false,
		},
		{
			name:          "Too few parts",
			id:            "app-trust",
			expectedParts: 3,
			wantErr:       true,
			errContains:   "expected 3 parts",
		},
		{
			name:          "Empty first part",
			id:            ":SAMLAssertionConsumer:0",
			expectedParts: 3,
			wantErr:       true,
			errContains:   "part 1 is empty",
		},
		{
			name:          "Empty middle part",
			id:            "app-trust::0",
			expectedParts: 3,
			wantErr:       true,
			errContains:   "part 2 is empty",
		},
		{
			name:          "Empty last part",
			id:            "app-trust:SAMLAssertionConsumer:",
			expectedParts: 3,
			wantErr:       true,
			errContains:   "part 3 is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parts, err := ParseCompositeID(tt.id, tt.expectedParts)

			if (err != nil) != tt.wantErr {
				t.Errorf("ParseCompositeID(%q, %d) error = %v, wantErr %v", tt.id, tt.expectedParts, err, tt.wantErr)
				return
			}

			if tt.wantErr && err != nil {
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("ParseCompositeID(%q, %d) error = %q, want error containing %q", tt.id, tt.expectedParts, err.Error(), tt.errContains)
				}
				return
			}

			if len(parts) != len(tt.wantParts) {
				t.Fatalf("ParseCompositeID(%q, %d) returned %d parts, want %d", tt.id, tt.expectedParts, len(parts), len(tt.wantParts))
			}
			for i := range parts {
				if parts[i] != tt.wantParts[i] {
					t.Errorf("ParseCompositeID(%q, %d) part[%d] = %q, want %q", tt.id, tt.expectedParts, i, parts[i], tt.wantParts[i])
				}
			}
		})
	}
}

// TestParseSamlEndpointID tests the ParseSamlEndpointID function
func TestParseSamlEndpointID(t *testing.T) {
	tests := []struct {
		name         string
		id           string
		wantTrust    string
		wantProtocol string
		wantIndex    int64
		wantErr      bool
		errContains  string
	}{
		{
			name:         "Valid endpoint ID",
			id:           "app-trust:SAMLAssertionConsumer:0",
			wantTrust:    "app-trust",
			wantProtocol: "SAMLAssertionConsumer",
			wantIndex:    0,
			wantErr:      false,
		},
		{
			name:         "Valid with nonzero index",
			id:           "app-trust:SAMLLogout:3",
			wantTrust:    "app-trust",
			wantProtocol: "SAMLLogout",
			wantIndex:    3,
			wantErr:      false,
		},
		{
			name:        "Missing index part",
			id:          "app-trust:SAMLAssertionConsumer",
			wantErr:     true,
			errContains: "expected 3 parts",
		},
		{
			name:        "Non-numeric index",
			id:          "app-trust:SAMLAssertionConsumer:first",
			wantErr:     true,
			errContains: "is not a number",
		},
		{
			name:        "Negative index",
			id:          "app-trust:SAMLAssertionConsumer:-1",
			wantErr:     true,
			errContains: "must not be negative",
		},
		{
			name:        "Empty trust name",
			id:          ":SAMLAssertionConsumer:0",
			wantErr:     true,
			errContains: "part 1 is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trustName, protocol, index, err := ParseSamlEndpointID(tt.id)

			if (err != nil) != tt.wantErr {
				t.Errorf("ParseSamlEndpointID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
				return
			}

			if tt.wantErr && err != nil {
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("ParseSamlEndpointID(%q) error = %q, want error containing %q", tt.id, err.Error(), tt.errContains)
				}
				return
			}

			if trustName != tt.wantTrust {
				t.Errorf("ParseSamlEndpointID(%q) trustName = %q, want %q", tt.id, trustName, tt.wantTrust)
			}
			if protocol != tt.wantProtocol {
				t.Errorf("ParseSamlEndpointID(%q) protocol = %q, want %q", tt.id, protocol, tt.wantProtocol)
			}
			if index != tt.wantIndex {
				t.Errorf("ParseSamlEndpointID(%q) index = %d, want %d", tt.id, index, tt.wantIndex)
			}
		})
	}
}
