// Package helpers provides shared utility functions for provider resources
package helpers

import (
	"fmt"
	"strconv"
	"strings"
)

// BuildCompositeID creates a composite ID from parts
// Used by saml_endpoint (trust:protocol:index)
func BuildCompositeID(parts ...string) string {
	return strings.Join(parts, ":")
}

// ParseCompositeID splits a composite ID into its parts
// Returns error if ID format is invalid
func ParseCompositeID(id string, expectedParts int) ([]string, error) {
	parts := strings.SplitN(id, ":", expectedParts)
	if len(parts) != expectedParts {
		return nil, fmt.Errorf("invalid composite ID format: expected %d parts separated by ':', got %d parts in '%s'",
			expectedParts, len(parts), id)
	}

	// Validate no empty parts
	for i, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("invalid composite ID format: part %d is empty in '%s'", i+1, id)
		}
	}

	return parts, nil
}

// ParseSamlEndpointID parses a trust:protocol:index composite ID
func ParseSamlEndpointID(id string) (trustName, protocol string, index int64, err error) {
	parts, err := ParseCompositeID(id, 3)
	if err != nil {
		return "", "", 0, err
	}

	index, err = strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return "", "", 0, fmt.Errorf("invalid composite ID format: index %q is not a number in '%s'", parts[2], id)
	}
	if index < 0 {
		return "", "", 0, fmt.Errorf("invalid composite ID format: index must not be negative in '%s'", id)
	}

	return parts[0], parts[1], index, nil
}
