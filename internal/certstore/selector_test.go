package certstore

import (
	"errors"
	"testing"
	"time"
)

var testNow = time.Date(2029, 6, 1, 0, 0, 0, 0, time.UTC)

func testInventory() []Certificate {
	return []Certificate{
		{
			Thumbprint:        "A1B2C3D4E5F6A1B2C3D4E5F6A1B2C3D4E5F6A1B2",
			Subject:           "CN=sts.contoso.com",
			FriendlyName:      "STS 2030",
			Issuer:            "CN=Contoso CA",
			NotBefore:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			NotAfter:          time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
			DNSNames:          []string{"sts.contoso.com"},
			KeyUsages:         []string{"DigitalSignature", "KeyEncipherment"},
			EnhancedKeyUsages: []string{"ServerAuthentication"},
		},
		{
			Thumbprint:        "B1B2C3D4E5F6A1B2C3D4E5F6A1B2C3D4E5F6A1B2",
			Subject:           "CN=sts.contoso.com",
			FriendlyName:      "STS 2031",
			Issuer:            "CN=Contoso CA",
			NotBefore:         time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			NotAfter:          time.Date(2031, 1, 1, 0, 0, 0, 0, time.UTC),
			DNSNames:          []string{"sts.contoso.com", "enterpriseregistration.contoso.com"},
			KeyUsages:         []string{"DigitalSignature", "KeyEncipherment"},
			EnhancedKeyUsages: []string{"ServerAuthentication"},
		},
		{
			Thumbprint:   "C1B2C3D4E5F6A1B2C3D4E5F6A1B2C3D4E5F6A1B2",
			Subject:      "CN=old.contoso.com",
			FriendlyName: "Expired",
			Issuer:       "CN=Contoso CA",
			NotBefore:    time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC),
			NotAfter:     time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestSelectOrdersByNotAfterDescending(t *testing.T) {
	matches := Select(testInventory(), Criteria{
		Subject: "CN=sts.contoso.com",
		Now:     testNow,
	})

	if len(matches) != 2 {
		t.Fatalf("Select() returned %d matches, want 2", len(matches))
	}
	// Both match the subject; the one expiring last comes first.
	if matches[0].FriendlyName != "STS 2031" || matches[1].FriendlyName != "STS 2030" {
		t.Errorf("Select() order = [%s, %s], want [STS 2031, STS 2030]",
			matches[0].FriendlyName, matches[1].FriendlyName)
	}
}

func TestSelectCriteria(t *testing.T) {
	inventory := testInventory()

	tests := []struct {
		name     string
		criteria Criteria
		want     []string // expected thumbprints, in order
	}{
		{
			name:     "thumbprint is case-insensitive",
			criteria: Criteria{Thumbprint: "a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4e5f6a1b2", Now: testNow},
			want:     []string{"A1B2C3D4E5F6A1B2C3D4E5F6A1B2C3D4E5F6A1B2"},
		},
		{
			name:     "friendly name exact",
			criteria: Criteria{FriendlyName: "STS 2030", Now: testNow},
			want:     []string{"A1B2C3D4E5F6A1B2C3D4E5F6A1B2C3D4E5F6A1B2"},
		},
		{
			name: "dns name superset",
			criteria: Criteria{
				DNSNames: []string{"enterpriseregistration.contoso.com", "sts.contoso.com"},
				Now:      testNow,
			},
			want: []string{"B1B2C3D4E5F6A1B2C3D4E5F6A1B2C3D4E5F6A1B2"},
		},
		{
			name: "key usage superset applies to all matches",
			criteria: Criteria{
				KeyUsages: []string{"DigitalSignature"},
				Now:       testNow,
			},
			want: []string{
				"B1B2C3D4E5F6A1B2C3D4E5F6A1B2C3D4E5F6A1B2",
				"A1B2C3D4E5F6A1B2C3D4E5F6A1B2C3D4E5F6A1B2",
			},
		},
		{
			name:     "expired excluded by default",
			criteria: Criteria{Subject: "CN=old.contoso.com", Now: testNow},
			want:     nil,
		},
		{
			name:     "expired included when allowed",
			criteria: Criteria{Subject: "CN=old.contoso.com", AllowExpired: true, Now: testNow},
			want:     []string{"C1B2C3D4E5F6A1B2C3D4E5F6A1B2C3D4E5F6A1B2"},
		},
		{
			name:     "criteria are ANDed",
			criteria: Criteria{Subject: "CN=sts.contoso.com", FriendlyName: "Expired", Now: testNow},
			want:     nil,
		},
		{
			name:     "zero matches is empty, not an error",
			criteria: Criteria{Subject: "CN=absent.example.com", Now: testNow},
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := Select(inventory, tt.criteria)
			if len(matches) != len(tt.want) {
				t.Fatalf("Select() returned %d matches, want %d", len(matches), len(tt.want))
			}
			for i, thumb := range tt.want {
				if matches[i].Thumbprint != thumb {
					t.Errorf("match[%d] = %s, want %s", i, matches[i].Thumbprint, thumb)
				}
			}
		})
	}
}

func TestResolveOne(t *testing.T) {
	inventory := testInventory()

	cert, err := ResolveOne(inventory, Criteria{Subject: "CN=sts.contoso.com", Now: testNow})
	if err != nil {
		t.Fatalf("ResolveOne() unexpected error: %v", err)
	}
	if cert.FriendlyName != "STS 2031" {
		t.Errorf("ResolveOne() picked %s, want the longest-validity match STS 2031", cert.FriendlyName)
	}

	_, err = ResolveOne(inventory, Criteria{Subject: "CN=absent.example.com", Now: testNow})
	var resErr *ResolutionError
	if !errors.As(err, &resErr) {
		t.Fatalf("ResolveOne() with no match = %v, want *ResolutionError", err)
	}
}
