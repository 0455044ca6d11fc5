package reconcile

import (
	"reflect"
	"testing"
)

// trust is a cut-down relying-party shape exercising every field kind.
type trust struct {
	DisplayName    *string
	Enabled        *bool
	Port           *int64
	Identifiers    []string
	EncryptionCert *string
	Properties     map[string]string
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
func int64Ptr(i int64) *int64 { return &i }

func testDescriptor() *Descriptor[trust] {
	return &Descriptor[trust]{
		Kind: "trust",
		Fields: []Field[trust]{
			StringField("display_name", func(t trust) *string { return t.DisplayName }),
			BoolField("enabled", func(t trust) *bool { return t.Enabled }),
			Int64Field("port", func(t trust) *int64 { return t.Port }),
			SetField("identifiers", func(t trust) []string { return t.Identifiers }),
			OptionalRefField("encryption_certificate", func(t trust) *string { return t.EncryptionCert }),
			MapField("properties", func(t trust) map[string]string { return t.Properties }),
		},
	}
}

func TestDescriptorCompare(t *testing.T) {
	tests := []struct {
		name    string
		desired trust
		actual  trust
		want    []string
	}{
		{
			name:    "all unmanaged is compliant regardless of actual",
			desired: trust{},
			actual: trust{
				DisplayName: strPtr("anything"),
				Enabled:     boolPtr(true),
				Identifiers: []string{"urn:a"},
			},
			want: nil,
		},
		{
			name:    "scalar match",
			desired: trust{DisplayName: strPtr("App")},
			actual:  trust{DisplayName: strPtr("App")},
			want:    nil,
		},
		{
			name:    "scalar mismatch",
			desired: trust{DisplayName: strPtr("App")},
			actual:  trust{DisplayName: strPtr("Other")},
			want:    []string{"display_name"},
		},
		{
			name:    "scalar desired set but actual missing",
			desired: trust{Port: int64Ptr(443)},
			actual:  trust{},
			want:    []string{"port"},
		},
		{
			name:    "set compares unordered",
			desired: trust{Identifiers: []string{"urn:a", "urn:b"}},
			actual:  trust{Identifiers: []string{"urn:b", "urn:a"}},
			want:    nil,
		},
		{
			name:    "set subset is non-compliant",
			desired: trust{Identifiers: []string{"urn:a", "urn:b"}},
			actual:  trust{Identifiers: []string{"urn:a"}},
			want:    []string{"identifiers"},
		},
		{
			name:    "set superset is non-compliant",
			desired: trust{Identifiers: []string{"urn:a"}},
			actual:  trust{Identifiers: []string{"urn:a", "urn:b"}},
			want:    []string{"identifiers"},
		},
		{
			name:    "explicit empty set requires empty actual",
			desired: trust{Identifiers: []string{}},
			actual:  trust{Identifiers: []string{"urn:a"}},
			want:    []string{"identifiers"},
		},
		{
			name:    "optional ref no opinion ignores actual",
			desired: trust{},
			actual:  trust{EncryptionCert: strPtr("AABB")},
			want:    nil,
		},
		{
			name:    "optional ref explicitly cleared requires absent",
			desired: trust{EncryptionCert: strPtr("")},
			actual:  trust{EncryptionCert: strPtr("AABB")},
			want:    []string{"encryption_certificate"},
		},
		{
			name:    "optional ref explicitly cleared matches absent",
			desired: trust{EncryptionCert: strPtr("")},
			actual:  trust{},
			want:    nil,
		},
		{
			name:    "optional ref value must match",
			desired: trust{EncryptionCert: strPtr("AABB")},
			actual:  trust{EncryptionCert: strPtr("CCDD")},
			want:    []string{"encryption_certificate"},
		},
		{
			name:    "map entry mismatch",
			desired: trust{Properties: map[string]string{"a": "1"}},
			actual:  trust{Properties: map[string]string{"a": "2"}},
			want:    []string{"properties"},
		},
		{
			name:    "map extra actual entry",
			desired: trust{Properties: map[string]string{"a": "1"}},
			actual:  trust{Properties: map[string]string{"a": "1", "b": "2"}},
			want:    []string{"properties"},
		},
		{
			name: "multiple mismatches reported in declaration order",
			desired: trust{
				DisplayName: strPtr("App"),
				Enabled:     boolPtr(true),
				Identifiers: []string{"urn:a"},
			},
			actual: trust{
				DisplayName: strPtr("Other"),
				Enabled:     boolPtr(false),
				Identifiers: []string{"urn:a"},
			},
			want: []string{"display_name", "enabled"},
		},
	}

	d := testDescriptor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.Compare(tt.desired, tt.actual)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Compare() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSetsEqualDuplicates(t *testing.T) {
	if !setsEqual([]string{"a", "a", "b"}, []string{"b", "a"}) {
		t.Error("duplicate elements should not affect set equality")
	}
	if setsEqual([]string{"a"}, []string{"a", "b"}) {
		t.Error("expected sets of different membership to differ")
	}
}
