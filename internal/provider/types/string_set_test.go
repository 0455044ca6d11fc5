package types

import (
	"testing"
)

func setValue(t *testing.T, elements []string) StringSetValue {
	t.Helper()

	v, diags := NewStringSetValue(t.Context(), elements)
	if diags.HasError() {
		t.Fatalf("building StringSetValue: %v", diags)
	}
	return v
}

func TestListSemanticEquals(t *testing.T) {
	tests := []struct {
		name string
		a    func(t *testing.T) StringSetValue
		b    func(t *testing.T) StringSetValue
		want bool
	}{
		{
			name: "identical order",
			a:    func(t *testing.T) StringSetValue { return setValue(t, []string{"a", "b", "c"}) },
			b:    func(t *testing.T) StringSetValue { return setValue(t, []string{"a", "b", "c"}) },
			want: true,
		},
		{
			name: "different order",
			a: func(t *testing.T) StringSetValue {
				return setValue(t, []string{"urn:app", "https://app.example.com/"})
			},
			b: func(t *testing.T) StringSetValue {
				return setValue(t, []string{"https://app.example.com/", "urn:app"})
			},
			want: true,
		},
		{
			name: "different members",
			a:    func(t *testing.T) StringSetValue { return setValue(t, []string{"a", "b"}) },
			b:    func(t *testing.T) StringSetValue { return setValue(t, []string{"a", "c"}) },
			want: false,
		},
		{
			name: "different lengths",
			a:    func(t *testing.T) StringSetValue { return setValue(t, []string{"a", "b"}) },
			b:    func(t *testing.T) StringSetValue { return setValue(t, []string{"a"}) },
			want: false,
		},
		{
			name: "both empty",
			a:    func(t *testing.T) StringSetValue { return setValue(t, []string{}) },
			b:    func(t *testing.T) StringSetValue { return setValue(t, []string{}) },
			want: true,
		},
		{
			name: "both null",
			a:    func(t *testing.T) StringSetValue { return NewStringSetNull() },
			b:    func(t *testing.T) StringSetValue { return NewStringSetNull() },
			want: true,
		},
		{
			name: "null vs empty",
			a:    func(t *testing.T) StringSetValue { return NewStringSetNull() },
			b:    func(t *testing.T) StringSetValue { return setValue(t, []string{}) },
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, diags := tt.a(t).ListSemanticEquals(t.Context(), tt.b(t))
			if diags.HasError() {
				t.Fatalf("unexpected diagnostics: %v", diags)
			}
			if got != tt.want {
				t.Errorf("ListSemanticEquals() = %v, want %v", got, tt.want)
			}
		})
	}
}
