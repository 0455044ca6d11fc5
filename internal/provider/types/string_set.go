package types

import (
	"context"
	"fmt"
	"sort"

	"github.com/hashicorp/terraform-plugin-framework/attr"
	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/hashicorp/terraform-plugin-framework/types/basetypes"
	"github.com/hashicorp/terraform-plugin-go/tftypes"
)

// StringSetType is a custom list type for set-valued attributes (trust
// identifiers, signing certificate thumbprints, authentication providers)
// that implements semantic equality to ignore element ordering differences
// when comparing admin gateway responses.
type StringSetType struct {
	basetypes.ListType
}

// NewStringSetType returns a StringSetType over string elements.
func NewStringSetType() StringSetType {
	return StringSetType{
		ListType: basetypes.ListType{ElemType: basetypes.StringType{}},
	}
}

// Equal returns true if the given type is equal to this type.
func (t StringSetType) Equal(o attr.Type) bool {
	other, ok := o.(StringSetType)
	if !ok {
		return false
	}
	return t.ListType.Equal(other.ListType)
}

// String returns a human-readable string representation of the type.
func (t StringSetType) String() string {
	return "StringSetType"
}

// ValueFromList converts a basetypes.ListValue to a StringSetValue.
func (t StringSetType) ValueFromList(ctx context.Context, in basetypes.ListValue) (basetypes.ListValuable, diag.Diagnostics) {
	value := StringSetValue{
		ListValue: in,
	}

	return value, nil
}

// ValueFromTerraform converts a tftypes.Value to a StringSetValue.
func (t StringSetType) ValueFromTerraform(ctx context.Context, in tftypes.Value) (attr.Value, error) {
	attrValue, err := t.ListType.ValueFromTerraform(ctx, in)
	if err != nil {
		return nil, err
	}

	listValue, ok := attrValue.(basetypes.ListValue)
	if !ok {
		return nil, fmt.Errorf("unexpected value type: expected basetypes.ListValue, got %T", attrValue)
	}

	listValuable, diags := t.ValueFromList(ctx, listValue)
	if diags.HasError() {
		return nil, fmt.Errorf("error converting to StringSetValue: %v", diags)
	}

	return listValuable, nil
}

// ValueType returns the value type for this custom type.
func (t StringSetType) ValueType(ctx context.Context) attr.Value {
	return StringSetValue{}
}

// TerraformType returns the tftypes.Type that represents this type.
func (t StringSetType) TerraformType(ctx context.Context) tftypes.Type {
	return t.ListType.TerraformType(ctx)
}

// ApplyTerraform5AttributePathStep applies the given AttributePathStep to the type.
func (t StringSetType) ApplyTerraform5AttributePathStep(step tftypes.AttributePathStep) (interface{}, error) {
	return t.ListType.ApplyTerraform5AttributePathStep(step)
}

// StringSetValue is a custom value type with set semantics. It compares
// lists as unordered sets to prevent false drift detection when the admin
// gateway returns members in a different order than configured.
type StringSetValue struct {
	basetypes.ListValue
}

// NewStringSetValue builds a StringSetValue from string elements.
func NewStringSetValue(ctx context.Context, elements []string) (StringSetValue, diag.Diagnostics) {
	listValue, diags := basetypes.NewListValueFrom(ctx, basetypes.StringType{}, elements)
	return StringSetValue{ListValue: listValue}, diags
}

// NewStringSetNull returns a null StringSetValue.
func NewStringSetNull() StringSetValue {
	return StringSetValue{ListValue: basetypes.NewListNull(basetypes.StringType{})}
}

// Type returns the type of this value.
func (v StringSetValue) Type(ctx context.Context) attr.Type {
	return StringSetType{
		ListType: basetypes.ListType{ElemType: v.ListValue.ElementType(ctx)},
	}
}

// Equal returns true if the given value is equal to this value.
// This performs strict equality checking (type and value must match exactly).
func (v StringSetValue) Equal(o attr.Value) bool {
	other, ok := o.(StringSetValue)
	if !ok {
		return false
	}
	return v.ListValue.Equal(other.ListValue)
}

// ListSemanticEquals implements set equality for string lists.
// Returns true if both lists contain the same members, regardless of order.
// This prevents false drift detection when the admin gateway returns
// members in a different order.
func (v StringSetValue) ListSemanticEquals(ctx context.Context, other basetypes.ListValuable) (bool, diag.Diagnostics) {
	var diags diag.Diagnostics

	otherValue, ok := other.(StringSetValue)
	if !ok {
		return false, diags
	}

	// If both are null, they're equal
	if v.IsNull() && otherValue.IsNull() {
		return true, diags
	}

	// If one is null and the other isn't, they're not equal
	if v.IsNull() != otherValue.IsNull() {
		return false, diags
	}

	// If both are unknown, they're equal
	if v.IsUnknown() && otherValue.IsUnknown() {
		return true, diags
	}

	// If one is unknown and the other isn't, they're not equal
	if v.IsUnknown() != otherValue.IsUnknown() {
		return false, diags
	}

	var thisElements, otherElements []string
	diags.Append(v.ElementsAs(ctx, &thisElements, false)...)
	if diags.HasError() {
		return false, diags
	}

	diags.Append(otherValue.ElementsAs(ctx, &otherElements, false)...)
	if diags.HasError() {
		return false, diags
	}

	if len(thisElements) != len(otherElements) {
		return false, diags
	}

	// Sort copies and compare member-wise
	thisSorted := make([]string, len(thisElements))
	copy(thisSorted, thisElements)
	otherSorted := make([]string, len(otherElements))
	copy(otherSorted, otherElements)
	sort.Strings(thisSorted)
	sort.Strings(otherSorted)

	for i := range thisSorted {
		if thisSorted[i] != otherSorted[i] {
			return false, diags
		}
	}

	return true, diags
}
