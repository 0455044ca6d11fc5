package provider

import (
	"context"

	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/hashicorp/terraform-plugin-framework/types"

	adfstypes "github.com/secinfra/terraform-provider-adfs/internal/provider/types"
)

// Conversions between Terraform plan values and admin gateway API models.
// Null and unknown plan values become nil, which the reconciliation
// descriptors treat as "unmanaged, excluded from comparison".

func stringOrNil(v types.String) *string {
	if v.IsNull() || v.IsUnknown() {
		return nil
	}
	s := v.ValueString()
	return &s
}

func boolOrNil(v types.Bool) *bool {
	if v.IsNull() || v.IsUnknown() {
		return nil
	}
	b := v.ValueBool()
	return &b
}

func int64OrNil(v types.Int64) *int64 {
	if v.IsNull() || v.IsUnknown() {
		return nil
	}
	i := v.ValueInt64()
	return &i
}

func stringSliceOrNil(ctx context.Context, v types.List) ([]string, diag.Diagnostics) {
	if v.IsNull() || v.IsUnknown() {
		return nil, nil
	}
	elements := []string{}
	diags := v.ElementsAs(ctx, &elements, false)
	return elements, diags
}

func stringMapOrNil(ctx context.Context, v types.Map) (map[string]string, diag.Diagnostics) {
	if v.IsNull() || v.IsUnknown() {
		return nil, nil
	}
	elements := map[string]string{}
	diags := v.ElementsAs(ctx, &elements, false)
	return elements, diags
}

func stringSetOrNil(ctx context.Context, v adfstypes.StringSetValue) ([]string, diag.Diagnostics) {
	if v.IsNull() || v.IsUnknown() {
		return nil, nil
	}
	elements := []string{}
	diags := v.ElementsAs(ctx, &elements, false)
	return elements, diags
}

func stringSetFromSlice(ctx context.Context, elements []string) (adfstypes.StringSetValue, diag.Diagnostics) {
	if elements == nil {
		return adfstypes.NewStringSetNull(), nil
	}
	return adfstypes.NewStringSetValue(ctx, elements)
}

func stringFromPtr(p *string) types.String {
	if p == nil {
		return types.StringNull()
	}
	return types.StringValue(*p)
}

func boolFromPtr(p *bool) types.Bool {
	if p == nil {
		return types.BoolNull()
	}
	return types.BoolValue(*p)
}

func int64FromPtr(p *int64) types.Int64 {
	if p == nil {
		return types.Int64Null()
	}
	return types.Int64Value(*p)
}
