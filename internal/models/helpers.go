package models

// StringPtr returns a pointer to the string value passed in
func StringPtr(s string) *string {
	return &s
}

// Int64Ptr returns a pointer to the int64 value passed in
func Int64Ptr(i int64) *int64 {
	return &i
}

// BoolPtr returns a pointer to the bool value passed in
func BoolPtr(b bool) *bool {
	return &b
}
