// Package ptrx has helpers for the optional (pointer) fields used throughout message types.
package ptrx

// Bool returns a pointer value for the bool value passed in.
func Bool(v bool) *bool {
	return &v
}

// String returns a pointer value for the string value passed in.
func String(v string) *string {
	return &v
}

// NonEmpty returns a pointer to v, or nil when v is the empty string.
func NonEmpty(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

// BoolValue returns the value of the bool pointer passed in or false if the pointer is nil.
func BoolValue(v *bool) bool {
	if v != nil {
		return *v
	}
	return false
}

// StringValue returns the value of the string pointer passed in or empty string if the pointer is nil.
func StringValue(v *string) string {
	if v != nil {
		return *v
	}
	return ""
}

// StringValueOr returns the value of the string pointer passed in or the default value if the pointer is nil.
func StringValueOr(v *string, def string) string {
	if v != nil {
		return *v
	}
	return def
}

// Clone returns a pointer to a copy of *v, or nil if v is nil.
func Clone[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
