// Package ptr includes functions for creating and reading optional values.
package ptr

func String(x string) *string {
	return &x
}

// CloneString returns a pointer to a copy of the string x points to, or nil
// if x is nil.
func CloneString(x *string) *string {
	if x == nil {
		return nil
	}
	return String(*x)
}

// StringValueOrZero returns the string x points to, or the empty string if x
// is nil.
func StringValueOrZero(x *string) string {
	if x == nil {
		return ""
	}
	return *x
}
