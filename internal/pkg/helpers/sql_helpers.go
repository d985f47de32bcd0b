package helpers

import "strings"

// NullableString maps a blank string to nil so it is stored as SQL NULL.
func NullableString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// StringValue returns the pointed-to string, or "" for nil.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
