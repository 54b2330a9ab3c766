package core

import (
	"strings"
	"time"
)

var NowFunc = time.Now // mockable

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// CleanStringPtr cleans the string `s` points to, if any.
func CleanStringPtr(s *string, lower ...bool) {
	if s != nil {
		*s = CleanString(*s, lower...)
	}
}

// Now returns the current UTC time at the precision every supported engine keeps.
func Now() time.Time {
	return NowFunc().UTC().Truncate(time.Microsecond)
}
