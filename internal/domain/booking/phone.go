package booking

import "strings"

// NormalizePhone strips everything except digits. Stored phone numbers are
// always the bare 11-digit form.
func NormalizePhone(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValidPhone reports whether the normalized form has exactly 11 digits
func IsValidPhone(raw string) bool {
	return len(NormalizePhone(raw)) == 11
}
