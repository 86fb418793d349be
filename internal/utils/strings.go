package utils

import "strings"

// TrimOrEmpty normalizes user input without turning nil into "nil".
func TrimOrEmpty(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeSpace collapses repeated whitespace into a single space.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizePhone strips spaces/dashes and rewrites Kenyan local numbers
// (07xx/01xx) to +254 form. Anything already in +<digits> form passes
// through; other inputs are returned trimmed for the caller to validate.
func NormalizePhone(raw string) string {
	s := strings.TrimSpace(raw)
	replacer := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")
	s = replacer.Replace(s)
	if s == "" {
		return ""
	}
	if strings.HasPrefix(s, "+") {
		return s
	}
	if strings.HasPrefix(s, "0") && len(s) == 10 {
		return "+254" + s[1:]
	}
	if strings.HasPrefix(s, "254") {
		return "+" + s
	}
	return s
}

// ValidPhone reports whether s looks like an E.164 number.
func ValidPhone(s string) bool {
	if !strings.HasPrefix(s, "+") || len(s) < 10 || len(s) > 16 {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
