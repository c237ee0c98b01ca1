package utils

import (
	"regexp"
	"strings"
)

var trailingDigits = regexp.MustCompile(`\s*\d+$`)

// CleanName trims captured counterparty names: collapses inner whitespace
// and drops trailing account/reference digits the provider glues on.
func CleanName(raw string) string {
	clean := strings.Join(strings.Fields(raw), " ")
	clean = trailingDigits.ReplaceAllString(clean, "")
	return strings.TrimSpace(clean)
}

// NormalizePhone strips a leading "+" and surrounding punctuation from a
// captured phone number. Masked digits ("250***888") are kept as-is since
// the provider redacts them on purpose.
func NormalizePhone(raw string) string {
	clean := strings.TrimSpace(raw)
	clean = strings.Trim(clean, "()")
	clean = strings.TrimPrefix(clean, "+")
	return clean
}

// Contains checks if text contains any of the given keywords
func Contains(text string, keywords ...string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
