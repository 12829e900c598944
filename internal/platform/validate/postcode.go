package validate

import (
	"regexp"
	"strings"
)

// Valid UK postcode shapes after spaces are stripped and the input is
// uppercased. The inward code is always digit-letter-letter.
var postcodePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[A-Z]{2}[0-9][A-Z][0-9][A-Z]{2}$`), // AA9A9AA
	regexp.MustCompile(`^[A-Z][0-9][A-Z][0-9][A-Z]{2}$`),    // A9A9AA
	regexp.MustCompile(`^[A-Z][0-9][0-9][A-Z]{2}$`),         // A99AA
	regexp.MustCompile(`^[A-Z][0-9]{2}[0-9][A-Z]{2}$`),      // A999AA
	regexp.MustCompile(`^[A-Z]{2}[0-9][0-9][A-Z]{2}$`),      // AA99AA
	regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[0-9][A-Z]{2}$`),   // AA999AA
}

// ValidUKPostcode reports whether raw matches one of the valid UK postcode
// shapes, ignoring spaces and case.
func ValidUKPostcode(raw string) bool {
	if raw == "" {
		return false
	}
	clean := strings.ToUpper(strings.ReplaceAll(raw, " ", ""))
	for _, p := range postcodePatterns {
		if p.MatchString(clean) {
			return true
		}
	}
	return false
}

// FormatUKPostcode normalizes raw to the canonical "OUTWARD INWARD" form:
// uppercase, with a single space before the final three characters. The
// second return value is false when the format is invalid.
func FormatUKPostcode(raw string) (string, bool) {
	if !ValidUKPostcode(raw) {
		return "", false
	}
	clean := strings.ToUpper(strings.ReplaceAll(raw, " ", ""))
	outward := clean[:len(clean)-3]
	inward := clean[len(clean)-3:]
	return outward + " " + inward, true
}
