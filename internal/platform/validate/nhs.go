// Package validate holds the pure input validators shared by the patient and
// appointment domains: NHS number checksum validation and UK postcode
// normalization.
package validate

// stripNonDigits returns s with every non-digit character removed.
func stripNonDigits(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			out = append(out, s[i])
		}
	}
	return string(out)
}

// ValidNHSNumber reports whether raw contains a valid 10-digit NHS number.
// Separators are stripped before checking. The check digit follows the NHS
// Data Dictionary Mod 11 algorithm: the first nine digits are weighted by
// (10 - position), and check = (11 - sum mod 11) mod 11. A computed check of
// 10 is never valid.
func ValidNHSNumber(raw string) bool {
	digits := stripNonDigits(raw)
	if len(digits) != 10 {
		return false
	}

	sum := 0
	for i := 0; i < 9; i++ {
		sum += int(digits[i]-'0') * (10 - i)
	}
	check := (11 - sum%11) % 11 // maps 11 to 0

	return check != 10 && check == int(digits[9]-'0')
}

// FormatNHSNumber strips separators from raw and returns the bare 10-digit
// form. The second return value is false when the number fails the checksum.
func FormatNHSNumber(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	if !ValidNHSNumber(raw) {
		return "", false
	}
	return stripNonDigits(raw), true
}
