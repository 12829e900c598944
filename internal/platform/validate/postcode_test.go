package validate

import "testing"

func TestValidUKPostcode(t *testing.T) {
	valid := []string{
		"EC1A 1BB", // AA9A 9AA
		"W1A 0AX",  // A9A 9AA
		"M1 1AE",   // A9 9AA
		"B33 8TH",  // A99 9AA
		"CR2 6XH",  // AA9 9AA
		"DN55 1PT", // AA99 9AA
	}
	for _, pc := range valid {
		if !ValidUKPostcode(pc) {
			t.Errorf("ValidUKPostcode(%q) = false, want true", pc)
		}
	}

	invalid := []string{
		"",
		"12345",
		"EC1A1BB1",
		"A 1AE",
		"M1 1A",
		"HELLO",
	}
	for _, pc := range invalid {
		if ValidUKPostcode(pc) {
			t.Errorf("ValidUKPostcode(%q) = true, want false", pc)
		}
	}
}

func TestValidUKPostcode_CaseAndSpacing(t *testing.T) {
	for _, pc := range []string{"ec1a 1bb", "EC1A1BB", "ec1a1bb", " EC1A 1BB "} {
		if !ValidUKPostcode(pc) {
			t.Errorf("ValidUKPostcode(%q) = false, want true", pc)
		}
	}
}

func TestFormatUKPostcode(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"ec1a1bb", "EC1A 1BB"},
		{"EC1A 1BB", "EC1A 1BB"},
		{"m11ae", "M1 1AE"},
		{"dn551pt", "DN55 1PT"},
	}
	for _, tt := range tests {
		got, ok := FormatUKPostcode(tt.input)
		if !ok {
			t.Errorf("FormatUKPostcode(%q) unexpectedly invalid", tt.input)
			continue
		}
		if got != tt.want {
			t.Errorf("FormatUKPostcode(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFormatUKPostcode_Idempotent(t *testing.T) {
	first, ok := FormatUKPostcode("cr26xh")
	if !ok {
		t.Fatal("expected valid postcode")
	}
	second, ok := FormatUKPostcode(first)
	if !ok {
		t.Fatal("expected formatted postcode to remain valid")
	}
	if first != second {
		t.Errorf("formatting is not idempotent: %q vs %q", first, second)
	}
}

func TestFormatUKPostcode_Invalid(t *testing.T) {
	if _, ok := FormatUKPostcode("not a postcode"); ok {
		t.Error("expected invalid postcode to be rejected")
	}
}
