package validate

import "testing"

func TestValidNHSNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"valid number", "9434765919", true},
		{"valid all zeros", "0000000000", true},
		{"checksum mismatch", "9434765918", false},
		{"check digit would be 10", "1234567890", false},
		{"too short", "943476591", false},
		{"too long", "94347659191", false},
		{"empty", "", false},
		{"letters only", "abcdefghij", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidNHSNumber(tt.input); got != tt.want {
				t.Errorf("ValidNHSNumber(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidNHSNumber_IgnoresSeparators(t *testing.T) {
	for _, input := range []string{"943 476 5919", "943-476-5919", " 9434765919 "} {
		if !ValidNHSNumber(input) {
			t.Errorf("ValidNHSNumber(%q) = false, want true", input)
		}
	}
}

func TestFormatNHSNumber(t *testing.T) {
	got, ok := FormatNHSNumber("943 476 5919")
	if !ok {
		t.Fatal("expected valid NHS number")
	}
	if got != "9434765919" {
		t.Errorf("expected canonical form 9434765919, got %q", got)
	}
}

func TestFormatNHSNumber_Invalid(t *testing.T) {
	if _, ok := FormatNHSNumber("9434765918"); ok {
		t.Error("expected invalid checksum to be rejected")
	}
	if _, ok := FormatNHSNumber(""); ok {
		t.Error("expected empty input to be rejected")
	}
}
