package widget

import "testing"

func TestClaimsFocus(t *testing.T) {
	cases := []struct {
		name    string
		fieldID string
		wanted  string
		claim   bool
	}{
		{"exact match", "LongName", "LongName", true},
		{"exact indexed match", "instrument_2", "instrument_2", true},
		{"extends past digit boundary", "instrument_2_name", "instrument_2", true},
		{"digit continuation is a different index", "instrument_20", "instrument_2", false},
		{"unrelated field", "platform_2", "instrument_2", false},
		{"plain wanted never prefix-claims", "LongNameSuffix", "LongName", false},
		{"empty wanted", "LongName", "", false},
		{"empty field id", "", "instrument_2", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClaimsFocus(tc.fieldID, tc.wanted); got != tc.claim {
				t.Fatalf("ClaimsFocus(%q, %q) = %v, want %v", tc.fieldID, tc.wanted, got, tc.claim)
			}
		})
	}
}
