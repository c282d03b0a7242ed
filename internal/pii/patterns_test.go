package pii

import "testing"

func TestContainsPII(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"email", "contact me at jane.doe@example.com for details", true},
		{"phone dashed", "call 555-123-4567 anytime", true},
		{"phone dotted", "call 555.123.4567 anytime", true},
		{"phone bare", "call 5551234567 anytime", true},
		{"zip", "based in 10001 currently", true},
		{"zip plus four", "based in 10001-1234 currently", true},
		{"linkedin", "see https://www.linkedin.com/in/jane-doe", true},
		{"github", "code at https://github.com/janedoe", true},
		{"clean text", "Senior engineer with [EMAIL] and [PHONE] redacted", false},
		{"years not zip", "over 12 years of experience across 3 teams", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContainsPII(tt.text); got != tt.want {
				t.Errorf("ContainsPII(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
