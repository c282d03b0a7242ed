package avatar

import (
	"strings"
	"testing"
)

func TestMaturityTier(t *testing.T) {
	tests := []struct {
		years int
		want  string
	}{
		{0, "a baby"},
		{2, "a baby"},
		{3, "a teenager"},
		{5, "a teenager"},
		{6, "a young adult"},
		{7, "a young adult"},
		{8, "an adult"},
		{10, "an adult"},
		{11, "an older adult"},
		{15, "an older adult"},
		{16, "an ancient wizard"},
		{30, "an ancient wizard"},
	}

	for _, tt := range tests {
		if got := maturityTier(tt.years); got != tt.want {
			t.Errorf("maturityTier(%d) = %q, want %q", tt.years, got, tt.want)
		}
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(PromptInput{
		Alias:             "JD",
		Summary:           "Backend engineer with a decade of distributed systems work.",
		Skills:            []string{"Go", "Postgres", "Kubernetes", "Redis"},
		YearsOfExperience: 12,
	})

	if !strings.Contains(prompt, "JD") {
		t.Error("prompt should contain the alias")
	}
	if !strings.Contains(prompt, "an older adult") {
		t.Error("prompt should contain the maturity tier")
	}
	if !strings.Contains(prompt, "Go, Postgres, Kubernetes") {
		t.Error("prompt should contain the top three skills")
	}
	if strings.Contains(prompt, "Redis") {
		t.Error("prompt should not contain skills beyond the top three")
	}
	if strings.Contains(prompt, "ID badge") {
		t.Error("prompt should not mention a badge without clearance")
	}
}

func TestBuildPromptTruncatesSummary(t *testing.T) {
	longSummary := strings.Repeat("x", 500)
	prompt := BuildPrompt(PromptInput{
		Alias:   "JD",
		Summary: longSummary,
		Skills:  []string{"Go"},
	})

	if strings.Contains(prompt, strings.Repeat("x", 201)) {
		t.Error("summary should be truncated to 200 characters")
	}
}

func TestBuildPromptClearanceMotif(t *testing.T) {
	prompt := BuildPrompt(PromptInput{
		Alias:        "JD",
		Summary:      "Cleared systems engineer.",
		Skills:       []string{"Go"},
		HasClearance: true,
	})

	if !strings.Contains(prompt, "ID badge") {
		t.Error("prompt should mention the badge motif for cleared profiles")
	}
}
