package providers

import (
	"errors"
	"testing"

	"talentmesh-onboarding/pkg/models"
)

const sampleReply = `{
  "summary": "Experienced backend engineer.",
  "cleaned_resume": "[NAME] is a backend engineer reachable at [EMAIL].",
  "top_skills": ["Go", "Postgres", null, null, null, null, null, null, null, null],
  "last_companies": ["Acme Corp", null, null],
  "last_employment_date": {"month": "06", "year": "2024"},
  "education": [
    {"degree_type": "Undergraduate", "major": "Computer Science", "school": "State University"},
    {"degree_type": null, "major": null, "school": null},
    {"degree_type": null, "major": null, "school": null},
    {"degree_type": null, "major": null, "school": null}
  ],
  "estimated_years_experience": 7
}`

func TestParseExtractionReply(t *testing.T) {
	extraction, err := ParseExtractionReply(sampleReply)
	if err != nil {
		t.Fatalf("ParseExtractionReply failed: %v", err)
	}

	if extraction.Summary == nil || *extraction.Summary != "Experienced backend engineer." {
		t.Errorf("unexpected summary: %v", extraction.Summary)
	}
	if len(extraction.TopSkills) != 10 {
		t.Errorf("got %d skill slots, want 10", len(extraction.TopSkills))
	}
	if extraction.TopSkills[2] != nil {
		t.Errorf("expected null skill slot at index 2")
	}
	if extraction.EstimatedYearsExperience == nil || *extraction.EstimatedYearsExperience != 7 {
		t.Errorf("unexpected years of experience: %v", extraction.EstimatedYearsExperience)
	}
}

func TestParseExtractionReplyWithMarkdownFences(t *testing.T) {
	fenced := "```json\n" + sampleReply + "\n```"

	extraction, err := ParseExtractionReply(fenced)
	if err != nil {
		t.Fatalf("ParseExtractionReply failed on fenced reply: %v", err)
	}
	if extraction.LastCompanies[0] == nil || *extraction.LastCompanies[0] != "Acme Corp" {
		t.Errorf("unexpected first company: %v", extraction.LastCompanies[0])
	}
}

func TestParseExtractionReplyMalformed(t *testing.T) {
	for _, reply := range []string{"", "not json at all", "```\n```"} {
		_, err := ParseExtractionReply(reply)
		if !errors.Is(err, ErrMalformedReply) {
			t.Errorf("ParseExtractionReply(%q) error = %v, want ErrMalformedReply", reply, err)
		}
	}
}

func TestStripMarkdownFences(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\nplain\n```", "plain"},
		{"  {\"a\":1}  ", `{"a":1}`},
	}

	for _, tt := range tests {
		if got := StripMarkdownFences(tt.in); got != tt.want {
			t.Errorf("StripMarkdownFences(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExtractionToResumeExtract(t *testing.T) {
	extraction, err := ParseExtractionReply(sampleReply)
	if err != nil {
		t.Fatalf("ParseExtractionReply failed: %v", err)
	}

	extract := extraction.ToResumeExtract("https://cdn.example.com/resumes/r1.pdf")

	if len(extract.Skills) != 2 {
		t.Errorf("got %d skills, want 2 after dropping nulls", len(extract.Skills))
	}
	if len(extract.Companies) != 1 {
		t.Fatalf("got %d companies, want 1", len(extract.Companies))
	}
	if extract.Companies[0].Position != models.NotSpecified {
		t.Errorf("company position = %q, want sentinel", extract.Companies[0].Position)
	}
	if len(extract.Education) != 1 {
		t.Fatalf("got %d education entries, want 1", len(extract.Education))
	}
	if extract.Education[0].Degree != "Undergraduate Computer Science" {
		t.Errorf("unexpected degree: %q", extract.Education[0].Degree)
	}
	if extract.Education[0].Year != "2024" {
		t.Errorf("education year = %q, want year from last employment", extract.Education[0].Year)
	}
	if extract.Placeholder {
		t.Error("extract should not be flagged as placeholder")
	}
}
