package models

import "strings"

// NotSpecified is the sentinel for secondary fields the user or provider
// left blank. Indexed records missing their primary field are dropped
// instead.
const NotSpecified = "Not specified"

// Caps on the extraction lists. The provider is instructed to pad short
// lists with explicit nulls so slot positions keep their meaning.
const (
	MaxSkills    = 10
	MaxCompanies = 3
	MaxEducation = 4
)

// RawEducation is one education slot exactly as the provider returns it
type RawEducation struct {
	DegreeType *string `json:"degree_type"` // Undergraduate, Masters, PhD or null
	Major      *string `json:"major"`
	School     *string `json:"school"`
}

// RawExtraction is the strict JSON shape requested from the
// text-generation provider. Every field the provider cannot determine
// arrives as an explicit null, never an omitted key.
type RawExtraction struct {
	Summary                  *string         `json:"summary"`
	CleanedResume            *string         `json:"cleaned_resume"`
	TopSkills                []*string       `json:"top_skills"`
	LastCompanies            []*string       `json:"last_companies"`
	LastEmploymentDate       *EmploymentDate `json:"last_employment_date"`
	Education                []*RawEducation `json:"education"`
	EstimatedYearsExperience *int            `json:"estimated_years_experience"`
}

// ToResumeExtract transforms the provider reply into the step payload:
// null list slots are dropped, caps enforced, and secondary fields filled
// with the NotSpecified sentinel.
func (r *RawExtraction) ToResumeExtract(resumeURL string) *ResumeExtract {
	extract := &ResumeExtract{
		ResumeURL: resumeURL,
		Skills:    []string{},
		Companies: []Company{},
		Education: []Education{},
	}

	if r.Summary != nil {
		extract.Summary = strings.TrimSpace(*r.Summary)
	}
	if r.CleanedResume != nil {
		extract.CleanedResume = *r.CleanedResume
	}
	if r.EstimatedYearsExperience != nil {
		extract.YearsOfExperience = *r.EstimatedYearsExperience
	}
	if r.LastEmploymentDate != nil {
		extract.LastEmployment = *r.LastEmploymentDate
	}

	for i, skill := range r.TopSkills {
		if i >= MaxSkills {
			break
		}
		if skill == nil || strings.TrimSpace(*skill) == "" {
			continue
		}
		extract.Skills = append(extract.Skills, strings.TrimSpace(*skill))
	}

	for i, company := range r.LastCompanies {
		if i >= MaxCompanies {
			break
		}
		if company == nil || strings.TrimSpace(*company) == "" {
			continue
		}
		extract.Companies = append(extract.Companies, Company{
			Name:     strings.TrimSpace(*company),
			Position: NotSpecified,
		})
	}

	graduationYear := NotSpecified
	if r.LastEmploymentDate != nil && r.LastEmploymentDate.Year != nil {
		graduationYear = *r.LastEmploymentDate.Year
	}
	for i, edu := range r.Education {
		if i >= MaxEducation {
			break
		}
		if edu == nil || edu.School == nil || strings.TrimSpace(*edu.School) == "" {
			continue
		}
		degree := strings.TrimSpace(strings.TrimSpace(stringOrEmpty(edu.DegreeType)) + " " + strings.TrimSpace(stringOrEmpty(edu.Major)))
		if degree == "" {
			degree = NotSpecified
		}
		extract.Education = append(extract.Education, Education{
			Institution: strings.TrimSpace(*edu.School),
			Degree:      degree,
			Year:        graduationYear,
		})
	}

	return extract
}

// PlaceholderResumeExtract is the visibly-labeled fallback payload used
// when the extraction provider fails, so the wizard can still advance.
func PlaceholderResumeExtract(resumeURL string) *ResumeExtract {
	return &ResumeExtract{
		ResumeURL:         resumeURL,
		Summary:           "Resume processing failed. Placeholder data shown - please edit or re-upload.",
		CleanedResume:     "Resume processing failed. Placeholder data shown - please edit or re-upload.",
		Skills:            []string{"JavaScript", "React", "Node.js", "TypeScript", "UI/UX Design"},
		Companies:         []Company{{Name: "Example Corp", Position: "Senior Developer"}, {Name: "Tech Solutions", Position: "Frontend Engineer"}},
		Education:         []Education{{Institution: "University of Technology", Degree: "BS Computer Science", Year: "2018"}},
		YearsOfExperience: 3,
		Placeholder:       true,
	}
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
