package avatar

import (
	"fmt"
	"strings"
)

// PromptInput carries the profile attributes that shape the avatar prompt
type PromptInput struct {
	Alias             string
	Summary           string
	Skills            []string
	YearsOfExperience int
	HasClearance      bool
}

// maturityTier maps years of experience to the character's maturity in the
// generated image
func maturityTier(yearsOfExperience int) string {
	switch {
	case yearsOfExperience < 3:
		return "a baby"
	case yearsOfExperience < 6:
		return "a teenager"
	case yearsOfExperience < 8:
		return "a young adult"
	case yearsOfExperience < 11:
		return "an adult"
	case yearsOfExperience < 16:
		return "an older adult"
	default:
		return "an ancient wizard"
	}
}

// BuildPrompt composes the image generation prompt from profile attributes
func BuildPrompt(input PromptInput) string {
	summary := input.Summary
	if len(summary) > 200 {
		summary = summary[:200]
	}

	topSkills := input.Skills
	if len(topSkills) > 3 {
		topSkills = topSkills[:3]
	}

	prompt := fmt.Sprintf("Create a professional avatar for %s who is %s animated animal character. The avatar should reflect their professional background: %s... Their top skills include %s. The avatar should be friendly, professional, and suitable for a business profile. The image should be a close-up portrait with a simple, clean background. Make it an animated animal character with professional attire.",
		input.Alias,
		maturityTier(input.YearsOfExperience),
		summary,
		strings.Join(topSkills, ", "),
	)

	if input.HasClearance {
		prompt += " Add a subtle ID badge on a lanyard to suggest a security-cleared professional."
	}

	return prompt
}
