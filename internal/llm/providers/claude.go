package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"talentmesh-onboarding/internal/config"
	"talentmesh-onboarding/internal/logging"
	"talentmesh-onboarding/pkg/models"
)

// ErrMalformedReply is returned when the provider reply cannot be parsed
// as the requested JSON structure
var ErrMalformedReply = errors.New("malformed provider reply")

// ClaudeProvider implements the LLM provider interface using Anthropic's Claude
type ClaudeProvider struct {
	client anthropic.Client
	config *config.Config
	logger logging.Logger
}

// NewClaudeProvider creates a new Claude provider instance
func NewClaudeProvider(cfg *config.Config) *ClaudeProvider {
	client := anthropic.NewClient(
		option.WithAPIKey(cfg.LLM.APIKey),
	)

	return &ClaudeProvider{
		client: client,
		config: cfg,
		logger: logging.GetGlobalLogger(),
	}
}

// ExtractResume processes resume text and extracts structured profile data using Claude
func (cp *ClaudeProvider) ExtractResume(ctx context.Context, resumeText string) (*models.RawExtraction, error) {
	startTime := time.Now()

	cp.logger.Info("Starting resume extraction with Claude", map[string]interface{}{
		"text_length": len(resumeText),
		"provider":    "claude",
	})

	// Truncate if necessary to fit token limits
	maxContentLength := cp.config.LLM.MaxTokens * 3 // Rough estimation: 3 chars per token
	if len(resumeText) > maxContentLength {
		resumeText = resumeText[:maxContentLength] + "..."
		cp.logger.Debug("Resume text truncated to fit token limits")
	}

	prompt := cp.buildExtractionPrompt(resumeText)

	response, err := cp.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(cp.config.LLM.Model),
		MaxTokens:   int64(cp.config.LLM.MaxTokens),
		Temperature: anthropic.Float(float64(cp.config.LLM.Temperature)),
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: prompt},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	})

	if err != nil {
		return nil, fmt.Errorf("failed to call Claude API: %w", err)
	}

	extraction, err := ParseExtractionReply(responseText(response))
	if err != nil {
		return nil, fmt.Errorf("failed to parse Claude response: %w", err)
	}

	cp.logger.Info("Resume extraction completed successfully", map[string]interface{}{
		"processing_time": time.Since(startTime).String(),
		"provider":        "claude",
	})

	return extraction, nil
}

// CleanResume removes personal identifying information from resume text
func (cp *ClaudeProvider) CleanResume(ctx context.Context, text string, aggressive bool) (string, error) {
	prompt := cp.buildCleaningPrompt(text)
	if aggressive {
		prompt = cp.buildAggressiveCleaningPrompt(text)
	}

	response, err := cp.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(cp.config.LLM.Model),
		MaxTokens:   int64(cp.config.LLM.MaxTokens),
		Temperature: anthropic.Float(float64(cp.config.LLM.Temperature)),
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: prompt},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	})

	if err != nil {
		return "", fmt.Errorf("failed to call Claude API: %w", err)
	}

	cleaned := strings.TrimSpace(StripMarkdownFences(responseText(response)))
	if cleaned == "" {
		return "", fmt.Errorf("%w: empty cleaning reply", ErrMalformedReply)
	}

	return cleaned, nil
}

// buildExtractionPrompt creates the prompt for Claude to extract profile data
func (cp *ClaudeProvider) buildExtractionPrompt(resumeText string) string {
	return fmt.Sprintf(`You are an AI assistant that processes resumes. You will be given a resume in plain text format. Your task is to extract and return the following information in the exact JSON format below. Be consistent and never include any contact information such as phone numbers, email addresses, or home addresses.

Always return exactly the number of items requested. If any value is missing or unknown, return null in its place to maintain structure.

Return the result in the following JSON format:
{
  "summary": "[A professional summary of the resume in under 1000 words, including degrees, employment history, all technologies, all skills, and all certifications, with all contact information and references to their name removed]",
  "cleaned_resume": "[The full resume text with all names, emails, phone numbers, addresses and personal URLs replaced by placeholders such as [NAME], [EMAIL], [PHONE]]",
  "top_skills": ["Skill1", "Skill2", ..., "Skill10"], // Fill with nulls if less than 10
  "last_companies": ["Company1", "Company2", "Company3"], // Most recent first, use null for any missing company
  "last_employment_date": {
    "month": "MM", // Use 2-digit month if known, else null
    "year": "YYYY" // Use 4-digit year if known, else null
  },
  "education": [
    {
      "degree_type": "Undergraduate" | "Masters" | "PhD" | null,
      "major": "Major or Field of Study" | null,
      "school": "University or College Name" | null
    },
    ...
  ], // List up to 4 entries, only for Undergraduate, Masters, or PhD. Fill with nulls if fewer than 4.
  "estimated_years_experience": 5 // Estimate the total years of professional experience based on the resume
}

IMPORTANT: Return ONLY valid JSON, no additional text or explanation.

Now, here is the resume:
%s`, resumeText)
}

// buildCleaningPrompt creates the prompt for removing personal information
func (cp *ClaudeProvider) buildCleaningPrompt(text string) string {
	return fmt.Sprintf(`You are a resume cleaning AI. Your task is to remove ALL personal identifying information from the resume text below.

CRITICAL REQUIREMENTS:
- Remove ALL names (first, middle, last) - even if they appear in job titles like "John's Restaurant"
- Remove ALL email addresses
- Remove ALL phone numbers (including any format variations)
- Remove ALL physical addresses (street, city, state, zip)
- Remove ALL LinkedIn profiles, personal websites, GitHub profiles, or any other personal URLs
- Remove any social media handles or usernames
- Remove any ID numbers, license numbers, or personal identifiers
- Replace removed information with appropriate placeholders: [NAME], [EMAIL], [PHONE], [ADDRESS], [LINKEDIN], [WEBSITE], etc.
- If you see placeholders already, ensure they are consistent and no personal info was missed
- Preserve all other content including work experience, education, skills, and achievements
- Maintain the original formatting and structure as much as possible

AGGRESSIVE CLEANING:
- Any email that could identify someone should be replaced with [EMAIL]
- Any website that includes a personal name should be replaced with [PERSONAL WEBSITE]
- References to personal projects with identifying names should be genericized
- Even indirect references that could identify someone should be removed

Here is the resume to clean:

%s

Return ONLY the cleaned resume text with placeholders. Do not include any additional commentary, markdown formatting, or explanation.`, text)
}

// buildAggressiveCleaningPrompt creates the follow-up prompt for text that
// still carries identifiers after a first pass
func (cp *ClaudeProvider) buildAggressiveCleaningPrompt(text string) string {
	return fmt.Sprintf(`The following text still contains personal information. Please remove ALL emails, phone numbers, addresses, and personal URLs, replacing them with placeholders like [EMAIL], [PHONE], etc.:

%s

Return ONLY the cleaned text.`, text)
}

// ParseExtractionReply parses a provider reply into the extraction structure,
// tolerating markdown code fences around the JSON body
func ParseExtractionReply(reply string) (*models.RawExtraction, error) {
	reply = strings.TrimSpace(StripMarkdownFences(reply))
	if reply == "" {
		return nil, fmt.Errorf("%w: empty reply", ErrMalformedReply)
	}

	var extraction models.RawExtraction
	if err := json.Unmarshal([]byte(reply), &extraction); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}

	return &extraction, nil
}

// StripMarkdownFences removes a surrounding markdown code block if present
func StripMarkdownFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
		return strings.TrimSpace(text)
	}
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
		return strings.TrimSpace(text)
	}
	return text
}

// responseText returns the first text block of a Claude message
func responseText(response *anthropic.Message) string {
	if response == nil || len(response.Content) == 0 {
		return ""
	}
	for _, content := range response.Content {
		textContent := content.AsText()
		return textContent.Text
	}
	return ""
}

// IsHealthy checks if the Claude provider is healthy and available
func (cp *ClaudeProvider) IsHealthy(ctx context.Context) error {
	// Check if API key is configured
	if cp.config.LLM.APIKey == "" {
		return fmt.Errorf("Claude API key not configured - set LLM_API_KEY environment variable")
	}

	// Create a simple test request to check if the API is accessible
	_, err := cp.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(cp.config.LLM.Model),
		MaxTokens: 500,
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: "Hello"},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	})

	if err != nil {
		return fmt.Errorf("Claude API health check failed: %w", err)
	}

	return nil
}

// GetProviderName returns the name of the LLM provider
func (cp *ClaudeProvider) GetProviderName() string {
	return "claude"
}
