package llm

import (
	"context"

	"talentmesh-onboarding/pkg/models"
)

// LLMProvider defines the interface for LLM providers
type LLMProvider interface {
	// ExtractResume processes raw resume text and extracts structured profile data
	ExtractResume(ctx context.Context, resumeText string) (*models.RawExtraction, error)

	// CleanResume removes personal identifying information from resume text,
	// replacing it with placeholders. The aggressive flag requests a stricter
	// follow-up pass for text that still carries identifiers.
	CleanResume(ctx context.Context, text string, aggressive bool) (string, error)

	// IsHealthy checks if the LLM provider is healthy and available
	IsHealthy(ctx context.Context) error

	// GetProviderName returns the name of the LLM provider
	GetProviderName() string
}
