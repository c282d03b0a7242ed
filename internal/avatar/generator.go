package avatar

import (
	"context"
	"fmt"
	"time"

	"talentmesh-onboarding/internal/logging"
	"talentmesh-onboarding/pkg/models"
)

// ImageGenerator produces raw image bytes for a prompt
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string) ([]byte, error)
}

// Uploader stores a generated avatar and returns its public URL
type Uploader interface {
	UploadAvatar(identity string, imageData []byte) (string, error)
}

// Generator turns profile attributes into a stored avatar asset
type Generator struct {
	images   ImageGenerator
	uploader Uploader
	logger   logging.Logger
}

// NewGenerator creates a new avatar generator
func NewGenerator(images ImageGenerator, uploader Uploader) *Generator {
	return &Generator{
		images:   images,
		uploader: uploader,
		logger:   logging.GetGlobalLogger(),
	}
}

// Generate builds the prompt, renders the image and uploads it, replacing
// any previous avatar for the identity
func (g *Generator) Generate(ctx context.Context, identity string, input PromptInput) (*models.AvatarAsset, error) {
	prompt := BuildPrompt(input)

	g.logger.Info("Generating avatar", map[string]interface{}{
		"identity":            identity,
		"years_of_experience": input.YearsOfExperience,
	})

	imageData, err := g.images.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("avatar generation failed: %w", err)
	}

	imageURL, err := g.uploader.UploadAvatar(identity, imageData)
	if err != nil {
		return nil, fmt.Errorf("avatar upload failed: %w", err)
	}

	asset := &models.AvatarAsset{
		ImageURL:    imageURL,
		Prompt:      prompt,
		GeneratedAt: time.Now().UTC(),
	}

	g.logger.Info("Avatar generated successfully", map[string]interface{}{
		"identity":  identity,
		"image_url": imageURL,
	})

	return asset, nil
}
