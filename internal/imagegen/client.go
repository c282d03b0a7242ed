package imagegen

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"talentmesh-onboarding/internal/config"
	"talentmesh-onboarding/internal/logging"
)

// ErrEmptyImage is returned when the provider reply carries no image data
var ErrEmptyImage = errors.New("image provider returned no image")

// Client calls an OpenAI-compatible image generation endpoint
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	size       string
	quality    string
	httpClient *http.Client
	logger     logging.Logger
}

type generationRequest struct {
	Model   string `json:"model"`
	Prompt  string `json:"prompt"`
	N       int    `json:"n"`
	Size    string `json:"size"`
	Quality string `json:"quality,omitempty"`
}

type generationResponse struct {
	Data []struct {
		URL     string `json:"url"`
		B64JSON string `json:"b64_json"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// NewClient creates a new image generation client
func NewClient(cfg *config.Config) *Client {
	return &Client{
		apiKey:  cfg.ImageGen.APIKey,
		baseURL: strings.TrimRight(cfg.ImageGen.BaseURL, "/"),
		model:   cfg.ImageGen.Model,
		size:    cfg.ImageGen.Size,
		quality: cfg.ImageGen.Quality,
		httpClient: &http.Client{
			Timeout: cfg.ImageGen.Timeout,
		},
		logger: logging.GetGlobalLogger(),
	}
}

// Generate produces a single image for the prompt and returns its raw bytes
func (c *Client) Generate(ctx context.Context, prompt string) ([]byte, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("image generation API key not configured - set IMAGEGEN_API_KEY environment variable")
	}

	body, err := json.Marshal(generationRequest{
		Model:   c.model,
		Prompt:  prompt,
		N:       1,
		Size:    c.size,
		Quality: c.quality,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal generation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/images/generations", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image generation request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read generation response: %w", err)
	}

	var generation generationResponse
	if err := json.Unmarshal(respBody, &generation); err != nil {
		return nil, fmt.Errorf("failed to parse generation response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if generation.Error != nil {
			return nil, fmt.Errorf("image provider error (%d): %s", resp.StatusCode, generation.Error.Message)
		}
		return nil, fmt.Errorf("image provider returned status %d", resp.StatusCode)
	}

	if len(generation.Data) == 0 {
		return nil, ErrEmptyImage
	}

	entry := generation.Data[0]
	if entry.B64JSON != "" {
		imageData, err := base64.StdEncoding.DecodeString(entry.B64JSON)
		if err != nil {
			return nil, fmt.Errorf("failed to decode base64 image: %w", err)
		}
		if len(imageData) == 0 {
			return nil, ErrEmptyImage
		}
		return imageData, nil
	}

	if entry.URL == "" {
		return nil, ErrEmptyImage
	}

	return c.fetchImage(ctx, entry.URL)
}

// fetchImage downloads the generated image from the provider's temporary URL
func (c *Client) fetchImage(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create image fetch request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image fetch returned status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image bytes: %w", err)
	}
	if len(imageData) == 0 {
		return nil, ErrEmptyImage
	}

	return imageData, nil
}
