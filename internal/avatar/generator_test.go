package avatar

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeImageGenerator struct {
	prompt string
	data   []byte
	err    error
}

func (f *fakeImageGenerator) Generate(ctx context.Context, prompt string) ([]byte, error) {
	f.prompt = prompt
	return f.data, f.err
}

type fakeUploader struct {
	identity string
	data     []byte
	url      string
	err      error
}

func (f *fakeUploader) UploadAvatar(identity string, imageData []byte) (string, error) {
	f.identity = identity
	f.data = imageData
	return f.url, f.err
}

func TestGeneratorGenerate(t *testing.T) {
	images := &fakeImageGenerator{data: []byte("png-bytes")}
	uploader := &fakeUploader{url: "https://cdn.example.com/avatars/user-1.png"}
	g := NewGenerator(images, uploader)

	asset, err := g.Generate(context.Background(), "user-1", PromptInput{
		Alias:             "JD",
		Summary:           "Engineer.",
		Skills:            []string{"Go"},
		YearsOfExperience: 4,
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if asset.ImageURL != uploader.url {
		t.Errorf("image URL = %q, want %q", asset.ImageURL, uploader.url)
	}
	if !strings.Contains(asset.Prompt, "a teenager") {
		t.Errorf("prompt %q missing maturity tier", asset.Prompt)
	}
	if asset.GeneratedAt.IsZero() {
		t.Error("generated timestamp should be set")
	}
	if uploader.identity != "user-1" {
		t.Errorf("uploaded identity = %q, want user-1", uploader.identity)
	}
	if string(uploader.data) != "png-bytes" {
		t.Errorf("uploaded bytes = %q", uploader.data)
	}
}

func TestGeneratorImageFailure(t *testing.T) {
	images := &fakeImageGenerator{err: errors.New("provider down")}
	g := NewGenerator(images, &fakeUploader{})

	_, err := g.Generate(context.Background(), "user-1", PromptInput{Alias: "JD"})
	if err == nil {
		t.Fatal("expected error when image generation fails")
	}
}

func TestGeneratorUploadFailure(t *testing.T) {
	images := &fakeImageGenerator{data: []byte("png")}
	uploader := &fakeUploader{err: errors.New("bucket unreachable")}
	g := NewGenerator(images, uploader)

	_, err := g.Generate(context.Background(), "user-1", PromptInput{Alias: "JD"})
	if err == nil {
		t.Fatal("expected error when upload fails")
	}
}
