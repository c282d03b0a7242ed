package imagegen

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"talentmesh-onboarding/internal/config"
)

func testConfig(baseURL string) *config.Config {
	cfg := &config.Config{}
	cfg.ImageGen.APIKey = "test-key"
	cfg.ImageGen.BaseURL = baseURL
	cfg.ImageGen.Model = "dall-e-3"
	cfg.ImageGen.Size = "1024x1024"
	cfg.ImageGen.Quality = "standard"
	cfg.ImageGen.Timeout = 5 * time.Second
	return cfg
}

func TestGenerateFromBase64(t *testing.T) {
	imageBytes := []byte("fake-png-bytes")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/images/generations" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected authorization header %q", got)
		}

		var req generationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.N != 1 {
			t.Errorf("n = %d, want 1", req.N)
		}
		if req.Size != "1024x1024" {
			t.Errorf("size = %q, want 1024x1024", req.Size)
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]string{
				{"b64_json": base64.StdEncoding.EncodeToString(imageBytes)},
			},
		})
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	got, err := client.Generate(context.Background(), "a friendly cartoon wizard")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if string(got) != string(imageBytes) {
		t.Errorf("got %q, want %q", got, imageBytes)
	}
}

func TestGenerateFetchesImageURL(t *testing.T) {
	imageBytes := []byte("downloaded-image")

	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/image.png", func(w http.ResponseWriter, r *http.Request) {
		w.Write(imageBytes)
	})
	mux.HandleFunc("/images/generations", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]string{
				{"url": server.URL + "/image.png"},
			},
		})
	})

	client := NewClient(testConfig(server.URL))
	got, err := client.Generate(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if string(got) != string(imageBytes) {
		t.Errorf("got %q, want %q", got, imageBytes)
	}
}

func TestGenerateEmptyData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"data": []interface{}{}})
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	_, err := client.Generate(context.Background(), "prompt")
	if !errors.Is(err, ErrEmptyImage) {
		t.Errorf("got error %v, want ErrEmptyImage", err)
	}
}

func TestGenerateProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "prompt rejected", "type": "invalid_request_error"},
		})
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	_, err := client.Generate(context.Background(), "prompt")
	if err == nil {
		t.Fatal("expected error for provider failure")
	}
}

func TestGenerateMissingAPIKey(t *testing.T) {
	cfg := testConfig("http://localhost:0")
	cfg.ImageGen.APIKey = ""

	client := NewClient(cfg)
	_, err := client.Generate(context.Background(), "prompt")
	if err == nil {
		t.Fatal("expected error for missing API key")
	}
}
