package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"talentmesh-onboarding/internal/config"
)

func webhookContext(t *testing.T, secret, payload string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/webhooks/identity", bytes.NewBufferString(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if secret != "" {
		req.Header.Set(webhookSecretHeader, secret)
	}
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func webhookConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Auth.WebhookSecret = "whsec"
	return cfg
}

func TestWebhookRejectsBadSecret(t *testing.T) {
	handler := IdentityWebhookHandler(webhookConfig(), nil)

	c, rec := webhookContext(t, "wrong", `{"type":"user.created","data":{"id":"user_1"}}`)
	if err := handler(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestWebhookIgnoresOtherEventTypes(t *testing.T) {
	handler := IdentityWebhookHandler(webhookConfig(), nil)

	c, rec := webhookContext(t, "whsec", `{"type":"user.updated","data":{"id":"user_1"}}`)
	if err := handler(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestWebhookRejectsMissingIDOrEmail(t *testing.T) {
	handler := IdentityWebhookHandler(webhookConfig(), nil)

	cases := []struct {
		name    string
		payload string
	}{
		{"missing id", `{"type":"user.created","data":{"email_addresses":[{"email_address":"a@b.co"}]}}`},
		{"missing email", `{"type":"user.created","data":{"id":"user_1"}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := webhookContext(t, "whsec", tc.payload)
			if err := handler(c); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestWebhookRejectsWhenSecretUnconfigured(t *testing.T) {
	handler := IdentityWebhookHandler(&config.Config{}, nil)

	c, rec := webhookContext(t, "", `{"type":"user.created","data":{"id":"user_1"}}`)
	if err := handler(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
