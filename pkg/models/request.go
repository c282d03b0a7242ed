package models

// WebhookEmail is one email address entry in an identity webhook payload
type WebhookEmail struct {
	EmailAddress string `json:"email_address"`
}

// WebhookUserData is the identity-provider user record carried by a
// user.created event
type WebhookUserData struct {
	ID             string                 `json:"id"`
	EmailAddresses []WebhookEmail         `json:"email_addresses"`
	FirstName      string                 `json:"first_name"`
	LastName       string                 `json:"last_name"`
	ImageURL       string                 `json:"image_url"`
	CreatedAt      int64                  `json:"created_at"`
	PublicMetadata map[string]interface{} `json:"public_metadata"`
}

// WebhookEvent is the envelope posted by the identity provider
type WebhookEvent struct {
	Type string          `json:"type" validate:"required"`
	Data WebhookUserData `json:"data"`
}

// CleanResumeRequest optionally overrides the text to scrub; when empty
// the stored resume payload's cleaned text is used
type CleanResumeRequest struct {
	Text string `json:"text,omitempty"`
}

// RoleSelectRequest carries the marketplace side the user picked at the
// start of onboarding
type RoleSelectRequest struct {
	Role string `json:"role" validate:"required"`
}
