package models

import (
	"encoding/json"
	"time"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Uptime    time.Duration     `json:"uptime"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}

// PrerequisiteNotice tells the client an earlier step's payload is
// missing and where to go to produce it
type PrerequisiteNotice struct {
	MissingStep int    `json:"missing_step"`
	MissingKey  string `json:"missing_key"`
	Message     string `json:"message"`
}

// StepRenderResponse is the render state for one wizard step: the saved
// payload (if any) pre-fills the form on re-entry
type StepRenderResponse struct {
	Step         int                 `json:"step"`
	Key          string              `json:"key"`
	Label        string              `json:"label"`
	TotalSteps   int                 `json:"total_steps"`
	Data         json.RawMessage     `json:"data"`
	Prerequisite *PrerequisiteNotice `json:"prerequisite,omitempty"`
}

// StepSubmitResponse is the result of a step submission. On success the
// wizard advances; on failure the same step is re-addressed with the error.
type StepSubmitResponse struct {
	Success      bool        `json:"success"`
	Step         int         `json:"step"`
	NextStep     *int        `json:"next_step,omitempty"`
	Complete     bool        `json:"complete,omitempty"`
	DashboardURL string      `json:"dashboard_url,omitempty"`
	Data         interface{} `json:"data,omitempty"`
	Error        string      `json:"error,omitempty"`
}

// CleanResumeResponse is the result of a PII-scrub pass. The scrub is
// best-effort; VerifyNotice reminds the client to have the user check the
// text themselves.
type CleanResumeResponse struct {
	Success       bool   `json:"success"`
	CleanedResume string `json:"cleaned_resume,omitempty"`
	Passes        int    `json:"passes,omitempty"`
	VerifyNotice  string `json:"verify_notice,omitempty"`
	Error         string `json:"error,omitempty"`
}

// AvatarResponse is the result of an avatar generation call
type AvatarResponse struct {
	Success bool         `json:"success"`
	Avatar  *AvatarAsset `json:"avatar,omitempty"`
	Retry   bool         `json:"retry,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// RoleSelectResponse is the result of a role selection
type RoleSelectResponse struct {
	Success   bool   `json:"success"`
	Role      string `json:"role,omitempty"`
	Onboarded bool   `json:"onboarded"`
	Error     string `json:"error,omitempty"`
}

// FinalizeResponse is the result of wizard finalization
type FinalizeResponse struct {
	Success      bool   `json:"success"`
	DashboardURL string `json:"dashboard_url,omitempty"`
	Error        string `json:"error,omitempty"`
}
