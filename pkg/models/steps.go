package models

import "time"

// BasicInfo is the payload produced by the basic-info step
type BasicInfo struct {
	FullName       string `json:"full_name"`
	Alias          string `json:"alias"`
	CareerField    string `json:"career_field"`
	OpenToFullTime bool   `json:"open_to_full_time"`
	OpenToContract bool   `json:"open_to_contract"`
	OpenToSpeaking bool   `json:"open_to_speaking"`
}

// Company is a single past-employer entry in a resume extract
type Company struct {
	Name     string `json:"name"`
	Position string `json:"position"`
}

// Education is a single education entry in a resume extract
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Year        string `json:"year"`
}

// EmploymentDate is the month/year of the most recent employment.
// Fields are nil when the provider could not determine them.
type EmploymentDate struct {
	Month *string `json:"month"`
	Year  *string `json:"year"`
}

// ResumeExtract is the structured resume payload produced by the
// resume-upload step and edited by the verify-info step
type ResumeExtract struct {
	ResumeURL         string         `json:"resume_url"`
	Summary           string         `json:"summary"`
	CleanedResume     string         `json:"cleaned_resume"`
	Skills            []string       `json:"skills"`
	Companies         []Company      `json:"companies"`
	Education         []Education    `json:"education"`
	LastEmployment    EmploymentDate `json:"last_employment"`
	YearsOfExperience int            `json:"years_of_experience"`

	// Placeholder marks a fallback payload substituted after a provider
	// failure so the client can prompt the user to retry or edit.
	Placeholder bool `json:"placeholder,omitempty"`
}

// LocationPrefs is the payload produced by the location-preferences step
type LocationPrefs struct {
	Country            string   `json:"country"`
	City               string   `json:"city"`
	WorkPreference     string   `json:"work_preference"` // remote, hybrid or onsite
	WillingToRelocate  bool     `json:"willing_to_relocate"`
	PreferredLocations []string `json:"preferred_locations"`
}

// DayWindow is the start/end of availability on a single weekday
type DayWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Availability is the payload produced by the availability step
type Availability struct {
	Timezone string               `json:"timezone"`
	Days     map[string]DayWindow `json:"days"`
	Note     string               `json:"note"`
}

// ClearanceInfo is the payload produced by the security-clearance step
type ClearanceInfo struct {
	HasClearance    bool   `json:"has_clearance"`
	Level           string `json:"level"`
	Status          string `json:"status"` // active, inactive, pending or empty
	ExpirationDate  string `json:"expiration_date"`
	WillingToObtain bool   `json:"willing_to_obtain"`
}

// AvatarAsset is the generated portrait payload. Regeneration replaces
// the whole asset; only the most recent image is current.
type AvatarAsset struct {
	ImageURL    string    `json:"image_url"`
	Prompt      string    `json:"prompt"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Profile is the assembled onboarding record persisted on finalization.
// Every wizard payload lands here; the step store copies are cleared
// once this is written.
type Profile struct {
	BasicInfo    BasicInfo     `json:"basic_info"`
	Resume       ResumeExtract `json:"resume"`
	Location     LocationPrefs `json:"location"`
	Availability Availability  `json:"availability"`
	Clearance    ClearanceInfo `json:"clearance"`
	Avatar       *AvatarAsset  `json:"avatar,omitempty"`
}

// Weekdays is the canonical ordering for availability windows
var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// Work preference values accepted by the location-preferences step
const (
	WorkPreferenceRemote = "remote"
	WorkPreferenceHybrid = "hybrid"
	WorkPreferenceOnsite = "onsite"
)

// Clearance status values accepted by the security-clearance step
const (
	ClearanceStatusActive   = "active"
	ClearanceStatusInactive = "inactive"
	ClearanceStatusPending  = "pending"
)
