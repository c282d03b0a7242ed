package wizard

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"talentmesh-onboarding/internal/config"
	"talentmesh-onboarding/internal/store"
	"talentmesh-onboarding/pkg/models"
)

func testController() *Controller {
	cfg := &config.Config{}
	cfg.Wizard.StepTTL = time.Hour
	cfg.Wizard.DashboardURL = "/dashboard"
	return NewController(store.NewMemoryStore(), cfg)
}

func TestSubmitBasicInfoNoCheckboxes(t *testing.T) {
	c := testController()
	ctx := context.Background()

	resp, err := c.SubmitForm(ctx, "user-1", 0, FormValues{
		"fullName": {"Jane Doe"},
		"alias":    {"JD"},
	})
	if err != nil {
		t.Fatalf("SubmitForm failed: %v", err)
	}
	if !resp.Success {
		t.Fatalf("submission failed: %s", resp.Error)
	}
	if resp.NextStep == nil || *resp.NextStep != 1 {
		t.Errorf("next step = %v, want 1", resp.NextStep)
	}

	info, ok := resp.Data.(*models.BasicInfo)
	if !ok {
		t.Fatalf("unexpected data type %T", resp.Data)
	}
	if info.FullName != "Jane Doe" || info.Alias != "JD" {
		t.Errorf("unexpected payload: %+v", info)
	}
	if info.OpenToFullTime || info.OpenToContract || info.OpenToSpeaking {
		t.Error("unchecked checkboxes should decode to false")
	}
}

func TestSubmitMissingRequiredFieldWritesNothing(t *testing.T) {
	c := testController()
	ctx := context.Background()

	resp, err := c.SubmitForm(ctx, "user-1", 0, FormValues{"alias": {"JD"}})
	if err != nil {
		t.Fatalf("SubmitForm failed: %v", err)
	}
	if resp.Success {
		t.Fatal("submission without full name should fail")
	}
	if resp.Error == "" {
		t.Error("error message should be set")
	}

	render, err := c.Render(ctx, "user-1", 0)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if render.Data != nil {
		t.Error("no payload should be persisted after a failed submission")
	}
}

func TestSubmitRoundTripPrefill(t *testing.T) {
	c := testController()
	ctx := context.Background()

	_, err := c.SubmitForm(ctx, "user-1", 3, FormValues{
		"country":            {"US"},
		"city":               {"Boston"},
		"workPreference":     {"remote"},
		"willingToRelocate":  {"on"},
		"preferredLocations": {"New York, , London"},
	})
	if err != nil {
		t.Fatalf("SubmitForm failed: %v", err)
	}

	render, err := c.Render(ctx, "user-1", 3)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	var prefs models.LocationPrefs
	if err := json.Unmarshal(render.Data, &prefs); err != nil {
		t.Fatalf("failed to decode rendered payload: %v", err)
	}
	if prefs.Country != "US" || prefs.City != "Boston" || prefs.WorkPreference != "remote" {
		t.Errorf("unexpected payload: %+v", prefs)
	}
	if !prefs.WillingToRelocate {
		t.Error("checked checkbox should decode to true")
	}
	if len(prefs.PreferredLocations) != 2 || prefs.PreferredLocations[0] != "New York" || prefs.PreferredLocations[1] != "London" {
		t.Errorf("preferred locations = %v, want [New York London]", prefs.PreferredLocations)
	}
}

func TestSubmitInvalidWorkPreference(t *testing.T) {
	c := testController()

	resp, err := c.SubmitForm(context.Background(), "user-1", 3, FormValues{
		"country":        {"US"},
		"city":           {"Boston"},
		"workPreference": {"nomadic"},
	})
	if err != nil {
		t.Fatalf("SubmitForm failed: %v", err)
	}
	if resp.Success {
		t.Error("invalid work preference should fail validation")
	}
}

func TestVerifyInfoIndexedCompanies(t *testing.T) {
	c := testController()
	ctx := context.Background()

	// Seed the resume extract the verify step edits
	extract := models.PlaceholderResumeExtract("https://cdn.example.com/resumes/r1.pdf")
	if err := c.SavePayload(ctx, "user-1", 1, extract); err != nil {
		t.Fatalf("SavePayload failed: %v", err)
	}

	resp, err := c.SubmitForm(ctx, "user-1", 2, FormValues{
		"company-0":  {"Acme"},
		"position-1": {"Engineer"},
	})
	if err != nil {
		t.Fatalf("SubmitForm failed: %v", err)
	}
	if !resp.Success {
		t.Fatalf("submission failed: %s", resp.Error)
	}

	merged, ok := resp.Data.(*models.ResumeExtract)
	if !ok {
		t.Fatalf("unexpected data type %T", resp.Data)
	}
	if len(merged.Companies) != 1 {
		t.Fatalf("got %d companies, want 1 (record without a name is dropped)", len(merged.Companies))
	}
	if merged.Companies[0].Name != "Acme" || merged.Companies[0].Position != models.NotSpecified {
		t.Errorf("company = %+v, want Acme / sentinel position", merged.Companies[0])
	}

	// Fields absent from the form survive the merge
	if merged.Summary != extract.Summary {
		t.Error("summary absent from form should be preserved")
	}
	if merged.ResumeURL != extract.ResumeURL {
		t.Error("resume URL should be preserved")
	}
	if merged.Placeholder {
		t.Error("verified extract should no longer be a placeholder")
	}
}

func TestVerifyInfoWithoutResume(t *testing.T) {
	c := testController()

	resp, err := c.SubmitForm(context.Background(), "user-1", 2, FormValues{
		"summary": {"edited"},
	})
	if err != nil {
		t.Fatalf("SubmitForm failed: %v", err)
	}
	if resp.Success {
		t.Error("verify submission without a stored resume should fail")
	}
}

func TestRenderPrerequisitePlaceholder(t *testing.T) {
	c := testController()

	render, err := c.Render(context.Background(), "user-1", 2)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if render.Prerequisite == nil {
		t.Fatal("rendering verify-info without a resume should carry a prerequisite notice")
	}
	if render.Prerequisite.MissingStep != 1 {
		t.Errorf("missing step = %d, want 1", render.Prerequisite.MissingStep)
	}
}

func TestRenderStepOutOfRange(t *testing.T) {
	c := testController()

	if _, err := c.Render(context.Background(), "user-1", 7); err != ErrStepOutOfRange {
		t.Errorf("got error %v, want ErrStepOutOfRange", err)
	}
	if _, err := c.Render(context.Background(), "user-1", -1); err != ErrStepOutOfRange {
		t.Errorf("got error %v, want ErrStepOutOfRange", err)
	}
}

func TestAvailabilitySkipsUnavailableDays(t *testing.T) {
	c := testController()

	resp, err := c.SubmitForm(context.Background(), "user-1", 4, FormValues{
		"timezone":           {"America/New_York"},
		"monday-start":       {"09:00"},
		"monday-end":         {"17:00"},
		"tuesday-start":      {"09:00"},
		"tuesday-end":        {"17:00"},
		"tuesday-unavailable": {"on"},
		"notes":              {"No late meetings"},
	})
	if err != nil {
		t.Fatalf("SubmitForm failed: %v", err)
	}
	if !resp.Success {
		t.Fatalf("submission failed: %s", resp.Error)
	}

	availability := resp.Data.(*models.Availability)
	if _, ok := availability.Days["monday"]; !ok {
		t.Error("monday window should be present")
	}
	if _, ok := availability.Days["tuesday"]; ok {
		t.Error("unavailable day should be omitted")
	}
	if availability.Note != "No late meetings" {
		t.Errorf("note = %q", availability.Note)
	}
}

func TestClearanceRequiresLevelWhenHeld(t *testing.T) {
	c := testController()
	ctx := context.Background()

	resp, err := c.SubmitForm(ctx, "user-1", 5, FormValues{
		"hasClearance": {"yes"},
	})
	if err != nil {
		t.Fatalf("SubmitForm failed: %v", err)
	}
	if resp.Success {
		t.Error("held clearance without a level should fail validation")
	}

	resp, err = c.SubmitForm(ctx, "user-1", 5, FormValues{
		"hasClearance":   {"no"},
		"willingToApply": {"on"},
	})
	if err != nil {
		t.Fatalf("SubmitForm failed: %v", err)
	}
	if !resp.Success {
		t.Fatalf("no-clearance submission should pass: %s", resp.Error)
	}

	clearance := resp.Data.(*models.ClearanceInfo)
	if clearance.HasClearance {
		t.Error("hasClearance should be false")
	}
	if !clearance.WillingToObtain {
		t.Error("willingToApply checkbox should decode to true")
	}
}

func TestClearAllRemovesPayloads(t *testing.T) {
	c := testController()
	ctx := context.Background()

	_, err := c.SubmitForm(ctx, "user-1", 0, FormValues{"fullName": {"Jane Doe"}})
	if err != nil {
		t.Fatalf("SubmitForm failed: %v", err)
	}

	c.ClearAll(ctx, "user-1")

	render, err := c.Render(ctx, "user-1", 0)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if render.Data != nil {
		t.Error("payloads should be gone after ClearAll")
	}
}
