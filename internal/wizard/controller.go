package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"talentmesh-onboarding/internal/config"
	"talentmesh-onboarding/internal/logging"
	"talentmesh-onboarding/internal/store"
	"talentmesh-onboarding/pkg/models"
)

// ErrStepOutOfRange is returned for a step index outside the schema
var ErrStepOutOfRange = errors.New("step index out of range")

// Controller drives the wizard: it renders steps pre-filled from the step
// store, dispatches submissions to step actions, and persists successful
// payloads. The current step is always derived from the request; the
// controller holds no per-session cursor.
type Controller struct {
	store  store.StepStore
	config *config.Config
	logger logging.Logger
}

// NewController creates a wizard controller over the given step store
func NewController(st store.StepStore, cfg *config.Config) *Controller {
	return &Controller{
		store:  st,
		config: cfg,
		logger: logging.GetGlobalLogger(),
	}
}

// Render produces the render state for a step: its label, the saved
// payload if any, and a prerequisite notice when an earlier required
// payload is missing. A missing prerequisite is a placeholder state, not
// an error.
func (c *Controller) Render(ctx context.Context, identity string, stepIndex int) (*models.StepRenderResponse, error) {
	step, found := StepAt(stepIndex)
	if !found {
		return nil, ErrStepOutOfRange
	}

	resp := &models.StepRenderResponse{
		Step:       step.Index,
		Key:        step.Key,
		Label:      step.Label,
		TotalSteps: TotalSteps,
	}

	if notice := c.missingPrerequisite(ctx, identity, step); notice != nil {
		resp.Prerequisite = notice
		return resp, nil
	}

	payload, err := c.store.Get(ctx, identity, storageKey(step))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return resp, nil
		}
		return nil, fmt.Errorf("failed to load step payload: %w", err)
	}

	resp.Data = json.RawMessage(payload)
	return resp, nil
}

// missingPrerequisite returns a notice for the first prerequisite step
// whose payload is absent
func (c *Controller) missingPrerequisite(ctx context.Context, identity string, step Step) *models.PrerequisiteNotice {
	for _, required := range step.Prerequisites {
		requiredStep := Steps[required]
		if _, err := c.store.Get(ctx, identity, storageKey(requiredStep)); errors.Is(err, store.ErrNotFound) {
			return &models.PrerequisiteNotice{
				MissingStep: requiredStep.Index,
				MissingKey:  requiredStep.Key,
				Message:     fmt.Sprintf("Complete %q first", requiredStep.Label),
			}
		}
	}
	return nil
}

// SubmitForm dispatches a form submission to the step's action and, on
// success, persists the payload and advances. Enrichment steps
// (resume-upload, generate-avatar) are driven by their own handlers and
// save through SavePayload instead.
func (c *Controller) SubmitForm(ctx context.Context, identity string, stepIndex int, form FormValues) (*models.StepSubmitResponse, error) {
	step, found := StepAt(stepIndex)
	if !found {
		return nil, ErrStepOutOfRange
	}

	var result Result
	switch step.Key {
	case StepBasicInfo:
		result = decodeBasicInfo(form)
	case StepVerifyInfo:
		existing, err := c.loadResumeExtract(ctx, identity)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return &models.StepSubmitResponse{
				Step:  step.Index,
				Error: "Upload a resume before verifying it",
			}, nil
		}
		result = mergeVerifyInfo(form, existing)
	case StepLocationPreferences:
		result = decodeLocationPrefs(form)
	case StepAvailability:
		result = decodeAvailability(form)
	case StepSecurityClearance:
		result = decodeClearance(form)
	default:
		return nil, fmt.Errorf("step %s does not accept form submissions", step.Key)
	}

	if !result.OK {
		return &models.StepSubmitResponse{
			Step:  step.Index,
			Error: result.Err,
		}, nil
	}

	if err := c.SavePayload(ctx, identity, step.Index, result.Data); err != nil {
		return nil, err
	}

	return c.AdvanceResponse(step.Index, result.Data), nil
}

// SavePayload persists a step payload under the step's key. The verify
// step shares the resume-upload key so both address one extract.
func (c *Controller) SavePayload(ctx context.Context, identity string, stepIndex int, payload interface{}) error {
	step, found := StepAt(stepIndex)
	if !found {
		return ErrStepOutOfRange
	}

	key := storageKey(step)

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal step payload: %w", err)
	}

	if err := c.store.Set(ctx, identity, key, data, c.config.Wizard.StepTTL); err != nil {
		return fmt.Errorf("failed to persist step payload: %w", err)
	}

	c.logger.Debug("Step payload saved", map[string]interface{}{
		"identity": identity,
		"step_key": key,
	})

	return nil
}

// AdvanceResponse builds the submission response that moves the wizard
// forward, or marks it complete after the last step
func (c *Controller) AdvanceResponse(stepIndex int, data interface{}) *models.StepSubmitResponse {
	resp := &models.StepSubmitResponse{
		Success: true,
		Step:    stepIndex,
		Data:    data,
	}

	if stepIndex+1 < TotalSteps {
		next := stepIndex + 1
		resp.NextStep = &next
	} else {
		resp.Complete = true
		resp.DashboardURL = c.config.Wizard.DashboardURL
	}

	return resp
}

// storageKey maps a step to its store key. The verify step edits the
// resume-upload payload in place, so both share one key.
func storageKey(step Step) string {
	if step.Key == StepVerifyInfo {
		return StepResumeUpload
	}
	return step.Key
}

// loadResumeExtract reads the stored resume extract, returning nil when
// none exists yet
func (c *Controller) loadResumeExtract(ctx context.Context, identity string) (*models.ResumeExtract, error) {
	payload, err := c.store.Get(ctx, identity, StepResumeUpload)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load resume extract: %w", err)
	}

	var extract models.ResumeExtract
	if err := json.Unmarshal(payload, &extract); err != nil {
		// The store guards against corrupt JSON, but fail soft anyway
		return nil, nil
	}
	return &extract, nil
}

// ResumeExtract exposes the stored extract to the enrichment handlers
func (c *Controller) ResumeExtract(ctx context.Context, identity string) (*models.ResumeExtract, error) {
	return c.loadResumeExtract(ctx, identity)
}

// Payload unmarshals the stored payload for a step key into dst. Returns
// store.ErrNotFound when the step has not been completed.
func (c *Controller) Payload(ctx context.Context, identity, stepKey string, dst interface{}) error {
	data, err := c.store.Get(ctx, identity, stepKey)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}

// ClearAll removes every step payload for the identity. Used after
// finalization; failures are logged, not fatal.
func (c *Controller) ClearAll(ctx context.Context, identity string) {
	for _, step := range Steps {
		if err := c.store.Delete(ctx, identity, step.Key); err != nil {
			c.logger.Warn("Failed to clear step payload", map[string]interface{}{
				"identity": identity,
				"step_key": step.Key,
				"error":    err.Error(),
			})
		}
	}
}
