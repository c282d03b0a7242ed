package wizard

// Step keys, addressed by numeric index in the navigation surface
const (
	StepBasicInfo           = "basic-info"
	StepResumeUpload        = "resume-upload"
	StepVerifyInfo          = "verify-info"
	StepLocationPreferences = "location-preferences"
	StepAvailability        = "availability"
	StepSecurityClearance   = "security-clearance"
	StepGenerateAvatar      = "generate-avatar"
)

// Step describes one wizard step: its position, storage key, label, and
// the earlier steps whose payloads it needs before it can render usefully
type Step struct {
	Index         int
	Key           string
	Label         string
	Prerequisites []int
}

// Steps is the ordered wizard schema. The index in this slice is the
// step's navigation parameter.
var Steps = []Step{
	{Index: 0, Key: StepBasicInfo, Label: "Basic Information"},
	{Index: 1, Key: StepResumeUpload, Label: "Resume Upload"},
	{Index: 2, Key: StepVerifyInfo, Label: "Verify Your Information", Prerequisites: []int{1}},
	{Index: 3, Key: StepLocationPreferences, Label: "Location & Work Preferences"},
	{Index: 4, Key: StepAvailability, Label: "Availability"},
	{Index: 5, Key: StepSecurityClearance, Label: "Security Clearance"},
	{Index: 6, Key: StepGenerateAvatar, Label: "Generate Your Avatar", Prerequisites: []int{0, 1, 2, 3, 4, 5}},
}

// TotalSteps is the number of wizard steps
var TotalSteps = len(Steps)

// StepAt returns the step at the given index, or false when out of range
func StepAt(index int) (Step, bool) {
	if index < 0 || index >= len(Steps) {
		return Step{}, false
	}
	return Steps[index], true
}
