package wizard

import (
	"strconv"

	"talentmesh-onboarding/pkg/models"
)

// Result is the discriminated outcome of a step action. Nothing is
// persisted for error results.
type Result struct {
	OK   bool
	Data interface{}
	Err  string
}

func ok(data interface{}) Result {
	return Result{OK: true, Data: data}
}

func fail(message string) Result {
	return Result{Err: message}
}

// decodeBasicInfo handles the basic-info step
func decodeBasicInfo(form FormValues) Result {
	fullName := form.Get("fullName")
	if fullName == "" {
		return fail("Full name is required")
	}

	return ok(&models.BasicInfo{
		FullName:       fullName,
		Alias:          form.Get("alias"),
		CareerField:    form.Get("careerField"),
		OpenToFullTime: form.Has("openToFullTime"),
		OpenToContract: form.Has("openToContract"),
		OpenToSpeaking: form.Has("openToSpeaking"),
	})
}

// mergeVerifyInfo handles the verify-info step: the submitted fields are
// merged over the existing resume extract so fields absent from the form
// survive untouched
func mergeVerifyInfo(form FormValues, existing *models.ResumeExtract) Result {
	merged := *existing

	if form.Has("summary") {
		merged.Summary = form.Get("summary")
	}

	if form.Has("yearsOfExperience") {
		years, err := strconv.Atoi(form.Get("yearsOfExperience"))
		if err != nil || years < 0 {
			return fail("Years of experience must be a non-negative number")
		}
		merged.YearsOfExperience = years
	}

	if skills := indexedSkills(form); skills != nil {
		merged.Skills = skills
	}
	if companies := indexedCompanies(form); companies != nil {
		merged.Companies = companies
	}
	if education := indexedEducation(form); education != nil {
		merged.Education = education
	}

	// The user has reviewed the extract; it is no longer a placeholder
	merged.Placeholder = false

	return ok(&merged)
}

// indexedSkills collects skill-N fields, dropping blank entries. Returns
// nil when no skill fields were submitted at all.
func indexedSkills(form FormValues) []string {
	groups := form.IndexedGroups("skill")
	if len(groups) == 0 {
		return nil
	}

	skills := make([]string, 0, len(groups))
	for _, group := range groups {
		if len(skills) >= models.MaxSkills {
			break
		}
		if skill := group["skill"]; skill != "" {
			skills = append(skills, skill)
		}
	}
	return skills
}

// indexedCompanies collects company-N/position-N pairs. A record without
// its company name is dropped; a missing position gets the sentinel.
func indexedCompanies(form FormValues) []models.Company {
	groups := form.IndexedGroups("company", "position")
	if len(groups) == 0 {
		return nil
	}

	companies := make([]models.Company, 0, len(groups))
	for _, group := range groups {
		if len(companies) >= models.MaxCompanies {
			break
		}
		name := group["company"]
		if name == "" {
			continue
		}
		position := group["position"]
		if position == "" {
			position = models.NotSpecified
		}
		companies = append(companies, models.Company{Name: name, Position: position})
	}
	return companies
}

// indexedEducation collects institution-N/degree-N/year-N triples. A
// record without its institution is dropped; other fields get the
// sentinel.
func indexedEducation(form FormValues) []models.Education {
	groups := form.IndexedGroups("institution", "degree", "year")
	if len(groups) == 0 {
		return nil
	}

	education := make([]models.Education, 0, len(groups))
	for _, group := range groups {
		if len(education) >= models.MaxEducation {
			break
		}
		institution := group["institution"]
		if institution == "" {
			continue
		}
		degree := group["degree"]
		if degree == "" {
			degree = models.NotSpecified
		}
		year := group["year"]
		if year == "" {
			year = models.NotSpecified
		}
		education = append(education, models.Education{
			Institution: institution,
			Degree:      degree,
			Year:        year,
		})
	}
	return education
}

// decodeLocationPrefs handles the location-preferences step
func decodeLocationPrefs(form FormValues) Result {
	country := form.Get("country")
	if country == "" {
		return fail("Country is required")
	}

	city := form.Get("city")
	if city == "" {
		return fail("City is required")
	}

	workPreference := form.Get("workPreference")
	switch workPreference {
	case models.WorkPreferenceRemote, models.WorkPreferenceHybrid, models.WorkPreferenceOnsite:
	case "":
		return fail("Work preference is required")
	default:
		return fail("Work preference must be remote, hybrid or onsite")
	}

	return ok(&models.LocationPrefs{
		Country:            country,
		City:               city,
		WorkPreference:     workPreference,
		WillingToRelocate:  form.Has("willingToRelocate"),
		PreferredLocations: form.CommaList("preferredLocations"),
	})
}

// decodeAvailability handles the availability step. Weekdays marked
// unavailable are omitted from the window map.
func decodeAvailability(form FormValues) Result {
	timezone := form.Get("timezone")
	if timezone == "" {
		return fail("Timezone is required")
	}

	days := make(map[string]models.DayWindow)
	for _, day := range models.Weekdays {
		if form.Has(day + "-unavailable") {
			continue
		}
		start := form.Get(day + "-start")
		end := form.Get(day + "-end")
		if start == "" && end == "" {
			continue
		}
		days[day] = models.DayWindow{Start: start, End: end}
	}

	return ok(&models.Availability{
		Timezone: timezone,
		Days:     days,
		Note:     form.Get("notes"),
	})
}

// decodeClearance handles the security-clearance step
func decodeClearance(form FormValues) Result {
	hasClearance := form.Get("hasClearance") == "yes"

	level := form.Get("clearanceLevel")
	if hasClearance && level == "" {
		return fail("Clearance level is required when you hold a clearance")
	}

	status := form.Get("clearanceStatus")
	switch status {
	case models.ClearanceStatusActive, models.ClearanceStatusInactive, models.ClearanceStatusPending, "":
	default:
		return fail("Clearance status must be active, inactive or pending")
	}

	return ok(&models.ClearanceInfo{
		HasClearance:    hasClearance,
		Level:           level,
		Status:          status,
		ExpirationDate:  form.Get("expirationDate"),
		WillingToObtain: form.Has("willingToApply"),
	})
}
