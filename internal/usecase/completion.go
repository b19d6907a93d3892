package usecase

import "github.com/swiftride/backend/internal/entity"

// Profile completion scoring. Required fields sum to 70, optional fields to
// 30; a driver may only go online at 70 or more, and only once verified.

const OnlineCompletionThreshold = 70

// MissingField names an unfilled optional field together with its weight
// and a label fit for display.
type MissingField struct {
	Field  string `json:"field"`
	Weight int    `json:"weight"`
	Label  string `json:"label"`
}

// CalculateCompletion derives the completion percentage from which fields
// are populated. It is recomputed on every mutation and never trusted from
// input.
func CalculateCompletion(p *entity.DriverProfile) int {
	percentage := 0

	// Required fields (70% total)
	if p.PersonalInfo.LanguagePreference != "" {
		percentage += 10
	}
	if p.PersonalInfo.City != "" {
		percentage += 10
	}
	if p.PersonalInfo.NationalID != "" {
		percentage += 15
	}
	if p.Documents.LicenseNumber != "" {
		percentage += 15
	}
	if p.Documents.RCNumber != "" {
		percentage += 10
	}
	if p.VehicleInfo.VehicleType != "" {
		percentage += 10
	}

	// Optional fields (30% total)
	if p.PersonalInfo.ProfilePicture != "" {
		percentage += 10
	}
	if p.Documents.LicenseExpiry != nil {
		percentage += 5
	}
	if p.Documents.RCExpiry != nil {
		percentage += 5
	}
	if p.VehicleInfo.VehicleModel != "" {
		percentage += 5
	}
	if p.VehicleInfo.VehicleColor != "" {
		percentage += 5
	}

	return percentage
}

// MissingFields lists every unset optional field with its weight, so the
// client can show the driver what to complete next.
func MissingFields(p *entity.DriverProfile) []MissingField {
	missing := []MissingField{}

	if p.PersonalInfo.ProfilePicture == "" {
		missing = append(missing, MissingField{Field: "profilePicture", Weight: 10, Label: "Profile Picture"})
	}
	if p.Documents.LicenseExpiry == nil {
		missing = append(missing, MissingField{Field: "licenseExpiry", Weight: 5, Label: "License Expiry Date"})
	}
	if p.Documents.RCExpiry == nil {
		missing = append(missing, MissingField{Field: "rcExpiry", Weight: 5, Label: "RC Expiry Date"})
	}
	if p.VehicleInfo.VehicleModel == "" {
		missing = append(missing, MissingField{Field: "vehicleModel", Weight: 5, Label: "Vehicle Model"})
	}
	if p.VehicleInfo.VehicleColor == "" {
		missing = append(missing, MissingField{Field: "vehicleColor", Weight: 5, Label: "Vehicle Color"})
	}

	return missing
}

// CanGoOnline reports whether the driver meets the eligibility gate:
// profile at least 70% complete and verified by an admin.
func CanGoOnline(p *entity.DriverProfile) bool {
	return p.Status.CompletionPercentage >= OnlineCompletionThreshold && p.Status.IsVerified
}
