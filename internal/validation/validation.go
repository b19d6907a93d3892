// Package validation holds typed request inputs and their validation rules,
// decoupled from the HTTP layer. Validators return a list of field errors so
// the boundary can report every problem at once.
package validation

import (
	"regexp"
	"strings"
	"time"
)

// FieldError describes a single invalid or missing input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Field+": "+fe.Message)
	}
	return strings.Join(msgs, "; ")
}

var (
	emailPattern      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern      = regexp.MustCompile(`^[0-9]{10}$`)
	nationalIDPattern = regexp.MustCompile(`^[0-9]{12}$`)

	languages = map[string]bool{
		"HINDI": true, "ENGLISH": true, "MARATHI": true, "TAMIL": true,
		"TELUGU": true, "KANNADA": true, "BENGALI": true, "GUJARATI": true,
	}
	cities = map[string]bool{
		"MUMBAI": true, "DELHI": true, "BANGALORE": true, "HYDERABAD": true,
		"CHENNAI": true, "KOLKATA": true, "PUNE": true, "AHMEDABAD": true,
	}
	vehicleTypes = map[string]bool{
		"CAR": true, "BIKE": true, "AUTO": true, "E_RICKSHAW": true, "ELECTRIC_SCOOTER": true,
	}
)

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

func (r *SignupRequest) Validate() FieldErrors {
	var errs FieldErrors
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)

	if len(r.Name) < 2 || len(r.Name) > 50 {
		errs = append(errs, FieldError{"name", "Name must be between 2 and 50 characters"})
	}
	if !emailPattern.MatchString(r.Email) {
		errs = append(errs, FieldError{"email", "Please provide a valid email address"})
	}
	if !phonePattern.MatchString(r.Phone) {
		errs = append(errs, FieldError{"phone", "Phone number must be 10 digits long"})
	}
	if len(r.Password) < 6 || len(r.Password) > 100 {
		errs = append(errs, FieldError{"password", "Password must be between 6 and 100 characters"})
	}
	return errs
}

type LoginRequest struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Identifier returns the credential the user logged in with, email taking
// precedence when both are present.
func (r *LoginRequest) Identifier() string {
	if strings.TrimSpace(r.Email) != "" {
		return strings.TrimSpace(r.Email)
	}
	return strings.TrimSpace(r.Phone)
}

func (r *LoginRequest) Validate() FieldErrors {
	var errs FieldErrors
	if strings.TrimSpace(r.Email) == "" && strings.TrimSpace(r.Phone) == "" {
		errs = append(errs, FieldError{"email", "Either email or phone number must be provided"})
	}
	if len(r.Password) < 6 || len(r.Password) > 100 {
		errs = append(errs, FieldError{"password", "Password must be between 6 and 100 characters"})
	}
	return errs
}

type CreateDriverProfileRequest struct {
	LanguagePreference string `json:"languagePreference"`
	City               string `json:"city"`
	NationalID         string `json:"nationalId"`
	LicenseNumber      string `json:"licenseNumber"`
	LicenseExpiry      string `json:"licenseExpiry,omitempty"`
	RCNumber           string `json:"rcNumber"`
	RCExpiry           string `json:"rcExpiry,omitempty"`
	VehicleType        string `json:"vehicleType"`
	VehicleNumber      string `json:"vehicleNumber,omitempty"`
	VehicleModel       string `json:"vehicleModel,omitempty"`
	VehicleColor       string `json:"vehicleColor,omitempty"`
	ProfilePicture     string `json:"profilePicture,omitempty"`
}

func (r *CreateDriverProfileRequest) Validate() FieldErrors {
	var errs FieldErrors
	r.NationalID = strings.TrimSpace(r.NationalID)
	r.LicenseNumber = strings.ToUpper(strings.TrimSpace(r.LicenseNumber))
	r.RCNumber = strings.ToUpper(strings.TrimSpace(r.RCNumber))

	if !languages[r.LanguagePreference] {
		errs = append(errs, FieldError{"languagePreference", "Invalid language preference"})
	}
	if !cities[r.City] {
		errs = append(errs, FieldError{"city", "Invalid city"})
	}
	if !nationalIDPattern.MatchString(r.NationalID) {
		errs = append(errs, FieldError{"nationalId", "National ID must be exactly 12 digits"})
	}
	if len(r.LicenseNumber) < 8 || len(r.LicenseNumber) > 20 {
		errs = append(errs, FieldError{"licenseNumber", "License number must be between 8 and 20 characters"})
	}
	if len(r.RCNumber) < 8 || len(r.RCNumber) > 15 {
		errs = append(errs, FieldError{"rcNumber", "RC number must be between 8 and 15 characters"})
	}
	if !vehicleTypes[r.VehicleType] {
		errs = append(errs, FieldError{"vehicleType", "Invalid vehicle type"})
	}
	if msg, ok := validateFutureDate(r.LicenseExpiry); !ok {
		errs = append(errs, FieldError{"licenseExpiry", msg})
	}
	if msg, ok := validateFutureDate(r.RCExpiry); !ok {
		errs = append(errs, FieldError{"rcExpiry", msg})
	}
	return errs
}

type UpdateDriverProfileRequest struct {
	VehicleModel   *string `json:"vehicleModel,omitempty"`
	VehicleColor   *string `json:"vehicleColor,omitempty"`
	ProfilePicture *string `json:"profilePicture,omitempty"`
	LicenseExpiry  *string `json:"licenseExpiry,omitempty"`
	RCExpiry       *string `json:"rcExpiry,omitempty"`
}

func (r *UpdateDriverProfileRequest) Validate() FieldErrors {
	var errs FieldErrors
	if r.LicenseExpiry != nil {
		if msg, ok := validateFutureDate(*r.LicenseExpiry); !ok {
			errs = append(errs, FieldError{"licenseExpiry", msg})
		}
	}
	if r.RCExpiry != nil {
		if msg, ok := validateFutureDate(*r.RCExpiry); !ok {
			errs = append(errs, FieldError{"rcExpiry", msg})
		}
	}
	return errs
}

type UpdateStatusRequest struct {
	IsOnline *bool `json:"isOnline"`
}

func (r *UpdateStatusRequest) Validate() FieldErrors {
	if r.IsOnline == nil {
		return FieldErrors{{Field: "isOnline", Message: "isOnline is required"}}
	}
	return nil
}

// validateFutureDate accepts an empty value or a YYYY-MM-DD date in the
// future. Returns the failure message and whether validation passed.
func validateFutureDate(value string) (string, bool) {
	if strings.TrimSpace(value) == "" {
		return "", true
	}
	t, err := ParseDate(value)
	if err != nil {
		return "Date must be in YYYY-MM-DD format", false
	}
	if !t.After(time.Now()) {
		return "Date must be in the future", false
	}
	return "", true
}

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", strings.TrimSpace(value))
}
