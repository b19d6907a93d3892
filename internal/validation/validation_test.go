package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validSignup() SignupRequest {
	return SignupRequest{
		Name:     "Asha Kumar",
		Email:    "asha@example.com",
		Phone:    "9876543210",
		Password: "secret123",
	}
}

func TestSignupValidation(t *testing.T) {
	req := validSignup()
	assert.Empty(t, req.Validate())

	req = validSignup()
	req.Name = "A"
	assert.NotEmpty(t, req.Validate())

	req = validSignup()
	req.Email = "not-an-email"
	assert.NotEmpty(t, req.Validate())

	req = validSignup()
	req.Phone = "12345"
	assert.NotEmpty(t, req.Validate())

	req = validSignup()
	req.Password = "short"
	assert.NotEmpty(t, req.Validate())
}

func TestLoginValidationRequiresIdentifier(t *testing.T) {
	req := LoginRequest{Password: "secret123"}
	errs := req.Validate()
	assert.Len(t, errs, 1)
	assert.Equal(t, "email", errs[0].Field)

	req = LoginRequest{Email: "asha@example.com", Password: "secret123"}
	assert.Empty(t, req.Validate())

	req = LoginRequest{Phone: "9876543210", Password: "secret123"}
	assert.Empty(t, req.Validate())
	assert.Equal(t, "9876543210", req.Identifier())
}

func validDriverProfile() CreateDriverProfileRequest {
	return CreateDriverProfileRequest{
		LanguagePreference: "HINDI",
		City:               "MUMBAI",
		NationalID:         "123456789012",
		LicenseNumber:      "MH1234567890",
		RCNumber:           "MH01AB1234",
		VehicleType:        "CAR",
	}
}

func TestCreateDriverProfileValidation(t *testing.T) {
	req := validDriverProfile()
	assert.Empty(t, req.Validate())

	req = validDriverProfile()
	req.LanguagePreference = "KLINGON"
	assert.NotEmpty(t, req.Validate())

	req = validDriverProfile()
	req.City = "GOTHAM"
	assert.NotEmpty(t, req.Validate())

	req = validDriverProfile()
	req.NationalID = "12345"
	assert.NotEmpty(t, req.Validate())

	req = validDriverProfile()
	req.LicenseNumber = "SHORT"
	assert.NotEmpty(t, req.Validate())

	req = validDriverProfile()
	req.VehicleType = "SPACESHIP"
	assert.NotEmpty(t, req.Validate())
}

func TestCreateDriverProfileNormalizesCase(t *testing.T) {
	req := validDriverProfile()
	req.LicenseNumber = "mh1234567890"
	req.RCNumber = "mh01ab1234"
	assert.Empty(t, req.Validate())
	assert.Equal(t, "MH1234567890", req.LicenseNumber)
	assert.Equal(t, "MH01AB1234", req.RCNumber)
}

func TestExpiryDatesMustBeFuture(t *testing.T) {
	past := time.Now().AddDate(-1, 0, 0).Format("2006-01-02")
	future := time.Now().AddDate(1, 0, 0).Format("2006-01-02")

	req := validDriverProfile()
	req.LicenseExpiry = past
	assert.NotEmpty(t, req.Validate())

	req = validDriverProfile()
	req.LicenseExpiry = future
	req.RCExpiry = future
	assert.Empty(t, req.Validate())

	req = validDriverProfile()
	req.RCExpiry = "31-12-2030"
	assert.NotEmpty(t, req.Validate())
}

func TestUpdateDriverProfileValidation(t *testing.T) {
	future := time.Now().AddDate(1, 0, 0).Format("2006-01-02")
	past := time.Now().AddDate(-1, 0, 0).Format("2006-01-02")

	req := UpdateDriverProfileRequest{LicenseExpiry: &future}
	assert.Empty(t, req.Validate())

	req = UpdateDriverProfileRequest{RCExpiry: &past}
	assert.NotEmpty(t, req.Validate())
}

func TestUpdateStatusValidation(t *testing.T) {
	req := UpdateStatusRequest{}
	assert.NotEmpty(t, req.Validate())

	online := true
	req = UpdateStatusRequest{IsOnline: &online}
	assert.Empty(t, req.Validate())
}
