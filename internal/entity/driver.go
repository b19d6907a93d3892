package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PersonalInfo groups driver identity fields. NationalID is stored encrypted
// and must never leave the service in plaintext.
type PersonalInfo struct {
	LanguagePreference string
	City               string
	ProfilePicture     string
	NationalID         string
}

// Documents holds license and vehicle registration data.
type Documents struct {
	LicenseNumber string
	LicenseExpiry *time.Time
	RCNumber      string
	RCExpiry      *time.Time
}

// VehicleInfo describes the driver's vehicle.
type VehicleInfo struct {
	VehicleType   string
	VehicleNumber string
	VehicleModel  string
	VehicleColor  string
}

// DriverStatus tracks availability and verification state.
type DriverStatus struct {
	IsOnline             bool
	IsVerified           bool
	CompletionPercentage int
}

// DriverStats accumulates ride history metrics.
type DriverStats struct {
	Rating     float64 // 1..5
	TotalRides int64
}

// GeoPoint is a GeoJSON Point, coordinates as [longitude, latitude].
type GeoPoint struct {
	Type        string
	Coordinates []float64
}

// DriverProfile is the driver onboarding record, one per user.
type DriverProfile struct {
	ID           primitive.ObjectID
	UserID       primitive.ObjectID
	PersonalInfo PersonalInfo
	Documents    Documents
	VehicleInfo  VehicleInfo
	Status       DriverStatus
	Stats        DriverStats
	Location     GeoPoint
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
