package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleRider  = "RIDER"
	RoleDriver = "DRIVER"
)

// User holds account and auth info. Driver-specific data lives in DriverProfile.
type User struct {
	ID        primitive.ObjectID
	Name      string
	Email     string
	Phone     string
	Password  string // Hashed, never returned to clients
	Role      string // "RIDER" or "DRIVER"
	IsActive  bool   // Soft deactivation flag
	CreatedAt time.Time
	UpdatedAt time.Time
}
