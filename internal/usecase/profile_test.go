package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/swiftride/backend/internal/entity"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestWelcomeReturnsPersonalizedMessage(t *testing.T) {
	uc := NewProfileUsecase("SwiftRide")
	caller := &entity.User{
		ID:    primitive.NewObjectID(),
		Name:  "Asha",
		Email: "asha@example.com",
		Role:  entity.RoleRider,
	}

	data, message, err := uc.Welcome(caller, caller.ID.Hex())
	assert.NoError(t, err)
	assert.Equal(t, "Welcome to your profile, Asha!", message)
	assert.Equal(t, caller.ID.Hex(), data.UserID)
	assert.Contains(t, data.WelcomeMessage, "Asha")
	assert.Contains(t, data.WelcomeMessage, "SwiftRide")
}

func TestWelcomeForbidsOtherProfiles(t *testing.T) {
	uc := NewProfileUsecase("SwiftRide")
	caller := &entity.User{ID: primitive.NewObjectID(), Name: "Asha"}

	_, _, err := uc.Welcome(caller, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrForbiddenProfile)
}
