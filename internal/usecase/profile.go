package usecase

import (
	"errors"
	"fmt"

	"github.com/swiftride/backend/internal/entity"
)

var ErrForbiddenProfile = errors.New("you can only access your own profile")

// WelcomeData is the personalized payload for the profile welcome endpoint.
type WelcomeData struct {
	UserID         string `json:"userId"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	WelcomeMessage string `json:"welcomeMessage"`
}

type ProfileUsecase struct {
	authorName string
}

func NewProfileUsecase(authorName string) *ProfileUsecase {
	return &ProfileUsecase{authorName: authorName}
}

// Welcome returns the greeting for the caller's own profile. Requesting any
// other user's profile is forbidden.
func (u *ProfileUsecase) Welcome(caller *entity.User, userID string) (*WelcomeData, string, error) {
	if caller.ID.Hex() != userID {
		return nil, "", ErrForbiddenProfile
	}

	data := &WelcomeData{
		UserID:         caller.ID.Hex(),
		Name:           caller.Name,
		Email:          caller.Email,
		Role:           caller.Role,
		WelcomeMessage: fmt.Sprintf("Hello %s, welcome to your %s profile!", caller.Name, u.authorName),
	}
	message := fmt.Sprintf("Welcome to your profile, %s!", caller.Name)
	return data, message, nil
}
