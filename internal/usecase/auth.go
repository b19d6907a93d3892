package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/swiftride/backend/internal/auth"
	"github.com/swiftride/backend/internal/entity"
	"github.com/swiftride/backend/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account is deactivated, please contact support")
)

// UserRepository is the persistence contract the auth flow needs.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) (primitive.ObjectID, error)
	GetByID(ctx context.Context, userID primitive.ObjectID) (*entity.User, error)
	GetByIdentifier(ctx context.Context, identifier string) (*entity.User, error)
}

// UserView is the safe user shape returned to clients. The password hash
// never appears here.
type UserView struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewUserView(u *entity.User) *UserView {
	return &UserView{
		ID:        u.ID.Hex(),
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

type AuthUsecase struct {
	repo   UserRepository
	tokens *auth.TokenManager
	logger *zap.Logger
}

func NewAuthUsecase(repo UserRepository, tokens *auth.TokenManager, logger *zap.Logger) *AuthUsecase {
	return &AuthUsecase{
		repo:   repo,
		tokens: tokens,
		logger: logger.Named("AuthUsecase"),
	}
}

// Signup creates a RIDER account and returns it with a signed token.
// Duplicate email/phone surface as the repository sentinel errors.
func (u *AuthUsecase) Signup(ctx context.Context, name, email, phone, password string) (*UserView, string, error) {
	user := &entity.User{
		Name:     name,
		Email:    email,
		Phone:    phone,
		Password: password, // Hashed in the repository
		Role:     entity.RoleRider,
		IsActive: true,
	}

	userID, err := u.repo.Create(ctx, user)
	if err != nil {
		return nil, "", err
	}

	created, err := u.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	token, err := u.tokens.Issue(created.ID.Hex(), created.Role)
	if err != nil {
		return nil, "", err
	}
	u.logger.Info("User signed up", zap.String("userID", created.ID.Hex()))
	return NewUserView(created), token, nil
}

// Login authenticates by email or phone. Unknown identifier and wrong
// password both return ErrInvalidCredentials so callers cannot probe for
// registered accounts; logs carry the distinction.
func (u *AuthUsecase) Login(ctx context.Context, identifier, password string) (*UserView, string, error) {
	user, err := u.repo.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			u.logger.Warn("Login attempt for unknown identifier")
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		u.logger.Warn("Login attempt with wrong password", zap.String("userID", user.ID.Hex()))
		return nil, "", ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, "", ErrAccountInactive
	}

	token, err := u.tokens.Issue(user.ID.Hex(), user.Role)
	if err != nil {
		return nil, "", err
	}
	u.logger.Info("User logged in", zap.String("userID", user.ID.Hex()))
	return NewUserView(user), token, nil
}
