package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/swiftride/backend/internal/crypto"
	"github.com/swiftride/backend/internal/entity"
	"github.com/swiftride/backend/internal/repository"
	"github.com/swiftride/backend/internal/validation"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type MockDriverRepository struct{ mock.Mock }

func (m *MockDriverRepository) Create(ctx context.Context, profile *entity.DriverProfile) (*entity.DriverProfile, error) {
	args := m.Called(ctx, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.DriverProfile), args.Error(1)
}
func (m *MockDriverRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*entity.DriverProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.DriverProfile), args.Error(1)
}
func (m *MockDriverRepository) ExistsForUser(ctx context.Context, userID primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}
func (m *MockDriverRepository) Update(ctx context.Context, profile *entity.DriverProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

type MockUserRoleUpdater struct{ mock.Mock }

func (m *MockUserRoleUpdater) UpdateRole(ctx context.Context, userID primitive.ObjectID, role string) error {
	args := m.Called(ctx, userID, role)
	return args.Error(0)
}

type MockProfileCache struct{ mock.Mock }

func (m *MockProfileCache) Get(ctx context.Context, userID string) (*entity.DriverProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.DriverProfile), args.Error(1)
}
func (m *MockProfileCache) Set(ctx context.Context, userID string, profile *entity.DriverProfile) error {
	args := m.Called(ctx, userID, profile)
	return args.Error(0)
}
func (m *MockProfileCache) Invalidate(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockStatusPublisher struct{ mock.Mock }

func (m *MockStatusPublisher) PublishDriverStatus(ctx context.Context, event DriverStatusEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type driverFixture struct {
	repo      *MockDriverRepository
	users     *MockUserRoleUpdater
	cache     *MockProfileCache
	publisher *MockStatusPublisher
	encryptor *crypto.Encryptor
	usecase   *DriverUsecase
	user      *entity.User
}

func newDriverFixture(t *testing.T) *driverFixture {
	t.Helper()
	encryptor, err := crypto.NewEncryptor("0123456789abcdef0123456789abcdef")
	assert.NoError(t, err)

	repo := new(MockDriverRepository)
	users := new(MockUserRoleUpdater)
	cache := new(MockProfileCache)
	publisher := new(MockStatusPublisher)
	return &driverFixture{
		repo:      repo,
		users:     users,
		cache:     cache,
		publisher: publisher,
		encryptor: encryptor,
		usecase:   NewDriverUsecase(repo, users, cache, publisher, encryptor, zap.NewNop()),
		user: &entity.User{
			ID:    primitive.NewObjectID(),
			Name:  "Ravi",
			Email: "ravi@example.com",
			Phone: "9876543210",
			Role:  entity.RoleDriver,
		},
	}
}

// storedProfile is a persisted profile as the repository would return it:
// national ID encrypted, completion already computed.
func (f *driverFixture) storedProfile(t *testing.T) *entity.DriverProfile {
	t.Helper()
	encrypted, err := f.encryptor.Encrypt("123456789012")
	assert.NoError(t, err)

	p := requiredOnlyProfile()
	p.ID = primitive.NewObjectID()
	p.UserID = f.user.ID
	p.PersonalInfo.NationalID = encrypted
	p.Status.CompletionPercentage = 70
	p.Stats.Rating = 5.0
	return p
}

func TestCreateProfileEncryptsAndScores(t *testing.T) {
	f := newDriverFixture(t)
	f.user.Role = entity.RoleRider

	f.repo.On("ExistsForUser", mock.Anything, f.user.ID).Return(false, nil)
	f.repo.On("Create", mock.Anything, mock.MatchedBy(func(p *entity.DriverProfile) bool {
		return strings.Contains(p.PersonalInfo.NationalID, ":") && p.Status.CompletionPercentage == 70
	})).Return(f.storedProfile(t), nil)
	f.users.On("UpdateRole", mock.Anything, f.user.ID, entity.RoleDriver).Return(nil)

	req := &validation.CreateDriverProfileRequest{
		LanguagePreference: "HINDI",
		City:               "MUMBAI",
		NationalID:         "123456789012",
		LicenseNumber:      "MH1234567890",
		RCNumber:           "MH01AB1234",
		VehicleType:        "CAR",
	}
	view, err := f.usecase.CreateProfile(context.Background(), f.user, req)
	assert.NoError(t, err)
	assert.Equal(t, "XXXX XXXX 9012", view.PersonalInfo.NationalID)
	assert.Equal(t, 70, view.Status.CompletionPercentage)
	assert.Equal(t, f.user.ID.Hex(), view.User.ID)
	assert.Equal(t, "ravi@example.com", view.User.Email)
	f.repo.AssertExpectations(t)
	f.users.AssertExpectations(t)
}

func TestCreateProfileFailsWhenAlreadyExists(t *testing.T) {
	f := newDriverFixture(t)
	f.repo.On("ExistsForUser", mock.Anything, f.user.ID).Return(true, nil)

	req := &validation.CreateDriverProfileRequest{
		LanguagePreference: "HINDI",
		City:               "MUMBAI",
		NationalID:         "123456789012",
		LicenseNumber:      "MH1234567890",
		RCNumber:           "MH01AB1234",
		VehicleType:        "CAR",
	}
	_, err := f.usecase.CreateProfile(context.Background(), f.user, req)
	assert.ErrorIs(t, err, ErrProfileExists)
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// A rider whose profile insert succeeded but whose role write was lost gets
// the role repaired when they retry registration.
func TestCreateProfileRetryUpgradesRiderWithProfile(t *testing.T) {
	f := newDriverFixture(t)
	f.user.Role = entity.RoleRider
	f.repo.On("ExistsForUser", mock.Anything, f.user.ID).Return(true, nil)
	f.users.On("UpdateRole", mock.Anything, f.user.ID, entity.RoleDriver).Return(nil)

	req := &validation.CreateDriverProfileRequest{
		LanguagePreference: "HINDI",
		City:               "MUMBAI",
		NationalID:         "123456789012",
		LicenseNumber:      "MH1234567890",
		RCNumber:           "MH01AB1234",
		VehicleType:        "CAR",
	}
	_, err := f.usecase.CreateProfile(context.Background(), f.user, req)
	assert.ErrorIs(t, err, ErrProfileExists)
	f.users.AssertExpectations(t)
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGetProfileServesFromCache(t *testing.T) {
	f := newDriverFixture(t)
	f.cache.On("Get", mock.Anything, f.user.ID.Hex()).Return(f.storedProfile(t), nil)

	view, err := f.usecase.GetProfile(context.Background(), f.user)
	assert.NoError(t, err)
	assert.Equal(t, "XXXX XXXX 9012", view.PersonalInfo.NationalID)
	f.repo.AssertNotCalled(t, "GetByUserID", mock.Anything, mock.Anything)
}

func TestGetProfileFallsBackToStoreAndCaches(t *testing.T) {
	f := newDriverFixture(t)
	stored := f.storedProfile(t)
	f.cache.On("Get", mock.Anything, f.user.ID.Hex()).Return(nil, nil)
	f.repo.On("GetByUserID", mock.Anything, f.user.ID).Return(stored, nil)
	f.cache.On("Set", mock.Anything, f.user.ID.Hex(), stored).Return(nil)

	view, err := f.usecase.GetProfile(context.Background(), f.user)
	assert.NoError(t, err)
	assert.Equal(t, "MUMBAI", view.PersonalInfo.City)
	f.cache.AssertExpectations(t)
}

func TestGetProfileNotFound(t *testing.T) {
	f := newDriverFixture(t)
	f.cache.On("Get", mock.Anything, f.user.ID.Hex()).Return(nil, nil)
	f.repo.On("GetByUserID", mock.Anything, f.user.ID).Return(nil, repository.ErrDriverProfileNotFound)

	_, err := f.usecase.GetProfile(context.Background(), f.user)
	assert.ErrorIs(t, err, repository.ErrDriverProfileNotFound)
}

func TestUpdateProfileMergesAndRecomputes(t *testing.T) {
	f := newDriverFixture(t)
	stored := f.storedProfile(t)
	f.repo.On("GetByUserID", mock.Anything, f.user.ID).Return(stored, nil)
	f.repo.On("Update", mock.Anything, mock.MatchedBy(func(p *entity.DriverProfile) bool {
		return p.VehicleInfo.VehicleModel == "Honda City" && p.Status.CompletionPercentage == 80
	})).Return(nil)
	f.cache.On("Invalidate", mock.Anything, f.user.ID.Hex()).Return(nil)

	model := "Honda City"
	color := "White"
	view, err := f.usecase.UpdateProfile(context.Background(), f.user, &validation.UpdateDriverProfileRequest{
		VehicleModel: &model,
		VehicleColor: &color,
	})
	assert.NoError(t, err)
	assert.Equal(t, 80, view.Status.CompletionPercentage)
	assert.Equal(t, "Honda City", view.VehicleInfo.VehicleModel)
	f.repo.AssertExpectations(t)
	f.cache.AssertExpectations(t)
}

func TestUpdateStatusOnlineRequiresEligibility(t *testing.T) {
	f := newDriverFixture(t)
	stored := f.storedProfile(t)
	stored.Status.IsVerified = false
	f.repo.On("GetByUserID", mock.Anything, f.user.ID).Return(stored, nil)

	_, err := f.usecase.UpdateStatus(context.Background(), f.user, true)
	assert.ErrorIs(t, err, ErrNotEligible)
	f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateStatusOnlineWhenEligible(t *testing.T) {
	f := newDriverFixture(t)
	stored := f.storedProfile(t)
	stored.Status.IsVerified = true
	f.repo.On("GetByUserID", mock.Anything, f.user.ID).Return(stored, nil)
	f.repo.On("Update", mock.Anything, mock.AnythingOfType("*entity.DriverProfile")).Return(nil)
	f.cache.On("Invalidate", mock.Anything, f.user.ID.Hex()).Return(nil)
	f.publisher.On("PublishDriverStatus", mock.Anything, mock.MatchedBy(func(e DriverStatusEvent) bool {
		return e.UserID == f.user.ID.Hex() && e.IsOnline && e.City == "MUMBAI"
	})).Return(nil)

	view, err := f.usecase.UpdateStatus(context.Background(), f.user, true)
	assert.NoError(t, err)
	assert.True(t, view.Status.IsOnline)
	f.publisher.AssertExpectations(t)
}

func TestUpdateStatusOfflineAlwaysSucceeds(t *testing.T) {
	f := newDriverFixture(t)
	stored := f.storedProfile(t)
	stored.Status.IsVerified = false
	stored.Status.CompletionPercentage = 0
	f.repo.On("GetByUserID", mock.Anything, f.user.ID).Return(stored, nil)
	f.repo.On("Update", mock.Anything, mock.AnythingOfType("*entity.DriverProfile")).Return(nil)
	f.cache.On("Invalidate", mock.Anything, f.user.ID.Hex()).Return(nil)
	f.publisher.On("PublishDriverStatus", mock.Anything, mock.AnythingOfType("usecase.DriverStatusEvent")).Return(nil)

	view, err := f.usecase.UpdateStatus(context.Background(), f.user, false)
	assert.NoError(t, err)
	assert.False(t, view.Status.IsOnline)
}

func TestGetCompletionBreakdown(t *testing.T) {
	f := newDriverFixture(t)
	stored := f.storedProfile(t)
	stored.Status.IsVerified = true
	f.repo.On("GetByUserID", mock.Anything, f.user.ID).Return(stored, nil)

	breakdown, err := f.usecase.GetCompletion(context.Background(), f.user)
	assert.NoError(t, err)
	assert.Equal(t, 70, breakdown.CompletionPercentage)
	assert.True(t, breakdown.CanGoOnline)
	assert.True(t, breakdown.IsVerified)
	assert.Len(t, breakdown.MissingFields, 5)
}
