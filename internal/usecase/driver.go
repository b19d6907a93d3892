package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/swiftride/backend/internal/crypto"
	"github.com/swiftride/backend/internal/entity"
	"github.com/swiftride/backend/internal/validation"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var (
	ErrProfileExists = errors.New("driver profile already exists")
	ErrNotEligible   = errors.New("profile must be at least 70% complete and verified to go online")
)

// DriverRepository is the persistence contract for driver profiles.
type DriverRepository interface {
	Create(ctx context.Context, profile *entity.DriverProfile) (*entity.DriverProfile, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*entity.DriverProfile, error)
	ExistsForUser(ctx context.Context, userID primitive.ObjectID) (bool, error)
	Update(ctx context.Context, profile *entity.DriverProfile) error
}

// UserRoleUpdater upgrades the account role once a driver profile exists,
// so the driver-only routes become reachable.
type UserRoleUpdater interface {
	UpdateRole(ctx context.Context, userID primitive.ObjectID, role string) error
}

// ProfileCache is a read-through cache for driver profiles. Get returns
// (nil, nil) on a miss.
type ProfileCache interface {
	Get(ctx context.Context, userID string) (*entity.DriverProfile, error)
	Set(ctx context.Context, userID string, profile *entity.DriverProfile) error
	Invalidate(ctx context.Context, userID string) error
}

// DriverStatusEvent announces an availability change to interested services.
type DriverStatusEvent struct {
	UserID   string    `json:"userId"`
	IsOnline bool      `json:"isOnline"`
	City     string    `json:"city"`
	At       time.Time `json:"at"`
}

// StatusPublisher emits driver status events. Publish failures must not
// fail the request.
type StatusPublisher interface {
	PublishDriverStatus(ctx context.Context, event DriverStatusEvent) error
}

// Response shapes. The national ID is always masked before it leaves the
// usecase, and the owning user is expanded into the view.

type ProfileOwner struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type PersonalInfoView struct {
	LanguagePreference string `json:"languagePreference"`
	City               string `json:"city"`
	ProfilePicture     string `json:"profilePicture,omitempty"`
	NationalID         string `json:"nationalId"` // Masked, e.g. "XXXX XXXX 9012"
}

type DocumentsView struct {
	LicenseNumber string     `json:"licenseNumber"`
	LicenseExpiry *time.Time `json:"licenseExpiry,omitempty"`
	RCNumber      string     `json:"rcNumber"`
	RCExpiry      *time.Time `json:"rcExpiry,omitempty"`
}

type VehicleInfoView struct {
	VehicleType   string `json:"vehicleType"`
	VehicleNumber string `json:"vehicleNumber,omitempty"`
	VehicleModel  string `json:"vehicleModel,omitempty"`
	VehicleColor  string `json:"vehicleColor,omitempty"`
}

type StatusView struct {
	IsOnline             bool `json:"isOnline"`
	IsVerified           bool `json:"isVerified"`
	CompletionPercentage int  `json:"completionPercentage"`
}

type StatsView struct {
	Rating     float64 `json:"rating"`
	TotalRides int64   `json:"totalRides"`
}

type DriverProfileView struct {
	ID           string           `json:"_id"`
	User         ProfileOwner     `json:"userId"`
	PersonalInfo PersonalInfoView `json:"personalInfo"`
	Documents    DocumentsView    `json:"documents"`
	VehicleInfo  VehicleInfoView  `json:"vehicleInfo"`
	Status       StatusView       `json:"status"`
	Stats        StatsView        `json:"stats"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

type CompletionBreakdown struct {
	CompletionPercentage int            `json:"completionPercentage"`
	MissingFields        []MissingField `json:"missingFields"`
	CanGoOnline          bool           `json:"canGoOnline"`
	IsVerified           bool           `json:"isVerified"`
}

type DriverUsecase struct {
	repo      DriverRepository
	users     UserRoleUpdater
	cache     ProfileCache
	publisher StatusPublisher
	encryptor *crypto.Encryptor
	logger    *zap.Logger
}

func NewDriverUsecase(repo DriverRepository, users UserRoleUpdater, cache ProfileCache, publisher StatusPublisher, encryptor *crypto.Encryptor, logger *zap.Logger) *DriverUsecase {
	return &DriverUsecase{
		repo:      repo,
		users:     users,
		cache:     cache,
		publisher: publisher,
		encryptor: encryptor,
		logger:    logger.Named("DriverUsecase"),
	}
}

// CreateProfile builds a driver profile for the authenticated user from the
// validated input: encrypt the national ID, compute the completion score,
// then persist. Fails with ErrProfileExists when the user already has one;
// duplicate national ID / license / RC surface as repository sentinels.
func (u *DriverUsecase) CreateProfile(ctx context.Context, user *entity.User, req *validation.CreateDriverProfileRequest) (*DriverProfileView, error) {
	exists, err := u.repo.ExistsForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		// A profile with a RIDER account means an earlier registration
		// persisted the profile but lost the role write. Repair it here so
		// retrying the registration unsticks the account.
		if user.Role != entity.RoleDriver {
			if err := u.users.UpdateRole(ctx, user.ID, entity.RoleDriver); err != nil {
				u.logger.Error("Failed to repair driver role", zap.String("userID", user.ID.Hex()), zap.Error(err))
			}
		}
		return nil, ErrProfileExists
	}

	profile := &entity.DriverProfile{
		UserID: user.ID,
		PersonalInfo: entity.PersonalInfo{
			LanguagePreference: req.LanguagePreference,
			City:               req.City,
			ProfilePicture:     req.ProfilePicture,
			NationalID:         req.NationalID,
		},
		Documents: entity.Documents{
			LicenseNumber: req.LicenseNumber,
			RCNumber:      req.RCNumber,
		},
		VehicleInfo: entity.VehicleInfo{
			VehicleType:   req.VehicleType,
			VehicleNumber: req.VehicleNumber,
			VehicleModel:  req.VehicleModel,
			VehicleColor:  req.VehicleColor,
		},
		Stats: entity.DriverStats{
			Rating:     5.0,
			TotalRides: 0,
		},
		Location: entity.GeoPoint{
			Type:        "Point",
			Coordinates: []float64{0, 0},
		},
	}
	if req.LicenseExpiry != "" {
		t, err := validation.ParseDate(req.LicenseExpiry)
		if err != nil {
			return nil, err
		}
		profile.Documents.LicenseExpiry = &t
	}
	if req.RCExpiry != "" {
		t, err := validation.ParseDate(req.RCExpiry)
		if err != nil {
			return nil, err
		}
		profile.Documents.RCExpiry = &t
	}

	// Compute-then-persist: the score and the encrypted ID are explicit
	// steps here, not persistence hooks.
	profile.Status.CompletionPercentage = CalculateCompletion(profile)
	encrypted, err := u.encryptor.Encrypt(profile.PersonalInfo.NationalID)
	if err != nil {
		u.logger.Error("Failed to encrypt national ID", zap.String("userID", user.ID.Hex()), zap.Error(err))
		return nil, err
	}
	profile.PersonalInfo.NationalID = encrypted

	created, err := u.repo.Create(ctx, profile)
	if err != nil {
		return nil, err
	}

	// The account keeps working as a rider until registration; from here on
	// the driver-only routes must be reachable.
	if user.Role != entity.RoleDriver {
		if err := u.users.UpdateRole(ctx, user.ID, entity.RoleDriver); err != nil {
			return nil, err
		}
	}

	u.logger.Info("Driver profile created",
		zap.String("userID", user.ID.Hex()),
		zap.Int("completion", created.Status.CompletionPercentage))
	return u.buildView(created, user), nil
}

// GetProfile returns the masked profile view, serving repeated reads from
// the cache.
func (u *DriverUsecase) GetProfile(ctx context.Context, user *entity.User) (*DriverProfileView, error) {
	if cached, err := u.cache.Get(ctx, user.ID.Hex()); err != nil {
		u.logger.Warn("Profile cache read failed", zap.String("userID", user.ID.Hex()), zap.Error(err))
	} else if cached != nil {
		return u.buildView(cached, user), nil
	}

	profile, err := u.repo.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if err := u.cache.Set(ctx, user.ID.Hex(), profile); err != nil {
		u.logger.Warn("Profile cache write failed", zap.String("userID", user.ID.Hex()), zap.Error(err))
	}
	return u.buildView(profile, user), nil
}

// UpdateProfile merges the allowed mutable fields, recomputes the
// completion score and persists.
func (u *DriverUsecase) UpdateProfile(ctx context.Context, user *entity.User, req *validation.UpdateDriverProfileRequest) (*DriverProfileView, error) {
	profile, err := u.repo.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	if req.VehicleModel != nil {
		profile.VehicleInfo.VehicleModel = *req.VehicleModel
	}
	if req.VehicleColor != nil {
		profile.VehicleInfo.VehicleColor = *req.VehicleColor
	}
	if req.ProfilePicture != nil {
		profile.PersonalInfo.ProfilePicture = *req.ProfilePicture
	}
	if req.LicenseExpiry != nil {
		t, err := validation.ParseDate(*req.LicenseExpiry)
		if err != nil {
			return nil, err
		}
		profile.Documents.LicenseExpiry = &t
	}
	if req.RCExpiry != nil {
		t, err := validation.ParseDate(*req.RCExpiry)
		if err != nil {
			return nil, err
		}
		profile.Documents.RCExpiry = &t
	}

	profile.Status.CompletionPercentage = CalculateCompletion(profile)
	if err := u.repo.Update(ctx, profile); err != nil {
		return nil, err
	}
	if err := u.cache.Invalidate(ctx, user.ID.Hex()); err != nil {
		u.logger.Warn("Profile cache invalidation failed", zap.String("userID", user.ID.Hex()), zap.Error(err))
	}
	u.logger.Info("Driver profile updated",
		zap.String("userID", user.ID.Hex()),
		zap.Int("completion", profile.Status.CompletionPercentage))
	return u.buildView(profile, user), nil
}

// UpdateStatus flips driver availability. Going online re-checks the
// eligibility gate; going offline always succeeds.
func (u *DriverUsecase) UpdateStatus(ctx context.Context, user *entity.User, isOnline bool) (*DriverProfileView, error) {
	profile, err := u.repo.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	if isOnline && !CanGoOnline(profile) {
		return nil, ErrNotEligible
	}

	profile.Status.IsOnline = isOnline
	if err := u.repo.Update(ctx, profile); err != nil {
		return nil, err
	}
	if err := u.cache.Invalidate(ctx, user.ID.Hex()); err != nil {
		u.logger.Warn("Profile cache invalidation failed", zap.String("userID", user.ID.Hex()), zap.Error(err))
	}

	event := DriverStatusEvent{
		UserID:   user.ID.Hex(),
		IsOnline: isOnline,
		City:     profile.PersonalInfo.City,
		At:       time.Now().UTC(),
	}
	if err := u.publisher.PublishDriverStatus(ctx, event); err != nil {
		u.logger.Warn("Failed to publish driver status event", zap.String("userID", user.ID.Hex()), zap.Error(err))
	}

	u.logger.Info("Driver status updated", zap.String("userID", user.ID.Hex()), zap.Bool("isOnline", isOnline))
	return u.buildView(profile, user), nil
}

// GetCompletion reports the completion percentage, the unfilled optional
// fields and the online-eligibility verdict.
func (u *DriverUsecase) GetCompletion(ctx context.Context, user *entity.User) (*CompletionBreakdown, error) {
	profile, err := u.repo.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &CompletionBreakdown{
		CompletionPercentage: profile.Status.CompletionPercentage,
		MissingFields:        MissingFields(profile),
		CanGoOnline:          CanGoOnline(profile),
		IsVerified:           profile.Status.IsVerified,
	}, nil
}

// buildView renders the client-facing profile with the national ID decrypted
// and masked, and the owner expanded.
func (u *DriverUsecase) buildView(profile *entity.DriverProfile, user *entity.User) *DriverProfileView {
	masked := "XXXX XXXX XXXX"
	if decrypted, err := u.encryptor.Decrypt(profile.PersonalInfo.NationalID); err == nil {
		masked = crypto.MaskNationalID(decrypted)
	} else {
		u.logger.Warn("Failed to decrypt national ID for masking", zap.String("userID", profile.UserID.Hex()), zap.Error(err))
	}

	return &DriverProfileView{
		ID: profile.ID.Hex(),
		User: ProfileOwner{
			ID:    user.ID.Hex(),
			Name:  user.Name,
			Email: user.Email,
			Phone: user.Phone,
		},
		PersonalInfo: PersonalInfoView{
			LanguagePreference: profile.PersonalInfo.LanguagePreference,
			City:               profile.PersonalInfo.City,
			ProfilePicture:     profile.PersonalInfo.ProfilePicture,
			NationalID:         masked,
		},
		Documents: DocumentsView{
			LicenseNumber: profile.Documents.LicenseNumber,
			LicenseExpiry: profile.Documents.LicenseExpiry,
			RCNumber:      profile.Documents.RCNumber,
			RCExpiry:      profile.Documents.RCExpiry,
		},
		VehicleInfo: VehicleInfoView{
			VehicleType:   profile.VehicleInfo.VehicleType,
			VehicleNumber: profile.VehicleInfo.VehicleNumber,
			VehicleModel:  profile.VehicleInfo.VehicleModel,
			VehicleColor:  profile.VehicleInfo.VehicleColor,
		},
		Status: StatusView{
			IsOnline:             profile.Status.IsOnline,
			IsVerified:           profile.Status.IsVerified,
			CompletionPercentage: profile.Status.CompletionPercentage,
		},
		Stats: StatsView{
			Rating:     profile.Stats.Rating,
			TotalRides: profile.Stats.TotalRides,
		},
		CreatedAt: profile.CreatedAt,
		UpdatedAt: profile.UpdatedAt,
	}
}
