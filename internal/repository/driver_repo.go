package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/swiftride/backend/internal/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

var (
	ErrDriverProfileExists    = errors.New("driver profile already exists")
	ErrDriverProfileNotFound  = errors.New("driver profile not found")
	ErrDuplicateNationalID    = errors.New("national ID already registered")
	ErrDuplicateLicenseNumber = errors.New("license number already registered")
	ErrDuplicateRCNumber      = errors.New("RC number already registered")
)

type mongoDriverProfile struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	UserID       primitive.ObjectID `bson:"user_id"`
	PersonalInfo struct {
		LanguagePreference string `bson:"language_preference"`
		City               string `bson:"city"`
		ProfilePicture     string `bson:"profile_picture,omitempty"`
		NationalID         string `bson:"national_id"`
	} `bson:"personal_info"`
	Documents struct {
		LicenseNumber string     `bson:"license_number"`
		LicenseExpiry *time.Time `bson:"license_expiry,omitempty"`
		RCNumber      string     `bson:"rc_number"`
		RCExpiry      *time.Time `bson:"rc_expiry,omitempty"`
	} `bson:"documents"`
	VehicleInfo struct {
		VehicleType   string `bson:"vehicle_type"`
		VehicleNumber string `bson:"vehicle_number,omitempty"`
		VehicleModel  string `bson:"vehicle_model,omitempty"`
		VehicleColor  string `bson:"vehicle_color,omitempty"`
	} `bson:"vehicle_info"`
	Status struct {
		IsOnline             bool `bson:"is_online"`
		IsVerified           bool `bson:"is_verified"`
		CompletionPercentage int  `bson:"completion_percentage"`
	} `bson:"status"`
	Stats struct {
		Rating     float64 `bson:"rating"`
		TotalRides int64   `bson:"total_rides"`
	} `bson:"stats"`
	Location struct {
		Type        string    `bson:"type"`
		Coordinates []float64 `bson:"coordinates"`
	} `bson:"location"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (m *mongoDriverProfile) toEntity() *entity.DriverProfile {
	return &entity.DriverProfile{
		ID:     m.ID,
		UserID: m.UserID,
		PersonalInfo: entity.PersonalInfo{
			LanguagePreference: m.PersonalInfo.LanguagePreference,
			City:               m.PersonalInfo.City,
			ProfilePicture:     m.PersonalInfo.ProfilePicture,
			NationalID:         m.PersonalInfo.NationalID,
		},
		Documents: entity.Documents{
			LicenseNumber: m.Documents.LicenseNumber,
			LicenseExpiry: m.Documents.LicenseExpiry,
			RCNumber:      m.Documents.RCNumber,
			RCExpiry:      m.Documents.RCExpiry,
		},
		VehicleInfo: entity.VehicleInfo{
			VehicleType:   m.VehicleInfo.VehicleType,
			VehicleNumber: m.VehicleInfo.VehicleNumber,
			VehicleModel:  m.VehicleInfo.VehicleModel,
			VehicleColor:  m.VehicleInfo.VehicleColor,
		},
		Status: entity.DriverStatus{
			IsOnline:             m.Status.IsOnline,
			IsVerified:           m.Status.IsVerified,
			CompletionPercentage: m.Status.CompletionPercentage,
		},
		Stats: entity.DriverStats{
			Rating:     m.Stats.Rating,
			TotalRides: m.Stats.TotalRides,
		},
		Location: entity.GeoPoint{
			Type:        m.Location.Type,
			Coordinates: m.Location.Coordinates,
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func driverFromEntity(e *entity.DriverProfile) *mongoDriverProfile {
	var m mongoDriverProfile
	m.ID = e.ID
	m.UserID = e.UserID
	m.PersonalInfo.LanguagePreference = e.PersonalInfo.LanguagePreference
	m.PersonalInfo.City = e.PersonalInfo.City
	m.PersonalInfo.ProfilePicture = e.PersonalInfo.ProfilePicture
	m.PersonalInfo.NationalID = e.PersonalInfo.NationalID
	m.Documents.LicenseNumber = e.Documents.LicenseNumber
	m.Documents.LicenseExpiry = e.Documents.LicenseExpiry
	m.Documents.RCNumber = e.Documents.RCNumber
	m.Documents.RCExpiry = e.Documents.RCExpiry
	m.VehicleInfo.VehicleType = e.VehicleInfo.VehicleType
	m.VehicleInfo.VehicleNumber = e.VehicleInfo.VehicleNumber
	m.VehicleInfo.VehicleModel = e.VehicleInfo.VehicleModel
	m.VehicleInfo.VehicleColor = e.VehicleInfo.VehicleColor
	m.Status.IsOnline = e.Status.IsOnline
	m.Status.IsVerified = e.Status.IsVerified
	m.Status.CompletionPercentage = e.Status.CompletionPercentage
	m.Stats.Rating = e.Stats.Rating
	m.Stats.TotalRides = e.Stats.TotalRides
	m.Location.Type = e.Location.Type
	m.Location.Coordinates = e.Location.Coordinates
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
	return &m
}

type DriverRepository struct {
	db     *mongo.Database
	logger *zap.Logger
}

func NewDriverRepository(db *mongo.Database, logger *zap.Logger) *DriverRepository {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Ensure indexes (idempotent operation)
	driverCollection := db.Collection("drivers")
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "personal_info.national_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "documents.license_number", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "documents.rc_number", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "location", Value: "2dsphere"}}},
	}
	_, err := driverCollection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Warn("Failed to create indexes for drivers collection (may already exist)", zap.Error(err))
	} else {
		logger.Info("Successfully ensured indexes for drivers collection")
	}

	return &DriverRepository{
		db:     db,
		logger: logger.Named("DriverRepository"),
	}
}

func mapDriverWriteError(err error) error {
	var writeException mongo.WriteException
	if !errors.As(err, &writeException) {
		return err
	}
	for _, writeError := range writeException.WriteErrors {
		if writeError.Code != 11000 {
			continue
		}
		switch {
		case strings.Contains(writeError.Message, "user_id_1"):
			return ErrDriverProfileExists
		case strings.Contains(writeError.Message, "national_id_1"):
			return ErrDuplicateNationalID
		case strings.Contains(writeError.Message, "license_number_1"):
			return ErrDuplicateLicenseNumber
		case strings.Contains(writeError.Message, "rc_number_1"):
			return ErrDuplicateRCNumber
		}
	}
	return err
}

func (r *DriverRepository) Create(ctx context.Context, profile *entity.DriverProfile) (*entity.DriverProfile, error) {
	r.logger.Info("Attempting to create driver profile in repository", zap.String("userID", profile.UserID.Hex()))

	dbProfile := driverFromEntity(profile)
	if dbProfile.ID.IsZero() {
		dbProfile.ID = primitive.NewObjectID()
	}
	now := time.Now()
	dbProfile.CreatedAt = now
	dbProfile.UpdatedAt = now

	_, err := r.db.Collection("drivers").InsertOne(ctx, dbProfile)
	if err != nil {
		mapped := mapDriverWriteError(err)
		if mapped != err {
			r.logger.Warn("Duplicate key during driver profile creation", zap.String("userID", profile.UserID.Hex()), zap.Error(err))
			return nil, mapped
		}
		r.logger.Error("Database error during driver profile creation", zap.String("userID", profile.UserID.Hex()), zap.Error(err))
		return nil, err
	}
	r.logger.Info("Driver profile created successfully in repository", zap.String("driverID", dbProfile.ID.Hex()))
	return dbProfile.toEntity(), nil
}

func (r *DriverRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*entity.DriverProfile, error) {
	r.logger.Debug("Attempting to get driver profile by userID", zap.String("userID", userID.Hex()))
	var dbProfile mongoDriverProfile
	err := r.db.Collection("drivers").FindOne(ctx, bson.M{"user_id": userID}).Decode(&dbProfile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			r.logger.Debug("Driver profile not found", zap.String("userID", userID.Hex()))
			return nil, ErrDriverProfileNotFound
		}
		r.logger.Error("Database error fetching driver profile", zap.String("userID", userID.Hex()), zap.Error(err))
		return nil, err
	}
	return dbProfile.toEntity(), nil
}

func (r *DriverRepository) ExistsForUser(ctx context.Context, userID primitive.ObjectID) (bool, error) {
	count, err := r.db.Collection("drivers").CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		r.logger.Error("Database error counting driver profiles", zap.String("userID", userID.Hex()), zap.Error(err))
		return false, err
	}
	return count > 0, nil
}

// Update replaces the mutable portion of a profile. The completion
// percentage is computed by the caller before this is invoked.
func (r *DriverRepository) Update(ctx context.Context, profile *entity.DriverProfile) error {
	r.logger.Info("Attempting to update driver profile in repository", zap.String("userID", profile.UserID.Hex()))
	dbProfile := driverFromEntity(profile)

	update := bson.M{
		"$set": bson.M{
			"personal_info.profile_picture": dbProfile.PersonalInfo.ProfilePicture,
			"documents.license_expiry":      dbProfile.Documents.LicenseExpiry,
			"documents.rc_expiry":           dbProfile.Documents.RCExpiry,
			"vehicle_info.vehicle_model":    dbProfile.VehicleInfo.VehicleModel,
			"vehicle_info.vehicle_color":    dbProfile.VehicleInfo.VehicleColor,
			"status.is_online":              dbProfile.Status.IsOnline,
			"status.completion_percentage":  dbProfile.Status.CompletionPercentage,
			"updated_at":                    time.Now(),
		},
	}

	result, err := r.db.Collection("drivers").UpdateOne(ctx, bson.M{"user_id": dbProfile.UserID}, update)
	if err != nil {
		r.logger.Error("Database error during driver profile update", zap.String("userID", profile.UserID.Hex()), zap.Error(err))
		return mapDriverWriteError(err)
	}
	if result.MatchedCount == 0 {
		r.logger.Warn("Driver profile not found during update attempt", zap.String("userID", profile.UserID.Hex()))
		return ErrDriverProfileNotFound
	}
	r.logger.Info("Driver profile updated successfully in repository", zap.String("userID", profile.UserID.Hex()))
	return nil
}
