package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"talentmesh-onboarding/internal/config"
	"talentmesh-onboarding/internal/logging"
	"talentmesh-onboarding/pkg/models"
)

// ErrUserNotFound is returned when no user exists for an external ID
var ErrUserNotFound = errors.New("user not found")

// Repository provides access to durable user records
type Repository struct {
	db     *gorm.DB
	logger logging.Logger
}

// NewRepository connects to Postgres and migrates the user schema
func NewRepository(cfg *config.Config) (*Repository, error) {
	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	return NewRepositoryWithDB(db)
}

// NewRepositoryWithDB wraps an existing gorm connection
func NewRepositoryWithDB(db *gorm.DB) (*Repository, error) {
	if err := db.AutoMigrate(&User{}); err != nil {
		return nil, fmt.Errorf("failed to migrate user records: %w", err)
	}

	return &Repository{
		db:     db,
		logger: logging.GetGlobalLogger(),
	}, nil
}

// DB exposes the underlying connection so other stores can share it
func (r *Repository) DB() *gorm.DB {
	return r.db
}

// UpsertFromWebhook creates or refreshes a user record from an identity
// provider webhook event
func (r *Repository) UpsertFromWebhook(ctx context.Context, data *models.WebhookUserData) (*User, error) {
	if data.ID == "" {
		return nil, fmt.Errorf("webhook user data missing id")
	}

	email := ""
	if len(data.EmailAddresses) > 0 {
		email = data.EmailAddresses[0].EmailAddress
	}

	role, explicit := roleFromMetadata(data.PublicMetadata)

	user := User{
		ExternalID: data.ID,
		Email:      email,
		FirstName:  data.FirstName,
		LastName:   data.LastName,
		Role:       role,
		AvatarURL:  data.ImageURL,
	}

	assign := map[string]interface{}{
		"email":      email,
		"first_name": data.FirstName,
		"last_name":  data.LastName,
	}
	if explicit {
		assign["role"] = role
	}

	result := r.db.WithContext(ctx).
		Where("external_id = ?", data.ID).
		Assign(assign).
		FirstOrCreate(&user)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", result.Error)
	}

	r.logger.Info("User record upserted from webhook", map[string]interface{}{
		"external_id": data.ID,
		"email":       email,
	})

	return &user, nil
}

// roleFromMetadata resolves the role carried in webhook public metadata.
// New users default to job_seeker; an explicit valid role overrides, and
// only an explicit role is reasserted on a refresh of an existing record.
func roleFromMetadata(metadata map[string]interface{}) (role string, explicit bool) {
	if raw, ok := metadata["role"]; ok {
		if s, ok := raw.(string); ok && (s == RoleJobSeeker || s == RoleTalentSeeker) {
			return s, true
		}
	}
	return RoleJobSeeker, false
}

// GetByExternalID fetches a user by the identity provider's ID
func (r *Repository) GetByExternalID(ctx context.Context, externalID string) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).Where("external_id = ?", externalID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// SetRole records the role the user picked at the start of onboarding
func (r *Repository) SetRole(ctx context.Context, externalID, role string) error {
	if role != RoleJobSeeker && role != RoleTalentSeeker {
		return fmt.Errorf("invalid role: %s", role)
	}

	result := r.db.WithContext(ctx).Model(&User{}).
		Where("external_id = ?", externalID).
		Update("role", role)
	if result.Error != nil {
		return fmt.Errorf("failed to set role: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// SetAvatarURL stores the generated avatar location on the user record
func (r *Repository) SetAvatarURL(ctx context.Context, externalID, avatarURL string) error {
	result := r.db.WithContext(ctx).Model(&User{}).
		Where("external_id = ?", externalID).
		Update("avatar_url", avatarURL)
	if result.Error != nil {
		return fmt.Errorf("failed to set avatar URL: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Finalize stores the assembled wizard profile on the user record and
// marks onboarding complete
func (r *Repository) Finalize(ctx context.Context, externalID string, profile interface{}) error {
	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	now := time.Now().UTC()
	result := r.db.WithContext(ctx).Model(&User{}).
		Where("external_id = ?", externalID).
		Updates(map[string]interface{}{
			"profile":      string(profileJSON),
			"onboarded_at": &now,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to finalize user profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	r.logger.Info("User onboarding finalized", map[string]interface{}{
		"external_id": externalID,
	})

	return nil
}

// HealthCheck verifies the database connection
func (r *Repository) HealthCheck(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the database connection
func (r *Repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
