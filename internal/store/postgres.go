package store

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
)

// StepRecord is the durable row for a single wizard step payload
type StepRecord struct {
	ID        uint   `gorm:"primaryKey"`
	Identity  string `gorm:"index:idx_step_identity_key,unique;size:255;not null"`
	StepKey   string `gorm:"index:idx_step_identity_key,unique;size:64;not null"`
	Payload   string `gorm:"type:jsonb;not null"`
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName sets the table name for step records
func (StepRecord) TableName() string {
	return "wizard_steps"
}

// PostgresStore keeps step payloads in Postgres for deployments where
// entries must survive a cache restart
type PostgresStore struct {
	db     *gorm.DB
	logger logging.Logger
}

// NewPostgresStore creates a new Postgres-backed step store
func NewPostgresStore(cfg *config.Config) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if err := db.AutoMigrate(&StepRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate step records: %w", err)
	}

	return &PostgresStore{
		db:     db,
		logger: logging.GetGlobalLogger(),
	}, nil
}

// NewPostgresStoreWithDB wraps an existing gorm connection
func NewPostgresStoreWithDB(db *gorm.DB) (*PostgresStore, error) {
	if err := db.AutoMigrate(&StepRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate step records: %w", err)
	}
	return &PostgresStore{
		db:     db,
		logger: logging.GetGlobalLogger(),
	}, nil
}

// Set stores a step payload, replacing any previous entry for the same
// identity and step key
func (s *PostgresStore) Set(ctx context.Context, identity, stepKey string, payload []byte, ttl time.Duration) error {
	if !json.Valid(payload) {
		return fmt.Errorf("refusing to store invalid JSON payload for step %s", stepKey)
	}

	record := StepRecord{
		Identity:  identity,
		StepKey:   stepKey,
		Payload:   string(payload),
		ExpiresAt: time.Now().Add(ttl),
	}

	result := s.db.WithContext(ctx).
		Where("identity = ? AND step_key = ?", identity, stepKey).
		Assign(map[string]interface{}{
			"payload":    record.Payload,
			"expires_at": record.ExpiresAt,
		}).
		FirstOrCreate(&record)

	if result.Error != nil {
		return fmt.Errorf("failed to store step payload: %w", result.Error)
	}
	return nil
}

// Get retrieves a step payload. Expired or corrupt entries are removed
// and reported as missing.
func (s *PostgresStore) Get(ctx context.Context, identity, stepKey string) ([]byte, error) {
	var record StepRecord
	err := s.db.WithContext(ctx).
		Where("identity = ? AND step_key = ?", identity, stepKey).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get step payload: %w", err)
	}

	if !record.ExpiresAt.IsZero() && time.Now().After(record.ExpiresAt) {
		if delErr := s.Delete(ctx, identity, stepKey); delErr != nil {
			s.logger.Warn("Failed to delete expired step payload", map[string]interface{}{
				"identity": identity,
				"step_key": stepKey,
				"error":    delErr.Error(),
			})
		}
		return nil, ErrNotFound
	}

	if !json.Valid([]byte(record.Payload)) {
		s.logger.Warn("Discarding corrupt step payload", map[string]interface{}{
			"identity": identity,
			"step_key": stepKey,
		})
		if delErr := s.Delete(ctx, identity, stepKey); delErr != nil {
			s.logger.Error("Failed to delete corrupt step payload", map[string]interface{}{
				"identity": identity,
				"step_key": stepKey,
				"error":    delErr.Error(),
			})
		}
		return nil, ErrNotFound
	}

	return []byte(record.Payload), nil
}

// Delete removes a step payload
func (s *PostgresStore) Delete(ctx context.Context, identity, stepKey string) error {
	return s.db.WithContext(ctx).
		Where("identity = ? AND step_key = ?", identity, stepKey).
		Delete(&StepRecord{}).Error
}

// HealthCheck verifies the database connection
func (s *PostgresStore) HealthCheck(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the database connection
func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
