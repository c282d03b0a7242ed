package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"talentmesh-onboarding/internal/config"
)

// ErrNotFound is returned when no payload exists for an identity and step key
var ErrNotFound = errors.New("step payload not found")

// StepStore persists wizard step payloads keyed by identity and step key.
// Payloads are opaque JSON blobs owned by the wizard package.
type StepStore interface {
	Set(ctx context.Context, identity, stepKey string, payload []byte, ttl time.Duration) error
	Get(ctx context.Context, identity, stepKey string) ([]byte, error)
	Delete(ctx context.Context, identity, stepKey string) error
	HealthCheck(ctx context.Context) error
	Close() error
}

// NewStepStore creates a step store backend based on configuration
func NewStepStore(cfg *config.Config) (StepStore, error) {
	switch cfg.Wizard.Store {
	case "redis":
		return NewRedisStore(cfg), nil
	case "postgres":
		return NewPostgresStore(cfg)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported wizard store: %s", cfg.Wizard.Store)
	}
}
