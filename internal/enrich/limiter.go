package enrich

import (
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"talentmesh-onboarding/internal/config"
	"talentmesh-onboarding/internal/logging"
)

// identityLimiter represents rate limiting for a single identity
type identityLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
	requests int64
	failures int64
	mu       sync.RWMutex
}

// CircuitBreaker represents a circuit breaker for an enrichment provider
type CircuitBreaker struct {
	maxFailures  int
	resetTimeout time.Duration
	failureCount int
	lastFailTime time.Time
	state        CircuitState
	mu           sync.RWMutex
}

// CircuitState represents the state of a circuit breaker
type CircuitState int

const (
	CircuitClosed CircuitState = iota
	CircuitOpen
	CircuitHalfOpen
)

// Limiter manages per-identity rate limiting, per-provider circuit
// breaking, and single-flight guarding of enrichment calls
type Limiter struct {
	config           *config.Config
	identityLimiters map[string]*identityLimiter
	circuitBreakers  map[string]*CircuitBreaker
	inFlight         map[string]bool
	mu               sync.RWMutex
	logger           logging.Logger
	cleanupTicker    *time.Ticker
	stopCleanup      chan bool
}

// NewLimiter creates a new enrichment limiter instance
func NewLimiter(cfg *config.Config) *Limiter {
	l := &Limiter{
		config:           cfg,
		identityLimiters: make(map[string]*identityLimiter),
		circuitBreakers:  make(map[string]*CircuitBreaker),
		inFlight:         make(map[string]bool),
		logger:           logging.GetGlobalLogger().WithField("component", "enrich_limiter"),
		cleanupTicker:    time.NewTicker(5 * time.Minute),
		stopCleanup:      make(chan bool),
	}

	// Start cleanup goroutine
	go l.cleanupRoutine()

	return l
}

// Allow checks if an enrichment call for the given identity against the
// given provider is allowed
func (l *Limiter) Allow(identity, provider string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	provider = strings.ToLower(provider)

	// Check circuit breaker first
	if !l.isCircuitClosed(provider) {
		l.logger.Debug("Request rejected by circuit breaker", map[string]interface{}{
			"provider": provider,
		})
		return false
	}

	limiter := l.getIdentityLimiter(identity)

	allowed := limiter.limiter.Allow()
	if allowed {
		limiter.mu.Lock()
		limiter.requests++
		limiter.lastSeen = time.Now()
		limiter.mu.Unlock()
	} else {
		l.logger.Debug("Request rejected by rate limiter", map[string]interface{}{
			"identity": identity,
		})
	}

	return allowed
}

// TryAcquire marks the identity as having an enrichment call in flight.
// It returns false when a call for the same identity is already running.
func (l *Limiter) TryAcquire(identity string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.inFlight[identity] {
		return false
	}
	l.inFlight[identity] = true
	return true
}

// Release clears the in-flight mark for the identity
func (l *Limiter) Release(identity string) {
	l.mu.Lock()
	delete(l.inFlight, identity)
	l.mu.Unlock()
}

// RecordSuccess records a successful call against the provider
func (l *Limiter) RecordSuccess(provider string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	provider = strings.ToLower(provider)

	if cb, exists := l.circuitBreakers[provider]; exists {
		cb.mu.Lock()
		if cb.state == CircuitHalfOpen {
			cb.state = CircuitClosed
			cb.failureCount = 0
			l.logger.Info("Circuit breaker closed after successful request", map[string]interface{}{
				"provider": provider,
			})
		}
		cb.mu.Unlock()
	}
}

// RecordFailure records a failed call against the provider
func (l *Limiter) RecordFailure(identity, provider string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	provider = strings.ToLower(provider)

	if limiter, exists := l.identityLimiters[identity]; exists {
		limiter.mu.Lock()
		limiter.failures++
		limiter.mu.Unlock()
	}

	cb := l.getCircuitBreaker(provider)
	cb.mu.Lock()
	cb.failureCount++
	cb.lastFailTime = time.Now()

	if cb.failureCount >= cb.maxFailures && cb.state == CircuitClosed {
		cb.state = CircuitOpen
		l.logger.Warn("Circuit breaker opened due to failures", map[string]interface{}{
			"provider": provider,
			"failures": cb.failureCount,
			"error":    err.Error(),
		})
	}
	cb.mu.Unlock()
}

// getIdentityLimiter gets or creates a rate limiter for an identity
func (l *Limiter) getIdentityLimiter(identity string) *identityLimiter {
	if limiter, exists := l.identityLimiters[identity]; exists {
		return limiter
	}

	// Rate limit: requests per minute converted to requests per second
	rps := rate.Limit(float64(l.config.Enrich.RateLimit) / 60.0)
	burst := l.config.Enrich.Burst
	if burst <= 0 {
		burst = 1
	}

	limiter := &identityLimiter{
		limiter:  rate.NewLimiter(rps, burst),
		lastSeen: time.Now(),
	}

	l.identityLimiters[identity] = limiter

	return limiter
}

// getCircuitBreaker gets or creates a circuit breaker for a provider
func (l *Limiter) getCircuitBreaker(provider string) *CircuitBreaker {
	if cb, exists := l.circuitBreakers[provider]; exists {
		return cb
	}

	cb := &CircuitBreaker{
		maxFailures:  l.config.Enrich.MaxFailures,
		resetTimeout: l.config.Enrich.ResetTimeout,
		state:        CircuitClosed,
	}

	l.circuitBreakers[provider] = cb

	l.logger.Info("Created new circuit breaker", map[string]interface{}{
		"provider": provider,
	})

	return cb
}

// isCircuitClosed checks if the circuit breaker allows requests
func (l *Limiter) isCircuitClosed(provider string) bool {
	cb := l.getCircuitBreaker(provider)

	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case CircuitClosed:
		return true
	case CircuitOpen:
		if time.Since(cb.lastFailTime) > cb.resetTimeout {
			cb.state = CircuitHalfOpen
			l.logger.Info("Circuit breaker transitioned to half-open", map[string]interface{}{
				"provider": provider,
			})
			return true
		}
		return false
	case CircuitHalfOpen:
		return true
	default:
		return false
	}
}

// GetProviderStats returns statistics for a specific provider
func (l *Limiter) GetProviderStats(provider string) map[string]interface{} {
	l.mu.RLock()
	defer l.mu.RUnlock()

	provider = strings.ToLower(provider)
	stats := make(map[string]interface{})

	if cb, exists := l.circuitBreakers[provider]; exists {
		cb.mu.RLock()
		stats["circuit_state"] = cb.state.String()
		stats["failure_count"] = cb.failureCount
		stats["max_failures"] = cb.maxFailures
		stats["last_fail_time"] = cb.lastFailTime
		cb.mu.RUnlock()
	}

	return stats
}

// cleanupRoutine periodically cleans up old unused limiters
func (l *Limiter) cleanupRoutine() {
	for {
		select {
		case <-l.cleanupTicker.C:
			l.cleanup()
		case <-l.stopCleanup:
			l.cleanupTicker.Stop()
			return
		}
	}
}

// cleanup removes limiters and circuit breakers that have been idle
func (l *Limiter) cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := time.Now().Add(-10 * time.Minute)
	removedCount := 0

	for identity, limiter := range l.identityLimiters {
		limiter.mu.RLock()
		lastSeen := limiter.lastSeen
		limiter.mu.RUnlock()

		if lastSeen.Before(cutoff) {
			delete(l.identityLimiters, identity)
			removedCount++
		}
	}

	for provider, cb := range l.circuitBreakers {
		cb.mu.RLock()
		lastFailTime := cb.lastFailTime
		state := cb.state
		cb.mu.RUnlock()

		if state == CircuitClosed && lastFailTime.Before(cutoff) {
			delete(l.circuitBreakers, provider)
		}
	}

	if removedCount > 0 {
		l.logger.Info("Cleaned up unused rate limiters", map[string]interface{}{
			"removed_count": removedCount,
		})
	}
}

// Stop stops the limiter and cleanup routine
func (l *Limiter) Stop() {
	l.stopCleanup <- true
}

// String returns string representation of CircuitState
func (cs CircuitState) String() string {
	switch cs {
	case CircuitClosed:
		return "closed"
	case CircuitOpen:
		return "open"
	case CircuitHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}
