package enrich

import (
	"errors"
	"testing"
	"time"

	"talentmesh-onboarding/internal/config"
)

func limiterConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Enrich.RateLimit = 60
	cfg.Enrich.Burst = 2
	cfg.Enrich.MaxFailures = 3
	cfg.Enrich.ResetTimeout = 50 * time.Millisecond
	return cfg
}

func TestLimiterBurstPerIdentity(t *testing.T) {
	l := NewLimiter(limiterConfig())
	defer l.Stop()

	if !l.Allow("user-1", "claude") {
		t.Fatal("first request should be allowed")
	}
	if !l.Allow("user-1", "claude") {
		t.Fatal("second request within burst should be allowed")
	}
	if l.Allow("user-1", "claude") {
		t.Error("third immediate request should exceed the burst")
	}

	// A different identity gets its own budget
	if !l.Allow("user-2", "claude") {
		t.Error("separate identity should not share the rate budget")
	}
}

func TestLimiterCircuitBreakerOpensAndRecovers(t *testing.T) {
	l := NewLimiter(limiterConfig())
	defer l.Stop()

	failure := errors.New("provider unavailable")
	for i := 0; i < 3; i++ {
		l.RecordFailure("user-1", "claude", failure)
	}

	if l.Allow("user-1", "claude") {
		t.Fatal("circuit should be open after repeated failures")
	}

	// After the reset timeout the circuit goes half-open and lets a
	// probe request through
	time.Sleep(60 * time.Millisecond)
	if !l.Allow("user-1", "claude") {
		t.Fatal("half-open circuit should allow a probe request")
	}

	l.RecordSuccess("claude")
	if !l.Allow("user-1", "claude") {
		t.Error("circuit should be closed after a successful probe")
	}
}

func TestLimiterSingleFlight(t *testing.T) {
	l := NewLimiter(limiterConfig())
	defer l.Stop()

	if !l.TryAcquire("user-1") {
		t.Fatal("first acquire should succeed")
	}
	if l.TryAcquire("user-1") {
		t.Error("second acquire for the same identity should fail")
	}
	if !l.TryAcquire("user-2") {
		t.Error("acquire for a different identity should succeed")
	}

	l.Release("user-1")
	if !l.TryAcquire("user-1") {
		t.Error("acquire should succeed after release")
	}
}
