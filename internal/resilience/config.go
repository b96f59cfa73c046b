package resilience

import (
	"time"

	"go.uber.org/zap"
)

// FromCircuitConfig converts config values to a CircuitBreakerConfig that
// logs its transitions. A non-positive threshold returns nil: no breaker.
func FromCircuitConfig(name string, failureThreshold, resetTimeoutSecs int) *CircuitBreaker {
	if failureThreshold <= 0 {
		return nil
	}
	cfg := DefaultCircuitBreakerConfig()
	cfg.Name = name
	cfg.FailureThreshold = failureThreshold
	if resetTimeoutSecs > 0 {
		cfg.ResetTimeout = time.Duration(resetTimeoutSecs) * time.Second
	}
	cfg.OnStateChange = func(from, to CircuitState) {
		zap.L().Warn("circuit breaker state change",
			zap.String("service", name),
			zap.String("from", from.String()),
			zap.String("to", to.String()),
		)
	}
	return NewCircuitBreaker(cfg)
}
