// Package circuitbreaker wraps sony/gobreaker with shared defaults.
package circuitbreaker

import (
	"errors"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/stablearb/arbgate/internal/apperror"
)

// DefaultConfig returns breaker settings shared by all upstream calls:
// trip after 5 consecutive failures, probe again after 30s.
func DefaultConfig(name string) gobreaker.Settings {
	return gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}
}

// New creates a typed circuit breaker from the given settings.
func New[T any](cfg gobreaker.Settings) *gobreaker.CircuitBreaker[T] {
	return gobreaker.NewCircuitBreaker[T](cfg)
}

// MapError converts breaker sentinel errors into app errors so callers
// can distinguish an open circuit from an upstream failure.
func MapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gobreaker.ErrOpenState):
		return apperror.New(apperror.CodeCircuitOpen, apperror.WithCause(err))
	case errors.Is(err, gobreaker.ErrTooManyRequests):
		return apperror.New(apperror.CodeCircuitHalfOpen, apperror.WithCause(err))
	default:
		return err
	}
}
