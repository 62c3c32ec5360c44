// Package resilience wraps BN persistence I/O with a circuit breaker so a
// struggling disk or cache does not cascade into every suggestion request
// blocking on the same slow path.
package resilience

import (
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/chronosuggest/engine/internal/bayes/application"
)

// ErrBreakerOpen is gobreaker's own open-state error, returned when the
// underlying repository has tripped the breaker and calls are failing fast.
var ErrBreakerOpen = gobreaker.ErrOpenState

// Config mirrors the teacher executor's circuit breaker knobs.
type Config struct {
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold uint32
}

// DefaultConfig matches the executor's DefaultExecutorConfig breaker settings.
func DefaultConfig() Config {
	return Config{
		MaxRequests:      3,
		Interval:         10 * time.Second,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
	}
}

// Repository is the persistence.FileRepository surface the breaker guards.
type Repository interface {
	Save(ub *application.UserBN) error
	Load(userID string) (*application.UserBN, error)
}

// BreakerRepository wraps a Repository with a single circuit breaker shared
// across Save and Load, since both ultimately hit the same backing store.
type BreakerRepository struct {
	next    Repository
	breaker *gobreaker.CircuitBreaker[any]
	logger  *slog.Logger
}

// NewBreakerRepository constructs the wrapper. logger may be nil, in which
// case slog.Default() is used.
func NewBreakerRepository(next Repository, cfg Config, logger *slog.Logger) *BreakerRepository {
	if logger == nil {
		logger = slog.Default()
	}
	settings := gobreaker.Settings{
		Name:        "bn-persistence",
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("bn persistence circuit breaker state changed",
				"name", name, "from", from.String(), "to", to.String())
		},
	}
	return &BreakerRepository{
		next:    next,
		breaker: gobreaker.NewCircuitBreaker[any](settings),
		logger:  logger,
	}
}

// Save guards next.Save behind the breaker.
func (b *BreakerRepository) Save(ub *application.UserBN) error {
	_, err := b.breaker.Execute(func() (any, error) {
		return nil, b.next.Save(ub)
	})
	return unwrap(err)
}

// Load guards next.Load behind the breaker.
func (b *BreakerRepository) Load(userID string) (*application.UserBN, error) {
	result, err := b.breaker.Execute(func() (any, error) {
		return b.next.Load(userID)
	})
	if err != nil {
		return nil, unwrap(err)
	}
	ub, _ := result.(*application.UserBN)
	return ub, nil
}

func unwrap(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) {
		return ErrBreakerOpen
	}
	return err
}
