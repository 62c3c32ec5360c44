// Package app wires configuration, logging, persistence, caching,
// resilience, and the scheduling services into one Container that every CLI
// verb shares.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"

	bnapplication "github.com/chronosuggest/engine/internal/bayes/application"
	bncache "github.com/chronosuggest/engine/internal/bayes/infrastructure/cache"
	bnpersistence "github.com/chronosuggest/engine/internal/bayes/infrastructure/persistence"
	"github.com/chronosuggest/engine/internal/bayes/infrastructure/resilience"
	"github.com/chronosuggest/engine/internal/nlp"
	"github.com/chronosuggest/engine/internal/scheduling/application/services"
	schedulingdomain "github.com/chronosuggest/engine/internal/scheduling/domain"
	"github.com/chronosuggest/engine/internal/scheduling/infrastructure/eventbus"
	schedulingpersistence "github.com/chronosuggest/engine/internal/scheduling/infrastructure/persistence"
	"github.com/chronosuggest/engine/pkg/config"
	"github.com/chronosuggest/engine/pkg/logging"
)

// Container holds every shared dependency a CLI verb needs. Per-user
// pieces (the loaded UserBN, the Dispatcher built from it) are assembled
// per request via BuildDispatcher rather than held here, since a
// Dispatcher's PredictFunc is bound to one user's BN.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	busyDB *sql.DB

	Store      *BNStore
	BusySource schedulingdomain.BusyIntervalSource
	BusyRepo   *schedulingpersistence.SQLiteBusyRepository
	EventBus   eventbus.Publisher
}

// NewContainer loads configuration, builds the logger, and wires every
// backing store. Callers must call Close when done.
func NewContainer(ctx context.Context) (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("app: load config: %w", err)
	}
	logger := logging.New(cfg)

	store, err := newBNStore(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("app: build bn store: %w", err)
	}

	busyDB, err := sql.Open("sqlite", cfg.BusyStorePath)
	if err != nil {
		return nil, fmt.Errorf("app: open busy store: %w", err)
	}
	if err := schedulingpersistence.RunMigrations(ctx, busyDB); err != nil {
		busyDB.Close()
		return nil, fmt.Errorf("app: migrate busy store: %w", err)
	}
	busyRepo := schedulingpersistence.NewSQLiteBusyRepository(busyDB)

	var publisher eventbus.Publisher
	if cfg.EventBusEnabled() {
		rmq, err := eventbus.NewRabbitMQPublisher(cfg.RabbitMQURL, logger)
		if err != nil {
			logger.Warn("rabbitmq publisher unavailable, falling back to in-process", "error", err)
			publisher = eventbus.NewInProcessPublisher(logger)
		} else {
			publisher = rmq
		}
	} else {
		publisher = eventbus.NewInProcessPublisher(logger)
	}

	return &Container{
		Config:     cfg,
		Logger:     logger,
		busyDB:     busyDB,
		Store:      store,
		BusySource: busyRepo,
		BusyRepo:   busyRepo,
		EventBus:   publisher,
	}, nil
}

// Close releases every resource the container opened.
func (c *Container) Close() error {
	var firstErr error
	if c.busyDB != nil {
		if err := c.busyDB.Close(); err != nil {
			firstErr = err
		}
	}
	if c.EventBus != nil {
		if err := c.EventBus.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// BuildDispatcher assembles a Dispatcher (C9) bound to ub's own
// PredictSlotScore, using workdayStart/workdayEnd/daysOff from the same
// preferences ub was initialized with.
func (c *Container) BuildDispatcher(ub *bnapplication.UserBN, workdayStart, workdayEnd *nlp.ClockTime, daysOff map[int]bool) *services.Dispatcher {
	suggester := services.NewSlotSuggester(c.BusySource, ub.PredictSlotScore, workdayStart, workdayEnd, daysOff)
	return services.NewDispatcher(c.BusySource, suggester)
}

// BNStore is the fully-assembled persistence chain for UserBN: file-backed
// storage, guarded by a circuit breaker, optionally fronted by a Redis
// read-through cache.
type BNStore struct {
	fileRepo *bnpersistence.FileRepository
	breaker  *resilience.BreakerRepository
	cache    *bncache.RedisCache
}

func newBNStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*BNStore, error) {
	fileRepo, err := bnpersistence.NewFileRepository(cfg.BNDataDir)
	if err != nil {
		return nil, err
	}
	breaker := resilience.NewBreakerRepository(fileRepo, resilience.DefaultConfig(), logger)

	store := &BNStore{fileRepo: fileRepo, breaker: breaker}

	if cfg.CacheEnabled() {
		client, err := bncache.NewClientFromURL(ctx, cfg.RedisURL)
		if err != nil {
			logger.Warn("redis cache unavailable, continuing without it", "error", err)
			return store, nil
		}
		store.cache = bncache.NewRedisCache(client, breaker, breaker, bncache.DefaultTTL)
	}

	return store, nil
}

// Load fetches a user's UserBN, degrading through cache -> file repository ->
// "no stored BN" (bnpersistence.ErrNoStoredBN) exactly as C4 specifies.
func (s *BNStore) Load(ctx context.Context, userID string) (*bnapplication.UserBN, error) {
	if s.cache != nil {
		return s.cache.Load(ctx, userID)
	}
	return s.breaker.Load(userID)
}

// New constructs a fresh, untrained UserBN wired to this store's repository
// chain, so its first InitializeFromPreferences call persists correctly.
func (s *BNStore) New(userID string) *bnapplication.UserBN {
	return bnapplication.NewUserBN(userID, s.breaker)
}

// Invalidate evicts userID's cached snapshot, if a cache is configured.
func (s *BNStore) Invalidate(ctx context.Context, userID string) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Invalidate(ctx, userID)
}
