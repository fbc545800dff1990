// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/classrank/classrank/internal/adapters/repository"
	"github.com/classrank/classrank/internal/domain/record"
	"github.com/classrank/classrank/internal/roster"
	"github.com/classrank/classrank/pkg/logger"
)

// Default service configuration constants.
const (
	defaultMaxLeaderboardLimit = 100
)

// Service owns the current finalized record store and serves reads from it.
// Roster reloads swap the store wholesale through an atomic pointer, so the
// append-only-then-finalize lifecycle holds for each store instance.
type Service struct {
	mu sync.Mutex

	// Current finalized store.
	store atomic.Pointer[repository.RecordStore]

	// Configuration
	rosterPath          string
	watchRoster         bool
	maxLeaderboardLimit int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithRosterPath sets the roster file to load and serve.
func WithRosterPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.rosterPath = path
		}
	}
}

// WithWatchRoster enables or disables roster file watching.
func WithWatchRoster(watch bool) Option {
	return func(s *Service) {
		s.watchRoster = watch
	}
}

// WithMaxLeaderboardLimit caps leaderboard query sizes.
func WithMaxLeaderboardLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.maxLeaderboardLimit = limit
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		rosterPath:          "roster.yaml",
		watchRoster:         true,
		maxLeaderboardLimit: defaultMaxLeaderboardLimit,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the roster, builds the initial finalized store, and begins
// watching the roster file when enabled. The watch goroutine stops when
// ctx is cancelled.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	r, err := roster.Load(s.rosterPath)
	if err != nil {
		return fmt.Errorf("load roster: %w", err)
	}
	store, err := roster.Build(ctx, r)
	if err != nil {
		return fmt.Errorf("build store: %w", err)
	}
	s.store.Store(store)

	s.logger.Info(ctx, "class registry ready",
		logger.String("roster", s.rosterPath),
		logger.String("class", r.Class),
		logger.Int("students", store.Size(ctx)),
		logger.Int("subjects", store.CategoryCount()),
	)

	if s.watchRoster {
		go func() {
			if err := roster.Watch(ctx, s.rosterPath, s.swap); err != nil {
				s.logger.Error(ctx, "roster watch stopped", logger.Error(err))
			}
		}()
	}

	s.started = true
	return nil
}

// swap publishes a freshly built store.
func (s *Service) swap(store *repository.RecordStore) {
	s.store.Store(store)
}

// Stop marks the service stopped. The watch goroutine is bound to the
// Start context and exits with it.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "class registry stopped")
}

// current returns the active store.
func (s *Service) current() *repository.RecordStore {
	return s.store.Load()
}

// Report returns the record for key plus the class size, read from the
// same store snapshot so the pair is consistent across roster reloads.
func (s *Service) Report(ctx context.Context, key string) (record.Record, int, error) {
	store := s.current()
	rec, err := store.Lookup(ctx, key)
	if err != nil {
		return record.Record{}, 0, err
	}
	return rec, store.Size(ctx), nil
}

// TopN returns the top n ranked records.
func (s *Service) TopN(ctx context.Context, n int) ([]record.Record, error) {
	return s.current().TopN(ctx, n)
}

// ClassSize returns the number of records in the active store.
func (s *Service) ClassSize(ctx context.Context) int {
	return s.current().Size(ctx)
}

// MaxLeaderboardLimit returns the configured leaderboard cap.
func (s *Service) MaxLeaderboardLimit() int {
	return s.maxLeaderboardLimit
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     started,
		"rosterPath":  s.rosterPath,
		"watchRoster": s.watchRoster,
	}

	if store := s.current(); store != nil {
		stats["students"] = store.Size(ctx)
		stats["subjects"] = store.CategoryCount()
		stats["finalized"] = store.Finalized()
	}

	return stats
}
