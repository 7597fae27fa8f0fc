package infrastructure

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"lotto/config"
	"lotto/database"
	"lotto/domain/interfaces"
	"lotto/repository"

	log "github.com/sirupsen/logrus"
)

// Store is an opened ticket repository together with the connections behind it
type Store struct {
	Tickets interfaces.TicketRepository
	Backend string

	health  func(ctx context.Context) error
	closers []func()
}

// OpenStore connects the backend selected by cfg.StoreBackend.
// The postgres backend applies pending migrations before use.
func OpenStore(ctx context.Context, cfg *config.Config) (*Store, error) {
	store := &Store{Backend: cfg.StoreBackend}

	switch cfg.StoreBackend {
	case config.StoreBackendFile:
		path := cfg.HistoryFile
		store.Tickets = repository.NewFileTicketRepository(path)
		store.health = func(context.Context) error {
			_, err := os.Stat(filepath.Dir(path))
			return err
		}

	case config.StoreBackendPostgres:
		url := cfg.GetDatabaseURL()
		if err := database.MigrateUp(url); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		db, err := database.NewConnection(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		store.Tickets = repository.NewTicketRepository(db)
		store.health = func(ctx context.Context) error { return db.Ping(ctx) }
		store.closers = append(store.closers, db.Close)

	case config.StoreBackendRedis:
		client, err := repository.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		store.Tickets = repository.NewRedisTicketRepository(client, cfg.RedisKey)
		store.health = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		store.closers = append(store.closers, func() {
			if err := client.Close(); err != nil {
				log.WithError(err).Warn("Failed to close redis client")
			}
		})

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}

	log.WithField("backend", store.Backend).Info("Ticket store opened")
	return store, nil
}

// Health reports whether the backend is reachable
func (s *Store) Health(ctx context.Context) error {
	if s.health == nil {
		return nil
	}
	return s.health(ctx)
}

// Close releases the backend connections in reverse order
func (s *Store) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
}
