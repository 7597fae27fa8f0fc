package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lotto/domain/interfaces"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const redisMaxRetries = 5

// redisStore keeps the history document under one Redis key
type redisStore struct {
	client *redis.Client
	key    string
}

// NewRedisClient connects to Redis and verifies the connection
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}
	return client, nil
}

// NewRedisTicketRepository creates a ticket repository backed by a Redis key
func NewRedisTicketRepository(client *redis.Client, key string) interfaces.TicketRepository {
	return newBlobTicketRepository(&redisStore{client: client, key: key})
}

func (s *redisStore) name() string {
	return "redis key " + s.key
}

func (s *redisStore) read(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return data, err
}

// modify runs fn inside WATCH/MULTI so concurrent writers retry instead of losing updates
func (s *redisStore) modify(ctx context.Context, fn func([]byte) ([]byte, error)) error {
	txf := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, s.key).Bytes()
		if err != nil && err != redis.Nil {
			return err
		}
		next, err := fn(current)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, s.key, next, 0)
			return nil
		})
		return err
	}

	for attempt := 1; attempt <= redisMaxRetries; attempt++ {
		err := s.client.Watch(ctx, txf, s.key)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
		log.WithFields(log.Fields{
			"key":     s.key,
			"attempt": attempt,
		}).Debug("History changed during write, retrying")
	}
	return fmt.Errorf("failed to update %s after %d attempts", s.key, redisMaxRetries)
}
