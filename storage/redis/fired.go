// Package redisstore persists reminder firing state in redis so the poller
// survives restarts without re-sending reminders.
package redisstore

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/trezcool/arifa/core"
	"github.com/trezcool/arifa/core/reminder"
)

const keyPrefix = "fired:"

func Open(conf *core.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     conf.Redis.Address,
		Password: conf.Redis.Password,
		DB:       conf.Redis.DB,
	})
}

type FiredStore struct {
	rdb *redis.Client
	ttl time.Duration
}

var _ reminder.FiredStore = (*FiredStore)(nil)

// NewFiredStore records fired reminders for ttl; after that the deadline is
// long past and the keys may expire.
func NewFiredStore(rdb *redis.Client, ttl time.Duration) *FiredStore {
	return &FiredStore{rdb: rdb, ttl: ttl}
}

func (s *FiredStore) Fired(ctx context.Context, key string) (bool, error) {
	n, err := s.rdb.Exists(ctx, keyPrefix+key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *FiredStore) MarkFired(ctx context.Context, key string) error {
	return s.rdb.Set(ctx, keyPrefix+key, 1, s.ttl).Err()
}
