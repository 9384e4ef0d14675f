package redisstore

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const chatBusyPrefix = "chat_busy:"

// Store backs the advisory one-dispatch-in-flight gate. The flag is
// cooperative UI gating, not a lock: a missing or expired flag never blocks
// correctness, it only lets a second submission through.
type Store struct {
	rdb *redis.Client
}

func New(addr, password string, db int) *Store {
	return &Store{
		rdb: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

func (s *Store) Close() error {
	return s.rdb.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// AcquireChatBusy marks a chat dispatch in flight for the session. Returns
// false if one is already marked. The TTL guards against a crashed handler
// leaving the flag behind forever.
func (s *Store) AcquireChatBusy(ctx context.Context, sessionID string, ttl time.Duration) (bool, error) {
	return s.rdb.SetNX(ctx, chatBusyPrefix+sessionID, 1, ttl).Result()
}

func (s *Store) ReleaseChatBusy(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, chatBusyPrefix+sessionID).Err()
}

func (s *Store) ChatBusy(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.rdb.Exists(ctx, chatBusyPrefix+sessionID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
