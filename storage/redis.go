package storage

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"

	"github.com/go-redis/redis/v8"
)

// RedisStore keeps each document as a hash of {doc, rev}. Conditional puts go
// through WATCH so two concurrent read-modify-write cycles cannot both win.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string, out interface{}) (int64, error) {
	fields, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if len(fields) == 0 {
		return 0, ErrNotFound
	}

	rev, err := strconv.ParseInt(fields["rev"], 10, 64)
	if err != nil {
		return 0, err
	}

	if err := json.Unmarshal([]byte(fields["doc"]), out); err != nil {
		return 0, err
	}
	return rev, nil
}

func (s *RedisStore) Put(ctx context.Context, key string, doc interface{}, rev int64) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	return s.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.HGet(ctx, key, "rev").Result()
		exists := err != redis.Nil
		if err != nil && exists {
			return err
		}

		if rev != AnyRevision {
			if !exists {
				return ErrConflict
			}
			currentRev, err := strconv.ParseInt(current, 10, 64)
			if err != nil {
				return err
			}
			if currentRev != rev {
				return ErrConflict
			}
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, "doc", raw)
			pipe.HIncrBy(ctx, key, "rev", 1)
			return nil
		})
		if err == redis.TxFailedErr {
			return ErrConflict
		}
		return err
	}, key)
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	removed, err := s.client.Del(ctx, key).Result()
	if err != nil {
		return err
	}
	if removed == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context, prefix string) ([]string, error) {
	keys := make([]string, 0)

	iter := s.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}

	// SCAN order is undefined; callers rely on key order.
	sort.Strings(keys)
	return keys, nil
}
