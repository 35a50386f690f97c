package storage

import (
	"context"
	"errors"
	"time"

	"github.com/matst80/slask-table/pkg/common/jsoncompat"
	"github.com/redis/go-redis/v9"
)

type RedisSelectionStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisSelectionStore(addr, password string, db int, ttl time.Duration) *RedisSelectionStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisSelectionStore{client: rdb, prefix: "table", ttl: ttl}
}

// Ping checks the connection, used at startup.
func (s *RedisSelectionStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisSelectionStore) Load(ctx context.Context, sessionId string) ([]string, error) {
	data, err := s.client.Get(ctx, selectionKey(s.prefix, sessionId)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var ids []string
	if err := jsoncompat.Unmarshal(data, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *RedisSelectionStore) Save(ctx context.Context, sessionId string, ids []string) error {
	key := selectionKey(s.prefix, sessionId)
	if len(ids) == 0 {
		return s.client.Del(ctx, key).Err()
	}
	data, err := jsoncompat.Marshal(ids)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, s.ttl).Err()
}

func (s *RedisSelectionStore) Close() error {
	return s.client.Close()
}
