package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"business-canvas/internal/models"
)

const (
	defaultKeyPrefix = "canvas:"
	scanBatchSize    = 100
	maxUpdateRetries = 5
)

// RedisStore shares canvases between service instances. Entries are still
// volatile: they expire after ttl when ttl is positive.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

func NewRedisStore(client redis.UniversalClient, prefix string, ttl time.Duration) *RedisStore {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	if ttl < 0 {
		ttl = 0
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) key(id string) string {
	return s.prefix + id
}

func (s *RedisStore) Create(ctx context.Context, c *models.BusinessCanvas) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode canvas %s: %w", c.ID, err)
	}

	ok, err := s.client.SetNX(ctx, s.key(c.ID), data, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("redis create %s: %w", c.ID, err)
	}
	if !ok {
		return ErrAlreadyExists
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*models.BusinessCanvas, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", id, err)
	}
	return decodeCanvas(data)
}

// List scans the prefix; keys that expire between SCAN and MGET are skipped.
func (s *RedisStore) List(ctx context.Context) ([]*models.BusinessCanvas, error) {
	keys, err := s.scanKeys(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*models.BusinessCanvas, 0, len(keys))
	for start := 0; start < len(keys); start += scanBatchSize {
		end := min(start+scanBatchSize, len(keys))
		values, err := s.client.MGet(ctx, keys[start:end]...).Result()
		if err != nil {
			return nil, fmt.Errorf("redis mget: %w", err)
		}
		for _, v := range values {
			raw, ok := v.(string)
			if !ok {
				continue
			}
			c, err := decodeCanvas([]byte(raw))
			if err != nil {
				return nil, err
			}
			out = append(out, c)
		}
	}
	return out, nil
}

// Update runs fn inside WATCH/MULTI and retries when another writer touched the key.
func (s *RedisStore) Update(ctx context.Context, id string, fn UpdateFunc) (*models.BusinessCanvas, error) {
	key := s.key(id)
	var updated *models.BusinessCanvas

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("redis get %s: %w", id, err)
		}

		c, err := decodeCanvas(data)
		if err != nil {
			return err
		}
		if err := fn(c); err != nil {
			return err
		}
		c.ID = id

		encoded, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("encode canvas %s: %w", id, err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, encoded, s.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		updated = c
		return nil
	}

	for i := 0; i < maxUpdateRetries; i++ {
		err := s.client.Watch(ctx, txf, key)
		if err == nil {
			return updated, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("redis update %s: too much contention", id)
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	n, err := s.client.Del(ctx, s.key(id)).Result()
	if err != nil {
		return fmt.Errorf("redis delete %s: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *RedisStore) Len(ctx context.Context) (int, error) {
	keys, err := s.scanKeys(ctx)
	if err != nil {
		return 0, err
	}
	return len(keys), nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (s *RedisStore) scanKeys(ctx context.Context) ([]string, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, s.prefix+"*", scanBatchSize).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan: %w", err)
	}
	return keys, nil
}

func decodeCanvas(data []byte) (*models.BusinessCanvas, error) {
	var c models.BusinessCanvas
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode canvas: %w", err)
	}
	return &c, nil
}
