// Copyright (c) 2026 Heroes. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the draft as a JSON string under [StorageKey], without expiry.
type RedisStore struct {
	client redis.Cmdable
}

// NewRedisStore returns a store backed by client.
func NewRedisStore(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client}
}

func (store *RedisStore) Load(ctx context.Context) (Draft, error) {
	data, err := store.client.Get(ctx, StorageKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return Draft{}, nil
	}
	if err != nil {
		return Draft{}, fmt.Errorf("draft: redis get: %w", err)
	}

	var draft Draft
	if err := json.Unmarshal(data, &draft); err != nil {
		return Draft{}, fmt.Errorf("draft: decode redis value: %w", err)
	}
	return draft, nil
}

func (store *RedisStore) Save(ctx context.Context, draft Draft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("draft: encode: %w", err)
	}

	if err := store.client.Set(ctx, StorageKey, data, 0).Err(); err != nil {
		return fmt.Errorf("draft: redis set: %w", err)
	}
	return nil
}

func (store *RedisStore) Clear(ctx context.Context) error {
	if err := store.client.Del(ctx, StorageKey).Err(); err != nil {
		return fmt.Errorf("draft: redis del: %w", err)
	}
	return nil
}
