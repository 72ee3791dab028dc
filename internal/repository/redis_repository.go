package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Babyaovo/Yaouo-sub000/internal/model"
)

type redisStateStore struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisStateStore keeps the state blob under "<prefix>:app_state" without expiry.
func NewRedisStateStore(rdb *redis.Client, prefix string) StateStore {
	if prefix == "" {
		prefix = "phone"
	}
	return &redisStateStore{rdb: rdb, prefix: prefix}
}

func (r *redisStateStore) stateKey() string { return fmt.Sprintf("%s:%s", r.prefix, stateKey) }

func (r *redisStateStore) Load(ctx context.Context) (*model.AppState, error) {
	data, err := r.rdb.Get(ctx, r.stateKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &model.AppState{}, nil
		}
		return nil, fmt.Errorf("could not read state from redis: %w", err)
	}
	return decodeState(data)
}

func (r *redisStateStore) Save(ctx context.Context, state *model.AppState) error {
	data, err := encodeState(state)
	if err != nil {
		return err
	}
	if err := r.rdb.Set(ctx, r.stateKey(), data, 0).Err(); err != nil {
		return fmt.Errorf("could not write state to redis: %w", err)
	}
	return nil
}
