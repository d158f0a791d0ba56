package hold

import (
	"context"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/princekenny23/primepos-sub004/errors"
)

const keyPrefix = "hold:terminal:"

// RedisKV persists hold snapshots as JSON blobs in redis, one key per
// snapshot. Holds carry no automatic expiry.
type RedisKV struct {
	client *redis.Client
}

func NewRedisKV(client *redis.Client) *RedisKV {
	return &RedisKV{client: client}
}

func (r *RedisKV) Put(ctx context.Context, key string, value []byte) error {
	return r.client.Set(ctx, keyPrefix+key, value, 0).Err()
}

func (r *RedisKV) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, keyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, apperrors.ErrHoldNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (r *RedisKV) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, keyPrefix+key).Err()
}
