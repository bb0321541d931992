package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"langusta/core/payload"

	"github.com/redis/go-redis/v9"
)

const (
	// redisKeyPrefix prefixes the hash key holding a namespace's record.
	redisKeyPrefix = "langusta:record:"

	fieldVersion       = "version"
	fieldLocalizations = "localizations"
	fieldUpdatedAt     = "updated_at"
)

// Redis stores records as a hash per namespace.
type Redis struct {
	client redis.UniversalClient
	key    string
}

// NewRedis creates a Redis store scoped to namespace.
func NewRedis(client redis.UniversalClient, namespace string) *Redis {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &Redis{client: client, key: redisKeyPrefix + namespace}
}

// LoadRecord implements RecordLoader.
func (r *Redis) LoadRecord(ctx context.Context) (*Record, error) {
	vals, err := r.client.HMGet(ctx, r.key, fieldVersion, fieldLocalizations, fieldUpdatedAt).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load record %s: %w", r.key, err)
	}

	version, vok := vals[0].(string)
	raw, lok := vals[1].(string)
	if !vok || !lok {
		return nil, nil
	}

	var locs payload.Localizations
	if err := json.Unmarshal([]byte(raw), &locs); err != nil {
		return nil, fmt.Errorf("failed to decode stored localizations for %s: %w", r.key, err)
	}

	rec := &Record{Version: version, Localizations: locs}
	if ts, ok := vals[2].(string); ok {
		rec.UpdatedAt, _ = time.Parse(time.RFC3339Nano, ts)
	}
	return rec, nil
}

// LoadVersion implements Store.
func (r *Redis) LoadVersion(ctx context.Context) (string, bool, error) {
	v, err := r.client.HGet(ctx, r.key, fieldVersion).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to load version %s: %w", r.key, err)
	}
	return v, true, nil
}

// LoadLocalizations implements Store.
func (r *Redis) LoadLocalizations(ctx context.Context) (payload.Localizations, bool, error) {
	rec, err := r.LoadRecord(ctx)
	if err != nil || rec == nil {
		return nil, false, err
	}
	return rec.Localizations, true, nil
}

// Save implements Store inside MULTI/EXEC.
func (r *Redis) Save(ctx context.Context, version string, localizations payload.Localizations) error {
	encoded, err := json.Marshal(localizations)
	if err != nil {
		return fmt.Errorf("failed to encode localizations: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, r.key,
			fieldVersion, version,
			fieldLocalizations, string(encoded),
			fieldUpdatedAt, time.Now().UTC().Format(time.RFC3339Nano),
		)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save record %s: %w", r.key, err)
	}
	return nil
}
