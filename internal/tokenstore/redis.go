package tokenstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/rueidis"
)

// Compile-time interface check.
var _ Store = (*RedisStore)(nil)

// minRedisTTL keeps an already-stale record around briefly so a restarting
// process can still observe and discard it instead of re-acquiring blindly.
const minRedisTTL = time.Minute

// RedisStore keeps the token record in Redis. Suitable when several
// instances should share one cached token.
type RedisStore struct {
	client rueidis.Client
	key    string
}

// NewRedisStore connects to Redis and returns a store writing under key.
func NewRedisStore(ctx context.Context, addr, password string, db int, key string) (*RedisStore, error) {
	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  []string{addr},
		Password:     password,
		SelectDB:     db,
		DisableCache: true, // Basic mode without client-side caching
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create redis client: %w", err)
	}

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &RedisStore{client: client, key: key}, nil
}

// Load reads the persisted record. Missing keys and undecodable values are
// cache misses.
func (s *RedisStore) Load(ctx context.Context) (*Record, error) {
	resp := s.client.Do(ctx, s.client.B().Get().Key(s.key).Build())
	if err := resp.Error(); err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, ErrNoToken
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	raw, err := resp.ToString()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoToken, err)
	}

	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, fmt.Errorf("%w: corrupt cache value: %v", ErrNoToken, err)
	}
	if rec.AccessToken == "" {
		return nil, ErrNoToken
	}
	return &rec, nil
}

// Save stores the record with a TTL matching its remaining lifetime.
func (s *RedisStore) Save(ctx context.Context, rec *Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode token record: %w", err)
	}

	ttl := time.Until(time.Unix(rec.Expiry, 0))
	if ttl < minRedisTTL {
		ttl = minRedisTTL
	}

	cmd := s.client.B().Set().Key(s.key).Value(string(data)).
		ExSeconds(int64(ttl.Seconds())).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Clear deletes the record.
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Do(ctx, s.client.B().Del().Key(s.key).Build()).Error(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Close releases the underlying Redis connection.
func (s *RedisStore) Close() error {
	s.client.Close()
	return nil
}
