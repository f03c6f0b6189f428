// Package seen keeps a cross-run memory of already exported video URLs in
// a Redis-backed Bloom filter, so repeated scheduled runs do not re-export
// the same videos. The filter is optional: when Redis is not configured the
// pipeline runs without it.
package seen

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"trendscout/types"
)

// Config configures the RedisBloom connection and filter key.
type Config struct {
	Addr     string
	Password string
	DB       int
	Key      string
	TTL      time.Duration
	// Capacity sets the initial BF.RESERVE capacity (number of items)
	Capacity int
	// ErrorRate sets the desired false positive probability
	ErrorRate float64
}

// Store is a minimal Redis-backed Bloom wrapper using RedisBloom commands.
type Store struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

const opTimeout = 5 * time.Second

// New creates a Store and verifies connectivity. When the filter key does
// not exist yet it attempts BF.RESERVE with the configured capacity and
// error rate; if the RedisBloom module is missing BF.ADD may still
// auto-create the filter, so a failed reserve is not fatal.
func New(cfg Config) (*Store, error) {
	if cfg.Key == "" {
		cfg.Key = "videos:seen"
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 7 * 24 * time.Hour
	}
	if cfg.Capacity <= 0 {
		cfg.Capacity = 100000
	}
	if cfg.ErrorRate <= 0 {
		cfg.ErrorRate = 0.001
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	s := &Store{client: client, key: cfg.Key, ttl: cfg.TTL}

	exists, err := client.Exists(ctx, cfg.Key).Result()
	if err == nil && exists == 0 {
		args := []interface{}{"BF.RESERVE", cfg.Key, fmt.Sprintf("%f", cfg.ErrorRate), cfg.Capacity}
		if err := client.Do(ctx, args...).Err(); err != nil {
			log.Printf("Warning: BF.RESERVE failed (continuing, BF.ADD may auto-create): %v", err)
		}
	}

	return s, nil
}

// Close closes the underlying Redis client.
func (s *Store) Close() error {
	return s.client.Close()
}

// Seen reports whether the URL's hash is probably in the filter.
func (s *Store) Seen(url string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := s.client.Do(ctx, "BF.EXISTS", s.key, hashURL(url)).Result()
	if err != nil {
		return false, err
	}

	switch v := res.(type) {
	case int64:
		return v == 1, nil
	case string:
		return v == "1", nil
	default:
		return false, fmt.Errorf("unexpected BF.EXISTS response type %T: %v", res, res)
	}
}

// Add inserts the URL's hash and refreshes the key TTL, so the filter
// stays alive for the full window after the most recent insertion.
func (s *Store) Add(url string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := s.client.Do(ctx, "BF.ADD", s.key, hashURL(url)).Err(); err != nil {
		return err
	}
	return s.client.Expire(ctx, s.key, s.ttl).Err()
}

// FilterFresh returns the videos whose URL has not been seen before and
// records them as seen. Filter errors fail open: on a Redis error the video
// is kept, since dropping fresh data is worse than a duplicate export.
func (s *Store) FilterFresh(videos []*types.Video) []*types.Video {
	fresh := make([]*types.Video, 0, len(videos))
	for _, v := range videos {
		if v.URL == "" {
			fresh = append(fresh, v)
			continue
		}
		seen, err := s.Seen(v.URL)
		if err != nil {
			log.Printf("Warning: seen check failed for %s: %v", v.URL, err)
			fresh = append(fresh, v)
			continue
		}
		if seen {
			continue
		}
		if err := s.Add(v.URL); err != nil {
			log.Printf("Warning: failed to record %s as seen: %v", v.URL, err)
		}
		fresh = append(fresh, v)
	}
	return fresh
}

// hashURL hashes the normalized URL so filter entries have a fixed size.
func hashURL(url string) string {
	h := sha256.Sum256([]byte(NormalizeURL(url)))
	return hex.EncodeToString(h[:])
}
