package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fastfingers/typerace/internal/model"
	"github.com/fastfingers/typerace/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// The leaderboard is a sorted set scored by WPM; full results live in
// per-entry keys referenced by the set.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{client: client, cfg: cfg}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{client: client, cfg: cfg}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SaveResult(ctx context.Context, result *model.GameResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	// Pipeline keeps the entry and its ranking membership together
	pipe := s.client.Pipeline()
	pipe.Set(ctx, resultKey(result.ID), data, s.cfg.ResultTTL)
	pipe.ZAdd(ctx, leaderboardKey, redis.Z{
		Score:  float64(result.WPM),
		Member: result.ID,
	})
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) TopResults(ctx context.Context, n int) ([]*model.GameResult, error) {
	if n <= 0 {
		return nil, nil
	}

	ids, err := s.client.ZRevRange(ctx, leaderboardKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, err
	}

	results := make([]*model.GameResult, 0, len(ids))
	for _, id := range ids {
		data, err := s.client.Get(ctx, resultKey(id)).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				// Entry expired out from under the set; drop the
				// dangling member
				s.client.ZRem(ctx, leaderboardKey, id)
				continue
			}
			return nil, err
		}

		var result model.GameResult
		if err := json.Unmarshal(data, &result); err != nil {
			return nil, err
		}
		results = append(results, &result)
	}
	return results, nil
}

func (s *Storage) ResultCount(ctx context.Context) (int, error) {
	count, err := s.client.ZCard(ctx, leaderboardKey).Result()
	if err != nil {
		return 0, err
	}
	return int(count), nil
}
