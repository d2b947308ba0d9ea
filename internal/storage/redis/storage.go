package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nhamil/tilewe-go/internal/model"
	"github.com/nhamil/tilewe-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
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

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// save writes a value and its index entry in one pipeline
func (s *Storage) save(ctx context.Context, key, indexKey, member string, at time.Time, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, ttl)
	pipe.ZAdd(ctx, indexKey, redis.Z{Score: float64(at.UnixMilli()), Member: member})
	_, err = pipe.Exec(ctx)
	return err
}

func load[T any](ctx context.Context, client *redis.Client, key string, notFound error) (*T, error) {
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, notFound
		}
		return nil, err
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// list reads every indexed value, oldest first. Index entries whose value
// has expired are pruned.
func list[T any](ctx context.Context, client *redis.Client, indexKey string, keyOf func(member string) string) ([]*T, error) {
	members, err := client.ZRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return []*T{}, nil
	}

	keys := make([]string, len(members))
	for i, m := range members {
		keys[i] = keyOf(m)
	}
	values, err := client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	out := make([]*T, 0, len(values))
	var stale []any
	for i, val := range values {
		str, ok := val.(string)
		if !ok {
			stale = append(stale, members[i])
			continue
		}
		var v T
		if err := json.Unmarshal([]byte(str), &v); err != nil {
			continue // Skip invalid data
		}
		out = append(out, &v)
	}
	if len(stale) > 0 {
		if err := client.ZRem(ctx, indexKey, stale...).Err(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	return s.save(ctx, gameKey(game.ID), gamesIndexKey(), string(game.ID), game.CreatedAt, game, s.cfg.GameTTL)
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	return load[model.Game](ctx, s.client, gameKey(id), model.ErrGameNotFound)
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, gameKey(id))
	pipe.ZRem(ctx, gamesIndexKey(), string(id))
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) ListGames(ctx context.Context) ([]*model.Game, error) {
	return list[model.Game](ctx, s.client, gamesIndexKey(), func(m string) string {
		return gameKey(model.GameID(m))
	})
}

// Match operations

func (s *Storage) SaveMatch(ctx context.Context, rec *model.MatchRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	ok, err := s.client.SetNX(ctx, matchKey(rec.ID), data, s.cfg.MatchTTL).Result()
	if err != nil {
		return err
	}
	if !ok {
		return model.ErrMatchExists
	}
	return s.client.ZAdd(ctx, matchesIndexKey(), redis.Z{Score: float64(rec.StartedAt.UnixMilli()), Member: string(rec.ID)}).Err()
}

func (s *Storage) GetMatch(ctx context.Context, id model.MatchID) (*model.MatchRecord, error) {
	return load[model.MatchRecord](ctx, s.client, matchKey(id), model.ErrMatchNotFound)
}

func (s *Storage) ListMatches(ctx context.Context) ([]*model.MatchRecord, error) {
	return list[model.MatchRecord](ctx, s.client, matchesIndexKey(), func(m string) string {
		return matchKey(model.MatchID(m))
	})
}
