package lyrics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jaki95/hot100-sentiment/config"
)

// Cache stores lyrics that were found, keyed by song Key.
type Cache interface {
	// Get reports a miss as ("", false, nil).
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, lyrics string) error
	Close() error
}

// NewCache builds the cache selected by cfg. An empty type disables caching
// and returns a nil Cache.
func NewCache(ctx context.Context, cfg config.CacheConfig) (Cache, error) {
	switch cfg.Type {
	case "":
		return nil, nil
	case "file":
		return NewFileCache(cfg.Dir, cfg.TTL)
	case "redis":
		rdb, err := NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		return NewRedisCache(rdb, cfg.KeyPrefix, cfg.TTL), nil
	default:
		return nil, fmt.Errorf("unknown cache type: %s", cfg.Type)
	}
}

type cachedLyrics struct {
	Key       string    `json:"key"`
	Lyrics    string    `json:"lyrics"`
	FetchedAt time.Time `json:"fetched_at"`
}

// FileCache keeps one JSON file per song. Entries older than the TTL,
// judged by file modification time, are misses.
type FileCache struct {
	dir string
	ttl time.Duration
}

func NewFileCache(dir string, ttl time.Duration) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &FileCache{dir: dir, ttl: ttl}, nil
}

func (c *FileCache) path(key string) string {
	return filepath.Join(c.dir, key+".json")
}

func (c *FileCache) Get(_ context.Context, key string) (string, bool, error) {
	filePath := c.path(key)
	info, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if c.ttl > 0 && time.Since(info.ModTime()) > c.ttl {
		return "", false, nil
	}

	file, err := os.Open(filePath)
	if err != nil {
		return "", false, err
	}
	defer file.Close()

	var entry cachedLyrics
	if err := json.NewDecoder(file).Decode(&entry); err != nil {
		return "", false, fmt.Errorf("corrupt cache entry %s: %w", filePath, err)
	}
	return entry.Lyrics, true, nil
}

func (c *FileCache) Set(_ context.Context, key, lyrics string) error {
	jsonBytes, err := json.MarshalIndent(cachedLyrics{
		Key:       key,
		Lyrics:    lyrics,
		FetchedAt: time.Now().UTC(),
	}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.path(key), jsonBytes, 0644)
}

func (c *FileCache) Close() error { return nil }

// NewRedisClient connects to a URL such as redis://localhost:6379/0.
func NewRedisClient(ctx context.Context, redisURL string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	rdb := goredis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return rdb, nil
}

type RedisCache struct {
	rdb    goredis.UniversalClient
	prefix string
	ttl    time.Duration
}

func NewRedisCache(rdb goredis.UniversalClient, prefix string, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	lyrics, err := c.rdb.Get(ctx, c.prefix+key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis GET %s: %w", c.prefix+key, err)
	}
	return lyrics, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key, lyrics string) error {
	if err := c.rdb.Set(ctx, c.prefix+key, lyrics, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis SET %s: %w", c.prefix+key, err)
	}
	return nil
}

func (c *RedisCache) Close() error {
	return c.rdb.Close()
}
