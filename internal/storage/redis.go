package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/calebwren/reel-engine/pkg/content"
	"github.com/calebwren/reel-engine/pkg/state"
)

// RedisStorage implements the Storage interface using Redis for snapshots
// and the filesystem for content bundles.
type RedisStorage struct {
	client  *redis.Client
	logger  *slog.Logger
	dataDir string
	ttl     time.Duration
}

// Ensure RedisStorage implements Storage interface
var _ Storage = (*RedisStorage)(nil)

// NewRedisStorage creates a new Redis storage instance
func NewRedisStorage(redisURL string, dataDir string, ttl time.Duration, logger *slog.Logger) *RedisStorage {
	rdb := redis.NewClient(&redis.Options{
		Addr: redisURL,
	})

	if dataDir == "" {
		dataDir = "./data"
	}
	if ttl <= 0 {
		ttl = time.Hour
	}

	return &RedisStorage{
		client:  rdb,
		logger:  logger,
		dataDir: dataDir,
		ttl:     ttl,
	}
}

// Health and lifecycle methods

func (r *RedisStorage) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}

// WaitForConnection waits for Redis to become available (used during startup)
func (r *RedisStorage) WaitForConnection(ctx context.Context) error {
	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)

			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(retryDelay):
				continue
			}
		}

		r.logger.Info("Redis connection established")
		return nil
	}

	return fmt.Errorf("redis did not become available after %d attempts", maxRetries)
}

// Snapshot operations (Redis-backed)

func (r *RedisStorage) SaveSnapshot(ctx context.Context, id uuid.UUID, s *state.Snapshot) error {
	s.UpdatedAt = time.Now()

	data, err := json.Marshal(s)
	if err != nil {
		r.logger.Error("Failed to marshal snapshot", "uuid", id, "error", err)
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	key := "snapshot:" + id.String()
	if err := r.client.Set(ctx, key, string(data), r.ttl).Err(); err != nil {
		r.logger.Error("Failed to save snapshot", "uuid", id, "error", err)
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return nil
}

func (r *RedisStorage) LoadSnapshot(ctx context.Context, id uuid.UUID) (*state.Snapshot, error) {
	key := "snapshot:" + id.String()
	cmd := r.client.Get(ctx, key)
	if err := cmd.Err(); err != nil {
		if err == redis.Nil {
			r.logger.Warn("Snapshot not found", "uuid", id)
			return nil, nil // Return nil for not found
		}
		r.logger.Error("Failed to load snapshot", "uuid", id, "error", err)
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	data := cmd.Val()
	if data == "" {
		r.logger.Warn("Snapshot not found", "uuid", id)
		return nil, nil
	}

	var s state.Snapshot
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		r.logger.Error("Failed to unmarshal snapshot", "uuid", id, "error", err)
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return &s, nil
}

func (r *RedisStorage) DeleteSnapshot(ctx context.Context, id uuid.UUID) error {
	key := "snapshot:" + id.String()
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.Error("Failed to delete snapshot", "uuid", id, "error", err)
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}

// Client exposes the underlying connection for pub/sub consumers.
func (r *RedisStorage) Client() *redis.Client {
	return r.client
}

// Bundle operations (filesystem-backed)

func (r *RedisStorage) ListBundles(ctx context.Context) (map[string]string, error) {
	bundlesDir := filepath.Join(r.dataDir, "bundles")
	bundles := make(map[string]string)

	err := filepath.WalkDir(bundlesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}

		file, err := os.ReadFile(path)
		if err != nil {
			r.logger.Warn("Failed to read bundle file", "path", path, "error", err)
			return nil
		}

		var b content.Bundle
		if err := json.Unmarshal(file, &b); err != nil {
			r.logger.Warn("Failed to unmarshal bundle file", "path", path, "error", err)
			return nil
		}

		id := b.ID
		if id == "" {
			id = strings.TrimSuffix(filepath.Base(path), ".json")
		}
		bundles[id] = b.Name
		return nil
	})

	if err != nil {
		r.logger.Error("Failed to walk bundles directory", "error", err)
		return nil, fmt.Errorf("failed to list bundles: %w", err)
	}

	return bundles, nil
}

func (r *RedisStorage) GetBundle(ctx context.Context, id string) (*content.Bundle, error) {
	path := filepath.Join(r.dataDir, "bundles", id+".json")

	file, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("bundle not found: %s", id)
		}
		return nil, fmt.Errorf("failed to read bundle file: %w", err)
	}

	var b content.Bundle
	if err := json.Unmarshal(file, &b); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bundle %s: %w", id, err)
	}
	if b.ID == "" {
		// Filename is authoritative when the file omits an id
		b.ID = id
	}

	return &b, nil
}
