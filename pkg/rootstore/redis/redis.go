package redis

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Layr-Labs/bubble-allowlist-go/pkg/rootstore"
)

const (
	keyPrefixRoot        = "allowlist:root:"
	keyActiveVersion     = "allowlist:active:version"
	keySchemaVersion     = "allowlist:metadata:schema_version"
	keySetRoots          = "allowlist:roots:index"
	currentSchemaVersion = "v1"

	defaultOpTimeout = 5 * time.Second
)

// RedisRootStore shares published roots between several service replicas.
type RedisRootStore struct {
	client    *redis.Client
	logger    *zap.Logger
	keyPrefix string
	mu        sync.RWMutex
	closed    bool
}

var _ rootstore.IRootStore = (*RedisRootStore)(nil)

// RedisConfig holds the configuration for connecting to Redis
type RedisConfig struct {
	// Address is the Redis server address (host:port)
	Address string
	// Password is the optional Redis password
	Password string
	// DB is the Redis database number (0-15)
	DB int
	// KeyPrefix namespaces every key, e.g. "bubble-mainnet:" gives
	// "bubble-mainnet:allowlist:root:1". Lets several collections share a server.
	KeyPrefix string
}

// NewRedisRootStore connects, pings and validates the schema marker.
func NewRedisRootStore(cfg *RedisConfig, logger *zap.Logger) (*RedisRootStore, error) {
	if cfg == nil {
		return nil, fmt.Errorf("redis config cannot be nil")
	}
	if cfg.Address == "" {
		return nil, fmt.Errorf("redis address cannot be empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), defaultOpTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Address, err)
	}

	rs := &RedisRootStore{
		client:    client,
		logger:    logger,
		keyPrefix: cfg.KeyPrefix,
	}

	if err := rs.initSchema(ctx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logger.Sugar().Infow("Redis root store initialized",
		"address", cfg.Address,
		"db", cfg.DB,
		"keyPrefix", cfg.KeyPrefix,
	)

	return rs, nil
}

func (r *RedisRootStore) prefixKey(key string) string {
	return r.keyPrefix + key
}

func (r *RedisRootStore) rootKey(version int64) string {
	return r.prefixKey(keyPrefixRoot + strconv.FormatInt(version, 10))
}

func (r *RedisRootStore) initSchema(ctx context.Context) error {
	schemaKey := r.prefixKey(keySchemaVersion)

	existingVersion, err := r.client.Get(ctx, schemaKey).Result()
	if err == redis.Nil {
		return r.client.Set(ctx, schemaKey, currentSchemaVersion, 0).Err()
	}
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	if existingVersion != currentSchemaVersion {
		return fmt.Errorf("unsupported schema version: %s (expected: %s)", existingVersion, currentSchemaVersion)
	}
	return nil
}

// SaveRootVersion stores the version and adds it to the index set in one transaction
func (r *RedisRootStore) SaveRootVersion(version *rootstore.RootVersion) error {
	if version == nil {
		return fmt.Errorf("cannot save nil RootVersion")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return rootstore.ErrClosed
	}

	data, err := rootstore.MarshalRootVersion(version)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultOpTimeout)
	defer cancel()

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.rootKey(version.Version), data, 0)
	pipe.SAdd(ctx, r.prefixKey(keySetRoots), version.Version)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save RootVersion %d: %w", version.Version, err)
	}
	return nil
}

// LoadRootVersion retrieves a root version
func (r *RedisRootStore) LoadRootVersion(version int64) (*rootstore.RootVersion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return nil, rootstore.ErrClosed
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultOpTimeout)
	defer cancel()

	data, err := r.client.Get(ctx, r.rootKey(version)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load RootVersion %d: %w", version, err)
	}

	return rootstore.UnmarshalRootVersion(data)
}

// ListRootVersions reads the index set then fetches every version with MGET
func (r *RedisRootStore) ListRootVersions() ([]*rootstore.RootVersion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return nil, rootstore.ErrClosed
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultOpTimeout)
	defer cancel()

	indexKey := r.prefixKey(keySetRoots)
	members, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list RootVersion numbers: %w", err)
	}

	versions := []*rootstore.RootVersion{}
	if len(members) == 0 {
		return versions, nil
	}

	keys := make([]string, len(members))
	for i, m := range members {
		keys[i] = r.prefixKey(keyPrefixRoot + m)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch RootVersions: %w", err)
	}

	for i, val := range values {
		if val == nil {
			// indexed but gone, clean up the index
			r.client.SRem(ctx, indexKey, members[i])
			continue
		}

		data, ok := val.(string)
		if !ok {
			r.logger.Sugar().Warnw("Unexpected value type for RootVersion", "key", keys[i])
			continue
		}

		rv, err := rootstore.UnmarshalRootVersion([]byte(data))
		if err != nil {
			r.logger.Sugar().Warnw("Failed to unmarshal RootVersion, skipping",
				"key", keys[i], "error", err)
			continue
		}
		versions = append(versions, rv)
	}

	sort.Slice(versions, func(i, j int) bool {
		return versions[i].Version < versions[j].Version
	})

	return versions, nil
}

// DeleteRootVersion removes a root version and its index entry
func (r *RedisRootStore) DeleteRootVersion(version int64) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return rootstore.ErrClosed
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultOpTimeout)
	defer cancel()

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, r.rootKey(version))
	pipe.SRem(ctx, r.prefixKey(keySetRoots), version)

	_, err := pipe.Exec(ctx)
	return err
}

// SetActiveVersion stores the active version number
func (r *RedisRootStore) SetActiveVersion(version int64) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return rootstore.ErrClosed
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultOpTimeout)
	defer cancel()

	return r.client.Set(ctx, r.prefixKey(keyActiveVersion), version, 0).Err()
}

// GetActiveVersion retrieves the active version number
func (r *RedisRootStore) GetActiveVersion() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return 0, rootstore.ErrClosed
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultOpTimeout)
	defer cancel()

	version, err := r.client.Get(ctx, r.prefixKey(keyActiveVersion)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get active version: %w", err)
	}
	return version, nil
}

// Close shuts down the client
func (r *RedisRootStore) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	r.mu.Unlock()

	if err := r.client.Close(); err != nil {
		return fmt.Errorf("failed to close Redis client: %w", err)
	}

	r.logger.Sugar().Info("Redis root store closed")
	return nil
}

// HealthCheck pings Redis and checks the schema marker
func (r *RedisRootStore) HealthCheck() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return rootstore.ErrClosed
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultOpTimeout)
	defer cancel()

	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis health check failed: %w", err)
	}

	_, err := r.client.Get(ctx, r.prefixKey(keySchemaVersion)).Result()
	if err == redis.Nil {
		return fmt.Errorf("schema version not found - database may not be properly initialized")
	}
	if err != nil {
		return fmt.Errorf("failed to verify schema version: %w", err)
	}
	return nil
}
