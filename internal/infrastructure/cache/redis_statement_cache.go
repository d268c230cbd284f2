package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	appbilling "github.com/wms/backend/internal/application/billing"
	"github.com/wms/backend/internal/domain/billing"
	"github.com/wms/backend/internal/domain/shared/valueobject"
)

const defaultStatementTTL = 30 * 24 * time.Hour

// RedisStatementCache stores computed statements for closed billing
// periods. Entries are JSON documents keyed by tenant and period; a TTL
// bounds staleness after pricing corrections.
type RedisStatementCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisStatementCache creates a statement cache with its own client
func NewRedisStatementCache(cfg RedisConfig) (*RedisStatementCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisStatementCacheWithClient(client, ""), nil
}

// NewRedisStatementCacheWithClient creates a cache sharing an existing
// client. Useful for testing and for deployments with one shared pool.
func NewRedisStatementCacheWithClient(client *redis.Client, keyPrefix string) *RedisStatementCache {
	if keyPrefix == "" {
		keyPrefix = "billing:statement:"
	}
	return &RedisStatementCache{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       defaultStatementTTL,
	}
}

// WithTTL overrides the entry lifetime
func (c *RedisStatementCache) WithTTL(ttl time.Duration) *RedisStatementCache {
	c.ttl = ttl
	return c
}

func (c *RedisStatementCache) key(tenantID uuid.UUID, period valueobject.Period) string {
	return fmt.Sprintf("%s%s:%s", c.keyPrefix, tenantID.String(), period.String())
}

// Get returns the cached statement, or nil on a miss
func (c *RedisStatementCache) Get(ctx context.Context, tenantID uuid.UUID, period valueobject.Period) (*billing.Statement, error) {
	payload, err := c.client.Get(ctx, c.key(tenantID, period)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached statement: %w", err)
	}

	var statement billing.Statement
	if err := json.Unmarshal(payload, &statement); err != nil {
		return nil, fmt.Errorf("failed to decode cached statement: %w", err)
	}
	return &statement, nil
}

// Set stores the statement under its tenant and period
func (c *RedisStatementCache) Set(ctx context.Context, statement *billing.Statement) error {
	payload, err := json.Marshal(statement)
	if err != nil {
		return fmt.Errorf("failed to encode statement: %w", err)
	}

	key := c.key(statement.TenantID, statement.Period)
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cached statement: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisStatementCache) Close() error {
	return c.client.Close()
}

// Ensure RedisStatementCache implements StatementCache
var _ appbilling.StatementCache = (*RedisStatementCache)(nil)
