package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"studybuddy/internal/config"
)

const (
	dialTimeout = 5 * time.Second
	ioTimeout   = 3 * time.Second
)

// Options builds client options from the config. Address is either host:port or a
// redis:// URL; a password or DB in the config overrides the URL's.
func Options(redisCfg config.RedisConfig) (*redis.Options, error) {
	addr := strings.TrimSpace(redisCfg.Address)
	if addr == "" {
		return nil, fmt.Errorf("redis configuration is missing or address is empty")
	}

	opt := &redis.Options{Addr: addr}
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("invalid redis address: %w", err)
		}
		opt = parsed
	}
	if redisCfg.Password != "" {
		opt.Password = redisCfg.Password
	}
	if redisCfg.DB != 0 {
		opt.DB = redisCfg.DB
	}
	opt.DialTimeout = dialTimeout
	opt.ReadTimeout = ioTimeout
	opt.WriteTimeout = ioTimeout
	return opt, nil
}

// NewRedisClient creates a Redis client and pings the server to ensure connectivity.
func NewRedisClient(ctx context.Context, redisCfg config.RedisConfig) (*redis.Client, error) {
	opt, err := Options(redisCfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", opt.Addr, err)
	}
	return client, nil
}
