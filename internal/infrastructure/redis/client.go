package redis

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// NewClient connects to Redis and verifies the connection.
//
// A comma-separated list of redis:// URLs builds a cluster client. Conditional
// groups only work on a cluster when all keys of a ledger hash to one slot, so
// prefer a single node or hash-tagged account ids there.
func NewClient(ctx context.Context, redisURL string) (redis.UniversalClient, error) {
	var client redis.UniversalClient

	if strings.Contains(redisURL, ",") {
		addrs := make([]string, 0)
		var base *redis.Options

		for _, raw := range strings.Split(redisURL, ",") {
			opts, err := redis.ParseURL(strings.TrimSpace(raw))
			if err != nil {
				return nil, fmt.Errorf("failed to parse redis URL: %w", err)
			}
			if base == nil {
				base = opts
			}
			addrs = append(addrs, opts.Addr)
		}

		client = redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:     addrs,
			Username:  base.Username,
			Password:  base.Password,
			TLSConfig: base.TLSConfig,
		})
	} else {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse redis URL: %w", err)
		}

		client = redis.NewClient(opts)
	}

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}
