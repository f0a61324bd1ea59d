package memcache_fx

import (
	"context"

	"go.uber.org/fx"

	"netops/internal/infra"
	"netops/pkg/logger"
	mem "netops/pkg/memcache"
)

var Module = fx.Provide(provideStatsStore)

// provideStatsStore uses Redis when REDIS_ADDR is set and the in-process
// cache otherwise.
func provideStatsStore(lc fx.Lifecycle, cfg *infra.Config) (mem.StatsStore, error) {
	client, err := infra.OpenRedis(cfg.Cache)
	if err != nil {
		return nil, err
	}
	if client == nil {
		logger.Info("Using in-memory stats cache")
		return mem.NewStatsCache(), nil
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
	logger.Info("Using redis stats cache", "addr", cfg.Cache.RedisAddr)
	return mem.NewRedisStatsCache(client, 0), nil
}
