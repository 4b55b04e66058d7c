package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkessler/portplan/pkg/cache"
	"github.com/mkessler/portplan/pkg/config"
)

// openCache creates the cache backend selected by the configuration.
func openCache(ctx context.Context, cfg config.CacheConfig) (cache.Cache, error) {
	switch cfg.Backend {
	case config.CacheBackendNone:
		return cache.NewNullCache(), nil
	case config.CacheBackendRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{Addr: cfg.RedisAddr})
	default:
		return cache.NewFileCache(cfg.Dir)
	}
}

// cacheTTL converts the configured TTL hours to a duration.
func cacheTTL(cfg config.CacheConfig) time.Duration {
	return time.Duration(cfg.TTLHours) * time.Hour
}

// newCacheCmd creates the cache management command group.
func newCacheCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the plan cache",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "dir",
		Short: "Print the cache directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cfg.Cache.Dir)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove all cached plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			logger := loggerFromContext(cmd.Context())
			if err := os.RemoveAll(cfg.Cache.Dir); err != nil {
				return err
			}
			logger.Info("cache cleared", "dir", cfg.Cache.Dir)
			return nil
		},
	})

	return cmd
}
