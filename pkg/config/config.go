// Package config loads portplan configuration from TOML files.
//
// Configuration is optional: every field has a working default, and a
// missing config file is not an error. A typical file:
//
//	[plan]
//	max_unit_size = 10
//	parallelism = 3
//
//	[cache]
//	backend = "file"       # file, redis, or none
//	dir = "~/.cache/portplan"
//	ttl_hours = 24
//
//	[server]
//	addr = ":8080"
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/mkessler/portplan/pkg/errors"
)

// Cache backends selectable via [cache].backend.
const (
	CacheBackendFile  = "file"
	CacheBackendRedis = "redis"
	CacheBackendNone  = "none"
)

// Config is the full portplan configuration tree.
type Config struct {
	Plan   PlanConfig   `toml:"plan"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// PlanConfig holds the planning engine knobs.
type PlanConfig struct {
	// MaxUnitSize caps how many modules one conversion unit may hold.
	MaxUnitSize int `toml:"max_unit_size"`
	// Parallelism is a pure input echoed into the plan for downstream
	// wall-clock projections.
	Parallelism int `toml:"parallelism"`
}

// CacheConfig selects and configures the plan cache backend.
type CacheConfig struct {
	Backend   string `toml:"backend"`
	Dir       string `toml:"dir"`
	RedisAddr string `toml:"redis_addr"`
	TTLHours  int    `toml:"ttl_hours"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Plan: PlanConfig{
			MaxUnitSize: 10,
			Parallelism: 3,
		},
		Cache: CacheConfig{
			Backend:  CacheBackendFile,
			Dir:      defaultCacheDir(),
			TTLHours: 24,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// Load reads the TOML file at path, layering it over the defaults.
// An empty path or a missing file returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Plan.MaxUnitSize <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"plan.max_unit_size must be positive, got %d", c.Plan.MaxUnitSize)
	}
	if c.Plan.Parallelism <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"plan.parallelism must be positive, got %d", c.Plan.Parallelism)
	}
	switch c.Cache.Backend {
	case CacheBackendFile, CacheBackendRedis, CacheBackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig,
			"cache.backend must be file, redis, or none, got %q", c.Cache.Backend)
	}
	if c.Cache.Backend == CacheBackendRedis && c.Cache.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidConfig,
			"cache.redis_addr required for the redis backend")
	}
	return nil
}

func defaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "portplan")
	}
	return filepath.Join(os.TempDir(), "portplan-cache")
}
