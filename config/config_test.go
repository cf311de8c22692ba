package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("defaults without a file", func(t *testing.T) {
		cfg, err := Load("")

		require.NoError(t, err)
		require.Equal(t, Default(), cfg)
	})

	t.Run("file values override defaults", func(t *testing.T) {
		path := writeConfig(t, `
log_level: debug
search:
  depth: 6
  evaluator: weighted
  parallel: true
cache:
  backend: memory
  ttl: 90m
experiment:
  depths: [2, 3, 5]
  games: 4
`)

		cfg, err := Load(path)

		require.NoError(t, err)
		require.Equal(t, "debug", cfg.LogLevel)
		require.Equal(t, 6, cfg.Search.Depth)
		require.Equal(t, "weighted", cfg.Search.Evaluator)
		require.True(t, cfg.Search.Parallel)
		require.Equal(t, "memory", cfg.Cache.Backend)
		require.Equal(t, 90*time.Minute, cfg.Cache.TTL)
		require.Equal(t, []int{2, 3, 5}, cfg.Experiment.Depths)
		require.Equal(t, 4, cfg.Experiment.Games)
		require.Equal(t, "localhost:6379", cfg.Cache.RedisAddr, "Unset values keep their defaults")
	})

	t.Run("environment overrides the file", func(t *testing.T) {
		path := writeConfig(t, "search:\n  depth: 6\n")
		t.Setenv("MAXC4_DEPTH", "3")
		t.Setenv("MAXC4_CACHE", "redis")
		t.Setenv("MAXC4_PARALLEL", "true")

		cfg, err := Load(path)

		require.NoError(t, err)
		require.Equal(t, 3, cfg.Search.Depth)
		require.Equal(t, "redis", cfg.Cache.Backend)
		require.True(t, cfg.Search.Parallel)
	})

	t.Run("malformed environment values are ignored", func(t *testing.T) {
		t.Setenv("MAXC4_DEPTH", "deep")

		cfg, err := Load("")

		require.NoError(t, err)
		require.Equal(t, 4, cfg.Search.Depth)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
	})

	t.Run("malformed file", func(t *testing.T) {
		_, err := Load(writeConfig(t, "search: [1, 2"))
		require.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	cases := map[string]func(c *Config){
		"shallow depth":      func(c *Config) { c.Search.Depth = 1 },
		"unknown evaluator":  func(c *Config) { c.Search.Evaluator = "sum" },
		"unknown cache":      func(c *Config) { c.Cache.Backend = "memcached" },
		"unknown log level":  func(c *Config) { c.LogLevel = "loud" },
		"shallow experiment": func(c *Config) { c.Experiment.Depths = []int{4, 1} },
		"negative games":     func(c *Config) { c.Experiment.Games = -1 },
		"shallow server":     func(c *Config) { c.Server.MaxDepth = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(cfg)

			require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}

	t.Run("defaults are valid", func(t *testing.T) {
		require.NoError(t, Default().Validate())
	})
}
