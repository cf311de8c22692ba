package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"maxconnect4/game"
	"maxconnect4/meta"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig indicates invalid configuration values.
var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	LogLevel   string           `yaml:"log_level"`
	Search     SearchConfig     `yaml:"search"`
	Cache      CacheConfig      `yaml:"cache"`
	Experiment ExperimentConfig `yaml:"experiment"`
	Server     ServerConfig     `yaml:"server"`
}

type SearchConfig struct {
	Depth     int    `yaml:"depth"`
	Evaluator string `yaml:"evaluator"`
	Parallel  bool   `yaml:"parallel"`
	Metrics   bool   `yaml:"metrics"`
}

type CacheConfig struct {
	Backend       string        `yaml:"backend"` // none, memory or redis
	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	TTL           time.Duration `yaml:"ttl"`
}

type ExperimentConfig struct {
	Depths       []int  `yaml:"depths"`
	Games        int    `yaml:"games"` // Per matchup
	OpeningMoves int    `yaml:"opening_moves"`
	Seed         uint64 `yaml:"seed"`
	OutputDir    string `yaml:"output_dir"`
	DatabaseURL  string `yaml:"database_url"`
}

type ServerConfig struct {
	Addr     string `yaml:"addr"`
	MaxDepth int    `yaml:"max_depth"`
}

func Default() *Config {
	return &Config{
		LogLevel: "info",
		Search: SearchConfig{
			Depth:     meta.DEPTH,
			Evaluator: "first-informative",
		},
		Cache: CacheConfig{
			Backend:   "none",
			RedisAddr: "localhost:6379",
			TTL:       24 * time.Hour,
		},
		Experiment: ExperimentConfig{
			Depths:       []int{2, 4},
			Games:        10,
			OpeningMoves: 2,
			Seed:         1,
			OutputDir:    "experiments",
		},
		Server: ServerConfig{
			Addr:     ":8080",
			MaxDepth: 6,
		},
	}
}

// Load reads the YAML file at path over the defaults, then applies
// environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.LogLevel = GetEnv("MAXC4_LOG_LEVEL", c.LogLevel)
	c.Search.Depth = GetEnvAsInt("MAXC4_DEPTH", c.Search.Depth)
	c.Search.Evaluator = GetEnv("MAXC4_EVALUATOR", c.Search.Evaluator)
	c.Search.Parallel = GetEnvAsBool("MAXC4_PARALLEL", c.Search.Parallel)
	c.Cache.Backend = GetEnv("MAXC4_CACHE", c.Cache.Backend)
	c.Cache.RedisAddr = GetEnv("MAXC4_REDIS_ADDR", c.Cache.RedisAddr)
	c.Cache.RedisPassword = GetEnv("MAXC4_REDIS_PASSWORD", c.Cache.RedisPassword)
	c.Experiment.DatabaseURL = GetEnv("MAXC4_DATABASE_URL", c.Experiment.DatabaseURL)
	c.Server.Addr = GetEnv("MAXC4_ADDR", c.Server.Addr)
}

func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.LogLevel)
	}
	if c.Search.Depth < meta.MIN_DEPTH {
		return fmt.Errorf("%w: search depth %d is below %d", ErrInvalidConfig, c.Search.Depth, meta.MIN_DEPTH)
	}
	if _, err := game.EvaluatorByName(c.Search.Evaluator); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	switch c.Cache.Backend {
	case "none", "memory", "redis":
	default:
		return fmt.Errorf("%w: cache backend %q", ErrInvalidConfig, c.Cache.Backend)
	}
	for _, depth := range c.Experiment.Depths {
		if depth < meta.MIN_DEPTH {
			return fmt.Errorf("%w: experiment depth %d is below %d", ErrInvalidConfig, depth, meta.MIN_DEPTH)
		}
	}
	if c.Experiment.Games < 0 || c.Experiment.OpeningMoves < 0 {
		return fmt.Errorf("%w: experiment games and opening moves must not be negative", ErrInvalidConfig)
	}
	if c.Server.MaxDepth < meta.MIN_DEPTH {
		return fmt.Errorf("%w: server max depth %d is below %d", ErrInvalidConfig, c.Server.MaxDepth, meta.MIN_DEPTH)
	}
	return nil
}

// Level returns the configured zerolog level. Validate guarantees it parses.
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Warn().Msgf("invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Warn().Msgf("invalid boolean value for %s: %s, using default: %t", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
