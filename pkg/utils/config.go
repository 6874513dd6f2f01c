package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"a11ydash/pkg/database"
)

// Feed source kinds.
const (
	FeedBundled = "bundled"
	FeedDir     = "dir"
	FeedHTTP    = "http"
	FeedSQLite  = "sqlite"
)

type Config struct {
	HTTP HTTPConfig `yaml:"http"`
	GRPC GRPCConfig `yaml:"grpc"`
	Feed FeedConfig `yaml:"feed"`
	Log  LogConfig  `yaml:"log"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

type GRPCConfig struct {
	Addr string `yaml:"addr"`
}

// FeedConfig selects where the four audit documents are read from.
type FeedConfig struct {
	Kind    string        `yaml:"kind"`     // bundled, dir, http or sqlite
	Dir     string        `yaml:"dir"`      // kind=dir
	BaseURL string        `yaml:"base_url"` // kind=http, documents under /data/
	DBPath  string        `yaml:"db_path"`  // kind=sqlite
	Timeout time.Duration `yaml:"timeout"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

func DefaultConfig() Config {
	return Config{
		HTTP: HTTPConfig{Addr: ":8080"},
		GRPC: GRPCConfig{Addr: ":9090"},
		Feed: FeedConfig{
			Kind:    FeedBundled,
			Dir:     "data",
			BaseURL: "http://localhost:9000",
			DBPath:  database.DefaultConfig().Path,
			Timeout: 10 * time.Second,
		},
		Log: LogConfig{Level: "info"},
	}
}

// LoadConfig reads an optional YAML file over the defaults, then applies
// A11YDASH_* environment overrides.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Feed.Kind {
	case FeedBundled:
	case FeedDir:
		if c.Feed.Dir == "" {
			return fmt.Errorf("feed.dir required for kind %q", c.Feed.Kind)
		}
	case FeedHTTP:
		if c.Feed.BaseURL == "" {
			return fmt.Errorf("feed.base_url required for kind %q", c.Feed.Kind)
		}
	case FeedSQLite:
		if c.Feed.DBPath == "" {
			return fmt.Errorf("feed.db_path required for kind %q", c.Feed.Kind)
		}
	default:
		return fmt.Errorf("unknown feed kind %q", c.Feed.Kind)
	}
	if c.Feed.Timeout <= 0 {
		return fmt.Errorf("feed.timeout must be positive")
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.HTTP.Addr = getenv("A11YDASH_HTTP_ADDR", cfg.HTTP.Addr)
	cfg.GRPC.Addr = getenv("A11YDASH_GRPC_ADDR", cfg.GRPC.Addr)
	cfg.Feed.Kind = strings.ToLower(getenv("A11YDASH_FEED_KIND", cfg.Feed.Kind))
	cfg.Feed.Dir = getenv("A11YDASH_FEED_DIR", cfg.Feed.Dir)
	cfg.Feed.BaseURL = getenv("A11YDASH_FEED_URL", cfg.Feed.BaseURL)
	cfg.Feed.DBPath = getenv("A11YDASH_DB_PATH", cfg.Feed.DBPath)
	cfg.Feed.Timeout = getenvDuration("A11YDASH_FEED_TIMEOUT", cfg.Feed.Timeout)
	cfg.Log.Level = getenv("A11YDASH_LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Development = getenvBool("A11YDASH_LOG_DEVELOPMENT", cfg.Log.Development)
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

func getenvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return b
}
