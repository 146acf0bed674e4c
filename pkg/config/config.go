// Package config holds netscore's runtime configuration.
//
// A [Config] is assembled in three layers, later layers winning:
//
//  1. built-in defaults ([Default])
//  2. an optional TOML (.toml) or YAML (.yaml, .yml) file ([Load])
//  3. environment variables ([Config.ApplyEnv]): GITHUB_TOKEN, LOG_LEVEL,
//     LOG_FILE, NETSCORE_REDIS_ADDR, NETSCORE_MONGO_URI
//
// Command-line flags are applied on top by the CLI. The finished value is
// passed explicitly to the engine; nothing below the CLI reads the
// environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/netscore/pkg/errors"
)

// Default values.
const (
	DefaultWorkers        = 4
	DefaultMetricTimeout  = 30 * time.Second
	DefaultActivityWindow = 30 * 24 * time.Hour
	DefaultCacheTTL       = 24 * time.Hour
	DefaultRateLimit      = 10.0 // requests per second
	DefaultServerAddr     = ":8080"
	DefaultMongoDatabase  = "netscore"
	DefaultMongoColl      = "records"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Config is the complete runtime configuration.
type Config struct {
	// GitHubToken authenticates GitHub API requests. Required.
	GitHubToken string `toml:"github_token" yaml:"github_token"`

	// LogLevel is 0|silent, 1|info, 2|debug, warn, or error. Default info.
	LogLevel string `toml:"log_level" yaml:"log_level"`

	// LogFile receives log output (appended) instead of stderr.
	LogFile string `toml:"log_file" yaml:"log_file"`

	// Workers bounds concurrently evaluated packages.
	Workers int `toml:"workers" yaml:"workers"`

	// Unordered emits records as they complete instead of in input order.
	Unordered bool `toml:"unordered" yaml:"unordered"`

	// MetricTimeout bounds each metric computation.
	MetricTimeout time.Duration `toml:"metric_timeout" yaml:"metric_timeout"`

	// ActivityWindow is the trailing window for responsiveness.
	ActivityWindow time.Duration `toml:"activity_window" yaml:"activity_window"`

	// RateLimit paces GitHub requests (per second); 0 disables pacing.
	RateLimit float64 `toml:"rate_limit" yaml:"rate_limit"`

	Cache  CacheConfig  `toml:"cache" yaml:"cache"`
	Mongo  MongoConfig  `toml:"mongo" yaml:"mongo"`
	Server ServerConfig `toml:"server" yaml:"server"`
}

// CacheConfig selects the upstream response cache.
type CacheConfig struct {
	// Backend is file, redis, or none.
	Backend string        `toml:"backend" yaml:"backend"`
	Dir     string        `toml:"dir" yaml:"dir"` // file backend; empty means the user cache dir
	TTL     time.Duration `toml:"ttl" yaml:"ttl"`

	RedisAddr     string `toml:"redis_addr" yaml:"redis_addr"`
	RedisPassword string `toml:"redis_password" yaml:"redis_password"`
	RedisDB       int    `toml:"redis_db" yaml:"redis_db"`
}

// MongoConfig enables persisting records to MongoDB when URI is set.
type MongoConfig struct {
	URI        string `toml:"uri" yaml:"uri"`
	Database   string `toml:"database" yaml:"database"`
	Collection string `toml:"collection" yaml:"collection"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr" yaml:"addr"`
}

// Default returns a Config with every default applied and no token.
func Default() *Config {
	return &Config{
		LogLevel:       "info",
		Workers:        DefaultWorkers,
		MetricTimeout:  DefaultMetricTimeout,
		ActivityWindow: DefaultActivityWindow,
		RateLimit:      DefaultRateLimit,
		Cache: CacheConfig{
			Backend: CacheFile,
			TTL:     DefaultCacheTTL,
		},
		Mongo: MongoConfig{
			Database:   DefaultMongoDatabase,
			Collection: DefaultMongoColl,
		},
		Server: ServerConfig{Addr: DefaultServerAddr},
	}
}

// Load reads the file at path over the defaults and then applies the
// environment. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.ApplyEnv(os.LookupEnv)
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, c)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unsupported config format %q (want .toml, .yaml or .yml)", ext)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	return nil
}

// ApplyEnv overlays variables found by lookup. Empty values are ignored.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	set := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	set("GITHUB_TOKEN", &c.GitHubToken)
	set("LOG_LEVEL", &c.LogLevel)
	set("LOG_FILE", &c.LogFile)
	set("NETSCORE_MONGO_URI", &c.Mongo.URI)
	if v, ok := lookup("NETSCORE_REDIS_ADDR"); ok && v != "" {
		c.Cache.RedisAddr = v
		c.Cache.Backend = CacheRedis
	}
}

// Validate reports the first invalid setting. All errors carry code
// INVALID_CONFIG.
func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return errors.New(errors.ErrCodeInvalidConfig, format, args...)
	}

	if strings.TrimSpace(c.GitHubToken) == "" {
		return invalid("GITHUB_TOKEN is required")
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Workers <= 0 {
		return invalid("workers must be positive, got %d", c.Workers)
	}
	if c.MetricTimeout <= 0 {
		return invalid("metric_timeout must be positive, got %s", c.MetricTimeout)
	}
	if c.ActivityWindow <= 0 {
		return invalid("activity_window must be positive, got %s", c.ActivityWindow)
	}
	if c.RateLimit < 0 {
		return invalid("rate_limit must not be negative")
	}
	switch c.Cache.Backend {
	case CacheFile, CacheNone:
	case CacheRedis:
		if c.Cache.RedisAddr == "" {
			return invalid("cache.redis_addr is required for the redis backend")
		}
	default:
		return invalid("unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return invalid("cache.ttl must not be negative")
	}
	if c.Mongo.URI != "" && (c.Mongo.Database == "" || c.Mongo.Collection == "") {
		return invalid("mongo.database and mongo.collection are required with mongo.uri")
	}
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "log file %s is not writable", c.LogFile)
		}
		f.Close()
	}
	return nil
}

// String renders the configuration with the token masked.
func (c *Config) String() string {
	masked := *c
	if masked.GitHubToken != "" {
		masked.GitHubToken = "****"
	}
	if masked.Cache.RedisPassword != "" {
		masked.Cache.RedisPassword = "****"
	}
	return fmt.Sprintf("%+v", masked)
}
