package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/netscore/pkg/errors"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, DefaultWorkers, cfg.Workers)
	assert.Equal(t, DefaultMetricTimeout, cfg.MetricTimeout)
	assert.Equal(t, DefaultActivityWindow, cfg.ActivityWindow)
	assert.Equal(t, CacheFile, cfg.Cache.Backend)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.GitHubToken)
}

func TestLoadTOML(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")
	path := writeFile(t, "netscore.toml", `
github_token = "from-file"
workers = 8
unordered = true
metric_timeout = "10s"

[cache]
backend = "none"
ttl = "1h"

[mongo]
uri = "mongodb://localhost:27017"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.GitHubToken)
	assert.Equal(t, 8, cfg.Workers)
	assert.True(t, cfg.Unordered)
	assert.Equal(t, 10*time.Second, cfg.MetricTimeout)
	assert.Equal(t, CacheNone, cfg.Cache.Backend)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, DefaultMongoDatabase, cfg.Mongo.Database, "unset keys keep defaults")
}

func TestLoadYAML(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("LOG_LEVEL", "")
	path := writeFile(t, "netscore.yaml", `
github_token: from-yaml
log_level: debug
activity_window: 168h
cache:
  backend: redis
  redis_addr: localhost:6379
server:
  addr: ":9090"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-yaml", cfg.GitHubToken)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 7*24*time.Hour, cfg.ActivityWindow)
	assert.Equal(t, CacheRedis, cfg.Cache.Backend)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.NoError(t, cfg.Validate())
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{"missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.toml") }},
		{"unsupported extension", func(t *testing.T) string { return writeFile(t, "cfg.json", "{}") }},
		{"malformed toml", func(t *testing.T) string { return writeFile(t, "cfg.toml", "workers = [") }},
		{"malformed yaml", func(t *testing.T) string { return writeFile(t, "cfg.yml", "workers: [1") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path(t))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))
		})
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	cfg.GitHubToken = "from-file"
	cfg.ApplyEnv(env(map[string]string{
		"GITHUB_TOKEN":        "from-env",
		"LOG_LEVEL":           "2",
		"LOG_FILE":            "",
		"NETSCORE_REDIS_ADDR": "redis:6379",
	}))

	assert.Equal(t, "from-env", cfg.GitHubToken)
	assert.Equal(t, "2", cfg.LogLevel)
	assert.Empty(t, cfg.LogFile, "empty values are ignored")
	assert.Equal(t, CacheRedis, cfg.Cache.Backend)
	assert.Equal(t, "redis:6379", cfg.Cache.RedisAddr)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := Default()
		cfg.GitHubToken = "token"
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults with token", func(*Config) {}, true},
		{"missing token", func(c *Config) { c.GitHubToken = " " }, false},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }, false},
		{"zero workers", func(c *Config) { c.Workers = 0 }, false},
		{"zero metric timeout", func(c *Config) { c.MetricTimeout = 0 }, false},
		{"zero window", func(c *Config) { c.ActivityWindow = 0 }, false},
		{"negative rate limit", func(c *Config) { c.RateLimit = -1 }, false},
		{"unknown backend", func(c *Config) { c.Cache.Backend = "memcached" }, false},
		{"redis without addr", func(c *Config) { c.Cache.Backend = CacheRedis }, false},
		{"mongo without collection", func(c *Config) {
			c.Mongo.URI = "mongodb://localhost"
			c.Mongo.Collection = ""
		}, false},
		{"unwritable log file", func(c *Config) {
			c.LogFile = filepath.Join(t.TempDir(), "missing", "dir", "netscore.log")
		}, false},
		{"writable log file", func(c *Config) {
			c.LogFile = filepath.Join(t.TempDir(), "netscore.log")
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeInvalidConfig, errors.GetCode(err))
		})
	}
}

func TestStringMasksSecrets(t *testing.T) {
	cfg := Default()
	cfg.GitHubToken = "ghp_secret"
	cfg.Cache.RedisPassword = "hunter2"
	s := cfg.String()
	assert.NotContains(t, s, "ghp_secret")
	assert.NotContains(t, s, "hunter2")
	assert.Equal(t, "ghp_secret", cfg.GitHubToken, "original untouched")
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in     string
		level  log.Level
		silent bool
	}{
		{"", log.InfoLevel, false},
		{"0", log.FatalLevel, true},
		{"SILENT", log.FatalLevel, true},
		{"1", log.InfoLevel, false},
		{"info", log.InfoLevel, false},
		{"2", log.DebugLevel, false},
		{"Debug", log.DebugLevel, false},
		{"warn", log.WarnLevel, false},
		{"error", log.ErrorLevel, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLogLevel(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.level, got.Level)
			assert.Equal(t, tt.silent, got.Silent)
		})
	}

	_, err := ParseLogLevel("3")
	assert.Error(t, err)
}
