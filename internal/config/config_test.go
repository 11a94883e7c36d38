package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[server]
http_port = 9090

[database]
host = "db"
user = "cleaning"
dbname = "cleaning"

[scheduling]
time_zone = "Asia/Qatar"
default_gap_minutes = 45
timeline_start = "07:00"
timeline_end = "21:00"
snapshot_ttl_seconds = 10
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port, "default kept")
	assert.Equal(t, 45, cfg.Scheduling.DefaultGapMinutes)
	assert.Equal(t, 10*time.Second, cfg.Scheduling.SnapshotTTL())

	loc, err := cfg.Scheduling.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Qatar", loc.String())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_PASSWORD", "s3cret")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("REDIS_ADDR", "redis:6379")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Contains(t, cfg.Database.DSN(), "password=s3cret")
}

func TestLoad_InvalidEnvNumber(t *testing.T) {
	t.Setenv("DB_PORT", "five")

	_, err := Load(writeConfig(t, sampleConfig))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, ErrReadConfig)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := Default()
		cfg.Database.User = "u"
		cfg.Database.DBName = "d"
		return cfg
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"timeline reversed", func(c *Config) { c.Scheduling.TimelineStart, c.Scheduling.TimelineEnd = "20:00", "08:00" }},
		{"bad timeline format", func(c *Config) { c.Scheduling.TimelineStart = "8am" }},
		{"zero ttl", func(c *Config) { c.Scheduling.SnapshotTTLSeconds = 0 }},
		{"negative gap", func(c *Config) { c.Scheduling.DefaultGapMinutes = -1 }},
		{"unknown time zone", func(c *Config) { c.Scheduling.TimeZone = "Mars/Olympus" }},
		{"missing db user", func(c *Config) { c.Database.User = "" }},
		{"redis without channel", func(c *Config) { c.Redis.Enabled = true; c.Redis.Channel = "" }},
		{"rate limit without burst", func(c *Config) { c.RateLimit.Enabled = true; c.RateLimit.Burst = 0 }},
		{"bad trusted proxy", func(c *Config) { c.RateLimit.TrustedProxies = []string{"10.0.0.0/33"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestTrustedProxyPrefixes(t *testing.T) {
	cfg := RateLimitConfig{TrustedProxies: []string{"127.0.0.1", " 10.1.2.3/8 ", "::1"}}

	prefixes, err := cfg.TrustedProxyPrefixes()
	require.NoError(t, err)
	require.Len(t, prefixes, 3)
	assert.Equal(t, "127.0.0.1/32", prefixes[0].String())
	assert.Equal(t, "10.0.0.0/8", prefixes[1].String())
	assert.Equal(t, "::1/128", prefixes[2].String())

	_, err = RateLimitConfig{TrustedProxies: []string{"proxy.local"}}.TrustedProxyPrefixes()
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
