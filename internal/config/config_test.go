package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
[schedule_service]
url = "http://backend:8080"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, CacheDriverMemory, cfg.Cache.Driver)
	assert.Equal(t, 3, cfg.Resilience.MaxAttempts)
	assert.Equal(t, 15, cfg.Resilience.AttemptTimeout)
	assert.Equal(t, 1, cfg.Booking.LeadDays())

	loc, err := cfg.Booking.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Ho_Chi_Minh", loc.String())
}

func TestLoad_Overrides(t *testing.T) {
	path := writeConfig(t, `
[schedule_service]
url = "http://backend:8080"
requests_per_second = 2.5

[resilience]
max_attempts = 5
base_delay_ms = 100
max_delay_ms = 250

[cache]
driver = "redis"
ttl = 3600

[booking]
timezone = "UTC"
min_lead_days = 0
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2.5, cfg.ScheduleService.RequestsPerSecond)
	assert.Equal(t, 5, cfg.Resilience.MaxAttempts)
	assert.Equal(t, int64(250), cfg.Resilience.MaxDelay().Milliseconds())
	assert.Equal(t, CacheDriverRedis, cfg.Cache.Driver)
	assert.Equal(t, 0, cfg.Booking.LeadDays())
}

func TestLoad_EnvOverridesPath(t *testing.T) {
	path := writeConfig(t, `
[schedule_service]
url = "http://from-env"
`)
	t.Setenv(ConfigPathEnv, path)

	cfg, err := Load("does-not-exist.toml")
	require.NoError(t, err)
	assert.Equal(t, "http://from-env", cfg.ScheduleService.URL)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "missing backend url", content: `[server]
http_port = 8080`},
		{name: "unknown cache driver", content: `[schedule_service]
url = "http://b"
[cache]
driver = "memcached"`},
		{name: "negative lead days", content: `[schedule_service]
url = "http://b"
[booking]
min_lead_days = -1`},
		{name: "bad timezone", content: `[schedule_service]
url = "http://b"
[booking]
timezone = "Mars/Olympus"`},
		{name: "delays reversed", content: `[schedule_service]
url = "http://b"
[resilience]
base_delay_ms = 1000
max_delay_ms = 10`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidConfig)
}
