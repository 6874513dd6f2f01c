package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, FeedBundled, cfg.Feed.Kind)
	assert.Equal(t, 10*time.Second, cfg.Feed.Timeout)
}

func TestLoadConfig_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a11ydash.yaml")
	content := `
http:
  addr: ":8181"
feed:
  kind: http
  base_url: http://feeds.internal:9000
  timeout: 3s
log:
  level: debug
  development: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":8181", cfg.HTTP.Addr)
	assert.Equal(t, ":9090", cfg.GRPC.Addr)
	assert.Equal(t, FeedHTTP, cfg.Feed.Kind)
	assert.Equal(t, "http://feeds.internal:9000", cfg.Feed.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Feed.Timeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Development)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("A11YDASH_FEED_KIND", "DIR")
	t.Setenv("A11YDASH_FEED_DIR", "/srv/audit")
	t.Setenv("A11YDASH_FEED_TIMEOUT", "1m")
	t.Setenv("A11YDASH_LOG_DEVELOPMENT", "true")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, FeedDir, cfg.Feed.Kind)
	assert.Equal(t, "/srv/audit", cfg.Feed.Dir)
	assert.Equal(t, time.Minute, cfg.Feed.Timeout)
	assert.True(t, cfg.Log.Development)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("A11YDASH_FEED_KIND", "ftp")
	_, err := LoadConfig("")
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(LogConfig{Level: "warn"})
	require.NoError(t, err)
	assert.NotNil(t, logger)

	_, err = NewLogger(LogConfig{Level: "loud"})
	assert.Error(t, err)
}
