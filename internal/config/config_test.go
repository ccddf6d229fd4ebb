package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seasalt-intel/webintel/internal/config"
)

const sampleConfig = `
app:
  name: webintel
  environment: test

database:
  host: localhost
  user: intel
  dbname: intel

crawler:
  fetch_timeout: 20s
  pace: 500ms

sites:
  - name: Our Store
    code: SS
    url: https://ours.example
    is_self: true
  - name: Rival
    code: RV
    url: https://rival.example
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.App.Environment)
	assert.Equal(t, 20*time.Second, cfg.Crawler.FetchTimeout)
	assert.Equal(t, 500*time.Millisecond, cfg.Crawler.Pace)

	require.Len(t, cfg.Sites, 2)
	assert.True(t, cfg.Sites[0].IsSelf)
	assert.Equal(t, "RV", cfg.Sites[1].Code)

	// Defaults fill what the file omits.
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "0 3 * * *", cfg.Schedule.Cron)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("PAGESPEED_API_KEY", "secret-key")

	cfg, err := config.Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "secret-key", cfg.PageSpeed.APIKey)
}

func TestValidateStore(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)
	assert.NoError(t, cfg.ValidateStore())

	cfg.Database.Host = ""
	assert.ErrorContains(t, cfg.ValidateStore(), "not configured")
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
