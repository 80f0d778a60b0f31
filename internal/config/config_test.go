package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadParsesFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
  base_path: /v1
dashboard:
  api_url: http://canteen.example/api
  poll_interval_seconds: 5
staff:
  - name: Head Chef
    email: chef@jjcanteen.local
    password: letmecook
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "/v1", cfg.Server.BasePath)
	assert.Equal(t, "http://canteen.example/api", cfg.Dashboard.APIURL)
	assert.Equal(t, 5*time.Second, cfg.Dashboard.PollInterval())
	require.Len(t, cfg.Staff, 1)
	assert.Equal(t, "chef@jjcanteen.local", cfg.Staff[0].Email)
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIURL, cfg.Dashboard.APIURL)
	assert.Equal(t, DefaultPollInterval, cfg.Dashboard.PollInterval())
	assert.Equal(t, 10000, cfg.Server.Port)
	assert.Equal(t, "/api", cfg.Server.BasePath)
	assert.False(t, cfg.Database.Enabled())
	assert.False(t, cfg.RabbitMQ.Enabled())
}

func TestLoadMalformedFileErrors(t *testing.T) {
	path := writeConfig(t, "server: [not a map")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrideWinsOverFile(t *testing.T) {
	path := writeConfig(t, `
dashboard:
  api_url: http://from-file/api
`)
	t.Setenv("CANTEEN_API_URL", "http://from-env/api")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://from-env/api", cfg.Dashboard.APIURL)
}

func TestPollIntervalRejectsNonPositive(t *testing.T) {
	assert.Equal(t, DefaultPollInterval, DashboardConfig{PollIntervalSeconds: 0}.PollInterval())
	assert.Equal(t, DefaultPollInterval, DashboardConfig{PollIntervalSeconds: -3}.PollInterval())
}
