//go:build unit
// +build unit

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYaml = `server:
  port: "9090"
database:
  type: "sqlite"
  dsn: ""
  auto_migrate: true
storage:
  provider: "fs"
  root: "./media"
auth:
  jwt_secret: "0123456789abcdef0123456789abcdef"
  token_ttl_minutes: 30
logger:
  log_level: "info"
  log_type: "console"
`

func writeTestConfig(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "rest-app.yaml")
	err := os.WriteFile(path, []byte(testConfigYaml), 0600)
	require.NoError(t, err)
	return path
}

func TestInitializeRestConfig(t *testing.T) {
	cfg, err := InitializeRestConfig(writeTestConfig(t))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, SqliteDbType, cfg.Database.Type)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, FsStorageProvider, cfg.Storage.Provider)
	assert.Equal(t, 30, cfg.Auth.TokenTTLMinutes)
	assert.Equal(t, 5, cfg.Auth.LoginRateLimit)
	assert.Equal(t, LogTypeConsole, cfg.Logger.LogType)
}

func TestInitializeRestConfig_PortEnvOverride(t *testing.T) {
	t.Setenv("PORT", "3000")

	cfg, err := InitializeRestConfig(writeTestConfig(t))
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
}

func TestInitializeRestConfig_MissingFile(t *testing.T) {
	_, err := InitializeRestConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestInitializeRestConfig_InvalidSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rest-app.yaml")
	err := os.WriteFile(path, []byte("auth:\n  jwt_secret: \"short\"\n"), 0600)
	require.NoError(t, err)

	_, err = InitializeRestConfig(path)
	require.Error(t, err)
}
