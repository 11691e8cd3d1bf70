package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupEnv sets environment variables for one test; t.Setenv restores them.
// An empty value unsets the variable for the duration of the test.
func setupEnv(t *testing.T, envVars map[string]string) {
	t.Helper()
	for name, value := range envVars {
		t.Setenv(name, value)
		if value == "" {
			require.NoError(t, os.Unsetenv(name))
		}
	}
}

// inTempDir runs the test from an empty directory so no stray config.yaml
// is picked up.
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	inTempDir(t)
	setupEnv(t, map[string]string{
		"OVERBOARD_CONFIG":           "",
		"OVERBOARD_SERVER_PORT":      "",
		"OVERBOARD_SERVER_LOG_LEVEL": "",
		"OVERBOARD_BOARD_NAME":       "",
		"OVERBOARD_DATABASE_DRIVER":  "",
		"OVERBOARD_DATABASE_URL":     "",
		"OVERBOARD_FEED_BUFFER_SIZE": "",
	})

	cfg, err := Load()

	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, 10, cfg.Server.ShutdownTimeoutSeconds)
	assert.Equal(t, "Overboard", cfg.Board.Name)
	assert.Equal(t, "pgx", cfg.Database.Driver)
	assert.False(t, cfg.Database.Enabled())
	assert.Equal(t, 64, cfg.Feed.BufferSize)
}

func TestLoadFromEnv(t *testing.T) {
	inTempDir(t)
	setupEnv(t, map[string]string{
		"OVERBOARD_CONFIG":           "",
		"OVERBOARD_SERVER_PORT":      "9090",
		"OVERBOARD_SERVER_LOG_LEVEL": "debug",
		"OVERBOARD_BOARD_NAME":       "Unit Testing",
		"OVERBOARD_DATABASE_DRIVER":  "sqlite",
		"OVERBOARD_DATABASE_URL":     "file:journal.db",
		"OVERBOARD_FEED_BUFFER_SIZE": "8",
	})

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "Unit Testing", cfg.Board.Name)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "file:journal.db", cfg.Database.URL)
	assert.True(t, cfg.Database.Enabled())
	assert.Equal(t, 8, cfg.Feed.BufferSize)
}

func TestLoadFromFile(t *testing.T) {
	dir := inTempDir(t)
	setupEnv(t, map[string]string{
		"OVERBOARD_CONFIG":           "",
		"OVERBOARD_SERVER_PORT":      "",
		"OVERBOARD_SERVER_LOG_LEVEL": "warn",
		"OVERBOARD_BOARD_NAME":       "",
	})

	content := []byte("server:\n  port: 7070\n  log_level: error\nboard:\n  name: From File\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o600))

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "From File", cfg.Board.Name)
	// Environment wins over the file.
	assert.Equal(t, "warn", cfg.Server.LogLevel)
}

func TestLoadExplicitConfigFile(t *testing.T) {
	dir := inTempDir(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("board:\n  name: Custom\n"), 0o600))
	setupEnv(t, map[string]string{
		"OVERBOARD_CONFIG":     path,
		"OVERBOARD_BOARD_NAME": "",
	})

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "Custom", cfg.Board.Name)
}

func TestLoadValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "invalid_log_level",
			env:  map[string]string{"OVERBOARD_SERVER_LOG_LEVEL": "verbose"},
		},
		{
			name: "port_out_of_range",
			env:  map[string]string{"OVERBOARD_SERVER_PORT": "70000"},
		},
		{
			name: "unknown_database_driver",
			env:  map[string]string{"OVERBOARD_DATABASE_DRIVER": "mysql"},
		},
		{
			name: "zero_feed_buffer",
			env:  map[string]string{"OVERBOARD_FEED_BUFFER_SIZE": "0"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			inTempDir(t)
			setupEnv(t, map[string]string{"OVERBOARD_CONFIG": ""})
			setupEnv(t, tc.env)

			cfg, err := Load()

			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestLoadFileOverridesEnvPath(t *testing.T) {
	dir := inTempDir(t)
	envPath := filepath.Join(dir, "env.yaml")
	flagPath := filepath.Join(dir, "flag.yaml")
	require.NoError(t, os.WriteFile(envPath, []byte("board:\n  name: From Env Path\n"), 0o600))
	require.NoError(t, os.WriteFile(flagPath, []byte("board:\n  name: From Flag\n"), 0o600))
	setupEnv(t, map[string]string{
		"OVERBOARD_CONFIG":     envPath,
		"OVERBOARD_BOARD_NAME": "",
	})

	cfg, err := LoadFile(flagPath)

	require.NoError(t, err)
	assert.Equal(t, "From Flag", cfg.Board.Name)
}

func TestLoadFileMissingExplicitPath(t *testing.T) {
	inTempDir(t)
	setupEnv(t, map[string]string{"OVERBOARD_CONFIG": ""})

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))

	assert.Error(t, err)
	assert.Nil(t, cfg)
}
