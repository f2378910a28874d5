package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearTestEnvVars(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"RENTAL_LOG_LEVEL",
		"RENTAL_LOG_FORMAT",
		"RENTAL_DATABASE_DSN",
		"RENTAL_INGEST_PLACEHOLDER_OWNER",
		"RENTAL_REPORTS_EXPENSE_THRESHOLD",
		"DATABASE_URL",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestInitializeConfig_Defaults(t *testing.T) {
	clearTestEnvVars(t)

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, "sqlite:rental_tracker.db", config.Database.DSN)
	assert.Equal(t, "David Mascari", config.Ingest.PlaceholderOwner)
	assert.Equal(t, "", config.Categories.File)
	assert.Equal(t, 0.3, config.Reports.ExpenseThreshold)
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	clearTestEnvVars(t)

	t.Setenv("RENTAL_LOG_LEVEL", "debug")
	t.Setenv("RENTAL_LOG_FORMAT", "json")
	t.Setenv("RENTAL_INGEST_PLACEHOLDER_OWNER", "John Doe")
	t.Setenv("DATABASE_URL", "postgres://localhost/rentals")

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "John Doe", config.Ingest.PlaceholderOwner)
	assert.Equal(t, "postgres://localhost/rentals", config.Database.DSN)
}

func TestInitializeConfig_ConfigFile(t *testing.T) {
	clearTestEnvVars(t)

	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "config.yaml")

	configContent := `
log:
  level: "warn"
  format: "json"
database:
  dsn: "sqlite:/tmp/rentals.db"
reports:
  expense_threshold: 0.4
`
	require.NoError(t, os.WriteFile(configFile, []byte(configContent), 0644))

	originalDir, err := os.Getwd()
	require.NoError(t, err)
	defer func() {
		require.NoError(t, os.Chdir(originalDir))
	}()
	require.NoError(t, os.Chdir(tempDir))

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "sqlite:/tmp/rentals.db", config.Database.DSN)
	assert.Equal(t, 0.4, config.Reports.ExpenseThreshold)
}

func TestInitializeConfig_HierarchicalPrecedence(t *testing.T) {
	clearTestEnvVars(t)

	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "config.yaml")

	configContent := `
log:
  level: "warn"
database:
  dsn: "sqlite:/tmp/file.db"
`
	require.NoError(t, os.WriteFile(configFile, []byte(configContent), 0644))

	t.Setenv("RENTAL_LOG_LEVEL", "error")

	originalDir, err := os.Getwd()
	require.NoError(t, err)
	defer func() {
		require.NoError(t, os.Chdir(originalDir))
	}()
	require.NoError(t, os.Chdir(tempDir))

	config, err := InitializeConfig()
	require.NoError(t, err)

	// Env vars override the config file, which overrides defaults.
	assert.Equal(t, "error", config.Log.Level)
	assert.Equal(t, "sqlite:/tmp/file.db", config.Database.DSN)
}

func TestValidateConfig_InvalidValues(t *testing.T) {
	valid := func() *Config {
		c := &Config{}
		c.Log.Level = "info"
		c.Log.Format = "text"
		c.Database.DSN = "sqlite:test.db"
		c.Reports.ExpenseThreshold = 0.3
		return c
	}

	tests := []struct {
		name         string
		modifyConfig func(*Config)
		expectError  string
	}{
		{
			name:         "invalid log level",
			modifyConfig: func(c *Config) { c.Log.Level = "invalid" },
			expectError:  "invalid log level",
		},
		{
			name:         "invalid log format",
			modifyConfig: func(c *Config) { c.Log.Format = "invalid" },
			expectError:  "invalid log format",
		},
		{
			name:         "empty database dsn",
			modifyConfig: func(c *Config) { c.Database.DSN = "" },
			expectError:  "database.dsn must not be empty",
		},
		{
			name:         "expense threshold out of range",
			modifyConfig: func(c *Config) { c.Reports.ExpenseThreshold = 1.5 },
			expectError:  "expense_threshold",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := valid()
			tt.modifyConfig(config)
			err := validateConfig(config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}

func TestConfigureLoggingFromConfig(t *testing.T) {
	c := &Config{}
	c.Log.Level = "debug"
	c.Log.Format = "json"

	logger := ConfigureLoggingFromConfig(c)
	assert.Equal(t, "debug", logger.GetLevel().String())
}
