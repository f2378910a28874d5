// Package config provides Viper-based hierarchical configuration management.
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Database struct {
		DSN string `mapstructure:"dsn" yaml:"dsn"`
	} `mapstructure:"database" yaml:"database"`

	Ingest struct {
		// PlaceholderOwner is the default-identity name some statements embed
		// alongside the real owner; duplicate blocks under this name are dropped.
		PlaceholderOwner string `mapstructure:"placeholder_owner" yaml:"placeholder_owner"`
	} `mapstructure:"ingest" yaml:"ingest"`

	Categories struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"categories" yaml:"categories"`

	Reports struct {
		ExpenseThreshold float64 `mapstructure:"expense_threshold" yaml:"expense_threshold"`
	} `mapstructure:"reports" yaml:"reports"`
}

// InitializeConfig loads configuration from defaults, an optional config file
// and RENTAL_* environment variables, in increasing precedence.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.rental-tracker")
	v.AddConfigPath(".rental-tracker")
	v.AddConfigPath(".")

	v.SetEnvPrefix("RENTAL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Continue with defaults and env vars; a broken file is not fatal.
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// The database URL keeps its conventional unprefixed name.
	if err := v.BindEnv("database.dsn", "DATABASE_URL"); err != nil {
		fmt.Printf("Warning: failed to bind DATABASE_URL environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("database.dsn", "sqlite:rental_tracker.db")

	v.SetDefault("ingest.placeholder_owner", "David Mascari")

	v.SetDefault("categories.file", "")

	v.SetDefault("reports.expense_threshold", 0.3)
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level '%s'", config.Log.Level)
	}

	format := strings.ToLower(config.Log.Format)
	if format != "text" && format != "json" {
		return fmt.Errorf("invalid log format '%s', must be 'text' or 'json'", config.Log.Format)
	}

	if config.Database.DSN == "" {
		return fmt.Errorf("database.dsn must not be empty")
	}

	if config.Reports.ExpenseThreshold < 0 || config.Reports.ExpenseThreshold >= 1 {
		return fmt.Errorf("reports.expense_threshold must be in [0, 1)")
	}

	return nil
}

// ConfigureLoggingFromConfig applies the log section to a fresh logrus logger.
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return logger
}
