// Package root contains the root command for the application
package root

import (
	"dmascari/rental-tracker/internal/config"
	"dmascari/rental-tracker/internal/dateutils"
	"dmascari/rental-tracker/internal/fileutils"
	"dmascari/rental-tracker/internal/logging"
	"dmascari/rental-tracker/internal/reports"
	"dmascari/rental-tracker/internal/store"
	"dmascari/rental-tracker/internal/textextract"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input  string
	Output string
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cfg holds the loaded application configuration
	Cfg *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "rental-tracker",
		Short: "Ingest rental property owner statements into a portfolio database.",
		Long: `rental-tracker parses PDF owner statements from property managers,
loads them into a database and reports on portfolio performance.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to rental-tracker!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Failed to load configuration: %v", err)
			}
			Cfg = cfg
			Log = config.ConfigureLoggingFromConfig(cfg)

			// Propagate the configured logger to the parsing packages.
			dateutils.SetLogger(Log)
			textextract.SetLogger(Log)
			fileutils.SetLogger(Log)
			store.SetLogger(Log)
			reports.SetLogger(GetLogger())

			if DatabaseDSN != "" {
				Cfg.Database.DSN = DatabaseDSN
			}
		},
	}

	// SharedFlags are accessible to all commands
	SharedFlags = CommonFlags{}

	// DatabaseDSN overrides the configured database connection string
	DatabaseDSN string
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input PDF file or directory")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
	Cmd.PersistentFlags().StringVar(&DatabaseDSN, "db", "", "Database connection string (overrides config)")
}

// GetLogger returns the shared logger wrapped in the logging abstraction.
func GetLogger() logging.Logger {
	return logging.NewLogrusAdapterFromLogger(Log)
}

// OpenDatabase opens and migrates the configured database.
func OpenDatabase() (*store.Database, error) {
	db, err := store.Open(Cfg.Database.DSN)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
