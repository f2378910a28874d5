// Package db handles database maintenance commands
package db

import (
	"dmascari/rental-tracker/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the db command
var Cmd = &cobra.Command{
	Use:   "db",
	Short: "Database maintenance commands",
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Run: func(cmd *cobra.Command, args []string) {
		logger := root.GetLogger()
		db, err := root.OpenDatabase()
		if err != nil {
			logger.Fatalf("Failed to migrate database: %v", err)
		}
		defer db.Close()
		root.Log.Info("Database schema is up to date")
	},
}

var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Drop all tables",
	Long:  `Drop every table in the database. All imported data is lost.`,
	Run: func(cmd *cobra.Command, args []string) {
		logger := root.GetLogger()
		if !confirmed {
			logger.Fatal("Refusing to drop tables without --yes")
		}
		db, err := root.OpenDatabase()
		if err != nil {
			logger.Fatalf("Failed to open database: %v", err)
		}
		defer db.Close()
		if err := db.Drop(); err != nil {
			logger.Fatalf("Failed to drop tables: %v", err)
		}
		root.Log.Info("All tables dropped")
	},
}

var confirmed bool

func init() {
	dropCmd.Flags().BoolVar(&confirmed, "yes", false, "Confirm dropping all tables")
	Cmd.AddCommand(migrateCmd)
	Cmd.AddCommand(dropCmd)
}
