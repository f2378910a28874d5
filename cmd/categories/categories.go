// Package categories handles the expense-category rule commands
package categories

import (
	"path/filepath"

	"dmascari/rental-tracker/cmd/root"
	"dmascari/rental-tracker/internal/categorizer"
	"dmascari/rental-tracker/internal/fileutils"

	"github.com/spf13/cobra"
)

// Cmd represents the categories command
var Cmd = &cobra.Command{
	Use:   "categories",
	Short: "Expense category rule commands",
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the built-in category rules to an editable YAML file",
	Long: `Write the built-in category rule table to a YAML file. Point
categories.file at it in the config to customize expense categorization.`,
	Run: initFunc,
}

func init() {
	Cmd.AddCommand(initCmd)
}

func initFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogger()

	output := root.SharedFlags.Output
	if output == "" {
		output = root.Cfg.Categories.File
	}
	if output == "" {
		logger.Fatal("No output file given, use -o or set categories.file in the config")
	}

	if dir := filepath.Dir(output); dir != "." {
		if err := fileutils.EnsureDirectoryExists(dir); err != nil {
			logger.Fatalf("Failed to create directory for %s: %v", output, err)
		}
	}

	if err := categorizer.SaveRules(output, categorizer.DefaultRules()); err != nil {
		logger.Fatalf("Failed to write category rules: %v", err)
	}
	root.Log.Infof("Wrote category rules to %s", output)
}
