// Package ingest handles the statement ingestion command
package ingest

import (
	"dmascari/rental-tracker/cmd/root"
	"dmascari/rental-tracker/internal/categorizer"
	"dmascari/rental-tracker/internal/fileutils"
	"dmascari/rental-tracker/internal/loader"
	"dmascari/rental-tracker/internal/statement"

	"github.com/spf13/cobra"
)

// Cmd represents the ingest command
var Cmd = &cobra.Command{
	Use:   "ingest",
	Short: "Parse owner statement PDFs and load them into the database",
	Long: `Parse one PDF file or every PDF in a directory and load the
results into the database. Already-imported periods are skipped.`,
	Run: ingestFunc,
}

var emailID string

func init() {
	Cmd.Flags().StringVar(&emailID, "email-id", "", "Email message ID to record in the import log")
}

func ingestFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogger()

	input := root.SharedFlags.Input
	if input == "" && len(args) > 0 {
		input = args[0]
	}
	if input == "" {
		logger.Fatal("No input file or directory given, use -i or a positional argument")
	}

	if !fileutils.FileExists(input) && !fileutils.DirectoryExists(input) {
		logger.Fatalf("Input %s does not exist", input)
	}

	files := []string{input}
	if fileutils.DirectoryExists(input) {
		var err error
		files, err = fileutils.ListPDFFiles(input)
		if err != nil {
			logger.Fatalf("Failed to list PDF files in %s: %v", input, err)
		}
		if len(files) == 0 {
			logger.Warn("No PDF files found in directory")
			return
		}
	}

	db, err := root.OpenDatabase()
	if err != nil {
		logger.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	cat := buildCategorizer()
	parser := statement.NewParser(nil, nil, root.Cfg.Ingest.PlaceholderOwner, logger)
	ld := loader.New(db, cat, logger)

	failures := 0
	for _, file := range files {
		parsed, err := parser.ParseFile(file)
		if err != nil {
			logger.WithError(err).Error("Failed to parse " + file)
			failures++
			continue
		}

		stats, err := ld.Load(parsed, emailID)
		if err != nil {
			logger.WithError(err).Error("Failed to load " + file)
			failures++
			continue
		}

		root.Log.Infof("%s: %d owners, %d reports created, %d skipped, %d properties, %d expenses",
			file, stats.OwnersProcessed, stats.ReportsCreated, stats.ReportsSkipped,
			stats.PropertiesLoaded, stats.ExpensesLoaded)
		for _, msg := range stats.Errors {
			logger.Warn(msg)
		}
	}

	if failures > 0 {
		logger.Fatalf("%d of %d files failed", failures, len(files))
	}
	root.Log.Info("Ingestion completed successfully!")
}

func buildCategorizer() *categorizer.Categorizer {
	logger := root.GetLogger()
	if path := root.Cfg.Categories.File; path != "" {
		rules, err := categorizer.LoadRules(path)
		if err != nil {
			logger.WithError(err).Warn("Failed to load category rules, using defaults")
			return categorizer.NewCategorizer(logger)
		}
		return categorizer.NewCategorizerWithRules(rules, logger)
	}
	return categorizer.NewCategorizer(logger)
}
