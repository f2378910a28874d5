// Package parse handles the statement parsing command
package parse

import (
	"encoding/json"
	"os"

	"dmascari/rental-tracker/cmd/root"
	"dmascari/rental-tracker/internal/statement"

	"github.com/spf13/cobra"
)

// Cmd represents the parse command
var Cmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse an owner statement PDF and print the result as JSON",
	Long: `Parse a single PDF statement and print the structured result to
stdout or the output file. Nothing is written to the database.`,
	Run: parseFunc,
}

func parseFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogger()

	input := root.SharedFlags.Input
	if input == "" && len(args) > 0 {
		input = args[0]
	}
	if input == "" {
		logger.Fatal("No input file given, use -i or a positional argument")
	}

	parser := statement.NewParser(nil, nil, root.Cfg.Ingest.PlaceholderOwner, logger)
	parsed, err := parser.ParseFile(input)
	if err != nil {
		logger.Fatalf("Failed to parse %s: %v", input, err)
	}

	out := os.Stdout
	if root.SharedFlags.Output != "" {
		f, err := os.Create(root.SharedFlags.Output)
		if err != nil {
			logger.Fatalf("Failed to create output file: %v", err)
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(parsed); err != nil {
		logger.Fatalf("Failed to encode result: %v", err)
	}
}
