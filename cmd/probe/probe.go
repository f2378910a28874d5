// Package probe handles the document classification command
package probe

import (
	"fmt"

	"dmascari/rental-tracker/cmd/root"
	"dmascari/rental-tracker/internal/classifier"
	"dmascari/rental-tracker/internal/statement"

	"github.com/spf13/cobra"
)

// Cmd represents the probe command
var Cmd = &cobra.Command{
	Use:   "probe",
	Short: "Detect the document type of a PDF",
	Long:  `Classify a PDF without parsing or loading it.`,
	Run:   probeFunc,
}

func probeFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogger()

	input := root.SharedFlags.Input
	if input == "" && len(args) > 0 {
		input = args[0]
	}
	if input == "" {
		logger.Fatal("No input file given, use -i or a positional argument")
	}

	parser := statement.NewParser(nil, nil, root.Cfg.Ingest.PlaceholderOwner, logger)
	c := classifier.New(parser, logger)

	docType, confidence := c.ClassifyPDF(input)
	fmt.Printf("Document type: %s\n", docType)
	fmt.Printf("Confidence: %.2f\n", confidence)
}
