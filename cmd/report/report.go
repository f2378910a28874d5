// Package report handles the portfolio reporting commands
package report

import (
	"os"

	"dmascari/rental-tracker/cmd/root"
	"dmascari/rental-tracker/internal/reports"

	"github.com/spf13/cobra"
)

// Cmd represents the report command
var Cmd = &cobra.Command{
	Use:   "report",
	Short: "Print a portfolio summary for the latest period",
	Long: `Print portfolio totals, per-property performance, expense breakdown
and high-expense alerts for the most recent imported period.`,
	Run: reportFunc,
}

var (
	orderBy   string
	exportCSV string
	breakdown bool
)

func init() {
	Cmd.Flags().StringVar(&orderBy, "order-by", "noi", "Sort properties by: noi, income, expenses, repairs, margin")
	Cmd.Flags().StringVar(&exportCSV, "csv", "", "Write the property summaries to a CSV file")
	Cmd.Flags().BoolVar(&breakdown, "breakdown", false, "Export the expense breakdown instead of property summaries")
}

func reportFunc(cmd *cobra.Command, args []string) {
	logger := root.GetLogger()

	db, err := root.OpenDatabase()
	if err != nil {
		logger.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	gen := reports.NewGenerator(db, logger)

	if exportCSV != "" {
		if breakdown {
			data, err := gen.ExpenseBreakdown(reports.Period{})
			if err != nil {
				logger.Fatalf("Failed to build expense breakdown: %v", err)
			}
			if err := reports.WriteExpenseBreakdownToCSV(data, exportCSV); err != nil {
				logger.Fatalf("Failed to write CSV: %v", err)
			}
		} else {
			summaries, err := gen.PropertySummaries(reports.Period{}, orderBy)
			if err != nil {
				logger.Fatalf("Failed to build property summaries: %v", err)
			}
			if err := reports.WritePropertySummariesToCSV(summaries, exportCSV); err != nil {
				logger.Fatalf("Failed to write CSV: %v", err)
			}
		}
		root.Log.Info("CSV export completed successfully!")
		return
	}

	if err := gen.PrintSummary(os.Stdout, root.Cfg.Reports.ExpenseThreshold); err != nil {
		logger.Fatalf("Failed to print summary: %v", err)
	}
}
