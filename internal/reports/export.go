package reports

import (
	"os"
	"sort"

	"github.com/gocarina/gocsv"

	"dmascari/rental-tracker/internal/logging"
)

// Delimiter defines the CSV separator used by the export functions.
var Delimiter = ','

// exportLog is the logger used by the CSV export helpers.
var exportLog logging.Logger = logging.NewLogrusAdapter("info", "text")

// SetLogger sets the logger for CSV exports.
func SetLogger(logger logging.Logger) {
	if logger != nil {
		exportLog = logger
	}
}

// expenseCategoryRow is the CSV shape for the expense breakdown export.
type expenseCategoryRow struct {
	Category string  `csv:"category"`
	Total    float64 `csv:"total"`
}

// WritePropertySummariesToCSV writes per-property summary rows to csvFile.
func WritePropertySummariesToCSV(summaries []PropertySummary, csvFile string) error {
	exportLog.WithFields(
		logging.Field{Key: "csvFile", Value: csvFile},
		logging.Field{Key: "count", Value: len(summaries)},
	).Info("Writing property summaries to CSV file")

	gocsv.TagSeparator = string(Delimiter)

	f, err := os.Create(csvFile)
	if err != nil {
		exportLog.WithError(err).Error("Failed to create CSV file")
		return err
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&summaries, f); err != nil {
		exportLog.WithError(err).Error("Failed to write CSV data")
		return err
	}

	exportLog.WithField("count", len(summaries)).Info("Successfully wrote property summaries to CSV")
	return nil
}

// WriteExpenseBreakdownToCSV writes category totals to csvFile, largest first.
func WriteExpenseBreakdownToCSV(breakdown map[string]float64, csvFile string) error {
	rows := make([]expenseCategoryRow, 0, len(breakdown))
	for category, total := range breakdown {
		rows = append(rows, expenseCategoryRow{Category: category, Total: total})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Total > rows[j].Total })

	exportLog.WithFields(
		logging.Field{Key: "csvFile", Value: csvFile},
		logging.Field{Key: "count", Value: len(rows)},
	).Info("Writing expense breakdown to CSV file")

	f, err := os.Create(csvFile)
	if err != nil {
		exportLog.WithError(err).Error("Failed to create CSV file")
		return err
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&rows, f); err != nil {
		exportLog.WithError(err).Error("Failed to write CSV data")
		return err
	}

	return nil
}
