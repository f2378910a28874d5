// Package reports queries the database and produces summary reports.
package reports

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"gorm.io/gorm"

	"dmascari/rental-tracker/internal/dateutils"
	"dmascari/rental-tracker/internal/logging"
	"dmascari/rental-tracker/internal/store"
)

// PropertySummary is one property's performance for a period.
type PropertySummary struct {
	Address       string  `csv:"address"`
	OwnerName     string  `csv:"owner"`
	CurrentRent   float64 `csv:"current_rent"`
	TotalIncome   float64 `csv:"total_income"`
	TotalExpenses float64 `csv:"total_expenses"`
	TotalRepairs  float64 `csv:"total_repairs"`
	NOI           float64 `csv:"noi"`
	NOIMargin     float64 `csv:"noi_margin"`
}

// PortfolioSummary aggregates the whole portfolio for a period.
type PortfolioSummary struct {
	TotalProperties       int
	TotalIncome           float64
	TotalExpenses         float64
	TotalNOI              float64
	AverageNOIMargin      float64
	TotalRepairs          float64
	PropertiesWithRepairs int
}

// Period is one report period; zero values mean "latest".
type Period struct {
	Start time.Time
	End   time.Time
}

// Generator produces reports from an injected database handle.
type Generator struct {
	db     *store.Database
	logger logging.Logger
}

// NewGenerator creates a report generator.
func NewGenerator(db *store.Database, logger logging.Logger) *Generator {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Generator{db: db, logger: logger}
}

// LatestPeriod returns the most recent report period, or ok=false when the
// database holds no reports yet.
func (g *Generator) LatestPeriod() (Period, bool, error) {
	var report store.MonthlyReport
	err := g.db.DB().Order("period_end DESC").First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Period{}, false, nil
		}
		return Period{}, false, err
	}
	return Period{Start: report.PeriodStart, End: report.PeriodEnd}, true, nil
}

func (g *Generator) resolvePeriod(period Period) (Period, bool, error) {
	if !period.Start.IsZero() && !period.End.IsZero() {
		return period, true, nil
	}
	return g.LatestPeriod()
}

// PortfolioSummary aggregates all property months for the period.
func (g *Generator) PortfolioSummary(period Period) (PortfolioSummary, error) {
	var summary PortfolioSummary

	period, ok, err := g.resolvePeriod(period)
	if err != nil || !ok {
		return summary, err
	}

	var months []store.PropertyMonth
	err = g.db.DB().
		Joins("JOIN monthly_reports ON monthly_reports.id = property_months.monthly_report_id").
		Where("monthly_reports.period_start = ? AND monthly_reports.period_end = ?", period.Start, period.End).
		Find(&months).Error
	if err != nil {
		return summary, err
	}

	for _, m := range months {
		summary.TotalProperties++
		summary.TotalIncome += m.TotalIncome
		summary.TotalExpenses += m.TotalExpenses
		summary.TotalNOI += m.NOI
		summary.TotalRepairs += m.Repairs
		if m.Repairs > 0 {
			summary.PropertiesWithRepairs++
		}
	}
	if summary.TotalIncome > 0 {
		summary.AverageNOIMargin = summary.TotalNOI / summary.TotalIncome
	}

	return summary, nil
}

// PropertySummaries returns per-property rows for the period, sorted
// descending by orderBy: one of "noi", "income", "expenses", "repairs",
// "margin". Unknown values fall back to "noi".
func (g *Generator) PropertySummaries(period Period, orderBy string) ([]PropertySummary, error) {
	period, ok, err := g.resolvePeriod(period)
	if err != nil || !ok {
		return nil, err
	}

	type row struct {
		store.PropertyMonth
		Address     string
		OwnerName   string
		CurrentRent float64
	}

	var rows []row
	err = g.db.DB().Model(&store.PropertyMonth{}).
		Select("property_months.*, properties.address AS address, properties.current_rent AS current_rent, owners.name AS owner_name").
		Joins("JOIN properties ON properties.id = property_months.property_id").
		Joins("JOIN owners ON owners.id = properties.owner_id").
		Joins("JOIN monthly_reports ON monthly_reports.id = property_months.monthly_report_id").
		Where("monthly_reports.period_start = ? AND monthly_reports.period_end = ?", period.Start, period.End).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	summaries := make([]PropertySummary, 0, len(rows))
	for _, r := range rows {
		summaries = append(summaries, PropertySummary{
			Address:       r.Address,
			OwnerName:     r.OwnerName,
			CurrentRent:   r.CurrentRent,
			TotalIncome:   r.TotalIncome,
			TotalExpenses: r.TotalExpenses,
			TotalRepairs:  r.Repairs,
			NOI:           r.NOI,
			NOIMargin:     r.NOIMargin,
		})
	}

	key := func(s PropertySummary) float64 { return s.NOI }
	switch orderBy {
	case "income":
		key = func(s PropertySummary) float64 { return s.TotalIncome }
	case "expenses":
		key = func(s PropertySummary) float64 { return s.TotalExpenses }
	case "repairs":
		key = func(s PropertySummary) float64 { return s.TotalRepairs }
	case "margin":
		key = func(s PropertySummary) float64 { return s.NOIMargin }
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return key(summaries[i]) > key(summaries[j])
	})

	return summaries, nil
}

// HighExpenseProperties returns properties whose expense share exceeds the
// threshold, i.e. NOI margin below 1-threshold.
func (g *Generator) HighExpenseProperties(period Period, threshold float64) ([]PropertySummary, error) {
	all, err := g.PropertySummaries(period, "noi")
	if err != nil {
		return nil, err
	}

	var flagged []PropertySummary
	for _, s := range all {
		if s.NOIMargin < 1-threshold {
			flagged = append(flagged, s)
		}
	}
	return flagged, nil
}

// ExpenseBreakdown returns total expense amounts per category for the period.
func (g *Generator) ExpenseBreakdown(period Period) (map[string]float64, error) {
	period, ok, err := g.resolvePeriod(period)
	if err != nil || !ok {
		return map[string]float64{}, err
	}

	type row struct {
		Category string
		Total    float64
	}
	var rows []row
	err = g.db.DB().Model(&store.Expense{}).
		Select("expenses.category AS category, SUM(expenses.amount) AS total").
		Joins("JOIN property_months ON property_months.id = expenses.property_month_id").
		Joins("JOIN monthly_reports ON monthly_reports.id = property_months.monthly_report_id").
		Where("monthly_reports.period_start = ? AND monthly_reports.period_end = ?", period.Start, period.End).
		Group("expenses.category").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	breakdown := make(map[string]float64, len(rows))
	for _, r := range rows {
		breakdown[r.Category] = r.Total
	}
	return breakdown, nil
}

// PrintSummary writes a formatted portfolio report to w.
func (g *Generator) PrintSummary(w io.Writer, expenseThreshold float64) error {
	period, ok, err := g.LatestPeriod()
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(w, "No data available.")
		return nil
	}

	fmt.Fprintf(w, "RENTAL PROPERTY SUMMARY REPORT\n")
	fmt.Fprintf(w, "Period: %s to %s\n\n", dateutils.ToISODate(period.Start), dateutils.ToISODate(period.End))

	summary, err := g.PortfolioSummary(period)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "PORTFOLIO OVERVIEW\n")
	fmt.Fprintf(w, "  Properties: %d\n", summary.TotalProperties)
	fmt.Fprintf(w, "  Total Income: $%.2f\n", summary.TotalIncome)
	fmt.Fprintf(w, "  Total Expenses: $%.2f\n", summary.TotalExpenses)
	fmt.Fprintf(w, "  Total NOI: $%.2f\n", summary.TotalNOI)
	fmt.Fprintf(w, "  Average NOI Margin: %.1f%%\n", summary.AverageNOIMargin*100)
	fmt.Fprintf(w, "  Total Repairs: $%.2f\n\n", summary.TotalRepairs)

	properties, err := g.PropertySummaries(period, "noi")
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "PROPERTY PERFORMANCE\n")
	for _, p := range properties {
		fmt.Fprintf(w, "  %s (%s)\n", p.Address, p.OwnerName)
		fmt.Fprintf(w, "      Income: $%.2f  Expenses: $%.2f  NOI: $%.2f (%.0f%%)\n",
			p.TotalIncome, p.TotalExpenses, p.NOI, p.NOIMargin*100)
	}

	breakdown, err := g.ExpenseBreakdown(period)
	if err != nil {
		return err
	}
	if len(breakdown) > 0 {
		fmt.Fprintf(w, "\nEXPENSE BREAKDOWN\n")
		categories := make([]string, 0, len(breakdown))
		for c := range breakdown {
			categories = append(categories, c)
		}
		sort.Slice(categories, func(i, j int) bool {
			return breakdown[categories[i]] > breakdown[categories[j]]
		})
		for _, c := range categories {
			fmt.Fprintf(w, "  %s: $%.2f\n", c, breakdown[c])
		}
	}

	flagged, err := g.HighExpenseProperties(period, expenseThreshold)
	if err != nil {
		return err
	}
	if len(flagged) > 0 {
		fmt.Fprintf(w, "\nALERTS\n")
		fmt.Fprintf(w, "  %d properties above %.0f%% expense ratio:\n", len(flagged), expenseThreshold*100)
		for _, p := range flagged {
			fmt.Fprintf(w, "    - %s: %.0f%% expense ratio\n", p.Address, (1-p.NOIMargin)*100)
		}
	}

	return nil
}
