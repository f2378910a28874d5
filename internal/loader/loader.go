// Package loader persists parsed statements as single atomic units.
package loader

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"dmascari/rental-tracker/internal/categorizer"
	"dmascari/rental-tracker/internal/dateutils"
	"dmascari/rental-tracker/internal/logging"
	"dmascari/rental-tracker/internal/parsererror"
	"dmascari/rental-tracker/internal/statement"
	"dmascari/rental-tracker/internal/store"

	"gorm.io/gorm"
)

// Stats summarizes one load call.
type Stats struct {
	OwnersProcessed  int
	ReportsCreated   int
	ReportsSkipped   int
	PropertiesLoaded int
	ExpensesLoaded   int
	Errors           []string
}

// Loader writes parsed statements to the database. The database handle and
// categorizer are injected; the loader holds no global state.
type Loader struct {
	db          *store.Database
	categorizer *categorizer.Categorizer
	logger      logging.Logger
}

// New creates a Loader. A nil categorizer gets the built-in rule table and a
// nil logger a default adapter.
func New(db *store.Database, cat *categorizer.Categorizer, logger logging.Logger) *Loader {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if cat == nil {
		cat = categorizer.NewCategorizer(logger)
	}
	return &Loader{
		db:          db,
		categorizer: cat,
		logger:      logger,
	}
}

// Load persists one parsed statement in a single transaction.
//
// Field-level problems (missing owner name, unparseable period) are collected
// into Stats.Errors and skip only their owner block; a report that already
// exists for (owner, period) is counted as skipped, not an error. Any
// persistence failure rolls the whole document back, writes a best-effort
// `failed` import log and returns a LoadError. On a clean commit a `success`
// or `partial` import log is written in the same transaction.
func (l *Loader) Load(parsed *statement.ParsedStatement, emailID string) (*Stats, error) {
	sourceFile := parsed.SourceFile
	if sourceFile == "" {
		sourceFile = "unknown"
	}

	stats := &Stats{Errors: []string{}}

	err := l.db.DB().Transaction(func(tx *gorm.DB) error {
		for _, block := range parsed.Owners {
			if err := l.loadOwnerBlock(tx, &block, sourceFile, stats); err != nil {
				return err
			}
		}

		status := store.ImportStatusSuccess
		if len(stats.Errors) > 0 {
			status = store.ImportStatusPartial
		}

		return tx.Create(&store.ImportLog{
			EmailID:         emailID,
			Filename:        sourceFile,
			Status:          status,
			RecordsImported: stats.PropertiesLoaded,
			ErrorMessage:    strings.Join(stats.Errors, "; "),
		}).Error
	})

	if err != nil {
		stats.Errors = append(stats.Errors, err.Error())

		// Best effort: the failed attempt must leave a durable trace, but a
		// failure to write it cannot mask the primary error.
		if logErr := l.db.DB().Create(&store.ImportLog{
			EmailID:      emailID,
			Filename:     sourceFile,
			Status:       store.ImportStatusFailed,
			ErrorMessage: err.Error(),
		}).Error; logErr != nil {
			l.logger.WithError(logErr).Warn("Failed to write failed-import log")
		}

		return stats, &parsererror.LoadError{SourceFile: sourceFile, Err: err}
	}

	l.logger.WithFields(
		logging.Field{Key: "source", Value: sourceFile},
		logging.Field{Key: "reports_created", Value: stats.ReportsCreated},
		logging.Field{Key: "reports_skipped", Value: stats.ReportsSkipped},
		logging.Field{Key: "properties", Value: stats.PropertiesLoaded},
		logging.Field{Key: "expenses", Value: stats.ExpensesLoaded},
	).Info("Statement loaded")

	return stats, nil
}

func (l *Loader) loadOwnerBlock(tx *gorm.DB, block *statement.OwnerBlock, sourceFile string, stats *Stats) error {
	if block.OwnerName == "" {
		stats.Errors = append(stats.Errors, "owner block missing name")
		return nil
	}

	owner, err := getOrCreateOwner(tx, block.OwnerName)
	if err != nil {
		return err
	}
	stats.OwnersProcessed++

	periodStart, startErr := dateutils.ParseDate(block.PeriodStart)
	periodEnd, endErr := dateutils.ParseDate(block.PeriodEnd)
	if startErr != nil || endErr != nil {
		cause := startErr
		if cause == nil {
			cause = endErr
		}
		// The period is part of the idempotence key; without it the block
		// cannot be safely imported.
		perr := &parsererror.ParseError{
			Parser: "statement",
			Field:  fmt.Sprintf("period for %s", block.OwnerName),
			Value:  block.PeriodStart + " - " + block.PeriodEnd,
			Err:    cause,
		}
		stats.Errors = append(stats.Errors, perr.Error())
		return nil
	}
	periodStart = dateutils.Truncate(periodStart)
	periodEnd = dateutils.Truncate(periodEnd)

	var existing int64
	if err := tx.Model(&store.MonthlyReport{}).
		Where("owner_id = ? AND period_start = ? AND period_end = ?", owner.ID, periodStart, periodEnd).
		Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		stats.ReportsSkipped++
		l.logger.WithFields(
			logging.Field{Key: "owner", Value: owner.Name},
			logging.Field{Key: "period_start", Value: dateutils.ToISODate(periodStart)},
		).Debug("Skipping already-imported report")
		return nil
	}

	report := store.MonthlyReport{
		OwnerID:          owner.ID,
		PeriodStart:      periodStart,
		PeriodEnd:        periodEnd,
		PreviousBalance:  block.PreviousBalance.InexactFloat64(),
		Income:           block.Income.InexactFloat64(),
		Expenses:         block.Expenses.InexactFloat64(),
		MgmtFees:         block.MgmtFees.InexactFloat64(),
		Total:            block.Total.InexactFloat64(),
		Contributions:    block.Contributions.InexactFloat64(),
		Draws:            block.Draws.InexactFloat64(),
		EndingBalance:    block.EndingBalance.InexactFloat64(),
		PortfolioMinimum: block.PortfolioMinimum.InexactFloat64(),
		UnpaidBills:      block.UnpaidBillsTotal.InexactFloat64(),
		DueToOwner:       block.DueToOwner.InexactFloat64(),
		SourceFile:       sourceFile,
	}
	if err := tx.Create(&report).Error; err != nil {
		return err
	}
	stats.ReportsCreated++

	for _, propBlock := range block.Properties {
		if propBlock.Address == "" {
			continue
		}
		if err := l.loadPropertyBlock(tx, owner, &report, &propBlock, stats); err != nil {
			return err
		}
	}

	return nil
}

func (l *Loader) loadPropertyBlock(tx *gorm.DB, owner *store.Owner, report *store.MonthlyReport, block *statement.PropertyBlock, stats *Stats) error {
	prop, err := getOrCreateProperty(tx, owner, block)
	if err != nil {
		return err
	}

	income := block.TotalIncome.InexactFloat64()
	expenses := block.TotalExpenses.InexactFloat64()
	noi := block.NOI.InexactFloat64()
	noiMargin, expenseRatio := deriveRatios(income, expenses, noi)

	month := store.PropertyMonth{
		PropertyID:      prop.ID,
		MonthlyReportID: report.ID,
		TotalIncome:     income,
		TotalExpenses:   expenses,
		MgmtFees:        block.MgmtFees.InexactFloat64(),
		Repairs:         block.Repairs.InexactFloat64(),
		NOI:             noi,
		NOIMargin:       noiMargin,
		ExpenseRatio:    expenseRatio,
	}
	if err := tx.Create(&month).Error; err != nil {
		return err
	}
	stats.PropertiesLoaded++

	for _, line := range block.Expenses {
		var date *time.Time
		if parsed, err := dateutils.ParseDate(line.Date); err == nil {
			truncated := dateutils.Truncate(parsed)
			date = &truncated
		}

		expense := store.Expense{
			PropertyMonthID: month.ID,
			Date:            date,
			Vendor:          line.Vendor,
			Description:     line.Comment,
			Amount:          line.Amount.InexactFloat64(),
			Category:        l.categorizer.Categorize(line.Comment),
		}
		if err := tx.Create(&expense).Error; err != nil {
			return err
		}
		stats.ExpensesLoaded++
	}

	return nil
}

// deriveRatios computes NOI margin and expense ratio, both 0 when income is
// not positive so a vacant month never divides by zero.
func deriveRatios(income, expenses, noi float64) (noiMargin, expenseRatio float64) {
	if income <= 0 {
		return 0, 0
	}
	return noi / income, expenses / income
}

func getOrCreateOwner(tx *gorm.DB, name string) (*store.Owner, error) {
	var owner store.Owner
	err := tx.Where("name = ?", name).First(&owner).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		owner = store.Owner{Name: name}
		if err := tx.Create(&owner).Error; err != nil {
			return nil, err
		}
		return &owner, nil
	}
	if err != nil {
		return nil, err
	}
	return &owner, nil
}

// getOrCreateProperty looks up a property by (owner, address), creating it on
// first sighting. Rent and deposit are only ever overwritten with non-zero
// incoming values; a statement that omits them never clears stored ones.
func getOrCreateProperty(tx *gorm.DB, owner *store.Owner, block *statement.PropertyBlock) (*store.Property, error) {
	rent := block.CurrentRent.InexactFloat64()
	deposit := block.SecurityDeposit.InexactFloat64()

	var prop store.Property
	err := tx.Where("owner_id = ? AND address = ?", owner.ID, block.Address).First(&prop).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		prop = store.Property{
			OwnerID:         owner.ID,
			Address:         block.Address,
			CurrentRent:     rent,
			SecurityDeposit: deposit,
			IsActive:        true,
		}
		if err := tx.Create(&prop).Error; err != nil {
			return nil, err
		}
		return &prop, nil
	}
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if rent > 0 && rent != prop.CurrentRent {
		updates["current_rent"] = rent
		prop.CurrentRent = rent
	}
	if deposit > 0 && deposit != prop.SecurityDeposit {
		updates["security_deposit"] = deposit
		prop.SecurityDeposit = deposit
	}
	if len(updates) > 0 {
		if err := tx.Model(&prop).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return &prop, nil
}
