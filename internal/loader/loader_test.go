package loader

import (
	"path/filepath"
	"testing"
	"time"

	"dmascari/rental-tracker/internal/logging"
	"dmascari/rental-tracker/internal/parsererror"
	"dmascari/rental-tracker/internal/statement"
	"dmascari/rental-tracker/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDatabase(t *testing.T) *store.Database {
	t.Helper()

	db, err := store.Open("sqlite:" + filepath.Join(t.TempDir(), "loader_test.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate())

	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

func dec(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func testPropertyBlock(address string) statement.PropertyBlock {
	return statement.PropertyBlock{
		Address:         address,
		CurrentRent:     dec(900),
		SecurityDeposit: dec(900),
		TotalIncome:     dec(900),
		TotalExpenses:   dec(240),
		MgmtFees:        dec(90),
		Repairs:         dec(150),
		NOI:             dec(660),
		Expenses: []statement.ExpenseLine{
			{Date: "09/12/2025", Vendor: "RotoRooter", Comment: "cleared kitchen drain", Amount: dec(150)},
		},
	}
}

func testOwnerBlock(name string) statement.OwnerBlock {
	return statement.OwnerBlock{
		OwnerName:   name,
		PeriodStart: "09/01/2025",
		PeriodEnd:   "09/30/2025",
		Income:      dec(3400),
		Expenses:    dec(640),
		Properties:  []statement.PropertyBlock{testPropertyBlock("123 Main St")},
	}
}

func testStatement(owners ...statement.OwnerBlock) *statement.ParsedStatement {
	return &statement.ParsedStatement{
		SourceFile:  "statement.pdf",
		ExtractedAt: time.Now(),
		Owners:      owners,
	}
}

func count(t *testing.T, db *store.Database, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.DB().Model(model).Count(&n).Error)
	return n
}

func TestLoadSingleOwner(t *testing.T) {
	db := openTestDatabase(t)
	l := New(db, nil, &logging.MockLogger{})

	stats, err := l.Load(testStatement(testOwnerBlock("Jane Smith")), "msg-1")
	require.NoError(t, err)

	assert.Equal(t, 1, stats.OwnersProcessed)
	assert.Equal(t, 1, stats.ReportsCreated)
	assert.Equal(t, 0, stats.ReportsSkipped)
	assert.Equal(t, 1, stats.PropertiesLoaded)
	assert.Equal(t, 1, stats.ExpensesLoaded)
	assert.Empty(t, stats.Errors)

	assert.EqualValues(t, 1, count(t, db, &store.Owner{}))
	assert.EqualValues(t, 1, count(t, db, &store.MonthlyReport{}))
	assert.EqualValues(t, 1, count(t, db, &store.PropertyMonth{}))
	assert.EqualValues(t, 1, count(t, db, &store.Expense{}))

	var expense store.Expense
	require.NoError(t, db.DB().First(&expense).Error)
	assert.Equal(t, "Plumbing", expense.Category)
	require.NotNil(t, expense.Date)
	assert.Equal(t, time.September, expense.Date.Month())

	var log store.ImportLog
	require.NoError(t, db.DB().First(&log).Error)
	assert.Equal(t, store.ImportStatusSuccess, log.Status)
	assert.Equal(t, "msg-1", log.EmailID)
	assert.Equal(t, 1, log.RecordsImported)
}

func TestLoadSameAddressForDifferentOwners(t *testing.T) {
	db := openTestDatabase(t)
	l := New(db, nil, &logging.MockLogger{})

	// Two owners can legitimately report the same street address; the
	// address is only unique within one owner's portfolio.
	stats, err := l.Load(testStatement(
		testOwnerBlock("Jane Smith"),
		testOwnerBlock("Alice Jones"),
	), "")
	require.NoError(t, err)

	assert.Equal(t, 2, stats.OwnersProcessed)
	assert.Equal(t, 2, stats.ReportsCreated)
	assert.Equal(t, 2, stats.PropertiesLoaded)
	assert.Empty(t, stats.Errors)

	assert.EqualValues(t, 2, count(t, db, &store.Owner{}))
	assert.EqualValues(t, 2, count(t, db, &store.Property{}))

	var log store.ImportLog
	require.NoError(t, db.DB().First(&log).Error)
	assert.Equal(t, store.ImportStatusSuccess, log.Status)
}

func TestLoadIsIdempotent(t *testing.T) {
	db := openTestDatabase(t)
	l := New(db, nil, &logging.MockLogger{})

	first, err := l.Load(testStatement(testOwnerBlock("Jane Smith")), "")
	require.NoError(t, err)
	require.Equal(t, 1, first.ReportsCreated)

	second, err := l.Load(testStatement(testOwnerBlock("Jane Smith")), "")
	require.NoError(t, err)

	assert.Equal(t, 0, second.ReportsCreated)
	assert.Equal(t, first.OwnersProcessed, second.ReportsSkipped)
	assert.Equal(t, 0, second.PropertiesLoaded)
	assert.Equal(t, 0, second.ExpensesLoaded)

	// No new child rows the second time around.
	assert.EqualValues(t, 1, count(t, db, &store.MonthlyReport{}))
	assert.EqualValues(t, 1, count(t, db, &store.PropertyMonth{}))
	assert.EqualValues(t, 1, count(t, db, &store.Expense{}))
}

func TestLoadDerivedMetrics(t *testing.T) {
	db := openTestDatabase(t)
	l := New(db, nil, &logging.MockLogger{})

	_, err := l.Load(testStatement(testOwnerBlock("Jane Smith")), "")
	require.NoError(t, err)

	var month store.PropertyMonth
	require.NoError(t, db.DB().First(&month).Error)
	assert.InDelta(t, 660.0/900.0, month.NOIMargin, 1e-9)
	assert.InDelta(t, 240.0/900.0, month.ExpenseRatio, 1e-9)
}

func TestLoadZeroIncomeRatios(t *testing.T) {
	db := openTestDatabase(t)
	l := New(db, nil, &logging.MockLogger{})

	block := testOwnerBlock("Jane Smith")
	block.Properties[0].TotalIncome = decimal.Zero
	_, err := l.Load(testStatement(block), "")
	require.NoError(t, err)

	var month store.PropertyMonth
	require.NoError(t, db.DB().First(&month).Error)
	assert.Zero(t, month.NOIMargin)
	assert.Zero(t, month.ExpenseRatio)
}

func TestLoadRollsBackWholeDocument(t *testing.T) {
	db := openTestDatabase(t)
	l := New(db, nil, &logging.MockLogger{})

	// Only the second owner block carries expense lines; dropping the
	// expenses table makes its persistence fail mid-document.
	first := testOwnerBlock("Jane Smith")
	first.Properties[0].Expenses = nil

	second := testOwnerBlock("Alice Jones")
	second.Properties[0].Address = "456 Oak Ave"

	require.NoError(t, db.DB().Migrator().DropTable(&store.Expense{}))

	_, err := l.Load(testStatement(first, second), "msg-2")
	require.Error(t, err)

	var loadErr *parsererror.LoadError
	assert.ErrorAs(t, err, &loadErr)

	// Nothing from either owner block survives the rollback.
	assert.EqualValues(t, 0, count(t, db, &store.Owner{}))
	assert.EqualValues(t, 0, count(t, db, &store.MonthlyReport{}))
	assert.EqualValues(t, 0, count(t, db, &store.PropertyMonth{}))

	// Exactly one failed import log remains as the durable trace.
	var logs []store.ImportLog
	require.NoError(t, db.DB().Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, store.ImportStatusFailed, logs[0].Status)
	assert.NotEmpty(t, logs[0].ErrorMessage)
}

func TestLoadCollectsFieldErrorsWithoutAborting(t *testing.T) {
	db := openTestDatabase(t)
	l := New(db, nil, &logging.MockLogger{})

	nameless := testOwnerBlock("")
	badPeriod := testOwnerBlock("Bob Brown")
	badPeriod.PeriodStart = "not a date"
	good := testOwnerBlock("Jane Smith")

	stats, err := l.Load(testStatement(nameless, badPeriod, good), "")
	require.NoError(t, err)

	assert.Len(t, stats.Errors, 2)
	assert.Equal(t, 1, stats.ReportsCreated)
	// The bad-period owner is still created; only its report is skipped.
	assert.Equal(t, 2, stats.OwnersProcessed)

	var log store.ImportLog
	require.NoError(t, db.DB().First(&log).Error)
	assert.Equal(t, store.ImportStatusPartial, log.Status)
	assert.Contains(t, log.ErrorMessage, "period for Bob Brown")
	assert.Contains(t, log.ErrorMessage, "owner block missing name")
}

func TestLoadUpdatesRentOnlyWithNonZeroValues(t *testing.T) {
	db := openTestDatabase(t)
	l := New(db, nil, &logging.MockLogger{})

	_, err := l.Load(testStatement(testOwnerBlock("Jane Smith")), "")
	require.NoError(t, err)

	later := testOwnerBlock("Jane Smith")
	later.PeriodStart = "10/01/2025"
	later.PeriodEnd = "10/31/2025"
	later.Properties[0].CurrentRent = dec(950)
	later.Properties[0].SecurityDeposit = decimal.Zero

	_, err = l.Load(testStatement(later), "")
	require.NoError(t, err)

	var prop store.Property
	require.NoError(t, db.DB().First(&prop).Error)
	assert.Equal(t, 950.0, prop.CurrentRent)
	// A zero incoming deposit never clears the stored value.
	assert.Equal(t, 900.0, prop.SecurityDeposit)

	// Same owner and address: no second property row was created.
	assert.EqualValues(t, 1, count(t, db, &store.Property{}))
	assert.EqualValues(t, 2, count(t, db, &store.MonthlyReport{}))
}

func TestLoadSkipsPropertyWithoutAddress(t *testing.T) {
	db := openTestDatabase(t)
	l := New(db, nil, &logging.MockLogger{})

	block := testOwnerBlock("Jane Smith")
	block.Properties = append(block.Properties, statement.PropertyBlock{})

	stats, err := l.Load(testStatement(block), "")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.PropertiesLoaded)
}
