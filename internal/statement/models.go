// Package statement parses owner-statement text into typed records.
package statement

import (
	"time"

	"github.com/shopspring/decimal"
)

// ParsedStatement is the full result of parsing one statement document.
type ParsedStatement struct {
	SourceFile  string       `json:"source_file"`
	ExtractedAt time.Time    `json:"extraction_timestamp"`
	Owners      []OwnerBlock `json:"owners"`
}

// OwnerBlock holds one owner's portfolio summary and property details.
// Period dates stay as raw strings here; the loader validates them because
// they form the idempotence key for the report.
type OwnerBlock struct {
	OwnerName   string `json:"owner_name"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`

	PreviousBalance  decimal.Decimal `json:"previous_balance"`
	Income           decimal.Decimal `json:"income"`
	Expenses         decimal.Decimal `json:"expenses"`
	MgmtFees         decimal.Decimal `json:"mgmt_fees"`
	Total            decimal.Decimal `json:"total"`
	Contributions    decimal.Decimal `json:"contributions"`
	Draws            decimal.Decimal `json:"draws"`
	EndingBalance    decimal.Decimal `json:"ending_balance"`
	PortfolioMinimum decimal.Decimal `json:"portfolio_minimum"`
	UnpaidBillsTotal decimal.Decimal `json:"unpaid_bills_total"`
	DueToOwner       decimal.Decimal `json:"due_to_owner"`

	GeneratedDate string `json:"generated_date,omitempty"`
	GeneratedTime string `json:"generated_time,omitempty"`

	Properties []PropertyBlock `json:"properties"`
}

// PropertyBlock holds one property's detail section.
type PropertyBlock struct {
	Address         string          `json:"address"`
	CurrentRent     decimal.Decimal `json:"current_rent"`
	SecurityDeposit decimal.Decimal `json:"security_deposit"`
	TotalIncome     decimal.Decimal `json:"total_income"`
	TotalExpenses   decimal.Decimal `json:"total_expenses"`
	MgmtFees        decimal.Decimal `json:"mgmt_fees"`
	Repairs         decimal.Decimal `json:"repairs"`
	NOI             decimal.Decimal `json:"noi"`
	Expenses        []ExpenseLine   `json:"expense_details"`
}

// ExpenseLine is one itemized charge on a property detail page.
type ExpenseLine struct {
	Date    string          `json:"date"`
	Vendor  string          `json:"vendor"`
	Comment string          `json:"comment"`
	Amount  decimal.Decimal `json:"amount"`
}
