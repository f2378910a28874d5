package statement

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Layout is the pattern table for one vendor's statement format. The parsers
// anchor on these markers and expressions instead of hardcoding them, so a
// second layout can be added without touching the page-walking logic.
type Layout struct {
	Name string

	// Document-level markers used by the format probe.
	VendorMarker    string
	StatementMarker string
	SummaryMarker   string

	// Detail-page markers. Classification only inspects the top of the page:
	// DetailTopMarker within the first DetailTopWindow characters and
	// RentMarker within the first RentWindow characters.
	DetailTopMarker string
	DetailTopWindow int
	RentMarker      string
	RentWindow      int

	ownerAnchored *regexp.Regexp
	ownerBare     *regexp.Regexp
	period        *regexp.Regexp
	generated     *regexp.Regexp

	summaryAmounts []summaryAmountRule

	rent          *regexp.Regexp
	deposit       *regexp.Regexp
	totalIncome   *regexp.Regexp
	totalExpenses *regexp.Regexp
	mgmtFees      *regexp.Regexp
	repairs       *regexp.Regexp
	noi           *regexp.Regexp
	expenseLine   *regexp.Regexp
}

// summaryAmountRule binds one labeled amount pattern to its OwnerBlock field.
type summaryAmountRule struct {
	label   string
	pattern *regexp.Regexp
	assign  func(*OwnerBlock, decimal.Decimal)
}

// Matches reports whether the extracted text carries all three markers of
// this layout. Used by the upstream router to decide between the
// deterministic parser and a fallback extractor.
func (l *Layout) Matches(text string) bool {
	return strings.Contains(text, l.VendorMarker) &&
		strings.Contains(text, l.StatementMarker) &&
		strings.Contains(text, l.SummaryMarker)
}

// MidSouth returns the layout grammar for Mid South Best Rentals owner
// statements, the single format the deterministic pipeline supports.
func MidSouth() *Layout {
	amt := `(-?\$?[\d,.-]+)`

	return &Layout{
		Name: "midsouth",

		VendorMarker:    "Mid South Best Rentals",
		StatementMarker: "OWNER STATEMENT",
		SummaryMarker:   "Portfolio Summary",

		DetailTopMarker: "Current",
		DetailTopWindow: 200,
		RentMarker:      "Rent:",
		RentWindow:      300,

		// Owner name sits on the same line as the statement marker; the bare
		// pattern is the fallback for layouts that put it on its own line.
		ownerAnchored: regexp.MustCompile(`(?m)^([A-Z][a-z]+ [A-Z][a-z]+)\s+OWNER STATEMENT`),
		ownerBare:     regexp.MustCompile(`(?m)^([A-Z][a-z]+ [A-Z][a-z]+)\s*$`),
		period:        regexp.MustCompile(`Report Period:\s*(\d{2}/\d{2}/\d{4})\s*-\s*(\d{2}/\d{2}/\d{4})`),
		generated:     regexp.MustCompile(`Generated\s+(\d{2}/\d{2}/\d{4}),\s+(\d{1,2}:\d{2}\s+[AP]M)`),

		summaryAmounts: []summaryAmountRule{
			{"previous_balance", regexp.MustCompile(`Previous Balance\s+` + amt),
				func(o *OwnerBlock, v decimal.Decimal) { o.PreviousBalance = v }},
			{"income", regexp.MustCompile(`Income\s+\+\s+` + amt),
				func(o *OwnerBlock, v decimal.Decimal) { o.Income = v }},
			{"expenses", regexp.MustCompile(`Expenses\s+-\s+` + amt),
				func(o *OwnerBlock, v decimal.Decimal) { o.Expenses = v }},
			{"mgmt_fees", regexp.MustCompile(`Mgmt Fees\s+-\s+` + amt),
				func(o *OwnerBlock, v decimal.Decimal) { o.MgmtFees = v }},
			{"total", regexp.MustCompile(`Total\s+` + amt),
				func(o *OwnerBlock, v decimal.Decimal) { o.Total = v }},
			{"contributions", regexp.MustCompile(`Contributions\s+\+\s+` + amt),
				func(o *OwnerBlock, v decimal.Decimal) { o.Contributions = v }},
			{"draws", regexp.MustCompile(`Draws\s+-\s+` + amt),
				func(o *OwnerBlock, v decimal.Decimal) { o.Draws = v }},
			{"ending_balance", regexp.MustCompile(`Ending Balance\s+` + amt),
				func(o *OwnerBlock, v decimal.Decimal) { o.EndingBalance = v }},
			{"portfolio_minimum", regexp.MustCompile(`Portfolio Minimum\s+-\s+` + amt),
				func(o *OwnerBlock, v decimal.Decimal) { o.PortfolioMinimum = v }},
			{"unpaid_bills_total", regexp.MustCompile(`Unpaid Bills\s+-\s+` + amt),
				func(o *OwnerBlock, v decimal.Decimal) { o.UnpaidBillsTotal = v }},
			{"due_to_owner", regexp.MustCompile(`Due To Owner\s+` + amt),
				func(o *OwnerBlock, v decimal.Decimal) { o.DueToOwner = v }},
		},

		rent:          regexp.MustCompile(`Rent:\s*\$?([\d,.-]+)`),
		deposit:       regexp.MustCompile(`Deposit:\s*\$?([\d,.-]+)`),
		totalIncome:   regexp.MustCompile(`Total Income for [^$]+\$?([\d,.-]+)`),
		totalExpenses: regexp.MustCompile(`Total Expenses for [^$]+\$?([\d,.-]+)`),
		mgmtFees:      regexp.MustCompile(`Total Management Fees\s+\$?([\d,.-]+)`),
		repairs:       regexp.MustCompile(`Total Repairs\s+\$?([\d,.-]+)`),
		noi:           regexp.MustCompile(`Net Operating Income\s+\$?([\d,.-]+)`),
		expenseLine:   regexp.MustCompile(`Bill\s+(\d{2}/\d{2}/\d{4})\s+([^$]+?)\s+([^$]*?)\s+\$?([\d,.-]+)`),
	}
}
