package statement

import (
	"strings"

	"dmascari/rental-tracker/internal/amount"
)

// parsePropertySection extracts one property block from a detail page.
// The address is the first non-blank line; a page without one cannot be
// attributed to a property and is reported as not ok.
func parsePropertySection(layout *Layout, page string) (PropertyBlock, bool) {
	block := PropertyBlock{Expenses: []ExpenseLine{}}

	for _, line := range strings.Split(strings.TrimSpace(page), "\n") {
		if trimmed := trim(line); trimmed != "" {
			block.Address = trimmed
			break
		}
	}
	if block.Address == "" {
		return block, false
	}

	if m := layout.rent.FindStringSubmatch(page); m != nil {
		block.CurrentRent = amount.Normalize(m[1])
	}
	if m := layout.deposit.FindStringSubmatch(page); m != nil {
		block.SecurityDeposit = amount.Normalize(m[1])
	}
	if m := layout.totalIncome.FindStringSubmatch(page); m != nil {
		block.TotalIncome = amount.Normalize(m[1])
	}
	if m := layout.totalExpenses.FindStringSubmatch(page); m != nil {
		block.TotalExpenses = amount.Normalize(m[1])
	}
	if m := layout.mgmtFees.FindStringSubmatch(page); m != nil {
		block.MgmtFees = amount.Normalize(m[1])
	}
	// Repairs are absent on many statements; the field stays zero then.
	if m := layout.repairs.FindStringSubmatch(page); m != nil {
		block.Repairs = amount.Normalize(m[1])
	}
	if m := layout.noi.FindStringSubmatch(page); m != nil {
		block.NOI = amount.Normalize(m[1])
	}

	for _, m := range layout.expenseLine.FindAllStringSubmatch(page, -1) {
		block.Expenses = append(block.Expenses, ExpenseLine{
			Date:    trim(m[1]),
			Vendor:  trim(m[2]),
			Comment: trim(m[3]),
			Amount:  amount.Normalize(m[4]),
		})
	}

	return block, true
}

func trim(s string) string {
	return strings.TrimSpace(s)
}
