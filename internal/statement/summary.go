package statement

import "dmascari/rental-tracker/internal/amount"

// parsePortfolioSummary extracts one owner block from a summary page.
// Amount fields whose label is absent stay zero; a missing owner name or
// period is left empty and surfaces as a validation error at load time.
func parsePortfolioSummary(layout *Layout, page string) OwnerBlock {
	var block OwnerBlock

	if m := layout.ownerAnchored.FindStringSubmatch(page); m != nil {
		block.OwnerName = trim(m[1])
	} else if m := layout.ownerBare.FindStringSubmatch(page); m != nil {
		block.OwnerName = trim(m[1])
	}

	if m := layout.period.FindStringSubmatch(page); m != nil {
		block.PeriodStart = m[1]
		block.PeriodEnd = m[2]
	}

	for _, rule := range layout.summaryAmounts {
		if m := rule.pattern.FindStringSubmatch(page); m != nil {
			rule.assign(&block, amount.Normalize(m[1]))
		}
	}

	if m := layout.generated.FindStringSubmatch(page); m != nil {
		block.GeneratedDate = m[1]
		block.GeneratedTime = m[2]
	}

	block.Properties = []PropertyBlock{}
	return block
}
