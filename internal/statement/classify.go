package statement

import "strings"

// PageClass is the classification of one extracted page.
type PageClass int

const (
	// PageOther is a page the pipeline ignores.
	PageOther PageClass = iota
	// PageSummary is an owner-level portfolio summary page.
	PageSummary
	// PagePropertyDetail is a per-property detail page.
	PagePropertyDetail
)

func (c PageClass) String() string {
	switch c {
	case PageSummary:
		return "summary"
	case PagePropertyDetail:
		return "property_detail"
	default:
		return "other"
	}
}

// ClassifyPage decides what kind of page this is. Classification is local:
// summary detection checks the whole page for both markers, detail detection
// only looks at the top of the page. A detail page is only meaningful when an
// owner context is open, i.e. a summary page preceded it in page order.
func (l *Layout) ClassifyPage(page string, hasOwnerContext bool) PageClass {
	if strings.Contains(page, l.StatementMarker) && strings.Contains(page, l.SummaryMarker) {
		return PageSummary
	}

	if hasOwnerContext &&
		strings.Contains(head(page, l.DetailTopWindow), l.DetailTopMarker) &&
		strings.Contains(head(page, l.RentWindow), l.RentMarker) {
		return PagePropertyDetail
	}

	return PageOther
}

func head(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
