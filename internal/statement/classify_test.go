package statement

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyPageSummary(t *testing.T) {
	layout := MidSouth()

	page := `Jane Smith                             OWNER STATEMENT
Report Period: 09/01/2025 - 09/30/2025
Portfolio Summary
Previous Balance                                $1,000.00`

	// Summary detection does not depend on owner context or page position.
	assert.Equal(t, PageSummary, layout.ClassifyPage(page, false))
	assert.Equal(t, PageSummary, layout.ClassifyPage(page, true))
}

func TestClassifyPagePropertyDetail(t *testing.T) {
	layout := MidSouth()

	page := `1743 Warner
Current                  Security
Rent: $895.00            Deposit: $500.00
Total Income for 1743 Warner                    $895.00`

	assert.Equal(t, PagePropertyDetail, layout.ClassifyPage(page, true))

	// A detail page without an open owner context is ignored.
	assert.Equal(t, PageOther, layout.ClassifyPage(page, false))
}

func TestClassifyPageDetailMarkersMustBeNearTop(t *testing.T) {
	layout := MidSouth()

	// The rent label sits past the first 300 characters, so this page is
	// never classified as a property detail page.
	page := "1743 Warner\n" + strings.Repeat("x", 400) + "\nCurrent\nRent: $895.00"
	assert.Equal(t, PageOther, layout.ClassifyPage(page, true))
}

func TestClassifyPageOther(t *testing.T) {
	layout := MidSouth()

	assert.Equal(t, PageOther, layout.ClassifyPage("Disclosures and legal notices", true))
	assert.Equal(t, PageOther, layout.ClassifyPage("", true))
}

func TestLayoutMatches(t *testing.T) {
	layout := MidSouth()

	standard := "Mid South Best Rentals\nOWNER STATEMENT\nPortfolio Summary\n"
	assert.True(t, layout.Matches(standard))

	assert.False(t, layout.Matches("OWNER STATEMENT\nPortfolio Summary"))
	assert.False(t, layout.Matches("Mid South Best Rentals\nPortfolio Summary"))
	assert.False(t, layout.Matches(""))
}
