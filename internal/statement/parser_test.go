package statement

import (
	"errors"
	"testing"

	"dmascari/rental-tracker/internal/logging"
	"dmascari/rental-tracker/internal/textextract"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func summaryPage(owner string) string {
	return owner + `                             OWNER STATEMENT
Report Period: 09/01/2025 - 09/30/2025
Portfolio Summary
Previous Balance                                $1,000.00
Income                                     +    $3,400.00
Expenses                                   -      $640.00`
}

const detailPage = `123 Main St
Current                  Security
Rent: $900.00            Deposit: $900.00
Bill  09/12/2025  RotoRooter  cleared kitchen drain  $150.00
Total Income for 123 Main St                    $900.00
Total Expenses for 123 Main St                  $240.00
Net Operating Income                            $660.00`

func newTestParser(text string) *Parser {
	return NewParser(MidSouth(), textextract.NewMockExtractor(text, nil), "", &logging.MockLogger{})
}

func TestParseFileSingleOwner(t *testing.T) {
	text := summaryPage("Jane Smith") + "\f" + detailPage
	parser := newTestParser(text)

	result, err := parser.ParseFile("statement.pdf")
	require.NoError(t, err)

	assert.Equal(t, "statement.pdf", result.SourceFile)
	assert.False(t, result.ExtractedAt.IsZero())
	require.Len(t, result.Owners, 1)

	owner := result.Owners[0]
	assert.Equal(t, "Jane Smith", owner.OwnerName)
	assert.Equal(t, "09/01/2025", owner.PeriodStart)
	assert.Equal(t, "09/30/2025", owner.PeriodEnd)
	require.Len(t, owner.Properties, 1)

	prop := owner.Properties[0]
	assert.Equal(t, "123 Main St", prop.Address)
	assert.Equal(t, "660", prop.NOI.String())
	require.Len(t, prop.Expenses, 1)
	assert.Equal(t, "RotoRooter", prop.Expenses[0].Vendor)
}

func TestParseTextAttributesDetailToPrecedingSummary(t *testing.T) {
	// Two owners interleaved with their detail pages in page order.
	text := summaryPage("Jane Smith") + "\f" + detailPage +
		"\f" + summaryPage("Alice Jones") + "\f" + detailPage

	parser := newTestParser("")
	result := parser.ParseText(text, "multi.pdf")

	require.Len(t, result.Owners, 2)
	assert.Equal(t, "Jane Smith", result.Owners[0].OwnerName)
	assert.Len(t, result.Owners[0].Properties, 1)
	assert.Equal(t, "Alice Jones", result.Owners[1].OwnerName)
	assert.Len(t, result.Owners[1].Properties, 1)
}

func TestParseTextIgnoresLeadingDetailAndBlankPages(t *testing.T) {
	// A detail page before any summary has no owner context and is dropped.
	text := detailPage + "\f\f" + summaryPage("Jane Smith")

	parser := newTestParser("")
	result := parser.ParseText(text, "odd.pdf")

	require.Len(t, result.Owners, 1)
	assert.Empty(t, result.Owners[0].Properties)
}

func TestParseTextFiltersPlaceholderOwner(t *testing.T) {
	text := summaryPage("David Mascari") + "\f" + detailPage +
		"\f" + summaryPage("Jane Smith") + "\f" + detailPage

	parser := newTestParser("")
	result := parser.ParseText(text, "dup.pdf")

	require.Len(t, result.Owners, 1)
	assert.Equal(t, "Jane Smith", result.Owners[0].OwnerName)
}

func TestParseTextKeepsLonePlaceholderOwner(t *testing.T) {
	// The filter only resolves intra-document duplication; a document that
	// legitimately belongs to the placeholder identity is kept.
	parser := newTestParser("")
	result := parser.ParseText(summaryPage("David Mascari"), "lone.pdf")

	require.Len(t, result.Owners, 1)
	assert.Equal(t, "David Mascari", result.Owners[0].OwnerName)
}

func TestParseTextCustomPlaceholderOwner(t *testing.T) {
	parser := NewParser(MidSouth(), nil, "Jane Smith", &logging.MockLogger{})
	text := summaryPage("Jane Smith") + "\f" + summaryPage("Alice Jones")

	result := parser.ParseText(text, "cfg.pdf")
	require.Len(t, result.Owners, 1)
	assert.Equal(t, "Alice Jones", result.Owners[0].OwnerName)
}

func TestParseFileExtractionFailure(t *testing.T) {
	wantErr := errors.New("pdftotext exploded")
	parser := NewParser(MidSouth(), textextract.NewMockExtractor("", wantErr), "", &logging.MockLogger{})

	_, err := parser.ParseFile("broken.pdf")
	assert.ErrorIs(t, err, wantErr)
}

func TestIsStandardFormat(t *testing.T) {
	standard := "Mid South Best Rentals\f" + summaryPage("Jane Smith")
	parser := newTestParser(standard)
	assert.True(t, parser.IsStandardFormat("statement.pdf"))

	parser = newTestParser("Some Other Vendor Statement")
	assert.False(t, parser.IsStandardFormat("statement.pdf"))

	parser = NewParser(MidSouth(), textextract.NewMockExtractor("", errors.New("unreadable")), "", &logging.MockLogger{})
	assert.False(t, parser.IsStandardFormat("statement.pdf"))
}
