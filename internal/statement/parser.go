package statement

import (
	"strings"
	"time"

	"dmascari/rental-tracker/internal/logging"
	"dmascari/rental-tracker/internal/textextract"
)

// DefaultPlaceholderOwner is the default-identity name some statements embed
// alongside the real owner. Overridable via ingest.placeholder_owner.
const DefaultPlaceholderOwner = "David Mascari"

// Parser turns a statement PDF into a ParsedStatement using one layout.
type Parser struct {
	layout           *Layout
	extractor        textextract.TextExtractor
	placeholderOwner string
	logger           logging.Logger
}

// NewParser creates a parser for the given layout. A nil extractor falls back
// to the pdftotext implementation, and a nil logger to a default adapter.
func NewParser(layout *Layout, extractor textextract.TextExtractor, placeholderOwner string, logger logging.Logger) *Parser {
	if layout == nil {
		layout = MidSouth()
	}
	if extractor == nil {
		extractor = textextract.NewPdftotextExtractor()
	}
	if placeholderOwner == "" {
		placeholderOwner = DefaultPlaceholderOwner
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Parser{
		layout:           layout,
		extractor:        extractor,
		placeholderOwner: placeholderOwner,
		logger:           logger,
	}
}

// ParseFile extracts and parses one statement PDF.
func (p *Parser) ParseFile(pdfPath string) (*ParsedStatement, error) {
	text, err := p.extractor.ExtractText(pdfPath)
	if err != nil {
		return nil, err
	}
	return p.ParseText(text, pdfPath), nil
}

// ParseText parses already-extracted text. Pages are form-feed delimited.
// Owner context is positional: every detail page belongs to the most recent
// summary page before it, so interleaved multi-owner documents work.
func (p *Parser) ParseText(text, sourceFile string) *ParsedStatement {
	result := &ParsedStatement{
		SourceFile:  sourceFile,
		ExtractedAt: time.Now(),
		Owners:      []OwnerBlock{},
	}

	var current *OwnerBlock

	for _, page := range strings.Split(text, "\f") {
		page = strings.TrimSpace(page)
		if page == "" {
			continue
		}

		switch p.layout.ClassifyPage(page, current != nil) {
		case PageSummary:
			if current != nil {
				result.Owners = append(result.Owners, *current)
			}
			block := parsePortfolioSummary(p.layout, page)
			current = &block
			p.logger.WithFields(
				logging.Field{Key: "owner", Value: block.OwnerName},
				logging.Field{Key: "period_start", Value: block.PeriodStart},
			).Debug("Parsed portfolio summary page")

		case PagePropertyDetail:
			block, ok := parsePropertySection(p.layout, page)
			if !ok {
				p.logger.Debug("Discarding detail page without address")
				continue
			}
			current.Properties = append(current.Properties, block)
		}
	}

	if current != nil {
		result.Owners = append(result.Owners, *current)
	}

	result.Owners = p.filterPlaceholderOwner(result.Owners)
	return result
}

// filterPlaceholderOwner drops the placeholder-identity block when a document
// produced more than one owner block. Some statements repeat the same content
// under the management default identity next to the real owner. A lone block
// is always kept, even when it carries the placeholder name.
func (p *Parser) filterPlaceholderOwner(owners []OwnerBlock) []OwnerBlock {
	if len(owners) <= 1 {
		return owners
	}

	hasPlaceholder := false
	for _, o := range owners {
		if o.OwnerName == p.placeholderOwner {
			hasPlaceholder = true
			break
		}
	}
	if !hasPlaceholder {
		return owners
	}

	kept := make([]OwnerBlock, 0, len(owners))
	for _, o := range owners {
		if o.OwnerName != p.placeholderOwner {
			kept = append(kept, o)
		}
	}

	p.logger.WithFields(
		logging.Field{Key: "placeholder", Value: p.placeholderOwner},
		logging.Field{Key: "dropped", Value: len(owners) - len(kept)},
	).Info("Dropped placeholder owner block")

	return kept
}

// IsStandardFormat reports whether the PDF matches this parser's layout.
// Extraction failures count as a non-match so the router can fall back.
func (p *Parser) IsStandardFormat(pdfPath string) bool {
	text, err := p.extractor.ExtractText(pdfPath)
	if err != nil {
		return false
	}
	return p.layout.Matches(text)
}
