package textextract

import (
	"errors"
	"testing"

	"dmascari/rental-tracker/internal/parsererror"

	"github.com/stretchr/testify/assert"
)

func TestPdftotextExtractorMissingFile(t *testing.T) {
	extractor := NewPdftotextExtractor()

	_, err := extractor.ExtractText("/nonexistent/statement.pdf")
	assert.Error(t, err)

	var extractionErr *parsererror.ExtractionError
	assert.True(t, errors.As(err, &extractionErr))
	assert.Equal(t, "/nonexistent/statement.pdf", extractionErr.FilePath)
}

func TestMockExtractorReturnsText(t *testing.T) {
	extractor := NewMockExtractor("page one\fpage two", nil)

	text, err := extractor.ExtractText("ignored.pdf")
	assert.NoError(t, err)
	assert.Equal(t, "page one\fpage two", text)
}

func TestMockExtractorReturnsError(t *testing.T) {
	wantErr := errors.New("boom")
	extractor := NewMockExtractor("", wantErr)

	_, err := extractor.ExtractText("ignored.pdf")
	assert.Equal(t, wantErr, err)
}
