// Package textextract converts statement PDFs into layout-preserved text.
//
// Extraction shells out to the pdftotext command with the -layout flag so
// that columns and line positions stay stable enough for the label-anchored
// parsers downstream. Pages are separated by form-feed characters in the
// output.
package textextract

import (
	"bytes"
	"os"
	"os/exec"

	"dmascari/rental-tracker/internal/parsererror"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// TextExtractor defines the interface for extracting text from PDF files.
// The indirection keeps the parsers testable without pdftotext installed.
type TextExtractor interface {
	// ExtractText extracts the text content of the PDF at the given path.
	ExtractText(pdfPath string) (string, error)
}

// PdftotextExtractor is the production implementation backed by the
// pdftotext command-line tool.
type PdftotextExtractor struct{}

// NewPdftotextExtractor creates a new PdftotextExtractor instance.
func NewPdftotextExtractor() *PdftotextExtractor {
	return &PdftotextExtractor{}
}

// ExtractText runs `pdftotext -layout <file> -` and returns its stdout.
// A missing file or a nonzero exit status is fatal for the document.
func (e *PdftotextExtractor) ExtractText(pdfPath string) (string, error) {
	if _, err := os.Stat(pdfPath); err != nil {
		return "", &parsererror.ExtractionError{
			FilePath: pdfPath,
			Reason:   "PDF file not found",
			Err:      err,
		}
	}

	cmd := exec.Command("pdftotext", "-layout", pdfPath, "-")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		log.WithError(err).WithField("stderr", stderr.String()).Error("pdftotext failed")
		return "", &parsererror.ExtractionError{
			FilePath: pdfPath,
			Reason:   "pdftotext failed: " + stderr.String(),
			Err:      err,
		}
	}

	return stdout.String(), nil
}

// MockExtractor implements TextExtractor for tests, returning canned data.
type MockExtractor struct {
	MockText string
	MockErr  error
}

// NewMockExtractor creates a MockExtractor with the given canned result.
func NewMockExtractor(mockText string, mockErr error) *MockExtractor {
	return &MockExtractor{
		MockText: mockText,
		MockErr:  mockErr,
	}
}

// ExtractText returns the predefined mock text or error.
func (e *MockExtractor) ExtractText(pdfPath string) (string, error) {
	if e.MockErr != nil {
		return "", e.MockErr
	}
	return e.MockText, nil
}
