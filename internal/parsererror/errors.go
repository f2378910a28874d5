// Package parsererror defines the typed errors produced by the ingestion pipeline.
package parsererror

import "fmt"

// ExtractionError indicates the source PDF could not be read or pdftotext failed.
// It is fatal for the document: no owner blocks can be produced from it.
type ExtractionError struct {
	FilePath string
	Reason   string
	Err      error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("text extraction failed for %s: %s: %v", e.FilePath, e.Reason, e.Err)
	}
	return fmt.Sprintf("text extraction failed for %s: %s", e.FilePath, e.Reason)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// ParseError represents a failure while parsing a statement field.
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError represents a document that does not match the expected layout.
type ValidationError struct {
	FilePath string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.FilePath, e.Reason)
}

// LoadError represents a failure while persisting a parsed statement.
// The enclosing transaction has been rolled back when this is returned.
type LoadError struct {
	SourceFile string
	Err        error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load statement %s: %v", e.SourceFile, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
