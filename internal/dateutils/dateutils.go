// Package dateutils provides common date operations used throughout the application.
package dateutils

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Date format constants. Statements use US-style dates, so that layout is
// tried first; the remaining formats cover hand-edited fixtures and exports.
const (
	DateLayoutUS       = "01/02/2006"
	DateLayoutISO      = "2006-01-02"
	DateLayoutEuropean = "02/01/2006"
)

// StatementFormats is the ordered list of formats tried when parsing
// statement dates. Order matters: US first, matching the source layout.
var StatementFormats = []string{
	DateLayoutUS,
	DateLayoutISO,
	DateLayoutEuropean,
}

// ParseDate attempts to parse a date string using the statement formats.
func ParseDate(dateStr string) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return time.Time{}, fmt.Errorf("empty date string")
	}

	for _, format := range StatementFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD).
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// Truncate drops the time-of-day component, keeping the calendar date in UTC.
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
