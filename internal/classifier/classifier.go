// Package classifier routes incoming documents and emails to the right
// handler based on deterministic format recognition.
package classifier

import (
	"fmt"
	"strings"

	"dmascari/rental-tracker/internal/logging"
	"dmascari/rental-tracker/internal/parsererror"
	"dmascari/rental-tracker/internal/statement"
)

// DocumentType identifies a kind of document the system can process.
type DocumentType string

const (
	DocOwnerStatement      DocumentType = "owner_statement"
	DocMaintenanceRequest  DocumentType = "maintenance_request"
	DocLeaseDocument       DocumentType = "lease_document"
	DocTenantCommunication DocumentType = "tenant_communication"
	DocUnknown             DocumentType = "unknown"
)

// EmailAction is what the pipeline should do with an incoming email.
type EmailAction string

const (
	ActionParseStatement EmailAction = "parse_statement"
	ActionLogMaintenance EmailAction = "log_maintenance"
	ActionFlagForReview  EmailAction = "flag_for_review"
	ActionSkip           EmailAction = "skip"
)

// EmailDecision is an email classification result.
type EmailDecision struct {
	Action     EmailAction
	Reason     string
	Confidence float64
}

var maintenanceKeywords = []string{
	"repair", "maintenance", "broken", "leak", "hvac",
	"plumbing", "electrical", "fix", "work order",
}

// Classifier decides which parser handles a document.
type Classifier struct {
	parser *statement.Parser
	logger logging.Logger
}

// New creates a classifier backed by the given statement parser. A nil parser
// gets a default parser, a nil logger a default adapter.
func New(parser *statement.Parser, logger logging.Logger) *Classifier {
	if parser == nil {
		parser = statement.NewParser(nil, nil, "", nil)
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Classifier{parser: parser, logger: logger}
}

// ClassifyPDF classifies a PDF and returns a confidence score in [0, 1].
// Recognition is deterministic; anything that does not match a known layout
// comes back as DocUnknown with zero confidence.
func (c *Classifier) ClassifyPDF(pdfPath string) (DocumentType, float64) {
	if c.parser.IsStandardFormat(pdfPath) {
		return DocOwnerStatement, 1.0
	}
	return DocUnknown, 0.0
}

// ClassifyEmail determines the action for an incoming email based on sender,
// subject, body and whether a PDF attachment is present.
func (c *Classifier) ClassifyEmail(sender, subject, body string, hasAttachment bool) EmailDecision {
	senderLower := strings.ToLower(sender)
	subjectLower := strings.ToLower(subject)

	if strings.Contains(senderLower, "midsouthbestrentals") || strings.Contains(senderLower, "midsouth") {
		if hasAttachment && (strings.Contains(subjectLower, "statement") || strings.Contains(subjectLower, "report")) {
			return EmailDecision{
				Action:     ActionParseStatement,
				Reason:     "Known sender with statement attachment",
				Confidence: 0.95,
			}
		}
	}

	// Owners sometimes forward their own statements.
	if strings.Contains(senderLower, "mascari.david@gmail.com") {
		if hasAttachment && strings.Contains(subjectLower, "owner statement") {
			return EmailDecision{
				Action:     ActionParseStatement,
				Reason:     "Forwarded owner statement",
				Confidence: 0.9,
			}
		}
	}

	bodyLower := strings.ToLower(body)
	for _, kw := range maintenanceKeywords {
		if strings.Contains(subjectLower, kw) || strings.Contains(bodyLower, kw) {
			return EmailDecision{
				Action:     ActionLogMaintenance,
				Reason:     "Maintenance keywords detected",
				Confidence: 0.7,
			}
		}
	}

	return EmailDecision{
		Action:     ActionFlagForReview,
		Reason:     "Could not automatically classify",
		Confidence: 0.0,
	}
}

// ParseDocument classifies the PDF and parses it with the matching parser.
// Unrecognized formats are an error naming the detected type.
func (c *Classifier) ParseDocument(pdfPath string) (*statement.ParsedStatement, error) {
	docType, confidence := c.ClassifyPDF(pdfPath)

	if docType == DocOwnerStatement && confidence > 0.8 {
		c.logger.WithField("file", pdfPath).Debug("Routing to statement parser")
		return c.parser.ParseFile(pdfPath)
	}

	return nil, &parsererror.ValidationError{
		FilePath: pdfPath,
		Reason:   fmt.Sprintf("unknown document format: detected type %s, confidence %.2f", docType, confidence),
	}
}
