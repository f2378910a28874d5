// Package categorizer assigns expense categories from free-text descriptions.
package categorizer

import (
	"strings"

	"dmascari/rental-tracker/internal/logging"
)

// CategoryOther is assigned when no keyword rule matches.
const CategoryOther = "Other"

// Category names in rule priority order.
const (
	CategoryPlumbing      = "Plumbing"
	CategoryHVAC          = "HVAC"
	CategoryElectrical    = "Electrical"
	CategoryRoofing       = "Roofing"
	CategoryManagementFee = "Management Fee"
	CategoryGeneralRepair = "General Repair"
	CategoryAppliance     = "Appliance"
	CategoryLandscaping   = "Landscaping"
	CategoryPestControl   = "Pest Control"
)

// Rule maps a set of keywords to one category. Rules are evaluated in order
// and the first match wins, so more specific categories come first.
type Rule struct {
	Category string   `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

// DefaultRules returns the built-in rule table.
func DefaultRules() []Rule {
	return []Rule{
		{CategoryPlumbing, []string{"plumbing", "pipe", "drain"}},
		// "ac " keeps its trailing space so words containing "ac" don't match.
		{CategoryHVAC, []string{"hvac", "heat", "air condition", "ac "}},
		{CategoryElectrical, []string{"electric", "wiring"}},
		{CategoryRoofing, []string{"roof", "gutter"}},
		{CategoryManagementFee, []string{"management", "best rentals"}},
		{CategoryGeneralRepair, []string{"general"}},
		{CategoryAppliance, []string{"appliance", "refrigerator", "stove"}},
		{CategoryLandscaping, []string{"lawn", "landscap", "tree"}},
		{CategoryPestControl, []string{"pest", "termite"}},
	}
}

// Categorizer matches descriptions against an ordered keyword rule table.
// Categorize is a pure function over the table; the table itself can be
// replaced from a YAML file at construction time.
type Categorizer struct {
	rules  []Rule
	logger logging.Logger
}

// NewCategorizer creates a Categorizer with the built-in rule table.
func NewCategorizer(logger logging.Logger) *Categorizer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Categorizer{
		rules:  DefaultRules(),
		logger: logger,
	}
}

// NewCategorizerWithRules creates a Categorizer with a custom rule table.
func NewCategorizerWithRules(rules []Rule, logger logging.Logger) *Categorizer {
	c := NewCategorizer(logger)
	if len(rules) > 0 {
		c.rules = rules
	}
	return c
}

// Categorize returns the category for an expense description.
func (c *Categorizer) Categorize(description string) string {
	desc := strings.ToLower(description)

	for _, rule := range c.rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(desc, keyword) {
				c.logger.WithFields(
					logging.Field{Key: "keyword", Value: keyword},
					logging.Field{Key: "category", Value: rule.Category},
				).Debug("Expense categorized by keyword")
				return rule.Category
			}
		}
	}

	return CategoryOther
}
