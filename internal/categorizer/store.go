package categorizer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadRules reads a rule table from a YAML file. The file is a list of
// {category, keywords} entries evaluated in file order:
//
//   - category: Plumbing
//     keywords: [plumbing, pipe, drain]
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read categories file %s: %w", path, err)
	}

	var rules []Rule
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse categories file %s: %w", path, err)
	}

	for i, rule := range rules {
		if rule.Category == "" {
			return nil, fmt.Errorf("categories file %s: entry %d has no category name", path, i)
		}
		if len(rule.Keywords) == 0 {
			return nil, fmt.Errorf("categories file %s: category %s has no keywords", path, rule.Category)
		}
	}

	return rules, nil
}

// SaveRules writes a rule table to a YAML file, for seeding a user-editable
// copy of the built-in table.
func SaveRules(path string, rules []Rule) error {
	data, err := yaml.Marshal(rules)
	if err != nil {
		return fmt.Errorf("failed to marshal rules: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write categories file %s: %w", path, err)
	}
	return nil
}
