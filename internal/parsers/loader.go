// Package parsers loads trial balance inputs from disk.
//
// Accounts, journal entries, classification rules and explicit mappings are
// read from JSON documents. Trial balance accounts can additionally be
// imported from CSV exports, the common interchange shape produced by
// accounting systems.
package parsers

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kanmwangi2/Cheetah-Reporter-sub002/internal/models"
	"github.com/kanmwangi2/Cheetah-Reporter-sub002/pkg/errors"
	"github.com/kanmwangi2/Cheetah-Reporter-sub002/pkg/logger"
)

// LoadAccounts reads trial balance accounts from a JSON array file.
func LoadAccounts(path string) ([]*models.Account, error) {
	data, err := readFile(path, "accounts")
	if err != nil {
		return nil, err
	}

	var accounts []*models.Account
	if err := json.Unmarshal(data, &accounts); err != nil {
		return nil, errors.InputError(errors.CodeInvalidFormat, "accounts",
			fmt.Errorf("cannot decode %s: %w", path, err))
	}

	for _, acc := range accounts {
		if err := acc.Validate(); err != nil {
			return nil, errors.InputError(errors.CodeInvalidAccount, "accounts",
				fmt.Errorf("invalid account in %s: %w", path, err))
		}
	}

	logger.WithComponent("parsers").WithFields(logger.Fields{
		"path":  path,
		"count": len(accounts),
	}).Debug("Loaded accounts")

	return accounts, nil
}

// LoadEntries reads journal entries from a JSON array file. Entries are
// validated structurally; balance enforcement is left to the replay engine so
// draft entries may legitimately be unbalanced while being edited.
func LoadEntries(path string) ([]*models.JournalEntry, error) {
	data, err := readFile(path, "entries")
	if err != nil {
		return nil, err
	}

	var entries []*models.JournalEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, errors.InputError(errors.CodeInvalidFormat, "entries",
			fmt.Errorf("cannot decode %s: %w", path, err))
	}

	logger.WithComponent("parsers").WithFields(logger.Fields{
		"path":  path,
		"count": len(entries),
	}).Debug("Loaded journal entries")

	return entries, nil
}

// ruleDocument is the wire shape of one classification rule.
type ruleDocument struct {
	ID           string   `json:"id"`
	Kind         string   `json:"kind"`
	Pattern      string   `json:"pattern"`
	Section      string   `json:"section"`
	LineItem     string   `json:"lineItem"`
	Priority     int      `json:"priority"`
	Description  string   `json:"description,omitempty"`
	AccountCodes []string `json:"accountCodes,omitempty"`
}

// LoadRules reads classification rules from a JSON array file. Regex patterns
// are compiled case-insensitively at load time so malformed expressions are
// rejected before any classification runs.
func LoadRules(path string) (models.RuleSet, error) {
	data, err := readFile(path, "rules")
	if err != nil {
		return nil, err
	}

	var docs []ruleDocument
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, errors.InputError(errors.CodeInvalidFormat, "rules",
			fmt.Errorf("cannot decode %s: %w", path, err))
	}

	rules := make(models.RuleSet, 0, len(docs))
	for _, doc := range docs {
		rule, err := buildRule(doc)
		if err != nil {
			return nil, errors.RuleError(doc.ID, err)
		}
		rules = append(rules, rule)
	}

	if err := rules.Validate(); err != nil {
		return nil, errors.InputError(errors.CodeInvalidRule, "rules",
			fmt.Errorf("invalid rule set in %s: %w", path, err))
	}

	logger.WithComponent("parsers").WithFields(logger.Fields{
		"path":  path,
		"count": len(rules),
	}).Debug("Loaded classification rules")

	return rules, nil
}

func buildRule(doc ruleDocument) (*models.ClassificationRule, error) {
	var pattern models.RulePattern
	switch doc.Kind {
	case "literal", "":
		pattern = models.LiteralPattern(doc.Pattern)
	case "regex":
		p, err := models.RegexPattern(doc.Pattern)
		if err != nil {
			return nil, err
		}
		pattern = p
	default:
		return nil, fmt.Errorf("unknown pattern kind %q", doc.Kind)
	}

	return &models.ClassificationRule{
		ID:      doc.ID,
		Pattern: pattern,
		Target: models.LineItemRef{
			Section:  models.StatementSection(doc.Section),
			LineItem: doc.LineItem,
		},
		Priority:     doc.Priority,
		Description:  doc.Description,
		AccountCodes: doc.AccountCodes,
	}, nil
}

// LoadMappings reads explicit account-to-line-item assignments from a JSON
// object file keyed by accountId.
func LoadMappings(path string) (map[string]models.LineItemRef, error) {
	data, err := readFile(path, "mappings")
	if err != nil {
		return nil, err
	}

	var mappings map[string]models.LineItemRef
	if err := json.Unmarshal(data, &mappings); err != nil {
		return nil, errors.InputError(errors.CodeInvalidFormat, "mappings",
			fmt.Errorf("cannot decode %s: %w", path, err))
	}

	for id, ref := range mappings {
		if !ref.Section.IsValid() {
			return nil, errors.InputError(errors.CodeInvalidFormat, "mappings",
				fmt.Errorf("mapping for account %s has invalid section %q", id, ref.Section))
		}
	}

	logger.WithComponent("parsers").WithFields(logger.Fields{
		"path":  path,
		"count": len(mappings),
	}).Debug("Loaded explicit mappings")

	return mappings, nil
}

func readFile(path, field string) ([]byte, error) {
	if path == "" {
		return nil, errors.InputError(errors.CodeMissingInput, field,
			fmt.Errorf("no input path given"))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.InputError(errors.CodeMissingInput, field,
			fmt.Errorf("cannot read %s: %w", path, err))
	}

	return data, nil
}
