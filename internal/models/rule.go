package models

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// PatternKind tags the two variants a classification rule pattern can take.
type PatternKind int

const (
	// PatternLiteral matches account names by string similarity.
	PatternLiteral PatternKind = iota
	// PatternRegex matches account names by compiled regular expression.
	PatternRegex
)

// String returns the string representation of PatternKind.
func (k PatternKind) String() string {
	switch k {
	case PatternLiteral:
		return "literal"
	case PatternRegex:
		return "regex"
	default:
		return "unknown"
	}
}

// RulePattern is the tagged variant Literal(string) | Regex(compiled) so
// matching logic can branch exhaustively without runtime type inspection.
type RulePattern struct {
	Kind    PatternKind
	Literal string
	Regex   *regexp.Regexp
}

// LiteralPattern builds a literal-string pattern.
func LiteralPattern(s string) RulePattern {
	return RulePattern{Kind: PatternLiteral, Literal: s}
}

// RegexPattern compiles a case-insensitive regular-expression pattern.
func RegexPattern(expr string) (RulePattern, error) {
	re, err := regexp.Compile("(?i)" + expr)
	if err != nil {
		return RulePattern{}, fmt.Errorf("invalid rule pattern %q: %w", expr, err)
	}
	return RulePattern{Kind: PatternRegex, Regex: re}, nil
}

// MustRegexPattern compiles a regex pattern and panics on error. Reserved for
// the built-in default rule table whose expressions are compile-time constants.
func MustRegexPattern(expr string) RulePattern {
	p, err := RegexPattern(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// Source returns the original pattern text.
func (p RulePattern) Source() string {
	if p.Kind == PatternRegex && p.Regex != nil {
		return strings.TrimPrefix(p.Regex.String(), "(?i)")
	}
	return p.Literal
}

// ClassificationRule maps account-name patterns to an IFRS statement line
// item. Rules are read-only reference data; a fixed default set plus any
// user-defined custom rules form the active rule set.
type ClassificationRule struct {
	ID          string
	Pattern     RulePattern
	Target      LineItemRef
	Priority    int // 0-100, higher wins ties
	Description string
	// AccountCodes is an optional explicit allow-list of account codes the
	// rule applies to regardless of name matching.
	AccountCodes []string
}

// Validate checks the rule definition.
func (r *ClassificationRule) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("rule ID cannot be empty")
	}

	if r.Pattern.Kind == PatternRegex && r.Pattern.Regex == nil {
		return fmt.Errorf("rule %s: regex pattern is not compiled", r.ID)
	}

	if r.Pattern.Kind == PatternLiteral && strings.TrimSpace(r.Pattern.Literal) == "" {
		return fmt.Errorf("rule %s: literal pattern cannot be empty", r.ID)
	}

	if !r.Target.Section.IsValid() {
		return fmt.Errorf("rule %s: invalid statement section %q", r.ID, r.Target.Section)
	}

	if strings.TrimSpace(r.Target.LineItem) == "" {
		return fmt.Errorf("rule %s: target line item cannot be empty", r.ID)
	}

	if r.Priority < 0 || r.Priority > 100 {
		return fmt.Errorf("rule %s: priority must be between 0 and 100, got %d", r.ID, r.Priority)
	}

	return nil
}

// AllowsCode reports whether the rule's explicit code allow-list contains the
// given account code. An empty allow-list allows nothing explicitly.
func (r *ClassificationRule) AllowsCode(code string) bool {
	for _, c := range r.AccountCodes {
		if c == code {
			return true
		}
	}
	return false
}

// RuleSet is an ordered collection of classification rules.
type RuleSet []*ClassificationRule

// Validate checks every rule in the set.
func (rs RuleSet) Validate() error {
	seen := make(map[string]bool, len(rs))
	for _, rule := range rs {
		if err := rule.Validate(); err != nil {
			return err
		}
		if seen[rule.ID] {
			return fmt.Errorf("duplicate rule ID: %s", rule.ID)
		}
		seen[rule.ID] = true
	}
	return nil
}

// SortedByPriority returns a new slice sorted by priority descending,
// preserving insertion order among equal priorities.
func (rs RuleSet) SortedByPriority() RuleSet {
	sorted := make(RuleSet, len(rs))
	copy(sorted, rs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority > sorted[j].Priority
	})
	return sorted
}

// AccountMatch is the output of classifying one account against one rule.
type AccountMatch struct {
	AccountID  string      `json:"accountId"`
	RuleID     string      `json:"ruleId"`
	Target     LineItemRef `json:"target"`
	Confidence float64     `json:"confidence"`
	Reasons    []string    `json:"reasons"`

	// rulePriority and ruleOrder carry tie-break data for stable sorting.
	RulePriority int `json:"-"`
	RuleOrder    int `json:"-"`
}

// String returns a string representation of the match.
func (m *AccountMatch) String() string {
	return fmt.Sprintf("AccountMatch{Account: %s, Rule: %s, Target: %s/%s, Confidence: %.2f}",
		m.AccountID, m.RuleID, m.Target.Section, m.Target.LineItem, m.Confidence)
}
