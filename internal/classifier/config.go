// Package classifier implements rule-based fuzzy classification of ledger
// accounts into IFRS statement line items.
//
// Classification runs each account against an ordered rule set and produces
// scored AccountMatch candidates. The confidence of a match combines:
//  1. Direct pattern hits (regular expression or code allow-list)
//  2. Literal pattern similarity above a threshold
//  3. Keyword overlap between account name and rule description
//  4. Numeric account-code range heuristics
//
// The accumulated score is scaled by rule priority and capped at 1.0;
// candidates at or below the minimum confidence are discarded.
//
// Example usage:
//
//	engine := classifier.NewClassificationEngine(nil)
//	matches := engine.Classify(account, classifier.DefaultRules())
//	mappings := engine.AutoMapHighConfidence(accounts, classifier.DefaultRules())
package classifier

import "fmt"

// ClassifierConfig holds the weights and thresholds of the classification
// scoring algorithm. Use the factory functions for common scenarios and pass
// the configuration explicitly so runs stay deterministic and testable.
type ClassifierConfig struct {
	// DirectPatternWeight is the contribution of a regex pattern hit or an
	// explicit account-code allow-list hit.
	DirectPatternWeight float64 `json:"direct_pattern_weight"`

	// LiteralWeight scales the similarity score of a literal pattern match.
	LiteralWeight float64 `json:"literal_weight"`

	// LiteralThreshold is the minimum similarity for a literal pattern to
	// contribute at all.
	LiteralThreshold float64 `json:"literal_threshold"`

	// KeywordPairWeight is the contribution per overlapping keyword pair.
	KeywordPairWeight float64 `json:"keyword_pair_weight"`

	// KeywordOverlapCap bounds the total keyword-overlap contribution.
	KeywordOverlapCap float64 `json:"keyword_overlap_cap"`

	// KeywordSimilarityThreshold is the minimum similarity for two keywords
	// to count as an overlapping pair.
	KeywordSimilarityThreshold float64 `json:"keyword_similarity_threshold"`

	// CodeHeuristicBonus is the contribution when the account's numeric code
	// falls in a range that suggests the rule's target line item.
	CodeHeuristicBonus float64 `json:"code_heuristic_bonus"`

	// PriorityDivisor converts rule priority into the confidence multiplier
	// priority/PriorityDivisor, applied before capping at 1.0.
	PriorityDivisor float64 `json:"priority_divisor"`

	// MinConfidence is the discard threshold: matches at or below it are
	// dropped from the result list.
	MinConfidence float64 `json:"min_confidence"`

	// AutoMapThreshold is the minimum best-match confidence required before
	// an account is auto-mapped. Accounts below it are left unmapped, never
	// guessed.
	AutoMapThreshold float64 `json:"auto_map_threshold"`

	// SuggestionThreshold is the minimum best-match confidence for an
	// unmapped account to yield an improvement suggestion.
	SuggestionThreshold float64 `json:"suggestion_threshold"`

	// MaxSuggestions bounds the suggestions emitted by mapping-quality
	// validation.
	MaxSuggestions int `json:"max_suggestions"`

	// Weights of the mapping-quality score components.
	CompletionWeight float64 `json:"completion_weight"`
	BalanceWeight    float64 `json:"balance_weight"`
}

// DefaultClassifierConfig returns the standard scoring configuration.
func DefaultClassifierConfig() *ClassifierConfig {
	return &ClassifierConfig{
		DirectPatternWeight:        0.7,
		LiteralWeight:              0.6,
		LiteralThreshold:           0.6,
		KeywordPairWeight:          0.2,
		KeywordOverlapCap:          0.5,
		KeywordSimilarityThreshold: 0.8,
		CodeHeuristicBonus:         0.3,
		PriorityDivisor:            10.0,
		MinConfidence:              0.3,
		AutoMapThreshold:           0.8,
		SuggestionThreshold:        0.6,
		MaxSuggestions:             3,
		CompletionWeight:           0.7,
		BalanceWeight:              0.3,
	}
}

// StrictClassifierConfig returns a configuration that only auto-maps near
// certain matches. Useful for audited periods where misclassification is
// costlier than manual mapping.
func StrictClassifierConfig() *ClassifierConfig {
	config := DefaultClassifierConfig()
	config.MinConfidence = 0.5
	config.AutoMapThreshold = 0.95
	config.SuggestionThreshold = 0.8
	return config
}

// RelaxedClassifierConfig returns a configuration for exploratory first-pass
// mapping of an unfamiliar chart of accounts.
func RelaxedClassifierConfig() *ClassifierConfig {
	config := DefaultClassifierConfig()
	config.MinConfidence = 0.2
	config.AutoMapThreshold = 0.6
	config.SuggestionThreshold = 0.4
	config.MaxSuggestions = 5
	return config
}

// Validate checks if the classifier configuration is valid.
func (c *ClassifierConfig) Validate() error {
	unitChecks := map[string]float64{
		"direct_pattern_weight":        c.DirectPatternWeight,
		"literal_weight":               c.LiteralWeight,
		"literal_threshold":            c.LiteralThreshold,
		"keyword_pair_weight":          c.KeywordPairWeight,
		"keyword_overlap_cap":          c.KeywordOverlapCap,
		"keyword_similarity_threshold": c.KeywordSimilarityThreshold,
		"code_heuristic_bonus":         c.CodeHeuristicBonus,
		"min_confidence":               c.MinConfidence,
		"auto_map_threshold":           c.AutoMapThreshold,
		"suggestion_threshold":         c.SuggestionThreshold,
	}
	for name, value := range unitChecks {
		if value < 0.0 || value > 1.0 {
			return fmt.Errorf("%s must be between 0.0 and 1.0: %f", name, value)
		}
	}

	if c.PriorityDivisor <= 0 {
		return fmt.Errorf("priority divisor must be positive: %f", c.PriorityDivisor)
	}

	if c.MaxSuggestions < 0 {
		return fmt.Errorf("max suggestions cannot be negative: %d", c.MaxSuggestions)
	}

	total := c.CompletionWeight + c.BalanceWeight
	if total < 0.9 || total > 1.1 {
		return fmt.Errorf("quality weights should sum to approximately 1.0, got %f", total)
	}

	return nil
}

// Clone creates a copy of the configuration.
func (c *ClassifierConfig) Clone() *ClassifierConfig {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}
