package classifier

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kanmwangi2/Cheetah-Reporter-sub002/internal/models"
	"github.com/kanmwangi2/Cheetah-Reporter-sub002/internal/similarity"
	"github.com/kanmwangi2/Cheetah-Reporter-sub002/pkg/logger"
)

// ClassificationEngine scores accounts against a rule set and proposes
// statement line-item assignments. The engine is pure with respect to its
// inputs: identical account and rule data always produce identical ordered
// match lists.
type ClassificationEngine struct {
	Config *ClassifierConfig
	log    logger.Logger
}

// NewClassificationEngine creates an engine with the given configuration,
// falling back to defaults when nil.
func NewClassificationEngine(config *ClassifierConfig) *ClassificationEngine {
	if config == nil {
		config = DefaultClassifierConfig()
	}

	return &ClassificationEngine{
		Config: config,
		log:    logger.GetGlobalLogger().WithComponent("classifier"),
	}
}

// Classify scores one account against every rule in the set and returns the
// surviving matches in descending confidence order. Ties break by rule
// priority descending, then rule insertion order (stable).
func (ce *ClassificationEngine) Classify(account *models.Account, rules models.RuleSet) []*models.AccountMatch {
	if account == nil || len(rules) == 0 {
		return nil
	}

	code := accountCode(account)
	keywords := similarity.ExtractKeywords(account.AccountName)
	suggested, hasSuggestion := suggestByCode(code)

	var matches []*models.AccountMatch
	for order, rule := range rules {
		match := ce.scoreRule(account, rule, code, keywords, suggested, hasSuggestion)
		if match == nil || match.Confidence <= ce.Config.MinConfidence {
			continue
		}
		match.RuleOrder = order
		matches = append(matches, match)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Confidence != matches[j].Confidence {
			return matches[i].Confidence > matches[j].Confidence
		}
		if matches[i].RulePriority != matches[j].RulePriority {
			return matches[i].RulePriority > matches[j].RulePriority
		}
		return matches[i].RuleOrder < matches[j].RuleOrder
	})

	return matches
}

// BestMatch returns the highest-confidence surviving match for an account,
// or nil when nothing qualifies.
func (ce *ClassificationEngine) BestMatch(account *models.Account, rules models.RuleSet) *models.AccountMatch {
	matches := ce.Classify(account, rules)
	if len(matches) == 0 {
		return nil
	}
	return matches[0]
}

// scoreRule computes the confidence contribution of a single rule.
func (ce *ClassificationEngine) scoreRule(
	account *models.Account,
	rule *models.ClassificationRule,
	code string,
	keywords []string,
	suggested models.LineItemRef,
	hasSuggestion bool,
) *models.AccountMatch {

	confidence := 0.0
	var reasons []string
	loweredName := strings.ToLower(account.AccountName)

	// Explicit code allow-list counts as a direct hit.
	if code != "" && rule.AllowsCode(code) {
		confidence += ce.Config.DirectPatternWeight
		reasons = append(reasons, fmt.Sprintf("account code %s listed on rule", code))
	}

	switch rule.Pattern.Kind {
	case models.PatternRegex:
		if rule.Pattern.Regex.MatchString(loweredName) {
			confidence += ce.Config.DirectPatternWeight
			reasons = append(reasons, fmt.Sprintf("name matches pattern %q", rule.Pattern.Source()))
		}
	case models.PatternLiteral:
		score := similarity.Score(rule.Pattern.Literal, account.AccountName)
		if score > ce.Config.LiteralThreshold {
			confidence += score * ce.Config.LiteralWeight
			reasons = append(reasons, fmt.Sprintf("name is %.0f%% similar to %q", score*100, rule.Pattern.Literal))
		}
	}

	// Keyword overlap between the account name and the rule description.
	if overlap := ce.keywordOverlap(keywords, rule.Description); overlap > 0 {
		contribution := float64(overlap) * ce.Config.KeywordPairWeight
		if contribution > ce.Config.KeywordOverlapCap {
			contribution = ce.Config.KeywordOverlapCap
		}
		confidence += contribution
		reasons = append(reasons, fmt.Sprintf("%d keyword(s) shared with rule description", overlap))
	}

	// Numeric code range heuristic.
	if hasSuggestion && suggested == rule.Target {
		confidence += ce.Config.CodeHeuristicBonus
		reasons = append(reasons, fmt.Sprintf("account code %s falls in the %s range", code, rule.Target.LineItem))
	}

	if confidence == 0 {
		return nil
	}

	confidence *= float64(rule.Priority) / ce.Config.PriorityDivisor
	if confidence > 1.0 {
		confidence = 1.0
	}

	return &models.AccountMatch{
		AccountID:    account.AccountID,
		RuleID:       rule.ID,
		Target:       rule.Target,
		Confidence:   confidence,
		Reasons:      reasons,
		RulePriority: rule.Priority,
	}
}

// keywordOverlap counts keyword pairs between the account keywords and the
// rule-description keywords whose similarity exceeds the configured
// threshold. Each account keyword counts at most once.
func (ce *ClassificationEngine) keywordOverlap(accountKeywords []string, description string) int {
	descriptionKeywords := similarity.ExtractKeywords(description)
	if len(accountKeywords) == 0 || len(descriptionKeywords) == 0 {
		return 0
	}

	count := 0
	for _, ak := range accountKeywords {
		for _, dk := range descriptionKeywords {
			if similarity.Score(ak, dk) > ce.Config.KeywordSimilarityThreshold {
				count++
				break
			}
		}
	}
	return count
}

// AutoMapHighConfidence applies each account's best match only when its
// confidence meets the auto-map threshold. Accounts without a qualifying
// match are left unmapped, never guessed.
func (ce *ClassificationEngine) AutoMapHighConfidence(accounts []*models.Account, rules models.RuleSet) map[string]models.LineItemRef {
	sorted := rules.SortedByPriority()
	mappings := make(map[string]models.LineItemRef)

	for _, account := range accounts {
		best := ce.BestMatch(account, sorted)
		if best == nil || best.Confidence < ce.Config.AutoMapThreshold {
			continue
		}
		mappings[account.AccountID] = best.Target
	}

	ce.log.WithFields(logger.Fields{
		"accounts": len(accounts),
		"mapped":   len(mappings),
	}).Debug("Auto-mapping completed")

	return mappings
}

// MappingQuality describes how complete and balanced a set of account
// mappings is.
type MappingQuality struct {
	// Score in [0, 1] combining mapping completion and balance-sheet balance.
	Score       float64  `json:"score"`
	Issues      []string `json:"issues,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// ValidateMappingQuality scores a mapping set over the given accounts. The
// score blends the completion ratio with a balance score that decays once
// asset-tagged and liability-plus-equity-tagged totals diverge beyond
// tolerance. Every unmapped account yields an issue; up to MaxSuggestions
// concrete suggestions are drawn from unmapped accounts whose best match
// clears the suggestion threshold.
func (ce *ClassificationEngine) ValidateMappingQuality(
	accounts []*models.Account,
	mappings map[string]models.LineItemRef,
	rules models.RuleSet,
) *MappingQuality {

	quality := &MappingQuality{}

	if len(accounts) == 0 {
		quality.Score = 1.0
		return quality
	}

	mapped := 0
	assetTotal := decimal.Zero
	liabEquityTotal := decimal.Zero
	var unmapped []*models.Account

	for _, account := range accounts {
		ref, ok := mappings[account.AccountID]
		if !ok {
			unmapped = append(unmapped, account)
			quality.Issues = append(quality.Issues,
				fmt.Sprintf("account %s (%s) is unmapped", account.AccountID, account.AccountName))
			continue
		}

		mapped++
		switch ref.Section {
		case models.SectionAssets:
			assetTotal = assetTotal.Add(account.Balance())
		case models.SectionLiabilities, models.SectionEquity:
			// Credit-natured sections contribute credit - debit so the two
			// totals are directly comparable in magnitude.
			liabEquityTotal = liabEquityTotal.Add(account.Balance().Neg())
		}
	}

	completion := float64(mapped) / float64(len(accounts))
	balanceScore := ce.balanceScore(assetTotal, liabEquityTotal)
	quality.Score = ce.Config.CompletionWeight*completion + ce.Config.BalanceWeight*balanceScore

	sorted := rules.SortedByPriority()
	for _, account := range unmapped {
		if len(quality.Suggestions) >= ce.Config.MaxSuggestions {
			break
		}
		best := ce.BestMatch(account, sorted)
		if best == nil || best.Confidence < ce.Config.SuggestionThreshold {
			continue
		}
		quality.Suggestions = append(quality.Suggestions,
			fmt.Sprintf("map %q to %s/%s (confidence %.2f)",
				account.AccountName, best.Target.Section, best.Target.LineItem, best.Confidence))
	}

	return quality
}

// balanceScore is 1.0 while asset and liability-plus-equity totals agree
// within tolerance, then decays linearly with the relative difference,
// floored at 0.
func (ce *ClassificationEngine) balanceScore(assets, liabEquity decimal.Decimal) float64 {
	diff := assets.Sub(liabEquity).Abs()
	if diff.LessThanOrEqual(models.BalanceTolerance) {
		return 1.0
	}

	denominator := assets.Abs()
	if liabEquity.Abs().GreaterThan(denominator) {
		denominator = liabEquity.Abs()
	}
	if denominator.LessThan(decimal.NewFromInt(1)) {
		denominator = decimal.NewFromInt(1)
	}

	ratio, _ := diff.Div(denominator).Float64()
	score := 1.0 - ratio
	if score < 0 {
		return 0
	}
	return score
}

// accountCode extracts the numeric account code: the accountId when fully
// numeric, otherwise any leading digits of the account name.
func accountCode(account *models.Account) string {
	if isNumeric(account.AccountID) {
		return account.AccountID
	}
	return similarity.LeadingCode(account.AccountName)
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
