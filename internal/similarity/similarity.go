// Package similarity provides the string-distance and keyword-extraction
// primitives used by account classification. All functions are pure and
// deterministic.
package similarity

import (
	"strings"
	"unicode"
)

// stopWords are tokens carrying no classification signal in account names.
var stopWords = map[string]bool{
	"the":      true,
	"and":      true,
	"for":      true,
	"from":     true,
	"with":     true,
	"account":  true,
	"accounts": true,
	"total":    true,
	"other":    true,
	"misc":     true,
	"sundry":   true,
}

// Score returns the normalized Levenshtein similarity between two strings in
// [0, 1]. Comparison is case-insensitive. Identical strings score 1.0; if
// either string is empty and they differ, the score is 0.0.
func Score(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))

	if a == b {
		return 1.0
	}

	if a == "" || b == "" {
		return 0.0
	}

	distance := levenshtein(a, b)
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}

	return 1.0 - float64(distance)/float64(maxLen)
}

// levenshtein computes the edit distance between two strings using the
// two-row dynamic programming formulation.
func levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)

	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}

			deletion := prev[j] + 1
			insertion := curr[j-1] + 1
			substitution := prev[j-1] + cost

			min := deletion
			if insertion < min {
				min = insertion
			}
			if substitution < min {
				min = substitution
			}
			curr[j] = min
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

// ExtractKeywords tokenizes an account name into classification keywords.
// Leading and trailing numeric account-code fragments are stripped, non
// alphanumeric characters become spaces, tokens are lowercased, and tokens of
// length <= 2 or on the stop-word list are discarded. The result is an
// ordered, de-duplicated token list.
func ExtractKeywords(name string) []string {
	name = stripCodeFragments(name)

	var builder strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			builder.WriteRune(unicode.ToLower(r))
		} else {
			builder.WriteRune(' ')
		}
	}

	tokens := strings.Fields(builder.String())
	seen := make(map[string]bool, len(tokens))
	keywords := make([]string, 0, len(tokens))

	for _, token := range tokens {
		if len(token) <= 2 || stopWords[token] || seen[token] {
			continue
		}
		seen[token] = true
		keywords = append(keywords, token)
	}

	return keywords
}

// LeadingCode returns the numeric account-code prefix of a name, if any.
// "1000 Petty Cash" yields "1000"; "Petty Cash" yields "".
func LeadingCode(name string) string {
	name = strings.TrimSpace(name)
	end := 0
	for end < len(name) && name[end] >= '0' && name[end] <= '9' {
		end++
	}
	return name[:end]
}

// stripCodeFragments removes leading and trailing numeric fragments such as
// account codes ("1000 Petty Cash 01" -> "Petty Cash").
func stripCodeFragments(name string) string {
	fields := strings.Fields(name)

	for len(fields) > 0 && isNumericFragment(fields[0]) {
		fields = fields[1:]
	}
	for len(fields) > 0 && isNumericFragment(fields[len(fields)-1]) {
		fields = fields[:len(fields)-1]
	}

	return strings.Join(fields, " ")
}

func isNumericFragment(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) && r != '-' && r != '.' && r != '/' {
			return false
		}
	}
	return true
}
