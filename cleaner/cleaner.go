// Package cleaner normalizes raw review text into tokens.
package cleaner

import (
	"regexp"
	"strings"
)

// Rule rewrites every match of Pattern with Replacement.
type Rule struct {
	Pattern     *regexp.Regexp
	Replacement string
}

type Cleaner struct {
	rules []Rule
}

// DefaultRules returns the normalization rules applied in order:
//  1. punctuation closing a line or following whitespace is dropped ("bad ." -> "bad"),
//  2. any remaining punctuation mark becomes a single space ("bad,worse" -> "bad worse").
func DefaultRules() []Rule {
	return []Rule{
		{Pattern: regexp.MustCompile(`[.,!?;:]+\r`), Replacement: ""},
		{Pattern: regexp.MustCompile(`(\s)[.,!?;:]+(\s|$)`), Replacement: "$1$2"},
		{Pattern: regexp.MustCompile(`[.,!?;:]`), Replacement: " "},
	}
}

// NewCleaner builds a cleaner applying the given rules in order.
// Without rules the DefaultRules are used.
func NewCleaner(rules ...Rule) Cleaner {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return Cleaner{rules: rules}
}

// Clean lowercases the review, applies the rules and splits on whitespace.
// An empty slice is a valid result.
func (c Cleaner) Clean(review string) []string {
	text := strings.ToLower(review)
	for _, rule := range c.rules {
		text = rule.Pattern.ReplaceAllString(text, rule.Replacement)
	}
	return strings.Fields(text)
}

// CleanAll cleans every review, keeping corpus order.
func (c Cleaner) CleanAll(reviews []string) [][]string {
	tokens := make([][]string, len(reviews))
	for i, review := range reviews {
		tokens[i] = c.Clean(review)
	}
	return tokens
}
