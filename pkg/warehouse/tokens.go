package warehouse

import (
	"sort"
	"strings"
)

// multiValueDelimiter separates the values of a packed multi-value staging
// cell, e.g. "Action|Adventure|RPG".
const multiValueDelimiter = "|"

// SplitMultiValue parses a packed multi-value cell into its ordered,
// whitespace-trimmed tokens. A nil or blank cell yields no tokens.
func SplitMultiValue(cell *string) []string {
	if cell == nil {
		return nil
	}
	var tokens []string
	for _, raw := range strings.Split(*cell, multiValueDelimiter) {
		token := strings.TrimSpace(raw)
		if token == "" {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// FirstToken selects the primary value of a multi-value cell: the first listed
// token. The first-listed genre/platform/developer is treated as primary
// throughout the warehouse.
func FirstToken(cell *string) *string {
	tokens := SplitMultiValue(cell)
	if len(tokens) == 0 {
		return nil
	}
	return &tokens[0]
}

// StripPlatformQualifier drops a trailing parenthetical version qualifier,
// so "PC (Microsoft Windows)" and "PC" name the same platform.
func StripPlatformQualifier(platform string) string {
	if idx := strings.Index(platform, " ("); idx >= 0 {
		platform = platform[:idx]
	}
	return strings.TrimSpace(platform)
}

// UniqueTokens computes the sorted set of distinct tokens across a column of
// multi-value cells, applying clean to each token before uniqueness. Nil cells
// are skipped, never treated as an empty-string entry.
func UniqueTokens(cells []*string, clean func(string) string) []string {
	seen := make(map[string]bool)
	for _, cell := range cells {
		for _, token := range SplitMultiValue(cell) {
			if clean != nil {
				token = clean(token)
			}
			if token == "" {
				continue
			}
			seen[token] = true
		}
	}
	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

// TruncateText caps a text value at the warehouse storage width. The width is
// counted in characters, not bytes, so a multibyte name is never cut mid-rune.
func TruncateText(value string) string {
	if len(value) <= MaxTextWidth {
		return value
	}
	runes := []rune(value)
	if len(runes) <= MaxTextWidth {
		return value
	}
	return string(runes[:MaxTextWidth])
}
