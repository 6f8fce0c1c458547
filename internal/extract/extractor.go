// Package extract turns raw social-post text into candidate token
// addresses and cashtag symbols. All functions are pure; malformed or
// empty input yields empty results, never an error.
package extract

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/mr-tron/base58"
)

// addressPattern matches whole-word base58 strings of plausible Solana
// address length. The base58 alphabet excludes 0, O, I and l.
var addressPattern = regexp.MustCompile(`\b[1-9A-HJ-NP-Za-km-z]{32,44}\b`)

// Addresses extracts the deduplicated set of token addresses mentioned
// in texts. A match must decode to exactly 32 bytes to count as an
// address. Order of first appearance is preserved for determinism.
func Addresses(texts []string) []string {
	var out []string
	seen := make(map[string]struct{})

	for _, text := range texts {
		for _, match := range addressPattern.FindAllString(text, -1) {
			if _, ok := seen[match]; ok {
				continue
			}
			raw, err := base58.Decode(match)
			if err != nil || len(raw) != 32 {
				continue
			}
			seen[match] = struct{}{}
			out = append(out, match)
		}
	}

	return out
}

// Symbols extracts the deduplicated set of cashtag symbols mentioned in
// texts. A cashtag is a whitespace-delimited token beginning with '$'
// and at least two characters long; the leading '$' is stripped and the
// symbol uppercased, so "$doge" and "$DOGE" collapse to one entry.
func Symbols(texts []string) []string {
	var out []string
	seen := make(map[string]struct{})

	for _, text := range texts {
		for _, field := range strings.Fields(text) {
			if len(field) < 2 || !strings.HasPrefix(field, "$") {
				continue
			}
			symbol := normalizeSymbol(field[1:])
			if symbol == "" {
				continue
			}
			if _, ok := seen[symbol]; ok {
				continue
			}
			seen[symbol] = struct{}{}
			out = append(out, symbol)
		}
	}

	return out
}

// normalizeSymbol uppercases a raw cashtag body and trims trailing
// punctuation ("$doge," is still DOGE).
func normalizeSymbol(raw string) string {
	s := strings.TrimRightFunc(raw, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.ToUpper(s)
}
