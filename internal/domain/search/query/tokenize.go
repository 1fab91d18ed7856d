// Package query turns free-text search input into tokens and price bounds.
package query

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// markerWords are the words that, followed by 1 or 2, form a condition marker
// ("first-hand" / "second-hand"). Users type them with or without the space.
var markerWords = []string{"มือ", "hand"}

// Normalize trims s, collapses whitespace runs to single spaces and lowercases it.
// Thai has no case and no spaces between words; only explicit whitespace separates.
func Normalize(s string) string {
	collapsed := strings.Join(strings.Fields(s), " ")
	if collapsed == "" {
		return ""
	}
	// A Caser holds state, so each call gets its own.
	return cases.Lower(language.Und).String(collapsed)
}

// Tokenize splits a query into search tokens. Condition markers such as
// "มือ1" or "hand 2" come out as one token in canonical spaced form
// ("มือ 1", "hand 2"); all other text is split on whitespace. Token order
// follows the input.
func Tokenize(q string) []string {
	rest := Normalize(q)
	if rest == "" {
		return nil
	}

	var tokens []string
	for {
		start, end, marker, ok := nextMarker(rest)
		if !ok {
			return append(tokens, strings.Fields(rest)...)
		}
		tokens = append(tokens, strings.Fields(rest[:start])...)
		tokens = append(tokens, marker)
		rest = rest[end:]
	}
}

// IsConditionMarker reports whether token is a canonical condition marker.
func IsConditionMarker(token string) bool {
	for _, w := range markerWords {
		if token == w+" 1" || token == w+" 2" {
			return true
		}
	}
	return false
}

// nextMarker finds the leftmost condition marker in normalized text s and
// returns its byte span and canonical form.
func nextMarker(s string) (start, end int, marker string, ok bool) {
	for i := 0; i < len(s); i++ {
		for _, w := range markerWords {
			if !strings.HasPrefix(s[i:], w) {
				continue
			}
			if isLatinWord(w) && i > 0 && isASCIILetter(s[i-1]) {
				continue
			}
			j := i + len(w)
			if j < len(s) && s[j] == ' ' {
				j++
			}
			if j >= len(s) || (s[j] != '1' && s[j] != '2') {
				continue
			}
			if j+1 < len(s) && isDigit(s[j+1]) {
				continue
			}
			return i, j + 1, w + " " + string(s[j]), true
		}
	}
	return 0, 0, "", false
}

func isLatinWord(w string) bool {
	return w != "" && isASCIILetter(w[0])
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
