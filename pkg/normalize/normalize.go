// Package normalize canonicalizes free-text restaurant names and addresses
// into comparable keys. Both functions are pure and idempotent: applying a
// normalizer to its own output returns the same key.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/tablemap/tablemap/pkg/record"
)

// suffixes maps spelled-out street suffixes to their postal abbreviations.
var suffixes = map[string]string{
	"street":    "st",
	"avenue":    "ave",
	"boulevard": "blvd",
	"place":     "pl",
	"road":      "rd",
	"drive":     "dr",
}

// accentFolder strips combining diacritical marks so that "Café" and
// "Cafe" produce the same key.
var accentFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Name canonicalizes a restaurant name for matching. Empty input yields
// the empty key.
func Name(s string) string {
	if s == "" {
		return ""
	}
	s = foldAccents(strings.ToLower(strings.TrimSpace(s)))
	s = strings.ReplaceAll(s, "&", " and ")
	s = stripPunctuation(s)
	return collapseSpaces(s)
}

// Address canonicalizes an address for matching. Spelled-out street
// suffixes are abbreviated before punctuation is stripped, so
// "60 Greenwich Avenue" and "60 Greenwich Ave." produce the same key.
func Address(s string) string {
	if s == "" {
		return ""
	}
	s = foldAccents(strings.ToLower(strings.TrimSpace(s)))
	words := strings.Fields(s)
	for i, word := range words {
		if abbrev, ok := suffixes[stripPunctuation(word)]; ok {
			words[i] = abbrev
		}
	}
	s = stripPunctuation(strings.Join(words, " "))
	return collapseSpaces(s)
}

// Keys computes and caches the comparison keys on a record. The address
// key prefers the provider-verified address over scraped free text.
func Keys(r *record.Record) {
	r.NormalizedName = Name(r.Name)
	r.NormalizedAddress = Address(r.BestAddress())
}

// Records returns a copy of records with comparison keys attached to
// every entry. The input slice is not modified.
func Records(records []record.Record) []record.Record {
	out := make([]record.Record, len(records))
	for i := range records {
		out[i] = records[i].Clone()
		Keys(&out[i])
	}
	return out
}

// stripPunctuation keeps letters, digits, and spaces. Curly and straight
// apostrophes are punctuation either way, so "Joe's" and "Joe’s" collapse
// to the same key.
func stripPunctuation(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func foldAccents(s string) string {
	folded, _, err := transform.String(accentFolder, s)
	if err != nil {
		return s
	}
	return folded
}
