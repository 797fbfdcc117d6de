// Package match scores whether two records denote the same real-world
// restaurant. Matching is name-driven: an address can strengthen a match
// but never substitute for one.
package match

import (
	"regexp"
	"strings"

	"github.com/tablemap/tablemap/pkg/normalize"
	"github.com/tablemap/tablemap/pkg/record"
)

// Scoring weights. A name match is mandatory, so Threshold equals the
// base name contribution.
const (
	nameScore    = 10
	addressScore = 10
	exactBonus   = 5

	// Threshold is the minimum total score for IsMatch.
	Threshold = 10

	// streetNamePrefix is how many leading characters of the street name
	// must agree when matching by street number.
	streetNamePrefix = 10
)

// streetPattern captures the leading street number and the street name
// that follows it. The name class covers any letter or digit, not just
// ASCII, so transliterated street names still compare.
var streetPattern = regexp.MustCompile(`(\d+)\s+([\p{L}\p{N}\s]+)`)

// Score returns the additive match score between two records. Name and
// address contribute independently; see IsMatch for the acceptance rule.
func Score(a, b *record.Record) int {
	return nameComponent(a, b) + addressComponent(a, b)
}

// IsMatch reports whether a and b denote the same entity: the name must
// contribute a positive score and the total must reach Threshold.
func IsMatch(a, b *record.Record) bool {
	name := nameComponent(a, b)
	if name == 0 {
		return false
	}
	return name+addressComponent(a, b) >= Threshold
}

// Best returns the index of the highest-scoring match for rec among
// candidates, or -1 if none reaches the threshold. Candidates for which
// eligible returns false are skipped; a nil eligible considers them all.
// Equal scores resolve to the earliest candidate: a deliberate
// first-seen tie-break, with no attempt to disambiguate equally-scored
// entities beyond the address heuristics already in Score.
func Best(rec *record.Record, candidates []record.Record, eligible func(int) bool) int {
	bestIdx := -1
	bestScore := 0

	for i := range candidates {
		if eligible != nil && !eligible(i) {
			continue
		}
		name := nameComponent(rec, &candidates[i])
		if name == 0 {
			continue
		}
		score := name + addressComponent(rec, &candidates[i])
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}

	if bestScore >= Threshold {
		return bestIdx
	}
	return -1
}

// nameComponent scores the name relation: base for equality or substring
// containment, plus a bonus for exact equality. A missing name on either
// side scores zero, which excludes the pair from matching entirely.
func nameComponent(a, b *record.Record) int {
	an, bn := nameKey(a), nameKey(b)
	if an == "" || bn == "" {
		return 0
	}
	switch {
	case an == bn:
		return nameScore + exactBonus
	case strings.Contains(an, bn) || strings.Contains(bn, an):
		return nameScore
	default:
		return 0
	}
}

// addressComponent scores the address relation. When either side has no
// address the component is vacuously the base score: a name-only match is
// still acceptable.
func addressComponent(a, b *record.Record) int {
	aa, ba := addressKey(a), addressKey(b)
	if aa == "" || ba == "" {
		return addressScore
	}
	switch {
	case aa == ba:
		return addressScore + exactBonus
	case strings.Contains(aa, ba) || strings.Contains(ba, aa):
		return addressScore
	case sameStreet(aa, ba):
		return addressScore
	default:
		return 0
	}
}

// sameStreet reports whether two normalized addresses share the leading
// street number and the first streetNamePrefix characters of the street
// name.
func sameStreet(a, b string) bool {
	am := streetPattern.FindStringSubmatch(a)
	bm := streetPattern.FindStringSubmatch(b)
	if am == nil || bm == nil {
		return false
	}
	if am[1] != bm[1] {
		return false
	}
	return prefix(strings.TrimSpace(am[2])) == prefix(strings.TrimSpace(bm[2]))
}

// prefix truncates a street name to its first streetNamePrefix
// characters, counting runes so multibyte names are never split.
func prefix(s string) string {
	runes := []rune(s)
	if len(runes) > streetNamePrefix {
		return string(runes[:streetNamePrefix])
	}
	return s
}

func nameKey(r *record.Record) string {
	if r.NormalizedName != "" {
		return r.NormalizedName
	}
	return normalize.Name(r.Name)
}

func addressKey(r *record.Record) string {
	if r.NormalizedAddress != "" {
		return r.NormalizedAddress
	}
	return normalize.Address(r.BestAddress())
}
