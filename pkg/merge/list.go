// Package merge combines records across sources: ListMerger unions a
// secondary ranked list into a primary ranked list by entity matching,
// and FieldMerger collapses a group of records known to be the same
// entity into one.
package merge

import (
	"github.com/tablemap/tablemap/pkg/logging"
	"github.com/tablemap/tablemap/pkg/match"
	"github.com/tablemap/tablemap/pkg/normalize"
	"github.com/tablemap/tablemap/pkg/record"
)

// ListMerger merges a secondary ranked source list into a primary ranked
// source list. It is the only component that creates new identities:
// unmatched secondary records become standalone entries tagged with the
// secondary source alone.
type ListMerger struct {
	primary   string
	secondary string
}

// NewListMerger creates a merger for the given primary and secondary
// source tags.
func NewListMerger(primary, secondary string) *ListMerger {
	return &ListMerger{primary: primary, secondary: secondary}
}

// Merge unions the two lists into one record set with source provenance.
// Ranks are positional (1-based) unless a record already carries a rank
// for its source. The output order is unspecified; ordering is the order
// package's job.
//
// The inputs are treated as immutable: matching runs against a snapshot
// of the base set and the result is a freshly built collection.
func (m *ListMerger) Merge(primary, secondary []record.Record) []record.Record {
	// Every primary record starts as a base record carrying its
	// primary rank.
	base := make([]record.Record, len(primary))
	for i := range primary {
		rec := primary[i].Clone()
		normalize.Keys(&rec)
		rec.AddSource(m.primary)
		if _, ok := rec.Rank(m.primary); !ok {
			rec.SetRank(m.primary, i+1)
		}
		base[i] = rec
	}

	// Each base record may absorb at most one secondary match per pass.
	absorbed := make(map[int]bool, len(base))
	var standalone []record.Record

	for i := range secondary {
		rec := secondary[i].Clone()
		normalize.Keys(&rec)

		idx := m.findMatch(&rec, base, absorbed)
		if idx < 0 {
			rec.Sources = nil
			rec.AddSource(m.secondary)
			if _, ok := rec.Rank(m.secondary); !ok {
				rec.SetRank(m.secondary, i+1)
			}
			standalone = append(standalone, rec)
			continue
		}

		absorbed[idx] = true
		m.absorb(&base[idx], &rec, i+1)
	}

	logging.Debug().
		Int("primary", len(primary)).
		Int("secondary", len(secondary)).
		Int("matched", len(absorbed)).
		Int("standalone", len(standalone)).
		Msg("Merged source lists")

	out := make([]record.Record, 0, len(base)+len(standalone))
	out = append(out, base...)
	out = append(out, standalone...)
	return out
}

// findMatch returns the best-scoring eligible base index for rec, or -1.
// Base records that already absorbed a secondary match this pass are not
// eligible.
func (m *ListMerger) findMatch(rec *record.Record, base []record.Record, absorbed map[int]bool) int {
	return match.Best(rec, base, func(i int) bool { return !absorbed[i] })
}

// absorb adds the secondary source's provenance and rank to a matched
// base record and backfills the address and website the base lacks.
func (m *ListMerger) absorb(base, sec *record.Record, rank int) {
	base.AddSource(m.secondary)
	if r, ok := sec.Rank(m.secondary); ok {
		base.SetRank(m.secondary, r)
	} else {
		base.SetRank(m.secondary, rank)
	}

	if base.FormattedAddress == nil && sec.BestAddress() != "" {
		addr := sec.BestAddress()
		base.FormattedAddress = &addr
		normalize.Keys(base)
	}
	if base.Website == nil && sec.Website != nil {
		w := *sec.Website
		base.Website = &w
	}
}
