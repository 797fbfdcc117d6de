// Package order computes the single deterministic integer used to sort
// the final catalog from per-source ranks.
package order

import (
	"sort"

	"github.com/tablemap/tablemap/pkg/record"
)

const (
	// SecondaryOffset pushes secondary-only records after every
	// primary-sourced record. A fixed constant, not derived: primary
	// lists are assumed to stay below 100 entries.
	SecondaryOffset = 100

	// Fallback is the sentinel for records carrying no rank at all.
	// Such records should not occur given the pipeline's invariants,
	// but ordering must never fail on one.
	Fallback = 999
)

// Calculator derives combined order values for a fixed primary/secondary
// source pair.
type Calculator struct {
	primary   string
	secondary string
}

// New creates a Calculator for the given source tags.
func New(primary, secondary string) *Calculator {
	return &Calculator{primary: primary, secondary: secondary}
}

// Order returns the combined order for a record: its primary rank when it
// has one, SecondaryOffset plus its secondary rank otherwise, and
// Fallback when it carries neither.
func (c *Calculator) Order(r *record.Record) int {
	if rank, ok := r.Rank(c.primary); ok {
		return rank
	}
	if rank, ok := r.Rank(c.secondary); ok {
		return SecondaryOffset + rank
	}
	return Fallback
}

// Apply recomputes CombinedOrder on every record and stably sorts the
// slice ascending by it.
func (c *Calculator) Apply(records []record.Record) []record.Record {
	for i := range records {
		records[i].CombinedOrder = c.Order(&records[i])
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CombinedOrder < records[j].CombinedOrder
	})
	return records
}
