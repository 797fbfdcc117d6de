// Package dedupe collapses records that share a resolved identity key
// into one merged record per identity. Identity is resolved from the
// strongest available signal: a place identifier when present, the
// normalized name and address otherwise, and a synthetic per-record key
// as the last resort so that records with no identity never collide.
package dedupe

import (
	"fmt"

	"github.com/tablemap/tablemap/pkg/logging"
	"github.com/tablemap/tablemap/pkg/merge"
	"github.com/tablemap/tablemap/pkg/normalize"
	"github.com/tablemap/tablemap/pkg/record"
)

// Group is a duplicate-group audit entry. Diagnostic only: it reports
// which constituent records were collapsed under one identity, and is
// not part of the data contract.
type Group struct {
	Key   string   `json:"key"`
	Count int      `json:"count"`
	Names []string `json:"names"`
}

// Deduplicate groups records by identity key, preserving input order,
// and merges every group of size > 1 into a single record. The returned
// record count equals the number of distinct identity keys.
func Deduplicate(records []record.Record) ([]record.Record, []Group) {
	var keys []string
	groups := make(map[string][]record.Record, len(records))

	for i := range records {
		rec := records[i].Clone()
		normalize.Keys(&rec)

		key := identityKey(&rec, i)
		if _, seen := groups[key]; !seen {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], rec)
	}

	merged := make([]record.Record, 0, len(keys))
	var duplicates []Group

	for _, key := range keys {
		group := groups[key]
		if len(group) == 1 {
			merged = append(merged, group[0])
			continue
		}

		names := make([]string, len(group))
		for i := range group {
			names[i] = group[i].Name
		}
		duplicates = append(duplicates, Group{Key: key, Count: len(group), Names: names})

		logging.Info().
			Str("identity", key).
			Int("count", len(group)).
			Strs("names", names).
			Msg("Collapsing duplicate group")

		merged = append(merged, merge.Fields(group))
	}

	return merged, duplicates
}

// identityKey resolves the strongest identity available for a record.
// The positional fallback guarantees uniqueness for records that carry
// neither a place identifier nor a name and address.
func identityKey(r *record.Record, position int) string {
	if r.PlaceID != nil && *r.PlaceID != "" {
		return *r.PlaceID
	}
	if r.NormalizedName != "" && r.NormalizedAddress != "" {
		return r.NormalizedName + "::" + r.NormalizedAddress
	}
	if r.Name == "" {
		logging.Warn().
			Int("position", position).
			Strs("sources", r.Sources).
			Msg("Record has no usable identity; retained under synthetic key")
	}
	return fmt.Sprintf("no-identity-%d", position)
}
