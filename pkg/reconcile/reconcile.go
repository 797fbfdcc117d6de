// Package reconcile orchestrates the full catalog pipeline: normalize the
// per-source lists, merge the secondary list into the primary, apply any
// available enrichment, collapse duplicates, and compute the combined
// ordering. Every stage is a pure transformation over its input record
// set; the reconciler itself holds no mutable state between runs.
package reconcile

import (
	"context"

	"github.com/tablemap/tablemap/pkg/dedupe"
	"github.com/tablemap/tablemap/pkg/logging"
	"github.com/tablemap/tablemap/pkg/merge"
	"github.com/tablemap/tablemap/pkg/normalize"
	"github.com/tablemap/tablemap/pkg/order"
	"github.com/tablemap/tablemap/pkg/record"
)

// Reconciler merges per-source record lists into one canonical,
// deduplicated, deterministically ordered catalog.
type Reconciler interface {
	// Run reconciles the primary and secondary source lists.
	Run(ctx context.Context, primary, secondary []record.Record) (*Result, error)
}

// reconciler is the default implementation of Reconciler.
type reconciler struct {
	primaryTag   string
	secondaryTag string
	enricher     Enricher
}

// New creates a new Reconciler with options.
func New(opts ...Option) (Reconciler, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &reconciler{
		primaryTag:   options.primaryTag,
		secondaryTag: options.secondaryTag,
		enricher:     options.enricher,
	}, nil
}

// Run executes the pipeline.
func (r *reconciler) Run(ctx context.Context, primary, secondary []record.Record) (*Result, error) {
	logger := logging.FromContext(ctx)
	result := NewResult(r.primaryTag, r.secondaryTag)
	result.Stats.PrimaryIn = len(primary)
	result.Stats.SecondaryIn = len(secondary)

	// Attach comparison keys; inputs stay untouched.
	primary = normalize.Records(primary)
	secondary = normalize.Records(secondary)

	// Cross-source match and union.
	merger := merge.NewListMerger(r.primaryTag, r.secondaryTag)
	merged := merger.Merge(primary, secondary)
	result.Stats.Merged = len(merged)

	// Optional enrichment. A failed lookup leaves the record exactly as
	// it was; enrichment never aborts a run.
	if r.enricher != nil {
		merged = r.enrich(ctx, merged, result)
	}

	// Post-hoc identity collapse, e.g. once enrichment has revealed
	// shared place identifiers.
	deduped, duplicates := dedupe.Deduplicate(merged)
	result.Duplicates = duplicates
	result.Stats.Deduplicated = len(deduped)

	// Deterministic total order.
	calc := order.New(r.primaryTag, r.secondaryTag)
	result.Records = calc.Apply(deduped)

	logger.Info().
		Int("primary", result.Stats.PrimaryIn).
		Int("secondary", result.Stats.SecondaryIn).
		Int("catalog", len(result.Records)).
		Int("duplicate_groups", len(result.Duplicates)).
		Msg("Reconciliation complete")

	result.Finalize()
	return result, nil
}

// enrich applies the configured enricher record by record, unwrapping to
// the original on any unavailable result.
func (r *reconciler) enrich(ctx context.Context, records []record.Record, result *Result) []record.Record {
	logger := logging.FromContext(ctx)
	out := make([]record.Record, len(records))

	for i := range records {
		enrichment, err := r.enricher.Enrich(ctx, records[i])
		if err != nil || !enrichment.Applied {
			if err != nil {
				logger.Warn().
					Err(err).
					Str("name", records[i].Name).
					Msg("Enrichment unavailable; record passed through")
				result.Warnings = append(result.Warnings, err.Error())
			}
			out[i] = records[i]
			continue
		}
		result.Stats.Enriched++
		out[i] = enrichment.Record
	}

	return out
}
