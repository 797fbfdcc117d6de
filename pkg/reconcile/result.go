package reconcile

import (
	"fmt"
	"time"

	"github.com/tablemap/tablemap/pkg/dedupe"
	"github.com/tablemap/tablemap/pkg/record"
)

// Result represents the outcome of a reconciliation run.
type Result struct {
	// Records is the canonical catalog, sorted by combined order.
	Records []record.Record

	// Duplicates are the audit entries for collapsed identity groups.
	Duplicates []dedupe.Group

	// Warnings collects non-fatal conditions encountered during the
	// run, such as unavailable enrichments.
	Warnings []string

	// Stats about the run.
	Stats Statistics

	// Metadata about the run.
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
	Primary   string
	Secondary string
}

// Statistics counts records through each stage.
type Statistics struct {
	PrimaryIn    int
	SecondaryIn  int
	Merged       int
	Enriched     int
	Deduplicated int
}

// NewResult creates a new result with defaults.
func NewResult(primary, secondary string) *Result {
	return &Result{
		Primary:   primary,
		Secondary: secondary,
		StartTime: time.Now(),
	}
}

// Finalize calculates duration and marks completion.
func (r *Result) Finalize() {
	r.EndTime = time.Now()
	r.Duration = r.EndTime.Sub(r.StartTime)
}

// Summary returns a human-readable summary of the run.
func (r *Result) Summary() string {
	return fmt.Sprintf("merged %d %s + %d %s records into %d catalog entries (%d duplicate groups collapsed)",
		r.Stats.PrimaryIn, r.Primary,
		r.Stats.SecondaryIn, r.Secondary,
		len(r.Records), len(r.Duplicates))
}
