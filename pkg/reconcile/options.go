package reconcile

import (
	"context"

	"github.com/tablemap/tablemap/pkg/errors"
	"github.com/tablemap/tablemap/pkg/record"
)

// Default source tags. The primary list drives the combined ordering;
// secondary-only records sort after it.
const (
	DefaultPrimaryTag   = "NYT"
	DefaultSecondaryTag = "NYM"
)

// Enrichment is the outcome of one enrichment attempt. When Applied is
// false the caller must keep the original record; Record is only
// meaningful on an applied enrichment.
type Enrichment struct {
	Record  record.Record
	Applied bool
}

// Unavailable is the enrichment outcome for a failed or empty lookup.
func Unavailable() Enrichment {
	return Enrichment{}
}

// Enriched wraps a successfully enriched record.
func Enriched(r record.Record) Enrichment {
	return Enrichment{Record: r, Applied: true}
}

// Enricher supplies external data for a record, typically from a
// place-lookup provider. Implementations own their rate limiting and
// retry discipline; the engine calls sequentially and never retries.
type Enricher interface {
	Enrich(ctx context.Context, r record.Record) (Enrichment, error)
}

// EnricherFunc adapts a function to the Enricher interface.
type EnricherFunc func(ctx context.Context, r record.Record) (Enrichment, error)

// Enrich implements Enricher.
func (f EnricherFunc) Enrich(ctx context.Context, r record.Record) (Enrichment, error) {
	return f(ctx, r)
}

// options configures a reconciler.
type options struct {
	primaryTag   string
	secondaryTag string
	enricher     Enricher
}

func defaultOptions() *options {
	return &options{
		primaryTag:   DefaultPrimaryTag,
		secondaryTag: DefaultSecondaryTag,
	}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// newOptions returns reconciler options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithSources sets the primary and secondary source tags.
func WithSources(primary, secondary string) Option {
	return func(o *options) error {
		if primary == "" || secondary == "" {
			return &errors.ValidationError{
				Field:   "sources",
				Message: "primary and secondary tags cannot be empty",
			}
		}
		if primary == secondary {
			return &errors.ValidationError{
				Field:   "sources",
				Value:   primary,
				Message: "primary and secondary tags must differ",
			}
		}
		o.primaryTag = primary
		o.secondaryTag = secondary
		return nil
	}
}

// WithEnricher sets the enrichment collaborator applied between list
// merging and deduplication.
func WithEnricher(enricher Enricher) Option {
	return func(o *options) error {
		o.enricher = enricher
		return nil
	}
}
