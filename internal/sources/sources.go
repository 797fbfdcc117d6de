// Package sources loads the ordered per-source record lists produced by
// the upstream scrapers. Each source file is a JSON array in the
// canonical record schema; order within the file is the source's own
// ranking.
package sources

import (
	"context"

	"github.com/tablemap/tablemap/pkg/catalog"
	"github.com/tablemap/tablemap/pkg/logging"
	"github.com/tablemap/tablemap/pkg/record"
)

// Source supplies one origin list of partially populated records.
type Source interface {
	// Tag returns the source tag records from this source carry.
	Tag() string

	// Records returns the source's ordered record list.
	Records(ctx context.Context) ([]record.Record, error)
}

// FileSource reads a source list from a JSON file on disk.
type FileSource struct {
	tag  string
	path string
}

// NewFileSource creates a source backed by a JSON file.
func NewFileSource(tag, path string) *FileSource {
	return &FileSource{tag: tag, path: path}
}

// Tag implements Source.
func (s *FileSource) Tag() string {
	return s.tag
}

// Records implements Source. Ranks are taken from the file when present
// and fall back to file position (1-based) otherwise.
func (s *FileSource) Records(ctx context.Context) ([]record.Record, error) {
	records, err := catalog.Load(s.path)
	if err != nil {
		return nil, err
	}

	for i := range records {
		if _, ok := records[i].Rank(s.tag); !ok {
			records[i].SetRank(s.tag, i+1)
		}
	}

	logging.FromContext(ctx).Info().
		Str("source", s.tag).
		Str("path", s.path).
		Int("records", len(records)).
		Msg("Loaded source list")

	return records, nil
}

// StaticSource serves a fixed record list. Used by tests and examples.
type StaticSource struct {
	tag     string
	records []record.Record
}

// NewStaticSource creates a source from an in-memory list.
func NewStaticSource(tag string, records []record.Record) *StaticSource {
	return &StaticSource{tag: tag, records: records}
}

// Tag implements Source.
func (s *StaticSource) Tag() string {
	return s.tag
}

// Records implements Source.
func (s *StaticSource) Records(_ context.Context) ([]record.Record, error) {
	out := make([]record.Record, len(s.records))
	for i := range s.records {
		out[i] = s.records[i].Clone()
	}
	return out, nil
}
