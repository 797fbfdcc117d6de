package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablemap/tablemap/pkg/record"
)

func findByName(t *testing.T, records []record.Record, name string) *record.Record {
	t.Helper()
	for i := range records {
		if records[i].Name == name {
			return &records[i]
		}
	}
	t.Fatalf("no record named %q", name)
	return nil
}

func TestMergeMatchedRecord(t *testing.T) {
	merger := NewListMerger("NYT", "NYM")

	primary := []record.Record{{Name: "Semma"}}
	secondary := []record.Record{{
		Name:    "semma",
		Address: record.Ptr("60 Greenwich Ave"),
	}}

	merged := merger.Merge(primary, secondary)

	require.Len(t, merged, 1)
	rec := merged[0]
	assert.Equal(t, []string{"NYM", "NYT"}, rec.Sources)

	nytRank, ok := rec.Rank("NYT")
	require.True(t, ok)
	assert.Equal(t, 1, nytRank)

	nymRank, ok := rec.Rank("NYM")
	require.True(t, ok)
	assert.Equal(t, 1, nymRank)

	// The secondary address backfills the missing one.
	require.NotNil(t, rec.FormattedAddress)
	assert.Equal(t, "60 Greenwich Ave", *rec.FormattedAddress)
}

func TestMergeUnmatchedBecomesStandalone(t *testing.T) {
	merger := NewListMerger("NYT", "NYM")

	primary := []record.Record{{Name: "Semma"}, {Name: "Kochi"}}
	secondary := []record.Record{{Name: "Via Carota"}}

	merged := merger.Merge(primary, secondary)

	require.Len(t, merged, 3)

	standalone := findByName(t, merged, "Via Carota")
	assert.Equal(t, []string{"NYM"}, standalone.Sources)
	rank, ok := standalone.Rank("NYM")
	require.True(t, ok)
	assert.Equal(t, 1, rank)
	_, hasNYT := standalone.Rank("NYT")
	assert.False(t, hasNYT)
}

func TestMergeBaseAbsorbsAtMostOneSecondary(t *testing.T) {
	merger := NewListMerger("NYT", "NYM")

	primary := []record.Record{{Name: "Joe's Pizza"}}
	secondary := []record.Record{
		{Name: "Joe's Pizza", Address: record.Ptr("7 Carmine St")},
		{Name: "Joe's Pizza", Address: record.Ptr("150 E 14th St")},
	}

	merged := merger.Merge(primary, secondary)

	// The first secondary record is absorbed; the second, with no
	// eligible base left, becomes a standalone entry.
	require.Len(t, merged, 2)

	base := merged[0]
	assert.Equal(t, []string{"NYM", "NYT"}, base.Sources)
	rank, _ := base.Rank("NYM")
	assert.Equal(t, 1, rank)

	standalone := merged[1]
	assert.Equal(t, []string{"NYM"}, standalone.Sources)
	rank, _ = standalone.Rank("NYM")
	assert.Equal(t, 2, rank)
}

func TestMergeBackfillsWebsite(t *testing.T) {
	merger := NewListMerger("NYT", "NYM")

	primary := []record.Record{{
		Name:    "Semma",
		Website: record.Ptr("https://semma.nyc"),
	}}
	secondary := []record.Record{
		{Name: "Semma", Website: record.Ptr("https://other.example.com")},
	}

	merged := merger.Merge(primary, secondary)

	require.Len(t, merged, 1)
	// Existing base values are never overwritten.
	assert.Equal(t, "https://semma.nyc", *merged[0].Website)
}

func TestMergePrefersHigherScoringBase(t *testing.T) {
	merger := NewListMerger("NYT", "NYM")

	primary := []record.Record{
		{Name: "Joe's Pizza", Address: record.Ptr("150 E 14th St")},
		{Name: "Joe's Pizza", Address: record.Ptr("7 Carmine St")},
	}
	secondary := []record.Record{
		{Name: "Joe's Pizza", Address: record.Ptr("7 Carmine Street")},
	}

	merged := merger.Merge(primary, secondary)

	require.Len(t, merged, 2)
	carmine := merged[1]
	assert.Equal(t, []string{"NYM", "NYT"}, carmine.Sources)

	fourteenth := merged[0]
	assert.Equal(t, []string{"NYT"}, fourteenth.Sources)
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	merger := NewListMerger("NYT", "NYM")

	primary := []record.Record{{Name: "Semma"}}
	secondary := []record.Record{{Name: "semma", Address: record.Ptr("60 Greenwich Ave")}}

	_ = merger.Merge(primary, secondary)

	assert.Nil(t, primary[0].Sources)
	assert.Nil(t, primary[0].Ranks)
	assert.Nil(t, secondary[0].Sources)
}

func TestMergeEmptyLists(t *testing.T) {
	merger := NewListMerger("NYT", "NYM")

	assert.Empty(t, merger.Merge(nil, nil))

	onlyPrimary := merger.Merge([]record.Record{{Name: "Semma"}}, nil)
	assert.Len(t, onlyPrimary, 1)
	assert.Equal(t, []string{"NYT"}, onlyPrimary[0].Sources)

	onlySecondary := merger.Merge(nil, []record.Record{{Name: "Kochi"}})
	assert.Len(t, onlySecondary, 1)
	assert.Equal(t, []string{"NYM"}, onlySecondary[0].Sources)
}
