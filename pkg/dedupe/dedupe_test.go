package dedupe

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablemap/tablemap/pkg/record"
)

func TestDeduplicateByPlaceID(t *testing.T) {
	records := []record.Record{
		{Name: "Semma", PlaceID: record.Ptr("ChIJsemma"), Rating: record.Ptr(4.5)},
		{Name: "SEMMA", PlaceID: record.Ptr("ChIJsemma"), Website: record.Ptr("https://semma.nyc")},
	}

	merged, duplicates := Deduplicate(records)

	require.Len(t, merged, 1)
	assert.Equal(t, "Semma", merged[0].Name)
	assert.Equal(t, 4.5, *merged[0].Rating)
	assert.Equal(t, "https://semma.nyc", *merged[0].Website)

	require.Len(t, duplicates, 1)
	assert.Equal(t, "ChIJsemma", duplicates[0].Key)
	assert.Equal(t, 2, duplicates[0].Count)
	assert.Equal(t, []string{"Semma", "SEMMA"}, duplicates[0].Names)
}

func TestDeduplicateByNameAndAddress(t *testing.T) {
	records := []record.Record{
		{Name: "Joe's Pizza", Address: record.Ptr("7 Carmine Street")},
		{Name: "Joes Pizza", Address: record.Ptr("7 Carmine St")},
	}

	merged, duplicates := Deduplicate(records)

	require.Len(t, merged, 1)
	require.Len(t, duplicates, 1)
	assert.Equal(t, "joes pizza::7 carmine st", duplicates[0].Key)
}

func TestDeduplicateNameWithoutAddressStaysDistinct(t *testing.T) {
	// Name alone is too weak an identity; chain locations must survive.
	records := []record.Record{
		{Name: "Joe's Pizza"},
		{Name: "Joe's Pizza"},
	}

	merged, duplicates := Deduplicate(records)

	assert.Len(t, merged, 2)
	assert.Empty(t, duplicates)
}

func TestDeduplicatePlaceIDTrumpsAddress(t *testing.T) {
	// Same place identifier wins even when the addresses disagree.
	records := []record.Record{
		{Name: "Semma", PlaceID: record.Ptr("ChIJsemma"), Address: record.Ptr("60 Greenwich Ave")},
		{Name: "Semma", PlaceID: record.Ptr("ChIJsemma"), Address: record.Ptr("62 Greenwich Ave")},
	}

	merged, _ := Deduplicate(records)

	assert.Len(t, merged, 1)
}

func TestDeduplicatePreservesFirstSeenOrder(t *testing.T) {
	records := []record.Record{
		{Name: "Semma", Address: record.Ptr("60 Greenwich Ave")},
		{Name: "Kochi", Address: record.Ptr("652 10th Ave")},
		{Name: "Semma", Address: record.Ptr("60 Greenwich Avenue")},
	}

	merged, _ := Deduplicate(records)

	require.Len(t, merged, 2)
	assert.Equal(t, "Semma", merged[0].Name)
	assert.Equal(t, "Kochi", merged[1].Name)
}

func TestDeduplicateRecordsWithoutIdentityNeverCollide(t *testing.T) {
	records := []record.Record{
		{Description: record.Ptr("unnamed one")},
		{Description: record.Ptr("unnamed two")},
	}

	merged, duplicates := Deduplicate(records)

	assert.Len(t, merged, 2)
	assert.Empty(t, duplicates)
}

func TestDeduplicateIdempotent(t *testing.T) {
	records := []record.Record{
		{Name: "Semma", Address: record.Ptr("60 Greenwich Ave"), Rating: record.Ptr(4.5)},
		{Name: "Semma", Address: record.Ptr("60 Greenwich Avenue"), Rating: record.Ptr(4.6), ReviewCount: record.Ptr(250)},
		{Name: "Kochi", Address: record.Ptr("652 10th Ave")},
	}

	once, _ := Deduplicate(records)
	twice, _ := Deduplicate(once)

	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("second pass changed the output (-once +twice):\n%s", diff)
	}
}

func TestDeduplicateCountConservation(t *testing.T) {
	records := []record.Record{
		{Name: "Semma", Address: record.Ptr("60 Greenwich Ave")},
		{Name: "Semma", Address: record.Ptr("60 Greenwich Ave")},
		{Name: "Semma", Address: record.Ptr("60 Greenwich Ave")},
		{Name: "Kochi", Address: record.Ptr("652 10th Ave")},
	}

	merged, duplicates := Deduplicate(records)

	collapsed := 0
	for _, g := range duplicates {
		collapsed += g.Count - 1
	}
	assert.Equal(t, len(records), len(merged)+collapsed)
}

func TestDeduplicateEmptyInput(t *testing.T) {
	merged, duplicates := Deduplicate(nil)
	assert.Empty(t, merged)
	assert.Empty(t, duplicates)
}
