package record

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalFlattensRanks(t *testing.T) {
	r := Record{Name: "Semma"}
	r.AddSource("NYT")
	r.AddSource("NYM")
	r.SetRank("NYT", 1)
	r.SetRank("NYM", 3)

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var flat map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &flat))

	assert.JSONEq(t, `1`, string(flat["nyt_rank"]))
	assert.JSONEq(t, `3`, string(flat["nym_rank"]))
	assert.NotContains(t, flat, "ranks")
	assert.NotContains(t, flat, "normalized_name")
}

func TestMarshalEmitsNullForUnsetFields(t *testing.T) {
	data, err := json.Marshal(Record{Name: "Semma"})
	require.NoError(t, err)

	var flat map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &flat))

	// Absence is explicit: consumers see null, not a missing key.
	for _, key := range []string{"description", "rating", "website", "last_updated", "place_id"} {
		require.Contains(t, flat, key)
		assert.Equal(t, "null", string(flat[key]), key)
	}
}

func TestUnmarshalRestoresRanks(t *testing.T) {
	payload := `{"name": "Semma", "sources": ["NYM", "NYT"], "nyt_rank": 1, "nym_rank": 3}`

	var r Record
	require.NoError(t, json.Unmarshal([]byte(payload), &r))

	rank, ok := r.Rank("NYT")
	require.True(t, ok)
	assert.Equal(t, 1, rank)

	rank, ok = r.Rank("NYM")
	require.True(t, ok)
	assert.Equal(t, 3, rank)
}

func TestUnmarshalIgnoresNullRank(t *testing.T) {
	payload := `{"name": "Semma", "nyt_rank": null}`

	var r Record
	require.NoError(t, json.Unmarshal([]byte(payload), &r))

	_, ok := r.Rank("NYT")
	assert.False(t, ok)
}

func TestMarshalRoundTrip(t *testing.T) {
	r := Record{
		Name:        "Semma",
		Description: Ptr("South Indian tasting menus."),
		Rating:      Ptr(4.6),
		ReviewCount: Ptr(250),
		Latitude:    Ptr(40.7339),
		Longitude:   Ptr(-74.0011),
		OpeningHours: []Period{
			{Open: Point{Day: 2, Time: "1730"}, Close: &Point{Day: 2, Time: "2200"}},
		},
		IsOpenNow:   Ptr(false),
		LastUpdated: Ptr("2025-06-15 12:30:00"),
	}
	r.AddSource("NYT")
	r.SetRank("NYT", 1)

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var back Record
	require.NoError(t, json.Unmarshal(data, &back))

	if diff := cmp.Diff(r, back); diff != "" {
		t.Errorf("round trip changed the record (-in +out):\n%s", diff)
	}
}

func TestRankTagsCaseInsensitive(t *testing.T) {
	var r Record
	r.SetRank("Eater", 4)

	for _, tag := range []string{"Eater", "eater", "EATER"} {
		rank, ok := r.Rank(tag)
		require.True(t, ok, tag)
		assert.Equal(t, 4, rank, tag)
	}
}

func TestMarshalRoundTripKeepsMixedCaseTagRanks(t *testing.T) {
	r := Record{Name: "Semma"}
	r.AddSource("Eater")
	r.SetRank("Eater", 1)

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"eater_rank":1`)

	var back Record
	require.NoError(t, json.Unmarshal(data, &back))

	rank, ok := back.Rank("Eater")
	require.True(t, ok, "rank lost across save/load")
	assert.Equal(t, 1, rank)
}

func TestAddSourceKeepsSortedSet(t *testing.T) {
	var r Record
	r.AddSource("NYT")
	r.AddSource("NYM")
	r.AddSource("NYT")
	r.AddSource("")

	assert.Equal(t, []string{"NYM", "NYT"}, r.Sources)
	assert.True(t, r.HasSource("NYT"))
	assert.False(t, r.HasSource("GOOGLE"))
}

func TestBestAddress(t *testing.T) {
	tests := []struct {
		name   string
		record Record
		want   string
	}{
		{
			name:   "verified supersedes scraped",
			record: Record{Address: Ptr("60 Greenwich Ave"), FormattedAddress: Ptr("60 Greenwich Ave, New York, NY 10011")},
			want:   "60 Greenwich Ave, New York, NY 10011",
		},
		{
			name:   "scraped fallback",
			record: Record{Address: Ptr("60 Greenwich Ave")},
			want:   "60 Greenwich Ave",
		},
		{
			name:   "empty verified falls through",
			record: Record{Address: Ptr("60 Greenwich Ave"), FormattedAddress: Ptr("")},
			want:   "60 Greenwich Ave",
		},
		{
			name:   "no address",
			record: Record{},
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.record.BestAddress())
		})
	}
}

func TestCloneIsDeep(t *testing.T) {
	r := Record{
		Name:         "Semma",
		Rating:       Ptr(4.6),
		OpeningHours: []Period{{Open: Point{Day: 1, Time: "1100"}, Close: &Point{Day: 1, Time: "2200"}}},
	}
	r.AddSource("NYT")
	r.SetRank("NYT", 1)

	c := r.Clone()
	*c.Rating = 1.0
	c.Sources[0] = "X"
	c.SetRank("NYT", 99)
	c.OpeningHours[0].Close.Time = "0000"

	assert.Equal(t, 4.6, *r.Rating)
	assert.Equal(t, []string{"NYT"}, r.Sources)
	rank, _ := r.Rank("NYT")
	assert.Equal(t, 1, rank)
	assert.Equal(t, "2200", r.OpeningHours[0].Close.Time)
}
