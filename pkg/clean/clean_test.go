package clean

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablemap/tablemap/pkg/record"
)

func TestCuisine(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Restaurant", "American"},
		{"udon noodles", "Japanese"},
		{"  South Indian  ", "South Indian"},
		{"Italian", "Italian"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Cuisine(tt.in))
		})
	}
}

func TestDescription(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "escaped newlines",
			in:   `Tasting menus.\nIn the West Village.`,
			want: "Tasting menus. In the West Village.",
		},
		{
			name: "real newlines and runs of spaces",
			in:   "Tamil  cooking\nfrom  Chennai",
			want: "Tamil cooking from Chennai.",
		},
		{
			name: "trailing period added once",
			in:   "Already terminated.",
			want: "Already terminated.",
		},
		{
			name: "empty stays empty",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Description(tt.in))
		})
	}
}

func TestNeighborhood(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "specific beats borough",
			in:   "A West Village standby in Manhattan.",
			want: "West Village",
		},
		{
			name: "case insensitive",
			in:   "deep in GREENPOINT, Brooklyn",
			want: "Greenpoint",
		},
		{
			name: "no mention",
			in:   "A cozy room with a long bar.",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Neighborhood(tt.in))
		})
	}
}

func TestRecordFillsNeighborhoodFromDescription(t *testing.T) {
	r := record.Record{
		Name:        "Via Carota",
		Description: record.Ptr("An Italian spot in the West Village"),
	}

	Record(&r)

	require.NotNil(t, r.Neighborhood)
	assert.Equal(t, "West Village", *r.Neighborhood)
	assert.Equal(t, "An Italian spot in the West Village.", *r.Description)
}

func TestRecordKeepsExistingNeighborhood(t *testing.T) {
	r := record.Record{
		Description:  record.Ptr("In the West Village."),
		Neighborhood: record.Ptr("Greenwich Village"),
	}

	Record(&r)

	assert.Equal(t, "Greenwich Village", *r.Neighborhood)
}

func TestRecordsDoesNotMutateInput(t *testing.T) {
	in := []record.Record{{Cuisine: record.Ptr("Restaurant")}}

	out := Records(in)

	assert.Equal(t, "Restaurant", *in[0].Cuisine)
	assert.Equal(t, "American", *out[0].Cuisine)
}
