// Package clean is an optional post-processing pass that tidies display
// fields on an already-reconciled catalog: price-range and cuisine
// standardization, description whitespace cleanup, and neighborhood
// extraction from description text. It never changes a record's identity
// or ordering.
package clean

import (
	"strings"

	"github.com/tablemap/tablemap/pkg/record"
)

// cuisineAliases folds scraped cuisine labels into display names.
var cuisineAliases = map[string]string{
	"Restaurant":             "American",
	"udon noodles":           "Japanese",
	"Azerbaijani restaurant": "Azerbaijani",
}

// neighborhoods lists NYC areas recognized in description text, most
// specific first so "West Village" wins over "Manhattan".
var neighborhoods = []string{
	"West Village", "East Village", "Greenwich Village", "SoHo", "NoMad",
	"Upper West Side", "Upper East Side", "Little Italy", "Koreatown",
	"Long Island City", "Jackson Heights", "Bedford-Stuyvesant",
	"Crown Heights", "Park Slope", "Bay Ridge", "Sheepshead Bay",
	"Prospect Heights", "Fort Greene", "Sunset Park", "Bensonhurst",
	"Red Hook", "Greenpoint", "Williamsburg", "Bushwick", "Flushing",
	"Elmhurst", "Astoria", "Chinatown", "Harlem", "Chelsea", "Midtown",
	"Downtown", "Times Square", "Financial District",
	"Manhattan", "Brooklyn", "Queens", "Bronx", "Staten Island",
}

// Records returns a cleaned copy of the catalog. The input is not
// modified.
func Records(records []record.Record) []record.Record {
	out := make([]record.Record, len(records))
	for i := range records {
		out[i] = records[i].Clone()
		Record(&out[i])
	}
	return out
}

// Record cleans a single record in place.
func Record(r *record.Record) {
	if r.Cuisine != nil {
		c := Cuisine(*r.Cuisine)
		r.Cuisine = &c
	}
	if r.Description != nil {
		d := Description(*r.Description)
		r.Description = &d

		if r.Neighborhood == nil {
			if hood := Neighborhood(d); hood != "" {
				r.Neighborhood = &hood
			}
		}
	}
}

// Cuisine standardizes a cuisine label.
func Cuisine(s string) string {
	cleaned := strings.TrimSpace(s)
	if alias, ok := cuisineAliases[cleaned]; ok {
		return alias
	}
	return cleaned
}

// Description removes stray escaped newlines and normalizes whitespace,
// ensuring a trailing period.
func Description(s string) string {
	cleaned := strings.ReplaceAll(s, `\n`, " ")
	cleaned = strings.ReplaceAll(cleaned, "\n", " ")
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	if cleaned != "" && !strings.HasSuffix(cleaned, ".") {
		cleaned += "."
	}
	return cleaned
}

// Neighborhood extracts the first recognized NYC neighborhood mentioned
// in the text, or the empty string.
func Neighborhood(text string) string {
	lower := strings.ToLower(text)
	for _, hood := range neighborhoods {
		if strings.Contains(lower, strings.ToLower(hood)) {
			return hood
		}
	}
	return ""
}
