package merge

import (
	"slices"

	"github.com/tablemap/tablemap/pkg/record"
)

// Fields collapses a non-empty ordered group of records denoting the same
// entity into a single record. The first record in the group is the base;
// later records contribute only what the merged record still lacks, with
// the field-specific rules below. Merging the same group in the same
// order always yields identical output.
func Fields(group []record.Record) record.Record {
	if len(group) == 0 {
		return record.Record{}
	}

	merged := group[0].Clone()

	// Union source tags across the whole group, emitted sorted.
	for i := range group {
		for _, tag := range group[i].Sources {
			merged.AddSource(tag)
		}
	}

	// For each source, keep the best (minimum) rank seen in the group.
	for i := range group {
		for tag, rank := range group[i].Ranks {
			if current, ok := merged.Rank(tag); !ok || rank < current {
				merged.SetRank(tag, rank)
			}
		}
	}

	for i := 1; i < len(group); i++ {
		mergeInto(&merged, &group[i])
	}

	return merged
}

// mergeInto folds one sibling record's fields into the merged record.
func mergeInto(merged *record.Record, r *record.Record) {
	// Scalar descriptive fields: first non-empty value wins.
	if merged.Name == "" && r.Name != "" {
		merged.Name = r.Name
		merged.NormalizedName = r.NormalizedName
	}
	fillString(&merged.Description, r.Description)
	fillString(&merged.FormattedAddress, r.FormattedAddress)
	fillString(&merged.Address, r.Address)
	fillString(&merged.Website, r.Website)
	fillString(&merged.Phone, r.Phone)
	fillString(&merged.GoogleMapsURL, r.GoogleMapsURL)
	fillString(&merged.Cuisine, r.Cuisine)
	fillString(&merged.PriceRange, r.PriceRange)
	fillString(&merged.ImageURL, r.ImageURL)
	fillString(&merged.Neighborhood, r.Neighborhood)
	fillString(&merged.PlaceID, r.PlaceID)

	// Rating and review count move together: a strictly greater rating
	// adopts the review count tied to it, never one without the other.
	// Equal ratings leave the earlier value undisturbed.
	if r.Rating != nil && (merged.Rating == nil || *r.Rating > *merged.Rating) {
		merged.Rating = clone(r.Rating)
		merged.ReviewCount = clone(r.ReviewCount)
	}

	// Coordinates are adopted as a pair from the first record that
	// supplies both.
	if !merged.HasCoordinates() && r.HasCoordinates() {
		merged.Latitude = clone(r.Latitude)
		merged.Longitude = clone(r.Longitude)
	}

	// Opening hours and the open-now flag travel together.
	if merged.OpeningHours == nil && r.OpeningHours != nil {
		merged.OpeningHours = slices.Clone(r.OpeningHours)
		merged.IsOpenNow = clone(r.IsOpenNow)
	}

	// Most recent timestamp wins; the layout makes lexicographic and
	// chronological order agree.
	if r.LastUpdated != nil && (merged.LastUpdated == nil || *r.LastUpdated > *merged.LastUpdated) {
		merged.LastUpdated = clone(r.LastUpdated)
	}
}

func fillString(dst **string, src *string) {
	if *dst == nil && src != nil && *src != "" {
		v := *src
		*dst = &v
	}
}

func clone[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
