// Package record defines the canonical restaurant record shared by every
// stage of the reconciliation pipeline. A record is created from a single
// source's raw entry, gains fields and provenance as lists are merged, and
// survives deduplication as one entry per resolved identity.
//
// Optional fields are modeled as pointers so that "unset" is explicit and
// distinct from a zero value; the engine never signals absence by deleting
// map keys.
package record

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// TimeLayout is the wire format for the LastUpdated field. Values in this
// layout compare chronologically when compared lexicographically.
const TimeLayout = "2006-01-02 15:04:05"

// Record is a single restaurant entry in the catalog.
type Record struct {
	// Core identity
	Name string `json:"name"`

	// Cached comparison keys, derived from Name and the best available
	// address. Never persisted as a source of truth; always recomputable.
	NormalizedName    string `json:"-"`
	NormalizedAddress string `json:"-"`

	// Provenance: which origin lists contributed to this record.
	// Maintained as a sorted set, never empty once the record enters
	// the pipeline.
	Sources []string `json:"sources"`

	// Ranks maps a source tag to the record's position in that source's
	// own list (lower = better). Keys are canonicalized uppercase tags;
	// serialized as lowercase <tag>_rank fields.
	Ranks map[string]int `json:"-"`

	// CombinedOrder is derived from Ranks and Sources by the order
	// package. Recomputed whenever rank or source membership changes,
	// never authoritative input.
	CombinedOrder int `json:"combined_order"`

	// Descriptive fields
	Description *string `json:"description"`
	Cuisine     *string `json:"cuisine"`
	PriceRange  *string `json:"price_range"`
	ImageURL    *string `json:"image_url,omitempty"`

	// Address fields. Address holds free text as scraped from an
	// editorial source; FormattedAddress is the provider-verified value
	// and supersedes Address once present.
	Address          *string `json:"address,omitempty"`
	FormattedAddress *string `json:"formatted_address"`
	Neighborhood     *string `json:"neighborhood,omitempty"`

	// Enrichment fields from the place-lookup provider.
	PlaceID       *string  `json:"place_id"`
	Rating        *float64 `json:"rating"`
	ReviewCount   *int     `json:"review_count"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	OpeningHours  []Period `json:"opening_hours"`
	IsOpenNow     *bool    `json:"is_open_now"`
	Website       *string  `json:"website"`
	Phone         *string  `json:"phone"`
	GoogleMapsURL *string  `json:"google_maps_url"`

	// LastUpdated is a timestamp string in TimeLayout, or nil if the
	// record was never enriched.
	LastUpdated *string `json:"last_updated"`
}

// Period is one opening-hours interval. Close is nil for places that are
// open around the clock.
type Period struct {
	Open  Point  `json:"open"`
	Close *Point `json:"close,omitempty"`
}

// Point is a day-of-week plus a local "HHMM" time.
type Point struct {
	Day  int    `json:"day"`
	Time string `json:"time"`
}

// Ptr returns a pointer to v. Convenience for building records with
// optional fields set.
func Ptr[T any](v T) *T {
	return &v
}

// HasSource reports whether the record carries the given source tag.
func (r *Record) HasSource(tag string) bool {
	return slices.Contains(r.Sources, tag)
}

// AddSource adds a source tag to the record's provenance set. The set
// stays sorted and duplicate-free; tags are never removed.
func (r *Record) AddSource(tag string) {
	if tag == "" || r.HasSource(tag) {
		return
	}
	r.Sources = append(r.Sources, tag)
	slices.Sort(r.Sources)
}

// Rank returns the record's rank within the given source list. Tags are
// case-insensitive.
func (r *Record) Rank(tag string) (int, bool) {
	rank, ok := r.Ranks[canonicalTag(tag)]
	return rank, ok
}

// SetRank records the rank the given source assigned to this record.
// The tag is stored in its canonical form, so ranks survive the
// lowercase wire fields regardless of the tag case a caller uses.
func (r *Record) SetRank(tag string, rank int) {
	if r.Ranks == nil {
		r.Ranks = make(map[string]int)
	}
	r.Ranks[canonicalTag(tag)] = rank
}

// HasCoordinates reports whether both latitude and longitude are set.
// The two are adopted and persisted only as a pair.
func (r *Record) HasCoordinates() bool {
	return r.Latitude != nil && r.Longitude != nil
}

// BestAddress returns the provider-verified address when present, falling
// back to the free-text address from the editorial source.
func (r *Record) BestAddress() string {
	if r.FormattedAddress != nil && *r.FormattedAddress != "" {
		return *r.FormattedAddress
	}
	if r.Address != nil {
		return *r.Address
	}
	return ""
}

// Clone returns a deep copy of the record. Merging always operates on
// copies; the inputs to a merge are never aliased by its output.
func (r *Record) Clone() Record {
	out := *r
	out.Sources = slices.Clone(r.Sources)
	if r.Ranks != nil {
		out.Ranks = make(map[string]int, len(r.Ranks))
		for tag, rank := range r.Ranks {
			out.Ranks[tag] = rank
		}
	}
	out.Description = clonePtr(r.Description)
	out.Cuisine = clonePtr(r.Cuisine)
	out.PriceRange = clonePtr(r.PriceRange)
	out.ImageURL = clonePtr(r.ImageURL)
	out.Address = clonePtr(r.Address)
	out.FormattedAddress = clonePtr(r.FormattedAddress)
	out.Neighborhood = clonePtr(r.Neighborhood)
	out.PlaceID = clonePtr(r.PlaceID)
	out.Rating = clonePtr(r.Rating)
	out.ReviewCount = clonePtr(r.ReviewCount)
	out.Latitude = clonePtr(r.Latitude)
	out.Longitude = clonePtr(r.Longitude)
	out.IsOpenNow = clonePtr(r.IsOpenNow)
	out.Website = clonePtr(r.Website)
	out.Phone = clonePtr(r.Phone)
	out.GoogleMapsURL = clonePtr(r.GoogleMapsURL)
	out.LastUpdated = clonePtr(r.LastUpdated)
	if r.OpeningHours != nil {
		out.OpeningHours = make([]Period, len(r.OpeningHours))
		for i, p := range r.OpeningHours {
			out.OpeningHours[i] = Period{Open: p.Open, Close: clonePtr(p.Close)}
		}
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// recordAlias breaks the MarshalJSON recursion.
type recordAlias Record

const rankSuffix = "_rank"

// MarshalJSON flattens Ranks into per-source <tag>_rank fields alongside
// the regular schema, e.g. {"nyt_rank": 1, "nym_rank": 3}.
func (r Record) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(recordAlias(r))
	if err != nil {
		return nil, err
	}

	flat := make(map[string]json.RawMessage)
	if err := json.Unmarshal(base, &flat); err != nil {
		return nil, err
	}
	for tag, rank := range r.Ranks {
		raw, err := json.Marshal(rank)
		if err != nil {
			return nil, err
		}
		flat[rankKey(tag)] = raw
	}
	return json.Marshal(flat)
}

// UnmarshalJSON restores Ranks from any <tag>_rank fields present in the
// payload. Null ranks are treated as unset.
func (r *Record) UnmarshalJSON(data []byte) error {
	var alias recordAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}

	var flat map[string]json.RawMessage
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	for key, raw := range flat {
		tag, ok := strings.CutSuffix(key, rankSuffix)
		if !ok || tag == "" {
			continue
		}
		var rank *int
		if err := json.Unmarshal(raw, &rank); err != nil {
			return fmt.Errorf("invalid rank field %s: %w", key, err)
		}
		if rank == nil {
			continue
		}
		if alias.Ranks == nil {
			alias.Ranks = make(map[string]int)
		}
		alias.Ranks[canonicalTag(tag)] = *rank
	}

	*r = Record(alias)
	return nil
}

func rankKey(tag string) string {
	return strings.ToLower(tag) + rankSuffix
}

// canonicalTag is the in-memory form of a source tag in Ranks. Matching
// Rank, SetRank, and UnmarshalJSON on one canonical form keeps ranks
// intact across a save/load cycle whatever case the caller's tags use.
func canonicalTag(tag string) string {
	return strings.ToUpper(tag)
}
