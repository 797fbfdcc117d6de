// Package places is the place-lookup collaborator: a client for the
// Google Places API (New) text search. It owns the sequential
// rate-limit discipline the engine expects of it; every failure is
// reported as enrichment-unavailable and never aborts a run.
package places

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tablemap/tablemap/pkg/errors"
	"github.com/tablemap/tablemap/pkg/logging"
	"github.com/tablemap/tablemap/pkg/reconcile"
	"github.com/tablemap/tablemap/pkg/record"
)

const (
	defaultBaseURL  = "https://places.googleapis.com/v1"
	defaultInterval = 200 * time.Millisecond

	// fieldMask limits the response to the fields the catalog uses.
	fieldMask = "places.id,places.displayName,places.rating,places.userRatingCount," +
		"places.formattedAddress,places.location,places.websiteUri," +
		"places.nationalPhoneNumber,places.googleMapsUri,places.regularOpeningHours"
)

// NYC bounds for filtering results.
var nycBounds = struct {
	north, south, east, west float64
}{
	north: 40.9176,
	south: 40.4774,
	east:  -73.7004,
	west:  -74.2591,
}

// Client calls the Places text-search endpoint. Calls are serialized by
// a minimum interval between requests.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	interval   time.Duration
	lastCall   time.Time
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the API base URL. Used by tests.
func WithBaseURL(url string) ClientOption {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithInterval sets the minimum interval between requests.
func WithInterval(d time.Duration) ClientOption {
	return func(c *Client) { c.interval = d }
}

// NewClient creates a Places client.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		interval:   defaultInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Candidate is the best place returned for a query.
type Candidate struct {
	PlaceID          string
	Name             string
	FormattedAddress string
	Rating           *float64
	ReviewCount      *int
	Latitude         float64
	Longitude        float64
	Website          *string
	Phone            *string
	GoogleMapsURL    *string
	OpeningHours     []record.Period
	OpenNow          *bool
}

// Search returns the best NYC candidate for a restaurant name, or an
// error wrapping ErrEnrichmentUnavailable when nothing usable came back.
func (c *Client) Search(ctx context.Context, name string) (*Candidate, error) {
	if c.apiKey == "" {
		return nil, &errors.ConfigError{
			Component: "places",
			Message:   "no API key configured",
			Err:       errors.ErrAPIKeyRequired,
		}
	}

	if err := c.throttle(ctx); err != nil {
		return nil, err
	}

	query := fmt.Sprintf("%s restaurant New York City", name)
	body, err := json.Marshal(searchRequest{
		TextQuery:      query,
		MaxResultCount: 5,
		LocationBias: &locationBias{
			Circle: circle{
				Center: latLng{Latitude: 40.7128, Longitude: -74.0060},
				Radius: 50000,
			},
		},
	})
	if err != nil {
		return nil, &errors.LookupError{Query: name, Message: "encode request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/places:searchText", bytes.NewReader(body))
	if err != nil {
		return nil, &errors.LookupError{Query: name, Message: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-FieldMask", fieldMask)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &errors.LookupError{Query: name, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &errors.LookupError{
			Query:      name,
			StatusCode: resp.StatusCode,
			Message:    string(msg),
		}
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &errors.LookupError{Query: name, Message: "decode response", Err: err}
	}

	best := bestNYCCandidate(parsed.Places)
	if best == nil {
		logging.Debug().Str("name", name).Msg("No NYC results for query")
		return nil, &errors.LookupError{Query: name, Message: "no NYC results"}
	}
	return best, nil
}

// Enrich implements reconcile.Enricher. Records that already carry a
// place identifier are passed through untouched; lookup failures yield
// Unavailable with the cause.
func (c *Client) Enrich(ctx context.Context, r record.Record) (reconcile.Enrichment, error) {
	if r.PlaceID != nil && *r.PlaceID != "" {
		return reconcile.Unavailable(), nil
	}
	if r.Name == "" {
		return reconcile.Unavailable(), nil
	}

	candidate, err := c.Search(ctx, r.Name)
	if err != nil {
		return reconcile.Unavailable(), err
	}

	enriched := r.Clone()
	Apply(&enriched, candidate)
	return reconcile.Enriched(enriched), nil
}

// Apply copies candidate fields onto a record. Existing values win; the
// provider only fills gaps, except for the verified address which
// supersedes scraped free text. Rating and review count are adopted as a
// pair, as are coordinates and hours.
func Apply(r *record.Record, c *Candidate) {
	r.PlaceID = record.Ptr(c.PlaceID)
	if c.FormattedAddress != "" {
		r.FormattedAddress = record.Ptr(c.FormattedAddress)
	}
	if r.Rating == nil && c.Rating != nil {
		r.Rating = c.Rating
		r.ReviewCount = c.ReviewCount
	}
	if !r.HasCoordinates() {
		r.Latitude = record.Ptr(c.Latitude)
		r.Longitude = record.Ptr(c.Longitude)
	}
	if r.OpeningHours == nil && c.OpeningHours != nil {
		r.OpeningHours = c.OpeningHours
		r.IsOpenNow = c.OpenNow
	}
	if r.Website == nil {
		r.Website = c.Website
	}
	if r.Phone == nil {
		r.Phone = c.Phone
	}
	if r.GoogleMapsURL == nil {
		r.GoogleMapsURL = c.GoogleMapsURL
	}
	r.LastUpdated = record.Ptr(time.Now().UTC().Format(record.TimeLayout))
}

// throttle enforces the minimum interval between requests.
func (c *Client) throttle(ctx context.Context) error {
	wait := c.interval - time.Since(c.lastCall)
	if wait > 0 {
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	c.lastCall = time.Now()
	return nil
}

// bestNYCCandidate filters results to the NYC bounding box and picks the
// highest rated.
func bestNYCCandidate(places []place) *Candidate {
	var best *place
	for i := range places {
		p := &places[i]
		if p.Location == nil || !inNYCBounds(p.Location.Latitude, p.Location.Longitude) {
			continue
		}
		if best == nil || p.Rating > best.Rating {
			best = p
		}
	}
	if best == nil {
		return nil
	}
	return best.candidate()
}

func inNYCBounds(lat, lng float64) bool {
	return lat >= nycBounds.south && lat <= nycBounds.north &&
		lng >= nycBounds.west && lng <= nycBounds.east
}

// Wire types for the Places API (New).

type searchRequest struct {
	TextQuery      string        `json:"textQuery"`
	MaxResultCount int           `json:"maxResultCount"`
	LocationBias   *locationBias `json:"locationBias,omitempty"`
}

type locationBias struct {
	Circle circle `json:"circle"`
}

type circle struct {
	Center latLng  `json:"center"`
	Radius float64 `json:"radius"`
}

type latLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type searchResponse struct {
	Places []place `json:"places"`
}

type place struct {
	ID               string        `json:"id"`
	DisplayName      *localized    `json:"displayName"`
	Rating           float64       `json:"rating"`
	UserRatingCount  int           `json:"userRatingCount"`
	FormattedAddress string        `json:"formattedAddress"`
	Location         *latLng       `json:"location"`
	WebsiteURI       string        `json:"websiteUri"`
	NationalPhone    string        `json:"nationalPhoneNumber"`
	GoogleMapsURI    string        `json:"googleMapsUri"`
	OpeningHours     *openingHours `json:"regularOpeningHours"`
}

type localized struct {
	Text string `json:"text"`
}

type openingHours struct {
	OpenNow *bool        `json:"openNow"`
	Periods []wirePeriod `json:"periods"`
}

type wirePeriod struct {
	Open  *wirePoint `json:"open"`
	Close *wirePoint `json:"close"`
}

type wirePoint struct {
	Day    int `json:"day"`
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

func (p *place) candidate() *Candidate {
	c := &Candidate{
		PlaceID:          p.ID,
		FormattedAddress: p.FormattedAddress,
	}
	if p.DisplayName != nil {
		c.Name = p.DisplayName.Text
	}
	if p.Rating > 0 {
		c.Rating = record.Ptr(p.Rating)
		c.ReviewCount = record.Ptr(p.UserRatingCount)
	}
	if p.Location != nil {
		c.Latitude = p.Location.Latitude
		c.Longitude = p.Location.Longitude
	}
	if p.WebsiteURI != "" {
		c.Website = record.Ptr(p.WebsiteURI)
	}
	if p.NationalPhone != "" {
		c.Phone = record.Ptr(p.NationalPhone)
	}
	if p.GoogleMapsURI != "" {
		c.GoogleMapsURL = record.Ptr(p.GoogleMapsURI)
	}
	if p.OpeningHours != nil {
		c.OpenNow = p.OpeningHours.OpenNow
		for _, wp := range p.OpeningHours.Periods {
			if wp.Open == nil {
				continue
			}
			period := record.Period{Open: wp.Open.point()}
			if wp.Close != nil {
				end := wp.Close.point()
				period.Close = &end
			}
			c.OpeningHours = append(c.OpeningHours, period)
		}
	}
	return c
}

func (p *wirePoint) point() record.Point {
	return record.Point{
		Day:  p.Day,
		Time: fmt.Sprintf("%02d%02d", p.Hour, p.Minute),
	}
}
