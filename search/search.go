// Package search exposes the tweet search endpoint: a lazy query builder,
// the decoded result page, and helpers to walk older/newer pages.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/wrenkit/wren"
	"github.com/wrenkit/wren/exchange"
	"github.com/wrenkit/wren/params"
	"github.com/wrenkit/wren/rated"
)

// ResultType selects what kind of tweets a search should include.
type ResultType string

const (
	// Recent returns only the most recent tweets.
	Recent ResultType = "recent"
	// Popular returns only the most popular tweets.
	Popular ResultType = "popular"
	// Mixed includes both popular and real-time results.
	Mixed ResultType = "mixed"
)

// Distance is a radius around a coordinate to restrict results to.
type Distance struct {
	radius uint
	unit   string
}

// Miles is a search radius given in miles.
func Miles(r uint) Distance {
	return Distance{radius: r, unit: "mi"}
}

// Kilometers is a search radius given in kilometers.
func Kilometers(r uint) Distance {
	return Distance{radius: r, unit: "km"}
}

type geocode struct {
	lat, lon float64
	radius   Distance
}

type untilDate struct {
	year, month, day int
}

// Builder accumulates a search query before it is sent. It is lazy and
// does nothing until Call.
type Builder struct {
	query      string
	lang       string
	resultType ResultType
	count      int
	until      *untilDate
	geo        *geocode
}

// New begins setting up a tweet search with the given query.
func New(query string) *Builder {
	return &Builder{query: query}
}

// Lang restricts results to tweets machine-parsed as the given two-letter
// language code.
func (b *Builder) Lang(lang string) *Builder {
	b.lang = lang
	return b
}

// ResultType sets the kind of search results to include. The API default
// is [Recent].
func (b *Builder) ResultType(rt ResultType) *Builder {
	b.resultType = rt
	return b
}

// Count sets the number of tweets per page, up to a maximum of 100. The
// API default is 15.
func (b *Builder) Count(count int) *Builder {
	b.count = count
	return b
}

// Until returns tweets created before the given date. Search covers only
// the last seven days, so older dates return nothing.
func (b *Builder) Until(year, month, day int) *Builder {
	b.until = &untilDate{year: year, month: month, day: day}
	return b
}

// Geocode restricts results to tweets by users located within the given
// radius of the coordinate.
func (b *Builder) Geocode(lat, lon float64, radius Distance) *Builder {
	b.geo = &geocode{lat: lat, lon: lon, radius: radius}
	return b
}

// callParams is the validated shape of a search call.
type callParams struct {
	Query string `param:"q" validate:"required"`
	Lang  string `param:"lang" validate:"omitempty,len=2"`
	Count int    `param:"count" validate:"gte=0,lte=100"`
}

// Params finalizes the search terms into a parameter list. Exposed so the
// assembly can be exercised without a network call.
func (b *Builder) Params() (params.List, error) {
	cp := callParams{Query: b.query, Lang: b.lang, Count: b.count}
	if err := params.Validate(cp); err != nil {
		return nil, fmt.Errorf("search params: %w", err)
	}

	p := params.List{}.Add("q", b.query)
	p.AddIf("lang", b.lang)
	p.AddIf("result_type", string(b.resultType))
	if b.count > 0 {
		p.Add("count", fmt.Sprintf("%d", b.count))
	}
	if b.until != nil {
		p.Add("until", fmt.Sprintf("%d-%d-%d", b.until.year, b.until.month, b.until.day))
	}
	if b.geo != nil {
		p.Add("geocode", fmt.Sprintf("%.6f,%.6f,%d%s", b.geo.lat, b.geo.lon, b.geo.radius.radius, b.geo.radius.unit))
	}

	return p, nil
}

// Call finalizes the search terms and fetches the first page of results.
func (b *Builder) Call(ctx context.Context, c *wren.Client) (rated.Response[*Result], error) {
	p, err := b.Params()
	if err != nil {
		return rated.Response[*Result]{}, err
	}

	return call(ctx, c, p)
}

func call(ctx context.Context, c *wren.Client, p params.List) (rated.Response[*Result], error) {
	req, err := c.Get(ctx, wren.EndpointSearch, p)
	if err != nil {
		return rated.Response[*Result]{}, err
	}

	resp, err := wren.Resolve(ctx, c, req, decodeResult)
	if err != nil {
		return rated.Response[*Result]{}, err
	}

	resp.Payload.params = p

	return resp, nil
}

// Tweet is a single status in a page of search results.
type Tweet struct {
	ID   uint64 `json:"id"`
	Text string `json:"text"`
	Lang string `json:"lang"`
}

// Result is one page of search results, along with the metadata needed to
// request the adjacent pages.
type Result struct {
	// Statuses is the list of tweets in this page.
	Statuses []Tweet
	// Query is the query string that generated this page.
	Query string

	maxID   uint64
	sinceID uint64
	params  params.List
}

func decodeResult(body string, header http.Header) (rated.Response[*Result], error) {
	var wire struct {
		Statuses []Tweet `json:"statuses"`
		Metadata struct {
			Query   string `json:"query"`
			MaxID   uint64 `json:"max_id"`
			SinceID uint64 `json:"since_id"`
		} `json:"search_metadata"`
	}
	if err := json.Unmarshal([]byte(body), &wire); err != nil {
		return rated.Response[*Result]{}, &exchange.DecodeError{Err: err}
	}

	out := &Result{
		Statuses: wire.Statuses,
		Query:    wire.Metadata.Query,
		maxID:    wire.Metadata.MaxID,
		sinceID:  wire.Metadata.SinceID,
	}

	return rated.Wrap(rated.FromHeaders(header), out), nil
}

// Older loads the next page of results for the same query, i.e. tweets
// older than the oldest in this page.
func (r *Result) Older(ctx context.Context, c *wren.Client) (rated.Response[*Result], error) {
	p := r.params.Clone().Remove("since_id")

	if min, ok := r.minID(); ok {
		p.Add("max_id", fmt.Sprintf("%d", min-1))
	} else {
		p.Remove("max_id")
	}

	return call(ctx, c, p)
}

// Newer loads the previous page of results for the same query, i.e.
// tweets newer than the newest in this page.
func (r *Result) Newer(ctx context.Context, c *wren.Client) (rated.Response[*Result], error) {
	p := r.params.Clone().Remove("max_id")

	if max, ok := r.maxStatusID(); ok {
		p.Add("since_id", fmt.Sprintf("%d", max))
	} else {
		p.Remove("since_id")
	}

	return call(ctx, c, p)
}

func (r *Result) minID() (uint64, bool) {
	var min uint64
	for _, t := range r.Statuses {
		if min == 0 || t.ID < min {
			min = t.ID
		}
	}

	return min, min != 0
}

func (r *Result) maxStatusID() (uint64, bool) {
	var max uint64
	for _, t := range r.Statuses {
		if t.ID > max {
			max = t.ID
		}
	}

	return max, max != 0
}
