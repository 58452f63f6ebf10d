// Package cursor walks cursored API collections, driving one typed
// exchange per page and feeding each page's continuation token into the
// next request.
package cursor

import (
	"context"
	"strconv"

	"github.com/wrenkit/wren"
	"github.com/wrenkit/wren/params"
	"github.com/wrenkit/wren/rated"
)

// Page is a decoded cursored response. Implementations expose the
// continuation tokens the API embedded in the page.
type Page interface {
	NextCursorID() int64
	PreviousCursorID() int64
}

// Iter pages through a cursored collection. Each Next call performs one
// network call and yields the page's envelope, so rate-limit accounting
// stays visible per page.
type Iter[P Page] struct {
	client   *wren.Client
	endpoint string
	base     params.List
	pageSize int

	next int64
	done bool
}

// New sets up an iterator against endpoint with the given static
// parameters. pageSize of 0 means the endpoint controls its own page
// size and [Iter.WithPageSize] has no effect, matching endpoints that
// reject an explicit count.
func New[P Page](c *wren.Client, endpoint string, base params.List, pageSize int) *Iter[P] {
	if base == nil {
		base = params.List{}
	}

	return &Iter[P]{
		client:   c,
		endpoint: endpoint,
		base:     base,
		pageSize: pageSize,
		next:     -1,
	}
}

// WithPageSize overrides the per-page element count for endpoints that
// support one. Calling it after iteration has begun only affects
// subsequent pages.
func (it *Iter[P]) WithPageSize(n int) *Iter[P] {
	if it.pageSize > 0 && n > 0 {
		it.pageSize = n
	}

	return it
}

// Next fetches the next page. It reports ok=false once the API signals
// the final cursor; any resolution error ends the iteration.
func (it *Iter[P]) Next(ctx context.Context) (page rated.Response[P], ok bool, err error) {
	if it.done {
		return rated.Response[P]{}, false, nil
	}

	p := it.base.Clone().Add("cursor", strconv.FormatInt(it.next, 10))
	if it.pageSize > 0 {
		p.Add("count", strconv.Itoa(it.pageSize))
	}

	req, err := it.client.Get(ctx, it.endpoint, p)
	if err != nil {
		it.done = true
		return rated.Response[P]{}, false, err
	}

	resp, err := wren.ResolveJSON[P](ctx, it.client, req)
	if err != nil {
		it.done = true
		return rated.Response[P]{}, false, err
	}

	it.next = resp.Payload.NextCursorID()
	if it.next == 0 {
		it.done = true
	}

	return resp, true, nil
}
