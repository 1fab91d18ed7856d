package result

import "github.com/kailas-cloud/homefinder/internal/domain/listing"

// Result is a listing paired with its relevance score for one query.
type Result struct {
	listing listing.Listing
	score   int
}

// New creates a search result.
func New(l listing.Listing, score int) Result {
	return Result{listing: l, score: score}
}

// Listing returns the matched listing.
func (r *Result) Listing() listing.Listing { return r.listing }

// ID returns the listing identifier.
func (r *Result) ID() string { return r.listing.ID }

// Score returns the relevance score. Zero when the search had no keyword.
func (r *Result) Score() int { return r.score }

// Page is one window of an ordered result set.
type Page struct {
	Items []Result
	Total int
}

// Paginate cuts results[offset:offset+limit], clamped to the slice.
func Paginate(results []Result, offset, limit int) Page {
	total := len(results)
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}
	return Page{Items: results[offset:end], Total: total}
}
