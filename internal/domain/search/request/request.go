package request

import (
	"fmt"
	"unicode/utf8"

	"github.com/kailas-cloud/homefinder/internal/domain/search/filter"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed keyword length in characters.
	MaxQueryLength = 512
	DefaultLimit   = 20
	MaxLimit       = 100
)

// Request is a validated listing search.
type Request struct {
	criteria filter.Criteria
	offset   int
	limit    int
}

// New validates and normalizes search parameters.
// Defaults: limit=DefaultLimit, clamped to MaxLimit. A negative offset is an error.
func New(criteria filter.Criteria, offset, limit int) (Request, error) {
	if criteria.Keyword != nil && utf8.RuneCountInString(*criteria.Keyword) > MaxQueryLength {
		return Request{}, fmt.Errorf("keyword too long (max %d chars)", MaxQueryLength)
	}
	if offset < 0 {
		return Request{}, fmt.Errorf("offset must not be negative")
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Request{criteria: criteria, offset: offset, limit: limit}, nil
}

// Criteria returns the structured filter.
func (r *Request) Criteria() filter.Criteria { return r.criteria }

// Keyword returns the free-text part of the search, or "".
func (r *Request) Keyword() string {
	if r.criteria.Keyword == nil {
		return ""
	}
	return *r.criteria.Keyword
}

// Offset returns the number of results to skip.
func (r *Request) Offset() int { return r.offset }

// Limit returns the maximum results to return.
func (r *Request) Limit() int { return r.limit }
