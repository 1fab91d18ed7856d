package filter

import (
	"strings"

	"github.com/kailas-cloud/homefinder/internal/domain/listing"
	"github.com/kailas-cloud/homefinder/internal/domain/search/match"
	"github.com/kailas-cloud/homefinder/internal/domain/search/query"
)

// predicate is one AND-ed condition.
type predicate func(l *listing.Listing) bool

// Apply returns the listings that satisfy every supplied criterion, in input
// order. Records without an ID are dropped. The input is not modified.
//
// A keyword is read for a price phrase first; bounds found there apply when the
// caller gave no explicit bound of the same side. The rest of the keyword is
// tokenized and every token must match.
func Apply(listings []listing.Listing, c Criteria) []listing.Listing {
	preds := compile(c)

	out := make([]listing.Listing, 0, len(listings))
	for i := range listings {
		l := &listings[i]
		if !l.Valid() {
			continue
		}
		if matchesAll(l, preds) {
			out = append(out, *l)
		}
	}
	return out
}

// Matches reports whether a single listing satisfies c.
func Matches(l *listing.Listing, c Criteria) bool {
	return l.Valid() && matchesAll(l, compile(c))
}

func matchesAll(l *listing.Listing, preds []predicate) bool {
	for _, p := range preds {
		if !p(l) {
			return false
		}
	}
	return true
}

func compile(c Criteria) []predicate {
	var preds []predicate

	minPrice, maxPrice := c.MinPrice, c.MaxPrice
	if kw, ok := text(c.Keyword); ok {
		parsed := query.ParsePrice(kw)
		if parsed.Min != nil && !minPrice.IsSet() {
			minPrice = listing.NumberOf(*parsed.Min)
		}
		if parsed.Max != nil && !maxPrice.IsSet() {
			maxPrice = listing.NumberOf(*parsed.Max)
		}
		if tokens := query.Tokenize(parsed.CleanedQuery); len(tokens) > 0 {
			preds = append(preds, func(l *listing.Listing) bool {
				return match.MatchAll(l, tokens)
			})
		}
	}

	if loc, ok := text(c.Location); ok {
		preds = append(preds, func(l *listing.Listing) bool {
			return match.MatchesLocation(l, loc)
		})
	}

	if lt, ok := text(c.ListingType); ok {
		preds = append(preds, transactionPredicate(lt, c))
	}

	if av, ok := text(c.Availability); ok {
		want := listing.NormalizeAvailability(av)
		preds = append(preds, func(l *listing.Listing) bool {
			return listing.EffectiveAvailability(l) == want
		})
	}

	if pt, ok := text(c.PropertyType); ok {
		preds = append(preds, func(l *listing.Listing) bool {
			return l.Type == pt
		})
	}

	if minPrice.IsSet() || maxPrice.IsSet() {
		preds = append(preds, func(l *listing.Listing) bool {
			return inRange(l.Price, minPrice, maxPrice)
		})
	}

	if c.Bedrooms.IsSet() {
		preds = append(preds, func(l *listing.Listing) bool {
			return equal(l.Bedrooms, c.Bedrooms)
		})
	}
	if c.Bathrooms.IsSet() {
		preds = append(preds, func(l *listing.Listing) bool {
			return equal(l.Bathrooms, c.Bathrooms)
		})
	}

	if c.MinArea.IsSet() || c.MaxArea.IsSet() {
		preds = append(preds, func(l *listing.Listing) bool {
			return inRange(l.Area, c.MinArea, c.MaxArea)
		})
	}

	return preds
}

// transactionPredicate checks the listing type, then the rental sub-type for
// rentals and the condition for sales when those are also requested.
func transactionPredicate(listingType string, c Criteria) predicate {
	wantType := strings.ToLower(listingType)
	wantSub, hasSub := text(c.SubListingType)
	wantCond, hasCond := text(c.PropertyCondition)
	wantSub = strings.ToLower(wantSub)
	wantCond = listing.NormalizeCondition(wantCond)

	return func(l *listing.Listing) bool {
		eff := listing.EffectiveListingType(l)
		if eff != wantType {
			return false
		}
		if hasSub && eff == listing.TypeRent && listing.EffectiveSubListingType(l) != wantSub {
			return false
		}
		if hasCond && eff == listing.TypeSale &&
			listing.NormalizeCondition(listing.EffectiveCondition(l)) != wantCond {
			return false
		}
		return true
	}
}

// inRange applies inclusive bounds. A malformed value or bound never matches.
func inRange(v, lo, hi listing.Number) bool {
	x, ok := v.Float()
	if !ok {
		return false
	}
	if lo.IsSet() {
		b, ok := lo.Float()
		if !ok || x < b {
			return false
		}
	}
	if hi.IsSet() {
		b, ok := hi.Float()
		if !ok || x > b {
			return false
		}
	}
	return true
}

func equal(v, want listing.Number) bool {
	x, ok := v.Float()
	if !ok {
		return false
	}
	w, ok := want.Float()
	return ok && x == w
}
