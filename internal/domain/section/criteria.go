package section

import (
	"strings"

	"github.com/kailas-cloud/homefinder/internal/domain/listing"
)

// Criteria is a declarative rule for an automatic section. Unlike a search
// filter, it always starts from available listings only.
type Criteria struct {
	MinPrice listing.Number `json:"minPrice"`
	MaxPrice listing.Number `json:"maxPrice"`
	Location string         `json:"location,omitempty"`
	Type     string         `json:"type,omitempty"`
	Tags     []string       `json:"tags,omitempty"`
}

func (c Criteria) clone() Criteria {
	if c.Tags != nil {
		tags := make([]string, len(c.Tags))
		copy(tags, c.Tags)
		c.Tags = tags
	}
	return c
}

// Select returns the available listings matching c, in input order.
// Price bounds apply only when positive. Location is a case-insensitive
// substring of province or district. Tags pass when the listing carries at
// least one of them exactly.
func Select(listings []listing.Listing, c Criteria) []listing.Listing {
	minPrice, hasMin := positive(c.MinPrice)
	maxPrice, hasMax := positive(c.MaxPrice)
	loc := strings.ToLower(strings.TrimSpace(c.Location))
	typ := strings.TrimSpace(c.Type)

	out := make([]listing.Listing, 0, len(listings))
	for i := range listings {
		l := &listings[i]
		if !l.Valid() || listing.EffectiveAvailability(l) != listing.Available {
			continue
		}
		if hasMin || hasMax {
			price, ok := l.Price.Float()
			if !ok || (hasMin && price < minPrice) || (hasMax && price > maxPrice) {
				continue
			}
		}
		if loc != "" &&
			!strings.Contains(strings.ToLower(l.Location.Province), loc) &&
			!strings.Contains(strings.ToLower(l.Location.District), loc) {
			continue
		}
		if typ != "" && l.Type != typ {
			continue
		}
		if len(c.Tags) > 0 && !hasAnyTag(l.Tags, c.Tags) {
			continue
		}
		out = append(out, *l)
	}
	return out
}

func positive(n listing.Number) (float64, bool) {
	v, ok := n.Float()
	return v, ok && v > 0
}

func hasAnyTag(tags []listing.Tag, wanted []string) bool {
	for _, t := range tags {
		for _, w := range wanted {
			if t.Label == w {
				return true
			}
		}
	}
	return false
}
