// Package filter reduces a listing collection by structured criteria.
package filter

import (
	"strings"

	"github.com/kailas-cloud/homefinder/internal/domain/listing"
)

// Criteria is a structured search filter. Every field is optional: a nil
// string, a blank string and an unset Number all mean "no constraint".
// A Number that was supplied but cannot be parsed excludes every record.
type Criteria struct {
	Keyword           *string `json:"keyword,omitempty"`
	Location          *string `json:"location,omitempty"`
	ListingType       *string `json:"listingType,omitempty"`
	SubListingType    *string `json:"subListingType,omitempty"`
	PropertyCondition *string `json:"propertyCondition,omitempty"`
	Availability      *string `json:"availability,omitempty"`
	PropertyType      *string `json:"propertyType,omitempty"`

	MinPrice  listing.Number `json:"minPrice"`
	MaxPrice  listing.Number `json:"maxPrice"`
	MinArea   listing.Number `json:"minArea"`
	MaxArea   listing.Number `json:"maxArea"`
	Bedrooms  listing.Number `json:"bedrooms"`
	Bathrooms listing.Number `json:"bathrooms"`
}

// String returns a pointer to s, for building Criteria literals.
func String(s string) *string { return &s }

// IsEmpty reports whether no criterion is supplied.
func (c *Criteria) IsEmpty() bool {
	for _, p := range []*string{
		c.Keyword, c.Location, c.ListingType, c.SubListingType,
		c.PropertyCondition, c.Availability, c.PropertyType,
	} {
		if _, ok := text(p); ok {
			return false
		}
	}
	for _, n := range []listing.Number{
		c.MinPrice, c.MaxPrice, c.MinArea, c.MaxArea, c.Bedrooms, c.Bathrooms,
	} {
		if n.IsSet() {
			return false
		}
	}
	return true
}

// Malformed lists the numeric criteria that were supplied but could not be parsed.
func (c *Criteria) Malformed() []string {
	var names []string
	fields := []struct {
		name string
		n    listing.Number
	}{
		{"minPrice", c.MinPrice}, {"maxPrice", c.MaxPrice},
		{"minArea", c.MinArea}, {"maxArea", c.MaxArea},
		{"bedrooms", c.Bedrooms}, {"bathrooms", c.Bathrooms},
	}
	for _, f := range fields {
		if _, ok := f.n.Float(); f.n.IsSet() && !ok {
			names = append(names, f.name)
		}
	}
	return names
}

// text returns the trimmed value of p and whether it constrains anything.
func text(p *string) (string, bool) {
	if p == nil {
		return "", false
	}
	s := strings.TrimSpace(*p)
	return s, s != ""
}
