// Package match decides whether a single search token matches a listing.
package match

import (
	"strings"

	"github.com/kailas-cloud/homefinder/internal/domain/listing"
	"github.com/kailas-cloud/homefinder/internal/domain/search/query"
)

// MatchesField reports whether normalized value contains normalized token.
func MatchesField(value, token string) bool {
	t := query.Normalize(token)
	if t == "" {
		return true
	}
	v := query.Normalize(value)
	if v == "" {
		return false
	}
	return strings.Contains(v, t)
}

// MatchesArrayField reports whether any element's label contains token.
func MatchesArrayField(tags []listing.Tag, token string) bool {
	for _, tag := range tags {
		if MatchesField(tag.Label, token) {
			return true
		}
	}
	return false
}

// MatchesCondition reports whether a condition-marker token names the
// listing's condition exactly. Any other token never matches here.
func MatchesCondition(l *listing.Listing, token string) bool {
	if !query.IsConditionMarker(token) {
		return false
	}
	cond := listing.EffectiveCondition(l)
	if cond == "" {
		return false
	}
	return listing.NormalizeCondition(cond) == listing.NormalizeCondition(token)
}

// MatchToken reports whether token matches the listing. Condition markers
// first try an exact match on the condition; every token then falls back to
// substring matching over the searchable text, the tags and the nearby places.
func MatchToken(l *listing.Listing, token string) bool {
	return matchToken(l, SearchableText(l), token)
}

// MatchAll reports whether every token matches the listing.
func MatchAll(l *listing.Listing, tokens []string) bool {
	if len(tokens) == 0 {
		return true
	}
	text := SearchableText(l)
	for _, t := range tokens {
		if !matchToken(l, text, t) {
			return false
		}
	}
	return true
}

func matchToken(l *listing.Listing, text, token string) bool {
	if MatchesCondition(l, token) {
		return true
	}
	return MatchesField(text, token) ||
		MatchesArrayField(l.Tags, token) ||
		MatchesArrayField(l.NearbyPlaces, token)
}

// SearchableText joins the free-text fields of a listing in priority order:
// identifier, title, type, location display, province, district,
// sub-district, description.
func SearchableText(l *listing.Listing) string {
	parts := []string{
		l.DisplayID,
		l.PropertyID,
		l.Title,
		l.Type,
		typeLabelIfDistinct(l.Type),
		l.LocationDisplay,
		l.Location.Province,
		l.Location.District,
		l.Location.SubDistrict,
		l.Description,
	}
	nonEmpty := parts[:0]
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return query.Normalize(strings.Join(nonEmpty, " "))
}

// MatchesLocation reports whether needle occurs in any location field.
func MatchesLocation(l *listing.Listing, needle string) bool {
	return MatchesField(l.LocationDisplay, needle) ||
		MatchesArrayField(l.NearbyPlaces, needle) ||
		MatchesField(l.Location.Province, needle) ||
		MatchesField(l.Location.District, needle) ||
		MatchesField(l.Location.SubDistrict, needle)
}

func typeLabelIfDistinct(code string) string {
	if label := listing.TypeLabel(code); label != code {
		return label
	}
	return ""
}
