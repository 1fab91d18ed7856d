// Package section models curated homepage sections and the rule that fills
// automatic ones.
package section

import (
	"fmt"
	"regexp"
)

var idRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Section limits.
const (
	MaxIDLength       = 64
	MaxTitleLength    = 200
	MaxManualListings = 100
	DefaultLimit      = 8
	MaxLimit          = 50
)

// Mode says how a section is filled.
type Mode string

// Section modes.
const (
	// Manual sections show a fixed, ordered list of listing IDs.
	Manual Mode = "manual"
	// Auto sections show whatever matches their Criteria.
	Auto Mode = "auto"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == Manual || m == Auto
}

// Params holds the fields of a new section.
type Params struct {
	ID         string
	Title      string
	Mode       Mode
	ListingIDs []string
	Criteria   Criteria
	Order      int
	Limit      int
	Active     bool
}

// Section is a homepage section (immutable value object).
type Section struct {
	id         string
	title      string
	mode       Mode
	listingIDs []string
	criteria   Criteria
	order      int
	limit      int
	active     bool
}

// New validates and creates a Section. Limit defaults to DefaultLimit.
func New(p Params) (Section, error) {
	if p.ID == "" {
		return Section{}, fmt.Errorf("section ID is required")
	}
	if len(p.ID) > MaxIDLength {
		return Section{}, fmt.Errorf("section ID too long (max %d)", MaxIDLength)
	}
	if !idRegex.MatchString(p.ID) {
		return Section{}, fmt.Errorf("section ID must be alphanumeric with underscores and hyphens")
	}
	if p.Title == "" {
		return Section{}, fmt.Errorf("section title is required")
	}
	if len(p.Title) > MaxTitleLength {
		return Section{}, fmt.Errorf("section title too long (max %d bytes)", MaxTitleLength)
	}
	if p.Mode == "" {
		p.Mode = Auto
	}
	if !p.Mode.IsValid() {
		return Section{}, fmt.Errorf("invalid section mode: %q", p.Mode)
	}
	if p.Mode == Manual && len(p.ListingIDs) == 0 {
		return Section{}, fmt.Errorf("manual section needs at least one listing ID")
	}
	if len(p.ListingIDs) > MaxManualListings {
		return Section{}, fmt.Errorf("too many listing IDs (max %d)", MaxManualListings)
	}
	if p.Limit < 0 || p.Limit > MaxLimit {
		return Section{}, fmt.Errorf("limit must be between 0 and %d", MaxLimit)
	}
	if p.Limit == 0 {
		p.Limit = DefaultLimit
	}
	return Reconstruct(p), nil
}

// Reconstruct creates a Section without validation (storage hydration).
func Reconstruct(p Params) Section {
	ids := make([]string, len(p.ListingIDs))
	copy(ids, p.ListingIDs)
	return Section{
		id:         p.ID,
		title:      p.Title,
		mode:       p.Mode,
		listingIDs: ids,
		criteria:   p.Criteria.clone(),
		order:      p.Order,
		limit:      p.Limit,
		active:     p.Active,
	}
}

// ID returns the section identifier.
func (s *Section) ID() string { return s.id }

// Title returns the display title.
func (s *Section) Title() string { return s.title }

// Mode returns how the section is filled.
func (s *Section) Mode() Mode { return s.mode }

// ListingIDs returns the manual listing order.
func (s *Section) ListingIDs() []string { return s.listingIDs }

// Criteria returns the automatic selection rule.
func (s *Section) Criteria() Criteria { return s.criteria }

// Order returns the homepage position; lower comes first.
func (s *Section) Order() int { return s.order }

// Limit returns the maximum number of listings shown.
func (s *Section) Limit() int { return s.limit }

// Active reports whether the section is shown.
func (s *Section) Active() bool { return s.active }

// Params returns the section fields, for persistence.
func (s *Section) Params() Params {
	return Params{
		ID: s.id, Title: s.title, Mode: s.mode,
		ListingIDs: s.listingIDs, Criteria: s.criteria,
		Order: s.order, Limit: s.limit, Active: s.active,
	}
}
