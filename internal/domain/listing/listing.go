// Package listing defines the property record searched by homefinder and the
// accessors that reconcile its canonical fields with their legacy counterparts.
package listing

import (
	"fmt"
	"regexp"
	"strings"
)

var idRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// MaxIDLength is the maximum listing ID length.
const MaxIDLength = 128

// Transaction classification values.
const (
	TypeSale = "sale"
	TypeRent = "rent"

	SubTypeRentOnly        = "rent_only"
	SubTypeInstallmentOnly = "installment_only"
)

// Location is the structured address of a listing.
type Location struct {
	Province    string `json:"province,omitempty"`
	District    string `json:"district,omitempty"`
	SubDistrict string `json:"subDistrict,omitempty"`
}

// Listing is one property record. It is plain data: search code only reads it.
//
// Several concepts exist twice, as a canonical field and a legacy field left over
// from an older schema. Read them through the Effective* accessors.
type Listing struct {
	ID              string   `json:"id"`
	DisplayID       string   `json:"displayId,omitempty"`
	PropertyID      string   `json:"propertyId,omitempty"`
	Title           string   `json:"title"`
	Description     string   `json:"description,omitempty"`
	Type            string   `json:"type,omitempty"`
	Tags            []Tag    `json:"tags,omitempty"`
	NearbyPlaces    []Tag    `json:"nearbyPlaces,omitempty"`
	Location        Location `json:"location"`
	LocationDisplay string   `json:"locationDisplay,omitempty"`

	Price     Number `json:"price"`
	Area      Number `json:"area"`
	Bedrooms  Number `json:"bedrooms"`
	Bathrooms Number `json:"bathrooms"`

	ListingType       string `json:"listingType,omitempty"`
	IsRental          *bool  `json:"isRental,omitempty"`
	SubListingType    string `json:"subListingType,omitempty"`
	DirectInstallment *bool  `json:"directInstallment,omitempty"`
	PropertyCondition string `json:"propertyCondition,omitempty"`
	PropertySubStatus string `json:"propertySubStatus,omitempty"`
	Availability      string `json:"availability,omitempty"`
	Status            string `json:"status,omitempty"`

	CreatedAt Timestamp `json:"createdAt"`
}

// Snapshot is the full listing collection as read from storage.
type Snapshot struct {
	Listings []Listing
	// Skipped counts stored records that could not be decoded or had no ID.
	Skipped int
}

// Valid reports whether the record can take part in search at all.
// Records without an identifier are skipped rather than failing the whole operation.
func (l *Listing) Valid() bool {
	return l != nil && l.ID != ""
}

// Validate checks a listing before it is written.
func (l *Listing) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("listing ID is required")
	}
	if len(l.ID) > MaxIDLength {
		return fmt.Errorf("listing ID too long (max %d)", MaxIDLength)
	}
	if !idRegex.MatchString(l.ID) {
		return fmt.Errorf("listing ID must be alphanumeric with underscores and hyphens")
	}
	if l.Title == "" {
		return fmt.Errorf("title is required")
	}
	if l.ListingType != "" && l.ListingType != TypeSale && l.ListingType != TypeRent {
		return fmt.Errorf("listingType must be %q or %q, got %q", TypeSale, TypeRent, l.ListingType)
	}
	if l.SubListingType != "" && l.SubListingType != SubTypeRentOnly && l.SubListingType != SubTypeInstallmentOnly {
		return fmt.Errorf("subListingType must be %q or %q, got %q",
			SubTypeRentOnly, SubTypeInstallmentOnly, l.SubListingType)
	}
	return nil
}

// Identifier returns the human-facing code, preferring displayId over propertyId.
func (l *Listing) Identifier() string {
	if l.DisplayID != "" {
		return l.DisplayID
	}
	return l.PropertyID
}

// EffectiveListingType returns "sale" or "rent". Records predating listingType
// carry isRental instead; records with neither are sales.
func EffectiveListingType(l *Listing) string {
	if v := strings.ToLower(strings.TrimSpace(l.ListingType)); v != "" {
		return v
	}
	if l.IsRental != nil && *l.IsRental {
		return TypeRent
	}
	return TypeSale
}

// EffectiveSubListingType returns "rent_only" or "installment_only",
// falling back to the legacy directInstallment flag.
func EffectiveSubListingType(l *Listing) string {
	if v := strings.ToLower(strings.TrimSpace(l.SubListingType)); v != "" {
		return v
	}
	if l.DirectInstallment != nil && *l.DirectInstallment {
		return SubTypeInstallmentOnly
	}
	return SubTypeRentOnly
}

// EffectiveCondition returns the raw condition marker: propertyCondition,
// else the legacy propertySubStatus.
func EffectiveCondition(l *Listing) string {
	if l.PropertyCondition != "" {
		return l.PropertyCondition
	}
	return l.PropertySubStatus
}

// EffectiveAvailability returns the canonical availability bucket
// (see NormalizeAvailability) of availability, else the legacy status.
func EffectiveAvailability(l *Listing) string {
	raw := l.Availability
	if raw == "" {
		raw = l.Status
	}
	return NormalizeAvailability(raw)
}
