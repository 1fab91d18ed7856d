package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrListingNotFound signals a missing listing.
	ErrListingNotFound = errors.New("listing not found")
	// ErrSectionNotFound signals a missing homepage section.
	ErrSectionNotFound = errors.New("section not found")
	// ErrInvalidListing signals a listing that fails validation.
	ErrInvalidListing = errors.New("invalid listing")
	// ErrInvalidSection signals a section that fails validation.
	ErrInvalidSection = errors.New("invalid section")
	// ErrInvalidCriteria signals unusable search parameters.
	ErrInvalidCriteria = errors.New("invalid criteria")
)
