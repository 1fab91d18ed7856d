package section

import (
	"context"

	domlisting "github.com/kailas-cloud/homefinder/internal/domain/listing"
	domsection "github.com/kailas-cloud/homefinder/internal/domain/section"
)

// Repository defines the storage contract for sections.
type Repository interface {
	Upsert(ctx context.Context, s *domsection.Section) (created bool, err error)
	Get(ctx context.Context, id string) (domsection.Section, error)
	List(ctx context.Context) ([]domsection.Section, error)
	Delete(ctx context.Context, id string) error
}

// ListingSource reads the listings sections are filled from.
type ListingSource interface {
	LoadAll(ctx context.Context) (domlisting.Snapshot, error)
	LoadByIDs(ctx context.Context, ids []string) ([]domlisting.Listing, error)
}
