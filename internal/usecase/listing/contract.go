package listing

import (
	"context"

	domlisting "github.com/kailas-cloud/homefinder/internal/domain/listing"
)

// Repository defines the storage contract for listings.
type Repository interface {
	Upsert(ctx context.Context, l *domlisting.Listing) (created bool, err error)
	UpsertMany(ctx context.Context, listings []domlisting.Listing) error
	Get(ctx context.Context, id string) (domlisting.Listing, error)
	Delete(ctx context.Context, id string) error
	LoadAll(ctx context.Context) (domlisting.Snapshot, error)
}
