package search

import (
	"context"

	domlisting "github.com/kailas-cloud/homefinder/internal/domain/listing"
)

// Source loads the full listing collection searches run over.
type Source interface {
	LoadAll(ctx context.Context) (domlisting.Snapshot, error)
}
