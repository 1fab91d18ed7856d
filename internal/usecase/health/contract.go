package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// CatalogCounter reports how many listings are stored.
type CatalogCounter interface {
	Count(ctx context.Context) (int, error)
}
