package listing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/homefinder/internal/domain"
	domlisting "github.com/kailas-cloud/homefinder/internal/domain/listing"
	"github.com/kailas-cloud/homefinder/internal/logger"
)

// MaxBatchSize is the maximum number of listings per import.
const MaxBatchSize = 500

// ItemResult is the outcome of one listing in an import.
type ItemResult struct {
	ID  string
	Err error
}

// OK reports whether the listing was stored.
func (r ItemResult) OK() bool { return r.Err == nil }

// Service handles listing administration.
type Service struct {
	repo            Repository
	now             func() time.Time
	defaultPageSize int
	maxPageSize     int
	maxBatchSize    int
}

// New creates a listing service.
func New(repo Repository) *Service {
	return &Service{
		repo:            repo,
		now:             time.Now,
		defaultPageSize: 20,
		maxPageSize:     100,
		maxBatchSize:    MaxBatchSize,
	}
}

// WithPagination configures page size limits.
func (s *Service) WithPagination(defaultPageSize, maxPageSize int) *Service {
	if defaultPageSize > 0 {
		s.defaultPageSize = defaultPageSize
	}
	if maxPageSize > 0 {
		s.maxPageSize = maxPageSize
	}
	return s
}

// WithMaxBatchSize configures the maximum import size.
func (s *Service) WithMaxBatchSize(size int) *Service {
	if size > 0 {
		s.maxBatchSize = size
	}
	return s
}

// WithClock overrides the creation-time clock.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Upsert validates and stores a listing. A missing createdAt keeps the stored
// one on update and is stamped with the current time on create.
// Returns true if the listing was created.
func (s *Service) Upsert(ctx context.Context, l *domlisting.Listing) (bool, error) {
	if err := l.Validate(); err != nil {
		return false, fmt.Errorf("%w: %w", domain.ErrInvalidListing, err)
	}

	if l.CreatedAt.IsZero() {
		existing, err := s.repo.Get(ctx, l.ID)
		switch {
		case err == nil && !existing.CreatedAt.IsZero():
			l.CreatedAt = existing.CreatedAt
		case err == nil, errors.Is(err, domain.ErrListingNotFound), errors.Is(err, domain.ErrInvalidListing):
			l.CreatedAt = domlisting.Timestamp{Time: s.now().UTC()}
		default:
			return false, fmt.Errorf("get listing: %w", err)
		}
	}

	created, err := s.repo.Upsert(ctx, l)
	if err != nil {
		return false, fmt.Errorf("upsert listing: %w", err)
	}
	return created, nil
}

// Import stores many listings in one round-trip. Invalid listings are reported
// per item and do not stop the rest.
func (s *Service) Import(ctx context.Context, items []domlisting.Listing) []ItemResult {
	results := make([]ItemResult, len(items))

	if len(items) > s.maxBatchSize {
		for i := range items {
			results[i] = ItemResult{
				ID:  items[i].ID,
				Err: fmt.Errorf("batch size exceeds %d: %w", s.maxBatchSize, domain.ErrInvalidListing),
			}
		}
		return results
	}

	now := domlisting.Timestamp{Time: s.now().UTC()}
	valid := make([]domlisting.Listing, 0, len(items))
	validIdx := make([]int, 0, len(items))
	seen := make(map[string]int, len(items))

	for i := range items {
		results[i].ID = items[i].ID
		if err := items[i].Validate(); err != nil {
			results[i].Err = fmt.Errorf("%w: %w", domain.ErrInvalidListing, err)
			continue
		}
		if _, dup := seen[items[i].ID]; dup {
			results[i].Err = fmt.Errorf("duplicate listing ID %q: %w", items[i].ID, domain.ErrInvalidListing)
			continue
		}
		seen[items[i].ID] = i
		if items[i].CreatedAt.IsZero() {
			items[i].CreatedAt = now
		}
		valid = append(valid, items[i])
		validIdx = append(validIdx, i)
	}

	if len(valid) == 0 {
		return results
	}

	if err := s.repo.UpsertMany(ctx, valid); err != nil {
		for _, i := range validIdx {
			results[i].Err = fmt.Errorf("batch upsert: %w", err)
		}
		return results
	}

	logger.FromContext(ctx).Info("listings imported",
		zap.Int("stored", len(valid)),
		zap.Int("rejected", len(items)-len(valid)),
	)
	return results
}

// Get retrieves a listing by ID.
func (s *Service) Get(ctx context.Context, id string) (domlisting.Listing, error) {
	l, err := s.repo.Get(ctx, id)
	if err != nil {
		return domlisting.Listing{}, fmt.Errorf("get listing: %w", err)
	}
	return l, nil
}

// List returns one page of listings, newest first, and the total count.
func (s *Service) List(ctx context.Context, offset, limit int) ([]domlisting.Listing, int, error) {
	if offset < 0 {
		return nil, 0, fmt.Errorf("offset must not be negative: %w", domain.ErrInvalidCriteria)
	}
	if limit <= 0 {
		limit = s.defaultPageSize
	}
	if limit > s.maxPageSize {
		limit = s.maxPageSize
	}

	snap, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("list listings: %w", err)
	}

	total := len(snap.Listings)
	start := min(offset, total)
	end := min(start+limit, total)
	return snap.Listings[start:end], total, nil
}

// Delete removes a listing.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}
	return nil
}
