package section

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/homefinder/internal/domain"
	domlisting "github.com/kailas-cloud/homefinder/internal/domain/listing"
	domsection "github.com/kailas-cloud/homefinder/internal/domain/section"
	"github.com/kailas-cloud/homefinder/internal/logger"
	"github.com/kailas-cloud/homefinder/internal/metrics"
)

// Resolved is a section together with the listings it currently shows.
type Resolved struct {
	Section  domsection.Section
	Listings []domlisting.Listing
}

// Service manages homepage sections.
type Service struct {
	repo     Repository
	listings ListingSource
}

// New creates a section service.
func New(repo Repository, listings ListingSource) *Service {
	return &Service{repo: repo, listings: listings}
}

// Upsert validates and stores a section. Returns true if created.
func (s *Service) Upsert(ctx context.Context, p domsection.Params) (domsection.Section, bool, error) {
	sec, err := domsection.New(p)
	if err != nil {
		return domsection.Section{}, false, fmt.Errorf("%w: %w", domain.ErrInvalidSection, err)
	}
	created, err := s.repo.Upsert(ctx, &sec)
	if err != nil {
		return domsection.Section{}, false, fmt.Errorf("upsert section: %w", err)
	}
	return sec, created, nil
}

// Get retrieves a section by ID.
func (s *Service) Get(ctx context.Context, id string) (domsection.Section, error) {
	sec, err := s.repo.Get(ctx, id)
	if err != nil {
		return domsection.Section{}, fmt.Errorf("get section: %w", err)
	}
	return sec, nil
}

// List returns every section in homepage order.
func (s *Service) List(ctx context.Context) ([]domsection.Section, error) {
	secs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	return secs, nil
}

// Delete removes a section.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete section: %w", err)
	}
	return nil
}

// Resolve returns the listings a section shows now. Manual sections keep their
// configured order and skip IDs that no longer exist; automatic sections run
// their rule over the catalog. Both are cut to the section limit.
func (s *Service) Resolve(ctx context.Context, id string) (Resolved, error) {
	start := time.Now()

	sec, err := s.Get(ctx, id)
	if err != nil {
		return Resolved{}, err
	}

	var ls []domlisting.Listing
	switch sec.Mode() {
	case domsection.Manual:
		ls, err = s.manual(ctx, &sec)
	default:
		var snap domlisting.Snapshot
		snap, err = s.listings.LoadAll(ctx)
		if err != nil {
			err = fmt.Errorf("load listings: %w", err)
			break
		}
		ls = domsection.Select(snap.Listings, sec.Criteria())
	}
	metrics.ObserveSearch(metrics.KindSection, start, len(ls), err)
	if err != nil {
		return Resolved{}, err
	}

	return Resolved{Section: sec, Listings: truncate(ls, sec.Limit())}, nil
}

// Homepage resolves every active section in order, reading the catalog once.
// A manual section whose listings cannot be read is logged and left empty.
func (s *Service) Homepage(ctx context.Context) ([]Resolved, error) {
	secs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	var snap *domlisting.Snapshot
	out := make([]Resolved, 0, len(secs))
	for i := range secs {
		sec := secs[i]
		if !sec.Active() {
			continue
		}

		var ls []domlisting.Listing
		if sec.Mode() == domsection.Manual {
			ls, err = s.manual(ctx, &sec)
			if err != nil {
				logger.FromContext(ctx).Warn("section listings unavailable",
					logger.SectionID(sec.ID()), zap.Error(err))
				ls = nil
			}
		} else {
			if snap == nil {
				loaded, err := s.listings.LoadAll(ctx)
				if err != nil {
					return nil, fmt.Errorf("load listings: %w", err)
				}
				snap = &loaded
			}
			ls = domsection.Select(snap.Listings, sec.Criteria())
		}
		out = append(out, Resolved{Section: sec, Listings: truncate(ls, sec.Limit())})
	}
	return out, nil
}

// Preview runs an automatic rule without storing it.
func (s *Service) Preview(ctx context.Context, c domsection.Criteria, limit int) ([]domlisting.Listing, error) {
	start := time.Now()

	if limit <= 0 {
		limit = domsection.DefaultLimit
	}
	limit = min(limit, domsection.MaxLimit)

	snap, err := s.listings.LoadAll(ctx)
	if err != nil {
		metrics.ObserveSearch(metrics.KindPreview, start, 0, err)
		return nil, fmt.Errorf("load listings: %w", err)
	}
	ls := domsection.Select(snap.Listings, c)
	metrics.ObserveSearch(metrics.KindPreview, start, len(ls), nil)
	return truncate(ls, limit), nil
}

func (s *Service) manual(ctx context.Context, sec *domsection.Section) ([]domlisting.Listing, error) {
	ls, err := s.listings.LoadByIDs(ctx, sec.ListingIDs())
	if err != nil {
		return nil, fmt.Errorf("load section listings: %w", err)
	}
	return ls, nil
}

func truncate(ls []domlisting.Listing, limit int) []domlisting.Listing {
	if limit > 0 && len(ls) > limit {
		return ls[:limit]
	}
	return ls
}
