package search

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	domlisting "github.com/kailas-cloud/homefinder/internal/domain/listing"
	"github.com/kailas-cloud/homefinder/internal/domain/search/filter"
	"github.com/kailas-cloud/homefinder/internal/domain/search/match"
	"github.com/kailas-cloud/homefinder/internal/domain/search/query"
	"github.com/kailas-cloud/homefinder/internal/domain/search/request"
	"github.com/kailas-cloud/homefinder/internal/domain/search/result"
	"github.com/kailas-cloud/homefinder/internal/domain/search/score"
	"github.com/kailas-cloud/homefinder/internal/logger"
	"github.com/kailas-cloud/homefinder/internal/metrics"
)

// Suggestion limits.
const (
	DefaultSuggestLimit = 8
	MaxSuggestLimit     = 20
)

// Service runs listing searches over a freshly loaded catalog.
type Service struct {
	src Source
}

// New creates a search service.
func New(src Source) *Service {
	return &Service{src: src}
}

// Search filters the catalog by req's criteria. With a keyword, survivors are
// ordered by relevance to the keyword minus any price phrase; without one they
// keep catalog order (newest first). The page reports the total match count.
func (s *Service) Search(ctx context.Context, req *request.Request) (result.Page, error) {
	start := time.Now()
	log := logger.FromContext(ctx)

	crit := req.Criteria()
	if bad := crit.Malformed(); len(bad) > 0 {
		log.Debug("malformed numeric criteria match nothing", zap.Strings("fields", bad))
	}

	snap, err := s.load(ctx)
	if err != nil {
		metrics.ObserveSearch(metrics.KindSearch, start, 0, err)
		return result.Page{}, err
	}

	matched := filter.Apply(snap.Listings, crit)

	var ranked []result.Result
	if kw := strings.TrimSpace(req.Keyword()); kw != "" {
		ranked = score.Rank(matched, query.ParsePrice(kw).CleanedQuery)
	} else {
		ranked = make([]result.Result, len(matched))
		for i := range matched {
			ranked[i] = result.New(matched[i], 0)
		}
	}

	log.Debug("search served", logger.Query(req.Keyword()), zap.Int("matched", len(ranked)))
	metrics.ObserveSearch(metrics.KindSearch, start, len(ranked), nil)
	return result.Paginate(ranked, req.Offset(), req.Limit()), nil
}

// Suggest is the forgiving search behind the search box. A single typed price
// ("2.5 ล้าน") becomes a ±10% window the listing price must fall into; the
// remaining words need only one of them to match. Results are ordered by
// relevance, then by closeness to the typed price.
func (s *Service) Suggest(ctx context.Context, q string, limit int) ([]result.Result, error) {
	start := time.Now()

	if limit <= 0 {
		limit = DefaultSuggestLimit
	}
	limit = min(limit, MaxSuggestLimit)

	buf, residual, hasBuf := query.DetectPriceBuffer(q)
	tokens := query.Tokenize(residual)
	if !hasBuf && len(tokens) == 0 {
		return nil, nil
	}

	snap, err := s.load(ctx)
	if err != nil {
		metrics.ObserveSearch(metrics.KindSuggest, start, 0, err)
		return nil, err
	}

	var out []result.Result
	for i := range snap.Listings {
		l := &snap.Listings[i]
		if hasBuf {
			price, ok := l.Price.Float()
			if !ok || !buf.Contains(price) {
				continue
			}
		}
		if len(tokens) > 0 && !matchesAny(l, tokens) {
			continue
		}
		out = append(out, result.New(*l, score.Score(l, residual)))
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score() != out[j].Score() {
			return out[i].Score() > out[j].Score()
		}
		if !hasBuf {
			return false
		}
		return distance(out[i], buf.Target) < distance(out[j], buf.Target)
	})

	metrics.ObserveSearch(metrics.KindSuggest, start, len(out), nil)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Interpretation shows how a query is read.
type Interpretation struct {
	Query  string
	Tokens []string
	Price  query.Price
	// Buffer is the window Suggest would apply, nil when the query has no single price.
	Buffer *query.PriceBuffer
}

// Inspect explains how Search and Suggest read q.
func (s *Service) Inspect(q string) Interpretation {
	price := query.ParsePrice(q)
	in := Interpretation{
		Query:  query.Normalize(q),
		Tokens: query.Tokenize(price.CleanedQuery),
		Price:  price,
	}
	if buf, _, ok := query.DetectPriceBuffer(q); ok {
		in.Buffer = &buf
	}
	return in
}

func (s *Service) load(ctx context.Context) (domlisting.Snapshot, error) {
	snap, err := s.src.LoadAll(ctx)
	if err != nil {
		return domlisting.Snapshot{}, fmt.Errorf("load listings: %w", err)
	}
	if snap.Skipped > 0 {
		logger.FromContext(ctx).Warn("skipped unreadable listings",
			zap.Int("skipped", snap.Skipped),
			zap.Int("loaded", len(snap.Listings)),
		)
	}
	metrics.ObserveSnapshot(len(snap.Listings), snap.Skipped)
	return snap, nil
}

func matchesAny(l *domlisting.Listing, tokens []string) bool {
	for _, t := range tokens {
		if match.MatchToken(l, t) {
			return true
		}
	}
	return false
}

func distance(r result.Result, target float64) float64 {
	l := r.Listing()
	price, ok := l.Price.Float()
	if !ok {
		return math.Inf(1)
	}
	return math.Abs(price - target)
}
