package listing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/kailas-cloud/homefinder/internal/db"
	"github.com/kailas-cloud/homefinder/internal/domain"
	domlisting "github.com/kailas-cloud/homefinder/internal/domain/listing"
)

// mgetBatchSize caps the number of keys per JSON.MGET.
const mgetBatchSize = 200

// store is the consumer interface for listings (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONSetMulti(ctx context.Context, items []db.JSONSetItem) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	JSONMGet(ctx context.Context, keys []string, path string) ([][]byte, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase/listing.Repository and usecase/search.Source.
type Repo struct {
	store  store
	prefix string
}

// New creates a listing repository. prefix namespaces every key ("homefinder:").
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: prefix}
}

// Upsert creates or replaces a listing. Returns true if created.
func (r *Repo) Upsert(ctx context.Context, l *domlisting.Listing) (bool, error) {
	key := r.key(l.ID)
	data, err := json.Marshal(l)
	if err != nil {
		return false, fmt.Errorf("marshal listing: %w", err)
	}

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("check exists %s: %w", key, err)
	}

	if err := r.store.JSONSet(ctx, key, "$", data); err != nil {
		return false, fmt.Errorf("json.set %s: %w", key, err)
	}
	return !exists, nil
}

// UpsertMany writes listings in one pipelined round-trip.
func (r *Repo) UpsertMany(ctx context.Context, listings []domlisting.Listing) error {
	items := make([]db.JSONSetItem, 0, len(listings))
	for i := range listings {
		data, err := json.Marshal(&listings[i])
		if err != nil {
			return fmt.Errorf("marshal listing %s: %w", listings[i].ID, err)
		}
		items = append(items, db.JSONSetItem{Key: r.key(listings[i].ID), Path: "$", Data: data})
	}
	if err := r.store.JSONSetMulti(ctx, items); err != nil {
		return fmt.Errorf("json.set batch: %w", err)
	}
	return nil
}

// Get returns a listing by ID.
func (r *Repo) Get(ctx context.Context, id string) (domlisting.Listing, error) {
	key := r.key(id)
	raw, err := r.store.JSONGet(ctx, key, "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domlisting.Listing{}, domain.ErrListingNotFound
		}
		return domlisting.Listing{}, fmt.Errorf("json.get %s: %w", key, err)
	}
	l, ok := decode(raw)
	if !ok {
		return domlisting.Listing{}, fmt.Errorf("decode %s: %w", key, domain.ErrInvalidListing)
	}
	return l, nil
}

// Delete removes a listing.
func (r *Repo) Delete(ctx context.Context, id string) error {
	key := r.key(id)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrListingNotFound
	}

	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

// Count returns the number of stored listing keys.
func (r *Repo) Count(ctx context.Context) (int, error) {
	keys, err := r.store.Scan(ctx, r.prefix+"listing:*")
	if err != nil {
		return 0, fmt.Errorf("scan listings: %w", err)
	}
	return len(keys), nil
}

// LoadAll reads every stored listing, newest first (ties by ID).
// Records that fail to decode are counted, not returned.
func (r *Repo) LoadAll(ctx context.Context) (domlisting.Snapshot, error) {
	keys, err := r.store.Scan(ctx, r.prefix+"listing:*")
	if err != nil {
		return domlisting.Snapshot{}, fmt.Errorf("scan listings: %w", err)
	}
	sort.Strings(keys)

	var snap domlisting.Snapshot
	snap.Listings = make([]domlisting.Listing, 0, len(keys))

	for start := 0; start < len(keys); start += mgetBatchSize {
		end := min(start+mgetBatchSize, len(keys))
		raws, err := r.store.JSONMGet(ctx, keys[start:end], "$")
		if err != nil {
			return domlisting.Snapshot{}, fmt.Errorf("json.mget listings: %w", err)
		}
		for _, raw := range raws {
			if raw == nil {
				// deleted between SCAN and MGET
				continue
			}
			l, ok := decode(raw)
			if !ok || !l.Valid() {
				snap.Skipped++
				continue
			}
			snap.Listings = append(snap.Listings, l)
		}
	}

	sort.SliceStable(snap.Listings, func(i, j int) bool {
		a, b := snap.Listings[i].CreatedAt.Time, snap.Listings[j].CreatedAt.Time
		if !a.Equal(b) {
			return a.After(b)
		}
		return snap.Listings[i].ID < snap.Listings[j].ID
	})
	return snap, nil
}

// LoadByIDs returns the listings with the given IDs in the given order.
// Missing or undecodable IDs are left out.
func (r *Repo) LoadByIDs(ctx context.Context, ids []string) ([]domlisting.Listing, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.key(id)
	}
	raws, err := r.store.JSONMGet(ctx, keys, "$")
	if err != nil {
		return nil, fmt.Errorf("json.mget listings: %w", err)
	}
	out := make([]domlisting.Listing, 0, len(raws))
	for _, raw := range raws {
		if raw == nil {
			continue
		}
		if l, ok := decode(raw); ok && l.Valid() {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *Repo) key(id string) string {
	return r.prefix + "listing:" + id
}

// decode parses a JSON.GET "$" reply, which wraps the document in an array.
// A bare object is accepted too.
func decode(raw []byte) (domlisting.Listing, bool) {
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "[") {
		var docs []json.RawMessage
		if err := json.Unmarshal(raw, &docs); err != nil || len(docs) == 0 {
			return domlisting.Listing{}, false
		}
		raw = docs[0]
	}
	var l domlisting.Listing
	if err := json.Unmarshal(raw, &l); err != nil {
		return domlisting.Listing{}, false
	}
	return l, true
}
