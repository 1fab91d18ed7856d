package section

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/kailas-cloud/homefinder/internal/db"
	"github.com/kailas-cloud/homefinder/internal/domain"
	domsection "github.com/kailas-cloud/homefinder/internal/domain/section"
)

// store is the consumer interface for sections (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	JSONMGet(ctx context.Context, keys []string, path string) ([][]byte, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase/section.Repository.
type Repo struct {
	store  store
	prefix string
}

// New creates a section repository.
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: prefix}
}

// Upsert creates or replaces a section. Returns true if created.
func (r *Repo) Upsert(ctx context.Context, s *domsection.Section) (bool, error) {
	key := r.key(s.ID())
	data, err := json.Marshal(toDTO(s))
	if err != nil {
		return false, fmt.Errorf("marshal section: %w", err)
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

// Get returns a section by ID.
func (r *Repo) Get(ctx context.Context, id string) (domsection.Section, error) {
	key := r.key(id)
	raw, err := r.store.JSONGet(ctx, key, "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domsection.Section{}, domain.ErrSectionNotFound
		}
		return domsection.Section{}, fmt.Errorf("json.get %s: %w", key, err)
	}
	d, err := decode(raw)
	if err != nil {
		return domsection.Section{}, fmt.Errorf("decode %s: %w", key, err)
	}
	return fromDTO(&d), nil
}

// List returns all sections ordered by Order, then ID.
func (r *Repo) List(ctx context.Context) ([]domsection.Section, error) {
	keys, err := r.store.Scan(ctx, r.prefix+"section:*")
	if err != nil {
		return nil, fmt.Errorf("scan sections: %w", err)
	}
	raws, err := r.store.JSONMGet(ctx, keys, "$")
	if err != nil {
		return nil, fmt.Errorf("json.mget sections: %w", err)
	}

	out := make([]domsection.Section, 0, len(raws))
	for i, raw := range raws {
		if raw == nil {
			continue
		}
		d, err := decode(raw)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", keys[i], err)
		}
		out = append(out, fromDTO(&d))
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Order() != out[j].Order() {
			return out[i].Order() < out[j].Order()
		}
		return out[i].ID() < out[j].ID()
	})
	return out, nil
}

// Delete removes a section.
func (r *Repo) Delete(ctx context.Context, id string) error {
	key := r.key(id)
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrSectionNotFound
	}
	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

func (r *Repo) key(id string) string {
	return r.prefix + "section:" + id
}

func decode(raw []byte) (sectionDTO, error) {
	var docs []sectionDTO
	if err := json.Unmarshal(raw, &docs); err != nil {
		return sectionDTO{}, fmt.Errorf("unmarshal section: %w", err)
	}
	if len(docs) == 0 {
		return sectionDTO{}, fmt.Errorf("empty JSON.GET reply")
	}
	return docs[0], nil
}
