package listing

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/kailas-cloud/homefinder/internal/domain"
	domlisting "github.com/kailas-cloud/homefinder/internal/domain/listing"
)

// --- Mocks ---

type mockRepo struct {
	stored      map[string]domlisting.Listing
	upsertErr   error
	manyErr     error
	getErr      error
	loadErr     error
	manyCalls   int
	lastMany    []domlisting.Listing
	lastUpsert  domlisting.Listing
	deleteCalls int
}

func newMockRepo() *mockRepo {
	return &mockRepo{stored: make(map[string]domlisting.Listing)}
}

func (m *mockRepo) Upsert(_ context.Context, l *domlisting.Listing) (bool, error) {
	if m.upsertErr != nil {
		return false, m.upsertErr
	}
	_, exists := m.stored[l.ID]
	m.stored[l.ID] = *l
	m.lastUpsert = *l
	return !exists, nil
}

func (m *mockRepo) UpsertMany(_ context.Context, ls []domlisting.Listing) error {
	m.manyCalls++
	m.lastMany = ls
	return m.manyErr
}

func (m *mockRepo) Get(_ context.Context, id string) (domlisting.Listing, error) {
	if m.getErr != nil {
		return domlisting.Listing{}, m.getErr
	}
	l, ok := m.stored[id]
	if !ok {
		return domlisting.Listing{}, domain.ErrListingNotFound
	}
	return l, nil
}

func (m *mockRepo) Delete(_ context.Context, id string) error {
	m.deleteCalls++
	if _, ok := m.stored[id]; !ok {
		return domain.ErrListingNotFound
	}
	delete(m.stored, id)
	return nil
}

func (m *mockRepo) LoadAll(_ context.Context) (domlisting.Snapshot, error) {
	if m.loadErr != nil {
		return domlisting.Snapshot{}, m.loadErr
	}
	var snap domlisting.Snapshot
	for i := 0; i < 5; i++ {
		snap.Listings = append(snap.Listings, domlisting.Listing{ID: fmt.Sprintf("l%d", i)})
	}
	return snap, nil
}

var fixedNow = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

func newTestService(repo *mockRepo) *Service {
	return New(repo).WithClock(func() time.Time { return fixedNow })
}

// --- Upsert ---

func TestUpsert_CreateStampsCreatedAt(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)

	created, err := svc.Upsert(context.Background(), &domlisting.Listing{ID: "a", Title: "Condo"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Error("expected created=true")
	}
	if !repo.lastUpsert.CreatedAt.Equal(fixedNow) {
		t.Errorf("expected createdAt %v, got %v", fixedNow, repo.lastUpsert.CreatedAt)
	}
}

func TestUpsert_UpdateKeepsCreatedAt(t *testing.T) {
	repo := newMockRepo()
	orig := time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC)
	repo.stored["a"] = domlisting.Listing{ID: "a", Title: "Old", CreatedAt: domlisting.Timestamp{Time: orig}}
	svc := newTestService(repo)

	created, err := svc.Upsert(context.Background(), &domlisting.Listing{ID: "a", Title: "New"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Error("expected created=false")
	}
	if !repo.lastUpsert.CreatedAt.Equal(orig) {
		t.Errorf("expected original createdAt, got %v", repo.lastUpsert.CreatedAt)
	}
}

func TestUpsert_Invalid(t *testing.T) {
	svc := newTestService(newMockRepo())
	_, err := svc.Upsert(context.Background(), &domlisting.Listing{ID: "bad id", Title: "x"})
	if !errors.Is(err, domain.ErrInvalidListing) {
		t.Fatalf("expected ErrInvalidListing, got %v", err)
	}
}

func TestUpsert_LookupError(t *testing.T) {
	repo := newMockRepo()
	repo.getErr = errors.New("timeout")
	svc := newTestService(repo)
	_, err := svc.Upsert(context.Background(), &domlisting.Listing{ID: "a", Title: "x"})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestUpsert_RepoError(t *testing.T) {
	repo := newMockRepo()
	repo.upsertErr = errors.New("write failed")
	svc := newTestService(repo)
	_, err := svc.Upsert(context.Background(), &domlisting.Listing{ID: "a", Title: "x",
		CreatedAt: domlisting.Timestamp{Time: fixedNow}})
	if !errors.Is(err, repo.upsertErr) {
		t.Fatalf("expected wrapped repo error, got %v", err)
	}
}

// --- Import ---

func TestImport_MixedItems(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)

	items := []domlisting.Listing{
		{ID: "a", Title: "Condo"},
		{ID: "", Title: "No ID"},
		{ID: "b", Title: "House", ListingType: "lease"},
		{ID: "a", Title: "Duplicate"},
		{ID: "c", Title: "Land"},
	}
	results := svc.Import(context.Background(), items)

	wantOK := []bool{true, false, false, false, true}
	for i, r := range results {
		if r.OK() != wantOK[i] {
			t.Errorf("item %d: ok=%v, want %v (err=%v)", i, r.OK(), wantOK[i], r.Err)
		}
		if !r.OK() && !errors.Is(r.Err, domain.ErrInvalidListing) {
			t.Errorf("item %d: expected ErrInvalidListing, got %v", i, r.Err)
		}
	}
	if repo.manyCalls != 1 || len(repo.lastMany) != 2 {
		t.Fatalf("expected one batch of 2, got %d calls, %d items", repo.manyCalls, len(repo.lastMany))
	}
	for _, l := range repo.lastMany {
		if !l.CreatedAt.Equal(fixedNow) {
			t.Errorf("%s: createdAt not stamped", l.ID)
		}
	}
}

func TestImport_TooLarge(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo).WithMaxBatchSize(2)
	results := svc.Import(context.Background(), make([]domlisting.Listing, 3))
	for i, r := range results {
		if r.OK() {
			t.Errorf("item %d should fail", i)
		}
	}
	if repo.manyCalls != 0 {
		t.Error("nothing should be written")
	}
}

func TestImport_StoreError(t *testing.T) {
	repo := newMockRepo()
	repo.manyErr = errors.New("pipeline failed")
	svc := newTestService(repo)
	results := svc.Import(context.Background(), []domlisting.Listing{{ID: "a", Title: "x"}, {ID: "b", Title: "y"}})
	for i, r := range results {
		if !errors.Is(r.Err, repo.manyErr) {
			t.Errorf("item %d: expected store error, got %v", i, r.Err)
		}
	}
}

func TestImport_AllInvalidSkipsStore(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	svc.Import(context.Background(), []domlisting.Listing{{Title: "no id"}})
	if repo.manyCalls != 0 {
		t.Error("store must not be called")
	}
}

// --- Get / Delete / List ---

func TestGet_NotFound(t *testing.T) {
	svc := newTestService(newMockRepo())
	_, err := svc.Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrListingNotFound) {
		t.Fatalf("expected ErrListingNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	repo := newMockRepo()
	repo.stored["a"] = domlisting.Listing{ID: "a"}
	svc := newTestService(repo)

	if err := svc.Delete(context.Background(), "a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Delete(context.Background(), "a"); !errors.Is(err, domain.ErrListingNotFound) {
		t.Fatalf("expected ErrListingNotFound, got %v", err)
	}
}

func TestList(t *testing.T) {
	tests := []struct {
		name      string
		offset    int
		limit     int
		wantFirst string
		wantLen   int
	}{
		{"default page", 0, 0, "l0", 5},
		{"window", 1, 2, "l1", 2},
		{"past end", 10, 2, "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(newMockRepo())
			got, total, err := svc.List(context.Background(), tt.offset, tt.limit)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if total != 5 {
				t.Errorf("expected total 5, got %d", total)
			}
			if len(got) != tt.wantLen {
				t.Fatalf("expected %d items, got %d", tt.wantLen, len(got))
			}
			if tt.wantLen > 0 && got[0].ID != tt.wantFirst {
				t.Errorf("expected first %s, got %s", tt.wantFirst, got[0].ID)
			}
		})
	}
}

func TestList_Errors(t *testing.T) {
	svc := newTestService(newMockRepo())
	if _, _, err := svc.List(context.Background(), -1, 10); !errors.Is(err, domain.ErrInvalidCriteria) {
		t.Errorf("expected ErrInvalidCriteria, got %v", err)
	}

	repo := newMockRepo()
	repo.loadErr = errors.New("scan failed")
	if _, _, err := newTestService(repo).List(context.Background(), 0, 10); err == nil {
		t.Error("expected error")
	}
}

func TestWithPagination_ClampsLimit(t *testing.T) {
	svc := newTestService(newMockRepo()).WithPagination(1, 3)
	got, _, err := svc.List(context.Background(), 0, 0)
	if err != nil || len(got) != 1 {
		t.Fatalf("default page: %d items, err=%v", len(got), err)
	}
	got, _, err = svc.List(context.Background(), 0, 50)
	if err != nil || len(got) != 3 {
		t.Fatalf("max page: %d items, err=%v", len(got), err)
	}
}
