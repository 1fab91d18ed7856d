package section

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/homefinder/internal/domain"
	domsection "github.com/kailas-cloud/homefinder/internal/domain/section"
)

func TestUpsertAndGet_RoundTripsCriteria(t *testing.T) {
	repo, ms := newTestRepo(t)
	s, err := domsection.New(domsection.Params{
		ID: "cheap-bangkok", Title: "บ้านราคาถูก", Mode: domsection.Auto,
		Criteria: domsection.Criteria{Location: "กรุงเทพ", Tags: []string{"ผ่อนตรง"}},
		Order:    2, Active: true,
	})
	if err != nil {
		t.Fatalf("section.New: %v", err)
	}

	var stored []byte
	ms.jsonSetFn = func(_ context.Context, key, _ string, data []byte) error {
		if key != "hf:section:cheap-bangkok" {
			t.Errorf("key = %q", key)
		}
		stored = data
		return nil
	}
	if _, err := repo.Upsert(context.Background(), &s); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	ms.jsonGetFn = func(_ context.Context, _ string, _ ...string) ([]byte, error) {
		return append(append([]byte("["), stored...), ']'), nil
	}
	got, err := repo.Get(context.Background(), "cheap-bangkok")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Title() != "บ้านราคาถูก" || got.Order() != 2 || !got.Active() {
		t.Errorf("got %+v", got.Params())
	}
	if got.Criteria().Location != "กรุงเทพ" || len(got.Criteria().Tags) != 1 {
		t.Errorf("criteria = %+v", got.Criteria())
	}
	if got.Limit() != domsection.DefaultLimit {
		t.Errorf("limit = %d", got.Limit())
	}
}

func TestGet_NotFound(t *testing.T) {
	repo, _ := newTestRepo(t)
	if _, err := repo.Get(context.Background(), "x"); !errors.Is(err, domain.ErrSectionNotFound) {
		t.Fatalf("expected ErrSectionNotFound, got %v", err)
	}
}

func TestList_SortedByOrder(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.scanFn = func(_ context.Context, _ string) ([]string, error) {
		return []string{"hf:section:b", "hf:section:a"}, nil
	}
	ms.jsonMGetFn = func(_ context.Context, _ []string, _ string) ([][]byte, error) {
		return [][]byte{
			[]byte(`[{"id":"b","title":"B","mode":"auto","order":2}]`),
			[]byte(`[{"id":"a","title":"A","mode":"auto","order":1}]`),
		}, nil
	}
	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d sections, want 2", len(got))
	}
	if got[0].ID() != "a" {
		t.Errorf("first = %q, want a", got[0].ID())
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo, _ := newTestRepo(t)
	if err := repo.Delete(context.Background(), "x"); !errors.Is(err, domain.ErrSectionNotFound) {
		t.Fatalf("expected ErrSectionNotFound, got %v", err)
	}
}
