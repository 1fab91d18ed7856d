package request

import (
	"strings"
	"testing"

	"github.com/kailas-cloud/homefinder/internal/domain/search/filter"
)

func TestNew_Defaults(t *testing.T) {
	r, err := New(filter.Criteria{}, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Limit() != DefaultLimit {
		t.Errorf("Limit() = %d, want %d", r.Limit(), DefaultLimit)
	}
	if r.Offset() != 0 {
		t.Errorf("Offset() = %d", r.Offset())
	}
	if r.Keyword() != "" {
		t.Errorf("Keyword() = %q", r.Keyword())
	}
}

func TestNew_LimitClamped(t *testing.T) {
	r, err := New(filter.Criteria{}, 0, 10_000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Limit() != MaxLimit {
		t.Errorf("Limit() = %d, want %d", r.Limit(), MaxLimit)
	}
}

func TestNew_NegativeOffset(t *testing.T) {
	if _, err := New(filter.Criteria{}, -1, 10); err == nil {
		t.Fatal("expected error for negative offset")
	}
}

func TestNew_KeywordTooLong(t *testing.T) {
	// Thai runes are three bytes each; the limit counts characters.
	ok := strings.Repeat("บ", MaxQueryLength)
	if _, err := New(filter.Criteria{Keyword: &ok}, 0, 0); err != nil {
		t.Fatalf("keyword at the limit rejected: %v", err)
	}

	long := ok + "า"
	_, err := New(filter.Criteria{Keyword: &long}, 0, 0)
	if err == nil {
		t.Fatal("expected error for long keyword")
	}
	if !strings.Contains(err.Error(), "too long") {
		t.Errorf("error = %q", err)
	}
}

func TestKeyword(t *testing.T) {
	kw := "คอนโด"
	r, err := New(filter.Criteria{Keyword: &kw}, 5, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Keyword() != "คอนโด" || r.Offset() != 5 || r.Limit() != 10 {
		t.Errorf("got keyword=%q offset=%d limit=%d", r.Keyword(), r.Offset(), r.Limit())
	}
}
