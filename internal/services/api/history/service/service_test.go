package service

import (
	"context"
	"fmt"
	"testing"

	"textpolish/internal/modkit/repokit"
	perr "textpolish/internal/platform/errors"
	"textpolish/internal/platform/store"

	"textpolish/internal/services/api/history/domain"
	"textpolish/internal/services/api/history/repo"
)

func newLite(t *testing.T) *Svc {
	t.Helper()
	ctx := context.Background()
	db, err := store.OpenSQLite(ctx, ":memory:", nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if c, ok := db.(interface{ Close() error }); ok {
			_ = c.Close()
		}
	})
	s := New(db, repo.New(repokit.SQLite))
	if err := s.EnsureSchema(ctx); err != nil {
		t.Fatalf("schema: %v", err)
	}
	if err := s.EnsureSchema(ctx); err != nil {
		t.Fatalf("schema must be idempotent: %v", err)
	}
	return s
}

func TestAppendGet(t *testing.T) {
	s := newLite(t)
	ctx := context.Background()

	id, err := s.Append(ctx, domain.Entry{
		OriginalText: "人工智能", ProcessedText: "[学术润色] AI技术",
		AIProbability: 0.25, ProcessingTime: 0.5, Style: "academic", APIUsed: "fallback",
	})
	if err != nil || id <= 0 {
		t.Fatalf("append: %d %v", id, err)
	}

	rec, err := s.Get(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if rec.UserID != "anonymous" || rec.ProcessedText != "[学术润色] AI技术" || rec.AIProbability != 0.25 {
		t.Fatalf("record = %+v", rec)
	}
	if rec.APIUsed != "fallback" || rec.CreatedAt.IsZero() {
		t.Fatalf("record = %+v", rec)
	}

	if _, err := s.Get(ctx, id+100); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("missing id err = %v", err)
	}
	if _, err := s.Get(ctx, 0); !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("zero id err = %v", err)
	}
}

func TestListPaging(t *testing.T) {
	s := newLite(t)
	ctx := context.Background()
	for i := range 5 {
		user := "alice"
		if i%2 == 1 {
			user = "bob"
		}
		if _, err := s.Append(ctx, domain.Entry{UserID: user, OriginalText: fmt.Sprint(i), ProcessedText: "p", Style: "formal"}); err != nil {
			t.Fatal(err)
		}
	}

	cases := []struct {
		name      string
		in        domain.ListInput
		total     int
		wantTexts []string
	}{
		{"all newest first", domain.ListInput{PageSize: 2}, 5, []string{"4", "3"}},
		{"second page", domain.ListInput{Page: 2, PageSize: 2}, 5, []string{"2", "1"}},
		{"one user", domain.ListInput{UserID: "alice"}, 3, []string{"4", "2", "0"}},
		{"past the end", domain.ListInput{Page: 9, PageSize: 2}, 5, nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			items, total, err := s.List(ctx, c.in)
			if err != nil {
				t.Fatal(err)
			}
			if total != c.total || len(items) != len(c.wantTexts) || items == nil {
				t.Fatalf("total=%d items=%+v", total, items)
			}
			for i, want := range c.wantTexts {
				if items[i].OriginalText != want {
					t.Fatalf("item %d = %q want %q", i, items[i].OriginalText, want)
				}
			}
		})
	}
}

func TestListInputNormalize(t *testing.T) {
	cases := []struct {
		in         domain.ListInput
		page, size int
	}{
		{domain.ListInput{}, 1, domain.DefaultPageSize},
		{domain.ListInput{Page: -3, PageSize: 500}, 1, domain.MaxPageSize},
		{domain.ListInput{Page: 3, PageSize: 7}, 3, 7},
	}
	for _, c := range cases {
		got := c.in.Normalize()
		if got.Page != c.page || got.PageSize != c.size {
			t.Errorf("Normalize(%+v) = %+v", c.in, got)
		}
	}
	if off := (domain.ListInput{Page: 3, PageSize: 7}).Offset(); off != 14 {
		t.Fatalf("offset = %d", off)
	}
}
