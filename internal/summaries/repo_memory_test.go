package summaries

import (
	"context"
	"testing"
	"time"
)

func TestMemoryRepoListNewestFirst(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	for i, name := range []string{"a.txt", "b.txt", "c.txt"} {
		s := Summary{
			ID:        name,
			UserID:    "user-1",
			FileName:  name,
			Summary:   "summary of " + name,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Create(ctx, s); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	sums, err := repo.ListByUser(ctx, "user-1", 10, 0)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(sums) != 3 {
		t.Fatalf("expected 3 summaries, got %d", len(sums))
	}
	if sums[0].FileName != "c.txt" || sums[2].FileName != "a.txt" {
		t.Fatalf("expected newest-first order, got %s..%s", sums[0].FileName, sums[2].FileName)
	}
}

func TestMemoryRepoTenantIsolation(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	if err := repo.Create(ctx, Summary{ID: "s1", UserID: "alice", FileName: "a.pdf", Summary: "x", CreatedAt: time.Now().UTC()}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	sums, err := repo.ListByUser(ctx, "bob", 10, 0)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(sums) != 0 {
		t.Fatalf("expected no summaries for other user, got %d", len(sums))
	}

	if _, err := repo.GetByID(ctx, "bob", "s1"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for cross-user get, got %v", err)
	}
	if _, err := repo.GetByID(ctx, "alice", "s1"); err != nil {
		t.Fatalf("GetByID owner: %v", err)
	}
}

func TestMemoryRepoZeroLimitUsesDefault(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 25; i++ {
		s := Summary{
			ID:        "s" + string(rune('a'+i)),
			UserID:    "user-1",
			FileName:  "f",
			Summary:   "x",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Create(ctx, s); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	// limit 0 clamps to the same default page size as the SQL backends.
	sums, err := repo.ListByUser(ctx, "user-1", 0, 0)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(sums) != 20 {
		t.Fatalf("expected default page of 20, got %d", len(sums))
	}
}

func TestMemoryRepoLimitOffset(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		s := Summary{
			ID:        string(rune('a' + i)),
			UserID:    "user-1",
			FileName:  "f",
			Summary:   "x",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Create(ctx, s); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	sums, err := repo.ListByUser(ctx, "user-1", 2, 1)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(sums) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(sums))
	}
	// Newest is 'e'; offset 1 starts at 'd'.
	if sums[0].ID != "d" || sums[1].ID != "c" {
		t.Fatalf("unexpected page: %s, %s", sums[0].ID, sums[1].ID)
	}
}
