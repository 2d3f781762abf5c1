package catalog_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"shelf/internal/catalog"
	"shelf/internal/services"
	"shelf/internal/testsupport"
)

func newStore(t *testing.T, opts ...catalog.Option) *catalog.Store {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	db := testsupport.MustOpenDB(t, cfg)
	return catalog.NewStore(db, opts...)
}

func TestCreateThenGetReturnsEqualEntry(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	entry := catalog.NewEntry(catalog.Draft{
		Name:   "Frieren",
		Score:  9.5,
		Review: "quiet and sad",
		Link:   "https://shikimori.one/animes/52991-sousou-no-frieren",
		Status: catalog.StatusCompleted,
	})
	created, err := store.Create(ctx, entry)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Fatalf("expected timestamps, got %#v", created)
	}

	fetched, err := store.Get(ctx, entry.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if fetched == nil {
		t.Fatal("expected entry to exist")
	}
	if fetched.Name != entry.Name || fetched.Score != entry.Score || fetched.Review != entry.Review ||
		fetched.Link != entry.Link || fetched.Status != entry.Status {
		t.Fatalf("round trip mismatch: got %#v want %#v", fetched, entry)
	}
}

func TestCreateOverwritesExistingID(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	entry := catalog.NewEntry(catalog.Draft{Name: "First", Status: catalog.StatusWaiting})
	if _, err := store.Create(ctx, entry); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	entry.Name = "Second"
	if _, err := store.Create(ctx, entry); err != nil {
		t.Fatalf("second Create failed: %v", err)
	}

	fetched, err := store.Get(ctx, entry.ID)
	if err != nil || fetched == nil {
		t.Fatalf("Get failed: %v", err)
	}
	if fetched.Name != "Second" {
		t.Fatalf("expected overwrite, got %q", fetched.Name)
	}
	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one entry, got %d", count)
	}
}

func TestCreateReturnsStoredRowAndKeepsCreatedAt(t *testing.T) {
	first := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	now := first
	store := newStore(t, catalog.WithClock(func() time.Time { return now }))
	ctx := context.Background()

	entry := catalog.NewEntry(catalog.Draft{Name: "Mushishi", Status: catalog.StatusWaiting})
	created, err := store.Create(ctx, entry)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !created.CreatedAt.Equal(first) || !created.UpdatedAt.Equal(first) {
		t.Fatalf("unexpected timestamps: %#v", created)
	}

	now = first.Add(time.Hour)
	entry.Name = "Mushishi Zoku Shou"
	replaced, err := store.Create(ctx, entry)
	if err != nil {
		t.Fatalf("second Create failed: %v", err)
	}
	if replaced.Name != entry.Name {
		t.Fatalf("expected returned entry to carry new name, got %q", replaced.Name)
	}
	if !replaced.CreatedAt.Equal(first) || !replaced.UpdatedAt.Equal(now) {
		t.Fatalf("expected created_at kept and updated_at bumped, got %#v", replaced)
	}

	fetched, err := store.Get(ctx, entry.ID)
	if err != nil || fetched == nil {
		t.Fatalf("Get failed: %v", err)
	}
	if *fetched != *replaced {
		t.Fatalf("returned entry differs from stored row: %#v vs %#v", replaced, fetched)
	}
}

func TestCreateAssignsMissingID(t *testing.T) {
	store := newStore(t)
	created, err := store.Create(context.Background(), catalog.Entry{Name: "Untitled", Status: catalog.StatusNone})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected generated ID")
	}
}

func TestGetMissingReturnsNil(t *testing.T) {
	store := newStore(t)
	entry, err := store.Get(context.Background(), catalog.NewID())
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if entry != nil {
		t.Fatalf("expected nil entry, got %#v", entry)
	}
}

func TestUpdateMissingFailsWithoutCreating(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	entry := catalog.NewEntry(catalog.Draft{Name: "Ghost"})
	if _, err := store.Update(ctx, entry); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	fetched, err := store.Get(ctx, entry.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if fetched != nil {
		t.Fatal("update must not create the entry")
	}
}

func TestUpdateReplacesWholeRecord(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	store := newStore(t, catalog.WithClock(clock))
	ctx := context.Background()

	entry := catalog.NewEntry(catalog.Draft{Name: "Mushishi", Score: 7, Review: "calm", Status: catalog.StatusWaiting})
	created, err := store.Create(ctx, entry)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	now = now.Add(time.Hour)
	entry.Score = 10
	entry.Review = ""
	entry.Status = catalog.StatusCompleted
	updated, err := store.Update(ctx, entry)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Score != 10 || updated.Review != "" || updated.Status != catalog.StatusCompleted {
		t.Fatalf("unexpected updated entry: %#v", updated)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("created_at changed: %v -> %v", created.CreatedAt, updated.CreatedAt)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Fatalf("expected updated_at to advance, got %v", updated.UpdatedAt)
	}
}

func TestDeleteReportsRemoval(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	entry := catalog.NewEntry(catalog.Draft{Name: "Texhnolyze"})
	if _, err := store.Create(ctx, entry); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	removed, err := store.Delete(ctx, entry.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !removed {
		t.Fatal("expected first delete to report removal")
	}
	removed, err = store.Delete(ctx, entry.ID)
	if err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
	if removed {
		t.Fatal("expected second delete to report nothing removed")
	}
}

func TestListReturnsEveryEntry(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	empty, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty list, got %d", len(empty))
	}

	ids := map[string]bool{}
	for _, name := range []string{"A", "B", "C"} {
		entry := catalog.NewEntry(catalog.Draft{Name: name})
		if _, err := store.Create(ctx, entry); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		ids[entry.ID] = true
	}

	entries, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	for _, entry := range entries {
		if !ids[entry.ID] {
			t.Fatalf("unexpected entry %q", entry.ID)
		}
	}
}

func TestValidationRejectsBadInput(t *testing.T) {
	store := newStore(t, catalog.WithScoreRange(0, 10))
	ctx := context.Background()

	cases := []struct {
		name  string
		entry catalog.Entry
	}{
		{name: "unknown status", entry: catalog.Entry{ID: catalog.NewID(), Status: catalog.Status("paused")}},
		{name: "score above range", entry: catalog.Entry{ID: catalog.NewID(), Status: catalog.StatusNone, Score: 11}},
		{name: "score below range", entry: catalog.Entry{ID: catalog.NewID(), Status: catalog.StatusNone, Score: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := store.Create(ctx, tc.entry); !errors.Is(err, services.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestScoreRangeNotEnforcedByDefault(t *testing.T) {
	store := newStore(t)
	entry := catalog.NewEntry(catalog.Draft{Name: "Overrated", Score: 42})
	if _, err := store.Create(context.Background(), entry); err != nil {
		t.Fatalf("expected unrestricted score to be accepted, got %v", err)
	}
}

func TestConcurrentUpdatesLeaveWholeRecord(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	entry := catalog.NewEntry(catalog.Draft{Name: "base", Status: catalog.StatusNone})
	if _, err := store.Create(ctx, entry); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	a := entry
	a.Name, a.Score, a.Status = "writer-a", 1, catalog.StatusCompleted
	b := entry
	b.Name, b.Score, b.Status = "writer-b", 2, catalog.StatusDropped

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if _, err := store.Update(ctx, a); err != nil {
				t.Errorf("update a: %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			if _, err := store.Update(ctx, b); err != nil {
				t.Errorf("update b: %v", err)
			}
		}()
	}
	wg.Wait()

	final, err := store.Get(ctx, entry.ID)
	if err != nil || final == nil {
		t.Fatalf("Get failed: %v", err)
	}
	switch final.Name {
	case "writer-a":
		if final.Score != 1 || final.Status != catalog.StatusCompleted {
			t.Fatalf("mixed record: %#v", final)
		}
	case "writer-b":
		if final.Score != 2 || final.Status != catalog.StatusDropped {
			t.Fatalf("mixed record: %#v", final)
		}
	default:
		t.Fatalf("unexpected final name %q", final.Name)
	}
}
