package taxonomy

import (
	"context"
	"path/filepath"
	"testing"
)

func TestStoreReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxonomy.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	seedChain(t, store, []string{"Raw"}, []string{"Preferred"}, "Group", "code", "Category")
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	value, found, err := reopened.PreferredFor(context.Background(), "Raw")
	if err != nil || !found || value != "Preferred" {
		t.Fatalf("PreferredFor = (%q, %v, %v)", value, found, err)
	}
}

func TestStoreSaveIsIdempotent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if err := store.SaveCategory(ctx, "code", "Category"); err != nil {
			t.Fatalf("SaveCategory: %v", err)
		}
	}
	categories, err := store.Categories(ctx)
	if err != nil {
		t.Fatalf("Categories: %v", err)
	}
	if len(categories) != 1 {
		t.Errorf("categories = %v", categories)
	}
}

func TestEntriesJoinsPartialChains(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	seedChain(t, store, []string{"Complete"}, []string{"Complete"}, "Group", "g", "TV")
	// A chain missing everything past the preferred mapping.
	if err := store.SavePreferred(ctx, "Partial", "Partial Preferred"); err != nil {
		t.Fatalf("SavePreferred: %v", err)
	}

	entries, err := store.Entries(ctx)
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %+v", entries)
	}
	if entries[0].RawTags != "Complete" || entries[0].Category != "TV" {
		t.Errorf("complete entry = %+v", entries[0])
	}
	if entries[1].RawTags != "Partial" || entries[1].GroupTag != "" || entries[1].Category != "" {
		t.Errorf("partial entry = %+v", entries[1])
	}
}
