package taxonomy

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"podpost/internal/logging"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "taxonomy.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func seedChain(t *testing.T, store *Store, raw, preferred []string, group, code, category string) {
	t.Helper()
	ctx := context.Background()
	rawKey := CanonicalKey(raw)
	preferredKey := CanonicalKey(preferred)
	for _, err := range []error{
		store.SavePreferred(ctx, rawKey, preferredKey),
		store.SaveGroup(ctx, preferredKey, group),
		store.SaveCode(ctx, group, code),
		store.SaveCategory(ctx, code, category),
	} {
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
}

// cannedPrompter answers prompts from a fixed per-stage table.
type cannedPrompter struct {
	answers map[Stage]Resolution
	prompts []Stage
}

func (p *cannedPrompter) Pick(_ context.Context, stage Stage, _ string, _ []string) (Resolution, error) {
	p.prompts = append(p.prompts, stage)
	answer, ok := p.answers[stage]
	if !ok {
		return Resolution{}, ErrDeclined
	}
	return answer, nil
}

func TestCanonicalKeyOrderIndependent(t *testing.T) {
	a := CanonicalKey([]string{"Fandom B", "Fandom A"})
	b := CanonicalKey([]string{"Fandom A", "Fandom B"})
	if a != b {
		t.Errorf("keys differ: %q vs %q", a, b)
	}
	if a != "Fandom A, Fandom B" {
		t.Errorf("key = %q", a)
	}
	if got := CanonicalKey([]string{" Fandom A ", ""}); got != "Fandom A" {
		t.Errorf("key = %q, want trimmed single tag", got)
	}
}

func TestSplitKeyRoundTrip(t *testing.T) {
	tags := []string{"Fandom A", "Fandom B"}
	if got := SplitKey(CanonicalKey(tags)); len(got) != 2 || got[0] != "Fandom A" || got[1] != "Fandom B" {
		t.Errorf("SplitKey = %v", got)
	}
	if got := SplitKey(""); got != nil {
		t.Errorf("SplitKey(\"\") = %v", got)
	}
}

func TestResolveFromSeededStore(t *testing.T) {
	store := openTestStore(t)
	seedChain(t, store,
		[]string{"Some Show (TV 2019)", "Some Show - Fandom"},
		[]string{"Some Show (TV)"},
		"Some Show (TV)", "someshow", "TV")

	resolver := NewResolver(store, nil, logging.Discard())

	// Permutations of the raw set resolve identically.
	for _, raw := range [][]string{
		{"Some Show (TV 2019)", "Some Show - Fandom"},
		{"Some Show - Fandom", "Some Show (TV 2019)"},
	} {
		tags, err := resolver.Resolve(context.Background(), raw)
		if err != nil {
			t.Fatalf("Resolve(%v): %v", raw, err)
		}
		if len(tags.Preferred) != 1 || tags.Preferred[0] != "Some Show (TV)" {
			t.Errorf("Preferred = %v", tags.Preferred)
		}
		if tags.Group != "Some Show (TV)" || tags.Code != "someshow" || tags.Category != "TV" {
			t.Errorf("tags = %+v", tags)
		}
	}
}

func TestResolveBackfillsAndSaves(t *testing.T) {
	store := openTestStore(t)
	prompter := &cannedPrompter{answers: map[Stage]Resolution{
		StagePreferred: {Value: "Fandom A (Preferred)", Save: true},
		StageGroup:     {Value: "Fandom A", Save: true},
		StageCode:      {Value: "fda", Save: true},
		StageCategory:  {Value: "Books", Save: true},
	}}
	resolver := NewResolver(store, prompter, logging.Discard())

	tags, err := resolver.Resolve(context.Background(), []string{"fandom a - freeform"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if tags.Category != "Books" || tags.Code != "fda" {
		t.Errorf("tags = %+v", tags)
	}
	if len(prompter.prompts) != 4 {
		t.Errorf("prompts = %v, want all four stages", prompter.prompts)
	}

	// Second run resolves from the store alone.
	silent := NewResolver(store, nil, logging.Discard())
	again, err := silent.Resolve(context.Background(), []string{"fandom a - freeform"})
	if err != nil {
		t.Fatalf("Resolve after save: %v", err)
	}
	if again.Group != "Fandom A" || again.Code != "fda" || again.Category != "Books" {
		t.Errorf("tags after save = %+v", again)
	}
}

func TestResolveWithoutSavingDoesNotPersist(t *testing.T) {
	store := openTestStore(t)
	seedChain(t, store, []string{"Raw"}, []string{"Preferred"}, "Group", "code", "Category")

	prompter := &cannedPrompter{answers: map[Stage]Resolution{
		StagePreferred: {Value: "Preferred", Save: false},
	}}
	resolver := NewResolver(store, prompter, logging.Discard())

	if _, err := resolver.Resolve(context.Background(), []string{"Other Raw"}); err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if _, found, err := store.PreferredFor(context.Background(), "Other Raw"); err != nil {
		t.Fatalf("PreferredFor: %v", err)
	} else if found {
		t.Error("unsaved answer was persisted")
	}
}

func TestResolveDeclineAborts(t *testing.T) {
	store := openTestStore(t)
	resolver := NewResolver(store, &cannedPrompter{}, logging.Discard())

	_, err := resolver.Resolve(context.Background(), []string{"Unknown Fandom"})
	if !errors.Is(err, ErrDeclined) {
		t.Fatalf("err = %v, want ErrDeclined", err)
	}
}

func TestResolveOffersExistingCategories(t *testing.T) {
	store := openTestStore(t)
	seedChain(t, store, []string{"A"}, []string{"A"}, "A", "a", "TV")

	var categoryOptions []string
	prompter := promptFunc(func(_ context.Context, stage Stage, _ string, options []string) (Resolution, error) {
		if stage == StageCategory {
			categoryOptions = options
		}
		switch stage {
		case StagePreferred:
			return Resolution{Value: "B"}, nil
		case StageGroup:
			return Resolution{Value: "B"}, nil
		case StageCode:
			return Resolution{Value: "b"}, nil
		default:
			return Resolution{Value: "TV"}, nil
		}
	})
	resolver := NewResolver(store, prompter, logging.Discard())

	if _, err := resolver.Resolve(context.Background(), []string{"B"}); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(categoryOptions) != 1 || categoryOptions[0] != "TV" {
		t.Errorf("category options = %v, want the existing category", categoryOptions)
	}
}

type promptFunc func(context.Context, Stage, string, []string) (Resolution, error)

func (f promptFunc) Pick(ctx context.Context, stage Stage, key string, options []string) (Resolution, error) {
	return f(ctx, stage, key, options)
}
