package metadata

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testSeed() Seed {
	return Seed{
		Creator:      Link{URL: "https://example.test/users/testpods", Name: "testpods"},
		WorkType:     "podfic",
		ContentNotes: "none",
		Language:     "English",
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "metadata.yaml"), testSeed())
}

func TestFreshRecordHoldsEveryField(t *testing.T) {
	rec := newTestStore(t)
	for _, field := range Fields() {
		value := rec.Get(field)
		if value.Kind() == KindScalar && value.Scalar() == "" {
			switch field {
			case FieldFrontNotes, FieldEndNotes, FieldTrackerNotes:
				continue
			}
			t.Errorf("field %q is empty in a fresh record", field)
		}
	}
	// The creator and language come from the seed, not a placeholder.
	if got := rec.Get(FieldLanguage).Scalar(); got != "English" {
		t.Errorf("Language = %q", got)
	}
	if pairs := rec.Get(FieldCreators).Pairs(); len(pairs) != 1 || pairs[0].Name != "testpods" {
		t.Errorf("Creators = %v", pairs)
	}
}

func TestFreshRecordPlaceholders(t *testing.T) {
	rec := newTestStore(t)
	for _, field := range []string{
		FieldWorkTitle, FieldSummary, FieldRating, FieldMediaCategory,
		FieldAudioLength, FieldIALink, FieldIAStreamingLinks, FieldGDriveLink,
		FieldPodficLink, FieldPostingDate, FieldCredits, FieldCoCreators,
	} {
		if !rec.Get(field).IsPlaceholder() {
			t.Errorf("field %q should start as a placeholder", field)
		}
	}
	if rec.Get(FieldLanguage).IsPlaceholder() {
		t.Error("Language should come resolved from the seed")
	}
}

func TestRoundTrip(t *testing.T) {
	rec := newTestStore(t)
	mustSet(t, rec, FieldWorkTitle, Scalar("A Title: with punctuation"))
	mustSet(t, rec, FieldFandoms, List("Fandom A", "Fandom B"))
	mustSet(t, rec, FieldWriter, Pairs(
		Link{URL: "https://example.test/users/w1", Name: "w1"},
		Link{URL: "https://example.test/users/w2", Name: "w2"},
	))
	mustSet(t, rec, FieldSummary, Scalar("Line one.\n\nLine two."))

	first, err := os.ReadFile(rec.Path())
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	loaded, err := Load(rec.Path(), testSeed())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := loaded.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	second, err := os.ReadFile(rec.Path())
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if string(first) != string(second) {
		t.Errorf("round trip changed the file:\n--- first\n%s\n--- second\n%s", first, second)
	}

	for _, field := range Fields() {
		if !rec.Get(field).Equal(loaded.Get(field)) {
			t.Errorf("field %q differs after round trip", field)
		}
	}
}

func TestLoadPreservesFileShape(t *testing.T) {
	rec := newTestStore(t)
	if err := rec.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(rec.Path())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	// Hand-edit the rating into a single-element list.
	edited := strings.Replace(string(data), "Rating: __RATING", "Rating:\n    - Explicit", 1)
	if edited == string(data) {
		t.Fatalf("fixture edit did not apply:\n%s", data)
	}
	if err := os.WriteFile(rec.Path(), []byte(edited), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	loaded, err := Load(rec.Path(), testSeed())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	value := loaded.Get(FieldRating)
	if value.Kind() != KindList || value.Len() != 1 || value.List()[0] != "Explicit" {
		t.Errorf("Rating = %+v, want the single-element list from the file", value)
	}
}

func TestLoadRejectsUnknownField(t *testing.T) {
	rec := newTestStore(t)
	if err := rec.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	f, err := os.OpenFile(rec.Path(), os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := f.WriteString("Ratings: typo\n"); err != nil {
		t.Fatalf("append: %v", err)
	}
	f.Close()

	if _, err := Load(rec.Path(), testSeed()); err == nil ||
		!strings.Contains(err.Error(), "unknown field") {
		t.Fatalf("Load error = %v, want unknown field", err)
	}
}

func TestSetRejectsUnknownField(t *testing.T) {
	rec := newTestStore(t)
	if err := rec.Set("No Such Field", Scalar("x")); err == nil {
		t.Fatal("Set accepted an unknown field")
	}
}

func TestSetPersistsImmediately(t *testing.T) {
	rec := newTestStore(t)
	mustSet(t, rec, FieldWorkTitle, Scalar("Persisted"))

	loaded, err := Load(rec.Path(), testSeed())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := loaded.Get(FieldWorkTitle).Scalar(); got != "Persisted" {
		t.Errorf("WorkTitle = %q after reload", got)
	}
}

func mustSet(t *testing.T, rec *Store, field string, value Value) {
	t.Helper()
	if err := rec.Set(field, value); err != nil {
		t.Fatalf("Set(%q): %v", field, err)
	}
}
