package testsupport

import (
	"context"
	"testing"

	"podpost/internal/config"
	"podpost/internal/metadata"
	"podpost/internal/taxonomy"
)

// MustOpenTaxonomy opens a taxonomy.Store for tests and registers cleanup.
func MustOpenTaxonomy(t testing.TB, cfg *config.Config) *taxonomy.Store {
	t.Helper()

	store, err := taxonomy.Open(cfg.Paths.TaxonomyDB)
	if err != nil {
		t.Fatalf("taxonomy.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// SeedTaxonomy records a complete mapping chain for one raw tag set.
func SeedTaxonomy(t testing.TB, store *taxonomy.Store, raw []string, preferred []string, group, code, category string) {
	t.Helper()

	ctx := context.Background()
	rawKey := taxonomy.CanonicalKey(raw)
	preferredKey := taxonomy.CanonicalKey(preferred)
	for _, err := range []error{
		store.SavePreferred(ctx, rawKey, preferredKey),
		store.SaveGroup(ctx, preferredKey, group),
		store.SaveCode(ctx, group, code),
		store.SaveCategory(ctx, code, category),
	} {
		if err != nil {
			t.Fatalf("seed taxonomy: %v", err)
		}
	}
}

// NewRecord creates a fresh metadata record in a temp directory.
func NewRecord(t testing.TB) *metadata.Store {
	t.Helper()

	return metadata.New(t.TempDir()+"/metadata.yaml", metadata.Seed{
		Creator:      metadata.Link{URL: "https://example.test/users/testpods", Name: "testpods"},
		WorkType:     "podfic",
		ContentNotes: "none",
		Language:     "English",
	})
}

// SetFields applies a batch of field updates, failing the test on the first
// rejected write.
func SetFields(t testing.TB, rec *metadata.Store, fields map[string]metadata.Value) {
	t.Helper()

	for field, value := range fields {
		if err := rec.Set(field, value); err != nil {
			t.Fatalf("set %q: %v", field, err)
		}
	}
}

// DraftableRecord returns a record filled in far enough to pass the draft
// gate.
func DraftableRecord(t testing.TB) *metadata.Store {
	t.Helper()

	rec := NewRecord(t)
	SetFields(t, rec, map[string]metadata.Value{
		metadata.FieldWorkTitle:        metadata.Scalar("A Test Work"),
		metadata.FieldParentWorkURL:    metadata.List("https://example.test/works/1"),
		metadata.FieldParentWorkTitle:  metadata.List("A Test Work"),
		metadata.FieldWriter:           metadata.Pairs(metadata.Link{URL: "https://example.test/users/writer", Name: "writer"}),
		metadata.FieldSummary:          metadata.Scalar("A summary."),
		metadata.FieldWordcount:        metadata.Scalar("1234"),
		metadata.FieldRating:           metadata.Scalar("General Audiences"),
		metadata.FieldArchiveWarnings:  metadata.List("No Archive Warnings Apply"),
		metadata.FieldCategories:       metadata.List("Gen"),
		metadata.FieldFandoms:          metadata.List("Testing (Fandom)"),
		metadata.FieldMediaCategory:    metadata.Scalar("podcast"),
		metadata.FieldAudioLength:      metadata.Scalar("0:12:34"),
		metadata.FieldIALink:           metadata.Scalar("https://example.test/ia/item"),
		metadata.FieldIACoverLink:      metadata.Scalar("https://example.test/ia/cover.png"),
		metadata.FieldIAStreamingLinks: metadata.List("https://example.test/ia/stream.mp3"),
		metadata.FieldGDriveLink:       metadata.Scalar("https://example.test/drive/folder"),
		metadata.FieldCredits:          metadata.Pairs(),
		metadata.FieldCoCreators:       metadata.Pairs(),
	})
	return rec
}

// CannedPrompter answers taxonomy prompts from a fixed per-stage table and
// records every prompt it sees.
type CannedPrompter struct {
	Answers map[taxonomy.Stage]taxonomy.Resolution
	Prompts []taxonomy.Stage
}

// Pick implements taxonomy.Prompter.
func (p *CannedPrompter) Pick(_ context.Context, stage taxonomy.Stage, _ string, _ []string) (taxonomy.Resolution, error) {
	p.Prompts = append(p.Prompts, stage)
	answer, ok := p.Answers[stage]
	if !ok {
		return taxonomy.Resolution{}, taxonomy.ErrDeclined
	}
	return answer, nil
}
