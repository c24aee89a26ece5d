package render

import (
	"strings"
	"testing"

	"podpost/internal/metadata"
	"podpost/internal/testsupport"
)

func TestPostingKeyShapes(t *testing.T) {
	rec := testsupport.DraftableRecord(t)
	testsupport.SetFields(t, rec, map[string]metadata.Value{
		metadata.FieldArchiveWarnings: metadata.List("Major Character Death", "Underage"),
		metadata.FieldFandoms:         metadata.List("Fandom A", "Fandom B"),
	})

	payload := Posting(rec)

	// Checkbox field: repeated entries under one key.
	warnings := payload["work[archive_warning_strings][]"]
	if len(warnings) != 2 || warnings[0] != "Major Character Death" || warnings[1] != "Underage" {
		t.Errorf("warnings = %v", warnings)
	}

	// Joined field: a single comma-separated entry.
	fandoms := payload["work[fandom_string]"]
	if len(fandoms) != 1 || fandoms[0] != "Fandom A,Fandom B" {
		t.Errorf("fandoms = %v", fandoms)
	}
}

func TestPostingTakesFirstParentLink(t *testing.T) {
	rec := testsupport.DraftableRecord(t)
	testsupport.SetFields(t, rec, map[string]metadata.Value{
		metadata.FieldParentWorkURL: metadata.List(
			"https://example.test/works/1", "https://example.test/works/2"),
	})

	payload := Posting(rec)
	urls := payload["work[parent_work_relationships_attributes][0][url]"]
	if len(urls) != 1 || urls[0] != "https://example.test/works/1" {
		t.Errorf("parent urls = %v", urls)
	}
}

func TestPostingSkipsPlaceholderPeople(t *testing.T) {
	rec := testsupport.DraftableRecord(t)
	testsupport.SetFields(t, rec, map[string]metadata.Value{
		metadata.FieldCreators: metadata.Pairs(
			metadata.Link{URL: "https://example.test/u/me", Name: "me"},
		),
		metadata.FieldCoCreators: metadata.Pairs(
			metadata.Link{URL: "https://example.test/u/friend", Name: "friend"},
			metadata.Link{URL: "__URL", Name: "__PSEUD"},
		),
	})

	payload := Posting(rec)
	if got := payload["work[author_attributes][byline]"]; len(got) != 1 || got[0] != "me" {
		t.Errorf("author byline = %v", got)
	}
	if got := payload["pseud[byline]"]; len(got) != 1 || got[0] != "friend" {
		t.Errorf("pseud byline = %v", got)
	}
}

func TestPostingRendersMarkdownNotes(t *testing.T) {
	rec := testsupport.DraftableRecord(t)
	testsupport.SetFields(t, rec, map[string]metadata.Value{
		metadata.FieldFrontNotes: metadata.Scalar("Recorded for *someone*."),
	})

	payload := Posting(rec)
	notes := payload["work[notes]"]
	if len(notes) != 1 || !strings.Contains(notes[0], "<em>someone</em>") {
		t.Errorf("notes = %v", notes)
	}
}

func TestPostingRestrictsRealPersonWorks(t *testing.T) {
	rec := testsupport.DraftableRecord(t)
	if _, ok := Posting(rec)["work[restricted]"]; ok {
		t.Error("non-RPF work is restricted")
	}

	testsupport.SetFields(t, rec, map[string]metadata.Value{
		metadata.FieldMediaCategory: metadata.Scalar("RPF"),
	})
	if got := Posting(rec)["work[restricted]"]; len(got) != 1 || got[0] != "1" {
		t.Errorf("restricted = %v", got)
	}
}
