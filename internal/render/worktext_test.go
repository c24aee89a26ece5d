package render

import (
	"strings"
	"testing"

	"podpost/internal/metadata"
	"podpost/internal/testsupport"
)

func TestSummaryAugmentationIsIdempotent(t *testing.T) {
	rec := testsupport.DraftableRecord(t)

	first := Summary(rec)
	if !strings.Contains(first, "0:12:34") {
		t.Errorf("summary misses the audio length:\n%s", first)
	}
	if !strings.Contains(first, `Written by <a href="https://example.test/users/writer">writer</a>.`) {
		t.Errorf("summary misses the writer credit:\n%s", first)
	}

	// Store the augmented summary back, as the draft pipeline does, and
	// render again. Nothing doubles up.
	testsupport.SetFields(t, rec, map[string]metadata.Value{
		metadata.FieldSummary: metadata.Scalar(first),
	})
	second := Summary(rec)
	if second != first {
		t.Errorf("second render changed the summary:\nfirst:\n%s\nsecond:\n%s", first, second)
	}
	if strings.Count(second, "0:12:34") != 1 {
		t.Errorf("audio length appended twice:\n%s", second)
	}
	if strings.Count(second, "Written by") != 1 {
		t.Errorf("writer credit appended twice:\n%s", second)
	}
}

func TestSummarySkipsPlaceholderLength(t *testing.T) {
	rec := testsupport.DraftableRecord(t)
	testsupport.SetFields(t, rec, map[string]metadata.Value{
		metadata.FieldAudioLength: metadata.Scalar("__HH:MM:SS"),
	})
	if got := Summary(rec); strings.Contains(got, "__HH:MM:SS") {
		t.Errorf("placeholder length leaked into the summary:\n%s", got)
	}
}

func TestWorkTextFilesAndFeedback(t *testing.T) {
	rec := testsupport.DraftableRecord(t)
	contact := metadata.Link{URL: "https://example.test/users/testpods", Name: "testpods"}

	doc := WorkText(rec, contact)
	for _, want := range []string{
		`<img src="https://example.test/ia/cover.png" width="250" alt="cover art" />`,
		"<h3>Podfic files:</h3>",
		`<a href="https://example.test/ia/item">Internet archive</a>`,
		`<a href="https://example.test/drive/folder">Google drive</a>`,
		`<audio src="https://example.test/ia/stream.mp3"></audio>`,
		"<h3>Feedback:</h3>",
		`<a href="https://example.test/users/testpods">testpods</a>`,
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("work text misses %q:\n%s", want, doc)
		}
	}
	if !strings.Contains(doc, "\n\n<p>&nbsp;</p>\n\n") {
		t.Errorf("sections are not separated by spacer paragraphs:\n%s", doc)
	}
}

func TestWorkTextOmitsPlaceholderFiles(t *testing.T) {
	rec := testsupport.DraftableRecord(t)
	testsupport.SetFields(t, rec, map[string]metadata.Value{
		metadata.FieldIALink:           metadata.Scalar("__URL"),
		metadata.FieldGDriveLink:       metadata.Scalar("__URL"),
		metadata.FieldIAStreamingLinks: metadata.List("__URL"),
	})

	doc := WorkText(rec, metadata.Link{})
	if strings.Contains(doc, "Podfic files") {
		t.Errorf("empty files section rendered:\n%s", doc)
	}
	if strings.Contains(doc, "Feedback") {
		t.Errorf("feedback section rendered without a contact:\n%s", doc)
	}
}

func TestWorkTextCoverFallback(t *testing.T) {
	rec := testsupport.DraftableRecord(t)
	testsupport.SetFields(t, rec, map[string]metadata.Value{
		metadata.FieldIACoverLink: metadata.Scalar("__URL"),
		metadata.FieldCoverArtist: metadata.Pairs(
			metadata.Link{URL: "https://example.test/users/artist", Name: "artist"},
		),
	})

	doc := WorkText(rec, metadata.Link{})
	if !strings.Contains(doc, `<img src="COVER" width="250" alt="cover art welcome" />`) {
		t.Errorf("missing cover stand-in:\n%s", doc)
	}
	if !strings.Contains(doc, `Cover art by <a href="https://example.test/users/artist">artist</a>`) {
		t.Errorf("missing artist credit:\n%s", doc)
	}
}

func TestWorkTextThanksWording(t *testing.T) {
	rec := testsupport.DraftableRecord(t)

	doc := WorkText(rec, metadata.Link{})
	if !strings.Contains(doc, "for giving me permission to record this work!") {
		t.Errorf("missing explicit-permission thanks:\n%s", doc)
	}

	testsupport.SetFields(t, rec, map[string]metadata.Value{
		metadata.FieldBlanketPermission: metadata.Scalar("yes"),
	})
	doc = WorkText(rec, metadata.Link{})
	if !strings.Contains(doc, "for giving blanket permission to podfics!") {
		t.Errorf("missing blanket-permission thanks:\n%s", doc)
	}
}

func TestWorkTextStickersCredit(t *testing.T) {
	rec := testsupport.DraftableRecord(t)

	doc := WorkText(rec, metadata.Link{})
	if strings.Contains(doc, "lemon rating stickers") {
		t.Errorf("sticker credit rendered without the flag:\n%s", doc)
	}

	testsupport.SetFields(t, rec, map[string]metadata.Value{
		metadata.FieldStickers: metadata.Scalar("yes"),
	})
	doc = WorkText(rec, metadata.Link{})
	if !strings.Contains(doc, ">lemon rating stickers</a></li>") {
		t.Errorf("sticker credit missing:\n%s", doc)
	}
}
