package render

import (
	"strings"

	"podpost/internal/metadata"
)

const writtenByMarker = " :: Written by "

// stickersCredit is the shared sticker pack credited whenever the record's
// sticker flag is set.
var stickersCredit = metadata.Link{
	URL:  "https://www.dropbox.com/sh/m594efbyu3kjrse/AACKZKGpiS0UqQZIdTXFSKoSa?dl=0",
	Name: "lemon rating stickers",
}

// Summary augments the record's summary with the audio length and a writer
// credit line. Both additions are skipped when already present, so the
// augmentation is idempotent.
func Summary(rec *metadata.Store) string {
	summary := rec.Get(metadata.FieldSummary).Scalar()

	if length := rec.Get(metadata.FieldAudioLength); !length.IsPlaceholder() {
		if s := length.Scalar(); s != "" && !strings.Contains(summary, s) {
			summary += "\n\n" + s
		}
	}

	writers := realLinks(rec.Get(metadata.FieldWriter).Pairs())
	if len(writers) > 0 && !strings.Contains(summary, writtenByMarker) {
		summary += writtenByMarker + enumerateLinks(writers) + "."
	}
	return summary
}

// WorkText renders the archive post body: cover art, the podfic file
// sections, and the notes block. contact, when non-zero, adds a feedback
// section pointing readers at the creator.
func WorkText(rec *metadata.Store, contact metadata.Link) string {
	sections := []string{
		coverSection(rec),
		filesSection(rec),
		notesSection(rec),
		feedbackSection(contact),
	}

	var parts []string
	for _, section := range sections {
		if section != "" {
			parts = append(parts, section)
		}
	}
	return strings.Join(parts, "\n\n<p>&nbsp;</p>\n\n")
}

func section(title string, parts ...string) string {
	var kept []string
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}
	if len(kept) == 0 {
		return ""
	}
	return "<h3>" + title + ":</h3>\n" + strings.Join(kept, "\n\n")
}

func subSection(title, content string) string {
	if content == "" {
		return ""
	}
	return "<p><strong>" + title + ":</strong><br>\n" + content + "</p>"
}

func coverSection(rec *metadata.Store) string {
	cover := rec.Get(metadata.FieldIACoverLink).Scalar()
	if metadata.IsPlaceholderValue(cover) {
		cover = ""
	}
	content := `<p align="center">` + img(cover, 250, 0)
	if artists := realLinks(rec.Get(metadata.FieldCoverArtist).Pairs()); len(artists) > 0 {
		content += "<br>\nCover art by " + enumerateLinks(artists)
	}
	return content + "</p>"
}

func filesSection(rec *metadata.Store) string {
	var ia, gdrive, streaming string

	if link := rec.Get(metadata.FieldIALink).Scalar(); !metadata.IsPlaceholderValue(link) {
		ia = subSection(anchor(metadata.Link{URL: link, Name: "Internet archive"}),
			"Mp3 and raw audio files for download and streaming, plus the html text "+
				"and the cover art if applicable.\n"+
				"<br>See the side of the page (“download options”) for the different "+
				"formats. The mp3 file will be under “VBR MP3”.")
	}
	if link := rec.Get(metadata.FieldGDriveLink).Scalar(); !metadata.IsPlaceholderValue(link) {
		gdrive = subSection(anchor(metadata.Link{URL: link, Name: "Google drive"}),
			"Mp3 file(s) streamable on gdrive.")
	}

	var players []string
	for _, link := range rec.Get(metadata.FieldIAStreamingLinks).List() {
		if !metadata.IsPlaceholderValue(link) {
			players = append(players, `<audio src="`+link+`"></audio>`)
		}
	}
	if len(players) > 0 {
		streaming = subSection("Browser streaming", strings.Join(players, "<br>\n"))
	}

	return section("Podfic files", ia, gdrive, streaming)
}

func notesSection(rec *metadata.Store) string {
	var context string
	if occasion := rec.Get(metadata.FieldOccasion).Scalar(); occasion != "none" && occasion != "n/a" {
		context = subSection("Context", "This was created for "+occasion+".")
	}

	var thanks string
	if writers := realLinks(rec.Get(metadata.FieldWriter).Pairs()); len(writers) > 0 {
		permission := "giving me permission to record this work!"
		if rec.Get(metadata.FieldBlanketPermission).Bool() {
			permission = "giving blanket permission to podfics!"
		}
		thanks = subSection("Thanks", "Thanks to "+enumerateLinks(writers)+" for "+permission)
	}

	credits := realLinks(rec.Get(metadata.FieldCredits).Pairs())
	if rec.Get(metadata.FieldStickers).Bool() {
		credits = append(credits, stickersCredit)
	}
	var creditBlock string
	if len(credits) > 0 {
		anchors := make([]string, len(credits))
		for i, credit := range credits {
			anchors[i] = anchor(credit)
		}
		creditBlock = subSection("Additional credits", listItems(anchors))
	}

	contentNotes := subSection("Content notes", rec.Get(metadata.FieldContentNotes).Scalar())

	return section("Notes", context, thanks, creditBlock, contentNotes)
}

func feedbackSection(contact metadata.Link) string {
	if contact == (metadata.Link{}) || contact.IsPlaceholder() {
		return ""
	}
	content := "I’d love to hear from you! Be it a single word or emoji, a long " +
		"freetalk on your thoughts and feelings, recs, meta, further transformative works, ...\n" +
		"<br>You can also reach me at " + anchor(contact) + "."
	return section("Feedback", subSection("Comments and contact", content))
}
