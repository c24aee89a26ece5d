package render

import (
	"strings"

	"podpost/internal/metadata"
)

// Labels holds the announcement's human-readable label strings so installs
// can translate or restyle them without touching the renderer.
type Labels struct {
	ParentWorks  string
	Writers      string
	Readers      string
	Occasion     string
	Fandoms      string
	Pairings     string
	Characters   string
	Tags         string
	Rating       string
	ContentNotes string
	Credits      string
	Length       string
	Summary      string
	PodficLinks  string

	// Display names for the publish-link list.
	ArchiveName   string
	IAName        string
	GDriveName    string
}

// DefaultLabels returns the stock English labels.
func DefaultLabels() Labels {
	return Labels{
		ParentWorks:  "Parent works",
		Writers:      "Writers",
		Readers:      "Readers",
		Occasion:     "Occasion",
		Fandoms:      "Fandoms",
		Pairings:     "Pairings",
		Characters:   "Characters",
		Tags:         "Tags",
		Rating:       "Rating",
		ContentNotes: "Content notes",
		Credits:      "Additional credits",
		Length:       "Length (including endnotes)",
		Summary:      "Summary",
		PodficLinks:  "Link to podfic",
		ArchiveName:  "ao3",
		IAName:       "internet archive",
		GDriveName:   "gdrive",
	}
}

// Announcement renders the promotion document for a record that has passed
// the posted gate. Every sub-block is omitted entirely when its content is
// empty or still a placeholder.
func Announcement(rec *metadata.Store, labels Labels) string {
	var blocks []string

	if cover := rec.Get(metadata.FieldIACoverLink).Scalar(); cover != "" &&
		!metadata.IsPlaceholderValue(cover) {
		blocks = append(blocks,
			`<div style="text-align: center;">`+img(cover, 200, 200)+`</div>`)
	}

	var lines []string
	addLine := func(label, value string) {
		if value != "" {
			lines = append(lines, "<strong>"+label+":</strong> "+value)
		}
	}

	addLine(labels.ParentWorks, enumerateLinks(realLinks(parentLinks(rec))))
	addLine(labels.Writers, enumerateLinks(realLinks(rec.Get(metadata.FieldWriter).Pairs())))
	addLine(labels.Readers, enumerateLinks(realLinks(rec.Get(metadata.FieldCreators).Pairs())))
	if occasion := rec.Get(metadata.FieldOccasion).Scalar(); occasion != "none" && occasion != "n/a" {
		addLine(labels.Occasion, occasion)
	}
	addLine(labels.Fandoms, strings.Join(rec.Get(metadata.FieldFandoms).List(), ", "))
	addLine(labels.Pairings, strings.Join(rec.Get(metadata.FieldRelationships).List(), ", "))
	addLine(labels.Characters, strings.Join(rec.Get(metadata.FieldCharacters).List(), ", "))
	addLine(labels.Tags, strings.Join(rec.Get(metadata.FieldAdditionalTags).List(), ", "))
	addLine(labels.Rating, rec.Get(metadata.FieldRating).Scalar())
	addLine(labels.ContentNotes, rec.Get(metadata.FieldContentNotes).Scalar())
	addLine(labels.Credits, enumerateLinks(realLinks(rec.Get(metadata.FieldCredits).Pairs())))
	addLine(labels.Length, scalarOrEmpty(rec, metadata.FieldAudioLength))
	addLine(labels.Summary, rec.Get(metadata.FieldSummary).Scalar())

	if len(lines) > 0 {
		blocks = append(blocks, "<p>"+strings.Join(lines, "<br>\n")+"</p>")
	}

	publishLinks := realLinks([]metadata.Link{
		{URL: rec.Get(metadata.FieldPodficLink).Scalar(), Name: labels.ArchiveName},
		{URL: rec.Get(metadata.FieldIALink).Scalar(), Name: labels.IAName},
		{URL: rec.Get(metadata.FieldGDriveLink).Scalar(), Name: labels.GDriveName},
	})
	if len(publishLinks) > 0 {
		blocks = append(blocks,
			"<p><strong>"+labels.PodficLinks+":</strong> "+enumerateLinks(publishLinks)+"</p>")
	}

	return strings.Join(blocks, "\n\n")
}

// parentLinks zips the parent URL and title lists into link pairs. A missing
// title falls back to the URL so the anchor still reads.
func parentLinks(rec *metadata.Store) []metadata.Link {
	urls := rec.Get(metadata.FieldParentWorkURL).List()
	titles := rec.Get(metadata.FieldParentWorkTitle).List()
	links := make([]metadata.Link, len(urls))
	for i, url := range urls {
		name := url
		if i < len(titles) {
			name = titles[i]
		}
		links[i] = metadata.Link{URL: url, Name: name}
	}
	return links
}

func scalarOrEmpty(rec *metadata.Store, field string) string {
	value := rec.Get(field)
	if value.IsPlaceholder() {
		return ""
	}
	return value.Scalar()
}
