package render

import (
	"strings"

	"podpost/internal/metadata"
)

// Payload is a posting form body. Keys use the archive's nested bracket
// notation; most carry a single entry, checkbox-style fields repeat the
// same key once per value.
type Payload map[string][]string

func (p Payload) add(key string, values ...string) {
	p[key] = append(p[key], values...)
}

// Posting renders the archive form body for a record that has passed the
// draft gate. The key names mirror the archive's new-work form and must be
// kept literally in sync with it.
func Posting(rec *metadata.Store) Payload {
	payload := Payload{}

	for field, key := range map[string]string{
		metadata.FieldWorkTitle: "work[title]",
		metadata.FieldRating:    "work[rating_string]",
		metadata.FieldSummary:   "work[summary]",
		metadata.FieldWorkText:  "work[chapter_attributes][content]",
		metadata.FieldLanguage:  "work[language_id]",
	} {
		payload.add(key, rec.Get(field).Scalar())
	}

	// Operator notes are written in markdown; the archive wants HTML.
	payload.add("work[notes]", markdownHTML(rec.Get(metadata.FieldFrontNotes).Scalar()))
	payload.add("work[endnotes]", markdownHTML(rec.Get(metadata.FieldEndNotes).Scalar()))

	for field, key := range map[string]string{
		metadata.FieldFandoms:        "work[fandom_string]",
		metadata.FieldCategories:     "work[category_string]",
		metadata.FieldRelationships:  "work[relationship_string]",
		metadata.FieldCharacters:     "work[character_string]",
		metadata.FieldAdditionalTags: "work[freeform_string]",
	} {
		payload.add(key, strings.Join(rec.Get(field).List(), ","))
	}

	// Checkbox field: one entry per warning under the same key.
	for _, warning := range rec.Get(metadata.FieldArchiveWarnings).List() {
		payload.add("work[archive_warning_strings][]", warning)
	}

	payload.add("work[author_attributes][byline]",
		strings.Join(realNames(rec.Get(metadata.FieldCreators).Pairs()), ","))
	payload.add("pseud[byline]",
		strings.Join(realNames(rec.Get(metadata.FieldCoCreators).Pairs()), ","))

	// The form takes one parent work even when the record has several.
	for _, url := range rec.Get(metadata.FieldParentWorkURL).List() {
		if !metadata.IsPlaceholderValue(url) {
			payload.add("work[parent_work_relationships_attributes][0][url]", url)
			break
		}
	}

	// Real-person works go behind the archive lock.
	if strings.Contains(rec.Get(metadata.FieldMediaCategory).Scalar(), "RPF") {
		payload.add("work[restricted]", "1")
	}

	// Without this the archive nulls the translation column on remixes.
	payload.add("work[parent_attributes][translation]", "0")

	return payload
}
