package metadata

// Field names form a closed vocabulary; Store.Set rejects anything else.
const (
	FieldWorkTitle        = "Work Title"
	FieldParentWorkURL    = "Parent Work URL"
	FieldParentWorkTitle  = "Parent Work Title"
	FieldWriter           = "Writer"
	FieldSeries           = "Series"
	FieldSummary          = "Summary"
	FieldWordcount        = "Wordcount"
	FieldLanguage         = "Language"
	FieldRating           = "Rating"
	FieldArchiveWarnings  = "Archive Warnings"
	FieldCategories       = "Categories"
	FieldFandoms          = "Fandoms"
	FieldRelationships    = "Relationships"
	FieldCharacters       = "Characters"
	FieldAdditionalTags   = "Additional Tags"
	FieldMediaCategory    = "Media Category"
	FieldWorkType         = "Work Type"
	FieldWorkText         = "Work Text"
	FieldPodficLink       = "Podfic Link"
	FieldPostingDate      = "Posting Date"
	FieldCreators         = "Creator/Pseud(s)"
	FieldCoCreators       = "Add co-creators?"
	FieldCoverArtist      = "Cover Artist"
	FieldAudioLength      = "Audio Length"
	FieldIALink           = "IA Link"
	FieldIAStreamingLinks = "IA Streaming Links"
	FieldIACoverLink      = "IA Cover Link"
	FieldGDriveLink       = "GDrive Link"
	FieldFrontNotes       = "Notes at the beginning"
	FieldEndNotes         = "Notes at the end"
	FieldOccasion         = "Occasion"
	FieldContentNotes     = "Content Notes"
	FieldCredits          = "Credits"
	FieldBlanketPermission = "BP"
	FieldStickers         = "Stickers"
	FieldTrackerNotes     = "Tracker Notes"
)

// Seed carries the per-installation defaults baked into a fresh record.
type Seed struct {
	Creator      Link
	WorkType     string
	ContentNotes string
	Language     string
}

type fieldSpec struct {
	name string
	kind Kind
}

// fieldOrder fixes the vocabulary and the serialization order of the record.
var fieldOrder = []fieldSpec{
	{FieldWorkTitle, KindScalar},
	{FieldParentWorkURL, KindList},
	{FieldParentWorkTitle, KindList},
	{FieldWriter, KindPairs},
	{FieldSeries, KindList},
	{FieldSummary, KindScalar},
	{FieldWordcount, KindScalar},
	{FieldLanguage, KindScalar},
	{FieldRating, KindScalar},
	{FieldArchiveWarnings, KindList},
	{FieldCategories, KindList},
	{FieldFandoms, KindList},
	{FieldRelationships, KindList},
	{FieldCharacters, KindList},
	{FieldAdditionalTags, KindList},
	{FieldMediaCategory, KindScalar},
	{FieldWorkType, KindScalar},
	{FieldWorkText, KindScalar},
	{FieldPodficLink, KindScalar},
	{FieldPostingDate, KindScalar},
	{FieldCreators, KindPairs},
	{FieldCoCreators, KindPairs},
	{FieldCoverArtist, KindPairs},
	{FieldAudioLength, KindScalar},
	{FieldIALink, KindScalar},
	{FieldIAStreamingLinks, KindList},
	{FieldIACoverLink, KindScalar},
	{FieldGDriveLink, KindScalar},
	{FieldFrontNotes, KindScalar},
	{FieldEndNotes, KindScalar},
	{FieldOccasion, KindScalar},
	{FieldContentNotes, KindScalar},
	{FieldCredits, KindPairs},
	{FieldBlanketPermission, KindScalar},
	{FieldStickers, KindScalar},
	{FieldTrackerNotes, KindScalar},
}

// defaults returns the full default-value table for a fresh record. Every
// vocabulary field is present; unresolved fields hold their placeholder.
func defaults(seed Seed) map[string]Value {
	creator := seed.Creator
	if creator == (Link{}) {
		creator = Link{URL: "__URL", Name: "__NAME"}
	}
	workType := seed.WorkType
	if workType == "" {
		workType = "podfic"
	}
	language := seed.Language
	if language == "" {
		language = "English"
	}

	return map[string]Value{
		FieldWorkTitle:        Scalar("__WORK_TITLE"),
		FieldParentWorkURL:    List("__URL"),
		FieldParentWorkTitle:  List("__TITLE"),
		FieldWriter:           Pairs(Link{URL: "__URL", Name: "__NAME"}),
		FieldSeries:           List(),
		FieldSummary:          Scalar("__SUMMARY"),
		FieldWordcount:        Scalar("__WORDCOUNT"),
		FieldLanguage:         Scalar(language),
		FieldRating:           Scalar("__RATING"),
		FieldArchiveWarnings:  List(),
		FieldCategories:       List(),
		FieldFandoms:          List(),
		FieldRelationships:    List(),
		FieldCharacters:       List(),
		FieldAdditionalTags:   List(),
		FieldMediaCategory:    Scalar("__MEDIA_CATEGORY"),
		FieldWorkType:         Scalar(workType),
		FieldWorkText:         Scalar("__WORK_TEXT"),
		FieldPodficLink:       Scalar("__PODFIC_LINK"),
		FieldPostingDate:      Scalar("__POSTING_DATE"),
		FieldCreators:         Pairs(creator),
		FieldCoCreators:       Pairs(Link{URL: "__URL", Name: "__PSEUD"}),
		FieldCoverArtist:      Pairs(),
		FieldAudioLength:      Scalar("__AUDIO_LENGTH"),
		FieldIALink:           Scalar("__URL"),
		FieldIAStreamingLinks: List("__URL1", "__URL2"),
		FieldIACoverLink:      Scalar("__URL"),
		FieldGDriveLink:       Scalar("__URL"),
		FieldFrontNotes:       Scalar(""),
		FieldEndNotes:         Scalar(""),
		FieldOccasion:         Scalar("none"),
		FieldContentNotes:     Scalar(seed.ContentNotes),
		FieldCredits:          Pairs(Link{URL: "__URL", Name: "__TEXT"}),
		FieldBlanketPermission: Scalar("false"),
		FieldStickers:         Scalar("false"),
		FieldTrackerNotes:     Scalar(""),
	}
}

// Fields returns the field vocabulary in serialization order.
func Fields() []string {
	names := make([]string, len(fieldOrder))
	for i, spec := range fieldOrder {
		names[i] = spec.name
	}
	return names
}

// IsField reports whether name belongs to the record vocabulary.
func IsField(name string) bool {
	for _, spec := range fieldOrder {
		if spec.name == name {
			return true
		}
	}
	return false
}
