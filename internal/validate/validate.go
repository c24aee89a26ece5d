package validate

import (
	"fmt"
	"strings"

	"podpost/internal/metadata"
)

// Mode selects which gate variant runs.
type Mode int

const (
	// ModeDraft gates a record before the draft is created.
	ModeDraft Mode = iota
	// ModePosted gates a record after posting, before the announcement.
	ModePosted
)

// String returns the mode name used in logs and CLI output.
func (m Mode) String() string {
	if m == ModePosted {
		return "posted"
	}
	return "draft"
}

// PlaceholderError reports a field still holding its unresolved sentinel.
type PlaceholderError struct {
	Field string
}

func (e *PlaceholderError) Error() string {
	return fmt.Sprintf("field %q still holds its placeholder", e.Field)
}

// DomainError reports a value outside a field's closed vocabulary.
type DomainError struct {
	Field   string
	Value   string
	Allowed []string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("field %q holds %q, allowed values: %s",
		e.Field, e.Value, strings.Join(e.Allowed, ", "))
}

// ArityError reports a field holding too many or too few values.
type ArityError struct {
	Field string
	Count int
	Min   int
	Max   int
}

func (e *ArityError) Error() string {
	if e.Max > 0 && e.Count > e.Max {
		return fmt.Sprintf("field %q holds %d values, at most %d allowed", e.Field, e.Count, e.Max)
	}
	return fmt.Sprintf("field %q is empty, at least %d value required", e.Field, e.Min)
}

// Fields that must not hold more than one value.
var atMostOneFields = []string{
	metadata.FieldWorkTitle,
	metadata.FieldSummary,
	metadata.FieldRating,
	metadata.FieldIALink,
	metadata.FieldGDriveLink,
	metadata.FieldAudioLength,
}

// Fields that must be non-empty.
var atLeastOneFields = []string{
	metadata.FieldWorkTitle,
	metadata.FieldSummary,
	metadata.FieldRating,
	metadata.FieldParentWorkURL,
	metadata.FieldIALink,
	metadata.FieldIAStreamingLinks,
	metadata.FieldGDriveLink,
	metadata.FieldAudioLength,
	metadata.FieldArchiveWarnings,
	metadata.FieldFandoms,
}

// Fields that must have been filled in by draft time.
var notPlaceholderFields = []string{
	metadata.FieldAudioLength,
	metadata.FieldMediaCategory,
	metadata.FieldIALink,
	metadata.FieldIACoverLink,
	metadata.FieldIAStreamingLinks,
	metadata.FieldGDriveLink,
	metadata.FieldCredits,
	metadata.FieldCoCreators,
}

// Fields that must additionally be filled in once the work is posted.
var postedFields = []string{
	metadata.FieldPodficLink,
	metadata.FieldPostingDate,
}

// Closed vocabularies, kept in exact sync with the archive's posting form.
var (
	Ratings = []string{
		"Not Rated",
		"General Audiences",
		"Teen And Up Audiences",
		"Mature",
		"Explicit",
	}
	ArchiveWarnings = []string{
		"Choose Not To Use Archive Warnings",
		"Graphic Depictions Of Violence",
		"Major Character Death",
		"No Archive Warnings Apply",
		"Rape/Non-Con",
		"Underage",
	}
	Categories = []string{
		"F/F",
		"F/M",
		"Gen",
		"M/M",
		"Multi",
		"Other",
	}
)

// Check runs the gate over a record. Violations are accumulated and
// returned; a single-element list in a single-valued field is coerced to its
// scalar form in place rather than reported. The second return value carries
// operational failures (the record re-persisting during coercion), not
// validation results.
func Check(rec *metadata.Store, mode Mode) ([]error, error) {
	var violations []error

	for _, field := range atMostOneFields {
		value := rec.Get(field)
		if value.Kind() != metadata.KindList {
			continue
		}
		switch n := value.Len(); {
		case n > 1:
			violations = append(violations, &ArityError{Field: field, Count: n, Max: 1})
		case n == 1:
			if err := rec.Set(field, metadata.Scalar(value.List()[0])); err != nil {
				return violations, fmt.Errorf("coerce %q to scalar: %w", field, err)
			}
		}
	}

	for _, field := range atLeastOneFields {
		if rec.Get(field).Len() == 0 {
			violations = append(violations, &ArityError{Field: field, Min: 1})
		}
	}

	placeholderFields := notPlaceholderFields
	if mode == ModePosted {
		placeholderFields = append(append([]string(nil), notPlaceholderFields...), postedFields...)
	}
	for _, field := range placeholderFields {
		if rec.Get(field).IsPlaceholder() {
			violations = append(violations, &PlaceholderError{Field: field})
		}
	}

	if rating := rec.Get(metadata.FieldRating).Scalar(); rating != "" && !inDomain(rating, Ratings) {
		violations = append(violations, &DomainError{
			Field: metadata.FieldRating, Value: rating, Allowed: Ratings,
		})
	}
	for _, warning := range rec.Get(metadata.FieldArchiveWarnings).List() {
		if !inDomain(warning, ArchiveWarnings) {
			violations = append(violations, &DomainError{
				Field: metadata.FieldArchiveWarnings, Value: warning, Allowed: ArchiveWarnings,
			})
		}
	}
	for _, category := range rec.Get(metadata.FieldCategories).List() {
		if !inDomain(category, Categories) {
			violations = append(violations, &DomainError{
				Field: metadata.FieldCategories, Value: category, Allowed: Categories,
			})
		}
	}

	return violations, nil
}

func inDomain(value string, domain []string) bool {
	for _, allowed := range domain {
		if value == allowed {
			return true
		}
	}
	return false
}
