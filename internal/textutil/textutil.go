// Package textutil provides small text helpers shared across the pipeline:
// filesystem-safe titles, abbreviation building, and label casing.
package textutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.Und)

// TitleCase returns value with every word title-cased.
func TitleCase(value string) string {
	return titleCaser.String(value)
}

// SafeTitle rewrites a work title so it can be used as a file or directory
// name. Dots would read as extensions and slashes as separators, so they
// become commas and spaces, matching the naming already used for audio files.
func SafeTitle(title string) string {
	title = strings.TrimSpace(title)
	title = strings.ReplaceAll(title, ".", ",")
	title = strings.ReplaceAll(title, "/", " ")
	return strings.TrimSpace(title)
}

// Abbreviate builds a short tag from the initials of the title's words.
// "never be such thankless work" becomes "nbstw".
func Abbreviate(title string) string {
	title = strings.ToLower(title)
	var b strings.Builder
	for _, word := range strings.Fields(title) {
		for _, r := range word {
			if isAlnum(r) {
				b.WriteRune(r)
				break
			}
		}
	}
	return b.String()
}

func isAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}
