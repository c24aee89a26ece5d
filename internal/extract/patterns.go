package extract

import (
	"fmt"
	"regexp"
	"strings"
)

// patternSet bundles every structural pattern for one revision of the
// archive's download markup. Version-tagged so a site markup change means a
// new set rather than silent edits scattered across the extractor.
type patternSet struct {
	version string

	title   *regexp.Regexp
	byline  *regexp.Regexp
	author  *regexp.Regexp
	stats   *regexp.Regexp
	summary *regexp.Regexp
	source  *regexp.Regexp
	lang    *regexp.Regexp
	series  *regexp.Regexp

	tagAnchor *regexp.Regexp
	tagBlocks map[Category]*regexp.Regexp
}

// Category names one of the archive's tag groups.
type Category string

const (
	CategoryWarnings      Category = "Archive Warnings"
	CategoryRating        Category = "Rating"
	CategoryCategories    Category = "Categories"
	CategoryFandoms       Category = "Fandoms"
	CategoryRelationships Category = "Relationships"
	CategoryCharacters    Category = "Characters"
	CategoryFreeform      Category = "Additional Tags"
)

// tagLabels lists the singular/plural label spellings the archive has used
// for each category.
var tagLabels = map[Category][]string{
	CategoryWarnings:      {"Archive Warning", "Archive Warnings"},
	CategoryRating:        {"Rating"},
	CategoryCategories:    {"Category", "Categories"},
	CategoryFandoms:       {"Fandom", "Fandoms"},
	CategoryRelationships: {"Relationship", "Relationships"},
	CategoryCharacters:    {"Character", "Characters"},
	CategoryFreeform:      {"Additional Tag", "Additional Tags"},
}

// archivePatterns is the pattern set for the archive's current download
// markup. The stats pattern tolerates the optional "Updated:"/"Completed:"
// sub-labels and a word count split into up to three comma-separated digit
// groups.
var archivePatterns = newArchivePatterns()

func newArchivePatterns() patternSet {
	set := patternSet{
		version: "download-2022",

		title:  regexp.MustCompile(`(?s)<h1>(.*?)</h1>`),
		byline: regexp.MustCompile(`(?s)<div class="byline">by (.*?)</div>`),
		author: regexp.MustCompile(`<a rel="author" href="(.*?)">(.*?)</a>`),
		stats: regexp.MustCompile(`(?s)<dt>Stats:</dt>\s*<dd>\s*Published: [0-9-]+` +
			`(?:\s*Updated: [0-9-]+)?(?:\s*Completed: [0-9-]+)?` +
			`\s*Words: (?:(?:([0-9]+),)?([0-9]+),)?([0-9]+)`),
		summary: regexp.MustCompile(`(?s)<p>Summary</p>\s*<blockquote class="userstuff">(?:<p>)?(.*?)</p></blockquote>`),
		source: regexp.MustCompile(`Posted originally on the <a href="https?://archiveofourown\.org/">` +
			`Archive of Our Own</a> at <a href="(.*?)">`),
		lang: regexp.MustCompile(`(?s)<dt>Language:</dt>\s*<dd>(.*?)</dd>`),
		series: regexp.MustCompile(`(?s)<dt>Series:</dt>\s*<dd>Part [0-9]+ of\s*` +
			`<a href="https?://archiveofourown\.org/series/[0-9]*">(.*?)</a></dd>`),

		tagAnchor: regexp.MustCompile(`<a href="https?://archiveofourown\.org/tags/(.*?)">(.*?)</a>`),
		tagBlocks: make(map[Category]*regexp.Regexp, len(tagLabels)),
	}
	for category, labels := range tagLabels {
		quoted := make([]string, len(labels))
		for i, label := range labels {
			quoted[i] = regexp.QuoteMeta(label)
		}
		set.tagBlocks[category] = regexp.MustCompile(fmt.Sprintf(
			`(?s)<dt>(?:%s):</dt>\s*<dd>(.*?)</dd>`, strings.Join(quoted, "|")))
	}
	return set
}

// entityPairs are the character references the archive double-encodes inside
// otherwise well-formed markup. Only these sequences are reversed, in this
// order, so real tag delimiters stay untouched. The ampersand goes last.
var entityPairs = []struct{ entity, char string }{
	{"&#39;", "'"},
	{"&quot;", `"`},
	{"&gt;", ">"},
	{"&lt;", "<"},
	{"&amp;", "&"},
}

// decodeEntities reverses the archive's double-encoding of a fixed set of
// characters.
func decodeEntities(doc string) string {
	for _, pair := range entityPairs {
		doc = strings.ReplaceAll(doc, pair.entity, pair.char)
	}
	return doc
}
