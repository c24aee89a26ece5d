package extract

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"

	"podpost/internal/metadata"
)

// Error reports a required structural pattern that failed to match. It is
// fatal to the extraction: the pipeline must not trust any record mutation
// built on a partial result.
type Error struct {
	Field   string
	Doc     int // zero-based index of the offending document
	Version string
}

func (e *Error) Error() string {
	return fmt.Sprintf("extract %s: pattern did not match document %d (pattern set %s)",
		e.Field, e.Doc+1, e.Version)
}

// Result aggregates the fields pulled from one or more documents describing
// the same work. It is ephemeral; the pipeline copies it into the record.
type Result struct {
	SourceURLs []string
	Titles     []string
	Writers    []metadata.Link
	Series     []string
	Summary    string
	WordCount  int
	Language   string
	Rating     string
	Tags       map[Category][]string
}

// Extractor runs one pattern set over downloaded documents.
type Extractor struct {
	patterns patternSet
	logger   *slog.Logger
}

// New returns an extractor for the archive's current download markup.
func New(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Extractor{patterns: archivePatterns, logger: logger}
}

// Version identifies the pattern set in use.
func (e *Extractor) Version() string { return e.patterns.version }

// ExtractFiles reads the given HTML files and extracts their aggregate
// result.
func (e *Extractor) ExtractFiles(paths []string) (Result, error) {
	docs := make([]string, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return Result{}, fmt.Errorf("read document: %w", err)
		}
		docs = append(docs, string(data))
	}
	return e.Extract(docs)
}

// Extract aggregates the bibliographic fields of the given documents.
func (e *Extractor) Extract(docs []string) (Result, error) {
	if len(docs) == 0 {
		return Result{}, fmt.Errorf("extract: no documents given")
	}

	decoded := make([]string, len(docs))
	for i, doc := range docs {
		decoded[i] = decodeEntities(doc)
	}

	result := Result{Tags: make(map[Category][]string)}

	var summaries, languages, ratings []string
	for i, doc := range decoded {
		title, err := e.one(e.patterns.title, doc, "Title", i)
		if err != nil {
			return Result{}, err
		}
		result.Titles = append(result.Titles, title)

		url, err := e.one(e.patterns.source, doc, "Source URL", i)
		if err != nil {
			return Result{}, err
		}
		result.SourceURLs = append(result.SourceURLs, url)

		writers, err := e.writers(doc, i)
		if err != nil {
			return Result{}, err
		}
		result.Writers = mergeWriters(result.Writers, writers)

		words, err := e.wordCount(doc, i)
		if err != nil {
			return Result{}, err
		}
		result.WordCount += words

		summary, err := e.one(e.patterns.summary, doc, "Summary", i)
		if err != nil {
			return Result{}, err
		}
		summaries = append(summaries, summary)

		language, err := e.one(e.patterns.lang, doc, "Language", i)
		if err != nil {
			return Result{}, err
		}
		languages = appendUnique(languages, language)

		for _, match := range e.patterns.series.FindAllStringSubmatch(doc, -1) {
			result.Series = appendUnique(result.Series, match[1])
		}

		for category := range tagLabels {
			tags := e.tags(category, doc)
			if category == CategoryRating {
				for _, tag := range tags {
					ratings = appendUnique(ratings, tag)
				}
				continue
			}
			for _, tag := range tags {
				result.Tags[category] = appendUnique(result.Tags[category], tag)
			}
		}
	}

	// Multi-part works split the summary over several pages.
	result.Summary = strings.Join(summaries, "</p>\n\n<p>")

	if len(ratings) == 0 {
		return Result{}, &Error{Field: "Rating", Doc: 0, Version: e.patterns.version}
	}
	if len(ratings) > 1 {
		e.logger.Warn("documents disagree on rating, using the first",
			"ratings", strings.Join(ratings, ", "))
	}
	result.Rating = ratings[0]

	if len(languages) > 1 {
		e.logger.Warn("documents disagree on language, using the first",
			"languages", strings.Join(languages, ", "))
	}
	result.Language = languages[0]

	normalizeWarnings(result.Tags)

	return result, nil
}

// one extracts a single required capture group from doc.
func (e *Extractor) one(pattern *regexp.Regexp, doc, field string, docIndex int) (string, error) {
	match := pattern.FindStringSubmatch(doc)
	if match == nil {
		return "", &Error{Field: field, Doc: docIndex, Version: e.patterns.version}
	}
	return strings.TrimSpace(match[1]), nil
}

// writers pulls (profile URL, pseud) pairs out of the byline block only, so
// unrelated author links elsewhere on the page are never picked up.
func (e *Extractor) writers(doc string, docIndex int) ([]metadata.Link, error) {
	byline := e.patterns.byline.FindString(doc)
	if byline == "" {
		return nil, &Error{Field: "Writers", Doc: docIndex, Version: e.patterns.version}
	}
	matches := e.patterns.author.FindAllStringSubmatch(byline, -1)
	if len(matches) == 0 {
		return nil, &Error{Field: "Writers", Doc: docIndex, Version: e.patterns.version}
	}
	writers := make([]metadata.Link, 0, len(matches))
	for _, match := range matches {
		writers = append(writers, metadata.Link{URL: match[1], Name: match[2]})
	}
	return writers, nil
}

// wordCount parses the stats block. The count may be split into up to three
// digit groups by thousands separators; the groups concatenate into one
// integer.
func (e *Extractor) wordCount(doc string, docIndex int) (int, error) {
	match := e.patterns.stats.FindStringSubmatch(doc)
	if match == nil {
		return 0, &Error{Field: "Wordcount", Doc: docIndex, Version: e.patterns.version}
	}
	digits := match[1] + match[2] + match[3]
	count, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("extract Wordcount: parse %q: %w", digits, err)
	}
	return count, nil
}

// tags extracts the (tag id, display text) anchors inside the category's
// label-delimited block. Returns display texts in document order.
func (e *Extractor) tags(category Category, doc string) []string {
	var tags []string
	for _, block := range e.patterns.tagBlocks[category].FindAllStringSubmatch(doc, -1) {
		for _, anchor := range e.patterns.tagAnchor.FindAllStringSubmatch(block[1], -1) {
			tags = append(tags, anchor[2])
		}
	}
	return tags
}

// The archive has used two phrasings for the "no warnings chosen" tag
// depending on page version; both collapse to the canonical form.
const (
	legacyNoWarnings    = "Creator Chose Not To Use Archive Warnings"
	canonicalNoWarnings = "Choose Not To Use Archive Warnings"
)

func normalizeWarnings(tags map[Category][]string) {
	warnings := tags[CategoryWarnings]
	for i, warning := range warnings {
		if warning == legacyNoWarnings {
			warnings[i] = canonicalNoWarnings
		}
	}
	tags[CategoryWarnings] = dedupe(warnings)
}

func mergeWriters(into, add []metadata.Link) []metadata.Link {
	for _, writer := range add {
		seen := false
		for _, have := range into {
			if have == writer {
				seen = true
				break
			}
		}
		if !seen {
			into = append(into, writer)
		}
	}
	return into
}

func appendUnique(items []string, item string) []string {
	for _, have := range items {
		if have == item {
			return items
		}
	}
	return append(items, item)
}

func dedupe(items []string) []string {
	out := items[:0]
	for _, item := range items {
		out = appendUnique(out, item)
	}
	return out
}
