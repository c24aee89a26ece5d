// Package extract pulls bibliographic fields out of downloaded parent-work
// HTML.
//
// Extraction is pattern-based rather than a full DOM parse: every field has
// its own sub-extractor anchored on the label text the archive emits next to
// it, and the whole set of patterns is version-tagged because the archive's
// markup shifts over time. When a required pattern fails to match, extraction
// stops with an Error naming the field and document; no field is ever
// silently synthesized.
//
// A work split across several pages is handled by aggregating per-document
// results: word counts sum, tag sets union, titles/writers/URLs collect into
// parallel ordered lists, and summaries join with a paragraph break.
package extract
