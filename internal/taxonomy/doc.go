// Package taxonomy maintains the fandom tag taxonomy: a persistent mapping
// from the raw fandom tags found on parent works to the podficcer's preferred
// tag set, a broader group tag, a short code, and a media category.
//
// Lookups key on the canonical form of a tag set (sorted, comma-joined) so
// the same set matches regardless of the order tags appeared in markup.
// One-to-many, many-to-one, and many-to-many shapes are all legal.
//
// Crowd-sourced tagging is too inconsistent for automatic inference, so the
// Resolver fills gaps interactively through an injected Prompter and only
// persists a new mapping when the operator confirms it. Resolution of a
// previously seen set never prompts.
package taxonomy
