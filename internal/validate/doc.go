// Package validate is the gate between the metadata record and the
// renderers. A record must pass the gate for the relevant mode immediately
// before rendering; rendered output is assumed ready to publish.
//
// The gate checks four constraint categories: single-valued fields hold at
// most one value (a single-element list is silently coerced to its scalar
// form), required fields are non-empty, filled-in fields no longer hold
// their placeholder sentinel, and the rating, archive warning, and category
// fields stay within the archive's closed vocabularies. Posted mode
// additionally requires the published work link and posting date.
package validate
