// Package render turns a validated metadata record into publishable output.
//
// Two independent renderers cover the two very different consumers. Posting
// builds the archive's form body and must match the site's bracket-notation
// field names byte for byte, since a wrong key silently drops data.
// Announcement builds a human-readable promotion document; it omits any
// sub-block whose content is empty or still a placeholder rather than ever
// rendering a dead link. Callers run the validation gate for the relevant
// mode immediately before rendering.
package render
