// Package project models a podfic project's identity and on-disk layout.
//
// A project is identified by a fandom code and the work's raw title. Its
// directory under the projects root holds the downloaded parent-work HTML,
// the metadata record, and the rendered drafts. A file lock keeps two runs
// from writing the same project at once.
package project
