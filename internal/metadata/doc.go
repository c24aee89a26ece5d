// Package metadata owns the per-project publishing record.
//
// The record is a fixed vocabulary of roughly thirty fields, each holding a
// scalar string, a list of strings, or a list of (URL, display name) pairs.
// Every field is always present; fields that have not been filled in yet hold
// a placeholder value recognizable by the reserved "__" prefix. "Present with
// placeholder" and "absent" are never conflated.
//
// All mutation goes through Store.Set, which re-serializes the whole record
// to its YAML file on every call, so no unsynced in-memory state survives a
// crash. The file is written atomically (temp file, then rename) and stays
// hand-editable; the placeholder convention is preserved on disk.
package metadata
