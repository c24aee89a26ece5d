package taxonomy

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the
// expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// keySeparator joins tags into canonical keys. The archive's canonical
// fandom tags do not contain ", " (the only commas are the "、" in Japanese
// titles), so the join is reversible.
const keySeparator = ", "

// CanonicalKey turns a tag set into its order-independent lookup key.
func CanonicalKey(tags []string) string {
	sorted := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			sorted = append(sorted, tag)
		}
	}
	sort.Strings(sorted)
	return strings.Join(sorted, keySeparator)
}

// SplitKey decodes a canonical key back into individual tags.
func SplitKey(key string) []string {
	if key == "" {
		return nil
	}
	return strings.Split(key, keySeparator)
}

// Store persists the taxonomy in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the taxonomy database.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure taxonomy directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	err = s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d",
			ErrSchemaMismatch, version, schemaVersion)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// PreferredFor looks up the preferred tag key for a raw tag key.
func (s *Store) PreferredFor(ctx context.Context, rawKey string) (string, bool, error) {
	return s.lookup(ctx, "SELECT preferred_tags FROM raw_to_preferred WHERE raw_tags = ?", rawKey)
}

// GroupFor looks up the group tag for a preferred tag key.
func (s *Store) GroupFor(ctx context.Context, preferredKey string) (string, bool, error) {
	return s.lookup(ctx, "SELECT group_tag FROM preferred_to_group WHERE preferred_tags = ?", preferredKey)
}

// CodeFor looks up the short code for a group tag.
func (s *Store) CodeFor(ctx context.Context, groupTag string) (string, bool, error) {
	return s.lookup(ctx, "SELECT code FROM group_to_code WHERE group_tag = ?", groupTag)
}

// CategoryFor looks up the media category for a short code.
func (s *Store) CategoryFor(ctx context.Context, code string) (string, bool, error) {
	return s.lookup(ctx, "SELECT category FROM code_to_category WHERE code = ?", code)
}

func (s *Store) lookup(ctx context.Context, query, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("taxonomy lookup: %w", err)
	}
	return value, true, nil
}

// SavePreferred records a raw-to-preferred mapping.
func (s *Store) SavePreferred(ctx context.Context, rawKey, preferredKey string) error {
	return s.save(ctx,
		"INSERT OR IGNORE INTO raw_to_preferred (raw_tags, preferred_tags) VALUES (?, ?)",
		rawKey, preferredKey)
}

// SaveGroup records a preferred-to-group mapping.
func (s *Store) SaveGroup(ctx context.Context, preferredKey, groupTag string) error {
	return s.save(ctx,
		"INSERT OR IGNORE INTO preferred_to_group (preferred_tags, group_tag) VALUES (?, ?)",
		preferredKey, groupTag)
}

// SaveCode records a group-to-code mapping.
func (s *Store) SaveCode(ctx context.Context, groupTag, code string) error {
	return s.save(ctx,
		"INSERT OR IGNORE INTO group_to_code (group_tag, code) VALUES (?, ?)",
		groupTag, code)
}

// SaveCategory records a code-to-category mapping.
func (s *Store) SaveCategory(ctx context.Context, code, category string) error {
	return s.save(ctx,
		"INSERT OR IGNORE INTO code_to_category (code, category) VALUES (?, ?)",
		code, category)
}

func (s *Store) save(ctx context.Context, query string, args ...any) error {
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("taxonomy save: %w", err)
	}
	return nil
}

// Categories returns the distinct media categories already in use, for
// prompting toward reuse over near-duplicates.
func (s *Store) Categories(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT DISTINCT category FROM code_to_category ORDER BY category")
	if err != nil {
		return nil, fmt.Errorf("taxonomy categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, fmt.Errorf("taxonomy categories: %w", err)
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

// Entry is one fully joined taxonomy row, for listing.
type Entry struct {
	RawTags       string
	PreferredTags string
	GroupTag      string
	Code          string
	Category      string
}

// Entries returns every raw mapping joined through the whole chain. Chains
// with missing links surface with empty columns rather than being hidden.
func (s *Store) Entries(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT r.raw_tags, r.preferred_tags,
               COALESCE(p.group_tag, ''), COALESCE(g.code, ''), COALESCE(c.category, '')
        FROM raw_to_preferred r
        LEFT JOIN preferred_to_group p ON p.preferred_tags = r.preferred_tags
        LEFT JOIN group_to_code g ON g.group_tag = p.group_tag
        LEFT JOIN code_to_category c ON c.code = g.code
        ORDER BY r.raw_tags`)
	if err != nil {
		return nil, fmt.Errorf("taxonomy entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		if err := rows.Scan(&entry.RawTags, &entry.PreferredTags, &entry.GroupTag, &entry.Code, &entry.Category); err != nil {
			return nil, fmt.Errorf("taxonomy entries: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
