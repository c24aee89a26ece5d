package testsupport

import (
	"path/filepath"
	"testing"

	"podpost/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.ProjectsDir = filepath.Join(base, "projects")
	cfg.Paths.TaxonomyDB = filepath.Join(base, "taxonomy.db")
	cfg.Paths.MassXpostFile = filepath.Join(base, "mass-xpost.html")
	cfg.Creator.Name = "testpods"
	cfg.Creator.URL = "https://example.test/users/testpods"

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &cfg
}

// WithCreator overrides the creator identity on the test config.
func WithCreator(name, url string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Creator.Name = name
		cfg.Creator.URL = url
	}
}
