package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "config.toml")

	cfg, resolved, exists, err := Load(missing)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Error("exists = true for a missing file")
	}
	if resolved != missing {
		t.Errorf("resolved = %q, want %q", resolved, missing)
	}
	if cfg.Posting.WorkType != "podfic" {
		t.Errorf("WorkType = %q", cfg.Posting.WorkType)
	}
	if cfg.Posting.Language != "English" {
		t.Errorf("Language = %q", cfg.Posting.Language)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("Format = %q", cfg.Logging.Format)
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	path := writeConfig(t, `
[paths]
projects_dir = "~/pods"
taxonomy_db = "~/pods/taxonomy.db"

[creator]
name = "  testpods  "
url = " https://example.test/users/testpods "

[posting]
work_type = ""
language = ""

[logging]
format = "json"
level = "debug"
`)

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("exists = false for a present file")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("UserHomeDir: %v", err)
	}
	if want := filepath.Join(home, "pods"); cfg.Paths.ProjectsDir != want {
		t.Errorf("ProjectsDir = %q, want %q", cfg.Paths.ProjectsDir, want)
	}
	if cfg.Creator.Name != "testpods" {
		t.Errorf("Creator.Name = %q", cfg.Creator.Name)
	}
	if cfg.Creator.URL != "https://example.test/users/testpods" {
		t.Errorf("Creator.URL = %q", cfg.Creator.URL)
	}
	// Blank posting values fall back to the defaults.
	if cfg.Posting.WorkType != "podfic" || cfg.Posting.Language != "English" {
		t.Errorf("posting defaults not applied: %+v", cfg.Posting)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Errorf("logging not parsed: %+v", cfg.Logging)
	}
}

func TestLoadRejectsBadLogFormat(t *testing.T) {
	path := writeConfig(t, `
[logging]
format = "xml"
`)
	if _, _, _, err := Load(path); err == nil || !strings.Contains(err.Error(), "logging.format") {
		t.Errorf("Load = %v, want logging.format error", err)
	}
}

func TestValidateRequiresPaths(t *testing.T) {
	cfg := Default()
	cfg.Paths.ProjectsDir = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Validate accepted an empty projects_dir")
	}

	cfg = Default()
	cfg.Paths.TaxonomyDB = "   "
	if err := cfg.Validate(); err == nil {
		t.Error("Validate accepted an empty taxonomy_db")
	}
}

func TestEnsureDirectories(t *testing.T) {
	root := t.TempDir()
	cfg := Default()
	cfg.Paths.ProjectsDir = filepath.Join(root, "pods")
	cfg.Paths.TaxonomyDB = filepath.Join(root, "state", "taxonomy.db")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	for _, dir := range []string{cfg.Paths.ProjectsDir, filepath.Join(root, "state")} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Errorf("missing directory %q: %v", dir, err)
		}
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("sample config not found after CreateSample")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("sample config invalid: %v", err)
	}
}

func TestExpandPathKeepsAbsolute(t *testing.T) {
	got, err := ExpandPath("/var/lib/podpost")
	if err != nil {
		t.Fatalf("ExpandPath: %v", err)
	}
	if got != "/var/lib/podpost" {
		t.Errorf("ExpandPath = %q", got)
	}
}
