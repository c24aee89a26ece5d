package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains file and directory configuration.
type Paths struct {
	// ProjectsDir is the root under which each podfic project keeps its
	// downloaded HTML, metadata file, and rendered drafts.
	ProjectsDir string `toml:"projects_dir"`
	// TaxonomyDB is the SQLite file holding the fandom taxonomy.
	TaxonomyDB string `toml:"taxonomy_db"`
	// LogFile, when set, mirrors log output into a file.
	LogFile string `toml:"log_file"`
	// MassXpostFile collects rendered announcements for batch cross-posting.
	MassXpostFile string `toml:"mass_xpost_file"`
}

// Creator identifies the podficcer credited on every post.
type Creator struct {
	Name string `toml:"name"`
	URL  string `toml:"url"`
}

// Posting contains defaults seeded into new project records.
type Posting struct {
	WorkType     string `toml:"work_type"`
	ContentNotes string `toml:"content_notes"`
	Language     string `toml:"language"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for podpost.
type Config struct {
	Paths   Paths   `toml:"paths"`
	Creator Creator `toml:"creator"`
	Posting Posting `toml:"posting"`
	Logging Logging `toml:"logging"`
}

// Default returns the repository default configuration.
func Default() Config {
	return Config{
		Paths: Paths{
			ProjectsDir: "~/podfic",
			TaxonomyDB:  "~/.local/share/podpost/taxonomy.db",
		},
		Posting: Posting{
			WorkType:     "podfic",
			ContentNotes: "If I forgot or misworded anything, please let me know!",
			Language:     "English",
		},
		Logging: Logging{
			Format: "console",
			Level:  "info",
		},
	}
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/podpost/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The second return is
// the resolved path, the third reports whether the file existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	return defaultPath, false, nil
}

func (c *Config) normalize() error {
	var err error
	if c.Paths.ProjectsDir, err = expandPath(c.Paths.ProjectsDir); err != nil {
		return err
	}
	if c.Paths.TaxonomyDB, err = expandPath(c.Paths.TaxonomyDB); err != nil {
		return err
	}
	if c.Paths.LogFile != "" {
		if c.Paths.LogFile, err = expandPath(c.Paths.LogFile); err != nil {
			return err
		}
	}
	if c.Paths.MassXpostFile != "" {
		if c.Paths.MassXpostFile, err = expandPath(c.Paths.MassXpostFile); err != nil {
			return err
		}
	}
	c.Creator.Name = strings.TrimSpace(c.Creator.Name)
	c.Creator.URL = strings.TrimSpace(c.Creator.URL)
	c.Posting.WorkType = strings.TrimSpace(c.Posting.WorkType)
	if c.Posting.WorkType == "" {
		c.Posting.WorkType = "podfic"
	}
	if strings.TrimSpace(c.Posting.Language) == "" {
		c.Posting.Language = "English"
	}
	return nil
}

// Validate reports configuration mistakes that would break the pipeline
// in confusing ways later.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Paths.ProjectsDir) == "" {
		return errors.New("config: paths.projects_dir must be set")
	}
	if strings.TrimSpace(c.Paths.TaxonomyDB) == "" {
		return errors.New("config: paths.taxonomy_db must be set")
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "console", "json":
	default:
		return fmt.Errorf("config: logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}

// EnsureDirectories creates the directories the pipeline writes into.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.ProjectsDir, filepath.Dir(c.Paths.TaxonomyDB)}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}
