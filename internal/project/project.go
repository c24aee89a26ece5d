package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gofrs/flock"

	"podpost/internal/textutil"
)

// MetadataFile is the record's file name inside a project directory.
const MetadataFile = "metadata.yaml"

// ErrLocked indicates another run already holds the project lock.
var ErrLocked = errors.New("project is locked by another process")

// ID identifies a project by fandom code and the work's raw title.
type ID struct {
	FandomCode string
	RawTitle   string
}

// SafeTitle returns the title rewritten for filesystem use.
func (id ID) SafeTitle() string {
	return textutil.SafeTitle(id.RawTitle)
}

// Abbrev returns the short tag built from the title's initials.
func (id ID) Abbrev() string {
	return textutil.Abbreviate(id.RawTitle)
}

func (id ID) String() string {
	return fmt.Sprintf("[%s] %s", strings.ToUpper(id.FandomCode), id.RawTitle)
}

// Project is one podfic project rooted in the projects directory.
type Project struct {
	ID   ID
	root string

	lock *flock.Flock
}

// New binds an identity to its directory under projectsDir. The directory
// is created if missing.
func New(projectsDir string, id ID) (*Project, error) {
	if id.FandomCode == "" || strings.TrimSpace(id.RawTitle) == "" {
		return nil, errors.New("project needs a fandom code and a title")
	}
	p := &Project{ID: id, root: projectsDir}
	if err := os.MkdirAll(p.Dir(), 0o755); err != nil {
		return nil, fmt.Errorf("create project directory: %w", err)
	}
	p.lock = flock.New(filepath.Join(p.Dir(), ".lock"))
	return p, nil
}

// Dir returns the project directory.
func (p *Project) Dir() string {
	return filepath.Join(p.root, p.ID.FandomCode, p.ID.SafeTitle())
}

// MetadataPath returns the record path inside the project directory.
func (p *Project) MetadataPath() string {
	return filepath.Join(p.Dir(), MetadataFile)
}

// DraftPath returns the path for a named rendered draft.
func (p *Project) DraftPath(name string) string {
	return filepath.Join(p.Dir(), "drafts", name)
}

// EnsureDraftDir creates the drafts directory.
func (p *Project) EnsureDraftDir() error {
	if err := os.MkdirAll(filepath.Join(p.Dir(), "drafts"), 0o755); err != nil {
		return fmt.Errorf("create drafts directory: %w", err)
	}
	return nil
}

// HTMLFiles returns the downloaded parent-work documents in the project
// directory, sorted by name.
func (p *Project) HTMLFiles() ([]string, error) {
	entries, err := os.ReadDir(p.Dir())
	if err != nil {
		return nil, fmt.Errorf("read project directory: %w", err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), ".html") || strings.HasSuffix(entry.Name(), ".htm") {
			files = append(files, filepath.Join(p.Dir(), entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// Lock takes the project lock without blocking. Callers release with Unlock.
func (p *Project) Lock() error {
	ok, err := p.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire project lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrLocked, p.Dir())
	}
	return nil
}

// Unlock releases the project lock.
func (p *Project) Unlock() error {
	return p.lock.Unlock()
}
