package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"podpost/internal/extract"
	"podpost/internal/fileutil"
	"podpost/internal/metadata"
	"podpost/internal/project"
	"podpost/internal/render"
	"podpost/internal/taxonomy"
	"podpost/internal/validate"
)

// Draft file names inside a project's drafts directory.
const (
	FormDraftFile         = "post-form.txt"
	WorkTextDraftFile     = "work-text.html"
	AnnouncementDraftFile = "announcement.html"
)

// massXpostSeparator divides announcements in the shared promotion file.
const massXpostSeparator = "\n\n\n<p align=\"center\">...</p>\n\n\n"

// GateError reports a record that failed the validation gate. The pipeline
// halts before rendering anything.
type GateError struct {
	Mode       validate.Mode
	Violations []error
}

func (e *GateError) Error() string {
	return fmt.Sprintf("record failed the %s gate with %d violation(s), first: %v",
		e.Mode, len(e.Violations), e.Violations[0])
}

// Unwrap exposes the individual violations to errors.Is/As.
func (e *GateError) Unwrap() []error { return e.Violations }

// Options wires a Publisher. Collaborators are optional.
type Options struct {
	Extractor *extract.Extractor
	Resolver  *taxonomy.Resolver
	Seed      metadata.Seed
	Labels    render.Labels
	// Contact, when set, is linked from the rendered work text.
	Contact metadata.Link
	// MassXpostPath, when set, collects announcements for batch promotion.
	MassXpostPath string

	Audio   AudioTagger
	Archive ArchiveUploader
	Drive   DriveUploader
	Poster  Poster

	Logger *slog.Logger
}

// Publisher runs the lifecycle stages over one project at a time.
type Publisher struct {
	opts   Options
	logger *slog.Logger
	now    func() time.Time
}

// NewPublisher validates the wiring and returns a publisher.
func NewPublisher(opts Options) (*Publisher, error) {
	if opts.Extractor == nil {
		return nil, errors.New("pipeline: extractor is required")
	}
	if opts.Resolver == nil {
		return nil, errors.New("pipeline: taxonomy resolver is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Publisher{opts: opts, logger: logger, now: time.Now}, nil
}

// LoadRecord opens the project's metadata record.
func (p *Publisher) LoadRecord(proj *project.Project) (*metadata.Store, error) {
	return metadata.Load(proj.MetadataPath(), p.opts.Seed)
}

// Seed extracts the project's downloaded parent-work documents, resolves the
// fandom tags, and writes a fresh metadata record. It refuses to overwrite
// an existing record.
func (p *Publisher) Seed(ctx context.Context, proj *project.Project) (*metadata.Store, error) {
	if err := proj.Lock(); err != nil {
		return nil, err
	}
	defer func() { _ = proj.Unlock() }()

	if _, err := os.Stat(proj.MetadataPath()); err == nil {
		return nil, fmt.Errorf("project already has a record at %s", proj.MetadataPath())
	}

	files, err := proj.HTMLFiles()
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no downloaded HTML in %s", proj.Dir())
	}

	p.logger.Info("extracting parent works", "project", proj.ID.String(), "documents", len(files))
	result, err := p.opts.Extractor.ExtractFiles(files)
	if err != nil {
		return nil, err
	}

	tags, err := p.opts.Resolver.Resolve(ctx, result.Tags[extract.CategoryFandoms])
	if err != nil {
		return nil, err
	}

	rec := metadata.New(proj.MetadataPath(), p.opts.Seed)
	sets := []struct {
		field string
		value metadata.Value
	}{
		{metadata.FieldWorkTitle, metadata.Scalar(proj.ID.RawTitle)},
		{metadata.FieldParentWorkURL, metadata.List(result.SourceURLs...)},
		{metadata.FieldParentWorkTitle, metadata.List(result.Titles...)},
		{metadata.FieldWriter, metadata.Pairs(result.Writers...)},
		{metadata.FieldSeries, metadata.List(result.Series...)},
		{metadata.FieldSummary, metadata.Scalar(result.Summary)},
		{metadata.FieldWordcount, metadata.Scalar(strconv.Itoa(result.WordCount))},
		{metadata.FieldLanguage, metadata.Scalar(result.Language)},
		{metadata.FieldRating, metadata.Scalar(result.Rating)},
		{metadata.FieldArchiveWarnings, metadata.List(result.Tags[extract.CategoryWarnings]...)},
		{metadata.FieldCategories, metadata.List(result.Tags[extract.CategoryCategories]...)},
		{metadata.FieldRelationships, metadata.List(result.Tags[extract.CategoryRelationships]...)},
		{metadata.FieldCharacters, metadata.List(result.Tags[extract.CategoryCharacters]...)},
		{metadata.FieldAdditionalTags, metadata.List(result.Tags[extract.CategoryFreeform]...)},
		{metadata.FieldFandoms, metadata.List(tags.Preferred...)},
		{metadata.FieldMediaCategory, metadata.Scalar(tags.Category)},
	}
	for _, set := range sets {
		if err := rec.Set(set.field, set.value); err != nil {
			return nil, err
		}
	}

	p.logger.Info("seeded record", "project", proj.ID.String(), "path", proj.MetadataPath())
	return rec, nil
}

// Draft runs the collaborators, gates the record, and renders the posting
// drafts. With a poster wired it also creates the work draft and writes the
// resulting link and posting date back.
func (p *Publisher) Draft(ctx context.Context, proj *project.Project) (render.Payload, error) {
	if err := proj.Lock(); err != nil {
		return nil, err
	}
	defer func() { _ = proj.Unlock() }()

	rec, err := p.LoadRecord(proj)
	if err != nil {
		return nil, err
	}

	if err := p.runCollaborators(ctx, proj, rec); err != nil {
		return nil, err
	}

	if err := p.gate(rec, validate.ModeDraft); err != nil {
		return nil, err
	}

	if err := rec.AddPodficTags(); err != nil {
		return nil, err
	}
	if err := rec.PrefixWorkType(); err != nil {
		return nil, err
	}
	if err := rec.Set(metadata.FieldSummary, metadata.Scalar(render.Summary(rec))); err != nil {
		return nil, err
	}
	workText := render.WorkText(rec, p.opts.Contact)
	if err := rec.Set(metadata.FieldWorkText, metadata.Scalar(workText)); err != nil {
		return nil, err
	}

	payload := render.Posting(rec)

	if err := proj.EnsureDraftDir(); err != nil {
		return nil, err
	}
	form := url.Values(payload).Encode()
	if err := fileutil.WriteAtomic(proj.DraftPath(FormDraftFile), []byte(form), 0o644); err != nil {
		return nil, err
	}
	if err := fileutil.WriteAtomic(proj.DraftPath(WorkTextDraftFile), []byte(workText), 0o644); err != nil {
		return nil, err
	}

	if p.opts.Poster != nil {
		workURL, err := p.opts.Poster.DraftWork(ctx, payload)
		if err != nil {
			return nil, fmt.Errorf("draft work: %w", err)
		}
		if err := rec.Set(metadata.FieldPodficLink, metadata.Scalar(workURL)); err != nil {
			return nil, err
		}
		if err := rec.StampPostingDate(p.now()); err != nil {
			return nil, err
		}
		p.logger.Info("drafted work", "project", proj.ID.String(), "url", workURL)
	}

	return payload, nil
}

// Promote gates the posted record and renders the announcement, optionally
// collecting it in the mass cross-post file.
func (p *Publisher) Promote(ctx context.Context, proj *project.Project) (string, error) {
	if err := proj.Lock(); err != nil {
		return "", err
	}
	defer func() { _ = proj.Unlock() }()

	rec, err := p.LoadRecord(proj)
	if err != nil {
		return "", err
	}
	if err := p.gate(rec, validate.ModePosted); err != nil {
		return "", err
	}

	announcement := render.Announcement(rec, p.opts.Labels)

	if err := proj.EnsureDraftDir(); err != nil {
		return "", err
	}
	if err := fileutil.WriteAtomic(proj.DraftPath(AnnouncementDraftFile), []byte(announcement), 0o644); err != nil {
		return "", err
	}

	if p.opts.MassXpostPath != "" {
		if err := p.collect(announcement); err != nil {
			return "", err
		}
	}

	p.logger.Info("promoted project", "project", proj.ID.String())
	return announcement, nil
}

// Validate runs the gate for the CLI without rendering anything.
func (p *Publisher) Validate(proj *project.Project, mode validate.Mode) ([]error, error) {
	rec, err := p.LoadRecord(proj)
	if err != nil {
		return nil, err
	}
	return validate.Check(rec, mode)
}

func (p *Publisher) gate(rec *metadata.Store, mode validate.Mode) error {
	violations, err := validate.Check(rec, mode)
	if err != nil {
		return err
	}
	if len(violations) > 0 {
		return &GateError{Mode: mode, Violations: violations}
	}
	return nil
}

func (p *Publisher) runCollaborators(ctx context.Context, proj *project.Project, rec *metadata.Store) error {
	title := proj.ID.SafeTitle()

	if p.opts.Audio != nil {
		length, err := p.opts.Audio.TagAudio(ctx, proj, rec.ArtistCredit())
		if err != nil {
			return fmt.Errorf("tag audio: %w", err)
		}
		if err := rec.Set(metadata.FieldAudioLength, metadata.Scalar(length)); err != nil {
			return err
		}
	}

	if p.opts.Archive != nil {
		links, err := p.opts.Archive.UploadArchive(ctx, proj, title)
		if err != nil {
			return fmt.Errorf("archive upload: %w", err)
		}
		for field, value := range map[string]metadata.Value{
			metadata.FieldIALink:           metadata.Scalar(links.Item),
			metadata.FieldIACoverLink:      metadata.Scalar(links.Cover),
			metadata.FieldIAStreamingLinks: metadata.List(links.Streaming...),
		} {
			if err := rec.Set(field, value); err != nil {
				return err
			}
		}
	}

	if p.opts.Drive != nil {
		folder, err := p.opts.Drive.UploadDrive(ctx, proj, title)
		if err != nil {
			return fmt.Errorf("drive upload: %w", err)
		}
		if err := rec.Set(metadata.FieldGDriveLink, metadata.Scalar(folder)); err != nil {
			return err
		}
	}

	return nil
}

// collect appends the announcement to the shared promotion file unless the
// exact text is already there, so re-running promote stays idempotent.
func (p *Publisher) collect(announcement string) error {
	existing, err := os.ReadFile(p.opts.MassXpostPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("read mass cross-post file: %w", err)
	}
	if strings.Contains(string(existing), announcement) {
		p.logger.Info("announcement already collected", "path", p.opts.MassXpostPath)
		return nil
	}
	if err := fileutil.AppendFile(p.opts.MassXpostPath, []byte(announcement+massXpostSeparator), 0o644); err != nil {
		return fmt.Errorf("append mass cross-post file: %w", err)
	}
	return nil
}
