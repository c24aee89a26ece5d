package main

import (
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"podpost/internal/config"
	"podpost/internal/extract"
	"podpost/internal/logging"
	"podpost/internal/metadata"
	"podpost/internal/pipeline"
	"podpost/internal/project"
	"podpost/internal/render"
	"podpost/internal/taxonomy"
)

type commandContext struct {
	configFlag *string
	fandomFlag *string
	titleFlag  *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, fandomFlag, titleFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		fandomFlag: fandomFlag,
		titleFlag:  titleFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logger, err := logging.New(logging.Options{
			Level:    cfg.Logging.Level,
			Format:   cfg.Logging.Format,
			FilePath: cfg.Paths.LogFile,
		})
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger = logger.With("session", uuid.NewString())
	})
	return c.logger, c.loggerErr
}

// project resolves the project named by the --fandom and --title flags.
func (c *commandContext) project() (*project.Project, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	fandom := strings.TrimSpace(*c.fandomFlag)
	title := strings.TrimSpace(*c.titleFlag)
	if fandom == "" || title == "" {
		return nil, errors.New("--fandom and --title are required")
	}
	return project.New(cfg.Paths.ProjectsDir, project.ID{FandomCode: fandom, RawTitle: title})
}

func (c *commandContext) seed() metadata.Seed {
	cfg := c.config
	return metadata.Seed{
		Creator:      metadata.Link{URL: cfg.Creator.URL, Name: cfg.Creator.Name},
		WorkType:     cfg.Posting.WorkType,
		ContentNotes: cfg.Posting.ContentNotes,
		Language:     cfg.Posting.Language,
	}
}

// withPublisher opens the taxonomy store and runs fn with a wired publisher.
func (c *commandContext) withPublisher(fn func(*pipeline.Publisher) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return err
	}

	store, err := taxonomy.Open(cfg.Paths.TaxonomyDB)
	if err != nil {
		return err
	}
	defer store.Close()

	pub, err := pipeline.NewPublisher(pipeline.Options{
		Extractor:     extract.New(logger),
		Resolver:      taxonomy.NewResolver(store, newConsolePrompter(), logger),
		Seed:          c.seed(),
		Labels:        render.DefaultLabels(),
		Contact:       metadata.Link{URL: cfg.Creator.URL, Name: cfg.Creator.Name},
		MassXpostPath: cfg.Paths.MassXpostFile,
		Logger:        logger,
	})
	if err != nil {
		return err
	}
	return fn(pub)
}
