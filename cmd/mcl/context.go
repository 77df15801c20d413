package main

import (
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/andyfreed/master-course-list/internal/catalog"
	"github.com/andyfreed/master-course-list/internal/config"
	"github.com/andyfreed/master-course-list/internal/lms"
	"github.com/andyfreed/master-course-list/internal/logging"
	"github.com/andyfreed/master-course-list/internal/matcher"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
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

func (c *commandContext) openStore() (*catalog.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return catalog.Open(cfg.DatabasePath())
}

func (c *commandContext) openLMS() (*lms.DB, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return lms.Open(lms.Options{
		Path:            cfg.LMS.Database,
		SKUMetaKey:      cfg.LMS.SKUMetaKey,
		ArchivedMetaKey: cfg.LMS.ArchivedMetaKey,
	})
}

func (c *commandContext) newLogger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		OutputPaths: []string{
			"stderr",
			filepath.Join(cfg.Paths.LogDir, "mcl.log"),
		},
	})
}

func (c *commandContext) newMatcher(store *catalog.Store, lmsDB *lms.DB, logger *slog.Logger) (*matcher.Matcher, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return matcher.New(store, lmsDB, matcher.OptionsFromConfig(cfg), logger), nil
}
