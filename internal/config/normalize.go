package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeLMS(); err != nil {
		return err
	}
	c.normalizeMatching()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLMS() error {
	var err error
	if strings.TrimSpace(c.LMS.Database) != "" {
		if c.LMS.Database, err = expandPath(c.LMS.Database); err != nil {
			return fmt.Errorf("lms.database: %w", err)
		}
	}
	if strings.TrimSpace(c.LMS.PrimaryType) == "" {
		c.LMS.PrimaryType = defaultLMSPrimaryType
	}
	if len(c.LMS.SecondaryTypes) == 0 {
		c.LMS.SecondaryTypes = defaultLMSSecondaryTypes()
	}
	cleaned := make([]string, 0, len(c.LMS.SecondaryTypes))
	for _, t := range c.LMS.SecondaryTypes {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		cleaned = append(cleaned, t)
	}
	c.LMS.SecondaryTypes = cleaned
	if strings.TrimSpace(c.LMS.SKUMetaKey) == "" {
		c.LMS.SKUMetaKey = defaultLMSSKUMetaKey
	}
	if strings.TrimSpace(c.LMS.ArchivedMetaKey) == "" {
		c.LMS.ArchivedMetaKey = defaultLMSArchivedMetaKey
	}
	return nil
}

func (c *Config) normalizeMatching() {
	if c.Matching.MinAutoConfidence == 0 {
		c.Matching.MinAutoConfidence = defaultMinAutoConfidence
	}
	if c.Matching.TitleSimilarityMin == 0 {
		c.Matching.TitleSimilarityMin = defaultTitleSimilarityMin
	}
	if c.Matching.TitleMaxEditDistance == 0 {
		c.Matching.TitleMaxEditDistance = defaultTitleMaxEditDistance
	}
	if c.Matching.TitleConfidenceCap == 0 {
		c.Matching.TitleConfidenceCap = defaultTitleConfidenceCap
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
