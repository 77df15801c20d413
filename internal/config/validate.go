package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateMatching(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.DataDir == "" {
		return errors.New("paths.data_dir must be set")
	}
	return nil
}

func (c *Config) validateMatching() error {
	if c.Matching.MinAutoConfidence < 0 || c.Matching.MinAutoConfidence > 100 {
		return errors.New("matching.min_auto_confidence must be between 0 and 100")
	}
	if c.Matching.TitleSimilarityMin < 0 || c.Matching.TitleSimilarityMin > 100 {
		return errors.New("matching.title_similarity_min must be between 0 and 100")
	}
	if c.Matching.TitleMaxEditDistance < 0 {
		return errors.New("matching.title_max_edit_distance must not be negative")
	}
	if c.Matching.TitleConfidenceCap < 0 || c.Matching.TitleConfidenceCap > 100 {
		return errors.New("matching.title_confidence_cap must be between 0 and 100")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}
