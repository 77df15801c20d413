package matcher

import "github.com/andyfreed/master-course-list/internal/config"

// OptionsFromConfig maps the configured matching policy into matcher options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		PrimaryType:          cfg.LMS.PrimaryType,
		SecondaryTypes:       cfg.LMS.SecondaryTypes,
		MinAutoConfidence:    cfg.Matching.MinAutoConfidence,
		TitleSimilarityMin:   cfg.Matching.TitleSimilarityMin,
		TitleMaxEditDistance: cfg.Matching.TitleMaxEditDistance,
		TitleConfidenceCap:   cfg.Matching.TitleConfidenceCap,
	}
}
