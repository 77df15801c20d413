package testsupport

import (
	"path/filepath"
	"testing"

	"github.com/andyfreed/master-course-list/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.LMS.Database = filepath.Join(base, "lms.db")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}

	return builder.cfg
}

// WithMinAutoConfidence overrides the auto-match confidence floor.
func WithMinAutoConfidence(confidence int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Matching.MinAutoConfidence = confidence
	}
}

// WithSecondaryTypes overrides the secondary LMS post types considered when
// matching.
func WithSecondaryTypes(types ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.LMS.SecondaryTypes = types
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
