package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, _, exists, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false for missing file")
	}
	if cfg.LMS.PrimaryType != defaultLMSPrimaryType {
		t.Fatalf("expected default primary type, got %q", cfg.LMS.PrimaryType)
	}
	if cfg.Matching.MinAutoConfidence != defaultMinAutoConfidence {
		t.Fatalf("expected default min confidence, got %d", cfg.Matching.MinAutoConfidence)
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := strings.Join([]string{
		"[paths]",
		`data_dir = "` + filepath.Join(dir, "data") + `"`,
		"[lms]",
		`primary_type = "flms-courses"`,
		`secondary_types = ["course", " ", "llms_course"]`,
		"[logging]",
		`format = "JSON"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected resolved path %q, got %q exists=%v", path, resolved, exists)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected lowered format, got %q", cfg.Logging.Format)
	}
	if len(cfg.LMS.SecondaryTypes) != 2 {
		t.Fatalf("expected blank secondary types dropped, got %v", cfg.LMS.SecondaryTypes)
	}
	if !filepath.IsAbs(cfg.Paths.DataDir) {
		t.Fatalf("expected absolute data dir, got %q", cfg.Paths.DataDir)
	}
}

func TestValidateRejectsBadThresholds(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"confidence too high", func(c *Config) { c.Matching.MinAutoConfidence = 101 }},
		{"negative distance", func(c *Config) { c.Matching.TitleMaxEditDistance = -1 }},
		{"similarity over 100", func(c *Config) { c.Matching.TitleSimilarityMin = 120 }},
		{"unknown log format", func(c *Config) { c.Logging.Format = "xml" }},
	}
	for _, tc := range cases {
		cfg := Default()
		if err := cfg.normalize(); err != nil {
			t.Fatalf("%s: normalize failed: %v", tc.name, err)
		}
		tc.mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}
}

func TestCreateSampleWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[matching]") {
		t.Fatal("sample config missing matching section")
	}
}

func TestExpandPathTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := expandPath("~/mcl-test")
	if err != nil {
		t.Fatalf("expandPath failed: %v", err)
	}
	if got != filepath.Join(home, "mcl-test") {
		t.Fatalf("unexpected expansion: %q", got)
	}
}
