package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ericz0u/IEMClassification/internal/config"
	"github.com/ericz0u/IEMClassification/internal/signature"
)

func TestLoadDefaultsAndExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantInput := filepath.Join(tempHome, "measurements")
	if cfg.Paths.InputDir != wantInput {
		t.Fatalf("unexpected input dir: got %q want %q", cfg.Paths.InputDir, wantInput)
	}
	wantOutput := filepath.Join(tempHome, ".local", "share", "iemsort", "dataset")
	if cfg.Paths.OutputDir != wantOutput {
		t.Fatalf("unexpected output dir: %q", cfg.Paths.OutputDir)
	}
	if cfg.Analysis.ThresholdDB != signature.DefaultThreshold {
		t.Fatalf("unexpected threshold: %g", cfg.Analysis.ThresholdDB)
	}
	if cfg.Analysis.Workers != 1 {
		t.Fatalf("unexpected workers: %d", cfg.Analysis.Workers)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "iemsort.toml")
	content := `
[paths]
input_dir = "` + filepath.Join(dir, "in") + `"
output_dir = "` + filepath.Join(dir, "out") + `"
log_dir = "` + filepath.Join(dir, "logs") + `"

[analysis]
threshold_db = 2.5
workers = 4

[logging]
format = "JSON"
level = "DEBUG"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("resolved = %q exists = %v", resolved, exists)
	}
	if cfg.Analysis.ThresholdDB != 2.5 {
		t.Errorf("threshold = %g, want 2.5", cfg.Analysis.ThresholdDB)
	}
	if cfg.Analysis.Workers != 4 {
		t.Errorf("workers = %d, want 4", cfg.Analysis.Workers)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Errorf("logging not normalized: %+v", cfg.Logging)
	}
}

func TestLoadRejectsEqualInputOutput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "iemsort.toml")
	content := `
[paths]
input_dir = "` + dir + `"
output_dir = "` + dir + `"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, _, err := config.Load(path)
	if err == nil || !strings.Contains(err.Error(), "output_dir") {
		t.Fatalf("expected output_dir validation error, got %v", err)
	}
}

func TestEnsureDirectoriesCreatesLabelTrees(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}

	for _, label := range signature.Labels() {
		for _, root := range []string{cfg.ImagesDir(), cfg.CSVDir()} {
			dir := filepath.Join(root, label.String())
			info, err := os.Stat(dir)
			if err != nil {
				t.Errorf("missing label directory %s: %v", dir, err)
				continue
			}
			if !info.IsDir() {
				t.Errorf("%s is not a directory", dir)
			}
		}
	}
}

func TestSignatureDerivesThreshold(t *testing.T) {
	cfg := config.Default()
	cfg.Analysis.ThresholdDB = 1.25

	sig := cfg.Signature()
	if sig.Threshold != 1.25 {
		t.Errorf("threshold = %g, want 1.25", sig.Threshold)
	}
	if len(sig.Bands) != 7 {
		t.Errorf("band count = %d, want 7", len(sig.Bands))
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "threshold_db") {
		t.Error("sample config missing threshold_db")
	}
}
