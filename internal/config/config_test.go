package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/kk-code-lab/ropen/internal/fspath"
)

func TestLoadReturnsDefaultsWhenMissing(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ROPEN_CONFIG_DIR", dir)

	cfg, path, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if want := filepath.Join(dir, "config.toml"); path != want {
		t.Fatalf("expected path %q, got %q", want, path)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	if cfg.DefaultInputValue != fspath.InitialActiveFileDirectory {
		t.Fatalf("expected active file directory policy, got %v", cfg.DefaultInputValue)
	}
	if !reflect.DeepEqual(cfg.IgnoredPatterns, []string{"*.pyc", "*.pyo"}) {
		t.Fatalf("unexpected default ignore list %v", cfg.IgnoredPatterns)
	}
}

func TestLoadOverridesOnlyGivenKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
helm_dir_switch = true
default_input_value = "Project root"
ignored_patterns = ["*.log"]
editor = "nvim"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !cfg.HelmDirSwitch || cfg.FuzzyMatch || cfg.CreateDirectories {
		t.Fatalf("unexpected switches %+v", cfg)
	}
	if cfg.DefaultInputValue != fspath.InitialProjectRoot {
		t.Fatalf("expected project root policy, got %v", cfg.DefaultInputValue)
	}
	if !reflect.DeepEqual(cfg.IgnoredPatterns, []string{"*.log"}) {
		t.Fatalf("expected ignore list to be replaced, got %v", cfg.IgnoredPatterns)
	}
	if cfg.Editor != "nvim" {
		t.Fatalf("expected editor nvim, got %q", cfg.Editor)
	}
}

func TestLoadWrapsParseErrorsWithPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("fuzzy_match = [oops"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, _, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), path) {
		t.Fatalf("expected parse error naming %q, got %v", path, err)
	}
}

func TestLoadRejectsUnknownPolicy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`default_input_value = "somewhere"`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, _, err := Load(path); err == nil {
		t.Fatalf("expected error for unknown default_input_value")
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := Default()
	cfg.FuzzyMatch = true
	cfg.CreateFileInstantly = true
	cfg.DefaultInputValue = fspath.InitialEmpty

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved config: %v", err)
	}
	if !strings.Contains(string(data), "Empty") {
		t.Fatalf("expected policy to be written by name:\n%s", data)
	}

	loaded, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !reflect.DeepEqual(loaded, cfg) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}
