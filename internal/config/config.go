package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/kk-code-lab/ropen/internal/fspath"
)

// Config holds every user-facing switch. It is read once per run.
type Config struct {
	// CreateDirectories creates a missing directory instead of beeping when a
	// bare directory path is confirmed.
	CreateDirectories bool `toml:"create_directories"`
	// CreateFileInstantly creates missing files before handing them to the
	// editor instead of leaving that to the first save.
	CreateFileInstantly bool `toml:"create_file_instantly"`
	// HelmDirSwitch enables the "//", "~/" and ":/" shortcuts.
	HelmDirSwitch     bool                 `toml:"helm_dir_switch"`
	DefaultInputValue fspath.InitialPolicy `toml:"default_input_value"`
	FuzzyMatch        bool                 `toml:"fuzzy_match"`
	IgnoredPatterns   []string             `toml:"ignored_patterns"`
	HideDotfiles      bool                 `toml:"hide_dotfiles"`
	// Locale selects the collation used to sort the list, e.g. "de" or "sv".
	Locale string `toml:"locale,omitempty"`
	// Editor overrides $VISUAL and $EDITOR.
	Editor string `toml:"editor,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		DefaultInputValue: fspath.InitialActiveFileDirectory,
		IgnoredPatterns:   []string{"*.pyc", "*.pyo"},
	}
}

// Dir returns the directory holding config.toml. ROPEN_CONFIG_DIR wins over
// the platform config directory.
func Dir() string {
	if dir := os.Getenv("ROPEN_CONFIG_DIR"); dir != "" {
		return dir
	}
	base, err := os.UserConfigDir()
	if err != nil || base == "" {
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "ropen")
}

// DefaultPath is the config file used when no path is given.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config at path (DefaultPath when empty). A missing file is
// not an error and yields Default. Keys absent from the file keep their
// default values.
func Load(path string) (Config, string, error) {
	if path == "" {
		path = DefaultPath()
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, path, nil
	}
	if err != nil {
		return Default(), path, fmt.Errorf("read config %q: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), path, fmt.Errorf("parse config %q: %w", path, err)
	}
	return cfg, path, nil
}

// Save writes cfg to path as TOML, creating the directory when needed.
func Save(cfg Config, path string) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := writeFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %q: %w", path, err)
	}
	return nil
}

// write to a temp file then rename so a crash never leaves a half-written config.
func writeFileAtomic(path string, data []byte, perm fs.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".ropen-config-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(data); err != nil {
		return errors.Join(err, tmp.Close())
	}
	if err := tmp.Chmod(perm); err != nil {
		return errors.Join(err, tmp.Close())
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}
