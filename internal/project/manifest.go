// Package project locates and parses cinder.toml, the project manifest
// that names the package and points the tool at its sources.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file the tool searches for when no path is given.
const ManifestName = "cinder.toml"

// Config is the parsed content of cinder.toml.
type Config struct {
	Package PackageConfig `toml:"package"`
	Build   BuildConfig   `toml:"build"`
	Check   CheckConfig   `toml:"check"`
}

type PackageConfig struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// BuildConfig points at the source tree and the generated C output.
type BuildConfig struct {
	Src string `toml:"src"`
	Out string `toml:"out"`
}

// CheckConfig tunes the analyzer run.
type CheckConfig struct {
	MaxDiagnostics int  `toml:"max_diagnostics"`
	Jobs           int  `toml:"jobs"`
	NoCache        bool `toml:"no_cache"`
}

// Manifest is a located and parsed cinder.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// SrcDir returns the absolute source directory, defaulting to the root.
func (m *Manifest) SrcDir() string {
	if m.Config.Build.Src == "" {
		return m.Root
	}
	return filepath.Join(m.Root, filepath.FromSlash(m.Config.Build.Src))
}

// OutDir returns the absolute output directory, defaulting to "gen".
func (m *Manifest) OutDir() string {
	out := m.Config.Build.Out
	if out == "" {
		out = "gen"
	}
	return filepath.Join(m.Root, filepath.FromSlash(out))
}

// FindManifest walks up from startDir to locate cinder.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load parses the manifest at path.
func Load(path string) (*Manifest, error) {
	cfg, err := loadConfig(path)
	if err != nil {
		return nil, err
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, nil
}

// FindAndLoad locates cinder.toml upward from startDir and parses it.
func FindAndLoad(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := Load(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

func loadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Config{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return Config{}, fmt.Errorf("%s: missing [package].name", path)
	}
	return cfg, nil
}
