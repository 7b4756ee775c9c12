package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	appName   = "imagine"
	devRCName = ".imaginerc"
)

// Loader handles loading the configuration.
type Loader struct {
	Version      string // Build version, used to determine dev mode
	OverridePath string // Set at compile time if needed
	// Home replaces the user's home directory when set.
	Home string
}

// NewLoader creates a new Loader.
func NewLoader(version string, overridePath string) *Loader {
	return &Loader{
		Version:      version,
		OverridePath: overridePath,
	}
}

// Load reads the first configuration file found, or returns defaults when
// there is none.
func (l *Loader) Load() (*Config, error) {
	path := l.GetConfigPath()
	if path == "" {
		return New(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// GetConfigPath returns the path to the configuration file, or empty string
// if not found. The override path wins, then .imaginerc in the working
// directory for dev builds, then the XDG locations.
func (l *Loader) GetConfigPath() string {
	if l.OverridePath != "" {
		if _, err := os.Stat(l.OverridePath); err == nil {
			return l.OverridePath
		}
	}

	if l.Version == "dev" {
		wd, _ := os.Getwd()
		localPath := filepath.Join(wd, devRCName)
		if _, err := os.Stat(localPath); err == nil {
			return localPath
		}
	}

	dir := l.configDir()
	for _, name := range []string{"config.rc", appName + ".rc"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// DefaultPath is where Save writes when no configuration file exists yet.
func (l *Loader) DefaultPath() string {
	return filepath.Join(l.configDir(), "config.rc")
}

// Save writes cfg to the file Load would read, creating the default file
// when none exists, and returns the path written.
func (l *Loader) Save(cfg *Config) (string, error) {
	path := l.GetConfigPath()
	if path == "" {
		path = l.DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(cfg.String()), 0o644); err != nil {
		return "", fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return path, nil
}

func (l *Loader) configDir() string {
	home := l.Home
	if home == "" {
		home, _ = os.UserHomeDir()
	}
	return filepath.Join(home, ".config", appName)
}
