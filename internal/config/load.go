package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in standard locations.
const FileName = "blockforge.yaml"

// Overrides holds command-line settings applied on top of the config file.
type Overrides struct {
	// ConfigPath is an explicit config file; empty means search standard locations.
	ConfigPath string
	Debug      bool
	// Packs are stacked above the packs named in the config file.
	Packs   []string
	LogFile string
}

// Load loads configuration with priority: defaults < file < overrides.
func Load(o Overrides) (*Config, error) {
	cfg := Default()

	configPath := o.ConfigPath
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	o.apply(cfg)

	return cfg, nil
}

func (o Overrides) apply(cfg *Config) {
	if o.Debug {
		cfg.Logging.Level = "debug"
	}
	if o.LogFile != "" {
		cfg.Logging.LogFile = o.LogFile
	}
	cfg.Packs = append(cfg.Packs, o.Packs...)
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./" + FileName,
		filepath.Join(ConfigDir(), FileName),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "Blockforge")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Blockforge")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "blockforge")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "blockforge")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
// Relative pack paths are taken relative to the file's directory.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	for i, p := range cfg.Packs {
		if !filepath.IsAbs(p) {
			cfg.Packs[i] = filepath.Join(dir, p)
		}
	}
	return nil
}
