// Package config handles modeltool configuration loading and management.
package config

// Config holds all modeltool settings.
type Config struct {
	// Packs lists resource packs, lowest priority first.
	Packs    []string       `yaml:"packs"`
	Textures TexturesConfig `yaml:"textures"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// TexturesConfig holds texture upload settings.
type TexturesConfig struct {
	// MaxSize is the largest accepted texture edge in pixels; 0 disables the check.
	MaxSize int `yaml:"max_size"`
	// ContextWidth and ContextHeight size the hidden window used for uploads.
	ContextWidth  int `yaml:"context_width"`
	ContextHeight int `yaml:"context_height"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Packs: nil,
		Textures: TexturesConfig{
			MaxSize:       1024,
			ContextWidth:  64,
			ContextHeight: 64,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
