// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
)

// Config holds the application's combined configuration.
type Config struct {
	Playback PlaybackConfig `toml:"playback"`
	Theme    ThemeConfig    `toml:"theme"`
	Logger   LoggerConfig   `toml:"logger"`
	Exclude  ExcludeConfig  `toml:"exclude"`
}

// PlaybackConfig holds replay pacing and ordering settings.
type PlaybackConfig struct {
	SpeedMs     int     `toml:"speed_ms"`     // Base per-character typing speed
	TargetFPS   int     `toml:"fps"`          // Redraw rate ceiling
	DialogSpeed float64 `toml:"dialog_speed"` // Multiplier for open-file dialog typing
	Order       string  `toml:"order"`        // random | asc | desc
	Loop        bool    `toml:"loop"`
}

// ThemeConfig holds display settings.
type ThemeConfig struct {
	Name       string `toml:"name"`
	Background bool   `toml:"background"` // false renders a transparent background
}

// LoggerConfig holds log output settings.
type LoggerConfig struct {
	Level    string `toml:"level"`
	FilePath string `toml:"file"`
}

// ExcludeConfig holds extra file patterns skipped during replay.
type ExcludeConfig struct {
	Patterns []string `toml:"patterns"`
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Playback: PlaybackConfig{
			SpeedMs:     DefaultSpeedMs,
			TargetFPS:   DefaultTargetFPS,
			DialogSpeed: DefaultDialogSpeed,
			Order:       DefaultOrder,
			Loop:        false,
		},
		Theme: ThemeConfig{
			Name:       "default",
			Background: true,
		},
		Logger: LoggerConfig{
			Level:    "info",
			FilePath: "",
		},
	}
}

// ConfigPath returns the default config file location.
func ConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine user config dir: %w", err)
	}
	return filepath.Join(configDir, ConfigDirName, DefaultConfigFileName), nil
}

// loadFromFile attempts to load configuration from a TOML file.
// A missing file is not an error; defaults apply.
func loadFromFile(filePath string) (*Config, error) {
	cfg := &Config{}
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return cfg, nil
	} else if err != nil {
		return cfg, fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	if _, err := toml.DecodeFile(filePath, cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	return cfg, nil
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Playback.SpeedMs <= 0 {
		c.Playback.SpeedMs = defaults.Playback.SpeedMs
	}
	if c.Playback.TargetFPS <= 0 {
		c.Playback.TargetFPS = defaults.Playback.TargetFPS
	}
	if c.Playback.DialogSpeed <= 0 {
		c.Playback.DialogSpeed = defaults.Playback.DialogSpeed
	}
	switch c.Playback.Order {
	case "random", "asc", "desc":
	default:
		c.Playback.Order = defaults.Playback.Order
	}
	if c.Theme.Name == "" {
		c.Theme.Name = defaults.Theme.Name
	}
	if c.Logger.Level == "" {
		c.Logger.Level = defaults.Logger.Level
	}
}

// LoadConfig orchestrates loading defaults, file, applying flags, and
// validation. It should be called only once, typically from main.
func LoadConfig(configFilePath string, flags *Flags) (*Config, error) {
	loadOnce.Do(func() {
		cfg := NewDefaultConfig()

		effectivePath := configFilePath
		if effectivePath == "" {
			if p, err := ConfigPath(); err == nil {
				effectivePath = p
			}
		}

		if effectivePath != "" {
			fileCfg, err := loadFromFile(effectivePath)
			if err != nil {
				loadErr = err
			} else if fileCfg != nil {
				if fileCfg.Playback.SpeedMs > 0 {
					cfg.Playback.SpeedMs = fileCfg.Playback.SpeedMs
				}
				if fileCfg.Playback.TargetFPS > 0 {
					cfg.Playback.TargetFPS = fileCfg.Playback.TargetFPS
				}
				if fileCfg.Playback.DialogSpeed > 0 {
					cfg.Playback.DialogSpeed = fileCfg.Playback.DialogSpeed
				}
				if fileCfg.Playback.Order != "" {
					cfg.Playback.Order = fileCfg.Playback.Order
				}
				cfg.Playback.Loop = fileCfg.Playback.Loop
				if fileCfg.Theme.Name != "" {
					cfg.Theme = fileCfg.Theme
				}
				if fileCfg.Logger.Level != "" || fileCfg.Logger.FilePath != "" {
					cfg.Logger = fileCfg.Logger
				}
				cfg.Exclude.Patterns = append(cfg.Exclude.Patterns, fileCfg.Exclude.Patterns...)
			}
		}

		if flags != nil {
			flags.ApplyOverrides(cfg)
		}

		cfg.validate()
		loadedConfig = cfg
	})

	return loadedConfig, loadErr
}

// Get returns the loaded application configuration. Panics if LoadConfig
// wasn't called first.
func Get() *Config {
	if loadedConfig == nil {
		panic("config.Get() called before config.LoadConfig()")
	}
	return loadedConfig
}
