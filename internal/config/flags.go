// internal/config/flags.go
package config

import (
	"flag"
	"fmt"
	"strings"
)

// Flags holds values parsed from command-line flags.
// Use pointers to distinguish between unset flags and zero-value flags.
type Flags struct {
	ConfigFilePath *string
	RepoPath       *string
	Commit         *string
	Speed          *int
	Theme          *string
	Background     *bool
	Order          *string
	Loop           *bool
	Author         *string
	Ignore         *string
	IgnoreFile     *string
	LogLevel       *string
	LogFilePath    *string
	Version        *bool
}

// DefineFlags sets up the command-line flags and associates them with the
// Flags struct fields.
func (f *Flags) DefineFlags() {
	f.ConfigFilePath = flag.String("config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", AppName, DefaultConfigFileName))
	f.RepoPath = flag.String("path", "", "Path to Git repository (defaults to current directory)")
	f.Commit = flag.String("commit", "", "Replay a specific commit or commit range (e.g. HEAD~5..HEAD)")
	f.Speed = flag.Int("speed", 0, "Typing speed in milliseconds per character - Overrides config file")
	f.Theme = flag.String("theme", "", "Theme name - Overrides config file")
	f.Background = flag.Bool("background", true, "Show background colors (false for transparent) - Overrides config file")
	f.Order = flag.String("order", "", "Commit playback order (random, asc, desc) - Overrides config file")
	f.Loop = flag.Bool("loop", false, "Loop playback continuously - Overrides config file")
	f.Author = flag.String("author", "", "Filter commits by author name or email (partial match, case-insensitive)")
	f.Ignore = flag.String("ignore", "", "Comma-separated file patterns to skip during replay")
	f.IgnoreFile = flag.String("ignore-file", "", "Path to file containing ignore patterns (one per line)")
	f.LogLevel = flag.String("loglevel", "", "Log level (debug, info, warn, error) - Overrides config file")
	f.LogFilePath = flag.String("logfile", "", "Path to write log file - Overrides config file")
	f.Version = flag.Bool("version", false, "Show version information and exit")
}

// ParseFlags parses the defined command-line flags into the Flags struct.
// It returns the remaining non-flag arguments.
func (f *Flags) ParseFlags() []string {
	f.DefineFlags()
	flag.Parse()
	return flag.Args()
}

// ApplyOverrides updates the Config struct with values from flags *if* they
// were set on the command line.
func (f *Flags) ApplyOverrides(cfg *Config) {
	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "speed":
			if f.Speed != nil && *f.Speed > 0 {
				cfg.Playback.SpeedMs = *f.Speed
			}
		case "theme":
			if f.Theme != nil && *f.Theme != "" {
				cfg.Theme.Name = *f.Theme
			}
		case "background":
			if f.Background != nil {
				cfg.Theme.Background = *f.Background
			}
		case "order":
			if f.Order != nil && *f.Order != "" {
				cfg.Playback.Order = *f.Order
			}
		case "loop":
			if f.Loop != nil {
				cfg.Playback.Loop = *f.Loop
			}
		case "ignore":
			if f.Ignore != nil && *f.Ignore != "" {
				cfg.Exclude.Patterns = append(cfg.Exclude.Patterns, splitCommaList(*f.Ignore)...)
			}
		case "loglevel":
			if f.LogLevel != nil && *f.LogLevel != "" {
				cfg.Logger.Level = *f.LogLevel
			}
		case "logfile":
			if f.LogFilePath != nil {
				cfg.Logger.FilePath = *f.LogFilePath
			}
		}
	})
}

// splitCommaList splits a comma-separated list, trimming blanks.
func splitCommaList(list string) []string {
	if list == "" {
		return nil
	}
	items := strings.Split(list, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
