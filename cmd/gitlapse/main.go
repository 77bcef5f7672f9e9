// cmd/gitlapse/main.go
package main

import (
	"fmt"
	stlog "log"
	"os"
	"strings"
	"time"

	"github.com/gitlapse/gitlapse/internal/app"
	"github.com/gitlapse/gitlapse/internal/config"
	"github.com/gitlapse/gitlapse/internal/git"
	"github.com/gitlapse/gitlapse/internal/logger"
	"github.com/gitlapse/gitlapse/internal/theme"
)

var version = "dev"

func main() {
	flags := &config.Flags{}
	flags.ParseFlags()

	if flags.Version != nil && *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, version)
		return
	}

	configPath := ""
	if flags.ConfigFilePath != nil {
		configPath = *flags.ConfigFilePath
	}
	cfg, err := config.LoadConfig(configPath, flags)
	if err != nil {
		stlog.Fatalf("Failed to load configuration: %v", err)
	}

	initLogging(cfg)
	logger.Infof("Starting %s %s", config.AppName, version)

	applyTheme(cfg)

	patterns := cfg.Exclude.Patterns
	if flags.IgnoreFile != nil && *flags.IgnoreFile != "" {
		filePatterns, err := readIgnoreFile(*flags.IgnoreFile)
		if err != nil {
			logger.Fatalf("Failed to read ignore file: %v", err)
		}
		patterns = append(patterns, filePatterns...)
	}
	git.SetUserPatterns(patterns)

	repoPath := "."
	if flags.RepoPath != nil && *flags.RepoPath != "" {
		repoPath = *flags.RepoPath
	}
	repo, err := git.Open(repoPath)
	if err != nil {
		logger.Fatalf("Failed to open repository at %s: %v", repoPath, err)
	}
	logger.Debugf("Repository root: %s", repo.Root())

	if flags.Author != nil && *flags.Author != "" {
		repo.SetAuthorFilter(*flags.Author)
	}

	appCfg := app.Config{
		Repo:        repo,
		Order:       cfg.Playback.Order,
		Loop:        cfg.Playback.Loop,
		Speed:       time.Duration(cfg.Playback.SpeedMs) * time.Millisecond,
		DialogSpeed: cfg.Playback.DialogSpeed,
		TargetFPS:   cfg.Playback.TargetFPS,
	}

	first, err := selectFirstCommit(repo, flags, &appCfg)
	if err != nil {
		logger.Fatalf("Failed to select a commit: %v", err)
	}

	replay, err := app.New(appCfg)
	if err != nil {
		logger.Fatalf("Failed to initialize application: %v", err)
	}

	replay.Play(first)
	if err := replay.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		os.Exit(1)
	}

	logger.Infof("%s finished.", config.AppName)
}

// selectFirstCommit resolves the -commit flag: a "start..end" spec switches
// to range playback, a single rev plays once, and no flag starts ordered
// playback over the whole history.
func selectFirstCommit(repo *git.Repository, flags *config.Flags, appCfg *app.Config) (*git.Commit, error) {
	spec := ""
	if flags.Commit != nil {
		spec = *flags.Commit
	}

	switch {
	case strings.Contains(spec, ".."):
		if err := repo.SetRange(spec); err != nil {
			return nil, err
		}
		appCfg.UseRange = true
		switch appCfg.Order {
		case config.OrderAsc:
			return repo.NextRangeAsc()
		case config.OrderDesc:
			return repo.NextRangeDesc()
		default:
			return repo.RandomRange()
		}

	case spec != "":
		appCfg.Single = true
		return repo.Commit(spec)

	default:
		switch appCfg.Order {
		case config.OrderAsc:
			return repo.NextAsc()
		case config.OrderDesc:
			return repo.NextDesc()
		default:
			return repo.Random()
		}
	}
}

// initLogging opens the configured log file and initializes the logger.
// A TUI app must never log to the screen, so an unset path falls back to
// the default log file rather than stderr.
func initLogging(cfg *config.Config) {
	path := cfg.Logger.FilePath
	if path == "" {
		path = config.DefaultLogFileName
	}

	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		stlog.Fatalf("Failed to open log file '%s': %v", path, err)
	}

	logger.Init(logger.ParseLevel(cfg.Logger.Level), logFile)
}

func applyTheme(cfg *config.Config) {
	t, err := theme.LoadByName(cfg.Theme.Name)
	if err != nil {
		logger.Warnf("Theme '%s' unavailable, using built-in: %v", cfg.Theme.Name, err)
		t = &theme.MidnightReplay
	}
	if !cfg.Theme.Background {
		t = theme.WithTransparentBackground(t)
	}
	theme.SetCurrentTheme(t)
}

// readIgnoreFile loads exclusion patterns, one per line, skipping blanks
// and # comments.
func readIgnoreFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var patterns []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns, nil
}
