// internal/app/app.go

// Package app wires the replay together: it owns the repository, the
// animation engine, and the screen, and runs the playback loop.
package app

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gitlapse/gitlapse/internal/config"
	"github.com/gitlapse/gitlapse/internal/engine"
	"github.com/gitlapse/gitlapse/internal/event"
	"github.com/gitlapse/gitlapse/internal/git"
	"github.com/gitlapse/gitlapse/internal/highlighter"
	"github.com/gitlapse/gitlapse/internal/logger"
	"github.com/gitlapse/gitlapse/internal/theme"
	"github.com/gitlapse/gitlapse/internal/tui"
)

// uiState tracks where the driver is between commits.
type uiState int

const (
	statePlaying uiState = iota
	stateWaiting
	stateDone
)

// Config selects what the app plays and how.
type Config struct {
	Repo     *git.Repository
	Single   bool   // play the initial commit once, then exit
	Order    string // "random", "asc", or "desc"
	UseRange bool   // draw commits from a rev range set on the repo
	Loop     bool   // rewind instead of finishing when the set is exhausted

	Speed       time.Duration
	DialogSpeed float64
	TargetFPS   int
}

// App encapsulates the core components and main loop of the replay.
type App struct {
	tuiManager   *tui.TUI
	engine       *engine.Engine
	eventManager *event.Manager
	activeTheme  *theme.Theme
	cfg          Config

	state    uiState
	resumeAt time.Time
	initial  *git.Commit

	quit     chan struct{}
	quitOnce sync.Once
}

// New creates the application around an already-open repository.
func New(cfg Config) (*App, error) {
	tuiManager, err := tui.New()
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}

	eng := engine.New(engine.Config{
		Speed:       cfg.Speed,
		DialogSpeed: cfg.DialogSpeed,
		TargetFPS:   cfg.TargetFPS,
		Rand:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}, highlighter.New())

	a := &App{
		tuiManager:   tuiManager,
		engine:       eng,
		eventManager: event.NewManager(),
		activeTheme:  theme.GetCurrentTheme(),
		cfg:          cfg,
		state:        statePlaying,
		quit:         make(chan struct{}),
	}

	a.eventManager.Subscribe(event.TypeCommitLoaded, a.logCommitLoaded)
	a.eventManager.Subscribe(event.TypeThemeChanged, func(e event.Event) bool {
		a.activeTheme = theme.GetCurrentTheme()
		return false
	})

	return a, nil
}

// Play starts playback with the given commit.
func (a *App) Play(commit *git.Commit) {
	a.initial = commit
	a.loadCommit(commit)
}

// Run drives the playback until the user quits or the commit set finishes.
// It blocks the calling goroutine.
func (a *App) Run() error {
	defer a.tuiManager.Close()

	events := make(chan tcell.Event, 16)
	go a.pollEvents(events)

	a.eventManager.Dispatch(event.TypeAppReady, nil)
	a.draw()

	ticker := time.NewTicker(2 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-a.quit:
			a.eventManager.Dispatch(event.TypeAppQuit, nil)
			logger.Infof("app: exiting")
			return nil

		case ev := <-events:
			if a.handleEvent(ev) {
				a.draw()
			}

		case <-ticker.C:
			a.syncViewport()
			if a.engine.Tick() {
				a.draw()
			}
			a.advanceState()
			if a.state == stateDone {
				return nil
			}
		}
	}
}

// pollEvents forwards tcell events to the main loop. PollEvent blocks, so
// this runs on its own goroutine; it exits when the screen is finalized.
func (a *App) pollEvents(events chan<- tcell.Event) {
	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-a.quit:
			return
		}
	}
}

// handleEvent reacts to user input and reports whether a redraw is needed.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.tuiManager.GetScreen().Sync()
		return true

	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC,
			ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			a.quitOnce.Do(func() { close(a.quit) })
		default:
			// Any other key skips ahead to the next commit.
			a.skipToNext()
			return true
		}
	}
	return false
}

// advanceState runs the between-commit state machine: when a commit's
// stream finishes, idle for a beat, then load the next one.
func (a *App) advanceState() {
	switch a.state {
	case statePlaying:
		if !a.engine.Finished() {
			return
		}
		if commit := a.engine.CurrentCommit(); commit != nil {
			a.eventManager.Dispatch(event.TypePlaybackFinished,
				event.PlaybackFinishedData{Hash: commit.Hash})
		}
		if a.cfg.Single && !a.cfg.Loop {
			a.state = stateDone
			return
		}
		a.state = stateWaiting
		a.resumeAt = time.Now().Add(a.cfg.Speed * config.NextCommitDelayFactor)
		a.eventManager.Dispatch(event.TypeWaitingForNext, nil)

	case stateWaiting:
		if time.Now().Before(a.resumeAt) {
			return
		}
		a.playNext()
	}
}

// skipToNext abandons the current commit and jumps straight to another.
func (a *App) skipToNext() {
	if a.cfg.Single && !a.cfg.Loop {
		return
	}
	a.playNext()
}

func (a *App) playNext() {
	// A single requested commit loops on itself rather than wandering
	// into the rest of the history.
	if a.cfg.Single {
		a.loadCommit(a.initial)
		return
	}

	commit, err := a.nextCommit()
	if err != nil {
		logger.Infof("app: no more commits: %v", err)
		a.state = stateDone
		return
	}
	a.loadCommit(commit)
}

func (a *App) loadCommit(commit *git.Commit) {
	a.engine.LoadCommit(commit)
	a.state = statePlaying
	a.eventManager.Dispatch(event.TypeCommitLoaded, event.CommitLoadedData{
		Hash:    commit.Hash,
		Summary: commit.Summary(),
	})
}

// nextCommit draws the next commit per the configured order, rewinding the
// played-set index once if looping is enabled.
func (a *App) nextCommit() (*git.Commit, error) {
	commit, err := a.pickCommit()
	if errors.Is(err, git.ErrExhausted) && a.cfg.Loop {
		a.cfg.Repo.ResetIndex()
		commit, err = a.pickCommit()
	}
	return commit, err
}

func (a *App) pickCommit() (*git.Commit, error) {
	repo := a.cfg.Repo
	if a.cfg.UseRange {
		switch a.cfg.Order {
		case config.OrderAsc:
			return repo.NextRangeAsc()
		case config.OrderDesc:
			return repo.NextRangeDesc()
		default:
			return repo.RandomRange()
		}
	}
	switch a.cfg.Order {
	case config.OrderAsc:
		return repo.NextAsc()
	case config.OrderDesc:
		return repo.NextDesc()
	default:
		return repo.Random()
	}
}

// syncViewport keeps the engine's scroll math aligned with the current
// editor pane height.
func (a *App) syncViewport() {
	w, h := a.tuiManager.Size()
	layout := tui.ComputeLayout(w, h)
	a.engine.SetViewportHeight(layout.EditorViewportHeight())
}

func (a *App) draw() {
	w, h := a.tuiManager.Size()
	layout := tui.ComputeLayout(w, h)

	a.tuiManager.Clear()
	tui.DrawFileTree(a.tuiManager, layout.FileTree, a.engine, a.activeTheme)
	tui.DrawEditor(a.tuiManager, layout.Editor, a.engine, a.activeTheme)
	tui.DrawTerminal(a.tuiManager, layout.Terminal, a.engine, a.activeTheme)
	tui.DrawStatusBar(a.tuiManager, layout.StatusBar, a.engine, a.activeTheme)
	tui.DrawDialog(a.tuiManager, w, h, a.engine, a.activeTheme)
	a.tuiManager.Show()
}

func (a *App) logCommitLoaded(e event.Event) bool {
	if data, ok := e.Data.(event.CommitLoadedData); ok {
		logger.Infof("app: playing commit %.7s %s", data.Hash, data.Summary)
	}
	return false
}
