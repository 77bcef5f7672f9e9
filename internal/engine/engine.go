// internal/engine/engine.go

// Package engine replays a commit as live typing: it compiles a commit's
// diff into a step stream and advances through it on a tick-driven clock,
// exposing the simulated editor and terminal state for rendering.
package engine

import (
	"math/rand"
	"time"

	"github.com/gitlapse/gitlapse/internal/config"
	"github.com/gitlapse/gitlapse/internal/git"
	"github.com/gitlapse/gitlapse/internal/highlighter"
	"github.com/gitlapse/gitlapse/internal/logger"
	"github.com/gitlapse/gitlapse/internal/types"
)

// PlayState is the engine's playback state.
type PlayState int

const (
	StateIdle PlayState = iota
	StatePlaying
	StateFinished
)

// Pane identifies which simulated pane the animation is currently acting in.
type Pane int

const (
	PaneEditor Pane = iota
	PaneTerminal
)

// Config carries the engine's tuning knobs. Zero values fall back to the
// application defaults. Now and Rand exist so tests can drive the clock and
// pin the typing jitter.
type Config struct {
	Speed       time.Duration // base per-character delay
	DialogSpeed float64       // dialog typing multiplier, applied before jitter
	TargetFPS   int
	Now         func() time.Time
	Rand        *rand.Rand
}

// Engine is the replay scheduler. It owns the buffer, the terminal
// transcript, and the highlighter, and mutates them only inside step
// execution. Not safe for concurrent use; drive it from one event loop.
type Engine struct {
	Buffer        *Buffer
	State         PlayState
	CursorVisible bool
	ActivePane    Pane
	FileIndex     int
	FilePath      string
	TerminalLines []string
	DialogTitle   string
	DialogText    string

	steps     []Step
	current   int
	nextDelay time.Duration

	speed       time.Duration
	dialogSpeed float64

	lastUpdate time.Time
	pauseUntil time.Time
	blinkAt    time.Time

	frameInterval time.Duration
	lastFrame     time.Time

	viewportHeight int

	hl      *highlighter.Highlighter
	tracker *offsetTracker

	meta        *git.Commit
	pendingMeta *git.Commit

	now func() time.Time
	rng *rand.Rand
}

// New creates an idle engine that renders through hl.
func New(cfg Config, hl *highlighter.Highlighter) *Engine {
	if cfg.Speed <= 0 {
		cfg.Speed = config.DefaultSpeedMs * time.Millisecond
	}
	if cfg.DialogSpeed <= 0 {
		cfg.DialogSpeed = config.DefaultDialogSpeed
	}
	if cfg.TargetFPS <= 0 {
		cfg.TargetFPS = config.DefaultTargetFPS
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	now := cfg.Now()
	return &Engine{
		Buffer:         NewBuffer(),
		State:          StateIdle,
		CursorVisible:  true,
		ActivePane:     PaneTerminal,
		speed:          cfg.Speed,
		dialogSpeed:    cfg.DialogSpeed,
		nextDelay:      cfg.Speed,
		lastUpdate:     now,
		blinkAt:        now,
		frameInterval:  time.Second / time.Duration(cfg.TargetFPS),
		lastFrame:      now,
		viewportHeight: 20,
		hl:             hl,
		tracker:        newOffsetTracker(),
		now:            cfg.Now,
		rng:            cfg.Rand,
	}
}

// SetViewportHeight tells the engine how many editor rows are visible, so
// scrolling can keep the cursor centered.
func (e *Engine) SetViewportHeight(height int) {
	e.viewportHeight = height
}

// CurrentCommit returns the commit whose metadata is currently displayed,
// or nil before the first reset step has run.
func (e *Engine) CurrentCommit() *git.Commit {
	return e.meta
}

// Finished reports whether the step stream has been exhausted.
func (e *Engine) Finished() bool {
	return e.State == StateFinished
}

// LineSpans returns the highlight spans to render for one buffer line,
// remapped for in-flight edits and rebased to line-relative byte offsets.
func (e *Engine) LineSpans(line int) []highlighter.Span {
	return e.tracker.lineSpans(e.Buffer, line)
}

// LoadCommit compiles a commit into a fresh step stream and starts playing
// it, discarding whatever was in flight. The commit's metadata is not
// displayed until its reset step executes, so the opening narration still
// renders under the previous commit's header.
func (e *Engine) LoadCommit(commit *git.Commit) {
	e.pendingMeta = commit
	e.steps = CompileCommit(commit, e.speed)
	e.current = 0
	e.State = StatePlaying
	e.lastUpdate = e.now()
	e.pauseUntil = time.Time{}
	e.Buffer = NewBuffer()
	e.tracker.reset()

	logger.Debugf("engine: loaded commit %s (%d steps, %d files)",
		commit.ShortHash(), len(e.steps), len(commit.Changes))
}

// Tick advances the animation and reports whether the display needs a
// redraw. Call it from the event loop at any cadence; the frame governor
// caps how often steps actually execute.
func (e *Engine) Tick() bool {
	e.updateBlink()

	if e.isPaused() {
		return true
	}
	if e.State != StatePlaying {
		return false
	}

	now := e.now()
	if now.Sub(e.lastFrame) < e.frameInterval {
		return false
	}

	executed := e.executeBatch(now)

	if e.current >= len(e.steps) {
		e.State = StateFinished
	}
	return executed
}

func (e *Engine) updateBlink() {
	now := e.now()
	if now.Sub(e.blinkAt) >= config.CursorBlinkInterval {
		e.CursorVisible = !e.CursorVisible
		e.blinkAt = now
	}
}

// isPaused reports whether a pause step's wake time is still in the future,
// clearing it once passed.
func (e *Engine) isPaused() bool {
	if e.pauseUntil.IsZero() {
		return false
	}
	if e.now().Before(e.pauseUntil) {
		return true
	}
	e.pauseUntil = time.Time{}
	return false
}

// executeBatch runs as many consecutive steps as fit in this frame's time
// budget: the first once its own delay has elapsed, then more while the sum
// of their declared delays stays within one frame interval. Bursts of
// near-zero-delay typing collapse into a single redraw.
func (e *Engine) executeBatch(frameStart time.Time) bool {
	var accumulated time.Duration
	executedAny := false

	for e.current < len(e.steps) {
		if !e.canExecute(executedAny, accumulated) {
			break
		}

		stepDelay := e.nextDelay
		e.executeStep(e.steps[e.current])
		e.current++
		executedAny = true
		accumulated += stepDelay

		if !e.pauseUntil.IsZero() {
			break
		}
	}

	if executedAny {
		e.lastUpdate = e.now()
		e.lastFrame = frameStart
	}
	return executedAny
}

func (e *Engine) canExecute(executedAny bool, accumulated time.Duration) bool {
	if !executedAny {
		return e.now().Sub(e.lastUpdate) >= e.nextDelay
	}
	return accumulated+e.nextDelay <= e.frameInterval
}

// executeStep applies one step to the simulated state. The delay until the
// next step is drawn here, at execution time, so each character gets fresh
// jitter.
func (e *Engine) executeStep(step Step) {
	switch step.Kind {
	case StepInsertChar, StepTerminalTypeChar:
		e.nextDelay = time.Duration(float64(e.speed) * e.jitter())
	case StepDialogTypeChar:
		e.nextDelay = time.Duration(float64(e.speed) * e.dialogSpeed * e.jitter())
	default:
		e.nextDelay = e.speed
	}

	switch step.Kind {
	case StepInsertChar:
		e.ActivePane = PaneEditor
		insertByte := 0
		if step.Line < len(e.Buffer.Lines) {
			insertByte = runeColToByte(e.Buffer.Lines[step.Line], step.Col)
		}
		e.Buffer.InsertChar(step.Line, step.Col, step.Ch)
		e.tracker.recordInsertChar(step.Line, insertByte, len(string(step.Ch)))
		e.Buffer.Cursor = types.Position{Line: step.Line, Col: step.Col + 1}

	case StepInsertLine:
		e.ActivePane = PaneEditor
		e.Buffer.InsertLine(step.Line, step.Content)
		e.tracker.recordInsertLine(step.Line)
		e.Buffer.Cursor = types.Position{Line: step.Line, Col: 0}

	case StepDeleteLine:
		e.ActivePane = PaneEditor
		removed := 0
		if step.Line < len(e.Buffer.Lines) {
			removed = len(e.Buffer.Lines[step.Line])
		}
		e.Buffer.DeleteLine(step.Line)
		e.tracker.recordDeleteLine(step.Line, removed)
		e.Buffer.Cursor = types.Position{Line: step.Line, Col: 0}

	case StepMoveCursor:
		e.ActivePane = PaneEditor
		e.Buffer.Cursor = types.Position{Line: step.Line, Col: step.Col}
		e.tracker.recordCursorMove(step.Line)

	case StepPause:
		e.pauseUntil = e.now().Add(step.Duration)

	case StepOpenFileDialog:
		e.DialogTitle = "Open File..."
		e.DialogText = ""

	case StepDialogTypeChar:
		e.DialogText += string(step.Ch)

	case StepSwitchFile:
		e.switchFile(step)

	case StepTerminalPrompt:
		e.ActivePane = PaneTerminal
		e.TerminalLines = append(e.TerminalLines, "~ ")

	case StepTerminalTypeChar:
		e.ActivePane = PaneTerminal
		if n := len(e.TerminalLines); n > 0 {
			e.TerminalLines[n-1] += string(step.Ch)
		}

	case StepTerminalOutput:
		e.ActivePane = PaneTerminal
		e.TerminalLines = append(e.TerminalLines, step.Text)

	case StepResetState:
		if e.pendingMeta != nil {
			e.meta = e.pendingMeta
			e.pendingMeta = nil
		}
		e.FileIndex = 0
		e.FilePath = ""
		e.Buffer = NewBuffer()
		e.tracker.reset()
		e.ActivePane = PaneTerminal
	}

	e.updateScroll()
}

// switchFile swaps the buffer to a file's pre-edit content and snapshots the
// highlight spans for both sides of the change.
func (e *Engine) switchFile(step Step) {
	e.ActivePane = PaneEditor
	e.DialogTitle = ""
	e.DialogText = ""
	e.FileIndex = step.FileIndex
	e.FilePath = step.Path

	e.Buffer = NewBufferFromContent(step.OldContent)
	e.tracker.reset()

	if !e.hl.SetLanguage(step.Path) {
		logger.Debugf("engine: no highlighting for %s", step.Path)
	}
	e.Buffer.OldSpans = e.hl.Highlight(step.OldContent)
	e.Buffer.NewSpans = e.hl.Highlight(step.NewContent)
	e.Buffer.OldLineOffsets = computeLineOffsets(step.OldContent)
	e.Buffer.NewLineOffsets = computeLineOffsets(step.NewContent)
	e.Buffer.CachedSpans = e.Buffer.OldSpans
}

// jitter draws the per-character typing variation in [0.7, 1.3].
func (e *Engine) jitter() float64 {
	return 0.7 + 0.6*e.rng.Float64()
}

// updateScroll keeps the cursor centered in the viewport where possible.
func (e *Engine) updateScroll() {
	if e.viewportHeight == 0 {
		return
	}

	cursorLine := e.Buffer.Cursor.Line
	totalLines := len(e.Buffer.Lines)
	half := e.viewportHeight / 2

	switch {
	case cursorLine < half:
		e.Buffer.ScrollOffset = 0
	case cursorLine+half >= totalLines:
		offset := totalLines - e.viewportHeight
		if offset < 0 {
			offset = 0
		}
		e.Buffer.ScrollOffset = offset
	default:
		e.Buffer.ScrollOffset = cursorLine - half
	}
}
