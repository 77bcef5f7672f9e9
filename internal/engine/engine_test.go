// internal/engine/engine_test.go
package engine

import (
	"math/rand"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/gitlapse/gitlapse/internal/git"
	"github.com/gitlapse/gitlapse/internal/highlighter"
)

// fakeClock drives the engine's notion of time in tests.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestEngine(clock *fakeClock, speed time.Duration) *Engine {
	return New(Config{
		Speed: speed,
		Now:   clock.now,
		Rand:  rand.New(rand.NewSource(1)),
	}, nil)
}

func TestTickIdleDoesNothing(t *testing.T) {
	clock := newFakeClock()
	e := newTestEngine(clock, 30*time.Millisecond)

	clock.advance(time.Second)
	if e.Tick() {
		t.Error("idle engine reported a redraw")
	}
	if e.State != StateIdle {
		t.Errorf("state = %v, want StateIdle", e.State)
	}
}

func TestPauseBlocksStepsButRequestsRedraw(t *testing.T) {
	clock := newFakeClock()
	e := newTestEngine(clock, 10*time.Millisecond)
	e.steps = []Step{
		{Kind: StepPause, Duration: 100 * time.Millisecond},
		{Kind: StepTerminalOutput, Text: "after"},
	}
	e.State = StatePlaying

	// Let the first step's delay and a frame elapse, then execute the pause.
	clock.advance(20 * time.Millisecond)
	if !e.Tick() {
		t.Fatal("pause step did not execute")
	}
	if e.current != 1 {
		t.Fatalf("current = %d after pause executed, want 1", e.current)
	}

	// Every tick inside the pause window needs a redraw (cursor blink) but
	// advances nothing.
	for i := 0; i < 9; i++ {
		clock.advance(10 * time.Millisecond)
		if !e.Tick() {
			t.Fatalf("tick %d during pause returned false", i)
		}
		if e.current != 1 {
			t.Fatalf("tick %d during pause advanced steps", i)
		}
	}

	// Past the wake time the stream resumes.
	clock.advance(50 * time.Millisecond)
	if !e.Tick() {
		t.Fatal("tick after pause did not execute")
	}
	if len(e.TerminalLines) != 1 || e.TerminalLines[0] != "after" {
		t.Errorf("terminal = %v, want [after]", e.TerminalLines)
	}
}

func TestFrameGovernorGatesExecution(t *testing.T) {
	clock := newFakeClock()
	e := newTestEngine(clock, 10*time.Millisecond)
	e.steps = []Step{{Kind: StepTerminalOutput, Text: "x"}}
	e.State = StatePlaying

	// Inside the frame interval nothing runs even though the step is due.
	clock.advance(time.Millisecond)
	if e.Tick() {
		t.Error("tick executed within the frame interval")
	}
}

func TestBatchCollapsesZeroDelaySteps(t *testing.T) {
	clock := newFakeClock()
	e := newTestEngine(clock, time.Nanosecond)

	const n = 50
	steps := make([]Step, n)
	for i := range steps {
		steps[i] = Step{Kind: StepTerminalOutput, Text: "line"}
	}
	e.steps = steps
	e.State = StatePlaying

	clock.advance(20 * time.Millisecond)
	if !e.Tick() {
		t.Fatal("tick executed nothing")
	}
	if e.current != n {
		t.Errorf("one tick executed %d of %d near-zero-delay steps", e.current, n)
	}
	if e.State != StateFinished {
		t.Errorf("state = %v, want StateFinished", e.State)
	}
}

func TestCursorBlinkTogglesEvery500ms(t *testing.T) {
	clock := newFakeClock()
	e := newTestEngine(clock, 30*time.Millisecond)

	if !e.CursorVisible {
		t.Fatal("cursor starts hidden")
	}
	clock.advance(499 * time.Millisecond)
	e.Tick()
	if !e.CursorVisible {
		t.Error("cursor toggled before the blink interval")
	}
	clock.advance(2 * time.Millisecond)
	e.Tick()
	if e.CursorVisible {
		t.Error("cursor did not toggle after the blink interval")
	}
}

func TestJitterBounds(t *testing.T) {
	clock := newFakeClock()
	e := newTestEngine(clock, 30*time.Millisecond)

	for i := 0; i < 1000; i++ {
		j := e.jitter()
		if j < 0.7 || j > 1.3 {
			t.Fatalf("jitter draw %d = %v, outside [0.7, 1.3]", i, j)
		}
	}
}

func TestTypingDelayJittered(t *testing.T) {
	clock := newFakeClock()
	speed := 30 * time.Millisecond
	e := newTestEngine(clock, speed)

	e.executeStep(Step{Kind: StepInsertChar, Line: 0, Col: 0, Ch: 'a'})
	min := time.Duration(float64(speed) * 0.7)
	max := time.Duration(float64(speed) * 1.3)
	if e.nextDelay < min || e.nextDelay > max {
		t.Errorf("typing delay = %v, want within [%v, %v]", e.nextDelay, min, max)
	}

	// Dialog typing doubles the base before jitter.
	e.executeStep(Step{Kind: StepDialogTypeChar, Ch: 'a'})
	if e.nextDelay < 2*min || e.nextDelay > 2*max {
		t.Errorf("dialog delay = %v, want within [%v, %v]", e.nextDelay, 2*min, 2*max)
	}

	// Non-typing steps use the base speed unmodified.
	e.executeStep(Step{Kind: StepMoveCursor, Line: 0, Col: 0})
	if e.nextDelay != speed {
		t.Errorf("move delay = %v, want %v", e.nextDelay, speed)
	}
}

func TestResetStateAppliesPendingMetadata(t *testing.T) {
	clock := newFakeClock()
	e := newTestEngine(clock, 30*time.Millisecond)

	commit := &git.Commit{Hash: "deadbeef00", Author: "Ada", Message: "m"}
	e.LoadCommit(commit)

	if e.CurrentCommit() != nil {
		t.Error("metadata applied before the reset step ran")
	}

	e.executeStep(Step{Kind: StepResetState})
	if e.CurrentCommit() != commit {
		t.Error("reset step did not apply pending metadata")
	}
	if e.FilePath != "" || e.ActivePane != PaneTerminal {
		t.Error("reset step did not clear file state")
	}
	if len(e.Buffer.Lines) != 1 || e.Buffer.Lines[0] != "" {
		t.Errorf("buffer after reset = %v, want single empty line", e.Buffer.Lines)
	}
}

func TestLoadCommitRestartsPlayback(t *testing.T) {
	clock := newFakeClock()
	e := newTestEngine(clock, 30*time.Millisecond)
	e.State = StateFinished
	e.pauseUntil = clock.now().Add(time.Hour)

	e.LoadCommit(&git.Commit{Hash: "deadbeef00", Message: "m"})

	if e.State != StatePlaying {
		t.Errorf("state = %v, want StatePlaying", e.State)
	}
	if !e.pauseUntil.IsZero() {
		t.Error("pending pause survived LoadCommit")
	}
	if e.current != 0 {
		t.Errorf("current = %d, want 0", e.current)
	}
}

func TestTerminalSteps(t *testing.T) {
	clock := newFakeClock()
	e := newTestEngine(clock, 30*time.Millisecond)

	e.executeStep(Step{Kind: StepTerminalPrompt})
	for _, ch := range "git status" {
		e.executeStep(Step{Kind: StepTerminalTypeChar, Ch: ch})
	}
	e.executeStep(Step{Kind: StepTerminalOutput, Text: "clean"})

	want := []string{"~ git status", "clean"}
	if !reflect.DeepEqual(e.TerminalLines, want) {
		t.Errorf("terminal = %v, want %v", e.TerminalLines, want)
	}
	if e.ActivePane != PaneTerminal {
		t.Errorf("active pane = %v, want PaneTerminal", e.ActivePane)
	}
}

func TestScrollCentersCursor(t *testing.T) {
	clock := newFakeClock()
	e := newTestEngine(clock, 30*time.Millisecond)
	e.SetViewportHeight(10)
	e.Buffer = NewBufferFromContent(strings.Repeat("line\n", 100))

	e.executeStep(Step{Kind: StepMoveCursor, Line: 50, Col: 0})
	if e.Buffer.ScrollOffset != 45 {
		t.Errorf("scroll offset = %d, want 45", e.Buffer.ScrollOffset)
	}

	e.executeStep(Step{Kind: StepMoveCursor, Line: 2, Col: 0})
	if e.Buffer.ScrollOffset != 0 {
		t.Errorf("scroll offset near top = %d, want 0", e.Buffer.ScrollOffset)
	}

	e.executeStep(Step{Kind: StepMoveCursor, Line: 99, Col: 0})
	if e.Buffer.ScrollOffset != 90 {
		t.Errorf("scroll offset near bottom = %d, want 90", e.Buffer.ScrollOffset)
	}
}

func TestFullPlaybackReachesNewContent(t *testing.T) {
	clock := newFakeClock()
	hl := highlighter.New()
	e := New(Config{
		Speed: 5 * time.Millisecond,
		Now:   clock.now,
		Rand:  rand.New(rand.NewSource(7)),
	}, hl)

	oldContent := "package main\n\nfunc main() {\n}"
	newContent := "package main\n\nfunc main() {\n\tprintln(\"hi\")\n}"
	commit := &git.Commit{
		Hash:    "abc1234def",
		Author:  "Ada",
		Date:    time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		Message: "add greeting",
		Changes: []git.FileChange{{
			Path:       "main.go",
			Status:     git.StatusModified,
			OldContent: oldContent,
			NewContent: newContent,
			Hunks: []git.Hunk{{
				OldStart: 4, OldLines: 1, NewStart: 4, NewLines: 2,
				Lines: []git.LineChange{
					{Kind: git.LineAddition, Content: "\tprintln(\"hi\")"},
				},
			}},
		}},
	}

	e.LoadCommit(commit)

	for i := 0; i < 100000 && !e.Finished(); i++ {
		clock.advance(25 * time.Millisecond)
		e.Tick()
	}

	if !e.Finished() {
		t.Fatal("playback never finished")
	}
	if !reflect.DeepEqual(e.Buffer.Lines, SplitLines(newContent)) {
		t.Errorf("final buffer = %v\nwant %v", e.Buffer.Lines, SplitLines(newContent))
	}
	if e.FilePath != "main.go" {
		t.Errorf("file path = %q, want main.go", e.FilePath)
	}
	if e.CurrentCommit() != commit {
		t.Error("commit metadata never applied")
	}

	transcript := strings.Join(e.TerminalLines, "\n")
	for _, want := range []string{"time-travel", "git add main.go", "git push origin main", "SUCCESS"} {
		if !strings.Contains(transcript, want) {
			t.Errorf("transcript missing %q", want)
		}
	}
}
