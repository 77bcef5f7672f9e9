// internal/engine/compiler.go
package engine

import (
	"fmt"
	"time"

	"github.com/gitlapse/gitlapse/internal/git"
)

// Pause lengths, expressed as multiples of the base typing speed so the
// whole replay scales with one knob.
const (
	cursorMovePause    = 0.5
	deleteLinePause    = 10.0
	insertLinePause    = 6.7
	hunkPause          = 50.0
	checkoutPause      = 16.7
	checkoutOutPause   = 33.3
	openFileFirstPause = 33.3
	openFilePause      = 50.0
	openCmdPause       = 16.7
	dialogOpenPause    = 5.0
	fileSwitchPause    = 26.7
	gitAddPause        = 33.3
	gitAddCmdPause     = 16.7
	gitCommitPause     = 26.7
	commitOutPause     = 33.3
	gitPushPause       = 16.7
	pushOutPause       = 10.0
	pushFinalPause     = 66.7
)

// compiler turns one commit into a flat step stream. It is pure: the same
// commit and speed always yield the same steps. Timing variation is applied
// later, when the scheduler executes each step.
type compiler struct {
	speed time.Duration
	steps []Step
}

// CompileCommit builds the full replay stream for a commit at the given base
// typing speed: terminal preamble, per-file editing animation, then the
// commit and push narration.
func CompileCommit(commit *git.Commit, speed time.Duration) []Step {
	c := &compiler{speed: speed}

	c.compilePreamble(commit)

	for index, change := range commit.Changes {
		switch {
		case change.IsExcluded:
			c.compileExcludedFile(&change)
		case change.Status == git.StatusDeleted:
			c.compileDeletedFile(&change)
		case change.Status == git.StatusRenamed:
			c.compileRenamedFile(&change)
		default:
			c.compileEditedFile(index, &change)
		}
	}

	c.compileCommitAndPush(commit)
	return c.steps
}

func (c *compiler) push(s Step) {
	c.steps = append(c.steps, s)
}

// pause appends a pause of mult times the base speed.
func (c *compiler) pause(mult float64) {
	c.push(Step{Kind: StepPause, Duration: time.Duration(float64(c.speed) * mult)})
}

func (c *compiler) output(text string) {
	c.push(Step{Kind: StepTerminalOutput, Text: text})
}

// terminalCommand emits a fresh prompt line and types the command onto it.
func (c *compiler) terminalCommand(command string) {
	c.push(Step{Kind: StepTerminalPrompt})
	for _, ch := range command {
		c.push(Step{Kind: StepTerminalTypeChar, Ch: ch})
	}
}

// compilePreamble plays the time-travel sequence that introduces a commit,
// ending with the reset that applies the commit's metadata.
func (c *compiler) compilePreamble(commit *git.Commit) {
	datetime := commit.Date.Format("2006-01-02 15:04:05")

	c.terminalCommand(fmt.Sprintf("time-travel %s", datetime))
	c.pause(checkoutPause)
	c.output("⚡ Initializing temporal displacement field...")
	c.pause(checkoutOutPause * 0.5)
	c.output("✨ Warping through spacetime...")
	c.pause(checkoutOutPause * 0.5)
	c.output(fmt.Sprintf("🕰️  Arrived at %s", datetime))
	c.output(fmt.Sprintf("📍 Location: commit %s by %s", commit.ShortHash(), commit.Author))
	c.pause(checkoutOutPause)

	c.push(Step{Kind: StepResetState})
}

func (c *compiler) compileExcludedFile(change *git.FileChange) {
	c.pause(openFilePause)
	c.output(fmt.Sprintf("📦 %s (skipped - generated file)", change.Path))
	c.pause(openCmdPause)
}

func (c *compiler) compileDeletedFile(change *git.FileChange) {
	c.pause(gitAddPause)
	c.terminalCommand(fmt.Sprintf("rm %s", change.Path))
	c.pause(gitAddCmdPause)
	c.terminalCommand(fmt.Sprintf("git add %s", change.Path))
	c.pause(gitAddCmdPause)
}

func (c *compiler) compileRenamedFile(change *git.FileChange) {
	c.pause(gitAddPause)
	if change.OldPath != "" {
		c.terminalCommand(fmt.Sprintf("mv %s %s", change.OldPath, change.Path))
		c.pause(gitAddCmdPause)
	}
	c.terminalCommand(fmt.Sprintf("git add %s", change.Path))
	c.pause(gitAddCmdPause)
}

// compileEditedFile opens a file via the dialog, replays its hunks as live
// edits, then stages it.
func (c *compiler) compileEditedFile(index int, change *git.FileChange) {
	if index == 0 {
		c.pause(openFileFirstPause)
	} else {
		c.pause(openFilePause)
	}

	c.push(Step{Kind: StepOpenFileDialog})
	c.pause(dialogOpenPause)
	for _, ch := range change.Path {
		c.push(Step{Kind: StepDialogTypeChar, Ch: ch})
	}
	c.pause(openCmdPause)

	c.push(Step{
		Kind:       StepSwitchFile,
		FileIndex:  index,
		OldContent: change.OldContent,
		NewContent: change.NewContent,
		Path:       change.Path,
	})
	c.pause(fileSwitchPause)

	c.compileFileEdits(change)

	c.pause(gitAddPause)
	c.terminalCommand(fmt.Sprintf("git add %s", change.Path))
	c.pause(gitAddCmdPause)
}

// compileFileEdits walks a file's hunks in order. lineOffset tracks how far
// the live buffer has drifted from the old file's line numbering, so later
// hunk anchors (which reference old-file lines) land on the right buffer line.
func (c *compiler) compileFileEdits(change *git.FileChange) {
	cursorLine := 0
	lineOffset := 0

	for i := range change.Hunks {
		hunk := &change.Hunks[i]

		targetLine := hunk.OldStart - 1 + lineOffset
		if targetLine < 0 {
			targetLine = 0
		}

		cursorLine = c.compileCursorTravel(cursorLine, targetLine)
		cursorLine = c.compileHunk(hunk, cursorLine, targetLine)

		additions, deletions := 0, 0
		for _, line := range hunk.Lines {
			switch line.Kind {
			case git.LineAddition:
				additions++
			case git.LineDeletion:
				deletions++
			}
		}
		lineOffset += additions - deletions

		c.pause(hunkPause)
	}
}

// compileCursorTravel emits the eased waypoint hops from one line to
// another and returns the destination line.
func (c *compiler) compileCursorTravel(fromLine, toLine int) int {
	waypoints := planCursorPath(fromLine, toLine)
	if len(waypoints) == 0 {
		return toLine
	}

	distance := toLine - fromLine
	if distance < 0 {
		distance = -distance
	}
	hopPause := float64(c.speed) * cursorMovePause * motionSpeedMultiplier(distance)
	if hopPause < float64(time.Millisecond) {
		hopPause = float64(time.Millisecond)
	}

	for _, line := range waypoints {
		if line == fromLine {
			continue
		}
		c.push(Step{Kind: StepMoveCursor, Line: line, Col: 0})
		c.push(Step{Kind: StepPause, Duration: time.Duration(hopPause)})
	}
	return toLine
}

// compileHunk replays one hunk's lines against the buffer position.
// bufferLine tracks where the next diff line applies; deletions keep it in
// place (the following line slides up), additions and context advance it.
// Returns the cursor's final line.
func (c *compiler) compileHunk(hunk *git.Hunk, startCursorLine, startBufferLine int) int {
	bufferLine := startBufferLine
	cursorLine := startCursorLine

	for _, line := range hunk.Lines {
		switch line.Kind {
		case git.LineDeletion:
			c.push(Step{Kind: StepDeleteLine, Line: bufferLine})
			c.pause(deleteLinePause)
			cursorLine = bufferLine

		case git.LineAddition:
			c.push(Step{Kind: StepInsertLine, Line: bufferLine, Content: ""})
			col := 0
			for _, ch := range line.Content {
				c.push(Step{Kind: StepInsertChar, Line: bufferLine, Col: col, Ch: ch})
				col++
			}
			cursorLine = bufferLine
			bufferLine++
			c.pause(insertLinePause)

		case git.LineContext:
			if bufferLine != cursorLine {
				c.push(Step{Kind: StepMoveCursor, Line: bufferLine, Col: 0})
				c.pause(cursorMovePause)
			}
			cursorLine = bufferLine
			bufferLine++
		}
	}

	return cursorLine
}

// compileCommitAndPush narrates staging the commit and pushing it upstream.
func (c *compiler) compileCommitAndPush(commit *git.Commit) {
	message := commit.Summary()
	if message == "" {
		message = "Update"
	}

	c.terminalCommand(fmt.Sprintf("git commit -m %q", message))
	c.pause(gitCommitPause)
	c.output(fmt.Sprintf("💾 [main %s] %s", commit.ShortHash(), message))
	plural := "s"
	if len(commit.Changes) == 1 {
		plural = ""
	}
	c.output(fmt.Sprintf("📝 %d file%s changed - immortalized forever!", len(commit.Changes), plural))
	c.pause(commitOutPause)

	c.terminalCommand("git push origin main")
	c.pause(gitPushPause)
	c.output("🚀 Launching code into the cloud...")
	c.pause(pushOutPause)
	c.output("📦 Compressing digital dreams: 100% (5/5)")
	c.pause(pushOutPause)
	c.output("✍️  Signing with invisible ink: done.")
	c.pause(gitPushPause)
	c.output("📡 Beaming to origin/main via satellite...")
	c.pause(pushOutPause)
	c.output(fmt.Sprintf("   %s^..%s ✨ SUCCESS", commit.ShortHash(), commit.ShortHash()))
	c.pause(pushFinalPause)
}
