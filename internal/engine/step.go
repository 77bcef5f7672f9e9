// internal/engine/step.go
package engine

import "time"

// StepKind tags an animation step variant.
type StepKind int

const (
	StepInsertChar StepKind = iota
	StepInsertLine
	StepDeleteLine
	StepMoveCursor
	StepPause
	StepSwitchFile
	StepOpenFileDialog
	StepDialogTypeChar
	StepTerminalPrompt
	StepTerminalTypeChar
	StepTerminalOutput
	StepResetState
)

// Step is one unit of the compiled replay stream. Only the fields relevant
// to its Kind are set. Steps are immutable once compiled and are consumed
// strictly in order by the scheduler.
type Step struct {
	Kind StepKind

	Line int  // StepInsertChar, StepInsertLine, StepDeleteLine, StepMoveCursor
	Col  int  // StepInsertChar, StepMoveCursor (rune index)
	Ch   rune // StepInsertChar, StepDialogTypeChar, StepTerminalTypeChar

	Content string // StepInsertLine
	Text    string // StepTerminalOutput

	Duration time.Duration // StepPause

	FileIndex  int    // StepSwitchFile
	OldContent string // StepSwitchFile
	NewContent string // StepSwitchFile
	Path       string // StepSwitchFile
}
