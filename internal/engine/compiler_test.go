// internal/engine/compiler_test.go
package engine

import (
	"reflect"
	"testing"
	"time"

	"github.com/gitlapse/gitlapse/internal/git"
)

const testSpeed = 30 * time.Millisecond

// replaySteps applies every buffer-mutating step to a fresh buffer seeded
// with the old content, ignoring timing and terminal steps.
func replaySteps(t *testing.T, steps []Step, oldContent string) *Buffer {
	t.Helper()
	b := NewBufferFromContent(oldContent)
	for _, s := range steps {
		switch s.Kind {
		case StepInsertChar:
			b.InsertChar(s.Line, s.Col, s.Ch)
		case StepInsertLine:
			b.InsertLine(s.Line, s.Content)
		case StepDeleteLine:
			b.DeleteLine(s.Line)
		}
	}
	return b
}

// editSteps filters a stream down to the buffer edits.
func editSteps(steps []Step) []Step {
	var out []Step
	for _, s := range steps {
		switch s.Kind {
		case StepInsertChar, StepInsertLine, StepDeleteLine:
			out = append(out, s)
		}
	}
	return out
}

func singleFileCommit(change git.FileChange) *git.Commit {
	return &git.Commit{
		Hash:    "abcdef0123456789",
		Author:  "Ada",
		Date:    time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Message: "test commit",
		Changes: []git.FileChange{change},
	}
}

func TestCompileSingleHunkReplacement(t *testing.T) {
	// Replace the middle line of a three-line file with two new lines.
	oldContent := "a\nold\nc"
	newContent := "a\nnew1\nnew2\nc"
	commit := singleFileCommit(git.FileChange{
		Path:       "main.go",
		Status:     git.StatusModified,
		OldContent: oldContent,
		NewContent: newContent,
		Hunks: []git.Hunk{{
			OldStart: 2, OldLines: 1, NewStart: 2, NewLines: 2,
			Lines: []git.LineChange{
				{Kind: git.LineDeletion, Content: "old"},
				{Kind: git.LineAddition, Content: "new1"},
				{Kind: git.LineAddition, Content: "new2"},
			},
		}},
	})

	steps := CompileCommit(commit, testSpeed)

	edits := editSteps(steps)
	want := []Step{
		{Kind: StepDeleteLine, Line: 1},
		{Kind: StepInsertLine, Line: 1, Content: ""},
		{Kind: StepInsertChar, Line: 1, Col: 0, Ch: 'n'},
		{Kind: StepInsertChar, Line: 1, Col: 1, Ch: 'e'},
		{Kind: StepInsertChar, Line: 1, Col: 2, Ch: 'w'},
		{Kind: StepInsertChar, Line: 1, Col: 3, Ch: '1'},
		{Kind: StepInsertLine, Line: 2, Content: ""},
		{Kind: StepInsertChar, Line: 2, Col: 0, Ch: 'n'},
		{Kind: StepInsertChar, Line: 2, Col: 1, Ch: 'e'},
		{Kind: StepInsertChar, Line: 2, Col: 2, Ch: 'w'},
		{Kind: StepInsertChar, Line: 2, Col: 3, Ch: '2'},
	}
	if !reflect.DeepEqual(edits, want) {
		t.Errorf("edit steps = %+v\nwant %+v", edits, want)
	}

	b := replaySteps(t, steps, oldContent)
	if !reflect.DeepEqual(b.Lines, SplitLines(newContent)) {
		t.Errorf("replayed buffer = %v, want %v", b.Lines, SplitLines(newContent))
	}
}

func TestCompileReplayMatchesNewContent(t *testing.T) {
	// Replay of compiled edits must reproduce the post-change file exactly,
	// so the compiler's cumulative line offset equals additions minus
	// deletions across hunks.
	oldContent := "one\ntwo\nthree\nfour\nfive\nsix\nseven\neight\nnine\nten"
	newContent := "one\nTWO\nthree\nfour\ninserted\nfive\nsix\nseven\nnine\nten"
	commit := singleFileCommit(git.FileChange{
		Path:       "lib.py",
		Status:     git.StatusModified,
		OldContent: oldContent,
		NewContent: newContent,
		Hunks: []git.Hunk{
			{
				OldStart: 2, OldLines: 1, NewStart: 2, NewLines: 1,
				Lines: []git.LineChange{
					{Kind: git.LineDeletion, Content: "two"},
					{Kind: git.LineAddition, Content: "TWO"},
				},
			},
			{
				OldStart: 5, OldLines: 0, NewStart: 5, NewLines: 1,
				Lines: []git.LineChange{
					{Kind: git.LineAddition, Content: "inserted"},
				},
			},
			{
				OldStart: 8, OldLines: 1, NewStart: 9, NewLines: 0,
				Lines: []git.LineChange{
					{Kind: git.LineDeletion, Content: "eight"},
				},
			},
		},
	})

	steps := CompileCommit(commit, testSpeed)
	b := replaySteps(t, steps, oldContent)

	if !reflect.DeepEqual(b.Lines, SplitLines(newContent)) {
		t.Errorf("replayed buffer = %v\nwant %v", b.Lines, SplitLines(newContent))
	}
}

func TestCompileExcludedFileSkipsEditor(t *testing.T) {
	commit := singleFileCommit(git.FileChange{
		Path:            "package-lock.json",
		Status:          git.StatusModified,
		IsExcluded:      true,
		ExclusionReason: "lock file",
	})

	steps := CompileCommit(commit, testSpeed)

	for _, s := range steps {
		switch s.Kind {
		case StepSwitchFile, StepInsertChar, StepInsertLine, StepDeleteLine, StepOpenFileDialog:
			t.Fatalf("excluded file produced editor step %v", s.Kind)
		}
	}
}

func TestCompileDeletedFileUsesTerminalOnly(t *testing.T) {
	commit := singleFileCommit(git.FileChange{
		Path:       "old.go",
		Status:     git.StatusDeleted,
		OldContent: "package old\n",
	})

	steps := CompileCommit(commit, testSpeed)

	var commands []string
	current := ""
	for _, s := range steps {
		switch s.Kind {
		case StepSwitchFile:
			t.Fatal("deleted file opened in editor")
		case StepTerminalPrompt:
			if current != "" {
				commands = append(commands, current)
			}
			current = ""
		case StepTerminalTypeChar:
			current += string(s.Ch)
		}
	}
	if current != "" {
		commands = append(commands, current)
	}

	want := []string{
		"time-travel 2024-03-01 12:00:00",
		"rm old.go",
		"git add old.go",
		`git commit -m "test commit"`,
		"git push origin main",
	}
	if !reflect.DeepEqual(commands, want) {
		t.Errorf("terminal commands = %v\nwant %v", commands, want)
	}
}

func TestCompileRenamedFileMoves(t *testing.T) {
	commit := singleFileCommit(git.FileChange{
		Path:    "pkg/new.go",
		OldPath: "pkg/old.go",
		Status:  git.StatusRenamed,
	})

	steps := CompileCommit(commit, testSpeed)

	typed := ""
	for _, s := range steps {
		if s.Kind == StepTerminalTypeChar {
			typed += string(s.Ch)
		}
		if s.Kind == StepTerminalPrompt {
			typed += "\n"
		}
	}
	if want := "mv pkg/old.go pkg/new.go"; !containsLine(typed, want) {
		t.Errorf("terminal input %q missing %q", typed, want)
	}
	if want := "git add pkg/new.go"; !containsLine(typed, want) {
		t.Errorf("terminal input %q missing %q", typed, want)
	}
}

func containsLine(text, line string) bool {
	for _, l := range SplitLines(text) {
		if l == line {
			return true
		}
	}
	return false
}

func TestCompileSecondHunkAccountsForOffset(t *testing.T) {
	// The first hunk adds two lines and deletes none, so the second hunk's
	// anchor (old-file line 10) must land on buffer line 11.
	commit := singleFileCommit(git.FileChange{
		Path:       "main.go",
		Status:     git.StatusModified,
		OldContent: "l1\nl2\nl3\nl4\nl5\nl6\nl7\nl8\nl9\nl10\nl11",
		NewContent: "l1\na\nb\nl2\nl3\nl4\nl5\nl6\nl7\nl8\nl9\nX\nl11",
		Hunks: []git.Hunk{
			{
				OldStart: 2, NewStart: 2,
				Lines: []git.LineChange{
					{Kind: git.LineAddition, Content: "a"},
					{Kind: git.LineAddition, Content: "b"},
				},
			},
			{
				OldStart: 10, NewStart: 12,
				Lines: []git.LineChange{
					{Kind: git.LineDeletion, Content: "l10"},
					{Kind: git.LineAddition, Content: "X"},
				},
			},
		},
	})

	steps := CompileCommit(commit, testSpeed)

	// Find the delete step of the second hunk.
	var deleteLine = -1
	for _, s := range steps {
		if s.Kind == StepDeleteLine {
			deleteLine = s.Line
		}
	}
	if deleteLine != 11 {
		t.Errorf("second hunk delete at line %d, want 11", deleteLine)
	}
}

func TestCompilePreambleEndsWithReset(t *testing.T) {
	commit := singleFileCommit(git.FileChange{Path: "a.go", Status: git.StatusAdded, NewContent: "x"})
	steps := CompileCommit(commit, testSpeed)

	resetIdx := -1
	firstFileIdx := -1
	for i, s := range steps {
		if s.Kind == StepResetState && resetIdx < 0 {
			resetIdx = i
		}
		if s.Kind == StepOpenFileDialog && firstFileIdx < 0 {
			firstFileIdx = i
		}
	}
	if resetIdx < 0 {
		t.Fatal("no reset step emitted")
	}
	if firstFileIdx >= 0 && firstFileIdx < resetIdx {
		t.Error("file dialog opened before the reset step")
	}
}
