// internal/tui/layout.go
package tui

// Rect is a screen region in cell coordinates.
type Rect struct {
	X, Y, W, H int
}

// Layout is the fixed pane arrangement: file tree on the left, editor over
// terminal on the right, status bar along the bottom.
type Layout struct {
	FileTree  Rect
	Editor    Rect
	Terminal  Rect
	StatusBar Rect
}

const statusBarHeight = 3

// ComputeLayout splits the screen: 30% width for the file tree, the rest
// divided 80/20 between editor and terminal, with the status bar below.
func ComputeLayout(width, height int) Layout {
	contentHeight := height - statusBarHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	treeWidth := width * 30 / 100
	rightWidth := width - treeWidth
	editorHeight := contentHeight * 80 / 100
	terminalHeight := contentHeight - editorHeight

	return Layout{
		FileTree:  Rect{X: 0, Y: 0, W: treeWidth, H: contentHeight},
		Editor:    Rect{X: treeWidth, Y: 0, W: rightWidth, H: editorHeight},
		Terminal:  Rect{X: treeWidth, Y: editorHeight, W: rightWidth, H: terminalHeight},
		StatusBar: Rect{X: 0, Y: contentHeight, W: width, H: statusBarHeight},
	}
}

// EditorViewportHeight is the number of buffer rows visible inside the
// editor pane's borders.
func (l Layout) EditorViewportHeight() int {
	h := l.Editor.H - 2
	if h < 0 {
		return 0
	}
	return h
}
