// internal/tui/dialog.go
package tui

import (
	"github.com/gitlapse/gitlapse/internal/engine"
	"github.com/gitlapse/gitlapse/internal/theme"
)

// DrawDialog renders the open-file dialog overlay while a path is being
// typed into it. No-op when no dialog is active.
func DrawDialog(t *TUI, screenW, screenH int, eng *engine.Engine, th *theme.Theme) {
	if eng.DialogTitle == "" {
		return
	}

	width := screenW / 2
	if min := visualWidth(eng.DialogText) + 6; width < min {
		width = min
	}
	if width > screenW-2 {
		width = screenW - 2
	}
	height := 3

	area := Rect{
		X: (screenW - width) / 2,
		Y: screenH / 3,
		W: width,
		H: height,
	}

	dialogStyle := th.GetStyle("Dialog")
	t.Fill(area, dialogStyle)
	t.DrawBox(area, th.GetStyle("DialogTitle"), th.GetStyle("DialogTitle"), eng.DialogTitle)

	inner := area.Inner()
	if inner.W <= 1 || inner.H <= 0 {
		return
	}

	drawn := t.DrawText(inner.X+1, inner.Y, inner.W-1, dialogStyle, eng.DialogText)
	if eng.CursorVisible && inner.X+1+drawn < inner.X+inner.W {
		t.screen.SetContent(inner.X+1+drawn, inner.Y, ' ', nil, th.GetStyle("Cursor"))
	}
}
