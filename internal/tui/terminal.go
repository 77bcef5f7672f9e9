// internal/tui/terminal.go
package tui

import (
	"strings"

	"github.com/gitlapse/gitlapse/internal/engine"
	"github.com/gitlapse/gitlapse/internal/theme"
)

// DrawTerminal renders the simulated terminal pane: the transcript's tail,
// prompt lines styled as commands, and a trailing block cursor while the
// terminal is the active pane.
func DrawTerminal(t *TUI, area Rect, eng *engine.Engine, th *theme.Theme) {
	t.Fill(area, th.GetStyle("Default"))

	borderStyle := th.GetStyle("Border")
	if eng.ActivePane == engine.PaneTerminal {
		borderStyle = th.GetStyle("BorderActive")
	}
	t.DrawBox(area, borderStyle, th.GetStyle("Title"), "Terminal")

	inner := area.Inner()
	if inner.W <= 0 || inner.H <= 0 {
		return
	}

	lines := eng.TerminalLines
	start := 0
	if len(lines) > inner.H {
		start = len(lines) - inner.H
	}

	showCursor := eng.CursorVisible && eng.ActivePane == engine.PaneTerminal

	for i, line := range lines[start:] {
		y := inner.Y + i
		isLast := start+i == len(lines)-1

		var drawn int
		if strings.HasPrefix(line, "~ ") {
			drawn = t.DrawText(inner.X, y, inner.W, th.GetStyle("TerminalPrompt"), "~ ")
			drawn += t.DrawText(inner.X+drawn, y, inner.W-drawn, th.GetStyle("TerminalCommand"), line[2:])
		} else {
			drawn = t.DrawText(inner.X, y, inner.W, th.GetStyle("Default"), line)
		}

		if isLast && showCursor && drawn < inner.W {
			t.screen.SetContent(inner.X+drawn, y, ' ', nil, th.GetStyle("Cursor"))
		}
	}
}
