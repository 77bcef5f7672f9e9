// internal/tui/editor.go
package tui

import (
	"fmt"

	"github.com/gitlapse/gitlapse/internal/engine"
	"github.com/gitlapse/gitlapse/internal/highlighter"
	"github.com/gitlapse/gitlapse/internal/theme"
	"github.com/rivo/uniseg"
)

// DrawEditor renders the simulated editor pane: line-number gutter,
// syntax-colored buffer text, and the block cursor.
func DrawEditor(t *TUI, area Rect, eng *engine.Engine, th *theme.Theme) {
	defaultStyle := th.GetStyle("Default")
	t.Fill(area, defaultStyle)

	borderStyle := th.GetStyle("Border")
	if eng.ActivePane == engine.PaneEditor {
		borderStyle = th.GetStyle("BorderActive")
	}
	title := "Editor"
	if eng.FilePath != "" {
		title = eng.FilePath
	}
	t.DrawBox(area, borderStyle, th.GetStyle("Title"), title)

	inner := area.Inner()
	if inner.W <= 0 || inner.H <= 0 {
		return
	}

	lines := eng.Buffer.Lines
	scroll := eng.Buffer.ScrollOffset
	cursor := eng.Buffer.Cursor

	gutterWidth := len(fmt.Sprintf("%d", len(lines)))
	if gutterWidth < 3 {
		gutterWidth = 3
	}
	textX := inner.X + gutterWidth + 2
	textWidth := inner.W - gutterWidth - 2
	if textWidth <= 0 {
		return
	}

	showCursor := eng.CursorVisible && eng.ActivePane == engine.PaneEditor

	for row := 0; row < inner.H; row++ {
		lineIdx := scroll + row
		if lineIdx >= len(lines) {
			break
		}
		y := inner.Y + row
		isCursorLine := lineIdx == cursor.Line

		numStyle := th.GetStyle("LineNumber")
		if isCursorLine {
			numStyle = th.GetStyle("LineNumberActive")
		}
		t.DrawText(inner.X, y, gutterWidth, numStyle, fmt.Sprintf("%*d", gutterWidth, lineIdx+1))
		t.DrawText(inner.X+gutterWidth, y, 2, th.GetStyle("LineNumber"), "│ ")

		drawBufferLine(t, textX, y, textWidth, lines[lineIdx], eng.LineSpans(lineIdx), th,
			isCursorLine && showCursor, cursor.Col)
	}
}

// drawBufferLine draws one line's graphemes, picking each cluster's style
// from the line-relative highlight spans. The cursor renders as an inverted
// block at its rune column, or just past the end of the line.
func drawBufferLine(t *TUI, x, y, maxWidth int, line string, spans []highlighter.Span, th *theme.Theme, showCursor bool, cursorCol int) {
	defaultStyle := th.GetStyle("Default")
	cursorStyle := th.GetStyle("Cursor")

	drawn := 0
	byteIdx := 0
	runeIdx := 0

	gr := uniseg.NewGraphemes(line)
	for gr.Next() {
		runes := gr.Runes()
		width := gr.Width()
		if width == 0 {
			width = 1
		}
		if drawn+width > maxWidth {
			return
		}

		style := defaultStyle
		for _, span := range spans {
			if byteIdx >= span.Start && byteIdx < span.End {
				style = th.GetStyle(span.Kind.StyleName())
				break
			}
		}
		if showCursor && runeIdx == cursorCol {
			style = cursorStyle
		}

		t.screen.SetContent(x+drawn, y, runes[0], runes[1:], style)
		for cw := 1; cw < width; cw++ {
			t.screen.SetContent(x+drawn+cw, y, ' ', nil, style)
		}

		drawn += width
		for _, r := range runes {
			byteIdx += len(string(r))
			runeIdx++
		}
	}

	// Cursor past end of line.
	if showCursor && cursorCol >= runeIdx && drawn < maxWidth {
		t.screen.SetContent(x+drawn, y, ' ', nil, cursorStyle)
	}
}
