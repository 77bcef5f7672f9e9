// internal/tui/draw.go
package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Fill paints a region with the given style.
func (t *TUI) Fill(r Rect, style tcell.Style) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			t.screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

// DrawText draws text starting at (x, y), clipped to maxWidth cells, and
// returns the visual width consumed. Grapheme clusters are drawn whole so
// wide characters occupy their full cell span.
func (t *TUI) DrawText(x, y, maxWidth int, style tcell.Style, text string) int {
	if maxWidth <= 0 {
		return 0
	}

	drawn := 0
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		runes := gr.Runes()
		width := gr.Width()
		if width == 0 {
			width = 1
		}
		if drawn+width > maxWidth {
			break
		}

		t.screen.SetContent(x+drawn, y, runes[0], runes[1:], style)
		for cw := 1; cw < width; cw++ {
			t.screen.SetContent(x+drawn+cw, y, ' ', nil, style)
		}
		drawn += width
	}
	return drawn
}

// DrawBox draws a single-line border around a region with an optional title
// on the top edge.
func (t *TUI) DrawBox(r Rect, borderStyle, titleStyle tcell.Style, title string) {
	if r.W < 2 || r.H < 2 {
		return
	}

	right := r.X + r.W - 1
	bottom := r.Y + r.H - 1

	for x := r.X + 1; x < right; x++ {
		t.screen.SetContent(x, r.Y, tcell.RuneHLine, nil, borderStyle)
		t.screen.SetContent(x, bottom, tcell.RuneHLine, nil, borderStyle)
	}
	for y := r.Y + 1; y < bottom; y++ {
		t.screen.SetContent(r.X, y, tcell.RuneVLine, nil, borderStyle)
		t.screen.SetContent(right, y, tcell.RuneVLine, nil, borderStyle)
	}
	t.screen.SetContent(r.X, r.Y, tcell.RuneULCorner, nil, borderStyle)
	t.screen.SetContent(right, r.Y, tcell.RuneURCorner, nil, borderStyle)
	t.screen.SetContent(r.X, bottom, tcell.RuneLLCorner, nil, borderStyle)
	t.screen.SetContent(right, bottom, tcell.RuneLRCorner, nil, borderStyle)

	if title != "" && r.W > 4 {
		t.DrawText(r.X+2, r.Y, r.W-4, titleStyle, " "+title+" ")
	}
}

// Inner returns the region inside a box's borders.
func (r Rect) Inner() Rect {
	inner := Rect{X: r.X + 1, Y: r.Y + 1, W: r.W - 2, H: r.H - 2}
	if inner.W < 0 {
		inner.W = 0
	}
	if inner.H < 0 {
		inner.H = 0
	}
	return inner
}

// visualWidth is the display width of a string in terminal cells.
func visualWidth(s string) int {
	return uniseg.StringWidth(s)
}
