// internal/tui/statusbar.go
package tui

import (
	"fmt"

	"github.com/gitlapse/gitlapse/internal/engine"
	"github.com/gitlapse/gitlapse/internal/theme"
)

// DrawStatusBar renders the displayed commit's hash, author, date, and
// message summary along the bottom of the screen.
func DrawStatusBar(t *TUI, area Rect, eng *engine.Engine, th *theme.Theme) {
	barStyle := th.GetStyle("StatusBar")
	t.Fill(area, barStyle)
	t.DrawBox(area, th.GetStyle("Border"), th.GetStyle("Title"), "Commit")

	inner := area.Inner()
	if inner.W <= 0 || inner.H <= 0 {
		return
	}

	commit := eng.CurrentCommit()
	if commit == nil {
		t.DrawText(inner.X+1, inner.Y, inner.W-1, barStyle, "Waiting for first commit...")
		return
	}

	x := inner.X + 1
	x += t.DrawText(x, inner.Y, inner.W, th.GetStyle("StatusBarHash"), commit.ShortHash())
	x += t.DrawText(x, inner.Y, inner.W, barStyle, "  ")
	x += t.DrawText(x, inner.Y, inner.W, th.GetStyle("StatusBarAuthor"), commit.Author)
	x += t.DrawText(x, inner.Y, inner.W, barStyle,
		fmt.Sprintf("  %s  ", commit.Date.Format("2006-01-02 15:04")))

	remaining := inner.X + inner.W - x
	if remaining > 0 {
		t.DrawText(x, inner.Y, remaining, barStyle, commit.Summary())
	}
}
