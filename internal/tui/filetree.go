// internal/tui/filetree.go
package tui

import (
	"sort"

	"github.com/gdamore/tcell/v2"
	"github.com/gitlapse/gitlapse/internal/engine"
	"github.com/gitlapse/gitlapse/internal/git"
	"github.com/gitlapse/gitlapse/internal/theme"
)

type treeRow struct {
	text      string
	style     tcell.Style
	statusCh  string
	fileIndex int // -1 for directory headers
}

// DrawFileTree renders the commit's files grouped by directory, with their
// status letters and a marker on the file currently being replayed.
func DrawFileTree(t *TUI, area Rect, eng *engine.Engine, th *theme.Theme) {
	t.Fill(area, th.GetStyle("Default"))
	t.DrawBox(area, th.GetStyle("Border"), th.GetStyle("Title"), "Files")

	inner := area.Inner()
	if inner.W <= 0 || inner.H <= 0 {
		return
	}

	commit := eng.CurrentCommit()
	if commit == nil {
		t.DrawText(inner.X+1, inner.Y, inner.W-1, th.GetStyle("comment"), "No commit loaded")
		return
	}

	rows := buildTreeRows(commit, eng.FileIndex, th)

	// Keep the current file visible.
	currentRow := 0
	for i, row := range rows {
		if row.fileIndex == eng.FileIndex {
			currentRow = i
			break
		}
	}
	scroll := 0
	if currentRow >= inner.H {
		scroll = currentRow - inner.H + 1
	}

	for i := 0; i < inner.H && scroll+i < len(rows); i++ {
		row := rows[scroll+i]
		y := inner.Y + i
		x := inner.X

		if row.statusCh != "" {
			x += t.DrawText(x, y, inner.W, statusStyle(row.statusCh, th), row.statusCh+" ")
		}
		t.DrawText(x, y, inner.X+inner.W-x, row.style, row.text)
	}
}

// buildTreeRows groups changed files by directory in display order.
func buildTreeRows(commit *git.Commit, currentIndex int, th *theme.Theme) []treeRow {
	byDir := make(map[string][]int)
	var dirs []string
	for _, idx := range commit.SortedFileIndices() {
		dir := dirOf(commit.Changes[idx].Path)
		if _, ok := byDir[dir]; !ok {
			dirs = append(dirs, dir)
		}
		byDir[dir] = append(byDir[dir], idx)
	}
	sort.Strings(dirs)

	var rows []treeRow
	for _, dir := range dirs {
		if dir != "" {
			rows = append(rows, treeRow{
				text:      dir + "/",
				style:     th.GetStyle("FileTreeDir"),
				fileIndex: -1,
			})
		}
		for _, idx := range byDir[dir] {
			change := commit.Changes[idx]
			name := baseOf(change.Path)

			style := th.GetStyle("FileTree")
			prefix := "  "
			if idx == currentIndex {
				style = th.GetStyle("FileTreeCurrent")
				prefix = "▶ "
			}
			if dir == "" {
				prefix = prefix[1:]
			}

			rows = append(rows, treeRow{
				text:      prefix + name,
				style:     style,
				statusCh:  change.Status.Letter(),
				fileIndex: idx,
			})
		}
	}
	return rows
}

func statusStyle(letter string, th *theme.Theme) tcell.Style {
	switch letter {
	case "A":
		return th.GetStyle("FileStatusAdded")
	case "D":
		return th.GetStyle("FileStatusDelete")
	default:
		return th.GetStyle("FileStatusModify")
	}
}

func dirOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[:i]
		}
	}
	return ""
}

func baseOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[i+1:]
		}
	}
	return path
}
