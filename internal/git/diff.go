// internal/git/diff.go
package git

import (
	"strconv"
	"strings"
)

// fileDiff is one file's parsed section of a unified diff.
type fileDiff struct {
	oldPath string
	newPath string
	binary  bool
	hunks   []Hunk
}

// path returns the post-image path, falling back to the pre-image path for
// deletions.
func (fd *fileDiff) path() string {
	if fd.newPath != "" && fd.newPath != "/dev/null" {
		return fd.newPath
	}
	return fd.oldPath
}

// parseUnifiedDiff parses `git show`/`git diff` output into per-file hunks.
// It is tolerant of anything it does not recognize; unparseable sections are
// simply dropped, which at worst shortens the replay.
func parseUnifiedDiff(text string) []fileDiff {
	var files []fileDiff
	var current *fileDiff
	var hunk *Hunk

	flushHunk := func() {
		if current != nil && hunk != nil {
			current.hunks = append(current.hunks, *hunk)
		}
		hunk = nil
	}

	for _, line := range strings.Split(text, "\n") {
		switch {
		case strings.HasPrefix(line, "diff --git "):
			flushHunk()
			if current != nil {
				files = append(files, *current)
			}
			current = &fileDiff{}
			// "diff --git a/old b/new" only marks a new section;
			// the authoritative paths come from ---/+++ lines below.

		case strings.HasPrefix(line, "--- "):
			if current != nil {
				current.oldPath = stripPathPrefix(strings.TrimPrefix(line, "--- "))
			}

		case strings.HasPrefix(line, "+++ "):
			if current != nil {
				current.newPath = stripPathPrefix(strings.TrimPrefix(line, "+++ "))
			}

		case strings.HasPrefix(line, "Binary files "), strings.HasPrefix(line, "GIT binary patch"):
			if current != nil {
				current.binary = true
			}

		case strings.HasPrefix(line, "@@ "):
			flushHunk()
			if current == nil {
				continue
			}
			h, ok := parseHunkHeader(line)
			if ok {
				hunk = &h
			}

		case hunk != nil && strings.HasPrefix(line, "+"):
			hunk.Lines = append(hunk.Lines, LineChange{Kind: LineAddition, Content: line[1:]})

		case hunk != nil && strings.HasPrefix(line, "-"):
			hunk.Lines = append(hunk.Lines, LineChange{Kind: LineDeletion, Content: line[1:]})

		case hunk != nil && strings.HasPrefix(line, " "):
			hunk.Lines = append(hunk.Lines, LineChange{Kind: LineContext, Content: line[1:]})

		case hunk != nil && line == "":
			// Some diff emitters drop the leading space on blank context
			// lines. They still occupy a buffer line.
			hunk.Lines = append(hunk.Lines, LineChange{Kind: LineContext, Content: ""})

		case hunk != nil && strings.HasPrefix(line, `\`):
			// "\ No newline at end of file" is not buffer content.

		default:
			// Extended headers (index, mode, rename from/to) end any open hunk.
			if hunk != nil && line != "" {
				flushHunk()
			}
		}
	}

	flushHunk()
	if current != nil {
		files = append(files, *current)
	}
	return files
}

// parseHunkHeader parses "@@ -oldStart[,oldLines] +newStart[,newLines] @@ ...".
func parseHunkHeader(line string) (Hunk, bool) {
	rest := strings.TrimPrefix(line, "@@ ")
	end := strings.Index(rest, " @@")
	if end < 0 {
		return Hunk{}, false
	}
	parts := strings.Fields(rest[:end])
	if len(parts) != 2 || !strings.HasPrefix(parts[0], "-") || !strings.HasPrefix(parts[1], "+") {
		return Hunk{}, false
	}

	oldStart, oldLines, ok1 := parseRange(parts[0][1:])
	newStart, newLines, ok2 := parseRange(parts[1][1:])
	if !ok1 || !ok2 {
		return Hunk{}, false
	}

	return Hunk{
		OldStart: oldStart,
		OldLines: oldLines,
		NewStart: newStart,
		NewLines: newLines,
	}, true
}

// parseRange parses "start[,count]"; count defaults to 1.
func parseRange(s string) (start, count int, ok bool) {
	count = 1
	if before, after, found := strings.Cut(s, ","); found {
		c, err := strconv.Atoi(after)
		if err != nil {
			return 0, 0, false
		}
		count = c
		s = before
	}
	start, err := strconv.Atoi(s)
	if err != nil {
		return 0, 0, false
	}
	return start, count, true
}

// stripPathPrefix removes the a/ or b/ prefix git puts on diff paths.
func stripPathPrefix(p string) string {
	p = strings.TrimSuffix(p, "\t")
	if p == "/dev/null" {
		return p
	}
	if strings.HasPrefix(p, "a/") || strings.HasPrefix(p, "b/") {
		return p[2:]
	}
	return p
}

// changedLineCount counts additions plus deletions across hunks.
func changedLineCount(hunks []Hunk) int {
	total := 0
	for _, h := range hunks {
		for _, l := range h.Lines {
			if l.Kind != LineContext {
				total++
			}
		}
	}
	return total
}
