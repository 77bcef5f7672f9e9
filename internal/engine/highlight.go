// internal/engine/highlight.go
package engine

import "github.com/gitlapse/gitlapse/internal/highlighter"

// offsetTracker keeps cached token spans aligned with the buffer while it is
// mutated one character at a time, so the highlighter never re-tokenizes
// between file switches.
//
// Spans in Buffer.CachedSpans are byte ranges over the pre-edit file content.
// As structural edits (line inserts and deletes) complete, their byte deltas
// fold into a single cumulative shift applied to every line past the edit
// boundary. While a line is actively being typed, only that line's spans at
// or after the insertion point shift, by the bytes typed so far.
type offsetTracker struct {
	// shiftLine is the boundary line of the most recent edit, or -1 when no
	// edit has happened since the last reset.
	shiftLine int

	// byteDelta is the folded byte shift from all completed edits. Lines
	// after shiftLine render with their spans moved by this amount plus any
	// in-progress typing.
	byteDelta int

	// editStartByte is the byte position within shiftLine where the current
	// typing run inserts. editTyped counts bytes inserted there so far.
	editStartByte int
	editTyped     int
}

func newOffsetTracker() *offsetTracker {
	return &offsetTracker{shiftLine: -1}
}

func (t *offsetTracker) reset() {
	t.shiftLine = -1
	t.byteDelta = 0
	t.editStartByte = 0
	t.editTyped = 0
}

// fold closes the in-progress typing run, merging its bytes into the
// cumulative delta.
func (t *offsetTracker) fold() {
	t.byteDelta += t.editTyped
	t.editTyped = 0
	t.editStartByte = 0
}

// recordInsertChar notes size bytes inserted at insertByte within line.
// Typing on a different line than the current run closes that run first.
func (t *offsetTracker) recordInsertChar(line, insertByte, size int) {
	if line != t.shiftLine {
		t.fold()
		t.shiftLine = line
		t.editStartByte = insertByte
	}
	t.editTyped += size
}

// recordInsertLine notes a new empty line at the given index. The line's
// newline separator is one byte of shift for everything below it.
func (t *offsetTracker) recordInsertLine(line int) {
	t.fold()
	t.shiftLine = line
	t.byteDelta++
}

// recordDeleteLine notes the removal of a line that held removedBytes bytes
// of content (its newline included in the shift).
func (t *offsetTracker) recordDeleteLine(line, removedBytes int) {
	t.fold()
	t.shiftLine = line
	t.byteDelta -= removedBytes + 1
}

// recordCursorMove folds any in-progress typing run when the cursor leaves
// the line being typed.
func (t *offsetTracker) recordCursorMove(line int) {
	if t.shiftLine >= 0 && line != t.shiftLine {
		t.fold()
	}
}

// lineSpans produces the render-ready spans for one buffer line: the cached
// spans remapped per the current edit state, clipped to the line, and
// rebased to line-relative byte offsets.
func (t *offsetTracker) lineSpans(b *Buffer, line int) []highlighter.Span {
	if line < 0 || line >= len(b.Lines) {
		return nil
	}

	lineStart := b.LineByteStart(line)
	lineEnd := lineStart + len(b.Lines[line])
	insertAbs := 0
	if t.shiftLine == line {
		insertAbs = b.LineByteStart(t.shiftLine) + t.editStartByte
	}

	var out []highlighter.Span
	for _, span := range b.CachedSpans {
		start, end := span.Start, span.End

		switch {
		case t.shiftLine < 0:
			// No edits yet, spans are exact.
		case line > t.shiftLine:
			shift := t.byteDelta + t.editTyped
			start = clampShift(start, shift)
			end = clampShift(end, shift)
		case line == t.shiftLine:
			if start >= insertAbs {
				start = clampShift(start, t.editTyped)
			}
			if end > insertAbs {
				end = clampShift(end, t.editTyped)
			}
		}

		if start >= lineEnd || end <= lineStart {
			continue
		}
		if start < lineStart {
			start = lineStart
		}
		if end > lineEnd {
			end = lineEnd
		}
		out = append(out, highlighter.Span{
			Start: start - lineStart,
			End:   end - lineStart,
			Kind:  span.Kind,
		})
	}
	return out
}

func clampShift(pos, shift int) int {
	pos += shift
	if pos < 0 {
		return 0
	}
	return pos
}
