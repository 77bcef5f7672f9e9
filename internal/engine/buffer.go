// internal/engine/buffer.go
package engine

import (
	"strings"
	"unicode/utf8"

	"github.com/gitlapse/gitlapse/internal/highlighter"
	"github.com/gitlapse/gitlapse/internal/types"
)

// Buffer is the simulated editor's line-oriented text buffer. It is never
// empty: there is always at least one (possibly blank) line.
//
// All mutation operations are total. They clamp or pad instead of failing
// because their inputs come from the trusted step compiler; a bad index is a
// compiler bug, not a runtime condition worth surfacing mid-animation.
type Buffer struct {
	Lines        []string
	Cursor       types.Position
	ScrollOffset int

	// CachedSpans is the span set the renderer remaps each frame.
	CachedSpans []highlighter.Span

	// Full-content token spans for the pre-edit and post-edit snapshots of
	// the active file, computed once per file switch.
	OldSpans []highlighter.Span
	NewSpans []highlighter.Span

	// Per-line byte offsets into each snapshot: entry N is the byte offset
	// of line N's first character. Kept for both snapshots so span math
	// never has to re-scan file content.
	OldLineOffsets []int
	NewLineOffsets []int
}

// NewBuffer creates an empty buffer holding a single blank line.
func NewBuffer() *Buffer {
	return &Buffer{Lines: []string{""}}
}

// NewBufferFromContent splits text on line boundaries. Empty input yields a
// single empty line.
func NewBufferFromContent(content string) *Buffer {
	return &Buffer{Lines: SplitLines(content)}
}

// SplitLines splits file content into lines without trailing newlines,
// tolerating CRLF. Empty content becomes a single empty line.
func SplitLines(content string) []string {
	if content == "" {
		return []string{""}
	}
	content = strings.TrimSuffix(content, "\n")
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// InsertChar inserts ch at the given rune column of a line, padding the line
// list with empty lines if the target does not exist yet.
func (b *Buffer) InsertChar(line, col int, ch rune) {
	for len(b.Lines) <= line {
		b.Lines = append(b.Lines, "")
	}

	s := b.Lines[line]
	byteIdx := runeColToByte(s, col)
	b.Lines[line] = s[:byteIdx] + string(ch) + s[byteIdx:]
}

// InsertLine inserts content as a new line at index, shifting later lines
// down. Indices past the end pad with empty lines first.
func (b *Buffer) InsertLine(line int, content string) {
	for len(b.Lines) < line {
		b.Lines = append(b.Lines, "")
	}
	b.Lines = append(b.Lines, "")
	copy(b.Lines[line+1:], b.Lines[line:])
	b.Lines[line] = content
}

// DeleteLine removes the line at index if it exists. The buffer is refilled
// with a single empty line if the deletion emptied it.
func (b *Buffer) DeleteLine(line int) {
	if line >= 0 && line < len(b.Lines) {
		b.Lines = append(b.Lines[:line], b.Lines[line+1:]...)
	}
	if len(b.Lines) == 0 {
		b.Lines = []string{""}
	}
}

// LineByteStart returns the byte offset of a line's first character within
// the buffer joined by single newline separators.
func (b *Buffer) LineByteStart(line int) int {
	offset := 0
	for i := 0; i < line && i < len(b.Lines); i++ {
		offset += len(b.Lines[i]) + 1
	}
	return offset
}

// runeColToByte converts a rune index to a byte offset within s, clamping to
// the end of the string.
func runeColToByte(s string, col int) int {
	if col <= 0 {
		return 0
	}
	idx := 0
	for i := 0; i < col; i++ {
		if idx >= len(s) {
			return len(s)
		}
		_, size := utf8.DecodeRuneInString(s[idx:])
		idx += size
	}
	return idx
}

// computeLineOffsets builds the per-line byte-offset table for a content
// snapshot: entry 0 is 0, then one entry after each newline byte.
func computeLineOffsets(content string) []int {
	offsets := []int{0}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}
