// internal/engine/buffer_test.go
package engine

import (
	"reflect"
	"testing"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"empty", "", []string{""}},
		{"single line no newline", "hello", []string{"hello"}},
		{"trailing newline", "a\nb\n", []string{"a", "b"}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}},
		{"blank middle line", "a\n\nb", []string{"a", "", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitLines(tt.content)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitLines(%q) = %v, want %v", tt.content, got, tt.want)
			}
		})
	}
}

func TestInsertCharReconstructsLine(t *testing.T) {
	// Typing a line char by char, in emitted order, must reproduce it
	// exactly, multi-byte runes included.
	line := "héllo ⚡ wörld"
	b := NewBuffer()

	col := 0
	for _, ch := range line {
		b.InsertChar(0, col, ch)
		col++
	}

	if b.Lines[0] != line {
		t.Errorf("reconstructed line = %q, want %q", b.Lines[0], line)
	}
}

func TestInsertCharPadsMissingLines(t *testing.T) {
	b := NewBuffer()
	b.InsertChar(3, 0, 'x')

	if len(b.Lines) != 4 {
		t.Fatalf("line count = %d, want 4", len(b.Lines))
	}
	if b.Lines[3] != "x" {
		t.Errorf("line 3 = %q, want %q", b.Lines[3], "x")
	}
}

func TestInsertCharClampsColumn(t *testing.T) {
	b := NewBufferFromContent("ab")
	b.InsertChar(0, 99, 'c')

	if b.Lines[0] != "abc" {
		t.Errorf("line = %q, want %q", b.Lines[0], "abc")
	}
}

func TestInsertLine(t *testing.T) {
	tests := []struct {
		name    string
		start   []string
		line    int
		content string
		want    []string
	}{
		{"middle", []string{"a", "b"}, 1, "x", []string{"a", "x", "b"}},
		{"front", []string{"a", "b"}, 0, "x", []string{"x", "a", "b"}},
		{"append", []string{"a", "b"}, 2, "x", []string{"a", "b", "x"}},
		{"past end pads", []string{"a"}, 3, "x", []string{"a", "", "", "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Buffer{Lines: append([]string(nil), tt.start...)}
			b.InsertLine(tt.line, tt.content)
			if !reflect.DeepEqual(b.Lines, tt.want) {
				t.Errorf("lines = %v, want %v", b.Lines, tt.want)
			}
		})
	}
}

func TestDeleteLineNeverEmpties(t *testing.T) {
	b := NewBufferFromContent("only")
	b.DeleteLine(0)

	if len(b.Lines) != 1 || b.Lines[0] != "" {
		t.Errorf("lines = %v, want [\"\"]", b.Lines)
	}

	// Out-of-range deletes are no-ops.
	b.DeleteLine(5)
	if len(b.Lines) != 1 {
		t.Errorf("lines = %v after out-of-range delete, want one line", b.Lines)
	}
}

func TestLineByteStart(t *testing.T) {
	b := NewBufferFromContent("ab\ncdé\nf")

	tests := []struct {
		line int
		want int
	}{
		{0, 0},
		{1, 3},
		{2, 8}, // é is two bytes
	}
	for _, tt := range tests {
		if got := b.LineByteStart(tt.line); got != tt.want {
			t.Errorf("LineByteStart(%d) = %d, want %d", tt.line, got, tt.want)
		}
	}
}

func TestComputeLineOffsets(t *testing.T) {
	got := computeLineOffsets("ab\ncd\n\nx")
	want := []int{0, 3, 6, 7}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("computeLineOffsets = %v, want %v", got, want)
	}
}
