// internal/git/types_test.go
package git

import (
	"reflect"
	"testing"
)

func TestShortHash(t *testing.T) {
	c := &Commit{Hash: "0123456789abcdef"}
	if got := c.ShortHash(); got != "0123456" {
		t.Errorf("ShortHash = %q, want 0123456", got)
	}

	c = &Commit{Hash: "abc"}
	if got := c.ShortHash(); got != "abc" {
		t.Errorf("ShortHash of short hash = %q, want abc", got)
	}
}

func TestSummary(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"fix bug\n\nlong explanation", "fix bug"},
		{"single line", "single line"},
		{"", ""},
	}
	for _, tt := range tests {
		c := &Commit{Message: tt.message}
		if got := c.Summary(); got != tt.want {
			t.Errorf("Summary(%q) = %q, want %q", tt.message, got, tt.want)
		}
	}
}

func TestStatusLetter(t *testing.T) {
	tests := []struct {
		status FileStatus
		want   string
	}{
		{StatusAdded, "A"},
		{StatusDeleted, "D"},
		{StatusModified, "M"},
		{StatusRenamed, "R"},
		{StatusCopied, "C"},
	}
	for _, tt := range tests {
		if got := tt.status.Letter(); got != tt.want {
			t.Errorf("Letter(%v) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestSortedFileIndices(t *testing.T) {
	c := &Commit{Changes: []FileChange{
		{Path: "src/z.go"},
		{Path: "README.md"},
		{Path: "src/a.go"},
		{Path: "docs/guide.md"},
	}}

	got := c.SortedFileIndices()
	// Root files first (empty dir sorts lowest), then docs/, then src/.
	want := []int{1, 3, 2, 0}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SortedFileIndices = %v, want %v", got, want)
	}
}
