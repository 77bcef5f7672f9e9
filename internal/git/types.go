// internal/git/types.go
package git

import (
	"sort"
	"strings"
	"time"
)

// FileStatus describes what happened to a file in a commit.
type FileStatus int

const (
	StatusModified FileStatus = iota
	StatusAdded
	StatusDeleted
	StatusRenamed
	StatusCopied
)

// Letter returns the single-letter status used in file listings.
func (s FileStatus) Letter() string {
	switch s {
	case StatusAdded:
		return "A"
	case StatusDeleted:
		return "D"
	case StatusModified:
		return "M"
	case StatusRenamed:
		return "R"
	case StatusCopied:
		return "C"
	}
	return "?"
}

// LineKind classifies a single diff line.
type LineKind int

const (
	LineContext LineKind = iota
	LineAddition
	LineDeletion
)

// LineChange is one line of a hunk with its literal text (no trailing newline).
type LineChange struct {
	Kind    LineKind
	Content string
}

// Hunk is a contiguous run of diff lines anchored to old/new start lines.
// OldStart and NewStart are 1-based, as in unified diff headers.
type Hunk struct {
	OldStart int
	OldLines int
	NewStart int
	NewLines int
	Lines    []LineChange
}

// FileChange holds one file's worth of a commit diff.
type FileChange struct {
	Path            string
	OldPath         string // Set for renames
	Status          FileStatus
	IsBinary        bool
	IsExcluded      bool
	ExclusionReason string
	OldContent      string // Empty for added or binary files
	NewContent      string // Empty for deleted or binary files
	HasOldContent   bool
	HasNewContent   bool
	Hunks           []Hunk
}

// Commit is commit metadata plus its ordered file changes.
type Commit struct {
	Hash    string
	Author  string
	Date    time.Time
	Message string
	Changes []FileChange
}

// ShortHash returns the abbreviated hash used in terminal output.
func (c *Commit) ShortHash() string {
	if len(c.Hash) > 7 {
		return c.Hash[:7]
	}
	return c.Hash
}

// Summary returns the first line of the commit message.
func (c *Commit) Summary() string {
	if line, _, ok := strings.Cut(c.Message, "\n"); ok {
		return line
	}
	return c.Message
}

// SortedFileIndices returns change indices in file-tree display order:
// directory first, then filename.
func (c *Commit) SortedFileIndices() []int {
	indices := make([]int, len(c.Changes))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		da, fa := splitDirFile(c.Changes[indices[a]].Path)
		db, fb := splitDirFile(c.Changes[indices[b]].Path)
		if da != db {
			return da < db
		}
		return fa < fb
	})
	return indices
}

func splitDirFile(path string) (dir, file string) {
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		return path[:idx], path[idx+1:]
	}
	return "", path
}
