// internal/git/repo.go
package git

import (
	"bytes"
	"errors"
	"fmt"
	"math/rand"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gitlapse/gitlapse/internal/logger"
)

// ErrExhausted is returned when every commit in the current playback set has
// been handed out. The caller decides whether that means loop or quit.
var ErrExhausted = errors.New("all commits have been played")

// Repository hands out commits from a local Git repository by shelling out
// to the git binary.
type Repository struct {
	root         string
	authorFilter string

	// Cached non-merge commit hashes, newest first. Built lazily.
	cache []string
	index int

	// Commit range playback set, oldest first. Mutually exclusive with cache
	// based playback, matching how the CLI arguments are defined.
	rangeList []string

	rng *rand.Rand
}

// Open locates the repository containing path and prepares a Repository.
func Open(path string) (*Repository, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path '%s': %w", path, err)
	}

	out, err := runGit(abs, "rev-parse", "--show-toplevel")
	if err != nil {
		return nil, fmt.Errorf("not a Git repository: %s", path)
	}
	root := strings.TrimSpace(out)

	return &Repository{
		root: root,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// Root returns the repository's top-level directory.
func (r *Repository) Root() string {
	return r.root
}

// SetAuthorFilter restricts commit selection to commits whose author name or
// email matches pattern (substring, case-insensitive). Clears any cache.
func (r *Repository) SetAuthorFilter(pattern string) {
	r.authorFilter = pattern
	r.cache = nil
	r.index = 0
}

// ResetIndex rewinds sequential playback to the start.
func (r *Repository) ResetIndex() {
	r.index = 0
}

// Commit fetches a single commit by hash or any revision git understands.
func (r *Repository) Commit(rev string) (*Commit, error) {
	hash, err := r.resolve(rev)
	if err != nil {
		return nil, err
	}
	return r.loadCommit(hash)
}

// Random returns a random non-merge commit from the whole history.
func (r *Repository) Random() (*Commit, error) {
	if err := r.populateCache(); err != nil {
		return nil, err
	}
	return r.loadCommit(r.cache[r.rng.Intn(len(r.cache))])
}

// NextAsc returns commits oldest-first, advancing an internal index.
func (r *Repository) NextAsc() (*Commit, error) {
	if err := r.populateCache(); err != nil {
		return nil, err
	}
	if r.index >= len(r.cache) {
		return nil, ErrExhausted
	}
	// Cache is newest first; asc walks it from the back.
	hash := r.cache[len(r.cache)-1-r.index]
	r.index++
	return r.loadCommit(hash)
}

// NextDesc returns commits newest-first, advancing an internal index.
func (r *Repository) NextDesc() (*Commit, error) {
	if err := r.populateCache(); err != nil {
		return nil, err
	}
	if r.index >= len(r.cache) {
		return nil, ErrExhausted
	}
	hash := r.cache[r.index]
	r.index++
	return r.loadCommit(hash)
}

// SetRange installs a commit range for playback, e.g. "HEAD~5..HEAD" or
// "abc123..". The symmetric difference operator is not supported.
func (r *Repository) SetRange(rangeSpec string) error {
	if strings.Contains(rangeSpec, "...") {
		return fmt.Errorf("symmetric difference operator '...' is not supported, use '..' instead")
	}
	start, end, found := strings.Cut(rangeSpec, "..")
	if !found {
		return fmt.Errorf("invalid range format: %s (use forms like 'HEAD~5..HEAD' or 'abc123..')", rangeSpec)
	}

	if end == "" {
		end = "HEAD"
	}
	args := []string{"rev-list", "--no-merges", end}
	if start != "" {
		startHash, err := r.resolve(start)
		if err != nil {
			return err
		}
		args = append(args, "^"+startHash)
	}

	out, err := runGit(r.root, args...)
	if err != nil {
		return fmt.Errorf("failed to list commits in range '%s': %w", rangeSpec, err)
	}

	hashes := splitLines(out)
	// rev-list emits newest first; ranges play oldest first by default.
	for i, j := 0, len(hashes)-1; i < j; i, j = i+1, j-1 {
		hashes[i], hashes[j] = hashes[j], hashes[i]
	}
	r.rangeList = hashes
	r.index = 0
	return nil
}

// NextRangeAsc returns range commits oldest-first.
func (r *Repository) NextRangeAsc() (*Commit, error) {
	if len(r.rangeList) == 0 {
		return nil, errors.New("no commits in range")
	}
	if r.index >= len(r.rangeList) {
		return nil, ErrExhausted
	}
	hash := r.rangeList[r.index]
	r.index++
	return r.loadCommit(hash)
}

// NextRangeDesc returns range commits newest-first.
func (r *Repository) NextRangeDesc() (*Commit, error) {
	if len(r.rangeList) == 0 {
		return nil, errors.New("no commits in range")
	}
	if r.index >= len(r.rangeList) {
		return nil, ErrExhausted
	}
	hash := r.rangeList[len(r.rangeList)-1-r.index]
	r.index++
	return r.loadCommit(hash)
}

// RandomRange returns a random commit from the installed range.
func (r *Repository) RandomRange() (*Commit, error) {
	if len(r.rangeList) == 0 {
		return nil, errors.New("no commits in range")
	}
	return r.loadCommit(r.rangeList[r.rng.Intn(len(r.rangeList))])
}

// populateCache builds the non-merge commit list on first use.
func (r *Repository) populateCache() error {
	if r.cache != nil {
		return nil
	}

	args := []string{"rev-list", "--no-merges"}
	if r.authorFilter != "" {
		args = append(args, "--regexp-ignore-case", "--author="+r.authorFilter)
	}
	args = append(args, "HEAD")

	out, err := runGit(r.root, args...)
	if err != nil {
		return fmt.Errorf("failed to list commits: %w", err)
	}

	hashes := splitLines(out)
	if len(hashes) == 0 {
		return errors.New("no non-merge commits found in repository")
	}
	r.cache = hashes
	return nil
}

func (r *Repository) resolve(rev string) (string, error) {
	out, err := runGit(r.root, "rev-parse", "--verify", rev+"^{commit}")
	if err != nil {
		return "", fmt.Errorf("invalid commit or commit not found: %s", rev)
	}
	return strings.TrimSpace(out), nil
}

// loadCommit extracts full metadata and file changes for one commit.
func (r *Repository) loadCommit(hash string) (*Commit, error) {
	out, err := runGit(r.root, "show", "-s", "--format=%H%x00%an%x00%at%x00%B", hash)
	if err != nil {
		return nil, fmt.Errorf("failed to read commit %s: %w", hash, err)
	}

	fields := strings.SplitN(out, "\x00", 4)
	if len(fields) != 4 {
		return nil, fmt.Errorf("unexpected git show output for %s", hash)
	}

	timestamp, _ := strconv.ParseInt(strings.TrimSpace(fields[2]), 10, 64)
	commit := &Commit{
		Hash:    strings.TrimSpace(fields[0]),
		Author:  fields[1],
		Date:    time.Unix(timestamp, 0).UTC(),
		Message: strings.TrimSpace(fields[3]),
	}

	changes, err := r.extractChanges(commit.Hash)
	if err != nil {
		return nil, err
	}
	commit.Changes = changes

	logger.Debugf("Loaded commit %s: %d file change(s)", commit.ShortHash(), len(changes))
	return commit, nil
}

// extractChanges combines name-status, hunks, and blob contents for a commit.
func (r *Repository) extractChanges(hash string) ([]FileChange, error) {
	statusOut, err := runGit(r.root, "show", "--format=", "--name-status", "-M", "-C", hash)
	if err != nil {
		return nil, fmt.Errorf("failed to read file statuses for %s: %w", hash, err)
	}

	diffOut, err := runGit(r.root, "show", "--format=", "--unified=3", "-M", "-C", hash)
	if err != nil {
		return nil, fmt.Errorf("failed to read diff for %s: %w", hash, err)
	}

	hunksByPath := make(map[string]fileDiff)
	for _, fd := range parseUnifiedDiff(diffOut) {
		hunksByPath[fd.path()] = fd
	}

	hasParent := r.hasParent(hash)

	var changes []FileChange
	for _, line := range splitLines(statusOut) {
		change, ok := r.parseStatusLine(line)
		if !ok {
			continue
		}

		fd, haveDiff := hunksByPath[change.Path]
		if haveDiff {
			change.Hunks = fd.hunks
			change.IsBinary = fd.binary
		}

		if !change.IsBinary {
			if hasParent && change.Status != StatusAdded {
				oldPath := change.Path
				if change.OldPath != "" {
					oldPath = change.OldPath
				}
				change.OldContent, change.HasOldContent = r.blob(hash+"^", oldPath)
			}
			if change.Status != StatusDeleted {
				change.NewContent, change.HasNewContent = r.blob(hash, change.Path)
			}
		}

		total := changedLineCount(change.Hunks)
		switch {
		case ShouldExclude(change.Path):
			change.IsExcluded = true
			change.ExclusionReason = "lock/generated file"
		case total > maxChangeLines:
			change.IsExcluded = true
			change.ExclusionReason = fmt.Sprintf("too many changes (%d lines)", total)
		}

		changes = append(changes, change)
	}

	return changes, nil
}

// parseStatusLine parses one --name-status line ("M\tpath", "R100\told\tnew").
func (r *Repository) parseStatusLine(line string) (FileChange, bool) {
	parts := strings.Split(line, "\t")
	if len(parts) < 2 || parts[0] == "" {
		return FileChange{}, false
	}

	var change FileChange
	switch parts[0][0] {
	case 'A':
		change.Status = StatusAdded
		change.Path = parts[1]
	case 'D':
		change.Status = StatusDeleted
		change.Path = parts[1]
	case 'M':
		change.Status = StatusModified
		change.Path = parts[1]
	case 'R':
		if len(parts) < 3 {
			return FileChange{}, false
		}
		change.Status = StatusRenamed
		change.OldPath = parts[1]
		change.Path = parts[2]
	case 'C':
		if len(parts) < 3 {
			return FileChange{}, false
		}
		change.Status = StatusCopied
		change.OldPath = parts[1]
		change.Path = parts[2]
	default:
		change.Status = StatusModified
		change.Path = parts[len(parts)-1]
	}
	return change, true
}

// blob reads a file's content at a revision. Returns ok=false for missing,
// oversized, or binary blobs.
func (r *Repository) blob(rev, path string) (string, bool) {
	out, err := runGitBytes(r.root, "show", rev+":"+path)
	if err != nil {
		return "", false
	}
	if len(out) > maxBlobSize || bytes.IndexByte(out, 0) >= 0 {
		return "", false
	}
	return string(out), true
}

func (r *Repository) hasParent(hash string) bool {
	_, err := runGit(r.root, "rev-parse", "--verify", "--quiet", hash+"^^{commit}")
	return err == nil
}

// --- git invocation helpers ---

func runGit(dir string, args ...string) (string, error) {
	out, err := runGitBytes(dir, args...)
	return string(out), err
}

func runGitBytes(dir string, args ...string) ([]byte, error) {
	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("git %s: %s", strings.Join(args, " "), msg)
	}
	return out, nil
}

func splitLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
