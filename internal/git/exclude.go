// internal/git/exclude.go
package git

import "strings"

// Maximum blob size to read (500KB).
const maxBlobSize = 500 * 1024

// Maximum number of changed lines per file to animate. Files with more
// changes are skipped to keep a single replay watchable.
const maxChangeLines = 2000

// Lock files and other generated files that make for unwatchable replays.
var excludedFiles = []string{
	// JavaScript/Node.js
	"yarn.lock",
	"package-lock.json",
	"pnpm-lock.yaml",
	"bun.lock",
	"bun.lockb",
	// Rust
	"Cargo.lock",
	// Ruby
	"Gemfile.lock",
	// Python
	"poetry.lock",
	"Pipfile.lock",
	// PHP
	"composer.lock",
	// Go
	"go.sum",
	// Swift
	"Package.resolved",
	// Dart/Flutter
	"pubspec.lock",
	// .NET/C#
	"packages.lock.json",
	"project.assets.json",
	// Elixir
	"mix.lock",
	// Java/Gradle
	"gradle.lockfile",
	"buildscript-gradle.lockfile",
	// Scala
	"build.sbt.lock",
	// Bazel
	"MODULE.bazel.lock",
}

// Filename patterns for minified/bundled/generated artifacts.
var excludedPatterns = []string{
	".min.js",
	".min.css",
	".bundle.js",
	".bundle.css",
	".js.map",
	".css.map",
	".d.ts.map",
	".snap",
	"__snapshots__",
}

// userPatterns holds extra patterns supplied through config or flags.
var userPatterns []string

// SetUserPatterns installs additional exclusion patterns. Patterns match the
// same way as the builtin ones: filename suffix or path substring.
func SetUserPatterns(patterns []string) {
	userPatterns = nil
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p != "" && !strings.HasPrefix(p, "#") {
			userPatterns = append(userPatterns, p)
		}
	}
}

// ShouldExclude reports whether a file path should be skipped during replay.
func ShouldExclude(path string) bool {
	filename := path
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		filename = path[idx+1:]
	}

	for _, name := range excludedFiles {
		if filename == name {
			return true
		}
	}

	for _, pattern := range excludedPatterns {
		if strings.HasSuffix(filename, pattern) || strings.Contains(path, pattern) {
			return true
		}
	}

	for _, pattern := range userPatterns {
		if strings.HasSuffix(filename, pattern) || strings.Contains(path, pattern) {
			return true
		}
	}

	return false
}
