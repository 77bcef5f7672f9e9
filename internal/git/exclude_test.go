// internal/git/exclude_test.go
package git

import "testing"

func TestShouldExcludeLockFiles(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"yarn.lock", true},
		{"package-lock.json", true},
		{"Cargo.lock", true},
		{"go.sum", true},
		{"frontend/pnpm-lock.yaml", true},
		{"deep/nested/dir/Gemfile.lock", true},
		{"src/main.rs", false},
		{"go.mod", false},
		{"mylock.json", false},
		// Only exact filenames match the lock-file list.
		{"not-yarn.lock.txt", false},
	}

	for _, tt := range tests {
		if got := ShouldExclude(tt.path); got != tt.want {
			t.Errorf("ShouldExclude(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestShouldExcludeGeneratedPatterns(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"dist/app.min.js", true},
		{"styles/site.min.css", true},
		{"build/vendor.bundle.js", true},
		{"dist/app.js.map", true},
		{"types/index.d.ts.map", true},
		{"tests/__snapshots__/render.snap", true},
		{"src/components/__snapshots__/list.test.js", true},
		{"src/app.js", false},
		{"minify.js", false},
	}

	for _, tt := range tests {
		if got := ShouldExclude(tt.path); got != tt.want {
			t.Errorf("ShouldExclude(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestUserPatterns(t *testing.T) {
	defer SetUserPatterns(nil)

	SetUserPatterns([]string{".generated.go", "vendor/", "  ", "# comment"})

	tests := []struct {
		path string
		want bool
	}{
		{"api/types.generated.go", true},
		{"vendor/pkg/lib.go", true},
		{"api/types.go", false},
		{"# comment", false},
	}
	for _, tt := range tests {
		if got := ShouldExclude(tt.path); got != tt.want {
			t.Errorf("ShouldExclude(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
