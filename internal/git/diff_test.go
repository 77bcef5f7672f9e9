// internal/git/diff_test.go
package git

import (
	"reflect"
	"testing"
)

const sampleDiff = `diff --git a/src/main.go b/src/main.go
index 1111111..2222222 100644
--- a/src/main.go
+++ b/src/main.go
@@ -1,4 +1,5 @@
 package main

-func run() {}
+func run() error {
+	return nil
+}
@@ -10,2 +11,1 @@ func helper()
-	old := 1
-	use(old)
+	use(1)
diff --git a/assets/logo.png b/assets/logo.png
Binary files a/assets/logo.png and b/assets/logo.png differ
diff --git a/README.md b/README.md
--- a/README.md
+++ b/README.md
@@ -1 +1 @@
-# Old
+# New
\ No newline at end of file
`

func TestParseUnifiedDiff(t *testing.T) {
	files := parseUnifiedDiff(sampleDiff)
	if len(files) != 3 {
		t.Fatalf("parsed %d files, want 3", len(files))
	}

	main := files[0]
	if main.path() != "src/main.go" {
		t.Errorf("file 0 path = %q, want src/main.go", main.path())
	}
	if len(main.hunks) != 2 {
		t.Fatalf("file 0 has %d hunks, want 2", len(main.hunks))
	}

	h := main.hunks[0]
	if h.OldStart != 1 || h.OldLines != 4 || h.NewStart != 1 || h.NewLines != 5 {
		t.Errorf("hunk 0 header = %+v, want -1,4 +1,5", h)
	}
	wantLines := []LineChange{
		{Kind: LineContext, Content: "package main"},
		{Kind: LineContext, Content: ""},
		{Kind: LineDeletion, Content: "func run() {}"},
		{Kind: LineAddition, Content: "func run() error {"},
		{Kind: LineAddition, Content: "\treturn nil"},
		{Kind: LineAddition, Content: "}"},
	}
	if !reflect.DeepEqual(h.Lines, wantLines) {
		t.Errorf("hunk 0 lines = %+v\nwant %+v", h.Lines, wantLines)
	}

	h = main.hunks[1]
	if h.OldStart != 10 || h.NewStart != 11 {
		t.Errorf("hunk 1 header = %+v, want -10,2 +11,1", h)
	}

	if !files[1].binary {
		t.Error("binary file not flagged")
	}

	readme := files[2]
	if len(readme.hunks) != 1 {
		t.Fatalf("README has %d hunks, want 1", len(readme.hunks))
	}
	// The "\ No newline" marker is not buffer content.
	wantLines = []LineChange{
		{Kind: LineDeletion, Content: "# Old"},
		{Kind: LineAddition, Content: "# New"},
	}
	if !reflect.DeepEqual(readme.hunks[0].Lines, wantLines) {
		t.Errorf("README lines = %+v\nwant %+v", readme.hunks[0].Lines, wantLines)
	}
}

func TestParseHunkHeader(t *testing.T) {
	tests := []struct {
		line string
		want Hunk
		ok   bool
	}{
		{"@@ -1,4 +1,5 @@", Hunk{OldStart: 1, OldLines: 4, NewStart: 1, NewLines: 5}, true},
		{"@@ -10 +11,0 @@ context", Hunk{OldStart: 10, OldLines: 1, NewStart: 11, NewLines: 0}, true},
		{"@@ garbage @@", Hunk{}, false},
		{"@@ -1,4 +1,5", Hunk{}, false},
	}

	for _, tt := range tests {
		got, ok := parseHunkHeader(tt.line)
		if ok != tt.ok {
			t.Errorf("parseHunkHeader(%q) ok = %v, want %v", tt.line, ok, tt.ok)
			continue
		}
		if ok && !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseHunkHeader(%q) = %+v, want %+v", tt.line, got, tt.want)
		}
	}
}

func TestStripPathPrefix(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a/src/main.go", "src/main.go"},
		{"b/src/main.go", "src/main.go"},
		{"/dev/null", "/dev/null"},
		{"plain.go", "plain.go"},
	}
	for _, tt := range tests {
		if got := stripPathPrefix(tt.in); got != tt.want {
			t.Errorf("stripPathPrefix(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestChangedLineCount(t *testing.T) {
	hunks := []Hunk{
		{Lines: []LineChange{
			{Kind: LineContext, Content: "a"},
			{Kind: LineAddition, Content: "b"},
			{Kind: LineDeletion, Content: "c"},
		}},
		{Lines: []LineChange{
			{Kind: LineAddition, Content: "d"},
		}},
	}
	if got := changedLineCount(hunks); got != 3 {
		t.Errorf("changedLineCount = %d, want 3", got)
	}
}
