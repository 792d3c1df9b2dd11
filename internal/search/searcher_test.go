package search

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/vennictus/gosearch/internal/logger"
)

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		t.Fatalf("git %v failed: %v\n%s", args, err, out.String())
	}
}

func newTestOptions(path string) *Options {
	return &Options{
		Path:          path,
		Source:        AllFiles,
		Output:        Piped,
		Threads:       2,
		LineNumbers:   true,
		ColorsEnabled: false,
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// TestScenarioS1SingleLiteralHit covers a single literal hit in one file.
func TestScenarioS1SingleLiteralHit(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "hello\nworld\n")

	opts := newTestOptions(dir)
	opts.Term = "world"
	opts.Mode = CaseSensitive

	var stdout, stderr bytes.Buffer
	matched, err := New(opts, logger.Discard, &stdout, &stderr).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !matched {
		t.Fatalf("expected a match")
	}
	want := filepath.Join(dir, "a.txt") + ":2:world\n"
	if stdout.String() != want {
		t.Fatalf("got %q, want %q", stdout.String(), want)
	}
}

// TestScenarioS2CaseInsensitiveMultipleHits covers case-insensitive matching with multiple hits on one line.
func TestScenarioS2CaseInsensitiveMultipleHits(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.txt", "Foo foo FOO\n")

	opts := newTestOptions(dir)
	opts.Term = "foo"
	opts.Mode = CaseInsensitive

	var stdout, stderr bytes.Buffer
	matched, err := New(opts, logger.Discard, &stdout, &stderr).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !matched {
		t.Fatalf("expected a match")
	}
	want := filepath.Join(dir, "b.txt") + ":1:Foo foo FOO\n"
	if stdout.String() != want {
		t.Fatalf("got %q, want %q", stdout.String(), want)
	}
}

// TestScenarioS3RegexAcrossTwoFiles covers a regex matching across two separate files.
func TestScenarioS3RegexAcrossTwoFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "x.c", "int main(){}\n")
	writeFile(t, dir, "y.c", "void f(){}\n")

	opts := newTestOptions(dir)
	opts.Term = `\w+\s*\(`
	opts.Mode = Regex

	var stdout, stderr bytes.Buffer
	matched, err := New(opts, logger.Discard, &stdout, &stderr).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !matched {
		t.Fatalf("expected a match")
	}

	lines := strings.Split(strings.TrimRight(stdout.String(), "\n"), "\n")
	want := map[string]bool{
		filepath.Join(dir, "x.c") + ":1:int main(){}": true,
		filepath.Join(dir, "y.c") + ":1:void f(){}":   true,
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 output lines, got %d: %v", len(lines), lines)
	}
	for _, l := range lines {
		if !want[l] {
			t.Fatalf("unexpected output line: %q", l)
		}
	}
}

// TestScenarioS4BinarySkip covers a binary file being skipped entirely.
func TestScenarioS4BinarySkip(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "doc.pdf", "%PDF-1.4\nneedle\n")

	opts := newTestOptions(dir)
	opts.Term = "needle"
	opts.Mode = CaseSensitive

	var stdout, stderr bytes.Buffer
	matched, err := New(opts, logger.Discard, &stdout, &stderr).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if matched {
		t.Fatalf("expected no match, got output: %q", stdout.String())
	}
	if stdout.Len() != 0 {
		t.Fatalf("expected empty stdout, got %q", stdout.String())
	}
}

// TestScenarioS6CRLFFile covers CRLF line endings being normalized in output.
func TestScenarioS6CRLFFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "w.txt", "alpha\r\nbeta\r\n")

	opts := newTestOptions(dir)
	opts.Term = "alpha"
	opts.Mode = CaseSensitive

	var stdout, stderr bytes.Buffer
	matched, err := New(opts, logger.Discard, &stdout, &stderr).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !matched {
		t.Fatalf("expected a match")
	}
	want := filepath.Join(dir, "w.txt") + ":1:alpha\n"
	if stdout.String() != want {
		t.Fatalf("got %q, want %q (no CR should survive)", stdout.String(), want)
	}
}

// TestOrderWithinFile checks that matches for one file are in strictly
// ascending line-number order.
func TestOrderWithinFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "multi.txt", "needle one\nno match\nneedle two\nneedle three\n")

	opts := newTestOptions(dir)
	opts.Term = "needle"
	opts.Mode = CaseSensitive

	var stdout, stderr bytes.Buffer
	if _, err := New(opts, logger.Discard, &stdout, &stderr).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	lines := strings.Split(strings.TrimRight(stdout.String(), "\n"), "\n")
	lastLineNo := 0
	for _, l := range lines {
		parts := strings.SplitN(l, ":", 3)
		if len(parts) < 3 {
			t.Fatalf("unexpected output line: %q", l)
		}
		n, err := strconv.Atoi(parts[1])
		if err != nil {
			t.Fatalf("parse line number from %q: %v", l, err)
		}
		if n <= lastLineNo {
			t.Fatalf("line numbers not strictly ascending: %v", lines)
		}
		lastLineNo = n
	}
}

// TestCompleteness checks that the total number of emitted Match records
// equals the sum of per-file ground-truth counts, regardless of thread count.
func TestCompleteness(t *testing.T) {
	dir := t.TempDir()
	total := 0
	for i := 0; i < 20; i++ {
		var sb strings.Builder
		count := i % 4
		for j := 0; j < count; j++ {
			sb.WriteString("needle\n")
		}
		sb.WriteString("filler line\n")
		total += count
		writeFile(t, dir, filepathName(i), sb.String())
	}

	for _, threads := range []int{1, 2, 8} {
		opts := newTestOptions(dir)
		opts.Term = "needle"
		opts.Mode = CaseSensitive
		opts.Threads = threads

		var stdout, stderr bytes.Buffer
		if _, err := New(opts, logger.Discard, &stdout, &stderr).Run(context.Background()); err != nil {
			t.Fatalf("Run(threads=%d): %v", threads, err)
		}

		got := strings.Count(stdout.String(), "needle")
		if got != total {
			t.Fatalf("threads=%d: expected %d matches, got %d", threads, total, got)
		}
	}
}

func filepathName(i int) string {
	return "f" + string(rune('a'+i)) + ".txt"
}

// TestScenarioS5GitMode checks that only files listed by `git ls-files`
// are searched, so an untracked binary sibling never runs through the
// binary heuristic in the first place.
func TestScenarioS5GitMode(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	dir := t.TempDir()
	runGit(t, dir, "init")
	runGit(t, dir, "config", "user.email", "test@example.com")
	runGit(t, dir, "config", "user.name", "test")

	writeFile(t, dir, "src/a.cpp", "int value = 1;\n")
	writeFile(t, dir, "build/tmp.o", "junk\x00\x00int\n")

	runGit(t, dir, "add", "src/a.cpp")
	runGit(t, dir, "commit", "-m", "init")

	opts := newTestOptions(dir)
	opts.Term = "int"
	opts.Mode = CaseSensitive
	opts.Source = GitFiles

	var stdout, stderr bytes.Buffer
	matched, err := New(opts, logger.Discard, &stdout, &stderr).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !matched {
		t.Fatalf("expected a match, stderr: %s", stderr.String())
	}
	if strings.Contains(stdout.String(), "tmp.o") {
		t.Fatalf("expected untracked build/tmp.o to be excluded, got %q", stdout.String())
	}
	if !strings.Contains(stdout.String(), "a.cpp") {
		t.Fatalf("expected src/a.cpp match, got %q", stdout.String())
	}
}

func TestExcludeDirsSkipped(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "keep/a.txt", "needle in keep\n")
	writeFile(t, dir, "vendor/b.txt", "needle in vendor\n")

	opts := newTestOptions(dir)
	opts.Term = "needle"
	opts.Mode = CaseSensitive
	opts.ExcludeDirs = []string{"vendor"}

	var stdout, stderr bytes.Buffer
	matched, err := New(opts, logger.Discard, &stdout, &stderr).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !matched {
		t.Fatalf("expected a match in keep/")
	}
	if strings.Contains(stdout.String(), "vendor") {
		t.Fatalf("expected vendor directory excluded, got %q", stdout.String())
	}
}
