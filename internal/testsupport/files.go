package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Timestamp returns a distinct timing line for the 1-based block n.
func Timestamp(n int) string {
	start := n * 2
	return fmt.Sprintf("%s --> %s", clock(start), clock(start+1))
}

func clock(seconds int) string {
	return fmt.Sprintf("%02d:%02d:%02d,000", seconds/3600, seconds/60%60, seconds%60)
}

// BuildSRT renders a document of n numbered blocks, each with a single text
// line "Line <n>".
func BuildSRT(n int) string {
	var b strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "%d\n%s\nLine %d\n\n", i, Timestamp(i), i)
	}
	return b.String()
}

// WriteSRT writes a generated n-block document to path and returns the path.
func WriteSRT(t testing.TB, path string, n int) string {
	t.Helper()
	WriteFile(t, path, BuildSRT(n))
	return path
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// ReadFile returns the content of path or fails the test.
func ReadFile(t testing.TB, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
