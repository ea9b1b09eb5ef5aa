// Package testutil builds throwaway repository trees for guard tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// NewRepo creates an isolated repository root per test and writes files into
// it. Keys are slash-separated paths relative to the root.
func NewRepo(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for rel, content := range files {
		WriteFile(t, root, rel, []byte(content))
	}
	return root
}

// WriteFile writes raw bytes at root/rel, creating parent directories.
func WriteFile(t *testing.T, root, rel string, content []byte) string {
	t.Helper()

	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create parent of %q: %v", rel, err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write %q: %v", rel, err)
	}
	return path
}

// MkdirAll creates root/rel as an empty directory.
func MkdirAll(t *testing.T, root, rel string) string {
	t.Helper()

	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("create directory %q: %v", rel, err)
	}
	return path
}
