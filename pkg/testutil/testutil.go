// Package testutil holds helpers shared by tests that need a workspace on
// disk.
package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/rs/zerolog"
)

// FileSpec describes a file to write below a test directory.
type FileSpec struct {
	// Path is slash separated and relative to the test directory.
	Path    string
	Content string
	// NotExist names a path without creating it.
	NotExist bool
}

// MustPrepareTestFiles writes files into a fresh temporary directory and
// returns it together with the absolute filenames, in the order given.
func MustPrepareTestFiles(t *testing.T, files []FileSpec) (dir string, filenames []string) {
	t.Helper()
	dir = t.TempDir()
	return dir, MustWriteTestFiles(t, dir, files)
}

// MustWriteTestFiles writes files below dir.
func MustWriteTestFiles(t *testing.T, dir string, files []FileSpec) []string {
	t.Helper()
	var filenames []string
	for _, file := range files {
		abs := filepath.Join(dir, filepath.FromSlash(file.Path))
		if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
			t.Fatal(err)
		}
		if !file.NotExist {
			if err := os.WriteFile(abs, []byte(file.Content), 0o644); err != nil {
				t.Fatal(err)
			}
		}
		filenames = append(filenames, abs)
	}
	return filenames
}

// Files turns a path to content map into FileSpecs sorted by path.
func Files(contents map[string]string) []FileSpec {
	files := make([]FileSpec, 0, len(contents))
	for path, content := range contents {
		files = append(files, FileSpec{Path: path, Content: content})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files
}

// MustReadTestFile reads a file below dir.
func MustReadTestFile(t *testing.T, dir string, filename string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filename))
	if err != nil {
		ListFiles(t, dir)
		t.Fatal("reading", filename, ":", err)
	}
	return string(data)
}

// NewTestLogger returns a logger writing through t.Log.
func NewTestLogger(t *testing.T) zerolog.Logger {
	return zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.DebugLevel)
}

// ListFiles is a convenience debugging function to log the files under a given dir.
func ListFiles(t *testing.T, dir string) {
	t.Log("Listing files under:", dir)
	if err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		t.Log(path)
		return nil
	}); err != nil {
		t.Fatal(err)
	}
}
