package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMustPrepareTestFiles(t *testing.T) {
	dir, filenames := MustPrepareTestFiles(t, append(Files(map[string]string{
		"scripts/main.zs":       "x;",
		"generated/globals.dzs": "global x as int;",
	}), FileSpec{Path: "scripts/gone.zs", NotExist: true}))

	want := []string{
		filepath.Join(dir, "generated", "globals.dzs"),
		filepath.Join(dir, "scripts", "main.zs"),
		filepath.Join(dir, "scripts", "gone.zs"),
	}
	if diff := cmp.Diff(want, filenames); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if got := MustReadTestFile(t, dir, "scripts/main.zs"); got != "x;" {
		t.Errorf("content: got %q", got)
	}
	if _, err := os.Stat(filenames[2]); !os.IsNotExist(err) {
		t.Errorf("want %s to be absent, got %v", filenames[2], err)
	}
}
