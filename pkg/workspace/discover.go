package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/warmthdawn/zenscript-intelli-sense/pkg/unit"
)

// Discover returns the absolute paths of the unit files under the
// configured root, sorted. Patterns are matched against slash separated
// paths relative to the root.
func Discover(cfg *Config) ([]string, error) {
	fsys := os.DirFS(cfg.Root)

	seen := make(map[string]bool)
	var names []string
	for _, pattern := range cfg.Include {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		for _, name := range matches {
			if seen[name] || !unit.IsUnitFile(name) {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}

	var paths []string
loop:
	for _, name := range names {
		for _, exclude := range cfg.Exclude {
			if ok, _ := doublestar.Match(exclude, name); ok {
				continue loop
			}
		}
		paths = append(paths, filepath.Join(cfg.Root, filepath.FromSlash(name)))
	}
	sort.Strings(paths)
	return paths, nil
}

// Excluded reports whether an absolute path is not a unit file, is outside
// the configured include patterns or is matched by an exclude pattern.
// Paths it accepts are the ones Discover would return.
func (c *Config) Excluded(path string) bool {
	if !unit.IsUnitFile(path) {
		return true
	}
	rel, err := filepath.Rel(c.Root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return true
	}
	rel = filepath.ToSlash(rel)
	for _, exclude := range c.Exclude {
		if ok, _ := doublestar.Match(exclude, rel); ok {
			return true
		}
	}
	for _, include := range c.Include {
		if ok, _ := doublestar.Match(include, rel); ok {
			return false
		}
	}
	return true
}

// UnitRoot returns the directory qualified names of the file at path are
// relative to: the generated root for declaration files beneath it, the
// workspace root otherwise.
func (c *Config) UnitRoot(path string) string {
	generated := filepath.Join(c.Root, c.GeneratedRoot)
	if rel, err := filepath.Rel(generated, path); err == nil && !strings.HasPrefix(rel, "..") {
		return generated
	}
	return c.Root
}
