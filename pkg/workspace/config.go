// Package workspace loads a tree of ZenScript units, keeps their derived
// tables current as documents change and answers resolution queries.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"

	"github.com/warmthdawn/zenscript-intelli-sense/pkg/procutil"
)

// ConfigFileName is the name of the workspace configuration file looked up
// in the workspace root.
const ConfigFileName = "zenscript.toml"

// DefaultGeneratedRoot is the directory holding declaration files,
// relative to the workspace root.
const DefaultGeneratedRoot = "generated"

var defaultInclude = []string{"**/*.zs", "**/*.dzs"}

// Config is the decoded form of zenscript.toml.
type Config struct {
	// Root is the scripts root. Relative roots are resolved against the
	// directory of the configuration file.
	Root string `toml:"root"`
	// GeneratedRoot holds the .dzs declaration files.
	GeneratedRoot string   `toml:"generated_root"`
	Include       []string `toml:"include"`
	Exclude       []string `toml:"exclude"`
	// IndexFiles are JSON environment indexes loaded next to the units.
	IndexFiles []string `toml:"index_files"`
	LogLevel   string   `toml:"log_level"`
	Watch      Watch    `toml:"watch"`
}

// Watch configures the file watcher.
type Watch struct {
	Enabled  bool          `toml:"enabled"`
	Debounce time.Duration `toml:"debounce"`
}

// DefaultConfig returns the configuration used when a workspace has no
// zenscript.toml.
func DefaultConfig(root string) *Config {
	cfg := &Config{Root: root}
	cfg.applyEnv()
	cfg.applyDefaults("")
	return cfg
}

// LoadConfig reads and validates a configuration file.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(filepath.Dir(filename), string(data))
}

// ParseConfig decodes a configuration whose relative paths are anchored
// at dir.
func ParseConfig(dir, data string) (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.applyEnv()
	cfg.applyDefaults(dir)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FindConfig loads zenscript.toml from root, or falls back to the default
// configuration when there is none.
func FindConfig(root string) (*Config, error) {
	filename := filepath.Join(root, ConfigFileName)
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(root), nil
	}
	return LoadConfig(filename)
}

// applyEnv applies the ZS_* environment overrides.
func (c *Config) applyEnv() {
	if level, ok := procutil.LookupEnv(procutil.ZS_LOG_LEVEL); ok {
		c.LogLevel = level
	}
	c.Watch.Enabled = procutil.LookupBoolEnv(procutil.ZS_WATCH, c.Watch.Enabled)
	c.Watch.Debounce = procutil.LookupDurationEnv(procutil.ZS_WATCH_DEBOUNCE, c.Watch.Debounce)
}

func (c *Config) applyDefaults(dir string) {
	if c.Root == "" {
		c.Root = dir
	}
	if c.Root == "" {
		c.Root = "."
	}
	if dir != "" && !filepath.IsAbs(c.Root) {
		c.Root = filepath.Join(dir, c.Root)
	}
	if c.GeneratedRoot == "" {
		c.GeneratedRoot = DefaultGeneratedRoot
	}
	if len(c.Include) == 0 {
		c.Include = append([]string(nil), defaultInclude...)
	}
	if c.LogLevel == "" {
		c.LogLevel = zerolog.LevelInfoValue
	}
	if c.Watch.Debounce == 0 {
		c.Watch.Debounce = 200 * time.Millisecond
	}
	for i, f := range c.IndexFiles {
		if !filepath.IsAbs(f) {
			c.IndexFiles[i] = filepath.Join(c.Root, f)
		}
	}
}

func (c *Config) validate() error {
	for _, pattern := range append(append([]string(nil), c.Include...), c.Exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid glob pattern %q", pattern)
		}
	}
	if filepath.IsAbs(c.GeneratedRoot) {
		return fmt.Errorf("generated_root must be relative to root: %s", c.GeneratedRoot)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative: %v", c.Watch.Debounce)
	}
	return nil
}

// Level returns the configured log level.
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
