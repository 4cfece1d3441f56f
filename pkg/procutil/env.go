// Package procutil reads settings from the process environment.
package procutil

import (
	"os"
	"strings"
	"time"
)

type EnvVar string

const (
	// ZS_LOG_LEVEL overrides the configured log level.
	ZS_LOG_LEVEL EnvVar = "ZS_LOG_LEVEL"
	// ZS_WATCH overrides whether the workspace follows file changes.
	ZS_WATCH EnvVar = "ZS_WATCH"
	// ZS_WATCH_DEBOUNCE overrides the watcher debounce, as a duration.
	ZS_WATCH_DEBOUNCE EnvVar = "ZS_WATCH_DEBOUNCE"
)

func LookupBoolEnv(name EnvVar, defaultValue bool) bool {
	if val, ok := os.LookupEnv(string(name)); ok {
		switch strings.ToLower(val) {
		case "true", "1":
			return true
		case "false", "0":
			return false
		}
	}
	return defaultValue
}

// LookupDurationEnv returns the duration named by the variable, or
// defaultValue when it is unset or malformed.
func LookupDurationEnv(name EnvVar, defaultValue time.Duration) time.Duration {
	if val, ok := os.LookupEnv(string(name)); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultValue
}

func LookupEnv(name EnvVar) (string, bool) {
	return os.LookupEnv(string(name))
}
