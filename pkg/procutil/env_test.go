package procutil

import (
	"testing"
	"time"
)

func TestLookupBoolEnv(t *testing.T) {
	for name, tc := range map[string]struct {
		value string
		set   bool
		def   bool
		want  bool
	}{
		"unset":     {def: true, want: true},
		"true":      {value: "TRUE", set: true, want: true},
		"one":       {value: "1", set: true, want: true},
		"false":     {value: "false", set: true, def: true},
		"malformed": {value: "yes", set: true, def: true, want: true},
	} {
		t.Run(name, func(t *testing.T) {
			if tc.set {
				t.Setenv(string(ZS_WATCH), tc.value)
			}
			if got := LookupBoolEnv(ZS_WATCH, tc.def); got != tc.want {
				t.Errorf("want %v, got %v", tc.want, got)
			}
		})
	}
}

func TestLookupDurationEnv(t *testing.T) {
	for name, tc := range map[string]struct {
		value string
		set   bool
		want  time.Duration
	}{
		"unset":     {want: time.Second},
		"set":       {value: "250ms", set: true, want: 250 * time.Millisecond},
		"malformed": {value: "soon", set: true, want: time.Second},
	} {
		t.Run(name, func(t *testing.T) {
			if tc.set {
				t.Setenv(string(ZS_WATCH_DEBOUNCE), tc.value)
			}
			if got := LookupDurationEnv(ZS_WATCH_DEBOUNCE, time.Second); got != tc.want {
				t.Errorf("want %v, got %v", tc.want, got)
			}
		})
	}
}
