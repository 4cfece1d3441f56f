package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/warmthdawn/zenscript-intelli-sense/pkg/index"
	"github.com/warmthdawn/zenscript-intelli-sense/pkg/resolver"
	"github.com/warmthdawn/zenscript-intelli-sense/pkg/testutil"
)

func TestParseFlags(t *testing.T) {
	for name, tc := range map[string]struct {
		args    []string
		wantErr string
	}{
		"file with offset": {args: []string{"-file", "a.zs", "-offset", "3"}},
		"file with line":   {args: []string{"-file", "a.zs", "-line", "2", "-column", "4"}},
		"index only":       {args: []string{"-index_out", "env.json"}},
		"watch only":       {args: []string{"-watch"}},
		"nothing to do":    {wantErr: "nothing to do"},
		"file without position": {
			args:    []string{"-file", "a.zs"},
			wantErr: "-file requires -offset or -line",
		},
		"bad log format": {
			args:    []string{"-watch", "-log_format", "xml"},
			wantErr: `unknown -log_format "xml"`,
		},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := parseFlags(tc.args)
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("want error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func writeWorkspace(t *testing.T) string {
	t.Helper()
	dir, _ := testutil.MustPrepareTestFiles(t, []testutil.FileSpec{
		{Path: "generated/globals.dzs", Content: "global recipes as int;\n"},
		{Path: "scripts/main.zs", Content: "var x = 1;\nx;\nrecipes;\nmissing;\n"},
	})
	return dir
}

func TestRun(t *testing.T) {
	dir := writeWorkspace(t)
	mainPath := filepath.Join(dir, "scripts", "main.zs")
	globals := filepath.Join(dir, "generated", "globals.dzs")

	for name, tc := range map[string]struct {
		cfg     config
		want    string
		wantErr error
	}{
		"by offset": {
			cfg:  config{file: mainPath, offset: 11},
			want: "variable x " + mainPath + ":1:1\n",
		},
		"by line and column": {
			cfg:  config{file: mainPath, offset: -1, line: 3, column: 3},
			want: "variable recipes " + globals + ":1:1\n",
		},
		"unresolved": {
			cfg:     config{file: mainPath, offset: -1, line: 4, column: 1},
			wantErr: resolver.ErrSymbolNotFound,
		},
	} {
		t.Run(name, func(t *testing.T) {
			tc.cfg.root = dir
			tc.cfg.logFormat = "console"
			var stdout, stderr bytes.Buffer
			err := run(context.Background(), &tc.cfg, &stdout, &stderr)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("want %v, got %v", tc.wantErr, err)
				}
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, stdout.String()); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestRunIndexOut(t *testing.T) {
	dir := writeWorkspace(t)
	out := filepath.Join(t.TempDir(), "env.json")

	var stdout, stderr bytes.Buffer
	require.NoError(t, run(context.Background(), &config{root: dir, indexOut: out, logFormat: "json"}, &stdout, &stderr))

	spec, err := index.ReadEnvironmentSpec(out)
	require.NoError(t, err)
	var globals []string
	for _, g := range spec.Globals {
		globals = append(globals, g.Name+" "+g.Type)
	}
	if diff := cmp.Diff([]string{"recipes int"}, globals); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
