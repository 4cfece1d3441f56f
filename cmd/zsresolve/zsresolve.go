package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/warmthdawn/zenscript-intelli-sense/pkg/collections"
	"github.com/warmthdawn/zenscript-intelli-sense/pkg/index"
	"github.com/warmthdawn/zenscript-intelli-sense/pkg/logger"
	"github.com/warmthdawn/zenscript-intelli-sense/pkg/progress"
	"github.com/warmthdawn/zenscript-intelli-sense/pkg/resolver"
	"github.com/warmthdawn/zenscript-intelli-sense/pkg/symbol"
	"github.com/warmthdawn/zenscript-intelli-sense/pkg/syntax"
	"github.com/warmthdawn/zenscript-intelli-sense/pkg/unit"
	"github.com/warmthdawn/zenscript-intelli-sense/pkg/workspace"
)

type config struct {
	root         string
	configFile   string
	file         string
	offset       int
	line         int
	column       int
	indexFiles   collections.StringSlice
	indexOut     string
	verbose      bool
	logFormat    string
	jsonProgress bool
	watch        bool
	metricsAddr  string
}

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "zsresolve:", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "zsresolve:", err)
		os.Exit(1)
	}
}

func parseFlags(args []string) (*config, error) {
	cfg := &config{}

	fs := flag.NewFlagSet("zsresolve", flag.ContinueOnError)
	fs.StringVar(&cfg.root, "root", ".", "the workspace root")
	fs.StringVar(&cfg.configFile, "config", "", "the configuration file (defaults to <root>/"+workspace.ConfigFileName+")")
	fs.StringVar(&cfg.file, "file", "", "the unit to resolve in")
	fs.IntVar(&cfg.offset, "offset", -1, "the byte offset of the reference in -file")
	fs.IntVar(&cfg.line, "line", 0, "the 1-based line of the reference in -file")
	fs.IntVar(&cfg.column, "column", 1, "the 1-based column of the reference in -file")
	fs.Var(&cfg.indexFiles, "index", "an environment index to load (repeatable)")
	fs.StringVar(&cfg.indexOut, "index_out", "", "write the environment index to this file")
	fs.BoolVar(&cfg.verbose, "v", false, "log debug messages")
	fs.StringVar(&cfg.logFormat, "log_format", string(logger.FormatConsole), "console or json")
	fs.BoolVar(&cfg.jsonProgress, "json_progress", false, "report progress as JSON messages")
	fs.BoolVar(&cfg.watch, "watch", false, "keep running and follow file changes")
	fs.StringVar(&cfg.metricsAddr, "metrics_addr", "", "serve prometheus metrics on this address")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cfg.file != "" && cfg.offset < 0 && cfg.line <= 0 {
		return nil, errors.New("-file requires -offset or -line")
	}
	if cfg.file == "" && cfg.indexOut == "" && !cfg.watch {
		return nil, errors.New("nothing to do: pass -file, -index_out or -watch")
	}
	switch logger.Format(cfg.logFormat) {
	case logger.FormatConsole, logger.FormatJSON:
	default:
		return nil, fmt.Errorf("unknown -log_format %q", cfg.logFormat)
	}
	return cfg, nil
}

func loadConfig(cfg *config) (*workspace.Config, error) {
	root, err := filepath.Abs(cfg.root)
	if err != nil {
		return nil, err
	}
	var wc *workspace.Config
	if cfg.configFile != "" {
		wc, err = workspace.LoadConfig(cfg.configFile)
	} else {
		wc, err = workspace.FindConfig(root)
	}
	if err != nil {
		return nil, err
	}
	for _, f := range cfg.indexFiles {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, err
		}
		wc.IndexFiles = append(wc.IndexFiles, abs)
	}
	if cfg.watch {
		wc.Watch.Enabled = true
	}
	return wc, nil
}

func run(ctx context.Context, cfg *config, stdout, stderr io.Writer) error {
	wc, err := loadConfig(cfg)
	if err != nil {
		return err
	}
	log := logger.New(stderr, logger.Verbose(cfg.verbose, wc.Level()), logger.Format(cfg.logFormat))

	output := progress.NewProgressOutput(stderr)
	if cfg.jsonProgress {
		output = progress.NewJSONProgressOutput(stderr)
	}

	ws := workspace.New(wc, workspace.WithLogger(log), workspace.WithProgress(output))
	if err := ws.Load(ctx); err != nil {
		return fmt.Errorf("loading workspace: %w", err)
	}

	if cfg.indexOut != "" {
		spec := ws.Environment().Snapshot().Spec(ws.TypeModel())
		if err := index.WriteJSONFile(cfg.indexOut, spec); err != nil {
			return fmt.Errorf("writing index: %w", err)
		}
		log.Info().Str("file", cfg.indexOut).Int("classes", len(spec.Classes)).Msg("wrote environment index")
	}

	if cfg.file != "" {
		if err := resolve(ws, cfg, stdout); err != nil {
			return err
		}
	}

	if !wc.Watch.Enabled {
		return nil
	}
	if cfg.metricsAddr != "" {
		go serveMetrics(log, cfg.metricsAddr)
	}
	return ws.Watch(ctx)
}

func serveMetrics(log zerolog.Logger, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	log.Info().Str("addr", addr).Msg("serving metrics")
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Error().Err(err).Msg("metrics server stopped")
	}
}

func resolve(ws *workspace.Workspace, cfg *config, stdout io.Writer) error {
	path, err := filepath.Abs(cfg.file)
	if err != nil {
		return err
	}

	offset := cfg.offset
	if offset < 0 {
		err := ws.Read(path, func(u *unit.Unit) error {
			offset = syntax.OffsetOf(u.Tree().Source, syntax.Position{Line: cfg.line - 1, Column: cfg.column - 1})
			return nil
		})
		if err != nil {
			return err
		}
		if offset < 0 {
			return fmt.Errorf("%s has no line %d", cfg.file, cfg.line)
		}
	}

	symbols, err := ws.ResolveAt(path, offset)
	if err != nil {
		return err
	}
	if len(symbols) == 0 {
		return fmt.Errorf("%s@%d: %w", cfg.file, offset, resolver.ErrSymbolNotFound)
	}
	for _, sym := range symbols {
		fmt.Fprintln(stdout, describe(sym))
	}
	return nil
}

// describe renders a symbol as "kind name location".
func describe(sym symbol.Symbol) string {
	location := "<environment>"
	if owner := sym.Owner(); owner != nil && owner.Tree() != nil {
		pos := syntax.PositionOf(owner.Tree().Source, sym.Range().Start)
		location = fmt.Sprintf("%s:%d:%d", owner.Path(), pos.Line+1, pos.Column+1)
	}
	return fmt.Sprintf("%s %s %s", sym.Kind(), sym.Name(), location)
}
