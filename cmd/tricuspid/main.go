// Command tricuspid draws the envelopes of chords joining two points that
// travel around the origin at different rates, along with the chord
// diagnostics they grew out of, and searches for the rate at which the cusp
// of the reflected curve degenerates.
//
// Settings come from an embedded default configuration, optionally
// overridden by a YAML file passed with -config. Pages are written to the
// output directory as SVG, PNG or a single PDF, next to CSV exports of every
// sampled curve and a snapshot of the configuration used.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"honnef.co/go/tricuspid"
	"honnef.co/go/tricuspid/config"
	"honnef.co/go/tricuspid/render"
	"honnef.co/go/tricuspid/report"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outDir := flag.String("out", "", "Output directory (empty = use config)")
	format := flag.String("format", "", "Output format: svg, png or pdf (empty = use config)")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn or error (empty = use config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *outDir != "" {
		cfg.Output.Dir = *outDir
	}
	if *format != "" {
		cfg.Output.Format = *format
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	if err := cfg.Apply(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)
	tricuspid.SetLogger(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("failed", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.Derived.LogLevel}
	if strings.EqualFold(cfg.Logging.Format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func run(cfg *config.Config, log *slog.Logger) (err error) {
	canvas, err := render.Open(render.Options{
		Format: cfg.Output.Format,
		Dir:    cfg.Output.Dir,
		Prefix: cfg.Output.Prefix,
		Width:  cfg.Output.Width,
		Height: cfg.Output.Height,
		Paper:  cfg.Output.Paper,
	})
	if err != nil {
		return fmt.Errorf("opening canvas: %w", err)
	}
	defer func() {
		if cerr := canvas.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing canvas: %w", cerr)
		}
	}()

	var rw *report.Writer
	if cfg.Output.CSV {
		if rw, err = report.NewWriter(cfg.Output.Dir); err != nil {
			return err
		}
		defer func() {
			if cerr := rw.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing report: %w", cerr)
			}
		}()
		if err := rw.WriteConfig(cfg); err != nil {
			return err
		}
	}

	d := &driver{cfg: cfg, canvas: canvas, report: rw, log: log}
	log.Info("starting",
		"dir", cfg.Output.Dir,
		"format", cfg.Output.Format,
		"pairs", len(cfg.Derived.Pairs),
		"literal_pairs", len(cfg.Literal),
		"real_pairs", len(cfg.RealPairs),
	)

	if cfg.Chords.Enabled {
		if err := d.chordPages(); err != nil {
			return err
		}
	}
	for _, p := range cfg.Derived.Pairs {
		if err := d.integerPage(p.String(), float64(p.A), float64(p.B)); err != nil {
			return err
		}
	}
	for _, p := range cfg.Literal {
		if err := d.integerPage(fmt.Sprintf("literal (%d, %d)", p.A, p.B), float64(p.A), float64(p.B)); err != nil {
			return err
		}
	}
	for _, p := range cfg.RealPairs {
		if err := d.reflectedPage(p.A, p.B); err != nil {
			return err
		}
	}
	return d.degeneracy()
}
