package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Gobd/symvalidation"
	"github.com/Gobd/symvalidation/config"
	"github.com/Gobd/symvalidation/entities"
	"github.com/Gobd/symvalidation/openapi"
	"github.com/Gobd/symvalidation/transform"
)

const stdinName = "-"

// App holds what every subcommand needs.
type App struct {
	cfg       *config.Config
	logger    *slog.Logger
	registry  *prometheus.Registry
	validator *symvalidation.Validator
	schemas   map[string]*symvalidation.Schema
}

type validateOptions struct {
	trim  bool
	lower bool
}

// NewApp loads the configuration at configPath, or the defaults when it is
// empty, and builds the validator. A non-empty logLevel overrides the
// configured one.
func NewApp(configPath, logLevel string, logOut io.Writer) (*App, error) {
	cfg := config.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = config.LoadFromFile(configPath); err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	level, _ := cfg.Log.SlogLevel()
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))

	reg := prometheus.NewRegistry()
	v := symvalidation.NewValidator(cfg.Solver.NewSolver(),
		symvalidation.WithLogger(logger),
		symvalidation.WithMetrics(symvalidation.NewMetrics(reg)),
	)
	logger.Debug("symval ready", "version", Version, "backend", cfg.Solver.Backend)

	return &App{
		cfg:       cfg,
		logger:    logger,
		registry:  reg,
		validator: v,
		schemas:   entities.Registry(),
	}, nil
}

func (a *App) schema(entity string) (*symvalidation.Schema, error) {
	s, ok := a.schemas[entity]
	if !ok {
		return nil, fmt.Errorf("unknown entity %q (known: %s)", entity, strings.Join(a.entityNames(), ", "))
	}
	return s, nil
}

func (a *App) entityNames() []string {
	names := make([]string, 0, len(a.schemas))
	for n := range a.schemas {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// expand resolves glob patterns to file names; no pattern means stdin.
func expand(patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return []string{stdinName}, nil
	}
	var files []string
	seen := map[string]bool{}
	for _, p := range patterns {
		if p == stdinName {
			files = append(files, p)
			continue
		}
		matches, err := doublestar.FilepathGlob(p)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", p, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", p)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	return files, nil
}

func decode(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode JSON: %w", err)
	}
	return raw, nil
}

// Validate checks every input against entity and prints one line per
// input. It fails when any input is rejected.
func (a *App) Validate(ctx context.Context, stdin io.Reader, out io.Writer, entity string, patterns []string, opts validateOptions) error {
	s, err := a.schema(entity)
	if err != nil {
		return err
	}
	files, err := expand(patterns)
	if err != nil {
		return err
	}

	ok := color.New(color.FgGreen).SprintFunc()
	bad := color.New(color.FgRed).SprintFunc()
	rejected := 0
	for _, name := range files {
		if err := a.validateOne(ctx, stdin, s, name, opts); err != nil {
			rejected++
			fmt.Fprintf(out, "%s: %s: %v\n", name, bad("rejected"), err)
			continue
		}
		fmt.Fprintf(out, "%s: %s\n", name, ok("ok"))
	}
	if rejected > 0 {
		return fmt.Errorf("%d of %d instances rejected", rejected, len(files))
	}
	return nil
}

func (a *App) validateOne(ctx context.Context, stdin io.Reader, s *symvalidation.Schema, name string, opts validateOptions) error {
	var data []byte
	var err error
	if name == stdinName {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return err
	}
	raw, err := decode(bytes.NewReader(data))
	if err != nil {
		return err
	}

	// Wrapping lets value instances share the map transforms.
	wrapped := map[string]any{"instance": raw}
	if opts.trim {
		transform.MapTrimSpace(wrapped)
	}
	if opts.lower {
		transform.MapToLower(wrapped)
	}
	raw = wrapped["instance"]

	ctx, cancel := context.WithTimeout(ctx, a.cfg.Solver.Timeout)
	defer cancel()
	if s.IsValue() {
		_, err = a.validator.ValidateValue(ctx, s, raw)
		return err
	}
	m, isMap := raw.(map[string]any)
	if !isMap {
		return fmt.Errorf("%s instance must be a JSON object", s.Name())
	}
	_, err = a.validator.Validate(ctx, s, m)
	return err
}

// Describe prints the symbolic view and classification of the named
// entities, all of them when names is empty.
func (a *App) Describe(ctx context.Context, out io.Writer, names []string, asOpenAPI bool) error {
	if len(names) == 0 {
		names = a.entityNames()
	}
	ds := make([]*symvalidation.Descriptor, 0, len(names))
	for _, n := range names {
		s, err := a.schema(n)
		if err != nil {
			return err
		}
		d, err := a.validator.Describe(ctx, s)
		if err != nil {
			return err
		}
		ds = append(ds, d)
	}

	if asOpenAPI {
		b, err := json.MarshalIndent(openapi.Document(appName, Version, ds...), "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(b))
		return err
	}
	for _, d := range ds {
		fmt.Fprintf(out, "%s\n  => %s (%s)\n", d, d.Classification.Kind, d.Classification.Reason)
	}
	return nil
}

// WriteMetrics prints the counters gathered so far, one sample per line.
func (a *App) WriteMetrics(w io.Writer) {
	families, err := a.registry.Gather()
	if err != nil {
		a.logger.Warn("gather metrics", "error", err)
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, l := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", l.GetName(), l.GetValue()))
			}
			fmt.Fprintf(w, "%s{%s} %g\n", mf.GetName(), strings.Join(labels, ","), m.GetCounter().GetValue())
		}
	}
}
