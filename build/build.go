// Package build runs complete stylesheet generation: style configuration is
// loaded and resolved, content is scanned, generated layers are merged into
// input stylesheet and result is written out.
package build

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/renameio/v2"
	"go.uber.org/zap"

	"tailgen/common"
	"tailgen/content"
	"tailgen/css"
	"tailgen/generate"
	"tailgen/project"
	"tailgen/state"
)

// Stats summarizes single build.
type Stats struct {
	Files      int
	Candidates int
	Matched    int
	Bytes      int64
	Output     string
	Duration   time.Duration
}

// Builder performs builds for one style configuration file.
type Builder struct {
	env       *state.LocalEnv
	stylePath string
	stdout    io.Writer
	log       *zap.Logger
}

// NewBuilder creates builder. Output goes to stdout when neither command
// line nor program configuration names output file.
func NewBuilder(env *state.LocalEnv, stylePath string) *Builder {
	log := env.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{env: env, stylePath: stylePath, stdout: os.Stdout, log: log.Named("build")}
}

// Run is a shortcut for a single build.
func Run(ctx context.Context, env *state.LocalEnv, stylePath string) (*Stats, error) {
	return NewBuilder(env, stylePath).Run(ctx)
}

func (b *Builder) outputPath() string {
	if b.env.OutputPath != "" {
		return b.env.OutputPath
	}
	return b.env.Cfg.Build.OutputPath
}

// Run executes build once.
func (b *Builder) Run(ctx context.Context) (*Stats, error) {
	start := time.Now()

	cfg, err := project.Load(b.stylePath)
	if err != nil {
		return nil, err
	}
	resolved, err := b.resolve(cfg)
	if err != nil {
		return nil, err
	}

	gen, err := generate.New(resolved, generate.Options{Preflight: b.env.Cfg.Build.Preflight}, b.log)
	if err != nil {
		return nil, fmt.Errorf("unable to prepare generator: %w", err)
	}

	patterns, duplicates := cfg.Patterns()
	for _, d := range duplicates {
		b.log.Warn("Duplicate content pattern ignored", zap.String("pattern", d))
	}
	scan, err := content.NewScanner(cfg.Dir, patterns, b.env.Cfg.Build.Workers, b.log).Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to scan content: %w", err)
	}
	if b.env.Rpt != nil {
		b.env.Rpt.StoreData("scan.txt", []byte(scan.String()))
	}

	input, err := b.input()
	if err != nil {
		return nil, err
	}

	out := gen.Generate(scan.Candidates())
	sheet := out.Apply(input)
	for _, w := range sheet.Warnings {
		b.log.Warn("Stylesheet problem", zap.String("details", w))
	}

	stats := &Stats{
		Files:      len(scan.Files),
		Candidates: scan.Len(),
		Matched:    len(out.Matched),
		Output:     b.outputPath(),
	}
	if stats.Bytes, err = b.write(sheet); err != nil {
		return nil, err
	}
	stats.Duration = time.Since(start)

	b.log.Info("Stylesheet generated",
		zap.String("output", displayName(stats.Output)),
		zap.Int("files", stats.Files),
		zap.Int("candidates", stats.Candidates),
		zap.Int("classes", stats.Matched),
		zap.Int64("bytes", stats.Bytes),
		zap.Duration("elapsed", stats.Duration))
	return stats, nil
}

// resolve merges tokens and keeps copy of the result in debug report.
func (b *Builder) resolve(cfg *project.Config) (*project.Resolved, error) {
	resolved := cfg.Resolve()
	if b.env.Rpt != nil {
		b.env.Rpt.Store("style-config"+filepath.Ext(b.stylePath), b.stylePath)
		data, err := resolved.Marshal(common.ResolveFormatYaml)
		if err != nil {
			return nil, err
		}
		b.env.Rpt.StoreData("resolved.yaml", data)
	}
	return resolved, nil
}

func (b *Builder) input() (*css.Stylesheet, error) {
	parser := css.NewParser(b.log)
	if b.env.InputPath == "" {
		return parser.Parse(b.env.DefaultInput), nil
	}
	data, err := os.ReadFile(b.env.InputPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read input stylesheet: %w", err)
	}
	return parser.Parse(data, b.env.InputPath), nil
}

// write replaces output atomically so watchers of the output file never see
// partially written stylesheet.
func (b *Builder) write(sheet *css.Stylesheet) (int64, error) {
	minify := b.env.Minify || b.env.Cfg.Build.Minify

	path := b.outputPath()
	if path == "" || path == "-" {
		return sheet.Write(b.stdout, minify)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return 0, fmt.Errorf("unable to create output directory: %w", err)
	}
	pending, err := renameio.NewPendingFile(path)
	if err != nil {
		return 0, fmt.Errorf("unable to create pending output file: %w", err)
	}
	defer func() {
		if err := pending.Cleanup(); err != nil {
			b.log.Debug("Unable to cleanup pending output file", zap.Error(err))
		}
	}()

	n, err := sheet.Write(pending, minify)
	if err != nil {
		return 0, fmt.Errorf("unable to write output stylesheet: %w", err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return 0, fmt.Errorf("unable to replace output stylesheet: %w", err)
	}
	return n, nil
}

func displayName(path string) string {
	if path == "" || path == "-" {
		return "<stdout>"
	}
	return path
}
