package content

import (
	"context"
	"fmt"
	"maps"
	"os"
	"runtime"
	"slices"
	"sort"

	"github.com/maruel/natural"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// FileStat describes result of scanning single file.
type FileStat struct {
	Path       string
	Size       int
	Candidates int
	Binary     bool
	Err        error
}

// Result holds everything scanner has found.
type Result struct {
	Files      []FileStat
	candidates map[string]struct{}
}

// Has reports whether candidate was seen in any scanned file.
func (r *Result) Has(candidate string) bool {
	_, ok := r.candidates[candidate]
	return ok
}

// Len returns number of unique candidates.
func (r *Result) Len() int {
	return len(r.candidates)
}

// Candidates returns unique candidates in natural order.
func (r *Result) Candidates() []string {
	list := slices.Collect(maps.Keys(r.candidates))
	sort.Sort(natural.StringSlice(list))
	return list
}

// Scanner reads content files in parallel.
type Scanner struct {
	root     string
	patterns []string
	workers  int
	log      *zap.Logger
}

// NewScanner creates scanner for patterns relative to root. Zero workers
// means number of CPUs.
func NewScanner(root string, patterns []string, workers int, log *zap.Logger) *Scanner {
	if log == nil {
		log = zap.NewNop()
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Scanner{
		root:     root,
		patterns: patterns,
		workers:  workers,
		log:      log.Named("scan"),
	}
}

// Scan expands patterns and extracts candidates from every matched file.
// Unreadable files are logged and skipped, scan fails only when none of the
// matched files could be read or context is cancelled.
func (s *Scanner) Scan(ctx context.Context) (*Result, error) {
	files, err := Expand(ctx, s.root, s.patterns, s.log)
	if err != nil {
		return nil, fmt.Errorf("unable to expand content patterns: %w", err)
	}
	return s.ScanFiles(ctx, files)
}

// ScanFiles extracts candidates from listed files.
func (s *Scanner) ScanFiles(ctx context.Context, files []string) (*Result, error) {
	stats := make([]FileStat, len(files))
	found := make([][]string, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, name := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			stats[i].Path = name

			data, err := os.ReadFile(name)
			if err != nil {
				stats[i].Err = err
				return nil
			}
			stats[i].Size = len(data)
			if IsBinary(data) {
				stats[i].Binary = true
				return nil
			}
			found[i] = Extract(name, data)
			stats[i].Candidates = len(found[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// errgroup context is only cancelled by our own error, parent may be
	// cancelled after last file was read
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{Files: stats, candidates: make(map[string]struct{})}

	for i, st := range stats {
		switch {
		case st.Err != nil:
			s.log.Warn("Unable to read content file", zap.String("file", st.Path), zap.Error(st.Err))
			continue
		case st.Binary:
			s.log.Debug("Skipping binary content file", zap.String("file", st.Path))
			continue
		}
		for _, c := range found[i] {
			res.candidates[c] = struct{}{}
		}
	}
	if failed := res.Errors(); failed != nil && len(multierr.Errors(failed)) == len(files) {
		return nil, fmt.Errorf("unable to read any content files: %w", failed)
	}

	s.log.Debug("Content scanned", zap.Int("files", len(files)), zap.Int("candidates", len(res.candidates)))
	return res, nil
}

// Errors returns combined error for files which could not be read.
func (r *Result) Errors() error {
	var err error
	for _, st := range r.Files {
		if st.Err != nil {
			err = multierr.Append(err, fmt.Errorf("%s: %w", st.Path, st.Err))
		}
	}
	return err
}

// NewResult builds result from known candidates without scanning anything.
func NewResult(candidates ...string) *Result {
	res := &Result{candidates: make(map[string]struct{}, len(candidates))}
	for _, c := range candidates {
		res.candidates[c] = struct{}{}
	}
	return res
}
