// Package content finds source files declared by style configuration and
// extracts class name candidates from them.
package content

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
)

// Expand returns sorted list of unique files matching patterns. Patterns are
// relative to root and use forward slashes, leading "!" excludes matches of
// the rest of the pattern. Pattern with non-existent base directory yields
// nothing and is reported to log.
func Expand(ctx context.Context, root string, patterns []string, log *zap.Logger) ([]string, error) {
	if log == nil {
		log = zap.NewNop()
	}

	var include, exclude []string
	for _, p := range patterns {
		p = filepath.ToSlash(p)
		if rest, ok := strings.CutPrefix(p, "!"); ok {
			exclude = append(exclude, path.Clean(rest))
			continue
		}
		include = append(include, p)
	}

	files := make(map[string]struct{})
	for _, p := range include {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		base, pattern := doublestar.SplitPattern(p)
		dir := filepath.Join(root, filepath.FromSlash(base))
		if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
			log.Warn("Content pattern base directory is not accessible", zap.String("pattern", p), zap.String("dir", dir))
			continue
		}

		matches, err := doublestar.Glob(os.DirFS(dir), pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, err
		}
		log.Debug("Content pattern expanded", zap.String("pattern", p), zap.Int("files", len(matches)))
		if len(matches) == 0 {
			log.Warn("Content pattern does not match any files", zap.String("pattern", p))
		}

		for _, m := range matches {
			file := filepath.Join(dir, filepath.FromSlash(m))
			if excluded(root, file, exclude) {
				continue
			}
			files[file] = struct{}{}
		}
	}

	list := make([]string, 0, len(files))
	for f := range files {
		list = append(list, f)
	}
	sort.Strings(list)
	return list, nil
}

func excluded(root, file string, exclude []string) bool {
	if len(exclude) == 0 {
		return false
	}
	rel, err := filepath.Rel(root, file)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, p := range exclude {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

// BaseDirs returns existing static base directories of include patterns,
// sorted and unique. Every directory below them may contain matching files.
func BaseDirs(root string, patterns []string) []string {
	dirs := make(map[string]struct{})
	for _, p := range patterns {
		p = filepath.ToSlash(p)
		if strings.HasPrefix(p, "!") {
			continue
		}
		base, _ := doublestar.SplitPattern(p)
		dir := filepath.Join(root, filepath.FromSlash(base))
		if fi, err := os.Stat(dir); err == nil && fi.IsDir() {
			dirs[dir] = struct{}{}
		}
	}
	list := make([]string, 0, len(dirs))
	for d := range dirs {
		list = append(list, d)
	}
	sort.Strings(list)
	return list
}
