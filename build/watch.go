package build

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"tailgen/content"
	"tailgen/project"
	"tailgen/state"
)

const defaultWatchDelay = 500 * time.Millisecond

// Watcher rebuilds stylesheet whenever style configuration, input stylesheet
// or any file under content directories changes.
type Watcher struct {
	builder *Builder
	delay   time.Duration
	log     *zap.Logger
	watched map[string]struct{}

	// OnBuild, when set, is called after every build attempt.
	OnBuild func(*Stats, error)
}

// NewWatcher creates watcher for style configuration file.
func NewWatcher(env *state.LocalEnv, stylePath string) *Watcher {
	b := NewBuilder(env, stylePath)
	delay := env.Cfg.Build.WatchDelay
	if delay <= 0 {
		delay = defaultWatchDelay
	}
	return &Watcher{
		builder: b,
		delay:   delay,
		log:     b.log.Named("watch"),
		watched: make(map[string]struct{}),
	}
}

// Watch builds stylesheet and keeps rebuilding it until context is cancelled.
func Watch(ctx context.Context, env *state.LocalEnv, stylePath string) error {
	return NewWatcher(env, stylePath).Run(ctx)
}

// Run performs initial build and then watches for changes. Build errors are
// logged and do not stop watching.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("unable to create watcher: %w", err)
	}
	defer watcher.Close()

	rebuild := func() {
		stats, err := w.builder.Run(ctx)
		if err != nil {
			w.log.Error("Build failed", zap.Error(err))
		}
		if w.OnBuild != nil {
			w.OnBuild(stats, err)
		}
		w.sync(watcher)
	}
	rebuild()
	w.log.Info("Watching for changes", zap.Int("directories", len(w.watched)), zap.Duration("delay", w.delay))

	// timer callback only signals, builds always happen on this goroutine
	trigger := make(chan struct{}, 1)
	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("Watcher stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if w.ignored(event.Name) {
				continue
			}
			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				// fsnotify drops watches of removed directories
				delete(w.watched, event.Name)
			}
			w.log.Debug("File changed", zap.String("file", event.Name), zap.String("op", event.Op.String()))

			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(w.delay, func() {
				select {
				case trigger <- struct{}{}:
				default:
				}
			})

		case <-trigger:
			rebuild()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Error("Watcher error", zap.Error(err))
		}
	}
}

// ignored filters out our own output and pending files renameio creates next
// to it.
func (w *Watcher) ignored(name string) bool {
	out := w.builder.outputPath()
	if out == "" || out == "-" {
		return false
	}
	out, _ = filepath.Abs(out)
	if name, _ = filepath.Abs(name); name == out {
		return true
	}
	return filepath.Dir(name) == filepath.Dir(out) && strings.HasPrefix(filepath.Base(name), "."+filepath.Base(out))
}

// sync adds directories which appeared since last build. fsnotify is not
// recursive so every directory under content base directories is watched.
func (w *Watcher) sync(watcher *fsnotify.Watcher) {
	dirs := []string{filepath.Dir(w.builder.stylePath)}
	if in := w.builder.env.InputPath; in != "" {
		dirs = append(dirs, filepath.Dir(in))
	}
	if cfg, err := project.Load(w.builder.stylePath); err == nil {
		patterns, _ := cfg.Patterns()
		for _, base := range content.BaseDirs(cfg.Dir, patterns) {
			_ = filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return nil
				}
				if d.IsDir() {
					dirs = append(dirs, path)
				}
				return nil
			})
		}
	}

	for _, dir := range dirs {
		if abs, err := filepath.Abs(dir); err == nil {
			dir = abs
		}
		if _, ok := w.watched[dir]; ok {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			w.log.Warn("Unable to watch directory", zap.String("dir", dir), zap.Error(err))
			continue
		}
		w.watched[dir] = struct{}{}
	}
}
