package build

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"tailgen/config"
	"tailgen/generate"
	"tailgen/state"
)

const styleConfig = `content:
  - './static_src/src/**/*.html'
  - './static_src/src/**/*.html'
theme:
  extend:
    fontFamily:
      sans: ['Noto Sans KR', 'system-ui', 'sans-serif']
    colors:
      uma-blue: '#3B82F6'
      uma-green: '#10B981'
      uma-yellow: '#F59E0B'
      uma-red: '#EF4444'
plugins:
  - "require('@tailwindcss/forms')"
  - '@tailwindcss/typography'
`

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
}

// setup creates Django-like theme application and returns path to style
// configuration.
func setup(t *testing.T) (dir, stylePath string) {
	t.Helper()
	dir = t.TempDir()
	stylePath = filepath.Join(dir, "theme", "tailwind.config.yaml")
	writeFile(t, stylePath, styleConfig)
	writeFile(t, filepath.Join(dir, "theme/static_src/src/index.html"), `<main class="prose md:p-4 text-uma-blue">`)
	writeFile(t, filepath.Join(dir, "templates/alert.html"), `<div class="bg-uma-red">`)
	return dir, stylePath
}

func newEnv(t *testing.T) *state.LocalEnv {
	t.Helper()
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	env := state.EnvFromContext(state.ContextWithEnv(context.Background()))
	env.Cfg = cfg
	env.Log = zaptest.NewLogger(t)
	return env
}

func TestRun(t *testing.T) {
	dir, stylePath := setup(t)
	env := newEnv(t)
	env.InputPath = filepath.Join(dir, "theme/static_src/src/styles.css")
	env.OutputPath = filepath.Join(dir, "theme/static/css/dist/styles.css")
	writeFile(t, env.InputPath, "@tailwind base;\n@tailwind components;\n.btn { color: #10B981; }\n@tailwind utilities;\n")

	stats, err := Run(context.Background(), env, stylePath)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if stats.Files != 1 || stats.Matched != 3 {
		t.Errorf("stats = %+v, want 1 file and 3 classes", stats)
	}

	data, err := os.ReadFile(env.OutputPath)
	if err != nil {
		t.Fatal(err)
	}
	if int64(len(data)) != stats.Bytes {
		t.Errorf("Bytes = %d, file has %d", stats.Bytes, len(data))
	}
	text := string(data)
	for _, want := range []string{`"Noto Sans KR"`, ".prose {", `.md\:p-4 {`, ".text-uma-blue {", ".btn {", "[type='checkbox']"} {
		if !strings.Contains(text, want) {
			t.Errorf("output does not contain %q", want)
		}
	}
	if strings.Contains(text, "uma-red") || strings.Contains(text, "@tailwind") {
		t.Errorf("unexpected content in output:\n%s", text)
	}

	entries, err := os.ReadDir(filepath.Dir(env.OutputPath))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("output directory has %d entries, pending file left behind?", len(entries))
	}
}

func TestRun_Idempotent(t *testing.T) {
	dir, stylePath := setup(t)
	env := newEnv(t)
	env.OutputPath = filepath.Join(dir, "out.css")

	var outputs [2]string
	for i := range outputs {
		if _, err := Run(context.Background(), env, stylePath); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		data, err := os.ReadFile(env.OutputPath)
		if err != nil {
			t.Fatal(err)
		}
		outputs[i] = string(data)
	}
	if outputs[0] != outputs[1] {
		t.Error("repeated builds produced different output")
	}
}

func TestBuilder_StdoutMinified(t *testing.T) {
	_, stylePath := setup(t)
	env := newEnv(t)
	env.Minify = true
	env.Cfg.Build.Preflight = false

	var buf bytes.Buffer
	b := NewBuilder(env, stylePath)
	b.stdout = &buf
	stats, err := b.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if stats.Output != "" || stats.Bytes != int64(buf.Len()) {
		t.Errorf("stats = %+v, buffer %d bytes", stats, buf.Len())
	}
	if strings.Contains(buf.String(), "\n") {
		t.Error("minified output contains newlines")
	}
	if !strings.Contains(buf.String(), ".text-uma-blue{color:#3B82F6}") {
		t.Errorf("minified output:\n%s", buf.String())
	}
}

func TestRun_Errors(t *testing.T) {
	dir, stylePath := setup(t)

	t.Run("missing style config", func(t *testing.T) {
		if _, err := Run(context.Background(), newEnv(t), filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("Run() error = %v, want not exist", err)
		}
	})
	t.Run("unknown plugin", func(t *testing.T) {
		bad := filepath.Join(dir, "theme", "bad.yaml")
		writeFile(t, bad, "content: ['./static_src/src/**/*.html']\nplugins: ['@tailwindcss/aspect-ratio']\n")
		if _, err := Run(context.Background(), newEnv(t), bad); !errors.Is(err, generate.ErrUnknownPlugin) {
			t.Errorf("Run() error = %v, want ErrUnknownPlugin", err)
		}
	})
	t.Run("missing input", func(t *testing.T) {
		env := newEnv(t)
		env.InputPath = filepath.Join(dir, "missing.css")
		if _, err := Run(context.Background(), env, stylePath); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("Run() error = %v, want not exist", err)
		}
	})
	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := Run(ctx, newEnv(t), stylePath); !errors.Is(err, context.Canceled) {
			t.Errorf("Run() error = %v, want context.Canceled", err)
		}
	})
}

func TestRun_Report(t *testing.T) {
	dir, stylePath := setup(t)
	env := newEnv(t)
	env.OutputPath = filepath.Join(dir, "out.css")

	rpt, err := (&config.ReporterConfig{Destination: filepath.Join(dir, "report.zip")}).Prepare()
	if err != nil {
		t.Fatal(err)
	}
	env.Rpt = rpt
	if _, err := Run(context.Background(), env, stylePath); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if err := rpt.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	arc, err := zip.OpenReader(filepath.Join(dir, "report.zip"))
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	defer arc.Close()
	names := make(map[string]bool)
	for _, f := range arc.File {
		names[f.Name] = true
	}
	for _, want := range []string{"MANIFEST", "style-config.yaml", "resolved.yaml", "scan.txt"} {
		if !names[want] {
			t.Errorf("report has no %q entry", want)
		}
	}
}

func TestWatch_Rebuilds(t *testing.T) {
	dir, stylePath := setup(t)
	env := newEnv(t)
	env.Cfg.Build.WatchDelay = 50 * time.Millisecond
	env.OutputPath = filepath.Join(dir, "theme/static_src/src/out.css")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	builds := make(chan error, 16)
	w := NewWatcher(env, stylePath)
	w.OnBuild = func(_ *Stats, err error) { builds <- err }

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	wait := func() {
		t.Helper()
		select {
		case err := <-builds:
			if err != nil {
				t.Fatalf("build error = %v", err)
			}
		case <-time.After(10 * time.Second):
			t.Fatal("timeout waiting for build")
		}
	}
	wait()

	writeFile(t, filepath.Join(dir, "theme/static_src/src/nested/new.html"), `<p class="text-uma-red">`)
	// nested directory is created by the write above, touch file again once
	// it is surely watched
	time.Sleep(200 * time.Millisecond)
	writeFile(t, filepath.Join(dir, "theme/static_src/src/index.html"), `<main class="bg-uma-yellow">`)

	deadline := time.After(10 * time.Second)
	for {
		data, _ := os.ReadFile(env.OutputPath)
		if strings.Contains(string(data), ".text-uma-red {") && strings.Contains(string(data), ".bg-uma-yellow {") {
			break
		}
		select {
		case err := <-builds:
			if err != nil {
				t.Fatalf("build error = %v", err)
			}
		case <-deadline:
			t.Fatalf("output was not rebuilt:\n%s", data)
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Error("watcher did not stop")
	}
}

func TestWatcher_Ignored(t *testing.T) {
	env := newEnv(t)
	env.OutputPath = "/tmp/site/out.css"
	w := NewWatcher(env, "/tmp/site/tailwind.config.yaml")

	tests := map[string]bool{
		"/tmp/site/out.css":           true,
		"/tmp/site/.out.css123456789": true,
		"/tmp/site/index.html":        false,
		"/tmp/other/out.css":          false,
	}
	for name, want := range tests {
		if got := w.ignored(name); got != want {
			t.Errorf("ignored(%q) = %v, want %v", name, got, want)
		}
	}
}
