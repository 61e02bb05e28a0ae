package generate_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zaptest"

	"tailgen/content"
	"tailgen/css"
	"tailgen/generate"
	"tailgen/project"
)

const styleConfig = `
content:
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

func resolved(t *testing.T, data string) *project.Resolved {
	t.Helper()
	cfg, err := project.Parse([]byte(data), t.TempDir())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return cfg.Resolve()
}

func generateCSS(t *testing.T, candidates ...string) (*generate.Output, string) {
	t.Helper()
	out, err := generate.Build(resolved(t, styleConfig), candidates, generate.Options{}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return out, out.Apply(nil).String()
}

func declarations(t *testing.T, sheet *css.Stylesheet, selector string) map[string]string {
	t.Helper()
	rules := sheet.RulesBySelector(selector)
	if len(rules) != 1 {
		t.Fatalf("selector %s: %d rules, want 1\n%s", selector, len(rules), sheet)
	}
	m := make(map[string]string)
	for _, d := range rules[0].Declarations {
		v := d.Value
		if d.Important {
			v += " !important"
		}
		m[d.Property] = v
	}
	return m
}

func TestBuild_Utilities(t *testing.T) {
	out, _ := generateCSS(t,
		"text-uma-blue", "bg-uma-green", "border-uma-yellow", "font-sans", "font-bold",
		"p-4", "px-2", "-mt-1", "mx-auto", "w-1/2", "h-screen", "gap-x-3", "rounded", "rounded-lg",
		"border", "border-t-2", "text-lg", "opacity-50", "leading-tight", "flex", "items-center",
		"bg-uma-blue/50", "!hidden", "min-h-screen",
	)

	tests := []struct {
		selector string
		want     map[string]string
	}{
		{`.text-uma-blue`, map[string]string{"color": "#3B82F6"}},
		{`.bg-uma-green`, map[string]string{"background-color": "#10B981"}},
		{`.border-uma-yellow`, map[string]string{"border-color": "#F59E0B"}},
		{`.font-sans`, map[string]string{"font-family": `"Noto Sans KR", system-ui, sans-serif`}},
		{`.font-bold`, map[string]string{"font-weight": "700"}},
		{`.p-4`, map[string]string{"padding": "1rem"}},
		{`.px-2`, map[string]string{"padding-left": "0.5rem", "padding-right": "0.5rem"}},
		{`.-mt-1`, map[string]string{"margin-top": "-0.25rem"}},
		{`.mx-auto`, map[string]string{"margin-left": "auto", "margin-right": "auto"}},
		{`.w-1\/2`, map[string]string{"width": "50%"}},
		{`.h-screen`, map[string]string{"height": "100vh"}},
		{`.gap-x-3`, map[string]string{"column-gap": "0.75rem"}},
		{`.rounded`, map[string]string{"border-radius": "0.25rem"}},
		{`.rounded-lg`, map[string]string{"border-radius": "0.5rem"}},
		{`.border`, map[string]string{"border-width": "1px"}},
		{`.border-t-2`, map[string]string{"border-top-width": "2px"}},
		{`.text-lg`, map[string]string{"font-size": "1.125rem", "line-height": "1.75rem"}},
		{`.opacity-50`, map[string]string{"opacity": "0.5"}},
		{`.leading-tight`, map[string]string{"line-height": "1.25"}},
		{`.flex`, map[string]string{"display": "flex"}},
		{`.items-center`, map[string]string{"align-items": "center"}},
		{`.bg-uma-blue\/50`, map[string]string{"background-color": "rgb(59 130 246 / 0.5)"}},
		{`.\!hidden`, map[string]string{"display": "none !important"}},
		{`.min-h-screen`, map[string]string{"min-height": "100vh"}},
	}
	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, declarations(t, out.Utilities, tt.selector)); diff != "" {
				t.Errorf("declarations mismatch (-want +got):\n%s", diff)
			}
		})
	}
	if len(out.Matched) != len(tests) {
		t.Errorf("Matched = %d candidates, want %d: %v", len(out.Matched), len(tests), out.Matched)
	}
}

func TestBuild_Purge(t *testing.T) {
	out, text := generateCSS(t,
		"text-uma-blue", "uma-red", "text-uma-redish", "bg-uma-purple", "hover:bg-uma-red-500",
		"p-13", "bg-uma-blue/33", "-p-4", "unknown:flex", "::", "text-uma-red/",
	)
	if strings.Contains(text, "uma-red") {
		t.Errorf("output contains uma-red:\n%s", text)
	}
	if diff := cmp.Diff([]string{"text-uma-blue"}, out.Matched); diff != "" {
		t.Errorf("Matched mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_Variants(t *testing.T) {
	out, text := generateCSS(t, "md:p-4", "sm:p-2", "2xl:text-uma-red", "hover:bg-uma-blue", "dark:text-uma-yellow", "md:dark:bg-uma-green", "focus:hover:p-1")

	var order []string
	for _, item := range out.Utilities.Items {
		switch {
		case item.Rule != nil:
			order = append(order, item.Rule.Selector())
		case item.Block != nil:
			order = append(order, item.Block.Header())
		}
	}
	want := []string{
		`.hover\:bg-uma-blue:hover`,
		`.focus\:hover\:p-1:hover:focus`,
		`@media (prefers-color-scheme: dark)`,
		`@media (min-width: 640px)`,
		`@media (min-width: 768px)`,
		`@media (min-width: 768px) and (prefers-color-scheme: dark)`,
		`@media (min-width: 1536px)`,
	}
	if diff := cmp.Diff(want, order); diff != "" {
		t.Errorf("layout mismatch (-want +got):\n%s\n%s", diff, text)
	}
	if got := declarations(t, out.Utilities, `.\32 xl\:text-uma-red`); got["color"] != "#EF4444" {
		t.Errorf("2xl:text-uma-red = %v", got)
	}
}

func TestBuild_DarkClassAndPrefix(t *testing.T) {
	r := resolved(t, styleConfig+"darkMode: class\nprefix: tw-\n")
	out, err := generate.Build(r, []string{"dark:tw-bg-uma-blue", "bg-uma-blue", "-tw-m-2", "tw-prose"}, generate.Options{}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if diff := cmp.Diff([]string{"-tw-m-2", "dark:tw-bg-uma-blue", "tw-prose"}, out.Matched); diff != "" {
		t.Errorf("Matched mismatch (-want +got):\n%s", diff)
	}
	if rules := out.Utilities.RulesBySelector(`.dark .dark\:tw-bg-uma-blue`); len(rules) != 1 {
		t.Errorf("dark class rule not found:\n%s", out.Utilities)
	}
	if rules := out.Components.RulesBySelector(`.tw-prose`); len(rules) != 1 {
		t.Errorf("prose component not found:\n%s", out.Components)
	}
}

func TestBuild_Plugins(t *testing.T) {
	out, _ := generateCSS(t, "prose", "lg:prose-xl", "form-checkbox")

	if got := declarations(t, out.Components, ".prose")["max-width"]; got != "65ch" {
		t.Errorf("prose max-width = %q", got)
	}
	if len(out.Components.RulesBySelector(".prose h1")) != 1 {
		t.Error("prose h1 rule not found")
	}
	if len(out.Components.RulesBySelector(`.lg\:prose-xl`)) != 1 {
		t.Error("lg:prose-xl rule not found")
	}
	if got := declarations(t, out.Components, ".form-checkbox")["border-radius"]; got != "0px" {
		t.Errorf("form-checkbox border-radius = %q", got)
	}
	if len(out.Components.RulesBySelector(".form-input")) != 0 {
		t.Error("unused form-input component generated")
	}
	if len(out.Base.RulesBySelector("[type='checkbox']")) == 0 {
		t.Error("forms base rules not generated")
	}
}

func TestBuild_UnknownPlugin(t *testing.T) {
	r := resolved(t, styleConfig)
	r.Plugins = append(r.Plugins, "@tailwindcss/aspect-ratio")
	if _, err := generate.Build(r, nil, generate.Options{}, nil); !errors.Is(err, generate.ErrUnknownPlugin) {
		t.Errorf("Build() error = %v, want ErrUnknownPlugin", err)
	}
}

func TestBuild_Preflight(t *testing.T) {
	r := resolved(t, styleConfig)
	r.Plugins = nil
	out, err := generate.Build(r, nil, generate.Options{Preflight: true}, nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if got := declarations(t, out.Base, "html")["font-family"]; got != `"Noto Sans KR", system-ui, sans-serif` {
		t.Errorf("html font-family = %q", got)
	}
	if len(out.Utilities.Items) != 0 || len(out.Components.Items) != 0 {
		t.Error("rules generated without candidates")
	}
}

func TestOutput_Apply(t *testing.T) {
	out, _ := generateCSS(t, "p-4", "prose")
	input := css.NewParser(nil).Parse([]byte(`@tailwind base;
.btn { color: red; }
@tailwind utilities;
@tailwind components;
@tailwind utilities;
`))

	sheet := out.Apply(input)
	text := sheet.String()
	if strings.Contains(text, "@tailwind") {
		t.Errorf("directive left in output:\n%s", text)
	}
	btn := strings.Index(text, ".btn {")
	p4 := strings.Index(text, ".p-4 {")
	prose := strings.Index(text, ".prose {")
	if btn < 0 || p4 < 0 || prose < 0 || !(btn < p4 && p4 < prose) {
		t.Errorf("unexpected order btn=%d p-4=%d prose=%d:\n%s", btn, p4, prose, text)
	}
	if strings.Count(text, ".p-4 {") != 1 {
		t.Errorf("utilities emitted more than once:\n%s", text)
	}
	if len(sheet.Warnings) != 1 {
		t.Errorf("Warnings = %v, want one", sheet.Warnings)
	}
}

func TestPluginNames(t *testing.T) {
	if diff := cmp.Diff([]string{"@tailwindcss/forms", "@tailwindcss/typography"}, generate.PluginNames()); diff != "" {
		t.Errorf("PluginNames() mismatch (-want +got):\n%s", diff)
	}
}

// End to end: content globs select only static_src templates, none of which
// mention uma-red. It is used in templates/ outside the globs and must not
// appear in output.
func TestEndToEnd_PurgeUnusedBrandColor(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"theme/static_src/src/index.html":     `<div class="text-uma-blue bg-uma-green hover:bg-uma-yellow font-sans"></div>`,
		"theme/static_src/src/partials/a.html": `<p class="prose md:p-4">{% with tone="bg-uma-green" %}{{ tone }}{% endwith %}</p>`,
		"templates/alert.html":                `<div class="bg-uma-red"></div>`,
	}
	for name, data := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(data), 0644); err != nil {
			t.Fatal(err)
		}
	}
	root := filepath.Join(dir, "theme")
	cfg, err := project.Parse([]byte(styleConfig), root)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	log := zaptest.NewLogger(t)
	res, err := content.NewScanner(cfg.Dir, cfg.Content, 2, log).Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	out, err := generate.Build(cfg.Resolve(), res.Candidates(), generate.Options{Preflight: true}, log)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	text := out.Apply(nil).String()

	if strings.Contains(text, "uma-red") || strings.Contains(strings.ToLower(text), "#ef4444") {
		t.Errorf("uma-red derived rule found in output:\n%s", text)
	}
	for _, sel := range []string{".text-uma-blue {", ".bg-uma-green {", `.hover\:bg-uma-yellow:hover {`, ".font-sans {", ".prose {", `.md\:p-4 {`} {
		if !strings.Contains(text, sel) {
			t.Errorf("selector %q not found in output", sel)
		}
	}
}
