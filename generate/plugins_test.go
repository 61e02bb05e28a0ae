package generate

import (
	"errors"
	"testing"

	gocmp "github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"tailgen/common"
	"tailgen/css"
	"tailgen/theme"
)

type fakePlugin struct {
	name  string
	color string
}

func (p fakePlugin) Name() string {
	return p.name
}

func (p fakePlugin) Register(api *API) {
	api.AddBase(css.Rule{Selectors: []string{"body"}, Declarations: []css.Declaration{css.Decl("color", p.color)}})
	api.AddComponent("btn", func(sel string) []css.Rule {
		return []css.Rule{{Selectors: []string{sel}, Declarations: []css.Declaration{css.Decl("color", p.color)}}}
	})
}

func TestPlugins_LaterWins(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	g := newGenerator(theme.Defaults(), common.DarkModeMedia, "",
		[]Plugin{fakePlugin{"first", "red"}, fakePlugin{"second", "blue"}},
		Options{}, zap.New(core))

	out := g.Generate([]string{"btn", "hover:btn"})

	rules := out.Components.RulesBySelector(".btn")
	if len(rules) != 1 {
		t.Fatalf("btn rules = %d, want 1", len(rules))
	}
	if v, _ := rules[0].Get("color"); v != "blue" {
		t.Errorf("btn color = %q, want blue", v)
	}
	if len(out.Components.RulesBySelector(`.hover\:btn:hover`)) != 1 {
		t.Error("hover variant of component not generated")
	}
	// base rules of both plugins are kept in registration order
	if got := len(out.Base.RulesBySelector("body")); got != 2 {
		t.Errorf("base body rules = %d, want 2", got)
	}

	warnings := logs.FilterMessage("Plugin overrides component").All()
	if len(warnings) != 1 {
		t.Fatalf("override warnings = %d, want 1", len(warnings))
	}
	if got := warnings[0].ContextMap()["previous"]; got != "first" {
		t.Errorf("previous owner = %v, want first", got)
	}
}

func TestRegisterPlugin(t *testing.T) {
	RegisterPlugin("test/fake", func() Plugin { return fakePlugin{name: "test/fake", color: "red"} })
	defer func() {
		registryMu.Lock()
		delete(registry, "test/fake")
		registryMu.Unlock()
	}()

	p, err := LookupPlugin("test/fake")
	if err != nil {
		t.Fatalf("LookupPlugin() error = %v", err)
	}
	if p.Name() != "test/fake" {
		t.Errorf("Name() = %q", p.Name())
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	RegisterPlugin("test/fake", func() Plugin { return fakePlugin{} })
}

func TestLookupPlugin_Unknown(t *testing.T) {
	_, err := LookupPlugin("@tailwindcss/line-clamp")
	if !errors.Is(err, ErrUnknownPlugin) {
		t.Fatalf("LookupPlugin() error = %v, want ErrUnknownPlugin", err)
	}
	want := "unknown plugin: @tailwindcss/line-clamp (available: @tailwindcss/forms, @tailwindcss/typography)"
	if err.Error() != want {
		t.Errorf("LookupPlugin() error = %q, want %q", err, want)
	}
}

func TestParseCandidate(t *testing.T) {
	tests := []struct {
		raw, prefix string
		want        candidate
		ok          bool
	}{
		{raw: "p-4", want: candidate{raw: "p-4", variants: []string{}, base: "p-4"}, ok: true},
		{raw: "md:hover:!-mt-2", want: candidate{raw: "md:hover:!-mt-2", variants: []string{"md", "hover"}, base: "mt-2", negative: true, important: true}, ok: true},
		{raw: "-tw-m-1", prefix: "tw-", want: candidate{raw: "-tw-m-1", variants: []string{}, base: "m-1", negative: true}, ok: true},
		{raw: "m-1", prefix: "tw-"},
		{raw: "md:"},
		{raw: ":p-4"},
		{raw: "!"},
	}
	for _, tt := range tests {
		got, ok := parseCandidate(tt.raw, tt.prefix)
		if ok != tt.ok {
			t.Errorf("parseCandidate(%q) ok = %v, want %v", tt.raw, ok, tt.ok)
			continue
		}
		if !ok {
			continue
		}
		if diff := gocmp.Diff(tt.want, got, gocmp.AllowUnexported(candidate{})); diff != "" {
			t.Errorf("parseCandidate(%q) mismatch (-want +got):\n%s", tt.raw, diff)
		}
	}
}

func TestWithAlpha(t *testing.T) {
	tests := []struct {
		color, alpha, want string
		ok                 bool
	}{
		{"#EF4444", "0.5", "rgb(239 68 68 / 0.5)", true},
		{"#fff", "0.1", "rgb(255 255 255 / 0.1)", true},
		{"currentColor", "0.5", "", false},
		{"#12345", "1", "", false},
		{"#zzzzzz", "1", "", false},
	}
	for _, tt := range tests {
		got, ok := withAlpha(tt.color, tt.alpha)
		if got != tt.want || ok != tt.ok {
			t.Errorf("withAlpha(%q) = %q, %v, want %q, %v", tt.color, got, ok, tt.want, tt.ok)
		}
	}
}

func TestScreensOrderedByWidth(t *testing.T) {
	v := newVariants(theme.Defaults(), common.DarkModeMedia)
	want := map[string]int{"sm": 1, "md": 2, "lg": 3, "xl": 4, "2xl": 5}
	for name, rank := range want {
		if got := v.screens[name].rank; got != rank {
			t.Errorf("screen %s rank = %d, want %d", name, got, rank)
		}
	}
}
