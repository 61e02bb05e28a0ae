package css_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"tailgen/css"
)

// allRules collects top-level rules only, blocks are not flattened.
func allRules(sheet *css.Stylesheet) []css.Rule {
	var rules []css.Rule
	for _, item := range sheet.Items {
		if item.Rule != nil {
			rules = append(rules, *item.Rule)
		}
	}
	return rules
}

const inputCSS = `@import url("fonts.css");
@tailwind base;
@tailwind components;

/* custom */
.btn-primary ,  a.link:hover {
	color: #3B82F6;
	padding : 0.5rem 1rem !important;
	--tw-ring: 0 0 0 1px;
}

@media (min-width: 640px) {
	.btn-primary { padding: 1rem; }
}

@keyframes spin { from { transform: rotate(0deg); } to { transform: rotate(360deg); } }

@tailwind utilities;
`

func TestParser_Parse(t *testing.T) {
	p := css.NewParser(zap.NewNop())
	sheet := p.Parse([]byte(inputCSS), "input.css")

	if diff := cmp.Diff([]string{"base", "components", "utilities"}, sheet.Directives()); diff != "" {
		t.Errorf("Directives() mismatch (-want +got):\n%s", diff)
	}

	rules := allRules(sheet)
	if len(rules) != 1 {
		t.Fatalf("top-level rules = %d, want 1", len(rules))
	}
	want := css.Rule{
		Selectors: []string{".btn-primary", "a.link:hover"},
		Declarations: []css.Declaration{
			{Property: "color", Value: "#3B82F6"},
			{Property: "padding", Value: "0.5rem 1rem", Important: true},
			{Property: "--tw-ring", Value: "0 0 0 1px"},
		},
	}
	if diff := cmp.Diff(want, rules[0]); diff != "" {
		t.Errorf("rule mismatch (-want +got):\n%s", diff)
	}

	var blocks, atRules int
	for _, item := range sheet.Items {
		switch {
		case item.Block != nil:
			blocks++
			if got := item.Block.Header(); got != "@media (min-width: 640px)" {
				t.Errorf("block header = %q", got)
			}
		case item.AtRule != nil:
			atRules++
			if item.AtRule.Name != "@import" {
				t.Errorf("at-rule = %q, want @import", item.AtRule.Name)
			}
		}
	}
	if blocks != 1 || atRules != 1 {
		t.Errorf("blocks = %d, at-rules = %d, want 1 and 1", blocks, atRules)
	}

	if got := len(sheet.RulesBySelector(".btn-primary")); got != 2 {
		t.Errorf("RulesBySelector(.btn-primary) = %d rules, want 2", got)
	}
	if len(sheet.Warnings) != 1 || !strings.Contains(sheet.Warnings[0], "@keyframes") {
		t.Errorf("Warnings = %v, want single @keyframes warning", sheet.Warnings)
	}
}

func TestParser_UnknownLayer(t *testing.T) {
	sheet := css.NewParser(nil).Parse([]byte(`@tailwind screens; .a { color: red }`))
	if len(sheet.Directives()) != 0 {
		t.Errorf("Directives() = %v, want none", sheet.Directives())
	}
	if len(sheet.Warnings) != 1 || !strings.Contains(sheet.Warnings[0], "screens") {
		t.Errorf("Warnings = %v", sheet.Warnings)
	}
	if v, ok := allRules(sheet)[0].Get("color"); !ok || v != "red" {
		t.Errorf("Get(color) = %q, %v", v, ok)
	}
}

func TestParser_FontFace(t *testing.T) {
	sheet := css.NewParser(nil).Parse([]byte(`@font-face { font-family: "Noto Sans KR"; src: url(a.woff2) format("woff2"); }`))
	rules := sheet.RulesBySelector("@font-face")
	if len(rules) != 1 {
		t.Fatalf("@font-face rules = %d, want 1", len(rules))
	}
	if v, _ := rules[0].Get("font-family"); v != `"Noto Sans KR"` {
		t.Errorf("font-family = %q", v)
	}
}

func TestStylesheet_Write(t *testing.T) {
	sheet := &css.Stylesheet{}
	sheet.AddRule(css.Rule{Selectors: []string{".a", ".b"}, Declarations: []css.Declaration{css.Decl("color", "red"), {Property: "margin", Value: "0", Important: true}}})
	sheet.AddBlock(css.Block{Name: "@media", Prelude: "(min-width: 640px)", Rules: []css.Rule{{Selectors: []string{".c"}, Declarations: []css.Declaration{css.Decl("display", "none")}}}})

	pretty := `.a, .b {
  color: red;
  margin: 0 !important;
}

@media (min-width: 640px) {
  .c {
    display: none;
  }
}
`
	if diff := cmp.Diff(pretty, sheet.String()); diff != "" {
		t.Errorf("String() mismatch (-want +got):\n%s", diff)
	}

	var buf bytes.Buffer
	n, err := sheet.Write(&buf, true)
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	minified := `.a,.b{color:red;margin:0!important}@media (min-width: 640px){.c{display:none}}`
	if diff := cmp.Diff(minified, buf.String()); diff != "" {
		t.Errorf("minified mismatch (-want +got):\n%s", diff)
	}
	if n != int64(buf.Len()) {
		t.Errorf("Write() = %d bytes, buffer has %d", n, buf.Len())
	}
}

func TestStylesheet_RoundTrip(t *testing.T) {
	p := css.NewParser(nil)
	first := p.Parse([]byte(inputCSS))
	second := p.Parse([]byte(first.String()))
	if diff := cmp.Diff(first.String(), second.String()); diff != "" {
		t.Errorf("reparse mismatch (-first +second):\n%s", diff)
	}
}

func TestEscapeIdent(t *testing.T) {
	tests := map[string]string{
		"text-uma-blue":    "text-uma-blue",
		"hover:bg-red-500": `hover\:bg-red-500`,
		"w-1/2":            `w-1\/2`,
		"p-0.5":            `p-0\.5`,
		"bg-uma-red/50":    `bg-uma-red\/50`,
		"2xl:p-4":          `\32 xl\:p-4`,
		"-":                `\-`,
	}
	for in, want := range tests {
		if got := css.EscapeIdent(in); got != want {
			t.Errorf("EscapeIdent(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestQuote(t *testing.T) {
	if got := css.Quote(`Noto "Sans"`); got != `"Noto \"Sans\""` {
		t.Errorf("Quote() = %s", got)
	}
}
