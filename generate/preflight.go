package generate

import (
	"tailgen/css"
	"tailgen/theme"
)

// preflight returns compact reset placed at the top of base layer. Font stacks
// come from theme so extended "sans" family becomes document default.
func preflight(t theme.Theme) []css.Rule {
	sans := "ui-sans-serif, system-ui, sans-serif"
	if v, ok := t.Lookup(theme.FontFamily, "sans"); ok {
		sans = v.String()
	}
	mono := "ui-monospace, monospace"
	if v, ok := t.Lookup(theme.FontFamily, "mono"); ok {
		mono = v.String()
	}
	border := "currentColor"
	if v, ok := t.Lookup(theme.Colors, "gray-200"); ok {
		border = v.String()
	}

	return []css.Rule{
		{Selectors: []string{"*", "::before", "::after"}, Declarations: []css.Declaration{
			css.Decl("box-sizing", "border-box"),
			css.Decl("border-width", "0"),
			css.Decl("border-style", "solid"),
			css.Decl("border-color", border),
		}},
		{Selectors: []string{"html", ":host"}, Declarations: []css.Declaration{
			css.Decl("line-height", "1.5"),
			css.Decl("-webkit-text-size-adjust", "100%"),
			css.Decl("tab-size", "4"),
			css.Decl("font-family", sans),
		}},
		{Selectors: []string{"body"}, Declarations: []css.Declaration{
			css.Decl("margin", "0"),
			css.Decl("line-height", "inherit"),
		}},
		{Selectors: []string{"h1", "h2", "h3", "h4", "h5", "h6"}, Declarations: []css.Declaration{
			css.Decl("font-size", "inherit"),
			css.Decl("font-weight", "inherit"),
		}},
		{Selectors: []string{"a"}, Declarations: []css.Declaration{
			css.Decl("color", "inherit"),
			css.Decl("text-decoration", "inherit"),
		}},
		{Selectors: []string{"code", "kbd", "samp", "pre"}, Declarations: []css.Declaration{
			css.Decl("font-family", mono),
			css.Decl("font-size", "1em"),
		}},
		{Selectors: []string{"blockquote", "dl", "dd", "h1", "h2", "h3", "h4", "h5", "h6", "hr", "figure", "p", "pre"}, Declarations: []css.Declaration{
			css.Decl("margin", "0"),
		}},
		{Selectors: []string{"ol", "ul", "menu"}, Declarations: []css.Declaration{
			css.Decl("list-style", "none"),
			css.Decl("margin", "0"),
			css.Decl("padding", "0"),
		}},
		{Selectors: []string{"img", "svg", "video", "canvas", "audio", "iframe", "embed", "object"}, Declarations: []css.Declaration{
			css.Decl("display", "block"),
			css.Decl("vertical-align", "middle"),
		}},
		{Selectors: []string{"button", "input", "optgroup", "select", "textarea"}, Declarations: []css.Declaration{
			css.Decl("font-family", "inherit"),
			css.Decl("font-size", "100%"),
			css.Decl("color", "inherit"),
			css.Decl("margin", "0"),
			css.Decl("padding", "0"),
		}},
		{Selectors: []string{"[hidden]"}, Declarations: []css.Declaration{
			css.Decl("display", "none"),
		}},
	}
}
