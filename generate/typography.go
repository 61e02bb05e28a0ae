package generate

import (
	"tailgen/css"
	"tailgen/theme"
)

const typographyName = "@tailwindcss/typography"

// prose sizes: font size, line height and vertical rhythm for paragraphs
var proseSizes = []struct {
	name, size, leading, margin string
}{
	{"sm", "0.875rem", "1.7142857", "1.1428571em"},
	{"base", "1rem", "1.75", "1.25em"},
	{"lg", "1.125rem", "1.7777778", "1.3333333em"},
	{"xl", "1.25rem", "1.8", "1.2em"},
	{"2xl", "1.5rem", "1.6666667", "1.3333333em"},
}

// typography provides "prose" component for rendering of untrusted markup.
type typography struct{}

func (typography) Name() string {
	return typographyName
}

func (typography) Register(api *API) {
	var (
		body    = api.Token(theme.Colors, "gray-700", "#374151")
		heading = api.Token(theme.Colors, "gray-900", "#111827")
		quote   = api.Token(theme.Colors, "gray-200", "#e5e7eb")
		code    = api.Token(theme.Colors, "gray-100", "#f3f4f6")
	)

	api.AddComponent("prose", func(sel string) []css.Rule {
		child := func(elements ...string) []string {
			out := make([]string, len(elements))
			for i, e := range elements {
				out[i] = sel + " " + e
			}
			return out
		}
		return []css.Rule{
			{Selectors: []string{sel}, Declarations: []css.Declaration{
				css.Decl("color", body),
				css.Decl("max-width", "65ch"),
				css.Decl("font-size", "1rem"),
				css.Decl("line-height", "1.75"),
			}},
			{Selectors: child("p"), Declarations: []css.Declaration{
				css.Decl("margin-top", "1.25em"),
				css.Decl("margin-bottom", "1.25em"),
			}},
			{Selectors: child("a"), Declarations: []css.Declaration{
				css.Decl("color", heading),
				css.Decl("text-decoration", "underline"),
				css.Decl("font-weight", "500"),
			}},
			{Selectors: child("strong", "b"), Declarations: []css.Declaration{
				css.Decl("color", heading),
				css.Decl("font-weight", "600"),
			}},
			{Selectors: child("h1"), Declarations: []css.Declaration{
				css.Decl("color", heading),
				css.Decl("font-weight", "800"),
				css.Decl("font-size", "2.25em"),
				css.Decl("margin-top", "0"),
				css.Decl("margin-bottom", "0.8888889em"),
				css.Decl("line-height", "1.1111111"),
			}},
			{Selectors: child("h2"), Declarations: []css.Declaration{
				css.Decl("color", heading),
				css.Decl("font-weight", "700"),
				css.Decl("font-size", "1.5em"),
				css.Decl("margin-top", "2em"),
				css.Decl("margin-bottom", "1em"),
				css.Decl("line-height", "1.3333333"),
			}},
			{Selectors: child("h3"), Declarations: []css.Declaration{
				css.Decl("color", heading),
				css.Decl("font-weight", "600"),
				css.Decl("font-size", "1.25em"),
				css.Decl("margin-top", "1.6em"),
				css.Decl("margin-bottom", "0.6em"),
				css.Decl("line-height", "1.6"),
			}},
			{Selectors: child("ul", "ol"), Declarations: []css.Declaration{
				css.Decl("margin-top", "1.25em"),
				css.Decl("margin-bottom", "1.25em"),
				css.Decl("padding-left", "1.625em"),
			}},
			{Selectors: child("ul"), Declarations: []css.Declaration{css.Decl("list-style-type", "disc")}},
			{Selectors: child("ol"), Declarations: []css.Declaration{css.Decl("list-style-type", "decimal")}},
			{Selectors: child("blockquote"), Declarations: []css.Declaration{
				css.Decl("font-style", "italic"),
				css.Decl("border-left-width", "0.25rem"),
				css.Decl("border-left-color", quote),
				css.Decl("padding-left", "1em"),
			}},
			{Selectors: child("code"), Declarations: []css.Declaration{
				css.Decl("color", heading),
				css.Decl("background-color", code),
				css.Decl("font-size", "0.875em"),
				css.Decl("font-weight", "600"),
			}},
		}
	})

	for _, s := range proseSizes {
		api.AddComponent("prose-"+s.name, func(sel string) []css.Rule {
			return []css.Rule{
				{Selectors: []string{sel}, Declarations: []css.Declaration{
					css.Decl("font-size", s.size),
					css.Decl("line-height", s.leading),
				}},
				{Selectors: []string{sel + " p"}, Declarations: []css.Declaration{
					css.Decl("margin-top", s.margin),
					css.Decl("margin-bottom", s.margin),
				}},
			}
		})
	}
}
