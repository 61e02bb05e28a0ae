package generate

import (
	"tailgen/css"
	"tailgen/theme"
)

const formsName = "@tailwindcss/forms"

var textInputs = []string{
	`[type='text']`, `input:where(:not([type]))`, `[type='email']`, `[type='url']`,
	`[type='password']`, `[type='number']`, `[type='date']`, `[type='datetime-local']`,
	`[type='month']`, `[type='search']`, `[type='tel']`, `[type='time']`, `[type='week']`,
	`[multiple]`, `textarea`, `select`,
}

// forms resets form elements so they are easy to style with utilities.
type forms struct{}

func (forms) Name() string {
	return formsName
}

func (f forms) Register(api *API) {
	var (
		border  = api.Token(theme.Colors, "gray-500", "#6b7280")
		ring    = api.Token(theme.Colors, "blue-600", "#2563eb")
		padX    = api.Token(theme.Spacing, "3", "0.75rem")
		padY    = api.Token(theme.Spacing, "2", "0.5rem")
		size    = "1rem"
		leading = "1.5rem"
	)
	if v, ok := api.Theme().Lookup(theme.FontSize, "base"); ok {
		size = v.First()
		if v.IsList() && len(v.List) > 1 {
			leading = v.List[1]
		}
	}

	inputDecls := func() []css.Declaration {
		return []css.Declaration{
			css.Decl("appearance", "none"),
			css.Decl("background-color", "#fff"),
			css.Decl("border-color", border),
			css.Decl("border-width", "1px"),
			css.Decl("border-radius", "0px"),
			css.Decl("padding-top", padY),
			css.Decl("padding-right", padX),
			css.Decl("padding-bottom", padY),
			css.Decl("padding-left", padX),
			css.Decl("font-size", size),
			css.Decl("line-height", leading),
		}
	}
	focusDecls := []css.Declaration{
		css.Decl("outline", "2px solid transparent"),
		css.Decl("outline-offset", "2px"),
		css.Decl("border-color", ring),
		css.Decl("box-shadow", "0 0 0 1px "+ring),
	}
	checkDecls := func() []css.Declaration {
		return []css.Declaration{
			css.Decl("appearance", "none"),
			css.Decl("padding", "0"),
			css.Decl("display", "inline-block"),
			css.Decl("vertical-align", "middle"),
			css.Decl("user-select", "none"),
			css.Decl("flex-shrink", "0"),
			css.Decl("height", "1rem"),
			css.Decl("width", "1rem"),
			css.Decl("color", ring),
			css.Decl("background-color", "#fff"),
			css.Decl("border-color", border),
			css.Decl("border-width", "1px"),
		}
	}

	focused := make([]string, len(textInputs))
	for i, s := range textInputs {
		focused[i] = s + ":focus"
	}
	api.AddBase(
		css.Rule{Selectors: textInputs, Declarations: inputDecls()},
		css.Rule{Selectors: focused, Declarations: focusDecls},
		css.Rule{Selectors: []string{"input::placeholder", "textarea::placeholder"}, Declarations: []css.Declaration{
			css.Decl("color", border),
			css.Decl("opacity", "1"),
		}},
		css.Rule{Selectors: []string{"select"}, Declarations: []css.Declaration{
			css.Decl("padding-right", "2.5rem"),
			css.Decl("print-color-adjust", "exact"),
		}},
		css.Rule{Selectors: []string{`[type='checkbox']`, `[type='radio']`}, Declarations: checkDecls()},
		css.Rule{Selectors: []string{`[type='checkbox']`}, Declarations: []css.Declaration{css.Decl("border-radius", "0px")}},
		css.Rule{Selectors: []string{`[type='radio']`}, Declarations: []css.Declaration{css.Decl("border-radius", "100%")}},
		css.Rule{Selectors: []string{`[type='checkbox']:checked`, `[type='radio']:checked`}, Declarations: []css.Declaration{
			css.Decl("border-color", "transparent"),
			css.Decl("background-color", "currentColor"),
		}},
	)

	for _, class := range []string{"form-input", "form-textarea", "form-select", "form-multiselect"} {
		api.AddComponent(class, func(sel string) []css.Rule {
			return []css.Rule{
				{Selectors: []string{sel}, Declarations: inputDecls()},
				{Selectors: []string{sel + ":focus"}, Declarations: focusDecls},
			}
		})
	}
	for _, class := range []string{"form-checkbox", "form-radio"} {
		radius := "0px"
		if class == "form-radio" {
			radius = "100%"
		}
		api.AddComponent(class, func(sel string) []css.Rule {
			return []css.Rule{
				{Selectors: []string{sel}, Declarations: append(checkDecls(), css.Decl("border-radius", radius))},
				{Selectors: []string{sel + ":checked"}, Declarations: []css.Declaration{
					css.Decl("border-color", "transparent"),
					css.Decl("background-color", "currentColor"),
				}},
			}
		})
	}
}
