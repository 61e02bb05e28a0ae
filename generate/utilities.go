package generate

import (
	"fmt"
	"strconv"
	"strings"

	"tailgen/css"
	"tailgen/theme"
)

// utility is a single entry of utility catalogue. Static utilities have
// fixed declarations, functional utilities take their value from theme
// category (or extra values) by key following the stem: "bg-uma-blue" is
// stem "bg" and key "uma-blue". Stem alone selects DEFAULT key.
type utility struct {
	stem     string
	category string
	extra    theme.Category
	color    bool // accepts "/<opacity>" modifier
	negative bool // accepts leading "-"
	static   []css.Declaration
	decls    func(v theme.Value) []css.Declaration
}

// match is utility resolved for a candidate.
type match struct {
	order int
	decls []css.Declaration
}

// props returns declaration builder setting all properties to token value.
func props(properties ...string) func(v theme.Value) []css.Declaration {
	return func(v theme.Value) []css.Declaration {
		decls := make([]css.Declaration, len(properties))
		for i, p := range properties {
			decls[i] = css.Decl(p, v.String())
		}
		return decls
	}
}

func fontSize(v theme.Value) []css.Declaration {
	if !v.IsList() {
		return []css.Declaration{css.Decl("font-size", v.Scalar)}
	}
	decls := []css.Declaration{css.Decl("font-size", v.First())}
	if len(v.List) > 1 {
		decls = append(decls, css.Decl("line-height", v.List[1]))
	}
	return decls
}

func static(decls ...string) []css.Declaration {
	out := make([]css.Declaration, 0, len(decls)/2)
	for i := 0; i+1 < len(decls); i += 2 {
		out = append(out, css.Decl(decls[i], decls[i+1]))
	}
	return out
}

var (
	autoValue = theme.Category{"auto": theme.S("auto")}
	sizeExtra = theme.Category{
		"auto":   theme.S("auto"),
		"full":   theme.S("100%"),
		"min":    theme.S("min-content"),
		"max":    theme.S("max-content"),
		"fit":    theme.S("fit-content"),
		"1/2":    theme.S("50%"),
		"1/3":    theme.S("33.333333%"),
		"2/3":    theme.S("66.666667%"),
		"1/4":    theme.S("25%"),
		"2/4":    theme.S("50%"),
		"3/4":    theme.S("75%"),
		"1/5":    theme.S("20%"),
		"1/6":    theme.S("16.666667%"),
		"5/6":    theme.S("83.333333%"),
		"screen": theme.S("100vw"),
	}
	heightExtra = theme.Category{
		"auto":   theme.S("auto"),
		"full":   theme.S("100%"),
		"min":    theme.S("min-content"),
		"max":    theme.S("max-content"),
		"fit":    theme.S("fit-content"),
		"1/2":    theme.S("50%"),
		"screen": theme.S("100vh"),
	}
	minHeightExtra = theme.Category{
		"0":      theme.S("0px"),
		"full":   theme.S("100%"),
		"screen": theme.S("100vh"),
	}
)

// catalogue lists utilities in output order.
var catalogue = buildCatalogue()

func buildCatalogue() []utility {
	return []utility{
		{stem: "block", static: static("display", "block")},
		{stem: "inline-block", static: static("display", "inline-block")},
		{stem: "inline", static: static("display", "inline")},
		{stem: "flex", static: static("display", "flex")},
		{stem: "inline-flex", static: static("display", "inline-flex")},
		{stem: "grid", static: static("display", "grid")},
		{stem: "inline-grid", static: static("display", "inline-grid")},
		{stem: "hidden", static: static("display", "none")},
		{stem: "static", static: static("position", "static")},
		{stem: "fixed", static: static("position", "fixed")},
		{stem: "absolute", static: static("position", "absolute")},
		{stem: "relative", static: static("position", "relative")},
		{stem: "sticky", static: static("position", "sticky")},
		{stem: "overflow-hidden", static: static("overflow", "hidden")},
		{stem: "overflow-auto", static: static("overflow", "auto")},
		{stem: "flex-row", static: static("flex-direction", "row")},
		{stem: "flex-col", static: static("flex-direction", "column")},
		{stem: "flex-wrap", static: static("flex-wrap", "wrap")},
		{stem: "flex-1", static: static("flex", "1 1 0%")},
		{stem: "flex-auto", static: static("flex", "1 1 auto")},
		{stem: "flex-none", static: static("flex", "none")},
		{stem: "grow", static: static("flex-grow", "1")},
		{stem: "shrink-0", static: static("flex-shrink", "0")},
		{stem: "items-start", static: static("align-items", "flex-start")},
		{stem: "items-end", static: static("align-items", "flex-end")},
		{stem: "items-center", static: static("align-items", "center")},
		{stem: "items-baseline", static: static("align-items", "baseline")},
		{stem: "items-stretch", static: static("align-items", "stretch")},
		{stem: "justify-start", static: static("justify-content", "flex-start")},
		{stem: "justify-end", static: static("justify-content", "flex-end")},
		{stem: "justify-center", static: static("justify-content", "center")},
		{stem: "justify-between", static: static("justify-content", "space-between")},
		{stem: "justify-around", static: static("justify-content", "space-around")},
		{stem: "justify-evenly", static: static("justify-content", "space-evenly")},

		{stem: "m", category: theme.Spacing, extra: autoValue, negative: true, decls: props("margin")},
		{stem: "mx", category: theme.Spacing, extra: autoValue, negative: true, decls: props("margin-left", "margin-right")},
		{stem: "my", category: theme.Spacing, extra: autoValue, negative: true, decls: props("margin-top", "margin-bottom")},
		{stem: "mt", category: theme.Spacing, extra: autoValue, negative: true, decls: props("margin-top")},
		{stem: "mr", category: theme.Spacing, extra: autoValue, negative: true, decls: props("margin-right")},
		{stem: "mb", category: theme.Spacing, extra: autoValue, negative: true, decls: props("margin-bottom")},
		{stem: "ml", category: theme.Spacing, extra: autoValue, negative: true, decls: props("margin-left")},
		{stem: "w", category: theme.Spacing, extra: sizeExtra, decls: props("width")},
		{stem: "h", category: theme.Spacing, extra: heightExtra, decls: props("height")},
		{stem: "min-h", extra: minHeightExtra, decls: props("min-height")},
		{stem: "gap", category: theme.Spacing, decls: props("gap")},
		{stem: "gap-x", category: theme.Spacing, decls: props("column-gap")},
		{stem: "gap-y", category: theme.Spacing, decls: props("row-gap")},

		{stem: "rounded", category: theme.BorderRadius, decls: props("border-radius")},
		{stem: "rounded-t", category: theme.BorderRadius, decls: props("border-top-left-radius", "border-top-right-radius")},
		{stem: "rounded-r", category: theme.BorderRadius, decls: props("border-top-right-radius", "border-bottom-right-radius")},
		{stem: "rounded-b", category: theme.BorderRadius, decls: props("border-bottom-right-radius", "border-bottom-left-radius")},
		{stem: "rounded-l", category: theme.BorderRadius, decls: props("border-top-left-radius", "border-bottom-left-radius")},
		{stem: "border", category: theme.BorderWidth, decls: props("border-width")},
		{stem: "border-t", category: theme.BorderWidth, decls: props("border-top-width")},
		{stem: "border-r", category: theme.BorderWidth, decls: props("border-right-width")},
		{stem: "border-b", category: theme.BorderWidth, decls: props("border-bottom-width")},
		{stem: "border-l", category: theme.BorderWidth, decls: props("border-left-width")},
		{stem: "border", category: theme.Colors, color: true, decls: props("border-color")},
		{stem: "bg", category: theme.Colors, color: true, decls: props("background-color")},

		{stem: "p", category: theme.Spacing, decls: props("padding")},
		{stem: "px", category: theme.Spacing, decls: props("padding-left", "padding-right")},
		{stem: "py", category: theme.Spacing, decls: props("padding-top", "padding-bottom")},
		{stem: "pt", category: theme.Spacing, decls: props("padding-top")},
		{stem: "pr", category: theme.Spacing, decls: props("padding-right")},
		{stem: "pb", category: theme.Spacing, decls: props("padding-bottom")},
		{stem: "pl", category: theme.Spacing, decls: props("padding-left")},

		{stem: "text-left", static: static("text-align", "left")},
		{stem: "text-center", static: static("text-align", "center")},
		{stem: "text-right", static: static("text-align", "right")},
		{stem: "text-justify", static: static("text-align", "justify")},
		{stem: "font", category: theme.FontFamily, decls: props("font-family")},
		{stem: "text", category: theme.FontSize, decls: fontSize},
		{stem: "font", category: theme.FontWeight, decls: props("font-weight")},
		{stem: "italic", static: static("font-style", "italic")},
		{stem: "not-italic", static: static("font-style", "normal")},
		{stem: "leading", category: theme.LineHeight, decls: props("line-height")},
		{stem: "uppercase", static: static("text-transform", "uppercase")},
		{stem: "lowercase", static: static("text-transform", "lowercase")},
		{stem: "capitalize", static: static("text-transform", "capitalize")},
		{stem: "truncate", static: static("overflow", "hidden", "text-overflow", "ellipsis", "white-space", "nowrap")},
		{stem: "text", category: theme.Colors, color: true, decls: props("color")},
		{stem: "underline", static: static("text-decoration-line", "underline")},
		{stem: "line-through", static: static("text-decoration-line", "line-through")},
		{stem: "no-underline", static: static("text-decoration-line", "none")},

		{stem: "opacity", category: theme.Opacity, decls: props("opacity")},
		{stem: "shadow", static: static("box-shadow", "0 1px 3px 0 rgb(0 0 0 / 0.1), 0 1px 2px -1px rgb(0 0 0 / 0.1)")},
		{stem: "shadow-md", static: static("box-shadow", "0 4px 6px -1px rgb(0 0 0 / 0.1), 0 2px 4px -2px rgb(0 0 0 / 0.1)")},
		{stem: "shadow-lg", static: static("box-shadow", "0 10px 15px -3px rgb(0 0 0 / 0.1), 0 4px 6px -4px rgb(0 0 0 / 0.1)")},
		{stem: "shadow-none", static: static("box-shadow", "0 0 #0000")},
		{stem: "cursor-pointer", static: static("cursor", "pointer")},
		{stem: "select-none", static: static("user-select", "none")},
		{stem: "transition", static: static("transition-property", "color, background-color, border-color, opacity, box-shadow, transform", "transition-timing-function", "cubic-bezier(0.4, 0, 0.2, 1)", "transition-duration", "150ms")},
	}
}

// lookup resolves utility name against catalogue. Catalogue entries are tried
// in order and first one having the token wins, this is how "text-lg" and
// "text-uma-blue" are told apart.
func lookup(t theme.Theme, c candidate) (match, bool) {
	for i, u := range catalogue {
		if u.static != nil {
			if c.base == u.stem && !c.negative {
				return match{order: i, decls: cloneDecls(u.static)}, true
			}
			continue
		}

		var key string
		switch {
		case c.base == u.stem:
			key = theme.DefaultKey
		case strings.HasPrefix(c.base, u.stem+"-"):
			key = c.base[len(u.stem)+1:]
		default:
			continue
		}
		if c.negative && !u.negative {
			continue
		}

		modifier := ""
		if u.color {
			if pos := strings.LastIndexByte(key, '/'); pos > 0 {
				key, modifier = key[:pos], key[pos+1:]
				if modifier == "" {
					continue
				}
			}
		}

		v, ok := t.Lookup(u.category, key)
		if !ok {
			if v, ok = u.extra[key]; !ok {
				continue
			}
		}

		if modifier != "" {
			alpha, ok := t.Lookup(theme.Opacity, modifier)
			if !ok {
				continue
			}
			rgb, ok := withAlpha(v.First(), alpha.First())
			if !ok {
				continue
			}
			v = theme.S(rgb)
		}
		if c.negative {
			neg, ok := negate(v)
			if !ok {
				continue
			}
			v = neg
		}
		return match{order: i, decls: u.decls(v)}, true
	}
	return match{}, false
}

func cloneDecls(decls []css.Declaration) []css.Declaration {
	out := make([]css.Declaration, len(decls))
	copy(out, decls)
	return out
}

// negate turns "1rem" into "-1rem", zero stays as is.
func negate(v theme.Value) (theme.Value, bool) {
	if v.IsList() || v.Scalar == "" || v.Scalar == "auto" {
		return theme.Value{}, false
	}
	if strings.TrimLeft(v.Scalar, "0.px") == "" || strings.TrimLeft(v.Scalar, "0.rem") == "" {
		return v, true
	}
	if rest, ok := strings.CutPrefix(v.Scalar, "-"); ok {
		return theme.S(rest), true
	}
	return theme.S("-" + v.Scalar), true
}

// withAlpha converts "#RGB" or "#RRGGBB" color into "rgb(r g b / alpha)".
func withAlpha(color, alpha string) (string, bool) {
	hex, ok := strings.CutPrefix(color, "#")
	if !ok {
		return "", false
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return "", false
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return "", false
	}
	return fmt.Sprintf("rgb(%d %d %d / %s)", n>>16&0xff, n>>8&0xff, n&0xff, alpha), true
}
