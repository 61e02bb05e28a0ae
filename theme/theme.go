// Package theme holds design tokens and implements resolution of user
// supplied tokens over built-in defaults.
package theme

import (
	"maps"
	"slices"
	"sort"
	"strings"

	"github.com/maruel/natural"

	"tailgen/css"
)

// Well known token categories.
const (
	Colors       = "colors"
	FontFamily   = "fontFamily"
	FontSize     = "fontSize"
	FontWeight   = "fontWeight"
	Spacing      = "spacing"
	BorderRadius = "borderRadius"
	BorderWidth  = "borderWidth"
	Screens      = "screens"
	Opacity      = "opacity"
	LineHeight   = "lineHeight"
)

// DefaultKey names token used when utility has no suffix ("rounded",
// "border"). Inside nested maps it stands for parent name.
const DefaultKey = "DEFAULT"

// Value is a single design token: either scalar string or ordered list of
// strings (font fallback stack, font size with line height).
type Value struct {
	Scalar string
	List   []string
}

// S creates scalar value.
func S(s string) Value {
	return Value{Scalar: s}
}

// L creates list value.
func L(items ...string) Value {
	return Value{List: items}
}

func (v Value) IsList() bool {
	return v.List != nil
}

// First returns scalar or first list element.
func (v Value) First() string {
	if v.IsList() {
		if len(v.List) == 0 {
			return ""
		}
		return v.List[0]
	}
	return v.Scalar
}

// String renders value the way it would appear in CSS declaration. Lists are
// comma separated, items with spaces are quoted (font family names).
func (v Value) String() string {
	if !v.IsList() {
		return v.Scalar
	}
	items := make([]string, len(v.List))
	for i, item := range v.List {
		if strings.ContainsAny(item, " \t") && !strings.HasPrefix(item, `"`) && !strings.HasPrefix(item, `'`) {
			item = css.Quote(item)
		}
		items[i] = item
	}
	return strings.Join(items, ", ")
}

func (v Value) Clone() Value {
	return Value{Scalar: v.Scalar, List: slices.Clone(v.List)}
}

func (v Value) Equal(o Value) bool {
	return v.Scalar == o.Scalar && v.IsList() == o.IsList() && slices.Equal(v.List, o.List)
}

// Category maps token names to values, nested maps are already flattened.
type Category map[string]Value

func (c Category) Clone() Category {
	if c == nil {
		return nil
	}
	out := make(Category, len(c))
	for k, v := range c {
		out[k] = v.Clone()
	}
	return out
}

// Names returns token names in natural order (blue-50 before blue-100).
func (c Category) Names() []string {
	names := slices.Collect(maps.Keys(c))
	sort.Sort(natural.StringSlice(names))
	return names
}

// Theme maps category names to their tokens.
type Theme map[string]Category

func (t Theme) Clone() Theme {
	if t == nil {
		return nil
	}
	out := make(Theme, len(t))
	for k, c := range t {
		out[k] = c.Clone()
	}
	return out
}

// Lookup finds token in category.
func (t Theme) Lookup(category, name string) (Value, bool) {
	c, ok := t[category]
	if !ok {
		return Value{}, false
	}
	v, ok := c[name]
	return v, ok
}

// Resolve produces final token set: categories present in override replace
// default categories entirely, categories in extend are merged into result
// token by token. Untouched categories are copied from defaults. Inputs are
// never modified.
func Resolve(defaults, override, extend Theme) Theme {
	out := defaults.Clone()
	if out == nil {
		out = make(Theme)
	}
	for name, c := range override {
		out[name] = c.Clone()
	}
	for name, c := range extend {
		dst, ok := out[name]
		if !ok || dst == nil {
			dst = make(Category, len(c))
			out[name] = dst
		}
		for k, v := range c {
			dst[k] = v.Clone()
		}
	}
	return out
}
