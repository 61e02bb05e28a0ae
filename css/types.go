package css

import (
	"fmt"
	"io"
	"strings"
)

// Layers recognized by @tailwind directive, in output order.
const (
	LayerBase       = "base"
	LayerComponents = "components"
	LayerUtilities  = "utilities"
)

// Declaration is a single "property: value" pair.
type Declaration struct {
	Property  string
	Value     string
	Important bool
}

// Decl is shorthand for creating declaration.
func Decl(property, value string) Declaration {
	return Declaration{Property: property, Value: value}
}

// Rule represents selector list with its declarations. Declarations keep
// source order.
type Rule struct {
	Selectors    []string
	Declarations []Declaration
}

// Selector returns selector list as it appears in stylesheet.
func (r Rule) Selector() string {
	return strings.Join(r.Selectors, ", ")
}

// Get returns value of the last declaration of property.
func (r Rule) Get(property string) (string, bool) {
	for i := len(r.Declarations) - 1; i >= 0; i-- {
		if r.Declarations[i].Property == property {
			return r.Declarations[i].Value, true
		}
	}
	return "", false
}

// Block is a conditional or grouping at-rule holding nested rules: @media,
// @supports, @layer.
type Block struct {
	Name    string // at-keyword including "@"
	Prelude string // e.g. "(min-width: 640px)"
	Rules   []Rule
}

// Header returns "@media (min-width: 640px)" form.
func (b Block) Header() string {
	if b.Prelude == "" {
		return b.Name
	}
	return b.Name + " " + b.Prelude
}

// AtRule is a statement at-rule kept verbatim, like @import or @charset.
type AtRule struct {
	Name    string
	Prelude string
}

// Directive is "@tailwind <layer>" placeholder for generated rules.
type Directive struct {
	Layer string
}

// Item is single top-level stylesheet entry, exactly one field is set.
type Item struct {
	Rule      *Rule
	Block     *Block
	AtRule    *AtRule
	Directive *Directive
}

// Stylesheet is a sequence of items in source order.
type Stylesheet struct {
	Items    []Item
	Warnings []string
}

func (s *Stylesheet) AddRule(r Rule) {
	s.Items = append(s.Items, Item{Rule: &r})
}

func (s *Stylesheet) AddBlock(b Block) {
	s.Items = append(s.Items, Item{Block: &b})
}

// Append adds all items of other stylesheet.
func (s *Stylesheet) Append(other *Stylesheet) {
	if other == nil {
		return
	}
	s.Items = append(s.Items, other.Items...)
	s.Warnings = append(s.Warnings, other.Warnings...)
}

// Directives returns layers named by @tailwind directives in source order.
func (s *Stylesheet) Directives() []string {
	var layers []string
	for _, item := range s.Items {
		if item.Directive != nil {
			layers = append(layers, item.Directive.Layer)
		}
	}
	return layers
}

// RulesBySelector returns top-level rules and rules nested in blocks whose
// selector list contains selector.
func (s *Stylesheet) RulesBySelector(selector string) []Rule {
	var matches []Rule
	match := func(r Rule) {
		for _, sel := range r.Selectors {
			if sel == selector {
				matches = append(matches, r)
				return
			}
		}
	}
	for _, item := range s.Items {
		switch {
		case item.Rule != nil:
			match(*item.Rule)
		case item.Block != nil:
			for _, r := range item.Block.Rules {
				match(r)
			}
		}
	}
	return matches
}

// WriteTo writes formatted stylesheet, implementing io.WriterTo.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	return s.Write(w, false)
}

// Write outputs stylesheet either formatted or minified. Directives which were
// not expanded are written back as is.
func (s *Stylesheet) Write(w io.Writer, minify bool) (int64, error) {
	ew := &errWriter{w: w}
	for i, item := range s.Items {
		if i > 0 && !minify {
			ew.print("\n")
		}
		switch {
		case item.AtRule != nil:
			if item.AtRule.Prelude == "" {
				ew.printf("%s;", item.AtRule.Name)
			} else {
				ew.printf("%s %s;", item.AtRule.Name, item.AtRule.Prelude)
			}
			if !minify {
				ew.print("\n")
			}
		case item.Directive != nil:
			ew.printf("@tailwind %s;", item.Directive.Layer)
			if !minify {
				ew.print("\n")
			}
		case item.Rule != nil:
			writeRule(ew, item.Rule, "", minify)
		case item.Block != nil:
			writeBlock(ew, item.Block, minify)
		}
		if ew.err != nil {
			break
		}
	}
	return ew.n, ew.err
}

// String returns formatted CSS text.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

func writeRule(ew *errWriter, rule *Rule, indent string, minify bool) {
	if minify {
		ew.printf("%s{", strings.Join(rule.Selectors, ","))
		for i, d := range rule.Declarations {
			if i > 0 {
				ew.print(";")
			}
			ew.printf("%s:%s", d.Property, d.Value)
			if d.Important {
				ew.print("!important")
			}
		}
		ew.print("}")
		return
	}

	ew.printf("%s%s {\n", indent, rule.Selector())
	for _, d := range rule.Declarations {
		ew.printf("%s  %s: %s", indent, d.Property, d.Value)
		if d.Important {
			ew.print(" !important")
		}
		ew.print(";\n")
	}
	ew.printf("%s}\n", indent)
}

func writeBlock(ew *errWriter, b *Block, minify bool) {
	if minify {
		ew.printf("%s{", b.Header())
		for i := range b.Rules {
			writeRule(ew, &b.Rules[i], "", true)
		}
		ew.print("}")
		return
	}

	ew.printf("%s {\n", b.Header())
	for i := range b.Rules {
		if i > 0 {
			ew.print("\n")
		}
		writeRule(ew, &b.Rules[i], "  ", false)
	}
	ew.print("}\n")
}

// errWriter remembers first error and total number of bytes written.
type errWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (ew *errWriter) print(s string) {
	if ew.err != nil {
		return
	}
	n, err := io.WriteString(ew.w, s)
	ew.n += int64(n)
	ew.err = err
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	n, err := fmt.Fprintf(ew.w, format, args...)
	ew.n += int64(n)
	ew.err = err
}
