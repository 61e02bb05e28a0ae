// Package generate turns class name candidates into CSS rules using resolved
// design tokens. Candidates which do not name a known utility, or reference
// token absent from the theme, produce nothing.
package generate

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"sort"

	"github.com/maruel/natural"
	"go.uber.org/zap"

	"tailgen/common"
	"tailgen/css"
	"tailgen/project"
	"tailgen/theme"
)

// Options controls generation.
type Options struct {
	// Preflight adds reset rules to the base layer.
	Preflight bool
}

// Output holds generated layers.
type Output struct {
	Base       *css.Stylesheet
	Components *css.Stylesheet
	Utilities  *css.Stylesheet
	// Matched lists candidates which produced rules, in natural order.
	Matched []string
}

// Layer returns generated stylesheet for layer name.
func (o *Output) Layer(name string) *css.Stylesheet {
	switch name {
	case css.LayerBase:
		return o.Base
	case css.LayerComponents:
		return o.Components
	case css.LayerUtilities:
		return o.Utilities
	}
	return nil
}

// Apply substitutes @tailwind directives of input stylesheet with generated
// layers. Every layer is emitted once, repeated directives are dropped with
// a warning. When input has no directives (or there is no input) all layers
// follow input rules.
func (o *Output) Apply(input *css.Stylesheet) *css.Stylesheet {
	out := &css.Stylesheet{}
	if input == nil || len(input.Directives()) == 0 {
		out.Append(input)
		out.Append(o.Base)
		out.Append(o.Components)
		out.Append(o.Utilities)
		return out
	}

	out.Warnings = append(out.Warnings, input.Warnings...)
	done := make(map[string]bool, 3)
	for _, item := range input.Items {
		if item.Directive == nil {
			out.Items = append(out.Items, item)
			continue
		}
		layer := item.Directive.Layer
		if done[layer] {
			out.Warnings = append(out.Warnings, "repeated @tailwind directive ignored: "+layer)
			continue
		}
		done[layer] = true
		out.Append(o.Layer(layer))
	}
	return out
}

// Generator produces layers for a fixed resolved configuration. It may be
// used for any number of candidate sets.
type Generator struct {
	theme     theme.Theme
	prefix    string
	variants  *variants
	api       *API
	preflight bool
	log       *zap.Logger
}

// New prepares generator for resolved configuration, plugins are looked up
// and registered in declared order.
func New(resolved *project.Resolved, opts Options, log *zap.Logger) (*Generator, error) {
	plugins := make([]Plugin, 0, len(resolved.Plugins))
	for _, name := range resolved.Plugins {
		p, err := LookupPlugin(name)
		if err != nil {
			return nil, err
		}
		plugins = append(plugins, p)
	}
	return newGenerator(resolved.Theme, resolved.DarkMode, resolved.Prefix, plugins, opts, log), nil
}

func newGenerator(t theme.Theme, dark common.DarkMode, prefix string, plugins []Plugin, opts Options, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("generate")

	g := &Generator{
		theme:     t,
		prefix:    prefix,
		variants:  newVariants(t, dark),
		api:       newAPI(t, log),
		preflight: opts.Preflight,
		log:       log,
	}
	for _, p := range plugins {
		g.api.current = p.Name()
		p.Register(g.api)
		log.Debug("Plugin registered", zap.String("plugin", p.Name()))
	}
	g.api.current = ""
	return g
}

// Build is a shortcut for New followed by Generate.
func Build(resolved *project.Resolved, candidates []string, opts Options, log *zap.Logger) (*Output, error) {
	g, err := New(resolved, opts, log)
	if err != nil {
		return nil, fmt.Errorf("unable to prepare generator: %w", err)
	}
	return g.Generate(candidates), nil
}

// entry is generated rule set for a single candidate.
type entry struct {
	name  string
	place placement
	order int
	rules []css.Rule
}

// Generate builds all layers for candidates. Candidate order and duplicates
// do not matter.
func (g *Generator) Generate(candidates []string) *Output {
	unique := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		unique[c] = struct{}{}
	}

	var components, utilities []entry
	for raw := range unique {
		c, ok := parseCandidate(raw, g.prefix)
		if !ok {
			continue
		}
		place, ok := g.variants.apply(c.variants)
		if !ok {
			continue
		}
		sel := place.prefix + "." + css.EscapeIdent(c.raw) + place.suffix

		if comp, ok := g.api.components[c.base]; ok && !c.negative {
			components = append(components, entry{
				name:  c.raw,
				place: place,
				rules: markImportant(comp.build(sel), c.important),
			})
			continue
		}
		m, ok := lookup(g.theme, c)
		if !ok {
			continue
		}
		utilities = append(utilities, entry{
			name:  c.raw,
			place: place,
			order: m.order,
			rules: markImportant([]css.Rule{{Selectors: []string{sel}, Declarations: m.decls}}, c.important),
		})
	}

	out := &Output{
		Base:       &css.Stylesheet{},
		Components: layout(components),
		Utilities:  layout(utilities),
	}
	if g.preflight {
		for _, r := range preflight(g.theme) {
			out.Base.AddRule(r)
		}
	}
	for _, r := range g.api.base {
		out.Base.AddRule(cloneRule(r))
	}

	matched := make(map[string]struct{}, len(components)+len(utilities))
	for _, e := range components {
		matched[e.name] = struct{}{}
	}
	for _, e := range utilities {
		matched[e.name] = struct{}{}
	}
	out.Matched = slices.Collect(maps.Keys(matched))
	sort.Sort(natural.StringSlice(out.Matched))

	g.log.Debug("Rules generated",
		zap.Int("candidates", len(unique)),
		zap.Int("components", len(components)),
		zap.Int("utilities", len(utilities)))
	return out
}

// layout orders entries and groups them into media blocks: plain rules first,
// then blocks by breakpoint width, dark mode blocks after their breakpoint.
func layout(entries []entry) *css.Stylesheet {
	slices.SortFunc(entries, func(a, b entry) int {
		return cmp.Or(
			cmp.Compare(a.place.rank, b.place.rank),
			compareBool(a.place.dark, b.place.dark),
			cmp.Compare(a.place.mediaQuery(), b.place.mediaQuery()),
			cmp.Compare(a.place.weight, b.place.weight),
			cmp.Compare(a.order, b.order),
			compareNatural(a.name, b.name),
		)
	})

	sheet := &css.Stylesheet{}
	var block *css.Block
	for _, e := range entries {
		query := e.place.mediaQuery()
		if query == "" {
			for _, r := range e.rules {
				sheet.AddRule(r)
			}
			continue
		}
		if block == nil || block.Prelude != query {
			if block != nil {
				sheet.AddBlock(*block)
			}
			block = &css.Block{Name: "@media", Prelude: query}
		}
		block.Rules = append(block.Rules, e.rules...)
	}
	if block != nil {
		sheet.AddBlock(*block)
	}
	return sheet
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return 1
	}
	return -1
}

func compareNatural(a, b string) int {
	switch {
	case a == b:
		return 0
	case natural.Less(a, b):
		return -1
	}
	return 1
}

func cloneRule(r css.Rule) css.Rule {
	return css.Rule{Selectors: slices.Clone(r.Selectors), Declarations: slices.Clone(r.Declarations)}
}

// markImportant copies rules so shared declarations of plugins are never
// modified.
func markImportant(rules []css.Rule, important bool) []css.Rule {
	out := make([]css.Rule, len(rules))
	for i, r := range rules {
		out[i] = cloneRule(r)
		if important {
			for j := range out[i].Declarations {
				out[i].Declarations[j].Important = true
			}
		}
	}
	return out
}
