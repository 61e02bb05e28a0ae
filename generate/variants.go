package generate

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"tailgen/common"
	"tailgen/theme"
)

// pseudo-class variants in output order, later entries override earlier ones
// when rules have equal specificity
var pseudoVariants = []struct {
	name, selector string
}{
	{"first", ":first-child"},
	{"last", ":last-child"},
	{"odd", ":nth-child(odd)"},
	{"even", ":nth-child(even)"},
	{"visited", ":visited"},
	{"focus-within", ":focus-within"},
	{"hover", ":hover"},
	{"focus", ":focus"},
	{"focus-visible", ":focus-visible"},
	{"active", ":active"},
	{"disabled", ":disabled"},
}

const (
	darkWeight  = 1 << 20
	darkMedia   = "(prefers-color-scheme: dark)"
	darkClass   = ".dark"
	variantSep  = ':'
	importantCh = '!'
)

// screen is responsive breakpoint derived from theme screens.
type screen struct {
	name  string
	width string
	rank  int
}

// variants knows how to apply variant prefixes for one resolved theme.
type variants struct {
	screens  map[string]screen
	darkMode common.DarkMode
}

func newVariants(t theme.Theme, dark common.DarkMode) *variants {
	v := &variants{screens: make(map[string]screen), darkMode: dark}

	// natural order of names does not reflect widths ("2xl" < "sm")
	names := t[theme.Screens].Names()
	ordered := make([]screen, 0, len(names))
	for _, name := range names {
		ordered = append(ordered, screen{name: name, width: t[theme.Screens][name].First()})
	}
	slices.SortStableFunc(ordered, func(a, b screen) int {
		return cmp.Compare(screenWidth(a.width), screenWidth(b.width))
	})
	for i, s := range ordered {
		s.rank = i + 1
		v.screens[s.name] = s
	}
	return v
}

// screenWidth extracts leading number from "640px", unparsable values sort last.
func screenWidth(s string) float64 {
	end := 0
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || s[end] == '.') {
		end++
	}
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 1 << 30
	}
	return f
}

// placement describes where rule produced for a candidate goes.
type placement struct {
	media  []string // media conditions joined with "and"
	rank   int      // highest screen rank, 0 when not responsive
	dark   bool     // dark media block
	prefix string   // selector prefix (".dark ")
	suffix string   // pseudo-class chain
	weight int      // orders rules inside a block
}

func (p placement) mediaQuery() string {
	return strings.Join(p.media, " and ")
}

// apply resolves variant names. Variants are applied right to left, so
// "focus:hover:x" selects ".x:hover:focus". Unknown variant makes the whole
// candidate invalid.
func (v *variants) apply(names []string) (placement, bool) {
	var p placement
	for _, name := range slices.Backward(names) {
		if s, ok := v.screens[name]; ok {
			p.media = append(p.media, "(min-width: "+s.width+")")
			p.rank = max(p.rank, s.rank)
			continue
		}
		if name == "dark" {
			p.weight |= darkWeight
			if v.darkMode == common.DarkModeClass {
				p.prefix = darkClass + " "
			} else {
				p.dark = true
			}
			continue
		}
		found := false
		for i, pv := range pseudoVariants {
			if pv.name == name {
				p.suffix += pv.selector
				p.weight |= 1 << (i + 1)
				found = true
				break
			}
		}
		if !found {
			return placement{}, false
		}
	}
	if p.dark {
		p.media = append(p.media, darkMedia)
	}
	return p, true
}

// candidate is a class name split into its parts.
type candidate struct {
	raw       string
	variants  []string
	base      string // utility name without prefix, important and negative marks
	negative  bool
	important bool
}

// parseCandidate splits "md:hover:!-tw-mt-4" into parts. Configured prefix
// must be present, otherwise candidate is rejected.
func parseCandidate(raw, prefix string) (candidate, bool) {
	c := candidate{raw: raw}

	parts := strings.Split(raw, string(variantSep))
	for _, p := range parts {
		if p == "" {
			return candidate{}, false
		}
	}
	c.variants = parts[:len(parts)-1]
	name := parts[len(parts)-1]

	if name[0] == importantCh {
		c.important = true
		name = name[1:]
	}
	if strings.HasPrefix(name, "-") {
		c.negative = true
		name = name[1:]
	}
	if prefix != "" {
		var ok bool
		if name, ok = strings.CutPrefix(name, prefix); !ok {
			return candidate{}, false
		}
	}
	if name == "" {
		return candidate{}, false
	}
	c.base = name
	return c, true
}
