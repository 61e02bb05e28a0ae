package theme

import (
	"strconv"
)

var shades = []string{"50", "100", "200", "300", "400", "500", "600", "700", "800", "900", "950"}

var palettes = map[string][]string{
	"gray":   {"#f9fafb", "#f3f4f6", "#e5e7eb", "#d1d5db", "#9ca3af", "#6b7280", "#4b5563", "#374151", "#1f2937", "#111827", "#030712"},
	"red":    {"#fef2f2", "#fee2e2", "#fecaca", "#fca5a5", "#f87171", "#ef4444", "#dc2626", "#b91c1c", "#991b1b", "#7f1d1d", "#450a0a"},
	"yellow": {"#fefce8", "#fef9c3", "#fef08a", "#fde047", "#facc15", "#eab308", "#ca8a04", "#a16207", "#854d0e", "#713f12", "#422006"},
	"green":  {"#f0fdf4", "#dcfce7", "#bbf7d0", "#86efac", "#4ade80", "#22c55e", "#16a34a", "#15803d", "#166534", "#14532d", "#052e16"},
	"blue":   {"#eff6ff", "#dbeafe", "#bfdbfe", "#93c5fd", "#60a5fa", "#3b82f6", "#2563eb", "#1d4ed8", "#1e40af", "#1e3a8a", "#172554"},
	"indigo": {"#eef2ff", "#e0e7ff", "#c7d2fe", "#a5b4fc", "#818cf8", "#6366f1", "#4f46e5", "#4338ca", "#3730a3", "#312e81", "#1e1b4b"},
	"purple": {"#faf5ff", "#f3e8ff", "#e9d5ff", "#d8b4fe", "#c084fc", "#a855f7", "#9333ea", "#7e22ce", "#6b21a8", "#581c87", "#3b0764"},
	"pink":   {"#fdf2f8", "#fce7f3", "#fbcfe8", "#f9a8d4", "#f472b6", "#ec4899", "#db2777", "#be185d", "#9d174d", "#831843", "#500724"},
}

// spacing scale keys, value is key * 0.25rem
var spacingSteps = []float64{0.5, 1, 1.5, 2, 2.5, 3, 3.5, 4, 5, 6, 7, 8, 9, 10, 11, 12, 14, 16, 20, 24, 28, 32, 36, 40, 44, 48, 52, 56, 60, 64, 72, 80, 96}

func colors() Category {
	c := Category{
		"inherit":     S("inherit"),
		"current":     S("currentColor"),
		"transparent": S("transparent"),
		"black":       S("#000"),
		"white":       S("#fff"),
	}
	for name, values := range palettes {
		for i, shade := range shades {
			c[name+"-"+shade] = S(values[i])
		}
	}
	return c
}

func spacing() Category {
	c := Category{
		"0":  S("0px"),
		"px": S("1px"),
	}
	for _, step := range spacingSteps {
		key := strconv.FormatFloat(step, 'f', -1, 64)
		c[key] = S(strconv.FormatFloat(step*0.25, 'f', -1, 64) + "rem")
	}
	return c
}

func opacity() Category {
	c := Category{}
	for i := 0; i <= 100; i += 5 {
		key := strconv.Itoa(i)
		c[key] = S(strconv.FormatFloat(float64(i)/100, 'f', -1, 64))
	}
	return c
}

// Defaults returns fresh copy of built-in token set, callers are free to
// modify it.
func Defaults() Theme {
	return Theme{
		Colors:  colors(),
		Spacing: spacing(),
		Opacity: opacity(),
		FontFamily: Category{
			"sans":  L("ui-sans-serif", "system-ui", "sans-serif", "Apple Color Emoji", "Segoe UI Emoji", "Segoe UI Symbol", "Noto Color Emoji"),
			"serif": L("ui-serif", "Georgia", "Cambria", "Times New Roman", "Times", "serif"),
			"mono":  L("ui-monospace", "SFMono-Regular", "Menlo", "Monaco", "Consolas", "Liberation Mono", "Courier New", "monospace"),
		},
		FontSize: Category{
			"xs":   L("0.75rem", "1rem"),
			"sm":   L("0.875rem", "1.25rem"),
			"base": L("1rem", "1.5rem"),
			"lg":   L("1.125rem", "1.75rem"),
			"xl":   L("1.25rem", "1.75rem"),
			"2xl":  L("1.5rem", "2rem"),
			"3xl":  L("1.875rem", "2.25rem"),
			"4xl":  L("2.25rem", "2.5rem"),
			"5xl":  L("3rem", "1"),
			"6xl":  L("3.75rem", "1"),
			"7xl":  L("4.5rem", "1"),
			"8xl":  L("6rem", "1"),
			"9xl":  L("8rem", "1"),
		},
		FontWeight: Category{
			"thin":       S("100"),
			"extralight": S("200"),
			"light":      S("300"),
			"normal":     S("400"),
			"medium":     S("500"),
			"semibold":   S("600"),
			"bold":       S("700"),
			"extrabold":  S("800"),
			"black":      S("900"),
		},
		LineHeight: Category{
			"none":    S("1"),
			"tight":   S("1.25"),
			"snug":    S("1.375"),
			"normal":  S("1.5"),
			"relaxed": S("1.625"),
			"loose":   S("2"),
		},
		BorderRadius: Category{
			"none":     S("0px"),
			"sm":       S("0.125rem"),
			DefaultKey: S("0.25rem"),
			"md":       S("0.375rem"),
			"lg":       S("0.5rem"),
			"xl":       S("0.75rem"),
			"2xl":      S("1rem"),
			"3xl":      S("1.5rem"),
			"full":     S("9999px"),
		},
		BorderWidth: Category{
			DefaultKey: S("1px"),
			"0":        S("0px"),
			"2":        S("2px"),
			"4":        S("4px"),
			"8":        S("8px"),
		},
		Screens: Category{
			"sm":  S("640px"),
			"md":  S("768px"),
			"lg":  S("1024px"),
			"xl":  S("1280px"),
			"2xl": S("1536px"),
		},
	}
}
