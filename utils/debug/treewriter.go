// Package debug has helpers producing human readable dumps for debug reports.
package debug

import (
	"fmt"
	"strconv"
	"strings"
)

const wrapWidth = 100

// TreeWriter accumulates indented text, two spaces per level.
type TreeWriter struct {
	w *strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		w: &strings.Builder{},
	}
}

func (tw TreeWriter) String() string {
	return tw.w.String()
}

func (tw TreeWriter) indent(depth int) {
	for range depth {
		tw.w.WriteString("  ")
	}
}

func (tw TreeWriter) Line(depth int, format string, args ...any) {
	tw.indent(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// Value writes "label: value" with value quoted, empty values are left as is.
func (tw TreeWriter) Value(depth int, label, value string) {
	tw.indent(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	if value != "" {
		value = strconv.Quote(value)
	}
	tw.w.WriteString(value)
	tw.w.WriteByte('\n')
}

// Items writes label with number of items followed by space separated items
// wrapped one level deeper.
func (tw TreeWriter) Items(depth int, label string, items []string) {
	tw.Line(depth, "%s (%d)", label, len(items))
	if len(items) == 0 {
		return
	}
	width := 0
	tw.indent(depth + 1)
	for i, item := range items {
		if i > 0 {
			if width+1+len(item) > wrapWidth {
				tw.w.WriteByte('\n')
				tw.indent(depth + 1)
				width = 0
			} else {
				tw.w.WriteByte(' ')
				width++
			}
		}
		tw.w.WriteString(item)
		width += len(item)
	}
	tw.w.WriteByte('\n')
}
