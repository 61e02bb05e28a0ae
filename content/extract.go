package content

import (
	"bytes"
	"path/filepath"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/h2non/filetype"
	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/html"
	"github.com/tdewolff/parse/v2/js"
	"golang.org/x/net/html/charset"
)

// IsBinary reports whether data looks like known binary format (image,
// archive, font and so on) which does not need to be scanned.
func IsBinary(data []byte) bool {
	head := data
	if len(head) > 262 {
		head = head[:262]
	}
	kind, err := filetype.Match(head)
	return err == nil && kind != filetype.Unknown
}

// Extract returns class name candidates found in data in order of
// appearance, possibly with duplicates. Extension of name selects the way
// content is looked at.
func Extract(name string, data []byte) []string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm", ".xhtml":
		return extractHTML(decodeHTML(data))
	case ".js", ".mjs", ".cjs", ".jsx", ".ts", ".tsx":
		return extractJS(data)
	default:
		return Split(string(data))
	}
}

// decodeHTML converts document to UTF-8 using BOM and meta charset
// declarations.
func decodeHTML(data []byte) []byte {
	if !slices.ContainsFunc(data, func(b byte) bool { return b >= utf8.RuneSelf }) {
		return data
	}
	enc, name, _ := charset.DetermineEncoding(data, "text/html")
	if name == "utf-8" || enc == nil {
		return data
	}
	if out, err := enc.NewDecoder().Bytes(data); err == nil {
		return out
	}
	return data
}

// extractHTML looks at attribute values, text between tags and inline
// scripts. Template tags such as {% with cls="..." %} end up in text.
func extractHTML(data []byte) []string {
	var (
		out      []string
		inScript bool
	)

	l := html.NewLexer(parse.NewInputBytes(data))
	for {
		tt, raw := l.Next()
		switch tt {
		case html.ErrorToken:
			return out
		case html.StartTagToken:
			inScript = strings.EqualFold(string(l.Text()), "script")
		case html.EndTagToken:
			if strings.EqualFold(string(l.Text()), "script") {
				inScript = false
			}
		case html.AttributeToken:
			// class, :class, x-bind:class and data attributes alike
			out = append(out, Split(string(unquote(l.AttrVal())))...)
		case html.TextToken:
			if inScript {
				out = append(out, extractJS(raw)...)
			} else {
				out = append(out, Split(string(raw))...)
			}
		}
	}
}

// extractJS looks inside string and template literals only.
func extractJS(data []byte) []string {
	var out []string

	l := js.NewLexer(parse.NewInputBytes(data))
	for {
		tt, text := l.Next()
		switch tt {
		case js.ErrorToken:
			return out
		case js.StringToken:
			out = append(out, Split(string(unquote(text)))...)
		case js.TemplateToken, js.TemplateStartToken, js.TemplateMiddleToken, js.TemplateEndToken:
			out = append(out, Split(strings.Trim(string(text), "`${}"))...)
		}
	}
}

func unquote(b []byte) []byte {
	b = bytes.TrimSpace(b)
	if len(b) >= 2 && (b[0] == '"' || b[0] == '\'') && b[len(b)-1] == b[0] {
		return b[1 : len(b)-1]
	}
	return b
}

func candidateRune(r rune) bool {
	if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
		return true
	}
	return strings.ContainsRune("-_:/.%!#[]@", r)
}

// Split breaks arbitrary text into class name candidates: runs of characters
// which may appear in utility names, with trailing punctuation removed.
// Runs without letters are dropped.
func Split(text string) []string {
	var out []string
	for _, f := range strings.FieldsFunc(text, func(r rune) bool { return !candidateRune(r) }) {
		f = strings.TrimRight(f, ".:!")
		if !strings.ContainsFunc(f, unicode.IsLetter) {
			continue
		}
		out = append(out, f)
	}
	return out
}
