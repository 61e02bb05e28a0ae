package css

import (
	"errors"
	"io"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser parses CSS stylesheets into items which can be merged with
// generated rules.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses CSS text into a Stylesheet. Constructs which cannot be
// represented are dropped and reported in Warnings. The optional source
// parameter identifies what is being parsed for debug logging.
func (p *Parser) Parse(data []byte, source ...string) *Stylesheet {
	sheet := &Stylesheet{}

	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	parser := css.NewParser(parse.NewInputBytes(data), false)
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); err != nil && !errors.Is(err, io.EOF) {
				sheet.Warnings = append(sheet.Warnings, "parse error: "+err.Error())
				p.log.Debug("CSS parse error", zap.Error(err))
			}
			return sheet

		case css.AtRuleGrammar:
			name := strings.ToLower(string(data))
			prelude := tokensToString(parser.Values())
			if name == "@tailwind" {
				switch prelude {
				case LayerBase, LayerComponents, LayerUtilities:
					sheet.Items = append(sheet.Items, Item{Directive: &Directive{Layer: prelude}})
				default:
					sheet.Warnings = append(sheet.Warnings, "unknown @tailwind layer: "+prelude)
				}
				continue
			}
			sheet.Items = append(sheet.Items, Item{AtRule: &AtRule{Name: name, Prelude: prelude}})

		case css.BeginAtRuleGrammar:
			name := strings.ToLower(string(data))
			prelude := tokensToString(parser.Values())
			switch name {
			case "@media", "@supports", "@layer":
				block := Block{Name: name, Prelude: prelude, Rules: p.parseBlockRules(parser, sheet)}
				p.log.Debug("Parsed block", zap.String("header", block.Header()), zap.Int("rules", len(block.Rules)))
				sheet.AddBlock(block)
			case "@font-face", "@page":
				sheet.AddRule(Rule{Selectors: []string{name}, Declarations: p.parseDeclarations(parser, css.EndAtRuleGrammar)})
			default:
				p.skipAtRuleBlock(parser)
				sheet.Warnings = append(sheet.Warnings, "unsupported at-rule dropped: "+name)
				p.log.Debug("Skipping @-rule", zap.String("rule", name))
			}

		case css.BeginRulesetGrammar:
			selectors := parseSelectors(data, parser.Values())
			decls := p.parseDeclarations(parser, css.EndRulesetGrammar)
			if len(selectors) > 0 {
				sheet.AddRule(Rule{Selectors: selectors, Declarations: decls})
			}
		}
	}
}

// parseBlockRules collects rulesets until the end of enclosing at-rule.
func (p *Parser) parseBlockRules(parser *css.Parser, sheet *Stylesheet) []Rule {
	var rules []Rule
	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar, css.EndAtRuleGrammar:
			return rules
		case css.BeginRulesetGrammar:
			selectors := parseSelectors(data, parser.Values())
			decls := p.parseDeclarations(parser, css.EndRulesetGrammar)
			if len(selectors) > 0 {
				rules = append(rules, Rule{Selectors: selectors, Declarations: decls})
			}
		case css.BeginAtRuleGrammar:
			name := string(data)
			p.skipAtRuleBlock(parser)
			sheet.Warnings = append(sheet.Warnings, "nested at-rule dropped: "+name)
		}
	}
}

// parseSelectors splits selector list, whitespace inside selectors is
// normalized to single space.
func parseSelectors(data []byte, values []css.Token) []string {
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		sb.Write(v.Data)
	}

	var selectors []string
	for s := range strings.SplitSeq(sb.String(), ",") {
		if s = strings.Join(strings.Fields(s), " "); s != "" {
			selectors = append(selectors, s)
		}
	}
	return selectors
}

// parseDeclarations reads declarations until end grammar is reached.
func (p *Parser) parseDeclarations(parser *css.Parser, end css.GrammarType) []Declaration {
	var decls []Declaration
	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar, end:
			return decls
		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			values := parser.Values()
			if len(values) == 0 {
				continue
			}
			d := Declaration{Property: string(data)}
			d.Value, d.Important = valueString(values)
			decls = append(decls, d)
		}
	}
}

// valueString renders value tokens dropping trailing !important.
func valueString(tokens []css.Token) (string, bool) {
	end := len(tokens)
	for end > 0 && tokens[end-1].TokenType == css.WhitespaceToken {
		end--
	}
	important := false
	if end >= 2 && tokens[end-1].TokenType == css.IdentToken && strings.EqualFold(string(tokens[end-1].Data), "important") {
		i := end - 2
		for i >= 0 && tokens[i].TokenType == css.WhitespaceToken {
			i--
		}
		if i >= 0 && tokens[i].TokenType == css.DelimToken && string(tokens[i].Data) == "!" {
			important = true
			end = i
		}
	}
	return tokensToString(tokens[:end]), important
}

// tokensToString joins tokens collapsing whitespace.
func tokensToString(tokens []css.Token) string {
	var sb strings.Builder
	space := false
	for _, t := range tokens {
		if t.TokenType == css.WhitespaceToken || t.TokenType == css.CommentToken {
			space = sb.Len() > 0
			continue
		}
		if space {
			sb.WriteByte(' ')
			space = false
		}
		sb.Write(t.Data)
	}
	return strings.TrimSpace(sb.String())
}

// skipAtRuleBlock skips tokens until the matching end of an @-rule block.
func (p *Parser) skipAtRuleBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}
