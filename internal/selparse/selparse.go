// Package selparse parses the CSS-selectors-with-`&` grammar Sass uses
// into internal/selector values. It is the external Parser interface named
// in spec.md §6 — the selector core itself never parses text — implemented
// here as a thin recursive-descent parser over internal/css_lexer,
// grounded on
// _examples/evanw-esbuild/internal/css_parser/css_parser_selector.go's
// structure (parseSelectorList / parseComplexSelector / compound-selector
// loop) but producing internal/selector's own value types instead of
// css_ast nodes, and accepting `&` (TDelimAmpersand) wherever a compound
// selector is expected.
package selparse

import (
	"fmt"

	"github.com/gosass/selector/internal/css_lexer"
	"github.com/gosass/selector/internal/logger"
	"github.com/gosass/selector/internal/selector"
)

type parser struct {
	log    logger.Log
	source logger.Source
	tokens []css_lexer.Token
	index  int
}

func newParser(log logger.Log, source logger.Source) *parser {
	return &parser{
		log:    log,
		source: source,
		tokens: css_lexer.Tokenize(log, source),
	}
}

func (p *parser) current() css_lexer.Token {
	for p.index < len(p.tokens) {
		return p.tokens[p.index]
	}
	return css_lexer.Token{Kind: css_lexer.TEndOfFile}
}

func (p *parser) text(t css_lexer.Token) string {
	return t.DecodedText(p.source.Contents)
}

func (p *parser) advance() css_lexer.Token {
	t := p.current()
	if p.index < len(p.tokens) {
		p.index++
	}
	return t
}

func (p *parser) eat(kind css_lexer.T) bool {
	if p.current().Kind == kind {
		p.advance()
		return true
	}
	return false
}

func (p *parser) skipWhitespace() bool {
	return p.eat(css_lexer.TWhitespace)
}

func (p *parser) errorf(format string, args ...interface{}) error {
	text := fmt.Sprintf(format, args...)
	p.log.AddRangeError(&p.source, p.current().Range, text)
	return &selector.Error{Kind: selector.InvalidSelectorArgument, Text: text}
}

// ParseSelectorList parses a full comma-separated selector list, accepting
// `&` anywhere a compound selector may start (spec.md §6).
func ParseSelectorList(log logger.Log, source logger.Source) (*selector.List, error) {
	p := newParser(log, source)
	list, err := p.parseSelectorList()
	if err != nil {
		return nil, err
	}
	p.skipWhitespace()
	if p.current().Kind != css_lexer.TEndOfFile {
		return nil, p.errorf("Unexpected %s while parsing a selector list.", p.current().Kind.String())
	}
	return list, nil
}

// ParseCompoundSelector parses exactly one compound selector and nothing
// else (spec.md §6).
func ParseCompoundSelector(log logger.Log, source logger.Source) (selector.Compound, error) {
	p := newParser(log, source)
	p.skipWhitespace()
	c, err := p.parseCompoundSelector()
	if err != nil {
		return selector.Compound{}, err
	}
	p.skipWhitespace()
	if p.current().Kind != css_lexer.TEndOfFile {
		return selector.Compound{}, p.errorf("Unexpected %s while parsing a compound selector.", p.current().Kind.String())
	}
	return c, nil
}

// ParseSimpleSelector parses exactly one simple selector and nothing else
// (spec.md §6).
func ParseSimpleSelector(log logger.Log, source logger.Source) (selector.Simple, error) {
	p := newParser(log, source)
	p.skipWhitespace()
	s, err := p.parseSimpleSelector()
	if err != nil {
		return nil, err
	}
	p.skipWhitespace()
	if p.current().Kind != css_lexer.TEndOfFile {
		return nil, p.errorf("Unexpected %s while parsing a simple selector.", p.current().Kind.String())
	}
	return s, nil
}

func (p *parser) parseSelectorList() (*selector.List, error) {
	var complexes []selector.Complex
	for {
		p.skipWhitespace()
		c, err := p.parseComplexSelector()
		if err != nil {
			return nil, err
		}
		complexes = append(complexes, c)
		p.skipWhitespace()
		if !p.eat(css_lexer.TComma) {
			break
		}
	}
	return selector.NewList(complexes), nil
}

func (p *parser) parseComplexSelector() (selector.Complex, error) {
	precedingLinefeed := false
	leading := p.parseCombinators()

	var components []selector.Component
	for {
		p.skipWhitespace()
		if !p.startsCompoundSelector() {
			break
		}
		compound, err := p.parseCompoundSelector()
		if err != nil {
			return selector.Complex{}, err
		}
		sawSpace := p.skipWhitespace()
		combinators := p.parseCombinators()
		components = append(components, selector.Component{Compound: compound, Combinators: combinators})
		if len(combinators) == 0 && !sawSpace {
			break
		}
	}

	if len(components) == 0 {
		return selector.Complex{}, p.errorf("Expected selector but found %s.", p.current().Kind.String())
	}
	return selector.NewComplex(leading, components, precedingLinefeed), nil
}

// parseCombinators consumes zero or more combinator tokens, each optionally
// surrounded by whitespace; more than one is kept (rather than rejected) so
// the Useless classifier can flag malformed input later, per spec.md §3.
func (p *parser) parseCombinators() []selector.Combinator {
	var out []selector.Combinator
	for {
		p.skipWhitespace()
		switch p.current().Kind {
		case css_lexer.TDelimGreaterThan:
			p.advance()
			out = append(out, selector.Child)
		case css_lexer.TDelimPlus:
			p.advance()
			out = append(out, selector.NextSibling)
		case css_lexer.TDelimTilde:
			p.advance()
			out = append(out, selector.FollowingSibling)
		default:
			return out
		}
	}
}

// isPercentDelim reports whether the current token is the bare "%" that
// introduces a placeholder selector. The trimmed lexer has no dedicated
// token kind for it — "%" falls through to the generic TDelim kind — so
// the parser recognizes it by its decoded text instead.
func (p *parser) isPercentDelim() bool {
	t := p.current()
	return t.Kind == css_lexer.TDelim && p.text(t) == "%"
}

func (p *parser) startsCompoundSelector() bool {
	if p.isPercentDelim() {
		return true
	}
	switch p.current().Kind {
	case css_lexer.TIdent, css_lexer.TDelimAsterisk, css_lexer.THash, css_lexer.TDelimDot,
		css_lexer.TOpenBracket, css_lexer.TColon, css_lexer.TDelimAmpersand, css_lexer.TDelimBar:
		return true
	}
	return false
}

func (p *parser) parseCompoundSelector() (selector.Compound, error) {
	var simples []selector.Simple
	hasLeadingParent := false

	if p.current().Kind == css_lexer.TDelimAmpersand {
		p.advance()
		hasLeadingParent = true
	}

	for {
		if !p.startsSimpleSelectorNoAmpersand() {
			break
		}
		s, err := p.parseSimpleSelector()
		if err != nil {
			return selector.Compound{}, err
		}
		simples = append(simples, s)
	}

	return selector.NewCompound(simples, hasLeadingParent)
}

func (p *parser) startsSimpleSelectorNoAmpersand() bool {
	if p.isPercentDelim() {
		return true
	}
	switch p.current().Kind {
	case css_lexer.TIdent, css_lexer.TDelimAsterisk, css_lexer.THash, css_lexer.TDelimDot,
		css_lexer.TOpenBracket, css_lexer.TColon, css_lexer.TDelimBar:
		return true
	}
	return false
}

func (p *parser) parseSimpleSelector() (selector.Simple, error) {
	if p.current().Kind == css_lexer.TDelimAmpersand {
		return nil, p.errorf(`"&" may only appear at the start of a compound selector.`)
	}

	if p.isPercentDelim() {
		p.advance()
		if p.current().Kind != css_lexer.TIdent {
			return nil, p.errorf("Expected placeholder name after \"%%\".")
		}
		return selector.Placeholder{Name: p.text(p.advance())}, nil
	}

	switch p.current().Kind {
	case css_lexer.TIdent, css_lexer.TDelimAsterisk, css_lexer.TDelimBar:
		return p.parseTypeSelector()
	case css_lexer.THash:
		t := p.advance()
		return selector.Id{Name: p.text(t)}, nil
	case css_lexer.TDelimDot:
		p.advance()
		if p.current().Kind != css_lexer.TIdent {
			return nil, p.errorf("Expected class name after \".\".")
		}
		return selector.Class{Name: p.text(p.advance())}, nil
	case css_lexer.TOpenBracket:
		return p.parseAttributeSelector()
	case css_lexer.TColon:
		return p.parsePseudoSelector()
	}
	return nil, p.errorf("Unexpected %s while parsing a simple selector.", p.current().Kind.String())
}

func (p *parser) parseNamespacePrefix() (prefix string, hasNamespace bool, isUniversal bool, ok bool) {
	if p.current().Kind == css_lexer.TDelimBar {
		p.advance()
		return "", true, false, true
	}
	if p.current().Kind == css_lexer.TDelimAsterisk {
		save := p.index
		p.advance()
		if p.current().Kind == css_lexer.TDelimBar {
			p.advance()
			return "", true, true, true
		}
		p.index = save
		return "", false, false, false
	}
	if p.current().Kind == css_lexer.TIdent {
		save := p.index
		name := p.text(p.advance())
		// "name|=" is the dash-match operator, not a namespace prefix.
		dashMatch := p.index+1 < len(p.tokens) && p.tokens[p.index+1].Kind == css_lexer.TDelimEquals
		if p.current().Kind == css_lexer.TDelimBar && !dashMatch {
			p.advance()
			return name, true, false, true
		}
		p.index = save
	}
	return "", false, false, false
}

func (p *parser) parseTypeSelector() (selector.Type, error) {
	prefix, hasNamespace, isUniversal, hadPrefix := p.parseNamespacePrefix()
	switch p.current().Kind {
	case css_lexer.TIdent:
		name := p.text(p.advance())
		return selector.Type{Name: name, NamespacePrefix: prefix, HasNamespace: hasNamespace, NamespaceIsUniversal: isUniversal}, nil
	case css_lexer.TDelimAsterisk:
		p.advance()
		return selector.Type{Name: "*", NamespacePrefix: prefix, HasNamespace: hasNamespace, NamespaceIsUniversal: isUniversal}, nil
	}
	if hadPrefix {
		return selector.Type{}, p.errorf("Expected element name or \"*\" after namespace prefix.")
	}
	return selector.Type{}, p.errorf("Unexpected %s while parsing a type selector.", p.current().Kind.String())
}

func (p *parser) parseAttributeSelector() (selector.Attribute, error) {
	p.advance() // "["
	p.skipWhitespace()

	prefix, hasNamespace, _, _ := p.parseNamespacePrefix()
	if p.current().Kind != css_lexer.TIdent {
		return selector.Attribute{}, p.errorf("Expected attribute name.")
	}
	name := p.text(p.advance())
	p.skipWhitespace()

	attr := selector.Attribute{Name: name, NamespacePrefix: prefix, HasNamespace: hasNamespace}

	if op, ok := p.parseAttrOp(); ok {
		attr.Op = op
		p.skipWhitespace()
		switch p.current().Kind {
		case css_lexer.TString:
			attr.Value = p.text(p.advance())
		case css_lexer.TIdent:
			attr.Value = p.text(p.advance())
			attr.ValueIsIdentifier = true
		default:
			return selector.Attribute{}, p.errorf("Expected attribute value.")
		}
		p.skipWhitespace()
		if p.current().Kind == css_lexer.TIdent {
			modifier := p.text(p.advance())
			if modifier == "i" {
				attr.CaseModifier = selector.CaseModifierInsensitive
			} else if modifier == "s" {
				attr.CaseModifier = selector.CaseModifierSensitive
			}
			p.skipWhitespace()
		}
	}

	if !p.eat(css_lexer.TCloseBracket) {
		return selector.Attribute{}, p.errorf("Expected \"]\" to close attribute selector.")
	}
	return attr, nil
}

func (p *parser) parseAttrOp() (selector.AttrOp, bool) {
	switch p.current().Kind {
	case css_lexer.TDelimEquals:
		p.advance()
		return selector.AttrOpEqual, true
	case css_lexer.TDelimTilde:
		p.advance()
		if !p.eat(css_lexer.TDelimEquals) {
			return "", false
		}
		return selector.AttrOpIncludes, true
	case css_lexer.TDelimBar:
		p.advance()
		if !p.eat(css_lexer.TDelimEquals) {
			return "", false
		}
		return selector.AttrOpDashMatch, true
	case css_lexer.TDelimCaret:
		p.advance()
		if !p.eat(css_lexer.TDelimEquals) {
			return "", false
		}
		return selector.AttrOpPrefixMatch, true
	case css_lexer.TDelimDollar:
		p.advance()
		if !p.eat(css_lexer.TDelimEquals) {
			return "", false
		}
		return selector.AttrOpSuffixMatch, true
	case css_lexer.TDelimAsterisk:
		p.advance()
		if !p.eat(css_lexer.TDelimEquals) {
			return "", false
		}
		return selector.AttrOpSubstring, true
	}
	return "", false
}

// pseudoElementNames lists the handful of pseudo-elements Sass/CSS accepts
// with a single leading colon as well as two, matching common usage
// (`:before`, `:after`) alongside the standard double-colon form.
var pseudoElementNames = map[string]bool{
	"before": true, "after": true, "first-line": true, "first-letter": true,
}

func (p *parser) parsePseudoSelector() (selector.Pseudo, error) {
	p.advance() // first ":"
	kind := selector.PseudoClass
	if p.current().Kind == css_lexer.TColon {
		p.advance()
		kind = selector.PseudoElement
	}

	var name string
	var isFunction bool
	switch p.current().Kind {
	case css_lexer.TIdent:
		name = p.text(p.advance())
	case css_lexer.TFunction:
		name = p.text(p.advance())
		isFunction = true
	default:
		return selector.Pseudo{}, p.errorf("Expected pseudo-class or pseudo-element name.")
	}

	if kind == selector.PseudoClass && pseudoElementNames[name] {
		kind = selector.PseudoElement
	}

	if !isFunction {
		return selector.NewPseudo(name, kind, false, "", nil), nil
	}

	normalized := name
	p.skipWhitespace()
	if selectorListArgumentPseudo(normalized) {
		inner, err := p.parseSelectorList()
		if err != nil {
			return selector.Pseudo{}, err
		}
		p.skipWhitespace()
		if !p.eat(css_lexer.TCloseParen) {
			return selector.Pseudo{}, p.errorf("Expected \")\" to close %q.", name)
		}
		return selector.NewPseudo(name, kind, false, "", inner), nil
	}

	arg, err := p.parseRawPseudoArgument()
	if err != nil {
		return selector.Pseudo{}, err
	}
	if !p.eat(css_lexer.TCloseParen) {
		return selector.Pseudo{}, p.errorf("Expected \")\" to close %q.", name)
	}
	return selector.NewPseudo(name, kind, true, arg, nil), nil
}

// selectorListArgumentPseudo reports whether the argument of a functional
// pseudo-class should itself be parsed as a selector list rather than a raw
// string (e.g. `:nth-child(2n+1)`'s argument is not a selector).
func selectorListArgumentPseudo(normalizedName string) bool {
	switch normalizedName {
	case "not", "matches", "is", "where", "any", "has", "host-context", "slotted", "current":
		return true
	}
	return false
}

// parseRawPseudoArgument consumes tokens up to the matching close-paren as
// plain text, used for arguments like `:lang(en)` or `:nth-child(2n+1)`
// that this package has no reason to re-parse.
func (p *parser) parseRawPseudoArgument() (string, error) {
	start := p.current().Range.Loc.Start
	depth := 0
	for {
		switch p.current().Kind {
		case css_lexer.TEndOfFile:
			return "", p.errorf("Unterminated pseudo-class argument.")
		case css_lexer.TOpenParen:
			depth++
		case css_lexer.TCloseParen:
			if depth == 0 {
				end := p.current().Range.Loc.Start
				return p.source.Contents[start:end], nil
			}
			depth--
		}
		p.advance()
	}
}
