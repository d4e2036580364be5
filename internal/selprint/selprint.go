// Package selprint serializes internal/selector values back to CSS text.
// It is the mirror image of internal/selparse: grounded on
// internal/css_printer's selector-printing section, but walking
// internal/selector's own types instead of css_ast nodes.
package selprint

import (
	"strings"

	"github.com/gosass/selector/internal/selector"
)

// Options controls the printed form. The zero value prints the
// "canonical", fully-spaced form suitable for debug output; set
// MinifyWhitespace for production CSS.
type Options struct {
	MinifyWhitespace bool

	// Indent is the number of spaces prepended to each line after a
	// comma when printing a SelectorList across multiple lines. A
	// value of 0 disables multi-line layout: every alternative is
	// printed on one line separated by ", ".
	Indent int
}

type printer struct {
	options Options
	sb      strings.Builder
}

// Print renders a SelectorList the way a `@media`-free rule's prelude would
// be emitted: comma-joined complex selectors, one per line when Indent > 0.
func Print(list *selector.List, options Options) string {
	p := &printer{options: options}
	p.printList(list)
	return p.sb.String()
}

// PrintCompound renders a single compound selector in isolation, e.g. for
// diagnostic messages that name one compound out of a larger selector.
func PrintCompound(c selector.Compound, options Options) string {
	p := &printer{options: options}
	p.printCompound(c, true)
	return p.sb.String()
}

// PrintComplex renders a single complex selector in isolation.
func PrintComplex(c selector.Complex, options Options) string {
	p := &printer{options: options}
	p.printComplex(c)
	return p.sb.String()
}

func (p *printer) printList(list *selector.List) {
	if list == nil {
		return
	}
	for i, complex := range list.Complexes {
		if i > 0 {
			p.printSeparator(i)
		}
		p.printComplex(complex)
	}
}

func (p *printer) printSeparator(index int) {
	if p.options.MinifyWhitespace {
		p.sb.WriteByte(',')
		return
	}
	if p.options.Indent > 0 {
		p.sb.WriteByte(',')
		p.sb.WriteByte('\n')
		p.sb.WriteString(strings.Repeat(" ", p.options.Indent))
	} else {
		p.sb.WriteString(", ")
	}
}

func (p *printer) printComplex(c selector.Complex) {
	for i, lc := range c.LeadingCombinators {
		if i > 0 {
			p.sb.WriteByte(' ')
		}
		p.sb.WriteString(lc.String())
	}
	if len(c.LeadingCombinators) > 0 && len(c.Components) > 0 {
		p.sb.WriteByte(' ')
	}
	for i, comp := range c.Components {
		p.printComponent(comp, i == 0)
	}
}

func (p *printer) printComponent(comp selector.Component, isFirst bool) {
	hasLeadingCombinator := false
	for i, combinator := range comp.Combinators {
		if i == 0 && !isFirst {
			if !p.options.MinifyWhitespace {
				p.sb.WriteByte(' ')
			}
		} else if i > 0 {
			p.sb.WriteByte(' ')
		}
		p.sb.WriteString(combinator.String())
		hasLeadingCombinator = true
	}
	if !isFirst && !hasLeadingCombinator {
		// Descendant combination: a bare space is the only separator.
		p.sb.WriteByte(' ')
	} else if hasLeadingCombinator && !p.options.MinifyWhitespace {
		p.sb.WriteByte(' ')
	}
	p.printCompound(comp.Compound, isFirst)
}

func (p *printer) printCompound(c selector.Compound, isFirst bool) {
	if c.HasLeadingParent {
		p.sb.WriteByte('&')
	}
	for _, simple := range c.Simples {
		p.printSimple(simple)
	}
}

func (p *printer) printSimple(s selector.Simple) {
	switch v := s.(type) {
	case selector.Pseudo:
		p.printPseudo(v)
	default:
		p.sb.WriteString(s.String())
	}
}

func (p *printer) printPseudo(pseudo selector.Pseudo) {
	if pseudo.Kind == selector.PseudoElement {
		p.sb.WriteString("::")
	} else {
		p.sb.WriteByte(':')
	}
	p.sb.WriteString(pseudo.Name)
	if pseudo.Inner != nil {
		p.sb.WriteByte('(')
		p.printList(pseudo.Inner)
		p.sb.WriteByte(')')
	} else if pseudo.HasArg {
		p.sb.WriteByte('(')
		p.sb.WriteString(pseudo.Arg)
		p.sb.WriteByte(')')
	}
}
