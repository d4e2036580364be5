package selector

import "strings"

// Component is a CompoundSelector paired with the ordered list of
// Combinators that follow it. The list is usually zero or one element long;
// more than one is tracked only for interop with malformed input (spec.md
// §3), and is what the Useless classifier flags.
type Component struct {
	Compound    Compound
	Combinators []Combinator
}

func (comp Component) Equal(other Component) bool {
	if !comp.Compound.Equal(other.Compound) || len(comp.Combinators) != len(other.Combinators) {
		return false
	}
	for i := range comp.Combinators {
		if comp.Combinators[i] != other.Combinators[i] {
			return false
		}
	}
	return true
}

func (comp Component) Hash() uint32 {
	h := comp.Compound.Hash()
	for _, c := range comp.Combinators {
		h = h*31 + uint32(c) + 1
	}
	return h
}

func (comp Component) String() string {
	s := comp.Compound.String()
	for _, c := range comp.Combinators {
		s += " " + c.String()
	}
	return s
}

// Specificity is the (id, class, type) triple. It is cached on construction
// (NewComplex) since selectors are immutable and recomputing it on every
// comparison would be wasted work — a legitimate invalidations-are-impossible
// cache per spec.md §9.
type Specificity struct {
	IDs, Classes, Types uint32
}

func (s Specificity) Compare(o Specificity) int {
	if s.IDs != o.IDs {
		if s.IDs > o.IDs {
			return 1
		}
		return -1
	}
	if s.Classes != o.Classes {
		if s.Classes > o.Classes {
			return 1
		}
		return -1
	}
	if s.Types != o.Types {
		if s.Types > o.Types {
			return 1
		}
		return -1
	}
	return 0
}

// Complex is an ordered sequence of leading Combinators (usually empty)
// followed by a non-empty sequence of Components, plus a presentation-only
// "preceding linefeed" flag. Specificity and its min/max bounds are computed
// once at construction and memoised, per spec.md §3.
type Complex struct {
	LeadingCombinators []Combinator
	Components         []Component
	PrecedingLinefeed  bool

	specificity   Specificity
	minSpecificity Specificity
	hasMin         bool
}

// NewComplex constructs a Complex and computes its cached specificity.
// minSpecificity defaults to the selector's own specificity; callers that
// introduce a selector via extension should use WithMinSpecificity to record
// the extender's lower original specificity (spec.md §3, §9 Open Question 3).
func NewComplex(leading []Combinator, components []Component, precedingLinefeed bool) Complex {
	c := Complex{LeadingCombinators: leading, Components: components, PrecedingLinefeed: precedingLinefeed}
	c.specificity = c.computeSpecificity()
	c.minSpecificity = c.specificity
	return c
}

func (c Complex) computeSpecificity() Specificity {
	var s Specificity
	for _, comp := range c.Components {
		ids, classes, types := comp.Compound.Specificity()
		s.IDs += ids
		s.Classes += classes
		s.Types += types
	}
	return s
}

// MaxSpecificity equals the selector's own computed specificity (spec.md
// §3/§9 Open Question 3).
func (c Complex) MaxSpecificity() Specificity { return c.specificity }

// MinSpecificity is normally equal to MaxSpecificity; for selectors produced
// by extension it may be lower, recording the extender's original
// specificity as the bound trimming must respect.
func (c Complex) MinSpecificity() Specificity {
	if c.hasMin {
		return c.minSpecificity
	}
	return c.specificity
}

// WithMinSpecificity returns a copy of c with an explicit lower specificity
// bound, used by the extension store when a rewritten complex's true
// matching power is bounded below by the extender that produced it.
func (c Complex) WithMinSpecificity(min Specificity) Complex {
	c.minSpecificity = min
	c.hasMin = true
	return c
}

// Equal reports structural equality: leading combinator lists must be equal
// and component lists element-wise equal (spec.md §4.2 — order matters for
// complex selectors, unlike compounds and lists).
func (c Complex) Equal(other Complex) bool {
	if len(c.LeadingCombinators) != len(other.LeadingCombinators) || len(c.Components) != len(other.Components) {
		return false
	}
	for i := range c.LeadingCombinators {
		if c.LeadingCombinators[i] != other.LeadingCombinators[i] {
			return false
		}
	}
	for i := range c.Components {
		if !c.Components[i].Equal(other.Components[i]) {
			return false
		}
	}
	return true
}

func (c Complex) Hash() uint32 {
	h := uint32(23)
	for _, lc := range c.LeadingCombinators {
		h = h*31 + uint32(lc) + 1
	}
	for _, comp := range c.Components {
		h = h*31 + comp.Hash()
	}
	return h
}

// Less is a total order used only for deterministic iteration.
func (c Complex) Less(other Complex) bool {
	if len(c.LeadingCombinators) != len(other.LeadingCombinators) {
		return len(c.LeadingCombinators) < len(other.LeadingCombinators)
	}
	if len(c.Components) != len(other.Components) {
		return len(c.Components) < len(other.Components)
	}
	return c.String() < other.String()
}

func (c Complex) String() string {
	var sb strings.Builder
	for i, lc := range c.LeadingCombinators {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(lc.String())
	}
	if len(c.LeadingCombinators) > 0 && len(c.Components) > 0 {
		sb.WriteByte(' ')
	}
	for i, comp := range c.Components {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(comp.String())
	}
	return sb.String()
}

// LastComponent returns the final component, used throughout the unifier and
// weaver to find a complex's "base" compound.
func (c Complex) LastComponent() (Component, bool) {
	if len(c.Components) == 0 {
		return Component{}, false
	}
	return c.Components[len(c.Components)-1], true
}

// EndsInCombinator reports whether the last component carries a trailing
// combinator with nothing following it — one of the ways a complex selector
// is Bogus (spec.md §3).
func (c Complex) EndsInCombinator() bool {
	last, ok := c.LastComponent()
	return ok && len(last.Combinators) > 0
}

// Concatenate returns a new Complex formed by appending other's components
// (and, if c is empty, other's leading combinators) after c's — the
// constructor mutation named in spec.md §4.1.
func (c Complex) Concatenate(other Complex) Complex {
	leading := c.LeadingCombinators
	components := append(append([]Component{}, c.Components...), other.Components...)
	if len(c.Components) == 0 {
		leading = append(append([]Combinator{}, c.LeadingCombinators...), other.LeadingCombinators...)
	}
	return NewComplex(leading, components, c.PrecedingLinefeed)
}

// WithAdditionalCombinators returns a copy of c with extra trailing
// combinators appended to its last component.
func (c Complex) WithAdditionalCombinators(extra []Combinator) Complex {
	if len(c.Components) == 0 || len(extra) == 0 {
		return c
	}
	components := append([]Component{}, c.Components...)
	last := components[len(components)-1]
	last.Combinators = append(append([]Combinator{}, last.Combinators...), extra...)
	components[len(components)-1] = last
	return NewComplex(c.LeadingCombinators, components, c.PrecedingLinefeed)
}

// HasAnyExplicitParent reports whether any compound in this complex begins
// with an explicit `&`, recursing into pseudo inner lists.
func (c Complex) HasAnyExplicitParent() bool {
	for _, comp := range c.Components {
		if comp.Compound.HasLeadingParent {
			return true
		}
		for _, s := range comp.Compound.Simples {
			if p, ok := s.(Pseudo); ok && p.Inner != nil && p.Inner.HasAnyExplicitParent() {
				return true
			}
		}
	}
	return false
}

// IsUseless reports whether this complex's structure cannot sensibly match
// anything: its leading-combinator list has length > 1, or any component
// carries more than one combinator (spec.md §3).
func (c Complex) IsUseless() bool {
	if len(c.LeadingCombinators) > 1 {
		return true
	}
	for _, comp := range c.Components {
		if len(comp.Combinators) > 1 {
			return true
		}
	}
	return false
}

// IsBogusStrict reports whether this complex is Useless, ends in a
// combinator, or contains a bogus `:has(...)`-style pseudo (spec.md §3).
func (c Complex) IsBogusStrict() bool {
	if c.IsUseless() || c.EndsInCombinator() {
		return true
	}
	for _, comp := range c.Components {
		for _, s := range comp.Compound.Simples {
			if p, ok := s.(Pseudo); ok && p.Inner != nil {
				for _, inner := range p.Inner.Complexes {
					if inner.IsBogusStrict() {
						return true
					}
				}
			}
		}
	}
	return false
}

// IsBogusLenient is the same test but does not recurse into pseudo inner
// lists, matching callers that only care about this complex's own shape.
func (c Complex) IsBogusLenient() bool {
	return c.IsUseless() || c.EndsInCombinator()
}

// IsInvisible reports whether this complex contains a placeholder at top
// level not behind `:not(...)` (spec.md §3).
func (c Complex) IsInvisible() bool {
	for _, comp := range c.Components {
		for _, s := range comp.Compound.Simples {
			if _, ok := s.(Placeholder); ok {
				return true
			}
		}
	}
	return false
}
