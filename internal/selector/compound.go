package selector

// Compound is an ordered sequence of Simple selectors (non-empty unless the
// compound is a bare `&`) that all
// apply to a single element, plus a flag recording whether it began with an
// explicit Sass parent reference (`&`). Invariants — at most one Type
// selector and it must be first; at most one pseudo-element and it must be
// last — are checked at construction by Validate (a supplement over the
// pattern in original_source/src/ast_selectors.cpp: the spec only requires
// the unifier to re-check this, but rejecting it as early as the parser does
// makes "::before::after" fail immediately instead of silently compiling).
// Duplicate simples that are provably redundant are not rejected here; that
// is the unifier's job (spec.md §3).
type Compound struct {
	Simples          []Simple
	HasLeadingParent bool
}

// NewCompound constructs a Compound and validates it immediately.
func NewCompound(simples []Simple, hasLeadingParent bool) (Compound, error) {
	c := Compound{Simples: simples, HasLeadingParent: hasLeadingParent}
	if err := c.Validate(); err != nil {
		return Compound{}, err
	}
	return c, nil
}

// Validate enforces the at-most-one-Type-first and pseudo-element-last
// invariants. It is called by the parser right after construction and again
// by the unifier on every compound it produces, since unification can create
// compounds the parser never saw.
func (c Compound) Validate() error {
	if len(c.Simples) == 0 && !c.HasLeadingParent {
		return &Error{Kind: InvalidSelectorArgument, Text: "A compound selector may not be empty."}
	}
	sawType := false
	for i, s := range c.Simples {
		if _, ok := s.(Type); ok {
			if sawType {
				return &Error{Kind: InvalidSelectorArgument, Text: "A compound selector may not contain more than one type selector."}
			}
			if i != 0 {
				return &Error{Kind: InvalidSelectorArgument, Text: "A type selector must come first in a compound selector."}
			}
			sawType = true
		}
	}
	pseudoElementIndex := -1
	for i, s := range c.Simples {
		if p, ok := s.(Pseudo); ok && p.Kind == PseudoElement {
			if pseudoElementIndex != -1 {
				return &Error{Kind: InvalidSelectorArgument, Text: "A compound selector may not contain more than one pseudo-element."}
			}
			pseudoElementIndex = i
		}
	}
	if pseudoElementIndex != -1 && pseudoElementIndex != len(c.Simples)-1 {
		return &Error{Kind: InvalidSelectorArgument, Text: "A pseudo-element must be the last simple selector in a compound selector."}
	}
	return nil
}

// Equal reports structural equality: compounds are equal iff they contain
// the same multiset of simples (order-insensitive, spec.md §4.2) and agree
// on HasLeadingParent.
func (c Compound) Equal(other Compound) bool {
	if c.HasLeadingParent != other.HasLeadingParent || len(c.Simples) != len(other.Simples) {
		return false
	}
	used := make([]bool, len(other.Simples))
	for _, s := range c.Simples {
		found := false
		for i, o := range other.Simples {
			if !used[i] && s.Equal(o) {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Hash is order-insensitive: it sums the per-simple hashes instead of
// folding them in sequence, so that two compounds differing only in simple
// order hash identically (spec.md §4.2).
func (c Compound) Hash() uint32 {
	var sum uint32 = 17
	for _, s := range c.Simples {
		sum += s.Hash()
	}
	if c.HasLeadingParent {
		sum += 0x9e3779b9
	}
	return sum
}

// Less is a total order consistent with Equal, used only to get
// deterministic iteration order — never semantic meaning.
func (c Compound) Less(other Compound) bool {
	if len(c.Simples) != len(other.Simples) {
		return len(c.Simples) < len(other.Simples)
	}
	for i := range c.Simples {
		if cmp := compareSimple(c.Simples[i], other.Simples[i]); cmp != 0 {
			return cmp < 0
		}
	}
	return !c.HasLeadingParent && other.HasLeadingParent
}

func simpleKindRank(s Simple) int {
	switch s.(type) {
	case Type:
		return 0
	case Id:
		return 1
	case Class:
		return 2
	case Placeholder:
		return 3
	case Attribute:
		return 4
	case Pseudo:
		return 5
	default:
		return 6
	}
}

func compareSimple(a, b Simple) int {
	ra, rb := simpleKindRank(a), simpleKindRank(b)
	if ra != rb {
		return ra - rb
	}
	as, bs := a.String(), b.String()
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	default:
		return 0
	}
}

func (c Compound) String() string {
	s := ""
	if c.HasLeadingParent {
		s += "&"
	}
	for _, simple := range c.Simples {
		s += simple.String()
	}
	return s
}

// HasPlaceholder reports whether any simple in this compound is a
// Placeholder, used by the top-level Invisible classifier.
func (c Compound) HasPlaceholder() bool {
	for _, s := range c.Simples {
		if _, ok := s.(Placeholder); ok {
			return true
		}
	}
	return false
}

// PseudoElement returns the compound's pseudo-element simple, if any.
func (c Compound) PseudoElement() (Pseudo, bool) {
	if len(c.Simples) > 0 {
		if p, ok := c.Simples[len(c.Simples)-1].(Pseudo); ok && p.Kind == PseudoElement {
			return p, true
		}
	}
	return Pseudo{}, false
}

// TypeSelector returns the compound's leading type selector, if any.
func (c Compound) TypeSelector() (Type, bool) {
	if len(c.Simples) > 0 {
		if t, ok := c.Simples[0].(Type); ok {
			return t, true
		}
	}
	return Type{}, false
}

// Specificity returns this compound's contribution to the (id, class, type)
// specificity triple: universal `*` contributes 0, placeholders contribute
// like a class.
func (c Compound) Specificity() (ids, classes, types uint32) {
	for _, s := range c.Simples {
		switch v := s.(type) {
		case Id:
			ids++
		case Class, Placeholder, Attribute:
			classes++
		case Pseudo:
			if v.Kind == PseudoElement {
				types++
			} else {
				classes++
			}
		case Type:
			if !v.IsUniversal() {
				types++
			}
		}
	}
	return
}

