package selector

// WrapSimple wraps a single simple selector into a singleton compound — the
// first rung of the "wrap" ladder spec.md §4.1 names as the only entry
// points by which outer layers (the parser, built-ins) compose selectors
// bottom-up.
func WrapSimple(s Simple) Compound {
	c, err := NewCompound([]Simple{s}, false)
	if err != nil {
		// A single simple selector can never fail Validate: the only
		// failure modes are "empty" and "more than one type/pseudo-element".
		panic(err)
	}
	return c
}

// WrapCompound wraps a compound into a single-component complex with the
// given leading combinators.
func WrapCompound(leading []Combinator, c Compound) Complex {
	return NewComplex(leading, []Component{{Compound: c}}, false)
}

// WrapComplex wraps a single complex selector into a one-element list.
func WrapComplex(c Complex) *List {
	return NewList([]Complex{c})
}
