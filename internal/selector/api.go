package selector

// Unify is the pure two-list entry point named in spec.md §6: it unifies
// every pair of complexes drawn one from each list and returns the
// resulting list, or nil (never an empty list) if the intersection is
// unsatisfiable for every pair. Used directly by the `selector-unify`
// built-in.
func Unify(a, b *List) (*List, error) {
	result, err := UnifyList([]*List{a, b})
	if err != nil {
		return nil, err
	}
	if len(result.Complexes) == 0 {
		return nil, nil
	}
	return result, nil
}

// IsSuperselector is the pure entry point backing the `is-superselector`
// built-in (spec.md §6).
func IsSuperselector(super, sub *List) bool {
	return IsSuperselectorList(super, sub)
}

// SimpleSelectors returns the string form of every simple selector in a
// compound, backing the `simple-selectors()` built-in (spec.md §6).
func SimpleSelectors(c Compound) []string {
	out := make([]string, len(c.Simples))
	for i, s := range c.Simples {
		out[i] = s.String()
	}
	return out
}

// ExtendStatic is the one-shot equivalent of building a store with a single
// extension and rewriting selector once, backing the `selector-extend()`
// built-in (spec.md §6).
func ExtendStatic(target *List, extender *List, targetSimple Simple) (*List, error) {
	return extendStaticWithMode(target, extender, targetSimple, staticModeNormal)
}

// ReplaceStatic is ExtendStatic with Replace semantics, backing
// `selector-replace()`.
func ReplaceStatic(target *List, extender *List, targetSimple Simple) (*List, error) {
	return extendStaticWithMode(target, extender, targetSimple, staticModeReplace)
}

type staticMode uint8

const (
	staticModeNormal staticMode = iota
	staticModeReplace
)

// extendStaticWithMode rewrites target as if extender had been registered
// as an `@extend` of targetSimple, without any store bookkeeping: every
// component of every complex in target whose compound contains
// targetSimple is replaced by the union of itself (dropped under
// staticModeReplace) and the Cartesian unification with every complex in
// extender.
func extendStaticWithMode(target, extender *List, targetSimple Simple, mode staticMode) (*List, error) {
	var out []Complex
	for _, c := range target.Complexes {
		alts, err := extendComplexStatic(c, extender, targetSimple, mode)
		if err != nil {
			return nil, err
		}
		out = append(out, alts...)
	}
	return NewList(out), nil
}

func extendComplexStatic(c Complex, extender *List, targetSimple Simple, mode staticMode) ([]Complex, error) {
	alts, err := extendComponentsStatic(c.Components, extender, targetSimple, mode)
	if err != nil {
		return nil, err
	}
	out := make([]Complex, len(alts))
	for i, comps := range alts {
		out[i] = NewComplex(c.LeadingCombinators, comps, c.PrecedingLinefeed)
	}
	return out, nil
}

// extendComponentsStatic builds every alternative component sequence left to
// right the same way the live Store's extendComponents does: a fragment
// carrying its own ancestor prefix is woven (spec.md §4.6) against whatever
// ancestor chain precedes it instead of being concatenated directly, so a
// multi-compound extender produces every valid interleaving with the rest of
// target's ancestor chain.
func extendComponentsStatic(components []Component, extender *List, targetSimple Simple, mode staticMode) ([][]Component, error) {
	accum := [][]Component{{}}
	for _, comp := range components {
		fragments, _, err := extendComponentStatic(comp, extender, targetSimple, mode)
		if err != nil {
			return nil, err
		}

		var next [][]Component
		for _, prefix := range accum {
			for _, frag := range fragments {
				combos, err := weaveFragmentOntoPrefix(prefix, frag)
				if err != nil {
					continue
				}
				next = append(next, combos...)
			}
		}
		accum = next
	}
	return accum, nil
}

// weaveFragmentOntoPrefix splices frag (an extender's ancestor prefix, if
// any, followed by its fused anchor component) onto prefix, the ancestor
// chain already assembled for positions to frag's left — weaving the two
// together when both are non-empty rather than asserting one arbitrary
// concatenation order.
func weaveFragmentOntoPrefix(prefix, frag []Component) ([][]Component, error) {
	anchor := frag[len(frag)-1]
	fragPrefix := frag[:len(frag)-1]

	if len(prefix) == 0 || len(fragPrefix) == 0 {
		combined := append(append(append([]Component{}, prefix...), fragPrefix...), anchor)
		return [][]Component{combined}, nil
	}

	woven, err := Weave([]Complex{
		NewComplex(nil, prefix, false),
		NewComplex(nil, fragPrefix, false),
	})
	if err != nil {
		return nil, err
	}
	out := make([][]Component, len(woven))
	for i, w := range woven {
		out[i] = append(append([]Component{}, w.Components...), anchor)
	}
	return out, nil
}

func extendComponentStatic(comp Component, extender *List, targetSimple Simple, mode staticMode) ([][]Component, bool, error) {
	if !containsSimple(comp.Compound.Simples, targetSimple) {
		return [][]Component{{comp}}, false, nil
	}

	remainder := removeSimpleStatic(comp.Compound, targetSimple)
	var fragments [][]Component
	for _, ext := range extender.Complexes {
		last, ok := ext.LastComponent()
		if !ok || len(last.Combinators) > 0 {
			continue
		}
		unified, err := UnifyCompound(remainder, last.Compound)
		if err != nil {
			continue
		}
		prefix := ext.Components[:len(ext.Components)-1]
		fused := Component{Compound: unified, Combinators: comp.Combinators}
		frag := append(append([]Component{}, prefix...), fused)
		fragments = append(fragments, frag)
	}

	if mode == staticModeReplace && len(fragments) > 0 {
		return fragments, true, nil
	}
	return append([][]Component{{comp}}, fragments...), true, nil
}

func removeSimpleStatic(c Compound, target Simple) Compound {
	out := make([]Simple, 0, len(c.Simples))
	for _, s := range c.Simples {
		if !s.Equal(target) {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		// Every simple was the target: the empty remainder unifies to the
		// extender's own compound.
		return Compound{HasLeadingParent: c.HasLeadingParent}
	}
	result, err := NewCompound(out, c.HasLeadingParent)
	if err != nil {
		return c
	}
	return result
}
