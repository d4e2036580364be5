package extend

import (
	"github.com/gosass/selector/internal/selector"
)

// extendListNow rewrites every complex in list against the extensions
// currently registered, then trims the result (spec.md §4.7 ops 3-4).
func (s *Store) extendListNow(list *selector.List, media *selector.MediaContext) (*selector.List, error) {
	var out []selector.Complex
	changed := false
	for _, c := range list.Complexes {
		rewritten, err := s.extendComplex(c, media)
		if err != nil {
			return nil, err
		}
		if len(rewritten.Complexes) != 1 || !rewritten.Complexes[0].Equal(c) {
			changed = true
		}
		out = append(out, rewritten.Complexes...)
	}
	if !changed {
		return list, nil
	}
	return s.trim(selector.NewList(out)), nil
}

// extendComplex rewrites a single complex selector by substituting, at
// every component position, the union of that component's own compound
// with every applicable extender (spec.md §4.7 op 3). Positions are
// expanded independently and cross-producted, mirroring the Cartesian
// construction in parent.go's resolveComponentsParents.
func (s *Store) extendComplex(c selector.Complex, media *selector.MediaContext) (*selector.List, error) {
	alts, err := s.extendComponents(c.Components, media, complexKey(c))
	if err != nil {
		return nil, err
	}
	out := make([]selector.Complex, len(alts))
	for i, comps := range alts {
		out[i] = selector.NewComplex(c.LeadingCombinators, comps, c.PrecedingLinefeed)
	}
	if len(out) > endlessExtendBound {
		return nil, &selector.Error{Kind: selector.EndlessExtend, Text: "Extend cascade did not terminate: too many alternatives were produced for a single selector."}
	}
	return selector.NewList(out), nil
}

// extendComponents builds every alternative component sequence for the
// whole complex by walking left to right and, at each position, substituting
// the position's own fragments (spec.md §4.7 op 3's `extendCompound`) in
// front of whatever ancestor chain has already been assembled. A fragment
// that carries its own ancestor prefix (an extender with more than one
// compound) is not simply concatenated onto that chain: it is woven (spec.md
// §4.6) against it, so the extender's ancestors and the target's own
// preceding ancestors produce every valid interleaving instead of asserting
// one arbitrary order.
func (s *Store) extendComponents(components []selector.Component, media *selector.MediaContext, originComplexKey string) ([][]selector.Component, error) {
	accum := [][]selector.Component{{}}
	for _, comp := range components {
		fragments, err := s.extendComponent(comp, media)
		if err != nil {
			return nil, err
		}

		var next [][]selector.Component
		for _, prefix := range accum {
			for _, frag := range fragments {
				combos, err := weaveFragmentOntoPrefix(prefix, frag)
				if err != nil {
					// This particular interleaving is infeasible (e.g. an
					// incompatible combinator at the weave boundary); drop
					// it the same way an unsatisfiable unification is
					// dropped elsewhere in this package, rather than
					// failing the whole rewrite.
					continue
				}
				next = append(next, combos...)
			}
			if len(next) > endlessExtendBound {
				return nil, &selector.Error{Kind: selector.EndlessExtend, Text: "Extend cascade did not terminate for " + originComplexKey + "."}
			}
		}
		accum = next
	}
	return accum, nil
}

// weaveFragmentOntoPrefix splices frag (an extender's ancestor prefix, if
// any, followed by the fused component at frag's end) onto prefix (the
// ancestor chain already assembled for positions to frag's left). When
// either side has nothing to weave — no accumulated prefix yet, or frag has
// no ancestor prefix of its own — this is a plain concatenation; otherwise
// every valid Weave interleaving is returned, each followed by frag's fused
// anchor component.
func weaveFragmentOntoPrefix(prefix, frag []selector.Component) ([][]selector.Component, error) {
	anchor := frag[len(frag)-1]
	fragPrefix := frag[:len(frag)-1]

	if len(prefix) == 0 || len(fragPrefix) == 0 {
		combined := append(append(append([]selector.Component{}, prefix...), fragPrefix...), anchor)
		return [][]selector.Component{combined}, nil
	}

	woven, err := selector.Weave([]selector.Complex{
		selector.NewComplex(nil, prefix, false),
		selector.NewComplex(nil, fragPrefix, false),
	})
	if err != nil {
		return nil, err
	}
	out := make([][]selector.Component, len(woven))
	for i, w := range woven {
		out[i] = append(append([]selector.Component{}, w.Components...), anchor)
	}
	return out, nil
}

// extendComponent returns every alternative component-sequence fragment
// that may stand in for comp: the original unchanged, plus one fragment per
// extension applicable to a simple selector comp's compound contains
// (spec.md §4.7 op 3's `extendCompound`).
func (s *Store) extendComponent(comp selector.Component, media *selector.MediaContext) ([][]selector.Component, error) {
	applicable := s.applicableExtensions(comp.Compound)
	if len(applicable) == 0 {
		return [][]selector.Component{{comp}}, nil
	}

	var fragments [][]selector.Component
	matchedAllTargets := true

	for _, ext := range applicable {
		if !ext.Media.Compatible(media) {
			if !ext.IsOptional {
				return nil, &selector.Error{Kind: selector.ExtendAcrossMedia, Text: "You may not @extend selectors across media queries."}
			}
			matchedAllTargets = false
			continue
		}

		remainder := removeSimple(comp.Compound, ext.Target)
		extLast, ok := ext.Extender.LastComponent()
		if !ok || len(extLast.Combinators) > 0 {
			continue // extender doesn't end in a compound; cannot unify
		}
		extPrefix := ext.Extender.Components[:len(ext.Extender.Components)-1]
		unifiedBase, err := selector.UnifyCompound(remainder, extLast.Compound)
		if err != nil {
			continue // unification failed: this alternative is unsatisfiable, drop it
		}

		fused := selector.Component{Compound: unifiedBase, Combinators: comp.Combinators}
		if len(extPrefix) == 0 {
			fragments = append(fragments, []selector.Component{fused})
		} else {
			frag := append(append([]selector.Component{}, extPrefix...), fused)
			fragments = append(fragments, frag)
		}
	}

	switch s.mode {
	case Replace:
		if len(fragments) == 0 {
			return [][]selector.Component{{comp}}, nil
		}
		return fragments, nil
	case Targets:
		if matchedAllTargets && len(fragments) > 0 {
			return fragments, nil
		}
		return append([][]selector.Component{{comp}}, fragments...), nil
	default: // Normal
		return append([][]selector.Component{{comp}}, fragments...), nil
	}
}

// applicableExtensions returns every registered Extension whose target
// simple appears in compound, deduplicated by extender and target so the
// same extension reached twice through the index isn't counted twice.
func (s *Store) applicableExtensions(compound selector.Compound) []Extension {
	seen := make(map[string]bool)
	var out []Extension
	for _, simple := range compound.Simples {
		for _, ext := range s.byTarget[simpleKey(simple)] {
			k := complexKey(ext.Extender) + "|" + simpleKey(ext.Target)
			if seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, ext)
		}
	}
	return out
}

func removeSimple(compound selector.Compound, target selector.Simple) selector.Compound {
	out := make([]selector.Simple, 0, len(compound.Simples))
	for _, s := range compound.Simples {
		if s.Equal(target) {
			continue
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		// Every simple was the target: the empty remainder unifies to the
		// extender's own compound.
		return selector.Compound{HasLeadingParent: compound.HasLeadingParent}
	}
	c, err := selector.NewCompound(out, compound.HasLeadingParent)
	if err != nil {
		// Removing a simple never reintroduces a validation failure the
		// original compound didn't already have; fall back to the
		// original simples if validation fails anyway.
		return compound
	}
	return c
}
