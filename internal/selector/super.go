package selector

// IsSuperselectorList reports whether every complex in sub is covered by
// some complex in super — i.e. super matches every element sub matches
// (spec.md §4.4).
func IsSuperselectorList(super, sub *List) bool {
	if sub == nil {
		return true
	}
	if super == nil {
		return false
	}
	for _, subComplex := range sub.Complexes {
		covered := false
		for _, superComplex := range super.Complexes {
			if IsSuperselectorComplex(superComplex, subComplex) {
				covered = true
				break
			}
		}
		if !covered {
			return false
		}
	}
	return true
}

// IsSuperselectorComplex walks both component sequences left to right: at
// each step super's current component must "span" zero or more of sub's
// leading components (its compound is a compound-superselector of sub's
// compound and the combinators between them are compatible), then both
// advance. super is rejected if it's longer than what it can match, and
// super's last component must match sub's last component (spec.md §4.4).
func IsSuperselectorComplex(super, sub Complex) bool {
	if len(super.Components) == 0 {
		return true
	}
	return matchComplexSuffix(super.Components, sub.Components, false)
}

func matchComplexSuffix(superComps, subComps []Component, pinned bool) bool {
	if len(superComps) == 0 {
		return len(subComps) == 0
	}
	if len(subComps) == 0 {
		return false
	}

	superHead := superComps[0]
	superTrailing, superHas := trailingCombinator(superHead)

	// Try every possible split point in subComps where superHead could
	// match. A descendant combinator (superHas==false) lets sub's
	// components before the match point be skipped over; a real
	// combinator pins the match to the immediately adjacent position.
	for i := 0; i < len(subComps); i++ {
		if pinned && i > 0 {
			break
		}
		if !IsSuperselectorCompound(superHead.Compound, subComps[i].Compound) {
			continue
		}
		if !superHas {
			if matchComplexSuffix(superComps[1:], subComps[i+1:], false) {
				return true
			}
			continue
		}
		subTrailing, subHas := trailingCombinator(subComps[i])
		if !combinatorsCompatible(superTrailing, subTrailing, subHas) {
			continue
		}
		if matchComplexSuffix(superComps[1:], subComps[i+1:], true) {
			return true
		}
	}
	return false
}

func trailingCombinator(comp Component) (Combinator, bool) {
	if len(comp.Combinators) == 0 {
		return 0, false
	}
	return comp.Combinators[len(comp.Combinators)-1], true
}

// combinatorsCompatible implements spec.md §4.4's compatibility table for a
// non-descendant super combinator: child requires an adjacent child match;
// next-sibling requires next-sibling; following-sibling accepts either
// following-sibling or next-sibling in sub.
func combinatorsCompatible(superC, subC Combinator, subHas bool) bool {
	if !subHas {
		return false
	}
	switch superC {
	case Child:
		return subC == Child
	case NextSibling:
		return subC == NextSibling
	case FollowingSibling:
		return subC == FollowingSibling || subC == NextSibling
	default:
		return false
	}
}

// IsSuperselectorCompound reports whether every simple in super is a
// superselector of some simple in sub, and sub does not carry a
// pseudo-element that super lacks (spec.md §4.4).
func IsSuperselectorCompound(super, sub Compound) bool {
	if superPE, ok := super.PseudoElement(); ok {
		subPE, ok := sub.PseudoElement()
		if !ok || !superPE.Equal(subPE) {
			return false
		}
	} else if _, ok := sub.PseudoElement(); ok {
		return false
	}

	for _, s := range super.Simples {
		matched := false
		for _, o := range sub.Simples {
			if IsSuperselectorSimple(s, o) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

// IsSuperselectorSimple reports whether simple selector super matches
// everything sub matches (spec.md §4.4).
func IsSuperselectorSimple(super, sub Simple) bool {
	switch s := super.(type) {
	case Type:
		if s.IsUniversal() {
			return true
		}
		o, ok := sub.(Type)
		return ok && o == s
	case Id, Class, Placeholder, Attribute:
		return super.Equal(sub)
	case Pseudo:
		return isSuperselectorPseudo(s, sub)
	default:
		return super.Equal(sub)
	}
}

func isSuperselectorPseudo(super Pseudo, sub Simple) bool {
	if super.Inner == nil {
		return super.Equal(sub)
	}
	switch super.Normalized {
	case "not":
		// :not(X) is a superselector of Y iff no member of X is a
		// subselector of Y, i.e. Y is not a superselector-covered
		// complex of any alternative in X. We treat sub itself as a
		// one-simple compound wrapped in a trivial complex.
		subCompound := WrapSimple(sub)
		for _, x := range super.Inner.Complexes {
			last, ok := x.LastComponent()
			if ok && len(last.Combinators) == 0 && IsSuperselectorCompound(last.Compound, subCompound) {
				return false
			}
		}
		return true
	default:
		if relevantInnerListNames[super.Normalized] || pseudoElementLikeInnerListNames[super.Normalized] {
			o, ok := sub.(Pseudo)
			if !ok || o.Normalized != super.Normalized {
				return false
			}
			return IsSuperselectorList(super.Inner, o.Inner)
		}
		return super.Equal(sub)
	}
}
