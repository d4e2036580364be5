package selector

// UnifyCompound produces a compound selector matching the intersection of x
// and y, or an error if that intersection is provably empty (spec.md §4.5).
// Simples are merged by kind: ids must agree, type selectors must agree (or
// one is universal), classes/pseudo-classes/attributes union, and at most
// one pseudo-element survives. The libsass-style `:not()` absorption
// supplement (SPEC_FULL.md §B.1 item 1) additionally rejects a compound
// that would require an element to both have and not have the same simple
// selector, e.g. unifying ".a" with ":not(.a)".
func UnifyCompound(x, y Compound) (Compound, error) {
	var typeSel *Type
	xt, xok := x.TypeSelector()
	yt, yok := y.TypeSelector()
	switch {
	case xok && yok:
		merged, ok := unifyTypeSelectors(xt, yt)
		if !ok {
			return Compound{}, newf(InvalidSelectorArgument, "%q and %q cannot unify: incompatible type selectors.", x.String(), y.String())
		}
		typeSel = &merged
	case xok:
		typeSel = &xt
	case yok:
		typeSel = &yt
	}

	var ids []Simple
	var classesAttrsPseudoClasses []Simple
	var pseudoElement *Pseudo

	addSimple := func(s Simple) error {
		switch v := s.(type) {
		case Type:
			return nil // handled above
		case Id:
			for _, existing := range ids {
				if e, ok := existing.(Id); ok && e.Name != v.Name {
					return newf(InvalidSelectorArgument, "%q and %q cannot unify: an element cannot have two ids.", e.String(), v.String())
				}
			}
			if !containsSimple(ids, v) {
				ids = append(ids, v)
			}
		case Pseudo:
			if v.Kind == PseudoElement {
				if pseudoElement != nil && !pseudoElement.Equal(v) {
					return newf(InvalidSelectorArgument, "%q and %q cannot unify: a compound selector may not contain more than one pseudo-element.", pseudoElement.String(), v.String())
				}
				pe := v
				pseudoElement = &pe
				return nil
			}
			if !containsSimple(classesAttrsPseudoClasses, v) {
				classesAttrsPseudoClasses = append(classesAttrsPseudoClasses, v)
			}
		default:
			if !containsSimple(classesAttrsPseudoClasses, v) {
				classesAttrsPseudoClasses = append(classesAttrsPseudoClasses, v)
			}
		}
		return nil
	}

	for _, s := range x.Simples {
		if err := addSimple(s); err != nil {
			return Compound{}, err
		}
	}
	for _, s := range y.Simples {
		if err := addSimple(s); err != nil {
			return Compound{}, err
		}
	}

	var simples []Simple
	if typeSel != nil {
		simples = append(simples, *typeSel)
	}
	simples = append(simples, ids...)
	simples = append(simples, classesAttrsPseudoClasses...)
	if pseudoElement != nil {
		simples = append(simples, *pseudoElement)
	}

	if err := checkNotAbsorption(simples); err != nil {
		return Compound{}, err
	}

	return NewCompound(simples, x.HasLeadingParent || y.HasLeadingParent)
}

func containsSimple(list []Simple, s Simple) bool {
	for _, o := range list {
		if o.Equal(s) {
			return true
		}
	}
	return false
}

func unifyTypeSelectors(x, y Type) (Type, bool) {
	if x.IsUniversal() {
		return y, true
	}
	if y.IsUniversal() {
		return x, true
	}
	if x.Name != y.Name {
		return Type{}, false
	}
	if x.HasNamespace && y.HasNamespace {
		if x.NamespaceIsUniversal {
			return y, true
		}
		if y.NamespaceIsUniversal {
			return x, true
		}
		if x.NamespacePrefix != y.NamespacePrefix {
			return Type{}, false
		}
	}
	if x.HasNamespace {
		return x, true
	}
	return y, true
}

// checkNotAbsorption rejects a merged simple list that contains a bare
// simple selector also named (alone) inside a `:not(...)` in the same list
// — an unsatisfiable contradiction like ".a:not(.a)" (SPEC_FULL.md §B.1
// item 1, grounded on libsass's unify-time `:not` absorption in
// original_source/src/ast_selectors.cpp).
func checkNotAbsorption(simples []Simple) error {
	for _, s := range simples {
		p, ok := s.(Pseudo)
		if !ok || p.Normalized != "not" || p.Inner == nil {
			continue
		}
		for _, complex := range p.Inner.Complexes {
			last, ok := complex.LastComponent()
			if !ok || len(last.Combinators) > 0 || len(last.Compound.Simples) != 1 {
				continue
			}
			negated := last.Compound.Simples[0]
			for _, other := range simples {
				if other.Equal(negated) {
					return newf(InvalidSelectorArgument, "%q contradicts %q: no element can match both.", negated.String(), p.String())
				}
			}
		}
	}
	return nil
}

// UnifyComplex unifies the base (last) compound of each input complex and
// weaves the remaining prefixes, appending the unified base to the last
// woven component (spec.md §4.5). It fails if any input ends in a
// combinator (its base is not a compound).
func UnifyComplex(complexes []Complex) (*List, error) {
	if len(complexes) == 0 {
		return NewList(nil), nil
	}
	if len(complexes) == 1 {
		return WrapComplex(complexes[0]), nil
	}

	bases := make([]Compound, len(complexes))
	prefixes := make([]Complex, len(complexes))
	for i, c := range complexes {
		last, ok := c.LastComponent()
		if !ok || len(last.Combinators) > 0 {
			return nil, newf(InvalidSelectorArgument, "%q cannot be unified: it does not end in a compound selector.", c.String())
		}
		bases[i] = last.Compound
		prefixes[i] = NewComplex(nil, c.Components[:len(c.Components)-1], false)
	}

	unifiedBase := bases[0]
	var err error
	for _, b := range bases[1:] {
		unifiedBase, err = UnifyCompound(unifiedBase, b)
		if err != nil {
			return nil, err
		}
	}

	nonEmptyPrefixes := make([]Complex, 0, len(prefixes))
	for _, p := range prefixes {
		if len(p.Components) > 0 {
			nonEmptyPrefixes = append(nonEmptyPrefixes, p)
		}
	}

	if len(nonEmptyPrefixes) == 0 {
		return WrapComplex(WrapCompound(nil, unifiedBase)), nil
	}

	woven, err := Weave(nonEmptyPrefixes)
	if err != nil {
		return nil, err
	}

	out := make([]Complex, len(woven))
	for i, w := range woven {
		out[i] = w.Concatenate(WrapCompound(nil, unifiedBase))
	}
	return NewList(out), nil
}

// UnifyList computes the Cartesian product of complex unifications across
// every list, dropping empty (failed) results (spec.md §4.5).
func UnifyList(lists []*List) (*List, error) {
	if len(lists) == 0 {
		return NewList(nil), nil
	}
	acc := lists[0].Complexes
	for _, next := range lists[1:] {
		var nextAcc []Complex
		for _, a := range acc {
			for _, b := range next.Complexes {
				unified, err := UnifyComplex([]Complex{a, b})
				if err != nil {
					continue
				}
				nextAcc = append(nextAcc, unified.Complexes...)
			}
		}
		acc = nextAcc
	}
	return NewList(acc), nil
}
