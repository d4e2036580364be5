package selector

import "fmt"

// ResolveParents expands every `&` reference in child against parent,
// producing a fully-resolved list with no parent references left (spec.md
// §4.3). parent may be nil, meaning "no enclosing rule" — a `&` anywhere in
// child is then a TopLevelParent error.
//
// Grounded on the substitution shape of
// _examples/evanw-esbuild/internal/css_parser/css_nesting.go's
// substituteAmpersandsInCompoundSelector: fuse when the parent's trailing
// compound and the child's leading compound are both adjacent type
// selectors, otherwise concatenate, and recurse into pseudo inner lists.
func ResolveParents(child *List, parent *List, implicitParent bool) (*List, error) {
	if child == nil {
		return nil, nil
	}
	var resolved []Complex
	for _, c := range child.Complexes {
		alts, err := resolveComplexParents(c, parent, implicitParent)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, alts...)
	}
	return NewList(resolved), nil
}

func resolveComplexParents(c Complex, parent *List, implicitParent bool) ([]Complex, error) {
	if !c.HasAnyExplicitParent() {
		if implicitParent && parent != nil {
			out := make([]Complex, 0, len(parent.Complexes))
			for _, p := range parent.Complexes {
				out = append(out, p.Concatenate(c))
			}
			return out, nil
		}
		return []Complex{c}, nil
	}

	if parent == nil {
		return nil, &Error{Kind: TopLevelParent, Text: `Top-level selectors may not contain the parent selector "&".`}
	}

	componentAlts, err := resolveComponentsParents(c.Components, parent, implicitParent)
	if err != nil {
		return nil, err
	}
	out := make([]Complex, len(componentAlts))
	for i, comps := range componentAlts {
		out[i] = NewComplex(c.LeadingCombinators, comps, c.PrecedingLinefeed)
	}
	return out, nil
}

// resolveComponentsParents recursively expands components[0:], returning
// every alternative full component sequence obtained by substituting each
// component whose compound has a leading `&` with the Cartesian product of
// parent alternatives (spec.md §4.3 step 5).
func resolveComponentsParents(components []Component, parent *List, implicitParent bool) ([][]Component, error) {
	if len(components) == 0 {
		return [][]Component{{}}, nil
	}
	head, rest := components[0], components[1:]
	restAlts, err := resolveComponentsParents(rest, parent, implicitParent)
	if err != nil {
		return nil, err
	}

	if !head.Compound.HasLeadingParent {
		resolvedCompound, err := resolveCompoundPseudoParents(head.Compound, parent, implicitParent)
		if err != nil {
			return nil, err
		}
		newHead := Component{Compound: resolvedCompound, Combinators: head.Combinators}
		out := make([][]Component, len(restAlts))
		for i, ra := range restAlts {
			out[i] = append([]Component{newHead}, ra...)
		}
		return out, nil
	}

	var out [][]Component
	for _, p := range parent.Complexes {
		fusedPrefix, fused, err := fuseParentIntoComponent(p, head)
		if err != nil {
			return nil, err
		}
		for _, ra := range restAlts {
			full := append(append(append([]Component{}, fusedPrefix...), fused), ra...)
			out = append(out, full)
		}
	}
	return out, nil
}

// fuseParentIntoComponent splices parent complex p in place of a component
// whose compound begins with an explicit `&`. It returns the parent's
// leading components unchanged (fusedPrefix) and a single fused component
// carrying the parent's trailing compound merged with the child compound's
// remaining simples, plus the child component's own trailing combinators
// (spec.md §4.3 step 2).
func fuseParentIntoComponent(p Complex, child Component) (fusedPrefix []Component, fused Component, err error) {
	if len(p.Components) == 0 {
		return nil, Component{}, &Error{Kind: InvalidParent, Text: "The parent selector has no components to fuse."}
	}
	last := p.Components[len(p.Components)-1]
	if len(last.Combinators) > 0 {
		return nil, Component{}, &Error{Kind: InvalidParent, Text: fmt.Sprintf(
			`Can't append %q to %q.`, child.Compound.String(), p.String())}
	}

	fusedSimples := fuseCompoundSimples(last.Compound, child.Compound)
	fusedCompound, err := NewCompound(fusedSimples, false)
	if err != nil {
		return nil, Component{}, err
	}
	fused = Component{Compound: fusedCompound, Combinators: child.Combinators}
	return append([]Component{}, p.Components[:len(p.Components)-1]...), fused, nil
}

// fuseCompoundSimples merges the parent's last compound with the child's
// compound (minus its leading-parent flag): if the parent's last simple and
// the child's first simple are both type selectors they merge by name
// concatenation ("foo" + "&bar" => "foobar"), otherwise the simples are
// simply concatenated. A parent ending in a class, id or placeholder is not
// merged with a leading type: ".foo" + "&bar" puts the type selector "bar"
// after ".foo", which fails compound validation.
func fuseCompoundSimples(parentLast, child Compound) []Simple {
	childSimples := child.Simples
	parentSimples := parentLast.Simples

	if len(parentSimples) > 0 && len(childSimples) > 0 {
		if pt, ok := parentSimples[len(parentSimples)-1].(Type); ok {
			if ct, ok := childSimples[0].(Type); ok {
				merged := Type{Name: pt.Name + ct.Name, NamespacePrefix: pt.NamespacePrefix, HasNamespace: pt.HasNamespace, NamespaceIsUniversal: pt.NamespaceIsUniversal}
				out := append([]Simple{}, parentSimples[:len(parentSimples)-1]...)
				out = append(out, merged)
				out = append(out, childSimples[1:]...)
				return out
			}
		}
	}

	out := append([]Simple{}, parentSimples...)
	out = append(out, childSimples...)
	return out
}

// resolveCompoundPseudoParents recurses into any pseudo-with-inner-list
// simple of this compound, resolving `&` inside it against the same parent
// (spec.md §4.3 step 3). Compounds with no such pseudo are returned as-is.
func resolveCompoundPseudoParents(c Compound, parent *List, implicitParent bool) (Compound, error) {
	changed := false
	simples := make([]Simple, len(c.Simples))
	for i, s := range c.Simples {
		p, ok := s.(Pseudo)
		if !ok || p.Inner == nil {
			simples[i] = s
			continue
		}
		resolvedInner, err := ResolveParents(p.Inner, parent, implicitParent)
		if err != nil {
			return Compound{}, err
		}
		simples[i] = p.WithSelector(resolvedInner)
		changed = true
	}
	if !changed {
		return c, nil
	}
	return NewCompound(simples, c.HasLeadingParent)
}
