// Package sassfn wraps internal/selector and internal/extend with the exact
// argument validation fn_selectors.cpp performs for Sass's `selector`
// built-in module (`selector-nest`, `selector-append`, `selector-extend`,
// `selector-replace`, `selector-unify`, `is-superselector`,
// `simple-selectors`). It is the layer a CLI or evaluator calls; the core
// packages it wraps never validate call-site arguments themselves.
package sassfn

import (
	"github.com/gosass/selector/internal/extend"
	"github.com/gosass/selector/internal/selector"
)

// Nest implements `selector-nest($selectors...)`: each argument after the
// first is resolved against the accumulation of everything before it,
// mirroring how nested Sass rules resolve `&` against their enclosing
// selector one level at a time.
func Nest(selectors []*selector.List) (*selector.List, error) {
	if len(selectors) == 0 {
		return nil, &selector.Error{
			Kind: selector.InvalidSelectorArgument,
			Text: "$selectors: At least one selector must be passed.",
		}
	}
	result := selectors[0]
	for _, next := range selectors[1:] {
		resolved, err := selector.ResolveParents(next, result, true)
		if err != nil {
			return nil, err
		}
		result = resolved
	}
	return result, nil
}

// Append implements `selector-append($selectors...)`: like Nest, but each
// following selector is fused directly onto the accumulation's last
// compound (as if it had been written with no space, e.g. `.foo` appended
// to `.bar` yields `.bar.foo`) rather than resolved as a descendant. Only the
// first component of each following complex is fused; its remaining
// components follow as they were written. A following complex with leading
// combinators, or whose first compound has a namespaced type selector,
// cannot be fused, and this reports InvalidSelectorArgument the way
// `Can't append X to Y.` does in the original.
func Append(selectors []*selector.List) (*selector.List, error) {
	if len(selectors) == 0 {
		return nil, &selector.Error{
			Kind: selector.InvalidSelectorArgument,
			Text: "$selectors: At least one selector must be passed.",
		}
	}
	reduced := selectors[0]
	for _, next := range selectors[1:] {
		fused, err := fuseAppend(next, reduced)
		if err != nil {
			return nil, err
		}
		reduced = fused
	}
	return reduced, nil
}

func fuseAppend(next, onto *selector.List) (*selector.List, error) {
	complexes := make([]selector.Complex, len(next.Complexes))
	for i, c := range next.Complexes {
		if len(c.LeadingCombinators) > 0 {
			return nil, &selector.Error{
				Kind: selector.InvalidSelectorArgument,
				Text: "Can't append " + next.String() + " to " + onto.String() + ".",
			}
		}
		if len(c.Components) == 0 {
			complexes[i] = c
			continue
		}
		head := c.Components[0]
		fused, err := prependExplicitParent(head.Compound)
		if err != nil {
			return nil, &selector.Error{
				Kind: selector.InvalidSelectorArgument,
				Text: "Can't append " + next.String() + " to " + onto.String() + ".",
			}
		}
		components := append([]selector.Component{}, c.Components...)
		components[0] = selector.Component{Compound: fused, Combinators: head.Combinators}
		complexes[i] = selector.NewComplex(c.LeadingCombinators, components, c.PrecedingLinefeed)
	}
	return selector.ResolveParents(selector.NewList(complexes), onto, false)
}

// prependExplicitParent marks a compound as beginning with `&`, the way
// prependParent in the original rejects only a leading namespaced type
// selector (a bare `svg|rect` can't be fused onto a preceding selector since
// the namespace would need to come first).
func prependExplicitParent(c selector.Compound) (selector.Compound, error) {
	if t, ok := c.TypeSelector(); ok && t.HasNamespace {
		return selector.Compound{}, &selector.Error{Kind: selector.InvalidSelectorArgument, Text: "cannot append to a namespaced type selector"}
	}
	return selector.NewCompound(c.Simples, true)
}

// Extend implements `selector-extend($selector, $extendee, $extender)`:
// rewrites selector as if every complex in extender extended every complex
// in extendee. extendee's complexes must each be a single compound
// (CompoundRequired otherwise, matching `@extend .a .b` being rejected).
func Extend(sel, extendee, extender *selector.List) (*selector.List, error) {
	return extendWithMode(sel, extendee, extender, extend.Normal)
}

// Replace implements `selector-replace($selector, $original, $replacement)`:
// Extend with Replace semantics, so the original compound is dropped rather
// than kept alongside the rewritten alternatives.
func Replace(sel, original, replacement *selector.List) (*selector.List, error) {
	return extendWithMode(sel, original, replacement, extend.Replace)
}

func extendWithMode(sel, target, source *selector.List, mode extend.Mode) (*selector.List, error) {
	store := extend.New(mode)
	h, err := store.AddSelector(sel, nil)
	if err != nil {
		return nil, err
	}
	for _, c := range target.Complexes {
		compound, ok := asCompoundTarget(c)
		if !ok {
			return nil, &selector.Error{
				Kind: selector.CompoundRequired,
				Text: "expected selector to be a compound selector, but got " + c.String(),
			}
		}
		for _, simple := range compound.Simples {
			if err := store.AddExtension(source, simple, nil, false); err != nil {
				return nil, err
			}
		}
	}
	return store.Get(h), nil
}

func asCompoundTarget(c selector.Complex) (selector.Compound, bool) {
	if len(c.LeadingCombinators) != 0 || len(c.Components) != 1 {
		return selector.Compound{}, false
	}
	comp := c.Components[0]
	if len(comp.Combinators) != 0 {
		return selector.Compound{}, false
	}
	return comp.Compound, true
}

// Unify implements `selector-unify($selector1, $selector2)`.
func Unify(a, b *selector.List) (*selector.List, error) {
	return selector.Unify(a, b)
}

// IsSuperselector implements `is-superselector($super, $sub)`.
func IsSuperselector(super, sub *selector.List) bool {
	return selector.IsSuperselector(super, sub)
}

// SimpleSelectors implements `simple-selectors($selector)`: the argument
// must already be a single compound, matching assertCompoundSelector in the
// original.
func SimpleSelectors(c selector.Compound) []string {
	return selector.SimpleSelectors(c)
}
