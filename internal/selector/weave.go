package selector

// Weave interleaves a sequence of parent complex selectors that must all
// appear as ancestors of a common target, preserving each input's relative
// order but allowed to interleave freely across inputs (spec.md §4.6). It
// returns every valid interleaving with compatible trailing combinators
// merged.
//
// Each input is first split into maximal combinator-tight groups (step 2):
// a run of components joined by explicit child/sibling combinators can never
// be split apart by another input's components, since doing so would assert
// a relationship (e.g. "direct child of") that was never present in either
// selector. Only whole groups are riffled against each other (steps 3-4).
// The one exception is a dangling final group whose last component still
// carries an unresolved trailing combinator — this arises when Weave is
// given a prefix stripped of the base component it was bound to (from
// UnifyComplex, or from the extend rewriters' weaveFragmentOntoPrefix) — and
// such a group must stay last in the output and is merged against any other
// input's dangling group via MergeTrailingCombinators (step 5) rather than
// riffled.
//
// Group equivalence is structural identity only, a conservative
// simplification of spec.md §4.6 step 3's full "structurally equal or one is
// a superselector of the other or they unify" equivalence: a weaker
// equivalence only ever produces additional (not incorrect) alternatives, so
// it cannot reintroduce the fabricated-selector bug this algorithm exists to
// avoid.
func Weave(complexes []Complex) ([]Complex, error) {
	if len(complexes) == 0 {
		return nil, nil
	}
	if len(complexes) == 1 {
		return []Complex{complexes[0]}, nil
	}

	leading, err := mergeLeadingCombinators(complexes)
	if err != nil {
		return nil, err
	}

	seqs := make([]groupSeq, len(complexes))
	for i, c := range complexes {
		closed, dangling := splitGroups(c.Components)
		seqs[i] = groupSeq{closed: closed, dangling: dangling}
	}

	acc := []groupSeq{seqs[0]}
	for _, next := range seqs[1:] {
		var nextAcc []groupSeq
		for _, a := range acc {
			merged, err := weaveGroupPair(a, next)
			if err != nil {
				return nil, err
			}
			nextAcc = append(nextAcc, merged...)
		}
		acc = nextAcc
	}

	out := make([]Complex, 0, len(acc))
	for _, gs := range acc {
		var comps []Component
		for _, g := range gs.closed {
			comps = append(comps, g...)
		}
		if gs.dangling != nil {
			comps = append(comps, gs.dangling...)
		}
		out = append(out, NewComplex(leading, comps, false))
	}
	return out, nil
}

// mergeLeadingCombinators implements spec.md §4.6 step 1: if one side has
// no leading combinators, use the other's; if both are equal, use either;
// otherwise take the longest common subsequence, or fail if none.
func mergeLeadingCombinators(complexes []Complex) ([]Combinator, error) {
	var merged []Combinator
	have := false
	for _, c := range complexes {
		if len(c.LeadingCombinators) == 0 {
			continue
		}
		if !have {
			merged = c.LeadingCombinators
			have = true
			continue
		}
		if combinatorsEqual(merged, c.LeadingCombinators) {
			continue
		}
		lcs := longestCommonCombinatorSubsequence(merged, c.LeadingCombinators)
		if len(lcs) == 0 {
			return nil, &Error{Kind: InvalidSelectorArgument, Text: "Incompatible parent selectors cannot be woven together."}
		}
		merged = lcs
	}
	return merged, nil
}

func combinatorsEqual(a, b []Combinator) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func longestCommonCombinatorSubsequence(a, b []Combinator) []Combinator {
	n, m := len(a), len(b)
	dp := make([][]int, n+1)
	for i := range dp {
		dp[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if a[i] == b[j] {
				dp[i][j] = dp[i+1][j+1] + 1
			} else if dp[i+1][j] >= dp[i][j+1] {
				dp[i][j] = dp[i+1][j]
			} else {
				dp[i][j] = dp[i][j+1]
			}
		}
	}
	var out []Combinator
	i, j := 0, 0
	for i < n && j < m {
		if a[i] == b[j] {
			out = append(out, a[i])
			i++
			j++
		} else if dp[i+1][j] >= dp[i][j+1] {
			i++
		} else {
			j++
		}
	}
	return out
}

// groupSeq is one input's components split into maximal combinator-tight
// groups (spec.md §4.6 step 2), plus an optional dangling final group whose
// last component's trailing combinator is still unresolved.
type groupSeq struct {
	closed   [][]Component
	dangling []Component // nil if the input ends in a component with no trailing combinator
}

// splitGroups splits components into maximal runs joined by explicit
// combinators: a component with no trailing combinator closes the group it's
// accumulating into, since whatever follows it (if anything) is only
// descendant-related and free to interleave. A component with a trailing
// combinator keeps the group open, since it is tightly bound to whatever
// comes next. If the final component still has a trailing combinator with
// nothing to bind to within this sequence, that last group is returned as
// dangling instead of being appended to closed.
func splitGroups(components []Component) (closed [][]Component, dangling []Component) {
	var current []Component
	for _, c := range components {
		current = append(current, c)
		if len(c.Combinators) == 0 {
			closed = append(closed, current)
			current = nil
		}
	}
	if len(current) > 0 {
		dangling = current
	}
	return
}

// weaveGroupPair riffles a's and b's closed groups into every order-
// preserving interleaving (spec.md §4.6 steps 3-4, groups as atomic units so
// a tight combinator run is never split), then resolves the trailing
// dangling group, if either side has one, against the other's.
func weaveGroupPair(a, b groupSeq) ([]groupSeq, error) {
	mergedDangling, err := mergeDanglingPairOptional(a.dangling, b.dangling)
	if err != nil {
		return nil, err
	}

	var orderings [][][]Component
	seen := map[string]bool{}
	interleaveGroups(a.closed, b.closed, nil, &orderings, seen)

	out := make([]groupSeq, len(orderings))
	for i, o := range orderings {
		out[i] = groupSeq{closed: o, dangling: mergedDangling}
	}
	return out, nil
}

// interleaveGroups enumerates every order-preserving riffle of a and b,
// treating each group as an indivisible unit, deduplicating by printed form
// since distinct riffles can coincide when a group repeats across inputs.
func interleaveGroups(a, b [][]Component, acc [][]Component, results *[][][]Component, seen map[string]bool) {
	if len(a) == 0 && len(b) == 0 {
		key := groupsKey(acc)
		if !seen[key] {
			seen[key] = true
			*results = append(*results, append([][]Component{}, acc...))
		}
		return
	}
	if len(a) > 0 {
		interleaveGroups(a[1:], b, append(acc, a[0]), results, seen)
	}
	if len(b) > 0 {
		interleaveGroups(a, b[1:], append(acc, b[0]), results, seen)
	}
}

func groupsKey(groups [][]Component) string {
	s := ""
	for _, g := range groups {
		s += componentsKey(g) + "/"
	}
	return s
}

func componentsKey(comps []Component) string {
	s := ""
	for _, c := range comps {
		s += c.String() + "|"
	}
	return s
}

// mergeDanglingPairOptional is mergeDanglingPair generalized to the case
// where either (or neither) side actually has a dangling group.
func mergeDanglingPairOptional(a, b []Component) ([]Component, error) {
	switch {
	case a == nil && b == nil:
		return nil, nil
	case a == nil:
		return append([]Component{}, b...), nil
	case b == nil:
		return append([]Component{}, a...), nil
	default:
		return mergeDanglingPair(a, b)
	}
}

// mergeDanglingPair merges two dangling final groups at the weave boundary
// (spec.md §4.6 step 5). It requires every component but the last to be
// structurally identical between the two groups — a conservative stance on
// an edge case the original algorithm's own trailing-combinator table never
// fully resolves (spec.md §9 Open Question 1) — and merges only the final
// pair of combinators and compounds via MergeTrailingCombinators.
func mergeDanglingPair(a, b []Component) ([]Component, error) {
	aHead, aLast := a[:len(a)-1], a[len(a)-1]
	bHead, bLast := b[:len(b)-1], b[len(b)-1]
	if !groupHeadsEqual(aHead, bHead) {
		return nil, &Error{Kind: InvalidSelectorArgument, Text: "Incompatible ancestor chains cannot be woven into a shared final combinator."}
	}

	aComb := aLast.Combinators[len(aLast.Combinators)-1]
	bComb := bLast.Combinators[len(bLast.Combinators)-1]
	mergedComb, mergedCompound, ok := MergeTrailingCombinators(aComb, aLast.Compound, bComb, bLast.Compound)
	if !ok {
		return nil, &Error{Kind: InvalidSelectorArgument, Text: "Incompatible combinators cannot be woven together."}
	}

	combinators := append(append([]Combinator{}, aLast.Combinators[:len(aLast.Combinators)-1]...), mergedComb)
	merged := Component{Compound: mergedCompound, Combinators: combinators}
	return append(append([]Component{}, aHead...), merged), nil
}

func groupHeadsEqual(a, b []Component) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// MergeTrailingCombinators implements spec.md §4.6 step 5's small state
// machine for the single pair of combinators that sit at a weave boundary:
// `~ ~` unify on the sibling compound; `~ +`/`+ ~` prefer the stricter
// (next-sibling); `>` combines with any compatible child step; identical
// combinators otherwise require the compounds to unify.
func MergeTrailingCombinators(aCombinator Combinator, aCompound Compound, bCombinator Combinator, bCompound Compound) (Combinator, Compound, bool) {
	switch {
	case aCombinator == FollowingSibling && bCombinator == FollowingSibling:
		u, err := UnifyCompound(aCompound, bCompound)
		return FollowingSibling, u, err == nil
	case aCombinator == FollowingSibling && bCombinator == NextSibling:
		u, err := UnifyCompound(aCompound, bCompound)
		return NextSibling, u, err == nil
	case aCombinator == NextSibling && bCombinator == FollowingSibling:
		u, err := UnifyCompound(aCompound, bCompound)
		return NextSibling, u, err == nil
	case aCombinator == Child && bCombinator == Child:
		u, err := UnifyCompound(aCompound, bCompound)
		return Child, u, err == nil
	case aCombinator == bCombinator:
		u, err := UnifyCompound(aCompound, bCompound)
		return aCombinator, u, err == nil
	default:
		return 0, Compound{}, false
	}
}
