package extend

import "github.com/gosass/selector/internal/selector"

// trim removes any complex that is a strict superselector of another
// complex in the list and whose source specificity is no greater than the
// other's, except members of originals which are never removed (spec.md
// §4.7 op 4). Trimming is skipped above trimAbove alternatives to bound
// its O(n²) cost — callers lose deduplication but keep correctness.
func (s *Store) trim(list *selector.List) *selector.List {
	if len(list.Complexes) > trimAbove {
		return list
	}

	keep := make([]bool, len(list.Complexes))
	for i := range keep {
		keep[i] = true
	}

	for i, a := range list.Complexes {
		if !keep[i] || s.originals[complexKey(a)] {
			continue
		}
		aSpec := s.sourceSpecificityOf(a)
		for j, b := range list.Complexes {
			if i == j || !keep[j] {
				continue
			}
			if a.Equal(b) {
				if j < i {
					// A later copy of an alternative kept earlier is a duplicate.
					keep[i] = false
					break
				}
				continue
			}
			if selector.IsSuperselectorComplex(b, a) && s.sourceSpecificityOf(b).Compare(aSpec) <= 0 {
				keep[i] = false
				break
			}
		}
	}

	out := make([]selector.Complex, 0, len(list.Complexes))
	for i, c := range list.Complexes {
		if keep[i] {
			out = append(out, c)
		}
	}
	return selector.NewList(out)
}

// sourceSpecificityOf returns the lowest recorded source specificity among
// c's own simples, falling back to c's own computed specificity for a
// complex whose simples were never registered via AddSelector (spec.md
// §4.7 step 4 / §9 Open Question 3: source specificity is the
// minSpecificity lower bound).
func (s *Store) sourceSpecificityOf(c selector.Complex) selector.Specificity {
	best := c.MaxSpecificity()
	found := false
	for _, comp := range c.Components {
		for _, simple := range comp.Compound.Simples {
			if spec, ok := s.sourceSpecificity[simpleKey(simple)]; ok {
				if !found || spec.Compare(best) < 0 {
					best = spec
					found = true
				}
			}
		}
	}
	return best
}
