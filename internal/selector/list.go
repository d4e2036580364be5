package selector

import (
	"sort"
	"strings"
)

// List is an ordered sequence of Complex selectors joined by commas.
// Duplicates are not removed at construction — only by trimming after
// extension (spec.md §3).
type List struct {
	Complexes []Complex
}

// NewList wraps a slice of Complex selectors into a List.
func NewList(complexes []Complex) *List {
	return &List{Complexes: complexes}
}

// Equal reports whether two lists are the same multiset of complex
// selectors: order is irrelevant, to accept extensions that reorder
// alternatives (spec.md §4.2).
func (l *List) Equal(other *List) bool {
	if l == nil || other == nil {
		return l == other
	}
	if len(l.Complexes) != len(other.Complexes) {
		return false
	}
	used := make([]bool, len(other.Complexes))
	for _, c := range l.Complexes {
		found := false
		for i, o := range other.Complexes {
			if !used[i] && c.Equal(o) {
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

// Hash is order-insensitive (spec.md §4.2): it sums the per-complex hashes.
func (l *List) Hash() uint32 {
	if l == nil {
		return 0
	}
	var sum uint32 = 29
	for _, c := range l.Complexes {
		sum += c.Hash()
	}
	return sum
}

func (l *List) String() string {
	if l == nil {
		return ""
	}
	parts := make([]string, len(l.Complexes))
	for i, c := range l.Complexes {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}

// Sorted returns a copy of l.Complexes ordered by Complex.Less, used only to
// get deterministic iteration/printing order.
func (l *List) Sorted() []Complex {
	out := append([]Complex{}, l.Complexes...)
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// HasAnyExplicitParent reports whether any complex in this list contains an
// explicit `&` anywhere.
func (l *List) HasAnyExplicitParent() bool {
	if l == nil {
		return false
	}
	for _, c := range l.Complexes {
		if c.HasAnyExplicitParent() {
			return true
		}
	}
	return false
}

// IsInvisible reports whether every alternative in this list is invisible
// (spec.md §3).
func (l *List) IsInvisible() bool {
	if l == nil || len(l.Complexes) == 0 {
		return true
	}
	for _, c := range l.Complexes {
		if !c.IsInvisible() {
			return false
		}
	}
	return true
}

// Concat returns a new list containing this list's complexes followed by
// other's.
func (l *List) Concat(other *List) *List {
	out := append([]Complex{}, l.Complexes...)
	out = append(out, other.Complexes...)
	return NewList(out)
}
