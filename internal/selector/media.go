package selector

// MediaContext identifies the `@media` query block (if any) a complex
// selector or an extension was recorded under. It is opaque to this
// package — the evaluator owns the actual query AST — and is compared by
// identity (same block) and, for queries the evaluator has proven nested
// within one another, by the IsNestedWithin relation the evaluator supplies
// (spec.md §3, §4.7).
//
// A nil *MediaContext means "no enclosing @media" (the common case: most
// extends and rules live at the top level of a stylesheet).
type MediaContext struct {
	// id distinguishes distinct query blocks parsed at different source
	// locations, even if their conditions are textually identical.
	id int

	// query is a caller-supplied human-readable rendering of the media
	// condition, used only for diagnostics — this package never
	// interprets it.
	query string

	// nestedWithin, if non-nil, is the MediaContext this one is lexically
	// nested inside. A cross-module extend whose rule's MediaContext is
	// nestedWithin (transitively) the extension's MediaContext is allowed
	// to bubble the rule's declarations into the narrower query instead
	// of being rejected outright (SPEC_FULL.md §B.1 supplement, grounded
	// on libsass's extender.cpp media-bubbling behavior).
	nestedWithin *MediaContext
}

// NewMediaContext wraps a caller-assigned id and query string into a
// MediaContext. id must be unique per distinct query block within a
// compilation; the evaluator is responsible for assigning it.
func NewMediaContext(id int, query string, nestedWithin *MediaContext) *MediaContext {
	return &MediaContext{id: id, query: query, nestedWithin: nestedWithin}
}

func (m *MediaContext) String() string {
	if m == nil {
		return ""
	}
	return m.query
}

// Equal reports whether two media contexts refer to the same query block.
func (m *MediaContext) Equal(other *MediaContext) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.id == other.id
}

// IsNestedWithin reports whether m is the same context as other, or is
// lexically nested (transitively) inside it.
func (m *MediaContext) IsNestedWithin(other *MediaContext) bool {
	if other == nil {
		return true // no enclosing query is trivially an ancestor of everything
	}
	for c := m; c != nil; c = c.nestedWithin {
		if c.Equal(other) {
			return true
		}
	}
	return false
}

// Compatible reports whether an extension recorded under m may legally
// rewrite a rule recorded under other: other must be m itself or nested
// (transitively) inside it, and a nil m (top level) is compatible with every
// context (spec.md §4.7's ExtendAcrossMedia check). An extension under a
// query never rewrites a top-level rule.
func (m *MediaContext) Compatible(other *MediaContext) bool {
	return other.IsNestedWithin(m)
}
