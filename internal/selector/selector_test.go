package selector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosass/selector/internal/logger"
	"github.com/gosass/selector/internal/selector"
	"github.com/gosass/selector/internal/selparse"
	"github.com/gosass/selector/internal/test"
)

func mustParseList(t *testing.T, text string) *selector.List {
	t.Helper()
	log := logger.NewDeferLog()
	list, err := selparse.ParseSelectorList(log, test.SourceForTest(text))
	require.NoError(t, err, "parsing %q", text)
	return list
}

func mustParseCompound(t *testing.T, text string) selector.Compound {
	t.Helper()
	log := logger.NewDeferLog()
	c, err := selparse.ParseCompoundSelector(log, test.SourceForTest(text))
	require.NoError(t, err, "parsing %q", text)
	return c
}

// cls builds a Compound out of bare class names, for tests that don't need
// the parser.
func cls(names ...string) selector.Compound {
	simples := make([]selector.Simple, len(names))
	for i, n := range names {
		simples[i] = selector.Class{Name: n}
	}
	c, err := selector.NewCompound(simples, false)
	if err != nil {
		panic(err)
	}
	return c
}

// --- property 1: equality is an equivalence respecting hashing ---

func TestCompoundEqualityIsOrderInsensitiveAndHashConsistent(t *testing.T) {
	a := cls("a", "b", "c")
	b := cls("c", "b", "a")
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())
}

func TestListEqualityIsOrderInsensitive(t *testing.T) {
	l1 := mustParseList(t, ".a, .b")
	l2 := mustParseList(t, ".b, .a")
	assert.True(t, l1.Equal(l2))
}

// --- property 2: parse/emit round-trip ---

func TestParseEmitRoundTrip(t *testing.T) {
	cases := []string{
		".a",
		".a.b",
		"#x .y",
		"div > .a + .b ~ .c",
		"&.b",
		"[href^=\"https://\" i]",
		":not(.a, .b)",
		"::before",
		"%placeholder",
	}
	for _, text := range cases {
		list := mustParseList(t, text)
		reparsed := mustParseList(t, list.String())
		assert.True(t, list.Equal(reparsed), "round-trip mismatch for %q: got %q", text, list.String())
	}
}

// --- property 3: parent resolution idempotence ---

func TestResolveParentsIdempotentWithoutAmpersand(t *testing.T) {
	child := mustParseList(t, ".a .b")
	parent := mustParseList(t, "x, y")
	resolved, err := selector.ResolveParents(child, parent, false)
	require.NoError(t, err)
	assert.True(t, resolved.Equal(child))
}

// --- literal end-to-end scenarios from the spec ---

func TestResolveParentsImplicitPrepend(t *testing.T) {
	child := mustParseList(t, ".a .b")
	parent := mustParseList(t, "x, y")
	resolved, err := selector.ResolveParents(child, parent, true)
	require.NoError(t, err)
	expected := mustParseList(t, "x .a .b, y .a .b")
	assert.True(t, resolved.Equal(expected), "got %q", resolved.String())
}

func TestResolveParentsExplicitAmpersand(t *testing.T) {
	child := mustParseList(t, "&.b")
	parent := mustParseList(t, ".a")
	resolved, err := selector.ResolveParents(child, parent, true)
	require.NoError(t, err)
	expected := mustParseList(t, ".a.b")
	assert.True(t, resolved.Equal(expected), "got %q", resolved.String())
}

func TestResolveParentsTopLevelAmpersandFails(t *testing.T) {
	child := mustParseList(t, "&.b")
	_, err := selector.ResolveParents(child, nil, true)
	require.Error(t, err)
	var selErr *selector.Error
	require.ErrorAs(t, err, &selErr)
	assert.Equal(t, selector.TopLevelParent, selErr.Kind)
}

func TestUnifyLiteral(t *testing.T) {
	a := mustParseList(t, ".a.b")
	b := mustParseList(t, ".b.c")
	u, err := selector.Unify(a, b)
	require.NoError(t, err)
	expected := mustParseList(t, ".a.b.c")
	assert.True(t, u.Equal(expected), "got %q", u.String())
}

func TestUnifyIncompatibleIdsFails(t *testing.T) {
	a := mustParseList(t, "#x")
	b := mustParseList(t, "#y")
	u, err := selector.Unify(a, b)
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestIsSuperselectorLiteral(t *testing.T) {
	a := mustParseList(t, ".a")
	ab := mustParseList(t, ".a.b")
	assert.True(t, selector.IsSuperselector(a, ab))
	assert.False(t, selector.IsSuperselector(ab, a))
}

// --- property 4/5: superselector reflexivity and transitivity ---

func TestIsSuperselectorReflexive(t *testing.T) {
	for _, text := range []string{".a", ".a.b", "div > .a", "#x .y + .z"} {
		l := mustParseList(t, text)
		assert.True(t, selector.IsSuperselector(l, l), "not reflexive for %q", text)
	}
}

func TestIsSuperselectorTransitive(t *testing.T) {
	a := mustParseList(t, ".a")
	b := mustParseList(t, ".a.b")
	c := mustParseList(t, ".a.b.c")
	require.True(t, selector.IsSuperselector(a, b))
	require.True(t, selector.IsSuperselector(b, c))
	assert.True(t, selector.IsSuperselector(a, c))
}

// --- property 6: unification soundness ---

func TestUnifySoundness(t *testing.T) {
	pairs := [][2]string{
		{".a", ".b"},
		{"div.a", ".b"},
		{"#x.a", ".a.b"},
	}
	for _, pair := range pairs {
		a := mustParseList(t, pair[0])
		b := mustParseList(t, pair[1])
		u, err := selector.Unify(a, b)
		require.NoError(t, err)
		if u == nil {
			continue
		}
		assert.True(t, selector.IsSuperselector(a, u), "%q not superselector of unify(%q,%q)=%q", pair[0], pair[0], pair[1], u.String())
		assert.True(t, selector.IsSuperselector(b, u), "%q not superselector of unify(%q,%q)=%q", pair[1], pair[0], pair[1], u.String())
	}
}

// --- weave literal scenario ---

func TestWeaveProducesOrderPreservingInterleavings(t *testing.T) {
	xy := mustParseList(t, ".x .y").Complexes[0]
	pq := mustParseList(t, ".p .q").Complexes[0]

	woven, err := selector.Weave([]selector.Complex{xy, pq})
	require.NoError(t, err)

	expectedTexts := []string{
		".x .y .p .q",
		".x .p .y .q",
		".x .p .q .y",
		".p .q .x .y",
		".p .x .y .q",
		".p .x .q .y",
	}
	var expected []selector.Complex
	for _, text := range expectedTexts {
		expected = append(expected, mustParseList(t, text).Complexes[0])
	}

	assert.Equal(t, len(expected), len(woven))
	for _, e := range expected {
		found := false
		for _, w := range woven {
			if e.Equal(w) {
				found = true
				break
			}
		}
		assert.True(t, found, "missing expected weave %q", e.String())
	}
}

func TestWeaveNeverSplitsATightCombinatorGroup(t *testing.T) {
	ab := mustParseList(t, ".a > .b").Complexes[0]
	x := mustParseList(t, ".x").Complexes[0]

	woven, err := selector.Weave([]selector.Complex{ab, x})
	require.NoError(t, err)

	expectedTexts := []string{
		".x .a > .b",
		".a > .b .x",
	}
	var expected []selector.Complex
	for _, text := range expectedTexts {
		expected = append(expected, mustParseList(t, text).Complexes[0])
	}

	assert.Equal(t, len(expected), len(woven))
	for _, e := range expected {
		found := false
		for _, w := range woven {
			if e.Equal(w) {
				found = true
				break
			}
		}
		assert.True(t, found, "missing expected weave %q", e.String())
	}

	invalid := mustParseList(t, ".a > .x .b").Complexes[0]
	for _, w := range woven {
		assert.False(t, w.Equal(invalid), "weave fabricated invalid selector %q", w.String())
	}
}

// --- sanity on the Simple kinds' own Equal/Hash/String ---

func TestSimpleSelectorsString(t *testing.T) {
	c := mustParseCompound(t, "div#x.a.b[href]:hover::before")
	names := selector.SimpleSelectors(c)
	assert.Equal(t, []string{"div", "#x", ".a", ".b", "[href]", ":hover", "::before"}, names)
}

func TestCompoundValidateRejectsDoubleTypeSelector(t *testing.T) {
	_, err := selector.NewCompound([]selector.Simple{
		selector.Type{Name: "div"},
		selector.Type{Name: "span"},
	}, false)
	require.Error(t, err)
}

func TestCompoundValidateRejectsPseudoElementNotLast(t *testing.T) {
	_, err := selector.NewCompound([]selector.Simple{
		selector.NewPseudo("before", selector.PseudoElement, false, "", nil),
		selector.Class{Name: "a"},
	}, false)
	require.Error(t, err)
}

func TestMediaContextCompatibility(t *testing.T) {
	top := selector.NewMediaContext(1, "print", nil)
	nested := selector.NewMediaContext(2, "print and (min-width: 1px)", top)
	other := selector.NewMediaContext(3, "screen", nil)

	assert.True(t, nested.IsNestedWithin(top))
	assert.True(t, top.Compatible(nested))
	assert.False(t, top.Compatible(other))
	assert.True(t, (*selector.MediaContext)(nil).Compatible(nil))
}
