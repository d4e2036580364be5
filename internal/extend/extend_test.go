package extend_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosass/selector/internal/extend"
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

func onlySimple(t *testing.T, text string) selector.Simple {
	t.Helper()
	log := logger.NewDeferLog()
	s, err := selparse.ParseSimpleSelector(log, test.SourceForTest(text))
	require.NoError(t, err, "parsing %q", text)
	return s
}

// .b extends .a, then a second extend .c extends .b: list .a expands to .a, .b,
// then to .a, .b, .c (spec.md §8's extend literal scenario).
func TestExtendCascades(t *testing.T) {
	store := extend.New(extend.Normal)

	a := mustParseList(t, ".a")
	h, err := store.AddSelector(a, nil)
	require.NoError(t, err)

	err = store.AddExtension(mustParseList(t, ".b"), onlySimple(t, ".a"), nil, false)
	require.NoError(t, err)

	got := store.Get(h)
	expected := mustParseList(t, ".a, .b")
	assert.True(t, got.Equal(expected), "got %q", got.String())

	err = store.AddExtension(mustParseList(t, ".c"), onlySimple(t, ".b"), nil, false)
	require.NoError(t, err)

	got = store.Get(h)
	expected = mustParseList(t, ".a, .b, .c")
	assert.True(t, got.Equal(expected), "got %q", got.String())
}

// An extension registered under @media print must not rewrite a selector
// list registered at top level (spec.md §8).
func TestExtendDoesNotCrossIncompatibleMedia(t *testing.T) {
	store := extend.New(extend.Normal)

	a := mustParseList(t, ".a")
	h, err := store.AddSelector(a, nil)
	require.NoError(t, err)

	print := selector.NewMediaContext(1, "print", nil)
	err = store.AddExtension(mustParseList(t, ".b"), onlySimple(t, ".a"), print, true)
	require.NoError(t, err)

	got := store.Get(h)
	expected := mustParseList(t, ".a")
	assert.True(t, got.Equal(expected), "expected top-level selector unaffected, got %q", got.String())
}

func TestExtendAcrossIncompatibleNonOptionalMediaFails(t *testing.T) {
	store := extend.New(extend.Normal)

	a := mustParseList(t, ".a")
	_, err := store.AddSelector(a, nil)
	require.NoError(t, err)

	screen := selector.NewMediaContext(1, "screen", nil)
	print := selector.NewMediaContext(2, "print", nil)
	_, err = store.AddSelector(mustParseList(t, ".a"), screen)
	require.NoError(t, err)

	err = store.AddExtension(mustParseList(t, ".b"), onlySimple(t, ".a"), print, false)
	require.Error(t, err)
	var selErr *selector.Error
	require.ErrorAs(t, err, &selErr)
	assert.Equal(t, selector.ExtendAcrossMedia, selErr.Kind)
}

func TestReplaceModeDropsOriginalAlternative(t *testing.T) {
	store := extend.New(extend.Replace)

	a := mustParseList(t, ".a")
	h, err := store.AddSelector(a, nil)
	require.NoError(t, err)

	err = store.AddExtension(mustParseList(t, ".b"), onlySimple(t, ".a"), nil, false)
	require.NoError(t, err)

	got := store.Get(h)
	expected := mustParseList(t, ".b")
	assert.True(t, got.Equal(expected), "got %q", got.String())
}

// property 8: trimming must never drop an original selector, even when an
// extension puts it beside a narrower alternative it strictly contains.
func TestTrimNeverDropsOriginals(t *testing.T) {
	store := extend.New(extend.Normal)

	narrow := mustParseList(t, ".a")
	h, err := store.AddSelector(narrow, nil)
	require.NoError(t, err)

	// extending .a with a narrower selector (adding the "c" class) should
	// still keep .a itself since it was original.
	err = store.AddExtension(mustParseList(t, ".a.c"), onlySimple(t, ".a"), nil, false)
	require.NoError(t, err)

	got := store.Get(h)
	found := false
	for _, c := range got.Complexes {
		if c.Equal(narrow.Complexes[0]) {
			found = true
		}
	}
	assert.True(t, found, "original .a dropped from %q", got.String())
}

func TestCheckForUnsatisfiedExtends(t *testing.T) {
	store := extend.New(extend.Normal)
	_, err := store.AddSelector(mustParseList(t, ".a"), nil)
	require.NoError(t, err)

	err = store.AddExtension(mustParseList(t, ".never-matches"), onlySimple(t, ".missing"), nil, false)
	require.NoError(t, err)

	unsatisfied := store.CheckForUnsatisfiedExtends()
	require.NotNil(t, unsatisfied)
	assert.Equal(t, ".missing", unsatisfied.Target.String())

	// Optional extends of the same unmatched target must not be reported.
	store2 := extend.New(extend.Normal)
	_, err = store2.AddSelector(mustParseList(t, ".a"), nil)
	require.NoError(t, err)
	err = store2.AddExtension(mustParseList(t, ".x"), onlySimple(t, ".missing"), nil, true)
	require.NoError(t, err)
	assert.Nil(t, store2.CheckForUnsatisfiedExtends())
}

// A multi-compound extender's own ancestor prefix must be woven against the
// target's preceding ancestor chain, not simply concatenated in front of it
// (spec.md §4.7 op 3, §4.6): extending ".z" inside ".w .q.z" with ".x .y"
// must produce both ".w .x .q.y" and ".x .w .q.y", not only the former.
func TestExtendWeavesMultiCompoundExtenderAncestors(t *testing.T) {
	store := extend.New(extend.Normal)

	target := mustParseList(t, ".w .q.z")
	h, err := store.AddSelector(target, nil)
	require.NoError(t, err)

	err = store.AddExtension(mustParseList(t, ".x .y"), onlySimple(t, ".z"), nil, false)
	require.NoError(t, err)

	got := store.Get(h)
	texts := make([]string, len(got.Complexes))
	for i, c := range got.Complexes {
		texts[i] = c.String()
	}

	assert.Contains(t, texts, ".w .x .q.y")
	assert.Contains(t, texts, ".x .w .q.y")
}

func TestAddExtensionsHonorsPrivatePlaceholders(t *testing.T) {
	peer := extend.New(extend.Normal)
	_, err := peer.AddSelector(mustParseList(t, ".from-peer"), nil)
	require.NoError(t, err)
	err = peer.AddExtension(mustParseList(t, ".public-extender"), onlySimple(t, "%-private"), nil, false)
	require.NoError(t, err)
	err = peer.AddExtension(mustParseList(t, ".public-extender-2"), onlySimple(t, "%public"), nil, false)
	require.NoError(t, err)

	local := extend.New(extend.Normal)
	h, err := local.AddSelector(mustParseList(t, "%public"), nil)
	require.NoError(t, err)

	require.NoError(t, local.AddExtensions([]*extend.Store{peer}))

	got := local.Get(h)
	// The private placeholder's extension never crossed, so only the public
	// one should have taken effect.
	foundPublic := false
	for _, c := range got.Complexes {
		if c.String() == ".public-extender-2" {
			foundPublic = true
		}
		assert.NotEqual(t, ".public-extender", c.String())
	}
	assert.True(t, foundPublic, "public extension did not cross module boundary, got %q", got.String())
}
