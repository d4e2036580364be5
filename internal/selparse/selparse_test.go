package selparse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosass/selector/internal/logger"
	"github.com/gosass/selector/internal/selector"
	"github.com/gosass/selector/internal/selparse"
	"github.com/gosass/selector/internal/test"
)

func parseList(t *testing.T, text string) (*selector.List, error) {
	t.Helper()
	log := logger.NewDeferLog()
	return selparse.ParseSelectorList(log, test.SourceForTest(text))
}

func parseSimple(t *testing.T, text string) (selector.Simple, error) {
	t.Helper()
	log := logger.NewDeferLog()
	return selparse.ParseSimpleSelector(log, test.SourceForTest(text))
}

func TestParseTypeSelectorVariants(t *testing.T) {
	cases := map[string]string{
		"div":     "div",
		"*":       "*",
		"svg|rect": "svg|rect",
		"*|rect":  "*|rect",
		"|rect":   "|rect",
	}
	for text, expected := range cases {
		s, err := parseSimple(t, text)
		require.NoError(t, err, "parsing %q", text)
		assert.Equal(t, expected, s.String(), "round-trip for %q", text)
	}
}

func TestParseIdAndClass(t *testing.T) {
	id, err := parseSimple(t, "#main")
	require.NoError(t, err)
	assert.Equal(t, selector.Id{Name: "main"}, id)

	cls, err := parseSimple(t, ".active")
	require.NoError(t, err)
	assert.Equal(t, selector.Class{Name: "active"}, cls)
}

func TestParsePlaceholder(t *testing.T) {
	s, err := parseSimple(t, "%placeholder")
	require.NoError(t, err)
	ph, ok := s.(selector.Placeholder)
	require.True(t, ok, "expected Placeholder, got %T", s)
	assert.Equal(t, "placeholder", ph.Name)
	assert.False(t, ph.IsPrivate())
}

func TestParsePrivatePlaceholder(t *testing.T) {
	s, err := parseSimple(t, "%-hidden")
	require.NoError(t, err)
	ph, ok := s.(selector.Placeholder)
	require.True(t, ok)
	assert.True(t, ph.IsPrivate())
}

func TestParsePlaceholderRequiresName(t *testing.T) {
	_, err := parseSimple(t, "%")
	require.Error(t, err)
}

func TestParseAttributeSelectorOperators(t *testing.T) {
	cases := []string{
		"[href]",
		"[href=\"x\"]",
		"[class~=\"x\"]",
		"[lang|=\"en\"]",
		"[href^=\"https://\"]",
		"[href$=\".png\"]",
		"[href*=\"example\"]",
		"[href^=\"https://\" i]",
	}
	for _, text := range cases {
		s, err := parseSimple(t, text)
		require.NoError(t, err, "parsing %q", text)
		_, ok := s.(selector.Attribute)
		assert.True(t, ok, "expected Attribute for %q, got %T", text, s)
	}
}

func TestParseAttributeSelectorUnterminatedFails(t *testing.T) {
	_, err := parseSimple(t, "[href")
	require.Error(t, err)
}

func TestParsePseudoClassAndElement(t *testing.T) {
	cls, err := parseSimple(t, ":hover")
	require.NoError(t, err)
	p, ok := cls.(selector.Pseudo)
	require.True(t, ok)
	assert.Equal(t, selector.PseudoClass, p.Kind)
	assert.Equal(t, "hover", p.Name)

	elem, err := parseSimple(t, "::before")
	require.NoError(t, err)
	p2, ok := elem.(selector.Pseudo)
	require.True(t, ok)
	assert.Equal(t, selector.PseudoElement, p2.Kind)

	// single-colon legacy pseudo-elements are normalized to PseudoElement
	before, err := parseSimple(t, ":before")
	require.NoError(t, err)
	p3, ok := before.(selector.Pseudo)
	require.True(t, ok)
	assert.Equal(t, selector.PseudoElement, p3.Kind)
}

func TestParsePseudoWithRawArgument(t *testing.T) {
	s, err := parseSimple(t, ":nth-child(2n+1)")
	require.NoError(t, err)
	p, ok := s.(selector.Pseudo)
	require.True(t, ok)
	assert.True(t, p.HasArg)
	assert.Equal(t, "2n+1", p.Arg)
	assert.Nil(t, p.Inner)
}

func TestParsePseudoWithSelectorListArgument(t *testing.T) {
	s, err := parseSimple(t, ":not(.a, .b)")
	require.NoError(t, err)
	p, ok := s.(selector.Pseudo)
	require.True(t, ok)
	require.NotNil(t, p.Inner)
	assert.Equal(t, 2, len(p.Inner.Complexes))
	assert.False(t, p.HasArg)
}

func TestParsePseudoUnterminatedArgumentFails(t *testing.T) {
	_, err := parseSimple(t, ":lang(en")
	require.Error(t, err)
}

func TestParseCombinators(t *testing.T) {
	list, err := parseList(t, "div > .a + .b ~ .c")
	require.NoError(t, err)
	require.Equal(t, 1, len(list.Complexes))
	components := list.Complexes[0].Components
	require.Equal(t, 4, len(components))
	assert.Equal(t, []selector.Combinator{selector.Child}, components[0].Combinators)
	assert.Equal(t, []selector.Combinator{selector.NextSibling}, components[1].Combinators)
	assert.Equal(t, []selector.Combinator{selector.FollowingSibling}, components[2].Combinators)
	assert.Equal(t, 0, len(components[3].Combinators))
}

func TestParseDescendantCombinatorIsImplicit(t *testing.T) {
	list, err := parseList(t, ".a .b")
	require.NoError(t, err)
	components := list.Complexes[0].Components
	require.Equal(t, 2, len(components))
	assert.Equal(t, 0, len(components[0].Combinators))
}

func TestParseLeadingAmpersandAllowedAtCompoundStart(t *testing.T) {
	list, err := parseList(t, "&.b")
	require.NoError(t, err)
	c := list.Complexes[0].Components[0].Compound
	assert.True(t, c.HasLeadingParent)
}

func TestParseAmpersandMidCompoundFails(t *testing.T) {
	_, err := parseList(t, ".a&.b")
	require.Error(t, err)
}

func TestParseEmptySelectorFails(t *testing.T) {
	_, err := parseList(t, "")
	require.Error(t, err)
}

func TestParseTrailingCommaFails(t *testing.T) {
	_, err := parseList(t, ".a,")
	require.Error(t, err)
}

func TestParseTrailingJunkFails(t *testing.T) {
	_, err := parseList(t, ".a }")
	require.Error(t, err)
}

func TestParseCompoundSelectorRejectsTrailingCompound(t *testing.T) {
	log := logger.NewDeferLog()
	_, err := selparse.ParseCompoundSelector(log, test.SourceForTest("div span"))
	require.Error(t, err, "a space-separated pair is two compounds, not one")
}

func TestParseInvalidNamespacePrefixFails(t *testing.T) {
	_, err := parseSimple(t, "svg|")
	require.Error(t, err)
}

func TestParseSelectorListCommaSeparated(t *testing.T) {
	list, err := parseList(t, ".a, .b,.c")
	require.NoError(t, err)
	assert.Equal(t, 3, len(list.Complexes))
}
