package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/typecrab/internal/engine"
	"github.com/verte-zerg/typecrab/internal/scheme"
)

func testScheme(t *testing.T) scheme.Scheme {
	t.Helper()
	sch, err := scheme.NewCatalog("").Load(scheme.DefaultName)
	require.NoError(t, err)
	return sch
}

func TestBuildStyledRunesCursor(t *testing.T) {
	sch := testScheme(t)
	words := []engine.Word{{Target: []rune("ab"), Typed: []rune("a")}}

	runes := buildStyledRunes(words, 0, sch)
	require.Len(t, runes, 2)
	assert.Equal(t, sch.Correct.Render("a"), runes[0].s)
	assert.Equal(t, sch.Cursor.Render("b"), runes[1].s)
}

func TestBuildStyledRunesCursorPastWord(t *testing.T) {
	sch := testScheme(t)
	words := []engine.Word{{Target: []rune("ab"), Typed: []rune("ab")}}

	runes := buildStyledRunes(words, 0, sch)
	require.Len(t, runes, 3)
	assert.Equal(t, sch.Cursor.Render("_"), runes[2].s)
	assert.False(t, runes[2].isSpace)
}

func TestBuildStyledRunesKeepsTargetOnMistype(t *testing.T) {
	sch := testScheme(t)
	words := []engine.Word{{Target: []rune("ab"), Typed: []rune("ax")}, {Target: []rune("c")}}

	runes := buildStyledRunes(words, 1, sch)
	require.Len(t, runes, 4)
	assert.Equal(t, sch.Correct.Render("a"), runes[0].s)
	assert.Equal(t, sch.Incorrect.Render("b"), runes[1].s)
	assert.True(t, runes[2].isSpace)
	assert.Equal(t, sch.Cursor.Render("c"), runes[3].s)
}

func TestBuildStyledRunesMissedAndExtra(t *testing.T) {
	sch := testScheme(t)
	words := []engine.Word{
		{Target: []rune("abc"), Typed: []rune("a")},
		{Target: []rune("d"), Typed: []rune("dee")},
		{Target: []rune("f")},
	}

	runes := buildStyledRunes(words, 2, sch)
	// "abc" + space + "dee" + space + "f"
	require.Len(t, runes, 9)
	assert.Equal(t, sch.Incorrect.Render("b"), runes[1].s)
	assert.Equal(t, sch.Incorrect.Render("c"), runes[2].s)
	assert.Equal(t, sch.Correct.Render("d"), runes[4].s)
	assert.Equal(t, sch.Incorrect.Render("e"), runes[5].s)
	assert.Equal(t, sch.Incorrect.Render("e"), runes[6].s)
}

func TestBuildStyledRunesWordHighlighting(t *testing.T) {
	sch := testScheme(t)
	words := []engine.Word{{Target: []rune("one"), Typed: []rune("o")}, {Target: []rune("two")}}

	runes := buildStyledRunes(words, 0, sch)
	assert.Equal(t, sch.Correct.Render("o"), runes[0].s)
	assert.Equal(t, sch.Cursor.Render("n"), runes[1].s)
	assert.Equal(t, sch.Current.Render("e"), runes[2].s)
	assert.Equal(t, sch.Pending.Render("t"), runes[4].s)
	assert.Equal(t, sch.Pending.Render("o"), runes[6].s)
}

func TestBuildStyledRunesFreeTyping(t *testing.T) {
	sch := testScheme(t)
	words := []engine.Word{{Typed: []rune("hi")}, {}}

	runes := buildStyledRunes(words, 1, sch)
	require.Len(t, runes, 4)
	assert.Equal(t, sch.Correct.Render("h"), runes[0].s)
	assert.Equal(t, sch.Correct.Render("i"), runes[1].s)
	assert.Equal(t, sch.Cursor.Render("_"), runes[3].s)
}

func plainRunes(text string) []styledRune {
	plain := func(s ...string) string { return strings.Join(s, "") }
	out := make([]styledRune, 0, len(text))
	for _, r := range text {
		out = append(out, newStyledRune(r, plain))
	}
	return out
}

func TestWrapStyledRunesBreaksOnSpaces(t *testing.T) {
	got := wrapStyledRunes(plainRunes("one two three"), 8)
	assert.Equal(t, "one two\nthree", got)
}

func TestWrapStyledRunesLongWord(t *testing.T) {
	got := wrapStyledRunes(plainRunes("abcdefgh"), 3)
	assert.Equal(t, "abc\ndef\ngh", got)
}

func TestWrapStyledRunesWideRunes(t *testing.T) {
	got := wrapStyledRunes(plainRunes("日本 語"), 5)
	assert.Equal(t, "日本\n語", got)
}

func TestWrapStyledRunesNoWidth(t *testing.T) {
	assert.Equal(t, "a b", wrapStyledRunes(plainRunes("a b"), 0))
}
