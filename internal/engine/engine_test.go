package engine

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/typecrab/internal/key"
	"github.com/verte-zerg/typecrab/internal/model"
)

func defaultConfig() model.Config {
	return model.Config{Mode: model.ModeWords, Lang: "en", Words: 3, Backtrack: true}
}

func typeText(tst *Test, clock *ManualClock, text string) {
	for _, r := range text {
		clock.Advance(100 * time.Millisecond)
		switch r {
		case ' ':
			tst.HandleKey(key.Space)
		case '\n':
			tst.HandleKey(key.Enter)
		case '\b':
			tst.HandleKey(key.Backspace)
		default:
			tst.HandleKey(key.Char(r))
		}
	}
}

type snapshot struct {
	current  int
	complete bool
	typed    []rune
	log      []Event
	words    []Word
}

func snap(tst *Test) snapshot {
	return snapshot{
		current:  tst.Current(),
		complete: tst.Complete(),
		typed:    tst.Typed(),
		log:      tst.Log(),
		words:    tst.Words(),
	}
}

func TestNewInitialState(t *testing.T) {
	tst := New([]string{"a", "b"}, defaultConfig(), nil)
	assert.Equal(t, 0, tst.Current())
	assert.False(t, tst.Complete())
	assert.Empty(t, tst.Typed())
	assert.Empty(t, tst.Log())
	assert.Equal(t, 2, tst.Len())
	assert.False(t, tst.Started())
}

func TestExactTypingCompletes(t *testing.T) {
	words := []string{"the", "quick", "brown"}
	clock := NewManualClock(time.Unix(0, 0))
	tst := New(words, defaultConfig(), clock)

	typeText(tst, clock, "the quick brown\n")

	require.True(t, tst.Complete())
	assert.Equal(t, len(words), tst.Current())
	for _, w := range tst.Words() {
		assert.True(t, w.Correct(), "word %q typed as %q", string(w.Target), string(w.Typed))
	}
	for _, ev := range tst.Log() {
		assert.True(t, ev.Correct, "event %v", ev.Key)
		assert.False(t, ev.Erased)
	}
	assert.Len(t, tst.Log(), 16)
}

func TestSpaceCommitsFinalWord(t *testing.T) {
	tst := New([]string{"ab"}, defaultConfig(), nil)
	typeText(tst, NewManualClock(time.Unix(0, 0)), "ab ")
	assert.True(t, tst.Complete())
}

func TestCharComparison(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	tst := New([]string{"cat"}, defaultConfig(), clock)
	typeText(tst, clock, "cxt")

	log := tst.Log()
	require.Len(t, log, 3)
	assert.True(t, log[0].Correct)
	assert.False(t, log[1].Correct)
	assert.True(t, log[2].Correct)
	assert.Equal(t, 1, log[1].Pos)
	assert.Equal(t, []rune("cxt"), tst.Typed())
}

func TestOverrunRejected(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	tst := New([]string{"ab"}, defaultConfig(), clock)
	typeText(tst, clock, strings.Repeat("z", 2+Overrun+5))

	assert.Len(t, tst.Typed(), 2+Overrun)
	assert.Len(t, tst.Log(), 2+Overrun)
	for _, ev := range tst.Log() {
		assert.False(t, ev.Correct)
	}
}

func TestEmptyCommitIgnored(t *testing.T) {
	tst := New([]string{"a", "b"}, defaultConfig(), nil)
	before := snap(tst)
	tst.HandleKey(key.Space)
	tst.HandleKey(key.Enter)
	assert.Equal(t, before, snap(tst))
}

func TestEnterCommitsEmptyFinalWord(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	tst := New([]string{"a", "b"}, defaultConfig(), clock)
	typeText(tst, clock, "a ")

	tst.HandleKey(key.Space)
	assert.False(t, tst.Complete())

	tst.HandleKey(key.Enter)
	assert.True(t, tst.Complete())
	log := tst.Log()
	assert.False(t, log[len(log)-1].Correct)
}

func TestBackspaceMarksErased(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	tst := New([]string{"ab"}, defaultConfig(), clock)
	typeText(tst, clock, "ax\bb")

	assert.Equal(t, []rune("ab"), tst.Typed())
	log := tst.Log()
	require.Len(t, log, 4)
	assert.True(t, log[1].Erased, "mistyped rune stays in the log, marked erased")
	assert.Equal(t, key.Backspace, log[2].Key)
	assert.False(t, log[3].Erased)
	assert.True(t, log[3].Correct)
}

func TestBackspaceAtStartIsNoop(t *testing.T) {
	tst := New([]string{"a", "b"}, defaultConfig(), nil)
	before := snap(tst)
	for i := 0; i < 3; i++ {
		tst.HandleKey(key.Backspace)
	}
	assert.Equal(t, before, snap(tst))
}

func TestBacktrackRestoresCommittedWord(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	tst := New([]string{"one", "two", "six"}, defaultConfig(), clock)
	typeText(tst, clock, "one twx ")
	require.Equal(t, 2, tst.Current())

	tst.HandleKey(key.Backspace)
	assert.Equal(t, 1, tst.Current())
	assert.Equal(t, []rune("twx"), tst.Typed())

	typeText(tst, clock, "\bo ")
	assert.Equal(t, 2, tst.Current())
	assert.True(t, tst.Words()[1].Correct())

	// Correct words are revisited too.
	tst.HandleKey(key.Backspace)
	assert.Equal(t, []rune("two"), tst.Typed())
	typeText(tst, clock, "\b\b\b\b")
	assert.Equal(t, 0, tst.Current())
	assert.Equal(t, []rune("one"), tst.Typed())
}

func TestStrictModeNeverReentersCommittedWord(t *testing.T) {
	cfg := defaultConfig()
	cfg.Backtrack = false
	clock := NewManualClock(time.Unix(0, 0))
	tst := New([]string{"one", "two", "six"}, cfg, clock)
	typeText(tst, clock, "onx tw")
	require.Equal(t, 1, tst.Current())

	for i := 0; i < 5; i++ {
		tst.HandleKey(key.Backspace)
		assert.GreaterOrEqual(t, tst.Current(), 1)
	}
	assert.Empty(t, tst.Typed())
	assert.Equal(t, []rune("onx"), tst.Words()[0].Typed)
}

func TestSuddenDeath(t *testing.T) {
	cfg := defaultConfig()
	cfg.Death = true
	clock := NewManualClock(time.Unix(0, 0))
	tst := New([]string{"cat"}, cfg, clock)

	tst.HandleKey(key.Char('c'))
	assert.False(t, tst.Complete())
	tst.HandleKey(key.Char('x'))
	require.True(t, tst.Complete())

	before := snap(tst)
	for _, k := range []key.Key{key.Char('a'), key.Backspace, key.Space, key.Enter} {
		tst.HandleKey(k)
		assert.Equal(t, before, snap(tst))
	}
}

func TestCompleteIsTerminal(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	tst := New([]string{"a"}, defaultConfig(), clock)
	typeText(tst, clock, "a\n")
	require.True(t, tst.Complete())

	before := snap(tst)
	typeText(tst, clock, "bb\b \n")
	assert.Equal(t, before, snap(tst))
}

func TestAbortKeysIgnored(t *testing.T) {
	tst := New([]string{"a"}, defaultConfig(), nil)
	before := snap(tst)
	tst.HandleKey(key.Escape)
	tst.HandleKey(key.CtrlC)
	tst.HandleKey(key.Other("F5"))
	assert.Equal(t, before, snap(tst))
}

func TestZenNeverCompletes(t *testing.T) {
	cfg := model.Config{Mode: model.ModeZen, Death: true, Backtrack: true}
	clock := NewManualClock(time.Unix(0, 0))
	tst := New(nil, cfg, clock)

	typeText(tst, clock, strings.Repeat("q", 3*Overrun)+" free typing\n")
	assert.False(t, tst.Complete(), "zen ignores sudden death and word exhaustion")
	assert.Equal(t, 3, tst.Current())
	assert.Equal(t, 4, tst.Len())
	assert.Len(t, tst.Words()[0].Typed, 3*Overrun)
}

func TestTimestampsFromClock(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := NewManualClock(start)
	tst := New([]string{"ab"}, defaultConfig(), clock)
	tst.HandleKey(key.Char('a'))
	clock.Advance(time.Second)
	tst.HandleKey(key.Char('b'))

	log := tst.Log()
	assert.Equal(t, start, log[0].At)
	assert.Equal(t, start.Add(time.Second), log[1].At)
}

func TestAccessorsReturnCopies(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	tst := New([]string{"ab"}, defaultConfig(), clock)
	tst.HandleKey(key.Char('a'))

	typed := tst.Typed()
	typed[0] = 'z'
	words := tst.Words()
	words[0].Typed[0] = 'z'
	log := tst.Log()
	log[0].Erased = true

	assert.Equal(t, []rune("a"), tst.Typed())
	assert.False(t, tst.Log()[0].Erased)
}
