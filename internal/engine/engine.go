// Package engine implements the typing test state machine.
package engine

import (
	"time"

	"github.com/verte-zerg/typecrab/internal/key"
	"github.com/verte-zerg/typecrab/internal/model"
)

// Overrun is how many runes past the end of a word the learner may type
// before further characters are rejected.
const Overrun = 10

// Event is one entry of the keystroke log.
type Event struct {
	At  time.Time
	Key key.Key
	// Correct is the rune comparison for Char events and whether the word
	// matched its target for commit events. Backspace events are always
	// recorded as correct.
	Correct bool
	Word    int
	// Pos is the rune position inside the word for Char and Backspace
	// events, -1 for word-level events.
	Pos int
	// Erased is set on a Char event once the rune has been backspaced.
	Erased bool
}

// Word is a target word and the learner's typing for it. The typed slot
// survives commits so that backtracking restores it exactly.
type Word struct {
	Target []rune
	Typed  []rune

	entries []int
}

// Correct reports whether the typed runes equal the target.
func (w Word) Correct() bool {
	if len(w.Typed) != len(w.Target) {
		return false
	}
	for i, r := range w.Target {
		if w.Typed[i] != r {
			return false
		}
	}
	return true
}

func (w Word) clone() Word {
	return Word{
		Target:  append([]rune(nil), w.Target...),
		Typed:   append([]rune(nil), w.Typed...),
		entries: append([]int(nil), w.entries...),
	}
}

// Test is a single typing run. It has one owner and is only mutated by
// HandleKey; once complete it never changes again.
type Test struct {
	cfg      model.Config
	clock    Clock
	words    []Word
	current  int
	complete bool
	log      []Event
}

// New builds a test over the given words. A nil clock means SystemClock.
func New(words []string, cfg model.Config, clock Clock) *Test {
	if clock == nil {
		clock = SystemClock
	}
	t := &Test{
		cfg:   cfg,
		clock: clock,
		words: make([]Word, 0, len(words)+1),
	}
	for _, w := range words {
		t.words = append(t.words, Word{Target: []rune(w)})
	}
	if cfg.Mode == model.ModeZen && len(t.words) == 0 {
		t.words = append(t.words, Word{})
	}
	return t
}

// HandleKey applies one logical key. Keys that do not apply in the
// current state are ignored without touching the log.
func (t *Test) HandleKey(k key.Key) {
	if t.complete || t.current >= len(t.words) {
		return
	}
	switch k.Kind {
	case key.KindChar:
		t.typeRune(k)
	case key.KindSpace, key.KindEnter:
		t.commit(k)
	case key.KindBackspace:
		t.backspace(k)
	default:
		// Escape, CtrlC and unknown keys belong to the caller.
	}
}

func (t *Test) zen() bool {
	return t.cfg.Mode == model.ModeZen
}

func (t *Test) typeRune(k key.Key) {
	w := &t.words[t.current]
	if !t.zen() && len(w.Typed) >= len(w.Target)+Overrun {
		return
	}
	pos := len(w.Typed)
	correct := pos < len(w.Target) && w.Target[pos] == k.Rune
	w.Typed = append(w.Typed, k.Rune)
	w.entries = append(w.entries, len(t.log))
	t.record(k, correct, pos)
	if !correct && t.cfg.Death && !t.zen() {
		t.complete = true
	}
}

func (t *Test) commit(k key.Key) {
	w := &t.words[t.current]
	final := t.current == len(t.words)-1
	if len(w.Typed) == 0 {
		// Enter may end the test on an untouched final word.
		if k.Kind != key.KindEnter || !final || t.zen() {
			return
		}
	}
	t.record(k, w.Correct(), -1)
	t.current++
	if t.zen() {
		if t.current == len(t.words) {
			t.words = append(t.words, Word{})
		}
		return
	}
	if t.current == len(t.words) {
		t.complete = true
	}
}

func (t *Test) backspace(k key.Key) {
	w := &t.words[t.current]
	if n := len(w.Typed); n > 0 {
		t.log[w.entries[n-1]].Erased = true
		w.Typed = w.Typed[:n-1]
		w.entries = w.entries[:n-1]
		t.record(k, true, n-1)
		return
	}
	if !t.cfg.Backtrack || t.current == 0 {
		return
	}
	t.current--
	t.record(k, true, -1)
}

func (t *Test) record(k key.Key, correct bool, pos int) {
	t.log = append(t.log, Event{
		At:      t.clock.Now(),
		Key:     k,
		Correct: correct,
		Word:    t.current,
		Pos:     pos,
	})
}

// Config returns the configuration the test was built with.
func (t *Test) Config() model.Config { return t.cfg }

// Complete reports whether the test has reached its terminal state.
func (t *Test) Complete() bool { return t.complete }

// Current returns the index of the active word, len(words) once finished.
func (t *Test) Current() int { return t.current }

// Len returns the number of words in the test.
func (t *Test) Len() int { return len(t.words) }

// Started reports whether any key has been recorded.
func (t *Test) Started() bool { return len(t.log) > 0 }

// Typed returns a copy of the active word's buffer.
func (t *Test) Typed() []rune {
	if t.current >= len(t.words) {
		return nil
	}
	return append([]rune(nil), t.words[t.current].Typed...)
}

// Words returns a deep copy of the word sequence.
func (t *Test) Words() []Word {
	out := make([]Word, len(t.words))
	for i, w := range t.words {
		out[i] = w.clone()
	}
	return out
}

// Log returns a copy of the keystroke log.
func (t *Test) Log() []Event {
	return append([]Event(nil), t.log...)
}
