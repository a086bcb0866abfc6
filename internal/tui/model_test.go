package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/typecrab/internal/engine"
	"github.com/verte-zerg/typecrab/internal/model"
)

func newTestModel(t *testing.T, words []string, cfg model.Config, warning string) (*Model, *engine.ManualClock) {
	t.Helper()
	clock := engine.NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	test := engine.New(words, cfg, clock)
	return NewModel(test, testScheme(t), warning, clock, nil), clock
}

func wordsConfig() model.Config {
	return model.Config{Mode: model.ModeWords, Lang: "en", Words: 2, Backtrack: true}
}

func typed(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func isQuit(t *testing.T, cmd tea.Cmd) bool {
	t.Helper()
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestStartScreenAnyKeyStarts(t *testing.T) {
	m, _ := newTestModel(t, []string{"ab", "cd"}, wordsConfig(), "")
	assert.Contains(t, m.View(), "press any key to start")

	_, cmd := m.Update(typed("x"))
	require.NotNil(t, cmd)
	assert.Equal(t, screenTest, m.screen)
	assert.False(t, m.test.Started(), "the starting key is not typed")
}

func TestStartScreenEscQuits(t *testing.T) {
	m, _ := newTestModel(t, []string{"ab"}, wordsConfig(), "")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, isQuit(t, cmd))
	assert.True(t, m.Aborted())
}

func TestCompletionShowsResults(t *testing.T) {
	m, clock := newTestModel(t, []string{"ab", "cd"}, wordsConfig(), "")
	m.Update(typed("x"))

	for _, r := range "ab cd" {
		clock.Advance(200 * time.Millisecond)
		m.Update(typed(string(r)))
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	assert.Nil(t, cmd)
	assert.Equal(t, screenResults, m.screen)

	res, ok := m.Results()
	require.True(t, ok)
	assert.Equal(t, 4, res.Correct)
	assert.InDelta(t, 100.0, res.Accuracy, 1e-9)
	assert.Contains(t, m.View(), "press any key to exit")

	_, cmd = m.Update(typed("q"))
	assert.True(t, isQuit(t, cmd))
	assert.False(t, m.Aborted())
}

func TestEscAbortsWithoutResults(t *testing.T) {
	m, _ := newTestModel(t, []string{"ab", "cd"}, wordsConfig(), "")
	m.Update(typed("x"))
	m.Update(typed("a"))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, isQuit(t, cmd))
	assert.True(t, m.Aborted())
	_, ok := m.Results()
	assert.False(t, ok)
}

func TestTimeLimitEndsTest(t *testing.T) {
	cfg := wordsConfig()
	cfg.TimeLimit = 5
	m, clock := newTestModel(t, []string{"ab", "cd"}, cfg, "")
	m.Update(typed("x"))
	m.Update(typed("a"))

	clock.Advance(2 * time.Second)
	_, cmd := m.Update(tickMsg(clock.Now()))
	require.NotNil(t, cmd)
	assert.Contains(t, m.renderStatus(), "3")

	clock.Advance(3 * time.Second)
	_, cmd = m.Update(tickMsg(clock.Now()))
	assert.Nil(t, cmd)
	assert.Equal(t, screenResults, m.screen)
}

func TestWarningHasPriorityForThreeSeconds(t *testing.T) {
	m, clock := newTestModel(t, []string{"ab", "cd"}, wordsConfig(), "no quotes for \"de\"")
	m.Update(typed("x"))
	assert.Contains(t, m.renderStatus(), "warning: no quotes")

	clock.Advance(3 * time.Second)
	m.Update(tickMsg(clock.Now()))
	assert.NotContains(t, m.renderStatus(), "warning")
	assert.Contains(t, m.renderStatus(), "0/2")
}

func TestZenEndsWithoutResults(t *testing.T) {
	m, _ := newTestModel(t, nil, model.Config{Mode: model.ModeZen, Backtrack: true}, "")
	m.Update(typed("x"))
	m.Update(typed("free words"))
	assert.Contains(t, m.renderStatus(), "1")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, isQuit(t, cmd))
	_, ok := m.Results()
	assert.False(t, ok)
}

func TestSuddenDeathShowsResults(t *testing.T) {
	cfg := wordsConfig()
	cfg.Death = true
	m, _ := newTestModel(t, []string{"ab", "cd"}, cfg, "")
	m.Update(typed("x"))
	m.Update(typed("x"))

	assert.Equal(t, screenResults, m.screen)
	res, ok := m.Results()
	require.True(t, ok)
	assert.Equal(t, 1, res.Incorrect)
}

func TestProgress(t *testing.T) {
	m, _ := newTestModel(t, []string{"ab", "cd"}, wordsConfig(), "")
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m.Update(typed("x"))
	m.Update(typed("ab "))
	assert.InDelta(t, 0.5, m.progress(), 1e-9)
	assert.NotEmpty(t, m.View())
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, clamp01(-1))
	assert.Equal(t, 1.0, clamp01(2))
	assert.Equal(t, 0.25, clamp01(0.25))
}

func TestHelpLineListsKeys(t *testing.T) {
	m, _ := newTestModel(t, []string{"ab"}, wordsConfig(), "")
	view := m.View()
	for _, want := range []string{"space", "next word", "backspace", "esc", "quit"} {
		assert.Contains(t, view, want)
	}
}
