// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	binding "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/verte-zerg/typecrab/internal/engine"
	"github.com/verte-zerg/typecrab/internal/model"
	"github.com/verte-zerg/typecrab/internal/results"
	"github.com/verte-zerg/typecrab/internal/scheme"
)

const (
	tickInterval    = 100 * time.Millisecond
	warningDuration = 3 * time.Second
	contentRatio    = 0.70
)

type screen int

const (
	screenStart screen = iota
	screenTest
	screenResults
)

type tickMsg time.Time

// keyMap feeds the help line and the start screen. Typing keys reach the
// engine through keysFromMsg; Next and Fix are only shown, never matched.
type keyMap struct {
	Quit binding.Binding
	Next binding.Binding
	Fix  binding.Binding
}

func (k keyMap) ShortHelp() []binding.Binding {
	return []binding.Binding{k.Next, k.Fix, k.Quit}
}

func (k keyMap) FullHelp() [][]binding.Binding {
	return [][]binding.Binding{k.ShortHelp()}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: binding.NewBinding(binding.WithKeys("esc", "ctrl+c"), binding.WithHelp("esc", "quit")),
		Next: binding.NewBinding(binding.WithKeys(" "), binding.WithHelp("space", "next word")),
		Fix:  binding.NewBinding(binding.WithKeys("backspace"), binding.WithHelp("backspace", "fix")),
	}
}

// Model implements the Bubble Tea typing UI.
type Model struct {
	test    *engine.Test
	cfg     model.Config
	scheme  scheme.Scheme
	clock   engine.Clock
	logger  *zap.Logger
	keys    keyMap
	help    help.Model
	bar     progress.Model
	warning string

	width  int
	height int

	screen    screen
	startedAt time.Time
	now       time.Time
	aborted   bool
	results   *results.Results
}

// NewModel constructs a typing TUI model. warning is shown for the first
// seconds of the test. clock must be the one the test was built with.
func NewModel(test *engine.Test, sch scheme.Scheme, warning string, clock engine.Clock, logger *zap.Logger) *Model {
	if clock == nil {
		clock = engine.SystemClock
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	bar := progress.New(progress.WithSolidFill(sch.Accent), progress.WithoutPercentage())
	return &Model{
		test:    test,
		cfg:     test.Config(),
		scheme:  sch,
		clock:   clock,
		logger:  logger,
		keys:    defaultKeyMap(),
		help:    help.New(),
		bar:     bar,
		warning: warning,
	}
}

// Aborted reports whether the user quit before the test ended.
func (m *Model) Aborted() bool {
	return m.aborted
}

// Results returns the final metrics once the results screen was reached.
func (m *Model) Results() (results.Results, bool) {
	if m.results == nil {
		return results.Results{}, false
	}
	return *m.results, true
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = m.contentWidth()
		return m, nil
	case tickMsg:
		if m.screen != screenTest {
			return m, nil
		}
		return m, m.onTick()
	case tea.KeyMsg:
		switch m.screen {
		case screenStart:
			if binding.Matches(msg, m.keys.Quit) {
				return m, m.abort()
			}
			m.begin()
			return m, tick()
		case screenTest:
			return m, m.onKey(msg)
		default:
			return m, tea.Quit
		}
	default:
		return m, nil
	}
}

func (m *Model) begin() {
	m.screen = screenTest
	m.startedAt = m.clock.Now()
	m.now = m.startedAt
	m.logger.Info("test started",
		zap.String("mode", m.cfg.Mode.String()),
		zap.String("lang", m.cfg.Lang),
		zap.Int("words", m.test.Len()),
		zap.Int("time_limit", m.cfg.TimeLimit),
	)
}

func (m *Model) onKey(msg tea.KeyMsg) tea.Cmd {
	for _, k := range keysFromMsg(msg) {
		m.test.HandleKey(k)
		if k.IsAbort() {
			return m.abort()
		}
		if m.test.Complete() {
			return m.finish("complete")
		}
	}
	return nil
}

func (m *Model) onTick() tea.Cmd {
	m.now = m.clock.Now()
	elapsed := m.now.Sub(m.startedAt)
	if m.warning != "" && elapsed >= warningDuration {
		m.warning = ""
	}
	if m.cfg.HasTimeLimit() && m.timeLeft() <= 0 {
		return m.finish("time limit")
	}
	return tick()
}

func (m *Model) timeLeft() int {
	elapsed := int(m.now.Sub(m.startedAt) / time.Second)
	return m.cfg.TimeLimit - elapsed
}

func (m *Model) abort() tea.Cmd {
	m.aborted = true
	m.logger.Info("test aborted", zap.Int("word", m.test.Current()))
	return tea.Quit
}

func (m *Model) finish(reason string) tea.Cmd {
	if m.cfg.Mode == model.ModeZen {
		m.logger.Info("zen session ended", zap.Int("words", m.test.Current()))
		return tea.Quit
	}
	res, msg, err := results.Process(results.FromTest(m.test)).Unwrap()
	if err != nil {
		m.logger.Error("failed to process results", zap.Error(err))
		return tea.Quit
	}
	if msg != "" {
		m.logger.Warn("results warning", zap.String("warning", msg))
	}
	m.results = &res
	m.screen = screenResults
	m.logger.Info("test finished",
		zap.String("reason", reason),
		zap.Float64("wpm", res.NetWPM),
		zap.Float64("raw_wpm", res.RawWPM),
		zap.Float64("accuracy", res.Accuracy),
		zap.Float64("consistency", res.Consistency),
		zap.Duration("elapsed", res.Elapsed),
	)
	return nil
}

// View implements tea.Model.
func (m *Model) View() string {
	var content string
	switch m.screen {
	case screenStart:
		content = m.renderStart()
	case screenTest:
		content = m.renderTest()
	default:
		content = m.renderResults()
	}
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) contentWidth() int {
	w := int(float64(m.width) * contentRatio)
	if w < 1 {
		w = 1
	}
	return w
}

func (m *Model) renderStart() string {
	lines := []string{
		m.scheme.Title.Render("typecrab"),
		"",
		m.scheme.Status.Render(m.describeTest()),
		"",
		m.scheme.Pending.Render("press any key to start"),
		m.help.View(m.keys),
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func (m *Model) describeTest() string {
	parts := []string{m.cfg.Mode.String()}
	if m.cfg.Lang != "" {
		parts = append(parts, m.cfg.Lang)
	}
	if m.cfg.Mode == model.ModeWords {
		parts = append(parts, fmt.Sprintf("%d words", m.test.Len()))
	}
	if m.cfg.HasTimeLimit() {
		parts = append(parts, fmt.Sprintf("%ds", m.cfg.TimeLimit))
	}
	for _, flag := range []struct {
		on   bool
		name string
	}{
		{m.cfg.Punctuation, "punctuation"},
		{m.cfg.Numbers, "numbers"},
		{!m.cfg.Backtrack, "strict"},
		{m.cfg.Death, "sudden death"},
	} {
		if flag.on {
			parts = append(parts, flag.name)
		}
	}
	return strings.Join(parts, " · ")
}

func (m *Model) renderTest() string {
	runes := buildStyledRunes(m.test.Words(), m.test.Current(), m.scheme)
	if m.width == 0 {
		return m.renderStatus() + "\n" + renderStyledRunes(runes)
	}
	width := m.contentWidth()
	text := lipgloss.NewStyle().Width(width).Render(wrapStyledRunes(runes, width))
	return lipgloss.JoinVertical(lipgloss.Left, m.renderStatus(), "", text, "", m.bar.ViewAs(m.progress()))
}

// renderStatus picks the warning first, then the time left, then the word
// counter.
func (m *Model) renderStatus() string {
	switch {
	case m.warning != "":
		return m.scheme.Warning.Render("warning: " + m.warning)
	case m.cfg.HasTimeLimit():
		return m.scheme.Status.Render(fmt.Sprintf("%d", m.timeLeft()))
	case m.cfg.Mode == model.ModeZen:
		return m.scheme.Status.Render(fmt.Sprintf("%d", m.test.Current()))
	default:
		return m.scheme.Status.Render(fmt.Sprintf("%d/%d", m.test.Current(), m.test.Len()))
	}
}

func (m *Model) progress() float64 {
	if m.cfg.HasTimeLimit() {
		spent := m.now.Sub(m.startedAt).Seconds() / float64(m.cfg.TimeLimit)
		return clamp01(spent)
	}
	if m.cfg.Mode == model.ModeZen || m.test.Len() == 0 {
		return 0
	}
	return clamp01(float64(m.test.Current()) / float64(m.test.Len()))
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
