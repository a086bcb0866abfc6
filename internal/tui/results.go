package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typecrab/internal/chart"
	"github.com/verte-zerg/typecrab/internal/results"
)

// Width below which cards stack vertically.
const cardRowMinWidth = 80

var (
	cardStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardValueStyle = lipgloss.NewStyle().Bold(true)
)

func (m *Model) renderResults() string {
	if m.results == nil {
		return ""
	}
	res := *m.results
	title := m.scheme.Title.Render(fmt.Sprintf("%s · %s", res.Mode, langOrDash(res.Lang)))
	parts := []string{title, "", m.renderCards(res)}

	width := 0
	if m.width > 0 {
		width = m.contentWidth()
	}
	if c := chart.Render(res.Timeline, width, chart.DefaultHeight, "wpm"); len(c.Lines) > 0 {
		parts = append(parts, "", m.scheme.Status.Render(c.String()))
	}
	parts = append(parts, "", m.scheme.Pending.Render("press any key to exit"))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) renderCards(res results.Results) string {
	cards := []string{
		m.metricCard("wpm", fmt.Sprintf("%.1f", res.NetWPM)),
		m.metricCard("raw", fmt.Sprintf("%.1f", res.RawWPM)),
		m.metricCard("accuracy", fmt.Sprintf("%.1f%%", res.Accuracy)),
		m.metricCard("consistency", fmt.Sprintf("%.1f%%", res.Consistency)),
		m.metricCard("characters", fmt.Sprintf("%d/%d/%d", res.Correct, res.Incorrect, res.Corrected)),
		m.metricCard("time", formatElapsed(res.Elapsed)),
	}
	if m.width > 0 && m.width < cardRowMinWidth {
		return strings.Join(cards, "\n")
	}
	row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1], cards[2])
	row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[3], cards[4], cards[5])
	return lipgloss.JoinVertical(lipgloss.Left, row1, row2)
}

func (m *Model) metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", m.scheme.Pending.Render(label), cardValueStyle.Inherit(m.scheme.Correct).Render(value))
	return cardStyle.Render(content)
}

func formatElapsed(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}

func langOrDash(lang string) string {
	if lang == "" {
		return "-"
	}
	return lang
}
