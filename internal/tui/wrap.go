package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/typecrab/internal/engine"
	"github.com/verte-zerg/typecrab/internal/scheme"
)

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

func newStyledRune(r rune, render func(...string) string) styledRune {
	return styledRune{s: render(string(r)), width: runewidth.RuneWidth(r), isSpace: r == ' '}
}

// buildStyledRunes renders every word against its typing: committed words
// show hits and misses, the active word carries the cursor, later words
// are pending. Runes typed past a word's end are shown as misses.
func buildStyledRunes(words []engine.Word, current int, sch scheme.Scheme) []styledRune {
	out := make([]styledRune, 0, len(words)*6)
	for i, w := range words {
		if i > 0 {
			out = append(out, newStyledRune(' ', sch.Pending.Render))
		}
		switch {
		case i < current:
			out = appendTyped(out, w, sch, -1)
		case i == current:
			out = appendTyped(out, w, sch, len(w.Typed))
		default:
			for _, r := range w.Target {
				out = append(out, newStyledRune(r, sch.Pending.Render))
			}
		}
	}
	return out
}

// appendTyped renders one word. cursor is the rune index to underline, or
// -1 for none.
func appendTyped(out []styledRune, w engine.Word, sch scheme.Scheme, cursor int) []styledRune {
	active := cursor >= 0
	n := len(w.Target)
	if len(w.Typed) > n {
		n = len(w.Typed)
	}
	if active && cursor >= n {
		n = cursor + 1
	}
	for pos := 0; pos < n; pos++ {
		var (
			r      rune
			render = sch.Pending.Render
		)
		switch {
		case pos < len(w.Typed) && pos < len(w.Target):
			r = w.Target[pos]
			if w.Typed[pos] == r {
				render = sch.Correct.Render
			} else {
				render = sch.Incorrect.Render
			}
		case pos < len(w.Typed):
			r = w.Typed[pos]
			render = sch.Incorrect.Render
			if len(w.Target) == 0 {
				// Free typing has nothing to miss.
				render = sch.Correct.Render
			}
		case pos < len(w.Target):
			r = w.Target[pos]
			switch {
			case active:
				render = sch.Current.Render
			case pos >= len(w.Typed):
				render = sch.Incorrect.Render
			}
		default:
			r = ' '
		}
		if pos == cursor {
			render = sch.Cursor.Render
			if r == ' ' {
				// Keep the cursor cell from breaking the line.
				out = append(out, styledRune{s: render("_"), width: 1})
				continue
			}
		}
		out = append(out, newStyledRune(r, render))
	}
	return out
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out.WriteString(renderStyledRunes(line[:lastSpaceIdx]))
				out.WriteRune('\n')
				line = append([]styledRune{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				out.WriteString(renderStyledRunes(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
