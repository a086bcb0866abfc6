// Package chart draws small braille line charts for terminal output.
package chart

import (
	"fmt"
	"math"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

const (
	// DefaultHeight is the chart height in terminal rows.
	DefaultHeight       = 6
	minWidth            = 10
	axisSeparator       = " │ "
	terminalWidthBackup = 80
)

// Chart is a rendered chart split into lines.
type Chart struct {
	Lines []string
	// Max is the value at the top of the y axis.
	Max float64
}

func (c Chart) String() string {
	return strings.Join(c.Lines, "\n")
}

// Render plots values on a zero-based y axis. width counts terminal cells
// of the plot area including the axis; 0 means the terminal width.
func Render(values []float64, width, height int, unit string) Chart {
	if len(values) == 0 {
		return Chart{}
	}
	if height <= 0 {
		height = DefaultHeight
	}
	maxVal := 0.0
	for _, v := range values {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal <= 0 {
		maxVal = 1
	}
	maxVal = math.Ceil(maxVal)

	labels := axisLabels(maxVal, height, unit)
	labelWidth := 0
	for _, l := range labels {
		if n := utf8.RuneCountInString(l); n > labelWidth {
			labelWidth = n
		}
	}
	if width <= 0 {
		width = terminalWidth()
	}
	plotWidth := PlotWidthFor(width, labelWidth)

	// Two braille dot columns and four dot rows per cell.
	dotsX := plotWidth * 2
	dotsY := height * 4
	points := Resample(values, dotsX)
	cells := makeCells(height, plotWidth)
	prevX, prevY := -1, -1
	for x, v := range points {
		y := valueToRow(v, maxVal, dotsY)
		if prevX >= 0 {
			drawLine(prevX, prevY, x, y, func(dx, dy int) { setBrailleDot(cells, dx, dy) })
		} else {
			setBrailleDot(cells, x, y)
		}
		prevX, prevY = x, y
	}

	lines := make([]string, 0, height)
	for y := 0; y < height; y++ {
		var row strings.Builder
		row.WriteString(fmt.Sprintf("%*s%s", labelWidth, labels[y], axisSeparator))
		for _, mask := range cells[y] {
			row.WriteRune(brailleFromMask(mask))
		}
		lines = append(lines, row.String())
	}
	return Chart{Lines: lines, Max: maxVal}
}

// PlotWidthFor computes the plot area that fits next to an axis of the
// given label width.
func PlotWidthFor(totalWidth, labelWidth int) int {
	w := totalWidth - labelWidth - utf8.RuneCountInString(axisSeparator)
	if w < minWidth {
		w = minWidth
	}
	return w
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func axisLabels(maxVal float64, height int, unit string) []string {
	labels := make([]string, height)
	labels[0] = fmt.Sprintf("%.0f %s", maxVal, unit)
	if height > 2 {
		labels[height/2] = fmt.Sprintf("%.0f", maxVal*float64(height-1-height/2)/float64(height-1))
	}
	if height > 1 {
		labels[height-1] = "0"
	}
	return labels
}

func makeCells(height, width int) [][]uint8 {
	cells := make([][]uint8, height)
	for y := range cells {
		cells[y] = make([]uint8, width)
	}
	return cells
}

// Resample stretches or averages values to exactly width points.
func Resample(values []float64, width int) []float64 {
	if len(values) == 0 || width <= 0 {
		return nil
	}
	out := make([]float64, width)
	switch {
	case len(values) == width:
		copy(out, values)
	case len(values) > width:
		for i := 0; i < width; i++ {
			start := i * len(values) / width
			end := (i + 1) * len(values) / width
			if end <= start {
				end = start + 1
			}
			var sum float64
			for _, v := range values[start:end] {
				sum += v
			}
			out[i] = sum / float64(end-start)
		}
	case len(values) == 1 || width == 1:
		for i := range out {
			out[i] = values[0]
		}
	default:
		for i := 0; i < width; i++ {
			pos := float64(i) * float64(len(values)-1) / float64(width-1)
			idx := int(pos)
			if idx >= len(values)-1 {
				out[i] = values[len(values)-1]
				continue
			}
			frac := pos - float64(idx)
			out[i] = values[idx]*(1-frac) + values[idx+1]*frac
		}
	}
	return out
}

func valueToRow(v, maxVal float64, dots int) int {
	if dots <= 1 {
		return 0
	}
	row := int(math.Round((1 - v/maxVal) * float64(dots-1)))
	if row < 0 {
		row = 0
	}
	if row >= dots {
		row = dots - 1
	}
	return row
}

// drawLine walks a Bresenham line between two dot positions.
func drawLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func setBrailleDot(cells [][]uint8, x, y int) {
	if x < 0 || y < 0 {
		return
	}
	cy, cx := y/4, x/2
	if cy >= len(cells) || cx >= len(cells[cy]) {
		return
	}
	cells[cy][cx] |= brailleDotMask(x%2, y%4)
}

// brailleDotMask maps a dot inside a 2x4 cell to its Unicode bit.
func brailleDotMask(x, y int) uint8 {
	left := [4]uint8{0x01, 0x02, 0x04, 0x40}
	right := [4]uint8{0x08, 0x10, 0x20, 0x80}
	if x == 0 {
		return left[y]
	}
	return right[y]
}

func brailleFromMask(mask uint8) rune {
	return rune(0x2800 + int(mask))
}
