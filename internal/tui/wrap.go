// Package tui provides the Bubble Tea portfolio interface.
package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// wrapText breaks text into lines no wider than width cells, splitting at the
// last space that fits and hard-breaking words longer than a line.
func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}
	var lines []string
	var line []rune
	lineWidth := 0
	lastSpace := -1

	flush := func(upTo int) {
		lines = append(lines, strings.TrimRight(string(line[:upTo]), " "))
	}

	for _, r := range []rune(strings.Join(strings.Fields(text), " ")) {
		w := runewidth.RuneWidth(r)
		if lineWidth+w > width && len(line) > 0 {
			if r == ' ' {
				flush(len(line))
				line = line[:0]
				lineWidth = 0
				lastSpace = -1
				continue
			}
			if lastSpace >= 0 {
				flush(lastSpace)
				line = append([]rune{}, line[lastSpace+1:]...)
			} else {
				flush(len(line))
				line = line[:0]
			}
			lineWidth = runewidth.StringWidth(string(line))
			lastSpace = lastSpaceIndex(line)
		}
		line = append(line, r)
		lineWidth += w
		if r == ' ' {
			lastSpace = len(line) - 1
		}
	}
	if len(line) > 0 || len(lines) == 0 {
		flush(len(line))
	}
	return lines
}

func lastSpaceIndex(line []rune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i] == ' ' {
			return i
		}
	}
	return -1
}

// cutColumns returns the cells of s from column start, at most width cells wide.
// Wide runes straddling either edge are replaced by spaces.
func cutColumns(s string, start, width int) string {
	if width <= 0 {
		return ""
	}
	var b strings.Builder
	col := 0
	out := 0
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if col+w <= start {
			col += w
			continue
		}
		if col < start {
			// Straddles the left edge.
			pad := col + w - start
			col += w
			for i := 0; i < pad && out < width; i++ {
				b.WriteByte(' ')
				out++
			}
			continue
		}
		if out+w > width {
			for out < width {
				b.WriteByte(' ')
				out++
			}
			break
		}
		b.WriteRune(r)
		out += w
		col += w
	}
	return b.String()
}
