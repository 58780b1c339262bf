package report

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

// wrapText breaks text into lines no wider than width, splitting at the
// last space when one is available. Existing newlines are kept.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	paragraphs := strings.Split(text, "\n")
	for i, p := range paragraphs {
		paragraphs[i] = wrapLine([]rune(p), width)
	}
	return strings.Join(paragraphs, "\n")
}

func wrapLine(runes []rune, width int) string {
	var out strings.Builder
	line := make([]rune, 0, width)
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		r := runes[i]
		if len(line) == 0 && out.Len() > 0 && unicode.IsSpace(r) {
			i++
			continue
		}
		w := runewidth.RuneWidth(r)
		if lineWidth+w > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out.WriteString(string(line[:lastSpaceIdx]))
				out.WriteRune('\n')
				line = append([]rune{}, line[lastSpaceIdx+1:]...)
			} else {
				out.WriteString(string(line))
				out.WriteRune('\n')
				line = line[:0]
			}
			lineWidth = runewidth.StringWidth(string(line))
			lastSpaceIdx = lastSpaceIndex(line)
			continue
		}
		line = append(line, r)
		lineWidth += w
		if unicode.IsSpace(r) {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(string(line))
	return out.String()
}

func lastSpaceIndex(line []rune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if unicode.IsSpace(line[i]) {
			return i
		}
	}
	return -1
}

// truncate cuts text to at most n runes, marking the cut with an ellipsis.
func truncate(text string, n int) string {
	if n <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "…"
}
