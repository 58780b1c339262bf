// Package report renders analysis results and run history as text.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/vigcrack/internal/alphabet"
	"github.com/verte-zerg/vigcrack/internal/cryptanalysis"
	"github.com/verte-zerg/vigcrack/internal/model"
)

const (
	defaultWidth = 80
	minBarWidth  = 10
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	keyStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F0F0F0"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

// Options controls result rendering.
type Options struct {
	Source     string
	Table      alphabet.Table
	Statistic  string
	Method     string
	OutputPath string
	// Coverage is the dictionary hit ratio of the plaintext, or nil when no
	// word list was given.
	Coverage *float64
	// Preview caps the plaintext shown; 0 shows all of it.
	Preview int
	Width   int
	Color   bool
}

type painter struct {
	color bool
}

func (p painter) paint(style lipgloss.Style, s string) string {
	if !p.color {
		return s
	}
	return style.Render(s)
}

// RenderResult prints the summary, per-length scores, alternative keys and
// a plaintext preview.
func RenderResult(w io.Writer, res cryptanalysis.Result, opts Options) error {
	width := opts.Width
	if width <= 0 {
		width = defaultWidth
	}
	p := painter{color: opts.Color}

	lines := []string{
		p.paint(titleStyle, "Analysis"),
		fmt.Sprintf("Source: %s", opts.Source),
		fmt.Sprintf("Language: %s (peak %c)", opts.Table.Lang, alphabet.Letter(opts.Table.Peak())),
		fmt.Sprintf("Characters: %d (%d letters)", len([]rune(res.Plaintext)), res.Letters),
		fmt.Sprintf("Statistic: %s  Method: %s", opts.Statistic, opts.Method),
		fmt.Sprintf("Selected length: %d", res.SelectedLength),
		fmt.Sprintf("Key: %s (length %d)", p.paint(keyStyle, res.Key), res.KeyLength),
	}
	if res.Ambiguous() {
		lines = append(lines, p.paint(warnStyle,
			fmt.Sprintf("Near ties: lengths %s score within tolerance of the selected length", joinInts(res.NearTies))))
	}
	if opts.Coverage != nil {
		lines = append(lines, fmt.Sprintf("Dictionary coverage: %.2f%%", *opts.Coverage*100))
	}
	if opts.OutputPath != "" {
		lines = append(lines, fmt.Sprintf("Output: %s", opts.OutputPath))
	}
	lines = append(lines, "")
	if err := writeLines(w, lines); err != nil {
		return err
	}

	if err := RenderScores(w, ScoresFromSlice(res.Scores), res.SelectedLength, width, opts.Color); err != nil {
		return err
	}
	if err := renderAlternatives(w, res.Alternatives, p); err != nil {
		return err
	}

	preview := truncate(res.Plaintext, opts.Preview)
	return writeLines(w, []string{
		p.paint(titleStyle, "Plaintext"),
		wrapText(preview, width),
		"",
	})
}

// ScoresFromSlice converts analyzer scores, indexed by length-1, into
// LengthScore rows.
func ScoresFromSlice(scores []float64) []model.LengthScore {
	out := make([]model.LengthScore, len(scores))
	for i, s := range scores {
		out[i] = model.LengthScore{Length: i + 1, Score: s}
	}
	return out
}

// RenderScores prints one row per candidate length with a proportional bar,
// followed by a sparkline of all scores.
func RenderScores(w io.Writer, scores []model.LengthScore, selected, width int, useColor bool) error {
	p := painter{color: useColor}
	if len(scores) == 0 {
		_, err := fmt.Fprintln(w, "No scores recorded.")
		return err
	}
	maxScore := 0.0
	values := make([]float64, len(scores))
	for i, ls := range scores {
		values[i] = ls.Score
		maxScore = max(maxScore, ls.Score)
	}

	barWidth := max(minBarWidth, width-20)
	headers := []string{"Len", "Score", ""}
	rows := make([][]string, 0, len(scores))
	for _, ls := range scores {
		marker := " "
		if ls.Length == selected {
			marker = "*"
		}
		rows = append(rows, []string{
			strconv.Itoa(ls.Length) + marker,
			fmt.Sprintf("%.5f", ls.Score),
			bar(ls.Score, maxScore, barWidth),
		})
	}
	table := formatTable(headers, rows, map[int]bool{0: true, 1: true})
	for i := 1; i < len(table); i++ {
		if scores[i-1].Length == selected {
			table[i] = p.paint(selectedStyle, table[i])
		}
	}

	out := append([]string{p.paint(titleStyle, "Coincidence by Key Length")}, table...)
	out = append(out, fmt.Sprintf("Trend: %s", Sparkline(values)), "")
	return writeLines(w, out)
}

func renderAlternatives(w io.Writer, keys []string, p painter) error {
	if len(keys) == 0 {
		return nil
	}
	lines := []string{p.paint(titleStyle, "Candidate Keys (by column frequency rank)")}
	for i, key := range keys {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, key))
	}
	lines = append(lines, "")
	return writeLines(w, lines)
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}
