package report

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/verte-zerg/vigcrack/internal/model"
	"github.com/verte-zerg/vigcrack/internal/store"
)

const shortIDLen = 8

// History contains precomputed data for history rendering.
type History struct {
	Runs []model.Run
	// Detail is set when a single run was requested by ID prefix.
	Detail *model.Run
	Scores []model.LengthScore
}

// BuildHistory loads stored runs. When cfg.RunID is set it must match
// exactly one run, whose per-length scores are loaded too.
func BuildHistory(ctx context.Context, st *store.Store, cfg model.HistoryConfig) (History, error) {
	runs, err := st.ListRuns(ctx, cfg)
	if err != nil {
		return History{}, err
	}
	if cfg.RunID == "" {
		return History{Runs: runs}, nil
	}

	switch len(runs) {
	case 0:
		return History{}, fmt.Errorf("no run matches id %q", cfg.RunID)
	case 1:
	default:
		return History{}, fmt.Errorf("run id %q is ambiguous: %d runs match", cfg.RunID, len(runs))
	}
	scores, err := st.ListLengthScores(ctx, runs[0].ID)
	if err != nil {
		return History{}, err
	}
	detail := runs[0]
	return History{Runs: runs, Detail: &detail, Scores: scores}, nil
}

// RenderHistory prints the run list, or the stored detail of a single run.
func RenderHistory(w io.Writer, h History, width int, useColor bool) error {
	if width <= 0 {
		width = defaultWidth
	}
	if h.Detail != nil {
		return renderRunDetail(w, *h.Detail, h.Scores, width, useColor)
	}
	if len(h.Runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs recorded yet.")
		return err
	}

	p := painter{color: useColor}
	headers := []string{"ID", "Created", "Lang", "Len", "Key", "Letters", "Source"}
	rows := make([][]string, 0, len(h.Runs))
	for _, run := range h.Runs {
		rows = append(rows, []string{
			shortID(run.ID),
			run.CreatedAt.Local().Format("2006-01-02 15:04"),
			run.Lang,
			strconv.Itoa(run.SelectedLength),
			truncate(run.Key, 24),
			strconv.Itoa(run.Letters),
			run.Source,
		})
	}
	lines := []string{p.paint(titleStyle, fmt.Sprintf("Runs (%d)", len(h.Runs)))}
	lines = append(lines, formatTable(headers, rows, map[int]bool{3: true, 5: true})...)
	return writeLines(w, lines)
}

func renderRunDetail(w io.Writer, run model.Run, scores []model.LengthScore, width int, useColor bool) error {
	p := painter{color: useColor}
	lines := []string{
		p.paint(titleStyle, "Run "+run.ID),
		fmt.Sprintf("Created: %s", run.CreatedAt.Local().Format("2006-01-02 15:04:05")),
		fmt.Sprintf("Source: %s", run.Source),
		fmt.Sprintf("Language: %s", run.Lang),
		fmt.Sprintf("Characters: %d (%d letters)", run.CipherChars, run.Letters),
		fmt.Sprintf("Statistic: %s  Method: %s", run.Statistic, run.Method),
		fmt.Sprintf("Max key length: %d", run.MaxKeyLength),
		fmt.Sprintf("Selected length: %d", run.SelectedLength),
		fmt.Sprintf("Key: %s (length %d)", p.paint(keyStyle, run.Key), len(run.Key)),
	}
	if run.OutputPath != "" {
		lines = append(lines, fmt.Sprintf("Output: %s", run.OutputPath))
	}
	lines = append(lines, "")
	if err := writeLines(w, lines); err != nil {
		return err
	}
	return RenderScores(w, scores, run.SelectedLength, width, useColor)
}

func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}
