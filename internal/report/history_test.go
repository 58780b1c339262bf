package report

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/vigcrack/internal/model"
	"github.com/verte-zerg/vigcrack/internal/store"
)

func seedStore(t *testing.T) (*store.Store, []string) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "vigcrack.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	ids := []string{"aaaa1111-0000", "aaaa2222-0000", "bbbb3333-0000"}
	for i, id := range ids {
		run := model.Run{
			ID:             id,
			CreatedAt:      base.Add(time.Duration(i) * time.Minute),
			Source:         "stdin",
			Lang:           "English",
			MaxKeyLength:   8,
			Statistic:      "squared",
			Method:         "peak",
			SelectedLength: 3,
			Key:            "LEMON",
			CipherChars:    200,
			Letters:        160,
		}
		scores := []model.LengthScore{{Length: 1, Score: 0.04}, {Length: 2, Score: 0.045}, {Length: 3, Score: 0.066}}
		if _, err := st.InsertRun(ctx, run, scores); err != nil {
			t.Fatalf("insert run: %v", err)
		}
	}
	return st, ids
}

func TestBuildHistoryLists(t *testing.T) {
	st, ids := seedStore(t)
	h, err := BuildHistory(context.Background(), st, model.HistoryConfig{Last: 2})
	if err != nil {
		t.Fatalf("build history: %v", err)
	}
	if len(h.Runs) != 2 || h.Runs[0].ID != ids[1] || h.Runs[1].ID != ids[2] {
		t.Fatalf("unexpected runs: %+v", h.Runs)
	}
	if h.Detail != nil {
		t.Fatalf("expected no detail without run id")
	}

	var buf bytes.Buffer
	if err := RenderHistory(&buf, h, 80, false); err != nil {
		t.Fatalf("render history: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Runs (2)") || !strings.Contains(out, "aaaa2222") || !strings.Contains(out, "bbbb3333") {
		t.Fatalf("unexpected history output:\n%s", out)
	}
	if strings.Contains(out, "aaaa1111") {
		t.Fatalf("expected oldest run to be dropped:\n%s", out)
	}
}

func TestBuildHistoryDetail(t *testing.T) {
	st, ids := seedStore(t)
	h, err := BuildHistory(context.Background(), st, model.HistoryConfig{RunID: "bbbb"})
	if err != nil {
		t.Fatalf("build history: %v", err)
	}
	if h.Detail == nil || h.Detail.ID != ids[2] {
		t.Fatalf("unexpected detail: %+v", h.Detail)
	}
	if len(h.Scores) != 3 {
		t.Fatalf("expected 3 scores, got %d", len(h.Scores))
	}

	var buf bytes.Buffer
	if err := RenderHistory(&buf, h, 80, false); err != nil {
		t.Fatalf("render history: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Run bbbb3333-0000", "Key: LEMON (length 5)", "Selected length: 3", "3*"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestBuildHistoryRunIDErrors(t *testing.T) {
	st, _ := seedStore(t)
	if _, err := BuildHistory(context.Background(), st, model.HistoryConfig{RunID: "aaaa"}); err == nil {
		t.Fatalf("expected ambiguous prefix error")
	}
	if _, err := BuildHistory(context.Background(), st, model.HistoryConfig{RunID: "zzzz"}); err == nil {
		t.Fatalf("expected missing run error")
	}
}

func TestRenderHistoryEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderHistory(&buf, History{}, 80, false); err != nil {
		t.Fatalf("render history: %v", err)
	}
	if got := buf.String(); got != "No runs recorded yet.\n" {
		t.Fatalf("unexpected output %q", got)
	}
}
