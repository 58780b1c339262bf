package report

import "testing"

func TestSparkline(t *testing.T) {
	if got := Sparkline(nil); got != "" {
		t.Fatalf("expected empty sparkline, got %q", got)
	}
	if got := Sparkline([]float64{2, 2, 2}); got != "+++" {
		t.Fatalf("expected flat sparkline, got %q", got)
	}
	got := Sparkline([]float64{0, 0.5, 1})
	if len(got) != 3 || got[0] != ' ' || got[2] != '@' {
		t.Fatalf("unexpected sparkline %q", got)
	}
}

func TestBar(t *testing.T) {
	if got := bar(0.5, 1, 10); got != "#####" {
		t.Fatalf("expected half bar, got %q", got)
	}
	if got := bar(0.001, 1, 10); got != "#" {
		t.Fatalf("expected minimum bar of 1, got %q", got)
	}
	if got := bar(0, 1, 10); got != "" {
		t.Fatalf("expected empty bar for zero, got %q", got)
	}
	if got := bar(2, 1, 4); got != "####" {
		t.Fatalf("expected bar capped at width, got %q", got)
	}
}
