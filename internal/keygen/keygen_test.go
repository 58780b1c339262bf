package keygen

import "testing"

func TestKeyIsDeterministicPerSeed(t *testing.T) {
	a, err := NewWithSeed(42).Key(12)
	if err != nil {
		t.Fatalf("key: %v", err)
	}
	b, err := NewWithSeed(42).Key(12)
	if err != nil {
		t.Fatalf("key: %v", err)
	}
	if a != b {
		t.Fatalf("expected same key for same seed, got %q and %q", a, b)
	}
	if len(a) != 12 {
		t.Fatalf("expected 12 letters, got %q", a)
	}
	for _, r := range a {
		if r < 'A' || r > 'Z' {
			t.Fatalf("unexpected rune %q in key %q", r, a)
		}
	}
}

func TestKeyRejectsNonPositiveLength(t *testing.T) {
	for _, n := range []int{0, -3} {
		if _, err := New().Key(n); err == nil {
			t.Fatalf("expected error for length %d", n)
		}
	}
}

func TestWordSkipsShortAndNonLetterWords(t *testing.T) {
	g := NewWithSeed(1)
	for i := 0; i < 20; i++ {
		word, err := g.Word([]string{"ox", "co-op", "lemon", "café"}, 3)
		if err != nil {
			t.Fatalf("word: %v", err)
		}
		if word != "LEMON" {
			t.Fatalf("expected LEMON, got %q", word)
		}
	}
	if _, err := g.Word([]string{"ox"}, 3); err == nil {
		t.Fatalf("expected error when no word qualifies")
	}
}
