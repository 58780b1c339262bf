// Package keygen builds random Vigenère keys for the encrypt command.
package keygen

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/verte-zerg/vigcrack/internal/alphabet"
)

// Generator produces random keys.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a deterministic Generator.
func NewWithSeed(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Key returns length uniformly chosen letters.
func (g *Generator) Key(length int) (string, error) {
	if length < 1 {
		return "", fmt.Errorf("key length must be >= 1, got %d", length)
	}
	b := make([]byte, length)
	for i := range b {
		b[i] = alphabet.Letter(g.rnd.Intn(alphabet.Size))
	}
	return string(b), nil
}

// Word picks a random word of at least minLen letters and returns it
// upper-cased. Words containing anything other than ASCII letters are
// skipped.
func (g *Generator) Word(words []string, minLen int) (string, error) {
	candidates := make([]string, 0, len(words))
	for _, word := range words {
		if len(word) < max(minLen, 1) || !lettersOnly(word) {
			continue
		}
		candidates = append(candidates, strings.ToUpper(word))
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("no word with at least %d letters", minLen)
	}
	return candidates[g.rnd.Intn(len(candidates))], nil
}

func lettersOnly(word string) bool {
	for _, r := range word {
		if _, ok := alphabet.Index(r); !ok {
			return false
		}
	}
	return true
}
