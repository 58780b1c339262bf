// Package wordlist loads dictionaries used to score recovered plaintext.
package wordlist

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"unicode"
)

// Set is a lower-cased dictionary.
type Set map[string]struct{}

// LoadWords reads one word per line from the provided file path.
func LoadWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return words, nil
}

// Load reads a word list and keeps the words accepted by filter.
func Load(path string, filter FilterFunc) (Set, error) {
	words, err := LoadWords(path)
	if err != nil {
		return nil, err
	}
	set := NewSet(words, filter)
	if len(set) == 0 {
		return nil, fmt.Errorf("word list %s has no usable words", path)
	}
	return set, nil
}

// NewSet lower-cases words and keeps those accepted by filter. A nil
// filter keeps everything.
func NewSet(words []string, filter FilterFunc) Set {
	set := make(Set, len(words))
	for _, word := range words {
		word = strings.ToLower(word)
		if filter != nil && !filter(word) {
			continue
		}
		set[word] = struct{}{}
	}
	return set
}

// Contains reports whether word is in the set, ignoring case.
func (s Set) Contains(word string) bool {
	_, ok := s[strings.ToLower(word)]
	return ok
}

// Coverage returns the share of words in text found in the set. Words are
// maximal runs of letters; text without words has coverage 0.
func (s Set) Coverage(text string) float64 {
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	if len(words) == 0 {
		return 0
	}
	hits := 0
	for _, word := range words {
		if s.Contains(word) {
			hits++
		}
	}
	return float64(hits) / float64(len(words))
}
