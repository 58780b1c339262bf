package cryptanalysis

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/vigcrack/internal/alphabet"
)

// KeyString renders shifts as letters, 0 as A.
func KeyString(shifts []int) string {
	var b strings.Builder
	b.Grow(len(shifts))
	for _, s := range shifts {
		b.WriteByte(alphabet.Letter(s))
	}
	return b.String()
}

// ParseKey converts a letter key into shifts. Non-letters are rejected.
func ParseKey(key string) ([]int, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: key is empty", ErrInvalidArgument)
	}
	shifts := make([]int, 0, len(key))
	for _, r := range key {
		idx, ok := alphabet.Index(r)
		if !ok {
			return nil, fmt.Errorf("%w: key contains non-letter %q", ErrInvalidArgument, r)
		}
		shifts = append(shifts, idx)
	}
	return shifts, nil
}

// DecipherColumn undoes a single Caesar shift, preserving case.
func DecipherColumn(column []rune, shift int) []rune {
	out := make([]rune, len(column))
	for i, r := range column {
		out[i] = alphabet.Rotate(r, -shift)
	}
	return out
}

// Decipher applies one shift per column and reassembles the plaintext in
// original order. It returns the key derived from shifts.
func Decipher(p Partition, shifts []int) (string, string, error) {
	if len(shifts) != len(p.Columns) {
		return "", "", fmt.Errorf("%w: %d shifts for %d columns", ErrInvalidArgument, len(shifts), len(p.Columns))
	}
	plain := make([][]rune, len(p.Columns))
	for i, col := range p.Columns {
		plain[i] = DecipherColumn(col, shifts[i])
	}
	return KeyString(shifts), string(interleave(plain)), nil
}

// Encipher applies key to text using the same i mod L positions the
// analyzer partitions by, so non-letters consume a key position too.
func Encipher(text, key string) (string, error) {
	shifts, err := ParseKey(key)
	if err != nil {
		return "", err
	}
	runes := []rune(text)
	for i, r := range runes {
		runes[i] = alphabet.Rotate(r, shifts[i%len(shifts)])
	}
	return string(runes), nil
}
