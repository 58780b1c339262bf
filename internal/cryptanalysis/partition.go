package cryptanalysis

import "fmt"

// Partition splits a text into Length columns. Column r holds, in order,
// every rune whose index i satisfies i mod Length == r. Non-letters keep
// their slot so the original order can be rebuilt.
type Partition struct {
	Length  int
	Columns [][]rune
}

// Split partitions text into length columns.
func Split(text []rune, length int) Partition {
	p := Partition{Length: length, Columns: make([][]rune, length)}
	for r := range p.Columns {
		p.Columns[r] = make([]rune, 0, len(text)/length+1)
	}
	for i, ch := range text {
		p.Columns[i%length] = append(p.Columns[i%length], ch)
	}
	return p
}

// PartitionAll builds the partition of text for every candidate length from
// 1 to maxKeyLength. Element L-1 holds the partition for length L.
func PartitionAll(text string, maxKeyLength int) ([]Partition, error) {
	if maxKeyLength < 1 {
		return nil, fmt.Errorf("%w: max key length must be >= 1, got %d", ErrInvalidArgument, maxKeyLength)
	}
	runes := []rune(text)
	if len(runes) == 0 {
		return nil, fmt.Errorf("%w: ciphertext is empty", ErrInvalidArgument)
	}
	out := make([]Partition, maxKeyLength)
	for l := 1; l <= maxKeyLength; l++ {
		out[l-1] = Split(runes, l)
	}
	return out, nil
}

// Size returns the number of runes across all columns.
func (p Partition) Size() int {
	n := 0
	for _, col := range p.Columns {
		n += len(col)
	}
	return n
}

// Reassemble interleaves the columns back into original order.
func (p Partition) Reassemble() string {
	return string(interleave(p.Columns))
}

func interleave(columns [][]rune) []rune {
	total := 0
	for _, col := range columns {
		total += len(col)
	}
	out := make([]rune, total)
	length := len(columns)
	for r, col := range columns {
		for j, ch := range col {
			out[j*length+r] = ch
		}
	}
	return out
}
