package cryptanalysis

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/verte-zerg/vigcrack/internal/alphabet"
)

// Statistic selects the coincidence formula.
type Statistic int

const (
	// StatisticSquared computes sum(f*f) / (N*(N-1)).
	StatisticSquared Statistic = iota
	// StatisticUnbiased computes sum(f*(f-1)) / (N*(N-1)), the textbook
	// index of coincidence.
	StatisticUnbiased
)

// ParseStatistic maps a config name to a Statistic.
func ParseStatistic(name string) (Statistic, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "squared":
		return StatisticSquared, nil
	case "unbiased", "ioc":
		return StatisticUnbiased, nil
	default:
		return 0, fmt.Errorf("%w: unknown statistic %q (want squared or unbiased)", ErrInvalidArgument, name)
	}
}

func (s Statistic) String() string {
	switch s {
	case StatisticSquared:
		return "squared"
	case StatisticUnbiased:
		return "unbiased"
	default:
		return fmt.Sprintf("Statistic(%d)", int(s))
	}
}

// FrequencyVector counts each letter of a column, case-folded.
type FrequencyVector [alphabet.Size]int

// Count builds the frequency vector of a column. Non-letters are skipped.
func Count(column []rune) FrequencyVector {
	var v FrequencyVector
	for _, r := range column {
		if idx, ok := alphabet.Index(r); ok {
			v[idx]++
		}
	}
	return v
}

// Letters returns the number of letters counted.
func (v FrequencyVector) Letters() int {
	n := 0
	for _, c := range v {
		n += c
	}
	return n
}

// Peak returns the index of the most frequent letter, earliest on ties.
func (v FrequencyVector) Peak() int {
	return v.Ranked()[0]
}

// Ranked returns letter indices ordered by descending count. Equal counts
// keep alphabet order.
func (v FrequencyVector) Ranked() []int {
	order := make([]int, alphabet.Size)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return v[order[i]] > v[order[j]]
	})
	return order
}

// Coincidence scores a column. Columns with fewer than two letters score 0.
func Coincidence(v FrequencyVector, stat Statistic) float64 {
	n := v.Letters()
	if n < 2 {
		return 0
	}
	sum := 0
	for _, f := range v {
		if stat == StatisticUnbiased {
			sum += f * (f - 1)
		} else {
			sum += f * f
		}
	}
	return float64(sum) / (float64(n) * float64(n-1))
}

// LengthAnalysis holds the coincidence statistics of one candidate length.
type LengthAnalysis struct {
	Length       int
	Vectors      []FrequencyVector
	ColumnScores []float64
	Score        float64
}

// AnalyzeLength scores every column of p and averages them.
func AnalyzeLength(p Partition, stat Statistic) LengthAnalysis {
	la := LengthAnalysis{
		Length:       p.Length,
		Vectors:      make([]FrequencyVector, len(p.Columns)),
		ColumnScores: make([]float64, len(p.Columns)),
	}
	if len(p.Columns) == 0 {
		return la
	}
	sum := 0.0
	for i, col := range p.Columns {
		la.Vectors[i] = Count(col)
		la.ColumnScores[i] = Coincidence(la.Vectors[i], stat)
		sum += la.ColumnScores[i]
	}
	la.Score = sum / float64(len(p.Columns))
	return la
}

// SelectLength returns the smallest candidate length whose score lies
// within tolerance of the maximum, where scores[i] belongs to length i+1.
// nearTies lists the other lengths within tolerance of the maximum.
// ErrNoSignal is returned when every score is zero.
func SelectLength(scores []float64, tolerance float64) (best int, nearTies []int, err error) {
	if len(scores) == 0 {
		return 0, nil, fmt.Errorf("%w: no candidate lengths", ErrInvalidArgument)
	}
	maxScore := 0.0
	for _, s := range scores {
		if s > maxScore {
			maxScore = s
		}
	}
	if maxScore <= 0 {
		return 0, nil, ErrNoSignal
	}
	if tolerance < 0 {
		tolerance = 0
	}
	for i, s := range scores {
		if s <= 0 || math.IsNaN(s) || maxScore-s > tolerance {
			continue
		}
		if best == 0 {
			best = i + 1
			continue
		}
		nearTies = append(nearTies, i+1)
	}
	return best, nearTies, nil
}
