package cryptanalysis

import (
	"fmt"
	"math"
	"strings"

	"github.com/verte-zerg/vigcrack/internal/alphabet"
)

// Method selects how a column's Caesar shift is recovered.
type Method int

const (
	// MethodPeak aligns the column's most frequent letter with the
	// reference table's most frequent letter.
	MethodPeak Method = iota
	// MethodChiSquared picks the rotation with the lowest chi-squared
	// distance to the reference distribution.
	MethodChiSquared
	// MethodCorrelation picks the rotation with the highest dot product
	// against the reference distribution.
	MethodCorrelation
)

// ParseMethod maps a config name to a Method.
func ParseMethod(name string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "peak":
		return MethodPeak, nil
	case "chi", "chi-squared", "chisquared":
		return MethodChiSquared, nil
	case "correlation", "dot":
		return MethodCorrelation, nil
	default:
		return 0, fmt.Errorf("%w: unknown shift method %q (want peak, chi or correlation)", ErrInvalidArgument, name)
	}
}

func (m Method) String() string {
	switch m {
	case MethodPeak:
		return "peak"
	case MethodChiSquared:
		return "chi"
	case MethodCorrelation:
		return "correlation"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// RecoverShifts returns one shift in [0, 25] per column.
func RecoverShifts(vectors []FrequencyVector, ref alphabet.Table, method Method) ([]int, error) {
	if err := ref.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	var shiftFn func(FrequencyVector, alphabet.Table) int
	switch method {
	case MethodPeak:
		shiftFn = PeakShift
	case MethodChiSquared:
		shiftFn = ChiSquaredShift
	case MethodCorrelation:
		shiftFn = CorrelationShift
	default:
		return nil, fmt.Errorf("%w: unknown shift method %d", ErrInvalidArgument, int(method))
	}
	shifts := make([]int, len(vectors))
	for i, v := range vectors {
		shifts[i] = shiftFn(v, ref)
	}
	return shifts, nil
}

// PeakShift is the single-most-frequent-letter heuristic. A column without
// letters peaks at A.
func PeakShift(v FrequencyVector, ref alphabet.Table) int {
	return alphabet.Mod(v.Peak() - ref.Peak())
}

// ChiSquaredShift tries all 26 rotations. The lowest statistic wins and
// the smallest shift wins ties. Columns without letters fall back to
// PeakShift.
func ChiSquaredShift(v FrequencyVector, ref alphabet.Table) int {
	n := v.Letters()
	total := refTotal(ref)
	if n == 0 || total == 0 {
		return PeakShift(v, ref)
	}
	best := 0
	bestChi := math.Inf(1)
	for s := 0; s < alphabet.Size; s++ {
		chi := 0.0
		for k := 0; k < alphabet.Size; k++ {
			expected := ref.Freq[k] / total * float64(n)
			if expected == 0 {
				continue
			}
			diff := float64(v[(k+s)%alphabet.Size]) - expected
			chi += diff * diff / expected
		}
		if chi < bestChi {
			bestChi = chi
			best = s
		}
	}
	return best
}

// CorrelationShift picks the rotation whose observed counts best line up
// with the reference frequencies.
func CorrelationShift(v FrequencyVector, ref alphabet.Table) int {
	if v.Letters() == 0 {
		return PeakShift(v, ref)
	}
	best := 0
	bestDot := math.Inf(-1)
	for s := 0; s < alphabet.Size; s++ {
		dot := 0.0
		for k := 0; k < alphabet.Size; k++ {
			dot += float64(v[(k+s)%alphabet.Size]) * ref.Freq[k]
		}
		if dot > bestDot {
			bestDot = dot
			best = s
		}
	}
	return best
}

func refTotal(ref alphabet.Table) float64 {
	total := 0.0
	for _, f := range ref.Freq {
		total += f
	}
	return total
}

// CandidateKeys builds up to n keys ordered by frequency rank: key k
// aligns the (k+1)-th most frequent letter of every column with the
// reference peak.
func CandidateKeys(vectors []FrequencyVector, ref alphabet.Table, n int) []string {
	if n <= 0 || len(vectors) == 0 {
		return nil
	}
	if n > alphabet.Size {
		n = alphabet.Size
	}
	peak := ref.Peak()
	keys := make([][]byte, n)
	for k := range keys {
		keys[k] = make([]byte, len(vectors))
	}
	for col, v := range vectors {
		ranked := v.Ranked()
		for k := 0; k < n; k++ {
			keys[k][col] = alphabet.Letter(ranked[k] - peak)
		}
	}
	out := make([]string, n)
	for k, key := range keys {
		out[k] = string(key)
	}
	return out
}

// ReducePeriod returns the shortest prefix of shifts whose repetition
// reproduces the whole sequence. Only divisors of len(shifts) qualify.
func ReducePeriod(shifts []int) []int {
	n := len(shifts)
	for d := 1; d < n; d++ {
		if n%d != 0 {
			continue
		}
		periodic := true
		for i := d; i < n; i++ {
			if shifts[i] != shifts[i%d] {
				periodic = false
				break
			}
		}
		if periodic {
			out := make([]int, d)
			copy(out, shifts[:d])
			return out
		}
	}
	out := make([]int, n)
	copy(out, shifts)
	return out
}
