package cryptanalysis

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountFoldsCaseAndSkipsNonLetters(t *testing.T) {
	v := Count([]rune("aA b-Zé"))
	assert.Equal(t, 2, v[0])
	assert.Equal(t, 1, v[1])
	assert.Equal(t, 1, v[25])
	assert.Equal(t, 4, v.Letters())
}

func TestCoincidenceFormulas(t *testing.T) {
	v := Count([]rune("AABBC"))
	assert.InDelta(t, 9.0/20.0, Coincidence(v, StatisticSquared), 1e-12)
	assert.InDelta(t, 4.0/20.0, Coincidence(v, StatisticUnbiased), 1e-12)
}

func TestCoincidenceCountsLettersNotCharacters(t *testing.T) {
	withPunct := Count([]rune("A.A,B B!C"))
	plain := Count([]rune("AABBC"))
	assert.Equal(t, Coincidence(plain, StatisticSquared), Coincidence(withPunct, StatisticSquared))
}

func TestCoincidenceShortColumnsScoreZero(t *testing.T) {
	for _, col := range []string{"", "!", "a", "?x?"} {
		v := Count([]rune(col))
		assert.Zero(t, Coincidence(v, StatisticSquared), "column %q", col)
		assert.Zero(t, Coincidence(v, StatisticUnbiased), "column %q", col)
	}
}

func TestCoincidenceIgnoresLetterOrder(t *testing.T) {
	a := Count([]rune("THEQUICKBROWNFOX"))
	b := Count([]rune("XOFNWORBKCIUQEHT"))
	assert.Equal(t, Coincidence(a, StatisticSquared), Coincidence(b, StatisticSquared))
	assert.Equal(t, Coincidence(a, StatisticUnbiased), Coincidence(b, StatisticUnbiased))
}

func TestRankedKeepsAlphabetOrderOnTies(t *testing.T) {
	v := Count([]rune("zzbbyya"))
	ranked := v.Ranked()
	assert.Equal(t, []int{1, 24, 25, 0}, ranked[:4])
	assert.Equal(t, 1, v.Peak())
	assert.Equal(t, 0, Count(nil).Peak())
}

func TestAnalyzeLengthAveragesColumns(t *testing.T) {
	la := AnalyzeLength(Split([]rune("AAAB"), 2), StatisticSquared)
	// Columns "AA" (4/2) and "AB" (2/2).
	require.Len(t, la.ColumnScores, 2)
	assert.InDelta(t, 2.0, la.ColumnScores[0], 1e-12)
	assert.InDelta(t, 1.0, la.ColumnScores[1], 1e-12)
	assert.InDelta(t, 1.5, la.Score, 1e-12)
}

func TestSelectLength(t *testing.T) {
	best, ties, err := SelectLength([]float64{0.04, 0.07, 0.065, 0.07}, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, best)
	assert.Equal(t, []int{4}, ties)

	best, ties, err = SelectLength([]float64{0.04, 0.07, 0.0699}, 0.001)
	require.NoError(t, err)
	assert.Equal(t, 2, best)
	assert.Equal(t, []int{3}, ties)

	best, ties, err = SelectLength([]float64{0.10, 0.10 + 1e-12}, DefaultTieTolerance)
	require.NoError(t, err)
	assert.Equal(t, 1, best)
	assert.Equal(t, []int{2}, ties)

	best, ties, err = SelectLength([]float64{0.05, 0.04}, DefaultTieTolerance)
	require.NoError(t, err)
	assert.Equal(t, 1, best)
	assert.Empty(t, ties)
}

func TestSelectLengthNoSignal(t *testing.T) {
	_, _, err := SelectLength([]float64{0, 0, 0}, 0)
	assert.True(t, errors.Is(err, ErrNoSignal), "got %v", err)

	_, _, err = SelectLength(nil, 0)
	assert.True(t, errors.Is(err, ErrInvalidArgument), "got %v", err)
}

func TestParseStatistic(t *testing.T) {
	s, err := ParseStatistic("Unbiased")
	require.NoError(t, err)
	assert.Equal(t, StatisticUnbiased, s)
	assert.Equal(t, "unbiased", s.String())

	s, err = ParseStatistic("")
	require.NoError(t, err)
	assert.Equal(t, StatisticSquared, s)

	_, err = ParseStatistic("kappa")
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}
