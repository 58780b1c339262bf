// Package model defines shared data structures.
package model

import "time"

// Config holds the resolved settings of a crack run. It is built once from
// flags and the config file and never changed afterwards.
type Config struct {
	Lang         string
	MaxKeyLength int
	Statistic    string
	Method       string
	Workers      int
	TieTolerance float64
	ReducePeriod bool
	Candidates   int
	Wordlist     string
	Preview      int
	OutDir       string
	NoWrite      bool
	NoHistory    bool
}

// HistoryConfig defines filters for listing stored runs.
type HistoryConfig struct {
	Lang  string
	Since *time.Time
	Last  int
	RunID string
}

// Run records a completed analysis.
type Run struct {
	ID             string
	CreatedAt      time.Time
	Source         string
	Lang           string
	MaxKeyLength   int
	Statistic      string
	Method         string
	SelectedLength int
	Key            string
	CipherChars    int
	Letters        int
	OutputPath     string
}

// LengthScore is the aggregate coincidence score of one candidate length.
type LengthScore struct {
	Length int
	Score  float64
}
