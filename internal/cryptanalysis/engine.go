package cryptanalysis

import (
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/verte-zerg/vigcrack/internal/alphabet"
)

// DefaultTieTolerance is the score distance under which two candidate
// lengths are reported as a near tie.
const DefaultTieTolerance = 1e-9

// Config is the immutable input of one analysis run.
type Config struct {
	MaxKeyLength int
	Table        alphabet.Table
	Statistic    Statistic
	Method       Method
	// Workers bounds how many candidate lengths are analyzed at once.
	// Zero or less means no bound.
	Workers      int
	TieTolerance float64
	ReducePeriod bool
	Candidates   int
}

// Validate checks the config before any work starts.
func (c Config) Validate() error {
	if c.MaxKeyLength < 1 {
		return fmt.Errorf("%w: max key length must be >= 1, got %d", ErrInvalidArgument, c.MaxKeyLength)
	}
	if err := c.Table.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	if c.Statistic != StatisticSquared && c.Statistic != StatisticUnbiased {
		return fmt.Errorf("%w: unknown statistic %d", ErrInvalidArgument, int(c.Statistic))
	}
	if c.Method < MethodPeak || c.Method > MethodCorrelation {
		return fmt.Errorf("%w: unknown shift method %d", ErrInvalidArgument, int(c.Method))
	}
	if c.TieTolerance < 0 {
		return fmt.Errorf("%w: tie tolerance must be >= 0", ErrInvalidArgument)
	}
	return nil
}

// Result is the outcome of an analysis run.
type Result struct {
	Key       string
	Plaintext string
	// SelectedLength is the candidate length with the best score.
	SelectedLength int
	// KeyLength is len(Key); it is smaller than SelectedLength when the
	// recovered key repeats and ReducePeriod is on.
	KeyLength int
	// Shifts has one entry per column of the selected partition.
	Shifts []int
	// Scores[i] is the aggregate coincidence score of length i+1.
	Scores       []float64
	NearTies     []int
	Alternatives []string
	Letters      int
}

// Ambiguous reports whether other candidate lengths scored within the
// tie tolerance of the selected one.
func (r Result) Ambiguous() bool {
	return len(r.NearTies) > 0
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the logger used for progress output.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// Analyzer runs partitioning, coincidence analysis, shift recovery and
// deciphering for a fixed Config. It holds no state between runs.
type Analyzer struct {
	cfg    Config
	logger *zap.Logger
}

// NewAnalyzer validates cfg and returns an Analyzer.
func NewAnalyzer(cfg Config, opts ...Option) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a := &Analyzer{cfg: cfg, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Config returns the analyzer's configuration.
func (a *Analyzer) Config() Config {
	return a.cfg
}

// Analyze breaks ciphertext.
func (a *Analyzer) Analyze(ciphertext string) (Result, error) {
	partitions, err := PartitionAll(ciphertext, a.cfg.MaxKeyLength)
	if err != nil {
		return Result{}, err
	}
	a.logger.Debug("partitioned ciphertext",
		zap.Int("chars", partitions[0].Size()),
		zap.Int("candidates", len(partitions)))

	lengths, err := a.analyzeLengths(partitions)
	if err != nil {
		return Result{}, err
	}
	scores := make([]float64, len(lengths))
	for i, la := range lengths {
		scores[i] = la.Score
		a.logger.Debug("coincidence", zap.Int("length", la.Length), zap.Float64("score", la.Score))
	}

	best, nearTies, err := SelectLength(scores, a.cfg.TieTolerance)
	if err != nil {
		return Result{}, err
	}
	chosen := lengths[best-1]
	if len(nearTies) > 0 {
		a.logger.Warn("candidate lengths score within tolerance",
			zap.Int("selected", best),
			zap.Ints("near_ties", nearTies))
	}

	shifts, err := RecoverShifts(chosen.Vectors, a.cfg.Table, a.cfg.Method)
	if err != nil {
		return Result{}, err
	}
	key, plaintext, err := Decipher(partitions[best-1], shifts)
	if err != nil {
		return Result{}, err
	}
	if a.cfg.ReducePeriod {
		key = KeyString(ReducePeriod(shifts))
	}

	letters := 0
	for _, v := range lengths[0].Vectors {
		letters += v.Letters()
	}
	a.logger.Info("key recovered",
		zap.Int("selected_length", best),
		zap.String("key", key),
		zap.String("method", a.cfg.Method.String()),
		zap.String("statistic", a.cfg.Statistic.String()))

	return Result{
		Key:            key,
		Plaintext:      plaintext,
		SelectedLength: best,
		KeyLength:      len(key),
		Shifts:         shifts,
		Scores:         scores,
		NearTies:       nearTies,
		Alternatives:   CandidateKeys(chosen.Vectors, a.cfg.Table, a.cfg.Candidates),
		Letters:        letters,
	}, nil
}

// analyzeLengths scores each candidate length concurrently. Every goroutine
// writes only its own slot, so the result does not depend on scheduling.
func (a *Analyzer) analyzeLengths(partitions []Partition) ([]LengthAnalysis, error) {
	out := make([]LengthAnalysis, len(partitions))
	var g errgroup.Group
	if a.cfg.Workers > 0 {
		g.SetLimit(a.cfg.Workers)
	}
	for i := range partitions {
		i := i
		g.Go(func() error {
			out[i] = AnalyzeLength(partitions[i], a.cfg.Statistic)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
