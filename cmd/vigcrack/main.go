// Package main provides the CLI entrypoint for vigcrack.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/verte-zerg/vigcrack/internal/alphabet"
	"github.com/verte-zerg/vigcrack/internal/config"
	"github.com/verte-zerg/vigcrack/internal/cryptanalysis"
	"github.com/verte-zerg/vigcrack/internal/keygen"
	"github.com/verte-zerg/vigcrack/internal/model"
	"github.com/verte-zerg/vigcrack/internal/output"
	"github.com/verte-zerg/vigcrack/internal/report"
	"github.com/verte-zerg/vigcrack/internal/store"
	"github.com/verte-zerg/vigcrack/internal/wordlist"
)

const (
	defaultLang         = "English"
	defaultMaxKeyLength = 20
	defaultStatistic    = "squared"
	defaultMethod       = "peak"
	defaultCandidates   = 3
	defaultKeyWordLen   = 4
	stdinSource         = "stdin"
)

var (
	crackLang         string
	crackMaxKeyLength int
	crackStatistic    string
	crackMethod       string
	crackWorkers      int
	crackTolerance    float64
	crackReduce       bool
	crackCandidates   int
	crackWordlist     string
	crackPreview      int
	crackOutDir       string
	crackNoWrite      bool
	crackNoHistory    bool

	encryptKey       string
	encryptRandomKey int
	encryptKeyFrom   string

	historyLang  string
	historySince string
	historyLast  int
	historyRun   string

	verbose    bool
	forceColor bool

	logger = zap.NewNop()
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vigcrack [file]",
		Short: "Recover the key and plaintext of a Vigenère ciphertext",
		Long: `vigcrack estimates the key length of a Vigenère ciphertext from the index
of coincidence of its columns, recovers each column's shift against a
reference letter distribution and deciphers the text.

The ciphertext is read from the given file, or from stdin when no file is given.`,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     false,
		PersistentPreRunE: initLogger,
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = logger.Sync()
		},
		RunE: runCrackCmd,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&forceColor, "color", false, "force colored output")

	flags := rootCmd.Flags()
	flags.StringVar(&crackLang, "lang", defaultLang, "reference language name or alias")
	flags.IntVar(&crackMaxKeyLength, "max-key-length", defaultMaxKeyLength, "largest key length to test")
	flags.StringVar(&crackStatistic, "statistic", defaultStatistic, "coincidence statistic: squared or unbiased")
	flags.StringVar(&crackMethod, "method", defaultMethod, "shift recovery method: peak, chi or correlation")
	flags.IntVar(&crackWorkers, "workers", runtime.NumCPU(), "key lengths analyzed concurrently (0 = unbounded)")
	flags.Float64Var(&crackTolerance, "tolerance", cryptanalysis.DefaultTieTolerance, "score distance reported as a near tie")
	flags.BoolVar(&crackReduce, "reduce", true, "shorten a key that repeats with a smaller period")
	flags.IntVar(&crackCandidates, "candidates", defaultCandidates, "alternative keys to list")
	flags.StringVar(&crackWordlist, "wordlist", "", "word list used to report dictionary coverage")
	flags.IntVar(&crackPreview, "preview", 0, "plaintext characters to print (0 = all)")
	flags.StringVar(&crackOutDir, "out-dir", config.DefaultClearDir(), "directory for deciphered text")
	flags.BoolVar(&crackNoWrite, "no-write", false, "do not write the deciphered text to a file")
	flags.BoolVar(&crackNoHistory, "no-history", false, "do not record the run")

	rootCmd.AddCommand(newEncryptCmd())
	rootCmd.AddCommand(newLangsCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func initLogger(_ *cobra.Command, _ []string) error {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	built, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = built
	return nil
}

func runCrackCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyCrackConfig(cmd, fileCfg.Crack)

	cfg := model.Config{
		Lang:         crackLang,
		MaxKeyLength: crackMaxKeyLength,
		Statistic:    crackStatistic,
		Method:       crackMethod,
		Workers:      crackWorkers,
		TieTolerance: crackTolerance,
		ReducePeriod: crackReduce,
		Candidates:   crackCandidates,
		Wordlist:     crackWordlist,
		Preview:      crackPreview,
		OutDir:       crackOutDir,
		NoWrite:      crackNoWrite,
		NoHistory:    crackNoHistory,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	source, text, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	table, err := resolveTable(cfg.Lang)
	if err != nil {
		return err
	}
	engineCfg, err := engineConfig(cfg, table)
	if err != nil {
		return err
	}
	analyzer, err := cryptanalysis.NewAnalyzer(engineCfg, cryptanalysis.WithLogger(logger))
	if err != nil {
		return err
	}
	res, err := analyzer.Analyze(text)
	if err != nil {
		if errors.Is(err, cryptanalysis.ErrNoSignal) {
			return fmt.Errorf("cannot estimate a key for %s: %w", source, err)
		}
		return err
	}

	var coverage *float64
	if cfg.Wordlist != "" {
		words, err := wordlist.Load(cfg.Wordlist, wordlist.FilterForLang(table.Lang))
		if err != nil {
			return fmt.Errorf("failed to load word list: %w", err)
		}
		c := words.Coverage(res.Plaintext)
		coverage = &c
	}

	now := time.Now()
	outPath := ""
	if !cfg.NoWrite {
		outPath, err = output.WriteClearText(cfg.OutDir, source, res.Plaintext, now)
		if err != nil {
			return err
		}
	}

	if !cfg.NoHistory {
		if err := recordRun(cmd.Context(), cfg, engineCfg, res, source, text, outPath, now); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	return report.RenderResult(out, res, report.Options{
		Source:     source,
		Table:      table,
		Statistic:  engineCfg.Statistic.String(),
		Method:     engineCfg.Method.String(),
		OutputPath: outPath,
		Coverage:   coverage,
		Preview:    cfg.Preview,
		Width:      report.TerminalWidth(),
		Color:      report.ShouldUseColor(out, forceColor),
	})
}

func recordRun(ctx context.Context, cfg model.Config, engineCfg cryptanalysis.Config, res cryptanalysis.Result, source, text, outPath string, now time.Time) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logger.Warn("failed to close db", zap.Error(cerr))
		}
	}()

	run := model.Run{
		CreatedAt:      now,
		Source:         source,
		Lang:           engineCfg.Table.Lang,
		MaxKeyLength:   cfg.MaxKeyLength,
		Statistic:      engineCfg.Statistic.String(),
		Method:         engineCfg.Method.String(),
		SelectedLength: res.SelectedLength,
		Key:            res.Key,
		CipherChars:    len([]rune(text)),
		Letters:        res.Letters,
		OutputPath:     outPath,
	}
	id, err := st.InsertRun(ctx, run, report.ScoresFromSlice(res.Scores))
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	logger.Debug("run recorded", zap.String("id", id))
	return nil
}

func readInput(cmd *cobra.Command, args []string) (source, text string, err error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return stdinSource, string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return args[0], string(data), nil
}

func loadTables() ([]alphabet.Table, error) {
	extra, err := alphabet.LoadDir(config.DefaultTableDir())
	if err != nil {
		return nil, fmt.Errorf("failed to load frequency tables: %w", err)
	}
	return alphabet.Merge(extra), nil
}

func resolveTable(lang string) (alphabet.Table, error) {
	tables, err := loadTables()
	if err != nil {
		return alphabet.Table{}, err
	}
	return alphabet.Lookup(tables, lang)
}

func engineConfig(cfg model.Config, table alphabet.Table) (cryptanalysis.Config, error) {
	stat, err := cryptanalysis.ParseStatistic(cfg.Statistic)
	if err != nil {
		return cryptanalysis.Config{}, fmt.Errorf("invalid --statistic: %w", err)
	}
	method, err := cryptanalysis.ParseMethod(cfg.Method)
	if err != nil {
		return cryptanalysis.Config{}, fmt.Errorf("invalid --method: %w", err)
	}
	return cryptanalysis.Config{
		MaxKeyLength: cfg.MaxKeyLength,
		Table:        table,
		Statistic:    stat,
		Method:       method,
		Workers:      cfg.Workers,
		TieTolerance: cfg.TieTolerance,
		ReducePeriod: cfg.ReducePeriod,
		Candidates:   cfg.Candidates,
	}, nil
}

func newEncryptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encrypt [file]",
		Short: "Encipher text with a Vigenère key",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEncryptCmd,
	}
	cmd.Flags().StringVar(&encryptKey, "key", "", "key letters")
	cmd.Flags().IntVar(&encryptRandomKey, "random-key", 0, "generate a random key of N letters")
	cmd.Flags().StringVar(&encryptKeyFrom, "key-from", "", "pick a random word from this word list as the key")
	cmd.MarkFlagsMutuallyExclusive("key", "random-key", "key-from")
	cmd.MarkFlagsOneRequired("key", "random-key", "key-from")
	return cmd
}

func runEncryptCmd(cmd *cobra.Command, args []string) error {
	key := encryptKey
	generated := false
	switch {
	case cmd.Flags().Changed("random-key"):
		k, err := keygen.New().Key(encryptRandomKey)
		if err != nil {
			return fmt.Errorf("invalid --random-key: %w", err)
		}
		key, generated = k, true
	case encryptKeyFrom != "":
		words, err := wordlist.LoadWords(encryptKeyFrom)
		if err != nil {
			return fmt.Errorf("failed to load word list: %w", err)
		}
		k, err := keygen.New().Word(words, defaultKeyWordLen)
		if err != nil {
			return err
		}
		key, generated = k, true
	}

	_, text, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	cipher, err := cryptanalysis.Encipher(text, key)
	if err != nil {
		return err
	}
	if generated {
		if _, err := fmt.Fprintf(cmd.ErrOrStderr(), "key: %s\n", key); err != nil {
			return fmt.Errorf("failed to write key: %w", err)
		}
	}
	if _, err := fmt.Fprint(cmd.OutOrStdout(), cipher); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newLangsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "langs",
		Short: "List reference frequency tables",
		Args:  cobra.NoArgs,
		RunE:  runLangsCmd,
	}
}

func runLangsCmd(cmd *cobra.Command, _ []string) error {
	tables, err := loadTables()
	if err != nil {
		return err
	}
	for _, t := range tables {
		line := fmt.Sprintf("%s (peak %c)", t.Lang, alphabet.Letter(t.Peak()))
		if len(t.Aliases) > 0 {
			line = fmt.Sprintf("%s [%s] (peak %c)", t.Lang, strings.Join(t.Aliases, ", "), alphabet.Letter(t.Peak()))
		}
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded runs",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historyLang, "lang", "", "language filter")
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N runs")
	cmd.Flags().StringVar(&historyRun, "run", "", "show one run by ID prefix")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if historySince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", historySince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if historyLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}

	cfg := model.HistoryConfig{
		Lang:  historyLang,
		Since: sinceTime,
		Last:  historyLast,
		RunID: strings.TrimSpace(historyRun),
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logger.Warn("failed to close db", zap.Error(cerr))
		}
	}()

	h, err := report.BuildHistory(cmd.Context(), st, cfg)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	return report.RenderHistory(out, h, report.TerminalWidth(), report.ShouldUseColor(out, forceColor))
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := ensureConfigFile(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func ensureConfigFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	return nil
}

func applyCrackConfig(cmd *cobra.Command, fc config.CrackConfig) {
	applyStringConfig(cmd, "lang", &crackLang, fc.Lang)
	applyIntConfig(cmd, "max-key-length", &crackMaxKeyLength, fc.MaxKeyLength)
	applyStringConfig(cmd, "statistic", &crackStatistic, fc.Statistic)
	applyStringConfig(cmd, "method", &crackMethod, fc.Method)
	applyIntConfig(cmd, "workers", &crackWorkers, fc.Workers)
	applyFloatConfig(cmd, "tolerance", &crackTolerance, fc.TieTolerance)
	applyBoolConfig(cmd, "reduce", &crackReduce, fc.ReducePeriod)
	applyIntConfig(cmd, "candidates", &crackCandidates, fc.Candidates)
	applyStringConfig(cmd, "wordlist", &crackWordlist, fc.Wordlist)
	applyIntConfig(cmd, "preview", &crackPreview, fc.Preview)
	applyStringConfig(cmd, "out-dir", &crackOutDir, fc.OutDir)
	applyBoolConfig(cmd, "no-write", &crackNoWrite, fc.NoWrite)
	applyBoolConfig(cmd, "no-history", &crackNoHistory, fc.NoHistory)
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# vigcrack configuration
# Uncomment a value to enable it. CLI flags override config values.

[crack]
# lang = %q          # Reference table name or alias
# max-key-length = %d       # Largest key length to test
# statistic = %q     # squared or unbiased
# method = %q           # peak, chi or correlation
# workers = 0               # Key lengths analyzed concurrently (default: CPU count, 0 = unbounded)
# tolerance = %g         # Score distance reported as a near tie
# reduce = true             # Shorten a key that repeats with a smaller period
# candidates = %d            # Alternative keys to list
# wordlist = ""             # Word list for dictionary coverage
# preview = 0               # Plaintext characters to print (0 = all)
# out-dir = %q
# no-write = false          # Do not write the deciphered text
# no-history = false        # Do not record runs
`,
		defaultLang,
		defaultMaxKeyLength,
		defaultStatistic,
		defaultMethod,
		cryptanalysis.DefaultTieTolerance,
		defaultCandidates,
		config.DefaultClearDir(),
	)
}

func validateConfig(cfg model.Config) error {
	if strings.TrimSpace(cfg.Lang) == "" {
		return fmt.Errorf("--lang must not be empty")
	}
	if cfg.MaxKeyLength < 1 {
		return fmt.Errorf("--max-key-length must be >= 1")
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("--workers must be >= 0")
	}
	if cfg.TieTolerance < 0 {
		return fmt.Errorf("--tolerance must be >= 0")
	}
	if cfg.Candidates < 0 || cfg.Candidates > alphabet.Size {
		return fmt.Errorf("--candidates must be between 0 and %d", alphabet.Size)
	}
	if cfg.Preview < 0 {
		return fmt.Errorf("--preview must be >= 0")
	}
	if !cfg.NoWrite && strings.TrimSpace(cfg.OutDir) == "" {
		return fmt.Errorf("--out-dir must not be empty unless --no-write is set")
	}
	return nil
}
