// Package store handles SQLite persistence of analysis runs.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/vigcrack/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// timeLayout is fixed-width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store wraps SQLite access for run history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			source TEXT NOT NULL,
			lang TEXT NOT NULL,
			max_key_length INTEGER NOT NULL,
			statistic TEXT NOT NULL,
			method TEXT NOT NULL,
			selected_length INTEGER NOT NULL,
			key TEXT NOT NULL,
			cipher_chars INTEGER NOT NULL,
			letters INTEGER NOT NULL,
			output_path TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS run_length_scores (
			run_id TEXT NOT NULL,
			key_length INTEGER NOT NULL,
			score REAL NOT NULL,
			PRIMARY KEY (run_id, key_length)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertRun stores a run and its per-length scores. An empty run ID is
// replaced with a new UUID, which is returned.
func (s *Store) InsertRun(ctx context.Context, run model.Run, scores []model.LengthScore) (id string, err error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, created_at, source, lang, max_key_length, statistic, method, selected_length, key, cipher_chars, letters, output_path)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.CreatedAt.UTC().Format(timeLayout),
		run.Source,
		run.Lang,
		run.MaxKeyLength,
		run.Statistic,
		run.Method,
		run.SelectedLength,
		run.Key,
		run.CipherChars,
		run.Letters,
		run.OutputPath,
	)
	if err != nil {
		return "", err
	}

	if len(scores) > 0 {
		stmt, perr := tx.PrepareContext(ctx,
			`INSERT INTO run_length_scores (run_id, key_length, score) VALUES (?, ?, ?)`)
		if perr != nil {
			err = perr
			return "", err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, ls := range scores {
			if _, err = stmt.ExecContext(ctx, run.ID, ls.Length, ls.Score); err != nil {
				return "", err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return "", err
	}
	return run.ID, nil
}

// ListRuns returns runs matching cfg, oldest first. Last keeps only the
// most recent runs.
func (s *Store) ListRuns(ctx context.Context, cfg model.HistoryConfig) ([]model.Run, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Lang != "" {
		clauses = append(clauses, "lang = ? COLLATE NOCASE")
		args = append(args, cfg.Lang)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "created_at >= ?")
		args = append(args, cfg.Since.UTC().Format(timeLayout))
	}
	if cfg.RunID != "" {
		clauses = append(clauses, "id LIKE ?")
		args = append(args, cfg.RunID+"%")
	}
	query := fmt.Sprintf(`SELECT id, created_at, source, lang, max_key_length, statistic, method,
		selected_length, key, cipher_chars, letters, output_path
		FROM runs
		WHERE %s
		ORDER BY created_at ASC, id ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var runs []model.Run
	for rows.Next() {
		var run model.Run
		var createdAt string
		if err := rows.Scan(&run.ID, &createdAt, &run.Source, &run.Lang, &run.MaxKeyLength, &run.Statistic,
			&run.Method, &run.SelectedLength, &run.Key, &run.CipherChars, &run.Letters, &run.OutputPath); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(timeLayout, createdAt)
		if err != nil {
			return nil, err
		}
		run.CreatedAt = parsed
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if cfg.Last > 0 && len(runs) > cfg.Last {
		runs = runs[len(runs)-cfg.Last:]
	}
	return runs, nil
}

// ListLengthScores returns the per-length scores of a run ordered by length.
func (s *Store) ListLengthScores(ctx context.Context, runID string) ([]model.LengthScore, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key_length, score FROM run_length_scores WHERE run_id = ? ORDER BY key_length ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var scores []model.LengthScore
	for rows.Next() {
		var ls model.LengthScore
		if err := rows.Scan(&ls.Length, &ls.Score); err != nil {
			return nil, err
		}
		scores = append(scores, ls)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return scores, nil
}
