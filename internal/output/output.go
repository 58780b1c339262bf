// Package output writes recovered plaintext to disk.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const timestampLayout = "2006-01-02_15-04-05"

// FileName returns the clear-text file name for a ciphertext source:
// "<timestamp>_<stem>.txt". An empty or "-" source is named "stdin".
func FileName(source string, now time.Time) string {
	stem := "stdin"
	if source != "" && source != "-" {
		base := filepath.Base(source)
		stem = strings.TrimSuffix(base, filepath.Ext(base))
		if stem == "" {
			stem = base
		}
	}
	return fmt.Sprintf("%s_%s.txt", now.Format(timestampLayout), stem)
}

// WriteClearText writes text into dir and returns the written path. The
// file appears only once fully written.
func WriteClearText(dir, source, text string, now time.Time) (string, error) {
	path := filepath.Join(dir, FileName(source, now))
	if err := writeFileAtomic(path, text); err != nil {
		return "", err
	}
	return path, nil
}

func writeFileAtomic(path, text string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "clear-*.txt")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.WriteString(text); err != nil {
		return fmt.Errorf("failed to write clear text: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close clear text: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to move clear text into place: %w", err)
	}
	return nil
}
