package alphabet

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

type tableFile struct {
	Lang    string             `toml:"lang" yaml:"lang"`
	Aliases []string           `toml:"aliases" yaml:"aliases"`
	Freq    map[string]float64 `toml:"freq" yaml:"freq"`
}

// LoadTable reads a reference table from a .toml, .yaml or .yml file.
func LoadTable(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, err
	}
	var tf tableFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&tf); err != nil {
			return Table{}, fmt.Errorf("failed to decode %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &tf); err != nil {
			return Table{}, fmt.Errorf("failed to decode %s: %w", path, err)
		}
	default:
		return Table{}, fmt.Errorf("unsupported table format: %s", path)
	}
	table, err := tf.table()
	if err != nil {
		return Table{}, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

func (tf tableFile) table() (Table, error) {
	t := Table{
		Lang:    strings.TrimSpace(tf.Lang),
		Aliases: tf.Aliases,
	}
	for key, value := range tf.Freq {
		runes := []rune(strings.TrimSpace(key))
		if len(runes) != 1 {
			return Table{}, fmt.Errorf("frequency key %q is not a single letter", key)
		}
		idx, ok := Index(runes[0])
		if !ok {
			return Table{}, fmt.Errorf("frequency key %q is not a letter A-Z", key)
		}
		t.Freq[idx] = value
	}
	if err := t.Validate(); err != nil {
		return Table{}, err
	}
	return t, nil
}

// LoadDir loads every table file in dir, ordered by file name.
// A missing directory yields no tables and no error.
func LoadDir(dir string) ([]Table, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read table directory: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".toml", ".yaml", ".yml":
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	tables := make([]Table, 0, len(names))
	for _, name := range names {
		t, err := LoadTable(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}
