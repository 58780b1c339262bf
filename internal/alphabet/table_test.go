package alphabet

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuiltinPeaks(t *testing.T) {
	tables := Builtin()
	en, err := Lookup(tables, "english")
	if err != nil {
		t.Fatalf("lookup english: %v", err)
	}
	if got := Letter(en.Peak()); got != 'E' {
		t.Fatalf("expected English peak E, got %c", got)
	}
	pt, err := Lookup(tables, "PT")
	if err != nil {
		t.Fatalf("lookup pt: %v", err)
	}
	if got := Letter(pt.Peak()); got != 'A' {
		t.Fatalf("expected Portuguese peak A, got %c", got)
	}
	for _, table := range tables {
		if err := table.Validate(); err != nil {
			t.Fatalf("builtin table invalid: %v", err)
		}
	}
}

func TestPeakTieGoesToEarliestLetter(t *testing.T) {
	table := Table{Lang: "flat"}
	for i := range table.Freq {
		table.Freq[i] = 1
	}
	if got := table.Peak(); got != 0 {
		t.Fatalf("expected peak 0 on ties, got %d", got)
	}
}

func TestValidateRejectsBadTables(t *testing.T) {
	if err := (Table{Lang: "zero"}).Validate(); err == nil {
		t.Fatalf("expected all-zero table to be rejected")
	}
	neg := Table{Lang: "neg"}
	neg.Freq[3] = -1
	neg.Freq[4] = 2
	if err := neg.Validate(); err == nil {
		t.Fatalf("expected negative frequency to be rejected")
	}
	unnamed := Table{}
	unnamed.Freq[0] = 1
	if err := unnamed.Validate(); err == nil {
		t.Fatalf("expected unnamed table to be rejected")
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup(Builtin(), "Klingon")
	if err == nil {
		t.Fatalf("expected error for unknown language")
	}
	if !strings.Contains(err.Error(), "English") {
		t.Fatalf("expected available languages in error, got %v", err)
	}
}

func TestLoadTableTOMLAndYAMLAgree(t *testing.T) {
	dir := t.TempDir()
	tomlPath := filepath.Join(dir, "es.toml")
	yamlPath := filepath.Join(dir, "es.yaml")
	writeFile(t, tomlPath, `lang = "Spanish"
aliases = ["es"]

[freq]
a = 11.5
e = 13.7
o = 8.7
s = 7.9
`)
	writeFile(t, yamlPath, `lang: Spanish
aliases: [es]
freq:
  A: 11.5
  E: 13.7
  O: 8.7
  S: 7.9
`)
	fromTOML, err := LoadTable(tomlPath)
	if err != nil {
		t.Fatalf("load toml: %v", err)
	}
	fromYAML, err := LoadTable(yamlPath)
	if err != nil {
		t.Fatalf("load yaml: %v", err)
	}
	if fromTOML.Lang != "Spanish" || fromTOML.Freq != fromYAML.Freq {
		t.Fatalf("tables differ: %+v vs %+v", fromTOML, fromYAML)
	}
	if Letter(fromTOML.Peak()) != 'E' {
		t.Fatalf("expected peak E, got %c", Letter(fromTOML.Peak()))
	}
}

func TestLoadTableRejectsUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	writeFile(t, path, "lang = \"bad\"\n[freq]\nae = 1.0\n")
	if _, err := LoadTable(path); err == nil {
		t.Fatalf("expected error for multi-letter key")
	}
}

func TestLoadDirAndMerge(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "english.yml"), "lang: English\nfreq:\n  t: 9\n  e: 3\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")

	extra, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("load dir: %v", err)
	}
	if len(extra) != 1 {
		t.Fatalf("expected 1 table, got %d", len(extra))
	}
	merged := Merge(extra)
	en, err := Lookup(merged, "English")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if Letter(en.Peak()) != 'T' {
		t.Fatalf("expected override table with peak T, got %c", Letter(en.Peak()))
	}
	if _, err := Lookup(merged, "pt"); err != nil {
		t.Fatalf("expected Portuguese to survive merge: %v", err)
	}

	missing, err := LoadDir(filepath.Join(dir, "missing"))
	if err != nil || missing != nil {
		t.Fatalf("expected no tables for missing dir, got %v, %v", missing, err)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
