package alphabet

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Table holds the expected relative frequency of each letter in a language.
// Only the relative ordering of values matters, so tables need not sum to one.
type Table struct {
	Lang    string
	Aliases []string
	Freq    [Size]float64
}

// Validate rejects tables that cannot serve as a reference distribution.
func (t Table) Validate() error {
	if strings.TrimSpace(t.Lang) == "" {
		return fmt.Errorf("table has no language name")
	}
	total := 0.0
	for i, v := range t.Freq {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("table %s: invalid frequency %v for %c", t.Lang, v, Letter(i))
		}
		total += v
	}
	if total == 0 {
		return fmt.Errorf("table %s: all frequencies are zero", t.Lang)
	}
	return nil
}

// Peak returns the index of the most frequent letter. Ties go to the
// earliest letter.
func (t Table) Peak() int {
	best := 0
	for i := 1; i < Size; i++ {
		if t.Freq[i] > t.Freq[best] {
			best = i
		}
	}
	return best
}

// Matches reports whether name refers to this table, ignoring case.
func (t Table) Matches(name string) bool {
	name = strings.TrimSpace(name)
	if strings.EqualFold(t.Lang, name) {
		return true
	}
	for _, alias := range t.Aliases {
		if strings.EqualFold(alias, name) {
			return true
		}
	}
	return false
}

var builtin = []Table{
	{
		Lang:    "English",
		Aliases: []string{"en"},
		Freq: [Size]float64{
			0.08167, 0.01492, 0.02782, 0.04253, 0.12702, 0.02228, 0.02015, // A-G
			0.06094, 0.06966, 0.00153, 0.00772, 0.04025, 0.02406, 0.06749, // H-N
			0.07507, 0.01929, 0.00095, 0.05987, 0.06327, 0.09056, 0.02758, // O-U
			0.00978, 0.02360, 0.00150, 0.01974, 0.00074, // V-Z
		},
	},
	{
		Lang:    "Portuguese",
		Aliases: []string{"pt"},
		Freq: [Size]float64{
			0.14634, 0.01043, 0.03882, 0.04992, 0.12570, 0.01023, 0.01303, // A-G
			0.00781, 0.06186, 0.00397, 0.00015, 0.02779, 0.04738, 0.04446, // H-N
			0.09735, 0.02523, 0.01204, 0.06530, 0.06805, 0.04336, 0.03639, // O-U
			0.01575, 0.00037, 0.00253, 0.00006, 0.00470, // V-Z
		},
	},
}

// Builtin returns a copy of the compiled-in tables.
func Builtin() []Table {
	out := make([]Table, len(builtin))
	copy(out, builtin)
	return out
}

// Merge combines built-in tables with extra ones. An extra table whose name
// matches a built-in replaces it. The result is sorted by language name.
func Merge(extra []Table) []Table {
	merged := make([]Table, 0, len(builtin)+len(extra))
	for _, b := range builtin {
		replaced := false
		for _, e := range extra {
			if e.Matches(b.Lang) {
				replaced = true
				break
			}
		}
		if !replaced {
			merged = append(merged, b)
		}
	}
	merged = append(merged, extra...)
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Lang < merged[j].Lang
	})
	return merged
}

// Lookup finds a table by name or alias.
func Lookup(tables []Table, name string) (Table, error) {
	for _, t := range tables {
		if t.Matches(name) {
			return t, nil
		}
	}
	names := make([]string, 0, len(tables))
	for _, t := range tables {
		names = append(names, t.Lang)
	}
	return Table{}, fmt.Errorf("unknown language %q (available: %s)", name, strings.Join(names, ", "))
}
