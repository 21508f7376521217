package incident

import (
	"fmt"
	"sort"
	"strings"
)

// LabelEntry pairs a category code with its display label.
type LabelEntry struct {
	Code  Code   `json:"code" koanf:"code"`
	Label string `json:"label" koanf:"label"`
}

// defaultEntries are the Ottawa primary-offence groupings with the short
// labels shown in the dashboard. Order is the dropdown order.
var defaultEntries = []LabelEntry{
	{"Other Violent Criminal Code Violations", "Violence"},
	{"Breaking and Entering", "Break in"},
	{"Mischief", "Mischief"},
	{"Theft $5000 and Under", "Under $5000"},
	{"Theft of Motor Vehicle", "Theft Vehicles"},
	{"Assaults", "Assaults"},
	{"Sexual Violations", "Sexual Violations"},
	{"Fraud", "Fraud"},
	{"Theft Over $5000", "Over $5000"},
	{"Other Criminal Code Violations", "Other Crim. Code"},
	{"Possession / Trafficking Stolen Goods", "Poss./Traffic. Stolen Goods"},
	{"Offensive Weapons", "Offensive Weapons"},
	{"Arson", "Arson"},
	{"Attempting the Commission of a Capital Crime", "Attempt. Capital Crime"},
	{"Violations Resulting in the Deprivation of Freedom", "Deprivation of Freedom"},
	{"Violations Causing Death", "Causing Death"},
	{"Commodification of Sexual Activity", "Commodif. of Sex. Activity"},
	{"Prostitution", "Prostitution"},
	{"Gaming and Betting", "Gaming"},
}

// Labels is a two-way mapping between category codes and display labels.
// It is built once and read concurrently afterwards.
type Labels struct {
	entries []LabelEntry
	byCode  map[Code]string
	byLabel map[string]Code
}

// NewLabels builds a label table. Codes and labels must be non-empty and
// unique, and "All" is reserved.
func NewLabels(entries []LabelEntry) (*Labels, error) {
	l := &Labels{
		entries: make([]LabelEntry, 0, len(entries)),
		byCode:  make(map[Code]string, len(entries)),
		byLabel: make(map[string]Code, len(entries)),
	}
	for i, e := range entries {
		code := Code(strings.TrimSpace(string(e.Code)))
		label := strings.TrimSpace(e.Label)
		switch {
		case code == "" || label == "":
			return nil, fmt.Errorf("label entry %d: code and label are required", i)
		case label == All:
			return nil, fmt.Errorf("label entry %d: %q is reserved", i, All)
		}
		if _, dup := l.byCode[code]; dup {
			return nil, fmt.Errorf("label entry %d: duplicate code %q", i, code)
		}
		if _, dup := l.byLabel[label]; dup {
			return nil, fmt.Errorf("label entry %d: duplicate label %q", i, label)
		}
		l.byCode[code] = label
		l.byLabel[label] = code
		l.entries = append(l.entries, LabelEntry{Code: code, Label: label})
	}
	return l, nil
}

// DefaultLabels returns the built-in Ottawa label table.
func DefaultLabels() *Labels {
	l, err := NewLabels(defaultEntries)
	if err != nil {
		panic(err)
	}
	return l
}

// Label returns the display label for code. Codes missing from the table are
// shown as-is.
func (l *Labels) Label(code Code) string {
	if label, ok := l.byCode[code]; ok {
		return label
	}
	return string(code)
}

// Code maps a display label back to its category code.
func (l *Labels) Code(label string) (Code, bool) {
	code, ok := l.byLabel[label]
	return code, ok
}

// Options returns "All" followed by every label in table order.
func (l *Labels) Options() []string {
	opts := make([]string, 0, len(l.entries)+1)
	opts = append(opts, All)
	for _, e := range l.entries {
		opts = append(opts, e.Label)
	}
	return opts
}

// Entries returns a copy of the table.
func (l *Labels) Entries() []LabelEntry {
	return append([]LabelEntry(nil), l.entries...)
}

func sortCodes(codes []Code) {
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
}
