package incident

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Column names in the Ottawa criminal offences export.
const (
	ColumnOccurrence = "Occurrence"
	ColumnOffence    = "Criminal_O"
	ColumnCategory   = "Primary_Of"
)

// ErrDataFormat is wrapped by every DataFormatError.
var ErrDataFormat = errors.New("data format error")

// DataFormatError reports input that cannot be turned into records. Line is
// the 1-based line of the file where the row starts, or 0 for header
// problems.
type DataFormatError struct {
	Line   int
	Column string
	Value  string
	Reason string
}

func (e *DataFormatError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("column %s: %s", e.Column, e.Reason)
	}
	return fmt.Sprintf("line %d, column %s: %s (%q)", e.Line, e.Column, e.Reason, e.Value)
}

func (e *DataFormatError) Unwrap() error { return ErrDataFormat }

var dateLayouts = []string{"2006/01/02", "2006-01-02"}

// LoadFile reads incident records from a CSV file.
func LoadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	records, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// Load reads incident records from CSV. Only the occurrence, offence and
// category columns are used; any other columns are ignored.
func Load(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &DataFormatError{Column: ColumnOccurrence, Reason: "missing header"}
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx, err := columnIndexes(header)
	if err != nil {
		return nil, err
	}

	var records []Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read dataset: %w", err)
		}
		rec, err := parseRow(row, idx, startLine(cr))
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

type columns struct {
	occurrence, offence, category int
}

func columnIndexes(header []string) (columns, error) {
	idx := columns{-1, -1, -1}
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		switch {
		case strings.EqualFold(h, ColumnOccurrence):
			idx.occurrence = i
		case strings.EqualFold(h, ColumnOffence):
			idx.offence = i
		case strings.EqualFold(h, ColumnCategory):
			idx.category = i
		}
	}
	for _, c := range []struct {
		name string
		i    int
	}{
		{ColumnOccurrence, idx.occurrence},
		{ColumnOffence, idx.offence},
		{ColumnCategory, idx.category},
	} {
		if c.i < 0 {
			return idx, &DataFormatError{Column: c.name, Reason: "missing required column"}
		}
	}
	return idx, nil
}

// startLine is the physical line the last row read begins on. Quoted fields
// may span several lines, so this differs from the record count.
func startLine(cr *csv.Reader) int {
	line, _ := cr.FieldPos(0)
	return line
}

func parseRow(row []string, idx columns, line int) (Record, error) {
	field := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	occurred, year, err := ParseOccurrence(field(idx.occurrence))
	if err != nil {
		return Record{}, &DataFormatError{Line: line, Column: ColumnOccurrence, Value: field(idx.occurrence), Reason: err.Error()}
	}
	category := field(idx.category)
	if category == "" {
		return Record{}, &DataFormatError{Line: line, Column: ColumnCategory, Reason: "empty category"}
	}
	return Record{
		Occurred: occurred,
		Offence:  field(idx.offence),
		Category: Code(category),
		Year:     year,
	}, nil
}

// ParseOccurrence truncates an occurrence timestamp to its date and derives
// the year from the first four characters.
func ParseOccurrence(s string) (time.Time, int, error) {
	if len(s) < 10 {
		return time.Time{}, 0, errors.New("occurrence too short for a date")
	}
	date := s[:10]
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return time.Time{}, 0, errors.New("occurrence does not start with a year")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, date); err == nil {
			return t, year, nil
		}
	}
	return time.Time{}, 0, errors.New("malformed occurrence date")
}
