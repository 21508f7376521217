package incident

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const sampleCSV = `X,Y,Occurrence,Criminal_O,Primary_Of
1,2,2016/01/03 05:00:00+00,Theft $5000 and Under,Theft $5000 and Under
1,2,2022-07-14T13:30:00Z,Fraud,Fraud
1,2,2015/12/31 23:00:00+00,Mischief,Mischief
`

func TestLoad(t *testing.T) {
	records, err := Load(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}

	want := Record{
		Occurred: time.Date(2016, 1, 3, 0, 0, 0, 0, time.UTC),
		Offence:  "Theft $5000 and Under",
		Category: "Theft $5000 and Under",
		Year:     2016,
	}
	if records[0] != want {
		t.Errorf("records[0] = %+v, want %+v", records[0], want)
	}
	if records[1].Year != 2022 || records[1].Category != "Fraud" {
		t.Errorf("records[1] = %+v", records[1])
	}
	if records[2].Year != 2015 {
		t.Errorf("records[2].Year = %d, want 2015", records[2].Year)
	}
}

func TestLoad_HeaderVariants(t *testing.T) {
	in := "\ufeffoccurrence, PRIMARY_OF ,criminal_o\n2019/05/01,Arson,Arson\n"
	records, err := Load(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 1 || records[0].Category != "Arson" || records[0].Year != 2019 {
		t.Errorf("got %+v", records)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		column string
		line   int
	}{
		{"empty input", "", ColumnOccurrence, 0},
		{"missing category column", "Occurrence,Criminal_O\n2016/01/01,Fraud\n", ColumnCategory, 0},
		{"missing occurrence column", "Criminal_O,Primary_Of\nFraud,Fraud\n", ColumnOccurrence, 0},
		{"short date", "Occurrence,Criminal_O,Primary_Of\n2016/01,Fraud,Fraud\n", ColumnOccurrence, 2},
		{"non-numeric year", "Occurrence,Criminal_O,Primary_Of\nabcd/01/01 00,Fraud,Fraud\n", ColumnOccurrence, 2},
		{"bad month", "Occurrence,Criminal_O,Primary_Of\n2016/13/01 00,Fraud,Fraud\n", ColumnOccurrence, 2},
		{"empty category", "Occurrence,Criminal_O,Primary_Of\n2016/01/01,Fraud,Fraud\n2017/01/01,Fraud,\n", ColumnCategory, 3},
		{"bad date after multi-line field", "Occurrence,Criminal_O,Primary_Of\n2016/01/01,\"Theft\nover two lines\",Fraud\n2016/13/01,Fraud,Fraud\n", ColumnOccurrence, 4},
		{"empty category after multi-line field", "Occurrence,Criminal_O,Primary_Of\n2016/01/01,\"a\nb\nc\",Fraud\n2017/01/01,Fraud,\n", ColumnCategory, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.input))
			if !errors.Is(err, ErrDataFormat) {
				t.Fatalf("err = %v, want ErrDataFormat", err)
			}
			var dfe *DataFormatError
			if !errors.As(err, &dfe) {
				t.Fatalf("err = %T, want *DataFormatError", err)
			}
			if dfe.Column != tt.column || dfe.Line != tt.line {
				t.Errorf("got column %q line %d, want %q line %d", dfe.Column, dfe.Line, tt.column, tt.line)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "offences.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0644); err != nil {
		t.Fatal(err)
	}
	records, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("got %d records, want 3", len(records))
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParseOccurrence(t *testing.T) {
	tests := []struct {
		input string
		year  int
		ok    bool
	}{
		{"2016/01/01 05:00:00+00", 2016, true},
		{"2022-12-31", 2022, true},
		{"2020/02/30 00:00", 0, false},
		{"16/01/01", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, year, err := ParseOccurrence(tt.input)
		if (err == nil) != tt.ok {
			t.Errorf("ParseOccurrence(%q) err = %v, want ok=%v", tt.input, err, tt.ok)
			continue
		}
		if tt.ok && (year != tt.year || got.Year() != tt.year || got.Hour() != 0) {
			t.Errorf("ParseOccurrence(%q) = %v, %d", tt.input, got, year)
		}
	}
}
