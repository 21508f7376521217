package cmd

import (
	"flag"
	"reflect"
	"testing"
)

func TestReorderArgs(t *testing.T) {
	tests := []struct {
		args []string
		bool []string
		want []string
	}{
		{[]string{"data.csv", "--category", "Fraud"}, nil, []string{"--category", "Fraud", "data.csv"}},
		{[]string{"--pdf=out.pdf", "data.csv"}, nil, []string{"--pdf=out.pdf", "data.csv"}},
		{[]string{"-i", "data.csv"}, []string{"i"}, []string{"-i", "data.csv"}},
		{[]string{"--", "-odd.csv"}, nil, []string{"--", "-odd.csv"}},
		{[]string{"data.csv", "--category", "Fraud", "--", "-odd.csv"}, nil, []string{"--category", "Fraud", "--", "data.csv", "-odd.csv"}},
	}
	for _, tt := range tests {
		if got := reorderArgs(tt.args, tt.bool...); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("reorderArgs(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

func TestReorderArgs_Terminator(t *testing.T) {
	fs := flag.NewFlagSet("viz", flag.ContinueOnError)
	category := fs.String("category", "All", "")
	if err := fs.Parse(reorderArgs([]string{"--category", "Fraud", "--", "-odd.csv"})); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if *category != "Fraud" {
		t.Errorf("category = %q, want Fraud", *category)
	}
	if fs.NArg() != 1 || fs.Arg(0) != "-odd.csv" {
		t.Errorf("args = %v, want [-odd.csv]", fs.Args())
	}
}
