package logger

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	Init(&buf)
	t.Cleanup(func() { _ = SetLevelString("info") })

	ctx := context.Background()
	log := Named("loader")
	log.Info(ctx, "dataset loaded", Int("records", 42), String("path", "offences.csv"))

	out := buf.String()
	for _, want := range []string{"msg=\"dataset loaded\"", "component=loader", "records=42", "path=offences.csv", "source=logger_test.go:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}

	buf.Reset()
	log.Debug(ctx, "hidden")
	if buf.Len() != 0 {
		t.Errorf("debug logged at info level: %q", buf.String())
	}

	if err := SetLevelString("debug"); err != nil {
		t.Fatal(err)
	}
	log.Debug(ctx, "visible", Error(errors.New("boom")))
	if !strings.Contains(buf.String(), "error=boom") {
		t.Errorf("debug output = %q", buf.String())
	}
}

func TestSetLevelString(t *testing.T) {
	t.Cleanup(func() { _ = SetLevelString("info") })
	for _, lvl := range []string{"debug", "INFO", "warn", "warning", "error", ""} {
		if err := SetLevelString(lvl); err != nil {
			t.Errorf("SetLevelString(%q): %v", lvl, err)
		}
	}
	if err := SetLevelString("verbose"); err == nil {
		t.Error("expected error for unknown level")
	}
}
