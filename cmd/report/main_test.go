package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"trade-journal/internal/domain"
	"trade-journal/internal/reporting"
)

var now = time.Date(2024, 2, 14, 18, 0, 0, 0, time.UTC) // Wednesday

func TestResolveRange_Preset(t *testing.T) {
	rng, err := resolveRange("week", "", "", "", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := rng.Label(); got != "2024-02-12 to 2024-02-18" {
		t.Errorf("week label: got %s", got)
	}

	rng, err = resolveRange("month", "2024-01-20", "", "", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := rng.Label(); got != "2024-01-01 to 2024-01-31" {
		t.Errorf("month label: got %s", got)
	}
}

func TestResolveRange_Custom(t *testing.T) {
	rng, err := resolveRange("week", "", "2024-01-05", "2024-01-09", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := rng.Label(); got != "2024-01-05 to 2024-01-09" {
		t.Errorf("custom label: got %s", got)
	}
}

func TestResolveRange_Errors(t *testing.T) {
	tests := []struct {
		name                     string
		preset, date, start, end string
	}{
		{"start only", "week", "", "2024-01-05", ""},
		{"reversed", "week", "", "2024-01-09", "2024-01-05"},
		{"bad preset", "year", "", "", ""},
		{"bad date", "day", "yesterday", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := resolveRange(tt.preset, tt.date, tt.start, tt.end, now); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestWriteOutputs(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	r := &reporting.Report{
		Title:  reporting.DefaultTitle,
		Start:  now,
		End:    now,
		Trades: []*domain.Trade{},
	}

	if err := writeOutputs(dir, r); err != nil {
		t.Fatalf("writeOutputs failed: %v", err)
	}
	for _, name := range []string{"REPORT.md", "TRADES.csv", "STATS.csv"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}
}

func TestRun_FixturesWithSubtitle(t *testing.T) {
	dir := t.TempDir()
	args := os.Args
	t.Cleanup(func() { os.Args = args })
	os.Args = []string{"report", "--use-fixtures", "--preset", "month",
		"--subtitle", "February review", "--output-dir", dir}

	if err := run(); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	md, err := os.ReadFile(filepath.Join(dir, "REPORT.md"))
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.Contains(string(md), "_February review_") {
		t.Errorf("subtitle missing from report:\n%s", md)
	}
	if !strings.Contains(string(md), "## Summary") {
		t.Error("fixture month should have trades")
	}
}
