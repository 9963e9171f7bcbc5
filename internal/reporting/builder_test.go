package reporting

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"trade-journal/internal/domain"
	"trade-journal/internal/storage/memory"
)

func ptr(v float64) *float64 { return &v }

func day(s string) time.Time {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func setupTestData(t *testing.T) *memory.TradeStore {
	ctx := context.Background()
	store := memory.NewTradeStore()

	trades := []*domain.Trade{
		{ID: "t1", Date: day("2024-01-08"), EntryTime: "09:30", Pair: "ES", Direction: domain.DirectionLong, NetPL: 200, RMultiple: ptr(2), AccountID: "acc-1", ModelID: "orb", Grade: domain.GradeA},
		{ID: "t2", Date: day("2024-01-09"), Pair: "NQ", Direction: domain.DirectionShort, NetPL: -50, RMultiple: ptr(-0.5), AccountID: "acc-1", ModelID: "orb", RuleViolation: true, MistakeTag: "fomo"},
		{ID: "t3", Date: day("2024-01-10"), Pair: "ES", Direction: domain.DirectionLong, NetPL: 0, AccountID: "acc-2", Notes: "scratch, early exit"},
		{ID: "t4", Date: day("2024-02-01"), Pair: "CL", Direction: domain.DirectionShort, NetPL: 75, AccountID: "acc-1"},
	}
	for _, tr := range trades {
		if err := store.Insert(ctx, tr); err != nil {
			t.Fatalf("Insert trade failed: %v", err)
		}
	}
	return store
}

var (
	fixedTime  = time.Date(2024, 2, 2, 12, 0, 0, 0, time.UTC)
	fixedClock = func() time.Time { return fixedTime }
	fixedID    = func() string { return "report-1" }
)

func januaryRequest() Request {
	return Request{Range: Range{Start: day("2024-01-01"), End: day("2024-01-31")}}
}

func TestBuild_Deterministic(t *testing.T) {
	ctx := context.Background()

	var first string
	for run := 0; run < 5; run++ {
		b := NewBuilder(setupTestData(t)).WithClock(fixedClock).WithIDFunc(fixedID)

		report, err := b.Build(ctx, januaryRequest())
		if err != nil {
			t.Fatalf("Run %d: Build failed: %v", run, err)
		}

		md := RenderMarkdown(report)
		if run == 0 {
			first = md
			continue
		}
		if md != first {
			t.Fatalf("Run %d: markdown differs from first run", run)
		}
	}
}

func TestBuild_Contents(t *testing.T) {
	b := NewBuilder(setupTestData(t)).WithClock(fixedClock).WithIDFunc(fixedID)

	report, err := b.Build(context.Background(), januaryRequest())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if report.ID != "report-1" {
		t.Errorf("ID: got %s", report.ID)
	}
	if !report.GeneratedAt.Equal(fixedTime) {
		t.Errorf("GeneratedAt: got %v", report.GeneratedAt)
	}
	if report.Title != DefaultTitle {
		t.Errorf("Title: got %q", report.Title)
	}
	if report.Subtitle != "2024-01-01 to 2024-01-31" {
		t.Errorf("Subtitle: got %q", report.Subtitle)
	}
	if len(report.Trades) != 3 {
		t.Fatalf("expected 3 trades, got %d", len(report.Trades))
	}
	if report.Trades[0].ID != "t1" || report.Trades[2].ID != "t3" {
		t.Error("trades should be chronological")
	}
	if report.Stats == nil || report.Stats.TotalPL != 150 {
		t.Fatalf("unexpected stats %+v", report.Stats)
	}
	if report.Streaks == nil || report.Streaks.BestWinStreak != 1 {
		t.Errorf("unexpected streaks %+v", report.Streaks)
	}
	if len(report.Instruments) != 2 || report.Instruments[0].Key != "ES" {
		t.Errorf("unexpected instruments %+v", report.Instruments)
	}
	if len(report.Monthly) != 1 || report.Monthly[0].Month != "2024-01" {
		t.Errorf("unexpected monthly %+v", report.Monthly)
	}
}

func TestBuild_AccountFilter(t *testing.T) {
	b := NewBuilder(setupTestData(t)).WithClock(fixedClock)

	req := Request{Range: Range{Start: day("2024-01-01"), End: day("2024-02-29")}, AccountID: "acc-1", Title: "Acc 1"}
	report, err := b.Build(context.Background(), req)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if len(report.Trades) != 3 {
		t.Fatalf("expected 3 trades, got %d", len(report.Trades))
	}
	for _, tr := range report.Trades {
		if tr.AccountID != "acc-1" {
			t.Errorf("trade %s from account %s", tr.ID, tr.AccountID)
		}
	}
	if report.ID == "" {
		t.Error("report id should be generated")
	}
}

func TestBuild_EmptyRange(t *testing.T) {
	b := NewBuilder(setupTestData(t)).WithClock(fixedClock)

	report, err := b.Build(context.Background(), Request{Range: DayRange(day("2024-03-15"))})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if report.Stats != nil {
		t.Error("expected nil stats")
	}
	if report.Streaks != nil {
		t.Error("expected nil streaks")
	}
	if report.Trades == nil || !report.Empty() {
		t.Error("expected empty non-nil trade list")
	}
	if !strings.Contains(RenderMarkdown(report), "No trades in this period.") {
		t.Error("markdown should state the period is empty")
	}
}

func TestBuild_InvalidRange(t *testing.T) {
	b := NewBuilder(memory.NewTradeStore())

	req := Request{Range: Range{Start: day("2024-02-01"), End: day("2024-01-01")}}
	_, err := b.Build(context.Background(), req)
	if !errors.Is(err, ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}
}

func TestRenderMarkdown_Format(t *testing.T) {
	b := NewBuilder(setupTestData(t)).WithClock(fixedClock).WithIDFunc(fixedID)
	req := januaryRequest()
	req.Title = "January"
	report, err := b.Build(context.Background(), req)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	md := RenderMarkdown(report)

	for _, want := range []string{
		"# January",
		"Generated: 2024-02-02T12:00:00Z",
		"## Summary",
		"| Net P/L | $150.00 |",
		"| Win Rate | 33.3% |",
		"## Streaks",
		"## Instruments",
		"## Trades",
		"| 2024-01-09 | - | NQ | Short | -$50.00 | -0.50R | - | yes (fomo) |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
	if strings.Contains(md, "## Monthly") {
		t.Error("monthly section should be omitted for a single month")
	}
}

func TestSnapshot(t *testing.T) {
	b := NewBuilder(setupTestData(t)).WithClock(fixedClock).WithIDFunc(fixedID)
	report, err := b.Build(context.Background(), januaryRequest())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	store := memory.NewReportSnapshotStore()
	if err := Archive(context.Background(), store, report); err != nil {
		t.Fatalf("Archive failed: %v", err)
	}

	got, err := store.GetRecent(context.Background(), 1)
	if err != nil || len(got) != 1 {
		t.Fatalf("GetRecent: %v %v", got, err)
	}
	snap := got[0]
	if snap.ReportID != "report-1" || snap.TotalTrades != 3 || snap.TotalPL != 150 {
		t.Errorf("unexpected snapshot %+v", snap)
	}
	if !snap.StartDate.Equal(day("2024-01-01")) || !snap.EndDate.Equal(day("2024-01-31")) {
		t.Errorf("unexpected snapshot range %v %v", snap.StartDate, snap.EndDate)
	}

	if err := Archive(context.Background(), store, report); err == nil {
		t.Error("archiving the same report twice should fail")
	}
}
