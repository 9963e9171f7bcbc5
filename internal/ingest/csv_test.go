package ingest

import (
	"errors"
	"strings"
	"testing"
)

func TestReadCSV_HeaderAliases(t *testing.T) {
	input := "Trade Date,Symbol,Side,P&L,R,Grade,Notes,Unused\n" +
		"2024-01-02,ES,Long,125.5,1.5,A,\"first, trade\",x\n" +
		"\n" +
		"2024-01-03,NQ,Short,-40,,,,\n"

	raws, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(raws) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(raws))
	}

	first := raws[0]
	if first.Date != "2024-01-02" || first.Pair != "ES" || first.Direction != "Long" {
		t.Errorf("unexpected first row %+v", first)
	}
	if first.NetPL != "125.5" || first.RMultiple != "1.5" || first.Grade != "A" {
		t.Errorf("unexpected first row values %+v", first)
	}
	if first.Notes != "first, trade" {
		t.Errorf("quoted notes: got %q", first.Notes)
	}

	if raws[1].RMultiple != "" {
		t.Errorf("empty cell should be empty, got %q", raws[1].RMultiple)
	}
}

func TestReadCSV_ShortRows(t *testing.T) {
	input := "date,direction,net_pl,account\n2024-01-02,Long,10\n"

	raws, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(raws) != 1 || raws[0].AccountID != "" {
		t.Errorf("unexpected rows %+v", raws)
	}
}

func TestReadCSV_MissingColumn(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("date,pair\n2024-01-02,ES\n"))
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("expected ErrMissingColumn, got %v", err)
	}
	if !strings.Contains(err.Error(), "direction") {
		t.Errorf("error should name the column: %v", err)
	}
}

func TestReadCSV_Empty(t *testing.T) {
	raws, err := ReadCSV(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raws == nil || len(raws) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", raws)
	}
}

func TestReadCSV_ByteOrderMark(t *testing.T) {
	input := "\uFEFFdate,direction,net_pl\n2024-01-02,Long,10\n"

	raws, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(raws) != 1 || raws[0].Date != "2024-01-02" {
		t.Errorf("unexpected rows %+v", raws)
	}
}
