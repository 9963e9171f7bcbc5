// Package ingest turns loosely typed journal records (CSV rows, form posts)
// into validated domain.Trade values.
package ingest

import (
	"errors"
	"fmt"
)

// ErrInvalidRecord is returned when a record cannot become a trade at all.
var ErrInvalidRecord = errors.New("invalid trade record")

// RawTrade is a trade exactly as it was entered, every field a string.
type RawTrade struct {
	ID            string `json:"id"`
	Date          string `json:"date"`
	EntryTime     string `json:"entry_time"`
	Pair          string `json:"pair"`
	Direction     string `json:"direction"`
	NetPL         string `json:"net_pl"`
	RMultiple     string `json:"r_multiple"`
	RuleViolation string `json:"rule_violation"`
	MistakeTag    string `json:"mistake_tag"`
	Grade         string `json:"grade"`
	ModelID       string `json:"model_id"`
	AccountID     string `json:"account_id"`
	EntryPrice    string `json:"entry_price"`
	ExitPrice     string `json:"exit_price"`
	StopLoss      string `json:"stop_loss"`
	TakeProfit    string `json:"take_profit"`
	Notes         string `json:"notes"`
}

// Warning describes a field that was dropped or defaulted during normalization.
type Warning struct {
	Row   int    `json:"row"` // 1-based data row, 0 when not read from a file
	Field string `json:"field"`
	Value string `json:"value"`
	Msg   string `json:"message"`
}

func (w Warning) String() string {
	if w.Row > 0 {
		return fmt.Sprintf("row %d: %s %q: %s", w.Row, w.Field, w.Value, w.Msg)
	}
	return fmt.Sprintf("%s %q: %s", w.Field, w.Value, w.Msg)
}

func invalidField(field, value string) error {
	return fmt.Errorf("%w: %s %q", ErrInvalidRecord, field, value)
}
