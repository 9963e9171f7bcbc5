package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrMissingColumn is returned when a CSV header lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

// headerAliases maps accepted header spellings to RawTrade fields.
var headerAliases = map[string]string{
	"id":             "id",
	"trade_id":       "id",
	"date":           "date",
	"trade_date":     "date",
	"entry_time":     "entry_time",
	"time":           "entry_time",
	"pair":           "pair",
	"symbol":         "pair",
	"instrument":     "pair",
	"direction":      "direction",
	"side":           "direction",
	"net_pl":         "net_pl",
	"netpl":          "net_pl",
	"pnl":            "net_pl",
	"p&l":            "net_pl",
	"r_multiple":     "r_multiple",
	"r":              "r_multiple",
	"rule_violation": "rule_violation",
	"violation":      "rule_violation",
	"mistake_tag":    "mistake_tag",
	"mistake":        "mistake_tag",
	"grade":          "grade",
	"model_id":       "model_id",
	"model":          "model_id",
	"account_id":     "account_id",
	"account":        "account_id",
	"entry_price":    "entry_price",
	"exit_price":     "exit_price",
	"stop_loss":      "stop_loss",
	"take_profit":    "take_profit",
	"notes":          "notes",
}

var requiredColumns = []string{"date", "direction", "net_pl"}

// ReadCSV reads raw trades from a CSV stream with a header row.
// Column names are matched case-insensitively; unknown columns are ignored.
func ReadCSV(r io.Reader) ([]RawTrade, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []RawTrade{}, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\uFEFF")))
		key = strings.ReplaceAll(key, " ", "_")
		if field, ok := headerAliases[key]; ok {
			if _, dup := columns[field]; !dup {
				columns[field] = i
			}
		}
	}
	for _, req := range requiredColumns {
		if _, ok := columns[req]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, req)
		}
	}

	raws := make([]RawTrade, 0)
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}
		if blank(record) {
			continue
		}

		get := func(field string) string {
			i, ok := columns[field]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		raws = append(raws, RawTrade{
			ID:            get("id"),
			Date:          get("date"),
			EntryTime:     get("entry_time"),
			Pair:          get("pair"),
			Direction:     get("direction"),
			NetPL:         get("net_pl"),
			RMultiple:     get("r_multiple"),
			RuleViolation: get("rule_violation"),
			MistakeTag:    get("mistake_tag"),
			Grade:         get("grade"),
			ModelID:       get("model_id"),
			AccountID:     get("account_id"),
			EntryPrice:    get("entry_price"),
			ExitPrice:     get("exit_price"),
			StopLoss:      get("stop_loss"),
			TakeProfit:    get("take_profit"),
			Notes:         get("notes"),
		})
	}

	return raws, nil
}

func blank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
