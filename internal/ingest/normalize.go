package ingest

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"trade-journal/internal/domain"
	"trade-journal/internal/idhash"
)

// Rejection records a row that could not be normalized.
type Rejection struct {
	Row int
	Err error
}

// Batch is the outcome of normalizing a set of raw records.
type Batch struct {
	Trades     []*domain.Trade
	Warnings   []Warning
	Rejections []Rejection
}

// Normalize converts one raw record into a trade.
// Malformed optional fields are dropped with a warning; a malformed NetPL
// becomes 0 with a warning. A missing or invalid date or direction rejects
// the record with an error wrapping ErrInvalidRecord.
// The returned trade has an empty ID unless raw.ID was set.
func Normalize(raw RawTrade, createdAt time.Time) (*domain.Trade, []Warning, error) {
	var warnings []Warning
	warn := func(field, value, msg string) {
		warnings = append(warnings, Warning{Field: field, Value: value, Msg: msg})
	}

	date, err := domain.ParseDate(raw.Date)
	if err != nil {
		return nil, nil, invalidField("date", raw.Date)
	}
	direction, ok := domain.ParseDirection(raw.Direction)
	if !ok {
		return nil, nil, invalidField("direction", raw.Direction)
	}

	t := &domain.Trade{
		ID:         strings.TrimSpace(raw.ID),
		Date:       date,
		Pair:       strings.ToUpper(strings.TrimSpace(raw.Pair)),
		Direction:  direction,
		MistakeTag: strings.TrimSpace(raw.MistakeTag),
		ModelID:    strings.TrimSpace(raw.ModelID),
		AccountID:  strings.TrimSpace(raw.AccountID),
		Notes:      strings.TrimSpace(raw.Notes),
		CreatedAt:  createdAt.UTC(),
	}

	switch netPL, present, err := parseNumber(raw.NetPL); {
	case err != nil:
		warn("net_pl", raw.NetPL, numberProblem(err)+", defaulted to 0")
	case !present:
		warn("net_pl", raw.NetPL, "missing, defaulted to 0")
	default:
		t.NetPL = netPL
	}

	if r, present, err := parseNumber(strings.TrimRight(strings.TrimSpace(raw.RMultiple), "Rr")); err != nil {
		warn("r_multiple", raw.RMultiple, numberProblem(err)+", dropped")
	} else if present {
		t.RMultiple = &r
	}

	if raw.EntryTime != "" {
		if h, m, ok := domain.ParseClock(raw.EntryTime); ok {
			t.EntryTime = clock(h, m)
		} else {
			warn("entry_time", raw.EntryTime, "not HH:MM, dropped")
		}
	}

	if strings.TrimSpace(raw.Grade) != "" {
		if g, ok := domain.ParseGrade(raw.Grade); ok {
			t.Grade = g
		} else {
			warn("grade", raw.Grade, "unknown grade, dropped")
		}
	}

	violated, ok := parseFlag(raw.RuleViolation)
	if !ok {
		warn("rule_violation", raw.RuleViolation, "not a yes/no value, treated as no")
	}
	t.RuleViolation = violated

	for _, p := range []struct {
		field string
		value string
		dst   **float64
	}{
		{"entry_price", raw.EntryPrice, &t.EntryPrice},
		{"exit_price", raw.ExitPrice, &t.ExitPrice},
		{"stop_loss", raw.StopLoss, &t.StopLoss},
		{"take_profit", raw.TakeProfit, &t.TakeProfit},
	} {
		v, present, err := parseNumber(p.value)
		if err != nil {
			warn(p.field, p.value, numberProblem(err)+", dropped")
			continue
		}
		if present {
			*p.dst = &v
		}
	}

	return t, warnings, nil
}

// NormalizeAll normalizes raws in order and assigns deterministic IDs to
// trades that carry none. Identical records within one batch get distinct
// ordinals, so re-importing the same file yields the same IDs.
// CreatedAt advances by one millisecond per row to preserve file order for
// same-day trades.
func NormalizeAll(raws []RawTrade, base time.Time) Batch {
	batch := Batch{Trades: make([]*domain.Trade, 0, len(raws))}
	ordinals := make(map[string]int)

	for i, raw := range raws {
		row := i + 1
		t, warnings, err := Normalize(raw, base.Add(time.Duration(i)*time.Millisecond))
		for _, w := range warnings {
			w.Row = row
			batch.Warnings = append(batch.Warnings, w)
		}
		if err != nil {
			batch.Rejections = append(batch.Rejections, Rejection{Row: row, Err: err})
			continue
		}

		if t.ID == "" {
			netPL := decimal.NewFromFloat(t.NetPL).String()
			key := strings.Join([]string{t.AccountID, t.DateKey(), t.Pair, string(t.Direction), t.EntryTime, netPL}, "|")
			t.ID = idhash.ComputeTradeID(t.AccountID, t.DateKey(), t.Pair, string(t.Direction), t.EntryTime, netPL, ordinals[key])
			ordinals[key]++
		}
		batch.Trades = append(batch.Trades, t)
	}

	return batch
}

// parseAmount parses a money-like value. Currency symbols, thousands
// separators and accounting parentheses are accepted. present is false for
// blank input.
func parseAmount(s string) (d decimal.Decimal, present bool, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false, nil
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	s = strings.NewReplacer("$", "", "€", "", "£", "", ",", "", " ", "").Replace(s)

	d, err = decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, true, err
	}
	if negative {
		d = d.Neg()
	}
	return d, true, nil
}

// errOutOfRange marks values that parse as decimals but overflow float64.
var errOutOfRange = errors.New("out of range")

// parseNumber is parseAmount converted to float64. Values that do not fit a
// finite float64 fail with errOutOfRange.
func parseNumber(s string) (v float64, present bool, err error) {
	d, present, err := parseAmount(s)
	if err != nil || !present {
		return 0, present, err
	}
	v = d.InexactFloat64()
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, true, errOutOfRange
	}
	return v, true, nil
}

func numberProblem(err error) string {
	if errors.Is(err, errOutOfRange) {
		return "out of range"
	}
	return "not a number"
}

func parseFlag(s string) (value bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "0", "false", "no", "n":
		return false, true
	case "1", "true", "yes", "y", "x":
		return true, true
	default:
		return false, false
	}
}

func clock(h, m int) string {
	return time.Date(0, 1, 1, h, m, 0, 0, time.UTC).Format("15:04")
}
