package domain

import (
	"strconv"
	"strings"
	"time"
)

// Trade is a single logged trade as read by the analytics engine.
// Corresponds to the trades table. Trades are immutable inputs: nothing in the
// engine mutates a Trade after it has been loaded.
type Trade struct {
	ID        string
	Date      time.Time // calendar date, midnight UTC; only Y/M/D are meaningful
	EntryTime string    // optional "HH:MM", "" when absent
	Pair      string    // instrument symbol (EURUSD, ES, ...)
	Direction Direction

	NetPL     float64  // realized P/L in account currency, sole source of outcome
	RMultiple *float64 // nil when absent, never treated as zero

	RuleViolation bool
	MistakeTag    string // optional
	Grade         Grade  // optional, "" when absent

	ModelID   string // optional
	AccountID string // optional

	// Price levels are stored for listing only; R is never recomputed from them.
	EntryPrice *float64
	ExitPrice  *float64
	StopLoss   *float64
	TakeProfit *float64
	Notes      string

	CreatedAt time.Time // secondary ordering key for same-day trades
}

// Direction is the side of a trade.
type Direction string

// Direction values
const (
	DirectionLong  Direction = "Long"
	DirectionShort Direction = "Short"
)

// IsValid reports whether d is Long or Short.
func (d Direction) IsValid() bool {
	return d == DirectionLong || d == DirectionShort
}

// ParseDirection accepts the common spellings used in journals and CSV exports.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "long", "buy", "l":
		return DirectionLong, true
	case "short", "sell", "s":
		return DirectionShort, true
	default:
		return "", false
	}
}

// Grade is the self-assessed quality label of a trade.
type Grade string

// Grade values, best to worst.
const (
	GradeAPlus Grade = "A+"
	GradeA     Grade = "A"
	GradeB     Grade = "B"
	GradeC     Grade = "C"
	GradeF     Grade = "F"
)

// Grades is the fixed display order of grade buckets.
var Grades = []Grade{GradeAPlus, GradeA, GradeB, GradeC, GradeF}

// ParseGrade returns the grade for s, or false when s is not one of Grades.
func ParseGrade(s string) (Grade, bool) {
	g := Grade(strings.ToUpper(strings.TrimSpace(s)))
	for _, valid := range Grades {
		if g == valid {
			return g, true
		}
	}
	return "", false
}

// Outcome classifies a trade by the sign of its NetPL.
type Outcome int

// Outcome values
const (
	OutcomeBreakeven Outcome = iota
	OutcomeWin
	OutcomeLoss
)

// Outcome returns the win/loss/breakeven bucket of the trade.
func (t *Trade) Outcome() Outcome {
	switch {
	case t.NetPL > 0:
		return OutcomeWin
	case t.NetPL < 0:
		return OutcomeLoss
	default:
		return OutcomeBreakeven
	}
}

// HasR reports whether the trade carries an R-multiple.
func (t *Trade) HasR() bool {
	return t.RMultiple != nil
}

// EntryHour returns the hour of EntryTime. ok is false when EntryTime is
// absent or not a valid HH:MM value.
func (t *Trade) EntryHour() (hour int, ok bool) {
	h, _, ok := ParseClock(t.EntryTime)
	return h, ok
}

// DateKey returns the trade date formatted as YYYY-MM-DD.
func (t *Trade) DateKey() string {
	return t.Date.Format(DateLayout)
}

// DateLayout is the canonical calendar date format.
const DateLayout = "2006-01-02"

// CalendarDate truncates ts to its calendar date in ts's own location and
// returns it as midnight UTC.
func CalendarDate(ts time.Time) time.Time {
	y, m, d := ts.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a calendar date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, err
	}
	return CalendarDate(d), nil
}

// ParseClock parses "HH:MM" (also "H:MM" and "HH:MM:SS").
func ParseClock(s string) (hour, minute int, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, false
	}
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}

// Clone returns a deep copy of t.
func (t *Trade) Clone() *Trade {
	c := *t
	c.RMultiple = cloneFloat(t.RMultiple)
	c.EntryPrice = cloneFloat(t.EntryPrice)
	c.ExitPrice = cloneFloat(t.ExitPrice)
	c.StopLoss = cloneFloat(t.StopLoss)
	c.TakeProfit = cloneFloat(t.TakeProfit)
	return &c
}

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
