package domain

// Point is a labeled value in a chronological or categorical series.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// MonthlyPoint is one calendar month of P/L with the running total carried
// across months.
type MonthlyPoint struct {
	Month      string  `json:"month"` // YYYY-MM
	PL         float64 `json:"pl"`
	Cumulative float64 `json:"cumulative"`
	Trades     int     `json:"trades"`
}

// HeatmapDay is one calendar day of the daily P/L heatmap.
// HasTrades distinguishes a no-trade day from a breakeven day.
type HeatmapDay struct {
	Date      string  `json:"date"` // YYYY-MM-DD
	PL        float64 `json:"pl"`
	Trades    int     `json:"trades"`
	HasTrades bool    `json:"has_trades"`
}

// HourCell is one (weekday, hour) cell of the entry-time heatmap.
type HourCell struct {
	Weekday string  `json:"weekday"`
	Hour    int     `json:"hour"`
	PL      float64 `json:"pl"`
	Count   int     `json:"count"`
}

// HourHeatmap is the weekday x hour grid. Rows follow Weekdays order.
// Best and Worst are nil when no trade has an entry time.
type HourHeatmap struct {
	Cells [][]HourCell `json:"cells"`
	Best  *HourCell    `json:"best"`
	Worst *HourCell    `json:"worst"`
}

// Bucket is a histogram bin over the half-open interval (Min, Max].
// Infinite bounds are reported through the open flags so JSON stays finite.
type Bucket struct {
	Label      string  `json:"label"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	OpenBelow  bool    `json:"open_below"`
	OpenAbove  bool    `json:"open_above"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// GradeBucket is the count and mean P/L of trades with one grade.
type GradeBucket struct {
	Grade   Grade   `json:"grade"`
	Count   int     `json:"count"`
	AvgPL   float64 `json:"avg_pl"`
	TotalPL float64 `json:"total_pl"`
}

// LongShort splits aggregate statistics by direction; a side with no trades is nil.
type LongShort struct {
	Long  *GroupStats `json:"long"`
	Short *GroupStats `json:"short"`
}

// StreakStats summarises consecutive same-sign outcomes.
// CurrentStreak is positive for an ongoing win streak, negative for an
// ongoing loss streak and 0 when the latest trade was breakeven.
type StreakStats struct {
	BestWinStreak   int     `json:"best_win_streak"`
	WorstLossStreak int     `json:"worst_loss_streak"`
	AvgWinStreak    float64 `json:"avg_win_streak"`
	AvgLossStreak   float64 `json:"avg_loss_streak"`
	CurrentStreak   int     `json:"current_streak"`
}

// Partition is the summary of one side of the violated/clean split.
type Partition struct {
	Count   int     `json:"count"`
	TotalPL float64 `json:"total_pl"`
	AvgPL   float64 `json:"avg_pl"`
	WinRate float64 `json:"win_rate"`
}

// TagCount is a mistake tag and how often it occurred.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// DisciplineReport is the rule-violation analysis of a trade set.
// HiddenCost is the summed NetPL of violated trades and may be positive.
type DisciplineReport struct {
	Violated      *Partition `json:"violated"`
	Clean         *Partition `json:"clean"`
	ViolationRate float64    `json:"violation_rate"`
	RollingRate   []Point    `json:"rolling_rate"`
	TopMistakes   []TagCount `json:"top_mistakes"`
	HiddenCost    float64    `json:"hidden_cost"`
}

// ScoreDimension is one axis of the composite score.
type ScoreDimension struct {
	Name   string  `json:"name"`
	Raw    float64 `json:"raw"`
	Score  float64 `json:"score"` // 0-100
	Weight float64 `json:"weight"`
}

// Score is the composite radar score.
type Score struct {
	Dimensions []ScoreDimension `json:"dimensions"`
	Overall    float64          `json:"overall"`
}

// Weekdays is the display order of weekday series, Monday first.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
