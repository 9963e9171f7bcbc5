package domain

import "time"

// InfiniteRatio stands in for +Inf on ratios whose denominator is zero while
// the numerator is positive (profit factor, Calmar, payoff ratio).
const InfiniteRatio = 999.99

// Stats is the core statistics bundle for a set of trades.
// A nil *Stats means "no trades", which callers must render as an empty state.
type Stats struct {
	TotalTrades int `json:"total_trades"`
	Wins        int `json:"wins"`
	Losses      int `json:"losses"`
	Breakeven   int `json:"breakeven"`

	WinRate float64 `json:"win_rate"` // percent, 0-100

	TotalPL   float64 `json:"total_pl"`
	MeanPL    float64 `json:"mean_pl"`
	GrossWin  float64 `json:"gross_win"`
	GrossLoss float64 `json:"gross_loss"` // absolute value
	AvgWin    float64 `json:"avg_win"`
	AvgLoss   float64 `json:"avg_loss"` // absolute value

	ProfitFactor float64 `json:"profit_factor"`
	PayoffRatio  float64 `json:"payoff_ratio"`
	Expectancy   float64 `json:"expectancy"`

	// R-multiple statistics over trades that carry one; nil when none do.
	RTradeCount int      `json:"r_trade_count"`
	AvgR        *float64 `json:"avg_r"`
	StdDevR     *float64 `json:"std_dev_r"`
	BestR       *float64 `json:"best_r"`
	WorstR      *float64 `json:"worst_r"`

	StdDev      float64 `json:"std_dev"` // population standard deviation of NetPL
	Sharpe      float64 `json:"sharpe"`
	Sortino     float64 `json:"sortino"`
	MaxDrawdown float64 `json:"max_drawdown"` // positive currency amount
	Calmar      float64 `json:"calmar"`

	BestTrade  float64 `json:"best_trade"`
	WorstTrade float64 `json:"worst_trade"`

	FirstDate time.Time `json:"first_date"`
	LastDate  time.Time `json:"last_date"`
}

// GroupStats aggregates a subset of trades sharing a key (instrument,
// direction, model or account).
type GroupStats struct {
	Key          string   `json:"key"`
	Trades       int      `json:"trades"`
	Wins         int      `json:"wins"`
	Losses       int      `json:"losses"`
	Breakeven    int      `json:"breakeven"`
	WinRate      float64  `json:"win_rate"`
	TotalPL      float64  `json:"total_pl"`
	AvgWin       float64  `json:"avg_win"`
	AvgLoss      float64  `json:"avg_loss"`
	ProfitFactor float64  `json:"profit_factor"`
	Expectancy   float64  `json:"expectancy"`
	AvgR         *float64 `json:"avg_r"`
}

// ReportSnapshot is the archived summary of a generated report.
// Corresponds to the report_snapshots table.
type ReportSnapshot struct {
	ReportID     string
	GeneratedAt  time.Time
	Title        string
	AccountID    string
	ModelID      string
	StartDate    time.Time
	EndDate      time.Time
	TotalTrades  int
	TotalPL      float64
	WinRate      float64
	ProfitFactor float64
	MaxDrawdown  float64
	Sharpe       float64
	Expectancy   float64
}
