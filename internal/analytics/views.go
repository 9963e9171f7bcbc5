package analytics

import "trade-journal/internal/domain"

// Dashboard is the landing view: headline numbers and the equity curve.
type Dashboard struct {
	Stats   *domain.Stats       `json:"stats"`
	Score   *domain.Score       `json:"score"`
	Equity  []domain.Point      `json:"equity"`
	Daily   []domain.HeatmapDay `json:"daily"`
	Streaks domain.StreakStats  `json:"streaks"`
}

// AnalyticsView holds the breakdown charts of the analytics page.
type AnalyticsView struct {
	Monthly           []domain.MonthlyPoint `json:"monthly"`
	Weekdays          []domain.Point        `json:"weekdays"`
	RollingWinRate    []domain.Point        `json:"rolling_win_rate"`
	RollingExpectancy []domain.Point        `json:"rolling_expectancy"`
	RDistribution     []domain.Bucket       `json:"r_distribution"`
	Instruments       []domain.GroupStats   `json:"instruments"`
	Models            []domain.GroupStats   `json:"models"`
	LongShort         domain.LongShort      `json:"long_short"`
	Grades            []domain.GradeBucket  `json:"grades"`
	Hourly            domain.HourHeatmap    `json:"hourly"`
}

// RiskView is the risk dashboard.
type RiskView struct {
	Stats         *domain.Stats            `json:"stats"`
	Drawdown      []domain.Point           `json:"drawdown"`
	RDistribution []domain.Bucket          `json:"r_distribution"`
	Streaks       domain.StreakStats       `json:"streaks"`
	Discipline    *domain.DisciplineReport `json:"discipline"`
	Accounts      []domain.GroupStats      `json:"accounts"`
}
