// Package analytics composes engine builders into the payloads of each view.
package analytics

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"trade-journal/internal/domain"
	"trade-journal/internal/metrics"
	"trade-journal/internal/observability"
	"trade-journal/internal/storage"
)

// Options tunes the builders used by the views.
type Options struct {
	RollingWindow int
	HeatmapDays   int
	TopMistakes   int
	ScoreRanges   metrics.ScoreRanges
}

// DefaultOptions returns the engine defaults.
func DefaultOptions() Options {
	return Options{
		RollingWindow: metrics.DefaultWindow,
		HeatmapDays:   metrics.DefaultLookbackDays,
		TopMistakes:   metrics.DefaultTopMistakes,
		ScoreRanges:   metrics.DefaultScoreRanges(),
	}
}

// Service loads trades and builds views. Every call recomputes from the
// store; nothing is cached between requests.
type Service struct {
	agg  *metrics.Aggregator
	log  zerolog.Logger
	opts Options
}

// NewService creates a Service over store.
func NewService(store storage.TradeStore, log zerolog.Logger, opts Options) *Service {
	return &Service{
		agg:  metrics.NewAggregator(store),
		log:  log.With().Str("component", "analytics").Logger(),
		opts: opts,
	}
}

// Options returns the service options.
func (s *Service) Options() Options {
	return s.opts
}

// Aggregator exposes the underlying store-backed aggregator.
func (s *Service) Aggregator() *metrics.Aggregator {
	return s.agg
}

// Trades loads the trades matching filter in chronological order.
func (s *Service) Trades(ctx context.Context, filter domain.TradeFilter) ([]*domain.Trade, error) {
	trades, err := s.agg.Load(ctx, filter)
	if err != nil {
		return nil, err
	}
	observability.RecordTradesLoaded(len(trades))
	return trades, nil
}

// Dashboard builds the dashboard view.
func (s *Service) Dashboard(ctx context.Context, filter domain.TradeFilter) (*Dashboard, error) {
	trades, err := s.Trades(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer s.observe("dashboard", len(trades), time.Now())

	v := &Dashboard{}
	g, gctx := errgroup.WithContext(ctx)
	run(gctx, g, func() {
		v.Stats = metrics.ComputeStats(trades)
		v.Score = metrics.CompositeScore(v.Stats, s.opts.ScoreRanges)
	})
	run(gctx, g, func() { v.Equity = metrics.EquityCurve(trades) })
	run(gctx, g, func() { v.Daily = metrics.DailyHeatmap(trades, HeatmapEnd(filter, trades), s.opts.HeatmapDays) })
	run(gctx, g, func() { v.Streaks = metrics.Streaks(trades) })

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return v, nil
}

// Analytics builds the analytics page view.
func (s *Service) Analytics(ctx context.Context, filter domain.TradeFilter) (*AnalyticsView, error) {
	trades, err := s.Trades(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer s.observe("analytics", len(trades), time.Now())

	v := &AnalyticsView{}
	g, gctx := errgroup.WithContext(ctx)
	run(gctx, g, func() { v.Monthly = metrics.MonthlyPL(trades) })
	run(gctx, g, func() { v.Weekdays = metrics.DayOfWeekAverages(trades) })
	run(gctx, g, func() { v.RollingWinRate = metrics.RollingWinRate(trades, s.opts.RollingWindow) })
	run(gctx, g, func() { v.RollingExpectancy = metrics.RollingExpectancy(trades, s.opts.RollingWindow) })
	run(gctx, g, func() { v.RDistribution = metrics.RMultipleHistogram(trades) })
	run(gctx, g, func() { v.Instruments = metrics.ByInstrument(trades) })
	run(gctx, g, func() { v.Models = metrics.ByModel(trades) })
	run(gctx, g, func() { v.LongShort = metrics.LongShortSplit(trades) })
	run(gctx, g, func() { v.Grades = metrics.GradeBuckets(trades) })
	run(gctx, g, func() { v.Hourly = metrics.WeekdayHourHeatmap(trades) })

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return v, nil
}

// Risk builds the risk dashboard view.
func (s *Service) Risk(ctx context.Context, filter domain.TradeFilter) (*RiskView, error) {
	trades, err := s.Trades(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer s.observe("risk", len(trades), time.Now())

	v := &RiskView{}
	g, gctx := errgroup.WithContext(ctx)
	run(gctx, g, func() { v.Stats = metrics.ComputeStats(trades) })
	run(gctx, g, func() { v.Drawdown = metrics.DrawdownCurve(trades) })
	run(gctx, g, func() { v.RDistribution = metrics.RMultipleHistogram(trades) })
	run(gctx, g, func() { v.Streaks = metrics.Streaks(trades) })
	run(gctx, g, func() { v.Discipline = metrics.Discipline(trades, s.opts.TopMistakes) })
	run(gctx, g, func() { v.Accounts = metrics.ByAccount(trades) })

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return v, nil
}

// HeatmapEnd picks the last day of the daily heatmap: the filter's end date
// when set, otherwise the date of the latest trade.
func HeatmapEnd(filter domain.TradeFilter, trades []*domain.Trade) time.Time {
	if filter.EndDate != nil {
		return *filter.EndDate
	}
	if len(trades) == 0 {
		return time.Time{}
	}
	return trades[len(trades)-1].Date
}

func (s *Service) observe(view string, n int, started time.Time) {
	elapsed := time.Since(started)
	observability.RecordViewDuration(view, elapsed.Seconds())
	s.log.Debug().Str("view", view).Int("trades", n).Dur("elapsed", elapsed).Msg("view built")
}

// run schedules a builder on g. Builders never fail; the group only carries
// cancellation.
func run(ctx context.Context, g *errgroup.Group, build func()) {
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		build()
		return nil
	})
}
