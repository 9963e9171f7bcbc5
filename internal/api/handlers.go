package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"trade-journal/internal/analytics"
	"trade-journal/internal/domain"
	"trade-journal/internal/ingest"
	"trade-journal/internal/metrics"
	"trade-journal/internal/reporting"
	"trade-journal/internal/storage"
)

// Handler handles analytics HTTP requests.
type Handler struct {
	analytics *analytics.Service
	trades    storage.TradeStore
	snapshots storage.ReportSnapshotStore
	reports   *reporting.Builder
	importer  *ingest.Importer
	log       zerolog.Logger
	now       func() time.Time
}

// NewHandler creates a new handler.
func NewHandler(cfg Config) *Handler {
	now := cfg.Clock
	if now == nil {
		now = time.Now
	}
	return &Handler{
		analytics: cfg.Analytics,
		trades:    cfg.Trades,
		snapshots: cfg.Snapshots,
		reports:   cfg.Reports,
		importer:  cfg.Importer,
		log:       cfg.Log.With().Str("handler", "api").Logger(),
		now:       now,
	}
}

// RegisterRoutes registers the /api routes on r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/stats", h.engine(func(c buildCtx) (any, error) { return metrics.ComputeStats(c.trades), nil }))
		r.Get("/equity", h.engine(func(c buildCtx) (any, error) { return metrics.EquityCurve(c.trades), nil }))
		r.Get("/drawdown", h.engine(func(c buildCtx) (any, error) { return metrics.DrawdownCurve(c.trades), nil }))
		r.Get("/monthly", h.engine(func(c buildCtx) (any, error) { return metrics.MonthlyPL(c.trades), nil }))
		r.Get("/weekdays", h.engine(func(c buildCtx) (any, error) { return metrics.DayOfWeekAverages(c.trades), nil }))
		r.Get("/rolling", h.engine(h.buildRolling))
		r.Get("/heatmap/daily", h.engine(h.buildDailyHeatmap))
		r.Get("/heatmap/hourly", h.engine(func(c buildCtx) (any, error) { return metrics.WeekdayHourHeatmap(c.trades), nil }))
		r.Get("/distribution/r", h.engine(func(c buildCtx) (any, error) { return metrics.RMultipleHistogram(c.trades), nil }))
		r.Get("/grades", h.engine(func(c buildCtx) (any, error) { return metrics.GradeBuckets(c.trades), nil }))
		r.Get("/long-short", h.engine(func(c buildCtx) (any, error) { return metrics.LongShortSplit(c.trades), nil }))
		r.Get("/segments/{dimension}", h.engine(buildSegments))
		r.Get("/streaks", h.engine(func(c buildCtx) (any, error) { return metrics.Streaks(c.trades), nil }))
		r.Get("/discipline", h.engine(h.buildDiscipline))
		r.Get("/score", h.engine(h.buildScore))

		r.Get("/views/{name}", h.HandleView)

		r.Get("/report", h.HandleReport)
		r.Get("/reports/history", h.HandleReportHistory)

		r.Route("/trades", func(r chi.Router) {
			r.Get("/", h.HandleListTrades)
			r.Post("/", h.HandleCreateTrade)
			r.Post("/import", h.HandleImport)
			r.Get("/{id}", h.HandleGetTrade)
			r.Delete("/{id}", h.HandleDeleteTrade)
		})
	})
}

// buildCtx carries the loaded trades and request of one engine call.
type buildCtx struct {
	r      *http.Request
	filter domain.TradeFilter
	trades []*domain.Trade
}

// engine adapts a pure builder into a handler: parse filter, load trades,
// build, encode.
func (h *Handler) engine(build func(buildCtx) (any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseFilter(r)
		if err != nil {
			h.writeError(w, err)
			return
		}
		trades, err := h.analytics.Trades(r.Context(), filter)
		if err != nil {
			h.writeError(w, err)
			return
		}
		out, err := build(buildCtx{r: r, filter: filter, trades: trades})
		if err != nil {
			h.writeError(w, err)
			return
		}
		h.writeJSON(w, http.StatusOK, out)
	}
}

func (h *Handler) buildRolling(c buildCtx) (any, error) {
	window, err := intParam(c.r, "window", h.analytics.Options().RollingWindow)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"window":         window,
		"win_rate":       metrics.RollingWinRate(c.trades, window),
		"expectancy":     metrics.RollingExpectancy(c.trades, window),
		"violation_rate": metrics.RollingViolationRate(c.trades, window),
	}, nil
}

func (h *Handler) buildDailyHeatmap(c buildCtx) (any, error) {
	days, err := intParam(c.r, "days", h.analytics.Options().HeatmapDays)
	if err != nil {
		return nil, err
	}
	return metrics.DailyHeatmap(c.trades, analytics.HeatmapEnd(c.filter, c.trades), days), nil
}

func (h *Handler) buildDiscipline(c buildCtx) (any, error) {
	top, err := intParam(c.r, "top", h.analytics.Options().TopMistakes)
	if err != nil {
		return nil, err
	}
	return metrics.Discipline(c.trades, top), nil
}

func (h *Handler) buildScore(c buildCtx) (any, error) {
	return metrics.CompositeScore(metrics.ComputeStats(c.trades), h.analytics.Options().ScoreRanges), nil
}

func buildSegments(c buildCtx) (any, error) {
	name := chi.URLParam(c.r, "dimension")
	d, ok := metrics.ParseDimension(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", metrics.ErrUnknownDimension, name)
	}
	return metrics.Segment(c.trades, d), nil
}

// HandleView returns a composed view: dashboard, analytics or risk.
func (h *Handler) HandleView(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	var out any
	switch name := chi.URLParam(r, "name"); name {
	case "dashboard":
		out, err = h.analytics.Dashboard(r.Context(), filter)
	case "analytics":
		out, err = h.analytics.Analytics(r.Context(), filter)
	case "risk":
		out, err = h.analytics.Risk(r.Context(), filter)
	default:
		err = fmt.Errorf("%w: unknown view %q", storage.ErrNotFound, name)
	}
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, out)
}
