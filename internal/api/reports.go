package api

import (
	"fmt"
	"net/http"

	"trade-journal/internal/domain"
	"trade-journal/internal/reporting"
)

// reportRequest resolves the report range from either preset (+ optional
// date) or explicit start and end. Defaults to the current week.
func (h *Handler) reportRequest(r *http.Request) (reporting.Request, error) {
	q := r.URL.Query()
	req := reporting.Request{
		Title:     q.Get("title"),
		Subtitle:  q.Get("subtitle"),
		AccountID: q.Get("account"),
		ModelID:   q.Get("model"),
	}

	start, err := dateParam(r, "start")
	if err != nil {
		return req, err
	}
	end, err := dateParam(r, "end")
	if err != nil {
		return req, err
	}
	if start != nil || end != nil {
		if start == nil || end == nil {
			return req, fmt.Errorf("%w: start and end must be given together", errBadRequest)
		}
		req.Range = reporting.Range{Start: *start, End: *end}
		return req, nil
	}

	ref := h.now()
	if d, err := dateParam(r, "date"); err != nil {
		return req, err
	} else if d != nil {
		ref = *d
	}

	preset := q.Get("preset")
	if preset == "" {
		preset = "week"
	}
	rng, ok := reporting.ParsePreset(preset, ref)
	if !ok {
		return req, fmt.Errorf("%w: unknown preset %q", errBadRequest, preset)
	}
	req.Range = rng
	return req, nil
}

// HandleReport builds a report. format selects json (default), markdown or
// csv; archive=true stores a snapshot.
func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	req, err := h.reportRequest(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	report, err := h.reports.Build(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if r.URL.Query().Get("archive") == "true" && h.snapshots != nil {
		if err := reporting.Archive(r.Context(), h.snapshots, report); err != nil {
			h.writeError(w, err)
			return
		}
	}

	switch format := r.URL.Query().Get("format"); format {
	case "", "json":
		h.writeJSON(w, http.StatusOK, map[string]any{
			"id":           report.ID,
			"title":        report.Title,
			"subtitle":     report.Subtitle,
			"start":        report.Start.Format(domain.DateLayout),
			"end":          report.End.Format(domain.DateLayout),
			"generated_at": report.GeneratedAt,
			"stats":        report.Stats,
			"streaks":      report.Streaks,
			"instruments":  report.Instruments,
			"monthly":      report.Monthly,
			"trades":       toTradesJSON(report.Trades),
		})
	case "markdown", "md":
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		_, _ = w.Write([]byte(reporting.RenderMarkdown(report)))
	case "csv":
		out, err := reporting.RenderTradesCSV(report.Trades)
		if err != nil {
			h.writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		_, _ = w.Write([]byte(out))
	default:
		h.writeError(w, fmt.Errorf("%w: unknown format %q", errBadRequest, format))
	}
}

// HandleReportHistory lists archived report snapshots, newest first.
func (h *Handler) HandleReportHistory(w http.ResponseWriter, r *http.Request) {
	if h.snapshots == nil {
		h.writeJSON(w, http.StatusOK, []any{})
		return
	}

	var (
		snaps []*domain.ReportSnapshot
		err   error
	)
	if account := r.URL.Query().Get("account"); account != "" {
		snaps, err = h.snapshots.GetByAccount(r.Context(), account)
	} else {
		limit, perr := intParam(r, "limit", 20)
		if perr != nil {
			h.writeError(w, perr)
			return
		}
		snaps, err = h.snapshots.GetRecent(r.Context(), limit)
	}
	if err != nil {
		h.writeError(w, err)
		return
	}

	out := make([]map[string]any, 0, len(snaps))
	for _, s := range snaps {
		out = append(out, map[string]any{
			"report_id":     s.ReportID,
			"generated_at":  s.GeneratedAt,
			"title":         s.Title,
			"account_id":    s.AccountID,
			"model_id":      s.ModelID,
			"start":         s.StartDate.Format(domain.DateLayout),
			"end":           s.EndDate.Format(domain.DateLayout),
			"total_trades":  s.TotalTrades,
			"total_pl":      s.TotalPL,
			"win_rate":      s.WinRate,
			"profit_factor": s.ProfitFactor,
			"max_drawdown":  s.MaxDrawdown,
			"sharpe":        s.Sharpe,
			"expectancy":    s.Expectancy,
		})
	}
	h.writeJSON(w, http.StatusOK, out)
}
