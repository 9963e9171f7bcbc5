package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"trade-journal/internal/domain"
	"trade-journal/internal/ingest"
)

// maxBodyBytes bounds request bodies for trade creation and CSV import.
const maxBodyBytes = 10 << 20

// tradeJSON is the wire form of a trade.
type tradeJSON struct {
	ID            string   `json:"id"`
	Date          string   `json:"date"`
	EntryTime     string   `json:"entry_time,omitempty"`
	Pair          string   `json:"pair"`
	Direction     string   `json:"direction"`
	NetPL         float64  `json:"net_pl"`
	RMultiple     *float64 `json:"r_multiple"`
	Outcome       string   `json:"outcome"`
	RuleViolation bool     `json:"rule_violation"`
	MistakeTag    string   `json:"mistake_tag,omitempty"`
	Grade         string   `json:"grade,omitempty"`
	ModelID       string   `json:"model_id,omitempty"`
	AccountID     string   `json:"account_id,omitempty"`
	EntryPrice    *float64 `json:"entry_price,omitempty"`
	ExitPrice     *float64 `json:"exit_price,omitempty"`
	StopLoss      *float64 `json:"stop_loss,omitempty"`
	TakeProfit    *float64 `json:"take_profit,omitempty"`
	Notes         string   `json:"notes,omitempty"`
}

func toTradeJSON(t *domain.Trade) tradeJSON {
	outcome := "breakeven"
	switch t.Outcome() {
	case domain.OutcomeWin:
		outcome = "win"
	case domain.OutcomeLoss:
		outcome = "loss"
	}
	return tradeJSON{
		ID:            t.ID,
		Date:          t.DateKey(),
		EntryTime:     t.EntryTime,
		Pair:          t.Pair,
		Direction:     string(t.Direction),
		NetPL:         t.NetPL,
		RMultiple:     t.RMultiple,
		Outcome:       outcome,
		RuleViolation: t.RuleViolation,
		MistakeTag:    t.MistakeTag,
		Grade:         string(t.Grade),
		ModelID:       t.ModelID,
		AccountID:     t.AccountID,
		EntryPrice:    t.EntryPrice,
		ExitPrice:     t.ExitPrice,
		StopLoss:      t.StopLoss,
		TakeProfit:    t.TakeProfit,
		Notes:         t.Notes,
	}
}

// looseString accepts a JSON string, number, bool or null. Numbers and bools
// keep their literal text so the boundary parsers see exactly what was sent.
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*s = ""
	case len(data) > 0 && data[0] == '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = looseString(str)
	case len(data) > 0 && (data[0] == '{' || data[0] == '['):
		return fmt.Errorf("expected scalar, got %s", data)
	default:
		*s = looseString(data)
	}
	return nil
}

// tradeInput is the request body of trade creation. It accepts both the
// tradeJSON shape and the all-string CSV shape.
type tradeInput struct {
	ID            looseString `json:"id"`
	Date          looseString `json:"date"`
	EntryTime     looseString `json:"entry_time"`
	Pair          looseString `json:"pair"`
	Direction     looseString `json:"direction"`
	NetPL         looseString `json:"net_pl"`
	RMultiple     looseString `json:"r_multiple"`
	RuleViolation looseString `json:"rule_violation"`
	MistakeTag    looseString `json:"mistake_tag"`
	Grade         looseString `json:"grade"`
	ModelID       looseString `json:"model_id"`
	AccountID     looseString `json:"account_id"`
	EntryPrice    looseString `json:"entry_price"`
	ExitPrice     looseString `json:"exit_price"`
	StopLoss      looseString `json:"stop_loss"`
	TakeProfit    looseString `json:"take_profit"`
	Notes         looseString `json:"notes"`
}

func (in tradeInput) raw() ingest.RawTrade {
	return ingest.RawTrade{
		ID:            string(in.ID),
		Date:          string(in.Date),
		EntryTime:     string(in.EntryTime),
		Pair:          string(in.Pair),
		Direction:     string(in.Direction),
		NetPL:         string(in.NetPL),
		RMultiple:     string(in.RMultiple),
		RuleViolation: string(in.RuleViolation),
		MistakeTag:    string(in.MistakeTag),
		Grade:         string(in.Grade),
		ModelID:       string(in.ModelID),
		AccountID:     string(in.AccountID),
		EntryPrice:    string(in.EntryPrice),
		ExitPrice:     string(in.ExitPrice),
		StopLoss:      string(in.StopLoss),
		TakeProfit:    string(in.TakeProfit),
		Notes:         string(in.Notes),
	}
}

func toTradesJSON(trades []*domain.Trade) []tradeJSON {
	out := make([]tradeJSON, 0, len(trades))
	for _, t := range trades {
		out = append(out, toTradeJSON(t))
	}
	return out
}

// HandleListTrades returns the filtered trades in chronological order.
func (h *Handler) HandleListTrades(w http.ResponseWriter, r *http.Request) {
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
	h.writeJSON(w, http.StatusOK, toTradesJSON(trades))
}

// HandleGetTrade returns one trade.
func (h *Handler) HandleGetTrade(w http.ResponseWriter, r *http.Request) {
	t, err := h.trades.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toTradeJSON(t))
}

// HandleCreateTrade normalizes and stores one trade. Malformed optional
// fields are dropped and reported back as warnings.
func (h *Handler) HandleCreateTrade(w http.ResponseWriter, r *http.Request) {
	var in tradeInput
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&in); err != nil {
		h.writeError(w, fmt.Errorf("%w: invalid JSON body", errBadRequest))
		return
	}

	t, warnings, err := ingest.Normalize(in.raw(), h.now())
	if err != nil {
		h.writeError(w, err)
		return
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	if err := h.trades.Insert(r.Context(), t); err != nil {
		h.writeError(w, err)
		return
	}

	if warnings == nil {
		warnings = []ingest.Warning{}
	}
	h.writeJSON(w, http.StatusCreated, map[string]any{
		"trade":    toTradeJSON(t),
		"warnings": warnings,
	})
}

// HandleDeleteTrade removes one trade.
func (h *Handler) HandleDeleteTrade(w http.ResponseWriter, r *http.Request) {
	if err := h.trades.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleImport imports a CSV journal sent as the request body.
func (h *Handler) HandleImport(w http.ResponseWriter, r *http.Request) {
	res, err := h.importer.ImportCSV(r.Context(), http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.writeError(w, err)
		return
	}

	rejections := make([]map[string]any, 0, len(res.Rejections))
	for _, rej := range res.Rejections {
		rejections = append(rejections, map[string]any{"row": rej.Row, "error": rej.Err.Error()})
	}
	if res.Warnings == nil {
		res.Warnings = []ingest.Warning{}
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"read":       res.Read,
		"imported":   res.Imported,
		"skipped":    res.Skipped,
		"warnings":   res.Warnings,
		"rejections": rejections,
	})
}
