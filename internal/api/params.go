package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"trade-journal/internal/domain"
)

// errBadRequest marks malformed query parameters.
var errBadRequest = errors.New("bad request")

// parseFilter reads account, model, start and end (YYYY-MM-DD).
func parseFilter(r *http.Request) (domain.TradeFilter, error) {
	q := r.URL.Query()
	f := domain.TradeFilter{
		AccountID: q.Get("account"),
		ModelID:   q.Get("model"),
	}

	start, err := dateParam(r, "start")
	if err != nil {
		return f, err
	}
	end, err := dateParam(r, "end")
	if err != nil {
		return f, err
	}
	if start != nil && end != nil && end.Before(*start) {
		return f, fmt.Errorf("%w: end before start", errBadRequest)
	}
	f.StartDate = start
	f.EndDate = end
	return f, nil
}

func dateParam(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	d, err := domain.ParseDate(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be YYYY-MM-DD", errBadRequest, name)
	}
	return &d, nil
}

// intParam returns the positive integer parameter name, or fallback when absent.
func intParam(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", errBadRequest, name)
	}
	return v, nil
}
