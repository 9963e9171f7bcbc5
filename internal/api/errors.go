package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"trade-journal/internal/ingest"
	"trade-journal/internal/metrics"
	"trade-journal/internal/reporting"
	"trade-journal/internal/storage"
)

// statusFor maps domain and storage errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrDuplicateKey):
		return http.StatusConflict
	case errors.Is(err, storage.ErrInvalidInput),
		errors.Is(err, reporting.ErrInvalidRange),
		errors.Is(err, ingest.ErrInvalidRecord),
		errors.Is(err, ingest.ErrMissingColumn),
		errors.Is(err, metrics.ErrUnknownDimension),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeJSON encodes data before touching the response, so an encoding
// failure still produces a 500.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to encode JSON response")
		body = []byte(`{"error":"internal error"}`)
		status = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		h.log.Error().Err(err).Msg("failed to write JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		h.log.Error().Err(err).Msg("request failed")
		msg = "internal error"
	}
	h.writeJSON(w, status, map[string]string{"error": msg})
}
