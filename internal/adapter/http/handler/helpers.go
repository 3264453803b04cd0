package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/iho/ledgerkv/internal/adapter/http/dto"
	"github.com/iho/ledgerkv/internal/domain"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// errorStatuses is checked in order; the first sentinel matched by errors.Is wins.
var errorStatuses = []struct {
	err    error
	status int
}{
	{domain.ErrDuplicateEntry, http.StatusConflict},
	{domain.ErrConcurrentModification, http.StatusConflict},
	{domain.ErrInconsistentLedger, http.StatusConflict},
	{domain.ErrLimitExceeded, http.StatusUnprocessableEntity},
	{domain.ErrAmountOverflow, http.StatusUnprocessableEntity},
	{domain.ErrInvalidEntry, http.StatusBadRequest},
	{domain.ErrInvalidAmount, http.StatusBadRequest},
	{domain.ErrInvalidCursor, http.StatusBadRequest},
	{domain.ErrInvalidAccountID, http.StatusBadRequest},
	{domain.ErrInvalidCurrency, http.StatusBadRequest},
	{domain.ErrStoreUnavailable, http.StatusServiceUnavailable},
}

// mapDomainError maps domain errors to HTTP status codes.
// Malformed stored data and unknown errors are server faults.
func mapDomainError(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}
