package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/domain/model"
)

type errorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// writeError maps domain errors onto HTTP statuses.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var invalid *model.InvalidInputError
	switch {
	case errors.As(err, &invalid):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: invalid.Error(), Field: invalid.Field})
	case errors.Is(err, model.ErrLenderNotFound), errors.Is(err, model.ErrListingNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}
