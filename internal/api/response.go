package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mlakar/inventar/internal/store"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("encoding response", "error", err)
		}
	}
}

// jsonError writes a JSON error response with a stable machine-readable
// kind alongside the human-readable message.
func jsonError(w http.ResponseWriter, status int, kind, message string) {
	jsonResponse(w, status, map[string]string{"error": message, "kind": kind})
}

// storeError maps store sentinel errors onto HTTP responses. Anything
// unclassified is a storage-level failure: logged in full, reported to
// the client without detail.
func storeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		jsonError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, store.ErrDuplicateSKU):
		jsonError(w, http.StatusConflict, "duplicate_sku", err.Error())
	case errors.Is(err, store.ErrNoUpdates):
		jsonError(w, http.StatusBadRequest, "no_updates", err.Error())
	case errors.Is(err, store.ErrValidation):
		jsonError(w, http.StatusBadRequest, "validation", err.Error())
	case errors.Is(err, store.ErrConflict):
		jsonError(w, http.StatusConflict, "conflict", err.Error())
	default:
		slog.Error("storage failure", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}
