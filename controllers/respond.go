package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"go-shop/store"
)

// requestTimeout bounds every storage call made on behalf of a request.
const requestTimeout = 5 * time.Second

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondStoreError maps store failures to HTTP responses: not-found and
// duplicate get their resource-specific messages, anything else is logged
// server-side and answered generically.
func respondStoreError(w http.ResponseWriter, log zerolog.Logger, err error, notFound, duplicate string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, notFound, http.StatusNotFound)
	case errors.Is(err, store.ErrDuplicate):
		http.Error(w, duplicate, http.StatusBadRequest)
	default:
		log.Error().Err(err).Msg("storage failure")
		http.Error(w, "Something failed", http.StatusInternalServerError)
	}
}
