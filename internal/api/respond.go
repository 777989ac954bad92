package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

// Error codes follow the dashboard's taxonomy: configuration problems are
// caught at startup, connection errors are retryable, query errors carry the
// backend's message, validation errors never reached the store.
const (
	codeConnectionError = "connection_error"
	codeQueryError      = "query_error"
	codeValidationError = "validation_error"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, details string) {
	writeJSON(w, status, ErrorResponse{Error: code, Details: details})
}

// writeTimeoutAware maps context expiry to a retryable connection error
// before falling back to the supplied mapper.
func writeTimeoutAware(w http.ResponseWriter, err error, fallback func(w http.ResponseWriter, err error)) {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		writeError(w, http.StatusGatewayTimeout, codeConnectionError, "request timed out, please retry")
		return
	}
	fallback(w, err)
}
