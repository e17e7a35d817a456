package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/donlucho/ferreteria-api/internal/auth"
)

// GetRoleFromContext extracts the caller's role from the bearer token.
func GetRoleFromContext(r *http.Request) (string, error) {
	_, claims, err := auth.TokenClaims(r.Header.Get("Authorization"))
	if err != nil {
		return "", err
	}

	if role, ok := claims["role"].(string); ok {
		return role, nil
	}
	return "", nil
}

// GetUserIDFromContext extracts the caller's user id from the bearer token.
func GetUserIDFromContext(r *http.Request) int {
	_, claims, err := auth.TokenClaims(r.Header.Get("Authorization"))
	if err != nil {
		return 0
	}
	if sub, ok := claims["sub"].(float64); ok {
		return int(sub)
	}
	return 0
}

// writeJSON writes data as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to write JSON response: %v", err)
	}
}

// writeRepoError maps a storage failure to an HTTP status. A deadline or
// cancellation means the backend was unreachable and is reported as 503 so
// clients can show their no-connection state instead of a generic failure.
func writeRepoError(w http.ResponseWriter, err error, msg string) {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		http.Error(w, "backend unreachable", http.StatusServiceUnavailable)
		return
	}
	http.Error(w, msg, http.StatusInternalServerError)
}
