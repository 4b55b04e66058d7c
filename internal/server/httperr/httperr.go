// Package httperr writes consistent JSON error responses.
package httperr

import (
	"encoding/json"
	"net/http"
)

type body struct {
	Error string `json:"error"`
}

// Write sends a JSON error body with the given status code.
func Write(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body{Error: message})
}
