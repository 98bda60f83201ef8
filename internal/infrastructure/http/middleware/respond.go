package middleware

import (
	"encoding/json"
	"net/http"
)

// writeErr sends JSON { "status": "error", "message": message }.
func writeErr(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "error", "message": message})
}
