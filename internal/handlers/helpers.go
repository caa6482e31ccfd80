package handlers

import (
	"encoding/json"
	"net/http"
)

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// respondJSONStatus sends a {"status": ...} response, the shape the webhook
// uses for rejected payloads
func respondJSONStatus(w http.ResponseWriter, code int, status string) {
	respondJSON(w, code, map[string]string{"status": status})
}
