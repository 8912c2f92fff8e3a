// Package respond writes JSON responses the dashboard expects: payloads
// as-is, failures as {"message": "..."}.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type messageBody struct {
	Message string `json:"message"`
}

func Message(w http.ResponseWriter, status int, message string) {
	JSON(w, status, messageBody{Message: message})
}
