package response

import (
	"encoding/json"
	"net/http"

	"safecircle/pkg/logger"
)

// ErrorBody is the JSON shape of every API error.
type ErrorBody struct {
	Detail string `json:"detail"`
}

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Sugar.Errorf("Failed to encode response: %v", err)
	}
}

// Error writes {"detail": detail} with the given status code.
func Error(w http.ResponseWriter, status int, detail string) {
	JSON(w, status, ErrorBody{Detail: detail})
}
