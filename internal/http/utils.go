package http

import (
	"encoding/json"
	"net/http"
)

// errorBody is the uniform error envelope every endpoint returns. Webhook
// rejections deliberately reuse it so failed and succeeded verifications are
// indistinguishable beyond the status code and message.
type errorBody struct {
	Error string `json:"error"`
}

// WriteJSONError responds with {"error": message} and the given status code
func WriteJSONError(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, statusCode, errorBody{Error: message})
}

// writeJSON serializes v as the response body. Encoding errors are dropped:
// the status line is already on the wire by the time Encode runs.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
