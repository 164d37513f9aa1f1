// Package response writes JSON bodies in the shape every endpoint shares.
package response

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the body of every non 2xx response.
type ErrorBody struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
	Error      string `json:"error"`
	Detail     string `json:"detail,omitempty"`
}

// MessageBody is returned by endpoints that only acknowledge an action.
type MessageBody struct {
	Message string `json:"message"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Message writes a {"message": ...} body.
func Message(w http.ResponseWriter, status int, message string) {
	JSON(w, status, MessageBody{Message: message})
}

// Error writes an ErrorBody. detail is only included when it is not empty; callers
// decide whether diagnostics may be exposed.
func Error(w http.ResponseWriter, status int, message, detail string) {
	JSON(w, status, ErrorBody{
		Success:    false,
		Message:    message,
		StatusCode: status,
		Error:      message,
		Detail:     detail,
	})
}
