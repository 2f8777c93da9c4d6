// Package response defines the JSON envelope used on every API response.
package response

import (
	"encoding/json"
	"net/http"
)

// Envelope is the wrapper every endpoint returns. Success responses carry
// Data (and Count for list endpoints); failures carry Message.
type Envelope struct {
	Success bool        `json:"success"`
	Count   *int        `json:"count,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// Write marshals any payload with the given status code. Used by the few
// endpoints whose body shape is not the standard envelope.
func Write(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

// JSON writes an envelope with the given status code.
func JSON(w http.ResponseWriter, code int, env Envelope) {
	Write(w, code, env)
}

// OK writes a success envelope wrapping data.
func OK(w http.ResponseWriter, code int, data interface{}) {
	JSON(w, code, Envelope{Success: true, Data: data})
}

// List writes a success envelope with the slice length as count.
func List(w http.ResponseWriter, data interface{}, count int) {
	JSON(w, http.StatusOK, Envelope{Success: true, Count: &count, Data: data})
}

// Error writes a failure envelope with a message.
func Error(w http.ResponseWriter, code int, message string) {
	JSON(w, code, Envelope{Success: false, Message: message})
}
