// Package jsonutil writes the uniform response envelope used by every API
// endpoint: {success, data?, message?, errors?}.
//
// Clients branch on the success flag alone, so error responses carry the same
// shape as successes with success=false and a message.
package jsonutil

import (
	"encoding/json"
	"net/http"
)

// Envelope is the wire shape of every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// Write encodes an envelope with the given status code.
func Write(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

// OK writes a 200 success envelope carrying data.
func OK(w http.ResponseWriter, data any) {
	Write(w, http.StatusOK, Envelope{Success: true, Data: data})
}

// OKMessage writes a 200 success envelope with a message and optional data.
func OKMessage(w http.ResponseWriter, message string, data any) {
	Write(w, http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// Created writes a 201 success envelope with a message and the created document.
func Created(w http.ResponseWriter, message string, data any) {
	Write(w, http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

// Fail writes a failure envelope with the given status and message.
func Fail(w http.ResponseWriter, status int, message string) {
	Write(w, status, Envelope{Success: false, Message: message})
}

// BadRequest writes a 400 failure envelope.
func BadRequest(w http.ResponseWriter, message string) {
	Fail(w, http.StatusBadRequest, message)
}

// NotFound writes a 404 failure envelope.
func NotFound(w http.ResponseWriter, message string) {
	Fail(w, http.StatusNotFound, message)
}

// Unauthorized writes a 401 failure envelope.
func Unauthorized(w http.ResponseWriter, message string) {
	Fail(w, http.StatusUnauthorized, message)
}

// InternalError writes a 500 failure envelope. Log the underlying error
// separately; the message here is what the client sees.
func InternalError(w http.ResponseWriter, message string) {
	Fail(w, http.StatusInternalServerError, message)
}

// Unavailable writes a 503 failure envelope, used when a backing service
// (store or media host) is unreachable so callers can apply their own backoff.
func Unavailable(w http.ResponseWriter, message string) {
	Fail(w, http.StatusServiceUnavailable, message)
}

// ValidationFail writes a 400 failure envelope enumerating field errors.
// The message is the first error so simple clients can show one line.
func ValidationFail(w http.ResponseWriter, message string, fieldErrors any) {
	Write(w, http.StatusBadRequest, Envelope{
		Success: false,
		Message: message,
		Errors:  fieldErrors,
	})
}

// Decode reads and decodes a JSON request body into v.
func Decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
