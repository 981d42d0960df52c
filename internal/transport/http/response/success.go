package response

import (
	"encoding/json"
	"net/http"
)

// Envelope wraps every successful auth payload, so user views and token
// bundles always arrive under a "data" key.
type Envelope struct {
	Data any `json:"data"`
}

// WriteJSON encodes v with the given status code, defaulting Content-Type
// to application/json when the handler has not set one.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
	}
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// OK writes data enveloped with a 200 status. Used for login, refresh and
// profile reads.
func OK(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, Envelope{Data: data})
}

// Created writes data enveloped with a 201 status. Registration is the
// only producer.
func Created(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, Envelope{Data: data})
}

// NoContent writes an empty 204. Logout answers with this.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
