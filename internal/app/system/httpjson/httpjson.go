// internal/app/system/httpjson/httpjson.go

// Package httpjson holds the JSON request/response helpers shared by the
// feature handlers. Responses follow the shape the API has always used:
// a "status" boolean plus either a data payload or a message.
package httpjson

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/talentgate/hirehub/internal/app/system/apierr"
)

// MaxBodyBytes caps request bodies read through Decode.
const MaxBodyBytes = 1 << 20 // 1 MiB

// Envelope is the standard response wrapper.
type Envelope struct {
	Status        bool     `json:"status"`
	Message       string   `json:"message,omitempty"`
	Data          any      `json:"data,omitempty"`
	MissingFields []string `json:"missingFields,omitempty"`
}

// Decode reads a JSON body into dst. Bodies larger than MaxBodyBytes or
// that fail to parse come back as validation errors.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, MaxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return apierr.Validation("invalid JSON body")
	}
	return nil
}

// Write sends a JSON payload with the given status code.
func Write(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

// OK sends a 200 envelope wrapping data.
func OK(w http.ResponseWriter, data any) {
	Write(w, http.StatusOK, Envelope{Status: true, Data: data})
}

// Created sends a 201 envelope wrapping data.
func Created(w http.ResponseWriter, data any) {
	Write(w, http.StatusCreated, Envelope{Status: true, Data: data})
}

// Msg sends an envelope with just a message.
func Msg(w http.ResponseWriter, code int, message string) {
	Write(w, code, Envelope{Status: true, Message: message})
}

// Error maps err through apierr.Status and writes the failure envelope.
// Validation errors carry their missing-field list through to the body.
func Error(w http.ResponseWriter, err error) {
	code := apierr.Status(err)
	env := Envelope{Status: false, Message: userMessage(err, code)}
	env.MissingFields = apierr.Fields(err)
	Write(w, code, env)
}

func userMessage(err error, code int) string {
	var e *apierr.Error
	if errors.As(err, &e) {
		return e.Message
	}
	if code == http.StatusInternalServerError {
		return "internal server error"
	}
	return err.Error()
}
