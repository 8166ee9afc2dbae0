// Package httpjson holds the JSON request/response helpers shared by the
// feature handlers.
package httpjson

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dalemusser/collabhub/internal/app/system/apperr"
)

// MaxBodyBytes caps request bodies accepted by Decode.
const MaxBodyBytes = 1 << 20

// WriteJSON writes data as JSON with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	return json.NewEncoder(w).Encode(data)
}

// ErrorBody is the wire shape of every error response.
type ErrorBody struct {
	Error   string              `json:"error"`
	Message string              `json:"message"`
	Errors  []apperr.FieldError `json:"errors,omitempty"`
}

// WriteError writes e as an ErrorBody with e's status code.
func WriteError(w http.ResponseWriter, e *apperr.Error) error {
	return WriteJSON(w, e.Status(), ErrorBody{
		Error:   string(e.Kind),
		Message: e.Message,
		Errors:  e.Fields,
	})
}

// Decode reads a JSON body into dst. An empty body leaves dst untouched.
// Malformed JSON, trailing data, and oversized bodies are validation errors.
func Decode(w http.ResponseWriter, r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return apperr.Validation("Request body too large")
		}
		return apperr.Validation("Invalid JSON body")
	}
	if dec.More() {
		return apperr.Validation("Invalid JSON body")
	}
	return nil
}
