package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/oxydek/fin-stat/internal/apperr"
)

// Envelope is the response shape shared by every endpoint.
type Envelope struct {
	OK    bool   `json:"ok"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

func WriteData(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Envelope{OK: true, Data: data})
}

func WriteOK(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Envelope{OK: true})
}

func WriteError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(Envelope{OK: false, Error: msg})
}

// WriteErr maps an application error to its status code and writes the envelope.
func WriteErr(w http.ResponseWriter, err error) {
	WriteError(w, apperr.HTTPStatus(err), err.Error())
}
