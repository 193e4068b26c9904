package utils

import (
	"encoding/json"
	"net/http"
)

// Envelope is the shape of every API response body.
type Envelope struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
	Error   any    `json:"error"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func Send(w http.ResponseWriter, status int, ok bool, message string, data, errDetail any) {
	JSON(w, status, Envelope{Status: ok, Message: message, Data: data, Error: errDetail})
}

func OK(w http.ResponseWriter, status int, message string, data any) {
	Send(w, status, true, message, data, nil)
}

func Error(w http.ResponseWriter, status int, message string) {
	Send(w, status, false, message, nil, nil)
}

func ErrorDetail(w http.ResponseWriter, status int, message string, detail any) {
	Send(w, status, false, message, nil, detail)
}
