package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"tradeview"
)

// response is the envelope every endpoint answers with.
type response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func writeData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, err error) {
	kind := tradeview.KindInternal
	var k interface{ Kind() string }
	if errors.As(err, &k) {
		kind = k.Kind()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusOf(kind))
	json.NewEncoder(w).Encode(response{
		Success: false,
		Error:   &errorBody{Kind: kind, Message: err.Error()},
	})
}

// statusOf maps an error kind to its HTTP status. Parse and oversell failures
// are semantic defects of an otherwise well-formed request, hence 422.
func statusOf(kind string) int {
	switch kind {
	case tradeview.KindValidation:
		return http.StatusBadRequest
	case tradeview.KindNotFound:
		return http.StatusNotFound
	case tradeview.KindParse, tradeview.KindOversell:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
