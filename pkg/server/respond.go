package server

import (
	"encoding/json"
	"net/http"

	"github.com/getlistd/listd/pkg/keeper"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps a keeper error to its HTTP representation.
func writeError(w http.ResponseWriter, err error) {
	resp := keeper.ToErrorResponse(err)
	writeJSON(w, resp.StatusCode, resp)
}

// writeErrorCode writes an ad-hoc error response for failures that have no
// keeper error type (bad id, bad query, auth).
func writeErrorCode(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, &keeper.ErrorResponse{
		Error:      message,
		Code:       code,
		StatusCode: status,
	})
}
