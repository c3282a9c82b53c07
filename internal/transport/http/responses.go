package httptransport

import (
	"encoding/json"
	"net/http"

	dErrors "pulse/pkg/domain-errors"
)

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError centralizes domain error translation so every handler returns
// the same JSON error envelope.
func writeError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	writeJSON(w, dErrors.ToHTTPStatus(code), errorEnvelope{
		Error: errorBody{Code: string(code), Message: err.Error()},
	})
}

func writeStatus(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorEnvelope{
		Error: errorBody{Code: http.StatusText(status), Message: message},
	})
}
