package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/starford/obi/internal/apperr"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode failed", slog.String("error", err.Error()))
	}
}

type errResponse struct {
	Error string         `json:"error" validate:"required"`
	Code  string         `json:"code,omitempty" example:"NOTE_NOT_FOUND"`
	Data  map[string]any `json:"data,omitempty"`
}

func errorBody(msg string) errResponse {
	return errResponse{Error: msg}
}

func appErrorBody(err *apperr.Error) errResponse {
	return errResponse{Error: err.Message, Code: err.Code, Data: err.Data}
}
