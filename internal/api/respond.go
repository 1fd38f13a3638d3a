package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/temporal"

	"papernotes/internal/util"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, err error) {
	msg := "request failed"
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, code, map[string]any{
		"error": map[string]any{"message": msg},
	})
}

// statusForError maps the pipeline error taxonomy onto HTTP statuses. Input
// and page errors are the caller's fault; configuration is ours; upstream
// service failures surface as bad gateway. Errors returned through a workflow
// carry the taxonomy as an ApplicationError type rather than a sentinel chain.
func statusForError(err error) int {
	var appErr *temporal.ApplicationError
	if errors.As(err, &appErr) {
		switch appErr.Type() {
		case "InvalidInput", "InvalidPage":
			return http.StatusBadRequest
		case "MissingConfig", "Persistence":
			return http.StatusInternalServerError
		case "ExtractionService", "MalformedResponse":
			return http.StatusBadGateway
		}
	}
	switch {
	case errors.Is(err, util.ErrInvalidInput), errors.Is(err, util.ErrInvalidPage):
		return http.StatusBadRequest
	case errors.Is(err, util.ErrMissingConfig):
		return http.StatusInternalServerError
	case errors.Is(err, util.ErrExtractionService), errors.Is(err, util.ErrMalformedResponse):
		return http.StatusBadGateway
	case errors.Is(err, util.ErrPersistence):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// statusForStartError maps an ExecuteWorkflow failure: only a duplicate start
// of a running ingestion is a conflict; anything else (dial, transport) is a
// server-side failure.
func statusForStartError(err error) int {
	var already *serviceerror.WorkflowExecutionAlreadyStarted
	if errors.As(err, &already) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
