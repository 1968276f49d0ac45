package main

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/duartesilva/plantshop/internal/apperr"
)

func (a *api) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		a.logger.Error("encode response", zap.Error(err))
	}
}

func (a *api) respondError(w http.ResponseWriter, status int, message string) {
	a.respondJSON(w, status, map[string]string{"error": message})
}

// respondAppError maps the error's kind to an HTTP status. Unclassified
// errors get a 500 and their detail stays in the logs.
func (a *api) respondAppError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		switch appErr.Kind {
		case apperr.KindNotFound:
			status = http.StatusNotFound
		case apperr.KindPrecondition:
			status = http.StatusUnprocessableEntity
		case apperr.KindConflict:
			status = http.StatusConflict
		case apperr.KindUnavailable:
			status = http.StatusServiceUnavailable
		}
		if status == http.StatusInternalServerError {
			a.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		}
		a.respondError(w, status, appErr.Message)
		return
	}

	a.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	a.respondError(w, http.StatusInternalServerError, "internal server error")
}
