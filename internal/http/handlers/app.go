package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"travelmate/internal/domain"
	"travelmate/internal/ledger"
	"travelmate/internal/providers/tripplan"
)

// App bundles the dependencies shared by all handlers.
type App struct {
	Ledger  *ledger.Service
	Planner tripplan.Planner
	Logger  zerolog.Logger
}

// NewApp creates the handler container.
func NewApp(svc *ledger.Service, planner tripplan.Planner, logger zerolog.Logger) *App {
	return &App{Ledger: svc, Planner: planner, Logger: logger}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// fail writes the uniform failure envelope. Internal detail never leaks:
// callers pass a generic message and the underlying error is logged.
func (a *App) fail(w http.ResponseWriter, code int, msg string) {
	a.json(w, code, map[string]any{"success": false, "error": msg})
}

// failFor maps a domain error to the right status: validation problems are
// caller-correctable 400s, everything else is a generic 500.
func (a *App) failFor(w http.ResponseWriter, err error, internalMsg string) {
	if errors.Is(err, domain.ErrValidation) {
		a.fail(w, http.StatusBadRequest, validationMessage(err))
		return
	}
	if errors.Is(err, domain.ErrNotFound) {
		a.fail(w, http.StatusNotFound, "not found")
		return
	}
	a.Logger.Error().Err(err).Msg(internalMsg)
	a.fail(w, http.StatusInternalServerError, internalMsg)
}

func validationMessage(err error) string {
	// Strip the sentinel prefix, keeping the field-specific part.
	msg := err.Error()
	prefix := domain.ErrValidation.Error() + ": "
	if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
		return msg[len(prefix):]
	}
	return msg
}
