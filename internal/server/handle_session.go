package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/playperu/adjquiz/internal/adjquiz"
	"github.com/playperu/adjquiz/internal/lang"
)

type CreateSessionRequest struct {
	Language string `json:"language,omitempty"`
}

type SessionResponse struct {
	ID string `json:"id"`
	adjquiz.Snapshot
}

func handleCreateSession(logger *slog.Logger, factory *sessionFactory, prefs PreferenceStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateSessionRequest
		if err := readOptionalJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		visitor := visitorID(w, r)
		code := resolveLanguage(r.Context(), logger, prefs, visitor, req.Language, r.Header.Get("Accept-Language"))

		ps := factory.create(visitor, code)
		logger.Info("session created", "session_id", ps.ID, "language", code)

		err := ps.ctrl.Start(r.Context())
		status := startStatus(err)
		if status == http.StatusOK {
			status = http.StatusCreated
		}
		writeJSON(w, status, SessionResponse{ID: ps.ID, Snapshot: ps.ctrl.Snapshot()})
	}
}

func handleGetSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ps := sessionFrom(r)
		writeJSON(w, http.StatusOK, SessionResponse{ID: ps.ID, Snapshot: ps.ctrl.Snapshot()})
	}
}

func handleReset(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ps := sessionFrom(r)

		err := ps.ctrl.OnResetClicked(r.Context())
		if err != nil && !errors.Is(err, adjquiz.ErrSuperseded) {
			logger.Warn("session reset failed", "session_id", ps.ID, "error", err)
		} else {
			logger.Info("session reset", "session_id", ps.ID)
		}
		writeJSON(w, startStatus(err), SessionResponse{ID: ps.ID, Snapshot: ps.ctrl.Snapshot()})
	}
}

// startStatus maps the result of a round load to an HTTP status.
func startStatus(err error) int {
	var shape *adjquiz.DataShapeError
	var load *adjquiz.LoadError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, adjquiz.ErrSuperseded):
		return http.StatusAccepted
	case errors.As(err, &shape), errors.Is(err, adjquiz.ErrEmptyBank):
		return http.StatusUnprocessableEntity
	case errors.As(err, &load):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// resolveLanguage picks a session's language: an explicit supported request,
// then the visitor's saved preference, then Accept-Language.
func resolveLanguage(ctx context.Context, logger *slog.Logger, prefs PreferenceStore, visitor, requested, header string) string {
	if code, ok := lang.Normalize(requested); ok {
		return code
	}

	saved, err := prefs.Language(ctx, visitor)
	if err != nil && !errors.Is(err, ErrNotFound) {
		logger.Warn("loading language preference failed", "visitor", visitor, "error", err)
	}
	return lang.Resolve(saved, lang.Declared(header))
}
