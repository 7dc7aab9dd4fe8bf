package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/playperu/adjquiz/internal/lang"
)

type LanguageRequest struct {
	Language string `json:"language"`
}

type LanguagesResponse struct {
	Supported []string `json:"supported"`
	Fallback  string   `json:"fallback"`
	Preferred string   `json:"preferred"`
}

func handleSetLanguage(logger *slog.Logger, prefs PreferenceStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LanguageRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		code, ok := lang.Normalize(req.Language)
		if !ok {
			writeError(w, http.StatusBadRequest, "unsupported language")
			return
		}

		ps := sessionFrom(r)
		ps.ctrl.OnLanguageChanged(code)

		if err := prefs.SetLanguage(r.Context(), ps.VisitorID, code); err != nil {
			logger.Error("saving language preference failed", "visitor", ps.VisitorID, "error", err)
		}
		writeJSON(w, http.StatusOK, SessionResponse{ID: ps.ID, Snapshot: ps.ctrl.Snapshot()})
	}
}

func handleLanguages(logger *slog.Logger, prefs PreferenceStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		visitor := visitorID(w, r)

		saved, err := prefs.Language(r.Context(), visitor)
		if err != nil && !errors.Is(err, ErrNotFound) {
			logger.Warn("loading language preference failed", "visitor", visitor, "error", err)
		}

		writeJSON(w, http.StatusOK, LanguagesResponse{
			Supported: lang.Supported,
			Fallback:  lang.Fallback,
			Preferred: lang.Resolve(saved, lang.Declared(r.Header.Get("Accept-Language"))),
		})
	}
}
