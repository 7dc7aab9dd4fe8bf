package server

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"
)

func addRoutes(r chi.Router, logger *slog.Logger, deps Deps) {
	broker := NewBroker()
	factory := &sessionFactory{
		loader:   deps.Loader,
		cfg:      deps.Quiz,
		broker:   broker,
		registry: deps.Sessions,
	}

	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Adjective Quiz API", "/openapi.json", "/docs"))

	r.Get("/api/languages", handleLanguages(logger, deps.Prefs))
	if deps.Grammar != nil {
		r.Get("/api/grammar", handleGrammarCases(deps.Grammar))
		r.Get("/api/grammar/{case}", handleGrammar(deps.Grammar))
	}

	r.Post("/api/sessions", handleCreateSession(logger, factory, deps.Prefs))

	// Session routes: {id} resolved by sessionMiddleware.
	r.Route("/api/sessions/{id}", func(r chi.Router) {
		r.Use(sessionMiddleware(deps.Sessions))
		r.Get("/", handleGetSession())
		r.Post("/answer", handleAnswer())
		r.Post("/hint", handleHint())
		r.Post("/reset", handleReset(logger))
		r.Put("/language", handleSetLanguage(logger, deps.Prefs))
		r.Get("/events", handleEvents(broker))
		r.Get("/ws", handleWS(logger, broker, deps.Prefs))
	})

	if deps.SPADir != "" {
		if info, err := os.Stat(deps.SPADir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", deps.SPADir)
			r.NotFound(handleSPA(deps.SPADir))
		}
	}
}
