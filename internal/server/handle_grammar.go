package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/adjquiz/internal/adjquiz"
)

// GrammarBook is the grammar reference content served by the API.
type GrammarBook interface {
	adjquiz.ReferenceLookup
	Cases() []string
}

type GrammarCasesResponse struct {
	Cases []string `json:"cases"`
}

func handleGrammarCases(book GrammarBook) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, GrammarCasesResponse{Cases: book.Cases()})
	}
}

func handleGrammar(book GrammarBook) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, book.Lookup(chi.URLParam(r, "case")))
	}
}
