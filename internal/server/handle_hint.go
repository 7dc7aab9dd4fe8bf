package server

import (
	"net/http"

	"github.com/playperu/adjquiz/internal/adjquiz"
)

type HintRequest struct {
	QuestionIndex *int `json:"questionIndex"`
}

type HintResponse struct {
	Applied bool          `json:"applied"`
	Hint    *adjquiz.Hint `json:"hint,omitempty"`
}

func handleHint() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req HintRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.QuestionIndex == nil {
			writeError(w, http.StatusBadRequest, "questionIndex is required")
			return
		}

		h, ok := sessionFrom(r).ctrl.OnHintClicked(*req.QuestionIndex)
		if !ok {
			writeJSON(w, http.StatusOK, HintResponse{})
			return
		}
		writeJSON(w, http.StatusOK, HintResponse{Applied: true, Hint: &h})
	}
}
