package server

import (
	"net/http"

	"github.com/playperu/adjquiz/internal/adjquiz"
)

type AnswerRequest struct {
	QuestionIndex *int `json:"questionIndex"`
	ChoiceIndex   *int `json:"choiceIndex"`
}

type AnswerResponse struct {
	Applied        bool                  `json:"applied"`
	Record         *adjquiz.AnswerRecord `json:"record,omitempty"`
	RoundCompleted bool                  `json:"roundCompleted"`
	Summary        *adjquiz.Stats        `json:"summary,omitempty"`
}

func handleAnswer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AnswerRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.QuestionIndex == nil || req.ChoiceIndex == nil {
			writeError(w, http.StatusBadRequest, "questionIndex and choiceIndex are required")
			return
		}

		ps := sessionFrom(r)
		res, ok := ps.ctrl.OnChoiceClicked(*req.QuestionIndex, *req.ChoiceIndex)
		if !ok {
			writeJSON(w, http.StatusOK, AnswerResponse{})
			return
		}

		writeJSON(w, http.StatusOK, AnswerResponse{
			Applied:        true,
			Record:         &res.Record,
			RoundCompleted: res.RoundCompleted,
			Summary:        res.Stats,
		})
	}
}
