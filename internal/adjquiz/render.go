package adjquiz

// View is the presentation-neutral description of a session.
type View struct {
	Questions []QuestionView `json:"questions"`
	Answered  int            `json:"answered"`
	Total     int            `json:"total"`
	Completed bool           `json:"completed"`
	Summary   *Stats         `json:"summary,omitempty"`
}

type QuestionView struct {
	Index      int           `json:"index"`
	ID         string        `json:"id"`
	Prompt     string        `json:"prompt"`
	Choices    []string      `json:"choices"`
	HintLevel  int           `json:"hintLevel"`
	HintLocked bool          `json:"hintLocked"`
	Hints      []Hint        `json:"hints"`
	Answer     *AnswerRecord `json:"answer,omitempty"`

	// Revealed once the round is completed.
	CorrectChoice *int   `json:"correctChoice,omitempty"`
	Explanation   string `json:"explanation,omitempty"`
}

// Render describes s for a player reading lang. Correct choices and
// explanations stay hidden until the round is completed.
func Render(s *Session, lang string) View {
	v := View{
		Questions: make([]QuestionView, len(s.round)),
		Answered:  s.answered,
		Total:     len(s.round),
		Completed: s.Completed(),
	}
	if stats, ok := s.Stats(); ok {
		v.Summary = &stats
	}

	for i, q := range s.round {
		qv := QuestionView{
			Index:      i,
			ID:         q.ID,
			Prompt:     q.Prompt,
			Choices:    make([]string, len(q.Choices)),
			HintLevel:  s.hints[i],
			HintLocked: s.HintLocked(i),
			Hints:      s.Hints(i, lang),
		}
		for j, c := range q.Choices {
			qv.Choices[j] = c.Text
		}
		if rec, ok := s.Record(i); ok {
			qv.Answer = &rec
		}
		if v.Completed {
			correct := q.CorrectIndex()
			qv.CorrectChoice = &correct
			qv.Explanation = q.Explanation
		}
		v.Questions[i] = qv
	}
	return v
}
