package adjquiz

import (
	"math/rand/v2"
	"strings"
)

// Session is one round of play. It owns the round, the answer records and
// the hint levels, and is replaced wholesale on reset.
type Session struct {
	cfg      Config
	round    []Question
	records  []*AnswerRecord
	hints    []int
	answered int
	stats    *Stats
}

// AnswerResult describes an applied answer.
type AnswerResult struct {
	Record AnswerRecord
	// RoundCompleted is set only on the answer that completed the round.
	RoundCompleted bool
	// Revealed holds hints disclosed by the end-of-round reveal.
	Revealed []Hint
	// Stats is the round summary, set with RoundCompleted.
	Stats *Stats
}

// NewSession draws a round from bank and shuffles each question's choices.
func NewSession(bank []Question, cfg Config, rng *rand.Rand) (*Session, error) {
	if len(bank) == 0 {
		return nil, ErrEmptyBank
	}

	round := Select(bank, cfg.roundSize(), rng)
	for i := range round {
		choices := make([]Choice, len(round[i].Choices))
		copy(choices, round[i].Choices)
		Shuffle(choices, rng)
		round[i].Choices = choices
	}

	return &Session{
		cfg:     cfg,
		round:   round,
		records: make([]*AnswerRecord, len(round)),
		hints:   make([]int, len(round)),
	}, nil
}

func (s *Session) Size() int { return len(s.round) }

func (s *Session) Answered() int { return s.answered }

func (s *Session) Completed() bool { return s.stats != nil }

// Question returns the round question at index i.
func (s *Session) Question(i int) (Question, bool) {
	if i < 0 || i >= len(s.round) {
		return Question{}, false
	}
	return s.round[i], true
}

// Record returns the answer recorded for question i, if any.
func (s *Session) Record(i int) (AnswerRecord, bool) {
	if i < 0 || i >= len(s.records) || s.records[i] == nil {
		return AnswerRecord{}, false
	}
	return *s.records[i], true
}

// HintLevel returns how many hint levels of question i are disclosed.
func (s *Session) HintLevel(i int) int {
	if i < 0 || i >= len(s.hints) {
		return 0
	}
	return s.hints[i]
}

// Stats returns the round summary once the round is completed.
func (s *Session) Stats() (Stats, bool) {
	if s.stats == nil {
		return Stats{}, false
	}
	return *s.stats, true
}

// Answer records the player's choice for a question. Repeated answers,
// out-of-range indexes and answers after completion are ignored.
func (s *Session) Answer(questionIndex, choiceIndex int, lang string) (AnswerResult, bool) {
	q, ok := s.Question(questionIndex)
	if !ok || s.Completed() || s.records[questionIndex] != nil {
		return AnswerResult{}, false
	}
	if choiceIndex < 0 || choiceIndex >= len(q.Choices) {
		return AnswerResult{}, false
	}

	choice := q.Choices[choiceIndex]
	rec := &AnswerRecord{
		QuestionIndex: questionIndex,
		ChoiceIndex:   choiceIndex,
		Choice:        choice.Text,
		IsCorrect:     choice.Correct,
	}
	s.records[questionIndex] = rec
	s.answered++

	res := AnswerResult{Record: *rec}
	if s.answered == len(s.round) {
		res.RoundCompleted = true
		res.Revealed = s.complete(lang)
		stats := *s.stats
		res.Stats = &stats
	}
	return res, true
}

func (s *Session) complete(lang string) []Hint {
	stats := Stats{Total: len(s.round), ByCase: make(map[string]CaseTally)}
	for i, rec := range s.records {
		key := strings.ToLower(strings.TrimSpace(s.round[i].Case))
		tally := stats.ByCase[key]
		tally.Total++
		if rec.IsCorrect {
			stats.Correct++
			tally.Correct++
		}
		stats.ByCase[key] = tally
	}
	s.stats = &stats

	if !s.cfg.RevealHintsOnComplete {
		return nil
	}
	var revealed []Hint
	for i := range s.hints {
		for s.hints[i] < MaxHintLevel {
			s.hints[i]++
			revealed = append(revealed, s.hint(i, s.hints[i], lang))
		}
	}
	return revealed
}

// HintLocked reports whether the hint control of question i is inert.
func (s *Session) HintLocked(i int) bool {
	if s.HintLevel(i) >= MaxHintLevel {
		return true
	}
	if s.cfg.Hints == HintsLockedAfterAnswer && !s.Completed() {
		_, answered := s.Record(i)
		return answered
	}
	return false
}

// RequestHint unlocks the next hint level of a question and returns its
// payload. At the last level, or when the policy locks the hint, it does
// nothing.
func (s *Session) RequestHint(questionIndex int, lang string) (Hint, bool) {
	if questionIndex < 0 || questionIndex >= len(s.round) || s.HintLocked(questionIndex) {
		return Hint{}, false
	}
	s.hints[questionIndex]++
	return s.hint(questionIndex, s.hints[questionIndex], lang), true
}

// Hints returns every hint disclosed so far for question i, in level order.
func (s *Session) Hints(i int, lang string) []Hint {
	level := s.HintLevel(i)
	hints := make([]Hint, 0, level)
	for l := 1; l <= level; l++ {
		hints = append(hints, s.hint(i, l, lang))
	}
	return hints
}

func (s *Session) hint(i, level int, lang string) Hint {
	q := s.round[i]
	h := Hint{QuestionIndex: i, Level: level}
	switch level {
	case 1:
		h.Kind, h.Text = HintGender, q.Gender
	case 2:
		h.Kind, h.Text = HintCase, q.Case
		if s.cfg.References != nil {
			ref := s.cfg.References.Lookup(q.Case)
			h.Reference = &ref
		}
	default:
		h.Kind, h.Text = HintTranslation, q.Translation(lang)
	}
	return h
}
