// Package adjquiz defines the quiz domain: questions, rounds, the session
// state machine and the hint protocol.
package adjquiz

import (
	"errors"
	"fmt"
	"strings"
)

// FallbackLanguage is the translation every question must carry.
const FallbackLanguage = "en"

// DefaultRoundSize is the number of questions drawn per round.
const DefaultRoundSize = 10

// MaxHintLevel is the level at which a question's hints are fully revealed.
const MaxHintLevel = 3

type Choice struct {
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

type Question struct {
	ID           string            `json:"id"`
	Prompt       string            `json:"prompt"`
	Explanation  string            `json:"explanation"`
	Case         string            `json:"grammaticalCase"`
	Gender       string            `json:"gender"`
	Translations map[string]string `json:"translations"`
	Choices      []Choice          `json:"choices"`
}

// Translation returns the translation for lang, falling back to English.
func (q Question) Translation(lang string) string {
	if t := q.Translations[lang]; t != "" {
		return t
	}
	return q.Translations[FallbackLanguage]
}

// CorrectIndex returns the position of the correct choice, or -1.
func (q Question) CorrectIndex() int {
	for i, c := range q.Choices {
		if c.Correct {
			return i
		}
	}
	return -1
}

type AnswerRecord struct {
	QuestionIndex int    `json:"questionIndex"`
	ChoiceIndex   int    `json:"choiceIndex"`
	Choice        string `json:"choice"`
	IsCorrect     bool   `json:"isCorrect"`
}

type HintKind string

const (
	HintGender      HintKind = "gender"
	HintCase        HintKind = "case"
	HintTranslation HintKind = "translation"
)

// Hint is the disclosure payload unlocked at one hint level.
type Hint struct {
	QuestionIndex int        `json:"questionIndex"`
	Level         int        `json:"level"`
	Kind          HintKind   `json:"kind"`
	Text          string     `json:"text"`
	Reference     *Reference `json:"reference,omitempty"`
}

// Reference is the explanatory grammar content for one grammatical case.
type Reference struct {
	Case    string   `json:"case"`
	Title   string   `json:"title"`
	Summary string   `json:"summary"`
	Endings []Ending `json:"endings,omitempty"`
}

// Ending lists adjective endings for one article type.
type Ending struct {
	Article   string `json:"article"`
	Masculine string `json:"masculine"`
	Feminine  string `json:"feminine"`
	Neuter    string `json:"neuter"`
	Plural    string `json:"plural"`
}

// ReferenceLookup maps a grammatical case to its reference content. A miss
// must return a placeholder, never fail.
type ReferenceLookup interface {
	Lookup(caseName string) Reference
}

type CaseTally struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Stats summarizes a completed round.
type Stats struct {
	Correct int                  `json:"correct"`
	Total   int                  `json:"total"`
	ByCase  map[string]CaseTally `json:"byCase"`
}

// HintPolicy decides whether hints stay available once a question is answered.
type HintPolicy int

const (
	// HintsIndependent keeps hints available regardless of answer state.
	HintsIndependent HintPolicy = iota
	// HintsLockedAfterAnswer disables a question's hints once it is answered,
	// until the round completes.
	HintsLockedAfterAnswer
)

func (p HintPolicy) String() string {
	switch p {
	case HintsLockedAfterAnswer:
		return "lock_after_answer"
	default:
		return "independent"
	}
}

func (p *HintPolicy) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "", "independent":
		*p = HintsIndependent
	case "lock_after_answer":
		*p = HintsLockedAfterAnswer
	default:
		return fmt.Errorf("unknown hint policy %q", text)
	}
	return nil
}

// Config controls how sessions are built.
type Config struct {
	RoundSize             int
	Hints                 HintPolicy
	RevealHintsOnComplete bool
	References            ReferenceLookup
}

func (c Config) roundSize() int {
	if c.RoundSize <= 0 {
		return DefaultRoundSize
	}
	return c.RoundSize
}

var (
	ErrEmptyBank  = errors.New("question bank is empty")
	ErrSuperseded = errors.New("load superseded by a newer round")
)

// DataShapeError reports every validation problem found in a question bank.
type DataShapeError struct {
	Problems []string
}

func (e *DataShapeError) Error() string {
	if len(e.Problems) == 1 {
		return "invalid question bank: " + e.Problems[0]
	}
	return fmt.Sprintf("invalid question bank: %d problems", len(e.Problems))
}

// LoadError reports a failure to fetch or decode the question bank.
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string { return "loading question bank: " + e.Err.Error() }

func (e *LoadError) Unwrap() error { return e.Err }

// Messages turns a load or validation error into the human-readable lines
// shown to the player.
func Messages(err error) []string {
	if err == nil {
		return nil
	}
	var shape *DataShapeError
	if errors.As(err, &shape) {
		return append([]string(nil), shape.Problems...)
	}
	return []string{err.Error()}
}
