package adjquiz

import (
	"context"
	"math/rand/v2"
	"sync"
)

// BankLoader fetches and validates a fresh question bank. It is called once
// per round and must not cache.
type BankLoader interface {
	LoadBank(ctx context.Context) ([]Question, error)
}

// Presenter receives the controller's output. Calls are made while the
// controller holds its lock, so implementations must not call back into it.
type Presenter interface {
	RenderRound(view View)
	ShowAnswerFeedback(questionIndex int, rec AnswerRecord)
	ShowHintText(questionIndex, level int, hint Hint)
	ShowFinalSummary(stats Stats)
	ShowError(messages []string)
}

type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseLoading    Phase = "loading"
	PhaseFailed     Phase = "failed"
	PhaseInProgress Phase = "in_progress"
	PhaseCompleted  Phase = "completed"
)

// Snapshot is a consistent read of a controller's state.
type Snapshot struct {
	Phase    Phase    `json:"phase"`
	Language string   `json:"language"`
	Round    *View    `json:"round,omitempty"`
	Errors   []string `json:"errors,omitempty"`
}

// Controller owns one play session and relays adapter events into it.
type Controller struct {
	loader    BankLoader
	presenter Presenter
	cfg       Config

	mu         sync.Mutex
	rng        *rand.Rand
	lang       string
	generation uint64
	loading    bool
	session    *Session
	errs       []string
}

func NewController(loader BankLoader, presenter Presenter, cfg Config, rng *rand.Rand, lang string) *Controller {
	if lang == "" {
		lang = FallbackLanguage
	}
	return &Controller{
		loader:    loader,
		presenter: presenter,
		cfg:       cfg,
		rng:       rng,
		lang:      lang,
	}
}

// Start discards the current round and loads a new one. If another Start
// begins before this load finishes, this call's result is dropped and
// ErrSuperseded is returned.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.session = nil
	c.errs = nil
	c.loading = true
	c.mu.Unlock()

	bank, err := c.loader.LoadBank(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		return ErrSuperseded
	}
	c.loading = false

	if err == nil {
		c.session, err = NewSession(bank, c.cfg, c.rng)
	}
	if err != nil {
		c.errs = Messages(err)
		if len(c.errs) == 0 {
			c.errs = []string{err.Error()}
		}
		c.presenter.ShowError(c.errs)
		return err
	}

	c.presenter.RenderRound(Render(c.session, c.lang))
	return nil
}

// OnResetClicked starts a new round. Repeated resets are safe: only the
// newest load is installed.
func (c *Controller) OnResetClicked(ctx context.Context) error {
	return c.Start(ctx)
}

// OnChoiceClicked answers a question. It reports false for ignored clicks.
func (c *Controller) OnChoiceClicked(questionIndex, choiceIndex int) (AnswerResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return AnswerResult{}, false
	}
	res, ok := c.session.Answer(questionIndex, choiceIndex, c.lang)
	if !ok {
		return res, false
	}

	c.presenter.ShowAnswerFeedback(questionIndex, res.Record)
	if res.RoundCompleted {
		for _, h := range res.Revealed {
			c.presenter.ShowHintText(h.QuestionIndex, h.Level, h)
		}
		c.presenter.ShowFinalSummary(*res.Stats)
	}
	return res, true
}

// OnHintClicked discloses the next hint level of a question.
func (c *Controller) OnHintClicked(questionIndex int) (Hint, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return Hint{}, false
	}
	h, ok := c.session.RequestHint(questionIndex, c.lang)
	if ok {
		c.presenter.ShowHintText(questionIndex, h.Level, h)
	}
	return h, ok
}

// OnLanguageChanged switches the translation language for later hints.
// Callers validate code against the supported set.
func (c *Controller) OnLanguageChanged(code string) {
	c.mu.Lock()
	c.lang = code
	c.mu.Unlock()
}

func (c *Controller) Language() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lang
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{Phase: c.phase(), Language: c.lang}
	if c.session != nil {
		v := Render(c.session, c.lang)
		snap.Round = &v
	}
	if len(c.errs) > 0 {
		snap.Errors = append([]string(nil), c.errs...)
	}
	return snap
}

func (c *Controller) phase() Phase {
	switch {
	case c.loading:
		return PhaseLoading
	case c.errs != nil:
		return PhaseFailed
	case c.session == nil:
		return PhaseIdle
	case c.session.Completed():
		return PhaseCompleted
	default:
		return PhaseInProgress
	}
}
