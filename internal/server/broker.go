package server

import (
	"encoding/json"
	"sync"

	"github.com/playperu/adjquiz/internal/adjquiz"
)

// Event is a presenter call forwarded to SSE and WebSocket subscribers.
type Event struct {
	Type     string                `json:"type"`
	Snapshot *adjquiz.Snapshot     `json:"snapshot,omitempty"`
	Round    *adjquiz.View         `json:"round,omitempty"`
	Record   *adjquiz.AnswerRecord `json:"record,omitempty"`
	Hint     *adjquiz.Hint         `json:"hint,omitempty"`
	Summary  *adjquiz.Stats        `json:"summary,omitempty"`
	Errors   []string              `json:"errors,omitempty"`
}

const (
	EventSnapshot = "snapshot"
	EventRound    = "round"
	EventAnswer   = "answer"
	EventHint     = "hint"
	EventSummary  = "summary"
	EventError    = "error"
)

// Broker is an in-process pub/sub for session events, keyed by session ID.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]map[chan []byte]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[string]map[chan []byte]struct{}),
	}
}

// Subscribe returns a channel that receives JSON-encoded events for the session.
func (b *Broker) Subscribe(sessionID string) chan []byte {
	ch := make(chan []byte, 32)
	b.mu.Lock()
	if b.subs[sessionID] == nil {
		b.subs[sessionID] = make(map[chan []byte]struct{})
	}
	b.subs[sessionID][ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a channel from the session's subscribers.
func (b *Broker) Unsubscribe(sessionID string, ch chan []byte) {
	b.mu.Lock()
	delete(b.subs[sessionID], ch)
	if len(b.subs[sessionID]) == 0 {
		delete(b.subs, sessionID)
	}
	b.mu.Unlock()
}

// Publish sends an event to all subscribers of the session.
func (b *Broker) Publish(sessionID string, event Event) {
	data, _ := json.Marshal(event)
	b.mu.RLock()
	for ch := range b.subs[sessionID] {
		select {
		case ch <- data:
		default:
			// Drop if subscriber is slow.
		}
	}
	b.mu.RUnlock()
}

// brokerPresenter implements adjquiz.Presenter by publishing to a session's
// subscribers.
type brokerPresenter struct {
	broker    *Broker
	sessionID string
}

func (p brokerPresenter) RenderRound(v adjquiz.View) {
	p.broker.Publish(p.sessionID, Event{Type: EventRound, Round: &v})
}

func (p brokerPresenter) ShowAnswerFeedback(_ int, rec adjquiz.AnswerRecord) {
	p.broker.Publish(p.sessionID, Event{Type: EventAnswer, Record: &rec})
}

func (p brokerPresenter) ShowHintText(_, _ int, h adjquiz.Hint) {
	p.broker.Publish(p.sessionID, Event{Type: EventHint, Hint: &h})
}

func (p brokerPresenter) ShowFinalSummary(s adjquiz.Stats) {
	p.broker.Publish(p.sessionID, Event{Type: EventSummary, Summary: &s})
}

func (p brokerPresenter) ShowError(msgs []string) {
	p.broker.Publish(p.sessionID, Event{Type: EventError, Errors: msgs})
}
