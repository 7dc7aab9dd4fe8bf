package server

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/playperu/adjquiz/internal/adjquiz"
)

// playSession binds a controller to the visitor who started it.
type playSession struct {
	ID        string
	VisitorID string
	ctrl      *adjquiz.Controller
	lastSeen  atomic.Int64
}

func (p *playSession) touch(t time.Time) { p.lastSeen.Store(t.UnixNano()) }

// Registry holds live play sessions and evicts idle ones.
type Registry struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.RWMutex
	sessions map[string]*playSession
}

func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*playSession),
	}
}

func (r *Registry) Add(ps *playSession) {
	ps.touch(r.now())
	r.mu.Lock()
	r.sessions[ps.ID] = ps
	r.mu.Unlock()
}

// Get returns the session and marks it as used.
func (r *Registry) Get(id string) (*playSession, error) {
	r.mu.RLock()
	ps, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	ps.touch(r.now())
	return ps, nil
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep removes sessions idle for longer than the TTL and reports how many
// were dropped.
func (r *Registry) Sweep() int {
	cutoff := r.now().Add(-r.ttl).UnixNano()

	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, ps := range r.sessions {
		if ps.lastSeen.Load() < cutoff {
			delete(r.sessions, id)
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration, logger *slog.Logger) error {
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			if n := r.Sweep(); n > 0 {
				logger.Info("evicted idle sessions", "count", n, "remaining", r.Len())
			}
		}
	}
}

// sessionFactory builds controllers wired to the broker and registers them.
type sessionFactory struct {
	loader   adjquiz.BankLoader
	cfg      adjquiz.Config
	broker   *Broker
	registry *Registry
}

func (f *sessionFactory) create(visitorID, lang string) *playSession {
	id := uuid.NewString()
	rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	ps := &playSession{
		ID:        id,
		VisitorID: visitorID,
		ctrl:      adjquiz.NewController(f.loader, brokerPresenter{broker: f.broker, sessionID: id}, f.cfg, rng, lang),
	}
	f.registry.Add(ps)
	return ps
}
