package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/anyulbade/transfer-calculator/internal/calculator"
)

var ErrSessionNotFound = errors.New("calculator session not found")

type entry struct {
	machine  *calculator.Machine
	lastSeen time.Time
}

// Registry tracks live calculator machines by session id.
type Registry struct {
	deps calculator.Deps
	now  func() time.Time

	mu       sync.Mutex
	sessions map[string]*entry
}

func NewRegistry(deps calculator.Deps) *Registry {
	return &Registry{
		deps:     deps,
		now:      time.Now,
		sessions: make(map[string]*entry),
	}
}

func (r *Registry) Create(init calculator.Init) (string, *calculator.Machine, error) {
	m, err := calculator.New(r.deps, init)
	if err != nil {
		return "", nil, err
	}

	id := uuid.NewString()
	r.mu.Lock()
	r.sessions[id] = &entry{machine: m, lastSeen: r.now()}
	r.mu.Unlock()

	log.Debug().Str("session_id", id).Msg("calculator session created")
	return id, m, nil
}

// Get returns the machine and marks the session as active.
func (r *Registry) Get(id string) (*calculator.Machine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	e.lastSeen = r.now()
	return e.machine, nil
}

func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	e, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	e.machine.Close()
	return nil
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep closes sessions idle for longer than maxIdle and returns how many
// were removed.
func (r *Registry) Sweep(maxIdle time.Duration) int {
	cutoff := r.now().Add(-maxIdle)

	r.mu.Lock()
	var stale []*calculator.Machine
	for id, e := range r.sessions {
		if e.lastSeen.Before(cutoff) {
			stale = append(stale, e.machine)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, m := range stale {
		m.Close()
	}
	return len(stale)
}

// CloseAll stops every machine; used on shutdown.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]*entry)
	r.mu.Unlock()

	for _, e := range sessions {
		e.machine.Close()
	}
}
