package api

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/quizdeck/internal/attempt"
)

// ErrAttemptNotFound is returned for unknown or expired attempt IDs.
var ErrAttemptNotFound = errors.New("attempt not found")

// DefaultAttemptTTL is how long an untouched attempt is kept.
const DefaultAttemptTTL = 2 * time.Hour

type entry struct {
	mu      sync.Mutex // serialises operations on attempt
	attempt *attempt.Attempt
	closed  bool      // guarded by mu; set once the entry leaves the registry
	touched time.Time // guarded by Registry.mu
}

// Registry holds in-progress attempts keyed by a stable resource ID.
// The key survives retries; each retry still gets a fresh attempt ID
// for the stored result.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry
	ttl     time.Duration
	now     func() time.Time
}

// NewRegistry creates an empty registry. ttl <= 0 uses DefaultAttemptTTL.
func NewRegistry(ttl time.Duration, now func() time.Time) *Registry {
	if ttl <= 0 {
		ttl = DefaultAttemptTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Registry{entries: make(map[string]*entry), ttl: ttl, now: now}
}

// Add stores a and returns its resource ID. Expired entries are pruned.
func (r *Registry) Add(a *attempt.Attempt) string {
	id := uuid.NewString()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pruneLocked()
	r.entries[id] = &entry{attempt: a, touched: r.now()}
	return id
}

// With runs fn with exclusive access to the attempt.
func (r *Registry) With(id string, fn func(a *attempt.Attempt) error) error {
	e, err := r.lock(id)
	if err != nil {
		return err
	}
	defer e.mu.Unlock()
	return fn(e.attempt)
}

// Take runs fn like With and removes the attempt when fn succeeds. Calls
// queued behind it on the same attempt then get ErrAttemptNotFound.
func (r *Registry) Take(id string, fn func(a *attempt.Attempt) error) error {
	e, err := r.lock(id)
	if err != nil {
		return err
	}
	defer e.mu.Unlock()
	if err := fn(e.attempt); err != nil {
		return err
	}
	e.closed = true
	r.mu.Lock()
	if r.entries[id] == e {
		delete(r.entries, id)
	}
	r.mu.Unlock()
	return nil
}

// lock returns the live entry for id with its mutex held.
func (r *Registry) lock(id string) (*entry, error) {
	r.mu.Lock()
	e, ok := r.entries[id]
	if ok && r.now().Sub(e.touched) > r.ttl {
		delete(r.entries, id)
		ok = false
	}
	if ok {
		e.touched = r.now()
	}
	r.mu.Unlock()
	if !ok {
		return nil, ErrAttemptNotFound
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil, ErrAttemptNotFound
	}
	return e, nil
}

// Remove deletes id, reporting whether it existed. It waits for an
// operation in progress on the attempt to finish.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	e, ok := r.entries[id]
	delete(r.entries, id)
	r.mu.Unlock()
	if !ok {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return false
	}
	e.closed = true
	return true
}

// Len returns the number of live attempts.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *Registry) pruneLocked() {
	now := r.now()
	for id, e := range r.entries {
		if now.Sub(e.touched) > r.ttl {
			delete(r.entries, id)
		}
	}
}
