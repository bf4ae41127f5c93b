// Package session tracks which display names are active and which live
// connection, if any, currently speaks for each of them.
package session

import (
	"errors"
	"sync"
	"time"
)

var (
	ErrNameTaken   = errors.New("display name already in use")
	ErrUnknownName = errors.New("no session for that display name")
)

// Session binds a display name to at most one connection. ConnID is empty
// while the holder is disconnected but the session is retained because it
// still owns booked seats.
type Session struct {
	Name      string
	ConnID    string
	CreatedAt time.Time
}

// Registry is the authoritative set of active sessions. The hasBookings
// predicate (backed by the seat store) decides whether a disconnected name
// keeps its session or frees the name for reuse.
type Registry struct {
	mu          sync.Mutex
	byName      map[string]*Session
	hasBookings func(name string) bool
}

func NewRegistry(hasBookings func(name string) bool) *Registry {
	return &Registry{
		byName:      make(map[string]*Session),
		hasBookings: hasBookings,
	}
}

// Login claims a display name. It fails while the name belongs to any active
// session, connected or detached; reconnecting owners use Associate instead.
func (r *Registry) Login(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byName[name]; taken {
		return ErrNameTaken
	}
	r.byName[name] = &Session{Name: name, CreatedAt: time.Now()}
	return nil
}

// Associate binds a connection to an existing session, replacing any earlier
// binding. This is how a reconnecting client re-establishes identity so
// name-keyed booking ownership keeps working.
func (r *Registry) Associate(name, connID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.byName[name]
	if !ok {
		return ErrUnknownName
	}
	s.ConnID = connID
	return nil
}

// OnDisconnect detaches whichever session owned connID and returns its name.
// It deliberately does nothing else: the caller must first release the
// connection's locks and only then call EvaluateRetention, so a stale lock
// can never outlive its dead connection.
func (r *Registry) OnDisconnect(connID string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.byName {
		if s.ConnID != "" && s.ConnID == connID {
			s.ConnID = ""
			return s.Name, true
		}
	}
	return "", false
}

// EvaluateRetention deletes a detached session unless its name still owns
// booked seats, in which case the session is kept so the owner can reconnect
// and release them.
func (r *Registry) EvaluateRetention(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.byName[name]
	if !ok || s.ConnID != "" {
		return
	}
	if !r.hasBookings(name) {
		delete(r.byName, name)
	}
}

// Count reports the number of active sessions, detached ones included.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byName)
}
