package seat

import (
	"sync"
	"time"
)

// record is the in-memory seat state. Records are created once at startup and
// mutated in place for the process lifetime; all access goes through the
// store mutex so every check-then-set runs as one critical section.
type record struct {
	id        int
	booked    bool
	user      string
	locked    bool
	lockStamp time.Time
	lockConn  string

	// gen is bumped by every mutation that touches the lock fields. A pending
	// expiry captures the generation at acquire time and is a no-op if the
	// seat has moved on since.
	gen   uint64
	timer *time.Timer
}

// Store owns the fixed arena of seat records. It is a pure state container;
// the lock and booking transitions live in LockManager and BookingEngine.
type Store struct {
	mu    sync.Mutex
	seats []record
}

// NewStore creates n seats with ids 1..n, all free.
func NewStore(n int) *Store {
	s := &Store{seats: make([]record, n)}
	for i := range s.seats {
		s.seats[i].id = i + 1
	}
	return s
}

// get returns the record for id, or nil for an unknown id.
// Caller must hold s.mu.
func (s *Store) get(id int) *record {
	if id < 1 || id > len(s.seats) {
		return nil
	}
	return &s.seats[id-1]
}

func (s *Store) Len() int { return len(s.seats) }

// Snapshot returns the ordered client view of every seat.
func (s *Store) Snapshot() []View {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]View, len(s.seats))
	for i := range s.seats {
		r := &s.seats[i]
		v := View{ID: r.id, Booked: r.booked, Locked: r.locked}
		if r.user != "" {
			u := r.user
			v.User = &u
		}
		out[i] = v
	}
	return out
}

// BookedBy reports whether name owns at least one booked seat. Used by the
// session registry to decide whether a disconnected name stays reserved.
func (s *Store) BookedBy(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.seats {
		if s.seats[i].booked && s.seats[i].user == name {
			return true
		}
	}
	return false
}

// clearLock resets the transient lock state and invalidates any pending
// expiry. Caller must hold s.mu. The booked and user fields are untouched
// unless the seat is not booked, matching the release rules.
func clearLock(r *record) {
	r.locked = false
	r.lockStamp = time.Time{}
	r.lockConn = ""
	if !r.booked {
		r.user = ""
	}
	r.gen++
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}
