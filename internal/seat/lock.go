package seat

import "time"

// LockManager implements the soft-lock protocol: a lock marks a seat as
// being selected, belongs to exactly one connection, and evaporates after
// ttl unless refreshed, released, or converted into a booking.
type LockManager struct {
	store *Store
	ttl   time.Duration
	deps  Deps
}

func NewLockManager(store *Store, ttl time.Duration, deps Deps) *LockManager {
	return &LockManager{store: store, ttl: ttl, deps: deps}
}

// Acquire locks a free seat for connID, or refreshes a lock the same
// connection already holds. Each successful call supersedes the previous
// expiry for this seat, so a refresh restarts the full ttl.
func (m *LockManager) Acquire(seatID int, connID, name string) error {
	m.store.mu.Lock()
	r := m.store.get(seatID)
	if r == nil {
		m.store.mu.Unlock()
		return ErrSeatNotFound
	}
	if r.booked {
		m.store.mu.Unlock()
		return ErrAlreadyBooked
	}
	if r.locked && r.lockConn != connID {
		m.store.mu.Unlock()
		return ErrLockedByOther
	}

	r.locked = true
	r.user = name
	r.lockConn = connID
	r.lockStamp = time.Now()
	r.gen++
	if r.timer != nil {
		r.timer.Stop()
	}
	gen := r.gen
	r.timer = time.AfterFunc(m.ttl, func() {
		m.expire(seatID, connID, gen)
	})
	m.store.mu.Unlock()

	m.deps.publish(m.store)
	return nil
}

// expire runs when an acquisition's timer fires. The generation check makes
// a timer that lost the Stop race harmless: any release, refresh, or booking
// since the acquire has bumped the generation.
func (m *LockManager) expire(seatID int, connID string, gen uint64) {
	m.store.mu.Lock()
	r := m.store.get(seatID)
	if r == nil || !r.locked || r.booked || r.lockConn != connID || r.gen != gen {
		m.store.mu.Unlock()
		return
	}
	clearLock(r)
	m.store.mu.Unlock()

	m.deps.publish(m.store)
}

// Release drops a lock held by connID. Releasing a booked seat is refused so
// a stray release can never clear booking ownership.
func (m *LockManager) Release(seatID int, connID string) error {
	m.store.mu.Lock()
	r := m.store.get(seatID)
	if r == nil {
		m.store.mu.Unlock()
		return ErrSeatNotFound
	}
	if r.booked {
		m.store.mu.Unlock()
		return ErrAlreadyBooked
	}
	if !r.locked || r.lockConn != connID {
		m.store.mu.Unlock()
		return ErrLockedByOther
	}
	clearLock(r)
	m.store.mu.Unlock()

	m.deps.publish(m.store)
	return nil
}

// ReleaseAllForConnection sweeps every lock held by a dead connection, using
// the same eligibility rule as Release. It returns the number of seats freed
// and broadcasts once if anything changed.
func (m *LockManager) ReleaseAllForConnection(connID string) int {
	m.store.mu.Lock()
	released := 0
	for i := range m.store.seats {
		r := &m.store.seats[i]
		if r.locked && !r.booked && r.lockConn == connID {
			clearLock(r)
			released++
		}
	}
	m.store.mu.Unlock()

	if released > 0 {
		m.deps.publish(m.store)
	}
	return released
}
