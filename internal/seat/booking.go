package seat

// BookingEngine implements the final booking transitions. Bookings are owned
// by display name, not connection, so they survive reconnects; locks are the
// other way around.
type BookingEngine struct {
	store *Store
	deps  Deps
}

func NewBookingEngine(store *Store, deps Deps) *BookingEngine {
	return &BookingEngine{store: store, deps: deps}
}

// Book finalizes a seat for name. A prior lock is not required, but a lock
// held by another connection blocks the booking. The lock fields are left
// in place on success (clients stop rendering them once booked); the pending
// expiry is invalidated so it can never fire against a booked seat.
func (e *BookingEngine) Book(seatID int, connID, name string) error {
	e.store.mu.Lock()
	r := e.store.get(seatID)
	if r == nil {
		e.store.mu.Unlock()
		return ErrSeatNotFound
	}
	if r.booked {
		e.store.mu.Unlock()
		return ErrAlreadyBooked
	}
	if r.locked && r.lockConn != connID {
		e.store.mu.Unlock()
		return ErrLockedByOther
	}

	r.booked = true
	r.user = name
	r.gen++
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	e.store.mu.Unlock()

	e.deps.publish(e.store)
	return nil
}

// ReleaseBooking returns a booked seat to the pool. Only the booking owner,
// identified by display name, may release; the seat comes back fully free.
func (e *BookingEngine) ReleaseBooking(seatID int, name string) error {
	e.store.mu.Lock()
	r := e.store.get(seatID)
	if r == nil {
		e.store.mu.Unlock()
		return ErrSeatNotFound
	}
	if !r.booked || r.user != name {
		e.store.mu.Unlock()
		return ErrNotOwner
	}

	r.booked = false
	clearLock(r)
	e.store.mu.Unlock()

	e.deps.publish(e.store)
	return nil
}
