package seat

import "errors"

// All seat failures are expected, recoverable outcomes reported to the
// requester only. None of them triggers a broadcast and none is fatal.
var (
	ErrSeatNotFound  = errors.New("seat not found")
	ErrAlreadyBooked = errors.New("seat already booked")
	ErrLockedByOther = errors.New("seat locked by another connection")
	ErrNotOwner      = errors.New("seat booked by a different user")
)
