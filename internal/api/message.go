package api

// Wire protocol for the /ws stream. Requests carry a type plus whichever of
// seatId/username the operation needs; everything the server emits is an
// Event envelope.

// Inbound message types.
const (
	msgAssociateUser = "associateUser"
	msgLockSeat      = "lockSeat"
	msgReleaseLock   = "releaseLock"
	msgBookSeat      = "bookSeat"
	msgReleaseSeat   = "releaseSeat"
)

// Outbound event types.
const (
	EventSeatsUpdate    = "seatsUpdate"
	EventLockingError   = "lockingError"
	EventBookingError   = "bookingError"
	EventBookingSuccess = "bookingSuccess"
	EventReleaseError   = "releaseError"
	EventReleaseSuccess = "releaseSuccess"
	EventError          = "error"
)

type request struct {
	Type     string `json:"type"`
	SeatID   int    `json:"seatId"`
	Username string `json:"username"`
}

// Event is the envelope for everything sent over the stream.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

type errorPayload struct {
	Message string `json:"message"`
}

type seatPayload struct {
	SeatID int `json:"seatId"`
}
