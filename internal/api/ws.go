package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/rahulrajesh21/Ticket-Booking-system/internal/hub"
	"github.com/rahulrajesh21/Ticket-Booking-system/internal/logutil"
	"github.com/rahulrajesh21/Ticket-Booking-system/internal/seat"
	"github.com/rahulrajesh21/Ticket-Booking-system/internal/session"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSHandler holds shared resources injected from app.Server.
type WSHandler struct {
	Hub      *hub.Hub
	Store    *seat.Store
	Locks    *seat.LockManager
	Bookings *seat.BookingEngine
	Sessions *session.Registry
}

// HandleWS upgrades the connection, pushes the current snapshot, and then
// dispatches seat operations until the client goes away. Every connection
// gets a fresh uuid identity; lock ownership is keyed on it.
func (h *WSHandler) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.L().Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	connID := uuid.NewString()
	logger := zap.L().With(logutil.Conn(connID))

	cl := hub.NewClient(connID, conn)
	h.Hub.Register(cl)
	go cl.WritePump()
	logger.Info("client connected")

	// New clients see the authoritative state before anything else.
	cl.Send(Event{Type: EventSeatsUpdate, Data: h.Store.Snapshot()})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			break
		}

		var req request
		if err := json.Unmarshal(raw, &req); err != nil {
			cl.Send(Event{Type: EventError, Data: errorPayload{Message: "invalid JSON"}})
			continue
		}

		switch req.Type {
		case msgAssociateUser:
			if err := h.Sessions.Associate(req.Username, connID); err != nil {
				logger.Warn("associate failed", logutil.User(req.Username), zap.Error(err))
				continue
			}
			logger.Info("connection associated", logutil.User(req.Username))

		case msgLockSeat:
			if req.Username == "" {
				cl.Send(Event{Type: EventLockingError, Data: errorPayload{Message: "Username is required"}})
				continue
			}
			if err := h.Locks.Acquire(req.SeatID, connID, req.Username); err != nil {
				cl.Send(Event{Type: EventLockingError, Data: errorPayload{Message: clientMessage(err)}})
				continue
			}
			logger.Info("seat locked", logutil.Seat(req.SeatID), logutil.User(req.Username))

		case msgReleaseLock:
			if err := h.Locks.Release(req.SeatID, connID); err != nil {
				// Releasing a lock you no longer hold is routine (expiry can
				// race the click); nothing to tell the client.
				logger.Debug("lock release ignored", logutil.Seat(req.SeatID), zap.Error(err))
				continue
			}
			logger.Info("lock released", logutil.Seat(req.SeatID))

		case msgBookSeat:
			if req.Username == "" {
				cl.Send(Event{Type: EventBookingError, Data: errorPayload{Message: "Username is required"}})
				continue
			}
			if err := h.Bookings.Book(req.SeatID, connID, req.Username); err != nil {
				cl.Send(Event{Type: EventBookingError, Data: errorPayload{Message: clientMessage(err)}})
				continue
			}
			cl.Send(Event{Type: EventBookingSuccess, Data: seatPayload{SeatID: req.SeatID}})
			logger.Info("seat booked", logutil.Seat(req.SeatID), logutil.User(req.Username))

		case msgReleaseSeat:
			if err := h.Bookings.ReleaseBooking(req.SeatID, req.Username); err != nil {
				cl.Send(Event{Type: EventReleaseError, Data: errorPayload{Message: clientMessage(err)}})
				continue
			}
			cl.Send(Event{Type: EventReleaseSuccess, Data: seatPayload{SeatID: req.SeatID}})
			logger.Info("booking released", logutil.Seat(req.SeatID), logutil.User(req.Username))

		default:
			cl.Send(Event{Type: EventError, Data: errorPayload{Message: "unknown message type"}})
		}
	}

	// Disconnect reconciliation. Order matters: detach the session, release
	// every lock this connection held, and only then decide whether the name
	// stays reserved for its bookings.
	h.Hub.Unregister(cl)
	name, hadSession := h.Sessions.OnDisconnect(connID)
	released := h.Locks.ReleaseAllForConnection(connID)
	if hadSession {
		h.Sessions.EvaluateRetention(name)
	}

	logger.Info("client disconnected", logutil.Values(
		zap.String("username", name),
		zap.Int("locks_released", released),
	))
}

// clientMessage maps engine errors onto the phrasing clients display.
func clientMessage(err error) string {
	switch {
	case errors.Is(err, seat.ErrSeatNotFound):
		return "Seat not found"
	case errors.Is(err, seat.ErrAlreadyBooked):
		return "Seat already booked"
	case errors.Is(err, seat.ErrLockedByOther):
		return "Seat is currently being selected by another user"
	case errors.Is(err, seat.ErrNotOwner):
		return "You can only release seats that you have booked"
	default:
		return err.Error()
	}
}
