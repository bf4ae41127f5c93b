package api

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahulrajesh21/Ticket-Booking-system/internal/seat"
)

type wireEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func (ts *testServer) dialWS(t *testing.T) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.srv.URL, "http") + "/ws"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { ws.Close() })
	return ws
}

func send(t *testing.T, ws *websocket.Conn, msgType string, seatID int, username string) {
	t.Helper()
	require.NoError(t, ws.WriteJSON(map[string]any{
		"type":     msgType,
		"seatId":   seatID,
		"username": username,
	}))
}

// readEvent reads frames until one of wantType arrives, skipping the
// broadcasts interleaved by other connections' activity.
func readEvent(t *testing.T, ws *websocket.Conn, wantType string) json.RawMessage {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		ws.SetReadDeadline(deadline)
		_, raw, err := ws.ReadMessage()
		require.NoError(t, err, "waiting for %q", wantType)

		var ev wireEvent
		require.NoError(t, json.Unmarshal(raw, &ev))
		if ev.Type == wantType {
			return ev.Data
		}
	}
}

func decodeSeats(t *testing.T, data json.RawMessage) []seat.View {
	t.Helper()
	var seats []seat.View
	require.NoError(t, json.Unmarshal(data, &seats))
	return seats
}

// readSeatsUpdate skips snapshots until pred holds, so tests are immune to
// how many intermediate broadcasts they observe.
func readSeatsUpdate(t *testing.T, ws *websocket.Conn, pred func([]seat.View) bool) []seat.View {
	t.Helper()
	for {
		seats := decodeSeats(t, readEvent(t, ws, EventSeatsUpdate))
		if pred(seats) {
			return seats
		}
	}
}

func TestWSInitialSnapshot(t *testing.T) {
	ts := newTestServer(t, 50, time.Minute)
	ws := ts.dialWS(t)

	seats := decodeSeats(t, readEvent(t, ws, EventSeatsUpdate))
	require.Len(t, seats, 50)
	assert.Equal(t, 1, seats[0].ID)
}

func TestWSLockAndBookFlow(t *testing.T) {
	ts := newTestServer(t, 10, time.Minute)

	wsA := ts.dialWS(t)
	readEvent(t, wsA, EventSeatsUpdate)
	wsB := ts.dialWS(t)
	readEvent(t, wsB, EventSeatsUpdate)

	// A locks seat 3; both sides observe it.
	send(t, wsA, "lockSeat", 3, "alice")
	for _, ws := range []*websocket.Conn{wsA, wsB} {
		seats := readSeatsUpdate(t, ws, func(s []seat.View) bool { return s[2].Locked })
		require.NotNil(t, seats[2].User)
		assert.Equal(t, "alice", *seats[2].User)
	}

	// B cannot book it; only B hears about the failure.
	send(t, wsB, "bookSeat", 3, "bob")
	var errPayload struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(readEvent(t, wsB, EventBookingError), &errPayload))
	assert.Contains(t, errPayload.Message, "another user")

	// A books it and gets a confirmation; everyone gets the new snapshot.
	send(t, wsA, "bookSeat", 3, "alice")
	var ok struct {
		SeatID int `json:"seatId"`
	}
	require.NoError(t, json.Unmarshal(readEvent(t, wsA, EventBookingSuccess), &ok))
	assert.Equal(t, 3, ok.SeatID)

	seats := readSeatsUpdate(t, wsB, func(s []seat.View) bool { return s[2].Booked })
	require.NotNil(t, seats[2].User)
	assert.Equal(t, "alice", *seats[2].User)
}

func TestWSReleaseBookingWrongUser(t *testing.T) {
	ts := newTestServer(t, 10, time.Minute)
	ws := ts.dialWS(t)
	readEvent(t, ws, EventSeatsUpdate)

	send(t, ws, "bookSeat", 1, "alice")
	readEvent(t, ws, EventBookingSuccess)

	send(t, ws, "releaseSeat", 1, "mallory")
	var errPayload struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(readEvent(t, ws, EventReleaseError), &errPayload))
	assert.Contains(t, errPayload.Message, "seats that you have booked")
	assert.True(t, ts.store.Snapshot()[0].Booked)
}

func TestWSDisconnectReleasesLocksAndFreesName(t *testing.T) {
	ts := newTestServer(t, 10, time.Minute)
	require.Equal(t, 200, ts.login(t, "alice").StatusCode)

	wsA := ts.dialWS(t)
	readEvent(t, wsA, EventSeatsUpdate)
	send(t, wsA, "associateUser", 0, "alice")
	send(t, wsA, "lockSeat", 2, "alice")

	wsB := ts.dialWS(t)
	readSeatsUpdate(t, wsB, func(s []seat.View) bool { return s[1].Locked })

	wsA.Close()

	// B sees the lock evaporate with the dead connection.
	readSeatsUpdate(t, wsB, func(s []seat.View) bool { return !s[1].Locked })

	// No bookings, so the name frees up for reuse.
	require.Eventually(t, func() bool { return ts.sessions.Count() == 0 },
		2*time.Second, 10*time.Millisecond)
}

func TestWSDisconnectKeepsBookingAndName(t *testing.T) {
	ts := newTestServer(t, 10, time.Minute)
	require.Equal(t, 200, ts.login(t, "alice").StatusCode)

	wsA := ts.dialWS(t)
	readEvent(t, wsA, EventSeatsUpdate)
	send(t, wsA, "associateUser", 0, "alice")
	send(t, wsA, "bookSeat", 5, "alice")
	readEvent(t, wsA, EventBookingSuccess)

	wsA.Close()

	// The booking and the session both survive the disconnect.
	assert.Never(t, func() bool { return ts.sessions.Count() == 0 },
		200*time.Millisecond, 20*time.Millisecond)
	assert.True(t, ts.store.Snapshot()[4].Booked)
	assert.True(t, ts.store.BookedBy("alice"))
}

func TestWSLockExpiryBroadcasts(t *testing.T) {
	ts := newTestServer(t, 10, 50*time.Millisecond)
	ws := ts.dialWS(t)
	readEvent(t, ws, EventSeatsUpdate)

	send(t, ws, "lockSeat", 1, "alice")
	readSeatsUpdate(t, ws, func(s []seat.View) bool { return s[0].Locked })

	// The expiry shows up as its own broadcast, no client action needed.
	seats := readSeatsUpdate(t, ws, func(s []seat.View) bool { return !s[0].Locked })
	assert.Nil(t, seats[0].User)
}

func TestWSRejectsGarbage(t *testing.T) {
	ts := newTestServer(t, 10, time.Minute)
	ws := ts.dialWS(t)
	readEvent(t, ws, EventSeatsUpdate)

	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte("not json")))
	var errPayload struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(readEvent(t, ws, EventError), &errPayload))
	assert.Equal(t, "invalid JSON", errPayload.Message)

	send(t, ws, "teleportSeat", 1, "alice")
	require.NoError(t, json.Unmarshal(readEvent(t, ws, EventError), &errPayload))
	assert.Equal(t, "unknown message type", errPayload.Message)
}
