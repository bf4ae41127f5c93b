package seat

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Full lifecycle of one seat across two users and a reconnect, end to end
// against the engine contracts.
func TestSeatLifecycleAcrossReconnect(t *testing.T) {
	store, locks, bookings, log := newTestRig(50, time.Minute)

	// A selects seat 7.
	require.NoError(t, locks.Acquire(7, "conn-a", "A"))
	v := log.last()[6]
	assert.True(t, v.Locked)
	assert.Equal(t, "A", userOf(v))

	// B cannot book it out from under A.
	require.ErrorIs(t, bookings.Book(7, "conn-b", "B"), ErrLockedByOther)
	assert.Equal(t, 1, log.count())

	// A books it.
	require.NoError(t, bookings.Book(7, "conn-a", "A"))
	v = log.last()[6]
	assert.True(t, v.Booked)
	assert.Equal(t, "A", userOf(v))

	// A's connection drops; the lock sweep spares the booking.
	locks.ReleaseAllForConnection("conn-a")
	assert.True(t, store.Snapshot()[6].Booked)
	assert.True(t, store.BookedBy("A"))

	// A releases from a fresh connection, identified by name.
	require.NoError(t, bookings.ReleaseBooking(7, "A"))
	v = store.Snapshot()[6]
	assert.False(t, v.Booked)
	assert.False(t, v.Locked)
	assert.Equal(t, "", userOf(v))
}

// Random operation sequences must never produce a state where a seat is
// booked without an owner, or locked without one. Visible lock ownership is
// checked indirectly: a locked-not-booked seat always carries a user.
func TestRandomOperationSequenceInvariants(t *testing.T) {
	const ops = 2000

	store, locks, bookings, _ := newTestRig(10, time.Minute)
	rng := rand.New(rand.NewSource(1))

	conns := make([]string, 5)
	names := make([]string, 5)
	for i := range conns {
		conns[i] = fmt.Sprintf("conn-%d", i)
		names[i] = faker.FirstName() + fmt.Sprintf("-%d", i)
	}

	for i := 0; i < ops; i++ {
		seatID := rng.Intn(12) // includes out-of-range ids on purpose
		c := rng.Intn(len(conns))

		switch rng.Intn(5) {
		case 0:
			_ = locks.Acquire(seatID, conns[c], names[c])
		case 1:
			_ = locks.Release(seatID, conns[c])
		case 2:
			_ = bookings.Book(seatID, conns[c], names[c])
		case 3:
			_ = bookings.ReleaseBooking(seatID, names[c])
		case 4:
			locks.ReleaseAllForConnection(conns[c])
		}

		for _, v := range store.Snapshot() {
			if v.Booked {
				require.NotNil(t, v.User, "op %d: booked seat %d without owner", i, v.ID)
			}
			if v.Locked && !v.Booked {
				require.NotNil(t, v.User, "op %d: locked seat %d without user", i, v.ID)
			}
		}
	}
}

func TestSnapshotIsOrderedAndComplete(t *testing.T) {
	store := NewStore(50)
	snap := store.Snapshot()
	require.Len(t, snap, 50)
	for i, v := range snap {
		assert.Equal(t, i+1, v.ID)
		assert.False(t, v.Booked)
		assert.False(t, v.Locked)
		assert.Nil(t, v.User)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	store, locks, _, _ := newTestRig(3, time.Minute)
	snap := store.Snapshot()

	require.NoError(t, locks.Acquire(1, "conn-a", "alice"))
	assert.False(t, snap[0].Locked, "an earlier snapshot must not observe later mutations")
}
