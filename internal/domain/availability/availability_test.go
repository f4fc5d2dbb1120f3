package availability_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bookingengine/internal/domain/availability"
	"bookingengine/internal/domain/reservation"
	"bookingengine/internal/domain/shared/daterange"
	"bookingengine/internal/domain/shared/money"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func stay(t *testing.T, in, out time.Time) daterange.StayInterval {
	t.Helper()
	si, err := daterange.New(in, out)
	require.NoError(t, err)
	return si
}

func testReservation(t *testing.T, id string, in, out time.Time) *reservation.Reservation {
	t.Helper()
	r, err := reservation.NewReservation(reservation.CreateParams{
		ID:          reservation.ReservationID(id),
		RoomID:      "room-1",
		GuestID:     "guest-1",
		Stay:        stay(t, in, out),
		QuotedTotal: money.Must(20000, "EUR"),
		CreatedAt:   time.Now(),
	})
	require.NoError(t, err)
	return r
}

func TestIsAvailable_OverlapBlocks(t *testing.T) {
	existing := []*reservation.Reservation{
		testReservation(t, "r1", date(2026, 7, 10), date(2026, 7, 15)),
	}

	require.False(t, availability.IsAvailable(stay(t, date(2026, 7, 12), date(2026, 7, 14)), existing))
	require.False(t, availability.IsAvailable(stay(t, date(2026, 7, 14), date(2026, 7, 18)), existing))
	require.True(t, availability.IsAvailable(stay(t, date(2026, 7, 20), date(2026, 7, 22)), existing))
}

func TestIsAvailable_BackToBackStays(t *testing.T) {
	existing := []*reservation.Reservation{
		testReservation(t, "r1", date(2026, 7, 10), date(2026, 7, 15)),
	}

	// arrival on the previous guest's checkout day is fine
	require.True(t, availability.IsAvailable(stay(t, date(2026, 7, 15), date(2026, 7, 18)), existing))
	require.True(t, availability.IsAvailable(stay(t, date(2026, 7, 7), date(2026, 7, 10)), existing))
}

func TestIsAvailable_OnlyBlockingStatusesOccupy(t *testing.T) {
	pending := testReservation(t, "r1", date(2026, 7, 10), date(2026, 7, 15))

	confirmed := testReservation(t, "r2", date(2026, 7, 10), date(2026, 7, 15))
	require.NoError(t, confirmed.Confirm(time.Now()))

	cancelled := testReservation(t, "r3", date(2026, 7, 10), date(2026, 7, 15))
	require.NoError(t, cancelled.Cancel("guest request", time.Now()))

	completed := testReservation(t, "r4", date(2026, 7, 10), date(2026, 7, 15))
	require.NoError(t, completed.Confirm(time.Now()))
	require.NoError(t, completed.Complete(time.Now()))

	candidate := stay(t, date(2026, 7, 12), date(2026, 7, 14))

	require.False(t, availability.IsAvailable(candidate, []*reservation.Reservation{pending}))
	require.False(t, availability.IsAvailable(candidate, []*reservation.Reservation{confirmed}))
	require.True(t, availability.IsAvailable(candidate, []*reservation.Reservation{cancelled}))
	require.True(t, availability.IsAvailable(candidate, []*reservation.Reservation{completed}))
}

func TestConflicts_ReturnsBlockingOverlapsOnly(t *testing.T) {
	blocking := testReservation(t, "r1", date(2026, 7, 10), date(2026, 7, 15))
	released := testReservation(t, "r2", date(2026, 7, 11), date(2026, 7, 13))
	require.NoError(t, released.Cancel("no-show", time.Now()))
	elsewhere := testReservation(t, "r3", date(2026, 8, 1), date(2026, 8, 5))

	conflicts := availability.Conflicts(stay(t, date(2026, 7, 12), date(2026, 7, 14)), []*reservation.Reservation{blocking, released, elsewhere, nil})
	require.Len(t, conflicts, 1)
	require.Equal(t, reservation.ReservationID("r1"), conflicts[0].ID)
}

func TestConflictsExcluding_IgnoresTheMovingReservation(t *testing.T) {
	moving := testReservation(t, "r1", date(2026, 7, 10), date(2026, 7, 15))
	other := testReservation(t, "r2", date(2026, 7, 20), date(2026, 7, 22))
	existing := []*reservation.Reservation{moving, other}

	// shifting r1 over its own old nights conflicts only with itself
	shifted := stay(t, date(2026, 7, 12), date(2026, 7, 17))
	require.Len(t, availability.Conflicts(shifted, existing), 1)
	require.Empty(t, availability.ConflictsExcluding(shifted, existing, "r1"))

	// other reservations still block
	onto := stay(t, date(2026, 7, 19), date(2026, 7, 21))
	conflicts := availability.ConflictsExcluding(onto, existing, "r1")
	require.Len(t, conflicts, 1)
	require.Equal(t, reservation.ReservationID("r2"), conflicts[0].ID)
}
