package reservation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bookingengine/internal/domain/reservation"
	"bookingengine/internal/domain/shared/daterange"
	"bookingengine/internal/domain/shared/money"
)

func newPending(t *testing.T) *reservation.Reservation {
	t.Helper()
	stay, err := daterange.New(
		time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	r, err := reservation.NewReservation(reservation.CreateParams{
		ID:          "res-1",
		RoomID:      "room-1",
		GuestID:     "guest-1",
		Stay:        stay,
		QuotedTotal: money.Must(50000, "EUR"),
		CreatedAt:   time.Now(),
	})
	require.NoError(t, err)
	return r
}

func TestNewReservation_StartsPendingWithEvent(t *testing.T) {
	r := newPending(t)
	require.Equal(t, reservation.StatusPending, r.Status)
	require.True(t, r.Status.Blocks())
	require.Equal(t, int64(50000), r.QuotedTotal.Amount)
	require.Len(t, r.PendingEvents(), 1)
}

func TestNewReservation_RequiresGuest(t *testing.T) {
	stay, err := daterange.New(
		time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	_, err = reservation.NewReservation(reservation.CreateParams{
		ID: "res-1", RoomID: "room-1", Stay: stay, CreatedAt: time.Now(),
	})
	require.ErrorIs(t, err, reservation.ErrGuestRequired)
}

func TestLifecycle_PendingConfirmComplete(t *testing.T) {
	r := newPending(t)
	now := time.Now()

	require.NoError(t, r.Confirm(now))
	require.Equal(t, reservation.StatusConfirmed, r.Status)
	require.True(t, r.Status.Blocks())

	require.NoError(t, r.Complete(now))
	require.Equal(t, reservation.StatusCompleted, r.Status)
	require.False(t, r.Status.Blocks())

	require.ErrorIs(t, r.Confirm(now), reservation.ErrInvalidState)
	require.ErrorIs(t, r.Cancel("late", now), reservation.ErrInvalidState)
}

func TestCancel_FromPendingAndConfirmed(t *testing.T) {
	now := time.Now()

	pending := newPending(t)
	require.NoError(t, pending.Cancel("guest request", now))
	require.Equal(t, reservation.StatusCancelled, pending.Status)
	require.False(t, pending.Status.Blocks())
	require.False(t, pending.CancelledAt.IsZero())

	confirmed := newPending(t)
	require.NoError(t, confirmed.Confirm(now))
	require.NoError(t, confirmed.Cancel("payment refunded", now))
	require.Equal(t, reservation.StatusCancelled, confirmed.Status)

	require.ErrorIs(t, confirmed.Cancel("again", now), reservation.ErrInvalidState)
}

func TestComplete_RequiresConfirmed(t *testing.T) {
	r := newPending(t)
	require.ErrorIs(t, r.Complete(time.Now()), reservation.ErrInvalidState)
}

func TestReschedule_ReplacesStayWhileBlocking(t *testing.T) {
	r := newPending(t)
	r.ClearEvents()
	newStay, err := daterange.New(
		time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 4, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)

	require.NoError(t, r.Reschedule(newStay, money.Must(30000, "EUR"), time.Now()))
	require.Equal(t, newStay, r.Stay)
	require.Equal(t, int64(30000), r.QuotedTotal.Amount)

	events := r.PendingEvents()
	require.Len(t, events, 1)
	require.Equal(t, "reservation.rescheduled", events[0].EventName())

	require.NoError(t, r.Cancel("moved hotels", time.Now()))
	require.ErrorIs(t, r.Reschedule(newStay, money.Must(30000, "EUR"), time.Now()), reservation.ErrInvalidState)
}
