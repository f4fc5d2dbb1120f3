package availability_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bookingengine/internal/app/handlers/availability"
	domainreservation "bookingengine/internal/domain/reservation"
	domainrooms "bookingengine/internal/domain/rooms"
	"bookingengine/internal/domain/shared/daterange"
	"bookingengine/internal/domain/shared/money"
	"bookingengine/internal/infra/storage/memory"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seededFactory(t *testing.T) memory.Factory {
	t.Helper()
	factory := memory.NewFactory()

	room, err := domainrooms.NewRoom(domainrooms.CreateParams{
		ID:          "room-1",
		Number:      "101",
		Category:    domainrooms.CategoryDouble,
		BaseNightly: money.Must(10000, "EUR"),
		Capacity:    2,
		Now:         time.Now(),
	})
	require.NoError(t, err)
	room.ClearEvents()
	require.NoError(t, factory.RoomsRepo.Save(context.Background(), room))

	stay, err := daterange.New(date(2026, 7, 10), date(2026, 7, 15))
	require.NoError(t, err)
	res, err := domainreservation.NewReservation(domainreservation.CreateParams{
		ID:          "res-1",
		RoomID:      "room-1",
		GuestID:     "guest-1",
		Stay:        stay,
		QuotedTotal: money.Must(50000, "EUR"),
		CreatedAt:   time.Now(),
	})
	require.NoError(t, err)
	res.ClearEvents()
	require.NoError(t, factory.ReservationsRepo.Save(context.Background(), res))

	return factory
}

func TestCheckAvailability_ReportsConflicts(t *testing.T) {
	handler := &availability.CheckAvailabilityHandler{UoWFactory: seededFactory(t)}

	out, err := handler.Handle(context.Background(), availability.CheckAvailabilityQuery{
		RoomID:   "room-1",
		CheckIn:  date(2026, 7, 12),
		CheckOut: date(2026, 7, 14),
	})
	require.NoError(t, err)
	require.False(t, out.Available)
	require.Len(t, out.Conflicts, 1)
	require.Equal(t, "res-1", out.Conflicts[0].ReservationID)
	require.Equal(t, string(domainreservation.StatusPending), out.Conflicts[0].Status)
}

func TestCheckAvailability_FreeDates(t *testing.T) {
	handler := &availability.CheckAvailabilityHandler{UoWFactory: seededFactory(t)}

	out, err := handler.Handle(context.Background(), availability.CheckAvailabilityQuery{
		RoomID:   "room-1",
		CheckIn:  date(2026, 7, 15),
		CheckOut: date(2026, 7, 18),
	})
	require.NoError(t, err)
	require.True(t, out.Available)
	require.Empty(t, out.Conflicts)
}

func TestCheckAvailability_UnknownRoomAndBadInterval(t *testing.T) {
	handler := &availability.CheckAvailabilityHandler{UoWFactory: seededFactory(t)}

	_, err := handler.Handle(context.Background(), availability.CheckAvailabilityQuery{
		RoomID:   "missing",
		CheckIn:  date(2026, 7, 12),
		CheckOut: date(2026, 7, 14),
	})
	require.ErrorIs(t, err, domainrooms.ErrRoomNotFound)

	_, err = handler.Handle(context.Background(), availability.CheckAvailabilityQuery{
		RoomID:   "room-1",
		CheckIn:  date(2026, 7, 14),
		CheckOut: date(2026, 7, 12),
	})
	require.ErrorIs(t, err, daterange.ErrInvalidInterval)
}
