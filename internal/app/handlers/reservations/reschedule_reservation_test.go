package reservations_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"bookingengine/internal/app/handlers/reservations"
	domainpayment "bookingengine/internal/domain/payment"
	domainreservation "bookingengine/internal/domain/reservation"
)

func TestRescheduleReservation_MovesStayAndReprices(t *testing.T) {
	fx := newFixture(t)

	created, err := fx.handler.Handle(context.Background(), reservations.CreateReservationCommand{
		CommandID: "res-1", RoomID: "room-1", GuestID: "guest-1",
		CheckIn: date(2026, 6, 10), CheckOut: date(2026, 6, 13),
	})
	require.NoError(t, err)
	require.Equal(t, int64(30000), created.TotalCents)

	reschedule := &reservations.RescheduleReservationHandler{UoWFactory: fx.factory, Outbox: fx.outbox}
	moved, err := reschedule.Handle(context.Background(), reservations.RescheduleReservationCommand{
		ReservationID: "res-1",
		CheckIn:       date(2026, 7, 10),
		CheckOut:      date(2026, 7, 13),
	})
	require.NoError(t, err)
	require.Equal(t, 3, moved.Nights)
	// three high season nights at 1.5
	require.Equal(t, int64(45000), moved.TotalCents)

	stored, err := fx.factory.ReservationsRepo.ByID(context.Background(), "res-1")
	require.NoError(t, err)
	require.Equal(t, date(2026, 7, 10), stored.Stay.CheckIn)
	require.Equal(t, int64(45000), stored.QuotedTotal.Amount)
	require.Empty(t, stored.PendingEvents())

	pay, err := fx.factory.PaymentsRepo.ByID(context.Background(), domainpayment.PaymentID(created.PaymentID))
	require.NoError(t, err)
	require.Equal(t, int64(45000), pay.Amount.Amount)

	records := fx.outbox.Pending()
	require.Equal(t, "reservation.rescheduled", records[len(records)-1].Name)
}

func TestRescheduleReservation_OverlappingItselfIsAllowed(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.handler.Handle(context.Background(), reservations.CreateReservationCommand{
		CommandID: "res-1", RoomID: "room-1", GuestID: "guest-1",
		CheckIn: date(2026, 7, 10), CheckOut: date(2026, 7, 15),
	})
	require.NoError(t, err)

	// shift by one day, still overlapping the old dates
	reschedule := &reservations.RescheduleReservationHandler{UoWFactory: fx.factory, Outbox: fx.outbox}
	_, err = reschedule.Handle(context.Background(), reservations.RescheduleReservationCommand{
		ReservationID: "res-1",
		CheckIn:       date(2026, 7, 11),
		CheckOut:      date(2026, 7, 16),
	})
	require.NoError(t, err)
}

func TestRescheduleReservation_RejectsTakenDates(t *testing.T) {
	fx := newFixture(t)

	for _, cmd := range []reservations.CreateReservationCommand{
		{CommandID: "res-1", RoomID: "room-1", GuestID: "guest-1", CheckIn: date(2026, 7, 10), CheckOut: date(2026, 7, 12)},
		{CommandID: "res-2", RoomID: "room-1", GuestID: "guest-2", CheckIn: date(2026, 7, 20), CheckOut: date(2026, 7, 22)},
	} {
		_, err := fx.handler.Handle(context.Background(), cmd)
		require.NoError(t, err)
	}

	reschedule := &reservations.RescheduleReservationHandler{UoWFactory: fx.factory, Outbox: fx.outbox}
	_, err := reschedule.Handle(context.Background(), reservations.RescheduleReservationCommand{
		ReservationID: "res-1",
		CheckIn:       date(2026, 7, 21),
		CheckOut:      date(2026, 7, 23),
	})
	require.ErrorIs(t, err, reservations.ErrRoomAlreadyBooked)
}

func TestRescheduleReservation_CancelledStaysPut(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.handler.Handle(context.Background(), reservations.CreateReservationCommand{
		CommandID: "res-1", RoomID: "room-1", GuestID: "guest-1",
		CheckIn: date(2026, 7, 10), CheckOut: date(2026, 7, 12),
	})
	require.NoError(t, err)

	cancel := &reservations.CancelReservationHandler{UoWFactory: fx.factory, Outbox: fx.outbox}
	_, err = cancel.Handle(context.Background(), reservations.CancelReservationCommand{
		ReservationID: "res-1", Reason: "guest request",
	})
	require.NoError(t, err)

	reschedule := &reservations.RescheduleReservationHandler{UoWFactory: fx.factory, Outbox: fx.outbox}
	_, err = reschedule.Handle(context.Background(), reservations.RescheduleReservationCommand{
		ReservationID: "res-1",
		CheckIn:       date(2026, 8, 1),
		CheckOut:      date(2026, 8, 3),
	})
	require.ErrorIs(t, err, domainreservation.ErrInvalidState)
}

func TestRescheduleReservation_UnknownReservation(t *testing.T) {
	fx := newFixture(t)
	reschedule := &reservations.RescheduleReservationHandler{UoWFactory: fx.factory, Outbox: fx.outbox}
	_, err := reschedule.Handle(context.Background(), reservations.RescheduleReservationCommand{
		ReservationID: "missing",
		CheckIn:       date(2026, 8, 1),
		CheckOut:      date(2026, 8, 3),
	})
	require.ErrorIs(t, err, domainreservation.ErrNotFound)
}
