package payments_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bookingengine/internal/app/handlers/payments"
	domainpayment "bookingengine/internal/domain/payment"
	domainreservation "bookingengine/internal/domain/reservation"
	"bookingengine/internal/domain/shared/daterange"
	"bookingengine/internal/domain/shared/money"
	"bookingengine/internal/infra/storage/memory"
)

type fixture struct {
	factory memory.Factory
	outbox  *memory.Outbox
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	factory := memory.NewFactory()

	stay, err := daterange.New(
		time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC),
	)
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

	pay, err := domainpayment.NewPayment(domainpayment.CreateParams{
		ID:            "pay-1",
		ReservationID: "res-1",
		Amount:        money.Must(50000, "EUR"),
		Method:        "card",
		CreatedAt:     time.Now(),
	})
	require.NoError(t, err)
	pay.ClearEvents()
	require.NoError(t, factory.PaymentsRepo.Save(context.Background(), pay))

	return fixture{factory: factory, outbox: memory.NewOutbox()}
}

func (fx fixture) updateStatus(t *testing.T, paymentID, status string) error {
	t.Helper()
	handler := &payments.UpdatePaymentStatusHandler{UoWFactory: fx.factory, Outbox: fx.outbox}
	_, err := handler.Handle(context.Background(), payments.UpdatePaymentStatusCommand{
		PaymentID: paymentID,
		Status:    status,
	})
	return err
}

func TestUpdatePaymentStatus_ConfirmConfirmsReservation(t *testing.T) {
	fx := newFixture(t)

	require.NoError(t, fx.updateStatus(t, "pay-1", "confirmed"))

	pay, err := fx.factory.PaymentsRepo.ByID(context.Background(), "pay-1")
	require.NoError(t, err)
	require.Equal(t, domainpayment.StatusConfirmed, pay.Status)
	require.False(t, pay.PaidAt.IsZero())

	res, err := fx.factory.ReservationsRepo.ByID(context.Background(), "res-1")
	require.NoError(t, err)
	require.Equal(t, domainreservation.StatusConfirmed, res.Status)

	records := fx.outbox.Pending()
	require.Len(t, records, 2)
	require.Equal(t, "payment.status_changed", records[0].Name)
	require.Equal(t, "reservation.confirmed", records[1].Name)
}

func TestUpdatePaymentStatus_CancelCancelsReservation(t *testing.T) {
	fx := newFixture(t)

	require.NoError(t, fx.updateStatus(t, "pay-1", "cancelled"))

	res, err := fx.factory.ReservationsRepo.ByID(context.Background(), "res-1")
	require.NoError(t, err)
	require.Equal(t, domainreservation.StatusCancelled, res.Status)
}

func TestUpdatePaymentStatus_RefundAfterConfirmCancelsReservation(t *testing.T) {
	fx := newFixture(t)

	require.NoError(t, fx.updateStatus(t, "pay-1", "confirmed"))
	require.NoError(t, fx.updateStatus(t, "pay-1", "refunded"))

	pay, err := fx.factory.PaymentsRepo.ByID(context.Background(), "pay-1")
	require.NoError(t, err)
	require.Equal(t, domainpayment.StatusRefunded, pay.Status)

	res, err := fx.factory.ReservationsRepo.ByID(context.Background(), "res-1")
	require.NoError(t, err)
	require.Equal(t, domainreservation.StatusCancelled, res.Status)
}

func TestUpdatePaymentStatus_RefundToleratesCancelledReservation(t *testing.T) {
	fx := newFixture(t)

	require.NoError(t, fx.updateStatus(t, "pay-1", "confirmed"))

	res, err := fx.factory.ReservationsRepo.ByID(context.Background(), "res-1")
	require.NoError(t, err)
	require.NoError(t, res.Cancel("guest request", time.Now()))
	res.ClearEvents()
	require.NoError(t, fx.factory.ReservationsRepo.Save(context.Background(), res))

	require.NoError(t, fx.updateStatus(t, "pay-1", "refunded"))

	res, err = fx.factory.ReservationsRepo.ByID(context.Background(), "res-1")
	require.NoError(t, err)
	require.Equal(t, domainreservation.StatusCancelled, res.Status)
}

func TestUpdatePaymentStatus_RejectsUnknownStatusAndSettledPayments(t *testing.T) {
	fx := newFixture(t)

	require.ErrorIs(t, fx.updateStatus(t, "pay-1", "completed"), domainpayment.ErrInvalidStatus)

	require.NoError(t, fx.updateStatus(t, "pay-1", "cancelled"))
	require.ErrorIs(t, fx.updateStatus(t, "pay-1", "confirmed"), domainpayment.ErrAlreadySettled)
}

func TestCreatePayment_DefaultsToQuotedTotal(t *testing.T) {
	fx := newFixture(t)

	handler := &payments.CreatePaymentHandler{UoWFactory: fx.factory, Outbox: fx.outbox}
	res, err := handler.Handle(context.Background(), payments.CreatePaymentCommand{
		PaymentID:     "pay-2",
		ReservationID: "res-1",
		Method:        "cash",
	})
	require.NoError(t, err)

	pay, err := fx.factory.PaymentsRepo.ByID(context.Background(), domainpayment.PaymentID(res.PaymentID))
	require.NoError(t, err)
	require.Equal(t, int64(50000), pay.Amount.Amount)
	require.Equal(t, "cash", pay.Method)
	require.Equal(t, domainpayment.StatusPending, pay.Status)
}
