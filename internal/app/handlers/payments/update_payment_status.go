package payments

import (
	"context"
	"strings"
	"time"

	"bookingengine/internal/app/commands"
	"bookingengine/internal/app/outbox"
	"bookingengine/internal/app/uow"
	domainpayment "bookingengine/internal/domain/payment"
	domainreservation "bookingengine/internal/domain/reservation"
)

const updatePaymentStatusKey = "payments.update_status"

// UpdatePaymentStatusCommand moves a payment through its lifecycle and
// keeps the owning reservation in step: a confirmed payment confirms the
// reservation, a cancelled or refunded one cancels it.
type UpdatePaymentStatusCommand struct {
	PaymentID string
	Status    string
}

func (c UpdatePaymentStatusCommand) Key() string { return updatePaymentStatusKey }

type UpdatePaymentStatusHandler struct {
	UoWFactory uow.UoWFactory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
}

func (h *UpdatePaymentStatusHandler) Handle(ctx context.Context, cmd UpdatePaymentStatusCommand) (struct{}, error) {
	unit, ok := uow.FromContext(ctx)
	managed := false
	committed := false
	if !ok {
		if h.UoWFactory == nil {
			return struct{}{}, ErrUnitOfWorkNeeded
		}
		var err error
		unit, err = h.UoWFactory.Begin(ctx, uow.TxOptions{})
		if err != nil {
			return struct{}{}, err
		}
		ctx = uow.ContextWithUnitOfWork(ctx, unit)
		managed = true
	}
	if managed {
		defer func() {
			if !committed {
				_ = unit.Rollback(ctx)
			}
		}()
	}

	target, err := domainpayment.ParseStatus(cmd.Status)
	if err != nil {
		return struct{}{}, err
	}
	now := time.Now().UTC()

	pay, err := unit.Payments().ByID(ctx, domainpayment.PaymentID(cmd.PaymentID))
	if err != nil {
		return struct{}{}, err
	}
	if err := pay.ChangeStatus(target, now); err != nil {
		return struct{}{}, err
	}
	if err := unit.Payments().Save(ctx, pay); err != nil {
		return struct{}{}, err
	}

	pending := pay.PendingEvents()
	pay.ClearEvents()

	res, err := unit.Reservations().ByID(ctx, pay.ReservationID)
	if err != nil {
		return struct{}{}, err
	}
	switch target {
	case domainpayment.StatusConfirmed:
		if err := res.Confirm(now); err != nil {
			return struct{}{}, err
		}
	case domainpayment.StatusCancelled, domainpayment.StatusRefunded:
		// A refund may arrive after the reservation was already cancelled.
		if res.Status != domainreservation.StatusCancelled {
			if err := res.Cancel("payment "+strings.ToLower(string(target)), now); err != nil {
				return struct{}{}, err
			}
		}
	}
	if err := unit.Reservations().Save(ctx, res); err != nil {
		return struct{}{}, err
	}
	pending = append(pending, res.PendingEvents()...)
	res.ClearEvents()

	enc := h.Encoder
	if enc == nil {
		enc = outbox.JSONEventEncoder{}
	}
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, enc, pending); err != nil {
		return struct{}{}, err
	}

	if managed {
		if err := unit.Commit(ctx); err != nil {
			return struct{}{}, err
		}
		committed = true
	}
	return struct{}{}, nil
}

var _ commands.Handler[UpdatePaymentStatusCommand, struct{}] = (*UpdatePaymentStatusHandler)(nil)
