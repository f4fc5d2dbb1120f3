package reservations

import (
	"context"
	"time"

	"bookingengine/internal/app/commands"
	"bookingengine/internal/app/outbox"
	"bookingengine/internal/app/uow"
	domainpayment "bookingengine/internal/domain/payment"
	domainreservation "bookingengine/internal/domain/reservation"
)

const cancelReservationKey = "reservations.cancel"

// CancelReservationCommand cancels a reservation and voids any payment
// that is still pending for it. Settled payments are left untouched.
type CancelReservationCommand struct {
	ReservationID string
	Reason        string
}

func (c CancelReservationCommand) Key() string { return cancelReservationKey }

type CancelReservationHandler struct {
	UoWFactory uow.UoWFactory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
}

func (h *CancelReservationHandler) Handle(ctx context.Context, cmd CancelReservationCommand) (struct{}, error) {
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

	now := time.Now().UTC()

	res, err := unit.Reservations().ByID(ctx, domainreservation.ReservationID(cmd.ReservationID))
	if err != nil {
		return struct{}{}, err
	}
	if err := res.Cancel(cmd.Reason, now); err != nil {
		return struct{}{}, err
	}
	if err := unit.Reservations().Save(ctx, res); err != nil {
		return struct{}{}, err
	}

	pending := res.PendingEvents()
	res.ClearEvents()

	pays, err := unit.Payments().ByReservation(ctx, res.ID)
	if err != nil {
		return struct{}{}, err
	}
	for _, p := range pays {
		if p.Status != domainpayment.StatusPending {
			continue
		}
		if err := p.ChangeStatus(domainpayment.StatusCancelled, now); err != nil {
			return struct{}{}, err
		}
		if err := unit.Payments().Save(ctx, p); err != nil {
			return struct{}{}, err
		}
		pending = append(pending, p.PendingEvents()...)
		p.ClearEvents()
	}

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

var _ commands.Handler[CancelReservationCommand, struct{}] = (*CancelReservationHandler)(nil)
