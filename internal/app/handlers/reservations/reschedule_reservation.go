package reservations

import (
	"context"
	"time"

	"bookingengine/internal/app/commands"
	"bookingengine/internal/app/outbox"
	"bookingengine/internal/app/uow"
	domainavailability "bookingengine/internal/domain/availability"
	domainpayment "bookingengine/internal/domain/payment"
	domainpricing "bookingengine/internal/domain/pricing"
	domainreservation "bookingengine/internal/domain/reservation"
	domainrange "bookingengine/internal/domain/shared/daterange"
)

const rescheduleReservationKey = "reservations.reschedule"

// RescheduleReservationCommand moves a reservation to new dates. The new stay
// is re-checked for availability ignoring the reservation itself, repriced
// against the current season calendar, and any still-pending payment is
// adjusted to the new total.
type RescheduleReservationCommand struct {
	ReservationID string
	CheckIn       time.Time
	CheckOut      time.Time
}

func (c RescheduleReservationCommand) Key() string { return rescheduleReservationKey }

type RescheduleReservationResult struct {
	ReservationID string `json:"reservation_id"`
	Nights        int    `json:"nights"`
	TotalCents    int64  `json:"total_cents"`
	Currency      string `json:"currency"`
}

type RescheduleReservationHandler struct {
	UoWFactory uow.UoWFactory
	Calculator domainpricing.Calculator
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
}

func (h *RescheduleReservationHandler) Handle(ctx context.Context, cmd RescheduleReservationCommand) (*RescheduleReservationResult, error) {
	unit, ok := uow.FromContext(ctx)
	managed := false
	committed := false
	if !ok {
		if h.UoWFactory == nil {
			return nil, ErrUnitOfWorkNeeded
		}
		var err error
		unit, err = h.UoWFactory.Begin(ctx, uow.TxOptions{})
		if err != nil {
			return nil, err
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

	stay, err := domainrange.New(cmd.CheckIn, cmd.CheckOut)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()

	res, err := unit.Reservations().ByID(ctx, domainreservation.ReservationID(cmd.ReservationID))
	if err != nil {
		return nil, err
	}

	room, err := unit.Rooms().ByID(ctx, res.RoomID)
	if err != nil {
		return nil, err
	}

	existing, err := unit.Reservations().ByRoom(ctx, room.ID)
	if err != nil {
		return nil, err
	}
	if len(domainavailability.ConflictsExcluding(stay, existing, res.ID)) > 0 {
		return nil, ErrRoomAlreadyBooked
	}

	catalog, err := unit.Seasons().All(ctx)
	if err != nil {
		return nil, err
	}
	calc := h.Calculator
	if calc == nil {
		calc = domainpricing.SeasonalCalculator{}
	}
	quote, err := calc.ComputeQuote(ctx, room, stay, catalog)
	if err != nil {
		return nil, err
	}

	if err := res.Reschedule(stay, quote.Total, now); err != nil {
		return nil, err
	}
	if err := unit.Reservations().Save(ctx, res); err != nil {
		return nil, err
	}

	pending := res.PendingEvents()
	res.ClearEvents()

	pays, err := unit.Payments().ByReservation(ctx, res.ID)
	if err != nil {
		return nil, err
	}
	for _, p := range pays {
		if p.Status != domainpayment.StatusPending {
			continue
		}
		if err := p.Reprice(quote.Total, now); err != nil {
			return nil, err
		}
		if err := unit.Payments().Save(ctx, p); err != nil {
			return nil, err
		}
	}

	enc := h.Encoder
	if enc == nil {
		enc = outbox.JSONEventEncoder{}
	}
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, enc, pending); err != nil {
		return nil, err
	}

	if managed {
		if err := unit.Commit(ctx); err != nil {
			return nil, err
		}
		committed = true
	}

	return &RescheduleReservationResult{
		ReservationID: string(res.ID),
		Nights:        quote.Nights,
		TotalCents:    quote.Total.Amount,
		Currency:      quote.Total.Currency,
	}, nil
}

var _ commands.Handler[RescheduleReservationCommand, *RescheduleReservationResult] = (*RescheduleReservationHandler)(nil)
