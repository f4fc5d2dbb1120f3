package reservations

import (
	"context"
	"errors"
	"time"

	"bookingengine/internal/app/commands"
	"bookingengine/internal/app/middleware"
	"bookingengine/internal/app/outbox"
	"bookingengine/internal/app/uow"
	domainavailability "bookingengine/internal/domain/availability"
	domainpayment "bookingengine/internal/domain/payment"
	domainpricing "bookingengine/internal/domain/pricing"
	domainreservation "bookingengine/internal/domain/reservation"
	domainrooms "bookingengine/internal/domain/rooms"
	domainrange "bookingengine/internal/domain/shared/daterange"
)

const createReservationKey = "reservations.create"

var (
	ErrRoomOutOfService  = errors.New("reservations: room is not open for booking")
	ErrRoomAlreadyBooked = errors.New("reservations: room is already reserved for the selected dates")
	ErrUnitOfWorkNeeded  = errors.New("reservations: unit of work required")
)

// CreateReservationCommand books a room for a stay. The quote is computed
// and stamped on the reservation, and a pending payment for the quoted
// total is opened in the same transaction.
type CreateReservationCommand struct {
	CommandID       string
	RoomID          string
	GuestID         string
	CheckIn         time.Time
	CheckOut        time.Time
	PaymentMethod   string
	IdempotencyKeyV string
}

func (c CreateReservationCommand) Key() string { return createReservationKey }

func (c CreateReservationCommand) IdempotencyKey() string { return c.IdempotencyKeyV }

func (c CreateReservationCommand) ResultPrototype() any { return &CreateReservationResult{} }

type CreateReservationResult struct {
	ReservationID string `json:"reservation_id"`
	PaymentID     string `json:"payment_id"`
	TotalCents    int64  `json:"total_cents"`
	Currency      string `json:"currency"`
}

type CreateReservationHandler struct {
	UoWFactory uow.UoWFactory
	Calculator domainpricing.Calculator
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
	IDs        func() string
}

func (h *CreateReservationHandler) Handle(ctx context.Context, cmd CreateReservationCommand) (*CreateReservationResult, error) {
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

	room, err := unit.Rooms().ByID(ctx, domainrooms.RoomID(cmd.RoomID))
	if err != nil {
		return nil, err
	}
	if !room.Available {
		return nil, ErrRoomOutOfService
	}

	existing, err := unit.Reservations().ByRoom(ctx, room.ID)
	if err != nil {
		return nil, err
	}
	if !domainavailability.IsAvailable(stay, existing) {
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

	resID := cmd.CommandID
	if resID == "" {
		resID = h.newID()
	}
	res, err := domainreservation.NewReservation(domainreservation.CreateParams{
		ID:          domainreservation.ReservationID(resID),
		RoomID:      room.ID,
		GuestID:     cmd.GuestID,
		Stay:        stay,
		QuotedTotal: quote.Total,
		CreatedAt:   now,
	})
	if err != nil {
		return nil, err
	}
	if err := unit.Reservations().Save(ctx, res); err != nil {
		return nil, err
	}

	pay, err := domainpayment.NewPayment(domainpayment.CreateParams{
		ID:            domainpayment.PaymentID(h.newID()),
		ReservationID: res.ID,
		Amount:        quote.Total,
		Method:        cmd.PaymentMethod,
		CreatedAt:     now,
	})
	if err != nil {
		return nil, err
	}
	if err := unit.Payments().Save(ctx, pay); err != nil {
		return nil, err
	}

	pending := append(res.PendingEvents(), pay.PendingEvents()...)
	res.ClearEvents()
	pay.ClearEvents()
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.encoder(), pending); err != nil {
		return nil, err
	}

	if managed {
		if err := unit.Commit(ctx); err != nil {
			return nil, err
		}
		committed = true
	}

	return &CreateReservationResult{
		ReservationID: string(res.ID),
		PaymentID:     string(pay.ID),
		TotalCents:    quote.Total.Amount,
		Currency:      quote.Total.Currency,
	}, nil
}

func (h *CreateReservationHandler) encoder() outbox.EventEncoder {
	if h.Encoder != nil {
		return h.Encoder
	}
	return outbox.JSONEventEncoder{}
}

func (h *CreateReservationHandler) newID() string {
	if h.IDs != nil {
		return h.IDs()
	}
	return defaultID()
}

var _ commands.Handler[CreateReservationCommand, *CreateReservationResult] = (*CreateReservationHandler)(nil)
var _ middleware.IdempotentCommand = (*CreateReservationCommand)(nil)
