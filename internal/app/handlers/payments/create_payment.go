package payments

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"bookingengine/internal/app/commands"
	"bookingengine/internal/app/middleware"
	"bookingengine/internal/app/outbox"
	"bookingengine/internal/app/uow"
	domainpayment "bookingengine/internal/domain/payment"
	domainreservation "bookingengine/internal/domain/reservation"
	"bookingengine/internal/domain/shared/money"
)

const createPaymentKey = "payments.create"

var ErrUnitOfWorkNeeded = errors.New("payments: unit of work required")

// CreatePaymentCommand opens a payment against an existing reservation.
// When AmountCents is zero the reservation's quoted total is charged.
type CreatePaymentCommand struct {
	PaymentID       string
	ReservationID   string
	AmountCents     int64
	Currency        string
	Method          string
	IdempotencyKeyV string
}

func (c CreatePaymentCommand) Key() string { return createPaymentKey }

func (c CreatePaymentCommand) IdempotencyKey() string { return c.IdempotencyKeyV }

func (c CreatePaymentCommand) ResultPrototype() any { return &CreatePaymentResult{} }

type CreatePaymentResult struct {
	PaymentID   string `json:"payment_id"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
	Status      string `json:"status"`
}

type CreatePaymentHandler struct {
	UoWFactory uow.UoWFactory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
}

func (h *CreatePaymentHandler) Handle(ctx context.Context, cmd CreatePaymentCommand) (*CreatePaymentResult, error) {
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

	res, err := unit.Reservations().ByID(ctx, domainreservation.ReservationID(cmd.ReservationID))
	if err != nil {
		return nil, err
	}

	amount := res.QuotedTotal
	if cmd.AmountCents != 0 {
		amount, err = money.New(cmd.AmountCents, cmd.Currency)
		if err != nil {
			return nil, err
		}
	}

	id := cmd.PaymentID
	if id == "" {
		id = uuid.NewString()
	}
	pay, err := domainpayment.NewPayment(domainpayment.CreateParams{
		ID:            domainpayment.PaymentID(id),
		ReservationID: res.ID,
		Amount:        amount,
		Method:        cmd.Method,
		CreatedAt:     time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	if err := unit.Payments().Save(ctx, pay); err != nil {
		return nil, err
	}

	pending := pay.PendingEvents()
	pay.ClearEvents()
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
	return &CreatePaymentResult{
		PaymentID:   string(pay.ID),
		AmountCents: pay.Amount.Amount,
		Currency:    pay.Amount.Currency,
		Status:      string(pay.Status),
	}, nil
}

var _ commands.Handler[CreatePaymentCommand, *CreatePaymentResult] = (*CreatePaymentHandler)(nil)
var _ middleware.IdempotentCommand = (*CreatePaymentCommand)(nil)
