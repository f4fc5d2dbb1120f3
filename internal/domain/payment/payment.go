package payment

import (
	"context"
	"errors"
	"strings"
	"time"

	"bookingengine/internal/domain/reservation"
	"bookingengine/internal/domain/shared/events"
	"bookingengine/internal/domain/shared/money"
)

var (
	ErrNotFound       = errors.New("payment: not found")
	ErrInvalidAmount  = errors.New("payment: amount must be positive")
	ErrInvalidStatus  = errors.New("payment: unknown status")
	ErrAlreadySettled = errors.New("payment: status is final")
)

type PaymentID string

// Status of a payment. CONFIRMED is the authoritative "paid" status; there
// is no COMPLETED payment status.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusRefunded  Status = "REFUNDED"
)

const MethodUndefined = "UNDEFINED"

func ParseStatus(raw string) (Status, error) {
	switch Status(strings.ToUpper(strings.TrimSpace(raw))) {
	case StatusPending:
		return StatusPending, nil
	case StatusConfirmed:
		return StatusConfirmed, nil
	case StatusCancelled:
		return StatusCancelled, nil
	case StatusRefunded:
		return StatusRefunded, nil
	default:
		return "", ErrInvalidStatus
	}
}

type Payment struct {
	ID            PaymentID
	ReservationID reservation.ReservationID
	Amount        money.Money
	Method        string
	Status        Status
	PaidAt        time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id PaymentID) (*Payment, error)
	ByReservation(ctx context.Context, id reservation.ReservationID) ([]*Payment, error)
	ByStatus(ctx context.Context, status Status) ([]*Payment, error)
	All(ctx context.Context) ([]*Payment, error)
	Save(ctx context.Context, p *Payment) error
	Delete(ctx context.Context, id PaymentID) error
}

type CreateParams struct {
	ID            PaymentID
	ReservationID reservation.ReservationID
	Amount        money.Money
	Method        string
	CreatedAt     time.Time
}

func NewPayment(params CreateParams) (*Payment, error) {
	if params.Amount.Amount <= 0 || params.Amount.Currency == "" {
		return nil, ErrInvalidAmount
	}
	method := strings.TrimSpace(params.Method)
	if method == "" {
		method = MethodUndefined
	}
	now := params.CreatedAt.UTC()
	p := &Payment{
		ID:            params.ID,
		ReservationID: params.ReservationID,
		Amount:        params.Amount,
		Method:        method,
		Status:        StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	p.Record(PaymentCreated{
		PaymentID:     p.ID,
		ReservationID: p.ReservationID,
		Amount:        p.Amount,
		Method:        p.Method,
		At:            now,
	})
	return p, nil
}

// Reprice replaces the amount of a payment that has not settled or been
// confirmed yet, after the underlying reservation changed dates.
func (p *Payment) Reprice(amount money.Money, now time.Time) error {
	if p.Status != StatusPending {
		return ErrAlreadySettled
	}
	if amount.Amount <= 0 || amount.Currency == "" {
		return ErrInvalidAmount
	}
	p.Amount = amount
	p.UpdatedAt = now.UTC()
	return nil
}

// ChangeStatus moves the payment to a new status. Settled payments
// (cancelled or refunded) cannot change again; a confirmed payment can only
// still be refunded.
func (p *Payment) ChangeStatus(next Status, now time.Time) error {
	if _, err := ParseStatus(string(next)); err != nil {
		return err
	}
	if next == p.Status {
		return nil
	}
	switch p.Status {
	case StatusCancelled, StatusRefunded:
		return ErrAlreadySettled
	case StatusConfirmed:
		if next != StatusRefunded {
			return ErrAlreadySettled
		}
	}
	previous := p.Status
	p.Status = next
	p.UpdatedAt = now.UTC()
	if next == StatusConfirmed {
		p.PaidAt = p.UpdatedAt
	}
	p.Record(PaymentStatusChanged{
		PaymentID:     p.ID,
		ReservationID: p.ReservationID,
		From:          previous,
		To:            next,
		At:            p.UpdatedAt,
	})
	return nil
}
