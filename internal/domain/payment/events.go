package payment

import (
	"time"

	"bookingengine/internal/domain/reservation"
	"bookingengine/internal/domain/shared/money"
)

type PaymentCreated struct {
	PaymentID     PaymentID
	ReservationID reservation.ReservationID
	Amount        money.Money
	Method        string
	At            time.Time
}

func (e PaymentCreated) EventName() string     { return "payment.created" }
func (e PaymentCreated) AggregateID() string   { return string(e.PaymentID) }
func (e PaymentCreated) OccurredAt() time.Time { return e.At }

type PaymentStatusChanged struct {
	PaymentID     PaymentID
	ReservationID reservation.ReservationID
	From          Status
	To            Status
	At            time.Time
}

func (e PaymentStatusChanged) EventName() string     { return "payment.status_changed" }
func (e PaymentStatusChanged) AggregateID() string   { return string(e.PaymentID) }
func (e PaymentStatusChanged) OccurredAt() time.Time { return e.At }
