package dto

import (
	"time"

	"bookingengine/internal/domain/payment"
)

type Payment struct {
	ID            string    `json:"id"`
	ReservationID string    `json:"reservation_id"`
	AmountCents   int64     `json:"amount_cents"`
	Currency      string    `json:"currency"`
	Method        string    `json:"method"`
	Status        string    `json:"status"`
	PaidAt        time.Time `json:"paid_at"`
	CreatedAt     time.Time `json:"created_at"`
}

func MapPayment(p *payment.Payment) Payment {
	if p == nil {
		return Payment{}
	}
	return Payment{
		ID:            string(p.ID),
		ReservationID: string(p.ReservationID),
		AmountCents:   p.Amount.Amount,
		Currency:      p.Amount.Currency,
		Method:        p.Method,
		Status:        string(p.Status),
		PaidAt:        p.PaidAt,
		CreatedAt:     p.CreatedAt,
	}
}

func MapPayments(items []*payment.Payment) []Payment {
	out := make([]Payment, 0, len(items))
	for _, p := range items {
		out = append(out, MapPayment(p))
	}
	return out
}

type Revenue struct {
	TotalCents int64  `json:"total_cents"`
	Currency   string `json:"currency"`
	Payments   int    `json:"payments"`
}
