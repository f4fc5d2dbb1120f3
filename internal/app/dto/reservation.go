package dto

import (
	"time"

	"bookingengine/internal/domain/reservation"
)

type Reservation struct {
	ID               string    `json:"id"`
	RoomID           string    `json:"room_id"`
	GuestID          string    `json:"guest_id"`
	CheckIn          time.Time `json:"check_in"`
	CheckOut         time.Time `json:"check_out"`
	Nights           int       `json:"nights"`
	Status           string    `json:"status"`
	QuotedTotalCents int64     `json:"quoted_total_cents"`
	Currency         string    `json:"currency"`
	CreatedAt        time.Time `json:"created_at"`
	CancelledAt      time.Time `json:"cancelled_at"`
}

func MapReservation(r *reservation.Reservation) Reservation {
	if r == nil {
		return Reservation{}
	}
	return Reservation{
		ID:               string(r.ID),
		RoomID:           string(r.RoomID),
		GuestID:          r.GuestID,
		CheckIn:          r.Stay.CheckIn,
		CheckOut:         r.Stay.CheckOut,
		Nights:           r.Stay.Nights(),
		Status:           string(r.Status),
		QuotedTotalCents: r.QuotedTotal.Amount,
		Currency:         r.QuotedTotal.Currency,
		CreatedAt:        r.CreatedAt,
		CancelledAt:      r.CancelledAt,
	}
}

func MapReservations(items []*reservation.Reservation) []Reservation {
	out := make([]Reservation, 0, len(items))
	for _, r := range items {
		out = append(out, MapReservation(r))
	}
	return out
}
