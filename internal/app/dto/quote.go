package dto

import (
	"time"

	"bookingengine/internal/domain/pricing"
)

type PricedNight struct {
	Date        string  `json:"date"`
	Season      string  `json:"season,omitempty"`
	Coefficient float64 `json:"coefficient"`
	PriceCents  int64   `json:"price_cents"`
}

type PriceQuote struct {
	RoomID           string        `json:"room_id"`
	CheckIn          time.Time     `json:"check_in"`
	CheckOut         time.Time     `json:"check_out"`
	Nights           int           `json:"nights"`
	BaseNightlyCents int64         `json:"base_nightly_cents"`
	Currency         string        `json:"currency"`
	AvgCoefficient   float64       `json:"avg_coefficient"`
	PricedNights     []PricedNight `json:"priced_nights"`
	TotalCents       int64         `json:"total_cents"`
}

func MapPriceQuote(q pricing.PriceQuote) PriceQuote {
	nights := make([]PricedNight, 0, len(q.PricedNights))
	for _, n := range q.PricedNights {
		nights = append(nights, PricedNight{
			Date:        n.Date.Format("2006-01-02"),
			Season:      n.SeasonName,
			Coefficient: n.Coefficient,
			PriceCents:  n.Price.Amount,
		})
	}
	return PriceQuote{
		RoomID:           string(q.RoomID),
		CheckIn:          q.Stay.CheckIn,
		CheckOut:         q.Stay.CheckOut,
		Nights:           q.Nights,
		BaseNightlyCents: q.BaseNightly.Amount,
		Currency:         q.BaseNightly.Currency,
		AvgCoefficient:   q.AvgCoefficient,
		PricedNights:     nights,
		TotalCents:       q.Total.Amount,
	}
}
