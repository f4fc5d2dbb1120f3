package pricing

import (
	"context"
	"errors"
	"math"
	"time"

	"bookingengine/internal/domain/rooms"
	"bookingengine/internal/domain/seasons"
	"bookingengine/internal/domain/shared/daterange"
	"bookingengine/internal/domain/shared/money"
)

var (
	ErrInvalidInterval = errors.New("pricing: stay must cover at least one night")
	ErrInvalidInput    = errors.New("pricing: room and seasons are required")
)

// PricedNight is a single line item of a quote: one occupied calendar date,
// the season that priced it (empty when the base rate applied) and the
// nightly price after the coefficient.
type PricedNight struct {
	Date        time.Time
	SeasonName  string
	Coefficient float64
	Price       money.Money
}

// PriceQuote is the night-by-night breakdown for a stay. Total is the exact
// sum of the already-rounded nightly prices, so it always matches the line
// items shown to the guest.
type PriceQuote struct {
	RoomID         rooms.RoomID
	Stay           daterange.StayInterval
	Nights         int
	BaseNightly    money.Money
	AvgCoefficient float64
	PricedNights   []PricedNight
	Total          money.Money
}

// Calculator is the pricing port consumed by the booking workflow.
type Calculator interface {
	ComputeQuote(ctx context.Context, room *rooms.Room, stay daterange.StayInterval, catalog []*seasons.Season) (PriceQuote, error)
}

// SeasonalCalculator prices each night of a stay by applying the applicable
// season's coefficient to the room's base nightly price. It holds no state
// and may be shared freely across goroutines.
type SeasonalCalculator struct{}

func (SeasonalCalculator) ComputeQuote(ctx context.Context, room *rooms.Room, stay daterange.StayInterval, catalog []*seasons.Season) (PriceQuote, error) {
	if room == nil {
		return PriceQuote{}, ErrInvalidInput
	}
	if room.BaseNightly.Amount <= 0 || room.BaseNightly.Currency == "" {
		return PriceQuote{}, ErrInvalidInput
	}
	if err := stay.Validate(); err != nil {
		return PriceQuote{}, ErrInvalidInterval
	}
	nights := stay.Nights()
	if nights < 1 {
		return PriceQuote{}, ErrInvalidInterval
	}
	for _, s := range catalog {
		if s == nil || s.Coefficient <= 0 {
			return PriceQuote{}, ErrInvalidInput
		}
	}

	quote := PriceQuote{
		RoomID:       room.ID,
		Stay:         stay,
		Nights:       nights,
		BaseNightly:  room.BaseNightly,
		PricedNights: make([]PricedNight, 0, nights),
		Total:        money.Money{Currency: room.BaseNightly.Currency},
	}

	coeffSum := 0.0
	var computeErr error
	stay.EachNight(func(d time.Time) {
		if computeErr != nil {
			return
		}
		coefficient := 1.0
		seasonName := ""
		if season := seasons.ForDate(catalog, d); season != nil {
			coefficient = season.Coefficient
			seasonName = season.Name
		}
		price, err := room.BaseNightly.Scale(coefficient)
		if err != nil {
			computeErr = err
			return
		}
		total, err := quote.Total.Add(price)
		if err != nil {
			computeErr = err
			return
		}
		quote.Total = total
		coeffSum += coefficient
		quote.PricedNights = append(quote.PricedNights, PricedNight{
			Date:        d,
			SeasonName:  seasonName,
			Coefficient: coefficient,
			Price:       price,
		})
	})
	if computeErr != nil {
		return PriceQuote{}, computeErr
	}

	quote.AvgCoefficient = roundCoefficient(coeffSum / float64(nights))
	return quote, nil
}

// roundCoefficient keeps the reported average at two decimals, matching the
// precision of the nightly coefficients shown to guests.
func roundCoefficient(c float64) float64 {
	return math.Round(c*100) / 100
}

var _ Calculator = SeasonalCalculator{}
