package pricing_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bookingengine/internal/domain/pricing"
	"bookingengine/internal/domain/rooms"
	"bookingengine/internal/domain/seasons"
	"bookingengine/internal/domain/shared/daterange"
	"bookingengine/internal/domain/shared/money"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testRoom(t *testing.T, nightlyCents int64) *rooms.Room {
	t.Helper()
	room, err := rooms.NewRoom(rooms.CreateParams{
		ID:          "room-1",
		Number:      "101",
		Category:    rooms.CategoryDouble,
		BaseNightly: money.Must(nightlyCents, "EUR"),
		Capacity:    2,
		Now:         time.Now(),
	})
	require.NoError(t, err)
	return room
}

func testSeason(t *testing.T, id, name string, start, end time.Time, coefficient float64) *seasons.Season {
	t.Helper()
	s, err := seasons.NewSeason(seasons.CreateParams{
		ID:          seasons.SeasonID(id),
		Name:        name,
		Start:       start,
		End:         end,
		Coefficient: coefficient,
		Now:         time.Now(),
	})
	require.NoError(t, err)
	return s
}

func TestComputeQuote_MixedSeasonStay(t *testing.T) {
	// 100.00 base, high season at 1.5x starting July 1. A stay covering
	// June 29 .. July 3 has two base nights and three high-season nights.
	room := testRoom(t, 10000)
	high := testSeason(t, "high", "High season", date(2026, 7, 1), date(2026, 8, 31), 1.5)
	stay, err := daterange.New(date(2026, 6, 29), date(2026, 7, 4))
	require.NoError(t, err)

	quote, err := pricing.SeasonalCalculator{}.ComputeQuote(context.Background(), room, stay, []*seasons.Season{high})
	require.NoError(t, err)

	require.Equal(t, 5, quote.Nights)
	require.Len(t, quote.PricedNights, 5)
	require.Equal(t, int64(2*10000+3*15000), quote.Total.Amount)
	require.Equal(t, "EUR", quote.Total.Currency)
	require.Equal(t, 1.3, quote.AvgCoefficient) // (1+1+1.5+1.5+1.5)/5

	require.Equal(t, "", quote.PricedNights[0].SeasonName)
	require.Equal(t, int64(10000), quote.PricedNights[0].Price.Amount)
	require.Equal(t, "High season", quote.PricedNights[2].SeasonName)
	require.Equal(t, 1.5, quote.PricedNights[2].Coefficient)
	require.Equal(t, int64(15000), quote.PricedNights[2].Price.Amount)
}

func TestComputeQuote_TotalIsSumOfRoundedNights(t *testing.T) {
	// 33.33 base at 0.5: each night rounds to 16.67, so three nights are
	// 50.01 rather than round(3 * 16.665) = 50.00.
	room := testRoom(t, 3333)
	low := testSeason(t, "low", "Low", date(2026, 1, 1), date(2026, 12, 31), 0.5)
	stay, err := daterange.New(date(2026, 3, 1), date(2026, 3, 4))
	require.NoError(t, err)

	quote, err := pricing.SeasonalCalculator{}.ComputeQuote(context.Background(), room, stay, []*seasons.Season{low})
	require.NoError(t, err)
	require.Equal(t, int64(3*1667), quote.Total.Amount)
	for _, night := range quote.PricedNights {
		require.Equal(t, int64(1667), night.Price.Amount)
	}
}

func TestComputeQuote_OverlappingSeasonsUseHighestCoefficient(t *testing.T) {
	room := testRoom(t, 10000)
	year := testSeason(t, "year", "Year round", date(2026, 1, 1), date(2026, 12, 31), 0.9)
	peak := testSeason(t, "peak", "Peak", date(2026, 7, 10), date(2026, 7, 20), 1.8)
	stay, err := daterange.New(date(2026, 7, 9), date(2026, 7, 11))
	require.NoError(t, err)

	quote, err := pricing.SeasonalCalculator{}.ComputeQuote(context.Background(), room, stay, []*seasons.Season{year, peak})
	require.NoError(t, err)
	require.Equal(t, "Year round", quote.PricedNights[0].SeasonName)
	require.Equal(t, int64(9000), quote.PricedNights[0].Price.Amount)
	require.Equal(t, "Peak", quote.PricedNights[1].SeasonName)
	require.Equal(t, int64(18000), quote.PricedNights[1].Price.Amount)
}

func TestComputeQuote_NoSeasonsUsesBaseRate(t *testing.T) {
	room := testRoom(t, 12345)
	stay, err := daterange.New(date(2026, 2, 1), date(2026, 2, 3))
	require.NoError(t, err)

	quote, err := pricing.SeasonalCalculator{}.ComputeQuote(context.Background(), room, stay, nil)
	require.NoError(t, err)
	require.Equal(t, int64(2*12345), quote.Total.Amount)
	require.Equal(t, 1.0, quote.AvgCoefficient)
	for _, night := range quote.PricedNights {
		require.Equal(t, 1.0, night.Coefficient)
		require.Equal(t, "", night.SeasonName)
	}
}

func TestComputeQuote_InvalidInput(t *testing.T) {
	room := testRoom(t, 10000)
	stay, err := daterange.New(date(2026, 2, 1), date(2026, 2, 3))
	require.NoError(t, err)

	_, err = pricing.SeasonalCalculator{}.ComputeQuote(context.Background(), nil, stay, nil)
	require.ErrorIs(t, err, pricing.ErrInvalidInput)

	_, err = pricing.SeasonalCalculator{}.ComputeQuote(context.Background(), room, daterange.StayInterval{}, nil)
	require.ErrorIs(t, err, pricing.ErrInvalidInterval)

	broken := &seasons.Season{ID: "bad", Name: "Bad", Start: date(2026, 1, 1), End: date(2026, 12, 31)}
	_, err = pricing.SeasonalCalculator{}.ComputeQuote(context.Background(), room, stay, []*seasons.Season{broken})
	require.ErrorIs(t, err, pricing.ErrInvalidInput)
}
