package daterange_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bookingengine/internal/domain/shared/daterange"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNew_NormalizesToUTCMidnight(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	checkIn := time.Date(2026, time.July, 10, 15, 30, 0, 0, loc)
	checkOut := time.Date(2026, time.July, 12, 11, 0, 0, 0, loc)

	si, err := daterange.New(checkIn, checkOut)
	require.NoError(t, err)
	require.Equal(t, date(2026, time.July, 10), si.CheckIn)
	require.Equal(t, date(2026, time.July, 12), si.CheckOut)
	require.Equal(t, 2, si.Nights())
}

func TestNew_RejectsEmptyAndInvertedStays(t *testing.T) {
	_, err := daterange.New(date(2026, time.July, 10), date(2026, time.July, 10))
	require.ErrorIs(t, err, daterange.ErrInvalidInterval)

	_, err = daterange.New(date(2026, time.July, 12), date(2026, time.July, 10))
	require.ErrorIs(t, err, daterange.ErrInvalidInterval)

	_, err = daterange.New(time.Time{}, date(2026, time.July, 10))
	require.ErrorIs(t, err, daterange.ErrInvalidInterval)
}

func TestOverlaps_HalfOpenSemantics(t *testing.T) {
	base, err := daterange.New(date(2026, time.July, 10), date(2026, time.July, 15))
	require.NoError(t, err)

	cases := []struct {
		name     string
		in, out  time.Time
		overlaps bool
	}{
		{"same interval", date(2026, time.July, 10), date(2026, time.July, 15), true},
		{"contained", date(2026, time.July, 11), date(2026, time.July, 13), true},
		{"straddles start", date(2026, time.July, 8), date(2026, time.July, 11), true},
		{"straddles end", date(2026, time.July, 14), date(2026, time.July, 18), true},
		{"back-to-back after", date(2026, time.July, 15), date(2026, time.July, 18), false},
		{"back-to-back before", date(2026, time.July, 7), date(2026, time.July, 10), false},
		{"disjoint", date(2026, time.July, 20), date(2026, time.July, 22), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			other, err := daterange.New(tc.in, tc.out)
			require.NoError(t, err)
			require.Equal(t, tc.overlaps, base.Overlaps(other))
			require.Equal(t, tc.overlaps, other.Overlaps(base))
		})
	}
}

func TestContainsNight_ExcludesCheckoutDay(t *testing.T) {
	si, err := daterange.New(date(2026, time.July, 10), date(2026, time.July, 12))
	require.NoError(t, err)

	require.True(t, si.ContainsNight(date(2026, time.July, 10)))
	require.True(t, si.ContainsNight(date(2026, time.July, 11)))
	require.False(t, si.ContainsNight(date(2026, time.July, 12)))
	require.False(t, si.ContainsNight(date(2026, time.July, 9)))
}

func TestEachNight_VisitsEveryOccupiedDate(t *testing.T) {
	si, err := daterange.New(date(2026, time.July, 10), date(2026, time.July, 13))
	require.NoError(t, err)

	var visited []time.Time
	si.EachNight(func(d time.Time) { visited = append(visited, d) })

	require.Equal(t, []time.Time{
		date(2026, time.July, 10),
		date(2026, time.July, 11),
		date(2026, time.July, 12),
	}, visited)
}

func TestAdjacent(t *testing.T) {
	a, err := daterange.New(date(2026, time.July, 10), date(2026, time.July, 12))
	require.NoError(t, err)
	b, err := daterange.New(date(2026, time.July, 12), date(2026, time.July, 14))
	require.NoError(t, err)

	require.True(t, a.Adjacent(b))
	require.True(t, b.Adjacent(a))
	require.False(t, a.Overlaps(b))
}
