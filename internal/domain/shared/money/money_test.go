package money_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"bookingengine/internal/domain/shared/money"
)

func TestNew_ValidatesCurrency(t *testing.T) {
	m, err := money.New(10000, "eur")
	require.NoError(t, err)
	require.Equal(t, "EUR", m.Currency)
	require.Equal(t, int64(10000), m.Amount)

	_, err = money.New(100, "")
	require.ErrorIs(t, err, money.ErrInvalidCurrency)

	_, err = money.New(100, "EURO")
	require.ErrorIs(t, err, money.ErrInvalidCurrency)
}

func TestScale_RoundsHalfUpToMinorUnit(t *testing.T) {
	cases := []struct {
		amount      int64
		coefficient float64
		want        int64
	}{
		{10000, 1.5, 15000},
		{10000, 0.8, 8000},
		{10001, 1.5, 15002}, // 15001.5 rounds up
		{333, 0.5, 167},     // 166.5 rounds up
		{10000, 1.0, 10000},
		{1, 0.4, 0}, // 0.4 rounds down
	}
	for _, tc := range cases {
		m := money.Must(tc.amount, "EUR")
		got, err := m.Scale(tc.coefficient)
		require.NoError(t, err)
		require.Equal(t, tc.want, got.Amount, "%d * %v", tc.amount, tc.coefficient)
		require.Equal(t, "EUR", got.Currency)
	}
}

func TestScale_RejectsInvalidCoefficients(t *testing.T) {
	m := money.Must(10000, "EUR")
	for _, c := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := m.Scale(c)
		require.ErrorIs(t, err, money.ErrInvalidScale)
	}
}

func TestAdd_RequiresMatchingCurrency(t *testing.T) {
	sum, err := money.Must(100, "EUR").Add(money.Must(250, "EUR"))
	require.NoError(t, err)
	require.Equal(t, int64(350), sum.Amount)

	_, err = money.Must(100, "EUR").Add(money.Must(100, "USD"))
	require.ErrorIs(t, err, money.ErrCurrencyMismatch)

	_, err = money.Must(100, "EUR").Add(money.Money{Amount: 100})
	require.ErrorIs(t, err, money.ErrInvalidCurrency)
}

func TestString_RendersMinorUnits(t *testing.T) {
	require.Equal(t, "150.00 EUR", money.Must(15000, "EUR").String())
	require.Equal(t, "0.05 EUR", money.Must(5, "EUR").String())
	require.Equal(t, "-12.34 USD", money.Must(-1234, "USD").String())
}
