package daterange

import (
	"errors"
	"time"
)

var ErrInvalidInterval = errors.New("daterange: checkout must be after checkin")

// StayInterval represents the half-open date range [CheckIn, CheckOut).
// The checkout day itself is not occupied, so back-to-back stays on the
// same room never overlap. Both endpoints are normalized to UTC midnight.
type StayInterval struct {
	CheckIn  time.Time
	CheckOut time.Time
}

func New(checkIn, checkOut time.Time) (StayInterval, error) {
	si := StayInterval{CheckIn: Day(checkIn), CheckOut: Day(checkOut)}
	if err := si.Validate(); err != nil {
		return StayInterval{}, err
	}
	return si, nil
}

// Day truncates a timestamp to its UTC calendar date.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (si StayInterval) Validate() error {
	if si.CheckIn.IsZero() || si.CheckOut.IsZero() {
		return ErrInvalidInterval
	}
	if !si.CheckOut.After(si.CheckIn) {
		return ErrInvalidInterval
	}
	return nil
}

// Nights is the stay length in whole days.
func (si StayInterval) Nights() int {
	return int(si.CheckOut.Sub(si.CheckIn).Hours() / 24)
}

// Overlaps reports whether two half-open intervals share at least one night.
func (si StayInterval) Overlaps(other StayInterval) bool {
	return si.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(si.CheckOut)
}

// ContainsNight reports whether the given date is one of the occupied nights.
func (si StayInterval) ContainsNight(t time.Time) bool {
	t = Day(t)
	return !t.Before(si.CheckIn) && t.Before(si.CheckOut)
}

// Adjacent reports whether the intervals abut without overlapping.
func (si StayInterval) Adjacent(other StayInterval) bool {
	return si.CheckOut.Equal(other.CheckIn) || si.CheckIn.Equal(other.CheckOut)
}

// EachNight calls fn for every occupied calendar date in chronological order.
func (si StayInterval) EachNight(fn func(d time.Time)) {
	for d := si.CheckIn; d.Before(si.CheckOut); d = d.AddDate(0, 0, 1) {
		fn(d)
	}
}
