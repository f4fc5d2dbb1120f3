package availability

import (
	"bookingengine/internal/domain/reservation"
	"bookingengine/internal/domain/shared/daterange"
)

// IsAvailable decides whether a room can accept a new stay given the
// reservations already on its books. It is a pure function: the caller is
// responsible for making the check-then-book sequence atomic.
//
// Two half-open intervals [a, b) and [c, d) overlap iff a < d && c < b, so a
// guest departing on day D never conflicts with one arriving on day D. Only
// reservations in a blocking status (PENDING, CONFIRMED) occupy their nights.
func IsAvailable(stay daterange.StayInterval, existing []*reservation.Reservation) bool {
	return len(Conflicts(stay, existing)) == 0
}

// Conflicts returns the blocking reservations whose stays overlap the
// candidate interval, for diagnostics and conflict reporting.
func Conflicts(stay daterange.StayInterval, existing []*reservation.Reservation) []*reservation.Reservation {
	return ConflictsExcluding(stay, existing, "")
}

// ConflictsExcluding is Conflicts with one reservation left out of the scan.
// A reservation being moved to new dates must not conflict with itself.
func ConflictsExcluding(stay daterange.StayInterval, existing []*reservation.Reservation, exclude reservation.ReservationID) []*reservation.Reservation {
	var conflicts []*reservation.Reservation
	for _, r := range existing {
		if r == nil || !r.Status.Blocks() {
			continue
		}
		if exclude != "" && r.ID == exclude {
			continue
		}
		if r.Stay.Overlaps(stay) {
			conflicts = append(conflicts, r)
		}
	}
	return conflicts
}
